package nn

import (
	"github.com/deepbench-ml/deepbench/internal/backend/cpu"
	"github.com/deepbench-ml/deepbench/internal/tensor"
)

// ReLU is a Rectified Linear Unit activation module.
//
// Applies the element-wise function f(x) = max(0, x).
type ReLU struct {
	backend   *cpu.Backend
	lastInput *tensor.Tensor
}

// NewReLU creates a new ReLU activation module.
func NewReLU(backend *cpu.Backend) *ReLU {
	return &ReLU{backend: backend}
}

// Forward applies ReLU activation.
func (r *ReLU) Forward(input *tensor.Tensor) *tensor.Tensor {
	r.lastInput = input
	return r.backend.ReLU(input)
}

// Backward masks the gradient where the forward input was non-positive.
func (r *ReLU) Backward(grad *tensor.Tensor) *tensor.Tensor {
	if r.lastInput == nil {
		panic("relu: Backward called before Forward")
	}
	return r.backend.ReLUBackward(r.lastInput, grad)
}

// Parameters returns an empty slice (ReLU has no trainable parameters).
func (r *ReLU) Parameters() []*Parameter {
	return nil
}
