package cpu

import (
	"fmt"

	"github.com/deepbench-ml/deepbench/internal/tensor"
)

// ReLU applies max(0, x) element-wise, returning a new tensor.
func (b *Backend) ReLU(input *tensor.Tensor) *tensor.Tensor {
	output := tensor.New(input.Shape())
	src := input.Data()
	dst := output.Data()
	for i, v := range src {
		if v > 0 {
			dst[i] = v
		}
	}
	return output
}

// ReLUBackward masks the output gradient by the sign of the forward input:
// grad flows only where the input was positive.
func (b *Backend) ReLUBackward(input, grad *tensor.Tensor) *tensor.Tensor {
	if !input.Shape().Equal(grad.Shape()) {
		panic(fmt.Sprintf("relu backward: input shape %v != grad shape %v", input.Shape(), grad.Shape()))
	}

	output := tensor.New(input.Shape())
	in := input.Data()
	g := grad.Data()
	dst := output.Data()
	for i, v := range in {
		if v > 0 {
			dst[i] = g[i]
		}
	}
	return output
}
