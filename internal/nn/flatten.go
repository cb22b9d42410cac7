package nn

import (
	"fmt"

	"github.com/deepbench-ml/deepbench/internal/tensor"
)

// Flatten collapses all dimensions after the batch dimension:
// [N, C, H, W] -> [N, C*H*W].
type Flatten struct {
	lastShape tensor.Shape
}

// NewFlatten creates a new Flatten module.
func NewFlatten() *Flatten {
	return &Flatten{}
}

// Forward flattens the input to 2D. The output shares the input storage.
func (f *Flatten) Forward(input *tensor.Tensor) *tensor.Tensor {
	shape := input.Shape()
	if len(shape) < 2 {
		panic(fmt.Sprintf("flatten: expected at least 2D input, got shape %v", shape))
	}
	f.lastShape = shape.Clone()
	return input.Reshape(shape[0], input.NumElements()/shape[0])
}

// Backward restores the gradient to the cached input shape.
func (f *Flatten) Backward(grad *tensor.Tensor) *tensor.Tensor {
	if f.lastShape == nil {
		panic("flatten: Backward called before Forward")
	}
	return grad.Reshape(f.lastShape...)
}

// Parameters returns an empty slice (Flatten has no trainable parameters).
func (f *Flatten) Parameters() []*Parameter {
	return nil
}
