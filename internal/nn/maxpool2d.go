package nn

import (
	"fmt"

	"github.com/deepbench-ml/deepbench/internal/backend/cpu"
	"github.com/deepbench-ml/deepbench/internal/tensor"
)

// MaxPool2D is a 2D max pooling layer. It has no learnable parameters.
//
// Input shape:  [batch, channels, height, width]
// Output shape: [batch, channels, out_height, out_width]
type MaxPool2D struct {
	kernelSize int
	stride     int
	backend    *cpu.Backend

	lastShape   tensor.Shape // input shape cached for the backward pass
	lastIndices []int        // winning input indices from the forward pass
}

// NewMaxPool2D creates a new 2D max pooling layer.
//
// NewMaxPool2D(2, 2, backend) is the standard non-overlapping 2x2 pooling.
func NewMaxPool2D(kernelSize, stride int, backend *cpu.Backend) *MaxPool2D {
	if kernelSize <= 0 || stride <= 0 {
		panic(fmt.Sprintf("maxpool2d: invalid kernel size %d / stride %d", kernelSize, stride))
	}
	return &MaxPool2D{kernelSize: kernelSize, stride: stride, backend: backend}
}

// Forward performs max pooling, recording the argmax indices for Backward.
func (m *MaxPool2D) Forward(input *tensor.Tensor) *tensor.Tensor {
	output, indices := m.backend.MaxPool2D(input, m.kernelSize, m.stride)
	m.lastShape = input.Shape().Clone()
	m.lastIndices = indices
	return output
}

// Backward routes gradients to the positions that won the forward max.
func (m *MaxPool2D) Backward(grad *tensor.Tensor) *tensor.Tensor {
	if m.lastIndices == nil {
		panic("maxpool2d: Backward called before Forward")
	}
	return m.backend.MaxPool2DBackward(m.lastShape, grad, m.lastIndices)
}

// Parameters returns an empty slice (MaxPool2D has no trainable parameters).
func (m *MaxPool2D) Parameters() []*Parameter {
	return nil
}

// String returns a string representation of the layer.
func (m *MaxPool2D) String() string {
	return fmt.Sprintf("MaxPool2D(kernel_size=%d, stride=%d)", m.kernelSize, m.stride)
}
