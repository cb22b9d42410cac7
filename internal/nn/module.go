// Package nn implements the neural network modules the benchmark networks
// are built from.
//
// This package provides:
//   - Module interface: forward/backward building block
//   - Parameter: trainable parameters with gradient accumulation
//   - Linear, Conv2D, MaxPool2D, ReLU, Flatten, Dropout, Sequential
//   - CrossEntropyLoss and classification accuracy
//
// Modules carry their own backward pass: each Forward caches what the
// matching Backward needs, and Backward accumulates parameter gradients and
// returns the gradient w.r.t. the module input. Design inspired by PyTorch's
// nn.Module.
package nn

import (
	"github.com/deepbench-ml/deepbench/internal/tensor"
)

// Module is the base interface for all neural network components.
//
// Modules can be composed to build architectures:
//
//	model := nn.NewSequential(
//	    nn.NewLinear(784, 128, backend, rng),
//	    nn.NewReLU(backend),
//	    nn.NewLinear(128, 10, backend, rng),
//	)
type Module interface {
	// Forward computes the output of the module given an input tensor and
	// caches whatever the backward pass needs.
	Forward(input *tensor.Tensor) *tensor.Tensor

	// Backward takes the gradient of the loss w.r.t. this module's output,
	// accumulates gradients into the module's parameters, and returns the
	// gradient w.r.t. the module's input.
	Backward(grad *tensor.Tensor) *tensor.Tensor

	// Parameters returns all trainable parameters of this module. Modules
	// without trainable parameters return an empty slice.
	Parameters() []*Parameter
}

// Trainable is implemented by modules whose behavior differs between
// training and evaluation (e.g. Dropout).
type Trainable interface {
	SetTraining(training bool)
}
