package nn

import (
	"github.com/deepbench-ml/deepbench/internal/tensor"
)

// Sequential is a container module that chains multiple modules together.
//
// Each module's output becomes the next module's input:
//
//	model := nn.NewSequential(
//	    nn.NewLinear(784, 128, backend, rng),
//	    nn.NewReLU(backend),
//	    nn.NewLinear(128, 10, backend, rng),
//	)
type Sequential struct {
	modules []Module
}

// NewSequential creates a new Sequential container.
func NewSequential(modules ...Module) *Sequential {
	return &Sequential{modules: modules}
}

// Forward applies all modules in order.
func (s *Sequential) Forward(input *tensor.Tensor) *tensor.Tensor {
	output := input
	for _, module := range s.modules {
		output = module.Forward(output)
	}
	return output
}

// Backward propagates the gradient through all modules in reverse order.
func (s *Sequential) Backward(grad *tensor.Tensor) *tensor.Tensor {
	for i := len(s.modules) - 1; i >= 0; i-- {
		grad = s.modules[i].Backward(grad)
	}
	return grad
}

// Parameters returns all trainable parameters from all modules.
func (s *Sequential) Parameters() []*Parameter {
	var params []*Parameter
	for _, module := range s.modules {
		params = append(params, module.Parameters()...)
	}
	return params
}

// SetTraining propagates the training flag to all Trainable modules.
func (s *Sequential) SetTraining(training bool) {
	for _, module := range s.modules {
		if t, ok := module.(Trainable); ok {
			t.SetTraining(training)
		}
	}
}
