package optim

import (
	"github.com/deepbench-ml/deepbench/internal/nn"
)

// SGD implements stochastic gradient descent with optional momentum.
//
// Update rule without momentum:
//
//	param = param - lr * gradient
//
// Update rule with momentum:
//
//	velocity = momentum * velocity + gradient
//	param = param - lr * velocity
type SGD struct {
	params     []*nn.Parameter
	lr         float64
	momentum   float64
	velocities map[*nn.Parameter][]float32
}

// SGDConfig holds configuration for the SGD optimizer.
type SGDConfig struct {
	LR       float64 // Learning rate (default: 0.01)
	Momentum float64 // Momentum factor (default: 0, range [0, 1))
}

// NewSGD creates a new SGD optimizer over the given parameters.
func NewSGD(params []*nn.Parameter, config SGDConfig) *SGD {
	if config.LR == 0 {
		config.LR = 0.01
	}
	return &SGD{
		params:     params,
		lr:         config.LR,
		momentum:   config.Momentum,
		velocities: make(map[*nn.Parameter][]float32),
	}
}

// Step performs a single optimization step.
//
// Parameters without a gradient (not touched by the backward pass) are
// skipped.
func (s *SGD) Step() {
	lr := float32(s.lr)
	mom := float32(s.momentum)

	for _, param := range s.params {
		grad := param.Grad()
		if grad == nil {
			continue
		}

		paramData := param.Data().Data()
		gradData := grad.Data()

		if s.momentum == 0 {
			for i := range paramData {
				paramData[i] -= lr * gradData[i]
			}
			continue
		}

		velocity, ok := s.velocities[param]
		if !ok {
			velocity = make([]float32, len(paramData))
			s.velocities[param] = velocity
		}
		for i := range paramData {
			velocity[i] = mom*velocity[i] + gradData[i]
			paramData[i] -= lr * velocity[i]
		}
	}
}

// ZeroGrad clears gradients for all parameters.
func (s *SGD) ZeroGrad() {
	zeroGrads(s.params)
}

// LR returns the current learning rate.
func (s *SGD) LR() float64 {
	return s.lr
}

// SetLR updates the learning rate.
func (s *SGD) SetLR(lr float64) {
	s.lr = lr
}
