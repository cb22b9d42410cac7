package optim

import (
	"math"

	"github.com/deepbench-ml/deepbench/internal/nn"
)

// Adam implements the Adam (Adaptive Moment Estimation) optimizer.
//
// Update rule:
//
//	m_t = beta1 * m_{t-1} + (1-beta1) * gradient       // First moment
//	v_t = beta2 * v_{t-1} + (1-beta2) * gradient²      // Second moment
//	m_hat = m_t / (1 - beta1^t)                        // Bias correction
//	v_hat = v_t / (1 - beta2^t)                        // Bias correction
//	param = param - lr * m_hat / (sqrt(v_hat) + eps)
//
// Reference: "Adam: A Method for Stochastic Optimization" (Kingma & Ba, 2014).
type Adam struct {
	params []*nn.Parameter
	lr     float64
	beta1  float64
	beta2  float64
	eps    float64
	t      int // timestep for bias correction
	m      map[*nn.Parameter][]float32
	v      map[*nn.Parameter][]float32
}

// AdamConfig holds configuration for the Adam optimizer.
type AdamConfig struct {
	LR    float64    // Learning rate (default: 0.001)
	Betas [2]float64 // Running-average coefficients (default: [0.9, 0.999])
	Eps   float64    // Numerical stability term (default: 1e-8)
}

// NewAdam creates a new Adam optimizer with the usual defaults for any
// unset configuration field.
func NewAdam(params []*nn.Parameter, config AdamConfig) *Adam {
	if config.LR == 0 {
		config.LR = 0.001
	}
	if config.Betas[0] == 0 {
		config.Betas[0] = 0.9
	}
	if config.Betas[1] == 0 {
		config.Betas[1] = 0.999
	}
	if config.Eps == 0 {
		config.Eps = 1e-8
	}

	return &Adam{
		params: params,
		lr:     config.LR,
		beta1:  config.Betas[0],
		beta2:  config.Betas[1],
		eps:    config.Eps,
		m:      make(map[*nn.Parameter][]float32),
		v:      make(map[*nn.Parameter][]float32),
	}
}

// Step performs a single Adam optimization step.
func (a *Adam) Step() {
	a.t++
	biasCorrection1 := 1.0 - math.Pow(a.beta1, float64(a.t))
	biasCorrection2 := 1.0 - math.Pow(a.beta2, float64(a.t))

	lr := float32(a.lr)
	beta1 := float32(a.beta1)
	beta2 := float32(a.beta2)
	eps := float32(a.eps)
	bc1 := float32(biasCorrection1)
	bc2 := float32(biasCorrection2)

	for _, param := range a.params {
		grad := param.Grad()
		if grad == nil {
			continue
		}

		paramData := param.Data().Data()
		gradData := grad.Data()

		m, ok := a.m[param]
		if !ok {
			m = make([]float32, len(paramData))
			a.m[param] = m
		}
		v, ok := a.v[param]
		if !ok {
			v = make([]float32, len(paramData))
			a.v[param] = v
		}

		for i := range paramData {
			g := gradData[i]
			m[i] = beta1*m[i] + (1.0-beta1)*g
			v[i] = beta2*v[i] + (1.0-beta2)*g*g

			mHat := m[i] / bc1
			vHat := v[i] / bc2
			paramData[i] -= lr * mHat / (float32(math.Sqrt(float64(vHat))) + eps)
		}
	}
}

// ZeroGrad clears gradients for all parameters.
func (a *Adam) ZeroGrad() {
	zeroGrads(a.params)
}

// LR returns the current learning rate.
func (a *Adam) LR() float64 {
	return a.lr
}

// SetLR updates the learning rate.
func (a *Adam) SetLR(lr float64) {
	a.lr = lr
}

// Timestep returns the current timestep, useful for monitoring.
func (a *Adam) Timestep() int {
	return a.t
}
