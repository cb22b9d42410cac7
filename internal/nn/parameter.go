package nn

import (
	"fmt"

	"github.com/deepbench-ml/deepbench/internal/tensor"
)

// Parameter represents a trainable parameter in a neural network.
//
// Parameters are tensors that receive gradients during the backward pass.
// They typically represent weights and biases of layers. Bias parameters
// carry "bias" in their name; testproblems rely on this to exclude them from
// L2 regularization.
type Parameter struct {
	name string         // Parameter name (e.g. "weight", "conv2d.bias")
	data *tensor.Tensor // The parameter tensor
	grad *tensor.Tensor // Accumulated gradient, nil before the first backward pass
}

// NewParameter creates a new trainable parameter around an initialized tensor.
func NewParameter(name string, t *tensor.Tensor) *Parameter {
	return &Parameter{name: name, data: t}
}

// Name returns the parameter name.
func (p *Parameter) Name() string {
	return p.name
}

// Data returns the parameter tensor.
func (p *Parameter) Data() *tensor.Tensor {
	return p.data
}

// Grad returns the accumulated gradient tensor.
//
// Returns nil if no gradient has been computed since the last ZeroGrad.
func (p *Parameter) Grad() *tensor.Tensor {
	return p.grad
}

// AccumulateGrad adds g to the parameter's gradient, taking ownership of g
// when no gradient has been accumulated yet.
func (p *Parameter) AccumulateGrad(g *tensor.Tensor) {
	if !g.Shape().Equal(p.data.Shape()) {
		panic(fmt.Sprintf("parameter %s: gradient shape %v does not match data shape %v",
			p.name, g.Shape(), p.data.Shape()))
	}
	if p.grad == nil {
		p.grad = g
		return
	}
	dst := p.grad.Data()
	src := g.Data()
	for i := range dst {
		dst[i] += src[i]
	}
}

// ZeroGrad clears the gradient.
//
// Called before each training iteration to avoid accumulating gradients
// across iterations.
func (p *Parameter) ZeroGrad() {
	p.grad = nil
}
