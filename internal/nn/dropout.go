package nn

import (
	"fmt"
	"math/rand"

	"github.com/deepbench-ml/deepbench/internal/tensor"
)

// Dropout randomly zeroes elements during training with probability p and
// scales the survivors by 1/(1-p) (inverted dropout), so evaluation is the
// identity.
type Dropout struct {
	p        float64
	training bool
	rng      *rand.Rand
	mask     []float32 // scale factors applied in the last forward pass
}

// NewDropout creates a dropout module with drop probability p.
//
// The module starts in training mode; SetTraining(false) turns it into the
// identity for evaluation passes.
func NewDropout(p float64, rng *rand.Rand) *Dropout {
	if p < 0 || p >= 1 {
		panic(fmt.Sprintf("dropout: invalid probability %v", p))
	}
	return &Dropout{p: p, training: true, rng: rng}
}

// SetTraining toggles between training and evaluation behavior.
func (d *Dropout) SetTraining(training bool) {
	d.training = training
}

// Forward applies the dropout mask in training mode.
func (d *Dropout) Forward(input *tensor.Tensor) *tensor.Tensor {
	if !d.training || d.p == 0 {
		d.mask = nil
		return input
	}

	output := tensor.New(input.Shape())
	src := input.Data()
	dst := output.Data()
	d.mask = make([]float32, len(src))
	scale := float32(1.0 / (1.0 - d.p))

	for i, v := range src {
		if d.rng.Float64() >= d.p {
			d.mask[i] = scale
			dst[i] = v * scale
		}
	}
	return output
}

// Backward applies the same mask to the gradient.
func (d *Dropout) Backward(grad *tensor.Tensor) *tensor.Tensor {
	if d.mask == nil {
		return grad
	}

	output := tensor.New(grad.Shape())
	src := grad.Data()
	dst := output.Data()
	for i, v := range src {
		dst[i] = v * d.mask[i]
	}
	return output
}

// Parameters returns an empty slice (Dropout has no trainable parameters).
func (d *Dropout) Parameters() []*Parameter {
	return nil
}
