// Package optim implements the optimization algorithms benchmarked by the
// runner.
//
// This package provides:
//   - Optimizer interface: base interface for all optimizers
//   - SGD: stochastic gradient descent with optional momentum
//   - Adam: adaptive moment estimation with bias correction
//
// Design inspired by PyTorch's torch.optim. Optimizers read gradients
// accumulated on the parameters themselves; weight decay is applied by the
// testproblem as an explicit regularization gradient, keeping the update
// rules pure.
package optim

import (
	"github.com/deepbench-ml/deepbench/internal/nn"
)

// Optimizer is the base interface for all optimization algorithms.
type Optimizer interface {
	// Step applies one gradient update to all parameters. Parameters with a
	// nil gradient are skipped.
	Step()

	// ZeroGrad clears all parameter gradients. Call before each backward
	// pass to prevent accumulation across iterations.
	ZeroGrad()

	// LR returns the current learning rate. The runner reads the base
	// learning rate through this before applying a schedule.
	LR() float64

	// SetLR updates the learning rate. This is the learning-rate schedule
	// hook.
	SetLR(lr float64)
}

// zeroGrads clears gradients on a parameter list; shared by all optimizers.
func zeroGrads(params []*nn.Parameter) {
	for _, p := range params {
		p.ZeroGrad()
	}
}
