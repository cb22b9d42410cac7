package main

import (
	"fmt"

	"github.com/deepbench-ml/deepbench/internal/nn"
	"github.com/deepbench-ml/deepbench/internal/optim"
	"github.com/deepbench-ml/deepbench/internal/runner"
)

// optimizerEntry ties an optimizer name to its hyperparameter
// descriptors and construction.
type optimizerEntry struct {
	hyperparams []runner.Hyperparameter
	factory     runner.OptimizerFactory
}

var optimizers = map[string]optimizerEntry{
	"sgd": {
		hyperparams: []runner.Hyperparameter{},
		factory: func(params []*nn.Parameter, lr float64, hp map[string]any) (optim.Optimizer, error) {
			return optim.NewSGD(params, optim.SGDConfig{LR: lr}), nil
		},
	},
	"momentum": {
		hyperparams: []runner.Hyperparameter{
			{Name: "momentum", Type: runner.FloatHyperparam, Default: 0.9, HasDefault: true},
		},
		factory: func(params []*nn.Parameter, lr float64, hp map[string]any) (optim.Optimizer, error) {
			momentum, ok := hp["momentum"].(float64)
			if !ok {
				return nil, fmt.Errorf("momentum must be a float, got %T", hp["momentum"])
			}
			return optim.NewSGD(params, optim.SGDConfig{LR: lr, Momentum: momentum}), nil
		},
	},
	"adam": {
		hyperparams: []runner.Hyperparameter{
			{Name: "beta1", Type: runner.FloatHyperparam, Default: 0.9, HasDefault: true},
			{Name: "beta2", Type: runner.FloatHyperparam, Default: 0.999, HasDefault: true},
			{Name: "eps", Type: runner.FloatHyperparam, Default: 1e-8, HasDefault: true},
		},
		factory: func(params []*nn.Parameter, lr float64, hp map[string]any) (optim.Optimizer, error) {
			beta1, ok := hp["beta1"].(float64)
			if !ok {
				return nil, fmt.Errorf("beta1 must be a float, got %T", hp["beta1"])
			}
			beta2, ok := hp["beta2"].(float64)
			if !ok {
				return nil, fmt.Errorf("beta2 must be a float, got %T", hp["beta2"])
			}
			eps, ok := hp["eps"].(float64)
			if !ok {
				return nil, fmt.Errorf("eps must be a float, got %T", hp["eps"])
			}
			return optim.NewAdam(params, optim.AdamConfig{
				LR:    lr,
				Betas: [2]float64{beta1, beta2},
				Eps:   eps,
			}), nil
		},
	},
}
