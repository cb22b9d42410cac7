// Copyright 2025 DeepBench Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package runner provides the benchmark runner: argument resolution,
// run naming, learning rate schedules and the standard training loop.
//
// # Basic Usage
//
//	r := runner.NewStandardRunner("momentum", factory, []runner.Hyperparameter{
//	    {Name: "momentum", Type: runner.FloatHyperparam, Default: 0.9, HasDefault: true},
//	}, nil)
//	out, err := r.Run(runner.Options{}, os.Args[2:])
//
// Callers embedding the runner in a larger program can pre-fill
// Options fields; anything left nil becomes a command line flag.
package runner

import (
	"log/slog"
	"time"

	"github.com/deepbench-ml/deepbench/internal/runner"
)

// Options carries caller-supplied argument values; nil fields become
// command line flags.
type Options = runner.Options

// Hyperparameter describes one optimizer hyperparameter.
type Hyperparameter = runner.Hyperparameter

// HyperparamType names the value type of a hyperparameter.
type HyperparamType = runner.HyperparamType

// Hyperparameter value types.
const (
	FloatHyperparam  = runner.FloatHyperparam
	IntHyperparam    = runner.IntHyperparam
	BoolHyperparam   = runner.BoolHyperparam
	StringHyperparam = runner.StringHyperparam
)

// Schedule maps an epoch to a learning rate multiplier.
type Schedule = runner.Schedule

// OptimizerFactory builds an optimizer from resolved hyperparameters.
type OptimizerFactory = runner.OptimizerFactory

// StandardRunner benchmarks one optimizer on one test problem.
type StandardRunner = runner.StandardRunner

// Output holds the metrics and metadata a run produces.
type Output = runner.Output

// NewStandardRunner creates a runner for the named optimizer.
func NewStandardRunner(optimizerName string, factory OptimizerFactory, hyperparams []Hyperparameter, logger *slog.Logger) *StandardRunner {
	return runner.NewStandardRunner(optimizerName, factory, hyperparams, logger)
}

// GetArguments resolves the full argument set for an optimizer run.
func GetArguments(opts Options, optimizerName string, hyperparams []Hyperparameter, argv []string) (map[string]any, error) {
	return runner.GetArguments(opts, optimizerName, hyperparams, argv)
}

// Float2Str formats a float in canonical scientific notation for run
// names.
func Float2Str(x float64) string {
	return runner.Float2Str(x)
}

// MakeRunName builds the run folder and file names for a
// configuration.
func MakeRunName(weightDecay *float64, batchSize, numEpochs int, learningRate float64,
	lrSchedEpochs []int, lrSchedFactors []float64, randomSeed int,
	optimizerHyperparams map[string]any, now time.Time) (string, string) {
	return runner.MakeRunName(weightDecay, batchSize, numEpochs, learningRate,
		lrSchedEpochs, lrSchedFactors, randomSeed, optimizerHyperparams, now)
}

// MakeLRSchedule builds a piecewise-constant learning rate schedule.
func MakeLRSchedule(epochs []int, factors []float64) Schedule {
	return runner.MakeLRSchedule(epochs, factors)
}
