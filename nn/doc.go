// Copyright 2025 DeepBench Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package nn provides neural network layers and building blocks.
//
// # Overview
//
// This package contains:
//   - Layers: Linear, Conv2D, MaxPool2D, Dropout, Flatten
//   - Activations: ReLU
//   - Loss functions: CrossEntropyLoss
//   - Utilities: Sequential, Module interface, Parameter
//
// # Basic Usage
//
//	import (
//	    "github.com/deepbench-ml/deepbench/nn"
//	    "github.com/deepbench-ml/deepbench/backend/cpu"
//	)
//
//	func main() {
//	    backend := cpu.New()
//	    rng := rand.New(rand.NewSource(42))
//
//	    // Build a simple MLP
//	    model := nn.NewSequential(
//	        nn.NewLinear(784, 128, backend, rng),
//	        nn.NewReLU(backend),
//	        nn.NewLinear(128, 10, backend, rng),
//	    )
//
//	    // Forward pass
//	    output := model.Forward(input)
//	}
//
// Layers implement explicit backward passes: calling Backward on a
// model after a forward pass accumulates gradients into its
// parameters, which the optim package then applies.
package nn
