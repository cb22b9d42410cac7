// Copyright 2025 DeepBench Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package cpu provides the pure-Go CPU compute backend: matrix
// multiplication, im2col convolution, pooling and the element-wise
// kernels the layer implementations build on.
package cpu

import (
	"github.com/deepbench-ml/deepbench/internal/backend/cpu"
)

// Backend executes tensor operations on the CPU, parallelized across
// goroutines for large inputs.
type Backend = cpu.Backend

// New creates a CPU backend with the default parallel configuration.
func New() *Backend {
	return cpu.New()
}
