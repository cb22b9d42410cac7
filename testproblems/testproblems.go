// Copyright 2025 DeepBench Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package testproblems provides the benchmark test problems: image
// classification tasks with a fixed model, dataset, loss and
// regularization, behind a common interface.
package testproblems

import (
	"github.com/deepbench-ml/deepbench/internal/testproblems"
)

// TestProblem is a training task with a fixed model and dataset.
type TestProblem = testproblems.TestProblem

// Factory creates a test problem with the given batch size.
type Factory = testproblems.Factory

// CIFAR10VGG16 is VGG16 on CIFAR-10 with L2 regularization.
type CIFAR10VGG16 = testproblems.CIFAR10VGG16

// CIFAR103C3D is a three-conv three-dense CNN on CIFAR-10.
type CIFAR103C3D = testproblems.CIFAR103C3D

// MNISTMLP is a four-layer fully connected network on MNIST.
type MNISTMLP = testproblems.MNISTMLP

// MNISTLogReg is multinomial logistic regression on MNIST.
type MNISTLogReg = testproblems.MNISTLogReg

// New creates the named test problem. A nil weightDecay means the
// problem's own default applies.
func New(name string, batchSize int, weightDecay *float64) (TestProblem, error) {
	return testproblems.New(name, batchSize, weightDecay)
}

// Names returns the registered test problem names in sorted order.
func Names() []string {
	return testproblems.Names()
}

// NewCIFAR10VGG16 creates the VGG16 CIFAR-10 test problem.
func NewCIFAR10VGG16(batchSize int, weightDecay *float64) *CIFAR10VGG16 {
	return testproblems.NewCIFAR10VGG16(batchSize, weightDecay)
}

// NewCIFAR103C3D creates the 3c3d CIFAR-10 test problem.
func NewCIFAR103C3D(batchSize int, weightDecay *float64) *CIFAR103C3D {
	return testproblems.NewCIFAR103C3D(batchSize, weightDecay)
}

// NewMNISTMLP creates the MNIST MLP test problem.
func NewMNISTMLP(batchSize int, weightDecay *float64) *MNISTMLP {
	return testproblems.NewMNISTMLP(batchSize, weightDecay)
}

// NewMNISTLogReg creates the MNIST logistic regression test problem.
func NewMNISTLogReg(batchSize int, weightDecay *float64) *MNISTLogReg {
	return testproblems.NewMNISTLogReg(batchSize, weightDecay)
}
