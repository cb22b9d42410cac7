// Copyright 2025 DeepBench Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn

import (
	"math/rand"

	"github.com/deepbench-ml/deepbench/internal/backend/cpu"
	"github.com/deepbench-ml/deepbench/internal/nn"
	"github.com/deepbench-ml/deepbench/internal/tensor"
)

// Module is the interface all layers implement.
type Module = nn.Module

// Trainable is implemented by layers whose behavior differs between
// training and evaluation.
type Trainable = nn.Trainable

// Parameter is a trainable tensor with an accumulated gradient.
type Parameter = nn.Parameter

// NewParameter wraps a tensor as a named trainable parameter.
func NewParameter(name string, t *tensor.Tensor) *Parameter {
	return nn.NewParameter(name, t)
}

// Linear is a fully connected layer.
type Linear = nn.Linear

// NewLinear creates a fully connected layer with Xavier-initialized
// weights.
func NewLinear(inFeatures, outFeatures int, backend *cpu.Backend, rng *rand.Rand) *Linear {
	return nn.NewLinear(inFeatures, outFeatures, backend, rng)
}

// Conv2D is a 2D convolutional layer with square kernels.
type Conv2D = nn.Conv2D

// NewConv2D creates a convolutional layer with Xavier-initialized
// weights.
func NewConv2D(inChannels, outChannels, kernelSize, stride, padding int, backend *cpu.Backend, rng *rand.Rand) *Conv2D {
	return nn.NewConv2D(inChannels, outChannels, kernelSize, stride, padding, backend, rng)
}

// MaxPool2D is a 2D max pooling layer.
type MaxPool2D = nn.MaxPool2D

// NewMaxPool2D creates a max pooling layer.
func NewMaxPool2D(kernelSize, stride int, backend *cpu.Backend) *MaxPool2D {
	return nn.NewMaxPool2D(kernelSize, stride, backend)
}

// ReLU is the rectified linear activation.
type ReLU = nn.ReLU

// NewReLU creates a ReLU activation layer.
func NewReLU(backend *cpu.Backend) *ReLU {
	return nn.NewReLU(backend)
}

// Dropout randomly zeroes activations during training.
type Dropout = nn.Dropout

// NewDropout creates a dropout layer with drop probability p.
func NewDropout(p float64, rng *rand.Rand) *Dropout {
	return nn.NewDropout(p, rng)
}

// Flatten reshapes inputs to [batch, features].
type Flatten = nn.Flatten

// NewFlatten creates a flatten layer.
func NewFlatten() *Flatten {
	return nn.NewFlatten()
}

// Sequential chains modules into a single model.
type Sequential = nn.Sequential

// NewSequential creates a sequential container.
func NewSequential(modules ...Module) *Sequential {
	return nn.NewSequential(modules...)
}

// CrossEntropyLoss combines log-softmax and negative log-likelihood.
type CrossEntropyLoss = nn.CrossEntropyLoss

// NewCrossEntropyLoss creates a cross-entropy loss.
func NewCrossEntropyLoss() *CrossEntropyLoss {
	return nn.NewCrossEntropyLoss()
}

// Accuracy returns the fraction of rows whose argmax matches the
// target class.
func Accuracy(logits *tensor.Tensor, targets []int32) float32 {
	return nn.Accuracy(logits, targets)
}
