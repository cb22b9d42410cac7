// Copyright 2025 DeepBench Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package datasets provides loaders for the image classification
// datasets used by the test problems, plus mini-batch construction.
package datasets

import (
	"math/rand"

	"github.com/deepbench-ml/deepbench/internal/datasets"
)

// Dataset holds a full split of an image classification dataset.
type Dataset = datasets.Dataset

// Batch is a mini-batch of images and labels.
type Batch = datasets.Batch

// LoadMNIST loads MNIST from the official IDX binary files.
func LoadMNIST(dataDir string, train bool) (*Dataset, error) {
	return datasets.LoadMNIST(dataDir, train)
}

// LoadCIFAR10 loads CIFAR-10 from the official binary batches.
func LoadCIFAR10(dataDir string, train bool) (*Dataset, error) {
	return datasets.LoadCIFAR10(dataDir, train)
}

// CreateBatches splits a dataset into mini-batches, optionally
// shuffling with rng first.
func CreateBatches(data *Dataset, batchSize int, shuffle bool, rng *rand.Rand) ([]*Batch, error) {
	return datasets.CreateBatches(data, batchSize, shuffle, rng)
}
