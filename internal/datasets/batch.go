package datasets

import (
	"fmt"
	"math/rand"

	"github.com/deepbench-ml/deepbench/internal/tensor"
)

// Batch represents a mini-batch for training or evaluation.
type Batch struct {
	Images *tensor.Tensor // [batch, ...ImageShape]
	Labels []int32        // [batch]
	Size   int
}

// CreateBatches splits a dataset into mini-batches.
//
// When shuffle is true the sample order is permuted with rng before
// batching, so runs with the same seed see the same batch sequence.
// A trailing partial batch is kept.
func CreateBatches(data *Dataset, batchSize int, shuffle bool, rng *rand.Rand) ([]*Batch, error) {
	if batchSize <= 0 {
		return nil, fmt.Errorf("batch size must be positive, got %d", batchSize)
	}
	numSamples := data.NumSamples()
	if numSamples == 0 {
		return nil, fmt.Errorf("dataset is empty")
	}

	indices := make([]int, numSamples)
	for i := range indices {
		indices[i] = i
	}
	if shuffle {
		rng.Shuffle(numSamples, func(i, j int) {
			indices[i], indices[j] = indices[j], indices[i]
		})
	}

	sampleSize := data.ImageShape.NumElements()
	numBatches := (numSamples + batchSize - 1) / batchSize
	batches := make([]*Batch, 0, numBatches)

	for start := 0; start < numSamples; start += batchSize {
		end := start + batchSize
		if end > numSamples {
			end = numSamples
		}
		size := end - start

		batchShape := append(tensor.Shape{size}, data.ImageShape...)
		images := tensor.Zeros(batchShape)
		labels := make([]int32, size)

		imgData := images.Data()
		for b := 0; b < size; b++ {
			idx := indices[start+b]
			copy(imgData[b*sampleSize:(b+1)*sampleSize], data.Images[idx])
			labels[b] = data.Labels[idx]
		}

		batches = append(batches, &Batch{
			Images: images,
			Labels: labels,
			Size:   size,
		})
	}

	return batches, nil
}
