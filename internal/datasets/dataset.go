// Package datasets provides the image classification datasets used by
// the benchmark test problems, together with mini-batch construction.
//
// Each loader returns a Dataset with pixel values normalized to the
// [0, 1] range and labels as int32 class indices.
package datasets

import (
	"fmt"

	"github.com/deepbench-ml/deepbench/internal/tensor"
)

// Dataset holds a full split of an image classification dataset.
type Dataset struct {
	Images     [][]float32 // [num_samples, product(ImageShape)]
	Labels     []int32     // [num_samples]
	ImageShape tensor.Shape
}

// NumSamples returns the number of samples in the dataset.
func (d *Dataset) NumSamples() int {
	return len(d.Images)
}

// Split divides the dataset into its first n samples and the rest. The
// returned datasets share the underlying sample slices.
func (d *Dataset) Split(n int) (*Dataset, *Dataset) {
	if n > len(d.Images) {
		n = len(d.Images)
	}
	head := &Dataset{Images: d.Images[:n], Labels: d.Labels[:n], ImageShape: d.ImageShape}
	tail := &Dataset{Images: d.Images[n:], Labels: d.Labels[n:], ImageShape: d.ImageShape}
	return head, tail
}

// Validate checks that images and labels are consistent.
func (d *Dataset) Validate() error {
	if len(d.Images) != len(d.Labels) {
		return fmt.Errorf("image count (%d) != label count (%d)", len(d.Images), len(d.Labels))
	}
	sampleSize := d.ImageShape.NumElements()
	for i, img := range d.Images {
		if len(img) != sampleSize {
			return fmt.Errorf("sample %d has %d elements, want %d", i, len(img), sampleSize)
		}
	}
	return nil
}
