package datasets

import (
	"fmt"
	"path/filepath"

	"github.com/deepbench-ml/deepbench/internal/tensor"
)

// LoadMNIST loads MNIST data from the official IDX binary files.
//
// Expected files in dataDir:
//   - train-images-idx3-ubyte (or t10k-images-idx3-ubyte for test)
//   - train-labels-idx1-ubyte (or t10k-labels-idx1-ubyte for test)
//
// Images are flattened to 784 values and normalized to [0, 1].
// Download MNIST from: http://yann.lecun.com/exdb/mnist/
func LoadMNIST(dataDir string, train bool) (*Dataset, error) {
	var imageFile, labelFile string
	if train {
		imageFile = filepath.Join(dataDir, "train-images-idx3-ubyte")
		labelFile = filepath.Join(dataDir, "train-labels-idx1-ubyte")
	} else {
		imageFile = filepath.Join(dataDir, "t10k-images-idx3-ubyte")
		labelFile = filepath.Join(dataDir, "t10k-labels-idx1-ubyte")
	}

	imagesRaw, err := readIDXImages(imageFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load images: %w", err)
	}
	labelsRaw, err := readIDXLabels(labelFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load labels: %w", err)
	}
	if len(imagesRaw) != len(labelsRaw) {
		return nil, fmt.Errorf("image count (%d) != label count (%d)", len(imagesRaw), len(labelsRaw))
	}

	numSamples := len(imagesRaw)
	images := make([][]float32, numSamples)
	labels := make([]int32, numSamples)

	for i := 0; i < numSamples; i++ {
		images[i] = make([]float32, len(imagesRaw[i]))
		for j, p := range imagesRaw[i] {
			images[i][j] = float32(p) / 255.0
		}
		labels[i] = int32(labelsRaw[i])
	}

	return &Dataset{
		Images:     images,
		Labels:     labels,
		ImageShape: tensor.Shape{784},
	}, nil
}
