package datasets

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/deepbench-ml/deepbench/internal/tensor"
)

const (
	cifarImageBytes  = 3 * 32 * 32
	cifarRecordBytes = 1 + cifarImageBytes
)

// LoadCIFAR10 loads CIFAR-10 data from the official binary batches.
//
// Expected files in dataDir:
//   - data_batch_1.bin .. data_batch_5.bin (training set, 50,000 samples)
//   - test_batch.bin (test set, 10,000 samples)
//
// Each record is 1 label byte followed by 3072 pixel bytes in CHW order
// (1024 red, 1024 green, 1024 blue). Pixels are normalized to [0, 1]
// and images keep the [3, 32, 32] layout.
// Download CIFAR-10 from: https://www.cs.toronto.edu/~kriz/cifar.html
func LoadCIFAR10(dataDir string, train bool) (*Dataset, error) {
	var files []string
	if train {
		for i := 1; i <= 5; i++ {
			files = append(files, filepath.Join(dataDir, fmt.Sprintf("data_batch_%d.bin", i)))
		}
	} else {
		files = append(files, filepath.Join(dataDir, "test_batch.bin"))
	}

	var images [][]float32
	var labels []int32

	for _, f := range files {
		imgs, lbls, err := readCIFARBatch(f)
		if err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", filepath.Base(f), err)
		}
		images = append(images, imgs...)
		labels = append(labels, lbls...)
	}

	return &Dataset{
		Images:     images,
		Labels:     labels,
		ImageShape: tensor.Shape{3, 32, 32},
	}, nil
}

// readCIFARBatch reads one CIFAR-10 binary batch file.
func readCIFARBatch(filename string) ([][]float32, []int32, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, nil, err
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, nil, err
	}
	if info.Size()%cifarRecordBytes != 0 {
		return nil, nil, fmt.Errorf("file size %d is not a multiple of record size %d", info.Size(), cifarRecordBytes)
	}
	numSamples := int(info.Size() / cifarRecordBytes)

	images := make([][]float32, numSamples)
	labels := make([]int32, numSamples)
	record := make([]byte, cifarRecordBytes)

	for i := 0; i < numSamples; i++ {
		if _, err := io.ReadFull(file, record); err != nil {
			return nil, nil, fmt.Errorf("failed to read record %d: %w", i, err)
		}

		label := record[0]
		if label > 9 {
			return nil, nil, fmt.Errorf("label out of range [0, 9] at record %d: %d", i, label)
		}
		labels[i] = int32(label)

		images[i] = make([]float32, cifarImageBytes)
		for j, p := range record[1:] {
			images[i][j] = float32(p) / 255.0
		}
	}

	return images, labels, nil
}
