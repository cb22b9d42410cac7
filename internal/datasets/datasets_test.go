package datasets_test

import (
	"bytes"
	"encoding/binary"
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/deepbench-ml/deepbench/internal/datasets"
	"github.com/deepbench-ml/deepbench/internal/tensor"
)

// writeIDXFixture writes a tiny MNIST-format dataset into dir.
func writeIDXFixture(t *testing.T, dir string, train bool, numSamples int) {
	t.Helper()

	imageName := "t10k-images-idx3-ubyte"
	labelName := "t10k-labels-idx1-ubyte"
	if train {
		imageName = "train-images-idx3-ubyte"
		labelName = "train-labels-idx1-ubyte"
	}

	var images bytes.Buffer
	binary.Write(&images, binary.BigEndian, uint32(2051))
	binary.Write(&images, binary.BigEndian, uint32(numSamples))
	binary.Write(&images, binary.BigEndian, uint32(28))
	binary.Write(&images, binary.BigEndian, uint32(28))
	for i := 0; i < numSamples; i++ {
		pixels := make([]byte, 784)
		for j := range pixels {
			pixels[j] = byte((i + j) % 256)
		}
		images.Write(pixels)
	}
	if err := os.WriteFile(filepath.Join(dir, imageName), images.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}

	var labels bytes.Buffer
	binary.Write(&labels, binary.BigEndian, uint32(2049))
	binary.Write(&labels, binary.BigEndian, uint32(numSamples))
	for i := 0; i < numSamples; i++ {
		labels.WriteByte(byte(i % 10))
	}
	if err := os.WriteFile(filepath.Join(dir, labelName), labels.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}
}

// writeCIFARFixture writes a tiny CIFAR-10-format batch file.
func writeCIFARFixture(t *testing.T, path string, numSamples int) {
	t.Helper()

	var buf bytes.Buffer
	for i := 0; i < numSamples; i++ {
		buf.WriteByte(byte(i % 10))
		pixels := make([]byte, 3*32*32)
		for j := range pixels {
			pixels[j] = byte((i * 7) % 256)
		}
		buf.Write(pixels)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestLoadMNIST(t *testing.T) {
	dir := t.TempDir()
	writeIDXFixture(t, dir, false, 5)

	data, err := datasets.LoadMNIST(dir, false)
	if err != nil {
		t.Fatalf("LoadMNIST: %v", err)
	}

	if data.NumSamples() != 5 {
		t.Errorf("samples: got %d, want 5", data.NumSamples())
	}
	if !data.ImageShape.Equal(tensor.Shape{784}) {
		t.Errorf("image shape: got %v, want [784]", data.ImageShape)
	}
	if data.Labels[3] != 3 {
		t.Errorf("label 3: got %d, want 3", data.Labels[3])
	}
	// Pixel values normalized to [0, 1].
	for _, v := range data.Images[0] {
		if v < 0 || v > 1 {
			t.Fatalf("pixel out of range: %f", v)
		}
	}
	if err := data.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestLoadMNIST_MissingFiles(t *testing.T) {
	_, err := datasets.LoadMNIST(t.TempDir(), true)
	if err == nil {
		t.Fatal("expected error for missing files")
	}
}

func TestLoadCIFAR10(t *testing.T) {
	dir := t.TempDir()
	writeCIFARFixture(t, filepath.Join(dir, "test_batch.bin"), 4)

	data, err := datasets.LoadCIFAR10(dir, false)
	if err != nil {
		t.Fatalf("LoadCIFAR10: %v", err)
	}

	if data.NumSamples() != 4 {
		t.Errorf("samples: got %d, want 4", data.NumSamples())
	}
	if !data.ImageShape.Equal(tensor.Shape{3, 32, 32}) {
		t.Errorf("image shape: got %v, want [3 32 32]", data.ImageShape)
	}
	if data.Labels[2] != 2 {
		t.Errorf("label 2: got %d, want 2", data.Labels[2])
	}
}

func TestLoadCIFAR10_TrainNeedsAllBatches(t *testing.T) {
	dir := t.TempDir()
	writeCIFARFixture(t, filepath.Join(dir, "data_batch_1.bin"), 2)

	// Batches 2-5 are missing.
	_, err := datasets.LoadCIFAR10(dir, true)
	if err == nil {
		t.Fatal("expected error for missing training batches")
	}
}

func TestLoadCIFAR10_TruncatedFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test_batch.bin")
	if err := os.WriteFile(path, make([]byte, 100), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := datasets.LoadCIFAR10(dir, false)
	if err == nil {
		t.Fatal("expected error for truncated file")
	}
}

func smallDataset(numSamples int) *datasets.Dataset {
	data := &datasets.Dataset{ImageShape: tensor.Shape{4}}
	for i := 0; i < numSamples; i++ {
		data.Images = append(data.Images, []float32{float32(i), 0, 0, 0})
		data.Labels = append(data.Labels, int32(i%3))
	}
	return data
}

func TestCreateBatches_Sizes(t *testing.T) {
	batches, err := datasets.CreateBatches(smallDataset(10), 4, false, nil)
	if err != nil {
		t.Fatalf("CreateBatches: %v", err)
	}

	if len(batches) != 3 {
		t.Fatalf("batch count: got %d, want 3", len(batches))
	}
	wantSizes := []int{4, 4, 2}
	for i, b := range batches {
		if b.Size != wantSizes[i] {
			t.Errorf("batch %d size: got %d, want %d", i, b.Size, wantSizes[i])
		}
		if !b.Images.Shape().Equal(tensor.Shape{wantSizes[i], 4}) {
			t.Errorf("batch %d image shape: got %v", i, b.Images.Shape())
		}
	}
}

func TestCreateBatches_ShuffleDeterministic(t *testing.T) {
	data := smallDataset(20)

	a, err := datasets.CreateBatches(data, 5, true, rand.New(rand.NewSource(42)))
	if err != nil {
		t.Fatal(err)
	}
	b, err := datasets.CreateBatches(data, 5, true, rand.New(rand.NewSource(42)))
	if err != nil {
		t.Fatal(err)
	}

	for i := range a {
		for j := range a[i].Labels {
			if a[i].Labels[j] != b[i].Labels[j] {
				t.Fatalf("same seed produced different order at batch %d index %d", i, j)
			}
		}
	}
}

func TestSplit(t *testing.T) {
	head, tail := smallDataset(10).Split(3)

	if head.NumSamples() != 3 || tail.NumSamples() != 7 {
		t.Fatalf("split sizes: got %d/%d, want 3/7", head.NumSamples(), tail.NumSamples())
	}
	if head.Images[0][0] != 0 || tail.Images[0][0] != 3 {
		t.Errorf("split boundary: head[0]=%v, tail[0]=%v", head.Images[0][0], tail.Images[0][0])
	}
	if !head.ImageShape.Equal(tensor.Shape{4}) {
		t.Errorf("head image shape: got %v", head.ImageShape)
	}
}

func TestSplit_ClampsToDatasetSize(t *testing.T) {
	head, tail := smallDataset(4).Split(10)
	if head.NumSamples() != 4 || tail.NumSamples() != 0 {
		t.Errorf("got %d/%d, want 4/0", head.NumSamples(), tail.NumSamples())
	}
}

func TestCreateBatches_InvalidBatchSize(t *testing.T) {
	if _, err := datasets.CreateBatches(smallDataset(4), 0, false, nil); err == nil {
		t.Error("batch size 0 accepted")
	}
}
