package runner_test

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deepbench-ml/deepbench/internal/nn"
	"github.com/deepbench-ml/deepbench/internal/optim"
	"github.com/deepbench-ml/deepbench/internal/runner"
)

// writeMNISTFixture writes a tiny MNIST-format dataset under
// dir/mnist so the mnist test problems can load it.
func writeMNISTFixture(t *testing.T, dir string, numSamples int) {
	t.Helper()
	mnistDir := filepath.Join(dir, "mnist")
	require.NoError(t, os.MkdirAll(mnistDir, 0o755))

	write := func(imageName, labelName string) {
		var images bytes.Buffer
		binary.Write(&images, binary.BigEndian, uint32(2051))
		binary.Write(&images, binary.BigEndian, uint32(numSamples))
		binary.Write(&images, binary.BigEndian, uint32(28))
		binary.Write(&images, binary.BigEndian, uint32(28))
		for i := 0; i < numSamples; i++ {
			pixels := make([]byte, 784)
			for j := range pixels {
				pixels[j] = byte((i*31 + j) % 256)
			}
			images.Write(pixels)
		}
		require.NoError(t, os.WriteFile(filepath.Join(mnistDir, imageName), images.Bytes(), 0o644))

		var labels bytes.Buffer
		binary.Write(&labels, binary.BigEndian, uint32(2049))
		binary.Write(&labels, binary.BigEndian, uint32(numSamples))
		for i := 0; i < numSamples; i++ {
			labels.WriteByte(byte(i % 10))
		}
		require.NoError(t, os.WriteFile(filepath.Join(mnistDir, labelName), labels.Bytes(), 0o644))
	}

	write("train-images-idx3-ubyte", "train-labels-idx1-ubyte")
	write("t10k-images-idx3-ubyte", "t10k-labels-idx1-ubyte")
}

func sgdFactory(params []*nn.Parameter, lr float64, hp map[string]any) (optim.Optimizer, error) {
	return optim.NewSGD(params, optim.SGDConfig{LR: lr}), nil
}

func TestStandardRunner_EndToEnd(t *testing.T) {
	dataDir := t.TempDir()
	outputDir := t.TempDir()
	writeMNISTFixture(t, dataDir, 16)

	r := runner.NewStandardRunner("sgd", sgdFactory, nil, nil)
	out, err := r.Run(runner.Options{}, []string{
		"mnist_logreg",
		"--batch_size", "8",
		"--num_epochs", "2",
		"--learning_rate", "0.1",
		"--random_seed", "42",
		"--data_dir", dataDir,
		"--output_dir", outputDir,
		"--train_log_interval", "1",
	})
	require.NoError(t, err)

	// One evaluation before each epoch plus a final one.
	assert.Len(t, out.TrainLosses, 3)
	assert.Len(t, out.TestLosses, 3)
	assert.Len(t, out.TrainAccuracies, 3)
	assert.Len(t, out.TestAccuracies, 3)
	assert.NotEmpty(t, out.MinibatchTrainLosses)

	// 2 epochs x 2 batches, logged every step.
	assert.Len(t, out.MinibatchTrainLosses, 4)

	// The output file lands under testproblem/optimizer/run_folder.
	runDir := filepath.Join(outputDir, "mnist_logreg", "sgd",
		"num_epochs__2__batch_size__8__lr__1e-01")
	entries, err := os.ReadDir(runDir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Contains(t, entries[0].Name(), "random_seed__42__")

	// The file round-trips as JSON.
	raw, err := os.ReadFile(filepath.Join(runDir, entries[0].Name()))
	require.NoError(t, err)
	var decoded runner.Output
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, "mnist_logreg", decoded.TestProblem)
	assert.Equal(t, "sgd", decoded.Optimizer)
}

func TestStandardRunner_NoLogs(t *testing.T) {
	dataDir := t.TempDir()
	outputDir := t.TempDir()
	writeMNISTFixture(t, dataDir, 8)

	r := runner.NewStandardRunner("sgd", sgdFactory, nil, nil)
	_, err := r.Run(runner.Options{}, []string{
		"mnist_logreg",
		"--batch_size", "8",
		"--num_epochs", "1",
		"--learning_rate", "0.1",
		"--data_dir", dataDir,
		"--output_dir", outputDir,
		"--no_logs",
	})
	require.NoError(t, err)

	entries, err := os.ReadDir(outputDir)
	require.NoError(t, err)
	assert.Empty(t, entries, "no_logs must suppress output files")
}

func TestStandardRunner_SameSeedSameResult(t *testing.T) {
	dataDir := t.TempDir()
	writeMNISTFixture(t, dataDir, 16)

	run := func() *runner.Output {
		r := runner.NewStandardRunner("sgd", sgdFactory, nil, nil)
		out, err := r.Run(runner.Options{}, []string{
			"mnist_logreg",
			"--batch_size", "8",
			"--num_epochs", "2",
			"--learning_rate", "0.1",
			"--random_seed", "7",
			"--data_dir", dataDir,
			"--no_logs",
		})
		require.NoError(t, err)
		return out
	}

	a := run()
	b := run()
	assert.Equal(t, a.TrainLosses, b.TrainLosses)
	assert.Equal(t, a.TestLosses, b.TestLosses)
	assert.Equal(t, a.MinibatchTrainLosses, b.MinibatchTrainLosses)
}

func TestStandardRunner_UnknownTestProblem(t *testing.T) {
	r := runner.NewStandardRunner("sgd", sgdFactory, nil, nil)
	_, err := r.Run(runner.Options{}, []string{
		"imagenet_resnet50",
		"--batch_size", "8",
		"--num_epochs", "1",
		"--learning_rate", "0.1",
	})
	assert.Error(t, err)
}
