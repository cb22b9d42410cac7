package testproblems

import (
	"fmt"
	"math/rand"
	"path/filepath"

	"github.com/deepbench-ml/deepbench/internal/backend/cpu"
	"github.com/deepbench-ml/deepbench/internal/datasets"
	"github.com/deepbench-ml/deepbench/internal/nn"
)

// MNISTMLP is a four-layer fully-connected network on MNIST with
// hidden sizes 1000, 500 and 100.
type MNISTMLP struct {
	base
}

// NewMNISTMLP creates the test problem. A nil weightDecay disables
// regularization, which is the default for this problem.
func NewMNISTMLP(batchSize int, weightDecay *float64) *MNISTMLP {
	wd := 0.0
	if weightDecay != nil {
		wd = *weightDecay
	}
	return &MNISTMLP{base{
		batchSize:   batchSize,
		weightDecay: wd,
	}}
}

func (p *MNISTMLP) Name() string {
	return "mnist_mlp"
}

// SetUp loads MNIST from dataDir and initializes the network.
func (p *MNISTMLP) SetUp(dataDir string, rng *rand.Rand) error {
	mnistDir := filepath.Join(dataDir, "mnist")

	train, err := datasets.LoadMNIST(mnistDir, true)
	if err != nil {
		return fmt.Errorf("mnist_mlp: %w", err)
	}
	test, err := datasets.LoadMNIST(mnistDir, false)
	if err != nil {
		return fmt.Errorf("mnist_mlp: %w", err)
	}

	p.setData(train, test)

	backend := cpu.New()
	p.model = nn.NewSequential(
		nn.NewLinear(784, 1000, backend, rng),
		nn.NewReLU(backend),
		nn.NewLinear(1000, 500, backend, rng),
		nn.NewReLU(backend),
		nn.NewLinear(500, 100, backend, rng),
		nn.NewReLU(backend),
		nn.NewLinear(100, 10, backend, rng),
	)
	p.loss = nn.NewCrossEntropyLoss()
	return nil
}
