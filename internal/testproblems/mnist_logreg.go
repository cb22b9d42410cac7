package testproblems

import (
	"fmt"
	"math/rand"
	"path/filepath"

	"github.com/deepbench-ml/deepbench/internal/backend/cpu"
	"github.com/deepbench-ml/deepbench/internal/datasets"
	"github.com/deepbench-ml/deepbench/internal/nn"
)

// MNISTLogReg is multinomial logistic regression on MNIST, a single
// linear layer from the 784 pixels to the 10 classes.
type MNISTLogReg struct {
	base
}

// NewMNISTLogReg creates the test problem. A nil weightDecay disables
// regularization, which is the default for this problem.
func NewMNISTLogReg(batchSize int, weightDecay *float64) *MNISTLogReg {
	wd := 0.0
	if weightDecay != nil {
		wd = *weightDecay
	}
	return &MNISTLogReg{base{
		batchSize:   batchSize,
		weightDecay: wd,
	}}
}

func (p *MNISTLogReg) Name() string {
	return "mnist_logreg"
}

// SetUp loads MNIST from dataDir and initializes the model.
func (p *MNISTLogReg) SetUp(dataDir string, rng *rand.Rand) error {
	mnistDir := filepath.Join(dataDir, "mnist")

	train, err := datasets.LoadMNIST(mnistDir, true)
	if err != nil {
		return fmt.Errorf("mnist_logreg: %w", err)
	}
	test, err := datasets.LoadMNIST(mnistDir, false)
	if err != nil {
		return fmt.Errorf("mnist_logreg: %w", err)
	}

	p.setData(train, test)
	p.model = nn.NewSequential(
		nn.NewLinear(784, 10, cpu.New(), rng),
	)
	p.loss = nn.NewCrossEntropyLoss()
	return nil
}
