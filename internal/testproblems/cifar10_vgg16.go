package testproblems

import (
	"fmt"
	"math/rand"
	"path/filepath"

	"github.com/deepbench-ml/deepbench/internal/backend/cpu"
	"github.com/deepbench-ml/deepbench/internal/datasets"
	"github.com/deepbench-ml/deepbench/internal/nn"
)

// CIFAR10VGG16 is the VGG16 architecture trained on CIFAR-10 with
// cross-entropy loss and L2 regularization on the non-bias parameters.
type CIFAR10VGG16 struct {
	base
}

// NewCIFAR10VGG16 creates the test problem. A nil weightDecay selects
// the default of 5e-4.
func NewCIFAR10VGG16(batchSize int, weightDecay *float64) *CIFAR10VGG16 {
	wd := 5e-4
	if weightDecay != nil {
		wd = *weightDecay
	}
	return &CIFAR10VGG16{base{
		batchSize:   batchSize,
		weightDecay: wd,
	}}
}

func (p *CIFAR10VGG16) Name() string {
	return "cifar10_vgg16"
}

// SetUp loads CIFAR-10 from dataDir and initializes the network.
func (p *CIFAR10VGG16) SetUp(dataDir string, rng *rand.Rand) error {
	cifarDir := filepath.Join(dataDir, "cifar10")

	train, err := datasets.LoadCIFAR10(cifarDir, true)
	if err != nil {
		return fmt.Errorf("cifar10_vgg16: %w", err)
	}
	test, err := datasets.LoadCIFAR10(cifarDir, false)
	if err != nil {
		return fmt.Errorf("cifar10_vgg16: %w", err)
	}

	p.setData(train, test)
	p.model = netVGG(10, 3, cpu.New(), rng)
	p.loss = nn.NewCrossEntropyLoss()
	return nil
}
