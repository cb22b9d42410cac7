package testproblems

import (
	"fmt"
	"math/rand"
	"path/filepath"

	"github.com/deepbench-ml/deepbench/internal/backend/cpu"
	"github.com/deepbench-ml/deepbench/internal/datasets"
	"github.com/deepbench-ml/deepbench/internal/nn"
)

// CIFAR103C3D is a vanilla CNN on CIFAR-10: three convolutional layers
// (64, 96 and 128 channels) each followed by max pooling, then three
// dense layers (512, 256 and the 10 outputs).
type CIFAR103C3D struct {
	base
}

// NewCIFAR103C3D creates the test problem. A nil weightDecay selects
// the default of 0.002.
func NewCIFAR103C3D(batchSize int, weightDecay *float64) *CIFAR103C3D {
	wd := 0.002
	if weightDecay != nil {
		wd = *weightDecay
	}
	return &CIFAR103C3D{base{
		batchSize:   batchSize,
		weightDecay: wd,
	}}
}

func (p *CIFAR103C3D) Name() string {
	return "cifar10_3c3d"
}

// SetUp loads CIFAR-10 from dataDir and initializes the network.
func (p *CIFAR103C3D) SetUp(dataDir string, rng *rand.Rand) error {
	cifarDir := filepath.Join(dataDir, "cifar10")

	train, err := datasets.LoadCIFAR10(cifarDir, true)
	if err != nil {
		return fmt.Errorf("cifar10_3c3d: %w", err)
	}
	test, err := datasets.LoadCIFAR10(cifarDir, false)
	if err != nil {
		return fmt.Errorf("cifar10_3c3d: %w", err)
	}

	p.setData(train, test)

	backend := cpu.New()

	// Spatial sizes with 3x3 stride-2 pooling: 32 -> 15 -> 7 -> 3.
	p.model = nn.NewSequential(
		nn.NewConv2D(3, 64, 5, 1, 2, backend, rng),
		nn.NewReLU(backend),
		nn.NewMaxPool2D(3, 2, backend),
		nn.NewConv2D(64, 96, 3, 1, 1, backend, rng),
		nn.NewReLU(backend),
		nn.NewMaxPool2D(3, 2, backend),
		nn.NewConv2D(96, 128, 3, 1, 1, backend, rng),
		nn.NewReLU(backend),
		nn.NewMaxPool2D(3, 2, backend),
		nn.NewFlatten(),
		nn.NewLinear(128*3*3, 512, backend, rng),
		nn.NewReLU(backend),
		nn.NewLinear(512, 256, backend, rng),
		nn.NewReLU(backend),
		nn.NewLinear(256, 10, backend, rng),
	)
	p.loss = nn.NewCrossEntropyLoss()
	return nil
}
