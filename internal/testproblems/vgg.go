package testproblems

import (
	"math/rand"

	"github.com/deepbench-ml/deepbench/internal/backend/cpu"
	"github.com/deepbench-ml/deepbench/internal/nn"
)

// vgg16Config lists the feature extractor layers of VGG16: output
// channel counts for 3x3 convolutions and "M" for 2x2 max pooling.
var vgg16Config = []int{64, 64, -1, 128, 128, -1, 256, 256, 256, -1, 512, 512, 512, -1, 512, 512, 512, -1}

const maxPoolMarker = -1

// netVGG builds a VGG-style convolutional network for small input
// images. Five pooling stages reduce a 32x32 input to 1x1, so the
// classifier sees 512 features. The classifier is two 4096-unit
// hidden layers with dropout followed by the output layer.
func netVGG(numOutputs, inChannels int, backend *cpu.Backend, rng *rand.Rand) *nn.Sequential {
	var layers []nn.Module

	channels := inChannels
	for _, c := range vgg16Config {
		if c == maxPoolMarker {
			layers = append(layers, nn.NewMaxPool2D(2, 2, backend))
			continue
		}
		layers = append(layers,
			nn.NewConv2D(channels, c, 3, 1, 1, backend, rng),
			nn.NewReLU(backend),
		)
		channels = c
	}

	layers = append(layers,
		nn.NewFlatten(),
		nn.NewLinear(512, 4096, backend, rng),
		nn.NewReLU(backend),
		nn.NewDropout(0.5, rng),
		nn.NewLinear(4096, 4096, backend, rng),
		nn.NewReLU(backend),
		nn.NewDropout(0.5, rng),
		nn.NewLinear(4096, numOutputs, backend, rng),
	)

	return nn.NewSequential(layers...)
}
