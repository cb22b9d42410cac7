package testproblems

import (
	"fmt"
	"sort"
)

// Factory creates a test problem with the given batch size. A nil
// weightDecay means the problem's own default applies.
type Factory func(batchSize int, weightDecay *float64) TestProblem

var registry = map[string]Factory{
	"cifar10_vgg16": func(bs int, wd *float64) TestProblem { return NewCIFAR10VGG16(bs, wd) },
	"cifar10_3c3d":  func(bs int, wd *float64) TestProblem { return NewCIFAR103C3D(bs, wd) },
	"mnist_mlp":     func(bs int, wd *float64) TestProblem { return NewMNISTMLP(bs, wd) },
	"mnist_logreg":  func(bs int, wd *float64) TestProblem { return NewMNISTLogReg(bs, wd) },
}

// New creates the named test problem.
func New(name string, batchSize int, weightDecay *float64) (TestProblem, error) {
	factory, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown test problem %q (available: %v)", name, Names())
	}
	return factory(batchSize, weightDecay), nil
}

// Names returns the registered test problem names in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
