package testproblems

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/deepbench-ml/deepbench/internal/backend/cpu"
)

func TestNetVGG_ParameterCount(t *testing.T) {
	model := netVGG(10, 3, cpu.New(), rand.New(rand.NewSource(1)))

	// 13 convolutional layers and 3 linear layers, each with a weight
	// and a bias.
	if got := len(model.Parameters()); got != 32 {
		t.Errorf("parameter count: got %d, want 32", got)
	}
}

func TestNetVGG_BiasNaming(t *testing.T) {
	model := netVGG(10, 3, cpu.New(), rand.New(rand.NewSource(1)))

	// Every second parameter is a bias; the name convention drives
	// the L2 exclusion.
	var biases int
	for _, p := range model.Parameters() {
		if strings.Contains(p.Name(), "bias") {
			biases++
		}
	}
	if biases != 16 {
		t.Errorf("bias parameter count: got %d, want 16", biases)
	}
}
