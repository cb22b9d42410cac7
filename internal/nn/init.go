package nn

import (
	"math"
	"math/rand"

	"github.com/deepbench-ml/deepbench/internal/tensor"
)

// Xavier initializes a weight tensor with Xavier/Glorot uniform values:
// U(-sqrt(6/(fan_in + fan_out)), sqrt(6/(fan_in + fan_out))).
//
// This initialization helps maintain the variance of activations across
// layers. The caller supplies the RNG so runs are reproducible from the
// benchmark seed.
func Xavier(fanIn, fanOut int, shape tensor.Shape, rng *rand.Rand) *tensor.Tensor {
	bound := math.Sqrt(6.0 / float64(fanIn+fanOut))

	t := tensor.New(shape)
	data := t.Data()
	for i := range data {
		data[i] = float32((rng.Float64()*2.0 - 1.0) * bound)
	}
	return t
}
