// Package testproblems defines the benchmark test problems: a dataset,
// a model, a loss function and an L2 regularization term, bundled
// behind a common interface so runners can train any problem the same
// way.
package testproblems

import (
	"math/rand"
	"strings"

	"github.com/deepbench-ml/deepbench/internal/datasets"
	"github.com/deepbench-ml/deepbench/internal/nn"
)

// TestProblem is a training task with a fixed model and dataset.
//
// SetUp must be called before any other method. TrainBatches reshuffles
// with the given rng on every call so each epoch sees a fresh
// permutation, while TrainEvalBatches and TestBatches keep the dataset
// order.
type TestProblem interface {
	Name() string
	BatchSize() int
	WeightDecay() float64
	SetUp(dataDir string, rng *rand.Rand) error
	TrainBatches(rng *rand.Rand) ([]*datasets.Batch, error)
	TrainEvalBatches() ([]*datasets.Batch, error)
	TestBatches() ([]*datasets.Batch, error)
	Model() *nn.Sequential
	LossFunction() *nn.CrossEntropyLoss
	RegularizationLoss() float32
	AddRegularizationGrad()
}

// base carries the state shared by all test problems.
type base struct {
	batchSize   int
	weightDecay float64
	model       *nn.Sequential
	loss        *nn.CrossEntropyLoss
	train       *datasets.Dataset
	trainEval   *datasets.Dataset
	test        *datasets.Dataset
}

// setData stores the train and test sets and carves a train eval subset
// off the front of the training data, sized to match the test set so
// train and test metrics are comparable at the same cost.
func (b *base) setData(train, test *datasets.Dataset) {
	b.train = train
	b.test = test
	b.trainEval, _ = train.Split(test.NumSamples())
}

func (b *base) BatchSize() int {
	return b.batchSize
}

func (b *base) WeightDecay() float64 {
	return b.weightDecay
}

func (b *base) Model() *nn.Sequential {
	return b.model
}

func (b *base) LossFunction() *nn.CrossEntropyLoss {
	return b.loss
}

// TrainBatches shuffles with rng before batching. A nil rng keeps the
// dataset order.
func (b *base) TrainBatches(rng *rand.Rand) ([]*datasets.Batch, error) {
	return datasets.CreateBatches(b.train, b.batchSize, rng != nil, rng)
}

// TrainEvalBatches batches the train eval subset in dataset order.
func (b *base) TrainEvalBatches() ([]*datasets.Batch, error) {
	return datasets.CreateBatches(b.trainEval, b.batchSize, false, nil)
}

func (b *base) TestBatches() ([]*datasets.Batch, error) {
	return datasets.CreateBatches(b.test, b.batchSize, false, nil)
}

// RegularizationLoss computes the L2 penalty over all non-bias
// parameters:
//
//	weight_decay * 0.5 * sum(||w||^2)
//
// Bias parameters are identified by "bias" in the parameter name and
// stay unpenalized.
func (b *base) RegularizationLoss() float32 {
	var sumSquares float64
	for _, param := range b.model.Parameters() {
		if strings.Contains(param.Name(), "bias") {
			continue
		}
		for _, w := range param.Data().Data() {
			sumSquares += float64(w) * float64(w)
		}
	}
	return float32(b.weightDecay * 0.5 * sumSquares)
}

// AddRegularizationGrad accumulates the gradient of RegularizationLoss
// into each non-bias parameter: d/dw of wd*0.5*||w||^2 is wd*w.
func (b *base) AddRegularizationGrad() {
	if b.weightDecay == 0 {
		return
	}
	wd := float32(b.weightDecay)
	for _, param := range b.model.Parameters() {
		if strings.Contains(param.Name(), "bias") {
			continue
		}
		grad := param.Grad()
		if grad == nil {
			continue
		}
		gradData := grad.Data()
		for i, w := range param.Data().Data() {
			gradData[i] += wd * w
		}
	}
}
