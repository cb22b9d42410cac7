package nn

import (
	"fmt"
	"math"

	"github.com/deepbench-ml/deepbench/internal/tensor"
)

// CrossEntropyLoss computes cross-entropy loss for multi-class classification.
//
// The implementation uses the LogSoftmax + NLLLoss decomposition for
// numerical stability:
//
//	Loss = mean over batch of -log_probs[target]
//	where log_probs = LogSoftmax(logits)
//
// Gradient (Backward):
//
//	dL/dlogits = (Softmax(logits) - y_one_hot) / batch_size
//
// Forward expects raw logits (unnormalized scores); the log-sum-exp trick
// prevents overflow for large logits.
type CrossEntropyLoss struct {
	probs      []float32 // softmax probabilities cached for Backward
	targets    []int32
	batchSize  int
	numClasses int
}

// NewCrossEntropyLoss creates a new cross-entropy loss function.
func NewCrossEntropyLoss() *CrossEntropyLoss {
	return &CrossEntropyLoss{}
}

// Forward computes the mean cross-entropy loss over the batch.
//
// logits: [batch_size, num_classes], targets: class indices, one per sample.
func (c *CrossEntropyLoss) Forward(logits *tensor.Tensor, targets []int32) float32 {
	shape := logits.Shape()
	if len(shape) != 2 {
		panic("cross entropy: logits must be 2D [batch_size, num_classes]")
	}

	batchSize := shape[0]
	numClasses := shape[1]
	if len(targets) != batchSize {
		panic(fmt.Sprintf("cross entropy: %d targets for batch size %d", len(targets), batchSize))
	}

	logitsData := logits.Data()
	c.probs = make([]float32, batchSize*numClasses)
	c.targets = targets
	c.batchSize = batchSize
	c.numClasses = numClasses

	totalLoss := float32(0)
	for b := 0; b < batchSize; b++ {
		sampleLogits := logitsData[b*numClasses : (b+1)*numClasses]
		logProbs := logSoftmax(sampleLogits)

		target := int(targets[b])
		if target < 0 || target >= numClasses {
			panic(fmt.Sprintf("cross entropy: target %d out of range [0, %d)", target, numClasses))
		}
		totalLoss += -logProbs[target]

		sampleProbs := c.probs[b*numClasses : (b+1)*numClasses]
		for i, lp := range logProbs {
			sampleProbs[i] = float32(math.Exp(float64(lp)))
		}
	}

	return totalLoss / float32(batchSize)
}

// Backward returns the gradient of the loss w.r.t. the logits, averaged over
// the batch.
func (c *CrossEntropyLoss) Backward() *tensor.Tensor {
	if c.probs == nil {
		panic("cross entropy: Backward called before Forward")
	}

	grad := tensor.New(tensor.Shape{c.batchSize, c.numClasses})
	gradData := grad.Data()

	for b := 0; b < c.batchSize; b++ {
		target := int(c.targets[b])
		for i := 0; i < c.numClasses; i++ {
			g := c.probs[b*c.numClasses+i]
			if i == target {
				g -= 1.0
			}
			gradData[b*c.numClasses+i] = g / float32(c.batchSize)
		}
	}
	return grad
}

// logSoftmax computes log(softmax(z)) in a numerically stable way:
//
//	LogSoftmax(z)[i] = z[i] - (max(z) + log(sum exp(z - max(z))))
func logSoftmax(z []float32) []float32 {
	n := len(z)
	result := make([]float32, n)

	maxZ := z[0]
	for i := 1; i < n; i++ {
		if z[i] > maxZ {
			maxZ = z[i]
		}
	}

	sumExp := float32(0)
	for i := 0; i < n; i++ {
		sumExp += float32(math.Exp(float64(z[i] - maxZ)))
	}
	logSumExp := maxZ + float32(math.Log(float64(sumExp)))

	for i := 0; i < n; i++ {
		result[i] = z[i] - logSumExp
	}
	return result
}

// argmax returns the index of the maximum value in the slice.
func argmax(z []float32) int {
	maxIdx := 0
	maxVal := z[0]
	for i := 1; i < len(z); i++ {
		if z[i] > maxVal {
			maxVal = z[i]
			maxIdx = i
		}
	}
	return maxIdx
}

// Accuracy computes classification accuracy for a batch.
//
// logits: [batch_size, num_classes], targets: class indices.
// Returns a value between 0 and 1.
func Accuracy(logits *tensor.Tensor, targets []int32) float32 {
	shape := logits.Shape()
	batchSize := shape[0]
	numClasses := shape[1]
	logitsData := logits.Data()

	correct := 0
	for b := 0; b < batchSize; b++ {
		sampleLogits := logitsData[b*numClasses : (b+1)*numClasses]
		if argmax(sampleLogits) == int(targets[b]) {
			correct++
		}
	}
	return float32(correct) / float32(batchSize)
}
