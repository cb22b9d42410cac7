package nn

import (
	"fmt"
	"math/rand"

	"github.com/deepbench-ml/deepbench/internal/backend/cpu"
	"github.com/deepbench-ml/deepbench/internal/tensor"
)

// Linear implements a fully connected (dense) layer.
//
// Performs the transformation: y = x @ W.T + b
// where:
//   - x is the input tensor with shape [batch_size, in_features]
//   - W is the weight matrix with shape [out_features, in_features]
//   - b is the bias vector with shape [out_features]
//
// Weights are initialized with Xavier/Glorot values, biases with zeros.
type Linear struct {
	inFeatures  int
	outFeatures int
	weight      *Parameter // [out_features, in_features]
	bias        *Parameter // [out_features]
	backend     *cpu.Backend

	lastInput *tensor.Tensor // cached by Forward for the backward pass
}

// NewLinear creates a new Linear layer.
func NewLinear(inFeatures, outFeatures int, backend *cpu.Backend, rng *rand.Rand) *Linear {
	weight := Xavier(inFeatures, outFeatures, tensor.Shape{outFeatures, inFeatures}, rng)
	bias := tensor.Zeros(tensor.Shape{outFeatures})

	return &Linear{
		inFeatures:  inFeatures,
		outFeatures: outFeatures,
		weight:      NewParameter("weight", weight),
		bias:        NewParameter("bias", bias),
		backend:     backend,
	}
}

// Forward computes y = x @ W.T + b.
//
// Input shape: [batch_size, in_features]
// Output shape: [batch_size, out_features]
func (l *Linear) Forward(input *tensor.Tensor) *tensor.Tensor {
	inputShape := input.Shape()
	if len(inputShape) != 2 {
		panic(fmt.Sprintf("linear: expected 2D input [batch, features], got shape %v", inputShape))
	}
	if inputShape[1] != l.inFeatures {
		panic(fmt.Sprintf("linear: expected input with %d features, got %d", l.inFeatures, inputShape[1]))
	}

	l.lastInput = input

	wT := l.backend.Transpose2D(l.weight.Data()) // [in_features, out_features]
	output := l.backend.MatMul(input, wT)        // [batch_size, out_features]

	batchSize := inputShape[0]
	outData := output.Data()
	biasData := l.bias.Data().Data()
	for n := 0; n < batchSize; n++ {
		row := outData[n*l.outFeatures : (n+1)*l.outFeatures]
		for j := range row {
			row[j] += biasData[j]
		}
	}
	return output
}

// Backward accumulates weight and bias gradients and returns the gradient
// w.r.t. the input.
//
//	gradW = grad.T @ x      [out_features, in_features]
//	gradB = sum over batch  [out_features]
//	gradX = grad @ W        [batch_size, in_features]
func (l *Linear) Backward(grad *tensor.Tensor) *tensor.Tensor {
	if l.lastInput == nil {
		panic("linear: Backward called before Forward")
	}

	gradT := l.backend.Transpose2D(grad)               // [out_features, batch_size]
	l.weight.AccumulateGrad(l.backend.MatMul(gradT, l.lastInput))

	batchSize := grad.Shape()[0]
	biasGrad := tensor.New(tensor.Shape{l.outFeatures})
	biasGradData := biasGrad.Data()
	gradData := grad.Data()
	for n := 0; n < batchSize; n++ {
		row := gradData[n*l.outFeatures : (n+1)*l.outFeatures]
		for j := range row {
			biasGradData[j] += row[j]
		}
	}
	l.bias.AccumulateGrad(biasGrad)

	return l.backend.MatMul(grad, l.weight.Data()) // [batch_size, in_features]
}

// Parameters returns the trainable parameters of this layer.
func (l *Linear) Parameters() []*Parameter {
	return []*Parameter{l.weight, l.bias}
}

// InFeatures returns the number of input features.
func (l *Linear) InFeatures() int {
	return l.inFeatures
}

// OutFeatures returns the number of output features.
func (l *Linear) OutFeatures() int {
	return l.outFeatures
}
