package nn

import (
	"fmt"
	"math/rand"

	"github.com/deepbench-ml/deepbench/internal/backend/cpu"
	"github.com/deepbench-ml/deepbench/internal/tensor"
)

// Conv2D is a 2D convolutional layer.
//
// Input shape:  [batch, in_channels, height, width]
// Weight shape: [out_channels, in_channels, kernel_h, kernel_w]
// Bias shape:   [out_channels]
// Output shape: [batch, out_channels, out_h, out_w]
//
// Where:
//
//	out_h = (height + 2*padding - kernel_h) / stride + 1
//	out_w = (width + 2*padding - kernel_w) / stride + 1
type Conv2D struct {
	inChannels  int
	outChannels int
	kernelSize  int
	stride      int
	padding     int

	weight  *Parameter
	bias    *Parameter
	backend *cpu.Backend

	lastInput *tensor.Tensor
}

// NewConv2D creates a new square-kernel 2D convolutional layer with Xavier
// initialized weights and zero biases.
func NewConv2D(inChannels, outChannels, kernelSize, stride, padding int, backend *cpu.Backend, rng *rand.Rand) *Conv2D {
	if inChannels <= 0 || outChannels <= 0 {
		panic(fmt.Sprintf("conv2d: invalid channels in=%d, out=%d", inChannels, outChannels))
	}
	if kernelSize <= 0 || stride <= 0 || padding < 0 {
		panic(fmt.Sprintf("conv2d: invalid kernel=%d, stride=%d, padding=%d", kernelSize, stride, padding))
	}

	// fan_in = in_channels * k * k, fan_out = out_channels * k * k
	fanIn := inChannels * kernelSize * kernelSize
	fanOut := outChannels * kernelSize * kernelSize
	weightShape := tensor.Shape{outChannels, inChannels, kernelSize, kernelSize}
	weight := Xavier(fanIn, fanOut, weightShape, rng)

	return &Conv2D{
		inChannels:  inChannels,
		outChannels: outChannels,
		kernelSize:  kernelSize,
		stride:      stride,
		padding:     padding,
		weight:      NewParameter("conv2d.weight", weight),
		bias:        NewParameter("conv2d.bias", tensor.Zeros(tensor.Shape{outChannels})),
		backend:     backend,
	}
}

// Forward performs the convolution and adds the per-channel bias.
func (c *Conv2D) Forward(input *tensor.Tensor) *tensor.Tensor {
	inputShape := input.Shape()
	if len(inputShape) != 4 {
		panic(fmt.Sprintf("conv2d: expected 4D input [N,C,H,W], got %dD", len(inputShape)))
	}
	if inputShape[1] != c.inChannels {
		panic(fmt.Sprintf("conv2d: input channels %d != expected %d", inputShape[1], c.inChannels))
	}

	c.lastInput = input
	output := c.backend.Conv2D(input, c.weight.Data(), c.stride, c.padding)

	outShape := output.Shape()
	plane := outShape[2] * outShape[3]
	outData := output.Data()
	biasData := c.bias.Data().Data()
	for n := 0; n < outShape[0]; n++ {
		for o := 0; o < c.outChannels; o++ {
			b := biasData[o]
			slab := outData[(n*c.outChannels+o)*plane : (n*c.outChannels+o+1)*plane]
			for i := range slab {
				slab[i] += b
			}
		}
	}
	return output
}

// Backward accumulates kernel and bias gradients and returns the gradient
// w.r.t. the input.
func (c *Conv2D) Backward(grad *tensor.Tensor) *tensor.Tensor {
	if c.lastInput == nil {
		panic("conv2d: Backward called before Forward")
	}

	gradShape := grad.Shape()
	plane := gradShape[2] * gradShape[3]
	gradData := grad.Data()

	biasGrad := tensor.New(tensor.Shape{c.outChannels})
	biasGradData := biasGrad.Data()
	for n := 0; n < gradShape[0]; n++ {
		for o := 0; o < c.outChannels; o++ {
			slab := gradData[(n*c.outChannels+o)*plane : (n*c.outChannels+o+1)*plane]
			sum := float32(0)
			for _, v := range slab {
				sum += v
			}
			biasGradData[o] += sum
		}
	}
	c.bias.AccumulateGrad(biasGrad)

	c.weight.AccumulateGrad(
		c.backend.Conv2DKernelBackward(c.lastInput, c.weight.Data(), grad, c.stride, c.padding))

	return c.backend.Conv2DInputBackward(c.lastInput, c.weight.Data(), grad, c.stride, c.padding)
}

// Parameters returns all trainable parameters.
func (c *Conv2D) Parameters() []*Parameter {
	return []*Parameter{c.weight, c.bias}
}

// String returns a string representation of the layer.
func (c *Conv2D) String() string {
	return fmt.Sprintf("Conv2D(in_channels=%d, out_channels=%d, kernel_size=%d, stride=%d, padding=%d)",
		c.inChannels, c.outChannels, c.kernelSize, c.stride, c.padding)
}
