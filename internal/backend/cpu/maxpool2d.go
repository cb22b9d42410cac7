package cpu

import (
	"fmt"
	"math"

	"github.com/deepbench-ml/deepbench/internal/parallel"
	"github.com/deepbench-ml/deepbench/internal/tensor"
)

// MaxPool2D performs 2D max pooling.
//
// Input shape:  [batch, channels, height, width]
// Output shape: [batch, channels, out_height, out_width]
//
// Where:
//
//	out_height = (height - kernelSize) / stride + 1
//	out_width = (width - kernelSize) / stride + 1
//
// The second return value records, for each output position, the flat index
// into the input of the selected maximum; MaxPool2DBackward routes gradients
// through these indices.
func (b *Backend) MaxPool2D(input *tensor.Tensor, kernelSize, stride int) (*tensor.Tensor, []int) {
	inputShape := input.Shape()
	if len(inputShape) != 4 {
		panic(fmt.Sprintf("maxpool2d: expected 4D input [N,C,H,W], got %dD", len(inputShape)))
	}

	N := inputShape[0]
	C := inputShape[1]
	H := inputShape[2]
	W := inputShape[3]

	if kernelSize <= 0 || stride <= 0 {
		panic(fmt.Sprintf("maxpool2d: invalid kernel size %d / stride %d", kernelSize, stride))
	}
	if kernelSize > H || kernelSize > W {
		panic(fmt.Sprintf("maxpool2d: kernel size %d too large for input %dx%d", kernelSize, H, W))
	}

	HOut := (H-kernelSize)/stride + 1
	WOut := (W-kernelSize)/stride + 1

	output := tensor.New(tensor.Shape{N, C, HOut, WOut})
	inputData := input.Data()
	outputData := output.Data()
	maxIndices := make([]int, N*C*HOut*WOut)

	parallel.ForBatch(N, C, func(n, c int) {
		channelOffset := (n*C + c) * H * W
		channelData := inputData[channelOffset : channelOffset+H*W]
		outOffset := (n*C + c) * HOut * WOut

		for outH := 0; outH < HOut; outH++ {
			hStart := outH * stride
			for outW := 0; outW < WOut; outW++ {
				wStart := outW * stride

				maxVal := float32(math.Inf(-1))
				maxIdx := 0
				for kh := 0; kh < kernelSize; kh++ {
					rowStart := (hStart + kh) * W
					for kw := 0; kw < kernelSize; kw++ {
						idx := rowStart + wStart + kw
						if v := channelData[idx]; v > maxVal {
							maxVal = v
							maxIdx = idx
						}
					}
				}

				outIdx := outOffset + outH*WOut + outW
				outputData[outIdx] = maxVal
				maxIndices[outIdx] = channelOffset + maxIdx
			}
		}
	}, b.par)

	return output, maxIndices
}

// MaxPool2DBackward scatters output gradients to the input positions that
// held the window maxima during the forward pass.
func (b *Backend) MaxPool2DBackward(inputShape tensor.Shape, grad *tensor.Tensor, maxIndices []int) *tensor.Tensor {
	gradData := grad.Data()
	if len(maxIndices) != len(gradData) {
		panic(fmt.Sprintf("maxpool2d backward: maxIndices length %d != grad length %d",
			len(maxIndices), len(gradData)))
	}

	inputGrad := tensor.New(inputShape)
	inputGradData := inputGrad.Data()

	// Windows can overlap when stride < kernelSize, so gradients accumulate.
	for i, idx := range maxIndices {
		inputGradData[idx] += gradData[i]
	}
	return inputGrad
}
