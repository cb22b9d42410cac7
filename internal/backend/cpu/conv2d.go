package cpu

import (
	"fmt"

	"github.com/deepbench-ml/deepbench/internal/parallel"
	"github.com/deepbench-ml/deepbench/internal/tensor"
)

// Conv2D performs 2D convolution using the im2col algorithm.
//
// Input shape:  [batch, in_channels, height, width]
// Kernel shape: [out_channels, in_channels, kernel_h, kernel_w]
// Output shape: [batch, out_channels, out_h, out_w]
//
// Where:
//
//	out_h = (height + 2*padding - kernel_h) / stride + 1
//	out_w = (width + 2*padding - kernel_w) / stride + 1
//
// Im2col turns each input patch into a row of a column matrix so the
// convolution becomes a matrix product against the flattened kernel.
//
// Reference: "High Performance Convolutional Neural Networks for Document
// Processing" (Chellapilla et al., 2006).
func (b *Backend) Conv2D(input, kernel *tensor.Tensor, stride, padding int) *tensor.Tensor {
	inputShape := input.Shape()
	kernelShape := kernel.Shape()

	if len(inputShape) != 4 {
		panic(fmt.Sprintf("conv2d: input must be 4D [N,C,H,W], got %dD", len(inputShape)))
	}
	if len(kernelShape) != 4 {
		panic(fmt.Sprintf("conv2d: kernel must be 4D [C_out,C_in,K_h,K_w], got %dD", len(kernelShape)))
	}

	N := inputShape[0]
	CIn := inputShape[1]
	H := inputShape[2]
	W := inputShape[3]
	COut := kernelShape[0]
	KH := kernelShape[2]
	KW := kernelShape[3]

	if CIn != kernelShape[1] {
		panic(fmt.Sprintf("conv2d: input channels %d != kernel channels %d", CIn, kernelShape[1]))
	}

	HOut := (H+2*padding-KH)/stride + 1
	WOut := (W+2*padding-KW)/stride + 1
	if HOut <= 0 || WOut <= 0 {
		panic(fmt.Sprintf("conv2d: invalid output dimensions %dx%d (check stride/padding)", HOut, WOut))
	}

	output := tensor.New(tensor.Shape{N, COut, HOut, WOut})
	inputData := input.Data()
	kernelData := kernel.Data()
	outputData := output.Data()

	colWidth := CIn * KH * KW
	planeOut := HOut * WOut

	// One im2col buffer per batch element, convolved independently.
	parallel.For(N, func(n int) {
		colBuf := make([]float32, planeOut*colWidth)
		im2col(colBuf, inputData[n*CIn*H*W:(n+1)*CIn*H*W], CIn, H, W, KH, KW, HOut, WOut, stride, padding)

		outBatch := outputData[n*COut*planeOut : (n+1)*COut*planeOut]
		for o := 0; o < COut; o++ {
			kRow := kernelData[o*colWidth : (o+1)*colWidth]
			outPlane := outBatch[o*planeOut : (o+1)*planeOut]
			for p := 0; p < planeOut; p++ {
				col := colBuf[p*colWidth : (p+1)*colWidth]
				sum := float32(0)
				for k := 0; k < colWidth; k++ {
					sum += kRow[k] * col[k]
				}
				outPlane[p] = sum
			}
		}
	}, b.par)

	return output
}

// im2col transforms one input image [C, H, W] into a column matrix
// [H_out * W_out, C * K_h * K_w]. Each row corresponds to one output
// position; out-of-bounds positions read as zero (padding).
func im2col(colBuf, img []float32, C, H, W, KH, KW, HOut, WOut, stride, padding int) {
	colWidth := C * KH * KW
	colIdx := 0

	for outH := 0; outH < HOut; outH++ {
		for outW := 0; outW < WOut; outW++ {
			hStart := outH*stride - padding
			wStart := outW*stride - padding
			bufIdx := colIdx * colWidth

			for c := 0; c < C; c++ {
				plane := img[c*H*W : (c+1)*H*W]
				for kh := 0; kh < KH; kh++ {
					h := hStart + kh
					for kw := 0; kw < KW; kw++ {
						w := wStart + kw
						if h >= 0 && h < H && w >= 0 && w < W {
							colBuf[bufIdx] = plane[h*W+w]
						} else {
							colBuf[bufIdx] = 0
						}
						bufIdx++
					}
				}
			}
			colIdx++
		}
	}
}
