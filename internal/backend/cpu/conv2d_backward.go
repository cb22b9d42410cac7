package cpu

import (
	"fmt"

	"github.com/deepbench-ml/deepbench/internal/parallel"
	"github.com/deepbench-ml/deepbench/internal/tensor"
)

// Conv2DInputBackward computes the gradient w.r.t. the convolution input.
//
// Each output gradient is distributed back to the input positions that
// produced it (transposed convolution).
//
// Reference: "A guide to convolution arithmetic for deep learning"
// (Dumoulin & Visin, 2016).
func (b *Backend) Conv2DInputBackward(input, kernel, grad *tensor.Tensor, stride, padding int) *tensor.Tensor {
	inputShape := input.Shape()
	kernelShape := kernel.Shape()
	gradShape := grad.Shape()

	N := inputShape[0]
	CIn := inputShape[1]
	H := inputShape[2]
	W := inputShape[3]
	COut := kernelShape[0]
	KH := kernelShape[2]
	KW := kernelShape[3]
	HOut := gradShape[2]
	WOut := gradShape[3]

	if gradShape[0] != N || gradShape[1] != COut {
		panic(fmt.Sprintf("conv2d input backward: grad shape %v does not match input %v / kernel %v",
			gradShape, inputShape, kernelShape))
	}

	inputGrad := tensor.New(inputShape)
	inputGradData := inputGrad.Data()
	gradData := grad.Data()
	kernelData := kernel.Data()

	// Each batch element owns a disjoint slice of the input gradient, so the
	// batch loop parallelizes without synchronization.
	parallel.For(N, func(batch int) {
		gradBatch := gradData[batch*COut*HOut*WOut : (batch+1)*COut*HOut*WOut]
		inputGradBatch := inputGradData[batch*CIn*H*W : (batch+1)*CIn*H*W]

		for outH := 0; outH < HOut; outH++ {
			for outW := 0; outW < WOut; outW++ {
				for outChan := 0; outChan < COut; outChan++ {
					gradVal := gradBatch[outChan*HOut*WOut+outH*WOut+outW]
					if gradVal == 0 {
						continue
					}
					kernelCOut := kernelData[outChan*CIn*KH*KW : (outChan+1)*CIn*KH*KW]

					for inChan := 0; inChan < CIn; inChan++ {
						inputGradCIn := inputGradBatch[inChan*H*W : (inChan+1)*H*W]
						kernelCIn := kernelCOut[inChan*KH*KW : (inChan+1)*KH*KW]

						for kh := 0; kh < KH; kh++ {
							hPos := outH*stride - padding + kh
							if hPos < 0 || hPos >= H {
								continue
							}
							for kw := 0; kw < KW; kw++ {
								wPos := outW*stride - padding + kw
								if wPos < 0 || wPos >= W {
									continue
								}
								inputGradCIn[hPos*W+wPos] += gradVal * kernelCIn[kh*KW+kw]
							}
						}
					}
				}
			}
		}
	}, b.par)

	return inputGrad
}

// Conv2DKernelBackward computes the gradient w.r.t. the convolution kernel.
//
// gradK[o,c,kh,kw] = sum over n, out_h, out_w of
// grad[n,o,out_h,out_w] * input[n,c,out_h*stride-padding+kh,out_w*stride-padding+kw].
func (b *Backend) Conv2DKernelBackward(input, kernel, grad *tensor.Tensor, stride, padding int) *tensor.Tensor {
	inputShape := input.Shape()
	kernelShape := kernel.Shape()
	gradShape := grad.Shape()

	N := inputShape[0]
	CIn := inputShape[1]
	H := inputShape[2]
	W := inputShape[3]
	COut := kernelShape[0]
	KH := kernelShape[2]
	KW := kernelShape[3]
	HOut := gradShape[2]
	WOut := gradShape[3]

	kernelGrad := tensor.New(kernelShape)
	kernelGradData := kernelGrad.Data()
	inputData := input.Data()
	gradData := grad.Data()

	// Each output channel owns a disjoint slice of the kernel gradient.
	parallel.For(COut, func(outChan int) {
		kernelGradCOut := kernelGradData[outChan*CIn*KH*KW : (outChan+1)*CIn*KH*KW]

		for batch := 0; batch < N; batch++ {
			gradPlane := gradData[(batch*COut+outChan)*HOut*WOut : (batch*COut+outChan+1)*HOut*WOut]
			inputBatch := inputData[batch*CIn*H*W : (batch+1)*CIn*H*W]

			for outH := 0; outH < HOut; outH++ {
				for outW := 0; outW < WOut; outW++ {
					gradVal := gradPlane[outH*WOut+outW]
					if gradVal == 0 {
						continue
					}

					for inChan := 0; inChan < CIn; inChan++ {
						inputCIn := inputBatch[inChan*H*W : (inChan+1)*H*W]
						kernelGradCIn := kernelGradCOut[inChan*KH*KW : (inChan+1)*KH*KW]

						for kh := 0; kh < KH; kh++ {
							hPos := outH*stride - padding + kh
							if hPos < 0 || hPos >= H {
								continue
							}
							for kw := 0; kw < KW; kw++ {
								wPos := outW*stride - padding + kw
								if wPos < 0 || wPos >= W {
									continue
								}
								kernelGradCIn[kh*KW+kw] += gradVal * inputCIn[hPos*W+wPos]
							}
						}
					}
				}
			}
		}
	}, b.par)

	return kernelGrad
}
