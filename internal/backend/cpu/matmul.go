package cpu

import (
	"fmt"

	"github.com/deepbench-ml/deepbench/internal/parallel"
	"github.com/deepbench-ml/deepbench/internal/tensor"
)

// MatMul performs matrix multiplication: (M, K) @ (K, N) -> (M, N).
//
// Rows of the result are computed in parallel.
func (b *Backend) MatMul(a, other *tensor.Tensor) *tensor.Tensor {
	aShape := a.Shape()
	bShape := other.Shape()

	if len(aShape) != 2 || len(bShape) != 2 {
		panic(fmt.Sprintf("matmul: only 2D tensors supported, got %dD and %dD", len(aShape), len(bShape)))
	}

	m, k := aShape[0], aShape[1]
	kAlt, n := bShape[0], bShape[1]
	if k != kAlt {
		panic(fmt.Sprintf("matmul: shape mismatch [%d,%d] @ [%d,%d]", m, k, kAlt, n))
	}

	result := tensor.New(tensor.Shape{m, n})
	c := result.Data()
	aData := a.Data()
	bData := other.Data()

	parallel.For(m, func(i int) {
		aRow := aData[i*k : (i+1)*k]
		cRow := c[i*n : (i+1)*n]
		for kIdx := 0; kIdx < k; kIdx++ {
			av := aRow[kIdx]
			if av == 0 {
				continue
			}
			bRow := bData[kIdx*n : (kIdx+1)*n]
			for j := 0; j < n; j++ {
				cRow[j] += av * bRow[j]
			}
		}
	}, b.par)

	return result
}

// Transpose2D transposes a 2D tensor: (M, N) -> (N, M).
func (b *Backend) Transpose2D(a *tensor.Tensor) *tensor.Tensor {
	shape := a.Shape()
	if len(shape) != 2 {
		panic(fmt.Sprintf("transpose: only 2D tensors supported, got %dD", len(shape)))
	}

	m, n := shape[0], shape[1]
	result := tensor.New(tensor.Shape{n, m})
	src := a.Data()
	dst := result.Data()

	for i := 0; i < m; i++ {
		for j := 0; j < n; j++ {
			dst[j*m+i] = src[i*n+j]
		}
	}
	return result
}
