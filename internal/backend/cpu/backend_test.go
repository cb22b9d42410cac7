package cpu_test

import (
	"testing"

	"github.com/deepbench-ml/deepbench/internal/backend/cpu"
	"github.com/deepbench-ml/deepbench/internal/tensor"
)

func floatEqual(a, b, eps float32) bool {
	diff := a - b
	if diff < 0 {
		diff = -diff
	}
	return diff < eps
}

func fromSlice(t *testing.T, data []float32, shape tensor.Shape) *tensor.Tensor {
	t.Helper()
	x, err := tensor.FromSlice(data, shape)
	if err != nil {
		t.Fatalf("FromSlice: %v", err)
	}
	return x
}

func TestMatMul(t *testing.T) {
	backend := cpu.New()

	// [1 2; 3 4] @ [5 6; 7 8] = [19 22; 43 50]
	a := fromSlice(t, []float32{1, 2, 3, 4}, tensor.Shape{2, 2})
	b := fromSlice(t, []float32{5, 6, 7, 8}, tensor.Shape{2, 2})

	c := backend.MatMul(a, b)
	want := []float32{19, 22, 43, 50}
	for i, w := range want {
		if !floatEqual(c.Data()[i], w, 1e-6) {
			t.Errorf("MatMul[%d]: got %f, want %f", i, c.Data()[i], w)
		}
	}
}

func TestMatMul_Rectangular(t *testing.T) {
	backend := cpu.New()

	// (2x3) @ (3x1)
	a := fromSlice(t, []float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3})
	b := fromSlice(t, []float32{1, 0, -1}, tensor.Shape{3, 1})

	c := backend.MatMul(a, b)
	if !c.Shape().Equal(tensor.Shape{2, 1}) {
		t.Fatalf("shape: got %v, want [2 1]", c.Shape())
	}
	if c.Data()[0] != -2 || c.Data()[1] != -2 {
		t.Errorf("values: got %v, want [-2 -2]", c.Data())
	}
}

func TestTranspose2D(t *testing.T) {
	backend := cpu.New()

	a := fromSlice(t, []float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3})
	at := backend.Transpose2D(a)

	if !at.Shape().Equal(tensor.Shape{3, 2}) {
		t.Fatalf("shape: got %v, want [3 2]", at.Shape())
	}
	want := []float32{1, 4, 2, 5, 3, 6}
	for i, w := range want {
		if at.Data()[i] != w {
			t.Errorf("Transpose2D[%d]: got %f, want %f", i, at.Data()[i], w)
		}
	}
}

func TestConv2D_Identity(t *testing.T) {
	backend := cpu.New()

	// A 1x1 kernel with weight 1 reproduces the input.
	input := fromSlice(t, []float32{1, 2, 3, 4}, tensor.Shape{1, 1, 2, 2})
	kernel := fromSlice(t, []float32{1}, tensor.Shape{1, 1, 1, 1})

	out := backend.Conv2D(input, kernel, 1, 0)
	if !out.Shape().Equal(tensor.Shape{1, 1, 2, 2}) {
		t.Fatalf("shape: got %v, want [1 1 2 2]", out.Shape())
	}
	for i, w := range input.Data() {
		if out.Data()[i] != w {
			t.Errorf("Conv2D[%d]: got %f, want %f", i, out.Data()[i], w)
		}
	}
}

func TestConv2D_SumKernel(t *testing.T) {
	backend := cpu.New()

	// A 2x2 all-ones kernel sums each window.
	input := fromSlice(t, []float32{
		1, 2, 3,
		4, 5, 6,
		7, 8, 9,
	}, tensor.Shape{1, 1, 3, 3})
	kernel := fromSlice(t, []float32{1, 1, 1, 1}, tensor.Shape{1, 1, 2, 2})

	out := backend.Conv2D(input, kernel, 1, 0)
	if !out.Shape().Equal(tensor.Shape{1, 1, 2, 2}) {
		t.Fatalf("shape: got %v, want [1 1 2 2]", out.Shape())
	}
	want := []float32{12, 16, 24, 28}
	for i, w := range want {
		if !floatEqual(out.Data()[i], w, 1e-6) {
			t.Errorf("Conv2D[%d]: got %f, want %f", i, out.Data()[i], w)
		}
	}
}

func TestConv2D_Padding(t *testing.T) {
	backend := cpu.New()

	// 3x3 kernel with padding 1 keeps the spatial size.
	input := tensor.Full(tensor.Shape{1, 1, 4, 4}, 1)
	kernel := tensor.Full(tensor.Shape{1, 1, 3, 3}, 1)

	out := backend.Conv2D(input, kernel, 1, 1)
	if !out.Shape().Equal(tensor.Shape{1, 1, 4, 4}) {
		t.Fatalf("shape: got %v, want [1 1 4 4]", out.Shape())
	}
	// Center positions see the full 3x3 window, corners only 2x2.
	if out.Data()[5] != 9 {
		t.Errorf("center: got %f, want 9", out.Data()[5])
	}
	if out.Data()[0] != 4 {
		t.Errorf("corner: got %f, want 4", out.Data()[0])
	}
}

func TestConv2DKernelBackward(t *testing.T) {
	backend := cpu.New()

	// Single 1x1 kernel: dL/dk = sum(input * grad).
	input := fromSlice(t, []float32{1, 2, 3, 4}, tensor.Shape{1, 1, 2, 2})
	kernel := fromSlice(t, []float32{1}, tensor.Shape{1, 1, 1, 1})
	grad := fromSlice(t, []float32{1, 1, 1, 1}, tensor.Shape{1, 1, 2, 2})

	gradK := backend.Conv2DKernelBackward(input, kernel, grad, 1, 0)
	if !floatEqual(gradK.Data()[0], 10, 1e-6) {
		t.Errorf("kernel grad: got %f, want 10", gradK.Data()[0])
	}
}

func TestConv2DInputBackward(t *testing.T) {
	backend := cpu.New()

	// 1x1 kernel with weight 2: dL/dx = 2 * grad.
	input := tensor.Zeros(tensor.Shape{1, 1, 2, 2})
	kernel := fromSlice(t, []float32{2}, tensor.Shape{1, 1, 1, 1})
	grad := fromSlice(t, []float32{1, 2, 3, 4}, tensor.Shape{1, 1, 2, 2})

	gradIn := backend.Conv2DInputBackward(input, kernel, grad, 1, 0)
	want := []float32{2, 4, 6, 8}
	for i, w := range want {
		if !floatEqual(gradIn.Data()[i], w, 1e-6) {
			t.Errorf("input grad[%d]: got %f, want %f", i, gradIn.Data()[i], w)
		}
	}
}

func TestMaxPool2D(t *testing.T) {
	backend := cpu.New()

	input := fromSlice(t, []float32{
		1, 2, 5, 6,
		3, 4, 7, 8,
		9, 10, 13, 14,
		11, 12, 15, 16,
	}, tensor.Shape{1, 1, 4, 4})

	out, indices := backend.MaxPool2D(input, 2, 2)
	if !out.Shape().Equal(tensor.Shape{1, 1, 2, 2}) {
		t.Fatalf("shape: got %v, want [1 1 2 2]", out.Shape())
	}
	want := []float32{4, 8, 12, 16}
	for i, w := range want {
		if out.Data()[i] != w {
			t.Errorf("MaxPool2D[%d]: got %f, want %f", i, out.Data()[i], w)
		}
	}

	grad := fromSlice(t, []float32{1, 1, 1, 1}, tensor.Shape{1, 1, 2, 2})
	gradIn := backend.MaxPool2DBackward(input.Shape(), grad, indices)
	// Gradient flows only to the max positions.
	var total float32
	for _, g := range gradIn.Data() {
		total += g
	}
	if total != 4 {
		t.Errorf("backward grad sum: got %f, want 4", total)
	}
	if gradIn.Data()[5] != 1 { // position of the value 4
		t.Errorf("grad at max position: got %f, want 1", gradIn.Data()[5])
	}
}

func TestReLU(t *testing.T) {
	backend := cpu.New()

	input := fromSlice(t, []float32{-1, 0, 2, -3}, tensor.Shape{4})
	out := backend.ReLU(input)
	want := []float32{0, 0, 2, 0}
	for i, w := range want {
		if out.Data()[i] != w {
			t.Errorf("ReLU[%d]: got %f, want %f", i, out.Data()[i], w)
		}
	}

	grad := fromSlice(t, []float32{1, 1, 1, 1}, tensor.Shape{4})
	gradIn := backend.ReLUBackward(input, grad)
	wantGrad := []float32{0, 0, 1, 0}
	for i, w := range wantGrad {
		if gradIn.Data()[i] != w {
			t.Errorf("ReLUBackward[%d]: got %f, want %f", i, gradIn.Data()[i], w)
		}
	}
}
