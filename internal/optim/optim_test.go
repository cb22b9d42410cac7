package optim_test

import (
	"math"
	"testing"

	"github.com/deepbench-ml/deepbench/internal/nn"
	"github.com/deepbench-ml/deepbench/internal/optim"
	"github.com/deepbench-ml/deepbench/internal/tensor"
)

// Helper to check float equality with tolerance.
func floatEqual(a, b, eps float32) bool {
	diff := a - b
	if diff < 0 {
		diff = -diff
	}
	return diff < eps
}

func paramWithGrad(t *testing.T, value, grad float32) *nn.Parameter {
	t.Helper()
	x, err := tensor.FromSlice([]float32{value}, tensor.Shape{1})
	if err != nil {
		t.Fatalf("FromSlice: %v", err)
	}
	param := nn.NewParameter("x", x)
	g, err := tensor.FromSlice([]float32{grad}, tensor.Shape{1})
	if err != nil {
		t.Fatalf("FromSlice: %v", err)
	}
	param.AccumulateGrad(g)
	return param
}

func setGrad(t *testing.T, param *nn.Parameter, grad float32) {
	t.Helper()
	g, err := tensor.FromSlice([]float32{grad}, tensor.Shape{1})
	if err != nil {
		t.Fatalf("FromSlice: %v", err)
	}
	param.AccumulateGrad(g)
}

// TestSGD_SimpleUpdate tests SGD without momentum.
func TestSGD_SimpleUpdate(t *testing.T) {
	param := paramWithGrad(t, 2.0, 1.0)

	optimizer := optim.NewSGD([]*nn.Parameter{param}, optim.SGDConfig{LR: 0.1})
	optimizer.Step()

	// x_new = x_old - lr * grad = 2.0 - 0.1 * 1.0 = 1.9
	actual := param.Data().Data()[0]
	if !floatEqual(actual, 1.9, 1e-6) {
		t.Errorf("SGD update: got %f, want %f", actual, 1.9)
	}
}

// TestSGD_WithMomentum tests SGD with momentum over two steps.
func TestSGD_WithMomentum(t *testing.T) {
	param := paramWithGrad(t, 1.0, 1.0)

	optimizer := optim.NewSGD([]*nn.Parameter{param}, optim.SGDConfig{LR: 0.1, Momentum: 0.9})

	// v_1 = 0.9 * 0 + 1.0 = 1.0
	// x_1 = 1.0 - 0.1 * 1.0 = 0.9
	optimizer.Step()
	actual1 := param.Data().Data()[0]
	if !floatEqual(actual1, 0.9, 1e-6) {
		t.Errorf("SGD momentum step 1: got %f, want %f", actual1, 0.9)
	}

	// v_2 = 0.9 * 1.0 + 1.0 = 1.9
	// x_2 = 0.9 - 0.1 * 1.9 = 0.71
	optimizer.ZeroGrad()
	setGrad(t, param, 1.0)
	optimizer.Step()
	actual2 := param.Data().Data()[0]
	if !floatEqual(actual2, 0.71, 1e-5) {
		t.Errorf("SGD momentum step 2: got %f, want %f", actual2, 0.71)
	}
}

// TestSGD_SkipsNilGrad tests that parameters without gradients are
// left untouched.
func TestSGD_SkipsNilGrad(t *testing.T) {
	x, err := tensor.FromSlice([]float32{3.0}, tensor.Shape{1})
	if err != nil {
		t.Fatalf("FromSlice: %v", err)
	}
	param := nn.NewParameter("x", x)

	optimizer := optim.NewSGD([]*nn.Parameter{param}, optim.SGDConfig{LR: 0.1})
	optimizer.Step()

	if got := param.Data().Data()[0]; got != 3.0 {
		t.Errorf("parameter without grad changed: got %f, want 3.0", got)
	}
}

// TestSGD_SetLR tests the learning rate accessor pair.
func TestSGD_SetLR(t *testing.T) {
	param := paramWithGrad(t, 1.0, 1.0)
	optimizer := optim.NewSGD([]*nn.Parameter{param}, optim.SGDConfig{LR: 0.5})

	if got := optimizer.LR(); got != 0.5 {
		t.Errorf("LR: got %f, want 0.5", got)
	}

	optimizer.SetLR(0.05)
	optimizer.Step()

	// x_new = 1.0 - 0.05 * 1.0 = 0.95
	actual := param.Data().Data()[0]
	if !floatEqual(actual, 0.95, 1e-6) {
		t.Errorf("SGD after SetLR: got %f, want %f", actual, 0.95)
	}
}

// TestAdam_FirstStep tests the first Adam update, where bias
// correction makes the step size exactly lr.
func TestAdam_FirstStep(t *testing.T) {
	param := paramWithGrad(t, 1.0, 1.0)

	optimizer := optim.NewAdam([]*nn.Parameter{param}, optim.AdamConfig{LR: 0.1})
	optimizer.Step()

	// m_hat = g, v_hat = g^2, so step = lr * g / (|g| + eps) ~= lr
	expected := float32(1.0 - 0.1)
	actual := param.Data().Data()[0]
	if !floatEqual(actual, expected, 1e-4) {
		t.Errorf("Adam first step: got %f, want %f", actual, expected)
	}
}

// TestAdam_TwoSteps verifies the update against a hand-computed
// trajectory with constant gradient.
func TestAdam_TwoSteps(t *testing.T) {
	param := paramWithGrad(t, 1.0, 0.5)

	lr, beta1, beta2, eps := 0.01, 0.9, 0.999, 1e-8
	optimizer := optim.NewAdam([]*nn.Parameter{param}, optim.AdamConfig{
		LR:    lr,
		Betas: [2]float64{beta1, beta2},
		Eps:   eps,
	})

	// Reference trajectory computed in float64.
	x := 1.0
	m, v := 0.0, 0.0
	g := 0.5
	for step := 1; step <= 2; step++ {
		m = beta1*m + (1-beta1)*g
		v = beta2*v + (1-beta2)*g*g
		mHat := m / (1 - math.Pow(beta1, float64(step)))
		vHat := v / (1 - math.Pow(beta2, float64(step)))
		x -= lr * mHat / (math.Sqrt(vHat) + eps)
	}

	optimizer.Step()
	optimizer.ZeroGrad()
	setGrad(t, param, 0.5)
	optimizer.Step()

	actual := param.Data().Data()[0]
	if !floatEqual(actual, float32(x), 1e-5) {
		t.Errorf("Adam two steps: got %f, want %f", actual, float32(x))
	}
}

// TestAdam_Timestep tests that the step counter advances.
func TestAdam_Timestep(t *testing.T) {
	param := paramWithGrad(t, 1.0, 1.0)
	optimizer := optim.NewAdam([]*nn.Parameter{param}, optim.AdamConfig{})

	optimizer.Step()
	optimizer.Step()

	if got := optimizer.Timestep(); got != 2 {
		t.Errorf("Timestep: got %d, want 2", got)
	}
}
