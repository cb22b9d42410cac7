package runner_test

import (
	"testing"
	"time"

	"github.com/deepbench-ml/deepbench/internal/runner"
)

func TestFloat2Str(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{1.0, "1e+00"},
		{5e-4, "5e-04"},
		{0.123, "1.23e-01"},
		{0.9, "9e-01"},
		{0.0, "0e+00"},
		{1.5e-7, "1.5e-07"},
		{-0.5, "-5e-01"},
		{300.0, "3e+02"},
	}
	for _, tc := range cases {
		if got := runner.Float2Str(tc.in); got != tc.want {
			t.Errorf("Float2Str(%v): got %q, want %q", tc.in, got, tc.want)
		}
	}
}

var testTime = time.Date(2019, 2, 3, 14, 5, 6, 0, time.UTC)

func TestMakeRunName_ConstantLR(t *testing.T) {
	folder, file := runner.MakeRunName(nil, 128, 100, 0.3, nil, nil, 42,
		map[string]any{"momentum": 0.9}, testTime)

	wantFolder := "num_epochs__100__batch_size__128__momentum__9e-01__lr__3e-01"
	if folder != wantFolder {
		t.Errorf("folder: got %q, want %q", folder, wantFolder)
	}
	wantFile := "random_seed__42__2019-02-03-14-05-06"
	if file != wantFile {
		t.Errorf("file: got %q, want %q", file, wantFile)
	}
}

func TestMakeRunName_WeightDecay(t *testing.T) {
	wd := 5e-4
	folder, _ := runner.MakeRunName(&wd, 256, 50, 1.0, nil, nil, 1, nil, testTime)

	want := "num_epochs__50__batch_size__256__weight_decay__5e-04__lr__1e+00"
	if folder != want {
		t.Errorf("folder: got %q, want %q", folder, want)
	}
}

func TestMakeRunName_Schedule(t *testing.T) {
	folder, _ := runner.MakeRunName(nil, 128, 200, 0.3,
		[]int{50, 100}, []float64{0.1, 0.01}, 42, nil, testTime)

	want := "num_epochs__200__batch_size__128__lr_schedule__0_3e-01_50_3e-02_100_3e-03"
	if folder != want {
		t.Errorf("folder: got %q, want %q", folder, want)
	}
}

func TestMakeRunName_SortedHyperparams(t *testing.T) {
	folder, _ := runner.MakeRunName(nil, 64, 10, 0.01,
		nil, nil, 7, map[string]any{
			"beta2":    0.999,
			"beta1":    0.9,
			"nesterov": true,
			"warmup":   5,
		}, testTime)

	want := "num_epochs__10__batch_size__64__" +
		"beta1__9e-01__beta2__9.99e-01__nesterov__true__warmup__5__" +
		"lr__1e-02"
	if folder != want {
		t.Errorf("folder: got %q, want %q", folder, want)
	}
}

func TestMakeRunName_SeedInFileName(t *testing.T) {
	_, file1 := runner.MakeRunName(nil, 1, 1, 0.1, nil, nil, 3, nil, testTime)
	_, file2 := runner.MakeRunName(nil, 1, 1, 0.1, nil, nil, 4, nil, testTime)

	if file1 == file2 {
		t.Errorf("different seeds produced the same file name %q", file1)
	}
	if got, want := file1, "random_seed__3__2019-02-03-14-05-06"; got != want {
		t.Errorf("file: got %q, want %q", got, want)
	}
}
