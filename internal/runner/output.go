package runner

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Output collects everything a run produces: the resolved arguments
// and the per-epoch and per-interval metrics.
//
// The loss and accuracy slices hold num_epochs+1 entries, one
// evaluation before each training epoch and a final one after the
// last. Minibatch losses are sampled every train_log_interval steps
// and include the regularization term.
type Output struct {
	Optimizer            string         `json:"optimizer"`
	TestProblem          string         `json:"testproblem"`
	Args                 map[string]any `json:"args"`
	TrainLosses          []float64      `json:"train_losses"`
	TestLosses           []float64      `json:"test_losses"`
	TrainAccuracies      []float64      `json:"train_accuracies"`
	TestAccuracies       []float64      `json:"test_accuracies"`
	MinibatchTrainLosses []float64      `json:"minibatch_train_losses"`
	StartTime            time.Time      `json:"start_time"`
	EndTime              time.Time      `json:"end_time"`
}

// WriteOutput serializes a run's output to
// <outputDir>/<testproblem>/<optimizer>/<runFolder>/<fileName>.json,
// creating directories as needed.
func WriteOutput(out *Output, outputDir, runFolder, fileName string) (string, error) {
	dir := filepath.Join(outputDir, out.TestProblem, out.Optimizer, runFolder)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal output: %w", err)
	}

	path := filepath.Join(dir, fileName+".json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write output file: %w", err)
	}
	return path, nil
}
