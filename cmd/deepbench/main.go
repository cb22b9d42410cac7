// Package main provides the deepbench CLI: it benchmarks a chosen
// optimizer on a chosen test problem and writes the results as JSON.
//
// Usage:
//
//	deepbench <optimizer> <testproblem> --batch_size N --num_epochs N --learning_rate LR [flags]
//
// Optimizers: sgd, momentum, adam. Test problems: cifar10_vgg16,
// cifar10_3c3d, mnist_mlp, mnist_logreg.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"sort"

	"github.com/joho/godotenv"

	"github.com/deepbench-ml/deepbench/internal/logging"
	"github.com/deepbench-ml/deepbench/internal/runner"
	"github.com/deepbench-ml/deepbench/internal/testproblems"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		slog.Error("run failed", "error", err)
		os.Exit(1)
	}
}

func run(argv []string) error {
	// A missing .env is fine, it only supplies optional defaults.
	_ = godotenv.Load()

	logger, closer := logging.Setup(logging.Config{
		Level:   slog.LevelInfo,
		LogFile: os.Getenv("DEEPBENCH_LOG_FILE"),
	})
	if closer != nil {
		defer closer.Close()
	}

	if len(argv) < 1 {
		usage()
		return fmt.Errorf("missing optimizer name")
	}
	name := argv[0]
	if name == "-h" || name == "--help" || name == "help" {
		usage()
		return nil
	}

	entry, ok := optimizers[name]
	if !ok {
		usage()
		return fmt.Errorf("unknown optimizer %q", name)
	}

	r := runner.NewStandardRunner(name, entry.factory, entry.hyperparams, logger)
	_, err := r.Run(runner.Options{}, argv[1:])
	return err
}

func usage() {
	names := make([]string, 0, len(optimizers))
	for name := range optimizers {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Fprintln(os.Stderr, "Usage: deepbench <optimizer> <testproblem> [flags]")
	fmt.Fprintln(os.Stderr)
	fmt.Fprintf(os.Stderr, "Optimizers:    %v\n", names)
	fmt.Fprintf(os.Stderr, "Test problems: %v\n", testproblems.Names())
	fmt.Fprintln(os.Stderr)
	fmt.Fprintln(os.Stderr, "Required flags: --batch_size, --num_epochs, --learning_rate")
	fmt.Fprintln(os.Stderr, "Run 'deepbench <optimizer> --help' for the full flag list.")
}
