// Package runner resolves run arguments, names output files, builds
// learning rate schedules and drives the standard training loop that
// benchmarks an optimizer on a test problem.
package runner

import (
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/deepbench-ml/deepbench/internal/datasets"
	"github.com/deepbench-ml/deepbench/internal/nn"
	"github.com/deepbench-ml/deepbench/internal/optim"
	"github.com/deepbench-ml/deepbench/internal/testproblems"
)

// OptimizerFactory builds an optimizer over the given parameters with
// the base learning rate and the resolved hyperparameter values.
type OptimizerFactory func(params []*nn.Parameter, lr float64, hyperparams map[string]any) (optim.Optimizer, error)

// StandardRunner benchmarks one optimizer on one test problem.
type StandardRunner struct {
	optimizerName string
	factory       OptimizerFactory
	hyperparams   []Hyperparameter
	logger        *slog.Logger
}

// NewStandardRunner creates a runner for the named optimizer. The
// hyperparameter descriptors drive both flag registration and run
// naming.
func NewStandardRunner(optimizerName string, factory OptimizerFactory, hyperparams []Hyperparameter, logger *slog.Logger) *StandardRunner {
	if logger == nil {
		logger = slog.Default()
	}
	return &StandardRunner{
		optimizerName: optimizerName,
		factory:       factory,
		hyperparams:   hyperparams,
		logger:        logger,
	}
}

// Run resolves arguments from opts and argv, trains, and writes the
// output JSON unless no_logs was requested. It returns the collected
// output either way.
func (r *StandardRunner) Run(opts Options, argv []string) (*Output, error) {
	args, err := GetArguments(opts, r.optimizerName, r.hyperparams, argv)
	if err != nil {
		return nil, err
	}

	problemName := args[KeyTestProblem].(string)
	batchSize := args[KeyBatchSize].(int)
	numEpochs := args[KeyNumEpochs].(int)
	learningRate := args[KeyLearningRate].(float64)
	randomSeed := args[KeyRandomSeed].(int)
	dataDir, _ := args[KeyDataDir].(string)
	outputDir := args[KeyOutputDir].(string)
	trainLogInterval := args[KeyTrainLogInterval].(int)
	printTrainIter := args[KeyPrintTrainIter].(bool)
	noLogs := args[KeyNoLogs].(bool)

	var weightDecay *float64
	if wd, ok := args[KeyWeightDecay].(float64); ok {
		weightDecay = &wd
	}
	lrSchedEpochs, _ := args[KeyLRSchedEpochs].([]int)
	lrSchedFactors, _ := args[KeyLRSchedFactors].([]float64)

	hyperparamValues := make(map[string]any, len(r.hyperparams))
	for _, hp := range r.hyperparams {
		hyperparamValues[hp.Name] = args[hp.Name]
	}

	rng := rand.New(rand.NewSource(int64(randomSeed)))

	problem, err := testproblems.New(problemName, batchSize, weightDecay)
	if err != nil {
		return nil, err
	}

	r.logger.Info("setting up test problem",
		"testproblem", problemName,
		"optimizer", r.optimizerName,
		"batch_size", batchSize,
		"random_seed", randomSeed)

	if err := problem.SetUp(dataDir, rng); err != nil {
		return nil, fmt.Errorf("failed to set up %s: %w", problemName, err)
	}

	optimizer, err := r.factory(problem.Model().Parameters(), learningRate, hyperparamValues)
	if err != nil {
		return nil, fmt.Errorf("failed to build %s: %w", r.optimizerName, err)
	}
	schedule := MakeLRSchedule(lrSchedEpochs, lrSchedFactors)

	out := &Output{
		Optimizer:   r.optimizerName,
		TestProblem: problemName,
		Args:        args,
		StartTime:   time.Now(),
	}

	for epoch := 0; epoch <= numEpochs; epoch++ {
		trainLoss, trainAcc, err := r.evaluate(problem, true)
		if err != nil {
			return nil, err
		}
		testLoss, testAcc, err := r.evaluate(problem, false)
		if err != nil {
			return nil, err
		}
		out.TrainLosses = append(out.TrainLosses, trainLoss)
		out.TrainAccuracies = append(out.TrainAccuracies, trainAcc)
		out.TestLosses = append(out.TestLosses, testLoss)
		out.TestAccuracies = append(out.TestAccuracies, testAcc)

		r.logger.Info("evaluation",
			"epoch", epoch,
			"train_loss", trainLoss,
			"train_accuracy", trainAcc,
			"test_loss", testLoss,
			"test_accuracy", testAcc)

		if epoch == numEpochs {
			break
		}

		optimizer.SetLR(learningRate * schedule(epoch))
		if err := r.trainEpoch(problem, optimizer, rng, trainLogInterval, printTrainIter, out); err != nil {
			return nil, err
		}
	}

	out.EndTime = time.Now()

	if !noLogs {
		folder, file := MakeRunName(weightDecay, batchSize, numEpochs, learningRate,
			lrSchedEpochs, lrSchedFactors, randomSeed, hyperparamValues, out.EndTime)
		path, err := WriteOutput(out, outputDir, folder, file)
		if err != nil {
			return nil, err
		}
		r.logger.Info("wrote run output", "path", path)
	}

	return out, nil
}

// trainEpoch runs one pass over the training data.
func (r *StandardRunner) trainEpoch(problem testproblems.TestProblem, optimizer optim.Optimizer,
	rng *rand.Rand, trainLogInterval int, printTrainIter bool, out *Output) error {

	batches, err := problem.TrainBatches(rng)
	if err != nil {
		return err
	}

	model := problem.Model()
	lossFn := problem.LossFunction()
	model.SetTraining(true)
	defer model.SetTraining(false)

	for step, batch := range batches {
		optimizer.ZeroGrad()

		logits := model.Forward(batch.Images)
		loss := lossFn.Forward(logits, batch.Labels)
		model.Backward(lossFn.Backward())
		problem.AddRegularizationGrad()
		optimizer.Step()

		if step%trainLogInterval == 0 {
			total := float64(loss + problem.RegularizationLoss())
			out.MinibatchTrainLosses = append(out.MinibatchTrainLosses, total)
			if printTrainIter {
				fmt.Printf("step %d: loss %g\n", step, total)
			}
		}
	}
	return nil
}

// evaluate computes mean loss (including regularization) and accuracy
// over the train eval subset or the test split.
func (r *StandardRunner) evaluate(problem testproblems.TestProblem, train bool) (float64, float64, error) {
	var batches []*datasets.Batch
	var err error
	if train {
		batches, err = problem.TrainEvalBatches()
	} else {
		batches, err = problem.TestBatches()
	}
	if err != nil {
		return 0, 0, err
	}

	model := problem.Model()
	lossFn := problem.LossFunction()
	model.SetTraining(false)

	var lossSum, accSum float64
	var total int
	for _, batch := range batches {
		logits := model.Forward(batch.Images)
		loss := lossFn.Forward(logits, batch.Labels)
		acc := nn.Accuracy(logits, batch.Labels)
		lossSum += float64(loss) * float64(batch.Size)
		accSum += float64(acc) * float64(batch.Size)
		total += batch.Size
	}
	regLoss := float64(problem.RegularizationLoss())
	return lossSum/float64(total) + regLoss, accSum / float64(total), nil
}
