package runner

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Standard argument keys as they appear in the resolved argument map.
const (
	KeyTestProblem      = "testproblem"
	KeyWeightDecay      = "weight_decay"
	KeyBatchSize        = "batch_size"
	KeyNumEpochs        = "num_epochs"
	KeyLearningRate     = "learning_rate"
	KeyLRSchedEpochs    = "lr_sched_epochs"
	KeyLRSchedFactors   = "lr_sched_factors"
	KeyRandomSeed       = "random_seed"
	KeyDataDir          = "data_dir"
	KeyOutputDir        = "output_dir"
	KeyTrainLogInterval = "train_log_interval"
	KeyPrintTrainIter   = "print_train_iter"
	KeyNoLogs           = "no_logs"
)

// Environment variables supplying directory defaults, typically via a
// .env file loaded at startup.
const (
	EnvDataDir   = "DEEPBENCH_DATA_DIR"
	EnvOutputDir = "DEEPBENCH_OUTPUT_DIR"
)

// HyperparamType names the value type of an optimizer hyperparameter.
type HyperparamType string

const (
	FloatHyperparam  HyperparamType = "float"
	IntHyperparam    HyperparamType = "int"
	BoolHyperparam   HyperparamType = "bool"
	StringHyperparam HyperparamType = "string"
)

// Hyperparameter describes one optimizer hyperparameter so the
// argument resolver can register a command line flag for it.
type Hyperparameter struct {
	Name       string
	Type       HyperparamType
	Default    any
	HasDefault bool
}

// Options carries caller-supplied argument values. A nil field means
// the value was not supplied and must come from the command line (or a
// run-config file). Values set here never get a command line flag.
type Options struct {
	TestProblem      *string
	WeightDecay      *float64
	BatchSize        *int
	NumEpochs        *int
	LearningRate     *float64
	LRSchedEpochs    []int
	LRSchedFactors   []float64
	RandomSeed       *int
	DataDir          *string
	OutputDir        *string
	TrainLogInterval *int
	PrintTrainIter   *bool
	NoLogs           *bool
}

// intListValue is a flag.Value for comma-separated integer lists.
type intListValue struct {
	values []int
	set    bool
}

func (v *intListValue) String() string {
	parts := make([]string, len(v.values))
	for i, n := range v.values {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, ",")
}

func (v *intListValue) Set(s string) error {
	v.values = nil
	for _, part := range strings.Split(s, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return fmt.Errorf("invalid integer %q: %w", part, err)
		}
		v.values = append(v.values, n)
	}
	v.set = true
	return nil
}

// floatListValue is a flag.Value for comma-separated float lists.
type floatListValue struct {
	values []float64
	set    bool
}

func (v *floatListValue) String() string {
	parts := make([]string, len(v.values))
	for i, f := range v.values {
		parts[i] = strconv.FormatFloat(f, 'g', -1, 64)
	}
	return strings.Join(parts, ",")
}

func (v *floatListValue) Set(s string) error {
	v.values = nil
	for _, part := range strings.Split(s, ",") {
		f, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return fmt.Errorf("invalid float %q: %w", part, err)
		}
		v.values = append(v.values, f)
	}
	v.set = true
	return nil
}

// GetArguments resolves the full argument set for an optimizer run.
//
// Values already present in opts are taken as-is and get no command
// line flag. For everything else a flag is registered, including one
// flag per optimizer hyperparameter, and argv is parsed. An optional
// --config flag names a JSON run-config file whose values fill any
// gap left by opts and the flags. Required values (testproblem, batch
// size, epoch count, learning rate, hyperparameters without defaults)
// missing from all sources are an error.
//
// The result maps argument names to their typed values: string, int,
// float64, bool, []int or []float64. Optional values without defaults
// (weight decay, schedule lists) are absent from the map when unset.
func GetArguments(opts Options, optimizerName string, hyperparams []Hyperparameter, argv []string) (map[string]any, error) {
	args := make(map[string]any)

	fs := flag.NewFlagSet(optimizerName, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Usage = func() {
		out := os.Stderr
		fmt.Fprintf(out, "Usage: run %s on a test problem\n\n", optimizerName)
		fs.SetOutput(out)
		fs.PrintDefaults()
		fs.SetOutput(io.Discard)
	}

	configPath := fs.String("config", "", "Path to a JSON run-config file.")

	weightDecay := fs.Float64(KeyWeightDecay, 0, "Weight decay factor. Defaults to the test problem's own default.")
	batchSize := fs.Int(KeyBatchSize, 0, "The batch size (positive integer).")
	numEpochs := fs.Int(KeyNumEpochs, 0, "Total number of training epochs.")
	learningRate := fs.Float64(KeyLearningRate, 0, "Learning rate, also the base of a learning rate schedule.")
	var schedEpochs intListValue
	fs.Var(&schedEpochs, KeyLRSchedEpochs, "Comma-separated epoch numbers that mark learning rate changes.")
	var schedFactors floatListValue
	fs.Var(&schedFactors, KeyLRSchedFactors, "Comma-separated factors by which to change the learning rate.")
	randomSeed := fs.Int(KeyRandomSeed, 42, "Random seed for the run.")
	dataDir := fs.String(KeyDataDir, "", "Path to the base data directory.")
	outputDir := fs.String(KeyOutputDir, "results", "Base directory for output files, sorted into testproblem/optimizer subdirectories.")
	trainLogInterval := fs.Int(KeyTrainLogInterval, 10, "Interval of steps at which training loss is logged.")
	printTrainIter := fs.Bool(KeyPrintTrainIter, false, "Print mini-batch training loss on each logged iteration.")
	noLogs := fs.Bool(KeyNoLogs, false, "Do not write any JSON output files.")

	hpFlags := registerHyperparamFlags(fs, hyperparams)

	// The testproblem is positional and must be peeled off before
	// parsing, since flag parsing stops at the first non-flag argument.
	var positional string
	if opts.TestProblem == nil && len(argv) > 0 && !strings.HasPrefix(argv[0], "-") {
		positional = argv[0]
		argv = argv[1:]
	}

	if err := fs.Parse(argv); err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { seen[f.Name] = true })

	var config map[string]any
	if *configPath != "" {
		var err error
		config, err = LoadRunConfig(*configPath)
		if err != nil {
			return nil, err
		}
	}

	if opts.TestProblem != nil {
		args[KeyTestProblem] = *opts.TestProblem
	} else if positional != "" {
		args[KeyTestProblem] = positional
	} else if v, ok := configString(config, KeyTestProblem); ok {
		args[KeyTestProblem] = v
	} else {
		return nil, fmt.Errorf("missing required argument: testproblem")
	}

	// Optional values stay out of the map when no source supplies them.
	if opts.WeightDecay != nil {
		args[KeyWeightDecay] = *opts.WeightDecay
	} else if seen[KeyWeightDecay] {
		args[KeyWeightDecay] = *weightDecay
	} else if v, ok := configFloat(config, KeyWeightDecay); ok {
		args[KeyWeightDecay] = v
	}

	if err := resolveInt(args, KeyBatchSize, opts.BatchSize, seen[KeyBatchSize], *batchSize, config, true); err != nil {
		return nil, err
	}
	if err := resolveInt(args, KeyNumEpochs, opts.NumEpochs, seen[KeyNumEpochs], *numEpochs, config, true); err != nil {
		return nil, err
	}
	if opts.LearningRate != nil {
		args[KeyLearningRate] = *opts.LearningRate
	} else if seen[KeyLearningRate] {
		args[KeyLearningRate] = *learningRate
	} else if v, ok := configFloat(config, KeyLearningRate); ok {
		args[KeyLearningRate] = v
	} else {
		return nil, fmt.Errorf("missing required argument: %s", KeyLearningRate)
	}

	if opts.LRSchedEpochs != nil {
		args[KeyLRSchedEpochs] = opts.LRSchedEpochs
	} else if schedEpochs.set {
		args[KeyLRSchedEpochs] = schedEpochs.values
	} else if v, ok := configIntList(config, KeyLRSchedEpochs); ok {
		args[KeyLRSchedEpochs] = v
	}
	if opts.LRSchedFactors != nil {
		args[KeyLRSchedFactors] = opts.LRSchedFactors
	} else if schedFactors.set {
		args[KeyLRSchedFactors] = schedFactors.values
	} else if v, ok := configFloatList(config, KeyLRSchedFactors); ok {
		args[KeyLRSchedFactors] = v
	}

	if err := resolveInt(args, KeyRandomSeed, opts.RandomSeed, seen[KeyRandomSeed], *randomSeed, config, false); err != nil {
		return nil, err
	}
	if args[KeyRandomSeed] == nil {
		args[KeyRandomSeed] = *randomSeed
	}

	resolveString(args, KeyDataDir, opts.DataDir, seen[KeyDataDir], *dataDir, config, EnvDataDir)
	resolveString(args, KeyOutputDir, opts.OutputDir, seen[KeyOutputDir], *outputDir, config, EnvOutputDir)

	if err := resolveInt(args, KeyTrainLogInterval, opts.TrainLogInterval, seen[KeyTrainLogInterval], *trainLogInterval, config, false); err != nil {
		return nil, err
	}
	if args[KeyTrainLogInterval] == nil {
		args[KeyTrainLogInterval] = *trainLogInterval
	}

	resolveBool(args, KeyPrintTrainIter, opts.PrintTrainIter, seen[KeyPrintTrainIter], *printTrainIter, config)
	resolveBool(args, KeyNoLogs, opts.NoLogs, seen[KeyNoLogs], *noLogs, config)

	if err := resolveHyperparams(args, hyperparams, hpFlags, seen, config, optimizerName); err != nil {
		return nil, err
	}

	return args, nil
}

// hyperparamFlag holds the parse targets for one hyperparameter flag.
type hyperparamFlag struct {
	floatVal  *float64
	intVal    *int
	boolVal   *bool
	stringVal *string
}

func registerHyperparamFlags(fs *flag.FlagSet, hyperparams []Hyperparameter) map[string]hyperparamFlag {
	flags := make(map[string]hyperparamFlag, len(hyperparams))
	for _, hp := range hyperparams {
		usage := fmt.Sprintf("Optimizer hyperparameter %s (%s).", hp.Name, hp.Type)
		var f hyperparamFlag
		switch hp.Type {
		case FloatHyperparam:
			def := 0.0
			if hp.HasDefault {
				def = hp.Default.(float64)
			}
			f.floatVal = fs.Float64(hp.Name, def, usage)
		case IntHyperparam:
			def := 0
			if hp.HasDefault {
				def = hp.Default.(int)
			}
			f.intVal = fs.Int(hp.Name, def, usage)
		case BoolHyperparam:
			def := false
			if hp.HasDefault {
				def = hp.Default.(bool)
			}
			f.boolVal = fs.Bool(hp.Name, def, usage)
		case StringHyperparam:
			def := ""
			if hp.HasDefault {
				def = hp.Default.(string)
			}
			f.stringVal = fs.String(hp.Name, def, usage)
		}
		flags[hp.Name] = f
	}
	return flags
}

func resolveHyperparams(args map[string]any, hyperparams []Hyperparameter, flags map[string]hyperparamFlag,
	seen map[string]bool, config map[string]any, optimizerName string) error {

	for _, hp := range hyperparams {
		f := flags[hp.Name]
		if seen[hp.Name] {
			args[hp.Name] = hyperparamFlagValue(hp, f)
			continue
		}
		if v, ok := configHyperparam(config, hp); ok {
			args[hp.Name] = v
			continue
		}
		if hp.HasDefault {
			args[hp.Name] = hp.Default
			continue
		}
		return fmt.Errorf("missing required hyperparameter %s of %s", hp.Name, optimizerName)
	}
	return nil
}

func hyperparamFlagValue(hp Hyperparameter, f hyperparamFlag) any {
	switch hp.Type {
	case FloatHyperparam:
		return *f.floatVal
	case IntHyperparam:
		return *f.intVal
	case BoolHyperparam:
		return *f.boolVal
	default:
		return *f.stringVal
	}
}

func resolveInt(args map[string]any, key string, caller *int, flagSet bool, flagVal int, config map[string]any, required bool) error {
	switch {
	case caller != nil:
		args[key] = *caller
	case flagSet:
		args[key] = flagVal
	default:
		if v, ok := configInt(config, key); ok {
			args[key] = v
		} else if required {
			return fmt.Errorf("missing required argument: %s", key)
		}
	}
	return nil
}

func resolveString(args map[string]any, key string, caller *string, flagSet bool, flagVal string, config map[string]any, envKey string) {
	switch {
	case caller != nil:
		args[key] = *caller
	case flagSet:
		args[key] = flagVal
	default:
		if v, ok := configString(config, key); ok {
			args[key] = v
		} else if env := os.Getenv(envKey); env != "" {
			args[key] = env
		} else {
			args[key] = flagVal
		}
	}
}

func resolveBool(args map[string]any, key string, caller *bool, flagSet bool, flagVal bool, config map[string]any) {
	switch {
	case caller != nil:
		args[key] = *caller
	case flagSet:
		args[key] = flagVal
	default:
		if v, ok := configBool(config, key); ok {
			args[key] = v
		} else {
			args[key] = flagVal
		}
	}
}
