package runner

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// runConfigSchema validates run-config files. Standard arguments are
// typed; additional properties are allowed so a config can carry
// optimizer hyperparameters.
const runConfigSchema = `{
  "type": "object",
  "properties": {
    "testproblem": {"type": "string"},
    "weight_decay": {"type": "number", "minimum": 0},
    "batch_size": {"type": "integer", "minimum": 1},
    "num_epochs": {"type": "integer", "minimum": 1},
    "learning_rate": {"type": "number", "exclusiveMinimum": 0},
    "lr_sched_epochs": {"type": "array", "items": {"type": "integer", "minimum": 1}},
    "lr_sched_factors": {"type": "array", "items": {"type": "number"}},
    "random_seed": {"type": "integer"},
    "data_dir": {"type": "string"},
    "output_dir": {"type": "string"},
    "train_log_interval": {"type": "integer", "minimum": 1},
    "print_train_iter": {"type": "boolean"},
    "no_logs": {"type": "boolean"}
  },
  "additionalProperties": true
}`

var compiledRunConfigSchema = jsonschema.MustCompileString("run_config.json", runConfigSchema)

// LoadRunConfig reads and validates a JSON run-config file. The
// returned map holds raw decoded JSON values.
func LoadRunConfig(path string) (map[string]any, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read run config: %w", err)
	}

	var decoded any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil, fmt.Errorf("failed to parse run config %s: %w", path, err)
	}

	if err := compiledRunConfigSchema.Validate(decoded); err != nil {
		return nil, fmt.Errorf("invalid run config %s: %w", path, err)
	}

	config, ok := decoded.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("run config %s is not a JSON object", path)
	}
	return config, nil
}

// The config accessors convert raw JSON values to the argument types.
// JSON numbers decode as float64, so integer values need a checked
// conversion.

func configString(config map[string]any, key string) (string, bool) {
	v, ok := config[key].(string)
	return v, ok
}

func configFloat(config map[string]any, key string) (float64, bool) {
	v, ok := config[key].(float64)
	return v, ok
}

func configInt(config map[string]any, key string) (int, bool) {
	v, ok := config[key].(float64)
	if !ok || v != float64(int(v)) {
		return 0, false
	}
	return int(v), true
}

func configBool(config map[string]any, key string) (bool, bool) {
	v, ok := config[key].(bool)
	return v, ok
}

func configIntList(config map[string]any, key string) ([]int, bool) {
	raw, ok := config[key].([]any)
	if !ok {
		return nil, false
	}
	values := make([]int, len(raw))
	for i, item := range raw {
		f, ok := item.(float64)
		if !ok || f != float64(int(f)) {
			return nil, false
		}
		values[i] = int(f)
	}
	return values, true
}

func configFloatList(config map[string]any, key string) ([]float64, bool) {
	raw, ok := config[key].([]any)
	if !ok {
		return nil, false
	}
	values := make([]float64, len(raw))
	for i, item := range raw {
		f, ok := item.(float64)
		if !ok {
			return nil, false
		}
		values[i] = f
	}
	return values, true
}

// configHyperparam reads a hyperparameter value from a config,
// converting to the declared type.
func configHyperparam(config map[string]any, hp Hyperparameter) (any, bool) {
	if _, present := config[hp.Name]; !present {
		return nil, false
	}
	switch hp.Type {
	case FloatHyperparam:
		return configFloat(config, hp.Name)
	case IntHyperparam:
		return configInt(config, hp.Name)
	case BoolHyperparam:
		return configBool(config, hp.Name)
	default:
		return configString(config, hp.Name)
	}
}
