package runner

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Float2Str formats a float in scientific notation with the shortest
// mantissa that round-trips a 10-digit rendering. Trailing zeros and a
// trailing decimal point are stripped from the mantissa, so 1.0 becomes
// "1e+00" and 5e-4 becomes "5e-04".
func Float2Str(x float64) string {
	s := fmt.Sprintf("%.10e", x)
	mantissa, exponent, _ := strings.Cut(s, "e")
	mantissa = strings.TrimRight(mantissa, "0")
	mantissa = strings.TrimSuffix(mantissa, ".")
	return mantissa + "e" + exponent
}

// hyperparamValueString renders a hyperparameter value for a run name.
// Floats use Float2Str, everything else its natural string form.
func hyperparamValueString(v any) string {
	switch val := v.(type) {
	case float64:
		return Float2Str(val)
	case bool:
		return strconv.FormatBool(val)
	case int:
		return strconv.Itoa(val)
	default:
		return fmt.Sprintf("%v", val)
	}
}

// MakeRunName builds the output names for an optimizer run.
//
// The folder name encodes every setting that distinguishes one
// hyperparameter configuration from another: epoch count, batch size,
// weight decay (only when explicitly given), the optimizer
// hyperparameters in sorted name order, and the learning rate. With a
// schedule the learning rate section lists each breakpoint as
// <epoch>_<factor*lr> pairs starting from epoch 0 at the base rate.
//
// The file name carries what varies between repeated runs of the same
// configuration: the random seed and a timestamp.
func MakeRunName(weightDecay *float64, batchSize, numEpochs int, learningRate float64,
	lrSchedEpochs []int, lrSchedFactors []float64, randomSeed int,
	optimizerHyperparams map[string]any, now time.Time) (string, string) {

	var folder strings.Builder
	fmt.Fprintf(&folder, "num_epochs__%d__batch_size__%d__", numEpochs, batchSize)
	if weightDecay != nil {
		fmt.Fprintf(&folder, "weight_decay__%s__", Float2Str(*weightDecay))
	}

	hpNames := make([]string, 0, len(optimizerHyperparams))
	for name := range optimizerHyperparams {
		hpNames = append(hpNames, name)
	}
	sort.Strings(hpNames)
	for _, name := range hpNames {
		fmt.Fprintf(&folder, "%s__%s__", name, hyperparamValueString(optimizerHyperparams[name]))
	}

	if lrSchedEpochs == nil {
		fmt.Fprintf(&folder, "lr__%s", Float2Str(learningRate))
	} else {
		fmt.Fprintf(&folder, "lr_schedule__0_%s", Float2Str(learningRate))
		for i, epoch := range lrSchedEpochs {
			fmt.Fprintf(&folder, "_%d_%s", epoch, Float2Str(lrSchedFactors[i]*learningRate))
		}
	}

	file := fmt.Sprintf("random_seed__%d__%s", randomSeed, now.Format("2006-01-02-15-04-05"))
	return folder.String(), file
}
