package runner

// Schedule maps an epoch number to a learning rate multiplier. The
// effective learning rate for an epoch is the optimizer's base rate
// times the multiplier.
type Schedule func(epoch int) float64

// MakeLRSchedule builds a piecewise-constant learning rate schedule.
//
// Before epochs[0] the multiplier is 1. From epochs[i] on, the
// multiplier is factors[i], so the factor of the last breakpoint at or
// below the epoch wins. Nil lists give the constant-1 schedule.
//
// Epochs must be in ascending order and both lists the same length;
// this is not validated.
func MakeLRSchedule(epochs []int, factors []float64) Schedule {
	if epochs == nil || factors == nil {
		return func(epoch int) float64 { return 1 }
	}
	return func(epoch int) float64 {
		if epoch < epochs[0] {
			return 1
		}
		multiplier := factors[0]
		for i, e := range epochs {
			if e <= epoch {
				multiplier = factors[i]
			}
		}
		return multiplier
	}
}
