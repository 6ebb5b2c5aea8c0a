package thicket

// DefaultStep is the fixed physics tick length in seconds.
const DefaultStep = 1.0 / 60.0

// DefaultMaxElapsed caps the wall time a single frame may feed the
// accumulator, so a long stall does not turn into a burst of ticks.
const DefaultMaxElapsed = 0.25

// FixedStep decouples the physics cadence from the render cadence. Wall-clock
// time is accumulated, and a tick of exactly Step seconds runs for as long as
// the accumulator is strictly greater than Step.
type FixedStep struct {
	// Step is the fixed tick length in seconds.
	Step float64

	// MaxElapsed clamps a frame's elapsed time. Zero or negative disables the
	// clamp.
	MaxElapsed float64

	// Paused drops frames entirely: nothing is accumulated and no tick runs.
	Paused bool

	acc float64
}

// NewFixedStep returns an accumulator with the given tick length and the
// default elapsed-time clamp. A non-positive step selects DefaultStep.
func NewFixedStep(step float64) *FixedStep {
	if step <= 0 {
		step = DefaultStep
	}
	return &FixedStep{Step: step, MaxElapsed: DefaultMaxElapsed}
}

// Advance feeds elapsed seconds of wall time into the accumulator and calls
// tick once per whole step it can drain. It returns the number of ticks run.
func (f *FixedStep) Advance(elapsed float64, tick func(dt float64)) int {
	if f.Paused || elapsed <= 0 || f.Step <= 0 {
		return 0
	}
	if f.MaxElapsed > 0 && elapsed > f.MaxElapsed {
		elapsed = f.MaxElapsed
	}
	f.acc += elapsed
	n := 0
	for f.acc > f.Step {
		tick(f.Step)
		f.acc -= f.Step
		n++
	}
	return n
}

// Alpha returns how far the accumulator is into the next tick, in [0, 1].
// Renderers use it to blend the previous and current world matrices.
func (f *FixedStep) Alpha() float64 {
	if f.Step <= 0 {
		return 0
	}
	return clamp(f.acc/f.Step, 0, 1)
}

// Accumulated returns the undrained time in seconds.
func (f *FixedStep) Accumulated() float64 {
	return f.acc
}

// Reset empties the accumulator.
func (f *FixedStep) Reset() {
	f.acc = 0
}
