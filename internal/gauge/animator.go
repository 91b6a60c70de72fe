package gauge

import "time"

const (
	// AnimationSteps is the number of ticks a transition takes.
	AnimationSteps = 20
	// TickPeriod is the interval between animation ticks.
	TickPeriod = 15 * time.Millisecond
)

// Animator moves a displayed value toward a target in fixed steps. It is a
// plain state machine: the owner calls Tick on its own schedule.
type Animator struct {
	enabled bool
	steps   int

	displayed float64
	target    float64
	increment float64
	step      int
	active    bool
	primed    bool
}

// NewAnimator returns an animator. With enabled false every Advance snaps.
func NewAnimator(enabled bool) *Animator {
	return &Animator{enabled: enabled, steps: AnimationSteps}
}

// Advance sets a new target. The transition always starts from the value
// currently displayed, so a retarget mid-flight restarts the step count
// without a jump. It returns the displayed value and whether ticks are
// needed to reach the target.
func (a *Animator) Advance(target float64) (float64, bool) {
	a.target = target

	if !a.enabled || !a.primed || a.displayed == target {
		a.primed = true
		a.snap()
		return a.displayed, false
	}

	a.increment = (target - a.displayed) / float64(a.steps)
	a.step = 0
	a.active = true

	return a.displayed, true
}

// Tick applies one step. The final step assigns the exact target so no
// floating point residue survives. It returns the displayed value and
// whether the transition is finished.
func (a *Animator) Tick() (float64, bool) {
	if !a.active {
		return a.displayed, true
	}

	a.step++
	if a.step >= a.steps {
		a.snap()
		return a.displayed, true
	}

	a.displayed += a.increment

	return a.displayed, false
}

// Displayed returns the value currently shown.
func (a *Animator) Displayed() float64 {
	return a.displayed
}

// Target returns the most recent target.
func (a *Animator) Target() float64 {
	return a.target
}

// Active reports whether a transition is in progress.
func (a *Animator) Active() bool {
	return a.active
}

// Primed reports whether any value has been received since the last reset.
func (a *Animator) Primed() bool {
	return a.primed
}

// Reset forgets all state; the next Advance snaps.
func (a *Animator) Reset() {
	*a = Animator{enabled: a.enabled, steps: a.steps}
}

func (a *Animator) snap() {
	a.displayed = a.target
	a.increment = 0
	a.step = 0
	a.active = false
}
