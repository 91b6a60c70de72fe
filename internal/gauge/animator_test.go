package gauge_test

import (
	"testing"

	"codeberg.org/mutker/gaugectl/internal/gauge"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func settle(a *gauge.Animator) (ticks int) {
	for a.Active() {
		a.Tick()
		ticks++
		if ticks > 10*gauge.AnimationSteps {
			break
		}
	}
	return ticks
}

func TestAnimatorFirstValueSnaps(t *testing.T) {
	a := gauge.NewAnimator(true)

	v, animating := a.Advance(42)
	assert.Equal(t, 42.0, v)
	assert.False(t, animating)
}

func TestAnimatorDisabledSnaps(t *testing.T) {
	a := gauge.NewAnimator(false)
	a.Advance(0)

	v, animating := a.Advance(80)
	assert.Equal(t, 80.0, v)
	assert.False(t, animating)
}

func TestAnimatorConvergesExactly(t *testing.T) {
	pairs := [][2]float64{{0, 100}, {0.1, 0.7}, {100, 0}, {-3.3, 12.9}, {1e-9, 3e-9}}

	for _, p := range pairs {
		a := gauge.NewAnimator(true)
		a.Advance(p[0])

		_, animating := a.Advance(p[1])
		require.True(t, animating)

		ticks := settle(a)
		assert.Equal(t, gauge.AnimationSteps, ticks)
		assert.Equal(t, p[1], a.Displayed(), "from %v to %v", p[0], p[1])
	}
}

func TestAnimatorZeroStep(t *testing.T) {
	a := gauge.NewAnimator(true)
	a.Advance(50)

	v, animating := a.Advance(50)
	assert.Equal(t, 50.0, v)
	assert.False(t, animating)

	v, done := a.Tick()
	assert.Equal(t, 50.0, v)
	assert.True(t, done)
}

func TestAnimatorStepIncrement(t *testing.T) {
	a := gauge.NewAnimator(true)
	a.Advance(0)
	a.Advance(20)

	v, done := a.Tick()
	assert.InDelta(t, 1.0, v, 1e-12)
	assert.False(t, done)
}

func TestAnimatorRetargetMonotonic(t *testing.T) {
	a := gauge.NewAnimator(true)
	a.Advance(0)

	prev := a.Displayed()
	targets := []float64{10, 30, 35, 80, 100}
	for _, target := range targets {
		a.Advance(target)
		// Retarget after a few ticks, before the transition ends.
		for i := 0; i < 7; i++ {
			v, _ := a.Tick()
			assert.GreaterOrEqual(t, v, prev)
			assert.LessOrEqual(t, v, target)
			prev = v
		}
	}

	settle(a)
	assert.Equal(t, 100.0, a.Displayed())
}

func TestAnimatorRetargetStartsFromDisplayed(t *testing.T) {
	a := gauge.NewAnimator(true)
	a.Advance(0)
	a.Advance(100)
	for i := 0; i < 10; i++ {
		a.Tick()
	}
	mid := a.Displayed()

	v, animating := a.Advance(0)
	assert.Equal(t, mid, v, "no jump on retarget")
	assert.True(t, animating)

	next, _ := a.Tick()
	assert.InDelta(t, mid-mid/float64(gauge.AnimationSteps), next, 1e-9)
}

func TestAnimatorReset(t *testing.T) {
	a := gauge.NewAnimator(true)
	a.Advance(10)
	a.Advance(90)

	a.Reset()
	assert.False(t, a.Active())
	assert.False(t, a.Primed())

	v, animating := a.Advance(30)
	assert.Equal(t, 30.0, v)
	assert.False(t, animating)
}
