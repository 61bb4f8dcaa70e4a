package crop

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSmootherDefaultCenter(t *testing.T) {
	s := NewExponentialSmoother(15, 960)

	// Nothing observed yet: every miss returns the frame center.
	for i := 0; i < 5; i++ {
		assert.InDelta(t, 960, s.Update(0, false), 1e-9)
	}
}

func TestSmootherHoldsOnMiss(t *testing.T) {
	s := NewExponentialSmoother(15, 960)

	got := s.Update(1200, true)
	assert.InDelta(t, 1200, got, 1e-9)

	// A missed detection holds position instead of snapping to center
	assert.InDelta(t, got, s.Update(0, false), 1e-9)
	assert.InDelta(t, got, s.LastCenter(), 1e-9)
}

func TestSmootherMissDoesNotPushHistory(t *testing.T) {
	// Interleaving a miss must not change the window contents: the two
	// smoothers below must agree after the same real observations.
	withMiss := NewExponentialSmoother(10, 0)
	withMiss.Update(100, true)
	withMiss.Update(0, false)
	got := withMiss.Update(300, true)

	without := NewExponentialSmoother(10, 0)
	without.Update(100, true)
	want := without.Update(300, true)

	assert.InDelta(t, want, got, 1e-9)
}

func TestSmootherConvergesToSustainedPosition(t *testing.T) {
	const window = 15
	s := NewExponentialSmoother(window, 960)

	for i := 0; i < window; i++ {
		s.Update(500, true)
	}

	// Sustained jump to 2000: after a full window the history holds only
	// the new position, so the weighted mean must equal it.
	var got float64
	for i := 0; i < window; i++ {
		got = s.Update(2000, true)
	}

	assert.InDelta(t, 2000, got, 1e-6)
}

func TestSmootherDampsSingleOutlier(t *testing.T) {
	const base = 1000.0
	const offset = 800.0

	s := NewExponentialSmoother(10, base)
	for i := 0; i < 9; i++ {
		s.Update(base, true)
	}

	got := s.Update(base+offset, true)
	deviation := got - base

	// The outlier moves the output, but by less than the raw offset
	assert.Greater(t, deviation, 0.0)
	assert.Less(t, deviation, offset)
}

func TestSmootherRecencyBias(t *testing.T) {
	s := NewExponentialSmoother(4, 0)
	s.Update(100, true)
	s.Update(100, true)
	s.Update(100, true)
	got := s.Update(200, true)

	// Plain average would give 125; exponential weights pull higher
	assert.Greater(t, got, 125.0)
	assert.Less(t, got, 200.0)
}

func TestCenterRingEviction(t *testing.T) {
	r := newCenterRing(3)
	r.push(1)
	r.push(2)
	r.push(3)
	r.push(4)

	assert.Equal(t, []float64{2, 3, 4}, append([]float64(nil), r.values()...))

	r.push(5)
	r.push(6)
	assert.Equal(t, []float64{4, 5, 6}, append([]float64(nil), r.values()...))
}

func TestCenterRingPartialFill(t *testing.T) {
	r := newCenterRing(5)
	assert.Empty(t, r.values())

	r.push(7)
	assert.Equal(t, []float64{7}, append([]float64(nil), r.values()...))
}
