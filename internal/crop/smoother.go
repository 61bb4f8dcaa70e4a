package crop

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// Smoother damps frame-to-frame jitter in the selected horizontal center.
// Implementations keep per-session state and are not safe for concurrent
// use; updates must be applied in time order because the weighting is
// order-dependent.
type Smoother interface {
	// Update feeds one sample and returns the smoothed center. detected
	// reports whether centerX carries a real observation; when false the
	// smoother holds its last output instead of snapping back to center.
	Update(centerX float64, detected bool) float64
}

// ExponentialSmoother smooths centers with an exponentially weighted
// average over a bounded rolling window. Recent samples weigh more, so the
// output tracks sustained motion while single-frame outliers are damped.
type ExponentialSmoother struct {
	history    *centerRing
	lastCenter float64
}

// NewExponentialSmoother creates a smoother with the given window size.
// defaultCenter (normally source_width/2) is returned until the first
// detection arrives.
func NewExponentialSmoother(window int, defaultCenter float64) *ExponentialSmoother {
	if window < 1 {
		window = 1
	}
	return &ExponentialSmoother{
		history:    newCenterRing(window),
		lastCenter: defaultCenter,
	}
}

// Update implements Smoother. A missed detection neither pushes history
// nor moves the output, so one dropped frame cannot yank the crop back to
// frame center.
func (s *ExponentialSmoother) Update(centerX float64, detected bool) float64 {
	if !detected {
		return s.lastCenter
	}

	s.history.push(centerX)
	s.lastCenter = s.smoothed()
	return s.lastCenter
}

// LastCenter returns the most recently emitted smoothed center.
func (s *ExponentialSmoother) LastCenter() float64 {
	return s.lastCenter
}

// smoothed computes the weighted mean over the current window. Weights
// follow exp(linspace(-1, 0, n)): the newest sample gets e^0, the oldest
// e^-1. stat.Mean normalizes by the weight sum.
func (s *ExponentialSmoother) smoothed() float64 {
	values := s.history.values()
	n := len(values)
	if n == 0 {
		return s.lastCenter
	}

	weights := make([]float64, n)
	for i := range weights {
		t := -1.0
		if n > 1 {
			t = -1.0 + float64(i)/float64(n-1)
		}
		weights[i] = math.Exp(t)
	}

	return stat.Mean(values, weights)
}

// centerRing is a fixed-capacity ring buffer of center samples. Once full,
// each push evicts the oldest value. No allocation happens per push.
type centerRing struct {
	buf     []float64
	scratch []float64
	head    int
	size    int
}

func newCenterRing(capacity int) *centerRing {
	return &centerRing{
		buf:     make([]float64, capacity),
		scratch: make([]float64, 0, capacity),
	}
}

func (r *centerRing) push(v float64) {
	r.buf[r.head] = v
	r.head = (r.head + 1) % len(r.buf)
	if r.size < len(r.buf) {
		r.size++
	}
}

// values returns the window contents ordered oldest to newest. The slice
// is reused across calls.
func (r *centerRing) values() []float64 {
	r.scratch = r.scratch[:0]
	start := r.head - r.size
	if start < 0 {
		start += len(r.buf)
	}
	for i := 0; i < r.size; i++ {
		r.scratch = append(r.scratch, r.buf[(start+i)%len(r.buf)])
	}
	return r.scratch
}
