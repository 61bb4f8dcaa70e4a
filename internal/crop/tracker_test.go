package crop

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrackerCropSizeWideSource(t *testing.T) {
	// 3840x2160 source to 9:16: full height kept, width derived
	tr := NewTracker(3840, 2160, 1080, 1920, 15)

	w, h := tr.CropSize()
	assert.Equal(t, 1215, w) // 2160 * 9/16
	assert.Equal(t, 2160, h)
}

func TestTrackerCropSizeTallSource(t *testing.T) {
	// Source narrower than the target aspect: full width kept instead
	tr := NewTracker(1080, 1920, 1920, 1080, 15)

	w, h := tr.CropSize()
	assert.Equal(t, 1080, w)
	assert.Equal(t, 607, h) // 1080 / (16/9)
}

func TestTrackerConcreteScenario(t *testing.T) {
	tr := NewTracker(3840, 2160, 1080, 1920, 15)

	region := tr.Update([]BoundingBox{
		{X1: 1000, Y1: 400, X2: 1400, Y2: 1200, Confidence: 0.9},
		{X1: 2400, Y1: 400, X2: 2700, Y2: 1100, Confidence: 0.95},
	})

	// Larger box wins: center 1200, crop centered on it
	assert.Equal(t, 1215, region.Width)
	assert.Equal(t, 2160, region.Height)
	assert.InDelta(t, 1200, float64(region.X)+float64(region.Width)/2, 1.0)
	assert.GreaterOrEqual(t, region.X, 0)
	assert.LessOrEqual(t, region.X, 3840-1215)
	assert.Equal(t, 0, region.Y)
}

func TestTrackerNoDetectionsStaysCentered(t *testing.T) {
	tr := NewTracker(1920, 1080, 1080, 1920, 15)

	first := tr.Update(nil)
	for i := 0; i < 50; i++ {
		assert.Equal(t, first, tr.Update(nil))
	}

	// Full-frame center
	assert.InDelta(t, 960, float64(first.X)+float64(first.Width)/2, 1.0)
}

func TestTrackerClampsAtFrameEdges(t *testing.T) {
	tr := NewTracker(1920, 1080, 1080, 1920, 1)
	srcW := 1920
	cropW, _ := tr.CropSize()

	// Person hugging the left edge
	left := tr.Update([]BoundingBox{{X1: 0, Y1: 100, X2: 40, Y2: 900}})
	assert.Equal(t, 0, left.X)

	// Sustained position at the right edge; window of 1 follows instantly
	right := tr.Update([]BoundingBox{{X1: 1880, Y1: 100, X2: 1920, Y2: 900}})
	assert.Equal(t, srcW-cropW, right.X)
	assert.LessOrEqual(t, right.X+right.Width, srcW)
}

func TestTrackerAspectAndBoundsInvariants(t *testing.T) {
	tr := NewTracker(2560, 1440, 1080, 1920, 5)
	targetAspect := 1080.0 / 1920.0

	positions := []float64{100, 400, 1300, 2500, 60, 2400}
	for _, cx := range positions {
		region := tr.Update([]BoundingBox{{X1: cx - 50, Y1: 200, X2: cx + 50, Y2: 1200}})

		require.Greater(t, region.Width, 0)
		require.Greater(t, region.Height, 0)
		aspect := float64(region.Width) / float64(region.Height)
		assert.InDelta(t, targetAspect, aspect, 1.0/float64(region.Height))

		assert.GreaterOrEqual(t, region.X, 0)
		assert.GreaterOrEqual(t, region.Y, 0)
		assert.LessOrEqual(t, region.X+region.Width, 2560)
		assert.LessOrEqual(t, region.Y+region.Height, 1440)
	}
}
