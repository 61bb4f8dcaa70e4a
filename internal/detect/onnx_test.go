package detect

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SalmaanRauf/Reel-Maker/internal/crop"
)

func TestIntersectionOverUnion(t *testing.T) {
	a := crop.BoundingBox{X1: 0, Y1: 0, X2: 100, Y2: 100}

	// Identical boxes
	assert.InDelta(t, 1.0, intersectionOverUnion(a, a), 1e-9)

	// Disjoint boxes
	b := crop.BoundingBox{X1: 200, Y1: 200, X2: 300, Y2: 300}
	assert.InDelta(t, 0.0, intersectionOverUnion(a, b), 1e-9)

	// Half overlap: intersection 5000, union 15000
	c := crop.BoundingBox{X1: 50, Y1: 0, X2: 150, Y2: 100}
	assert.InDelta(t, 1.0/3.0, intersectionOverUnion(a, c), 1e-9)
}

func TestSuppressOverlapsKeepsHighestConfidence(t *testing.T) {
	boxes := []crop.BoundingBox{
		{X1: 0, Y1: 0, X2: 100, Y2: 100, Confidence: 0.6},
		{X1: 5, Y1: 5, X2: 105, Y2: 105, Confidence: 0.9},
		{X1: 500, Y1: 500, X2: 600, Y2: 600, Confidence: 0.7},
	}

	kept := suppressOverlaps(boxes, 0.5)
	require.Len(t, kept, 2)

	// Sorted by confidence, overlapping lower-confidence box suppressed
	assert.InDelta(t, 0.9, kept[0].Confidence, 1e-9)
	assert.InDelta(t, 0.7, kept[1].Confidence, 1e-9)
}

func TestSuppressOverlapsEmpty(t *testing.T) {
	assert.Empty(t, suppressOverlaps(nil, 0.5))
}

func TestSigmoid(t *testing.T) {
	assert.InDelta(t, 0.5, sigmoid(0), 1e-6)
	assert.Greater(t, sigmoid(4), float32(0.97))
	assert.Less(t, sigmoid(-4), float32(0.03))
}

func TestBuildAnchorsCoversGrid(t *testing.T) {
	anchors := buildAnchors()
	require.Len(t, anchors, onnxAnchorCount)

	// First anchor is half a stride in; last is half a stride from the edge
	assert.InDelta(t, 4, anchors[0].cx, 1e-6)
	assert.InDelta(t, 4, anchors[0].cy, 1e-6)
	last := anchors[len(anchors)-1]
	assert.InDelta(t, onnxInputWidth-4, last.cx, 1e-6)
	assert.InDelta(t, onnxInputHeight-4, last.cy, 1e-6)
}

func TestNewUnknownBackend(t *testing.T) {
	_, err := New("tensorflow", Options{})
	assert.Error(t, err)
}
