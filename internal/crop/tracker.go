package crop

// Tracker turns per-frame detections into a stable crop rectangle. The
// crop dimensions are computed once and stay constant for the whole
// session; only the offset moves, which is what makes the result read as
// a camera pan instead of a per-frame zoom.
type Tracker struct {
	sourceWidth  int
	sourceHeight int
	cropWidth    int
	cropHeight   int

	selector Selector
	smoother Smoother
}

// NewTracker builds a tracker for one clip. The crop preserves the
// limiting source dimension and derives the other from the target aspect
// ratio, so the rectangle always fits inside the source frame.
func NewTracker(sourceWidth, sourceHeight, targetWidth, targetHeight, smoothingWindow int) *Tracker {
	targetAspect := float64(targetWidth) / float64(targetHeight)
	sourceAspect := float64(sourceWidth) / float64(sourceHeight)

	var cropW, cropH int
	if sourceAspect > targetAspect {
		// Source is wider than target, crop width
		cropH = sourceHeight
		cropW = int(float64(sourceHeight) * targetAspect)
	} else {
		// Source is taller, crop height
		cropW = sourceWidth
		cropH = int(float64(sourceWidth) / targetAspect)
	}

	return &Tracker{
		sourceWidth:  sourceWidth,
		sourceHeight: sourceHeight,
		cropWidth:    cropW,
		cropHeight:   cropH,
		selector:     LargestAreaSelector{},
		smoother:     NewExponentialSmoother(smoothingWindow, float64(sourceWidth)/2),
	}
}

// CropSize returns the fixed crop dimensions for this session.
func (t *Tracker) CropSize() (width, height int) {
	return t.cropWidth, t.cropHeight
}

// Update feeds one frame's detections and returns the crop region for
// that instant. An empty detection list holds the previous position.
func (t *Tracker) Update(detections []BoundingBox) CropRegion {
	var centerX float64
	selected, ok := t.selector.Select(detections)
	if ok {
		centerX = selected.CenterX()
	}

	smoothedX := t.smoother.Update(centerX, ok)

	cropX := clamp(int(smoothedX-float64(t.cropWidth)/2), 0, t.sourceWidth-t.cropWidth)
	cropY := clamp((t.sourceHeight-t.cropHeight)/2, 0, t.sourceHeight-t.cropHeight)

	return CropRegion{
		X:      cropX,
		Y:      cropY,
		Width:  t.cropWidth,
		Height: t.cropHeight,
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
