package crop

// Selector picks the dominant person out of one frame's detections.
type Selector interface {
	// Select returns the chosen box and true, or false when there is
	// nothing to choose from.
	Select(detections []BoundingBox) (BoundingBox, bool)
}

// LargestAreaSelector assumes the person taking up the most frame area is
// the active speaker. With exactly equal areas the first maximal box wins;
// the order of the input list decides and no further tie-break is defined.
type LargestAreaSelector struct{}

func (LargestAreaSelector) Select(detections []BoundingBox) (BoundingBox, bool) {
	if len(detections) == 0 {
		return BoundingBox{}, false
	}

	best := detections[0]
	bestArea := best.Area()

	for _, det := range detections[1:] {
		if a := det.Area(); a > bestArea {
			best = det
			bestArea = a
		}
	}

	return best, true
}
