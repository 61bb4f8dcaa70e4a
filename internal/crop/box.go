package crop

// BoundingBox is a detected person in source-frame pixel coordinates.
// Corners satisfy X1 < X2 and Y1 < Y2.
type BoundingBox struct {
	X1         float64
	Y1         float64
	X2         float64
	Y2         float64
	Confidence float64
}

// CenterX returns the horizontal center of the box.
func (b BoundingBox) CenterX() float64 {
	return (b.X1 + b.X2) / 2
}

// CenterY returns the vertical center of the box.
func (b BoundingBox) CenterY() float64 {
	return (b.Y1 + b.Y2) / 2
}

// Width returns the box width.
func (b BoundingBox) Width() float64 {
	return b.X2 - b.X1
}

// Height returns the box height.
func (b BoundingBox) Height() float64 {
	return b.Y2 - b.Y1
}

// Area returns the box area in square pixels.
func (b BoundingBox) Area() float64 {
	return b.Width() * b.Height()
}

// CropRegion is a top-left anchored crop rectangle in source-frame pixels.
// Width/Height match the configured target aspect ratio within rounding.
type CropRegion struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}
