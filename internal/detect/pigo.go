package detect

import (
	"fmt"
	"image"
	"log"
	"os"

	pigo "github.com/esimov/pigo/core"

	"github.com/SalmaanRauf/Reel-Maker/internal/crop"
)

const (
	pigoMinSize     = 20
	pigoMaxSize     = 2000
	pigoShiftFactor = 0.1
	pigoScaleFactor = 1.1
	pigoIoU         = 0.2
	// Pigo quality scores roughly span 0-100; divide to get a confidence
	pigoQualityScale = 100.0
)

// PigoDetector detects faces with the pure-Go pigo cascade. No CGO and no
// model server required, which makes it the default capability.
type PigoDetector struct {
	classifier *pigo.Pigo
}

// NewPigoDetector loads and unpacks a binary cascade file.
func NewPigoDetector(cascadePath string) (*PigoDetector, error) {
	data, err := os.ReadFile(cascadePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read cascade file: %w", err)
	}

	classifier, err := pigo.NewPigo().Unpack(data)
	if err != nil {
		return nil, fmt.Errorf("failed to unpack cascade: %w", err)
	}

	log.Printf("[DETECT] pigo cascade loaded from %s", cascadePath)
	return &PigoDetector{classifier: classifier}, nil
}

// Detect implements crop.Detector.
func (d *PigoDetector) Detect(frame image.Image, confidenceThreshold float64) ([]crop.BoundingBox, error) {
	bounds := frame.Bounds()
	cols := bounds.Dx()
	rows := bounds.Dy()

	params := pigo.CascadeParams{
		MinSize:     pigoMinSize,
		MaxSize:     pigoMaxSize,
		ShiftFactor: pigoShiftFactor,
		ScaleFactor: pigoScaleFactor,
		ImageParams: pigo.ImageParams{
			Pixels: grayscale(frame),
			Rows:   rows,
			Cols:   cols,
			Dim:    cols,
		},
	}

	dets := d.classifier.RunCascade(params, 0.0)
	dets = d.classifier.ClusterDetections(dets, pigoIoU)

	var boxes []crop.BoundingBox
	for _, det := range dets {
		conf := float64(det.Q) / pigoQualityScale
		if conf < confidenceThreshold {
			continue
		}

		// Pigo reports a center (Row, Col) and radius; convert to corners
		radius := float64(det.Scale)
		boxes = append(boxes, crop.BoundingBox{
			X1:         float64(det.Col) - radius,
			Y1:         float64(det.Row) - radius,
			X2:         float64(det.Col) + radius,
			Y2:         float64(det.Row) + radius,
			Confidence: conf,
		})
	}

	return boxes, nil
}

// grayscale flattens an image into the row-major gray buffer pigo expects.
func grayscale(img image.Image) []uint8 {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	gray := make([]uint8, w*h)

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, b, _ := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			gray[y*w+x] = uint8((r*299 + g*587 + b*114) / 1000 >> 8)
		}
	}

	return gray
}
