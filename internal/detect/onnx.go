package detect

import (
	"fmt"
	"image"
	"math"
	"os"
	"sort"

	ort "github.com/yalue/onnxruntime_go"

	"github.com/SalmaanRauf/Reel-Maker/internal/crop"
)

const (
	onnxInputWidth  = 640
	onnxInputHeight = 640
	onnxStride      = 8
	onnxGridSize    = onnxInputWidth / onnxStride
	onnxAnchorCount = onnxGridSize * onnxGridSize
	onnxIoU         = 0.6
)

// ONNXDetector runs a single-class person detector through ONNX Runtime.
// The model takes a 1x3x640x640 BGR tensor and emits per-anchor class
// scores and box offsets on the stride-8 feature map.
type ONNXDetector struct {
	session     *ort.AdvancedSession
	inputTensor *ort.Tensor[float32]
	clsTensor   *ort.Tensor[float32]
	bboxTensor  *ort.Tensor[float32]
	anchors     []anchor
}

type anchor struct {
	cx float32
	cy float32
}

// NewONNXDetector initializes the runtime environment and builds a
// session bound to reusable input/output tensors.
func NewONNXDetector(modelPath string) (*ONNXDetector, error) {
	libraryPath := "libonnxruntime.so"
	if os.PathSeparator == '\\' {
		libraryPath = "onnxruntime.dll"
	}
	ort.SetSharedLibraryPath(libraryPath)

	if err := ort.InitializeEnvironment(); err != nil {
		return nil, fmt.Errorf("failed to initialize ONNX Runtime: %w", err)
	}

	inputShape := ort.NewShape(1, 3, onnxInputHeight, onnxInputWidth)
	inputTensor, err := ort.NewTensor(inputShape, make([]float32, 1*3*onnxInputHeight*onnxInputWidth))
	if err != nil {
		return nil, fmt.Errorf("failed to create input tensor: %w", err)
	}

	clsTensor, err := ort.NewEmptyTensor[float32](ort.NewShape(1, onnxAnchorCount, 1))
	if err != nil {
		return nil, fmt.Errorf("failed to create cls tensor: %w", err)
	}

	bboxTensor, err := ort.NewEmptyTensor[float32](ort.NewShape(1, onnxAnchorCount, 4))
	if err != nil {
		return nil, fmt.Errorf("failed to create bbox tensor: %w", err)
	}

	session, err := ort.NewAdvancedSession(
		modelPath,
		[]string{"input"},
		[]string{"cls_8", "bbox_8"},
		[]ort.Value{inputTensor},
		[]ort.Value{clsTensor, bboxTensor},
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create ONNX session: %w", err)
	}

	return &ONNXDetector{
		session:     session,
		inputTensor: inputTensor,
		clsTensor:   clsTensor,
		bboxTensor:  bboxTensor,
		anchors:     buildAnchors(),
	}, nil
}

// Close releases the session, tensors and the runtime environment.
func (d *ONNXDetector) Close() {
	if d.session != nil {
		d.session.Destroy()
	}
	if d.inputTensor != nil {
		d.inputTensor.Destroy()
	}
	if d.clsTensor != nil {
		d.clsTensor.Destroy()
	}
	if d.bboxTensor != nil {
		d.bboxTensor.Destroy()
	}
	ort.DestroyEnvironment()
}

// Detect implements crop.Detector. Decoded boxes are rescaled from model
// input space back to source-frame coordinates.
func (d *ONNXDetector) Detect(frame image.Image, confidenceThreshold float64) ([]crop.BoundingBox, error) {
	bounds := frame.Bounds()
	srcW := float64(bounds.Dx())
	srcH := float64(bounds.Dy())

	d.fillInput(frame)

	if err := d.session.Run(); err != nil {
		return nil, fmt.Errorf("failed to run inference: %w", err)
	}

	boxes := d.decode(float32(confidenceThreshold))
	boxes = suppressOverlaps(boxes, onnxIoU)

	// Model space -> source space
	sx := srcW / onnxInputWidth
	sy := srcH / onnxInputHeight
	for i := range boxes {
		boxes[i].X1 *= sx
		boxes[i].X2 *= sx
		boxes[i].Y1 *= sy
		boxes[i].Y2 *= sy
	}

	return boxes, nil
}

func buildAnchors() []anchor {
	anchors := make([]anchor, 0, onnxAnchorCount)
	for y := 0; y < onnxGridSize; y++ {
		for x := 0; x < onnxGridSize; x++ {
			anchors = append(anchors, anchor{
				cx: (float32(x) + 0.5) * onnxStride,
				cy: (float32(y) + 0.5) * onnxStride,
			})
		}
	}
	return anchors
}

// fillInput nearest-neighbor resizes the frame into the NCHW BGR tensor.
func (d *ONNXDetector) fillInput(img image.Image) {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	data := d.inputTensor.GetData()

	const plane = onnxInputHeight * onnxInputWidth
	for y := 0; y < onnxInputHeight; y++ {
		for x := 0; x < onnxInputWidth; x++ {
			origX := bounds.Min.X + x*width/onnxInputWidth
			origY := bounds.Min.Y + y*height/onnxInputHeight

			r, g, b, _ := img.At(origX, origY).RGBA()
			idx := y*onnxInputWidth + x
			data[0*plane+idx] = float32(b >> 8)
			data[1*plane+idx] = float32(g >> 8)
			data[2*plane+idx] = float32(r >> 8)
		}
	}
}

// decode turns raw anchor scores and offsets into boxes in model input
// coordinates, discarding degenerate or out-of-bounds predictions.
func (d *ONNXDetector) decode(confidenceThreshold float32) []crop.BoundingBox {
	clsData := d.clsTensor.GetData()
	bboxData := d.bboxTensor.GetData()

	var boxes []crop.BoundingBox
	for i := 0; i < onnxAnchorCount; i++ {
		conf := sigmoid(clsData[i])
		if conf < confidenceThreshold {
			continue
		}

		dx := bboxData[i*4+0]
		dy := bboxData[i*4+1]
		dw := bboxData[i*4+2]
		dh := bboxData[i*4+3]

		a := d.anchors[i]
		cx := a.cx + dx*onnxStride
		cy := a.cy + dy*onnxStride
		w := float32(math.Abs(float64(dw))) * onnxStride
		h := float32(math.Abs(float64(dh))) * onnxStride

		x1 := cx - w/2
		y1 := cy - h/2
		x2 := cx + w/2
		y2 := cy + h/2

		const minSize = 10.0
		if w < minSize || h < minSize || w > onnxInputWidth || h > onnxInputHeight {
			continue
		}
		if x1 < 0 || y1 < 0 || x2 > onnxInputWidth || y2 > onnxInputHeight {
			continue
		}

		boxes = append(boxes, crop.BoundingBox{
			X1:         float64(x1),
			Y1:         float64(y1),
			X2:         float64(x2),
			Y2:         float64(y2),
			Confidence: float64(conf),
		})
	}

	return boxes
}

func sigmoid(x float32) float32 {
	return 1.0 / (1.0 + float32(math.Exp(float64(-x))))
}

// suppressOverlaps applies greedy non-maximum suppression by confidence.
func suppressOverlaps(boxes []crop.BoundingBox, iouThreshold float64) []crop.BoundingBox {
	if len(boxes) == 0 {
		return boxes
	}

	sort.Slice(boxes, func(i, j int) bool {
		return boxes[i].Confidence > boxes[j].Confidence
	})

	keep := make([]crop.BoundingBox, 0, len(boxes))
	used := make([]bool, len(boxes))

	for i := range boxes {
		if used[i] {
			continue
		}
		keep = append(keep, boxes[i])
		used[i] = true

		for j := i + 1; j < len(boxes); j++ {
			if used[j] {
				continue
			}
			if intersectionOverUnion(boxes[i], boxes[j]) > iouThreshold {
				used[j] = true
			}
		}
	}

	return keep
}

func intersectionOverUnion(a, b crop.BoundingBox) float64 {
	x1 := math.Max(a.X1, b.X1)
	y1 := math.Max(a.Y1, b.Y1)
	x2 := math.Min(a.X2, b.X2)
	y2 := math.Min(a.Y2, b.Y2)

	if x2 < x1 || y2 < y1 {
		return 0
	}

	intersection := (x2 - x1) * (y2 - y1)
	union := a.Area() + b.Area() - intersection
	if union == 0 {
		return 0
	}

	return intersection / union
}
