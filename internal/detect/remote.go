package detect

import (
	"fmt"
	"image"
	"io"
	"net"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/SalmaanRauf/Reel-Maker/internal/crop"
)

// RemoteDetector delegates detection to a model sidecar over a Unix
// socket. Frames travel as raw RGB, detections come back as top-left
// anchored rectangles; both directions are msgpack encoded.
type RemoteDetector struct {
	socketPath string
	timeout    time.Duration
}

type inferenceRequest struct {
	Height     int     `msgpack:"h"`
	Width      int     `msgpack:"w"`
	Confidence float64 `msgpack:"c"`
	Data       []byte  `msgpack:"d"` // RGB uint8, row-major, shape (H, W, 3)
}

type remoteDetection struct {
	X          float64 `msgpack:"x"`
	Y          float64 `msgpack:"y"`
	Width      float64 `msgpack:"w"`
	Height     float64 `msgpack:"h"`
	Confidence float64 `msgpack:"c"`
}

type inferenceResponse struct {
	Detections  []remoteDetection `msgpack:"detections"`
	InferenceMs float64           `msgpack:"inference_ms"`
}

// NewRemoteDetector creates a client for a detection sidecar.
func NewRemoteDetector(socketPath string, timeout time.Duration) *RemoteDetector {
	if timeout <= 0 {
		timeout = 500 * time.Millisecond
	}
	return &RemoteDetector{socketPath: socketPath, timeout: timeout}
}

// Detect implements crop.Detector.
func (d *RemoteDetector) Detect(frame image.Image, confidenceThreshold float64) ([]crop.BoundingBox, error) {
	conn, err := net.DialTimeout("unix", d.socketPath, d.timeout)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to detection sidecar: %w", err)
	}
	defer conn.Close()

	conn.SetDeadline(time.Now().Add(d.timeout))

	bounds := frame.Bounds()
	req := inferenceRequest{
		Height:     bounds.Dy(),
		Width:      bounds.Dx(),
		Confidence: confidenceThreshold,
		Data:       packRGB(frame),
	}

	payload, err := msgpack.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	if _, err := conn.Write(payload); err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	if uc, ok := conn.(*net.UnixConn); ok {
		uc.CloseWrite()
	}

	raw, err := io.ReadAll(conn)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var resp inferenceResponse
	if err := msgpack.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	boxes := make([]crop.BoundingBox, 0, len(resp.Detections))
	for _, det := range resp.Detections {
		if det.Confidence < confidenceThreshold {
			continue
		}
		boxes = append(boxes, crop.BoundingBox{
			X1:         det.X,
			Y1:         det.Y,
			X2:         det.X + det.Width,
			Y2:         det.Y + det.Height,
			Confidence: det.Confidence,
		})
	}

	return boxes, nil
}

// packRGB serializes an image as row-major RGB bytes.
func packRGB(img image.Image) []byte {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	data := make([]byte, 0, w*h*3)

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, b, _ := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			data = append(data, byte(r>>8), byte(g>>8), byte(b>>8))
		}
	}

	return data
}
