package crop

import (
	"context"
	"fmt"
	"image"
	"log"

	"gonum.org/v1/gonum/stat"
)

// Detector is the detection capability boundary. Implementations return
// zero or more person boxes for one frame; the engine does not care
// whether that is a neural model or a classical cascade.
type Detector interface {
	Detect(frame image.Image, confidenceThreshold float64) ([]BoundingBox, error)
}

// FrameSource is a decodable frame sequence with known geometry. Frame
// indices are absolute within the source video.
type FrameSource interface {
	Width() int
	Height() int
	FPS() float64
	Frame(ctx context.Context, index int) (image.Image, error)
}

// Sample is one trajectory record: the crop region for a single frame.
// The embedded region flattens into the record, so it serializes as
// {frame, time, x, y, width, height}.
type Sample struct {
	Frame int     `json:"frame"`
	Time  float64 `json:"time"`
	CropRegion
}

// Trajectory is the full per-frame crop sequence for a clip, ordered by
// monotonically increasing time. Read-only after generation.
type Trajectory []Sample

// GeneratorOptions configure one trajectory session.
type GeneratorOptions struct {
	TargetWidth         int
	TargetHeight        int
	SmoothingWindow     int
	SampleStride        int
	ConfidenceThreshold float64
}

// Generator drives frame sampling over a time range and emits one crop
// region per output frame. Detection runs only every SampleStride-th
// frame; frames in between reuse the last computed region verbatim. That
// hold-last-value policy is deliberate interpolation, not a caching bug:
// detection is the expensive step and the smoother's damping makes held
// positions indistinguishable from recomputed ones at typical strides.
type Generator struct {
	detector Detector
	opts     GeneratorOptions
}

// NewGenerator creates a trajectory generator around a detector.
func NewGenerator(detector Detector, opts GeneratorOptions) *Generator {
	if opts.SampleStride < 1 {
		opts.SampleStride = 1
	}
	if opts.SmoothingWindow < 1 {
		opts.SmoothingWindow = 1
	}
	return &Generator{detector: detector, opts: opts}
}

// Generate analyzes [startTime, endTime) of src and returns one sample
// per frame. A detector failure on a sampled frame is downgraded to "no
// detections" for that sample and logged; it never aborts the trajectory.
func (g *Generator) Generate(ctx context.Context, src FrameSource, startTime, endTime float64) (Trajectory, error) {
	fps := src.FPS()
	if fps <= 0 {
		return nil, fmt.Errorf("invalid source fps: %f", fps)
	}

	startFrame := int(startTime * fps)
	endFrame := int(endTime * fps)
	if endFrame < startFrame {
		return nil, fmt.Errorf("invalid time range: %.3f-%.3f", startTime, endTime)
	}

	tracker := NewTracker(src.Width(), src.Height(), g.opts.TargetWidth, g.opts.TargetHeight, g.opts.SmoothingWindow)

	total := endFrame - startFrame
	trajectory := make(Trajectory, 0, total)

	var last CropRegion

	for i := 0; i < total; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		frameIdx := startFrame + i

		// Frame 0 is always a sample point, so last is set before the
		// first hold.
		if i%g.opts.SampleStride == 0 {
			last = tracker.Update(g.detectFrame(ctx, src, frameIdx))
		}

		trajectory = append(trajectory, Sample{
			Frame:      frameIdx,
			Time:       float64(frameIdx) / fps,
			CropRegion: last,
		})
	}

	return trajectory, nil
}

// detectFrame fetches and detects one sampled frame. Any failure, decode
// or detection, is a recoverable condition reported as no detections.
func (g *Generator) detectFrame(ctx context.Context, src FrameSource, frameIdx int) []BoundingBox {
	frame, err := src.Frame(ctx, frameIdx)
	if err != nil {
		log.Printf("[CROP] frame %d read failed, holding position: %v", frameIdx, err)
		return nil
	}

	detections, err := g.detector.Detect(frame, g.opts.ConfidenceThreshold)
	if err != nil {
		log.Printf("[CROP] frame %d detection failed, holding position: %v", frameIdx, err)
		return nil
	}

	return detections
}

// Average collapses the trajectory into one fixed region by averaging the
// offsets. Dimensions come from the first sample since they are constant
// across a session. Used by the static crop mode.
func (t Trajectory) Average() (CropRegion, bool) {
	if len(t) == 0 {
		return CropRegion{}, false
	}

	xs := make([]float64, len(t))
	ys := make([]float64, len(t))
	for i, s := range t {
		xs[i] = float64(s.X)
		ys[i] = float64(s.Y)
	}

	return CropRegion{
		X:      int(stat.Mean(xs, nil)),
		Y:      int(stat.Mean(ys, nil)),
		Width:  t[0].Width,
		Height: t[0].Height,
	}, true
}

// Span is a run of consecutive frames sharing one crop region.
type Span struct {
	Start  float64
	End    float64
	Region CropRegion
}

// Compress folds the trajectory into spans of identical regions. The
// hold-last-value policy produces long constant runs, so this keeps the
// downstream filter expression short. End of the final span is the time
// one frame past the last sample.
func (t Trajectory) Compress(fps float64) []Span {
	if len(t) == 0 {
		return nil
	}

	spans := []Span{{Start: t[0].Time, Region: t[0].CropRegion}}
	for _, s := range t[1:] {
		last := &spans[len(spans)-1]
		if s.CropRegion == last.Region {
			continue
		}
		last.End = s.Time
		spans = append(spans, Span{Start: s.Time, Region: s.CropRegion})
	}
	spans[len(spans)-1].End = t[len(t)-1].Time + 1/fps

	return spans
}
