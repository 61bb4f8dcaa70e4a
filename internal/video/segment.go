package video

import (
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	"os"
	"path/filepath"

	"github.com/SalmaanRauf/Reel-Maker/internal/utils"
)

// Segment is a time window of a source video, backed by JPEG frames
// extracted once with ffmpeg. It implements the crop engine's FrameSource
// with absolute frame indices, so a caller can seek any frame in the
// window without decoding the whole file itself.
type Segment struct {
	meta       Metadata
	framesDir  string
	startFrame int
	frameCount int
}

// OpenSegment extracts [startTime, endTime) of the video at native fps
// into a temp directory. endTime <= 0 means the end of the video. Close
// releases the extracted frames.
func OpenSegment(path string, startTime, endTime float64) (*Segment, error) {
	meta, err := Probe(path)
	if err != nil {
		return nil, err
	}
	if endTime <= 0 {
		endTime = meta.Duration
	}

	if err := utils.EnsureDir("tmp"); err != nil {
		return nil, fmt.Errorf("failed to create tmp dir: %w", err)
	}
	framesDir, err := os.MkdirTemp("tmp", "frames-")
	if err != nil {
		return nil, fmt.Errorf("failed to create frames directory: %w", err)
	}

	duration := endTime - startTime
	if duration <= 0 {
		os.RemoveAll(framesDir)
		return nil, fmt.Errorf("invalid time range: %.3f-%.3f", startTime, endTime)
	}

	pattern := filepath.Join(framesDir, "frame_%06d.jpg")
	_, err = utils.Exec(
		"ffmpeg",
		"-ss", fmt.Sprintf("%.3f", startTime),
		"-i", path,
		"-t", fmt.Sprintf("%.3f", duration),
		"-q:v", "2",
		pattern,
	)
	if err != nil {
		os.RemoveAll(framesDir)
		return nil, fmt.Errorf("failed to extract frames: %w", err)
	}

	files, err := filepath.Glob(filepath.Join(framesDir, "frame_*.jpg"))
	if err != nil || len(files) == 0 {
		os.RemoveAll(framesDir)
		return nil, fmt.Errorf("no frames extracted from %s", path)
	}

	return &Segment{
		meta:       meta,
		framesDir:  framesDir,
		startFrame: int(startTime * meta.FPS),
		frameCount: len(files),
	}, nil
}

func (s *Segment) Width() int   { return s.meta.Width }
func (s *Segment) Height() int  { return s.meta.Height }
func (s *Segment) FPS() float64 { return s.meta.FPS }

// Metadata returns the probed source metadata.
func (s *Segment) Metadata() Metadata { return s.meta }

// Frame decodes the frame at the given absolute source index.
func (s *Segment) Frame(ctx context.Context, index int) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	local := index - s.startFrame
	if local < 0 || local >= s.frameCount {
		return nil, fmt.Errorf("frame %d outside extracted window", index)
	}

	// ffmpeg numbers extracted frames starting at 1
	path := filepath.Join(s.framesDir, fmt.Sprintf("frame_%06d.jpg", local+1))
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open frame: %w", err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode frame: %w", err)
	}

	return img, nil
}

// Close removes the extracted frames.
func (s *Segment) Close() error {
	return os.RemoveAll(s.framesDir)
}
