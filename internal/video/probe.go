package video

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/SalmaanRauf/Reel-Maker/internal/utils"
)

// Metadata describes a decodable video stream.
type Metadata struct {
	Width    int
	Height   int
	FPS      float64
	Duration float64
}

// Probe reads stream geometry and duration with ffprobe.
func Probe(path string) (Metadata, error) {
	out, err := utils.Exec(
		"ffprobe",
		"-v", "error",
		"-select_streams", "v:0",
		"-show_entries", "stream=width,height,r_frame_rate",
		"-show_entries", "format=duration",
		"-of", "json",
		path,
	)
	if err != nil {
		return Metadata{}, fmt.Errorf("ffprobe failed: %w", err)
	}

	return parseProbeOutput([]byte(out))
}

type probeOutput struct {
	Streams []struct {
		Width     int    `json:"width"`
		Height    int    `json:"height"`
		FrameRate string `json:"r_frame_rate"`
	} `json:"streams"`
	Format struct {
		Duration string `json:"duration"`
	} `json:"format"`
}

func parseProbeOutput(raw []byte) (Metadata, error) {
	var out probeOutput
	if err := json.Unmarshal(raw, &out); err != nil {
		return Metadata{}, fmt.Errorf("failed to parse ffprobe output: %w", err)
	}
	if len(out.Streams) == 0 {
		return Metadata{}, fmt.Errorf("no video stream found")
	}

	stream := out.Streams[0]
	fps, err := parseFrameRate(stream.FrameRate)
	if err != nil {
		return Metadata{}, err
	}

	duration, err := strconv.ParseFloat(out.Format.Duration, 64)
	if err != nil {
		return Metadata{}, fmt.Errorf("failed to parse duration %q: %w", out.Format.Duration, err)
	}

	return Metadata{
		Width:    stream.Width,
		Height:   stream.Height,
		FPS:      fps,
		Duration: duration,
	}, nil
}

// parseFrameRate evaluates ffprobe's rational frame rate ("30000/1001").
func parseFrameRate(rate string) (float64, error) {
	num, den, found := strings.Cut(rate, "/")
	if !found {
		v, err := strconv.ParseFloat(rate, 64)
		if err != nil {
			return 0, fmt.Errorf("failed to parse frame rate %q: %w", rate, err)
		}
		return v, nil
	}

	n, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse frame rate %q: %w", rate, err)
	}
	d, err := strconv.ParseFloat(den, 64)
	if err != nil || d == 0 {
		return 0, fmt.Errorf("failed to parse frame rate %q", rate)
	}

	return n / d, nil
}
