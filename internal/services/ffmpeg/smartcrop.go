package ffmpeg

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/SalmaanRauf/Reel-Maker/internal/crop"
	"github.com/SalmaanRauf/Reel-Maker/internal/utils"
	"github.com/SalmaanRauf/Reel-Maker/internal/video"
)

// ApplyStaticCrop encodes the clip with one fixed crop averaged over the
// trajectory, then scales to the target resolution. Used when per-frame
// panning is not warranted (a static shot) or when no trajectory exists,
// in which case the crop falls back to frame center.
func ApplyStaticCrop(input, output string, trajectory crop.Trajectory, outWidth, outHeight int) error {
	region, ok := trajectory.Average()
	if !ok {
		meta, err := video.Probe(input)
		if err != nil {
			return fmt.Errorf("failed to probe source for fallback crop: %w", err)
		}
		region = centeredRegion(meta, outWidth, outHeight)
	}

	vf := fmt.Sprintf("crop=%d:%d:%d:%d,scale=%d:%d",
		region.Width, region.Height, region.X, region.Y, outWidth, outHeight)

	return encode(input, output, []string{"-vf", vf})
}

// ApplyDynamicCrop encodes the clip with the trajectory applied
// frame-by-frame. The trajectory's constant-region runs become a single
// crop filter whose x position is a sum of between(t,..) terms, handed to
// ffmpeg through a filter script file to dodge argv length limits.
func ApplyDynamicCrop(input, output string, trajectory crop.Trajectory, fps float64, outWidth, outHeight int) error {
	if len(trajectory) == 0 {
		return fmt.Errorf("trajectory is empty")
	}

	spans := trajectory.Compress(fps)
	filter := buildDynamicFilter(spans, outWidth, outHeight)
	log.Printf("[APPLIER] dynamic crop: %d samples folded into %d spans", len(trajectory), len(spans))

	if err := utils.EnsureDir("tmp"); err != nil {
		return fmt.Errorf("failed to create tmp dir: %w", err)
	}
	scriptFile, err := os.CreateTemp("tmp", "cropfilter-*.txt")
	if err != nil {
		return fmt.Errorf("failed to create filter script: %w", err)
	}
	defer os.Remove(scriptFile.Name())

	if _, err := scriptFile.WriteString(filter); err != nil {
		scriptFile.Close()
		return fmt.Errorf("failed to write filter script: %w", err)
	}
	scriptFile.Close()

	absScript, err := filepath.Abs(scriptFile.Name())
	if err != nil {
		return fmt.Errorf("failed to resolve filter script path: %w", err)
	}

	return encode(input, output, []string{
		"-filter_complex_script", absScript,
		"-map", "[out]",
		"-map", "0:a?",
	})
}

// buildDynamicFilter renders the compressed trajectory as one crop+scale
// filter chain. Crop size is constant across a session, so only x varies.
func buildDynamicFilter(spans []crop.Span, outWidth, outHeight int) string {
	region := spans[0].Region

	var xExpr string
	if len(spans) == 1 {
		xExpr = fmt.Sprintf("%d", region.X)
	} else {
		terms := make([]string, len(spans))
		for i, span := range spans {
			end := span.End
			if i < len(spans)-1 {
				// Keep adjacent between() windows from double-counting
				end -= 0.001
			}
			terms[i] = fmt.Sprintf("between(t,%.3f,%.3f)*%d", span.Start, end, span.Region.X)
		}
		xExpr = strings.Join(terms, "+")
	}

	return fmt.Sprintf("[0:v]crop=w=%d:h=%d:x='%s':y=%d,scale=%d:%d,setsar=1[out]",
		region.Width, region.Height, xExpr, region.Y, outWidth, outHeight)
}

// centeredRegion is the zero-detections fallback: a full-height crop at
// the target aspect ratio, horizontally centered.
func centeredRegion(meta video.Metadata, outWidth, outHeight int) crop.CropRegion {
	targetAspect := float64(outWidth) / float64(outHeight)
	cropH := meta.Height
	cropW := int(float64(meta.Height) * targetAspect)
	if cropW > meta.Width {
		cropW = meta.Width
		cropH = int(float64(meta.Width) / targetAspect)
	}

	return crop.CropRegion{
		X:      (meta.Width - cropW) / 2,
		Y:      (meta.Height - cropH) / 2,
		Width:  cropW,
		Height: cropH,
	}
}

// encode runs ffmpeg with shared output settings. An encoder failure is
// fatal: there is no valid output to salvage, so stderr is surfaced in
// the error.
func encode(input, output string, filterArgs []string) error {
	cmd := []string{
		"ffmpeg",
		"-y",
		"-i", input,
	}
	cmd = append(cmd, filterArgs...)
	cmd = append(cmd,
		"-c:v", "libx264",
		"-preset", "fast",
		"-crf", "18",
		"-c:a", "aac",
		"-b:a", "192k",
		output,
	)

	log.Println("[APPLIER] running:", strings.Join(cmd, " "))
	stderr, err := utils.Exec(cmd...)
	if err != nil {
		return fmt.Errorf("encode failed: %w: %s", err, stderr)
	}

	return nil
}
