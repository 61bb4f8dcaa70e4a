package ffmpeg

import (
	"fmt"
	"log"

	"github.com/SalmaanRauf/Reel-Maker/internal/utils"
)

// Cut extracts [start, end] of the input into a H.264/AAC clip. Source
// videos often arrive as AV1/VP9+Opus, so this always transcodes.
func Cut(input, output, start, end string) error {
	startSec := utils.TimeToSeconds(start)
	endSec := utils.TimeToSeconds(end)
	duration := endSec - startSec

	if duration <= 0 {
		return fmt.Errorf("invalid time range: start=%s, end=%s", start, end)
	}

	// -ss before -i for fast seek, -t for duration
	cmd := []string{
		"ffmpeg",
		"-y",
		"-ss", start,
		"-i", input,
		"-t", fmt.Sprintf("%.3f", duration),
		"-c:v", "libx264",
		"-c:a", "aac",
		"-preset", "fast",
		"-crf", "23",
		output,
	}

	log.Println("[CUT] running:", cmd)
	stderr, err := utils.Exec(cmd...)
	if err != nil {
		return fmt.Errorf("cut failed: %w: %s", err, stderr)
	}

	return nil
}
