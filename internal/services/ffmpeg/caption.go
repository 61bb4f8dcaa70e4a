package ffmpeg

import (
	"fmt"
	"log"
	"strings"

	"github.com/SalmaanRauf/Reel-Maker/internal/utils"
)

// CaptionStyle configures burned-in subtitles.
type CaptionStyle struct {
	FontSize int
	FontName string
	Bold     int // 1 = bold
	MarginV  int // pixels from the bottom
	Outline  int
	Shadow   int
}

// DefaultCaptionStyle returns a short-form-video caption look.
func DefaultCaptionStyle() CaptionStyle {
	return CaptionStyle{
		FontSize: 12,
		FontName: "Montserrat-ExtraBold",
		Bold:     1,
		MarginV:  40,
		Outline:  2,
		Shadow:   1,
	}
}

// BurnCaptions renders an SRT file onto the video.
func BurnCaptions(input, srt, output string) error {
	return BurnCaptionsWithStyle(input, srt, output, DefaultCaptionStyle())
}

func BurnCaptionsWithStyle(input, srt, output string, style CaptionStyle) error {
	forceStyle := fmt.Sprintf("Fontsize=%d,Fontname=%s,Bold=%d,MarginV=%d,Outline=%d,Shadow=%d,Alignment=2",
		style.FontSize, style.FontName, style.Bold, style.MarginV, style.Outline, style.Shadow)

	vf := fmt.Sprintf("subtitles=%s:force_style='%s'", escapeSubtitlePath(srt), forceStyle)

	cmd := []string{
		"ffmpeg",
		"-y",
		"-i", input,
		"-vf", vf,
		"-c:v", "libx264",
		"-c:a", "aac",
		"-preset", "fast",
		output,
	}

	log.Println("[CAPTION] running:", cmd)
	stderr, err := utils.Exec(cmd...)
	if err != nil {
		return fmt.Errorf("burn captions failed: %w: %s", err, stderr)
	}

	return nil
}

// escapeSubtitlePath escapes characters the subtitle filter treats
// specially (path separators, colons, quotes).
func escapeSubtitlePath(path string) string {
	path = strings.ReplaceAll(path, "\\", "/")
	path = strings.ReplaceAll(path, ":", "\\:")
	path = strings.ReplaceAll(path, "'", "\\'")
	return path
}
