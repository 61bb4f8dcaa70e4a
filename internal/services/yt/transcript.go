package yt

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/SalmaanRauf/Reel-Maker/internal/utils"
)

// DownloadTranscript fetches auto-generated subtitles for the video and
// returns the path to the resulting subtitle file.
func DownloadTranscript(url, lang string) (string, error) {
	videoID := ExtractVideoID(url)
	if videoID == "" {
		return "", fmt.Errorf("invalid YouTube URL: cannot extract video ID")
	}
	if lang == "" {
		lang = "en"
	}

	utils.EnsureDir(downloadDir)
	outputTemplate := fmt.Sprintf("%s/%s", downloadDir, videoID)

	cmd := []string{
		"yt-dlp",
		"--write-auto-sub",
		"--sub-lang", lang,
		"--sub-format", "srt",
		"--skip-download",
		"-o", outputTemplate,
		url,
	}

	log.Println("[YT] running:", cmd)
	if _, err := utils.Exec(cmd...); err != nil {
		return "", fmt.Errorf("yt-dlp failed: %w", err)
	}

	return FindSubtitle(videoID, lang)
}

// FindSubtitle locates a previously downloaded subtitle file for a video.
func FindSubtitle(videoID, lang string) (string, error) {
	candidates := []string{
		fmt.Sprintf(".%s.srt", lang),
		fmt.Sprintf(".%s.vtt", lang),
		".srt",
		".vtt",
	}
	for _, ext := range candidates {
		path := filepath.Join(downloadDir, videoID+ext)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	return "", fmt.Errorf("subtitle file not found for video ID: %s", videoID)
}
