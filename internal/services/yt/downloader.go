package yt

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/SalmaanRauf/Reel-Maker/internal/utils"
)

const downloadDir = "tmp/downloads"

// VideoInfo holds the source video's public metadata.
type VideoInfo struct {
	Title   string `json:"title"`
	Channel string `json:"channel"`
}

// ExtractVideoID pulls the video ID out of the common YouTube URL forms.
func ExtractVideoID(url string) string {
	if strings.Contains(url, "watch?v=") {
		parts := strings.Split(url, "watch?v=")
		if len(parts) > 1 {
			return strings.Split(parts[1], "&")[0]
		}
	}
	if strings.Contains(url, "youtu.be/") {
		parts := strings.Split(url, "youtu.be/")
		if len(parts) > 1 {
			return strings.Split(parts[1], "?")[0]
		}
	}
	return ""
}

// DownloadVideo fetches the source video as mp4 and returns its path.
func DownloadVideo(url string) (string, error) {
	videoID := ExtractVideoID(url)
	if videoID == "" {
		return "", fmt.Errorf("invalid YouTube URL: cannot extract video ID")
	}

	utils.EnsureDir(downloadDir)
	output := fmt.Sprintf("%s/%s.mp4", downloadDir, videoID)

	cmd := []string{
		"yt-dlp",
		"-f", "bv*+ba/b",
		"--merge-output-format", "mp4",
		"-o", output,
		url,
	}

	log.Println("[YT] running:", cmd)
	if _, err := utils.Exec(cmd...); err != nil {
		return "", fmt.Errorf("download failed: %w", err)
	}

	if _, err := os.Stat(output); err == nil {
		return output, nil
	}

	// yt-dlp sometimes keeps the original container extension
	matches, _ := filepath.Glob(fmt.Sprintf("%s/%s.*", downloadDir, videoID))
	for _, m := range matches {
		switch strings.ToLower(filepath.Ext(m)) {
		case ".mp4", ".webm", ".mkv":
			return m, nil
		}
	}

	return "", fmt.Errorf("downloaded file not found for video ID: %s", videoID)
}

// GetVideoInfo reads the title and channel without downloading.
func GetVideoInfo(url string) (VideoInfo, error) {
	out, err := utils.Exec(
		"yt-dlp",
		"--print", "%(title)s\n%(channel)s",
		"--skip-download",
		url,
	)
	if err != nil {
		return VideoInfo{}, fmt.Errorf("failed to read video info: %w", err)
	}

	lines := strings.SplitN(strings.TrimSpace(out), "\n", 2)
	info := VideoInfo{Title: lines[0]}
	if len(lines) > 1 {
		info.Channel = lines[1]
	}

	return info, nil
}
