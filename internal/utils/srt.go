package utils

import (
	"bufio"
	"fmt"
	"os"
	"regexp"
	"strings"
)

// SRTEntry is one subtitle cue. Times keep the HH:MM:SS.mmm string form
// used throughout the ffmpeg plumbing.
type SRTEntry struct {
	Start string `json:"start"`
	End   string `json:"end"`
	Text  string `json:"text"`
}

var srtTimeRe = regexp.MustCompile(`(\d\d:\d\d:\d\d[,\.]\d\d\d) --> (\d\d:\d\d:\d\d[,\.]\d\d\d)`)

// ParseSRT reads a .srt file into entries, joining multi-line cue text.
func ParseSRT(path string) ([]SRTEntry, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var entries []SRTEntry
	var entry SRTEntry
	var textLines []string

	flush := func() {
		if entry.Start != "" && len(textLines) > 0 {
			entry.Text = strings.Join(textLines, " ")
			entries = append(entries, entry)
		}
		entry = SRTEntry{}
		textLines = nil
	}

	sc := bufio.NewScanner(file)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())

		if line == "" {
			flush()
			continue
		}

		if m := srtTimeRe.FindStringSubmatch(line); len(m) == 3 {
			flush()
			entry = SRTEntry{
				Start: strings.Replace(m[1], ",", ".", 1),
				End:   strings.Replace(m[2], ",", ".", 1),
			}
			continue
		}

		// Cue sequence numbers are noise
		if isDigits(line) {
			continue
		}

		if entry.Start != "" {
			textLines = append(textLines, line)
		}
	}
	flush()

	return entries, sc.Err()
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}

// TimeToSeconds converts HH:MM:SS(.mmm or ,mmm) to seconds.
func TimeToSeconds(t string) float64 {
	t = strings.Replace(t, ",", ".", 1)

	parts := strings.Split(t, ":")
	if len(parts) != 3 {
		return 0
	}

	var h, m, s float64
	fmt.Sscanf(parts[0], "%f", &h)
	fmt.Sscanf(parts[1], "%f", &m)
	fmt.Sscanf(parts[2], "%f", &s)

	return h*3600 + m*60 + s
}

// SecondsToSRTTime formats seconds as HH:MM:SS.mmm.
func SecondsToSRTTime(seconds float64) string {
	h := int(seconds / 3600)
	m := int((seconds - float64(h)*3600) / 60)
	s := seconds - float64(h)*3600 - float64(m)*60

	return fmt.Sprintf("%02d:%02d:%06.3f", h, m, s)
}

// CutSRT extracts cues overlapping [start, end], rebases timestamps to
// the clip start, and resolves overlapping auto-caption cues by clipping
// the earlier cue's end to the next cue's start.
func CutSRT(inputPath, outputPath, start, end string) error {
	entries, err := ParseSRT(inputPath)
	if err != nil {
		return err
	}

	startSec := TimeToSeconds(start)
	endSec := TimeToSeconds(end)

	var filtered []SRTEntry
	for _, entry := range entries {
		if TimeToSeconds(entry.End) > startSec && TimeToSeconds(entry.Start) < endSec {
			filtered = append(filtered, entry)
		}
	}

	var merged []SRTEntry
	for i, entry := range filtered {
		if i > 0 {
			lastIdx := len(merged) - 1
			if TimeToSeconds(entry.Start) < TimeToSeconds(merged[lastIdx].End) {
				merged[lastIdx].End = entry.Start
			}
		}
		merged = append(merged, entry)
	}

	file, err := os.Create(outputPath)
	if err != nil {
		return err
	}
	defer file.Close()

	for i, entry := range merged {
		newStart := TimeToSeconds(entry.Start) - startSec
		newEnd := TimeToSeconds(entry.End) - startSec

		if newStart < 0 {
			newStart = 0
		}
		if newEnd > endSec-startSec {
			newEnd = endSec - startSec
		}

		fmt.Fprintf(file, "%d\n", i+1)
		fmt.Fprintf(file, "%s --> %s\n",
			strings.Replace(SecondsToSRTTime(newStart), ".", ",", 1),
			strings.Replace(SecondsToSRTTime(newEnd), ".", ",", 1))
		fmt.Fprintf(file, "%s\n\n", entry.Text)
	}

	return nil
}
