package utils

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleSRT = `1
00:00:01,000 --> 00:00:03,500
hello there

2
00:00:04,000 --> 00:00:06,000
second line
continues here

3
00:01:00,000 --> 00:01:02,000
a minute in
`

func writeTempSRT(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.srt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestParseSRT(t *testing.T) {
	entries, err := ParseSRT(writeTempSRT(t, sampleSRT))
	require.NoError(t, err)
	require.Len(t, entries, 3)

	assert.Equal(t, "00:00:01.000", entries[0].Start)
	assert.Equal(t, "00:00:03.500", entries[0].End)
	assert.Equal(t, "hello there", entries[0].Text)

	// Multi-line cue text is joined
	assert.Equal(t, "second line continues here", entries[1].Text)

	assert.Equal(t, "00:01:00.000", entries[2].Start)
}

func TestTimeToSeconds(t *testing.T) {
	assert.InDelta(t, 3.5, TimeToSeconds("00:00:03.500"), 1e-9)
	assert.InDelta(t, 3.5, TimeToSeconds("00:00:03,500"), 1e-9)
	assert.InDelta(t, 3661.25, TimeToSeconds("01:01:01.250"), 1e-9)
	assert.InDelta(t, 0, TimeToSeconds("garbage"), 1e-9)
}

func TestSecondsToSRTTime(t *testing.T) {
	assert.Equal(t, "00:00:03.500", SecondsToSRTTime(3.5))
	assert.Equal(t, "01:01:01.250", SecondsToSRTTime(3661.25))
}

func TestTimeRoundTrip(t *testing.T) {
	for _, sec := range []float64{0, 1.5, 59.999, 61, 3599.5, 3725.125} {
		assert.InDelta(t, sec, TimeToSeconds(SecondsToSRTTime(sec)), 1e-3)
	}
}

func TestCutSRT(t *testing.T) {
	input := writeTempSRT(t, sampleSRT)
	output := filepath.Join(t.TempDir(), "cut.srt")

	require.NoError(t, CutSRT(input, output, "00:00:02", "00:00:10"))

	entries, err := ParseSRT(output)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	// Timestamps rebased to clip start; first cue clamps to zero
	assert.InDelta(t, 0, TimeToSeconds(entries[0].Start), 1e-3)
	assert.InDelta(t, 1.5, TimeToSeconds(entries[0].End), 1e-3)
	assert.InDelta(t, 2.0, TimeToSeconds(entries[1].Start), 1e-3)

	// The cue past the range is gone
	raw, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.False(t, strings.Contains(string(raw), "a minute in"))
}

func TestCutSRTOverlappingCues(t *testing.T) {
	overlapping := `1
00:00:01,000 --> 00:00:05,000
first

2
00:00:03,000 --> 00:00:06,000
second
`
	input := writeTempSRT(t, overlapping)
	output := filepath.Join(t.TempDir(), "cut.srt")

	require.NoError(t, CutSRT(input, output, "00:00:00", "00:00:10"))

	entries, err := ParseSRT(output)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	// Overlap resolved: first cue ends where the second starts
	assert.InDelta(t, TimeToSeconds(entries[1].Start), TimeToSeconds(entries[0].End), 1e-3)
}
