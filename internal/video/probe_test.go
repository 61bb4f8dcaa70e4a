package video

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseProbeOutput(t *testing.T) {
	raw := []byte(`{
		"streams": [
			{"width": 3840, "height": 2160, "r_frame_rate": "30000/1001"}
		],
		"format": {"duration": "734.567000"}
	}`)

	meta, err := parseProbeOutput(raw)
	require.NoError(t, err)

	assert.Equal(t, 3840, meta.Width)
	assert.Equal(t, 2160, meta.Height)
	assert.InDelta(t, 29.97, meta.FPS, 0.01)
	assert.InDelta(t, 734.567, meta.Duration, 1e-6)
}

func TestParseProbeOutputNoStream(t *testing.T) {
	_, err := parseProbeOutput([]byte(`{"streams": [], "format": {"duration": "10"}}`))
	assert.Error(t, err)
}

func TestParseProbeOutputGarbage(t *testing.T) {
	_, err := parseProbeOutput([]byte("not json"))
	assert.Error(t, err)
}

func TestParseFrameRate(t *testing.T) {
	cases := []struct {
		in   string
		want float64
	}{
		{"30/1", 30},
		{"30000/1001", 29.97002997},
		{"25", 25},
	}
	for _, tc := range cases {
		got, err := parseFrameRate(tc.in)
		require.NoError(t, err, tc.in)
		assert.InDelta(t, tc.want, got, 1e-6, tc.in)
	}

	_, err := parseFrameRate("thirty")
	assert.Error(t, err)
	_, err = parseFrameRate("30/0")
	assert.Error(t, err)
}
