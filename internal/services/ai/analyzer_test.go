package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCandidates(t *testing.T) {
	content := `{"clips":[{"start":"00:01:10","end":"00:02:05","hook":"the moment he realizes","score":0.92}]}`

	clips, err := parseCandidates(content)
	require.NoError(t, err)
	require.Len(t, clips, 1)

	assert.Equal(t, "00:01:10", clips[0].Start)
	assert.Equal(t, "00:02:05", clips[0].End)
	assert.InDelta(t, 0.92, clips[0].Score, 1e-9)
}

func TestParseCandidatesMarkdownFenced(t *testing.T) {
	content := "Here you go:\n```json\n{\"clips\":[{\"start\":\"00:00:05\",\"end\":\"00:00:45\",\"hook\":\"cold open\",\"score\":0.8}]}\n```"

	clips, err := parseCandidates(content)
	require.NoError(t, err)
	require.Len(t, clips, 1)
	assert.Equal(t, "cold open", clips[0].Hook)
}

func TestParseCandidatesInvalid(t *testing.T) {
	_, err := parseCandidates("I could not find any viral moments, sorry.")
	assert.Error(t, err)
}
