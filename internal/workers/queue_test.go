package workers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreSubmitAndGet(t *testing.T) {
	store := NewStore(4)

	id, ok := store.Submit(Job{URL: "https://youtu.be/abc123", Start: "00:01:00", End: "00:02:00"})
	require.True(t, ok)
	require.NotEmpty(t, id)

	job, found := store.Get(id)
	require.True(t, found)
	assert.Equal(t, StatusQueued, job.Status)
	assert.Equal(t, "https://youtu.be/abc123", job.URL)

	// IDs are unique per submission
	id2, ok := store.Submit(Job{URL: "https://youtu.be/def456"})
	require.True(t, ok)
	assert.NotEqual(t, id, id2)
}

func TestStoreGetUnknown(t *testing.T) {
	store := NewStore(4)

	_, found := store.Get("no-such-job")
	assert.False(t, found)
}

func TestStoreQueueFull(t *testing.T) {
	store := NewStore(1)

	_, ok := store.Submit(Job{URL: "https://youtu.be/one"})
	require.True(t, ok)

	// Second submit has nowhere to go and must not leave a ghost job
	id, ok := store.Submit(Job{URL: "https://youtu.be/two"})
	assert.False(t, ok)
	assert.Empty(t, id)
}

func TestStoreUpdate(t *testing.T) {
	store := NewStore(4)
	id, ok := store.Submit(Job{URL: "https://youtu.be/abc"})
	require.True(t, ok)

	store.update(id, func(j *Job) {
		j.Status = StatusDone
		j.Output = "tmp/clips/abc_smart.mp4"
	})

	job, found := store.Get(id)
	require.True(t, found)
	assert.Equal(t, StatusDone, job.Status)
	assert.Equal(t, "tmp/clips/abc_smart.mp4", job.Output)
}
