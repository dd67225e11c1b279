package journal

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/shadowcopy/pkg/mirror"
)

func openTestJournal(t *testing.T) *Journal {
	t.Helper()
	j, err := Open(filepath.Join(t.TempDir(), "data"))
	require.NoError(t, err)
	t.Cleanup(func() { j.Close() })
	return j
}

func TestOpenCreatesDataDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")
	j, err := Open(dir)
	require.NoError(t, err)
	defer j.Close()

	assert.DirExists(t, dir)
}

func TestNewRun(t *testing.T) {
	a := NewRun("/src", "/dst", true)
	b := NewRun("/src", "/dst", true)

	assert.NotEmpty(t, a.ID)
	assert.NotEqual(t, a.ID, b.ID)
	assert.True(t, a.Clean)
	assert.False(t, a.StartedAt.IsZero())
	assert.True(t, a.FinishedAt.IsZero())
}

func TestRecordAndList(t *testing.T) {
	j := openTestJournal(t)

	first := NewRun("/srv/site", "/srv/shadow/1", false)
	first.StartedAt = time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	first.FinishedAt = first.StartedAt.Add(2 * time.Second)
	require.NoError(t, j.Record(first, mirror.Stats{FilesCopied: 4, FilesSkipped: 1}))

	second := NewRun("/srv/site", "/srv/shadow/2", true)
	second.StartedAt = first.StartedAt.Add(time.Hour)
	second.FinishedAt = second.StartedAt.Add(time.Second)
	require.NoError(t, j.Record(second, mirror.Stats{FilesCopied: 5, FilesFailed: 2}))

	runs, err := j.Runs(0)
	require.NoError(t, err)
	require.Len(t, runs, 2)

	// Most recent first.
	assert.Equal(t, second.ID, runs[0].ID)
	assert.Equal(t, first.ID, runs[1].ID)

	assert.Equal(t, "/srv/shadow/2", runs[0].Destination)
	assert.True(t, runs[0].Clean)
	assert.Equal(t, 5, runs[0].Copied)
	assert.Equal(t, 2, runs[0].Failed)

	assert.False(t, runs[1].Clean)
	assert.Equal(t, 4, runs[1].Copied)
	assert.Equal(t, 1, runs[1].Skipped)
	assert.True(t, runs[1].StartedAt.Equal(first.StartedAt))
}

func TestRunsLimit(t *testing.T) {
	j := openTestJournal(t)

	base := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		run := NewRun("/src", "/dst", false)
		run.StartedAt = base.Add(time.Duration(i) * time.Minute)
		run.FinishedAt = run.StartedAt.Add(time.Second)
		require.NoError(t, j.Record(run, mirror.Stats{}))
	}

	runs, err := j.Runs(2)
	require.NoError(t, err)
	assert.Len(t, runs, 2)
}

func TestRecordStampsFinishTime(t *testing.T) {
	j := openTestJournal(t)

	run := NewRun("/src", "/dst", false)
	require.NoError(t, j.Record(run, mirror.Stats{}))

	runs, err := j.Runs(1)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.False(t, runs[0].FinishedAt.IsZero())
}

func TestCloseIsIdempotent(t *testing.T) {
	j, err := Open(filepath.Join(t.TempDir(), "data"))
	require.NoError(t, err)

	require.NoError(t, j.Close())
	require.NoError(t, j.Close())
}
