package log

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecent(t *testing.T) {
	tempDB(t)
	require.NoError(t, Open())

	now := time.Now().Unix()
	Log(Entry{Source: "cli:courses", Action: "list", Start: now - 20, End: now - 20, Success: true})
	Log(Entry{Source: "mcp:get_assignment", Action: "read", RequestID: "r1", Course: 1, Assignment: 2, Start: now - 10, End: now - 8, Error: "404"})
	Log(Entry{Source: "cli:courses", Action: "list", Start: now, End: now, Success: true})

	t.Run("newest first", func(t *testing.T) {
		got, err := Recent(10, "")
		require.NoError(t, err)
		require.Len(t, got, 3)
		assert.Equal(t, int64(3), got[0].ID)
		assert.Equal(t, "mcp:get_assignment", got[1].Source)
		assert.Equal(t, int64(2), got[1].Duration)
		assert.Equal(t, 2, got[1].Assignment)
		assert.False(t, got[1].Success)
		assert.Equal(t, "404", got[1].Error)
	})

	t.Run("limit and source", func(t *testing.T) {
		got, err := Recent(1, "cli:courses")
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, int64(3), got[0].ID)

		got, err = Recent(10, "cli:search")
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}

func TestPruneBefore(t *testing.T) {
	tempDB(t)
	require.NoError(t, Open())

	old := time.Now().Add(-48 * time.Hour).Unix()
	Log(Entry{Source: "cli:search", Action: "search", Start: old, End: old, Success: true})
	Log(Entry{Source: "cli:search", Action: "search", Start: old, End: old, Success: true})
	Event("cli:courses", "list").Write(nil)

	cutoff := time.Now().Add(-24 * time.Hour)
	n, err := CountBefore(cutoff)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	n, err = PruneBefore(cutoff)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	left, err := Recent(10, "")
	require.NoError(t, err)
	require.Len(t, left, 1)
	assert.Equal(t, "cli:courses", left[0].Source)
}

func TestQueries_Closed(t *testing.T) {
	tempDB(t)
	Close()

	_, err := Recent(5, "")
	assert.ErrorIs(t, err, ErrClosed)
	_, err = CountBefore(time.Now())
	assert.ErrorIs(t, err, ErrClosed)
	_, err = PruneBefore(time.Now())
	assert.ErrorIs(t, err, ErrClosed)
}
