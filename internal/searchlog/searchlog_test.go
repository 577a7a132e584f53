// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package searchlog

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "searchlog.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestRecordAndRecent(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Record(ctx, Entry{
		Term:     "machine learning",
		Sources:  []string{"arxiv", "doaj"},
		Total:    42,
		Duration: 750 * time.Millisecond,
	}))
	require.NoError(t, s.Record(ctx, Entry{
		Term:    "quantum computing",
		Sources: []string{"openalex"},
		Total:   7,
	}))

	entries, err := s.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	// Newest first.
	assert.Equal(t, "quantum computing", entries[0].Term)
	assert.Equal(t, []string{"openalex"}, entries[0].Sources)
	assert.Equal(t, "machine learning", entries[1].Term)
	assert.Equal(t, []string{"arxiv", "doaj"}, entries[1].Sources)
	assert.Equal(t, 42, entries[1].Total)
	assert.Equal(t, 750*time.Millisecond, entries[1].Duration)
	assert.False(t, entries[1].CreatedAt.IsZero())
}

func TestRecentLimit(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		require.NoError(t, s.Record(ctx, Entry{Term: "t", Sources: []string{"arxiv"}}))
	}

	entries, err := s.Recent(ctx, 3)
	require.NoError(t, err)
	assert.Len(t, entries, 3)
}

func TestRecentEmpty(t *testing.T) {
	s := openTestStore(t)

	entries, err := s.Recent(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
