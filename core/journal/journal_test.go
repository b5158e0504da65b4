package journal_test

import (
	"context"
	"testing"
	"time"

	"loot-ledger/core/journal"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJournal_RecordAndList(t *testing.T) {
	j, err := journal.Open(journal.Config{Path: ":memory:"})
	require.NoError(t, err)

	ctx := context.Background()

	first := &journal.Run{
		ID:         uuid.NewString(),
		StartedAt:  time.Now().Add(-2 * time.Hour),
		FinishedAt: time.Now().Add(-2 * time.Hour),
		WeekMarker: "2024-05-25",
		LootRows:   10,
	}
	second := &journal.Run{
		ID:            uuid.NewString(),
		StartedAt:     time.Now().Add(-time.Minute),
		FinishedAt:    time.Now(),
		WeekMarker:    "2024-06-01",
		LootRows:      12,
		EventsFlagged: 3,
		Published:     true,
	}

	require.NoError(t, j.Record(ctx, first))
	require.NoError(t, j.Record(ctx, second))

	runs, err := j.Runs(ctx)
	require.NoError(t, err)
	require.Len(t, runs, 2)

	// Most recent first
	assert.Equal(t, second.ID, runs[0].ID)
	assert.Equal(t, "2024-06-01", runs[0].WeekMarker)
	assert.Equal(t, 3, runs[0].EventsFlagged)
	assert.True(t, runs[0].Published)
	assert.Equal(t, first.ID, runs[1].ID)
}
