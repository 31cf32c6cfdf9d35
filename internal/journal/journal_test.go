// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package journal

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/tinder4devs/devtinder-tui/internal/model"
)

func openTestJournal(t *testing.T) *Journal {
	t.Helper()
	j, err := Open(filepath.Join(t.TempDir(), "journal.db"))
	require.NoError(t, err)
	t.Cleanup(func() { j.Close() })
	return j
}

func TestRecordAndLookup(t *testing.T) {
	j := openTestJournal(t)
	ctx := context.Background()

	require.NoError(t, j.Record(ctx, "u1", model.DecisionInterested))

	decision, ok, err := j.Decided(ctx, "u1")
	require.NoError(t, err)
	require.True(t, ok, "recorded ID not found")
	require.Equal(t, model.DecisionInterested, decision)

	_, ok, err = j.Decided(ctx, "unknown")
	require.NoError(t, err)
	require.False(t, ok, "unknown ID reported as decided")
}

func TestFirstDecisionWins(t *testing.T) {
	j := openTestJournal(t)
	ctx := context.Background()

	require.NoError(t, j.Record(ctx, "u1", model.DecisionIgnore))
	require.NoError(t, j.Record(ctx, "u1", model.DecisionInterested))

	decision, _, err := j.Decided(ctx, "u1")
	require.NoError(t, err)
	require.Equal(t, model.DecisionIgnore, decision, "later record overwrote the first decision")
}

func TestRecordRejectsInvalid(t *testing.T) {
	j := openTestJournal(t)
	ctx := context.Background()

	require.Error(t, j.Record(ctx, "", model.DecisionInterested), "empty ID accepted")
	require.Error(t, j.Record(ctx, "u1", model.Decision("maybe")), "invalid decision accepted")
}

func TestDecidedSet(t *testing.T) {
	j := openTestJournal(t)
	ctx := context.Background()

	require.NoError(t, j.Record(ctx, "a", model.DecisionInterested))
	require.NoError(t, j.Record(ctx, "b", model.DecisionIgnore))

	set, err := j.DecidedSet(ctx)
	require.NoError(t, err)
	require.Len(t, set, 2)
	require.Equal(t, model.DecisionInterested, set["a"])
	require.Equal(t, model.DecisionIgnore, set["b"])
}

func TestPruneKeepsRecent(t *testing.T) {
	j := openTestJournal(t)
	ctx := context.Background()

	require.NoError(t, j.Record(ctx, "fresh", model.DecisionInterested))

	removed, err := j.Prune(ctx, 24*time.Hour)
	require.NoError(t, err)
	require.Zero(t, removed, "Prune removed recent entries")

	_, ok, err := j.Decided(ctx, "fresh")
	require.NoError(t, err)
	require.True(t, ok, "recent entry pruned")
}

func TestClosedJournalErrors(t *testing.T) {
	j := openTestJournal(t)
	j.Close()

	ctx := context.Background()
	require.ErrorIs(t, j.Record(ctx, "u1", model.DecisionInterested), ErrClosed)
	_, _, err := j.Decided(ctx, "u1")
	require.ErrorIs(t, err, ErrClosed)
	require.NoError(t, j.Close(), "double Close errored")
}

func TestJournalSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.db")
	ctx := context.Background()

	j, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, j.Record(ctx, "u1", model.DecisionInterested))
	require.NoError(t, j.Close())

	j2, err := Open(path)
	require.NoError(t, err)
	defer j2.Close()

	_, ok, err := j2.Decided(ctx, "u1")
	require.NoError(t, err)
	require.True(t, ok, "decision lost across reopen")
}
