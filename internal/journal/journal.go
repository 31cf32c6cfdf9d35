// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package journal persists swipe decisions locally.
//
// The server never re-serves a decided candidate, but the client can see one
// again when a session's feed store is cleared (logout, restart) before the
// server has processed the decision. The journal survives restarts, so feed
// population filters against it in addition to the in-memory decided set.
package journal

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/tinder4devs/devtinder-tui/internal/model"
)

// ErrClosed is returned by operations on a closed journal.
var ErrClosed = errors.New("journal closed")

const schema = `
CREATE TABLE IF NOT EXISTS decisions (
	user_id    TEXT PRIMARY KEY,
	decision   TEXT NOT NULL,
	decided_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_decisions_decided_at ON decisions(decided_at);
`

// Journal is a SQLite-backed record of decided candidate IDs.
type Journal struct {
	db *sql.DB
}

// Open creates or opens the journal database at path.
func Open(path string) (*Journal, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("failed to create journal directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open journal: %w", err)
	}

	// SQLite only supports one writer at a time, so limit connections.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA temp_store=MEMORY",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to set pragma: %w", err)
		}
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &Journal{db: db}, nil
}

// Record stores a decision for a candidate. Re-recording the same candidate
// keeps the first decision; a swipe is irrevocable.
func (j *Journal) Record(ctx context.Context, userID string, decision model.Decision) error {
	if j.db == nil {
		return ErrClosed
	}
	if userID == "" || !decision.Valid() {
		return fmt.Errorf("invalid decision record: id=%q decision=%q", userID, decision)
	}
	_, err := j.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO decisions (user_id, decision, decided_at) VALUES (?, ?, ?)`,
		userID, string(decision), time.Now().Unix())
	if err != nil {
		return fmt.Errorf("failed to record decision: %w", err)
	}
	return nil
}

// Decided reports whether a candidate has a journaled decision.
func (j *Journal) Decided(ctx context.Context, userID string) (model.Decision, bool, error) {
	if j.db == nil {
		return "", false, ErrClosed
	}
	var decision string
	err := j.db.QueryRowContext(ctx,
		`SELECT decision FROM decisions WHERE user_id = ?`, userID).Scan(&decision)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to query decision: %w", err)
	}
	return model.Decision(decision), true, nil
}

// DecidedSet returns every journaled candidate ID. Feed population filters
// incoming batches against this set.
func (j *Journal) DecidedSet(ctx context.Context) (map[string]model.Decision, error) {
	if j.db == nil {
		return nil, ErrClosed
	}
	rows, err := j.db.QueryContext(ctx, `SELECT user_id, decision FROM decisions`)
	if err != nil {
		return nil, fmt.Errorf("failed to load decisions: %w", err)
	}
	defer rows.Close()

	out := make(map[string]model.Decision)
	for rows.Next() {
		var id, decision string
		if err := rows.Scan(&id, &decision); err != nil {
			return nil, fmt.Errorf("failed to scan decision: %w", err)
		}
		out[id] = model.Decision(decision)
	}
	return out, rows.Err()
}

// Prune removes entries older than the given age. Old entries are safe to
// drop once the server has durably recorded the decision.
func (j *Journal) Prune(ctx context.Context, olderThan time.Duration) (int64, error) {
	if j.db == nil {
		return 0, ErrClosed
	}
	cutoff := time.Now().Add(-olderThan).Unix()
	res, err := j.db.ExecContext(ctx,
		`DELETE FROM decisions WHERE decided_at < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to prune journal: %w", err)
	}
	return res.RowsAffected()
}

// Close releases the database handle.
func (j *Journal) Close() error {
	if j.db == nil {
		return nil
	}
	err := j.db.Close()
	j.db = nil
	return err
}
