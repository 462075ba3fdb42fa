// Package store persists market board snapshots and sale history in the
// document store. The ingestion core consumes these interfaces; only the
// wiring in cmd binds the Mongo implementations.
package store

import (
	"context"

	"market-ingest/feature/upload/models"
)

// SnapshotStore holds the currently-shown listing set per (world, item) key.
type SnapshotStore interface {
	// Get returns the stored snapshot, or (nil, nil) if none exists yet.
	Get(ctx context.Context, worldID, itemID int) (*models.CurrentlyShown, error)
	// Put replaces the snapshot for its (world, item) key wholesale,
	// creating it on first upload.
	Put(ctx context.Context, snapshot *models.CurrentlyShown) error
}

// HistoryStore holds the bounded sale history per (world, item) key.
type HistoryStore interface {
	// Get returns up to limit of the most recent sales, or (nil, nil) if
	// no history exists yet. limit <= 0 returns the full stored log.
	Get(ctx context.Context, worldID, itemID, limit int) (*models.History, error)
	// Create writes the initial history document for a key.
	Create(ctx context.Context, history *models.History) error
	// AppendSales merges sales into an existing history, keeping the log
	// ordered by sale time descending and bounded in length.
	AppendSales(ctx context.Context, sales []models.Sale, worldID, itemID int) error
}
