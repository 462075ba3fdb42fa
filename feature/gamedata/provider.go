// Package gamedata provides static game data lookups for upload validation.
//
// The only lookup the ingestion core needs is the maximum stack size per
// item, used to bounds-check uploaded quantities. The table is published as
// a JSON object in game-data storage and loaded once at startup.
package gamedata

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"market-ingest/core/storage"

	"github.com/minio/minio-go/v7"
)

// Provider exposes game data lookups keyed by item id.
type Provider interface {
	// MaxStackSize returns the maximum stack size for an item. Items
	// absent from the table get the configured default.
	MaxStackSize(itemID int) int
}

// TableProvider serves lookups from an in-memory stack-size table.
type TableProvider struct {
	sizes    map[int]int
	fallback int
}

// NewTableProvider creates a provider over an explicit table. Used by tests
// and as the fallback when storage is unavailable.
func NewTableProvider(sizes map[int]int, fallback int) *TableProvider {
	if sizes == nil {
		sizes = map[int]int{}
	}
	return &TableProvider{sizes: sizes, fallback: fallback}
}

// Load fetches the stack-size table from storage and builds a provider.
// The object is a JSON map of item id (string) to stack size.
func Load(ctx context.Context, client storage.Client, bucket string, cfg Config) (*TableProvider, error) {
	obj, err := client.GetObject(ctx, bucket, cfg.ObjectName, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch stack-size table: %w", err)
	}
	defer obj.Close()

	var raw map[string]int
	if err := json.NewDecoder(obj).Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to decode stack-size table: %w", err)
	}

	sizes := make(map[int]int, len(raw))
	for k, v := range raw {
		id, err := strconv.Atoi(k)
		if err != nil {
			return nil, fmt.Errorf("invalid item id %q in stack-size table", k)
		}
		sizes[id] = v
	}

	return NewTableProvider(sizes, cfg.DefaultStackSize), nil
}

// MaxStackSize implements Provider.
func (p *TableProvider) MaxStackSize(itemID int) int {
	if size, ok := p.sizes[itemID]; ok {
		return size
	}
	return p.fallback
}
