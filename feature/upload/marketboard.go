package upload

import (
	"context"
	"sync"
	"time"

	"market-ingest/core/bus"
	"market-ingest/feature/access"
	"market-ingest/feature/gamedata"
	"market-ingest/feature/upload/models"
	"market-ingest/feature/upload/reconcile"
	"market-ingest/feature/upload/schema"
	"market-ingest/feature/upload/store"

	"go.uber.org/zap"
)

const publishTimeout = 10 * time.Second

// MarketBoardBehavior processes market data uploads: it cleans the incoming
// listings and sales, reconciles them against stored state, persists the
// result, and emits delta events.
type MarketBoardBehavior struct {
	snapshots store.SnapshotStore
	histories store.HistoryStore
	gamedata  gamedata.Provider
	publisher bus.Publisher
	logger    *zap.Logger

	// inflight tracks detached publish goroutines so tests can wait for
	// them; the request path never does.
	inflight sync.WaitGroup
}

// NewMarketBoardBehavior creates the behavior. publisher may be nil, which
// disables event emission entirely.
func NewMarketBoardBehavior(
	snapshots store.SnapshotStore,
	histories store.HistoryStore,
	gdp gamedata.Provider,
	publisher bus.Publisher,
	logger *zap.Logger,
) *MarketBoardBehavior {
	return &MarketBoardBehavior{
		snapshots: snapshots,
		histories: histories,
		gamedata:  gdp,
		publisher: publisher,
		logger:    logger,
	}
}

// ShouldExecute implements Behavior. The payload applies when world and
// item are identified and at least one of sales/listings is present.
// Records breaking the item's stack size or the price ceiling are filtered
// out in place rather than rejecting the request; upstream clients are
// known to ship occasional bad rows.
func (b *MarketBoardBehavior) ShouldExecute(params *schema.UploadParameters) bool {
	if params.WorldID == nil || params.ItemID == nil {
		return false
	}
	if params.Sales == nil && params.Listings == nil {
		return false
	}

	stackSize := b.gamedata.MaxStackSize(*params.ItemID)
	if params.Sales != nil {
		params.Sales = filterSaleBounds(params.Sales, stackSize)
	}
	if params.Listings != nil {
		params.Listings = filterListingBounds(params.Listings, stackSize)
	}
	return true
}

// Execute implements Behavior. Sales and listings are handled as separate
// sequential steps, not transactionally joined: a markup rejection in the
// listings group does not undo an earlier sales write in the same request.
func (b *MarketBoardBehavior) Execute(ctx context.Context, source *access.TrustedSource, params *schema.UploadParameters) (*Response, error) {
	worldID := *params.WorldID
	itemID := *params.ItemID

	if params.Sales != nil {
		if salesHaveMarkup(params.Sales) {
			return BadRequestResponse(), nil
		}
		if err := b.handleSales(ctx, params.Sales, worldID, itemID, params.UploaderID); err != nil {
			return nil, err
		}
	}

	if params.Listings != nil {
		if listingsHaveMarkup(params.Listings) {
			return BadRequestResponse(), nil
		}
		if err := b.handleListings(ctx, params.Listings, worldID, itemID, source); err != nil {
			return nil, err
		}
	}

	return nil, nil
}

func (b *MarketBoardBehavior) handleListings(ctx context.Context, raw []schema.Listing, worldID, itemID int, source *access.TrustedSource) error {
	newListings := CleanListings(raw, itemID, worldID, source.Name)

	// Read the old snapshot before the overwrite to compute deltas.
	// Concurrent uploads for the same key may interleave between this
	// read and the write below; the diff is best-effort and storage stays
	// authoritative.
	var oldListings []models.Listing
	diffable := false
	if b.publisher != nil {
		existing, err := b.snapshots.Get(ctx, worldID, itemID)
		if err != nil {
			b.logger.Error("Failed to read snapshot for delta computation", zap.Error(err))
		} else {
			diffable = true
			if existing != nil {
				oldListings = existing.Listings
			}
		}
	}

	snapshot := &models.CurrentlyShown{
		WorldID:                        worldID,
		ItemID:                         itemID,
		LastUploadTimeUnixMilliseconds: time.Now().UnixMilli(),
		UploadSource:                   source.Name,
		Listings:                       newListings,
	}
	if err := b.snapshots.Put(ctx, snapshot); err != nil {
		return err
	}

	if diffable {
		diff := reconcile.DiffListings(oldListings, newListings)
		if len(diff.Added) > 0 {
			b.publishDetached(bus.Event{
				Kind:    bus.KindListingsAdd,
				WorldID: worldID,
				ItemID:  itemID,
				Payload: diff.Added,
			})
		}
		if len(diff.Removed) > 0 {
			b.publishDetached(bus.Event{
				Kind:    bus.KindListingsRemove,
				WorldID: worldID,
				ItemID:  itemID,
				Payload: diff.Removed,
			})
		}
	}

	return nil
}

func (b *MarketBoardBehavior) handleSales(ctx context.Context, raw []schema.Sale, worldID, itemID int, uploaderIDHash string) error {
	cleanSales := CleanSales(raw, worldID, itemID, uploaderIDHash)

	existing, err := b.histories.Get(ctx, worldID, itemID, len(raw))
	if err != nil {
		return err
	}

	var added []models.Sale
	if existing == nil {
		added = cleanSales
		err = b.histories.Create(ctx, &models.History{
			WorldID:                        worldID,
			ItemID:                         itemID,
			LastUploadTimeUnixMilliseconds: time.Now().UnixMilli(),
			Sales:                          cleanSales,
		})
	} else {
		added = reconcile.MergeSales(existing.Sales, cleanSales)
		if len(added) > 0 {
			err = b.histories.AppendSales(ctx, added, worldID, itemID)
		}
	}
	if err != nil {
		return err
	}

	if b.publisher != nil && len(added) > 0 {
		b.publishDetached(bus.Event{
			Kind:    bus.KindSalesAdd,
			WorldID: worldID,
			ItemID:  itemID,
			Payload: added,
		})
	}

	return nil
}

// publishDetached launches a publish decoupled from the request context.
// A publish racing process shutdown may be lost, which the best-effort
// notification contract allows. Failures are logged and swallowed; they
// never fail the caller and never roll back the committed write.
func (b *MarketBoardBehavior) publishDetached(event bus.Event) {
	b.inflight.Add(1)
	go func() {
		defer b.inflight.Done()
		ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
		defer cancel()
		if err := b.publisher.Publish(ctx, event); err != nil {
			b.logger.Error("Failed to publish delta event",
				zap.String("kind", event.Kind),
				zap.Int("world", event.WorldID),
				zap.Int("item", event.ItemID),
				zap.Error(err),
			)
		}
	}()
}
