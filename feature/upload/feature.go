package upload

import (
	"market-ingest/core/bus"
	"market-ingest/feature/gamedata"
	"market-ingest/feature/upload/store"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	service *Service
	handler *Handler
}

// NewFeature creates the upload feature with the market board behavior
// registered. publisher may be nil to disable event emission.
func NewFeature(
	gate AccessGate,
	snapshots store.SnapshotStore,
	histories store.HistoryStore,
	gdp gamedata.Provider,
	publisher bus.Publisher,
	logger *zap.Logger,
) *Feature {
	behaviors := []Behavior{
		NewMarketBoardBehavior(snapshots, histories, gdp, publisher, logger),
	}
	svc := NewService(gate, behaviors, logger)
	h := NewHandler(svc, logger)
	return &Feature{service: svc, handler: h}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "upload"
}

// IsEnabled checks if the feature is enabled.
func (f *Feature) IsEnabled() bool {
	return true
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}
