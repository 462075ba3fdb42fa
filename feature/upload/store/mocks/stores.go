package mocks

import (
	"context"

	"market-ingest/feature/upload/models"

	"github.com/stretchr/testify/mock"
)

// SnapshotStore is a mock implementation of store.SnapshotStore
type SnapshotStore struct {
	mock.Mock
}

func (m *SnapshotStore) Get(ctx context.Context, worldID, itemID int) (*models.CurrentlyShown, error) {
	args := m.Called(ctx, worldID, itemID)
	if snapshot, ok := args.Get(0).(*models.CurrentlyShown); ok {
		return snapshot, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *SnapshotStore) Put(ctx context.Context, snapshot *models.CurrentlyShown) error {
	args := m.Called(ctx, snapshot)
	return args.Error(0)
}

// HistoryStore is a mock implementation of store.HistoryStore
type HistoryStore struct {
	mock.Mock
}

func (m *HistoryStore) Get(ctx context.Context, worldID, itemID, limit int) (*models.History, error) {
	args := m.Called(ctx, worldID, itemID, limit)
	if history, ok := args.Get(0).(*models.History); ok {
		return history, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *HistoryStore) Create(ctx context.Context, history *models.History) error {
	args := m.Called(ctx, history)
	return args.Error(0)
}

func (m *HistoryStore) AppendSales(ctx context.Context, sales []models.Sale, worldID, itemID int) error {
	args := m.Called(ctx, sales, worldID, itemID)
	return args.Error(0)
}
