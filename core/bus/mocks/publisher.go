package mocks

import (
	"context"

	"market-ingest/core/bus"

	"github.com/stretchr/testify/mock"
)

// Publisher is a mock implementation of bus.Publisher
type Publisher struct {
	mock.Mock
}

func (m *Publisher) Publish(ctx context.Context, event bus.Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *Publisher) Close() error {
	args := m.Called()
	return args.Error(0)
}
