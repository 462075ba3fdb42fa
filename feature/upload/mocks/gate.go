package mocks

import (
	"context"

	"market-ingest/feature/access"

	"github.com/stretchr/testify/mock"
)

// AccessGate is a mock implementation of upload.AccessGate
type AccessGate struct {
	mock.Mock
}

func (m *AccessGate) GetTrustedSource(ctx context.Context, apiKeyHash string) (*access.TrustedSource, error) {
	args := m.Called(ctx, apiKeyHash)
	if source, ok := args.Get(0).(*access.TrustedSource); ok {
		return source, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *AccessGate) IsSuppressed(ctx context.Context, uploaderIDHash string) (bool, error) {
	args := m.Called(ctx, uploaderIDHash)
	return args.Bool(0), args.Error(1)
}

func (m *AccessGate) IncrementUploadCount(ctx context.Context, apiKeyHash string) error {
	args := m.Called(ctx, apiKeyHash)
	return args.Error(0)
}
