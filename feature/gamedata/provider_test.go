package gamedata_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"market-ingest/core/storage/mocks"
	"market-ingest/feature/gamedata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestLoad(t *testing.T) {
	mockClient := new(mocks.Client)
	mockClient.On("GetObject", mock.Anything, "gamedata", "gamedata/stack-sizes.json", mock.Anything).
		Return(io.NopCloser(bytes.NewReader([]byte(`{"5333": 999, "4551": 1}`))), nil)

	p, err := gamedata.Load(context.Background(), mockClient, "gamedata", gamedata.Config{
		ObjectName:       "gamedata/stack-sizes.json",
		DefaultStackSize: 9999,
	})
	assert.NoError(t, err)
	assert.Equal(t, 999, p.MaxStackSize(5333))
	assert.Equal(t, 1, p.MaxStackSize(4551))
	assert.Equal(t, 9999, p.MaxStackSize(12345))
}

func TestLoad_StorageError(t *testing.T) {
	mockClient := new(mocks.Client)
	mockClient.On("GetObject", mock.Anything, "gamedata", mock.Anything, mock.Anything).
		Return(nil, errors.New("no such object"))

	_, err := gamedata.Load(context.Background(), mockClient, "gamedata", gamedata.Config{})
	assert.Error(t, err)
}

func TestTableProvider_Fallback(t *testing.T) {
	p := gamedata.NewTableProvider(nil, 9999)
	assert.Equal(t, 9999, p.MaxStackSize(1))
}
