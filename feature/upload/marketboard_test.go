package upload

import (
	"context"
	"errors"
	"testing"

	"market-ingest/core/bus"
	busmocks "market-ingest/core/bus/mocks"
	"market-ingest/feature/access"
	"market-ingest/feature/gamedata"
	"market-ingest/feature/upload/models"
	"market-ingest/feature/upload/schema"
	storemocks "market-ingest/feature/upload/store/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

func testProvider() gamedata.Provider {
	return gamedata.NewTableProvider(map[int]int{100: 99}, 9999)
}

func testSource() *access.TrustedSource {
	return &access.TrustedSource{APIKeyHash: "KEY", Name: "client"}
}

func publishedEvents(pub *busmocks.Publisher) []bus.Event {
	events := make([]bus.Event, 0, len(pub.Calls))
	for _, call := range pub.Calls {
		if call.Method == "Publish" {
			events = append(events, call.Arguments.Get(1).(bus.Event))
		}
	}
	return events
}

func TestShouldExecute(t *testing.T) {
	b := NewMarketBoardBehavior(nil, nil, testProvider(), nil, zap.NewNop())

	assert.False(t, b.ShouldExecute(&schema.UploadParameters{ItemID: iv(100), Sales: []schema.Sale{}}))
	assert.False(t, b.ShouldExecute(&schema.UploadParameters{WorldID: iv(1), Sales: []schema.Sale{}}))
	assert.False(t, b.ShouldExecute(&schema.UploadParameters{WorldID: iv(1), ItemID: iv(100)}))
	assert.True(t, b.ShouldExecute(&schema.UploadParameters{WorldID: iv(1), ItemID: iv(100), Listings: []schema.Listing{}}))
}

func TestShouldExecute_FiltersOutOfBoundsRecords(t *testing.T) {
	b := NewMarketBoardBehavior(nil, nil, testProvider(), nil, zap.NewNop())

	params := &schema.UploadParameters{
		WorldID: iv(1),
		ItemID:  iv(100),
		Listings: []schema.Listing{
			{ListingID: "keep", PricePerUnit: i64(100), Quantity: i64(10)},
			{ListingID: "overstack", PricePerUnit: i64(100), Quantity: i64(150)},
		},
		Sales: []schema.Sale{
			{PricePerUnit: i64(100), Quantity: i64(1), Timestamp: i64(1000)},
			{PricePerUnit: i64(1_500_000_000), Quantity: i64(1), Timestamp: i64(1000)},
		},
	}

	assert.True(t, b.ShouldExecute(params))
	assert.Len(t, params.Listings, 1)
	assert.Len(t, params.Sales, 1)
}

func TestExecute_ListingDiff(t *testing.T) {
	oldRaw := []schema.Listing{
		{ListingID: "l300", PricePerUnit: i64(300), Quantity: i64(2), LastReviewTime: i64(1000)},
		{ListingID: "l500", PricePerUnit: i64(500), Quantity: i64(1), LastReviewTime: i64(1000)},
	}
	newRaw := oldRaw[:1]

	snapshots := new(storemocks.SnapshotStore)
	snapshots.On("Get", mock.Anything, 1, 100).Return(&models.CurrentlyShown{
		WorldID:  1,
		ItemID:   100,
		Listings: CleanListings(oldRaw, 100, 1, "client"),
	}, nil)
	snapshots.On("Put", mock.Anything, mock.Anything).Return(nil)

	pub := new(busmocks.Publisher)
	pub.On("Publish", mock.Anything, mock.Anything).Return(nil)

	b := NewMarketBoardBehavior(snapshots, nil, testProvider(), pub, zap.NewNop())
	resp, err := b.Execute(context.Background(), testSource(), &schema.UploadParameters{
		WorldID:  iv(1),
		ItemID:   iv(100),
		Listings: newRaw,
	})

	assert.NoError(t, err)
	assert.Nil(t, resp)
	b.inflight.Wait()

	// The persisted snapshot is the full incoming set.
	put := snapshots.Calls[1].Arguments.Get(1).(*models.CurrentlyShown)
	assert.Len(t, put.Listings, 1)
	assert.Equal(t, "client", put.UploadSource)
	assert.NotZero(t, put.LastUploadTimeUnixMilliseconds)

	// The dropped listing is the only delta.
	events := publishedEvents(pub)
	assert.Len(t, events, 1)
	assert.Equal(t, bus.KindListingsRemove, events[0].Kind)
	removed := events[0].Payload.([]models.Listing)
	assert.Len(t, removed, 1)
	assert.Equal(t, "l500", removed[0].ListingID)
}

func TestExecute_NoPublisherSkipsDiffRead(t *testing.T) {
	snapshots := new(storemocks.SnapshotStore)
	snapshots.On("Put", mock.Anything, mock.Anything).Return(nil)

	b := NewMarketBoardBehavior(snapshots, nil, testProvider(), nil, zap.NewNop())
	resp, err := b.Execute(context.Background(), testSource(), &schema.UploadParameters{
		WorldID:  iv(1),
		ItemID:   iv(100),
		Listings: []schema.Listing{{ListingID: "a", PricePerUnit: i64(100), Quantity: i64(1)}},
	})

	assert.NoError(t, err)
	assert.Nil(t, resp)
	snapshots.AssertNotCalled(t, "Get", mock.Anything, mock.Anything, mock.Anything)
	snapshots.AssertCalled(t, "Put", mock.Anything, mock.Anything)
}

func TestExecute_SnapshotReadFailureSkipsDiff(t *testing.T) {
	snapshots := new(storemocks.SnapshotStore)
	snapshots.On("Get", mock.Anything, 1, 100).Return(nil, errors.New("read failed"))
	snapshots.On("Put", mock.Anything, mock.Anything).Return(nil)

	pub := new(busmocks.Publisher)

	b := NewMarketBoardBehavior(snapshots, nil, testProvider(), pub, zap.NewNop())
	resp, err := b.Execute(context.Background(), testSource(), &schema.UploadParameters{
		WorldID:  iv(1),
		ItemID:   iv(100),
		Listings: []schema.Listing{{ListingID: "a", PricePerUnit: i64(100), Quantity: i64(1)}},
	})

	// A failed diff read never fails the upload; the write still happens.
	assert.NoError(t, err)
	assert.Nil(t, resp)
	snapshots.AssertCalled(t, "Put", mock.Anything, mock.Anything)
	b.inflight.Wait()
	assert.Empty(t, publishedEvents(pub))
}

func TestExecute_SnapshotWriteFailure(t *testing.T) {
	snapshots := new(storemocks.SnapshotStore)
	snapshots.On("Get", mock.Anything, 1, 100).Return(nil, nil)
	snapshots.On("Put", mock.Anything, mock.Anything).Return(errors.New("write failed"))

	pub := new(busmocks.Publisher)

	b := NewMarketBoardBehavior(snapshots, nil, testProvider(), pub, zap.NewNop())
	_, err := b.Execute(context.Background(), testSource(), &schema.UploadParameters{
		WorldID:  iv(1),
		ItemID:   iv(100),
		Listings: []schema.Listing{{ListingID: "a", PricePerUnit: i64(100), Quantity: i64(1)}},
	})

	assert.Error(t, err)
	b.inflight.Wait()
	assert.Empty(t, publishedEvents(pub))
}

func TestExecute_ListingsMarkupRejected(t *testing.T) {
	snapshots := new(storemocks.SnapshotStore)

	b := NewMarketBoardBehavior(snapshots, nil, testProvider(), nil, zap.NewNop())
	resp, err := b.Execute(context.Background(), testSource(), &schema.UploadParameters{
		WorldID:  iv(1),
		ItemID:   iv(100),
		Listings: []schema.Listing{{ListingID: "a", RetainerName: "<b>spam</b>", PricePerUnit: i64(100), Quantity: i64(1)}},
	})

	assert.NoError(t, err)
	assert.Equal(t, BadRequestResponse(), resp)
	snapshots.AssertNotCalled(t, "Put", mock.Anything, mock.Anything)
}

func TestExecute_SalesNewHistory(t *testing.T) {
	histories := new(storemocks.HistoryStore)
	histories.On("Get", mock.Anything, 1, 100, 1).Return(nil, nil)
	histories.On("Create", mock.Anything, mock.Anything).Return(nil)

	pub := new(busmocks.Publisher)
	pub.On("Publish", mock.Anything, mock.Anything).Return(nil)

	b := NewMarketBoardBehavior(nil, histories, testProvider(), pub, zap.NewNop())
	resp, err := b.Execute(context.Background(), testSource(), &schema.UploadParameters{
		UploaderID: "HASHED",
		WorldID:    iv(1),
		ItemID:     iv(100),
		Sales:      []schema.Sale{{PricePerUnit: i64(100), Quantity: i64(1), Timestamp: i64(1000)}},
	})

	assert.NoError(t, err)
	assert.Nil(t, resp)

	created := histories.Calls[1].Arguments.Get(1).(*models.History)
	assert.Len(t, created.Sales, 1)
	assert.Equal(t, "HASHED", created.Sales[0].UploaderIDHash)

	b.inflight.Wait()
	events := publishedEvents(pub)
	assert.Len(t, events, 1)
	assert.Equal(t, bus.KindSalesAdd, events[0].Kind)
}

func TestExecute_SalesResubmissionIsIdempotent(t *testing.T) {
	raw := []schema.Sale{{PricePerUnit: i64(100), Quantity: i64(1), Timestamp: i64(1000), BuyerName: "Buyer"}}
	existing := &models.History{
		WorldID: 1,
		ItemID:  100,
		Sales:   CleanSales(raw, 1, 100, "HASHED"),
	}

	histories := new(storemocks.HistoryStore)
	histories.On("Get", mock.Anything, 1, 100, 1).Return(existing, nil)

	pub := new(busmocks.Publisher)

	b := NewMarketBoardBehavior(nil, histories, testProvider(), pub, zap.NewNop())
	resp, err := b.Execute(context.Background(), testSource(), &schema.UploadParameters{
		UploaderID: "HASHED",
		WorldID:    iv(1),
		ItemID:     iv(100),
		Sales:      raw,
	})

	// The resubmitted window is already stored: nothing is appended and
	// nothing is published.
	assert.NoError(t, err)
	assert.Nil(t, resp)
	histories.AssertNotCalled(t, "AppendSales", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	b.inflight.Wait()
	assert.Empty(t, publishedEvents(pub))
}

func TestExecute_SalesPartialOverlapAppendsOnlyNew(t *testing.T) {
	known := []schema.Sale{{PricePerUnit: i64(100), Quantity: i64(1), Timestamp: i64(1000)}}
	incoming := append([]schema.Sale{
		{PricePerUnit: i64(200), Quantity: i64(1), Timestamp: i64(2000)},
	}, known...)

	histories := new(storemocks.HistoryStore)
	histories.On("Get", mock.Anything, 1, 100, 2).Return(&models.History{
		WorldID: 1,
		ItemID:  100,
		Sales:   CleanSales(known, 1, 100, "HASHED"),
	}, nil)
	histories.On("AppendSales", mock.Anything, mock.Anything, 1, 100).Return(nil)

	b := NewMarketBoardBehavior(nil, histories, testProvider(), nil, zap.NewNop())
	_, err := b.Execute(context.Background(), testSource(), &schema.UploadParameters{
		UploaderID: "HASHED",
		WorldID:    iv(1),
		ItemID:     iv(100),
		Sales:      incoming,
	})

	assert.NoError(t, err)
	appended := histories.Calls[1].Arguments.Get(1).([]models.Sale)
	assert.Len(t, appended, 1)
	assert.Equal(t, int64(200), appended[0].PricePerUnit)
}

func TestExecute_SalesMarkupRejected(t *testing.T) {
	histories := new(storemocks.HistoryStore)

	b := NewMarketBoardBehavior(nil, histories, testProvider(), nil, zap.NewNop())
	resp, err := b.Execute(context.Background(), testSource(), &schema.UploadParameters{
		WorldID: iv(1),
		ItemID:  iv(100),
		Sales:   []schema.Sale{{PricePerUnit: i64(100), Quantity: i64(1), Timestamp: i64(1000), BuyerName: "<script>"}},
	})

	assert.NoError(t, err)
	assert.Equal(t, BadRequestResponse(), resp)
	histories.AssertNotCalled(t, "Get", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestExecute_PublishFailureDoesNotFailUpload(t *testing.T) {
	histories := new(storemocks.HistoryStore)
	histories.On("Get", mock.Anything, 1, 100, 1).Return(nil, nil)
	histories.On("Create", mock.Anything, mock.Anything).Return(nil)

	pub := new(busmocks.Publisher)
	pub.On("Publish", mock.Anything, mock.Anything).Return(errors.New("broker unreachable"))

	b := NewMarketBoardBehavior(nil, histories, testProvider(), pub, zap.NewNop())
	resp, err := b.Execute(context.Background(), testSource(), &schema.UploadParameters{
		UploaderID: "HASHED",
		WorldID:    iv(1),
		ItemID:     iv(100),
		Sales:      []schema.Sale{{PricePerUnit: i64(100), Quantity: i64(1), Timestamp: i64(1000)}},
	})

	assert.NoError(t, err)
	assert.Nil(t, resp)
	b.inflight.Wait()
	pub.AssertExpectations(t)
}
