package upload

import (
	"strings"
	"testing"
	"time"

	"market-ingest/feature/upload/schema"

	"github.com/stretchr/testify/assert"
)

func i64(v int64) *int64 { return &v }
func iv(v int) *int      { return &v }

func TestCleanListings_SyntheticID(t *testing.T) {
	raw := schema.Listing{
		PricePerUnit:   i64(500),
		Quantity:       i64(1),
		CreatorName:    "Some Crafter",
		RetainerName:   "Retainer",
		LastReviewTime: i64(1600000000),
	}

	first := CleanListings([]schema.Listing{raw}, 100, 1, "client")
	second := CleanListings([]schema.Listing{raw}, 100, 1, "client")

	assert.Len(t, first, 1)
	assert.True(t, strings.HasPrefix(first[0].ListingID, "dirty:"))
	// Identical malformed input must synthesize the identical id.
	assert.Equal(t, first[0].ListingID, second[0].ListingID)

	// Any field change must change the id.
	raw.PricePerUnit = i64(501)
	third := CleanListings([]schema.Listing{raw}, 100, 1, "client")
	assert.NotEqual(t, first[0].ListingID, third[0].ListingID)
}

func TestCleanListings_KeepsProvidedID(t *testing.T) {
	raw := schema.Listing{
		ListingID:    "abc123",
		PricePerUnit: i64(500),
		Quantity:     i64(1),
	}

	cleaned := CleanListings([]schema.Listing{raw}, 100, 1, "client")
	assert.Equal(t, "abc123", cleaned[0].ListingID)
}

func TestCleanListings_NumericID(t *testing.T) {
	// Some clients serialize ids as numbers.
	raw := schema.Listing{
		ListingID:    float64(123456789),
		PricePerUnit: i64(500),
		Quantity:     i64(1),
	}

	cleaned := CleanListings([]schema.Listing{raw}, 100, 1, "client")
	assert.Equal(t, "123456789", cleaned[0].ListingID)
}

func TestCleanListings_Normalization(t *testing.T) {
	raw := schema.Listing{
		ListingID:    "x",
		PricePerUnit: i64(100),
		Quantity:     i64(2),
		Hq:           "1",
		OnMannequin:  float64(0),
		Materia: []schema.Materia{
			{SlotID: iv(1), MateriaID: iv(10)},
			{SlotID: nil, MateriaID: iv(20)}, // dropped: missing slot
			{SlotID: iv(2), MateriaID: nil},  // dropped: missing id
		},
	}

	cleaned := CleanListings([]schema.Listing{raw}, 100, 1, "client")
	assert.Len(t, cleaned, 1)
	assert.True(t, cleaned[0].Hq)
	assert.False(t, cleaned[0].OnMannequin)
	assert.Len(t, cleaned[0].Materia, 1)
	assert.Equal(t, 100, cleaned[0].ItemID)
	assert.Equal(t, 1, cleaned[0].WorldID)
	assert.Equal(t, "client", cleaned[0].Source)
	// Absent review time defaults to epoch.
	assert.Equal(t, time.Unix(0, 0).UTC(), cleaned[0].LastReviewTime)
}

func TestCleanListings_DropsNonPositive(t *testing.T) {
	raws := []schema.Listing{
		{ListingID: "a", PricePerUnit: i64(0), Quantity: i64(1)},
		{ListingID: "b", PricePerUnit: i64(100), Quantity: i64(0)},
		{ListingID: "c", PricePerUnit: nil, Quantity: i64(1)},
		{ListingID: "d", PricePerUnit: i64(100), Quantity: i64(1)},
	}

	cleaned := CleanListings(raws, 100, 1, "client")
	assert.Len(t, cleaned, 1)
	assert.Equal(t, "d", cleaned[0].ListingID)
}

func TestCleanListings_OrderedByPrice(t *testing.T) {
	raws := []schema.Listing{
		{ListingID: "a", PricePerUnit: i64(500), Quantity: i64(1)},
		{ListingID: "b", PricePerUnit: i64(300), Quantity: i64(2)},
	}

	cleaned := CleanListings(raws, 100, 1, "client")
	assert.Len(t, cleaned, 2)
	assert.Equal(t, int64(300), cleaned[0].PricePerUnit)
	assert.Equal(t, int64(500), cleaned[1].PricePerUnit)
}

func TestCleanSales(t *testing.T) {
	raws := []schema.Sale{
		{PricePerUnit: i64(10), Quantity: i64(1), Timestamp: i64(1000), BuyerName: "Buyer"},
		{PricePerUnit: i64(20), Quantity: i64(1), Timestamp: i64(2000)},
		{PricePerUnit: i64(30), Quantity: i64(1), Timestamp: nil},     // dropped: no timestamp
		{PricePerUnit: i64(30), Quantity: i64(1), Timestamp: i64(0)},  // dropped: epoch
		{PricePerUnit: i64(0), Quantity: i64(1), Timestamp: i64(500)}, // dropped: price
	}

	cleaned := CleanSales(raws, 1, 100, "HASH")
	assert.Len(t, cleaned, 2)
	// Descending by sale time.
	assert.Equal(t, int64(20), cleaned[0].PricePerUnit)
	assert.Equal(t, int64(10), cleaned[1].PricePerUnit)
	assert.Equal(t, "HASH", cleaned[0].UploaderIDHash)
	assert.NotEmpty(t, cleaned[0].ID)
	assert.NotEqual(t, cleaned[0].ID, cleaned[1].ID)
}

func TestFilterBounds(t *testing.T) {
	listings := []schema.Listing{
		{ListingID: "ok", PricePerUnit: i64(100), Quantity: i64(5)},
		{ListingID: "overstack", PricePerUnit: i64(100), Quantity: i64(200)},
		{ListingID: "overprice", PricePerUnit: i64(1_000_000_000), Quantity: i64(1)},
		{ListingID: "zeroqty", PricePerUnit: i64(100), Quantity: i64(0)},
	}

	kept := filterListingBounds(listings, 99)
	assert.Len(t, kept, 1)
	assert.Equal(t, "ok", kept[0].ListingID)

	sales := []schema.Sale{
		{PricePerUnit: i64(100), Quantity: i64(5), Timestamp: i64(1000)},
		{PricePerUnit: i64(100), Quantity: i64(100), Timestamp: i64(1000)},
	}
	keptSales := filterSaleBounds(sales, 99)
	assert.Len(t, keptSales, 1)
}

func TestHasMarkup(t *testing.T) {
	assert.True(t, HasMarkup("<script>alert(1)</script>"))
	assert.True(t, HasMarkup("name <b>bold</b>"))
	assert.False(t, HasMarkup("Plain Retainer"))
	assert.False(t, HasMarkup(""))
}

func TestGroupMarkupChecks(t *testing.T) {
	assert.True(t, salesHaveMarkup([]schema.Sale{{BuyerName: "<i>x</i>"}}))
	assert.False(t, salesHaveMarkup([]schema.Sale{{BuyerName: "x"}}))

	assert.True(t, listingsHaveMarkup([]schema.Listing{{RetainerName: "<s>"}}))
	assert.True(t, listingsHaveMarkup([]schema.Listing{{ListingID: "<img>"}}))
	assert.False(t, listingsHaveMarkup([]schema.Listing{{RetainerName: "fine"}}))
}
