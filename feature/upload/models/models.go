// Package models defines the clean market board entities as they are
// persisted and published. Raw upload records (feature/upload/schema) are
// normalized into these types by the cleaning stage.
package models

import "time"

// Materia is one slot/id pair socketed into a listed item. Order is
// significant for listing equality.
type Materia struct {
	SlotID    int `bson:"slotId" json:"slotId"`
	MateriaID int `bson:"materiaId" json:"materiaId"`
}

// Listing is one active sell order on a market board.
type Listing struct {
	ListingID      string    `bson:"listingId" json:"listingId"`
	ItemID         int       `bson:"itemId" json:"itemId"`
	WorldID        int       `bson:"worldId" json:"worldId"`
	Hq             bool      `bson:"hq" json:"hq"`
	OnMannequin    bool      `bson:"onMannequin" json:"onMannequin"`
	Materia        []Materia `bson:"materia" json:"materia"`
	PricePerUnit   int64     `bson:"pricePerUnit" json:"pricePerUnit"`
	Quantity       int64     `bson:"quantity" json:"quantity"`
	DyeID          int       `bson:"dyeId" json:"dyeId"`
	CreatorID      string    `bson:"creatorId" json:"creatorId"`
	CreatorName    string    `bson:"creatorName" json:"creatorName"`
	LastReviewTime time.Time `bson:"lastReviewTime" json:"lastReviewTime"`
	RetainerID     string    `bson:"retainerId" json:"retainerId"`
	RetainerName   string    `bson:"retainerName" json:"retainerName"`
	RetainerCityID int       `bson:"retainerCityId" json:"retainerCityId"`
	SellerID       string    `bson:"sellerId" json:"sellerId"`
	// Source is the attribution name of the trusted source that uploaded
	// the listing.
	Source string `bson:"source" json:"source"`
}

// Equal reports full-value equality. Reconciliation diffs listings by every
// field, not just ListingID: a price change on the same listing id counts
// as a removal plus an addition.
func (l Listing) Equal(o Listing) bool {
	if l.ListingID != o.ListingID ||
		l.ItemID != o.ItemID ||
		l.WorldID != o.WorldID ||
		l.Hq != o.Hq ||
		l.OnMannequin != o.OnMannequin ||
		l.PricePerUnit != o.PricePerUnit ||
		l.Quantity != o.Quantity ||
		l.DyeID != o.DyeID ||
		l.CreatorID != o.CreatorID ||
		l.CreatorName != o.CreatorName ||
		!l.LastReviewTime.Equal(o.LastReviewTime) ||
		l.RetainerID != o.RetainerID ||
		l.RetainerName != o.RetainerName ||
		l.RetainerCityID != o.RetainerCityID ||
		l.SellerID != o.SellerID ||
		l.Source != o.Source {
		return false
	}
	if len(l.Materia) != len(o.Materia) {
		return false
	}
	for i := range l.Materia {
		if l.Materia[i] != o.Materia[i] {
			return false
		}
	}
	return true
}

// Sale is one completed transaction.
type Sale struct {
	// ID is generated at clean time and excluded from record equality.
	ID             string    `bson:"id" json:"id"`
	WorldID        int       `bson:"worldId" json:"worldId"`
	ItemID         int       `bson:"itemId" json:"itemId"`
	Hq             bool      `bson:"hq" json:"hq"`
	OnMannequin    bool      `bson:"onMannequin" json:"onMannequin"`
	PricePerUnit   int64     `bson:"pricePerUnit" json:"pricePerUnit"`
	Quantity       int64     `bson:"quantity" json:"quantity"`
	SaleTime       time.Time `bson:"saleTime" json:"saleTime"`
	BuyerName      string    `bson:"buyerName" json:"buyerName"`
	BuyerID        string    `bson:"buyerId" json:"buyerId"`
	SellerID       string    `bson:"sellerId" json:"sellerId"`
	UploaderIDHash string    `bson:"uploaderIdHash" json:"-"`
}

// EqualRecord reports full-field equality excluding the generated ID.
// History deduplication uses this so resubmitted sale windows never
// duplicate entries.
func (s Sale) EqualRecord(o Sale) bool {
	return s.WorldID == o.WorldID &&
		s.ItemID == o.ItemID &&
		s.Hq == o.Hq &&
		s.OnMannequin == o.OnMannequin &&
		s.PricePerUnit == o.PricePerUnit &&
		s.Quantity == o.Quantity &&
		s.SaleTime.Equal(o.SaleTime) &&
		s.BuyerName == o.BuyerName &&
		s.BuyerID == o.BuyerID &&
		s.SellerID == o.SellerID &&
		s.UploaderIDHash == o.UploaderIDHash
}

// CurrentlyShown is the complete current listing set for one (world, item)
// key. It is overwritten wholesale on each accepted listing upload.
type CurrentlyShown struct {
	WorldID                        int       `bson:"worldId" json:"worldId"`
	ItemID                         int       `bson:"itemId" json:"itemId"`
	LastUploadTimeUnixMilliseconds int64     `bson:"lastUploadTime" json:"lastUploadTime"`
	UploadSource                   string    `bson:"uploadSource" json:"uploadSource"`
	Listings                       []Listing `bson:"listings" json:"listings"`
}

// History is the bounded, deduplicated log of completed sales for one
// (world, item) key, most recent first.
type History struct {
	WorldID                        int    `bson:"worldId" json:"worldId"`
	ItemID                         int    `bson:"itemId" json:"itemId"`
	LastUploadTimeUnixMilliseconds int64  `bson:"lastUploadTime" json:"lastUploadTime"`
	Sales                          []Sale `bson:"sales" json:"sales"`
}
