// Package schema defines the raw upload payload as it arrives on the wire.
//
// Upload clients have shipped many generations of serializers: booleans
// arrive as true, 1, or "1"; identifier fields arrive as strings, numbers,
// or not at all; numeric fields may be null. Fields that suffer from this
// are typed loosely here and coerced by the cleaning stage.
package schema

// UploadParameters is the body of POST /upload/{apiKey}.
type UploadParameters struct {
	// UploaderID arrives raw and is replaced with its one-way hash before
	// any processing or storage touches it.
	UploaderID string `json:"uploaderId"`
	WorldID    *int   `json:"worldId"`
	ItemID     *int   `json:"itemId"`
	// Listings and Sales are independently optional; at least one must be
	// present for the market board behavior to apply.
	Listings []Listing `json:"listings"`
	Sales    []Sale    `json:"sales"`
}

// Listing is one raw active sell order.
type Listing struct {
	// ListingID is absent or malformed for some uploaders; the cleaning
	// stage synthesizes a deterministic replacement when it is missing.
	ListingID      any       `json:"listingId"`
	Hq             any       `json:"hq"`
	OnMannequin    any       `json:"onMannequin"`
	Materia        []Materia `json:"materia"`
	PricePerUnit   *int64    `json:"pricePerUnit"`
	Quantity       *int64    `json:"quantity"`
	DyeID          *int      `json:"dyeId"`
	CreatorID      any       `json:"creatorId"`
	CreatorName    string    `json:"creatorName"`
	LastReviewTime *int64    `json:"lastReviewTime"`
	RetainerID     any       `json:"retainerId"`
	RetainerName   string    `json:"retainerName"`
	RetainerCityID *int      `json:"retainerCity"`
	SellerID       any       `json:"sellerId"`
}

// Materia is one raw slot/id pair. Entries missing either field are
// dropped during cleaning.
type Materia struct {
	SlotID    *int `json:"slotId"`
	MateriaID *int `json:"materiaId"`
}

// Sale is one raw completed transaction.
type Sale struct {
	Hq           any    `json:"hq"`
	OnMannequin  any    `json:"onMannequin"`
	PricePerUnit *int64 `json:"pricePerUnit"`
	Quantity     *int64 `json:"quantity"`
	// Timestamp is the sale time in unix seconds.
	Timestamp *int64 `json:"timestamp"`
	BuyerName string `json:"buyerName"`
	BuyerID   any    `json:"buyerId"`
	SellerID  any    `json:"sellerId"`
}
