package bus

// Event kinds emitted by the upload pipeline. Each event carries only the
// delta computed against prior state, never the full snapshot.
const (
	KindListingsAdd    = "listings/add"
	KindListingsRemove = "listings/remove"
	KindSalesAdd       = "sales/add"
)

// Event is the envelope published to the bus.
type Event struct {
	// Kind identifies the delta type (see Kind* constants).
	Kind string `json:"event"`
	// WorldID and ItemID identify the market board key the delta is for.
	WorldID int `json:"world"`
	ItemID  int `json:"item"`
	// Payload is the added or removed record set.
	Payload any `json:"payload"`
}
