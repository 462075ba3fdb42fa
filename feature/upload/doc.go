// Package upload implements the market data ingestion pipeline.
//
// An inbound payload flows through source authentication, uploader
// suppression, and an ordered chain of pluggable behaviors. The market
// board behavior cleans listings and sales, reconciles them against the
// stored snapshot and history for the (world, item) key, persists the
// result, and emits best-effort delta events.
//
// # Consistency
//
// Per-key snapshot and history documents are shared mutable state with no
// application-level locking. Concurrent uploads for the same key can
// interleave between the old-snapshot read and the new-snapshot write, so
// the delta used for events may not exactly match the persisted
// transition. Storage is authoritative; events are a convenience stream
// that may under-deliver.
package upload
