// Package docdb handles the MongoDB connection for market board documents.
//
// Currently-shown snapshots and sale history logs are document-shaped and
// mutated wholesale per (world, item) key, so they live in a document store
// rather than the relational access-control database.
package docdb
