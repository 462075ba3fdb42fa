// Package reconcile compares cleaned upload data against stored state.
//
// Listings reconcile by replacement: the incoming set overwrites the stored
// snapshot wholesale, and the diff against the old set drives delta events.
// Sales reconcile by merge: only records not already present in the history
// log are added, so overlapping re-uploads never duplicate entries.
package reconcile

import "market-ingest/feature/upload/models"

// ListingDiff is the minimal delta between a stored snapshot and an
// incoming listing set.
type ListingDiff struct {
	// Added contains listings present in the new set but not the old.
	Added []models.Listing
	// Removed contains listings present in the old set but not the new.
	Removed []models.Listing
}

// DiffListings computes the delta between the previously stored listing set
// and the newly cleaned one, under full-value equality.
//
// The old set must be read before the snapshot overwrite. Concurrent
// uploads for the same (world, item) key can interleave between that read
// and the write, so the diff is best-effort with respect to the persisted
// transition; storage stays authoritative.
func DiffListings(oldListings, newListings []models.Listing) ListingDiff {
	var diff ListingDiff
	for _, l := range newListings {
		if !containsListing(oldListings, l) {
			diff.Added = append(diff.Added, l)
		}
	}
	for _, l := range oldListings {
		if !containsListing(newListings, l) {
			diff.Removed = append(diff.Removed, l)
		}
	}
	return diff
}

func containsListing(set []models.Listing, target models.Listing) bool {
	for _, l := range set {
		if l.Equal(target) {
			return true
		}
	}
	return false
}
