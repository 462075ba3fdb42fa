package reconcile

import "market-ingest/feature/upload/models"

// MergeSales returns the incoming sales that are genuinely new with respect
// to the existing history, preserving incoming order. Duplicates (full-field
// equality excluding the generated id) are discarded silently.
func MergeSales(existing, incoming []models.Sale) []models.Sale {
	var added []models.Sale
	for _, s := range incoming {
		if !containsSale(existing, s) {
			added = append(added, s)
		}
	}
	return added
}

func containsSale(set []models.Sale, target models.Sale) bool {
	for _, s := range set {
		if s.EqualRecord(target) {
			return true
		}
	}
	return false
}
