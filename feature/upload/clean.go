package upload

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"market-ingest/core/hash"
	"market-ingest/core/utils"
	"market-ingest/feature/upload/models"
	"market-ingest/feature/upload/schema"

	"github.com/google/uuid"
)

// MaxPricePerUnit is the ceiling on a single unit price. Anything above it
// is client garbage, not a real market price.
const MaxPricePerUnit = 999_999_999

var markupPattern = regexp.MustCompile(`<[\s\S]*?>`)

// HasMarkup reports whether a textual field contains tag-like content.
// Markup in any field rejects the whole listings-or-sales group before
// persistence.
func HasMarkup(s string) bool {
	return markupPattern.MatchString(s)
}

// parseID coerces the inconsistently serialized identifier fields into a
// normalized string, or empty when absent.
func parseID(val any) string {
	switch v := val.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatInt(int64(v), 10)
	default:
		return utils.ToString(val)
	}
}

func int64Value(p *int64) int64 {
	if p == nil {
		return 0
	}
	return *p
}

func intValue(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}

// filterListingBounds drops listings whose quantity is non-positive or
// exceeds the item's stack size, or whose price exceeds the ceiling.
// Invalid entries are removed silently; the rest of the payload proceeds.
func filterListingBounds(listings []schema.Listing, stackSize int) []schema.Listing {
	kept := listings[:0]
	for _, l := range listings {
		qty := int64Value(l.Quantity)
		if qty <= 0 || qty > int64(stackSize) || int64Value(l.PricePerUnit) > MaxPricePerUnit {
			continue
		}
		kept = append(kept, l)
	}
	return kept
}

// filterSaleBounds applies the same bounds to sales.
func filterSaleBounds(sales []schema.Sale, stackSize int) []schema.Sale {
	kept := sales[:0]
	for _, s := range sales {
		qty := int64Value(s.Quantity)
		if qty <= 0 || qty > int64(stackSize) || int64Value(s.PricePerUnit) > MaxPricePerUnit {
			continue
		}
		kept = append(kept, s)
	}
	return kept
}

// syntheticListingID derives a stable replacement id for a listing that
// arrived without one. The template must never change: identical malformed
// input has to produce the same id on every resubmission so deduplication
// keeps working.
func syntheticListingID(l schema.Listing, itemID, worldID int) string {
	materia := make([]string, 0, len(l.Materia))
	for _, m := range l.Materia {
		materia = append(materia, fmt.Sprintf("%d@%d", intValue(m.SlotID), intValue(m.MateriaID)))
	}

	input := fmt.Sprintf("%s:%s:$%s:$%s:$%s:$%d:$%d:$%d:$%s:$%d:$%d",
		parseID(l.CreatorID),
		l.CreatorName,
		l.RetainerName,
		parseID(l.RetainerID),
		parseID(l.SellerID),
		int64Value(l.LastReviewTime),
		int64Value(l.Quantity),
		int64Value(l.PricePerUnit),
		strings.Join(materia, ","),
		itemID,
		worldID,
	)
	return "dirty:" + hash.SHA256(input)
}

// CleanListings validates and normalizes raw listings into storable form:
// loose booleans and ids are coerced, materia entries missing either field
// are dropped, absent listing ids are synthesized deterministically, and
// records with non-positive price or quantity are removed. The result is
// ordered ascending by price per unit.
func CleanListings(raw []schema.Listing, itemID, worldID int, sourceName string) []models.Listing {
	cleaned := make([]models.Listing, 0, len(raw))
	for _, l := range raw {
		price := int64Value(l.PricePerUnit)
		qty := int64Value(l.Quantity)
		if price <= 0 || qty <= 0 {
			continue
		}

		listingID := parseID(l.ListingID)
		if listingID == "" {
			listingID = syntheticListingID(l, itemID, worldID)
		}

		materia := make([]models.Materia, 0, len(l.Materia))
		for _, m := range l.Materia {
			if m.SlotID == nil || m.MateriaID == nil {
				continue
			}
			materia = append(materia, models.Materia{SlotID: *m.SlotID, MateriaID: *m.MateriaID})
		}

		cleaned = append(cleaned, models.Listing{
			ListingID:      listingID,
			ItemID:         itemID,
			WorldID:        worldID,
			Hq:             utils.ToBool(l.Hq),
			OnMannequin:    utils.ToBool(l.OnMannequin),
			Materia:        materia,
			PricePerUnit:   price,
			Quantity:       qty,
			DyeID:          intValue(l.DyeID),
			CreatorID:      parseID(l.CreatorID),
			CreatorName:    l.CreatorName,
			LastReviewTime: time.Unix(int64Value(l.LastReviewTime), 0).UTC(),
			RetainerID:     parseID(l.RetainerID),
			RetainerName:   l.RetainerName,
			RetainerCityID: intValue(l.RetainerCityID),
			SellerID:       parseID(l.SellerID),
			Source:         sourceName,
		})
	}

	sort.SliceStable(cleaned, func(i, j int) bool {
		return cleaned[i].PricePerUnit < cleaned[j].PricePerUnit
	})
	return cleaned
}

// CleanSales validates and normalizes raw sales. Sales without a positive
// timestamp, price, or quantity are removed. Each surviving sale gets a
// generated unique id and the uploader's hashed identity for attribution.
// The result is ordered descending by sale time.
func CleanSales(raw []schema.Sale, worldID, itemID int, uploaderIDHash string) []models.Sale {
	cleaned := make([]models.Sale, 0, len(raw))
	for _, s := range raw {
		if int64Value(s.Timestamp) <= 0 {
			continue
		}
		price := int64Value(s.PricePerUnit)
		qty := int64Value(s.Quantity)
		if price <= 0 || qty <= 0 {
			continue
		}

		cleaned = append(cleaned, models.Sale{
			ID:             uuid.NewString(),
			WorldID:        worldID,
			ItemID:         itemID,
			Hq:             utils.ToBool(s.Hq),
			OnMannequin:    utils.ToBool(s.OnMannequin),
			PricePerUnit:   price,
			Quantity:       qty,
			SaleTime:       time.Unix(*s.Timestamp, 0).UTC(),
			BuyerName:      s.BuyerName,
			BuyerID:        parseID(s.BuyerID),
			SellerID:       parseID(s.SellerID),
			UploaderIDHash: uploaderIDHash,
		})
	}

	sort.SliceStable(cleaned, func(i, j int) bool {
		return cleaned[i].SaleTime.After(cleaned[j].SaleTime)
	})
	return cleaned
}

// listingsHaveMarkup checks every textual field of a raw listing group.
func listingsHaveMarkup(listings []schema.Listing) bool {
	for _, l := range listings {
		if HasMarkup(parseID(l.ListingID)) ||
			HasMarkup(l.RetainerName) ||
			HasMarkup(parseID(l.RetainerID)) ||
			HasMarkup(l.CreatorName) ||
			HasMarkup(parseID(l.SellerID)) ||
			HasMarkup(parseID(l.CreatorID)) {
			return true
		}
	}
	return false
}

// salesHaveMarkup checks every textual field of a raw sale group.
func salesHaveMarkup(sales []schema.Sale) bool {
	for _, s := range sales {
		if HasMarkup(s.BuyerName) ||
			HasMarkup(parseID(s.SellerID)) ||
			HasMarkup(parseID(s.BuyerID)) {
			return true
		}
	}
	return false
}
