package filter

import (
	"strings"

	"github.com/Agmahima/TravelEase/internal/models"
)

// DestinationQuery narrows the destination catalogue. Tags match when any
// one of them does.
type DestinationQuery struct {
	Search   string
	MinPrice *float64
	MaxPrice *float64
	Tags     []string
}

// Destinations keeps the entries matching q, in catalogue order.
func Destinations(list []models.Destination, q DestinationQuery) []models.Destination {
	search := strings.ToLower(strings.TrimSpace(q.Search))
	out := make([]models.Destination, 0, len(list))
	for _, d := range list {
		if search != "" && !strings.Contains(strings.ToLower(d.Name), search) &&
			!strings.Contains(strings.ToLower(d.Country), search) {
			continue
		}
		if !priceInRange(d.PricePerPerson, q.MinPrice, q.MaxPrice) {
			continue
		}
		if len(q.Tags) > 0 && !matchesAnyTag(d, q.Tags) {
			continue
		}
		out = append(out, d)
	}
	return out
}

// An unpriced destination only passes when no bound is set.
func priceInRange(price, lo, hi *float64) bool {
	if lo == nil && hi == nil {
		return true
	}
	if price == nil {
		return false
	}
	return (lo == nil || *price >= *lo) && (hi == nil || *price <= *hi)
}

func matchesAnyTag(d models.Destination, tags []string) bool {
	desc := strings.ToLower(d.Description)
	for _, tag := range tags {
		switch strings.ToLower(strings.TrimSpace(tag)) {
		case "popular":
			if d.Badge == "Most Popular" {
				return true
			}
		case "hot deal":
			if d.Badge == "Hot Deal" {
				return true
			}
		case "cultural":
			if strings.Contains(desc, "cultur") {
				return true
			}
		case "":
		default:
			if strings.Contains(desc, strings.ToLower(strings.TrimSpace(tag))) {
				return true
			}
		}
	}
	return false
}
