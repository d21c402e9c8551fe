package filter

import (
	"math"
	"sort"
	"strings"

	"github.com/Agmahima/TravelEase/internal/models"
	"github.com/Agmahima/TravelEase/internal/pricing"
	"github.com/Agmahima/TravelEase/internal/ranking"
	"github.com/Agmahima/TravelEase/internal/timeutil"
)

const (
	StopsNonstop = "nonstop"
	StopsOne     = "1stop"
	StopsTwoPlus = "2+stops"
)

// Flights filters and sorts offers. The input slice is not modified.
func Flights(offers []models.FlightOffer, filters *models.FlightFilters, sortBy, sortOrder string) []models.FlightOffer {
	filtered := applyFlightFilters(offers, filters)

	if strings.EqualFold(sortBy, "best_value") {
		filtered = ranking.CalculateScores(filtered)
	}

	return sortFlights(filtered, sortBy, sortOrder)
}

func applyFlightFilters(offers []models.FlightOffer, filters *models.FlightFilters) []models.FlightOffer {
	result := make([]models.FlightOffer, 0, len(offers))
	for _, f := range offers {
		if filters == nil || matchesFlight(f, filters) {
			result = append(result, f)
		}
	}
	return result
}

func matchesFlight(f models.FlightOffer, filters *models.FlightFilters) bool {
	if filters.PriceMin != nil || filters.PriceMax != nil {
		price, ok := pricing.UnitPrice(f.Price)
		if !ok {
			return false
		}
		if filters.PriceMin != nil && price < *filters.PriceMin {
			return false
		}
		if filters.PriceMax != nil && price > *filters.PriceMax {
			return false
		}
	}

	if len(filters.Airlines) > 0 {
		found := false
		for _, airline := range filters.Airlines {
			if strings.EqualFold(f.Carrier(), airline) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	if len(filters.Stops) > 0 && !matchesStops(f.Stops(), filters.Stops) {
		return false
	}

	if filters.MaxDuration != nil {
		mins := timeutil.DurationMinutes(f.OutboundDuration())
		if mins > 0 && mins > *filters.MaxDuration {
			return false
		}
	}

	return true
}

func matchesStops(stops int, wanted []string) bool {
	for _, w := range wanted {
		switch strings.ToLower(w) {
		case StopsNonstop:
			if stops == 0 {
				return true
			}
		case StopsOne:
			if stops == 1 {
				return true
			}
		case StopsTwoPlus:
			if stops >= 2 {
				return true
			}
		}
	}
	return false
}

// priceKey sorts unpriceable offers after every priced one.
func priceKey(p models.OfferPrice, ascending bool) float64 {
	v, ok := pricing.UnitPrice(p)
	if ok {
		return v
	}
	if ascending {
		return math.Inf(1)
	}
	return math.Inf(-1)
}

func sortFlights(offers []models.FlightOffer, sortBy, sortOrder string) []models.FlightOffer {
	if len(offers) == 0 {
		return offers
	}

	ascending := strings.ToLower(sortOrder) != "desc"
	less := func(a, b float64) bool {
		if ascending {
			return a < b
		}
		return a > b
	}

	switch strings.ToLower(sortBy) {
	case "duration":
		sort.SliceStable(offers, func(i, j int) bool {
			return less(float64(timeutil.DurationMinutes(offers[i].OutboundDuration())),
				float64(timeutil.DurationMinutes(offers[j].OutboundDuration())))
		})

	case "departure":
		sort.SliceStable(offers, func(i, j int) bool {
			if ascending {
				return offers[i].DepartureAt() < offers[j].DepartureAt()
			}
			return offers[i].DepartureAt() > offers[j].DepartureAt()
		})

	case "best_value":
		sort.SliceStable(offers, func(i, j int) bool {
			return less(offers[i].BestValueScore, offers[j].BestValueScore)
		})

	case "stops":
		sort.SliceStable(offers, func(i, j int) bool {
			return less(float64(offers[i].Stops()), float64(offers[j].Stops()))
		})

	default:
		sort.SliceStable(offers, func(i, j int) bool {
			return less(priceKey(offers[i].Price, ascending), priceKey(offers[j].Price, ascending))
		})
	}

	return offers
}

// Hotels applies the hotel search's price cap, rating floor and sort order.
func Hotels(hotels []models.HotelOffer, req models.HotelSearchRequest) []models.HotelOffer {
	result := make([]models.HotelOffer, 0, len(hotels))
	for _, h := range hotels {
		if req.MaxPrice > 0 {
			price, ok := pricing.UnitPrice(h.Price)
			if !ok || price > req.MaxPrice {
				continue
			}
		}
		if req.MinRating > 0 && h.Rating < req.MinRating {
			continue
		}
		result = append(result, h)
	}

	ascending := strings.ToLower(req.SortOrder) != "desc"
	switch strings.ToLower(req.SortBy) {
	case "rating":
		sort.SliceStable(result, func(i, j int) bool {
			if ascending {
				return result[i].Rating < result[j].Rating
			}
			return result[i].Rating > result[j].Rating
		})
	case "name":
		sort.SliceStable(result, func(i, j int) bool {
			if ascending {
				return strings.ToLower(result[i].Name) < strings.ToLower(result[j].Name)
			}
			return strings.ToLower(result[i].Name) > strings.ToLower(result[j].Name)
		})
	default:
		sort.SliceStable(result, func(i, j int) bool {
			a, b := priceKey(result[i].Price, ascending), priceKey(result[j].Price, ascending)
			if ascending {
				return a < b
			}
			return a > b
		})
	}
	return result
}
