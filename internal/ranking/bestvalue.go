package ranking

import (
	"math"

	"github.com/Agmahima/TravelEase/internal/models"
	"github.com/Agmahima/TravelEase/internal/pricing"
	"github.com/Agmahima/TravelEase/internal/timeutil"
)

const (
	PriceWeight    = 0.5
	DurationWeight = 0.3
	StopsWeight    = 0.2
)

// CalculateScores returns a copy of offers with BestValueScore set.
func CalculateScores(offers []models.FlightOffer) []models.FlightOffer {
	if len(offers) == 0 {
		return offers
	}

	maxPrice := findMaxPrice(offers)
	maxDuration := findMaxDuration(offers)

	result := make([]models.FlightOffer, len(offers))
	for i, f := range offers {
		result[i] = f
		result[i].BestValueScore = CalculateBestValue(f, maxPrice, maxDuration)
	}

	return result
}

// Lower score = better value. Offers without a usable price score as the
// most expensive in the set.
func CalculateBestValue(offer models.FlightOffer, maxPrice, maxDuration float64) float64 {
	priceScore := 0.0
	if maxPrice > 0 {
		price, ok := pricing.UnitPrice(offer.Price)
		if !ok {
			price = maxPrice
		}
		priceScore = (price / maxPrice) * 100
	}

	durationScore := 0.0
	if maxDuration > 0 {
		durationScore = (float64(timeutil.DurationMinutes(offer.OutboundDuration())) / maxDuration) * 100
	}

	stopsScore := float64(offer.Stops()) * 15
	score := (priceScore * PriceWeight) + (durationScore * DurationWeight) + (stopsScore * StopsWeight)

	return math.Round(score*100) / 100
}

func findMaxPrice(offers []models.FlightOffer) float64 {
	maxPrice := 0.0
	for _, f := range offers {
		if p, ok := pricing.UnitPrice(f.Price); ok && p > maxPrice {
			maxPrice = p
		}
	}
	return maxPrice
}

func findMaxDuration(offers []models.FlightOffer) float64 {
	maxDuration := 0.0
	for _, f := range offers {
		dur := float64(timeutil.DurationMinutes(f.OutboundDuration()))
		if dur > maxDuration {
			maxDuration = dur
		}
	}
	return maxDuration
}
