package filter

import (
	"testing"

	"github.com/Agmahima/TravelEase/internal/models"
)

func offer(id, carrier string, price models.OfferPrice, duration, departure string, segments int) models.FlightOffer {
	segs := make([]models.FlightSegment, segments)
	for i := range segs {
		segs[i] = models.FlightSegment{CarrierCode: carrier}
	}
	segs[0].Departure.At = departure
	return models.FlightOffer{
		ID:          id,
		Price:       price,
		Itineraries: []models.FlightItinerary{{Duration: duration, Segments: segs}},
	}
}

func sampleOffers() []models.FlightOffer {
	return []models.FlightOffer{
		offer("a", "BA", models.StructuredPrice("450.00", "USD"), "PT7H", "2025-06-01T18:00:00", 1),
		offer("b", "AA", models.FlatPrice(320), "PT11H30M", "2025-06-01T06:00:00", 2),
		offer("c", "BA", models.OfferPrice{}, "PT9H", "2025-06-01T12:00:00", 3),
		offer("d", "VS", models.StructuredPrice("610", "USD"), "PT6H50M", "2025-06-01T09:30:00", 1),
	}
}

func ids(offers []models.FlightOffer) string {
	s := ""
	for _, o := range offers {
		s += o.ID
	}
	return s
}

func TestFlightSorts(t *testing.T) {
	tests := []struct {
		sortBy, order, want string
	}{
		{"price", "asc", "badc"},
		{"price", "desc", "dabc"},
		{"duration", "asc", "dacb"},
		{"departure", "asc", "bdca"},
		{"stops", "asc", "adbc"},
		{"", "", "badc"},
	}

	for _, tt := range tests {
		got := ids(Flights(sampleOffers(), nil, tt.sortBy, tt.order))
		if got != tt.want {
			t.Errorf("sort %s %s: got %s, want %s", tt.sortBy, tt.order, got, tt.want)
		}
	}
}

func TestFlightFilters(t *testing.T) {
	lo, hi := 300.0, 500.0
	got := Flights(sampleOffers(), &models.FlightFilters{PriceMin: &lo, PriceMax: &hi}, "price", "asc")
	if ids(got) != "ba" {
		t.Fatalf("price range: got %s", ids(got))
	}

	got = Flights(sampleOffers(), &models.FlightFilters{Airlines: []string{"ba"}}, "price", "asc")
	if ids(got) != "ac" {
		t.Fatalf("airlines: got %s", ids(got))
	}

	got = Flights(sampleOffers(), &models.FlightFilters{Stops: []string{StopsNonstop, StopsTwoPlus}}, "price", "asc")
	if ids(got) != "adc" {
		t.Fatalf("stops: got %s", ids(got))
	}

	maxDur := 480
	got = Flights(sampleOffers(), &models.FlightFilters{MaxDuration: &maxDur}, "duration", "asc")
	if ids(got) != "da" {
		t.Fatalf("max duration: got %s", ids(got))
	}
}

func TestBestValueSort(t *testing.T) {
	input := sampleOffers()
	got := Flights(input, nil, "best_value", "asc")
	if len(got) != 4 || got[0].BestValueScore == 0 {
		t.Fatalf("expected scores assigned, got %+v", got)
	}
	for i := 1; i < len(got); i++ {
		if got[i-1].BestValueScore > got[i].BestValueScore {
			t.Fatalf("not sorted by score: %s", ids(got))
		}
	}
	if input[0].BestValueScore != 0 || ids(input) != "abcd" {
		t.Fatal("input slice must not be modified")
	}
}

func TestHotels(t *testing.T) {
	hotels := []models.HotelOffer{
		{ID: "1", Name: "Taj", Rating: 4.8, Price: models.FlatPrice(220)},
		{ID: "2", Name: "Ibis", Rating: 3.2, Price: models.FlatPrice(60)},
		{ID: "3", Name: "Oberoi", Rating: 4.6, Price: models.StructuredPrice("180", "USD")},
	}

	got := Hotels(hotels, models.HotelSearchRequest{SortBy: "price"})
	if got[0].ID != "2" || got[2].ID != "1" {
		t.Fatalf("price sort: %+v", got)
	}

	got = Hotels(hotels, models.HotelSearchRequest{MaxPrice: 200, MinRating: 4, SortBy: "rating", SortOrder: "desc"})
	if len(got) != 1 || got[0].ID != "3" {
		t.Fatalf("filters: %+v", got)
	}
}
