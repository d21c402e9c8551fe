package search

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/Agmahima/TravelEase/internal/backend"
	"github.com/Agmahima/TravelEase/internal/models"
	"github.com/Agmahima/TravelEase/internal/providers"
)

type fakeFlights struct {
	mu     sync.Mutex
	calls  int
	errs   []error
	offers []models.FlightOffer
}

func (f *fakeFlights) Name() string { return "fake-flights" }

func (f *fakeFlights) Search(ctx context.Context, auth backend.AuthSession, req models.FlightSearchRequest) ([]models.FlightOffer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if len(f.errs) > 0 {
		err := f.errs[0]
		f.errs = f.errs[1:]
		return nil, err
	}
	return f.offers, nil
}

type fakeHotels struct{}

func (fakeHotels) Name() string { return "fake-hotels" }

func (fakeHotels) Search(ctx context.Context, auth backend.AuthSession, req models.HotelSearchRequest) ([]models.HotelOffer, error) {
	return []models.HotelOffer{
		{ID: "1", Name: "Taj", Rating: 4.8, Price: models.FlatPrice(220)},
		{ID: "2", Name: "Ibis", Rating: 3.2, Price: models.FlatPrice(60)},
	}, nil
}

type fakeAirports map[string][]models.Airport

func (f fakeAirports) SearchAirports(ctx context.Context, auth backend.AuthSession, keyword string) ([]models.Airport, error) {
	return f[keyword], nil
}

// memoryCache is a map-backed cache for tests.
type memoryCache struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newMemoryCache() *memoryCache {
	return &memoryCache{data: make(map[string][]byte)}
}

func (c *memoryCache) Get(ctx context.Context, key string, dst any) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	raw, ok := c.data[key]
	return ok && json.Unmarshal(raw, dst) == nil
}

func (c *memoryCache) Set(ctx context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = raw
	return nil
}

func (c *memoryCache) Close() error { return nil }

func newTestSearcher(flights *fakeFlights, cfg Config) *Searcher {
	cabs, _ := providers.NewCabCatalog()
	cabs.Latency = 0
	return NewSearcher(flights, fakeHotels{}, cabs, fakeAirports{
		"Paris": {{IATACode: "", Name: "Paris (all)"}, {IATACode: "cdg", Name: "Charles de Gaulle"}},
	}, cfg)
}

func flightRequest() models.FlightSearchRequest {
	return models.FlightSearchRequest{OriginCode: "JFK", DestinationCode: "CDG", DateOfDeparture: "2025-06-01"}
}

func TestSearchFlightsRetriesTransientFailures(t *testing.T) {
	flights := &fakeFlights{
		errs:   []error{&models.NetworkError{Op: "GET", Err: errors.New("connection reset")}, &models.APIError{StatusCode: 502}},
		offers: []models.FlightOffer{{ID: "1", Price: models.FlatPrice(300)}},
	}
	cfg := DefaultConfig()
	cfg.RetryDelays = []time.Duration{time.Millisecond}

	resp, err := newTestSearcher(flights, cfg).SearchFlights(context.Background(), nil, flightRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Metadata.Attempts != 3 || len(resp.Flights) != 1 {
		t.Fatalf("expected success on third attempt, got %+v", resp.Metadata)
	}
}

func TestSearchFlightsDoesNotRetryClientErrors(t *testing.T) {
	flights := &fakeFlights{errs: []error{&models.APIError{StatusCode: 400, Message: "bad date"}}}
	cfg := DefaultConfig()
	cfg.RetryDelays = []time.Duration{time.Millisecond}

	_, err := newTestSearcher(flights, cfg).SearchFlights(context.Background(), nil, flightRequest())
	var provErr *providers.ProviderError
	if !errors.As(err, &provErr) || provErr.Provider != "fake-flights" {
		t.Fatalf("expected ProviderError, got %v", err)
	}
	var apiErr *models.APIError
	if !errors.As(err, &apiErr) {
		t.Fatal("expected wrapped APIError")
	}
	if flights.calls != 1 {
		t.Fatalf("expected one call, got %d", flights.calls)
	}
}

func TestSearchFlightsValidatesBeforeCalling(t *testing.T) {
	flights := &fakeFlights{}
	_, err := newTestSearcher(flights, DefaultConfig()).SearchFlights(context.Background(), nil, models.FlightSearchRequest{OriginCode: "JFK"})
	if !errors.Is(err, models.ErrMissingDestination) {
		t.Fatalf("expected ErrMissingDestination, got %v", err)
	}
	if flights.calls != 0 {
		t.Fatal("source must not be called for an invalid request")
	}
}

func TestSearchFlightsUsesCache(t *testing.T) {
	flights := &fakeFlights{offers: []models.FlightOffer{
		{ID: "dear", Price: models.FlatPrice(900)},
		{ID: "cheap", Price: models.FlatPrice(200)},
	}}
	cfg := DefaultConfig()
	cfg.Cache = newMemoryCache()
	s := newTestSearcher(flights, cfg)

	if _, err := s.SearchFlights(context.Background(), nil, flightRequest()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	req := flightRequest()
	ceiling := 500.0
	req.Filters = &models.FlightFilters{PriceMax: &ceiling}
	resp, err := s.SearchFlights(context.Background(), nil, req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !resp.Metadata.CacheHit || flights.calls != 1 {
		t.Fatalf("expected cache hit, calls=%d meta=%+v", flights.calls, resp.Metadata)
	}
	if len(resp.Flights) != 1 || resp.Flights[0].ID != "cheap" {
		t.Fatalf("filters must apply to cached results, got %+v", resp.Flights)
	}
}

func TestSearchHotelsAndCabs(t *testing.T) {
	s := newTestSearcher(&fakeFlights{}, DefaultConfig())

	hotels, err := s.SearchHotels(context.Background(), nil, models.HotelSearchRequest{
		DestID: "-1", CheckinDate: "2025-06-01", CheckoutDate: "2025-06-03",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if hotels.Hotels[0].Name != "Ibis" || hotels.Metadata.TotalResults != 2 {
		t.Fatalf("expected cheapest first, got %+v", hotels.Hotels)
	}

	cabs, err := s.SearchCabs(context.Background(), models.CabSearchRequest{Location: "Goa", Passengers: 2})
	if err != nil || len(cabs.Cabs) != 2 {
		t.Fatalf("unexpected cabs %+v, err %v", cabs, err)
	}
}

func TestResolveAirport(t *testing.T) {
	s := newTestSearcher(&fakeFlights{}, DefaultConfig())

	code, err := s.ResolveAirport(context.Background(), nil, "Paris")
	if err != nil || code != "CDG" {
		t.Fatalf("expected CDG, got %q %v", code, err)
	}
	if code, _ := s.ResolveAirport(context.Background(), nil, "LHR"); code != "LHR" {
		t.Fatalf("codes should pass through, got %q", code)
	}
	if _, err := s.ResolveAirport(context.Background(), nil, "Atlantis"); !errors.Is(err, models.ErrNoAirport) {
		t.Fatalf("expected ErrNoAirport, got %v", err)
	}
}
