// Package search runs offer lookups against the flight, hotel and cab
// sources with rate limiting, a timeout, retries and a result cache.
package search

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/Agmahima/TravelEase/internal/backend"
	"github.com/Agmahima/TravelEase/internal/cache"
	"github.com/Agmahima/TravelEase/internal/filter"
	"github.com/Agmahima/TravelEase/internal/models"
	"github.com/Agmahima/TravelEase/internal/providers"
	"github.com/Agmahima/TravelEase/internal/ratelimit"
)

type Config struct {
	Timeout     time.Duration
	MaxRetries  int
	RetryDelays []time.Duration
	RateLimiter *ratelimit.ServiceLimiter
	Cache       cache.Cache
}

func DefaultConfig() Config {
	return Config{
		Timeout:     10 * time.Second,
		MaxRetries:  2,
		RetryDelays: []time.Duration{100 * time.Millisecond, 300 * time.Millisecond},
	}
}

// AirportLookup resolves city names to airports.
type AirportLookup interface {
	SearchAirports(ctx context.Context, auth backend.AuthSession, keyword string) ([]models.Airport, error)
}

type Searcher struct {
	flights  providers.FlightSource
	hotels   providers.HotelSource
	cabs     providers.CabSource
	airports AirportLookup
	config   Config
}

func NewSearcher(flights providers.FlightSource, hotels providers.HotelSource, cabs providers.CabSource, airports AirportLookup, config Config) *Searcher {
	if config.Cache == nil {
		config.Cache = cache.NewNoOpCache()
	}
	return &Searcher{
		flights:  flights,
		hotels:   hotels,
		cabs:     cabs,
		airports: airports,
		config:   config,
	}
}

// flightKey holds the fields that change what the backend returns; filters
// and sort order are applied after the cache.
type flightKey struct {
	Origin, Destination, Departure, Return string
	Adults, Children, Max                  int
	Currency                               string
}

func (s *Searcher) SearchFlights(ctx context.Context, auth backend.AuthSession, req models.FlightSearchRequest) (*models.FlightSearchResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	start := time.Now()
	key := cache.Key("flights", flightKey{
		Origin: req.OriginCode, Destination: req.DestinationCode,
		Departure: req.DateOfDeparture, Return: req.ReturnDate,
		Adults: req.Adults, Children: req.Children, Max: req.Max,
		Currency: req.CurrencyCode,
	})

	offers, meta, err := cached(ctx, s, key, ratelimit.ServiceFlights, s.flights.Name(),
		func(ctx context.Context) ([]models.FlightOffer, error) {
			return s.flights.Search(ctx, auth, req)
		})
	if err != nil {
		return nil, err
	}

	offers = filter.Flights(offers, req.Filters, req.SortBy, req.SortOrder)
	meta.TotalResults = len(offers)
	meta.SearchTimeMs = time.Since(start).Milliseconds()

	return &models.FlightSearchResponse{Metadata: meta, Flights: offers}, nil
}

func (s *Searcher) SearchHotels(ctx context.Context, auth backend.AuthSession, req models.HotelSearchRequest) (*models.HotelSearchResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	start := time.Now()
	key := cache.Key("hotels", struct {
		DestID, Checkin, Checkout string
		Adults, Rooms             int
	}{req.DestID, req.CheckinDate, req.CheckoutDate, req.Adults, req.RoomQty})

	hotels, meta, err := cached(ctx, s, key, ratelimit.ServiceHotels, s.hotels.Name(),
		func(ctx context.Context) ([]models.HotelOffer, error) {
			return s.hotels.Search(ctx, auth, req)
		})
	if err != nil {
		return nil, err
	}

	hotels = filter.Hotels(hotels, req)
	meta.TotalResults = len(hotels)
	meta.SearchTimeMs = time.Since(start).Milliseconds()

	return &models.HotelSearchResponse{Metadata: meta, Hotels: hotels}, nil
}

func (s *Searcher) SearchCabs(ctx context.Context, req models.CabSearchRequest) (*models.CabSearchResponse, error) {
	start := time.Now()
	key := cache.Key("cabs", req)

	cabs, meta, err := cached(ctx, s, key, ratelimit.ServiceCabs, s.cabs.Name(),
		func(ctx context.Context) ([]models.CabOffer, error) {
			return s.cabs.Search(ctx, req)
		})
	if err != nil {
		return nil, err
	}

	meta.TotalResults = len(cabs)
	meta.SearchTimeMs = time.Since(start).Milliseconds()
	return &models.CabSearchResponse{Metadata: meta, Cabs: cabs}, nil
}

func (s *Searcher) SearchAirports(ctx context.Context, auth backend.AuthSession, keyword string) ([]models.Airport, error) {
	keyword = strings.TrimSpace(keyword)
	if len([]rune(keyword)) < 2 {
		return nil, models.ErrKeywordTooShort
	}

	key := cache.Key("airports", strings.ToLower(keyword))
	airports, _, err := cached(ctx, s, key, ratelimit.ServiceAirports, "airports",
		func(ctx context.Context) ([]models.Airport, error) {
			return s.airports.SearchAirports(ctx, auth, keyword)
		})
	return airports, err
}

// ResolveAirport maps a city name to the first matching IATA code. A value
// that already looks like an airport code is returned upper-cased.
func (s *Searcher) ResolveAirport(ctx context.Context, auth backend.AuthSession, city string) (string, error) {
	city = strings.TrimSpace(city)
	if len(city) == 3 && strings.ToUpper(city) == city {
		return city, nil
	}

	airports, err := s.SearchAirports(ctx, auth, city)
	if err != nil {
		return "", err
	}
	for _, a := range airports {
		if a.IATACode != "" {
			return strings.ToUpper(a.IATACode), nil
		}
	}
	return "", fmt.Errorf("%q: %w", city, models.ErrNoAirport)
}

// cached serves a lookup from the cache or runs it with the rate limit,
// timeout and retry policy, storing successful results.
func cached[T any](ctx context.Context, s *Searcher, key, service, source string, call func(context.Context) ([]T, error)) ([]T, models.SearchMetadata, error) {
	meta := models.SearchMetadata{Source: source}

	var hit []T
	if s.config.Cache.Get(ctx, key, &hit) {
		meta.CacheHit = true
		return hit, meta, nil
	}

	searchCtx := ctx
	if s.config.Timeout > 0 {
		var cancel context.CancelFunc
		searchCtx, cancel = context.WithTimeout(ctx, s.config.Timeout)
		defer cancel()
	}

	results, attempts, err := withRetry(searchCtx, s.config, service, source, call)
	meta.Attempts = attempts
	if err != nil {
		return nil, meta, providers.NewProviderError(source, err)
	}
	if results == nil {
		results = []T{}
	}

	if err := s.config.Cache.Set(ctx, key, results); err != nil {
		log.Printf("Failed to cache %s results: %v", source, err)
	}
	return results, meta, nil
}

func withRetry[T any](ctx context.Context, cfg Config, service, source string, call func(context.Context) ([]T, error)) ([]T, int, error) {
	var lastErr error
	attempts := 0

	for attempt := 0; attempt <= cfg.MaxRetries; attempt++ {
		select {
		case <-ctx.Done():
			return nil, attempts, ctx.Err()
		default:
		}

		if attempt > 0 && len(cfg.RetryDelays) > 0 {
			delayIdx := attempt - 1
			if delayIdx >= len(cfg.RetryDelays) {
				delayIdx = len(cfg.RetryDelays) - 1
			}

			select {
			case <-time.After(cfg.RetryDelays[delayIdx]):
			case <-ctx.Done():
				return nil, attempts, ctx.Err()
			}
		}

		if cfg.RateLimiter != nil {
			if err := cfg.RateLimiter.Wait(ctx, service); err != nil {
				return nil, attempts, err
			}
		}

		attempts++
		results, err := call(ctx)
		if err == nil {
			return results, attempts, nil
		}

		lastErr = err
		log.Printf("Source %s attempt %d failed: %v", source, attempts, err)
		if !backend.IsRetryable(err) {
			break
		}
	}

	return nil, attempts, lastErr
}
