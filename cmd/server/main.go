package main

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"

	"github.com/Agmahima/TravelEase/internal/backend"
	"github.com/Agmahima/TravelEase/internal/cache"
	"github.com/Agmahima/TravelEase/internal/config"
	"github.com/Agmahima/TravelEase/internal/handler"
	"github.com/Agmahima/TravelEase/internal/itinerary"
	"github.com/Agmahima/TravelEase/internal/models"
	"github.com/Agmahima/TravelEase/internal/providers"
	"github.com/Agmahima/TravelEase/internal/ratelimit"
	"github.com/Agmahima/TravelEase/internal/search"
	"github.com/Agmahima/TravelEase/internal/service"
	"github.com/Agmahima/TravelEase/internal/session"
)

func main() {
	app := fx.New(
		fx.Provide(
			config.Load,
			provideRedis,
			provideSessionStore,
			provideCache,
			provideBackend,
			provideLimiter,
			provideSearcher,
			provideGenerators,
			providePlanner,
			provideCheckout,
			handler.NewTripHandler,
			handler.NewBookingHandler,
			provideCatalog,
			provideRouter,
		),
		fx.Invoke(startServer),
	)

	app.Run()
}

// provideRedis returns nil when Redis is disabled or unreachable; sessions
// then live in memory and search results are not cached.
func provideRedis(lc fx.Lifecycle, cfg config.Config) *redis.Client {
	if !cfg.RedisEnabled {
		log.Println("Redis disabled")
		return nil
	}
	client, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		log.Printf("Redis unavailable at %s:%s, falling back to memory: %v", cfg.Redis.Host, cfg.Redis.Port, err)
		return nil
	}
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return client.Close()
		},
	})
	log.Printf("Connected to Redis at %s:%s", cfg.Redis.Host, cfg.Redis.Port)
	return client
}

func provideSessionStore(cfg config.Config, client *redis.Client) session.Store {
	if client == nil {
		log.Printf("Using in-memory session store (TTL: %v)", cfg.SessionTTL)
		return session.NewMemoryStore(cfg.SessionTTL)
	}
	log.Printf("Using Redis session store (TTL: %v)", cfg.SessionTTL)
	return session.NewRedisStore(client, cfg.SessionTTL)
}

func provideCache(cfg config.Config, client *redis.Client) cache.Cache {
	if !cfg.CacheEnabled || client == nil {
		log.Println("Search cache disabled")
		return cache.NewNoOpCache()
	}
	log.Printf("Search cache enabled (TTL: %v)", cfg.Redis.TTL)
	return cache.NewRedisCache(client, cfg.Redis.TTL)
}

func provideBackend(cfg config.Config) *backend.Client {
	log.Printf("Backend API at %s", cfg.Backend.BaseURL)
	return backend.NewClient(cfg.Backend)
}

func provideLimiter(cfg config.Config) *ratelimit.ServiceLimiter {
	return ratelimit.NewServiceLimiter(cfg.RateLimit, cfg.RateLimitOverrides)
}

func provideSearcher(cfg config.Config, client *backend.Client, c cache.Cache, limiter *ratelimit.ServiceLimiter) (*search.Searcher, error) {
	cabs, err := providers.NewCabCatalog()
	if err != nil {
		return nil, err
	}

	searchCfg := cfg.Search
	searchCfg.RateLimiter = limiter
	searchCfg.Cache = c

	return search.NewSearcher(
		providers.NewBackendFlights(client),
		providers.NewBackendHotels(client),
		cabs,
		client,
		searchCfg,
	), nil
}

// provideGenerators picks the itinerary generator. The backend generator
// carries each session's token; model providers are shared.
func provideGenerators(lc fx.Lifecycle, cfg config.Config, client *backend.Client, limiter *ratelimit.ServiceLimiter) (service.GeneratorFactory, error) {
	if cfg.Itinerary.Provider == itinerary.ProviderBackend || cfg.Itinerary.Provider == "" {
		log.Println("Itinerary generation via backend")
		return func(auth backend.AuthSession) itinerary.Generator {
			return throttled(client.ItineraryGenerator(auth), limiter)
		}, nil
	}

	gen, err := itinerary.NewGenerator(context.Background(), cfg.Itinerary, nil)
	if err != nil {
		return nil, err
	}
	if closer, ok := gen.(interface{ Close() error }); ok {
		lc.Append(fx.Hook{
			OnStop: func(ctx context.Context) error {
				return closer.Close()
			},
		})
	}
	log.Printf("Itinerary generation via %s", cfg.Itinerary.Provider)

	shared := throttled(gen, limiter)
	return func(backend.AuthSession) itinerary.Generator {
		return shared
	}, nil
}

func throttled(gen itinerary.Generator, limiter *ratelimit.ServiceLimiter) itinerary.Generator {
	return itinerary.GeneratorFunc(func(ctx context.Context, req models.GenerateRequest) (models.Itinerary, error) {
		if err := limiter.Wait(ctx, ratelimit.ServiceItinerary); err != nil {
			return models.Itinerary{}, err
		}
		return gen.Generate(ctx, req)
	})
}

func providePlanner(store session.Store, client *backend.Client, searcher *search.Searcher, gens service.GeneratorFactory) *service.Planner {
	return service.NewPlanner(store, client, client, searcher, gens)
}

func provideCheckout(cfg config.Config, store session.Store, searcher *search.Searcher, client *backend.Client) *service.Checkout {
	return service.NewCheckout(store, searcher, client, client, cfg.Currency)
}

func provideCatalog(client *backend.Client, searcher *search.Searcher) *handler.CatalogHandler {
	return handler.NewCatalogHandler(client, searcher, client)
}

func provideRouter(trips *handler.TripHandler, bookings *handler.BookingHandler, catalog *handler.CatalogHandler) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(middleware.RequestID())

	handler.Register(e, trips, bookings, catalog)
	return e
}

func startServer(lc fx.Lifecycle, cfg config.Config, e *echo.Echo) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				log.Printf("Starting TravelEase server on port %s", cfg.Port)
				if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Fatalf("Failed to start server: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Println("Stopping HTTP server")
			return e.Shutdown(ctx)
		},
	})
}
