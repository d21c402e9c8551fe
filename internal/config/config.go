// Package config reads server settings from the environment, after loading
// a .env file when one is present.
package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/Agmahima/TravelEase/internal/backend"
	"github.com/Agmahima/TravelEase/internal/cache"
	"github.com/Agmahima/TravelEase/internal/itinerary"
	"github.com/Agmahima/TravelEase/internal/ratelimit"
	"github.com/Agmahima/TravelEase/internal/search"
)

type Config struct {
	Port     string
	Currency string

	Backend backend.Config

	RedisEnabled bool
	Redis        cache.RedisConfig
	CacheEnabled bool
	SessionTTL   time.Duration

	Search             search.Config
	RateLimit          ratelimit.Limit
	RateLimitOverrides map[string]ratelimit.Limit

	Itinerary itinerary.Config
}

func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found; using system environment")
	}

	searchCfg := search.DefaultConfig()
	searchCfg.Timeout = getEnvDuration("SEARCH_TIMEOUT", searchCfg.Timeout)
	searchCfg.MaxRetries = getEnvInt("MAX_RETRIES", searchCfg.MaxRetries)

	redisCfg := cache.DefaultRedisConfig()
	redisCfg.Host = getEnv("REDIS_HOST", redisCfg.Host)
	redisCfg.Port = getEnv("REDIS_PORT", redisCfg.Port)
	redisCfg.Password = getEnv("REDIS_PASSWORD", "")
	redisCfg.DB = getEnvInt("REDIS_DB", redisCfg.DB)
	redisCfg.TTL = getEnvDuration("REDIS_TTL", redisCfg.TTL)

	backendCfg := backend.DefaultConfig()
	backendCfg.BaseURL = getEnv("BACKEND_URL", backendCfg.BaseURL)
	backendCfg.HotelBaseURL = getEnv("HOTEL_API_URL", "")
	backendCfg.Timeout = getEnvDuration("BACKEND_TIMEOUT", backendCfg.Timeout)

	provider := strings.ToLower(getEnv("ITINERARY_PROVIDER", itinerary.ProviderBackend))
	itCfg := itinerary.Config{
		Provider: provider,
		Model:    getEnv("ITINERARY_MODEL", ""),
		BaseURL:  getEnv("OPENAI_BASE_URL", ""),
	}
	switch provider {
	case itinerary.ProviderOpenAI:
		itCfg.APIKey = os.Getenv("OPENAI_API_KEY")
	case itinerary.ProviderGemini:
		itCfg.APIKey = os.Getenv("GEMINI_API_KEY")
	}

	base := ratelimit.Limit{
		RequestsPerSecond: getEnvFloat("RATE_LIMIT_RPS", ratelimit.DefaultLimit().RequestsPerSecond),
		Burst:             getEnvInt("RATE_LIMIT_BURST", ratelimit.DefaultLimit().Burst),
	}

	return Config{
		Port:         getEnv("PORT", "8080"),
		Currency:     strings.ToUpper(getEnv("CURRENCY", "USD")),
		Backend:      backendCfg,
		RedisEnabled: getEnvBool("REDIS_ENABLED", true),
		Redis:        redisCfg,
		CacheEnabled: getEnvBool("CACHE_ENABLED", true),
		SessionTTL:   getEnvDuration("SESSION_TTL", 24*time.Hour),
		Search:       searchCfg,
		RateLimit:    base,
		RateLimitOverrides: map[string]ratelimit.Limit{
			ratelimit.ServiceItinerary: {RequestsPerSecond: 1, Burst: 2},
			ratelimit.ServiceCabs:      {RequestsPerSecond: 20, Burst: 40},
		},
		Itinerary: itCfg,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value == "true" || value == "1" || value == "yes"
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	duration, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return duration
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}

func getEnvFloat(key string, defaultValue float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return defaultValue
	}
	return f
}
