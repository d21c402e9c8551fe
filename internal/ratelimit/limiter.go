package ratelimit

import (
	"context"
	"sync"

	"golang.org/x/time/rate"
)

// Outbound services the BFF throttles.
const (
	ServiceFlights   = "flights"
	ServiceAirports  = "airports"
	ServiceHotels    = "hotels"
	ServiceCabs      = "cabs"
	ServiceItinerary = "itinerary"
)

type Limit struct {
	RequestsPerSecond float64
	Burst             int
}

// ServiceLimiter keeps one token bucket per outbound service.
type ServiceLimiter struct {
	mu       sync.RWMutex
	limiters map[string]*rate.Limiter
	defaults Limit
}

func DefaultLimit() Limit {
	return Limit{
		RequestsPerSecond: 5,
		Burst:             10,
	}
}

func NewServiceLimiter(defaults Limit, overrides map[string]Limit) *ServiceLimiter {
	l := &ServiceLimiter{
		limiters: make(map[string]*rate.Limiter),
		defaults: defaults,
	}
	for service, lim := range overrides {
		l.SetLimit(service, lim)
	}
	return l
}

func (l *ServiceLimiter) limiter(service string) *rate.Limiter {
	l.mu.RLock()
	limiter, ok := l.limiters[service]
	l.mu.RUnlock()
	if ok {
		return limiter
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if limiter, ok = l.limiters[service]; ok {
		return limiter
	}
	limiter = rate.NewLimiter(rate.Limit(l.defaults.RequestsPerSecond), l.defaults.Burst)
	l.limiters[service] = limiter
	return limiter
}

func (l *ServiceLimiter) SetLimit(service string, lim Limit) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.limiters[service] = rate.NewLimiter(rate.Limit(lim.RequestsPerSecond), lim.Burst)
}

// Wait blocks until the service has a token or ctx is done.
func (l *ServiceLimiter) Wait(ctx context.Context, service string) error {
	return l.limiter(service).Wait(ctx)
}

// Allow takes a token without waiting.
func (l *ServiceLimiter) Allow(service string) bool {
	return l.limiter(service).Allow()
}
