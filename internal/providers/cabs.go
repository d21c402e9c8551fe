package providers

import (
	"context"
	"encoding/json"
	"math/rand"
	"time"

	"github.com/Agmahima/TravelEase/internal/models"
	"github.com/Agmahima/TravelEase/internal/providers/data"
)

type cabCatalogFile struct {
	Currency string            `json:"currency"`
	Cabs     []models.CabOffer `json:"cabs"`
}

// CabCatalog serves the fixed cab fleet. There is no cab API; rates are per
// day and the same for every location.
type CabCatalog struct {
	cabs     []models.CabOffer
	currency string
	// Latency simulates a remote lookup; zero disables it.
	Latency time.Duration
}

func NewCabCatalog() (*CabCatalog, error) {
	var file cabCatalogFile
	if err := json.Unmarshal(data.CabData, &file); err != nil {
		return nil, err
	}
	for i := range file.Cabs {
		if file.Cabs[i].Currency == "" {
			file.Cabs[i].Currency = file.Currency
		}
	}
	return &CabCatalog{
		cabs:     file.Cabs,
		currency: file.Currency,
		Latency:  50 * time.Millisecond,
	}, nil
}

func (p *CabCatalog) Name() string {
	return "cab-catalog"
}

func (p *CabCatalog) Search(ctx context.Context, req models.CabSearchRequest) ([]models.CabOffer, error) {
	if p.Latency > 0 {
		delay := p.Latency + time.Duration(rand.Int63n(int64(p.Latency)))
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	results := make([]models.CabOffer, 0, len(p.cabs))
	for _, c := range p.cabs {
		if req.Passengers > 0 && c.Capacity < req.Passengers {
			continue
		}
		c.Features = append([]string(nil), c.Features...)
		results = append(results, c)
	}
	return results, nil
}
