package providers

import (
	"context"

	"github.com/Agmahima/TravelEase/internal/backend"
	"github.com/Agmahima/TravelEase/internal/models"
)

type FlightSource interface {
	Name() string
	Search(ctx context.Context, auth backend.AuthSession, req models.FlightSearchRequest) ([]models.FlightOffer, error)
}

type HotelSource interface {
	Name() string
	Search(ctx context.Context, auth backend.AuthSession, req models.HotelSearchRequest) ([]models.HotelOffer, error)
}

type CabSource interface {
	Name() string
	Search(ctx context.Context, req models.CabSearchRequest) ([]models.CabOffer, error)
}

type ProviderError struct {
	Provider string
	Err      error
}

func (e *ProviderError) Error() string {
	return e.Provider + ": " + e.Err.Error()
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

func NewProviderError(provider string, err error) *ProviderError {
	return &ProviderError{
		Provider: provider,
		Err:      err,
	}
}
