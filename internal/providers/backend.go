package providers

import (
	"context"

	"github.com/Agmahima/TravelEase/internal/backend"
	"github.com/Agmahima/TravelEase/internal/models"
)

// BackendFlights serves flight offers from the TravelEase backend.
type BackendFlights struct {
	client *backend.Client
}

func NewBackendFlights(client *backend.Client) *BackendFlights {
	return &BackendFlights{client: client}
}

func (p *BackendFlights) Name() string {
	return "backend-flights"
}

func (p *BackendFlights) Search(ctx context.Context, auth backend.AuthSession, req models.FlightSearchRequest) ([]models.FlightOffer, error) {
	return p.client.SearchFlights(ctx, auth, req)
}

// BackendHotels serves hotel offers from the hotel service.
type BackendHotels struct {
	client *backend.Client
}

func NewBackendHotels(client *backend.Client) *BackendHotels {
	return &BackendHotels{client: client}
}

func (p *BackendHotels) Name() string {
	return "backend-hotels"
}

func (p *BackendHotels) Search(ctx context.Context, auth backend.AuthSession, req models.HotelSearchRequest) ([]models.HotelOffer, error) {
	return p.client.SearchHotels(ctx, auth, req)
}
