// Package service orchestrates session state, the pure trip and booking
// logic, and the outbound backend calls behind the HTTP handlers.
package service

import (
	"context"
	"encoding/json"

	"github.com/Agmahima/TravelEase/internal/backend"
	"github.com/Agmahima/TravelEase/internal/itinerary"
	"github.com/Agmahima/TravelEase/internal/models"
)

type AuthAPI interface {
	Login(ctx context.Context, auth backend.AuthSession, creds models.LoginRequest) (models.LoginResponse, error)
	Register(ctx context.Context, auth backend.AuthSession, req models.RegisterRequest) (models.LoginResponse, error)
	Logout(ctx context.Context, auth backend.AuthSession) error
	Me(ctx context.Context, auth backend.AuthSession) (models.User, error)
}

type TripAPI interface {
	CreateTrip(ctx context.Context, auth backend.AuthSession, payload models.TripPayload) (models.TripRecord, error)
	UpdateTrip(ctx context.Context, auth backend.AuthSession, id string, patch any) (models.TripRecord, error)
	GetTrip(ctx context.Context, auth backend.AuthSession, id string) (models.TripRecord, error)
	ListTrips(ctx context.Context, auth backend.AuthSession) ([]models.TripRecord, error)
	ListTransportationBookings(ctx context.Context, auth backend.AuthSession) ([]models.TransportationBookingRecord, error)
}

type BookingAPI interface {
	BookFlight(ctx context.Context, auth backend.AuthSession, booking models.FlightBookingRequest) (json.RawMessage, error)
	BookTransportation(ctx context.Context, auth backend.AuthSession, booking models.TransportationBooking) (json.RawMessage, error)
}

type OfferSearcher interface {
	SearchFlights(ctx context.Context, auth backend.AuthSession, req models.FlightSearchRequest) (*models.FlightSearchResponse, error)
	SearchHotels(ctx context.Context, auth backend.AuthSession, req models.HotelSearchRequest) (*models.HotelSearchResponse, error)
	SearchCabs(ctx context.Context, req models.CabSearchRequest) (*models.CabSearchResponse, error)
	ResolveAirport(ctx context.Context, auth backend.AuthSession, city string) (string, error)
}

// GeneratorFactory returns the itinerary generator to use for one session.
type GeneratorFactory func(auth backend.AuthSession) itinerary.Generator
