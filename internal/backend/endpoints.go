package backend

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/Agmahima/TravelEase/internal/itinerary"
	"github.com/Agmahima/TravelEase/internal/models"
)

func (c *Client) Login(ctx context.Context, auth AuthSession, creds models.LoginRequest) (models.LoginResponse, error) {
	if strings.TrimSpace(creds.Username) == "" || creds.Password == "" {
		return models.LoginResponse{}, models.ErrMissingCredentials
	}

	var resp models.LoginResponse
	err := c.do(ctx, request{method: http.MethodPost, path: "/api/auth/login", body: creds}, &resp)
	if err != nil {
		return models.LoginResponse{}, err
	}
	if resp.Token == "" {
		return models.LoginResponse{}, &models.AuthenticationError{Message: "login response carried no token"}
	}
	if auth != nil {
		user := resp.User
		auth.SetToken(resp.Token, &user)
	}
	return resp, nil
}

// Register creates an account and signs auth in with the returned token.
func (c *Client) Register(ctx context.Context, auth AuthSession, req models.RegisterRequest) (models.LoginResponse, error) {
	if err := req.Validate(); err != nil {
		return models.LoginResponse{}, err
	}

	var resp models.LoginResponse
	err := c.do(ctx, request{method: http.MethodPost, path: "/api/auth/register", body: req}, &resp)
	if err != nil {
		return models.LoginResponse{}, err
	}
	if resp.Token == "" {
		return models.LoginResponse{}, &models.AuthenticationError{Message: "registration response carried no token"}
	}
	if auth != nil {
		user := resp.User
		auth.SetToken(resp.Token, &user)
	}
	return resp, nil
}

// Logout tells the backend the token is done with. The token is cleared from
// auth whatever the outcome.
func (c *Client) Logout(ctx context.Context, auth AuthSession) error {
	if auth == nil || auth.Token() == "" {
		return nil
	}
	err := c.do(ctx, request{method: http.MethodPost, path: "/api/auth/logout", auth: auth}, nil)
	auth.Clear()
	return err
}

func (c *Client) Me(ctx context.Context, auth AuthSession) (models.User, error) {
	var raw json.RawMessage
	err := c.do(ctx, request{method: http.MethodGet, path: "/api/auth/me", auth: auth, requireAuth: true}, &raw)
	if err != nil {
		return models.User{}, err
	}

	var wrapped struct {
		User *models.User `json:"user"`
	}
	if err := json.Unmarshal(raw, &wrapped); err == nil && wrapped.User != nil {
		return *wrapped.User, nil
	}
	var user models.User
	if err := json.Unmarshal(raw, &user); err != nil {
		return models.User{}, fmt.Errorf("failed to decode user: %w", err)
	}
	return user, nil
}

func (c *Client) CreateTrip(ctx context.Context, auth AuthSession, payload models.TripPayload) (models.TripRecord, error) {
	return c.tripCall(ctx, request{method: http.MethodPost, path: "/api/trips", body: payload, auth: auth, requireAuth: true})
}

// UpdateTrip sends a partial update; patch is marshalled as-is.
func (c *Client) UpdateTrip(ctx context.Context, auth AuthSession, id string, patch any) (models.TripRecord, error) {
	if id == "" {
		return models.TripRecord{}, models.ErrMissingTrip
	}
	return c.tripCall(ctx, request{method: http.MethodPatch, path: "/api/trips/" + url.PathEscape(id), body: patch, auth: auth, requireAuth: true})
}

func (c *Client) GetTrip(ctx context.Context, auth AuthSession, id string) (models.TripRecord, error) {
	if id == "" {
		return models.TripRecord{}, models.ErrMissingTrip
	}
	return c.tripCall(ctx, request{method: http.MethodGet, path: "/api/trips/" + url.PathEscape(id), auth: auth, requireAuth: true})
}

func (c *Client) tripCall(ctx context.Context, r request) (models.TripRecord, error) {
	var raw json.RawMessage
	if err := c.do(ctx, r, &raw); err != nil {
		return models.TripRecord{}, err
	}
	var rec models.TripRecord
	if len(raw) == 0 {
		return rec, nil
	}
	if err := unwrapData(raw, &rec); err != nil {
		return models.TripRecord{}, fmt.Errorf("failed to decode trip: %w", err)
	}
	return rec, nil
}

func (c *Client) ListTrips(ctx context.Context, auth AuthSession) ([]models.TripRecord, error) {
	var raw json.RawMessage
	err := c.do(ctx, request{method: http.MethodGet, path: "/api/trips", auth: auth, requireAuth: true}, &raw)
	if err != nil {
		return nil, err
	}
	trips := []models.TripRecord{}
	if len(raw) == 0 {
		return trips, nil
	}
	if err := unwrapData(raw, &trips); err != nil {
		return nil, fmt.Errorf("failed to decode trips: %w", err)
	}
	return trips, nil
}

// GenerateItinerary asks the backend to plan the trip. Failures other than
// authentication and rate limiting surface as *models.GenerationError.
func (c *Client) GenerateItinerary(ctx context.Context, auth AuthSession, req models.GenerateRequest) (models.Itinerary, error) {
	var raw json.RawMessage
	err := c.do(ctx, request{method: http.MethodPost, path: "/api/generate-itinerary", body: req, auth: auth, requireAuth: true}, &raw)
	if err != nil {
		var authErr *models.AuthenticationError
		var rlErr *models.RateLimitError
		if errors.As(err, &authErr) || errors.As(err, &rlErr) {
			return models.Itinerary{}, err
		}
		return models.Itinerary{}, &models.GenerationError{Err: err}
	}

	var it models.Itinerary
	if err := unwrapData(raw, &it); err != nil {
		return models.Itinerary{}, &models.GenerationError{Err: fmt.Errorf("invalid itinerary response: %w", err)}
	}
	if len(it.Days) == 0 {
		return models.Itinerary{}, &models.GenerationError{Err: errors.New("itinerary has no days")}
	}
	return it, nil
}

// ItineraryGenerator binds the backend generator to one auth session.
func (c *Client) ItineraryGenerator(auth AuthSession) itinerary.Generator {
	return itinerary.GeneratorFunc(func(ctx context.Context, req models.GenerateRequest) (models.Itinerary, error) {
		return c.GenerateItinerary(ctx, auth, req)
	})
}

func (c *Client) SearchFlights(ctx context.Context, auth AuthSession, req models.FlightSearchRequest) ([]models.FlightOffer, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	q := url.Values{}
	q.Set("originCode", req.OriginCode)
	q.Set("destinationCode", req.DestinationCode)
	q.Set("dateOfDeparture", req.DateOfDeparture)
	q.Set("adults", strconv.Itoa(req.Adults))
	if req.Children > 0 {
		q.Set("children", strconv.Itoa(req.Children))
	}
	if req.ReturnDate != "" {
		q.Set("returnDate", req.ReturnDate)
	}
	if req.CurrencyCode != "" {
		q.Set("currencyCode", req.CurrencyCode)
	}
	q.Set("max", strconv.Itoa(req.Max))

	var raw json.RawMessage
	if err := c.do(ctx, request{method: http.MethodGet, path: "/api/flights/flight-search", query: q, auth: auth}, &raw); err != nil {
		return nil, err
	}
	offers := []models.FlightOffer{}
	if len(raw) == 0 {
		return offers, nil
	}
	if err := unwrapData(raw, &offers); err != nil {
		return nil, fmt.Errorf("failed to decode flight offers: %w", err)
	}
	return offers, nil
}

func (c *Client) SearchAirports(ctx context.Context, auth AuthSession, keyword string) ([]models.Airport, error) {
	keyword = strings.TrimSpace(keyword)
	if len([]rune(keyword)) < 2 {
		return nil, models.ErrKeywordTooShort
	}

	q := url.Values{}
	q.Set("keyword", keyword)

	var raw json.RawMessage
	if err := c.do(ctx, request{method: http.MethodGet, path: "/api/flights/city-and-airport-search", query: q, auth: auth}, &raw); err != nil {
		return nil, err
	}
	airports := []models.Airport{}
	if len(raw) == 0 {
		return airports, nil
	}
	if err := unwrapData(raw, &airports); err != nil {
		return nil, fmt.Errorf("failed to decode airports: %w", err)
	}
	return airports, nil
}

func (c *Client) BookFlight(ctx context.Context, auth AuthSession, booking models.FlightBookingRequest) (json.RawMessage, error) {
	var raw json.RawMessage
	err := c.do(ctx, request{method: http.MethodPost, path: "/api/flights/flight-booking", body: booking, auth: auth, requireAuth: true}, &raw)
	return raw, err
}

func (c *Client) SearchHotels(ctx context.Context, auth AuthSession, req models.HotelSearchRequest) ([]models.HotelOffer, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	q := url.Values{}
	q.Set("dest_id", req.DestID)
	q.Set("checkin_date", req.CheckinDate)
	q.Set("checkout_date", req.CheckoutDate)
	q.Set("adults", strconv.Itoa(req.Adults))
	q.Set("room_qty", strconv.Itoa(req.RoomQty))

	var raw json.RawMessage
	if err := c.do(ctx, request{method: http.MethodGet, base: c.hotelBaseURL, path: "/search", query: q, auth: auth}, &raw); err != nil {
		return nil, err
	}
	hotels := []models.HotelOffer{}
	if len(raw) == 0 {
		return hotels, nil
	}
	if err := unwrapData(raw, &hotels); err != nil {
		return nil, fmt.Errorf("failed to decode hotels: %w", err)
	}
	return hotels, nil
}

// HotelDetails returns the provider's details document unchanged, minus the
// {success, data} envelope.
func (c *Client) HotelDetails(ctx context.Context, auth AuthSession, req models.HotelDetailsRequest) (json.RawMessage, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	q := url.Values{}
	q.Set("hotel_id", req.HotelID)
	q.Set("arrival_date", req.ArrivalDate)
	q.Set("departure_date", req.DepartureDate)
	q.Set("adults", strconv.Itoa(req.Adults))
	q.Set("room_qty", strconv.Itoa(req.RoomQty))

	var raw json.RawMessage
	path := "/" + url.PathEscape(req.HotelID) + "/details"
	if err := c.do(ctx, request{method: http.MethodGet, base: c.hotelBaseURL, path: path, query: q, auth: auth}, &raw); err != nil {
		return nil, err
	}

	var envelope struct {
		Success *bool           `json:"success"`
		Data    json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(raw, &envelope); err == nil && envelope.Success != nil && !*envelope.Success {
		return nil, &models.APIError{StatusCode: http.StatusBadGateway, Message: "hotel details lookup failed"}
	}
	if len(envelope.Data) > 0 {
		return envelope.Data, nil
	}
	return raw, nil
}

func (c *Client) BookTransportation(ctx context.Context, auth AuthSession, booking models.TransportationBooking) (json.RawMessage, error) {
	var raw json.RawMessage
	err := c.do(ctx, request{method: http.MethodPost, path: "/api/transportation-bookings", body: booking, auth: auth, requireAuth: true}, &raw)
	return raw, err
}

func (c *Client) ListTransportationBookings(ctx context.Context, auth AuthSession) ([]models.TransportationBookingRecord, error) {
	var raw json.RawMessage
	err := c.do(ctx, request{method: http.MethodGet, path: "/api/transportation-bookings", auth: auth, requireAuth: true}, &raw)
	if err != nil {
		return nil, err
	}
	bookings := []models.TransportationBookingRecord{}
	if len(raw) == 0 {
		return bookings, nil
	}
	if err := unwrapData(raw, &bookings); err != nil {
		return nil, fmt.Errorf("failed to decode transportation bookings: %w", err)
	}
	return bookings, nil
}

// ListDestinations returns the browsable destination catalogue. No token is
// needed; one is sent when present.
func (c *Client) ListDestinations(ctx context.Context, auth AuthSession) ([]models.Destination, error) {
	var raw json.RawMessage
	if err := c.do(ctx, request{method: http.MethodGet, path: "/api/destinations", auth: auth}, &raw); err != nil {
		return nil, err
	}
	destinations := []models.Destination{}
	if len(raw) == 0 {
		return destinations, nil
	}
	if err := unwrapData(raw, &destinations); err != nil {
		return nil, fmt.Errorf("failed to decode destinations: %w", err)
	}
	return destinations, nil
}
