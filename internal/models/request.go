package models

import "strings"

type FlightFilters struct {
	PriceMin *float64 `json:"priceMin,omitempty"`
	PriceMax *float64 `json:"priceMax,omitempty"`
	Airlines []string `json:"airlines,omitempty"`
	// Stops holds any of "nonstop", "1stop", "2+stops".
	Stops       []string `json:"stops,omitempty"`
	MaxDuration *int     `json:"maxDuration,omitempty"`
}

type FlightSearchRequest struct {
	OriginCode      string         `json:"originCode" query:"originCode"`
	DestinationCode string         `json:"destinationCode" query:"destinationCode"`
	DateOfDeparture string         `json:"dateOfDeparture" query:"dateOfDeparture"`
	ReturnDate      string         `json:"returnDate,omitempty" query:"returnDate"`
	Adults          int            `json:"adults" query:"adults"`
	Children        int            `json:"children,omitempty" query:"children"`
	CurrencyCode    string         `json:"currencyCode,omitempty" query:"currencyCode"`
	Max             int            `json:"max,omitempty" query:"max"`
	Filters         *FlightFilters `json:"filters,omitempty"`
	SortBy          string         `json:"sortBy,omitempty" query:"sortBy"`
	SortOrder       string         `json:"sortOrder,omitempty" query:"sortOrder"`

	// City names from a trip leg, resolved to airport codes before searching.
	OriginCity      string `json:"originCity,omitempty" query:"originCity"`
	DestinationCity string `json:"destinationCity,omitempty" query:"destinationCity"`
}

func (r *FlightSearchRequest) Validate() error {
	r.OriginCode = strings.ToUpper(strings.TrimSpace(r.OriginCode))
	r.DestinationCode = strings.ToUpper(strings.TrimSpace(r.DestinationCode))
	if r.OriginCode == "" {
		return ErrMissingOrigin
	}
	if r.DestinationCode == "" {
		return ErrMissingDestination
	}
	if r.DateOfDeparture == "" {
		return ErrMissingDepartureDate
	}
	if r.Adults <= 0 {
		r.Adults = 1
	}
	if r.Children < 0 {
		r.Children = 0
	}
	if r.Max <= 0 {
		r.Max = 10
	}
	if r.SortBy == "" {
		r.SortBy = "price"
	}
	if r.SortOrder == "" {
		r.SortOrder = "asc"
	}
	return nil
}

type HotelSearchRequest struct {
	DestID       string  `json:"dest_id" query:"dest_id"`
	CheckinDate  string  `json:"checkin_date" query:"checkin_date"`
	CheckoutDate string  `json:"checkout_date" query:"checkout_date"`
	Adults       int     `json:"adults" query:"adults"`
	RoomQty      int     `json:"room_qty" query:"room_qty"`
	MaxPrice     float64 `json:"maxPrice,omitempty" query:"maxPrice"`
	MinRating    float64 `json:"minRating,omitempty" query:"minRating"`
	SortBy       string  `json:"sortBy,omitempty" query:"sortBy"`
	SortOrder    string  `json:"sortOrder,omitempty" query:"sortOrder"`
}

func (r *HotelSearchRequest) Validate() error {
	r.DestID = strings.TrimSpace(r.DestID)
	if r.DestID == "" {
		return ErrMissingDestID
	}
	if r.CheckinDate == "" {
		return ErrMissingCheckin
	}
	if r.CheckoutDate == "" {
		return ErrMissingCheckout
	}
	if r.Adults <= 0 {
		r.Adults = 1
	}
	if r.RoomQty <= 0 {
		r.RoomQty = 1
	}
	if r.SortBy == "" {
		r.SortBy = "price"
	}
	if r.SortOrder == "" {
		r.SortOrder = "asc"
	}
	return nil
}

type HotelDetailsRequest struct {
	HotelID       string `param:"hotelId"`
	ArrivalDate   string `query:"arrival_date"`
	DepartureDate string `query:"departure_date"`
	Adults        int    `query:"adults"`
	RoomQty       int    `query:"room_qty"`
}

func (r *HotelDetailsRequest) Validate() error {
	if strings.TrimSpace(r.HotelID) == "" {
		return ErrMissingHotelID
	}
	if r.ArrivalDate == "" {
		return ErrMissingCheckin
	}
	if r.DepartureDate == "" {
		return ErrMissingCheckout
	}
	if r.Adults <= 0 {
		r.Adults = 1
	}
	if r.RoomQty <= 0 {
		r.RoomQty = 1
	}
	return nil
}

type CabSearchRequest struct {
	Location   string `json:"location"`
	Passengers int    `json:"passengers"`
}

type Traveler struct {
	ID          string `json:"id"`
	DateOfBirth string `json:"dateOfBirth,omitempty"`
	FirstName   string `json:"firstName" validate:"required"`
	LastName    string `json:"lastName" validate:"required"`
	Gender      string `json:"gender,omitempty"`
	Email       string `json:"email,omitempty" validate:"omitempty,email"`
	Phone       string `json:"phone,omitempty"`
}

type FlightBookingRequest struct {
	FlightOffer FlightOffer `json:"flightOffer"`
	Travelers   []Traveler  `json:"travelers"`
}

// TransportationBooking is the ground-transport booking body.
type TransportationBooking struct {
	TripID          string  `json:"tripId"`
	ServiceType     string  `json:"serviceType"`
	VehicleType     string  `json:"vehicleType"`
	PickupLocation  string  `json:"pickupLocation"`
	DropoffLocation string  `json:"dropoffLocation,omitempty"`
	StartDate       string  `json:"startDate"`
	EndDate         string  `json:"endDate"`
	Days            int     `json:"days"`
	Passengers      int     `json:"passengers"`
	TotalPrice      float64 `json:"totalPrice"`
	Status          string  `json:"status"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type RegisterRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required,min=6"`
	Email    string `json:"email" validate:"required,email"`
	FullName string `json:"fullName" validate:"required"`
}

func (r RegisterRequest) Validate() error {
	if strings.TrimSpace(r.Username) == "" || r.Password == "" ||
		strings.TrimSpace(r.Email) == "" || strings.TrimSpace(r.FullName) == "" {
		return ErrMissingRegistration
	}
	return nil
}

type LoginResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// OfferQuery narrows a wizard offer fetch. Empty fields fall back to the
// trip draft.
type OfferQuery struct {
	Force bool `query:"force"`

	Origin      string   `query:"origin"`
	Destination string   `query:"destination"`
	Date        string   `query:"date"`
	ReturnDate  string   `query:"returnDate"`
	Airlines    []string `query:"airline"`
	Stops       []string `query:"stops"`
	MaxDuration int      `query:"maxDuration"`

	DestID   string `query:"dest_id"`
	Checkin  string `query:"checkin_date"`
	Checkout string `query:"checkout_date"`
	Rooms    int    `query:"room_qty"`

	Location string `query:"location"`

	PriceMin  float64 `query:"priceMin"`
	PriceMax  float64 `query:"priceMax"`
	MinRating float64 `query:"minRating"`
	SortBy    string  `query:"sortBy"`
	SortOrder string  `query:"sortOrder"`
}

type SubmitRequest struct {
	Travelers []Traveler `json:"travelers" validate:"dive"`
}
