package models

import (
	"bytes"
	"encoding/json"
)

type TransportMode string

const (
	ModeTrain  TransportMode = "train"
	ModeBus    TransportMode = "bus"
	ModeCar    TransportMode = "car"
	ModeFlight TransportMode = "flight"
)

func (m TransportMode) Valid() bool {
	switch m {
	case ModeTrain, ModeBus, ModeCar, ModeFlight:
		return true
	}
	return false
}

type Budget string

const (
	BudgetLow    Budget = "budget"
	BudgetMedium Budget = "medium"
	BudgetLuxury Budget = "luxury"
)

func (b Budget) Valid() bool {
	switch b {
	case BudgetLow, BudgetMedium, BudgetLuxury:
		return true
	}
	return false
}

// HotelClass is the star rating the backend expects for a budget level.
func (b Budget) HotelClass() string {
	switch b {
	case BudgetLuxury:
		return "5-star"
	case BudgetMedium:
		return "3-star"
	default:
		return "2-star"
	}
}

type DestinationStop struct {
	Location   string `json:"location"`
	DaysToStay int    `json:"daysToStay"`
}

// TransportationLeg is keyed by positions in TripDraft.Destinations.
type TransportationLeg struct {
	FromIndex int           `json:"fromDestination"`
	ToIndex   int           `json:"toDestination"`
	Mode      TransportMode `json:"mode"`
	Booked    bool          `json:"booked"`
}

type Preferences struct {
	Activities  []string `json:"activities"`
	Budget      Budget   `json:"budget"`
	TravelStyle string   `json:"travelStyle"`
	Notes       string   `json:"notes"`
}

type TripDraft struct {
	ID                 string              `json:"id,omitempty"`
	Destinations       []DestinationStop   `json:"destinations"`
	TransportationLegs []TransportationLeg `json:"transportationOptions"`
	StartDate          string              `json:"startDate,omitempty"`
	EndDate            string              `json:"endDate,omitempty"`
	Adults             int                 `json:"adults"`
	Children           int                 `json:"children"`
	Preferences        Preferences         `json:"preferences"`
	Itinerary          *Itinerary          `json:"itinerary,omitempty"`
	Status             string              `json:"status,omitempty"`
}

const (
	TripStatusPlanned   = "planned"
	TripStatusConfirmed = "confirmed"
)

// NewTripDraft returns the state of a fresh planner: one unnamed stop of two
// days and two adults.
func NewTripDraft() TripDraft {
	return TripDraft{
		Destinations:       []DestinationStop{{Location: "", DaysToStay: 2}},
		TransportationLegs: []TransportationLeg{},
		Adults:             2,
		Children:           0,
		Preferences: Preferences{
			Activities: []string{},
			Budget:     BudgetMedium,
		},
	}
}

func (d TripDraft) Travelers() int {
	return d.Adults + d.Children
}

// Clone returns a deep copy so editors never share backing arrays.
func (d TripDraft) Clone() TripDraft {
	out := d
	out.Destinations = append([]DestinationStop(nil), d.Destinations...)
	out.TransportationLegs = append([]TransportationLeg{}, d.TransportationLegs...)
	out.Preferences.Activities = append([]string{}, d.Preferences.Activities...)
	if d.Itinerary != nil {
		it := d.Itinerary.Clone()
		out.Itinerary = &it
	}
	return out
}

// TripDestination is the stop shape the trip service stores.
type TripDestination struct {
	City string `json:"city"`
	Days int    `json:"days"`
}

// TripPayload is the create/patch body the trip service accepts.
type TripPayload struct {
	Destination           string              `json:"destination"`
	Destinations          []TripDestination   `json:"destinations"`
	TransportationOptions []TransportationLeg `json:"transportationOptions"`
	StartDate             string              `json:"startDate"`
	EndDate               string              `json:"endDate"`
	Adults                int                 `json:"adults"`
	Children              int                 `json:"children"`
	Preferences           TripPreferencesBody `json:"preferences"`
	Itinerary             *Itinerary          `json:"itinerary"`
	Status                string              `json:"status"`
	Booking               *BookingSummary     `json:"booking,omitempty"`
}

type TripPreferencesBody struct {
	TravelMode  string   `json:"travelMode"`
	HotelType   string   `json:"hotelType"`
	Activities  []string `json:"activities"`
	Budget      Budget   `json:"budget"`
	TravelStyle string   `json:"travelStyle"`
	Notes       string   `json:"notes"`
}

// FlexibleID accepts ids encoded as JSON strings or numbers.
type FlexibleID string

func (id *FlexibleID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = FlexibleID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*id = FlexibleID(n.String())
	return nil
}

// RecordDestination reads both stop shapes the trip service has stored.
type RecordDestination struct {
	Location   string `json:"location,omitempty"`
	City       string `json:"city,omitempty"`
	DaysToStay int    `json:"daysToStay,omitempty"`
	Days       int    `json:"days,omitempty"`
}

func (d RecordDestination) Stop() DestinationStop {
	stop := DestinationStop{Location: d.Location, DaysToStay: d.DaysToStay}
	if stop.Location == "" {
		stop.Location = d.City
	}
	if stop.DaysToStay <= 0 {
		stop.DaysToStay = d.Days
	}
	if stop.DaysToStay <= 0 {
		stop.DaysToStay = 1
	}
	return stop
}

// TripRecord is a trip as returned by the trip service.
type TripRecord struct {
	ID                    FlexibleID          `json:"id"`
	MongoID               FlexibleID          `json:"_id"`
	Destination           string              `json:"destination"`
	Destinations          []RecordDestination `json:"destinations"`
	TransportationOptions []TransportationLeg `json:"transportationOptions"`
	StartDate             string              `json:"startDate"`
	EndDate               string              `json:"endDate"`
	Adults                *int                `json:"adults"`
	Children              int                 `json:"children"`
	Preferences           *Preferences        `json:"preferences,omitempty"`
	Itinerary             *Itinerary          `json:"itinerary,omitempty"`
	Status                string              `json:"status"`
}

func (r TripRecord) TripID() string {
	if r.ID != "" {
		return string(r.ID)
	}
	return string(r.MongoID)
}

type User struct {
	ID       FlexibleID `json:"id"`
	Username string     `json:"username"`
	Email    string     `json:"email,omitempty"`
	FullName string     `json:"fullName,omitempty"`
}

// Destination is a browsable place from the backend catalogue.
type Destination struct {
	ID             FlexibleID `json:"id"`
	MongoID        FlexibleID `json:"_id,omitempty"`
	Name           string     `json:"name"`
	Country        string     `json:"country"`
	Description    string     `json:"description"`
	ImageURL       string     `json:"imageUrl"`
	Rating         string     `json:"rating,omitempty"`
	PricePerPerson *float64   `json:"pricePerPerson,omitempty"`
	Badge          string     `json:"badge,omitempty"`
}

// TransportationBookingRecord is a stored ground-transport booking as listed
// on the dashboard.
type TransportationBookingRecord struct {
	ID              FlexibleID `json:"id"`
	MongoID         FlexibleID `json:"_id,omitempty"`
	TripID          FlexibleID `json:"tripId"`
	UserID          FlexibleID `json:"userId,omitempty"`
	ServiceType     string     `json:"serviceType,omitempty"`
	ServiceLevel    string     `json:"serviceLevel,omitempty"`
	VehicleType     string     `json:"vehicleType"`
	DriverName      string     `json:"driverName,omitempty"`
	PickupLocation  string     `json:"pickupLocation,omitempty"`
	DropoffLocation string     `json:"dropoffLocation,omitempty"`
	StartDate       string     `json:"startDate"`
	EndDate         string     `json:"endDate"`
	Days            int        `json:"days,omitempty"`
	Passengers      int        `json:"passengers,omitempty"`
	TotalPrice      float64    `json:"totalPrice,omitempty"`
	Price           float64    `json:"price,omitempty"`
	Status          string     `json:"status"`
}
