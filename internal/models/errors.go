package models

import (
	"fmt"
	"strings"
)

type ValidationError string

func (e ValidationError) Error() string {
	return string(e)
}

const (
	ErrEmptyLocation         ValidationError = "location is required"
	ErrInvalidStayDays       ValidationError = "daysToStay must be greater than zero"
	ErrLastDestination       ValidationError = "at least one destination required"
	ErrDestinationIndex      ValidationError = "destination index out of range"
	ErrInvalidMode           ValidationError = "transportation mode must be one of train, bus, car, flight"
	ErrMissingStartDate      ValidationError = "start date is required"
	ErrMissingEndDate        ValidationError = "end date is required"
	ErrInvalidDate           ValidationError = "dates must be formatted as YYYY-MM-DD"
	ErrEndBeforeStart        ValidationError = "end date must not be before start date"
	ErrNoDestinations        ValidationError = "at least one destination with a location is required"
	ErrInvalidAdults         ValidationError = "at least one adult is required"
	ErrInvalidChildren       ValidationError = "children must not be negative"
	ErrInvalidBudget         ValidationError = "budget must be one of budget, medium, luxury"
	ErrLegNotFound           ValidationError = "no transportation leg for that pair"
	ErrMissingOrigin         ValidationError = "originCode is required"
	ErrMissingDestination    ValidationError = "destinationCode is required"
	ErrMissingDepartureDate  ValidationError = "dateOfDeparture is required"
	ErrMissingDestID         ValidationError = "dest_id is required"
	ErrMissingCheckin        ValidationError = "checkin_date is required"
	ErrMissingCheckout       ValidationError = "checkout_date is required"
	ErrMissingHotelID        ValidationError = "hotel id is required"
	ErrKeywordTooShort       ValidationError = "keyword must be at least 2 characters"
	ErrUnpriceableOffer      ValidationError = "offer has no usable price"
	ErrUnknownCategory       ValidationError = "unknown booking category"
	ErrMissingCredentials    ValidationError = "username and password are required"
	ErrMissingRegistration   ValidationError = "username, password, email and full name are required"
	ErrMissingActivity       ValidationError = "activity title is required"
	ErrInvalidDay            ValidationError = "itinerary day not found"
	ErrNoItinerary           ValidationError = "trip has no itinerary"
	ErrMissingTrip           ValidationError = "trip has not been saved"
	ErrNoCategories          ValidationError = "select at least one booking category"
	ErrStepIncomplete        ValidationError = "complete the current step before continuing"
	ErrNotAtPayment          ValidationError = "booking can only be submitted from the payment step"
	ErrNoSelections          ValidationError = "nothing selected to book"
	ErrNoOrigin              ValidationError = "origin airport code is required"
	ErrInvalidFlightLegIndex ValidationError = "flight leg does not reference two destinations"
	ErrNoAirport             ValidationError = "no airport matches that city"
	ErrMissingTravelers      ValidationError = "traveler details are required to book a flight"
	ErrOfferNotFound         ValidationError = "offer not found; search again"
)

// ValidationErrors collects every defect found in one pass.
type ValidationErrors []error

func (v ValidationErrors) Error() string {
	msgs := make([]string, len(v))
	for i, err := range v {
		msgs[i] = err.Error()
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

func (v ValidationErrors) Unwrap() []error {
	return v
}

// FieldError ties a defect to one position in a list.
type FieldError struct {
	Field string
	Index int
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s[%d]: %v", e.Field, e.Index, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

type AuthenticationError struct {
	Message string
}

func (e *AuthenticationError) Error() string {
	if e.Message == "" {
		return "authentication required"
	}
	return "authentication required: " + e.Message
}

type RateLimitError struct {
	Message string
}

func (e *RateLimitError) Error() string {
	if e.Message == "" {
		return "rate limit exceeded"
	}
	return "rate limit exceeded: " + e.Message
}

type GenerationError struct {
	Err error
}

func (e *GenerationError) Error() string {
	return "itinerary generation failed: " + e.Err.Error()
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// APIError is any other non-2xx backend response.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("backend returned %d: %s", e.StatusCode, e.Message)
}
