package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// OfferPrice holds a provider price that arrives either as a bare number or
// as an object with a string total.
type OfferPrice struct {
	Amount   *float64 `json:"-"`
	Currency string   `json:"currency,omitempty"`
	Total    string   `json:"total,omitempty"`
	Base     string   `json:"base,omitempty"`
}

func FlatPrice(amount float64) OfferPrice {
	return OfferPrice{Amount: &amount}
}

func StructuredPrice(total, currency string) OfferPrice {
	return OfferPrice{Total: total, Currency: currency}
}

func (p *OfferPrice) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*p = OfferPrice{}
		return nil
	}

	switch data[0] {
	case '{':
		var obj struct {
			Currency   string          `json:"currency"`
			Total      json.RawMessage `json:"total"`
			Base       json.RawMessage `json:"base"`
			GrandTotal json.RawMessage `json:"grandTotal"`
		}
		if err := json.Unmarshal(data, &obj); err != nil {
			return err
		}
		total := obj.Total
		if len(total) == 0 {
			total = obj.GrandTotal
		}
		*p = OfferPrice{
			Currency: obj.Currency,
			Total:    rawToString(total),
			Base:     rawToString(obj.Base),
		}
		return nil
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*p = OfferPrice{Total: s}
		return nil
	default:
		var f float64
		if err := json.Unmarshal(data, &f); err != nil {
			return fmt.Errorf("price: %w", err)
		}
		*p = OfferPrice{Amount: &f}
		return nil
	}
}

func (p OfferPrice) MarshalJSON() ([]byte, error) {
	if p.Amount != nil && p.Total == "" {
		return json.Marshal(*p.Amount)
	}
	return json.Marshal(struct {
		Currency string `json:"currency,omitempty"`
		Total    string `json:"total"`
		Base     string `json:"base,omitempty"`
	}{p.Currency, p.Total, p.Base})
}

func rawToString(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return ""
	}
	if raw[0] == '"' {
		var s string
		if json.Unmarshal(raw, &s) == nil {
			return s
		}
		return ""
	}
	var f float64
	if json.Unmarshal(raw, &f) == nil {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return ""
}

type FlightEndpoint struct {
	IATACode string `json:"iataCode"`
	Terminal string `json:"terminal,omitempty"`
	At       string `json:"at"`
}

type FlightSegment struct {
	Departure     FlightEndpoint `json:"departure"`
	Arrival       FlightEndpoint `json:"arrival"`
	CarrierCode   string         `json:"carrierCode"`
	Number        string         `json:"number"`
	Duration      string         `json:"duration,omitempty"`
	NumberOfStops int            `json:"numberOfStops"`
}

type FlightItinerary struct {
	Duration string          `json:"duration"`
	Segments []FlightSegment `json:"segments"`
}

type FlightOffer struct {
	ID                     string            `json:"id"`
	Source                 string            `json:"source,omitempty"`
	OneWay                 bool              `json:"oneWay,omitempty"`
	NumberOfBookableSeats  int               `json:"numberOfBookableSeats,omitempty"`
	Itineraries            []FlightItinerary `json:"itineraries"`
	Price                  OfferPrice        `json:"price"`
	ValidatingAirlineCodes []string          `json:"validatingAirlineCodes,omitempty"`
	BestValueScore         float64           `json:"bestValueScore,omitempty"`
}

// Stops counts connections on the outbound itinerary.
func (f FlightOffer) Stops() int {
	if len(f.Itineraries) == 0 {
		return 0
	}
	segs := f.Itineraries[0].Segments
	if len(segs) == 0 {
		return 0
	}
	stops := len(segs) - 1
	for _, s := range segs {
		stops += s.NumberOfStops
	}
	return stops
}

func (f FlightOffer) Carrier() string {
	if len(f.ValidatingAirlineCodes) > 0 {
		return f.ValidatingAirlineCodes[0]
	}
	if len(f.Itineraries) > 0 && len(f.Itineraries[0].Segments) > 0 {
		return f.Itineraries[0].Segments[0].CarrierCode
	}
	return ""
}

func (f FlightOffer) DepartureAt() string {
	if len(f.Itineraries) == 0 || len(f.Itineraries[0].Segments) == 0 {
		return ""
	}
	return f.Itineraries[0].Segments[0].Departure.At
}

func (f FlightOffer) OutboundDuration() string {
	if len(f.Itineraries) == 0 {
		return ""
	}
	return f.Itineraries[0].Duration
}

type Airport struct {
	IATACode string `json:"iataCode"`
	Name     string `json:"name"`
	CityName string `json:"cityName,omitempty"`
	SubType  string `json:"subType,omitempty"`
}

type HotelOffer struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Rating    float64    `json:"rating,omitempty"`
	Location  string     `json:"location,omitempty"`
	Price     OfferPrice `json:"price"`
	Currency  string     `json:"currency,omitempty"`
	Amenities []string   `json:"amenities,omitempty"`
	ImageURL  string     `json:"imageUrl,omitempty"`
}

type CabOffer struct {
	ID        string   `json:"id"`
	Type      string   `json:"type"`
	Vehicle   string   `json:"vehicle"`
	DailyRate float64  `json:"price"`
	Capacity  int      `json:"capacity"`
	Features  []string `json:"features,omitempty"`
	Currency  string   `json:"currency,omitempty"`
}
