// Package pricing totals the offers selected in the booking wizard.
//
// Hotel and cab totals are frozen onto the selection when the offer is picked
// (see FreezeHotel and FreezeCab) and only change through an explicit reprice.
// Flight cost scales with the traveller count at read time. No intermediate
// value is rounded; Total rounds once to the nearest whole unit.
package pricing

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/Agmahima/TravelEase/internal/models"
	"github.com/Agmahima/TravelEase/internal/timeutil"
	"github.com/Agmahima/TravelEase/internal/trip"
	"github.com/Agmahima/TravelEase/pkg/currency"
)

// UnitPrice normalises a provider price. A structured total wins over a flat
// amount. ok is false when neither form yields a finite, non-negative number.
func UnitPrice(p models.OfferPrice) (float64, bool) {
	if s := strings.TrimSpace(p.Total); s != "" {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil || !usable(v) {
			return 0, false
		}
		return v, true
	}
	if p.Amount != nil && usable(*p.Amount) {
		return *p.Amount, true
	}
	return 0, false
}

func usable(v float64) bool {
	return v >= 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}

// HotelNights is one less than the trip length, never below one.
func HotelNights(durationDays int) int {
	return max(durationDays-1, 1)
}

// CabDays is the trip length, never below one.
func CabDays(durationDays int) int {
	return max(durationDays, 1)
}

func FreezeHotel(offer models.HotelOffer, durationDays int) (models.SelectedHotel, error) {
	nightly, ok := UnitPrice(offer.Price)
	if !ok {
		return models.SelectedHotel{}, models.ErrUnpriceableOffer
	}
	nights := HotelNights(durationDays)
	return models.SelectedHotel{
		Offer:      offer,
		Nights:     nights,
		TotalPrice: nightly * float64(nights),
	}, nil
}

func FreezeCab(offer models.CabOffer, durationDays int) (models.SelectedCab, error) {
	if !usable(offer.DailyRate) {
		return models.SelectedCab{}, models.ErrUnpriceableOffer
	}
	days := CabDays(durationDays)
	return models.SelectedCab{
		Offer:      offer,
		Days:       days,
		TotalPrice: offer.DailyRate * float64(days),
	}, nil
}

// FlightCost is the selected fare times the traveller count. Counts below
// one are treated as one.
func FlightCost(sel models.BookingSelection, travelers int) float64 {
	if sel.Selected.Flight == nil {
		return 0
	}
	unit, ok := UnitPrice(sel.Selected.Flight.Price)
	if !ok {
		return 0
	}
	return unit * float64(max(travelers, 1))
}

func HotelCost(sel models.BookingSelection) float64 {
	if sel.Selected.Hotel == nil {
		return 0
	}
	return sel.Selected.Hotel.TotalPrice
}

func CabCost(sel models.BookingSelection) float64 {
	if sel.Selected.Cab == nil {
		return 0
	}
	return sel.Selected.Cab.TotalPrice
}

type subtotals struct {
	flight, hotel, cab float64
}

func wantedSubtotals(sel models.BookingSelection, travelers int) subtotals {
	var s subtotals
	w := sel.CategoriesWanted
	if w.Transportation {
		s.flight = FlightCost(sel, travelers)
	}
	if w.Hotels {
		s.hotel = HotelCost(sel)
	}
	if w.Cabs {
		s.cab = CabCost(sel)
	}
	return s
}

// Total sums the categories that are both wanted and selected, rounded to
// the nearest whole unit.
func Total(sel models.BookingSelection, travelers int) float64 {
	s := wantedSubtotals(sel, travelers)
	return math.Round(s.flight + s.hotel + s.cab)
}

// Quote breaks the total down per category with display strings.
func Quote(sel models.BookingSelection, travelers int, code string) models.Quote {
	if code == "" {
		code = QuoteCurrency(sel, "USD")
	}
	s := wantedSubtotals(sel, travelers)
	total := Total(sel, travelers)
	return models.Quote{
		Flight:          s.flight,
		Hotel:           s.hotel,
		Cab:             s.cab,
		Total:           total,
		Currency:        code,
		Symbol:          currency.Symbol(code),
		FlightFormatted: currency.Format(s.flight, code),
		HotelFormatted:  currency.Format(s.hotel, code),
		CabFormatted:    currency.Format(s.cab, code),
		TotalFormatted:  currency.Format(total, code),
		Travelers:       max(travelers, 1),
	}
}

// QuoteCurrency picks the first currency reported by a selected offer.
func QuoteCurrency(sel models.BookingSelection, fallback string) string {
	if f := sel.Selected.Flight; f != nil && f.Price.Currency != "" {
		return f.Price.Currency
	}
	if h := sel.Selected.Hotel; h != nil {
		if h.Offer.Price.Currency != "" {
			return h.Offer.Price.Currency
		}
		if h.Offer.Currency != "" {
			return h.Offer.Currency
		}
	}
	if c := sel.Selected.Cab; c != nil && c.Offer.Currency != "" {
		return c.Offer.Currency
	}
	return fallback
}

// TripDurationDays takes the date range as the source of truth when both
// dates parse and the range is positive, otherwise the sum of stays.
func TripDurationDays(draft models.TripDraft) int {
	if days, ok := timeutil.DaysBetween(draft.StartDate, draft.EndDate); ok {
		return days
	}
	return trip.TotalStayDays(draft)
}

// DurationMismatch reports when the date range and the stays disagree. It
// is informational; callers surface it as a warning.
func DurationMismatch(draft models.TripDraft) (string, bool) {
	rangeDays, ok := timeutil.DaysBetween(draft.StartDate, draft.EndDate)
	if !ok {
		return "", false
	}
	stays := trip.TotalStayDays(draft)
	if stays == rangeDays {
		return "", false
	}
	return fmt.Sprintf("trip dates span %d days but destinations add up to %d", rangeDays, stays), true
}
