package trip

import (
	"github.com/Agmahima/TravelEase/internal/models"
	"github.com/Agmahima/TravelEase/internal/timeutil"
)

// LegBooking is the outcome of booking a leg. Flight legs are handed off to
// a flight search and stay unbooked until that flow completes.
type LegBooking struct {
	Draft        models.TripDraft
	FlightSearch *models.FlightSearchRequest
}

func BookLeg(draft models.TripDraft, from, to int) (LegBooking, error) {
	mode, ok := TransportationMode(draft, from, to)
	if !ok {
		return LegBooking{Draft: draft}, models.ErrLegNotFound
	}
	if !inRange(draft, from) || !inRange(draft, to) {
		return LegBooking{Draft: draft}, models.ErrInvalidFlightLegIndex
	}

	if mode == models.ModeFlight {
		date, err := LegDepartureDate(draft, from)
		if err != nil {
			return LegBooking{Draft: draft}, err
		}
		return LegBooking{
			Draft: draft,
			FlightSearch: &models.FlightSearchRequest{
				OriginCity:      draft.Destinations[from].Location,
				DestinationCity: draft.Destinations[to].Location,
				DateOfDeparture: date,
				Adults:          draft.Adults,
				Children:        draft.Children,
			},
		}, nil
	}

	next := draft.Clone()
	for i, l := range next.TransportationLegs {
		if l.FromIndex == from && l.ToIndex == to {
			next.TransportationLegs[i].Booked = true
		}
	}
	return LegBooking{Draft: next}, nil
}

// LegDepartureDate is the day the traveller leaves stop `from`: the trip
// start plus every stay up to and including that stop.
func LegDepartureDate(draft models.TripDraft, from int) (string, error) {
	if draft.StartDate == "" {
		return "", models.ErrMissingStartDate
	}
	if !inRange(draft, from) {
		return "", models.ErrDestinationIndex
	}
	days := 0
	for i := 0; i <= from; i++ {
		days += draft.Destinations[i].DaysToStay
	}
	date, err := timeutil.AddDays(draft.StartDate, days)
	if err != nil {
		return "", models.ErrInvalidDate
	}
	return date, nil
}
