package itinerary

import (
	"strings"

	"github.com/Agmahima/TravelEase/internal/models"
	"github.com/Agmahima/TravelEase/internal/timeutil"
	"github.com/Agmahima/TravelEase/internal/trip"
)

// BuildRequest turns a draft into a generation request. Stops without a
// location are dropped, legs are renumbered against the remaining stops, and
// the first remaining stop is the primary destination.
func BuildRequest(draft models.TripDraft) (models.GenerateRequest, error) {
	if err := trip.ValidateForSubmission(draft); err != nil {
		return models.GenerateRequest{}, err
	}

	start, err := timeutil.NormalizeDate(draft.StartDate)
	if err != nil {
		return models.GenerateRequest{}, models.ErrInvalidDate
	}
	end, err := timeutil.NormalizeDate(draft.EndDate)
	if err != nil {
		return models.GenerateRequest{}, models.ErrInvalidDate
	}

	valid, legs := trip.CompactStops(draft)
	activities := append([]string{}, draft.Preferences.Activities...)
	budget := draft.Preferences.Budget
	if budget == "" {
		budget = models.BudgetMedium
	}

	return models.GenerateRequest{
		Destination:           valid[0].Location,
		StartDate:             start,
		EndDate:               end,
		Destinations:          valid,
		TransportationOptions: legs,
		Adults:                draft.Adults,
		Children:              draft.Children,
		Preferences: models.GeneratePreferences{
			Interests:   activities,
			Activities:  append([]string{}, activities...),
			Budget:      budget,
			TravelStyle: draft.Preferences.TravelStyle,
			Notes:       draft.Preferences.Notes,
		},
	}, nil
}

// Merge re-attaches the request's stops and legs, which generators may
// omit, and fills in missing day numbers and dates.
func Merge(generated models.Itinerary, req models.GenerateRequest) models.Itinerary {
	out := generated.Clone()
	if strings.TrimSpace(out.Destination) == "" {
		out.Destination = req.Destination
	}
	out.Destinations = append([]models.DestinationStop{}, req.Destinations...)
	out.TransportationOptions = append([]models.TransportationLeg{}, req.TransportationOptions...)

	for i := range out.Days {
		day := &out.Days[i]
		if day.Day <= 0 {
			day.Day = i + 1
		}
		if day.Date == "" {
			if date, err := timeutil.AddDays(req.StartDate, day.Day-1); err == nil {
				day.Date = date
			}
		}
		if day.Activities == nil {
			day.Activities = []models.Activity{}
		}
	}
	return out
}

// DeleteActivity removes every activity titled title from the given day.
func DeleteActivity(it models.Itinerary, day int, title string) (models.Itinerary, error) {
	if strings.TrimSpace(title) == "" {
		return it, models.ErrMissingActivity
	}
	out := it.Clone()
	for i := range out.Days {
		if out.Days[i].Day != day {
			continue
		}
		kept := make([]models.Activity, 0, len(out.Days[i].Activities))
		for _, a := range out.Days[i].Activities {
			if a.Title != title {
				kept = append(kept, a)
			}
		}
		out.Days[i].Activities = kept
		return out, nil
	}
	return it, models.ErrInvalidDay
}
