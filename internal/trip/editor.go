// Package trip edits trip drafts. Every operation takes a draft by value and
// returns a new one; the input is never modified.
package trip

import (
	"strings"

	"github.com/Agmahima/TravelEase/internal/models"
	"github.com/Agmahima/TravelEase/internal/timeutil"
)

func AddDestination(draft models.TripDraft, location string, daysToStay int) (models.TripDraft, error) {
	location = strings.TrimSpace(location)
	if location == "" {
		return draft, models.ErrEmptyLocation
	}
	if daysToStay <= 0 {
		return draft, models.ErrInvalidStayDays
	}

	next := draft.Clone()
	next.Destinations = append(next.Destinations, models.DestinationStop{
		Location:   location,
		DaysToStay: daysToStay,
	})
	return next, nil
}

// UpdateDestination replaces the stop at index. A blank location is allowed
// so a half-filled stop can be saved while editing; submission rejects it.
func UpdateDestination(draft models.TripDraft, index int, location string, daysToStay int) (models.TripDraft, error) {
	if index < 0 || index >= len(draft.Destinations) {
		return draft, models.ErrDestinationIndex
	}
	if daysToStay <= 0 {
		return draft, models.ErrInvalidStayDays
	}

	next := draft.Clone()
	next.Destinations[index] = models.DestinationStop{
		Location:   strings.TrimSpace(location),
		DaysToStay: daysToStay,
	}
	return next, nil
}

// RemoveDestination drops the stop at index together with every leg that
// touches it, then shifts the remaining leg indices down past the gap.
func RemoveDestination(draft models.TripDraft, index int) (models.TripDraft, error) {
	if len(draft.Destinations) <= 1 {
		return draft, models.ErrLastDestination
	}
	if index < 0 || index >= len(draft.Destinations) {
		return draft, models.ErrDestinationIndex
	}

	next := draft.Clone()
	next.Destinations = append(next.Destinations[:index], next.Destinations[index+1:]...)

	legs := make([]models.TransportationLeg, 0, len(next.TransportationLegs))
	for _, leg := range next.TransportationLegs {
		if leg.FromIndex == index || leg.ToIndex == index {
			continue
		}
		if leg.FromIndex > index {
			leg.FromIndex--
		}
		if leg.ToIndex > index {
			leg.ToIndex--
		}
		legs = append(legs, leg)
	}
	next.TransportationLegs = legs
	return next, nil
}

// SetTransportationMode upserts the leg for (from, to). Changing the mode of a
// booked leg keeps its booked flag.
func SetTransportationMode(draft models.TripDraft, from, to int, mode models.TransportMode) (models.TripDraft, error) {
	if !mode.Valid() {
		return draft, models.ErrInvalidMode
	}
	if !inRange(draft, from) || !inRange(draft, to) {
		return draft, models.ErrDestinationIndex
	}

	next := draft.Clone()
	for i, leg := range next.TransportationLegs {
		if leg.FromIndex == from && leg.ToIndex == to {
			next.TransportationLegs[i].Mode = mode
			return next, nil
		}
	}
	next.TransportationLegs = append(next.TransportationLegs, models.TransportationLeg{
		FromIndex: from,
		ToIndex:   to,
		Mode:      mode,
	})
	return next, nil
}

func TransportationMode(draft models.TripDraft, from, to int) (models.TransportMode, bool) {
	leg, ok := findLeg(draft, from, to)
	if !ok {
		return "", false
	}
	return leg.Mode, true
}

// SetDates stores both dates as YYYY-MM-DD. Empty strings clear a date.
func SetDates(draft models.TripDraft, start, end string) (models.TripDraft, error) {
	var err error
	if start != "" {
		if start, err = timeutil.NormalizeDate(start); err != nil {
			return draft, models.ErrInvalidDate
		}
	}
	if end != "" {
		if end, err = timeutil.NormalizeDate(end); err != nil {
			return draft, models.ErrInvalidDate
		}
	}
	if start != "" && end != "" && end < start {
		return draft, models.ErrEndBeforeStart
	}

	next := draft.Clone()
	next.StartDate = start
	next.EndDate = end
	return next, nil
}

func SetTravelers(draft models.TripDraft, adults, children int) (models.TripDraft, error) {
	if adults < 1 {
		return draft, models.ErrInvalidAdults
	}
	if children < 0 {
		return draft, models.ErrInvalidChildren
	}

	next := draft.Clone()
	next.Adults = adults
	next.Children = children
	return next, nil
}

func SetPreferences(draft models.TripDraft, prefs models.Preferences) (models.TripDraft, error) {
	if prefs.Budget == "" {
		prefs.Budget = models.BudgetMedium
	}
	if !prefs.Budget.Valid() {
		return draft, models.ErrInvalidBudget
	}

	next := draft.Clone()
	next.Preferences = models.Preferences{
		Activities:  dedupe(prefs.Activities),
		Budget:      prefs.Budget,
		TravelStyle: strings.TrimSpace(prefs.TravelStyle),
		Notes:       prefs.Notes,
	}
	return next, nil
}

// AddActivityPreference appends an interest unless it is blank or present.
func AddActivityPreference(draft models.TripDraft, activity string) models.TripDraft {
	activity = strings.TrimSpace(activity)
	next := draft.Clone()
	if activity == "" || contains(next.Preferences.Activities, activity) {
		return next
	}
	next.Preferences.Activities = append(next.Preferences.Activities, activity)
	return next
}

func RemoveActivityPreference(draft models.TripDraft, activity string) models.TripDraft {
	next := draft.Clone()
	kept := next.Preferences.Activities[:0]
	for _, a := range next.Preferences.Activities {
		if a != activity {
			kept = append(kept, a)
		}
	}
	next.Preferences.Activities = kept
	return next
}

// ValidateForSubmission reports every defect that blocks saving or itinerary
// generation. It returns nil or a models.ValidationErrors.
func ValidateForSubmission(draft models.TripDraft) error {
	var errs models.ValidationErrors

	if strings.TrimSpace(draft.StartDate) == "" {
		errs = append(errs, models.ErrMissingStartDate)
	}
	if strings.TrimSpace(draft.EndDate) == "" {
		errs = append(errs, models.ErrMissingEndDate)
	}
	if draft.StartDate != "" && draft.EndDate != "" {
		start, serr := timeutil.ParseDate(draft.StartDate)
		end, eerr := timeutil.ParseDate(draft.EndDate)
		switch {
		case serr != nil || eerr != nil:
			errs = append(errs, models.ErrInvalidDate)
		case end.Before(start):
			errs = append(errs, models.ErrEndBeforeStart)
		}
	}

	if len(ValidDestinations(draft)) == 0 {
		errs = append(errs, models.ErrNoDestinations)
	}
	// Blank stops are tolerated here; callers drop them via ValidDestinations.
	for i, d := range draft.Destinations {
		if d.DaysToStay <= 0 {
			errs = append(errs, &models.FieldError{Field: "destinations.daysToStay", Index: i, Err: models.ErrInvalidStayDays})
		}
	}

	if draft.Adults < 1 {
		errs = append(errs, models.ErrInvalidAdults)
	}
	if draft.Children < 0 {
		errs = append(errs, models.ErrInvalidChildren)
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

// TotalStayDays sums the positive stays, blank stops included.
func TotalStayDays(draft models.TripDraft) int {
	total := 0
	for _, d := range draft.Destinations {
		if d.DaysToStay > 0 {
			total += d.DaysToStay
		}
	}
	return total
}

// ValidDestinations returns the stops that have a location, in order.
func ValidDestinations(draft models.TripDraft) []models.DestinationStop {
	out := make([]models.DestinationStop, 0, len(draft.Destinations))
	for _, d := range draft.Destinations {
		if strings.TrimSpace(d.Location) != "" {
			out = append(out, d)
		}
	}
	return out
}

// CompactStops drops blank stops like ValidDestinations and renumbers the
// legs to match. Legs touching a dropped stop are dropped with it.
func CompactStops(draft models.TripDraft) ([]models.DestinationStop, []models.TransportationLeg) {
	stops := make([]models.DestinationStop, 0, len(draft.Destinations))
	remap := make(map[int]int, len(draft.Destinations))
	for i, d := range draft.Destinations {
		if strings.TrimSpace(d.Location) == "" {
			continue
		}
		remap[i] = len(stops)
		stops = append(stops, d)
	}

	legs := make([]models.TransportationLeg, 0, len(draft.TransportationLegs))
	for _, leg := range draft.TransportationLegs {
		from, okFrom := remap[leg.FromIndex]
		to, okTo := remap[leg.ToIndex]
		if !okFrom || !okTo {
			continue
		}
		leg.FromIndex = from
		leg.ToIndex = to
		legs = append(legs, leg)
	}
	return stops, legs
}

func PrimaryDestination(draft models.TripDraft) string {
	valid := ValidDestinations(draft)
	if len(valid) == 0 {
		return ""
	}
	return valid[0].Location
}

// TripPayload builds the body for creating or patching the trip record.
func TripPayload(draft models.TripDraft, status string) models.TripPayload {
	if status == "" {
		status = models.TripStatusPlanned
	}
	dests := make([]models.TripDestination, len(draft.Destinations))
	for i, d := range draft.Destinations {
		dests[i] = models.TripDestination{City: d.Location, Days: d.DaysToStay}
	}
	budget := draft.Preferences.Budget
	if budget == "" {
		budget = models.BudgetMedium
	}

	return models.TripPayload{
		Destination:           PrimaryDestination(draft),
		Destinations:          dests,
		TransportationOptions: append([]models.TransportationLeg{}, draft.TransportationLegs...),
		StartDate:             draft.StartDate,
		EndDate:               draft.EndDate,
		Adults:                draft.Adults,
		Children:              draft.Children,
		Preferences: models.TripPreferencesBody{
			TravelMode:  string(models.ModeFlight),
			HotelType:   budget.HotelClass(),
			Activities:  append([]string{}, draft.Preferences.Activities...),
			Budget:      budget,
			TravelStyle: draft.Preferences.TravelStyle,
			Notes:       draft.Preferences.Notes,
		},
		Itinerary: draft.Itinerary,
		Status:    status,
	}
}

// FromRecord rebuilds a draft from a stored trip.
func FromRecord(rec models.TripRecord) models.TripDraft {
	draft := models.NewTripDraft()
	draft.ID = rec.TripID()
	draft.Status = rec.Status

	if start, err := timeutil.NormalizeDate(rec.StartDate); err == nil {
		draft.StartDate = start
	}
	if end, err := timeutil.NormalizeDate(rec.EndDate); err == nil {
		draft.EndDate = end
	}
	if rec.Adults != nil {
		draft.Adults = *rec.Adults
	}
	draft.Children = rec.Children

	switch {
	case len(rec.Destinations) > 0:
		draft.Destinations = make([]models.DestinationStop, len(rec.Destinations))
		for i, d := range rec.Destinations {
			draft.Destinations[i] = d.Stop()
		}
	case rec.Destination != "":
		draft.Destinations = []models.DestinationStop{{Location: rec.Destination, DaysToStay: 3}}
	}

	if len(rec.TransportationOptions) > 0 {
		draft.TransportationLegs = append([]models.TransportationLeg{}, rec.TransportationOptions...)
	}

	if p := rec.Preferences; p != nil {
		if p.Activities != nil {
			draft.Preferences.Activities = append([]string{}, p.Activities...)
		}
		if p.Budget != "" {
			draft.Preferences.Budget = p.Budget
		}
		draft.Preferences.TravelStyle = p.TravelStyle
		draft.Preferences.Notes = p.Notes
	}

	if rec.Itinerary != nil {
		it := rec.Itinerary.Clone()
		draft.Itinerary = &it
	}
	return draft
}

func inRange(draft models.TripDraft, i int) bool {
	return i >= 0 && i < len(draft.Destinations)
}

func findLeg(draft models.TripDraft, from, to int) (models.TransportationLeg, bool) {
	for _, leg := range draft.TransportationLegs {
		if leg.FromIndex == from && leg.ToIndex == to {
			return leg, true
		}
	}
	return models.TransportationLeg{}, false
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func dedupe(list []string) []string {
	out := make([]string, 0, len(list))
	for _, v := range list {
		v = strings.TrimSpace(v)
		if v != "" && !contains(out, v) {
			out = append(out, v)
		}
	}
	return out
}
