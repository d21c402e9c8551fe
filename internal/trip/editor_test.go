package trip

import (
	"errors"
	"testing"

	"github.com/Agmahima/TravelEase/internal/models"
)

func parisRome() models.TripDraft {
	d := models.NewTripDraft()
	d.Destinations = []models.DestinationStop{
		{Location: "Paris", DaysToStay: 2},
		{Location: "Rome", DaysToStay: 3},
	}
	return d
}

func TestAddDestination(t *testing.T) {
	draft := parisRome()

	if _, err := AddDestination(draft, "", 3); !errors.Is(err, models.ErrEmptyLocation) {
		t.Fatalf("expected ErrEmptyLocation, got %v", err)
	}
	if _, err := AddDestination(draft, "   ", 3); !errors.Is(err, models.ErrEmptyLocation) {
		t.Fatalf("expected ErrEmptyLocation for whitespace, got %v", err)
	}
	if _, err := AddDestination(draft, "Paris", 0); !errors.Is(err, models.ErrInvalidStayDays) {
		t.Fatalf("expected ErrInvalidStayDays, got %v", err)
	}

	next, err := AddDestination(draft, " Vienna ", 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(next.Destinations) != 3 || next.Destinations[2].Location != "Vienna" {
		t.Fatalf("unexpected destinations: %+v", next.Destinations)
	}
	if len(draft.Destinations) != 2 {
		t.Fatalf("input draft was modified: %+v", draft.Destinations)
	}
}

func TestRemoveDestinationLastStop(t *testing.T) {
	draft := models.NewTripDraft()
	draft.Destinations = []models.DestinationStop{{Location: "Paris", DaysToStay: 2}}

	next, err := RemoveDestination(draft, 0)
	if !errors.Is(err, models.ErrLastDestination) {
		t.Fatalf("expected ErrLastDestination, got %v", err)
	}
	if len(next.Destinations) != 1 || next.Destinations[0].Location != "Paris" {
		t.Fatalf("draft changed on failure: %+v", next.Destinations)
	}
}

func TestRemoveDestinationReindexesLegs(t *testing.T) {
	draft := parisRome()
	draft, _ = AddDestination(draft, "Vienna", 2)
	draft, _ = SetTransportationMode(draft, 0, 1, models.ModeTrain)
	draft, _ = SetTransportationMode(draft, 1, 2, models.ModeFlight)

	next, err := RemoveDestination(draft, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(next.Destinations) != 2 || next.Destinations[0].Location != "Rome" {
		t.Fatalf("unexpected destinations: %+v", next.Destinations)
	}
	if len(next.TransportationLegs) != 1 {
		t.Fatalf("expected 1 leg, got %+v", next.TransportationLegs)
	}
	leg := next.TransportationLegs[0]
	if leg.FromIndex != 0 || leg.ToIndex != 1 || leg.Mode != models.ModeFlight {
		t.Fatalf("leg not shifted: %+v", leg)
	}
	for _, l := range next.TransportationLegs {
		if l.FromIndex >= len(next.Destinations) || l.ToIndex >= len(next.Destinations) {
			t.Fatalf("dangling leg %+v", l)
		}
	}
	if len(draft.TransportationLegs) != 2 {
		t.Fatalf("input legs modified: %+v", draft.TransportationLegs)
	}
}

func TestRemoveDestinationMiddle(t *testing.T) {
	draft := parisRome()
	draft, _ = AddDestination(draft, "Vienna", 2)
	draft, _ = SetTransportationMode(draft, 0, 1, models.ModeTrain)
	draft, _ = SetTransportationMode(draft, 1, 2, models.ModeBus)
	draft, _ = SetTransportationMode(draft, 0, 2, models.ModeCar)

	next, err := RemoveDestination(draft, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(next.TransportationLegs) != 1 {
		t.Fatalf("expected only the 0->2 leg to survive, got %+v", next.TransportationLegs)
	}
	if mode, ok := TransportationMode(next, 0, 1); !ok || mode != models.ModeCar {
		t.Fatalf("expected car leg at 0->1, got %v %v", mode, ok)
	}
}

func TestSetTransportationModeUpsert(t *testing.T) {
	draft := parisRome()

	if _, err := SetTransportationMode(draft, 0, 1, "boat"); !errors.Is(err, models.ErrInvalidMode) {
		t.Fatalf("expected ErrInvalidMode, got %v", err)
	}

	draft, _ = SetTransportationMode(draft, 0, 1, models.ModeTrain)
	draft.TransportationLegs[0].Booked = true
	draft, _ = SetTransportationMode(draft, 0, 1, models.ModeBus)

	if len(draft.TransportationLegs) != 1 {
		t.Fatalf("expected upsert, got %+v", draft.TransportationLegs)
	}
	if draft.TransportationLegs[0].Mode != models.ModeBus || !draft.TransportationLegs[0].Booked {
		t.Fatalf("unexpected leg %+v", draft.TransportationLegs[0])
	}

	// Non-adjacent pairs are representable.
	if _, err := SetTransportationMode(draft, 1, 0, models.ModeCar); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateForSubmission(t *testing.T) {
	draft := models.NewTripDraft()
	draft.StartDate = "2025-05-01"
	draft.EndDate = "2025-05-05"

	err := ValidateForSubmission(draft)
	var verrs models.ValidationErrors
	if !errors.As(err, &verrs) {
		t.Fatalf("expected ValidationErrors, got %v", err)
	}
	if !errors.Is(err, models.ErrNoDestinations) {
		t.Fatalf("expected ErrNoDestinations in %v", err)
	}
	if errors.Is(err, models.ErrMissingStartDate) || errors.Is(err, models.ErrMissingEndDate) {
		t.Fatalf("dates reported missing: %v", err)
	}

	empty := models.TripDraft{Destinations: []models.DestinationStop{{Location: "Paris", DaysToStay: 0}}}
	err = ValidateForSubmission(empty)
	for _, want := range []error{models.ErrMissingStartDate, models.ErrMissingEndDate, models.ErrInvalidStayDays, models.ErrInvalidAdults} {
		if !errors.Is(err, want) {
			t.Fatalf("expected %v in %v", want, err)
		}
	}

	ok := parisRome()
	ok.StartDate = "2025-05-01"
	ok.EndDate = "2025-05-06"
	if err := ValidateForSubmission(ok); err != nil {
		t.Fatalf("expected valid draft, got %v", err)
	}
}

func TestSetDates(t *testing.T) {
	draft := parisRome()

	next, err := SetDates(draft, "2025-05-01T00:00:00Z", "2025-05-06")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if next.StartDate != "2025-05-01" || next.EndDate != "2025-05-06" {
		t.Fatalf("dates not normalised: %s %s", next.StartDate, next.EndDate)
	}
	if _, err := SetDates(draft, "2025-05-06", "2025-05-01"); !errors.Is(err, models.ErrEndBeforeStart) {
		t.Fatalf("expected ErrEndBeforeStart, got %v", err)
	}
	if _, err := SetDates(draft, "May 1", ""); !errors.Is(err, models.ErrInvalidDate) {
		t.Fatalf("expected ErrInvalidDate, got %v", err)
	}
}

func TestActivityPreferences(t *testing.T) {
	draft := models.NewTripDraft()
	draft = AddActivityPreference(draft, "Food & Dining")
	draft = AddActivityPreference(draft, "Food & Dining")
	draft = AddActivityPreference(draft, "Beaches")
	if len(draft.Preferences.Activities) != 2 {
		t.Fatalf("expected 2 activities, got %v", draft.Preferences.Activities)
	}
	before := draft
	draft = RemoveActivityPreference(draft, "Food & Dining")
	if len(draft.Preferences.Activities) != 1 || draft.Preferences.Activities[0] != "Beaches" {
		t.Fatalf("unexpected activities %v", draft.Preferences.Activities)
	}
	if len(before.Preferences.Activities) != 2 || before.Preferences.Activities[0] != "Food & Dining" {
		t.Fatalf("input draft modified: %v", before.Preferences.Activities)
	}
}

func TestTripPayload(t *testing.T) {
	draft := parisRome()
	draft.Preferences.Budget = models.BudgetLuxury
	payload := TripPayload(draft, "")

	if payload.Status != models.TripStatusPlanned {
		t.Fatalf("expected planned, got %s", payload.Status)
	}
	if payload.Preferences.HotelType != "5-star" || payload.Preferences.TravelMode != "flight" {
		t.Fatalf("unexpected preferences %+v", payload.Preferences)
	}
	if payload.Destination != "Paris" || payload.Destinations[1].City != "Rome" || payload.Destinations[1].Days != 3 {
		t.Fatalf("unexpected destinations %+v", payload)
	}
}

func TestFromRecord(t *testing.T) {
	adults := 3
	rec := models.TripRecord{
		MongoID:      "abc123",
		Destinations: []models.RecordDestination{{City: "Lisbon", Days: 4}, {Location: "Porto"}},
		StartDate:    "2025-07-01T00:00:00.000Z",
		EndDate:      "2025-07-06",
		Adults:       &adults,
		Preferences:  &models.Preferences{Budget: models.BudgetLow, Activities: []string{"Beaches"}},
	}
	draft := FromRecord(rec)

	if draft.ID != "abc123" || draft.StartDate != "2025-07-01" || draft.Adults != 3 {
		t.Fatalf("unexpected draft %+v", draft)
	}
	if draft.Destinations[0] != (models.DestinationStop{Location: "Lisbon", DaysToStay: 4}) {
		t.Fatalf("unexpected first stop %+v", draft.Destinations[0])
	}
	if draft.Destinations[1].DaysToStay != 1 {
		t.Fatalf("expected default of 1 day, got %d", draft.Destinations[1].DaysToStay)
	}

	legacy := FromRecord(models.TripRecord{ID: "7", Destination: "Tokyo"})
	if len(legacy.Destinations) != 1 || legacy.Destinations[0].DaysToStay != 3 || legacy.Adults != 2 {
		t.Fatalf("unexpected legacy draft %+v", legacy)
	}
}

func TestCompactStopsRenumbersLegs(t *testing.T) {
	draft := models.NewTripDraft()
	draft.Destinations = []models.DestinationStop{
		{Location: "Paris", DaysToStay: 2},
		{Location: " ", DaysToStay: 1},
		{Location: "Rome", DaysToStay: 2},
		{Location: "Milan", DaysToStay: 1},
	}
	draft.TransportationLegs = []models.TransportationLeg{
		{FromIndex: 0, ToIndex: 1, Mode: models.ModeCar},
		{FromIndex: 1, ToIndex: 2, Mode: models.ModeBus},
		{FromIndex: 2, ToIndex: 3, Mode: models.ModeFlight, Booked: true},
	}

	stops, legs := CompactStops(draft)
	if len(stops) != 3 || stops[1].Location != "Rome" {
		t.Fatalf("unexpected stops %+v", stops)
	}
	if len(legs) != 1 {
		t.Fatalf("legs touching the blank stop must be dropped, got %+v", legs)
	}
	want := models.TransportationLeg{FromIndex: 1, ToIndex: 2, Mode: models.ModeFlight, Booked: true}
	if legs[0] != want {
		t.Fatalf("expected %+v, got %+v", want, legs[0])
	}
	if draft.TransportationLegs[2].FromIndex != 2 {
		t.Fatal("input draft modified")
	}
}
