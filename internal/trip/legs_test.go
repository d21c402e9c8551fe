package trip

import (
	"errors"
	"testing"

	"github.com/Agmahima/TravelEase/internal/models"
)

func TestBookLegGround(t *testing.T) {
	draft := parisRome()
	draft, _ = SetTransportationMode(draft, 0, 1, models.ModeTrain)

	res, err := BookLeg(draft, 0, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.FlightSearch != nil {
		t.Fatal("ground leg should not hand off to flight search")
	}
	if !res.Draft.TransportationLegs[0].Booked {
		t.Fatal("expected leg to be booked")
	}
	if draft.TransportationLegs[0].Booked {
		t.Fatal("input draft modified")
	}
}

func TestBookLegFlight(t *testing.T) {
	draft := parisRome()
	draft.StartDate = "2025-05-01"
	draft.Adults = 2
	draft.Children = 1
	draft, _ = SetTransportationMode(draft, 0, 1, models.ModeFlight)

	res, err := BookLeg(draft, 0, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Draft.TransportationLegs[0].Booked {
		t.Fatal("flight leg must stay unbooked")
	}
	fs := res.FlightSearch
	if fs == nil {
		t.Fatal("expected flight search request")
	}
	if fs.OriginCity != "Paris" || fs.DestinationCity != "Rome" {
		t.Fatalf("unexpected cities %+v", fs)
	}
	if fs.DateOfDeparture != "2025-05-03" {
		t.Fatalf("expected departure 2025-05-03, got %s", fs.DateOfDeparture)
	}
	if fs.Adults != 2 || fs.Children != 1 {
		t.Fatalf("unexpected travellers %+v", fs)
	}
}

func TestBookLegMissing(t *testing.T) {
	if _, err := BookLeg(parisRome(), 0, 1); !errors.Is(err, models.ErrLegNotFound) {
		t.Fatalf("expected ErrLegNotFound, got %v", err)
	}
}

func TestLegDepartureDate(t *testing.T) {
	draft := parisRome()
	draft, _ = AddDestination(draft, "Vienna", 4)
	draft.StartDate = "2025-12-30"

	got, err := LegDepartureDate(draft, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "2026-01-04" {
		t.Fatalf("expected 2026-01-04, got %s", got)
	}

	draft.StartDate = ""
	if _, err := LegDepartureDate(draft, 0); !errors.Is(err, models.ErrMissingStartDate) {
		t.Fatalf("expected ErrMissingStartDate, got %v", err)
	}
}
