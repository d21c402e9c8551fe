package service

import (
	"context"
	"log"
	"time"

	"github.com/Agmahima/TravelEase/internal/backend"
	"github.com/Agmahima/TravelEase/internal/booking"
	"github.com/Agmahima/TravelEase/internal/itinerary"
	"github.com/Agmahima/TravelEase/internal/models"
	"github.com/Agmahima/TravelEase/internal/session"
	"github.com/Agmahima/TravelEase/internal/trip"
)

// Planner owns the trip draft side of a session: auth, editing, saving and
// itinerary generation.
type Planner struct {
	store      session.Store
	auth       AuthAPI
	trips      TripAPI
	searcher   OfferSearcher
	generators GeneratorFactory
	now        func() time.Time
}

func NewPlanner(store session.Store, auth AuthAPI, trips TripAPI, searcher OfferSearcher, generators GeneratorFactory) *Planner {
	return &Planner{
		store:      store,
		auth:       auth,
		trips:      trips,
		searcher:   searcher,
		generators: generators,
		now:        time.Now,
	}
}

func (p *Planner) CreateSession(ctx context.Context) (*session.Session, error) {
	return p.store.Create(ctx)
}

func (p *Planner) Session(ctx context.Context, id string) (*session.Session, error) {
	return p.store.Get(ctx, id)
}

func (p *Planner) EndSession(ctx context.Context, id string) error {
	return p.store.Delete(ctx, id)
}

func (p *Planner) Login(ctx context.Context, id string, creds models.LoginRequest) (*session.Session, error) {
	s, err := p.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	auth := s.Auth()
	_, err = p.auth.Login(ctx, auth, creds)
	return commit(ctx, p.store, id, auth, err, nil)
}

func (p *Planner) Register(ctx context.Context, id string, req models.RegisterRequest) (*session.Session, error) {
	s, err := p.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	auth := s.Auth()
	_, err = p.auth.Register(ctx, auth, req)
	return commit(ctx, p.store, id, auth, err, nil)
}

// Logout signs the session out locally even when the backend call fails.
func (p *Planner) Logout(ctx context.Context, id string) (*session.Session, error) {
	s, err := p.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	auth := s.Auth()
	if err := p.auth.Logout(ctx, auth); err != nil {
		log.Printf("Backend logout failed for session %s: %v", id, err)
	}
	return commit(ctx, p.store, id, auth, nil, func(s *session.Session) error {
		s.Token = ""
		s.User = nil
		return nil
	})
}

func (p *Planner) CurrentUser(ctx context.Context, id string) (models.User, error) {
	s, err := p.store.Get(ctx, id)
	if err != nil {
		return models.User{}, err
	}
	auth := s.Auth()
	user, err := p.auth.Me(ctx, auth)
	_, err = commit(ctx, p.store, id, auth, err, func(s *session.Session) error {
		s.User = &user
		return nil
	})
	if err != nil {
		return models.User{}, err
	}
	return user, nil
}

func (p *Planner) AddDestination(ctx context.Context, id, location string, daysToStay int) (*session.Session, error) {
	return p.edit(ctx, id, true, func(d models.TripDraft) (models.TripDraft, error) {
		return trip.AddDestination(d, location, daysToStay)
	})
}

func (p *Planner) UpdateDestination(ctx context.Context, id string, index int, location string, daysToStay int) (*session.Session, error) {
	return p.edit(ctx, id, true, func(d models.TripDraft) (models.TripDraft, error) {
		return trip.UpdateDestination(d, index, location, daysToStay)
	})
}

func (p *Planner) RemoveDestination(ctx context.Context, id string, index int) (*session.Session, error) {
	return p.edit(ctx, id, true, func(d models.TripDraft) (models.TripDraft, error) {
		return trip.RemoveDestination(d, index)
	})
}

func (p *Planner) SetTransportationMode(ctx context.Context, id string, from, to int, mode models.TransportMode) (*session.Session, error) {
	return p.edit(ctx, id, false, func(d models.TripDraft) (models.TripDraft, error) {
		return trip.SetTransportationMode(d, from, to, mode)
	})
}

func (p *Planner) SetDates(ctx context.Context, id, start, end string) (*session.Session, error) {
	return p.edit(ctx, id, true, func(d models.TripDraft) (models.TripDraft, error) {
		return trip.SetDates(d, start, end)
	})
}

func (p *Planner) SetTravelers(ctx context.Context, id string, adults, children int) (*session.Session, error) {
	return p.edit(ctx, id, true, func(d models.TripDraft) (models.TripDraft, error) {
		return trip.SetTravelers(d, adults, children)
	})
}

func (p *Planner) SetPreferences(ctx context.Context, id string, prefs models.Preferences) (*session.Session, error) {
	return p.edit(ctx, id, false, func(d models.TripDraft) (models.TripDraft, error) {
		return trip.SetPreferences(d, prefs)
	})
}

func (p *Planner) AddActivityPreference(ctx context.Context, id, activity string) (*session.Session, error) {
	return p.edit(ctx, id, false, func(d models.TripDraft) (models.TripDraft, error) {
		return trip.AddActivityPreference(d, activity), nil
	})
}

func (p *Planner) RemoveActivityPreference(ctx context.Context, id, activity string) (*session.Session, error) {
	return p.edit(ctx, id, false, func(d models.TripDraft) (models.TripDraft, error) {
		return trip.RemoveActivityPreference(d, activity), nil
	})
}

// edit applies a pure draft change. Changes that affect what offers match the
// trip mark every category's offers as needing a new search.
func (p *Planner) edit(ctx context.Context, id string, invalidates bool, fn func(models.TripDraft) (models.TripDraft, error)) (*session.Session, error) {
	return p.store.Update(ctx, id, func(s *session.Session) error {
		next, err := fn(s.Draft)
		if err != nil {
			return err
		}
		s.Draft = next
		if invalidates {
			for _, c := range models.Categories {
				s.Wizard = s.Wizard.Invalidate(c)
			}
			s.Offers = session.Offers{}
		}
		return nil
	})
}

type LegResult struct {
	Session      *session.Session             `json:"session"`
	FlightSearch *models.FlightSearchRequest  `json:"flightSearch,omitempty"`
	Flights      *models.FlightSearchResponse `json:"flights,omitempty"`
}

// BookLeg books the leg between two stops. Ground legs are marked booked
// and synced to a saved trip; flight legs return matching flight offers and
// stay unbooked until a flight is booked.
func (p *Planner) BookLeg(ctx context.Context, id string, from, to int) (*LegResult, error) {
	s, err := p.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	res, err := trip.BookLeg(s.Draft, from, to)
	if err != nil {
		return nil, err
	}
	auth := s.Auth()

	if req := res.FlightSearch; req != nil {
		flights, err := p.searchLegFlights(ctx, auth, req)
		s, cerr := commit(ctx, p.store, id, auth, err, nil)
		if cerr != nil {
			return nil, cerr
		}
		return &LegResult{Session: s, FlightSearch: req, Flights: flights}, nil
	}

	if s.Draft.ID != "" {
		patch := map[string]any{"transportationOptions": res.Draft.TransportationLegs}
		_, err = p.trips.UpdateTrip(ctx, auth, s.Draft.ID, patch)
	}
	s, err = commit(ctx, p.store, id, auth, err, func(s *session.Session) error {
		next, err := trip.BookLeg(s.Draft, from, to)
		if err != nil {
			return err
		}
		s.Draft = next.Draft
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &LegResult{Session: s}, nil
}

func (p *Planner) searchLegFlights(ctx context.Context, auth backend.AuthSession, req *models.FlightSearchRequest) (*models.FlightSearchResponse, error) {
	origin, err := p.searcher.ResolveAirport(ctx, auth, req.OriginCity)
	if err != nil {
		return nil, err
	}
	dest, err := p.searcher.ResolveAirport(ctx, auth, req.DestinationCity)
	if err != nil {
		return nil, err
	}
	req.OriginCode = origin
	req.DestinationCode = dest
	return p.searcher.SearchFlights(ctx, auth, *req)
}

// SaveTrip creates the trip record on first save and patches it afterwards.
func (p *Planner) SaveTrip(ctx context.Context, id, status string) (*session.Session, error) {
	s, err := p.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := trip.ValidateForSubmission(s.Draft); err != nil {
		return nil, err
	}

	payload := trip.TripPayload(s.Draft, status)
	auth := s.Auth()

	var rec models.TripRecord
	if s.Draft.ID == "" {
		rec, err = p.trips.CreateTrip(ctx, auth, payload)
	} else {
		rec, err = p.trips.UpdateTrip(ctx, auth, s.Draft.ID, payload)
	}

	return commit(ctx, p.store, id, auth, err, func(s *session.Session) error {
		if s.Draft.ID == "" {
			s.Draft.ID = rec.TripID()
		}
		s.Draft.Status = payload.Status
		return nil
	})
}

// LoadTrip replaces the draft with a stored trip and restarts the wizard.
func (p *Planner) LoadTrip(ctx context.Context, id, tripID string) (*session.Session, error) {
	s, err := p.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	auth := s.Auth()
	rec, err := p.trips.GetTrip(ctx, auth, tripID)

	return commit(ctx, p.store, id, auth, err, func(s *session.Session) error {
		s.Draft = trip.FromRecord(rec)
		if s.Draft.ID == "" {
			s.Draft.ID = tripID
		}
		s.Wizard = booking.NewWizard()
		s.Offers = session.Offers{}
		return nil
	})
}

func (p *Planner) ListTrips(ctx context.Context, id string) ([]models.TripRecord, error) {
	s, err := p.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	auth := s.Auth()
	trips, err := p.trips.ListTrips(ctx, auth)
	if _, cerr := commit(ctx, p.store, id, auth, err, nil); cerr != nil {
		return nil, cerr
	}
	return trips, nil
}

func (p *Planner) ListTransportationBookings(ctx context.Context, id string) ([]models.TransportationBookingRecord, error) {
	s, err := p.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	auth := s.Auth()
	bookings, err := p.trips.ListTransportationBookings(ctx, auth)
	if _, cerr := commit(ctx, p.store, id, auth, err, nil); cerr != nil {
		return nil, cerr
	}
	return bookings, nil
}

// GenerateItinerary plans the trip and stores the result on the draft. A
// saved trip is patched with the new itinerary; a failed patch is logged and
// the itinerary is kept locally.
func (p *Planner) GenerateItinerary(ctx context.Context, id string) (*session.Session, error) {
	s, err := p.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := p.checkAuth(ctx, s); err != nil {
		return nil, err
	}
	req, err := itinerary.BuildRequest(s.Draft)
	if err != nil {
		return nil, err
	}

	auth := s.Auth()
	generated, err := p.generators(auth).Generate(ctx, req)
	if err != nil {
		return commit(ctx, p.store, id, auth, err, nil)
	}
	merged := itinerary.Merge(generated, req)

	if s.Draft.ID != "" {
		if _, perr := p.trips.UpdateTrip(ctx, auth, s.Draft.ID, map[string]any{"itinerary": merged}); perr != nil {
			log.Printf("Failed to sync itinerary for trip %s: %v", s.Draft.ID, perr)
		}
	}

	return commit(ctx, p.store, id, auth, nil, func(s *session.Session) error {
		s.Draft.Itinerary = &merged
		return nil
	})
}

// DeleteActivity removes an activity by title from one itinerary day. A
// saved trip is patched first; the local copy changes only if that works.
func (p *Planner) DeleteActivity(ctx context.Context, id string, day int, title string) (*session.Session, error) {
	s, err := p.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if s.Draft.Itinerary == nil {
		return nil, models.ErrNoItinerary
	}
	it, err := itinerary.DeleteActivity(*s.Draft.Itinerary, day, title)
	if err != nil {
		return nil, err
	}

	auth := s.Auth()
	if s.Draft.ID != "" {
		_, err = p.trips.UpdateTrip(ctx, auth, s.Draft.ID, map[string]any{"itinerary": it})
	}
	return commit(ctx, p.store, id, auth, err, func(s *session.Session) error {
		s.Draft.Itinerary = &it
		return nil
	})
}

// checkAuth fails fast when the session has no usable token, clearing an
// expired one.
func (p *Planner) checkAuth(ctx context.Context, s *session.Session) error {
	if s.Token == "" {
		return &models.AuthenticationError{Message: "please log in to continue"}
	}
	if backend.TokenExpired(s.Token, p.now()) {
		if _, err := p.store.Update(ctx, s.ID, func(s *session.Session) error {
			s.Token = ""
			s.User = nil
			return nil
		}); err != nil {
			return err
		}
		return &models.AuthenticationError{Message: "session expired, please log in again"}
	}
	return nil
}

// commit writes credential changes from auth back to the session and, when
// the outbound call succeeded, applies fn. callErr is returned unchanged.
func commit(ctx context.Context, store session.Store, id string, auth *session.Auth, callErr error, fn func(*session.Session) error) (*session.Session, error) {
	return store.Update(ctx, id, func(s *session.Session) error {
		auth.Apply(s)
		if callErr != nil {
			return callErr
		}
		if fn != nil {
			return fn(s)
		}
		return nil
	})
}
