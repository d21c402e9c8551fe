// Package session keeps per-visitor state between requests: the auth token,
// the trip draft, the booking wizard and the last offers fetched for it.
package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Agmahima/TravelEase/internal/booking"
	"github.com/Agmahima/TravelEase/internal/models"
)

var ErrNotFound = errors.New("session not found")

// Offers are the search results the wizard last accepted per category.
// Selections are made by id from these lists.
type Offers struct {
	Flights []models.FlightOffer `json:"flights,omitempty"`
	Hotels  []models.HotelOffer  `json:"hotels,omitempty"`
	Cabs    []models.CabOffer    `json:"cabs,omitempty"`
}

type Session struct {
	ID        string           `json:"id"`
	Token     string           `json:"token,omitempty"`
	User      *models.User     `json:"user,omitempty"`
	Draft     models.TripDraft `json:"draft"`
	Wizard    booking.Wizard   `json:"wizard"`
	Offers    Offers           `json:"offers"`
	CreatedAt time.Time        `json:"createdAt"`
	UpdatedAt time.Time        `json:"updatedAt"`
}

func New() *Session {
	now := time.Now().UTC()
	return &Session{
		ID:        uuid.NewString(),
		Draft:     models.NewTripDraft(),
		Wizard:    booking.NewWizard(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Authenticated reports whether a token is present. Expiry is checked by the
// backend client when the token is used.
func (s *Session) Authenticated() bool {
	return s.Token != ""
}

// Store persists sessions. Update loads, mutates and saves atomically; the
// session is saved even when fn returns an error, so fn must only assign
// state it means to keep.
type Store interface {
	Create(ctx context.Context) (*Session, error)
	Get(ctx context.Context, id string) (*Session, error)
	Update(ctx context.Context, id string, fn func(*Session) error) (*Session, error)
	Delete(ctx context.Context, id string) error
}

// Auth is a detached view of a session's credentials that satisfies
// backend.AuthSession. Changes made by the client (a cleared token after a
// 401, a new token after login) are written back with Apply.
type Auth struct {
	mu      sync.RWMutex
	token   string
	user    *models.User
	changed bool
}

func (s *Session) Auth() *Auth {
	return &Auth{token: s.Token, user: s.User}
}

func (a *Auth) Token() string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.token
}

func (a *Auth) User() *models.User {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.user
}

func (a *Auth) SetToken(token string, user *models.User) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.token = token
	a.user = user
	a.changed = true
}

func (a *Auth) Clear() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.token == "" && a.user == nil {
		return
	}
	a.token = ""
	a.user = nil
	a.changed = true
}

// Apply copies credential changes onto s. It is a no-op when nothing changed.
func (a *Auth) Apply(s *Session) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if !a.changed {
		return
	}
	s.Token = a.token
	s.User = a.user
}
