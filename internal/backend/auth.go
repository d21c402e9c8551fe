package backend

import (
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Agmahima/TravelEase/internal/models"
)

// AuthSession holds the bearer token for one visitor. Clear must be safe to
// call more than once.
type AuthSession interface {
	Token() string
	User() *models.User
	SetToken(token string, user *models.User)
	Clear()
}

type MemorySession struct {
	mu    sync.RWMutex
	token string
	user  *models.User
}

func NewMemorySession(token string) *MemorySession {
	return &MemorySession{token: token}
}

func (s *MemorySession) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *MemorySession) User() *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

func (s *MemorySession) SetToken(token string, user *models.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	s.user = user
}

func (s *MemorySession) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.user = nil
}

// TokenExpired reports whether a JWT carries an exp claim in the past. The
// signature is not checked; the backend owns the key. Tokens that are not
// JWTs are treated as opaque and never expire here.
func TokenExpired(token string, now time.Time) bool {
	claims := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	if claims.ExpiresAt == nil {
		return false
	}
	return !now.Before(claims.ExpiresAt.Time)
}
