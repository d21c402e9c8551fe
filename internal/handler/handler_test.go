package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Agmahima/TravelEase/internal/backend"
	"github.com/Agmahima/TravelEase/internal/itinerary"
	"github.com/Agmahima/TravelEase/internal/models"
	"github.com/Agmahima/TravelEase/internal/providers"
	"github.com/Agmahima/TravelEase/internal/search"
	"github.com/Agmahima/TravelEase/internal/service"
	"github.com/Agmahima/TravelEase/internal/session"
)

// fakeBackend answers the handful of backend routes the handler tests touch.
func fakeBackend() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var creds models.LoginRequest
		_ = json.NewDecoder(r.Body).Decode(&creds)
		if creds.Password != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"message":"invalid credentials"}`))
			return
		}
		_, _ = w.Write([]byte(`{"token":"opaque-token","user":{"id":7,"username":"ana"}}`))
	})
	mux.HandleFunc("/api/auth/register", func(w http.ResponseWriter, r *http.Request) {
		var req models.RegisterRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"token":"reg-token","user":{"id":8,"username":"` + req.Username + `","email":"` + req.Email + `"}}`))
	})
	mux.HandleFunc("/api/auth/logout", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	mux.HandleFunc("/api/transportation-bookings", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer reg-token" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_, _ = w.Write([]byte(`[{"id":3,"tripId":11,"vehicleType":"SUV","serviceLevel":"premium","status":"booked","price":240}]`))
	})
	mux.HandleFunc("/api/destinations", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[
			{"id":1,"name":"Bali","country":"Indonesia","description":"Beaches and temples","pricePerPerson":900,"badge":"Most Popular"},
			{"id":2,"name":"Kyoto","country":"Japan","description":"Cultural heart of Japan","pricePerPerson":1400}
		]`))
	})
	mux.HandleFunc("/api/auth/me", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"token revoked"}`))
	})
	mux.HandleFunc("/api/flights/city-and-airport-search", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":[{"iataCode":"CDG","name":"Charles de Gaulle"}]}`))
	})
	mux.HandleFunc("/42/details", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success":true,"data":{"hotel_id":42,"name":"Hotel Roma"}}`))
	})
	return mux
}

func newTestEcho(t *testing.T) *echo.Echo {
	t.Helper()
	srv := httptest.NewServer(fakeBackend())
	t.Cleanup(srv.Close)

	client := backend.NewClient(backend.Config{BaseURL: srv.URL, HotelBaseURL: srv.URL, Timeout: 2 * time.Second})
	cabs, err := providers.NewCabCatalog()
	if err != nil {
		t.Fatalf("cab catalog: %v", err)
	}
	cabs.Latency = 0

	searcher := search.NewSearcher(
		providers.NewBackendFlights(client),
		providers.NewBackendHotels(client),
		cabs,
		client,
		search.Config{Timeout: 2 * time.Second},
	)
	store := session.NewMemoryStore(time.Hour)
	planner := service.NewPlanner(store, client, client, searcher, func(auth backend.AuthSession) itinerary.Generator {
		return client.ItineraryGenerator(auth)
	})
	checkout := service.NewCheckout(store, searcher, client, client, "USD")

	e := echo.New()
	Register(e, NewTripHandler(planner), NewBookingHandler(checkout), NewCatalogHandler(client, searcher, client))
	return e
}

func do(t *testing.T, e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("failed to decode %q: %v", rec.Body.String(), err)
	}
	return out
}

func createSession(t *testing.T, e *echo.Echo) string {
	t.Helper()
	rec := do(t, e, http.MethodPost, "/api/v1/sessions", "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	return decode[sessionResponse](t, rec).ID
}

func TestHealth(t *testing.T) {
	e := newTestEcho(t)
	rec := do(t, e, http.MethodGet, "/health", "")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"ok"`) {
		t.Fatalf("unexpected health response %d %s", rec.Code, rec.Body.String())
	}
}

func TestUnknownSessionIsNotFound(t *testing.T) {
	e := newTestEcho(t)
	rec := do(t, e, http.MethodGet, "/api/v1/sessions/missing", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if resp := decode[models.ErrorResponse](t, rec); resp.Error != "not_found" || resp.Code != http.StatusNotFound {
		t.Fatalf("unexpected error body %+v", resp)
	}
}

func TestLoginFlowHidesToken(t *testing.T) {
	e := newTestEcho(t)
	id := createSession(t, e)

	rec := do(t, e, http.MethodPost, "/api/v1/sessions/"+id+"/auth/login", `{"username":"ana"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing password, got %d", rec.Code)
	}

	rec = do(t, e, http.MethodPost, "/api/v1/sessions/"+id+"/auth/login", `{"username":"ana","password":"wrong"}`)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = do(t, e, http.MethodPost, "/api/v1/sessions/"+id+"/auth/login", `{"username":"ana","password":"secret"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if strings.Contains(rec.Body.String(), "opaque-token") {
		t.Fatal("token must not be returned to the client")
	}
	if s := decode[sessionResponse](t, rec); !s.Authenticated || s.User == nil || s.User.ID != "7" {
		t.Fatalf("unexpected session %+v", s)
	}

	rec = do(t, e, http.MethodGet, "/api/v1/sessions/"+id+"/auth/me", "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 from revoked token, got %d", rec.Code)
	}
	rec = do(t, e, http.MethodGet, "/api/v1/sessions/"+id, "")
	if s := decode[sessionResponse](t, rec); s.Authenticated {
		t.Fatal("a revoked token must log the session out")
	}

	if rec := do(t, e, http.MethodDelete, "/api/v1/sessions/"+id, ""); rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if rec := do(t, e, http.MethodGet, "/api/v1/sessions/"+id, ""); rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", rec.Code)
	}
}

func TestRegisterPreferencesAndLogout(t *testing.T) {
	e := newTestEcho(t)
	id := createSession(t, e)
	base := "/api/v1/sessions/" + id

	rec := do(t, e, http.MethodPost, base+"/auth/register", `{"username":"bo","password":"secret1","email":"not-an-email","fullName":"Bo Lee"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for a bad email, got %d", rec.Code)
	}
	rec = do(t, e, http.MethodPost, base+"/auth/register", `{"username":"bo","password":"secret1","email":"bo@example.com","fullName":"Bo Lee"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if s := decode[sessionResponse](t, rec); !s.Authenticated || s.User == nil || s.User.Username != "bo" {
		t.Fatalf("unexpected session %+v", s)
	}

	rec = do(t, e, http.MethodGet, base+"/transportation-bookings", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	list := decode[struct {
		Bookings []models.TransportationBookingRecord `json:"bookings"`
	}](t, rec)
	if len(list.Bookings) != 1 || list.Bookings[0].TripID != "11" || list.Bookings[0].Price != 240 {
		t.Fatalf("unexpected bookings %+v", list.Bookings)
	}

	rec = do(t, e, http.MethodPost, base+"/trip/preferences/activities", `{"activity":"Beaches"}`)
	if s := decode[sessionResponse](t, rec); len(s.Draft.Preferences.Activities) != 1 {
		t.Fatalf("activity not added: %s", rec.Body.String())
	}
	rec = do(t, e, http.MethodDelete, base+"/trip/preferences/activities?activity=Beaches", "")
	if s := decode[sessionResponse](t, rec); rec.Code != http.StatusOK || len(s.Draft.Preferences.Activities) != 0 {
		t.Fatalf("activity not removed: %d %s", rec.Code, rec.Body.String())
	}

	rec = do(t, e, http.MethodPost, base+"/auth/logout", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("logout must succeed when the backend call fails, got %d", rec.Code)
	}
	if s := decode[sessionResponse](t, rec); s.Authenticated {
		t.Fatal("session still authenticated after logout")
	}
	if rec := do(t, e, http.MethodGet, base+"/transportation-bookings", ""); rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 after logout, got %d", rec.Code)
	}
}

func TestDestinations(t *testing.T) {
	e := newTestEcho(t)

	rec := do(t, e, http.MethodGet, "/api/v1/destinations?q=japan", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	got := decode[struct {
		Destinations []models.Destination `json:"destinations"`
	}](t, rec)
	if len(got.Destinations) != 1 || got.Destinations[0].Name != "Kyoto" {
		t.Fatalf("unexpected destinations %+v", got.Destinations)
	}

	rec = do(t, e, http.MethodGet, "/api/v1/destinations?tag=Popular&tag=Beach&maxPrice=1000", "")
	got = decode[struct {
		Destinations []models.Destination `json:"destinations"`
	}](t, rec)
	if len(got.Destinations) != 1 || got.Destinations[0].Name != "Bali" {
		t.Fatalf("unexpected filtered destinations %+v", got.Destinations)
	}

	if rec := do(t, e, http.MethodGet, "/api/v1/destinations?minPrice=cheap", ""); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for a bad price, got %d", rec.Code)
	}
}

func TestDraftEditing(t *testing.T) {
	e := newTestEcho(t)
	id := createSession(t, e)
	base := "/api/v1/sessions/" + id + "/trip"

	if rec := do(t, e, http.MethodPost, base+"/destinations", `{"location":"Rome","daysToStay":0}`); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for zero days, got %d", rec.Code)
	}
	if rec := do(t, e, http.MethodPost, base+"/destinations", `{"location":"  ","daysToStay":2}`); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for blank location, got %d", rec.Code)
	}
	if rec := do(t, e, http.MethodPut, base+"/destinations/x", `{"location":"Rome","daysToStay":2}`); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad index, got %d", rec.Code)
	}

	do(t, e, http.MethodPut, base+"/destinations/0", `{"location":"Paris","daysToStay":3}`)
	rec := do(t, e, http.MethodPost, base+"/destinations", `{"location":"Rome","daysToStay":2}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = do(t, e, http.MethodPut, base+"/legs", `{"fromDestination":0,"toDestination":1,"mode":"boat"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown mode, got %d", rec.Code)
	}
	rec = do(t, e, http.MethodPut, base+"/legs", `{"fromDestination":0,"toDestination":1,"mode":"train"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = do(t, e, http.MethodDelete, base+"/destinations/0", "")
	s := decode[sessionResponse](t, rec)
	if len(s.Draft.Destinations) != 1 || s.Draft.Destinations[0].Location != "Rome" || len(s.Draft.TransportationLegs) != 0 {
		t.Fatalf("unexpected draft after removal %+v", s.Draft)
	}

	if rec := do(t, e, http.MethodPut, base+"/dates", `{"startDate":"2025-06-10","endDate":"2025-06-01"}`); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for reversed dates, got %d", rec.Code)
	}
}

func TestGenerateItineraryNeedsLogin(t *testing.T) {
	e := newTestEcho(t)
	id := createSession(t, e)
	rec := do(t, e, http.MethodPost, "/api/v1/sessions/"+id+"/trip/itinerary", "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestCabCheckout(t *testing.T) {
	e := newTestEcho(t)
	id := createSession(t, e)
	base := "/api/v1/sessions/" + id

	do(t, e, http.MethodPut, base+"/trip/destinations/0", `{"location":"Lisbon","daysToStay":3}`)
	do(t, e, http.MethodPut, base+"/trip/dates", `{"startDate":"2025-06-01","endDate":"2025-06-04"}`)

	if rec := do(t, e, http.MethodGet, base+"/booking/offers/boats", ""); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown category, got %d", rec.Code)
	}

	rec := do(t, e, http.MethodPut, base+"/booking/categories", `{"transportation":false,"hotels":false,"cabs":true}`)
	if s := decode[sessionResponse](t, rec); len(s.Steps) != 3 {
		t.Fatalf("expected confirmation, cabs, payment; got %v", s.Steps)
	}

	rec = do(t, e, http.MethodGet, base+"/booking/offers/cabs", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	offers := decode[models.OffersResponse](t, rec)
	if len(offers.Cabs) != 2 || offers.Generation != 1 {
		t.Fatalf("unexpected offers %+v", offers)
	}

	rec = do(t, e, http.MethodPut, base+"/booking/selection/cabs", `{"offerId":"`+offers.Cabs[0].ID+`"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = do(t, e, http.MethodGet, base+"/booking/quote", "")
	q := decode[models.Quote](t, rec)
	if q.DurationDays != 3 || q.Total != offers.Cabs[0].DailyRate*3 {
		t.Fatalf("unexpected quote %+v", q)
	}

	rec = do(t, e, http.MethodPost, base+"/booking/back", "")
	if body := decode[map[string]any](t, rec); body["exit"] != true {
		t.Fatalf("expected exit at the first step, got %v", body["exit"])
	}
}

func TestCatalogRoutes(t *testing.T) {
	e := newTestEcho(t)

	rec := do(t, e, http.MethodGet, "/api/v1/airports?keyword=P", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for short keyword, got %d", rec.Code)
	}
	rec = do(t, e, http.MethodGet, "/api/v1/airports?keyword=Paris", "")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "CDG") {
		t.Fatalf("unexpected airports response %d %s", rec.Code, rec.Body.String())
	}

	rec = do(t, e, http.MethodGet, "/api/v1/hotels/42?arrival_date=2025-06-01&departure_date=2025-06-03", "")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "Hotel Roma") {
		t.Fatalf("unexpected hotel details %d %s", rec.Code, rec.Body.String())
	}
	if strings.Contains(rec.Body.String(), "success") {
		t.Fatal("envelope should be stripped")
	}
}

func TestClassify(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{models.ErrEmptyLocation, http.StatusBadRequest},
		{models.ValidationErrors{models.ErrMissingStartDate}, http.StatusBadRequest},
		{&models.AuthenticationError{Message: "x"}, http.StatusUnauthorized},
		{providers.NewProviderError("backend-flights", &models.RateLimitError{Message: "x"}), http.StatusTooManyRequests},
		{&models.GenerationError{Err: errors.New("empty response")}, http.StatusBadGateway},
		{&models.APIError{StatusCode: 404, Message: "no trip"}, http.StatusNotFound},
		{&models.APIError{StatusCode: 503}, http.StatusBadGateway},
		{session.ErrNotFound, http.StatusNotFound},
	}
	for _, tc := range cases {
		if got, _, _ := classify(tc.err); got != tc.want {
			t.Errorf("classify(%v) = %d, want %d", tc.err, got, tc.want)
		}
	}
}
