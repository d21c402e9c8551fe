package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Agmahima/TravelEase/internal/booking"
	"github.com/Agmahima/TravelEase/internal/models"
	"github.com/Agmahima/TravelEase/internal/service"
	"github.com/Agmahima/TravelEase/internal/session"
)

// sessionResponse is the public view of a session. The bearer token stays
// server side.
type sessionResponse struct {
	ID            string               `json:"id"`
	Authenticated bool                 `json:"authenticated"`
	User          *models.User         `json:"user,omitempty"`
	Draft         models.TripDraft     `json:"draft"`
	Wizard        booking.Wizard       `json:"wizard"`
	Steps         []models.BookingStep `json:"steps"`
	Offers        session.Offers       `json:"offers"`
	UpdatedAt     time.Time            `json:"updatedAt"`
}

func newSessionResponse(s *session.Session) sessionResponse {
	return sessionResponse{
		ID:            s.ID,
		Authenticated: s.Authenticated(),
		User:          s.User,
		Draft:         s.Draft,
		Wizard:        s.Wizard,
		Steps:         s.Wizard.Steps(),
		Offers:        s.Offers,
		UpdatedAt:     s.UpdatedAt,
	}
}

func respondSession(c echo.Context, status int, s *session.Session, err error) error {
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(status, newSessionResponse(s))
}

type destinationBody struct {
	Location   string `json:"location"`
	DaysToStay int    `json:"daysToStay" validate:"gt=0"`
}

type legBody struct {
	From int                  `json:"fromDestination" validate:"gte=0"`
	To   int                  `json:"toDestination" validate:"gte=0"`
	Mode models.TransportMode `json:"mode"`
}

type datesBody struct {
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

type travelersBody struct {
	Adults   int `json:"adults" validate:"gte=1"`
	Children int `json:"children" validate:"gte=0"`
}

type saveBody struct {
	Status string `json:"status" validate:"omitempty,oneof=planned confirmed"`
}

type activityPreferenceBody struct {
	Activity string `json:"activity" query:"activity" validate:"required"`
}

type activityBody struct {
	Title string `json:"title" query:"title" validate:"required"`
}

type TripHandler struct {
	planner *service.Planner
}

func NewTripHandler(planner *service.Planner) *TripHandler {
	return &TripHandler{planner: planner}
}

func (h *TripHandler) CreateSession(c echo.Context) error {
	s, err := h.planner.CreateSession(c.Request().Context())
	return respondSession(c, http.StatusCreated, s, err)
}

func (h *TripHandler) GetSession(c echo.Context) error {
	s, err := h.planner.Session(c.Request().Context(), c.Param("id"))
	return respondSession(c, http.StatusOK, s, err)
}

func (h *TripHandler) DeleteSession(c echo.Context) error {
	if err := h.planner.EndSession(c.Request().Context(), c.Param("id")); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *TripHandler) Login(c echo.Context) error {
	var req models.LoginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return respondError(c, err)
	}
	s, err := h.planner.Login(c.Request().Context(), c.Param("id"), req)
	return respondSession(c, http.StatusOK, s, err)
}

func (h *TripHandler) Register(c echo.Context) error {
	var req models.RegisterRequest
	if err := bindAndValidate(c, &req); err != nil {
		return respondError(c, err)
	}
	s, err := h.planner.Register(c.Request().Context(), c.Param("id"), req)
	return respondSession(c, http.StatusCreated, s, err)
}

func (h *TripHandler) Logout(c echo.Context) error {
	s, err := h.planner.Logout(c.Request().Context(), c.Param("id"))
	return respondSession(c, http.StatusOK, s, err)
}

func (h *TripHandler) Me(c echo.Context) error {
	user, err := h.planner.CurrentUser(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, user)
}

func (h *TripHandler) AddDestination(c echo.Context) error {
	var body destinationBody
	if err := bindAndValidate(c, &body); err != nil {
		return respondError(c, err)
	}
	s, err := h.planner.AddDestination(c.Request().Context(), c.Param("id"), body.Location, body.DaysToStay)
	return respondSession(c, http.StatusCreated, s, err)
}

func (h *TripHandler) UpdateDestination(c echo.Context) error {
	index, err := intParam(c, "index")
	if err != nil {
		return respondError(c, err)
	}
	var body destinationBody
	if err := bindAndValidate(c, &body); err != nil {
		return respondError(c, err)
	}
	s, err := h.planner.UpdateDestination(c.Request().Context(), c.Param("id"), index, body.Location, body.DaysToStay)
	return respondSession(c, http.StatusOK, s, err)
}

func (h *TripHandler) RemoveDestination(c echo.Context) error {
	index, err := intParam(c, "index")
	if err != nil {
		return respondError(c, err)
	}
	s, err := h.planner.RemoveDestination(c.Request().Context(), c.Param("id"), index)
	return respondSession(c, http.StatusOK, s, err)
}

func (h *TripHandler) SetLegMode(c echo.Context) error {
	var body legBody
	if err := bindAndValidate(c, &body); err != nil {
		return respondError(c, err)
	}
	s, err := h.planner.SetTransportationMode(c.Request().Context(), c.Param("id"), body.From, body.To, body.Mode)
	return respondSession(c, http.StatusOK, s, err)
}

func (h *TripHandler) BookLeg(c echo.Context) error {
	var body legBody
	if err := bindAndValidate(c, &body); err != nil {
		return respondError(c, err)
	}
	res, err := h.planner.BookLeg(c.Request().Context(), c.Param("id"), body.From, body.To)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{
		"session":      newSessionResponse(res.Session),
		"flightSearch": res.FlightSearch,
		"flights":      res.Flights,
	})
}

func (h *TripHandler) SetDates(c echo.Context) error {
	var body datesBody
	if err := bindAndValidate(c, &body); err != nil {
		return respondError(c, err)
	}
	s, err := h.planner.SetDates(c.Request().Context(), c.Param("id"), body.StartDate, body.EndDate)
	return respondSession(c, http.StatusOK, s, err)
}

func (h *TripHandler) SetTravelers(c echo.Context) error {
	var body travelersBody
	if err := bindAndValidate(c, &body); err != nil {
		return respondError(c, err)
	}
	s, err := h.planner.SetTravelers(c.Request().Context(), c.Param("id"), body.Adults, body.Children)
	return respondSession(c, http.StatusOK, s, err)
}

func (h *TripHandler) SetPreferences(c echo.Context) error {
	var body models.Preferences
	if err := bindAndValidate(c, &body); err != nil {
		return respondError(c, err)
	}
	s, err := h.planner.SetPreferences(c.Request().Context(), c.Param("id"), body)
	return respondSession(c, http.StatusOK, s, err)
}

func (h *TripHandler) AddActivityPreference(c echo.Context) error {
	var body activityPreferenceBody
	if err := bindAndValidate(c, &body); err != nil {
		return respondError(c, err)
	}
	s, err := h.planner.AddActivityPreference(c.Request().Context(), c.Param("id"), body.Activity)
	return respondSession(c, http.StatusOK, s, err)
}

func (h *TripHandler) RemoveActivityPreference(c echo.Context) error {
	var body activityPreferenceBody
	if err := bindAndValidate(c, &body); err != nil {
		return respondError(c, err)
	}
	s, err := h.planner.RemoveActivityPreference(c.Request().Context(), c.Param("id"), body.Activity)
	return respondSession(c, http.StatusOK, s, err)
}

func (h *TripHandler) SaveTrip(c echo.Context) error {
	var body saveBody
	if err := bindAndValidate(c, &body); err != nil {
		return respondError(c, err)
	}
	s, err := h.planner.SaveTrip(c.Request().Context(), c.Param("id"), body.Status)
	return respondSession(c, http.StatusOK, s, err)
}

func (h *TripHandler) LoadTrip(c echo.Context) error {
	s, err := h.planner.LoadTrip(c.Request().Context(), c.Param("id"), c.Param("tripId"))
	return respondSession(c, http.StatusOK, s, err)
}

func (h *TripHandler) ListTrips(c echo.Context) error {
	trips, err := h.planner.ListTrips(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"trips": trips})
}

func (h *TripHandler) ListTransportationBookings(c echo.Context) error {
	bookings, err := h.planner.ListTransportationBookings(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"bookings": bookings})
}

func (h *TripHandler) GenerateItinerary(c echo.Context) error {
	s, err := h.planner.GenerateItinerary(c.Request().Context(), c.Param("id"))
	return respondSession(c, http.StatusOK, s, err)
}

func (h *TripHandler) DeleteActivity(c echo.Context) error {
	day, err := intParam(c, "day")
	if err != nil {
		return respondError(c, err)
	}
	var body activityBody
	if err := bindAndValidate(c, &body); err != nil {
		return respondError(c, err)
	}
	s, err := h.planner.DeleteActivity(c.Request().Context(), c.Param("id"), day, body.Title)
	return respondSession(c, http.StatusOK, s, err)
}

func bindAndValidate(c echo.Context, dst any) error {
	if err := c.Bind(dst); err != nil {
		return err
	}
	return c.Validate(dst)
}

func intParam(c echo.Context, name string) (int, error) {
	v, err := strconv.Atoi(c.Param(name))
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, name+" must be an integer")
	}
	return v, nil
}
