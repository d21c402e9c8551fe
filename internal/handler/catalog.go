package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/Agmahima/TravelEase/internal/backend"
	"github.com/Agmahima/TravelEase/internal/filter"
	"github.com/Agmahima/TravelEase/internal/models"
)

type HotelDetailer interface {
	HotelDetails(ctx context.Context, auth backend.AuthSession, req models.HotelDetailsRequest) (json.RawMessage, error)
}

type AirportSearcher interface {
	SearchAirports(ctx context.Context, auth backend.AuthSession, keyword string) ([]models.Airport, error)
}

type DestinationLister interface {
	ListDestinations(ctx context.Context, auth backend.AuthSession) ([]models.Destination, error)
}

// CatalogHandler serves lookups that need no session. A bearer token on the
// incoming request is forwarded to the backend.
type CatalogHandler struct {
	hotels       HotelDetailer
	airports     AirportSearcher
	destinations DestinationLister
}

func NewCatalogHandler(hotels HotelDetailer, airports AirportSearcher, destinations DestinationLister) *CatalogHandler {
	return &CatalogHandler{hotels: hotels, airports: airports, destinations: destinations}
}

func (h *CatalogHandler) HotelDetails(c echo.Context) error {
	var req models.HotelDetailsRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, err)
	}
	details, err := h.hotels.HotelDetails(c.Request().Context(), forwardedAuth(c), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSONBlob(http.StatusOK, details)
}

func (h *CatalogHandler) Airports(c echo.Context) error {
	airports, err := h.airports.SearchAirports(c.Request().Context(), forwardedAuth(c), c.QueryParam("keyword"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"airports": airports})
}

// Destinations lists the catalogue, narrowed by ?q=, ?minPrice=, ?maxPrice=
// and repeated ?tag= parameters.
func (h *CatalogHandler) Destinations(c echo.Context) error {
	q := filter.DestinationQuery{
		Search: c.QueryParam("q"),
		Tags:   c.QueryParams()["tag"],
	}
	var err error
	if q.MinPrice, err = floatQuery(c, "minPrice"); err != nil {
		return respondError(c, err)
	}
	if q.MaxPrice, err = floatQuery(c, "maxPrice"); err != nil {
		return respondError(c, err)
	}
	all, err := h.destinations.ListDestinations(c.Request().Context(), forwardedAuth(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"destinations": filter.Destinations(all, q)})
}

func floatQuery(c echo.Context, name string) (*float64, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, name+" must be a number")
	}
	return &v, nil
}

func forwardedAuth(c echo.Context) backend.AuthSession {
	token, _ := strings.CutPrefix(c.Request().Header.Get(echo.HeaderAuthorization), "Bearer ")
	return backend.NewMemorySession(strings.TrimSpace(token))
}

func HealthHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
	})
}
