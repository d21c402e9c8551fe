package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Agmahima/TravelEase/internal/models"
	"github.com/Agmahima/TravelEase/internal/service"
)

type selectionBody struct {
	OfferID string `json:"offerId" validate:"required"`
}

type BookingHandler struct {
	checkout *service.Checkout
}

func NewBookingHandler(checkout *service.Checkout) *BookingHandler {
	return &BookingHandler{checkout: checkout}
}

func (h *BookingHandler) SetCategories(c echo.Context) error {
	var wanted models.CategoriesWanted
	if err := bindAndValidate(c, &wanted); err != nil {
		return respondError(c, err)
	}
	s, err := h.checkout.SetCategories(c.Request().Context(), c.Param("id"), wanted)
	return respondSession(c, http.StatusOK, s, err)
}

func (h *BookingHandler) Next(c echo.Context) error {
	s, err := h.checkout.Next(c.Request().Context(), c.Param("id"))
	return respondSession(c, http.StatusOK, s, err)
}

func (h *BookingHandler) Back(c echo.Context) error {
	s, exit, err := h.checkout.Back(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{
		"session": newSessionResponse(s),
		"exit":    exit,
	})
}

func (h *BookingHandler) Offers(c echo.Context) error {
	cat, err := categoryParam(c)
	if err != nil {
		return respondError(c, err)
	}
	var q models.OfferQuery
	if err := c.Bind(&q); err != nil {
		return respondError(c, err)
	}
	offers, err := h.checkout.FetchOffers(c.Request().Context(), c.Param("id"), cat, q)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, offers)
}

func (h *BookingHandler) Select(c echo.Context) error {
	cat, err := categoryParam(c)
	if err != nil {
		return respondError(c, err)
	}
	var body selectionBody
	if err := bindAndValidate(c, &body); err != nil {
		return respondError(c, err)
	}
	s, err := h.checkout.Select(c.Request().Context(), c.Param("id"), cat, body.OfferID)
	return respondSession(c, http.StatusOK, s, err)
}

func (h *BookingHandler) ClearSelection(c echo.Context) error {
	cat, err := categoryParam(c)
	if err != nil {
		return respondError(c, err)
	}
	s, err := h.checkout.ClearSelection(c.Request().Context(), c.Param("id"), cat)
	return respondSession(c, http.StatusOK, s, err)
}

func (h *BookingHandler) Reprice(c echo.Context) error {
	s, err := h.checkout.Reprice(c.Request().Context(), c.Param("id"))
	return respondSession(c, http.StatusOK, s, err)
}

func (h *BookingHandler) Quote(c echo.Context) error {
	q, err := h.checkout.Quote(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, q)
}

func (h *BookingHandler) Submit(c echo.Context) error {
	var req models.SubmitRequest
	if err := bindAndValidate(c, &req); err != nil {
		return respondError(c, err)
	}
	res, err := h.checkout.Submit(c.Request().Context(), c.Param("id"), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, res)
}

func categoryParam(c echo.Context) (models.Category, error) {
	cat, ok := models.ParseCategory(c.Param("category"))
	if !ok {
		return "", models.ErrUnknownCategory
	}
	return cat, nil
}
