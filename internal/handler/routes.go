package handler

import (
	"github.com/labstack/echo/v4"
)

// Register mounts the API on e.
func Register(e *echo.Echo, trips *TripHandler, bookings *BookingHandler, catalog *CatalogHandler) {
	e.Validator = NewRequestValidator()
	e.GET("/health", HealthHandler)

	api := e.Group("/api/v1")
	api.GET("/hotels/:hotelId", catalog.HotelDetails)
	api.GET("/airports", catalog.Airports)
	api.GET("/destinations", catalog.Destinations)

	api.POST("/sessions", trips.CreateSession)

	s := api.Group("/sessions/:id")
	s.GET("", trips.GetSession)
	s.DELETE("", trips.DeleteSession)
	s.POST("/auth/register", trips.Register)
	s.POST("/auth/login", trips.Login)
	s.POST("/auth/logout", trips.Logout)
	s.GET("/auth/me", trips.Me)
	s.GET("/transportation-bookings", trips.ListTransportationBookings)

	t := s.Group("/trip")
	t.POST("/destinations", trips.AddDestination)
	t.PUT("/destinations/:index", trips.UpdateDestination)
	t.DELETE("/destinations/:index", trips.RemoveDestination)
	t.PUT("/legs", trips.SetLegMode)
	t.POST("/legs/book", trips.BookLeg)
	t.PUT("/dates", trips.SetDates)
	t.PUT("/travelers", trips.SetTravelers)
	t.PUT("/preferences", trips.SetPreferences)
	t.POST("/preferences/activities", trips.AddActivityPreference)
	t.DELETE("/preferences/activities", trips.RemoveActivityPreference)
	t.POST("/save", trips.SaveTrip)
	t.POST("/load/:tripId", trips.LoadTrip)
	t.GET("/list", trips.ListTrips)
	t.POST("/itinerary", trips.GenerateItinerary)
	t.DELETE("/itinerary/days/:day/activities", trips.DeleteActivity)

	b := s.Group("/booking")
	b.PUT("/categories", bookings.SetCategories)
	b.POST("/next", bookings.Next)
	b.POST("/back", bookings.Back)
	b.GET("/offers/:category", bookings.Offers)
	b.PUT("/selection/:category", bookings.Select)
	b.DELETE("/selection/:category", bookings.ClearSelection)
	b.POST("/reprice", bookings.Reprice)
	b.GET("/quote", bookings.Quote)
	b.POST("/submit", bookings.Submit)
}
