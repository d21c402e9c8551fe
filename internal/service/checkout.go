package service

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/Agmahima/TravelEase/internal/backend"
	"github.com/Agmahima/TravelEase/internal/booking"
	"github.com/Agmahima/TravelEase/internal/models"
	"github.com/Agmahima/TravelEase/internal/pricing"
	"github.com/Agmahima/TravelEase/internal/session"
	"github.com/Agmahima/TravelEase/internal/timeutil"
	"github.com/Agmahima/TravelEase/internal/trip"
)

// Checkout drives the booking wizard: category choice, fenced offer
// fetches, selection, pricing and final submission.
type Checkout struct {
	store    session.Store
	searcher OfferSearcher
	trips    TripAPI
	bookings BookingAPI
	currency string
}

func NewCheckout(store session.Store, searcher OfferSearcher, trips TripAPI, bookings BookingAPI, currency string) *Checkout {
	if currency == "" {
		currency = "USD"
	}
	return &Checkout{
		store:    store,
		searcher: searcher,
		trips:    trips,
		bookings: bookings,
		currency: currency,
	}
}

func (c *Checkout) SetCategories(ctx context.Context, id string, wanted models.CategoriesWanted) (*session.Session, error) {
	return c.store.Update(ctx, id, func(s *session.Session) error {
		s.Wizard = s.Wizard.SetCategories(wanted)
		return nil
	})
}

func (c *Checkout) Next(ctx context.Context, id string) (*session.Session, error) {
	return c.store.Update(ctx, id, func(s *session.Session) error {
		next, err := s.Wizard.Next()
		if err != nil {
			return err
		}
		s.Wizard = next
		return nil
	})
}

// Back moves one step back; exit is true when the wizard was already at its
// first step and the caller should leave the flow.
func (c *Checkout) Back(ctx context.Context, id string) (*session.Session, bool, error) {
	var exit bool
	s, err := c.store.Update(ctx, id, func(s *session.Session) error {
		s.Wizard, exit = s.Wizard.Back()
		return nil
	})
	return s, exit, err
}

// FetchOffers searches one category. The fetch is fenced: if another fetch
// for the same category starts before this one returns, this result is
// reported stale and not stored.
func (c *Checkout) FetchOffers(ctx context.Context, id string, cat models.Category, q models.OfferQuery) (*models.OffersResponse, error) {
	var (
		gen     uint64
		skipped bool
	)
	s, err := c.store.Update(ctx, id, func(s *session.Session) error {
		if !s.Wizard.NeedsFetch(cat, q.Force) {
			skipped = true
			return nil
		}
		s.Wizard, gen = s.Wizard.BeginFetch(cat)
		return nil
	})
	if err != nil {
		return nil, err
	}
	if skipped {
		out := storedOffers(s, cat)
		out.Skipped = true
		return out, nil
	}

	auth := s.Auth()
	result, fetchErr := c.search(ctx, auth, s.Draft, cat, q)

	accepted := false
	_, err = c.store.Update(ctx, id, func(s *session.Session) error {
		auth.Apply(s)
		s.Wizard, accepted = s.Wizard.CompleteFetch(cat, gen, fetchErr)
		if !accepted {
			return nil
		}
		if fetchErr != nil {
			setOffers(s, cat, &models.OffersResponse{})
			return nil
		}
		setOffers(s, cat, result)
		return nil
	})
	if err != nil {
		return nil, err
	}
	if fetchErr != nil {
		return nil, fetchErr
	}

	result.Category = cat
	result.Generation = gen
	result.Stale = !accepted
	return result, nil
}

func (c *Checkout) search(ctx context.Context, auth backend.AuthSession, draft models.TripDraft, cat models.Category, q models.OfferQuery) (*models.OffersResponse, error) {
	switch cat {
	case models.CategoryTransportation:
		req, err := c.flightRequest(ctx, auth, draft, q)
		if err != nil {
			return nil, err
		}
		resp, err := c.searcher.SearchFlights(ctx, auth, req)
		if err != nil {
			return nil, err
		}
		return &models.OffersResponse{Metadata: resp.Metadata, Flights: resp.Flights}, nil

	case models.CategoryHotels:
		req := models.HotelSearchRequest{
			DestID:       q.DestID,
			CheckinDate:  orDefault(q.Checkin, draft.StartDate),
			CheckoutDate: orDefault(q.Checkout, draft.EndDate),
			Adults:       draft.Adults,
			RoomQty:      q.Rooms,
			MaxPrice:     q.PriceMax,
			MinRating:    q.MinRating,
			SortBy:       q.SortBy,
			SortOrder:    q.SortOrder,
		}
		resp, err := c.searcher.SearchHotels(ctx, auth, req)
		if err != nil {
			return nil, err
		}
		return &models.OffersResponse{Metadata: resp.Metadata, Hotels: resp.Hotels}, nil

	case models.CategoryCabs:
		req := models.CabSearchRequest{
			Location:   orDefault(q.Location, trip.PrimaryDestination(draft)),
			Passengers: draft.Travelers(),
		}
		resp, err := c.searcher.SearchCabs(ctx, req)
		if err != nil {
			return nil, err
		}
		return &models.OffersResponse{Metadata: resp.Metadata, Cabs: resp.Cabs}, nil
	}
	return nil, models.ErrUnknownCategory
}

func (c *Checkout) flightRequest(ctx context.Context, auth backend.AuthSession, draft models.TripDraft, q models.OfferQuery) (models.FlightSearchRequest, error) {
	originCity := strings.TrimSpace(q.Origin)
	if originCity == "" {
		return models.FlightSearchRequest{}, models.ErrNoOrigin
	}
	destCity := orDefault(q.Destination, trip.PrimaryDestination(draft))
	if destCity == "" {
		return models.FlightSearchRequest{}, models.ErrMissingDestination
	}
	date := orDefault(q.Date, draft.StartDate)
	if date == "" {
		return models.FlightSearchRequest{}, models.ErrMissingDepartureDate
	}
	if normalized, err := timeutil.NormalizeDate(date); err == nil {
		date = normalized
	}

	origin, err := c.searcher.ResolveAirport(ctx, auth, originCity)
	if err != nil {
		return models.FlightSearchRequest{}, err
	}
	dest, err := c.searcher.ResolveAirport(ctx, auth, destCity)
	if err != nil {
		return models.FlightSearchRequest{}, err
	}

	req := models.FlightSearchRequest{
		OriginCode:      origin,
		DestinationCode: dest,
		DateOfDeparture: date,
		ReturnDate:      q.ReturnDate,
		Adults:          draft.Adults,
		Children:        draft.Children,
		CurrencyCode:    c.currency,
		SortBy:          q.SortBy,
		SortOrder:       q.SortOrder,
		OriginCity:      originCity,
		DestinationCity: destCity,
	}

	f := models.FlightFilters{Airlines: q.Airlines, Stops: q.Stops}
	if q.PriceMin > 0 {
		f.PriceMin = &q.PriceMin
	}
	if q.PriceMax > 0 {
		f.PriceMax = &q.PriceMax
	}
	if q.MaxDuration > 0 {
		f.MaxDuration = &q.MaxDuration
	}
	if f.PriceMin != nil || f.PriceMax != nil || f.MaxDuration != nil || len(f.Airlines) > 0 || len(f.Stops) > 0 {
		req.Filters = &f
	}
	return req, nil
}

func storedOffers(s *session.Session, cat models.Category) *models.OffersResponse {
	out := &models.OffersResponse{
		Category:   cat,
		Generation: s.Wizard.Fences.Get(cat).Generation,
	}
	switch cat {
	case models.CategoryTransportation:
		out.Flights = s.Offers.Flights
		out.Metadata.TotalResults = len(out.Flights)
	case models.CategoryHotels:
		out.Hotels = s.Offers.Hotels
		out.Metadata.TotalResults = len(out.Hotels)
	case models.CategoryCabs:
		out.Cabs = s.Offers.Cabs
		out.Metadata.TotalResults = len(out.Cabs)
	}
	return out
}

func setOffers(s *session.Session, cat models.Category, r *models.OffersResponse) {
	switch cat {
	case models.CategoryTransportation:
		s.Offers.Flights = r.Flights
	case models.CategoryHotels:
		s.Offers.Hotels = r.Hotels
	case models.CategoryCabs:
		s.Offers.Cabs = r.Cabs
	}
}

// Select picks an offer by id from the last accepted search. Hotel and cab
// totals are frozen against the current trip length.
func (c *Checkout) Select(ctx context.Context, id string, cat models.Category, offerID string) (*session.Session, error) {
	return c.store.Update(ctx, id, func(s *session.Session) error {
		days := pricing.TripDurationDays(s.Draft)
		var err error
		next := s.Wizard

		switch cat {
		case models.CategoryTransportation:
			offer, ok := findFlight(s.Offers.Flights, offerID)
			if !ok {
				return models.ErrOfferNotFound
			}
			next, err = s.Wizard.SelectFlight(offer)
		case models.CategoryHotels:
			offer, ok := findHotel(s.Offers.Hotels, offerID)
			if !ok {
				return models.ErrOfferNotFound
			}
			next, err = s.Wizard.SelectHotel(offer, days)
		case models.CategoryCabs:
			offer, ok := findCab(s.Offers.Cabs, offerID)
			if !ok {
				return models.ErrOfferNotFound
			}
			next, err = s.Wizard.SelectCab(offer, days)
		default:
			return models.ErrUnknownCategory
		}
		if err != nil {
			return err
		}
		s.Wizard = next
		return nil
	})
}

func (c *Checkout) ClearSelection(ctx context.Context, id string, cat models.Category) (*session.Session, error) {
	return c.store.Update(ctx, id, func(s *session.Session) error {
		s.Wizard = s.Wizard.ClearSelection(cat)
		return nil
	})
}

// Reprice refreezes hotel and cab totals after the trip length changed.
func (c *Checkout) Reprice(ctx context.Context, id string) (*session.Session, error) {
	return c.store.Update(ctx, id, func(s *session.Session) error {
		next, err := s.Wizard.Reprice(pricing.TripDurationDays(s.Draft))
		if err != nil {
			return err
		}
		s.Wizard = next
		return nil
	})
}

func (c *Checkout) Quote(ctx context.Context, id string) (models.Quote, error) {
	s, err := c.store.Get(ctx, id)
	if err != nil {
		return models.Quote{}, err
	}
	return c.quote(s), nil
}

func (c *Checkout) quote(s *session.Session) models.Quote {
	sel := s.Wizard.Selection
	q := pricing.Quote(sel, s.Draft.Travelers(), pricing.QuoteCurrency(sel, c.currency))
	q.DurationDays = pricing.TripDurationDays(s.Draft)
	if msg, ok := pricing.DurationMismatch(s.Draft); ok {
		q.Warnings = append(q.Warnings, msg)
	}
	if h := sel.Selected.Hotel; h != nil && sel.CategoriesWanted.Hotels && h.Nights != pricing.HotelNights(q.DurationDays) {
		q.Warnings = append(q.Warnings, fmt.Sprintf("hotel priced for %d nights; reprice to match the trip", h.Nights))
	}
	if cab := sel.Selected.Cab; cab != nil && sel.CategoriesWanted.Cabs && cab.Days != pricing.CabDays(q.DurationDays) {
		q.Warnings = append(q.Warnings, fmt.Sprintf("cab priced for %d days; reprice to match the trip", cab.Days))
	}
	return q
}

// Submit confirms the trip from the payment step. The trip record is the
// only hard requirement; flight and ground bookings that fail are reported
// in FailedOperations.
func (c *Checkout) Submit(ctx context.Context, id string, req models.SubmitRequest) (*models.SubmitResult, error) {
	s, err := c.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	w := s.Wizard
	if booking.Reconcile(w.Steps(), w.Current) != models.StepPayment {
		return nil, models.ErrNotAtPayment
	}
	wanted := w.Selection.CategoriesWanted
	if !wanted.Any() {
		return nil, models.ErrNoCategories
	}
	sel := w.Selection.Selected
	bookFlight := wanted.Transportation && sel.Flight != nil
	bookCab := wanted.Cabs && sel.Cab != nil
	if !bookFlight && !bookCab && !(wanted.Hotels && sel.Hotel != nil) {
		return nil, models.ErrNoSelections
	}
	if bookFlight && len(req.Travelers) == 0 {
		return nil, models.ErrMissingTravelers
	}
	if err := trip.ValidateForSubmission(s.Draft); err != nil {
		return nil, err
	}

	quote := c.quote(s)
	payload := trip.TripPayload(s.Draft, models.TripStatusConfirmed)
	payload.Booking = bookingSummary(w.Selection, quote)

	auth := s.Auth()
	tripID := s.Draft.ID
	var rec models.TripRecord
	if tripID == "" {
		rec, err = c.trips.CreateTrip(ctx, auth, payload)
		if err == nil {
			tripID = rec.TripID()
		}
	} else {
		_, err = c.trips.UpdateTrip(ctx, auth, tripID, payload)
	}
	if err != nil {
		_, _ = commit(ctx, c.store, id, auth, nil, nil)
		return nil, err
	}

	result := &models.SubmitResult{
		TripID: tripID,
		Status: models.TripStatusConfirmed,
		Quote:  quote,
	}

	if bookFlight {
		_, ferr := c.bookings.BookFlight(ctx, auth, models.FlightBookingRequest{
			FlightOffer: *sel.Flight,
			Travelers:   req.Travelers,
		})
		if ferr != nil {
			log.Printf("Flight booking for trip %s failed: %v", tripID, ferr)
			result.FailedOperations = append(result.FailedOperations, "flight: "+ferr.Error())
		} else {
			result.FlightBooked = true
		}
	}

	if bookCab {
		_, terr := c.bookings.BookTransportation(ctx, auth, models.TransportationBooking{
			TripID:          tripID,
			ServiceType:     "cab",
			VehicleType:     sel.Cab.Offer.Type,
			PickupLocation:  trip.PrimaryDestination(s.Draft),
			DropoffLocation: trip.PrimaryDestination(s.Draft),
			StartDate:       s.Draft.StartDate,
			EndDate:         s.Draft.EndDate,
			Days:            sel.Cab.Days,
			Passengers:      s.Draft.Travelers(),
			TotalPrice:      sel.Cab.TotalPrice,
			Status:          models.TripStatusConfirmed,
		})
		if terr != nil {
			log.Printf("Cab booking for trip %s failed: %v", tripID, terr)
			result.FailedOperations = append(result.FailedOperations, "cab: "+terr.Error())
		} else {
			result.TransportBooked = true
		}
	}

	_, err = commit(ctx, c.store, id, auth, nil, func(s *session.Session) error {
		s.Draft.ID = tripID
		s.Draft.Status = models.TripStatusConfirmed
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func bookingSummary(sel models.BookingSelection, q models.Quote) *models.BookingSummary {
	b := &models.BookingSummary{
		Travelers:  q.Travelers,
		TotalPrice: q.Total,
		Currency:   q.Currency,
	}
	w := sel.CategoriesWanted
	if f := sel.Selected.Flight; f != nil && w.Transportation {
		b.FlightOfferID = f.ID
	}
	if h := sel.Selected.Hotel; h != nil && w.Hotels {
		b.HotelID = h.Offer.ID
		b.HotelName = h.Offer.Name
		b.HotelNights = h.Nights
	}
	if c := sel.Selected.Cab; c != nil && w.Cabs {
		b.CabID = c.Offer.ID
		b.CabDays = c.Days
	}
	return b
}

func findFlight(offers []models.FlightOffer, id string) (models.FlightOffer, bool) {
	for _, o := range offers {
		if o.ID == id {
			return o, true
		}
	}
	return models.FlightOffer{}, false
}

func findHotel(offers []models.HotelOffer, id string) (models.HotelOffer, bool) {
	for _, o := range offers {
		if o.ID == id {
			return o, true
		}
	}
	return models.HotelOffer{}, false
}

func findCab(offers []models.CabOffer, id string) (models.CabOffer, bool) {
	for _, o := range offers {
		if o.ID == id {
			return o, true
		}
	}
	return models.CabOffer{}, false
}

func orDefault(v, fallback string) string {
	if s := strings.TrimSpace(v); s != "" {
		return s
	}
	return fallback
}
