package booking

import (
	"github.com/Agmahima/TravelEase/internal/models"
	"github.com/Agmahima/TravelEase/internal/pricing"
)

// Wizard is the checkout state. It is a value: every method returns a new
// Wizard and leaves the receiver untouched.
type Wizard struct {
	Current   models.BookingStep      `json:"current"`
	Selection models.BookingSelection `json:"selection"`
	Fences    Fences                  `json:"fences"`
}

// NewWizard starts at confirmation with every category wanted.
func NewWizard() Wizard {
	return Wizard{
		Current: models.StepConfirmation,
		Selection: models.BookingSelection{
			CategoriesWanted: models.CategoriesWanted{
				Transportation: true,
				Hotels:         true,
				Cabs:           true,
			},
		},
	}
}

func (w Wizard) Steps() []models.BookingStep {
	return ComputeSteps(w.Selection.CategoriesWanted)
}

func (w Wizard) Index() int {
	return CurrentIndex(w.Steps(), w.Current)
}

func (w Wizard) CanAdvance() bool {
	return CanAdvance(w.Current, w.Selection)
}

// SetCategory toggles a category. Selections are kept so that re-enabling a
// category restores them; unwanted categories never count toward the total.
func (w Wizard) SetCategory(c models.Category, wanted bool) Wizard {
	w.Selection.CategoriesWanted = w.Selection.CategoriesWanted.With(c, wanted)
	w.Current = Reconcile(w.Steps(), w.Current)
	return w
}

func (w Wizard) SetCategories(wanted models.CategoriesWanted) Wizard {
	w.Selection.CategoriesWanted = wanted
	w.Current = Reconcile(w.Steps(), w.Current)
	return w
}

// Next moves forward one step. It fails with models.ErrStepIncomplete when
// the current step is not satisfied and is a no-op at payment.
func (w Wizard) Next() (Wizard, error) {
	steps := w.Steps()
	w.Current = Reconcile(steps, w.Current)
	if !CanAdvance(w.Current, w.Selection) {
		return w, models.ErrStepIncomplete
	}
	w.Current = Advance(steps, w.Current, w.Selection)
	return w, nil
}

// Back moves one step back. exit is true when already at the first step.
func (w Wizard) Back() (Wizard, bool) {
	steps := w.Steps()
	w.Current = Reconcile(steps, w.Current)
	prev, exit := Retreat(steps, w.Current)
	w.Current = prev
	return w, exit
}

func (w Wizard) SelectFlight(offer models.FlightOffer) (Wizard, error) {
	if _, ok := pricing.UnitPrice(offer.Price); !ok {
		return w, models.ErrUnpriceableOffer
	}
	w.Selection.Selected.Flight = &offer
	return w, nil
}

func (w Wizard) SelectHotel(offer models.HotelOffer, durationDays int) (Wizard, error) {
	hotel, err := pricing.FreezeHotel(offer, durationDays)
	if err != nil {
		return w, err
	}
	w.Selection.Selected.Hotel = &hotel
	return w, nil
}

func (w Wizard) SelectCab(offer models.CabOffer, durationDays int) (Wizard, error) {
	cab, err := pricing.FreezeCab(offer, durationDays)
	if err != nil {
		return w, err
	}
	w.Selection.Selected.Cab = &cab
	return w, nil
}

func (w Wizard) ClearSelection(c models.Category) Wizard {
	switch c {
	case models.CategoryTransportation:
		w.Selection.Selected.Flight = nil
	case models.CategoryHotels:
		w.Selection.Selected.Hotel = nil
	case models.CategoryCabs:
		w.Selection.Selected.Cab = nil
	}
	return w
}

// Reprice refreezes the hotel and cab totals against a new trip length.
func (w Wizard) Reprice(durationDays int) (Wizard, error) {
	if h := w.Selection.Selected.Hotel; h != nil {
		hotel, err := pricing.FreezeHotel(h.Offer, durationDays)
		if err != nil {
			return w, err
		}
		w.Selection.Selected.Hotel = &hotel
	}
	if c := w.Selection.Selected.Cab; c != nil {
		cab, err := pricing.FreezeCab(c.Offer, durationDays)
		if err != nil {
			return w, err
		}
		w.Selection.Selected.Cab = &cab
	}
	return w, nil
}
