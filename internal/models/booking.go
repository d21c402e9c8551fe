package models

type BookingStep string

const (
	StepConfirmation   BookingStep = "confirmation"
	StepTransportation BookingStep = "transportation"
	StepHotels         BookingStep = "hotels"
	StepCabs           BookingStep = "cabs"
	StepPayment        BookingStep = "payment"
)

// Category is a bookable offer kind. Each one owns exactly one wizard step.
type Category string

const (
	CategoryTransportation Category = "transportation"
	CategoryHotels         Category = "hotels"
	CategoryCabs           Category = "cabs"
)

// Categories lists every category in wizard order.
var Categories = []Category{CategoryTransportation, CategoryHotels, CategoryCabs}

func ParseCategory(s string) (Category, bool) {
	for _, c := range Categories {
		if string(c) == s {
			return c, true
		}
	}
	return "", false
}

func (c Category) Step() BookingStep {
	return BookingStep(c)
}

type CategoriesWanted struct {
	Transportation bool `json:"transportation"`
	Hotels         bool `json:"hotels"`
	Cabs           bool `json:"cabs"`
}

func (w CategoriesWanted) Any() bool {
	return w.Transportation || w.Hotels || w.Cabs
}

func (w CategoriesWanted) Wants(c Category) bool {
	switch c {
	case CategoryTransportation:
		return w.Transportation
	case CategoryHotels:
		return w.Hotels
	case CategoryCabs:
		return w.Cabs
	}
	return false
}

func (w CategoriesWanted) With(c Category, wanted bool) CategoriesWanted {
	switch c {
	case CategoryTransportation:
		w.Transportation = wanted
	case CategoryHotels:
		w.Hotels = wanted
	case CategoryCabs:
		w.Cabs = wanted
	}
	return w
}

// SelectedHotel freezes the stay total at selection time.
type SelectedHotel struct {
	Offer      HotelOffer `json:"offer"`
	Nights     int        `json:"nights"`
	TotalPrice float64    `json:"totalPrice"`
}

// SelectedCab freezes the hire total at selection time.
type SelectedCab struct {
	Offer      CabOffer `json:"offer"`
	Days       int      `json:"days"`
	TotalPrice float64  `json:"totalPrice"`
}

type Selected struct {
	Flight *FlightOffer   `json:"flight,omitempty"`
	Hotel  *SelectedHotel `json:"hotel,omitempty"`
	Cab    *SelectedCab   `json:"cab,omitempty"`
}

func (s Selected) Has(c Category) bool {
	switch c {
	case CategoryTransportation:
		return s.Flight != nil
	case CategoryHotels:
		return s.Hotel != nil
	case CategoryCabs:
		return s.Cab != nil
	}
	return false
}

type BookingSelection struct {
	CategoriesWanted CategoriesWanted `json:"categoriesWanted"`
	Selected         Selected         `json:"selected"`
}

// BookingSummary is attached to the trip record on final submission.
type BookingSummary struct {
	FlightOfferID string  `json:"flightOfferId,omitempty"`
	HotelID       string  `json:"hotelId,omitempty"`
	HotelName     string  `json:"hotelName,omitempty"`
	HotelNights   int     `json:"hotelNights,omitempty"`
	CabID         string  `json:"cabId,omitempty"`
	CabDays       int     `json:"cabDays,omitempty"`
	Travelers     int     `json:"travelers"`
	TotalPrice    float64 `json:"totalPrice"`
	Currency      string  `json:"currency"`
}
