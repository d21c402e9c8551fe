package models

type SearchMetadata struct {
	TotalResults int    `json:"total_results"`
	Source       string `json:"source"`
	Attempts     int    `json:"attempts"`
	SearchTimeMs int64  `json:"search_time_ms"`
	CacheHit     bool   `json:"cache_hit"`
}

type FlightSearchResponse struct {
	Metadata SearchMetadata `json:"metadata"`
	Flights  []FlightOffer  `json:"flights"`
}

type HotelSearchResponse struct {
	Metadata SearchMetadata `json:"metadata"`
	Hotels   []HotelOffer   `json:"hotels"`
}

type CabSearchResponse struct {
	Metadata SearchMetadata `json:"metadata"`
	Cabs     []CabOffer     `json:"cabs"`
}

// OffersResponse is returned for a fenced category fetch. Skipped is set when
// the category was already loaded and no refresh was forced.
type OffersResponse struct {
	Category   Category       `json:"category"`
	Generation uint64         `json:"generation"`
	Skipped    bool           `json:"skipped"`
	Stale      bool           `json:"stale"`
	Metadata   SearchMetadata `json:"metadata"`
	Flights    []FlightOffer  `json:"flights,omitempty"`
	Hotels     []HotelOffer   `json:"hotels,omitempty"`
	Cabs       []CabOffer     `json:"cabs,omitempty"`
}

type Quote struct {
	Flight          float64  `json:"flight"`
	Hotel           float64  `json:"hotel"`
	Cab             float64  `json:"cab"`
	Total           float64  `json:"total"`
	Currency        string   `json:"currency"`
	Symbol          string   `json:"symbol"`
	FlightFormatted string   `json:"flightFormatted"`
	HotelFormatted  string   `json:"hotelFormatted"`
	CabFormatted    string   `json:"cabFormatted"`
	TotalFormatted  string   `json:"totalFormatted"`
	Travelers       int      `json:"travelers"`
	DurationDays    int      `json:"durationDays"`
	Warnings        []string `json:"warnings,omitempty"`
}

type SubmitResult struct {
	TripID           string   `json:"tripId"`
	Status           string   `json:"status"`
	Quote            Quote    `json:"quote"`
	FlightBooked     bool     `json:"flightBooked"`
	TransportBooked  bool     `json:"transportBooked"`
	FailedOperations []string `json:"failedOperations,omitempty"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}
