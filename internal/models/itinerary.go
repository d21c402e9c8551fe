package models

type Activity struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Time        string `json:"time,omitempty"`
	Location    string `json:"location,omitempty"`
	Cost        string `json:"cost,omitempty"`
	Category    string `json:"category"`
	Booked      bool   `json:"booked,omitempty"`
}

type ItineraryDay struct {
	Day        int        `json:"day"`
	Date       string     `json:"date"`
	Activities []Activity `json:"activities"`
}

type Itinerary struct {
	Destination           string              `json:"destination"`
	Destinations          []DestinationStop   `json:"destinations,omitempty"`
	TransportationOptions []TransportationLeg `json:"transportationOptions,omitempty"`
	Days                  []ItineraryDay      `json:"days"`
}

func (it Itinerary) Clone() Itinerary {
	out := it
	out.Destinations = append([]DestinationStop(nil), it.Destinations...)
	out.TransportationOptions = append([]TransportationLeg(nil), it.TransportationOptions...)
	out.Days = make([]ItineraryDay, len(it.Days))
	for i, d := range it.Days {
		d.Activities = append([]Activity(nil), d.Activities...)
		out.Days[i] = d
	}
	return out
}

type GeneratePreferences struct {
	Interests   []string `json:"interests"`
	Activities  []string `json:"activities"`
	Budget      Budget   `json:"budget"`
	TravelStyle string   `json:"travelStyle"`
	Notes       string   `json:"notes,omitempty"`
}

// GenerateRequest is the body sent to an itinerary generator.
type GenerateRequest struct {
	Destination           string              `json:"destination"`
	StartDate             string              `json:"startDate"`
	EndDate               string              `json:"endDate"`
	Destinations          []DestinationStop   `json:"destinations"`
	TransportationOptions []TransportationLeg `json:"transportationOptions"`
	Adults                int                 `json:"adults"`
	Children              int                 `json:"children"`
	Preferences           GeneratePreferences `json:"preferences"`
}
