package models

import "time"

type Airport struct {
	Code string `json:"code"`
	Name string `json:"name"`
	City string `json:"city"`
}

type Flight struct {
	Carrier string `json:"carrier"`
	Number  string `json:"number"`
	Name    string `json:"name"`
}

type Aircraft struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// LegRecord is a leg as delivered by the flight-search provider, before
// validation. Duration is kept loosely typed because providers send it either
// as a JSON number or as a string.
type LegRecord struct {
	Origin             Airport   `json:"origin"`
	Dest               Airport   `json:"dest"`
	DeptTime           time.Time `json:"dept_time"`
	ArrTime            time.Time `json:"arr_time"`
	Flight             Flight    `json:"flight"`
	Aircraft           Aircraft  `json:"aircraft"`
	Duration           any       `json:"duration"`
	ConnectionDuration *int      `json:"connection_duration,omitempty"`
}

type JourneyRecord struct {
	Legs []LegRecord `json:"legs"`
}

type TripOptionRecord struct {
	Cost     float64         `json:"cost"`
	Journeys []JourneyRecord `json:"journeys"`
}
