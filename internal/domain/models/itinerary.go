package models

import "time"

type LegView struct {
	OriginCode string    `json:"origin_code"`
	OriginName string    `json:"origin_name"`
	OriginCity string    `json:"origin_city"`
	DestCode   string    `json:"dest_code"`
	DestName   string    `json:"dest_name"`
	DestCity   string    `json:"dest_city"`
	DeptTime   time.Time `json:"dept_time"`
	ArrTime    time.Time `json:"arr_time"`
	Duration   int       `json:"duration"`
	Flight     string    `json:"flight"`
	Aircraft   string    `json:"aircraft"`
}

type LayoverView struct {
	AirportName string `json:"airport_name"`
	AirportCode string `json:"airport_code"`
	Duration    int    `json:"duration"`
}

// FlightBlock is always encoded with both arrays present, even when empty.
type FlightBlock struct {
	Legs     []LegView     `json:"legs"`
	Layovers []LayoverView `json:"layovers"`
}

type AssembledTrip struct {
	Cost         float64     `json:"cost"`
	OnwardFlight FlightBlock `json:"onward_flight"`
	ReturnFlight FlightBlock `json:"return_flight"`
}

type Itineraries struct {
	Options []AssembledTrip `json:"options"`
}
