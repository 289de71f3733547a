package dto

type SearchRequest struct {
	Request TripOptionsRequest `json:"request"`
}

type TripOptionsRequest struct {
	Slice      []SliceInput    `json:"slice"`
	Passengers PassengerCounts `json:"passengers"`
	Solutions  int             `json:"solutions"`
}

type SliceInput struct {
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
	Date        string `json:"date"`
}

type PassengerCounts struct {
	AdultCount int `json:"adultCount"`
}

type SearchResponse struct {
	Trips TripOptions `json:"trips"`
}

type TripOptions struct {
	Data       Data         `json:"data"`
	TripOption []TripOption `json:"tripOption"`
}

type Data struct {
	Airport  []AirportData  `json:"airport"`
	City     []CityData     `json:"city"`
	Aircraft []AircraftData `json:"aircraft"`
	Carrier  []CarrierData  `json:"carrier"`
}

type AirportData struct {
	Code string `json:"code"`
	City string `json:"city"`
	Name string `json:"name"`
}

type CityData struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

type AircraftData struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

type CarrierData struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

type TripOption struct {
	ID        string      `json:"id"`
	SaleTotal string      `json:"saleTotal"`
	Slice     []SliceInfo `json:"slice"`
}

type SliceInfo struct {
	Duration int           `json:"duration"`
	Segment  []SegmentInfo `json:"segment"`
}

type SegmentInfo struct {
	Duration           int        `json:"duration"`
	Flight             FlightInfo `json:"flight"`
	ConnectionDuration *int       `json:"connectionDuration,omitempty"`
	Leg                []LegInfo  `json:"leg"`
}

type FlightInfo struct {
	Carrier string `json:"carrier"`
	Number  string `json:"number"`
}

type LegInfo struct {
	ID                 string `json:"id"`
	Aircraft           string `json:"aircraft"`
	ArrivalTime        string `json:"arrivalTime"`
	DepartureTime      string `json:"departureTime"`
	Origin             string `json:"origin"`
	Destination        string `json:"destination"`
	Duration           any    `json:"duration"`
	ConnectionDuration *int   `json:"connectionDuration,omitempty"`
}
