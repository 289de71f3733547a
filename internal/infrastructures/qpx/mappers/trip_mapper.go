package mappers

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/ozzus/flypy/internal/domain/models"
	"github.com/ozzus/flypy/internal/infrastructures/qpx/dto"
	"github.com/spf13/cast"
)

type lookup struct {
	airports map[string]dto.AirportData
	cities   map[string]string
	aircraft map[string]string
	carriers map[string]string
}

func newLookup(data dto.Data) lookup {
	l := lookup{
		airports: make(map[string]dto.AirportData, len(data.Airport)),
		cities:   make(map[string]string, len(data.City)),
		aircraft: make(map[string]string, len(data.Aircraft)),
		carriers: make(map[string]string, len(data.Carrier)),
	}
	for _, a := range data.Airport {
		l.airports[a.Code] = a
	}
	for _, c := range data.City {
		l.cities[c.Code] = c.Name
	}
	for _, a := range data.Aircraft {
		l.aircraft[a.Code] = a.Name
	}
	for _, c := range data.Carrier {
		l.carriers[c.Code] = c.Name
	}
	return l
}

func (l lookup) airport(code string) models.Airport {
	a, ok := l.airports[code]
	if !ok {
		return models.Airport{Code: code}
	}

	city := l.cities[a.City]
	if city == "" {
		city = a.City
	}
	return models.Airport{Code: code, Name: a.Name, City: city}
}

// Skipped is a trip option left out of the mapping because its own fields
// could not be read. Index is its position in the upstream response.
type Skipped struct {
	Index int
	Err   error
}

// ToTripOptionRecords maps QPX trip options to domain records. Leg-level data
// is passed through as-is, so gaps such as an unparseable timestamp surface as
// validation errors during assembly instead of being hidden here. An option
// whose price cannot be read is skipped and reported; the rest still map.
func ToTripOptionRecords(resp dto.SearchResponse) ([]models.TripOptionRecord, []Skipped) {
	names := newLookup(resp.Trips.Data)
	records := make([]models.TripOptionRecord, 0, len(resp.Trips.TripOption))
	var skipped []Skipped

	for i, opt := range resp.Trips.TripOption {
		cost, err := ParseSaleTotal(opt.SaleTotal)
		if err != nil {
			skipped = append(skipped, Skipped{Index: i, Err: fmt.Errorf("trip option %d: %w", i, err)})
			continue
		}

		rec := models.TripOptionRecord{
			Cost:     cost,
			Journeys: make([]models.JourneyRecord, 0, len(opt.Slice)),
		}
		for _, slice := range opt.Slice {
			rec.Journeys = append(rec.Journeys, names.journey(slice))
		}
		// A slice-less option is bad upstream data, not a broken request.
		// An empty journey lets assembly drop just this option.
		if len(rec.Journeys) == 0 {
			rec.Journeys = append(rec.Journeys, models.JourneyRecord{})
		}
		records = append(records, rec)
	}

	return records, skipped
}

func (l lookup) journey(slice dto.SliceInfo) models.JourneyRecord {
	journey := models.JourneyRecord{Legs: make([]models.LegRecord, 0, len(slice.Segment))}

	for _, seg := range slice.Segment {
		flight := models.Flight{
			Carrier: seg.Flight.Carrier,
			Number:  seg.Flight.Number,
			Name:    l.carriers[seg.Flight.Carrier],
		}

		for j, leg := range seg.Leg {
			conn := leg.ConnectionDuration
			if conn == nil && j == len(seg.Leg)-1 {
				conn = seg.ConnectionDuration
			}

			journey.Legs = append(journey.Legs, models.LegRecord{
				Origin:             l.airport(leg.Origin),
				Dest:               l.airport(leg.Destination),
				DeptTime:           parseTime(leg.DepartureTime),
				ArrTime:            parseTime(leg.ArrivalTime),
				Flight:             flight,
				Aircraft:           models.Aircraft{Code: leg.Aircraft, Name: l.aircraft[leg.Aircraft]},
				Duration:           leg.Duration,
				ConnectionDuration: conn,
			})
		}
	}

	return journey
}

// ParseSaleTotal reads amounts like "USD812.40". The currency prefix is dropped.
func ParseSaleTotal(value string) (float64, error) {
	amount := strings.TrimLeftFunc(strings.TrimSpace(value), unicode.IsLetter)
	if amount == "" {
		return 0, fmt.Errorf("parse sale total %q: empty amount", value)
	}

	cost, err := cast.ToFloat64E(amount)
	if err != nil {
		return 0, fmt.Errorf("parse sale total %q: %w", value, err)
	}
	return cost, nil
}

func parseTime(value string) time.Time {
	if strings.TrimSpace(value) == "" {
		return time.Time{}
	}

	layouts := []string{
		"2006-01-02T15:04-07:00",
		time.RFC3339,
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t
		}
	}

	return time.Time{}
}
