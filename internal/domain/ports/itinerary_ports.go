package ports

import (
	"context"
	"time"

	"github.com/ozzus/flypy/internal/domain/models"
)

type SearchQuery struct {
	OriginIATA      string
	DestinationIATA string
	DepartureDate   time.Time
	ReturnDate      *time.Time
	Adults          int
}

func (q SearchQuery) IsRoundTrip() bool {
	return q.ReturnDate != nil
}

// TripSource is the upstream flight-search provider.
type TripSource interface {
	SearchTrips(ctx context.Context, query SearchQuery) ([]models.TripOptionRecord, error)
}

type AssemblyRecorder interface {
	ObserveAssembly(assembled int, rejectReasons []string, elapsed time.Duration)
}

type AirportEntry struct {
	Name     string `json:"name"`
	IATACode string `json:"iata_code"`
	Country  string `json:"country"`
}

type AirportCatalog interface {
	List() ([]AirportEntry, error)
}
