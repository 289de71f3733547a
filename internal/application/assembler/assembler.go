// Package assembler turns the trip options returned by a flight search into
// onward/return blocks of legs and layovers ready to be serialised.
//
// Assemble is a pure function of its input: no I/O, no shared state. It is
// safe to call from any number of goroutines as long as each call owns its
// input slice.
package assembler

import (
	"errors"
	"fmt"

	derr "github.com/ozzus/flypy/internal/domain/errors"
	"github.com/ozzus/flypy/internal/domain/models"
)

// Rejection records a trip option that was dropped because its data violated
// a leg or layover invariant. Index is the position in the input.
type Rejection struct {
	Index int
	Err   error
}

// Reason is a short label for the kind of integrity violation.
func (r Rejection) Reason() string {
	switch {
	case errors.Is(r.Err, derr.ErrMalformedLeg):
		return "malformed_leg"
	case errors.Is(r.Err, derr.ErrLayoverMismatch):
		return "layover_mismatch"
	case errors.Is(r.Err, derr.ErrDurationFormat):
		return "duration_format"
	case errors.Is(r.Err, derr.ErrEmptyJourney):
		return "empty_journey"
	case errors.Is(r.Err, derr.ErrConnectionTime):
		return "connection_time"
	default:
		return "unknown"
	}
}

type Result struct {
	Itineraries models.Itineraries
	Rejected    []Rejection
	// Ignored counts journeys beyond the return journey that were discarded.
	Ignored int
}

// Outcome is one record after construction. Err is set when the record was
// rejected, and Option is then the zero value.
type Outcome struct {
	Index  int
	Option models.TripOption
	Err    error
}

// Rejected reports whether the record failed validation.
func (o Outcome) Rejected() bool { return o.Err != nil }

// Build checks the input contract for every record and then constructs each
// trip option in input order. A record without journeys fails the whole call
// before any option is built.
func Build(records []models.TripOptionRecord) ([]Outcome, error) {
	for i, rec := range records {
		if err := models.CheckTripOptionRecord(rec); err != nil {
			return nil, fmt.Errorf("trip option %d: %w", i, err)
		}
	}

	out := make([]Outcome, 0, len(records))
	for i, rec := range records {
		opt, err := models.NewTripOption(rec)
		out = append(out, Outcome{Index: i, Option: opt, Err: err})
	}

	return out, nil
}

// Assemble builds one AssembledTrip per record, preserving input order.
// Records that fail validation are left out and reported in Result.Rejected.
// A record without journeys breaks the input contract and fails the whole
// call.
func Assemble(records []models.TripOptionRecord) (Result, error) {
	outcomes, err := Build(records)
	if err != nil {
		return Result{}, err
	}

	res := Result{
		Itineraries: models.Itineraries{Options: make([]models.AssembledTrip, 0, len(records))},
	}

	for _, o := range outcomes {
		if o.Rejected() {
			res.Rejected = append(res.Rejected, Rejection{Index: o.Index, Err: o.Err})
			continue
		}

		res.Ignored += o.Option.Ignored()
		res.Itineraries.Options = append(res.Itineraries.Options, assembleTrip(o.Option))
	}

	return res, nil
}

func assembleTrip(opt models.TripOption) models.AssembledTrip {
	trip := models.AssembledTrip{
		Cost:         opt.Cost(),
		OnwardFlight: flattenJourney(opt.Onward()),
		ReturnFlight: emptyBlock(),
	}

	if ret, ok := opt.Return(); ok {
		trip.ReturnFlight = flattenJourney(ret)
	}

	return trip
}
