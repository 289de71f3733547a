package models

import (
	"fmt"

	derr "github.com/ozzus/flypy/internal/domain/errors"
)

// TripOption is one priced alternative. Journeys are classified once, at
// construction: the first is onward, the second (when present) is return, and
// anything further is counted in Ignored and otherwise discarded.
type TripOption struct {
	cost    float64
	onward  Journey
	ret     *Journey
	ignored int
}

// CheckTripOptionRecord reports whether rec satisfies the input contract. A
// failure here is a caller error, not a data-quality issue of one option.
func CheckTripOptionRecord(rec TripOptionRecord) error {
	if len(rec.Journeys) == 0 {
		return fmt.Errorf("%w: trip option has no journeys", derr.ErrInvalidInput)
	}
	return nil
}

func NewTripOption(rec TripOptionRecord) (TripOption, error) {
	if err := CheckTripOptionRecord(rec); err != nil {
		return TripOption{}, err
	}

	onward, err := NewJourney(rec.Journeys[0])
	if err != nil {
		return TripOption{}, fmt.Errorf("onward journey: %w", err)
	}

	opt := TripOption{cost: rec.Cost, onward: onward}

	if len(rec.Journeys) > 1 {
		ret, err := NewJourney(rec.Journeys[1])
		if err != nil {
			return TripOption{}, fmt.Errorf("return journey: %w", err)
		}
		opt.ret = &ret
		opt.ignored = len(rec.Journeys) - 2
	}

	return opt, nil
}

func (t TripOption) Cost() float64 { return t.cost }
func (t TripOption) Onward() Journey { return t.onward }
func (t TripOption) IsRoundTrip() bool { return t.ret != nil }

// Return returns the inbound journey, if the option has one.
func (t TripOption) Return() (Journey, bool) {
	if t.ret == nil {
		return Journey{}, false
	}
	return *t.ret, true
}

// Ignored is the number of journeys past the return journey that were dropped.
func (t TripOption) Ignored() int { return t.ignored }
