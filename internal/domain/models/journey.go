package models

import (
	"fmt"

	derr "github.com/ozzus/flypy/internal/domain/errors"
)

// Journey is one direction of travel: legs in flown order and the layovers
// between them. Layovers()[i] sits between Legs()[i] and Legs()[i+1].
type Journey struct {
	legs     []Leg
	layovers []Layover
}

func NewJourney(rec JourneyRecord) (Journey, error) {
	if len(rec.Legs) == 0 {
		return Journey{}, derr.ErrEmptyJourney
	}

	legs := make([]Leg, 0, len(rec.Legs))
	for i, legRec := range rec.Legs {
		leg, err := NewLeg(legRec)
		if err != nil {
			return Journey{}, fmt.Errorf("leg %d: %w", i, err)
		}
		legs = append(legs, leg)
	}

	layovers := make([]Layover, 0, len(legs)-1)
	for i := 0; i+1 < len(legs); i++ {
		layover, err := NewLayover(legs[i], legs[i+1], rec.Legs[i].ConnectionDuration)
		if err != nil {
			return Journey{}, fmt.Errorf("layover %d: %w", i, err)
		}
		layovers = append(layovers, layover)
	}

	return Journey{legs: legs, layovers: layovers}, nil
}

// Legs returns a copy so callers cannot reorder the journey.
func (j Journey) Legs() []Leg {
	out := make([]Leg, len(j.legs))
	copy(out, j.legs)
	return out
}

func (j Journey) Layovers() []Layover {
	out := make([]Layover, len(j.layovers))
	copy(out, j.layovers)
	return out
}

func (j Journey) Origin() Airport {
	if len(j.legs) == 0 {
		return Airport{}
	}
	return j.legs[0].Origin()
}

func (j Journey) Dest() Airport {
	if len(j.legs) == 0 {
		return Airport{}
	}
	return j.legs[len(j.legs)-1].Dest()
}
