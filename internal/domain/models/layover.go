package models

import (
	"fmt"
	"time"

	derr "github.com/ozzus/flypy/internal/domain/errors"
)

// Layover is the wait between two consecutive legs of one journey.
type Layover struct {
	airport  Airport
	start    time.Time
	end      time.Time
	duration int
}

// NewLayover joins two consecutive legs. A nil connMinutes derives the
// connection time from the legs; a supplied value must agree with them.
func NewLayover(arriving, departing Leg, connMinutes *int) (Layover, error) {
	if arriving.Dest().Code != departing.Origin().Code {
		return Layover{}, fmt.Errorf("%w: arrived at %s, departs from %s",
			derr.ErrLayoverMismatch, arriving.Dest().Code, departing.Origin().Code)
	}

	gap := departing.DeptTime().Sub(arriving.ArrTime())
	if gap < 0 {
		return Layover{}, fmt.Errorf("%w: %s%s departs %s before %s%s arrives",
			derr.ErrLayoverMismatch,
			departing.Flight().Carrier, departing.Flight().Number, arriving.Dest().Code,
			arriving.Flight().Carrier, arriving.Flight().Number)
	}

	computed := int(gap / time.Minute)
	if connMinutes != nil && *connMinutes != computed {
		return Layover{}, fmt.Errorf("%w: supplied %d minutes, legs give %d",
			derr.ErrConnectionTime, *connMinutes, computed)
	}

	return Layover{
		airport:  arriving.Dest(),
		start:    arriving.ArrTime(),
		end:      departing.DeptTime(),
		duration: computed,
	}, nil
}

func (l Layover) Airport() Airport { return l.airport }
func (l Layover) Start() time.Time { return l.start }
func (l Layover) End() time.Time { return l.end }

// Duration returns the connection time in minutes.
func (l Layover) Duration() int { return l.duration }

func (l Layover) String() string {
	return fmt.Sprintf("[Layover] DUR: %d minutes at %s. START: %s. END: %s.",
		l.duration,
		l.airport.Name,
		l.start.Format(summaryTimeLayout),
		l.end.Format(summaryTimeLayout),
	)
}
