package models

import (
	"fmt"
	"math"
	"strings"
	"time"

	derr "github.com/ozzus/flypy/internal/domain/errors"
	"github.com/spf13/cast"
)

const summaryTimeLayout = "2006-01-02 15:04:05-07:00"

// Leg is one non-stop flight segment. It is immutable once built by NewLeg.
type Leg struct {
	origin   Airport
	dest     Airport
	deptTime time.Time
	arrTime  time.Time
	flight   Flight
	aircraft Aircraft
	duration int
}

func NewLeg(rec LegRecord) (Leg, error) {
	switch {
	case strings.TrimSpace(rec.Origin.Code) == "":
		return Leg{}, fmt.Errorf("%w: origin is required", derr.ErrMalformedLeg)
	case strings.TrimSpace(rec.Dest.Code) == "":
		return Leg{}, fmt.Errorf("%w: destination is required", derr.ErrMalformedLeg)
	case rec.DeptTime.IsZero():
		return Leg{}, fmt.Errorf("%w: departure time is required", derr.ErrMalformedLeg)
	case rec.ArrTime.IsZero():
		return Leg{}, fmt.Errorf("%w: arrival time is required", derr.ErrMalformedLeg)
	case strings.TrimSpace(rec.Flight.Carrier) == "" || strings.TrimSpace(rec.Flight.Number) == "":
		return Leg{}, fmt.Errorf("%w: flight carrier and number are required", derr.ErrMalformedLeg)
	case strings.TrimSpace(rec.Aircraft.Code) == "":
		return Leg{}, fmt.Errorf("%w: aircraft is required", derr.ErrMalformedLeg)
	}

	if rec.DeptTime.After(rec.ArrTime) {
		return Leg{}, fmt.Errorf("%w: departure %s is after arrival %s",
			derr.ErrMalformedLeg, rec.DeptTime.Format(time.RFC3339), rec.ArrTime.Format(time.RFC3339))
	}

	duration, err := parseDuration(rec.Duration)
	if err != nil {
		return Leg{}, err
	}

	return Leg{
		origin:   rec.Origin,
		dest:     rec.Dest,
		deptTime: rec.DeptTime,
		arrTime:  rec.ArrTime,
		flight:   rec.Flight,
		aircraft: rec.Aircraft,
		duration: duration,
	}, nil
}

func (l Leg) Origin() Airport { return l.origin }
func (l Leg) Dest() Airport { return l.dest }
func (l Leg) DeptTime() time.Time { return l.deptTime }
func (l Leg) ArrTime() time.Time { return l.arrTime }
func (l Leg) Flight() Flight { return l.flight }
func (l Leg) Aircraft() Aircraft { return l.aircraft }

// Duration returns the scheduled block time in minutes.
func (l Leg) Duration() int { return l.duration }

func (l Leg) String() string {
	return fmt.Sprintf("%s%s from %s to %s. DUR: %d. AC: %s. DEPT: %s. ARR: %s.",
		l.flight.Carrier,
		l.flight.Number,
		l.origin.Code,
		l.dest.Code,
		l.duration,
		l.aircraft.Code,
		l.deptTime.Format(summaryTimeLayout),
		l.arrTime.Format(summaryTimeLayout),
	)
}

func parseDuration(raw any) (int, error) {
	switch v := raw.(type) {
	case nil:
		return 0, fmt.Errorf("%w: duration is missing", derr.ErrDurationFormat)
	case string:
		// cast parses strings with base prefix detection, so "0600" would be octal.
		trimmed := strings.TrimLeft(strings.TrimSpace(v), "0")
		if trimmed == "" && strings.TrimSpace(v) != "" {
			trimmed = "0"
		}
		raw = trimmed
	case float64:
		if v != math.Trunc(v) {
			return 0, fmt.Errorf("%w: %v", derr.ErrDurationFormat, v)
		}
		if v < 0 {
			return 0, fmt.Errorf("%w: negative duration %v", derr.ErrDurationFormat, v)
		}
		// float64(math.MaxInt) rounds up to 2^63, the first value that overflows.
		if v >= float64(math.MaxInt) {
			return 0, fmt.Errorf("%w: duration %v out of range", derr.ErrDurationFormat, v)
		}
	case bool:
		return 0, fmt.Errorf("%w: %v", derr.ErrDurationFormat, v)
	}

	minutes, err := cast.ToIntE(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", derr.ErrDurationFormat, err)
	}
	if minutes < 0 {
		return 0, fmt.Errorf("%w: negative duration %d", derr.ErrDurationFormat, minutes)
	}

	return minutes, nil
}
