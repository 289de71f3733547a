package models

import (
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	derr "github.com/ozzus/flypy/internal/domain/errors"
)

var shanghai = time.FixedZone("CST", 8*60*60)

func validLegRecord() LegRecord {
	return LegRecord{
		Origin:   Airport{Code: "PVG", Name: "Shanghai Pudong International Airport", City: "Shanghai"},
		Dest:     Airport{Code: "MEL", Name: "Melbourne Airport", City: "Melbourne"},
		DeptTime: time.Date(2017, 5, 1, 10, 0, 0, 0, shanghai),
		ArrTime:  time.Date(2017, 5, 1, 20, 0, 0, 0, shanghai),
		Flight:   Flight{Carrier: "MU", Number: "737", Name: "China Eastern"},
		Aircraft: Aircraft{Code: "773", Name: "Boeing 777-300"},
		Duration: "600",
	}
}

func TestNewLeg_Accessors(t *testing.T) {
	rec := validLegRecord()
	leg, err := NewLeg(rec)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if leg.Origin() != rec.Origin || leg.Dest() != rec.Dest {
		t.Fatalf("unexpected endpoints: %v -> %v", leg.Origin(), leg.Dest())
	}
	if !leg.DeptTime().Equal(rec.DeptTime) {
		t.Fatalf("unexpected departure: %s", leg.DeptTime())
	}
	if !leg.ArrTime().Equal(rec.ArrTime) {
		t.Fatalf("arrival must be the arrival time, got %s", leg.ArrTime())
	}
	if leg.ArrTime().Equal(leg.DeptTime()) {
		t.Fatal("arrival time must differ from departure time")
	}
	if leg.Flight() != rec.Flight || leg.Aircraft() != rec.Aircraft {
		t.Fatalf("unexpected flight/aircraft: %v %v", leg.Flight(), leg.Aircraft())
	}
	if leg.Duration() != 600 {
		t.Fatalf("unexpected duration: got %d want 600", leg.Duration())
	}
}

func TestNewLeg_String(t *testing.T) {
	leg, err := NewLeg(validLegRecord())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := "MU737 from PVG to MEL. DUR: 600. AC: 773. DEPT: 2017-05-01 10:00:00+08:00. ARR: 2017-05-01 20:00:00+08:00."
	if got := leg.String(); got != want {
		t.Fatalf("unexpected summary:\n got %q\nwant %q", got, want)
	}
}

func TestNewLeg_DurationCoercion(t *testing.T) {
	tests := []struct {
		name    string
		raw     any
		want    int
		wantErr bool
	}{
		{name: "string", raw: "600", want: 600},
		{name: "padded string", raw: " 0095 ", want: 95},
		{name: "zero string", raw: "00", want: 0},
		{name: "json number", raw: float64(540), want: 540},
		{name: "int", raw: 75, want: 75},
		{name: "fractional number", raw: 75.5, wantErr: true},
		{name: "word", raw: "six hundred", wantErr: true},
		{name: "empty", raw: "", wantErr: true},
		{name: "missing", raw: nil, wantErr: true},
		{name: "negative", raw: "-5", wantErr: true},
		{name: "bool", raw: true, wantErr: true},
		{name: "huge number", raw: 1e20, wantErr: true},
		{name: "infinite", raw: math.Inf(1), wantErr: true},
		{name: "negative number", raw: float64(-30), wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := validLegRecord()
			rec.Duration = tc.raw

			leg, err := NewLeg(rec)
			if tc.wantErr {
				if !errors.Is(err, derr.ErrDurationFormat) {
					t.Fatalf("expected duration format error, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if leg.Duration() != tc.want {
				t.Fatalf("unexpected duration: got %d want %d", leg.Duration(), tc.want)
			}
		})
	}
}

func TestNewLeg_HugeDurationReportsRange(t *testing.T) {
	rec := validLegRecord()
	rec.Duration = 1e20

	_, err := NewLeg(rec)
	if !errors.Is(err, derr.ErrDurationFormat) {
		t.Fatalf("expected duration format error, got %v", err)
	}
	if !strings.Contains(err.Error(), "out of range") {
		t.Fatalf("error should report the range, got %q", err.Error())
	}
}

func TestNewLeg_RequiredFields(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*LegRecord)
	}{
		{name: "origin", mutate: func(r *LegRecord) { r.Origin.Code = "" }},
		{name: "destination", mutate: func(r *LegRecord) { r.Dest.Code = " " }},
		{name: "departure", mutate: func(r *LegRecord) { r.DeptTime = time.Time{} }},
		{name: "arrival", mutate: func(r *LegRecord) { r.ArrTime = time.Time{} }},
		{name: "carrier", mutate: func(r *LegRecord) { r.Flight.Carrier = "" }},
		{name: "number", mutate: func(r *LegRecord) { r.Flight.Number = "" }},
		{name: "aircraft", mutate: func(r *LegRecord) { r.Aircraft.Code = "" }},
		{name: "arrives before departure", mutate: func(r *LegRecord) { r.ArrTime = r.DeptTime.Add(-time.Minute) }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := validLegRecord()
			tc.mutate(&rec)

			if _, err := NewLeg(rec); !errors.Is(err, derr.ErrMalformedLeg) {
				t.Fatalf("expected malformed leg error, got %v", err)
			}
		})
	}
}

func TestNewLeg_ArrivalInOtherZone(t *testing.T) {
	rec := validLegRecord()
	// 23:00 in Melbourne (UTC+11) is 20:00 in Shanghai; still after departure.
	rec.ArrTime = time.Date(2017, 5, 1, 23, 0, 0, 0, time.FixedZone("AEDT", 11*60*60))

	if _, err := NewLeg(rec); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
