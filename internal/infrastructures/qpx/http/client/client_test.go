package qpx

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	derr "github.com/ozzus/flypy/internal/domain/errors"
	"github.com/ozzus/flypy/internal/domain/ports"
	"github.com/ozzus/flypy/internal/infrastructures/qpx/dto"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

const oneWayResponse = `{
	"trips": {
		"data": {
			"airport": [
				{"code": "PVG", "city": "SHA", "name": "Shanghai Pudong International"},
				{"code": "MEL", "city": "MEL", "name": "Melbourne Tullamarine"}
			],
			"city": [{"code": "SHA", "name": "Shanghai"}, {"code": "MEL", "name": "Melbourne"}],
			"aircraft": [{"code": "333", "name": "Airbus A330"}],
			"carrier": [{"code": "MU", "name": "China Eastern"}]
		},
		"tripOption": [{
			"saleTotal": "USD812.40",
			"slice": [{
				"duration": 600,
				"segment": [{
					"flight": {"carrier": "MU", "number": "737"},
					"leg": [{
						"aircraft": "333",
						"origin": "PVG",
						"destination": "MEL",
						"departureTime": "2017-05-01T10:00+08:00",
						"arrivalTime": "2017-05-01T23:00+11:00",
						"duration": 600
					}]
				}]
			}]
		}]
	}
}`

func testQuery() ports.SearchQuery {
	return ports.SearchQuery{
		OriginIATA:      "pvg",
		DestinationIATA: "MEL",
		DepartureDate:   time.Date(2017, 5, 1, 0, 0, 0, 0, time.UTC),
		Adults:          2,
	}
}

func TestSearchTrips_DecodesTripOptions(t *testing.T) {
	var gotReq dto.SearchRequest
	var gotKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/qpxExpress/v1/trips/search" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		gotKey = r.URL.Query().Get("key")
		_ = json.NewDecoder(r.Body).Decode(&gotReq)
		_, _ = w.Write([]byte(oneWayResponse))
	}))
	defer srv.Close()

	c := NewClient(zap.NewNop(), srv.URL, "secret", 5, time.Second)
	got, err := c.SearchTrips(context.Background(), testQuery())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotKey != "secret" {
		t.Fatalf("unexpected api key: %q", gotKey)
	}
	if len(gotReq.Request.Slice) != 1 || gotReq.Request.Slice[0].Origin != "PVG" || gotReq.Request.Slice[0].Date != "2017-05-01" {
		t.Fatalf("unexpected slices: %+v", gotReq.Request.Slice)
	}
	if gotReq.Request.Passengers.AdultCount != 2 || gotReq.Request.Solutions != 5 {
		t.Fatalf("unexpected request: %+v", gotReq.Request)
	}

	if len(got) != 1 || got[0].Cost != 812.40 {
		t.Fatalf("unexpected records: %+v", got)
	}
	leg := got[0].Journeys[0].Legs[0]
	if leg.Flight.Name != "China Eastern" || leg.Dest.City != "Melbourne" {
		t.Fatalf("unexpected leg: %+v", leg)
	}
	if leg.Duration != float64(600) {
		t.Fatalf("unexpected raw duration: %#v", leg.Duration)
	}
}

func TestSearchTrips_RoundTripAddsReturnSlice(t *testing.T) {
	var gotReq dto.SearchRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&gotReq)
		_, _ = w.Write([]byte(`{"trips":{"tripOption":[]}}`))
	}))
	defer srv.Close()

	query := testQuery()
	ret := time.Date(2017, 5, 9, 0, 0, 0, 0, time.UTC)
	query.ReturnDate = &ret

	c := NewClient(zap.NewNop(), srv.URL, "secret", 0, time.Second)
	got, err := c.SearchTrips(context.Background(), query)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected no records, got %d", len(got))
	}
	if len(gotReq.Request.Slice) != 2 {
		t.Fatalf("expected 2 slices, got %d", len(gotReq.Request.Slice))
	}
	back := gotReq.Request.Slice[1]
	if back.Origin != "MEL" || back.Destination != "PVG" || back.Date != "2017-05-09" {
		t.Fatalf("unexpected return slice: %+v", back)
	}
	if gotReq.Request.Solutions != 20 {
		t.Fatalf("unexpected default solutions: %d", gotReq.Request.Solutions)
	}
}

func TestSearchTrips_UpstreamUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := NewClient(zap.NewNop(), srv.URL, "secret", 5, time.Second)
	_, err := c.SearchTrips(context.Background(), testQuery())
	if !errors.Is(err, derr.ErrSourceTemporary) {
		t.Fatalf("unexpected error: got %v want %v", err, derr.ErrSourceTemporary)
	}
}

func TestSearchTrips_BadRequestIsNotTemporary(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	c := NewClient(zap.NewNop(), srv.URL, "secret", 5, time.Second)
	_, err := c.SearchTrips(context.Background(), testQuery())
	if err == nil {
		t.Fatal("expected error")
	}
	if errors.Is(err, derr.ErrSourceTemporary) {
		t.Fatalf("400 must not be reported as temporary: %v", err)
	}
}

func TestSearchTrips_EmptyAPIKey(t *testing.T) {
	c := NewClient(zap.NewNop(), "https://www.googleapis.com", "", 5, time.Second)
	_, err := c.SearchTrips(context.Background(), testQuery())
	if err == nil {
		t.Fatal("expected error for empty api key")
	}
	if !strings.Contains(err.Error(), "api key is empty") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestSearchTrips_SkipsUnpricedOption(t *testing.T) {
	body := strings.Replace(oneWayResponse, `"tripOption": [{
			"saleTotal": "USD812.40",`, `"tripOption": [{"saleTotal": "USD", "slice": []}, {
			"saleTotal": "USD812.40",`, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(body))
	}))
	defer srv.Close()

	core, logs := observer.New(zapcore.WarnLevel)
	c := NewClient(zap.New(core), srv.URL, "secret", 5, time.Second)

	records, err := c.SearchTrips(context.Background(), testQuery())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 1 || records[0].Cost != 812.40 {
		t.Fatalf("priced option must survive, got %+v", records)
	}
	if logs.FilterMessage("qpx trip option skipped").Len() != 1 {
		t.Fatalf("expected one skip warning, got %d entries", logs.Len())
	}
}
