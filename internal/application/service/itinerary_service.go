package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ozzus/flypy/internal/application/assembler"
	derr "github.com/ozzus/flypy/internal/domain/errors"
	"github.com/ozzus/flypy/internal/domain/models"
	"github.com/ozzus/flypy/internal/domain/ports"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

type SearchResult struct {
	Itineraries models.Itineraries
	Dropped     int
}

type ItineraryService struct {
	log      *zap.Logger
	source   ports.TripSource
	recorder ports.AssemblyRecorder
}

func NewItineraryService(log *zap.Logger, source ports.TripSource, recorder ports.AssemblyRecorder) *ItineraryService {
	if log == nil {
		log = zap.NewNop()
	}

	return &ItineraryService{
		log:      log,
		source:   source,
		recorder: recorder,
	}
}

func (s *ItineraryService) Search(ctx context.Context, query ports.SearchQuery) (SearchResult, error) {
	const op = "service.Search"
	tracer := otel.Tracer("itinerary-api/service")
	ctx, span := tracer.Start(ctx, op)
	defer span.End()

	query.OriginIATA = normalizeIATA(query.OriginIATA)
	query.DestinationIATA = normalizeIATA(query.DestinationIATA)
	span.SetAttributes(
		attribute.String("itinerary.origin_iata", query.OriginIATA),
		attribute.String("itinerary.destination_iata", query.DestinationIATA),
		attribute.Bool("itinerary.round_trip", query.IsRoundTrip()),
	)

	logger := s.log.With(
		zap.String("op", op),
		zap.String("origin_iata", query.OriginIATA),
		zap.String("destination_iata", query.DestinationIATA),
	)

	if err := validateQuery(query); err != nil {
		logger.Warn("invalid search query", zap.Error(err))
		span.SetStatus(otelcodes.Error, "invalid query")
		return SearchResult{}, err
	}

	if s.source == nil {
		span.SetStatus(otelcodes.Error, "no trip source")
		return SearchResult{}, fmt.Errorf("%s: trip source is not configured", op)
	}

	records, err := s.source.SearchTrips(ctx, query)
	if err != nil {
		logger.Warn("trip source failed", zap.Error(err))
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, "trip source failed")
		return SearchResult{}, err
	}
	span.SetAttributes(attribute.Int("itinerary.trip_options_received", len(records)))

	result, err := s.assemble(ctx, logger, records)
	if err != nil {
		// Records came from upstream, so a contract violation is theirs, not the caller's.
		if errors.Is(err, derr.ErrInvalidInput) {
			err = fmt.Errorf("%w: %v", derr.ErrSourceInvalid, err)
		}
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, "assembly failed")
		return SearchResult{}, err
	}

	span.SetStatus(otelcodes.Ok, "ok")
	return result, nil
}

// AssembleRecords runs the assembly engine over trip options the caller
// already holds.
func (s *ItineraryService) AssembleRecords(ctx context.Context, records []models.TripOptionRecord) (SearchResult, error) {
	const op = "service.AssembleRecords"
	tracer := otel.Tracer("itinerary-api/service")
	ctx, span := tracer.Start(ctx, op)
	defer span.End()

	result, err := s.assemble(ctx, s.log.With(zap.String("op", op)), records)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, "assembly failed")
		return SearchResult{}, err
	}

	span.SetStatus(otelcodes.Ok, "ok")
	return result, nil
}

func (s *ItineraryService) assemble(ctx context.Context, logger *zap.Logger, records []models.TripOptionRecord) (SearchResult, error) {
	span := trace.SpanFromContext(ctx)
	start := time.Now()

	res, err := assembler.Assemble(records)
	if err != nil {
		logger.Warn("trip options rejected as a whole", zap.Error(err))
		return SearchResult{}, err
	}
	elapsed := time.Since(start)

	reasons := make([]string, 0, len(res.Rejected))
	for _, rej := range res.Rejected {
		reasons = append(reasons, rej.Reason())
		logger.Warn("trip option dropped",
			zap.Int("option_index", rej.Index),
			zap.String("reason", rej.Reason()),
			zap.Error(rej.Err),
		)
		span.AddEvent(
			"itinerary.option.rejected",
			trace.WithAttributes(
				attribute.Int("itinerary.option_index", rej.Index),
				attribute.String("itinerary.reject_reason", rej.Reason()),
			),
		)
	}
	if res.Ignored > 0 {
		logger.Info("journeys beyond return ignored", zap.Int("ignored_journeys", res.Ignored))
	}

	if s.recorder != nil {
		s.recorder.ObserveAssembly(len(res.Itineraries.Options), reasons, elapsed)
	}

	span.SetAttributes(
		attribute.Int("itinerary.options_count", len(res.Itineraries.Options)),
		attribute.Int("itinerary.dropped_count", len(res.Rejected)),
	)
	logger.Info("itineraries assembled",
		zap.Int("options_count", len(res.Itineraries.Options)),
		zap.Int("dropped_count", len(res.Rejected)),
	)

	return SearchResult{
		Itineraries: res.Itineraries,
		Dropped:     len(res.Rejected),
	}, nil
}

func validateQuery(q ports.SearchQuery) error {
	if !IsValidIATA(q.OriginIATA) {
		return fmt.Errorf("%w: origin must be 3 latin letters", derr.ErrInvalidQuery)
	}
	if !IsValidIATA(q.DestinationIATA) {
		return fmt.Errorf("%w: destination must be 3 latin letters", derr.ErrInvalidQuery)
	}
	if q.OriginIATA == q.DestinationIATA {
		return fmt.Errorf("%w: origin equals destination", derr.ErrInvalidQuery)
	}
	if q.DepartureDate.IsZero() {
		return fmt.Errorf("%w: departure date is required", derr.ErrInvalidQuery)
	}
	if q.ReturnDate != nil && q.ReturnDate.Before(q.DepartureDate) {
		return fmt.Errorf("%w: return date is before departure date", derr.ErrInvalidQuery)
	}
	if q.Adults < 0 {
		return fmt.Errorf("%w: adults must not be negative", derr.ErrInvalidQuery)
	}
	return nil
}

func IsValidIATA(code string) bool {
	if len(code) != 3 {
		return false
	}
	for _, r := range code {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}

func normalizeIATA(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
