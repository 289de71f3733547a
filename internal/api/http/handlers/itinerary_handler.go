package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/ozzus/flypy/internal/application/service"
	"github.com/ozzus/flypy/internal/domain/models"
	"github.com/ozzus/flypy/internal/domain/ports"
	"go.uber.org/zap"
)

const (
	defaultSearchTimeout = 12 * time.Second
	maxAssembleBodyBytes = 4 << 20
	queryDateLayout      = "2006-01-02"
)

type ItineraryHandler struct {
	log     *zap.Logger
	service *service.ItineraryService
	timeout time.Duration
}

type itinerariesResponse struct {
	Options []models.AssembledTrip `json:"options"`
	Dropped int                    `json:"dropped"`
}

type assembleRequest struct {
	TripOptions []models.TripOptionRecord `json:"trip_options"`
}

func NewItineraryHandler(log *zap.Logger, itineraryService *service.ItineraryService, timeout time.Duration) *ItineraryHandler {
	if log == nil {
		log = zap.NewNop()
	}
	if timeout <= 0 {
		timeout = defaultSearchTimeout
	}

	return &ItineraryHandler{
		log:     log,
		service: itineraryService,
		timeout: timeout,
	}
}

func (h *ItineraryHandler) Search(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	query, errMsg := parseSearchQuery(r)
	if errMsg != "" {
		writeError(w, http.StatusBadRequest, errMsg)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	result, err := h.service.Search(ctx, query)
	if err != nil {
		h.log.Warn("itinerary search failed", zap.Error(err))
		writeError(w, mapHTTPStatus(err), errorMessage(err))
		return
	}

	writeJSON(w, http.StatusOK, toResponse(result))
}

func (h *ItineraryHandler) Assemble(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req assembleRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxAssembleBodyBytes)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "body must be a JSON object with a trip_options array")
		return
	}
	if req.TripOptions == nil {
		writeError(w, http.StatusBadRequest, "trip_options is required")
		return
	}

	result, err := h.service.AssembleRecords(r.Context(), req.TripOptions)
	if err != nil {
		writeError(w, mapHTTPStatus(err), errorMessage(err))
		return
	}

	writeJSON(w, http.StatusOK, toResponse(result))
}

func toResponse(result service.SearchResult) itinerariesResponse {
	return itinerariesResponse{
		Options: result.Itineraries.Options,
		Dropped: result.Dropped,
	}
}

func parseSearchQuery(r *http.Request) (ports.SearchQuery, string) {
	values := r.URL.Query()
	query := ports.SearchQuery{
		OriginIATA:      strings.ToUpper(strings.TrimSpace(values.Get("origin"))),
		DestinationIATA: strings.ToUpper(strings.TrimSpace(values.Get("destination"))),
		Adults:          1,
	}

	if query.OriginIATA == "" || query.DestinationIATA == "" {
		return ports.SearchQuery{}, "origin and destination are required"
	}

	rawDate := strings.TrimSpace(values.Get("date"))
	if rawDate == "" {
		return ports.SearchQuery{}, "date is required"
	}
	date, err := time.Parse(queryDateLayout, rawDate)
	if err != nil {
		return ports.SearchQuery{}, "date must be YYYY-MM-DD"
	}
	query.DepartureDate = date

	if raw := strings.TrimSpace(values.Get("return_date")); raw != "" {
		ret, err := time.Parse(queryDateLayout, raw)
		if err != nil {
			return ports.SearchQuery{}, "return_date must be YYYY-MM-DD"
		}
		query.ReturnDate = &ret
	}

	if raw := strings.TrimSpace(values.Get("adults")); raw != "" {
		adults, err := strconv.Atoi(raw)
		if err != nil || adults <= 0 {
			return ports.SearchQuery{}, "adults must be a positive integer"
		}
		query.Adults = adults
	}

	return query, ""
}
