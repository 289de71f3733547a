package handlers

import (
	"net/http"

	"github.com/ozzus/flypy/internal/domain/ports"
	"go.uber.org/zap"
)

type AirportHandler struct {
	log     *zap.Logger
	catalog ports.AirportCatalog
}

// airportOption is the shape the client dropdown expects: the airport name as
// title, the IATA code under price and the country as description.
type airportOption struct {
	Title       string `json:"title"`
	Price       string `json:"price"`
	Description string `json:"description"`
}

func NewAirportHandler(log *zap.Logger, catalog ports.AirportCatalog) *AirportHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &AirportHandler{log: log, catalog: catalog}
}

func (h *AirportHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	entries, err := h.catalog.List()
	if err != nil {
		h.log.Warn("airport catalog unavailable", zap.Error(err))
		writeError(w, http.StatusServiceUnavailable, "airport list unavailable")
		return
	}

	out := make([]airportOption, 0, len(entries))
	for _, e := range entries {
		out = append(out, airportOption{
			Title:       e.Name,
			Price:       e.IATACode,
			Description: e.Country,
		})
	}

	writeJSON(w, http.StatusOK, out)
}
