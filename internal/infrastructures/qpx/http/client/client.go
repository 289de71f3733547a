package qpx

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	derr "github.com/ozzus/flypy/internal/domain/errors"
	"github.com/ozzus/flypy/internal/domain/models"
	"github.com/ozzus/flypy/internal/domain/ports"
	"github.com/ozzus/flypy/internal/infrastructures/qpx/dto"
	"github.com/ozzus/flypy/internal/infrastructures/qpx/mappers"
	"go.uber.org/zap"
)

const dateLayout = "2006-01-02"

type Client struct {
	log        *zap.Logger
	baseURL    string
	apiKey     string
	solutions  int
	httpClient *http.Client
}

func NewClient(log *zap.Logger, baseURL, apiKey string, solutions int, timeout time.Duration) *Client {
	if log == nil {
		log = zap.NewNop()
	}
	if strings.TrimSpace(baseURL) == "" {
		baseURL = "https://www.googleapis.com"
	}
	if solutions <= 0 {
		solutions = 20
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &Client{
		log:        log,
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     strings.TrimSpace(apiKey),
		solutions:  solutions,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *Client) SearchTrips(ctx context.Context, query ports.SearchQuery) ([]models.TripOptionRecord, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("qpx api key is empty")
	}

	reqURL, err := c.buildURL()
	if err != nil {
		return nil, err
	}

	body, err := json.Marshal(c.buildRequest(query))
	if err != nil {
		return nil, fmt.Errorf("encode qpx request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("qpx request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusInternalServerError || resp.StatusCode == http.StatusTooManyRequests {
		return nil, fmt.Errorf("%w: qpx status: %s", derr.ErrSourceTemporary, resp.Status)
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("qpx status: %s", resp.Status)
	}

	var payload dto.SearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode qpx response: %w", err)
	}

	records, skipped := mappers.ToTripOptionRecords(payload)
	for _, sk := range skipped {
		c.log.Warn("qpx trip option skipped",
			zap.Int("option_index", sk.Index),
			zap.Error(sk.Err),
		)
	}
	return records, nil
}

func (c *Client) buildURL() (string, error) {
	u, err := url.Parse(c.baseURL + "/qpxExpress/v1/trips/search")
	if err != nil {
		return "", fmt.Errorf("parse qpx base url: %w", err)
	}

	q := u.Query()
	q.Set("key", c.apiKey)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

func (c *Client) buildRequest(query ports.SearchQuery) dto.SearchRequest {
	origin := strings.ToUpper(strings.TrimSpace(query.OriginIATA))
	destination := strings.ToUpper(strings.TrimSpace(query.DestinationIATA))

	slices := []dto.SliceInput{{
		Origin:      origin,
		Destination: destination,
		Date:        query.DepartureDate.Format(dateLayout),
	}}
	if query.ReturnDate != nil {
		slices = append(slices, dto.SliceInput{
			Origin:      destination,
			Destination: origin,
			Date:        query.ReturnDate.Format(dateLayout),
		})
	}

	adults := query.Adults
	if adults <= 0 {
		adults = 1
	}

	return dto.SearchRequest{Request: dto.TripOptionsRequest{
		Slice:      slices,
		Passengers: dto.PassengerCounts{AdultCount: adults},
		Solutions:  c.solutions,
	}}
}
