// Package geo - nominatim.go implements Geocoder against the Nominatim API.
package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"
)

const (
	defaultNominatimURL = "https://nominatim.openstreetmap.org"
	defaultUserAgent    = "talent-match/1.0"
	defaultTimeout      = 10 * time.Second
)

// NominatimGeocoder resolves locations through a Nominatim endpoint.
type NominatimGeocoder struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
	logger     *zap.Logger
}

// NominatimOption configures a NominatimGeocoder.
type NominatimOption func(*NominatimGeocoder)

// WithBaseURL overrides the Nominatim endpoint (used by tests and
// self-hosted instances).
func WithBaseURL(baseURL string) NominatimOption {
	return func(g *NominatimGeocoder) { g.baseURL = baseURL }
}

// WithUserAgent sets the User-Agent header. Nominatim's usage policy
// requires an identifying agent.
func WithUserAgent(agent string) NominatimOption {
	return func(g *NominatimGeocoder) { g.userAgent = agent }
}

// WithTimeout bounds each geocoding request.
func WithTimeout(timeout time.Duration) NominatimOption {
	return func(g *NominatimGeocoder) { g.httpClient.Timeout = timeout }
}

// NewNominatim creates a Nominatim-backed geocoder.
func NewNominatim(logger *zap.Logger, opts ...NominatimOption) *NominatimGeocoder {
	if logger == nil {
		logger = zap.NewNop()
	}
	g := &NominatimGeocoder{
		baseURL:    defaultNominatimURL,
		userAgent:  defaultUserAgent,
		httpClient: &http.Client{Timeout: defaultTimeout},
		logger:     logger,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// nominatimResult is the subset of the search response we consume.
type nominatimResult struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

// Geocode resolves a location string. Returns (nil, nil) when the
// provider has no result for the query.
func (g *NominatimGeocoder) Geocode(ctx context.Context, location string) (*Point, error) {
	query := url.Values{}
	query.Set("q", location)
	query.Set("format", "json")
	query.Set("limit", "1")

	endpoint := fmt.Sprintf("%s/search?%s", g.baseURL, query.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build geocode request: %w", err)
	}
	req.Header.Set("User-Agent", g.userAgent)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("geocode request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("geocode request returned status %d", resp.StatusCode)
	}

	var results []nominatimResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return nil, fmt.Errorf("failed to decode geocode response: %w", err)
	}
	if len(results) == 0 {
		g.logger.Debug("no geocoding result", zap.String("location", location))
		return nil, nil
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid latitude %q: %w", results[0].Lat, err)
	}
	lon, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid longitude %q: %w", results[0].Lon, err)
	}

	return &Point{Latitude: lat, Longitude: lon}, nil
}
