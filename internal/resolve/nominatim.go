package resolve

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/ppiankov/geolens/internal/worker"
)

// DefaultGeocoderURL is the public OpenStreetMap search service
const DefaultGeocoderURL = "https://nominatim.openstreetmap.org"

// NominatimGeocoder resolves names with a Nominatim-compatible search API.
// The public instance allows one request per second, so calls are paced.
type NominatimGeocoder struct {
	baseURL   string
	userAgent string
	client    *http.Client
	limiter   *worker.Limiter
}

type nominatimPlace struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

// NewNominatimGeocoder creates a geocoder. A nil limiter paces at one
// request per second.
func NewNominatimGeocoder(baseURL, userAgent string, timeout time.Duration, limiter *worker.Limiter) *NominatimGeocoder {
	if baseURL == "" {
		baseURL = DefaultGeocoderURL
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if limiter == nil {
		limiter = worker.NewLimiter(1, 1)
	}
	return &NominatimGeocoder{
		baseURL:   strings.TrimSuffix(baseURL, "/"),
		userAgent: userAgent,
		client:    &http.Client{Timeout: timeout},
		limiter:   limiter,
	}
}

// ResolveName searches for name, narrowed by countryHint when given
func (g *NominatimGeocoder) ResolveName(ctx context.Context, name, countryHint string) (*Location, error) {
	query := strings.TrimSpace(name)
	if query == "" {
		return nil, nil
	}
	if countryHint != "" {
		query += ", " + countryHint
	}

	if err := g.limiter.Wait(ctx, g.baseURL); err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("format", "jsonv2")
	params.Set("limit", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+"/search?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if g.userAgent != "" {
		req.Header.Set("User-Agent", g.userAgent)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("geocoder request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("geocoder returned HTTP %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var places []nominatimPlace
	if err := json.NewDecoder(resp.Body).Decode(&places); err != nil {
		return nil, fmt.Errorf("failed to decode geocoder response: %w", err)
	}
	if len(places) == 0 {
		return nil, nil
	}

	lat, err := strconv.ParseFloat(places[0].Lat, 64)
	if err != nil {
		return nil, fmt.Errorf("geocoder latitude %q: %w", places[0].Lat, err)
	}
	lon, err := strconv.ParseFloat(places[0].Lon, 64)
	if err != nil {
		return nil, fmt.Errorf("geocoder longitude %q: %w", places[0].Lon, err)
	}
	return &Location{Lon: lon, Lat: lat, CountryCode: countryCodeOf(countryHint)}, nil
}
