package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"weather-dashboard/internal/models"
	"weather-dashboard/pkg/observe"
)

const (
	GeocodingBaseURL = "https://geocoding-api.open-meteo.com/v1"
)

// GeocodingRepository resolves a free-text city name, or a coordinate pair,
// to a canonical location.
type GeocodingRepository interface {
	SearchByName(ctx context.Context, query string) (models.Location, error)
	ReverseGeocode(ctx context.Context, lat, lon float64) (string, error)
}

type OpenMeteoGeocoding struct {
	baseURL    string
	language   string
	count      int
	httpClient HTTPClient
	l          *observe.Logger
}

func NewOpenMeteoGeocoding(baseURL, language string, count int, httpClient HTTPClient, l *observe.Logger) *OpenMeteoGeocoding {
	if baseURL == "" {
		baseURL = GeocodingBaseURL
	}
	if count < 1 {
		count = 10
	}
	return &OpenMeteoGeocoding{
		baseURL:    baseURL,
		language:   language,
		count:      count,
		httpClient: httpClient,
		l:          l,
	}
}

type geocodingResult struct {
	Name        string  `json:"name"`
	AsciiName   string  `json:"ascii_name"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	Country     string  `json:"country"`
	FeatureCode string  `json:"feature_code"`
}

type geocodingResponse struct {
	Results []geocodingResult `json:"results"`
}

// SearchByName resolves a city name to coordinates. Among the returned
// candidates an exact case-insensitive match on the primary or ASCII name
// wins; otherwise the first-ranked candidate is taken.
func (g *OpenMeteoGeocoding) SearchByName(ctx context.Context, query string) (models.Location, error) {
	params := url.Values{}
	params.Set("name", query)
	params.Set("count", strconv.Itoa(g.count))
	params.Set("language", g.language)
	params.Set("format", "json")

	g.l.Info("making geocoding search request", map[string]any{
		"query": query,
		"count": g.count,
	})

	resp, err := g.get(ctx, g.baseURL+"/search?"+params.Encode())
	if err != nil {
		observe.GeocodeLookups.WithLabelValues("search", "error").Inc()
		return models.Location{}, err
	}

	if len(resp.Results) == 0 {
		observe.GeocodeLookups.WithLabelValues("search", "not_found").Inc()
		return models.Location{}, errors.WithMessagef(ErrNotFound, "query %q", query)
	}

	best := pickCandidate(resp.Results, query)

	g.l.Info("resolved city", map[string]any{
		"query":        query,
		"name":         best.Name,
		"country":      best.Country,
		"feature_code": best.FeatureCode,
	})
	observe.GeocodeLookups.WithLabelValues("search", "ok").Inc()

	return models.Location{
		Name:      best.Name,
		Latitude:  best.Latitude,
		Longitude: best.Longitude,
		Country:   best.Country,
	}, nil
}

// ReverseGeocode returns a display name for a coordinate pair.
func (g *OpenMeteoGeocoding) ReverseGeocode(ctx context.Context, lat, lon float64) (string, error) {
	params := url.Values{}
	params.Set("latitude", fmt.Sprintf("%f", lat))
	params.Set("longitude", fmt.Sprintf("%f", lon))
	params.Set("language", g.language)
	params.Set("format", "json")

	resp, err := g.get(ctx, g.baseURL+"/reverse?"+params.Encode())
	if err != nil {
		observe.GeocodeLookups.WithLabelValues("reverse", "error").Inc()
		return "", err
	}

	if len(resp.Results) == 0 {
		observe.GeocodeLookups.WithLabelValues("reverse", "not_found").Inc()
		return "", errors.WithMessagef(ErrNotFound, "coordinates %.4f,%.4f", lat, lon)
	}

	observe.GeocodeLookups.WithLabelValues("reverse", "ok").Inc()
	return resp.Results[0].Name, nil
}

func (g *OpenMeteoGeocoding) get(ctx context.Context, rawURL string) (*geocodingResponse, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", rawURL, nil)
	if err != nil {
		return nil, errors.WithMessagef(ErrTransport, "create request: %v", err)
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, errors.WithMessagef(ErrTransport, "do request: %v", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.WithMessagef(ErrTransport, "read response body: %v", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, errors.WithMessagef(ErrTransport, "HTTP error (status %d): %s", resp.StatusCode, resp.Status)
	}

	var out geocodingResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, errors.WithMessagef(ErrInvalidResponse, "parse JSON response: %v", err)
	}

	return &out, nil
}

func pickCandidate(results []geocodingResult, query string) geocodingResult {
	for _, r := range results {
		if strings.EqualFold(r.Name, query) || strings.EqualFold(r.AsciiName, query) {
			return r
		}
	}
	return results[0]
}
