package geoloc

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/pkg/errors"

	"weather-dashboard/pkg/observe"
)

const (
	IPAPIBaseURL = "http://ip-api.com"

	defaultTimeout = 10 * time.Second
)

// HTTPClient is the minimal client surface the provider needs.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// IPAPIProvider resolves an approximate position from the caller's public IP.
// One request per call, full timeout budget, no caching.
type IPAPIProvider struct {
	baseURL    string
	timeout    time.Duration
	httpClient HTTPClient
	l          *observe.Logger
}

func NewIPAPIProvider(baseURL string, timeout time.Duration, httpClient HTTPClient, l *observe.Logger) *IPAPIProvider {
	if baseURL == "" {
		baseURL = IPAPIBaseURL
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &IPAPIProvider{
		baseURL:    baseURL,
		timeout:    timeout,
		httpClient: httpClient,
		l:          l,
	}
}

type ipAPIResponse struct {
	Status  string  `json:"status"`
	Message string  `json:"message"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
}

func (p *IPAPIProvider) CurrentPosition(ctx context.Context) (Position, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, "GET", p.baseURL+"/json", nil)
	if err != nil {
		return Position{}, errors.WithMessagef(ErrPositionUnavailable, "create request: %v", err)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || ctx.Err() == context.DeadlineExceeded {
			return Position{}, ErrTimeout
		}
		return Position{}, errors.WithMessagef(ErrPositionUnavailable, "do request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusForbidden {
		return Position{}, ErrPermissionDenied
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Position{}, errors.WithMessagef(ErrPositionUnavailable, "read response body: %v", err)
	}

	if resp.StatusCode != http.StatusOK {
		return Position{}, errors.WithMessagef(ErrPositionUnavailable, "HTTP error (status %d): %s", resp.StatusCode, resp.Status)
	}

	var response ipAPIResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return Position{}, errors.WithMessagef(ErrPositionUnavailable, "parse JSON response: %v", err)
	}

	if response.Status != "success" {
		return Position{}, errors.WithMessagef(ErrPositionUnavailable, "lookup failed: %s", response.Message)
	}

	p.l.Info("resolved device position", map[string]any{
		"lat": response.Lat,
		"lon": response.Lon,
	})

	return Position{Latitude: response.Lat, Longitude: response.Lon}, nil
}
