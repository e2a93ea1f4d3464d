package repositories

import (
	"net/http"
	"time"

	"github.com/pkg/errors"
)

// HTTPClient is the minimal client surface the repositories depend on,
// satisfied by *http.Client and by test doubles.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

func NewHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{Timeout: timeout}
}

// Error taxonomy shared by the upstream clients. Callers classify with
// errors.Is; messages wrap these sentinels with request detail.
var (
	// ErrTransport covers network failures and non-success HTTP statuses.
	ErrTransport = errors.New("upstream request failed")

	// ErrInvalidResponse covers malformed payloads and missing expected fields.
	ErrInvalidResponse = errors.New("malformed upstream response")

	// ErrNotFound means the geocoder returned zero results.
	ErrNotFound = errors.New("no matching location")
)
