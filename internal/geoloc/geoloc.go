package geoloc

import (
	"context"

	"github.com/pkg/errors"
)

// Position is a one-shot device fix.
type Position struct {
	Latitude  float64
	Longitude float64
}

// Failure taxonomy mirrored on the browser geolocation API. Callers classify
// with errors.Is to pick a user-facing message; every failure falls back to
// the manual-add flow.
var (
	ErrPermissionDenied    = errors.New("geolocation permission denied")
	ErrPositionUnavailable = errors.New("position information unavailable")
	ErrTimeout             = errors.New("geolocation request timed out")
)

// Provider returns the current position. Implementations apply their own
// timeout budget and must never serve a cached fix.
type Provider interface {
	CurrentPosition(ctx context.Context) (Position, error)
}
