package store

import (
	"context"

	"weather-dashboard/internal/models"
)

// Store persists the dashboard state blob in a single durable slot.
//
// Load fails soft: absent or corrupt data yields (nil, nil) so the caller
// falls back to defaults. Save is best-effort; callers log and ignore errors.
type Store interface {
	Load(ctx context.Context) (*models.AppState, error)
	Save(ctx context.Context, state *models.AppState) error
}
