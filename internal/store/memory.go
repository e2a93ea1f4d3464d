package store

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/pkg/errors"

	"weather-dashboard/internal/models"
)

// MemoryStore holds the state blob in process memory. It round-trips through
// JSON so it exercises the same serialization path as the durable backend.
// Used when no redis is configured, and in tests.
type MemoryStore struct {
	mu   sync.Mutex
	blob []byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Load(ctx context.Context) (*models.AppState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.blob == nil {
		return nil, nil
	}

	var state models.AppState
	if err := json.Unmarshal(s.blob, &state); err != nil {
		return nil, nil
	}
	if state.Cities == nil {
		state.Cities = []models.City{}
	}

	return &state, nil
}

func (s *MemoryStore) Save(ctx context.Context, state *models.AppState) error {
	blob, err := json.Marshal(state)
	if err != nil {
		return errors.Wrap(err, "marshal state")
	}

	s.mu.Lock()
	s.blob = blob
	s.mu.Unlock()

	return nil
}
