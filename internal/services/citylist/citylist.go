package citylist

import (
	"context"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/pkg/errors"

	"weather-dashboard/internal/geoloc"
	"weather-dashboard/internal/models"
	"weather-dashboard/internal/repositories"
	"weather-dashboard/internal/store"
	"weather-dashboard/pkg/observe"
)

// Phase is the dashboard's interaction state. There is exactly one Manager
// per process and exactly one phase at a time.
type Phase string

const (
	PhaseAwaitingGeoDecision Phase = "awaiting_geo_decision"
	PhaseEmpty               Phase = "empty"
	PhasePopulated           Phase = "populated"
)

// CurrentLocationName is the placeholder display name for the geolocated
// entry; reverse geocoding upgrades it when it succeeds.
const CurrentLocationName = "Current location"

var (
	ErrNameTooShort     = errors.New("city name must be at least 2 characters")
	ErrDuplicateCity    = errors.New("city already added")
	ErrCapacityExceeded = errors.New("city limit reached")
	ErrCityNotFound     = errors.New("city not found")
	ErrNoSuchCity       = errors.New("no such city")
	ErrRefreshFailed    = errors.New("could not refresh weather")
)

// Snapshot is the read-only projection handed to the presenter.
type Snapshot struct {
	Phase          Phase         `json:"phase"`
	Cities         []models.City `json:"cities"`
	UseGeolocation bool          `json:"useGeolocation"`
}

// Manager owns AppState. All mutation funnels through its methods under one
// mutex (single-writer), and every mutation persists before returning.
//
// Refresh batches carry a generation number: any list mutation bumps the
// generation, so a batch that settles after the list changed underneath it is
// discarded instead of committing stale weather.
type Manager struct {
	mu       sync.Mutex
	state    *models.AppState
	phase    Phase
	batchGen uint64

	store     store.Store
	geocoder  repositories.GeocodingRepository
	forecasts repositories.ForecastRepository
	positions geoloc.Provider
	capacity  int
	l         *observe.Logger
}

func NewManager(
	st store.Store,
	geocoder repositories.GeocodingRepository,
	forecasts repositories.ForecastRepository,
	positions geoloc.Provider,
	capacity int,
	l *observe.Logger,
) *Manager {
	return &Manager{
		state:     models.DefaultAppState(),
		phase:     PhaseEmpty,
		store:     st,
		geocoder:  geocoder,
		forecasts: forecasts,
		positions: positions,
		capacity:  capacity,
		l:         l,
	}
}

// Start loads the persisted state and picks the initial phase. With saved
// cities it refreshes immediately; otherwise it either offers geolocation or
// drops straight to the manual-add flow.
func (m *Manager) Start(ctx context.Context) error {
	m.mu.Lock()

	loaded, err := m.store.Load(ctx)
	if err != nil {
		m.l.Warning("could not load persisted state, using defaults", map[string]any{"err": err.Error()})
	}
	if loaded != nil {
		m.state = loaded
	}

	switch {
	case len(m.state.Cities) > 0:
		m.phase = PhasePopulated
		gen, cities := m.beginBatchLocked()
		m.mu.Unlock()

		m.l.Info("startup with persisted cities", map[string]any{"cities": len(cities)})
		return m.runBatch(ctx, gen, cities)

	case m.state.UseGeolocation:
		m.phase = PhaseAwaitingGeoDecision
		m.mu.Unlock()

		m.l.Info("startup awaiting geolocation decision")
		return nil

	default:
		m.phase = PhaseEmpty
		m.mu.Unlock()

		m.l.Info("startup with manual add flow")
		return nil
	}
}

// AllowGeolocation requests the device position and appends the current
// location city. Any provider failure flips useGeolocation off and falls
// back to the manual-add flow; the classified error is returned for user
// messaging after the transition has already happened.
func (m *Manager) AllowGeolocation(ctx context.Context) error {
	m.mu.Lock()
	if m.phase != PhaseAwaitingGeoDecision {
		m.mu.Unlock()
		return nil
	}
	m.mu.Unlock()

	pos, err := m.positions.CurrentPosition(ctx)
	if err != nil {
		m.mu.Lock()
		if m.phase != PhaseAwaitingGeoDecision {
			// A city was added while the lookup was in flight; the offer is
			// moot and the populated list must not be stamped over.
			m.mu.Unlock()
			return nil
		}
		m.state.UseGeolocation = false
		m.phase = PhaseEmpty
		m.persistLocked(ctx)
		m.mu.Unlock()

		m.l.Warning("geolocation failed, falling back to manual add", map[string]any{"err": err.Error()})
		return err
	}

	name := CurrentLocationName
	if resolved, rerr := m.geocoder.ReverseGeocode(ctx, pos.Latitude, pos.Longitude); rerr == nil && resolved != "" {
		name = resolved
	}

	m.mu.Lock()
	if m.phase != PhaseAwaitingGeoDecision {
		m.mu.Unlock()
		return nil
	}
	m.state.Cities = append(m.state.Cities, models.City{
		Name:              name,
		Latitude:          pos.Latitude,
		Longitude:         pos.Longitude,
		IsCurrentLocation: true,
	})
	m.phase = PhasePopulated
	gen, cities := m.beginBatchLocked()
	m.persistLocked(ctx)
	m.mu.Unlock()

	m.l.Info("current location added", map[string]any{
		"name": name,
		"lat":  pos.Latitude,
		"lon":  pos.Longitude,
	})
	return m.runBatch(ctx, gen, cities)
}

// DenyGeolocation records the explicit refusal and opens the manual-add flow.
func (m *Manager) DenyGeolocation(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.phase != PhaseAwaitingGeoDecision {
		return nil
	}

	m.state.UseGeolocation = false
	m.phase = PhaseEmpty
	m.persistLocked(ctx)

	m.l.Info("geolocation declined")
	return nil
}

// AddCity validates, geocodes and appends a city, then refreshes. Validation
// errors leave AppState untouched. A refresh failure after a successful
// append returns ErrRefreshFailed; the city stays in the list.
func (m *Manager) AddCity(ctx context.Context, name string) error {
	name = strings.TrimSpace(name)
	if utf8.RuneCountInString(name) < 2 {
		return ErrNameTooShort
	}

	// Cheap checks before spending a network round trip.
	m.mu.Lock()
	if err := m.checkAddLocked(name, nil); err != nil {
		m.mu.Unlock()
		return err
	}
	m.mu.Unlock()

	loc, err := m.geocoder.SearchByName(ctx, name)
	if err != nil {
		// NotFound and transport failures read the same to the user.
		return errors.WithMessage(ErrCityNotFound, err.Error())
	}

	m.mu.Lock()
	if err := m.checkAddLocked(name, &loc); err != nil {
		m.mu.Unlock()
		return err
	}
	m.state.Cities = append(m.state.Cities, models.City{
		Name:      name,
		Latitude:  loc.Latitude,
		Longitude: loc.Longitude,
	})
	m.phase = PhasePopulated
	gen, cities := m.beginBatchLocked()
	m.persistLocked(ctx)
	m.mu.Unlock()

	m.l.Info("city added", map[string]any{
		"name":    name,
		"country": loc.Country,
		"lat":     loc.Latitude,
		"lon":     loc.Longitude,
	})
	return m.runBatch(ctx, gen, cities)
}

// checkAddLocked enforces the dedup invariant and the capacity bound. Either
// a case-insensitive name match or coordinates within the identity box is
// enough to reject.
func (m *Manager) checkAddLocked(name string, loc *models.Location) error {
	for _, c := range m.state.Cities {
		if strings.EqualFold(c.Name, name) {
			return ErrDuplicateCity
		}
		if loc != nil && c.SameLocation(loc.Latitude, loc.Longitude) {
			return ErrDuplicateCity
		}
	}
	if m.capacity > 0 && len(m.state.Cities) >= m.capacity {
		return ErrCapacityExceeded
	}
	return nil
}

// RemoveCity drops the entry at index. Emptying the list re-arms the
// geolocation offer; otherwise the remaining cities are refreshed.
func (m *Manager) RemoveCity(ctx context.Context, index int) error {
	m.mu.Lock()
	if m.phase != PhasePopulated || index < 0 || index >= len(m.state.Cities) {
		m.mu.Unlock()
		return ErrNoSuchCity
	}

	removed := m.state.Cities[index]
	m.state.Cities = append(m.state.Cities[:index], m.state.Cities[index+1:]...)
	m.batchGen++ // invalidate any in-flight batch

	if len(m.state.Cities) == 0 {
		m.state.UseGeolocation = true
		m.phase = PhaseAwaitingGeoDecision
		m.persistLocked(ctx)
		m.mu.Unlock()

		m.l.Info("removed last city, offering geolocation again", map[string]any{"name": removed.Name})
		return nil
	}

	gen, cities := m.beginBatchLocked()
	m.persistLocked(ctx)
	m.mu.Unlock()

	m.l.Info("city removed", map[string]any{"name": removed.Name})
	return m.runBatch(ctx, gen, cities)
}

// Refresh re-fetches weather for every city. No-op outside Populated.
func (m *Manager) Refresh(ctx context.Context) error {
	m.mu.Lock()
	if m.phase != PhasePopulated || len(m.state.Cities) == 0 {
		m.mu.Unlock()
		return nil
	}
	gen, cities := m.beginBatchLocked()
	m.mu.Unlock()

	return m.runBatch(ctx, gen, cities)
}

// Snapshot returns a deep copy of the current state for rendering.
func (m *Manager) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	st := m.state.Clone()
	return Snapshot{
		Phase:          m.phase,
		Cities:         st.Cities,
		UseGeolocation: st.UseGeolocation,
	}
}

func (m *Manager) beginBatchLocked() (uint64, []models.City) {
	m.batchGen++
	cities := make([]models.City, len(m.state.Cities))
	copy(cities, m.state.Cities)
	return m.batchGen, cities
}

// runBatch fans out one forecast fetch per city and commits all results in
// list order, or none of them. Weather attached by an earlier successful
// batch is never cleared by a failing one.
func (m *Manager) runBatch(ctx context.Context, gen uint64, cities []models.City) error {
	m.l.Info("starting refresh batch", map[string]any{
		"cities":     len(cities),
		"generation": gen,
	})

	results := make([]models.Weather, len(cities))
	errs := make([]error, len(cities))

	wg := sync.WaitGroup{}
	for i, city := range cities {
		wg.Add(1)

		go func(i int, city models.City) {
			defer wg.Done()
			m.l.Debug("fetching weather", map[string]any{"city": city.Name, "lat": city.Latitude, "lon": city.Longitude})

			w, err := m.forecasts.Fetch(ctx, city.Latitude, city.Longitude)
			if err != nil {
				errs[i] = err
				return
			}
			results[i] = w
		}(i, city)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			m.l.Warning("refresh batch failed", map[string]any{"city": cities[i].Name, "err": err.Error()})
			observe.RefreshBatches.WithLabelValues("failed").Inc()
			return errors.WithMessagef(ErrRefreshFailed, "city %q: %v", cities[i].Name, err)
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if gen != m.batchGen {
		// The list changed, or a newer batch started, while this one was in
		// flight. Its results would be stale; drop them.
		m.l.Debug("discarding superseded refresh batch", map[string]any{
			"generation": gen,
			"current":    m.batchGen,
		})
		observe.RefreshBatches.WithLabelValues("superseded").Inc()
		return nil
	}

	for i := range m.state.Cities {
		w := results[i]
		m.state.Cities[i].Weather = &w
	}
	m.persistLocked(ctx)
	observe.RefreshBatches.WithLabelValues("ok").Inc()

	m.l.Info("refresh batch committed", map[string]any{"cities": len(results)})
	return nil
}

// persistLocked saves best-effort; a failed save is logged, never surfaced.
func (m *Manager) persistLocked(ctx context.Context) {
	if err := m.store.Save(ctx, m.state.Clone()); err != nil {
		m.l.Warning("could not persist state", map[string]any{"err": err.Error()})
	}
}
