package http_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	v1 "weather-dashboard/internal/controllers/http/v1"
	"weather-dashboard/internal/geoloc"
	"weather-dashboard/internal/models"
	"weather-dashboard/internal/repositories"
	"weather-dashboard/internal/services/citylist"
	"weather-dashboard/internal/services/suggest"
	"weather-dashboard/internal/store"
	"weather-dashboard/pkg/httpserver"
	"weather-dashboard/pkg/observe"
)

type fakeGeocoder struct{}

func (fakeGeocoder) SearchByName(_ context.Context, query string) (models.Location, error) {
	if strings.EqualFold(strings.TrimSpace(query), "paris") {
		return models.Location{Name: "Paris", Latitude: 48.8566, Longitude: 2.3522, Country: "France"}, nil
	}
	return models.Location{}, repositories.ErrNotFound
}

func (fakeGeocoder) ReverseGeocode(context.Context, float64, float64) (string, error) {
	return "", repositories.ErrNotFound
}

type fakeForecaster struct{}

func (fakeForecaster) Fetch(context.Context, float64, float64) (models.Weather, error) {
	return models.Weather{
		Current: models.CurrentWeather{TemperatureC: 21.4, HumidityPct: 63, WindSpeedMs: 4.2, WeatherCode: 2},
		Daily: []models.DailyForecast{
			{TempMaxC: 24, TempMinC: 14.5, WeatherCode: 61},
			{TempMaxC: 22.1, TempMinC: 13, WeatherCode: 63},
			{TempMaxC: 20.3, TempMinC: 12.2, WeatherCode: 3},
		},
	}, nil
}

type fakePositions struct{ err error }

func (p fakePositions) CurrentPosition(context.Context) (geoloc.Position, error) {
	if p.err != nil {
		return geoloc.Position{}, p.err
	}
	return geoloc.Position{Latitude: 55.75, Longitude: 37.61}, nil
}

func newTestApp(t *testing.T, positions fakePositions) *testApp {
	t.Helper()

	l := observe.NewZapLogger("test-app")
	manager := citylist.NewManager(store.NewMemoryStore(), fakeGeocoder{}, fakeForecaster{}, positions, 5, l)
	require.NoError(t, manager.Start(context.Background()))

	app := httpserver.InitFiberServer("test-app")
	v1.NewRouter(app, manager, suggest.NewService([]string{"Moscow", "New York", "Newcastle", "Paris"}), l)

	return &testApp{t: t, app: app}
}

type testApp struct {
	t   *testing.T
	app *fiber.App
}

func (a *testApp) do(method, target, body string) (int, []byte) {
	a.t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, target, reader)
	require.NoError(a.t, err)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := a.app.Test(req, 5000)
	require.NoError(a.t, err)
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	require.NoError(a.t, err)
	return resp.StatusCode, payload
}

func TestRouter_Dashboard_FreshState(t *testing.T) {
	a := newTestApp(t, fakePositions{})

	status, body := a.do(http.MethodGet, "/dashboard", "")
	require.Equal(t, http.StatusOK, status)

	var dashboard v1.DashboardResponse
	require.NoError(t, json.Unmarshal(body, &dashboard))
	assert.Equal(t, "awaiting_geo_decision", dashboard.Phase)
	assert.True(t, dashboard.UseGeolocation)
	assert.Empty(t, dashboard.Cities)
}

func TestRouter_AddCity(t *testing.T) {
	a := newTestApp(t, fakePositions{})

	status, body := a.do(http.MethodPost, "/cities", `{"name": "Paris"}`)
	require.Equal(t, http.StatusCreated, status)

	var dashboard v1.DashboardResponse
	require.NoError(t, json.Unmarshal(body, &dashboard))
	assert.Equal(t, "populated", dashboard.Phase)
	require.Len(t, dashboard.Cities, 1)
	city := dashboard.Cities[0]
	assert.Equal(t, "Paris", city.Name)
	require.NotNil(t, city.Weather)
	assert.Equal(t, "Partly cloudy", city.Weather.Current.Description)
	require.Len(t, city.Weather.Daily, 3)
	assert.Equal(t, "Slight rain", city.Weather.Daily[0].Description)
}

func TestRouter_AddCity_Unknown(t *testing.T) {
	a := newTestApp(t, fakePositions{})

	status, body := a.do(http.MethodPost, "/cities", `{"name": "Atlantis"}`)
	require.Equal(t, http.StatusUnprocessableEntity, status)

	var errResp v1.ErrorResponse
	require.NoError(t, json.Unmarshal(body, &errResp))
	assert.Equal(t, "City not found. Check the spelling.", errResp.Error)
}

func TestRouter_AddCity_NameTooShort(t *testing.T) {
	a := newTestApp(t, fakePositions{})

	status, _ := a.do(http.MethodPost, "/cities", `{"name": "P"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, status)
}

func TestRouter_RemoveCity_NotFound(t *testing.T) {
	a := newTestApp(t, fakePositions{})

	status, _ := a.do(http.MethodDelete, "/cities/5", "")
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = a.do(http.MethodDelete, "/cities/abc", "")
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestRouter_DenyGeolocation(t *testing.T) {
	a := newTestApp(t, fakePositions{})

	status, body := a.do(http.MethodPost, "/geolocation/deny", "")
	require.Equal(t, http.StatusOK, status)

	var dashboard v1.DashboardResponse
	require.NoError(t, json.Unmarshal(body, &dashboard))
	assert.Equal(t, "empty", dashboard.Phase)
	assert.False(t, dashboard.UseGeolocation)
}

func TestRouter_AllowGeolocation(t *testing.T) {
	a := newTestApp(t, fakePositions{})

	status, body := a.do(http.MethodPost, "/geolocation/allow", "")
	require.Equal(t, http.StatusOK, status)

	var dashboard v1.DashboardResponse
	require.NoError(t, json.Unmarshal(body, &dashboard))
	assert.Equal(t, "populated", dashboard.Phase)
	require.Len(t, dashboard.Cities, 1)
	assert.Equal(t, "Current location", dashboard.Cities[0].Name)
	assert.True(t, dashboard.Cities[0].IsCurrentLocation)
}

func TestRouter_AllowGeolocation_DeniedFallsBack(t *testing.T) {
	a := newTestApp(t, fakePositions{err: geoloc.ErrPermissionDenied})

	status, body := a.do(http.MethodPost, "/geolocation/allow", "")
	require.Equal(t, http.StatusOK, status)

	var dashboard v1.DashboardResponse
	require.NoError(t, json.Unmarshal(body, &dashboard))
	assert.Equal(t, "empty", dashboard.Phase)
	assert.False(t, dashboard.UseGeolocation)
	assert.Equal(t, "Location access denied. Add a city manually.", dashboard.Message)
}

func TestRouter_Suggestions(t *testing.T) {
	a := newTestApp(t, fakePositions{})

	status, body := a.do(http.MethodGet, "/suggestions?q=new", "")
	require.Equal(t, http.StatusOK, status)

	var resp v1.SuggestionsResponse
	require.NoError(t, json.Unmarshal(body, &resp))
	assert.Equal(t, []string{"New York", "Newcastle"}, resp.Suggestions)

	status, body = a.do(http.MethodGet, "/suggestions?q=n", "")
	require.Equal(t, http.StatusOK, status)
	require.NoError(t, json.Unmarshal(body, &resp))
	assert.Empty(t, resp.Suggestions)
}
