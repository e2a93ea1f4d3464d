package repositories

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"weather-dashboard/pkg/observe"
)

const validForecastBody = `{
	"current": {"temperature_2m": 21.4, "relative_humidity_2m": 63, "wind_speed_10m": 4.2, "weather_code": 2},
	"daily": {
		"temperature_2m_max": [24.0, 22.1, 20.3],
		"temperature_2m_min": [14.5, 13.0, 12.2],
		"weather_code": [3, 61, 63],
		"precipitation_probability_max": [35, 80, 60]
	}
}`

func TestOpenMeteoForecast_Fetch_Success(t *testing.T) {
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("current") != currentFields {
			t.Errorf("Unexpected current fields: %s", q.Get("current"))
		}
		if q.Get("daily") != dailyFields {
			t.Errorf("Unexpected daily fields: %s", q.Get("daily"))
		}
		if q.Get("forecast_days") != "3" {
			t.Errorf("Expected forecast_days=3, got %s", q.Get("forecast_days"))
		}
		if q.Get("timezone") != "auto" {
			t.Errorf("Expected timezone=auto, got %s", q.Get("timezone"))
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(validForecastBody))
	}))
	defer mockServer.Close()

	logger := observe.NewZapLogger("test-app")
	repo := NewOpenMeteoForecast(mockServer.URL, http.DefaultClient, logger)

	weather, err := repo.Fetch(context.Background(), 52.52, 13.41)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if weather.Current.TemperatureC != 21.4 {
		t.Errorf("Expected current temperature 21.4, got %f", weather.Current.TemperatureC)
	}
	if weather.Current.WeatherCode != 2 {
		t.Errorf("Expected weather code 2, got %d", weather.Current.WeatherCode)
	}
	if len(weather.Daily) != 3 {
		t.Fatalf("Expected 3 daily entries, got %d", len(weather.Daily))
	}
	if weather.Daily[1].TempMaxC != 22.1 || weather.Daily[1].TempMinC != 13.0 {
		t.Errorf("Unexpected day 1 temperatures: %+v", weather.Daily[1])
	}
	if weather.Daily[0].PrecipProbPct == nil || *weather.Daily[0].PrecipProbPct != 35 {
		t.Errorf("Expected day 0 precipitation probability 35, got %+v", weather.Daily[0].PrecipProbPct)
	}
}

func TestOpenMeteoForecast_Fetch_MissingPrecipitationIsOptional(t *testing.T) {
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"current": {"temperature_2m": 10, "relative_humidity_2m": 50, "wind_speed_10m": 3, "weather_code": 0},
			"daily": {
				"temperature_2m_max": [12, 13, 14],
				"temperature_2m_min": [2, 3, 4],
				"weather_code": [0, 1, 2]
			}
		}`))
	}))
	defer mockServer.Close()

	logger := observe.NewZapLogger("test-app")
	repo := NewOpenMeteoForecast(mockServer.URL, http.DefaultClient, logger)

	weather, err := repo.Fetch(context.Background(), 52.52, 13.41)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	for i, day := range weather.Daily {
		if day.PrecipProbPct != nil {
			t.Errorf("Expected absent precipitation probability on day %d", i)
		}
	}
}

func TestOpenMeteoForecast_Fetch_MissingCurrent(t *testing.T) {
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"daily": {"temperature_2m_max": [12], "temperature_2m_min": [2], "weather_code": [0]}}`))
	}))
	defer mockServer.Close()

	logger := observe.NewZapLogger("test-app")
	repo := NewOpenMeteoForecast(mockServer.URL, http.DefaultClient, logger)

	_, err := repo.Fetch(context.Background(), 52.52, 13.41)
	if !errors.Is(err, ErrInvalidResponse) {
		t.Errorf("Expected ErrInvalidResponse when current is missing, got: %v", err)
	}
}

func TestOpenMeteoForecast_Fetch_EmptyDailyArrays(t *testing.T) {
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"current": {"temperature_2m": 10, "relative_humidity_2m": 50, "wind_speed_10m": 3, "weather_code": 0},
			"daily": {"temperature_2m_max": [], "temperature_2m_min": [], "weather_code": []}
		}`))
	}))
	defer mockServer.Close()

	logger := observe.NewZapLogger("test-app")
	repo := NewOpenMeteoForecast(mockServer.URL, http.DefaultClient, logger)

	_, err := repo.Fetch(context.Background(), 52.52, 13.41)
	if !errors.Is(err, ErrInvalidResponse) {
		t.Errorf("Expected ErrInvalidResponse on empty daily data, got: %v", err)
	}
}

func TestOpenMeteoForecast_Fetch_HTTPError(t *testing.T) {
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer mockServer.Close()

	logger := observe.NewZapLogger("test-app")
	repo := NewOpenMeteoForecast(mockServer.URL, http.DefaultClient, logger)

	_, err := repo.Fetch(context.Background(), 52.52, 13.41)
	if !errors.Is(err, ErrInvalidResponse) {
		t.Errorf("Expected ErrInvalidResponse on HTTP 500, got: %v", err)
	}
}

func TestOpenMeteoForecast_Fetch_TransportError(t *testing.T) {
	logger := observe.NewZapLogger("test-app")
	repo := NewOpenMeteoForecast("http://invalid-url-that-does-not-exist.test", http.DefaultClient, logger)

	_, err := repo.Fetch(context.Background(), 52.52, 13.41)
	if !errors.Is(err, ErrTransport) {
		t.Errorf("Expected ErrTransport, got: %v", err)
	}
}

func TestOpenMeteoForecast_Fetch_InvalidJSON(t *testing.T) {
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte("invalid json"))
	}))
	defer mockServer.Close()

	logger := observe.NewZapLogger("test-app")
	repo := NewOpenMeteoForecast(mockServer.URL, http.DefaultClient, logger)

	_, err := repo.Fetch(context.Background(), 52.52, 13.41)
	if !errors.Is(err, ErrInvalidResponse) {
		t.Errorf("Expected ErrInvalidResponse, got: %v", err)
	}
}

func TestOpenMeteoForecast_Fetch_ContextCancellation(t *testing.T) {
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(validForecastBody))
	}))
	defer mockServer.Close()

	logger := observe.NewZapLogger("test-app")
	repo := NewOpenMeteoForecast(mockServer.URL, http.DefaultClient, logger)

	ctx, cancel := context.WithCancel(context.Background())
	cancel() // Cancel immediately

	_, err := repo.Fetch(ctx, 52.52, 13.41)
	if err == nil {
		t.Error("Expected error when context is cancelled, got nil")
	}
}
