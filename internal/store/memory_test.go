package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"weather-dashboard/internal/models"
)

func TestMemoryStore_LoadAbsent(t *testing.T) {
	s := NewMemoryStore()

	state, err := s.Load(context.Background())
	require.NoError(t, err)
	assert.Nil(t, state)
}

func TestMemoryStore_RoundTrip(t *testing.T) {
	s := NewMemoryStore()

	precip := 35.0
	saved := &models.AppState{
		Cities: []models.City{
			{
				Name:      "Berlin",
				Latitude:  52.52,
				Longitude: 13.41,
				Weather: &models.Weather{
					Current: models.CurrentWeather{
						TemperatureC: 21.4,
						HumidityPct:  63,
						WindSpeedMs:  4.2,
						WeatherCode:  2,
					},
					Daily: []models.DailyForecast{
						{TempMaxC: 24, TempMinC: 14.5, WeatherCode: 3, PrecipProbPct: &precip},
						{TempMaxC: 22, TempMinC: 13, WeatherCode: 61},
						{TempMaxC: 20, TempMinC: 12, WeatherCode: 63},
					},
				},
			},
			{Name: "Current location", Latitude: 55.75, Longitude: 37.61, IsCurrentLocation: true},
		},
		UseGeolocation: false,
	}

	require.NoError(t, s.Save(context.Background(), saved))

	loaded, err := s.Load(context.Background())
	require.NoError(t, err)
	require.NotNil(t, loaded)

	assert.Equal(t, saved.UseGeolocation, loaded.UseGeolocation)
	assert.Equal(t, saved.Cities, loaded.Cities)
}

func TestMemoryStore_CorruptBlobLoadsAsAbsent(t *testing.T) {
	s := NewMemoryStore()
	s.blob = []byte(`{"cities": [`)

	state, err := s.Load(context.Background())
	require.NoError(t, err)
	assert.Nil(t, state)
}

func TestMemoryStore_NilCitiesNormalized(t *testing.T) {
	s := NewMemoryStore()
	s.blob = []byte(`{"useGeolocation": true}`)

	state, err := s.Load(context.Background())
	require.NoError(t, err)
	require.NotNil(t, state)
	assert.NotNil(t, state.Cities)
	assert.True(t, state.UseGeolocation)
}
