package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/pkg/errors"

	"weather-dashboard/internal/models"
	"weather-dashboard/pkg/observe"
)

const (
	ForecastBaseURL = "https://api.open-meteo.com/v1/forecast"

	forecastDays = 3

	currentFields = "temperature_2m,relative_humidity_2m,wind_speed_10m,weather_code"
	dailyFields   = "temperature_2m_max,temperature_2m_min,weather_code,precipitation_probability_max"
)

// ForecastRepository fetches current conditions plus the short-range forecast
// for a coordinate. One request per call, no retry.
type ForecastRepository interface {
	Fetch(ctx context.Context, lat, lon float64) (models.Weather, error)
}

type OpenMeteoForecast struct {
	baseURL    string
	httpClient HTTPClient
	l          *observe.Logger
}

func NewOpenMeteoForecast(baseURL string, httpClient HTTPClient, l *observe.Logger) *OpenMeteoForecast {
	if baseURL == "" {
		baseURL = ForecastBaseURL
	}
	return &OpenMeteoForecast{
		baseURL:    baseURL,
		httpClient: httpClient,
		l:          l,
	}
}

type forecastCurrent struct {
	Temperature2m      float64 `json:"temperature_2m"`
	RelativeHumidity2m float64 `json:"relative_humidity_2m"`
	WindSpeed10m       float64 `json:"wind_speed_10m"`
	WeatherCode        int     `json:"weather_code"`
}

type forecastDaily struct {
	Temperature2mMax            []float64 `json:"temperature_2m_max"`
	Temperature2mMin            []float64 `json:"temperature_2m_min"`
	WeatherCode                 []int     `json:"weather_code"`
	PrecipitationProbabilityMax []float64 `json:"precipitation_probability_max"`
}

type forecastResponse struct {
	Current *forecastCurrent `json:"current"`
	Daily   *forecastDaily   `json:"daily"`
}

func (o *OpenMeteoForecast) Fetch(ctx context.Context, lat, lon float64) (models.Weather, error) {
	url := fmt.Sprintf("%s?latitude=%f&longitude=%f&current=%s&daily=%s&timezone=auto&forecast_days=%d",
		o.baseURL, lat, lon, currentFields, dailyFields, forecastDays)

	o.l.Info("making forecast request", map[string]any{
		"lat": lat,
		"lon": lon,
	})

	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		observe.ForecastFetches.WithLabelValues("error").Inc()
		return models.Weather{}, errors.WithMessagef(ErrTransport, "create request: %v", err)
	}
	resp, err := o.httpClient.Do(req)
	if err != nil {
		observe.ForecastFetches.WithLabelValues("error").Inc()
		return models.Weather{}, errors.WithMessagef(ErrTransport, "do request: %v", err)
	}
	defer resp.Body.Close()

	o.l.Info("received forecast response", map[string]any{
		"status":     resp.StatusCode,
		"statusText": resp.Status,
	})

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		observe.ForecastFetches.WithLabelValues("error").Inc()
		return models.Weather{}, errors.WithMessagef(ErrTransport, "read response body: %v", err)
	}

	if resp.StatusCode != http.StatusOK {
		observe.ForecastFetches.WithLabelValues("error").Inc()
		return models.Weather{}, errors.WithMessagef(ErrInvalidResponse, "HTTP error (status %d): %s", resp.StatusCode, resp.Status)
	}

	var response forecastResponse
	if err = json.Unmarshal(body, &response); err != nil {
		observe.ForecastFetches.WithLabelValues("error").Inc()
		return models.Weather{}, errors.WithMessagef(ErrInvalidResponse, "parse JSON response: %v", err)
	}

	weather, err := buildWeather(&response)
	if err != nil {
		observe.ForecastFetches.WithLabelValues("error").Inc()
		return models.Weather{}, err
	}

	observe.ForecastFetches.WithLabelValues("ok").Inc()
	return weather, nil
}

func buildWeather(response *forecastResponse) (models.Weather, error) {
	if response.Current == nil || response.Daily == nil {
		return models.Weather{}, errors.WithMessage(ErrInvalidResponse, "missing current or daily payload")
	}

	daily := response.Daily

	// Clamp to the shortest array so a ragged payload cannot panic.
	days := min(len(daily.Temperature2mMax), len(daily.Temperature2mMin), len(daily.WeatherCode))
	if days == 0 {
		return models.Weather{}, errors.WithMessage(ErrInvalidResponse, "no daily forecast data")
	}
	if days > forecastDays {
		days = forecastDays
	}

	weather := models.Weather{
		Current: models.CurrentWeather{
			TemperatureC: response.Current.Temperature2m,
			HumidityPct:  response.Current.RelativeHumidity2m,
			WindSpeedMs:  response.Current.WindSpeed10m,
			WeatherCode:  response.Current.WeatherCode,
		},
		Daily: make([]models.DailyForecast, days),
	}

	for i := 0; i < days; i++ {
		day := models.DailyForecast{
			TempMaxC:    daily.Temperature2mMax[i],
			TempMinC:    daily.Temperature2mMin[i],
			WeatherCode: daily.WeatherCode[i],
		}
		// Precipitation probability is optional upstream.
		if i < len(daily.PrecipitationProbabilityMax) {
			p := daily.PrecipitationProbabilityMax[i]
			day.PrecipProbPct = &p
		}
		weather.Daily[i] = day
	}

	return weather, nil
}
