package models

// CurrentWeather holds the latest observed conditions for a coordinate.
type CurrentWeather struct {
	TemperatureC float64 `json:"temperature_c" example:"21.4"`
	HumidityPct  float64 `json:"humidity_pct" example:"63"`
	WindSpeedMs  float64 `json:"wind_speed_ms" example:"4.2"`
	WeatherCode  int     `json:"weather_code" example:"2"`
}

// DailyForecast is one day of the short-range forecast. PrecipProbPct is
// absent when the upstream omits precipitation probability.
type DailyForecast struct {
	TempMaxC      float64  `json:"temp_max_c" example:"24.0"`
	TempMinC      float64  `json:"temp_min_c" example:"14.5"`
	WeatherCode   int      `json:"weather_code" example:"3"`
	PrecipProbPct *float64 `json:"precip_prob_pct,omitempty" example:"35"`
}

// Weather is produced exclusively by the forecast repository and attached to
// a City after a successful fetch. Daily is ordered today-first.
type Weather struct {
	Current CurrentWeather  `json:"current"`
	Daily   []DailyForecast `json:"daily"`
}

var weatherCodeDescriptions = map[int]string{
	0:  "Clear sky",
	1:  "Mainly clear",
	2:  "Partly cloudy",
	3:  "Overcast",
	45: "Fog",
	48: "Depositing rime fog",
	51: "Light drizzle",
	53: "Moderate drizzle",
	55: "Dense drizzle",
	56: "Light freezing drizzle",
	57: "Dense freezing drizzle",
	61: "Slight rain",
	63: "Moderate rain",
	65: "Heavy rain",
	66: "Light freezing rain",
	67: "Heavy freezing rain",
	71: "Slight snowfall",
	73: "Moderate snowfall",
	75: "Heavy snowfall",
	77: "Snow grains",
	80: "Slight rain showers",
	81: "Moderate rain showers",
	82: "Violent rain showers",
	85: "Slight snow showers",
	86: "Heavy snow showers",
	95: "Thunderstorm",
	96: "Thunderstorm with slight hail",
	99: "Thunderstorm with heavy hail",
}

// WeatherCodeDescription maps a WMO weather code to a display string.
func WeatherCodeDescription(code int) string {
	if d, ok := weatherCodeDescriptions[code]; ok {
		return d
	}
	return "Unknown"
}
