package http

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"

	"weather-dashboard/internal/geoloc"
	"weather-dashboard/internal/models"
	"weather-dashboard/internal/services/citylist"
)

// DashboardResponse is the full dashboard view
type DashboardResponse struct {
	Phase          string         `json:"phase" example:"populated"`
	UseGeolocation bool           `json:"useGeolocation" example:"false"`
	Cities         []CityResponse `json:"cities"`
	Message        string         `json:"message,omitempty" example:"Location access denied. Add a city manually."`
}

// CityResponse represents one tracked city with its last known weather
type CityResponse struct {
	Name              string           `json:"name" example:"Paris"`
	Latitude          float64          `json:"latitude" example:"48.8566"`
	Longitude         float64          `json:"longitude" example:"2.3522"`
	IsCurrentLocation bool             `json:"isCurrentLocation" example:"false"`
	Weather           *WeatherResponse `json:"weather,omitempty"`
}

// WeatherResponse carries current conditions plus the three-day outlook
type WeatherResponse struct {
	Current CurrentResponse `json:"current"`
	Daily   []DailyResponse `json:"daily"`
}

// CurrentResponse represents the current conditions of a city
type CurrentResponse struct {
	TemperatureC float64 `json:"temperatureC" example:"21.4"`
	HumidityPct  float64 `json:"humidityPct" example:"63"`
	WindSpeedMs  float64 `json:"windSpeedMs" example:"4.2"`
	WeatherCode  int     `json:"weatherCode" example:"2"`
	Description  string  `json:"description" example:"Partly cloudy"`
}

// DailyResponse represents a single forecast day
type DailyResponse struct {
	TempMaxC      float64  `json:"tempMaxC" example:"24.0"`
	TempMinC      float64  `json:"tempMinC" example:"14.5"`
	WeatherCode   int      `json:"weatherCode" example:"61"`
	Description   string   `json:"description" example:"Slight rain"`
	PrecipProbPct *float64 `json:"precipProbPct,omitempty" example:"35"`
}

// AddCityRequest is the body for adding a city by name
type AddCityRequest struct {
	Name string `json:"name" example:"Paris"`
}

// SuggestionsResponse lists typeahead matches for a query
type SuggestionsResponse struct {
	Suggestions []string `json:"suggestions"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error" example:"City not found. Check the spelling."`
}

// GetDashboard godoc
// @Summary Get the dashboard state
// @Description Returns the interaction phase, the geolocation preference and every tracked city with its last known weather.
// @Tags Dashboard
// @Produce json
// @Success 200 {object} DashboardResponse "Current dashboard state"
// @Router /dashboard [get]
func (r *routes) handleDashboard(c *fiber.Ctx) error {
	return c.JSON(dashboardResponse(r.manager.Snapshot(), ""))
}

// AddCity godoc
// @Summary Add a city by name
// @Description Geocodes the name, appends the city to the dashboard and refreshes weather for every tracked city.
// @Tags Dashboard
// @Accept json
// @Produce json
// @Param request body AddCityRequest true "City to add"
// @Success 201 {object} DashboardResponse "City added"
// @Failure 400 {object} ErrorResponse "Malformed request body"
// @Failure 422 {object} ErrorResponse "Validation failed or city unknown"
// @Failure 502 {object} ErrorResponse "City added but the weather refresh failed"
// @Router /cities [post]
func (r *routes) handleAddCity(c *fiber.Ctx) error {
	var req AddCityRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error: "Invalid request body",
		})
	}

	if err := r.manager.AddCity(c.Context(), req.Name); err != nil {
		return r.respondCityError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(dashboardResponse(r.manager.Snapshot(), ""))
}

// RemoveCity godoc
// @Summary Remove a city by its list index
// @Tags Dashboard
// @Produce json
// @Param index path integer true "Zero-based city index"
// @Success 200 {object} DashboardResponse
// @Failure 404 {object} ErrorResponse
// @Router /cities/{index} [delete]
func (r *routes) handleRemoveCity(c *fiber.Ctx) error {
	index, err := strconv.Atoi(c.Params("index"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error: "Invalid city index",
		})
	}

	if err := r.manager.RemoveCity(c.Context(), index); err != nil {
		if errors.Is(err, citylist.ErrNoSuchCity) {
			return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{
				Error: "No city at that position",
			})
		}
		return r.respondCityError(c, err)
	}

	return c.JSON(dashboardResponse(r.manager.Snapshot(), ""))
}

// AllowGeolocation godoc
// @Summary Accept the geolocation offer
// @Description Resolves the device position and adds it as the current location city. A failed lookup still answers 200: the dashboard falls back to the manual-add flow and the message explains why.
// @Tags Geolocation
// @Produce json
// @Success 200 {object} DashboardResponse
// @Failure 502 {object} ErrorResponse "Position resolved but the weather refresh failed"
// @Router /geolocation/allow [post]
func (r *routes) handleAllowGeolocation(c *fiber.Ctx) error {
	err := r.manager.AllowGeolocation(c.Context())
	if err != nil {
		if msg := geolocationMessage(err); msg != "" {
			// The fallback transition already happened; report it as state.
			return c.JSON(dashboardResponse(r.manager.Snapshot(), msg))
		}
		return r.respondCityError(c, err)
	}

	return c.JSON(dashboardResponse(r.manager.Snapshot(), ""))
}

// DenyGeolocation godoc
// @Summary Decline the geolocation offer
// @Tags Geolocation
// @Produce json
// @Success 200 {object} DashboardResponse
// @Router /geolocation/deny [post]
func (r *routes) handleDenyGeolocation(c *fiber.Ctx) error {
	if err := r.manager.DenyGeolocation(c.Context()); err != nil {
		return r.respondCityError(c, err)
	}

	return c.JSON(dashboardResponse(r.manager.Snapshot(), ""))
}

// RefreshWeather godoc
// @Summary Refresh weather for every tracked city
// @Tags Dashboard
// @Produce json
// @Success 200 {object} DashboardResponse
// @Failure 502 {object} ErrorResponse "Refresh failed, last known weather kept"
// @Router /refresh [post]
func (r *routes) handleRefresh(c *fiber.Ctx) error {
	if err := r.manager.Refresh(c.Context()); err != nil {
		return r.respondCityError(c, err)
	}

	return c.JSON(dashboardResponse(r.manager.Snapshot(), ""))
}

// GetSuggestions godoc
// @Summary City name suggestions
// @Tags Dashboard
// @Produce json
// @Param q query string true "Partial city name, at least 2 characters"
// @Success 200 {object} SuggestionsResponse
// @Router /suggestions [get]
func (r *routes) handleSuggestions(c *fiber.Ctx) error {
	matches := r.suggester.Filter(c.Query("q"))
	if matches == nil {
		matches = []string{}
	}

	return c.JSON(SuggestionsResponse{Suggestions: matches})
}

func (r *routes) respondCityError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, citylist.ErrNameTooShort):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(ErrorResponse{
			Error: "Please enter a city name of at least 2 characters",
		})
	case errors.Is(err, citylist.ErrDuplicateCity):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(ErrorResponse{
			Error: "This city is already on the dashboard",
		})
	case errors.Is(err, citylist.ErrCapacityExceeded):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(ErrorResponse{
			Error: "City limit reached. Remove a city to add another",
		})
	case errors.Is(err, citylist.ErrCityNotFound):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(ErrorResponse{
			Error: "City not found. Check the spelling.",
		})
	case errors.Is(err, citylist.ErrRefreshFailed):
		return c.Status(fiber.StatusBadGateway).JSON(ErrorResponse{
			Error: "Could not load weather data. Try again later.",
		})
	default:
		r.l.Error(err, map[string]any{"path": c.Path()})
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Error: "Internal server error",
		})
	}
}

// geolocationMessage maps a provider failure to the user-facing explanation.
// Returns "" for errors that are not geolocation failures.
func geolocationMessage(err error) string {
	switch {
	case errors.Is(err, geoloc.ErrPermissionDenied):
		return "Location access denied. Add a city manually."
	case errors.Is(err, geoloc.ErrTimeout):
		return "Location request timed out. Add a city manually."
	case errors.Is(err, geoloc.ErrPositionUnavailable):
		return "Location unavailable. Add a city manually."
	default:
		return ""
	}
}

func dashboardResponse(snap citylist.Snapshot, message string) DashboardResponse {
	cities := make([]CityResponse, len(snap.Cities))
	for i, city := range snap.Cities {
		cities[i] = CityResponse{
			Name:              city.Name,
			Latitude:          city.Latitude,
			Longitude:         city.Longitude,
			IsCurrentLocation: city.IsCurrentLocation,
			Weather:           weatherResponse(city.Weather),
		}
	}

	return DashboardResponse{
		Phase:          string(snap.Phase),
		UseGeolocation: snap.UseGeolocation,
		Cities:         cities,
		Message:        strings.TrimSpace(message),
	}
}

func weatherResponse(w *models.Weather) *WeatherResponse {
	if w == nil {
		return nil
	}

	daily := make([]DailyResponse, len(w.Daily))
	for i, day := range w.Daily {
		daily[i] = DailyResponse{
			TempMaxC:      day.TempMaxC,
			TempMinC:      day.TempMinC,
			WeatherCode:   day.WeatherCode,
			Description:   models.WeatherCodeDescription(day.WeatherCode),
			PrecipProbPct: day.PrecipProbPct,
		}
	}

	return &WeatherResponse{
		Current: CurrentResponse{
			TemperatureC: w.Current.TemperatureC,
			HumidityPct:  w.Current.HumidityPct,
			WindSpeedMs:  w.Current.WindSpeedMs,
			WeatherCode:  w.Current.WeatherCode,
			Description:  models.WeatherCodeDescription(w.Current.WeatherCode),
		},
		Daily: daily,
	}
}
