package config

import (
	"os"

	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

type Config struct {
	App         AppConfig         `yaml:"app"`
	Server      ServerConfig      `yaml:"server"`
	Log         LogConfig         `yaml:"log"`
	Sentry      SentryConfig      `yaml:"sentry"`
	Redis       RedisConfig       `yaml:"redis"`
	Geocoding   GeocodingConfig   `yaml:"geocoding"`
	Forecast    ForecastConfig    `yaml:"forecast"`
	Geolocation GeolocationConfig `yaml:"geolocation"`
	Cities      CitiesConfig      `yaml:"cities"`
}

type AppConfig struct {
	Name    string `yaml:"name" envconfig:"APP_NAME"`
	Version string `yaml:"version" envconfig:"APP_VERSION"`
	Env     string `yaml:"env" envconfig:"APP_ENV"`
}

type ServerConfig struct {
	Port         string `yaml:"port" envconfig:"SERVER_PORT"`
	ReadTimeout  int    `yaml:"read_timeout" envconfig:"SERVER_READ_TIMEOUT"`
	WriteTimeout int    `yaml:"write_timeout" envconfig:"SERVER_WRITE_TIMEOUT"`
	IdleTimeout  int    `yaml:"idle_timeout" envconfig:"SERVER_IDLE_TIMEOUT"`
}

type LogConfig struct {
	Level  string `yaml:"level" envconfig:"LOG_LEVEL"`
	Format string `yaml:"format" envconfig:"LOG_FORMAT"`
}

type SentryConfig struct {
	DSN string `yaml:"dsn" envconfig:"SENTRY_DSN"`
}

// RedisConfig selects the persisted-state backend. With an empty Addr the
// service falls back to the in-memory store.
type RedisConfig struct {
	Addr     string `yaml:"addr" envconfig:"REDIS_ADDR"`
	Password string `yaml:"password" envconfig:"REDIS_PASSWORD"`
	DB       int    `yaml:"db" envconfig:"REDIS_DB"`
	StateKey string `yaml:"state_key" envconfig:"REDIS_STATE_KEY"`
}

type GeocodingConfig struct {
	BaseURL  string `yaml:"base_url" envconfig:"GEOCODING_BASE_URL"`
	Language string `yaml:"language" envconfig:"GEOCODING_LANGUAGE"`
	Count    int    `yaml:"count" envconfig:"GEOCODING_COUNT"`
	Timeout  int    `yaml:"timeout" envconfig:"GEOCODING_TIMEOUT"`
}

type ForecastConfig struct {
	BaseURL string `yaml:"base_url" envconfig:"FORECAST_BASE_URL"`
	Timeout int    `yaml:"timeout" envconfig:"FORECAST_TIMEOUT"`
}

// GeolocationConfig drives the one-shot position lookup. Timeout is the full
// request budget in seconds; no cached position is ever served.
type GeolocationConfig struct {
	BaseURL string `yaml:"base_url" envconfig:"GEOLOCATION_BASE_URL"`
	Timeout int    `yaml:"timeout" envconfig:"GEOLOCATION_TIMEOUT"`
}

// CitiesConfig bounds the list and carries the typeahead corpus. Capacity 0
// disables the bound. Suggestions are data, not logic; edit the YAML.
type CitiesConfig struct {
	Capacity    int      `yaml:"capacity" envconfig:"CITIES_CAPACITY"`
	Suggestions []string `yaml:"suggestions"`
}

// defaultConfig seeds the values later passes may override. Defaults live
// here, not in struct tags: envconfig would re-apply tag defaults after the
// YAML pass and clobber file-provided values.
func defaultConfig() *Config {
	return &Config{
		App: AppConfig{
			Name:    "weather-dashboard",
			Version: "1.0.0",
			Env:     "development",
		},
		Server: ServerConfig{
			Port:         "8080",
			ReadTimeout:  10,
			WriteTimeout: 10,
			IdleTimeout:  120,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
		Redis: RedisConfig{
			StateKey: "weather-dashboard:state",
		},
		Geocoding: GeocodingConfig{
			BaseURL:  "https://geocoding-api.open-meteo.com/v1",
			Language: "en",
			Count:    10,
			Timeout:  30,
		},
		Forecast: ForecastConfig{
			BaseURL: "https://api.open-meteo.com/v1/forecast",
			Timeout: 30,
		},
		Geolocation: GeolocationConfig{
			BaseURL: "http://ip-api.com",
			Timeout: 10,
		},
		Cities: CitiesConfig{
			Capacity: 5,
		},
	}
}

// ConfigProvider abstracts where configuration comes from, mainly so tests
// can inject a canned Config.
type ConfigProvider interface {
	Load() (*Config, error)
	Validate(config *Config) error
}

type FileConfigProvider struct {
	path string
}

func NewFileConfigProvider(path string) *FileConfigProvider {
	return &FileConfigProvider{path: path}
}

// Load layers configuration: code defaults, then the YAML file, then
// environment variables. Each pass only touches what it actually provides.
func (p *FileConfigProvider) Load() (*Config, error) {
	cnf := defaultConfig()

	if err := p.loadFromFile(cnf); err != nil {
		return nil, err
	}

	if err := envconfig.Process("", cnf); err != nil {
		return nil, errors.Wrap(err, "environment variable parsing")
	}

	return cnf, nil
}

func (p *FileConfigProvider) loadFromFile(cnf *Config) error {
	yamlData, err := os.ReadFile(p.path)
	if err != nil {
		// A missing file is fine; defaults and env cover everything.
		return nil
	}

	if err := yaml.Unmarshal(yamlData, cnf); err != nil {
		return errors.Wrapf(err, "parse YAML config %s", p.path)
	}

	return nil
}

func (p *FileConfigProvider) Validate(config *Config) error {
	if config.App.Name == "" {
		return errors.New("app.name is required")
	}
	if config.Server.Port == "" {
		return errors.New("server.port is required")
	}
	if config.Geocoding.BaseURL == "" {
		return errors.New("geocoding.base_url is required")
	}
	if config.Geocoding.Count < 1 {
		return errors.New("geocoding.count must be at least 1")
	}
	if config.Forecast.BaseURL == "" {
		return errors.New("forecast.base_url is required")
	}
	if config.Geolocation.Timeout <= 0 {
		return errors.New("geolocation.timeout must be positive")
	}
	if config.Cities.Capacity < 0 {
		return errors.New("cities.capacity cannot be negative")
	}
	return nil
}

func NewConfig() (*Config, error) {
	return NewConfigWithProvider(NewFileConfigProvider("config/config.yaml"))
}

func NewConfigWithProvider(provider ConfigProvider) (*Config, error) {
	cnf, err := provider.Load()
	if err != nil {
		return nil, err
	}

	if err := provider.Validate(cnf); err != nil {
		return nil, err
	}

	return cnf, nil
}

func (c *Config) IsDevelopment() bool {
	return c.App.Env == "development"
}

func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}

// UseRedisStore reports whether a redis backend is configured for the
// persisted state slot.
func (c *Config) UseRedisStore() bool {
	return c.Redis.Addr != ""
}
