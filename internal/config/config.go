package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/weatherfit/weather-outfit-service/internal/apperrors"
	"github.com/weatherfit/weather-outfit-service/internal/locale"
)

// Provider selection values. The active provider is fixed per deployment;
// switching is a redeploy, not a per-request concern.
const (
	ProviderOpenWeather = "openweather"
	ProviderCWA         = "cwa"
)

type AppConfig struct {
	// WeatherProvider selects the upstream weather source.
	WeatherProvider string

	OpenWeatherAPIKey string
	CWAAPIKey         string

	// HTTPTimeout bounds every outbound provider call.
	HTTPTimeout time.Duration

	// FetchInterval controls how often the scheduler refreshes each city.
	FetchInterval time.Duration

	// StoreMaxAge bounds how long cached weather is served.
	StoreMaxAge time.Duration

	// Cities tracked by the refresh scheduler.
	Cities []string

	// MediaBaseURL is where the avatar assets are served from.
	MediaBaseURL string

	Port string
}

// Load reads configuration from the environment with sensible defaults.
// The selected provider's credential is validated here, before any network
// call: a missing key is a configuration error, not a runtime condition.
func Load() (*AppConfig, error) {
	cfg := &AppConfig{}

	cfg.WeatherProvider = getenvDefault("WEATHER_PROVIDER", ProviderOpenWeather)
	cfg.OpenWeatherAPIKey = os.Getenv("OPENWEATHER_API_KEY")
	cfg.CWAAPIKey = os.Getenv("CWA_API_KEY")

	switch cfg.WeatherProvider {
	case ProviderOpenWeather:
		if cfg.OpenWeatherAPIKey == "" {
			return nil, apperrors.MissingCredential(ProviderOpenWeather)
		}
	case ProviderCWA:
		if cfg.CWAAPIKey == "" {
			return nil, apperrors.MissingCredential(ProviderCWA)
		}
	default:
		return nil, fmt.Errorf("unknown WEATHER_PROVIDER %q", cfg.WeatherProvider)
	}

	timeoutStr := getenvDefault("HTTP_TIMEOUT", "10s")
	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil {
		return nil, fmt.Errorf("invalid HTTP_TIMEOUT: %w", err)
	}
	cfg.HTTPTimeout = timeout

	intervalStr := getenvDefault("FETCH_INTERVAL", "15m")
	interval, err := time.ParseDuration(intervalStr)
	if err != nil {
		return nil, fmt.Errorf("invalid FETCH_INTERVAL: %w", err)
	}
	cfg.FetchInterval = interval

	maxAgeStr := getenvDefault("STORE_MAX_AGE", "30m")
	maxAge, err := time.ParseDuration(maxAgeStr)
	if err != nil {
		return nil, fmt.Errorf("invalid STORE_MAX_AGE: %w", err)
	}
	cfg.StoreMaxAge = maxAge

	cfg.MediaBaseURL = getenvDefault("MEDIA_BASE_URL", "http://localhost:8080/static")
	cfg.Port = getenvDefault("PORT", "8080")
	cfg.Cities = loadCities()

	return cfg, nil
}

// loadCities reads the tracked city list, defaulting to every city in the
// locale table.
func loadCities() []string {
	raw := os.Getenv("WEATHER_CITIES")
	if raw == "" {
		return locale.Cities()
	}

	var cities []string
	for _, c := range strings.Split(raw, ",") {
		if c = strings.TrimSpace(c); c != "" {
			cities = append(cities, c)
		}
	}
	return cities
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
