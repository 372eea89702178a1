package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sort"

	"github.com/sony/gobreaker"

	"github.com/weatherfit/weather-outfit-service/internal/apperrors"
	"github.com/weatherfit/weather-outfit-service/internal/weather"
)

// OpenWeatherProvider implements the weather.Provider interface for
// OpenWeatherMap. Cities are queried with the TW region suffix and the
// zh-TW localized descriptions the outfit rules expect.
type OpenWeatherProvider struct {
	name    string
	apiKey  string
	baseURL string
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
}

func NewOpenWeatherProvider(client *http.Client, apiKey string) *OpenWeatherProvider {
	return &OpenWeatherProvider{
		name:    "openweather",
		apiKey:  apiKey,
		baseURL: "https://api.openweathermap.org/data/2.5",
		httpCfg: HTTPClientConfig{Client: client},
		circuit: newCircuitBreaker("openweather"),
	}
}

func (p *OpenWeatherProvider) Name() string {
	return p.name
}

// openWeatherEntry is the shared current/forecast-step payload shape.
type openWeatherEntry struct {
	Dt   int64 `json:"dt"`
	Main struct {
		Temp      float64  `json:"temp"`
		FeelsLike *float64 `json:"feels_like"`
	} `json:"main"`
	Weather []struct {
		Main        string `json:"main"`
		Description string `json:"description"`
	} `json:"weather"`
	Wind struct {
		Speed *float64 `json:"speed"`
	} `json:"wind"`
}

func (p *OpenWeatherProvider) Current(ctx context.Context, city string) (weather.Record, error) {
	if p.apiKey == "" {
		return weather.Record{}, apperrors.MissingCredential(p.name)
	}

	resp, err := p.get(ctx, "/weather", city)
	if err != nil {
		return weather.Record{}, apperrors.Transport(p.name, err)
	}
	defer resp.Body.Close()

	var payload openWeatherEntry
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return weather.Record{}, apperrors.Shape(p.name, err.Error())
	}

	return p.toRecord(city, payload), nil
}

func (p *OpenWeatherProvider) Forecast(ctx context.Context, city string) (weather.ForecastSeries, error) {
	if p.apiKey == "" {
		return nil, apperrors.MissingCredential(p.name)
	}

	resp, err := p.get(ctx, "/forecast", city)
	if err != nil {
		return nil, apperrors.Transport(p.name, err)
	}
	defer resp.Body.Close()

	var payload struct {
		List []openWeatherEntry `json:"list"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, apperrors.Shape(p.name, err.Error())
	}

	series := make(weather.ForecastSeries, 0, len(payload.List))
	for _, entry := range payload.List {
		series = append(series, weather.ForecastEntry{
			Timestamp: entry.Dt,
			Record:    p.toRecord(city, entry),
		})
	}

	// The API returns steps in order already; sorting keeps the
	// non-decreasing timestamp invariant regardless.
	sort.SliceStable(series, func(i, j int) bool {
		return series[i].Timestamp < series[j].Timestamp
	})

	return series, nil
}

func (p *OpenWeatherProvider) get(ctx context.Context, path, city string) (*http.Response, error) {
	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("q", fmt.Sprintf("%s,TW", city))
		values.Set("appid", p.apiKey)
		values.Set("units", "metric")
		values.Set("lang", "zh_tw")

		u := fmt.Sprintf("%s%s?%s", p.baseURL, path, values.Encode())
		return http.NewRequest(http.MethodGet, u, nil)
	}

	return doRequest(ctx, p.httpCfg, p.circuit, buildRequest)
}

// toRecord converts one OpenWeatherMap entry into a canonical record.
// Condition codes arrive already in the canonical vocabulary, so they map
// 1:1; NewRecord handles anything unrecognized.
func (p *OpenWeatherProvider) toRecord(city string, entry openWeatherEntry) weather.Record {
	var cond weather.Condition
	var desc string
	if len(entry.Weather) > 0 {
		cond = weather.Condition(entry.Weather[0].Main)
		desc = entry.Weather[0].Description
	}

	return weather.NewRecord(weather.RecordParams{
		Location:    city,
		Temperature: entry.Main.Temp,
		FeelsLike:   entry.Main.FeelsLike,
		Condition:   cond,
		Description: desc,
		WindSpeed:   entry.Wind.Speed,
	})
}
