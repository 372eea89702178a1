package hazard

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/weatherfit/weather-outfit-service/internal/apperrors"
	"github.com/weatherfit/weather-outfit-service/internal/locale"
	"github.com/weatherfit/weather-outfit-service/internal/logger"
)

// Warnings returns the current warnings per county/city.
func (c *Client) Warnings(ctx context.Context) ([]Bulletin, error) {
	return c.fetchDataset(ctx, DatasetWarnings)
}

// WarningDetails returns the content and affected regions of each warning.
func (c *Client) WarningDetails(ctx context.Context) ([]Bulletin, error) {
	return c.fetchDataset(ctx, DatasetWarningDetails)
}

// HeavyRainWarnings returns active heavy-rain advisories.
func (c *Client) HeavyRainWarnings(ctx context.Context) ([]Bulletin, error) {
	return c.fetchDataset(ctx, DatasetHeavyRain)
}

// LowTemperatureWarnings returns active low-temperature advisories.
func (c *Client) LowTemperatureWarnings(ctx context.Context) ([]Bulletin, error) {
	return c.fetchDataset(ctx, DatasetLowTemperature)
}

// HighTemperatureWarnings returns active high-temperature information.
func (c *Client) HighTemperatureWarnings(ctx context.Context) ([]Bulletin, error) {
	return c.fetchDataset(ctx, DatasetHighTemperature)
}

// NumericalForecast returns the general-forecast dataset for one city as a
// bulletin feed, for display alongside the warning datasets. Same
// empty-on-failure policy as the warning accessors.
func (c *Client) NumericalForecast(ctx context.Context, city string) ([]Bulletin, error) {
	if c.apiKey == "" {
		return nil, apperrors.MissingCredential("cwa")
	}

	log := logger.GetLogger()

	values := url.Values{}
	values.Set("Authorization", c.apiKey)
	values.Set("locationName", locale.Translate(city))

	u := fmt.Sprintf("%s/%s?%s", c.baseURL, DatasetNumericalForecast, values.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		log.Warnw("numerical forecast request build failed", "error", err)
		return []Bulletin{}, nil
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Warnw("numerical forecast fetch failed", "city", city, "error", err)
		return []Bulletin{}, nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Warnw("numerical forecast returned non-OK status",
			"city", city,
			"status", resp.StatusCode)
		return []Bulletin{}, nil
	}

	var payload struct {
		Success interface{} `json:"success"`
		Records struct {
			Location []Bulletin `json:"location"`
		} `json:"records"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		log.Warnw("numerical forecast decode failed", "error", err)
		return []Bulletin{}, nil
	}

	if !successFlag(payload.Success) {
		log.Warnw("numerical forecast dataset reported failure")
		return []Bulletin{}, nil
	}

	if payload.Records.Location == nil {
		return []Bulletin{}, nil
	}
	return payload.Records.Location, nil
}

// Typhoons returns active tropical-cyclone records. The typhoon dataset
// nests its payload differently from the warning feeds
// (records.tropicalCyclones.tropicalCyclone) and may return either one
// object or an array; both normalize to a slice.
func (c *Client) Typhoons(ctx context.Context) ([]Bulletin, error) {
	if c.apiKey == "" {
		return nil, apperrors.MissingCredential("cwa")
	}

	log := logger.GetLogger()

	values := url.Values{}
	values.Set("Authorization", c.apiKey)
	values.Set("format", "JSON")
	values.Set("limit", "100")
	values.Set("dataset", "analysisData,forecastData")

	u := fmt.Sprintf("%s/%s?%s", c.baseURL, DatasetTyphoon, values.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		log.Warnw("typhoon request build failed", "error", err)
		return []Bulletin{}, nil
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Warnw("typhoon fetch failed", "error", err)
		return []Bulletin{}, nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Warnw("typhoon fetch returned non-OK status", "status", resp.StatusCode)
		return []Bulletin{}, nil
	}

	var payload struct {
		Success interface{} `json:"success"`
		Records struct {
			TropicalCyclones struct {
				TropicalCyclone json.RawMessage `json:"tropicalCyclone"`
			} `json:"tropicalCyclones"`
		} `json:"records"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		log.Warnw("typhoon response decode failed", "error", err)
		return []Bulletin{}, nil
	}

	if !successFlag(payload.Success) {
		log.Warnw("typhoon dataset reported failure")
		return []Bulletin{}, nil
	}

	raw := payload.Records.TropicalCyclones.TropicalCyclone
	if len(raw) == 0 {
		return []Bulletin{}, nil
	}

	var cyclones []Bulletin
	if err := json.Unmarshal(raw, &cyclones); err == nil {
		return cyclones, nil
	}

	var single Bulletin
	if err := json.Unmarshal(raw, &single); err == nil {
		return []Bulletin{single}, nil
	}

	log.Warnw("typhoon response has unrecognized shape")
	return []Bulletin{}, nil
}
