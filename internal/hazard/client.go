// Package hazard fetches official weather-hazard bulletins (advisories,
// heavy rain, temperature extremes, typhoon tracks) from the Central
// Weather Administration open-data platform.
//
// Bulletins are supplementary to current weather, and the error policy
// reflects that: transport and shape failures are logged and absorbed into
// empty results rather than propagated. The one exception is a missing API
// key, which is a configuration error and raised.
package hazard

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/weatherfit/weather-outfit-service/internal/apperrors"
	"github.com/weatherfit/weather-outfit-service/internal/logger"
)

// Dataset identifiers of the CWA warning feeds.
const (
	DatasetWarnings          = "W-C0033-001" // 各別縣市地區目前之天氣警特報
	DatasetWarningDetails    = "W-C0033-002" // 各別天氣警特報之內容及影響區域
	DatasetHeavyRain         = "W-C0033-003" // 豪大雨特報
	DatasetLowTemperature    = "W-C0033-004" // 低溫特報
	DatasetHighTemperature   = "W-C0033-005" // 高溫資訊
	DatasetNumericalForecast = "F-C0032-001" // 一般天氣預報
	DatasetTyphoon           = "W-C0034-005" // 熱帶氣旋路徑
)

// Bulletin is a loosely-typed hazard record. The warning datasets share no
// strict schema, so the full payload is preserved alongside the handful of
// fields most feeds carry.
type Bulletin map[string]interface{}

// Client talks to the CWA open-data warning datasets.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a hazard Client. The key is required for every fetch
// and its absence raises, unlike runtime fetch failures.
func NewClient(httpClient *http.Client, apiKey string) *Client {
	return &Client{
		apiKey:     apiKey,
		baseURL:    "https://opendata.cwa.gov.tw/api/v1/rest/datastore",
		httpClient: httpClient,
	}
}

// fetchDataset GETs one warning dataset and resolves the result array out
// of whichever nesting the feed uses. Fetch failures yield an empty slice.
func (c *Client) fetchDataset(ctx context.Context, dataset string) ([]Bulletin, error) {
	if c.apiKey == "" {
		return nil, apperrors.MissingCredential("cwa")
	}

	log := logger.GetLogger()

	values := url.Values{}
	values.Set("Authorization", c.apiKey)
	values.Set("format", "JSON")
	values.Set("limit", "100")
	values.Set("expires", "false")

	u := fmt.Sprintf("%s/%s?%s", c.baseURL, dataset, values.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		log.Warnw("hazard request build failed", "dataset", dataset, "error", err)
		return []Bulletin{}, nil
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Warnw("hazard fetch failed", "dataset", dataset, "error", err)
		return []Bulletin{}, nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Warnw("hazard fetch returned non-OK status",
			"dataset", dataset,
			"status", resp.StatusCode)
		return []Bulletin{}, nil
	}

	var payload struct {
		Success interface{}     `json:"success"`
		Records json.RawMessage `json:"records"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		log.Warnw("hazard response decode failed", "dataset", dataset, "error", err)
		return []Bulletin{}, nil
	}

	if !successFlag(payload.Success) {
		log.Warnw("hazard dataset reported failure", "dataset", dataset)
		return []Bulletin{}, nil
	}

	bulletins, ok := resolveRecords(payload.Records)
	if !ok {
		log.Warnw("hazard response has unrecognized shape", "dataset", dataset)
		return []Bulletin{}, nil
	}
	return bulletins, nil
}

// successFlag tolerates both the string "true" and boolean true the
// platform has been observed to return.
func successFlag(v interface{}) bool {
	switch s := v.(type) {
	case string:
		return s == "true"
	case bool:
		return s
	}
	return false
}

// resolveRecords extracts the bulletin array from the records envelope,
// trying the known nestings in priority order: records.location,
// records.alert, records.records, then records itself as a bare array.
func resolveRecords(raw json.RawMessage) ([]Bulletin, bool) {
	if len(raw) == 0 {
		return []Bulletin{}, true
	}

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(raw, &envelope); err == nil {
		for _, key := range []string{"location", "alert", "records"} {
			inner, ok := envelope[key]
			if !ok {
				continue
			}
			var bulletins []Bulletin
			if err := json.Unmarshal(inner, &bulletins); err == nil {
				return bulletins, true
			}
		}
		// An envelope with none of the known keys means no bulletins.
		return []Bulletin{}, true
	}

	var bulletins []Bulletin
	if err := json.Unmarshal(raw, &bulletins); err == nil {
		return bulletins, true
	}

	return nil, false
}
