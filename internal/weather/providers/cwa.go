package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"time"

	"github.com/sony/gobreaker"

	"github.com/weatherfit/weather-outfit-service/internal/apperrors"
	"github.com/weatherfit/weather-outfit-service/internal/locale"
	"github.com/weatherfit/weather-outfit-service/internal/logger"
	"github.com/weatherfit/weather-outfit-service/internal/weather"
)

const (
	cwaCurrentDataset  = "F-C0032-001" // 一般天氣預報
	cwaForecastDataset = "F-D0047-091" // 一週天氣預報

	// The general forecast dataset does not publish feels-like temperature
	// or wind speed. Feels-like is approximated as a fixed offset below the
	// raw temperature; changing the constant shifts outfit classification
	// at category boundaries, so keep it exactly as documented.
	cwaFeelsLikeOffset = 2.0
	cwaAssumedWind     = 3.0

	// Forecast entries to keep: five days at three-hour resolution.
	cwaForecastLimit = 40

	// Element value used when temperature and description series are
	// misaligned in length.
	cwaDefaultDescription = "多雲"
)

// CWAProvider implements the weather.Provider interface for the Taiwan
// Central Weather Administration open-data API. City identifiers are
// translated through the locale table first; responses are element-tagged
// time series rather than flat records, so temperature and description are
// extracted by element name and zipped by index.
type CWAProvider struct {
	name    string
	apiKey  string
	baseURL string
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
}

func NewCWAProvider(client *http.Client, apiKey string) *CWAProvider {
	return &CWAProvider{
		name:    "cwa",
		apiKey:  apiKey,
		baseURL: "https://opendata.cwa.gov.tw/api/v1/rest/datastore",
		httpCfg: HTTPClientConfig{Client: client},
		circuit: newCircuitBreaker("cwa"),
	}
}

func (p *CWAProvider) Name() string {
	return p.name
}

// cwaElement is one tagged series in a CWA response. The current dataset
// nests values under time[].parameter, the weekly dataset under
// time[].elementValue.
type cwaElement struct {
	ElementName string `json:"elementName"`
	Time        []struct {
		DataTime  string `json:"dataTime"`
		StartTime string `json:"startTime"`
		Parameter struct {
			ParameterName string `json:"parameterName"`
		} `json:"parameter"`
		ElementValue []struct {
			Value string `json:"value"`
		} `json:"elementValue"`
	} `json:"time"`
}

func (p *CWAProvider) Current(ctx context.Context, city string) (weather.Record, error) {
	if p.apiKey == "" {
		return weather.Record{}, apperrors.MissingCredential(p.name)
	}

	resp, err := p.get(ctx, cwaCurrentDataset, locale.Translate(city))
	if err != nil {
		return weather.Record{}, apperrors.Transport(p.name, err)
	}
	defer resp.Body.Close()

	var payload struct {
		Success string `json:"success"`
		Records struct {
			Location []struct {
				WeatherElement []cwaElement `json:"weatherElement"`
			} `json:"location"`
		} `json:"records"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return weather.Record{}, apperrors.Shape(p.name, err.Error())
	}
	if payload.Success != "true" || len(payload.Records.Location) == 0 {
		return weather.Record{}, apperrors.Shape(p.name, "no location data in response")
	}

	elements := payload.Records.Location[0].WeatherElement

	temp := 20.0
	if el := findElement(elements, "T"); el != nil && len(el.Time) > 0 {
		if v, err := strconv.ParseFloat(el.Time[0].Parameter.ParameterName, 64); err == nil {
			temp = v
		}
	}

	desc := cwaDefaultDescription
	if el := findElement(elements, "Wx"); el != nil && len(el.Time) > 0 {
		desc = el.Time[0].Parameter.ParameterName
	}

	feels := temp - cwaFeelsLikeOffset
	wind := cwaAssumedWind

	return weather.NewRecord(weather.RecordParams{
		Location:    city,
		Temperature: temp,
		FeelsLike:   &feels,
		Condition:   weather.ConditionFromDescription(desc),
		Description: desc,
		WindSpeed:   &wind,
	}), nil
}

func (p *CWAProvider) Forecast(ctx context.Context, city string) (weather.ForecastSeries, error) {
	if p.apiKey == "" {
		return nil, apperrors.MissingCredential(p.name)
	}

	resp, err := p.get(ctx, cwaForecastDataset, locale.Translate(city))
	if err != nil {
		return nil, apperrors.Transport(p.name, err)
	}
	defer resp.Body.Close()

	var payload struct {
		Success string `json:"success"`
		Records struct {
			Locations []struct {
				Location []struct {
					WeatherElement []cwaElement `json:"weatherElement"`
				} `json:"location"`
			} `json:"locations"`
		} `json:"records"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, apperrors.Shape(p.name, err.Error())
	}
	if payload.Success != "true" ||
		len(payload.Records.Locations) == 0 ||
		len(payload.Records.Locations[0].Location) == 0 {
		return nil, apperrors.Shape(p.name, "no location data in response")
	}

	elements := payload.Records.Locations[0].Location[0].WeatherElement

	tempEl := findElement(elements, "T")
	wxEl := findElement(elements, "Wx")
	if tempEl == nil || wxEl == nil {
		return nil, apperrors.Shape(p.name, "missing T or Wx element in response")
	}

	steps := tempEl.Time
	if len(steps) > cwaForecastLimit {
		steps = steps[:cwaForecastLimit]
	}

	series := make(weather.ForecastSeries, 0, len(steps))
	for i, step := range steps {
		ts, err := parseCWATime(step.DataTime, step.StartTime)
		if err != nil {
			// The Wx zip below indexes the step position, not the series
			// length, so a dropped step cannot shift later descriptions.
			logger.GetLogger().Warnw("skipping forecast step with unparseable timestamp",
				"provider", p.name,
				"index", i,
				"dataTime", step.DataTime,
				"startTime", step.StartTime)
			continue
		}

		var temp float64
		if len(step.ElementValue) > 0 {
			if v, err := strconv.ParseFloat(step.ElementValue[0].Value, 64); err == nil {
				temp = v
			}
		}

		// Zip by index with the description series; a shorter Wx series
		// defaults the missing entries.
		desc := cwaDefaultDescription
		if i < len(wxEl.Time) && len(wxEl.Time[i].ElementValue) > 0 {
			desc = wxEl.Time[i].ElementValue[0].Value
		}

		feels := temp - cwaFeelsLikeOffset
		wind := cwaAssumedWind

		series = append(series, weather.ForecastEntry{
			Timestamp: ts.Unix(),
			Record: weather.NewRecord(weather.RecordParams{
				Location:    city,
				Temperature: temp,
				FeelsLike:   &feels,
				Condition:   weather.ConditionFromDescription(desc),
				Description: desc,
				WindSpeed:   &wind,
			}),
		})
	}

	// The platform publishes steps chronologically; sorting keeps the
	// non-decreasing timestamp invariant regardless.
	sort.SliceStable(series, func(i, j int) bool {
		return series[i].Timestamp < series[j].Timestamp
	})

	return series, nil
}

func (p *CWAProvider) get(ctx context.Context, dataset, locationName string) (*http.Response, error) {
	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("Authorization", p.apiKey)
		values.Set("locationName", locationName)

		u := fmt.Sprintf("%s/%s?%s", p.baseURL, dataset, values.Encode())
		req, err := http.NewRequest(http.MethodGet, u, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Accept", "application/json")
		return req, nil
	}

	return doRequest(ctx, p.httpCfg, p.circuit, buildRequest)
}

func findElement(elements []cwaElement, name string) *cwaElement {
	for i := range elements {
		if elements[i].ElementName == name {
			return &elements[i]
		}
	}
	return nil
}

var cwaTimeZone = time.FixedZone("CST", 8*60*60)

// parseCWATime accepts either RFC3339 or the "2006-01-02 15:04:05" layout
// the open-data platform uses, in Taiwan local time.
func parseCWATime(candidates ...string) (time.Time, error) {
	for _, s := range candidates {
		if s == "" {
			continue
		}
		if ts, err := time.Parse(time.RFC3339, s); err == nil {
			return ts, nil
		}
		if ts, err := time.ParseInLocation("2006-01-02 15:04:05", s, cwaTimeZone); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("no parseable timestamp in %v", candidates)
}
