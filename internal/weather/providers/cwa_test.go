package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weatherfit/weather-outfit-service/internal/apperrors"
	"github.com/weatherfit/weather-outfit-service/internal/weather"
)

func newCWATestProvider(handler http.HandlerFunc) (*CWAProvider, *httptest.Server) {
	srv := httptest.NewServer(handler)
	p := NewCWAProvider(srv.Client(), "test-key")
	p.baseURL = srv.URL
	return p, srv
}

func cwaCurrentBody(temp, wx string) string {
	return fmt.Sprintf(`{
		"success": "true",
		"records": {
			"location": [{
				"locationName": "臺北市",
				"weatherElement": [
					{"elementName": "Wx", "time": [{"parameter": {"parameterName": %q}}]},
					{"elementName": "T", "time": [{"parameter": {"parameterName": %q}}]}
				]
			}]
		}
	}`, wx, temp)
}

func TestCWACurrent(t *testing.T) {
	p, srv := newCWATestProvider(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/"+cwaCurrentDataset, r.URL.Path)
		assert.Equal(t, "test-key", r.URL.Query().Get("Authorization"))
		// 台北市 is translated to the CWA spelling.
		assert.Equal(t, "臺北市", r.URL.Query().Get("locationName"))
		fmt.Fprint(w, cwaCurrentBody("26", "晴時多雲"))
	})
	defer srv.Close()

	rec, err := p.Current(context.Background(), "台北市")
	require.NoError(t, err)

	assert.Equal(t, "台北市", rec.Location)
	assert.Equal(t, 26.0, rec.Temperature)
	assert.Equal(t, 24.0, rec.FeelsLike, "feels-like is temperature minus 2")
	assert.Equal(t, weather.ConditionClouds, rec.Condition)
	assert.Equal(t, "晴時多雲", rec.ConditionDescription)
	assert.Equal(t, 3.0, rec.WindSpeed)
}

// A description mentioning both rain and clear derives Rain: the substring
// checks are priority-ordered.
func TestCWACurrentRainPriority(t *testing.T) {
	p, srv := newCWATestProvider(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, cwaCurrentBody("22", "晴時多雲偶陣雨"))
	})
	defer srv.Close()

	rec, err := p.Current(context.Background(), "台北市")
	require.NoError(t, err)
	assert.Equal(t, weather.ConditionRain, rec.Condition)
}

func TestCWACurrentShapeError(t *testing.T) {
	p, srv := newCWATestProvider(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"success": "false"}`)
	})
	defer srv.Close()

	_, err := p.Current(context.Background(), "台北市")
	assert.True(t, apperrors.IsType(err, apperrors.ShapeError))
}

func cwaForecastBody(tempSteps, wxSteps int) string {
	step := func(i int, value string) map[string]interface{} {
		return map[string]interface{}{
			"dataTime":     fmt.Sprintf("2026-08-%02d 12:00:00", i%27+1),
			"elementValue": []map[string]string{{"value": value}},
		}
	}

	var tSteps, wSteps []map[string]interface{}
	for i := 0; i < tempSteps; i++ {
		tSteps = append(tSteps, step(i, fmt.Sprintf("%d", 20+i%5)))
	}
	for i := 0; i < wxSteps; i++ {
		wSteps = append(wSteps, step(i, "晴時多雲"))
	}

	payload := map[string]interface{}{
		"success": "true",
		"records": map[string]interface{}{
			"locations": []map[string]interface{}{{
				"location": []map[string]interface{}{{
					"locationName": "臺北市",
					"weatherElement": []map[string]interface{}{
						{"elementName": "T", "time": tSteps},
						{"elementName": "Wx", "time": wSteps},
					},
				}},
			}},
		},
	}

	b, _ := json.Marshal(payload)
	return string(b)
}

// cwaForecastBodyWithTimes builds a forecast payload with explicit step
// timestamps; temperatures count up from 20 and descriptions index the wx
// slice, defaulting when it runs short.
func cwaForecastBodyWithTimes(times []string, wx []string) string {
	var tSteps, wSteps []map[string]interface{}
	for i, ts := range times {
		tSteps = append(tSteps, map[string]interface{}{
			"dataTime":     ts,
			"elementValue": []map[string]string{{"value": fmt.Sprintf("%d", 20+i)}},
		})
		desc := "晴時多雲"
		if i < len(wx) {
			desc = wx[i]
		}
		wSteps = append(wSteps, map[string]interface{}{
			"dataTime":     ts,
			"elementValue": []map[string]string{{"value": desc}},
		})
	}

	payload := map[string]interface{}{
		"success": "true",
		"records": map[string]interface{}{
			"locations": []map[string]interface{}{{
				"location": []map[string]interface{}{{
					"locationName": "臺北市",
					"weatherElement": []map[string]interface{}{
						{"elementName": "T", "time": tSteps},
						{"elementName": "Wx", "time": wSteps},
					},
				}},
			}},
		},
	}

	b, _ := json.Marshal(payload)
	return string(b)
}

// Misordered upstream steps come back sorted, with each record keeping the
// description of its own step.
func TestCWAForecastOrdered(t *testing.T) {
	p, srv := newCWATestProvider(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, cwaForecastBodyWithTimes(
			[]string{"2026-08-29 18:00:00", "2026-08-29 12:00:00"},
			[]string{"陣雨", "晴"},
		))
	})
	defer srv.Close()

	series, err := p.Forecast(context.Background(), "台北市")
	require.NoError(t, err)
	require.Len(t, series, 2)

	for i := 1; i < len(series); i++ {
		assert.LessOrEqual(t, series[i-1].Timestamp, series[i].Timestamp,
			"forecast timestamps must be non-decreasing")
	}
	assert.Equal(t, "晴", series[0].ConditionDescription)
	assert.Equal(t, "陣雨", series[1].ConditionDescription)
}

// A step with an unparseable timestamp is dropped without shifting the
// descriptions of the surviving steps.
func TestCWAForecastSkipsUnparseableTimestamp(t *testing.T) {
	p, srv := newCWATestProvider(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, cwaForecastBodyWithTimes(
			[]string{"2026-08-29 12:00:00", "not-a-time", "2026-08-29 18:00:00"},
			[]string{"晴", "陣雨", "多雲時陰"},
		))
	})
	defer srv.Close()

	series, err := p.Forecast(context.Background(), "台北市")
	require.NoError(t, err)
	require.Len(t, series, 2)

	assert.Equal(t, "晴", series[0].ConditionDescription)
	assert.Equal(t, "多雲時陰", series[1].ConditionDescription)
	assert.Equal(t, 22.0, series[1].Temperature)
}

func TestCWAForecastLimitsTo40Entries(t *testing.T) {
	p, srv := newCWATestProvider(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/"+cwaForecastDataset, r.URL.Path)
		fmt.Fprint(w, cwaForecastBody(56, 56))
	})
	defer srv.Close()

	series, err := p.Forecast(context.Background(), "台北市")
	require.NoError(t, err)
	assert.Len(t, series, 40)
}

// When the description series is shorter than the temperature series, the
// missing entries default to 多雲.
func TestCWAForecastMisalignedElements(t *testing.T) {
	p, srv := newCWATestProvider(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, cwaForecastBody(6, 3))
	})
	defer srv.Close()

	series, err := p.Forecast(context.Background(), "台北市")
	require.NoError(t, err)
	require.Len(t, series, 6)

	assert.Equal(t, "晴時多雲", series[2].ConditionDescription)
	assert.Equal(t, "多雲", series[3].ConditionDescription)
	assert.Equal(t, weather.ConditionClouds, series[3].Condition)
}

func TestCWAForecastFeelsLikeOffset(t *testing.T) {
	p, srv := newCWATestProvider(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, cwaForecastBody(4, 4))
	})
	defer srv.Close()

	series, err := p.Forecast(context.Background(), "台北市")
	require.NoError(t, err)

	for _, entry := range series {
		assert.Equal(t, entry.Temperature-2, entry.FeelsLike)
		assert.Equal(t, 3.0, entry.WindSpeed)
	}
}

func TestCWAMissingKey(t *testing.T) {
	p := NewCWAProvider(http.DefaultClient, "")

	_, err := p.Current(context.Background(), "台北市")
	assert.True(t, apperrors.IsType(err, apperrors.ConfigurationError))

	_, err = p.Forecast(context.Background(), "台北市")
	assert.True(t, apperrors.IsType(err, apperrors.ConfigurationError))
}
