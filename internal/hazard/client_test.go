package hazard

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weatherfit/weather-outfit-service/internal/apperrors"
)

func newTestClient(handler http.HandlerFunc) (*Client, *httptest.Server) {
	srv := httptest.NewServer(handler)
	c := NewClient(srv.Client(), "test-key")
	c.baseURL = srv.URL
	return c, srv
}

func TestFetchDatasetNestedKeys(t *testing.T) {
	tests := []struct {
		name string
		body string
		want int
	}{
		{
			"records.location",
			`{"success": "true", "records": {"location": [{"locationName": "宜蘭縣"}, {"locationName": "花蓮縣"}]}}`,
			2,
		},
		{
			"records.alert",
			`{"success": "true", "records": {"alert": [{"alertType": "濃霧"}]}}`,
			1,
		},
		{
			"records.records",
			`{"success": "true", "records": {"records": [{"headline": "豪雨特報"}]}}`,
			1,
		},
		{
			"bare records array",
			`{"success": "true", "records": [{"headline": "低溫特報"}]}`,
			1,
		},
		{
			"boolean success flag",
			`{"success": true, "records": {"location": [{"locationName": "基隆市"}]}}`,
			1,
		},
		{
			"no recognized key",
			`{"success": "true", "records": {"something": 1}}`,
			0,
		},
		{
			"success false",
			`{"success": "false", "records": {"location": [{"locationName": "台東縣"}]}}`,
			0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "JSON", r.URL.Query().Get("format"))
				assert.Equal(t, "100", r.URL.Query().Get("limit"))
				assert.Equal(t, "false", r.URL.Query().Get("expires"))
				fmt.Fprint(w, tt.body)
			})
			defer srv.Close()

			bulletins, err := c.Warnings(context.Background())
			require.NoError(t, err)
			assert.Len(t, bulletins, tt.want)
		})
	}
}

// Runtime failures are swallowed into empty results: hazard bulletins are
// supplementary, not primary.
func TestFetchDatasetSwallowsFailures(t *testing.T) {
	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	defer srv.Close()

	bulletins, err := c.HeavyRainWarnings(context.Background())
	require.NoError(t, err)
	assert.Empty(t, bulletins)

	// Unreachable server behaves the same.
	srv.Close()
	bulletins, err = c.LowTemperatureWarnings(context.Background())
	require.NoError(t, err)
	assert.Empty(t, bulletins)
}

// A missing API key is a configuration error and the one failure mode that
// raises instead of degrading.
func TestMissingKeyRaises(t *testing.T) {
	c := NewClient(http.DefaultClient, "")

	_, err := c.Warnings(context.Background())
	assert.True(t, apperrors.IsType(err, apperrors.ConfigurationError))

	_, err = c.Typhoons(context.Background())
	assert.True(t, apperrors.IsType(err, apperrors.ConfigurationError))

	_, err = c.FetchAll(context.Background(), "台北市")
	assert.True(t, apperrors.IsType(err, apperrors.ConfigurationError))
}

func TestTyphoonsNormalizesSingleObject(t *testing.T) {
	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{
			"success": "true",
			"records": {"tropicalCyclones": {"tropicalCyclone": {"typhoonName": "KHANUN"}}}
		}`)
	})
	defer srv.Close()

	cyclones, err := c.Typhoons(context.Background())
	require.NoError(t, err)
	require.Len(t, cyclones, 1)
	assert.Equal(t, "KHANUN", cyclones[0]["typhoonName"])
}

func TestTyphoonsArray(t *testing.T) {
	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "analysisData,forecastData", r.URL.Query().Get("dataset"))
		fmt.Fprint(w, `{
			"success": "true",
			"records": {"tropicalCyclones": {"tropicalCyclone": [
				{"typhoonName": "KHANUN"}, {"typhoonName": "LAN"}
			]}}
		}`)
	})
	defer srv.Close()

	cyclones, err := c.Typhoons(context.Background())
	require.NoError(t, err)
	assert.Len(t, cyclones, 2)
}

// One dataset's outage must not affect the other slots of the settle-all
// join: the failed slot comes back empty, the rest come back populated.
func TestFetchAllSettleAll(t *testing.T) {
	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.URL.Path, DatasetHeavyRain) {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		if strings.Contains(r.URL.Path, DatasetTyphoon) {
			fmt.Fprint(w, `{"success": "true", "records": {"tropicalCyclones": {"tropicalCyclone": [{"typhoonName": "KHANUN"}]}}}`)
			return
		}
		fmt.Fprint(w, `{"success": "true", "records": {"location": [{"locationName": "臺北市"}]}}`)
	})
	defer srv.Close()

	report, err := c.FetchAll(context.Background(), "台北市")
	require.NoError(t, err)

	assert.Empty(t, report.HeavyRain, "failed dataset yields an empty slot")
	assert.Len(t, report.Warnings, 1)
	assert.Len(t, report.WarningDetails, 1)
	assert.Len(t, report.LowTemperature, 1)
	assert.Len(t, report.HighTemperature, 1)
	assert.Len(t, report.NumericalForecast, 1)
	assert.Len(t, report.Typhoons, 1)
}
