package hazard

import (
	"context"
	"sync"

	"github.com/weatherfit/weather-outfit-service/internal/apperrors"
)

// Report holds the results of one settle-all fetch across every hazard
// dataset. Each slot is independently empty on failure; a slot is never
// missing because of another slot's outage.
type Report struct {
	Warnings          []Bulletin `json:"warnings"`
	WarningDetails    []Bulletin `json:"warningDetails"`
	HeavyRain         []Bulletin `json:"heavyRain"`
	LowTemperature    []Bulletin `json:"lowTemperature"`
	HighTemperature   []Bulletin `json:"highTemperature"`
	NumericalForecast []Bulletin `json:"numericalForecast"`
	Typhoons          []Bulletin `json:"typhoons"`
}

// FetchAll fetches every hazard dataset concurrently and waits for all of
// them to settle. This must never be a fail-fast join: one dataset's outage
// must not hide the others. The only error surfaced is a missing API key,
// checked once up front since it fails every slot identically. The city
// parameter scopes the numerical-forecast slot; the other datasets are
// nationwide.
func (c *Client) FetchAll(ctx context.Context, city string) (Report, error) {
	if c.apiKey == "" {
		return Report{}, apperrors.MissingCredential("cwa")
	}

	var (
		wg     sync.WaitGroup
		report Report
	)

	fetch := func(dst *[]Bulletin, fn func(context.Context) ([]Bulletin, error)) {
		defer wg.Done()
		bulletins, err := fn(ctx)
		if err != nil {
			// The key was checked up front, so the accessors should not
			// error here; an empty slot keeps the join settle-all anyway.
			bulletins = []Bulletin{}
		}
		*dst = bulletins
	}

	wg.Add(7)
	go fetch(&report.Warnings, c.Warnings)
	go fetch(&report.WarningDetails, c.WarningDetails)
	go fetch(&report.HeavyRain, c.HeavyRainWarnings)
	go fetch(&report.LowTemperature, c.LowTemperatureWarnings)
	go fetch(&report.HighTemperature, c.HighTemperatureWarnings)
	go fetch(&report.NumericalForecast, func(ctx context.Context) ([]Bulletin, error) {
		return c.NumericalForecast(ctx, city)
	})
	go fetch(&report.Typhoons, c.Typhoons)
	wg.Wait()

	return report, nil
}
