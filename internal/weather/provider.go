package weather

import "context"

// Provider abstracts an upstream weather source (OpenWeatherMap or the
// Central Weather Administration). Exactly one provider is active per
// deployment; switching is a configuration concern.
//
// Providers never fabricate weather values: transport, shape, and missing
// credential failures propagate as typed errors, and the caller decides how
// to degrade.
type Provider interface {
	Name() string
	Current(ctx context.Context, city string) (Record, error)
	Forecast(ctx context.Context, city string) (ForecastSeries, error)
}

// Store is the contract for the session memoization layer. It is advisory:
// a miss or stale entry just means going back to the provider.
type Store interface {
	SaveCurrent(city string, rec Record)
	SaveForecast(city string, series ForecastSeries)
	GetCurrent(city string) (Record, error)
	GetForecast(city string) (ForecastSeries, error)
}
