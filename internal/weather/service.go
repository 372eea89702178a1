package weather

import (
	"context"
	"sync"

	"github.com/weatherfit/weather-outfit-service/internal/logger"
)

// Service orchestrates the active provider and the session cache. The cache
// is advisory: on a miss the provider is consulted, and provider errors
// propagate to the caller untouched; the service never substitutes
// synthetic weather data.
type Service struct {
	store    Store
	provider Provider
}

// NewService creates a Service around the configured provider.
func NewService(store Store, provider Provider) *Service {
	return &Service{
		store:    store,
		provider: provider,
	}
}

// Current returns the canonical current-weather record for a city,
// preferring a fresh cached entry over a provider round-trip.
func (s *Service) Current(ctx context.Context, city string) (Record, error) {
	if rec, err := s.store.GetCurrent(city); err == nil {
		return rec, nil
	}

	rec, err := s.provider.Current(ctx, city)
	if err != nil {
		return Record{}, err
	}

	s.store.SaveCurrent(city, rec)
	return rec, nil
}

// Forecast returns the forecast series for a city, cache-first.
func (s *Service) Forecast(ctx context.Context, city string) (ForecastSeries, error) {
	if series, err := s.store.GetForecast(city); err == nil {
		return series, nil
	}

	series, err := s.provider.Forecast(ctx, city)
	if err != nil {
		return nil, err
	}

	s.store.SaveForecast(city, series)
	return series, nil
}

// Conditions bundles the current record with the forecast for one city.
// ForecastErr is kept separate from the return error because a failed
// forecast must not block current-weather display.
type Conditions struct {
	Current     Record
	Forecast    ForecastSeries
	ForecastErr error
}

// FetchConditions fetches current weather and forecast for a city
// concurrently. The current fetch is primary: its error is the call's
// error. The forecast result settles independently and its failure is
// reported in Conditions.ForecastErr.
func (s *Service) FetchConditions(ctx context.Context, city string) (Conditions, error) {
	var (
		wg          sync.WaitGroup
		current     Record
		currentErr  error
		forecast    ForecastSeries
		forecastErr error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		current, currentErr = s.Current(ctx, city)
	}()
	go func() {
		defer wg.Done()
		forecast, forecastErr = s.Forecast(ctx, city)
	}()
	wg.Wait()

	if currentErr != nil {
		return Conditions{}, currentErr
	}

	if forecastErr != nil {
		logger.GetLogger().Warnw("forecast fetch failed",
			"city", city,
			"provider", s.provider.Name(),
			"error", forecastErr)
	}

	return Conditions{
		Current:     current,
		Forecast:    forecast,
		ForecastErr: forecastErr,
	}, nil
}

// Refresh re-fetches and caches current weather and forecast for a city,
// bypassing cached entries. Used by the periodic scheduler.
func (s *Service) Refresh(ctx context.Context, city string) error {
	log := logger.GetLogger()

	rec, err := s.provider.Current(ctx, city)
	if err != nil {
		return err
	}
	s.store.SaveCurrent(city, rec)

	series, err := s.provider.Forecast(ctx, city)
	if err != nil {
		// Current weather refreshed fine; keep whatever forecast we had.
		log.Warnw("forecast refresh failed", "city", city, "error", err)
		return nil
	}
	s.store.SaveForecast(city, series)

	return nil
}
