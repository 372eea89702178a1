package store

import (
	"errors"
	"sync"
	"time"

	"github.com/weatherfit/weather-outfit-service/internal/weather"
)

var (
	// ErrNotFound is returned when no fresh data is cached for a city.
	ErrNotFound = errors.New("no weather data for city")
)

type currentEntry struct {
	record   weather.Record
	cachedAt time.Time
}

type forecastEntry struct {
	series   weather.ForecastSeries
	cachedAt time.Time
}

// MemoryStore is a concurrency-safe session cache for weather data. It is
// purely an optimization: a miss or an expired entry sends the caller back
// to the provider, never to an error surface.
type MemoryStore struct {
	mu sync.RWMutex

	current  map[string]currentEntry
	forecast map[string]forecastEntry

	// maxAge bounds how long an entry is served; <= 0 means unlimited.
	maxAge time.Duration
}

// NewMemoryStore creates a MemoryStore with the given entry lifetime.
func NewMemoryStore(maxAge time.Duration) *MemoryStore {
	return &MemoryStore{
		current:  make(map[string]currentEntry),
		forecast: make(map[string]forecastEntry),
		maxAge:   maxAge,
	}
}

// SaveCurrent caches the latest record for a city.
func (s *MemoryStore) SaveCurrent(city string, rec weather.Record) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current[city] = currentEntry{record: rec, cachedAt: time.Now()}
}

// SaveForecast caches the latest forecast for a city.
func (s *MemoryStore) SaveForecast(city string, series weather.ForecastSeries) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.forecast[city] = forecastEntry{series: series, cachedAt: time.Now()}
}

// GetCurrent returns the cached record for a city, or ErrNotFound when
// missing or stale.
func (s *MemoryStore) GetCurrent(city string) (weather.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.current[city]
	if !ok || s.expired(entry.cachedAt) {
		return weather.Record{}, ErrNotFound
	}
	return entry.record, nil
}

// GetForecast returns the cached forecast for a city, or ErrNotFound when
// missing or stale.
func (s *MemoryStore) GetForecast(city string) (weather.ForecastSeries, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.forecast[city]
	if !ok || s.expired(entry.cachedAt) {
		return nil, ErrNotFound
	}
	return entry.series, nil
}

func (s *MemoryStore) expired(cachedAt time.Time) bool {
	return s.maxAge > 0 && time.Since(cachedAt) > s.maxAge
}
