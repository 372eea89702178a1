package media

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/weatherfit/weather-outfit-service/internal/apperrors"
	"github.com/weatherfit/weather-outfit-service/internal/logger"
	"github.com/weatherfit/weather-outfit-service/internal/outfit"
)

// preloadTimeout bounds each asset's verification load during Preload so a
// slow asset cannot block the others.
const preloadTimeout = 5 * time.Second

// Resolver turns (category, gender) into a verified media descriptor. A
// descriptor is only returned after its asset (or its fallback) answered a
// verification request; both failing is a terminal "no media available"
// state the caller renders as a placeholder.
//
// Resolved descriptors are cached per key for the session. The mapping is
// static, so the cache is never invalidated, and get-or-resolve is
// single-flight per key to avoid duplicate concurrent verification work.
type Resolver struct {
	httpClient *http.Client
	assets     map[Gender]map[slot]Descriptor

	mu       sync.Mutex
	cache    map[string]Descriptor
	inflight map[string]chan struct{}
}

// NewResolver creates a Resolver serving assets under baseURL.
func NewResolver(httpClient *http.Client, baseURL string) *Resolver {
	return &Resolver{
		httpClient: httpClient,
		assets:     assetTable(baseURL),
		cache:      make(map[string]Descriptor),
		inflight:   make(map[string]chan struct{}),
	}
}

// Resolve returns the verified descriptor for a category and gender.
// Unknown genders resolve as male; unknown categories as the sunny slot.
func (r *Resolver) Resolve(ctx context.Context, category outfit.Category, gender Gender) (Descriptor, error) {
	key := cacheKey(category, gender)

	for {
		r.mu.Lock()
		if d, ok := r.cache[key]; ok {
			r.mu.Unlock()
			return d, nil
		}
		if ch, ok := r.inflight[key]; ok {
			// Another goroutine is resolving this key; wait and re-check.
			r.mu.Unlock()
			select {
			case <-ch:
				continue
			case <-ctx.Done():
				return Descriptor{}, ctx.Err()
			}
		}
		ch := make(chan struct{})
		r.inflight[key] = ch
		r.mu.Unlock()

		d, err := r.resolve(ctx, category, gender)

		r.mu.Lock()
		if err == nil {
			r.cache[key] = d
		}
		delete(r.inflight, key)
		close(ch)
		r.mu.Unlock()

		return d, err
	}
}

// resolve looks up the descriptor and runs the verification load, falling
// back once on failure.
func (r *Resolver) resolve(ctx context.Context, category outfit.Category, gender Gender) (Descriptor, error) {
	log := logger.GetLogger()

	genderAssets, ok := r.assets[gender]
	if !ok {
		genderAssets = r.assets[GenderMale]
	}
	d := genderAssets[slotFor(category)]

	if err := r.verify(ctx, d); err == nil {
		return d, nil
	} else if d.Fallback == nil {
		log.Warnw("media asset failed to load",
			"category", category,
			"gender", gender,
			"url", d.URL,
			"error", err)
		return Descriptor{}, apperrors.Wrap(err, apperrors.MediaLoadError, "no media available")
	} else {
		log.Warnw("media asset failed to load, trying fallback",
			"category", category,
			"gender", gender,
			"url", d.URL,
			"error", err)
	}

	fb := *d.Fallback
	if err := r.verify(ctx, fb); err != nil {
		log.Warnw("media fallback failed to load",
			"category", category,
			"gender", gender,
			"url", fb.URL,
			"error", err)
		return Descriptor{}, apperrors.Wrap(err, apperrors.MediaLoadError, "no media available")
	}
	return fb, nil
}

// verify issues a lightweight load of the asset. This stands in for the
// image decode / video metadata load a browser would do: the asset must be
// reachable and the server must answer success.
func (r *Resolver) verify(ctx context.Context, d Descriptor) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, d.URL, nil)
	if err != nil {
		return err
	}

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("asset returned status %d", resp.StatusCode)
	}
	return nil
}

// Preload resolves every category for both genders concurrently, with a
// per-asset timeout. Failures fall back per descriptor and are otherwise
// ignored; preloading is warm-up, not a correctness step.
func (r *Resolver) Preload(ctx context.Context) {
	categories := []outfit.Category{
		outfit.SunnyShortsShortSleeve,
		outfit.SunnyShortsLongSleeve,
		outfit.RainyLongPantsLongSleeve,
		outfit.RainyShortsLongSleeveBoots,
	}
	genders := []Gender{GenderMale, GenderFemale}

	var wg sync.WaitGroup
	for _, category := range categories {
		for _, gender := range genders {
			category, gender := category, gender
			wg.Add(1)
			go func() {
				defer wg.Done()

				loadCtx, cancel := context.WithTimeout(ctx, preloadTimeout)
				defer cancel()

				if _, err := r.Resolve(loadCtx, category, gender); err != nil {
					logger.GetLogger().Debugw("media preload failed",
						"category", category,
						"gender", gender,
						"error", err)
				}
			}()
		}
	}
	wg.Wait()
}

func cacheKey(category outfit.Category, gender Gender) string {
	return string(category) + ":" + string(gender)
}
