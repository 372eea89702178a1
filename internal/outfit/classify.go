// Package outfit maps canonical weather records to outfit decisions: a
// discrete category, a structured textual recommendation, and an avatar
// color palette. Everything here is pure and deterministic: the same
// record always produces the same outputs.
package outfit

import "github.com/weatherfit/weather-outfit-service/internal/weather"

// Category is the discrete outfit bucket a weather record reduces to.
type Category string

const (
	SunnyShortsShortSleeve     Category = "sunny_shorts_short_sleeve"
	SunnyShortsLongSleeve      Category = "sunny_shorts_long_sleeve"
	RainyLongPantsLongSleeve   Category = "rainy_long_pants_long_sleeve"
	RainyShortsLongSleeveBoots Category = "rainy_shorts_long_sleeve_boots"
)

// Classify reduces a weather record to exactly one category. The decision
// tree is two boolean branches with four leaves: rain state first, then the
// feels-like temperature against a single threshold per branch. Wind speed
// never affects the category, only the textual recommendation.
func Classify(rec weather.Record) Category {
	t := rec.FeelsLike

	if rec.IsRainy() {
		if t >= 20 {
			return RainyShortsLongSleeveBoots
		}
		return RainyLongPantsLongSleeve
	}

	if t >= 25 {
		return SunnyShortsShortSleeve
	}
	return SunnyShortsLongSleeve
}
