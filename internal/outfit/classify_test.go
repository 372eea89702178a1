package outfit

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/weatherfit/weather-outfit-service/internal/weather"
)

func record(feelsLike float64, cond weather.Condition, desc string) weather.Record {
	return weather.Record{
		Location:             "台北市",
		Temperature:          feelsLike,
		FeelsLike:            feelsLike,
		Condition:            cond,
		ConditionDescription: desc,
	}
}

func TestClassifyBoundaries(t *testing.T) {
	tests := []struct {
		name string
		rec  weather.Record
		want Category
	}{
		{"rainy at 20 exactly", record(20, weather.ConditionRain, ""), RainyShortsLongSleeveBoots},
		{"rainy just below 20", record(19.99, weather.ConditionRain, ""), RainyLongPantsLongSleeve},
		{"clear at 25 exactly", record(25, weather.ConditionClear, ""), SunnyShortsShortSleeve},
		{"clear just below 25", record(24.99, weather.ConditionClear, ""), SunnyShortsLongSleeve},
		{"drizzle is rainy", record(22, weather.ConditionDrizzle, ""), RainyShortsLongSleeveBoots},
		{"thunderstorm is rainy", record(10, weather.ConditionThunderstorm, ""), RainyLongPantsLongSleeve},
		{"snow is not rainy", record(2, weather.ConditionSnow, ""), SunnyShortsLongSleeve},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.rec))
		})
	}
}

// A clear condition code with a rain-mentioning description must classify
// as rainy: rain detection is code-or-text.
func TestClassifyRainFromDescription(t *testing.T) {
	rec := record(22, weather.ConditionClear, "午後短暫雷陣雨")
	assert.Equal(t, RainyShortsLongSleeveBoots, Classify(rec))
}

func TestClassifyTotalAndDeterministic(t *testing.T) {
	conditions := []weather.Condition{
		weather.ConditionClear, weather.ConditionClouds, weather.ConditionRain,
		weather.ConditionDrizzle, weather.ConditionThunderstorm,
		weather.ConditionSnow, weather.ConditionWindy, weather.ConditionMist,
	}
	temps := []float64{-10, 0, 9.99, 10, 15, 19.99, 20, 24.99, 25, 28, 40}
	valid := map[Category]bool{
		SunnyShortsShortSleeve:     true,
		SunnyShortsLongSleeve:      true,
		RainyLongPantsLongSleeve:   true,
		RainyShortsLongSleeveBoots: true,
	}

	for _, cond := range conditions {
		for _, temp := range temps {
			rec := record(temp, cond, "")
			got := Classify(rec)
			assert.True(t, valid[got], "unexpected category %q for %v/%v", got, cond, temp)
			assert.Equal(t, got, Classify(rec), "classification must be deterministic")
		}
	}
}
