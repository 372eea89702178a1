package weather

import "github.com/weatherfit/weather-outfit-service/internal/common"

// ConditionFromDescription derives a canonical condition from a zh-TW
// free-text weather description by substring matching. Checks run in
// priority order: rain outranks everything (a description mentioning both
// rain and clear skies is rain), and unmatched descriptions fall back to
// Clear. Kept as an isolated pure function because the heuristics are
// locale-specific and likely to grow.
func ConditionFromDescription(desc string) Condition {
	switch {
	case common.HasAny(desc, "雨"):
		return ConditionRain
	case common.HasAny(desc, "雪"):
		return ConditionSnow
	case common.HasAny(desc, "雲", "陰"):
		return ConditionClouds
	case common.HasAny(desc, "晴"):
		return ConditionClear
	case common.HasAny(desc, "霧"):
		return ConditionMist
	default:
		return ConditionClear
	}
}
