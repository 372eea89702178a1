package weather

import "strings"

// Condition represents a normalized high-level weather condition.
type Condition string

const (
	ConditionClear        Condition = "Clear"
	ConditionClouds       Condition = "Clouds"
	ConditionRain         Condition = "Rain"
	ConditionDrizzle      Condition = "Drizzle"
	ConditionThunderstorm Condition = "Thunderstorm"
	ConditionSnow         Condition = "Snow"
	ConditionWindy        Condition = "Windy"
	ConditionMist         Condition = "Mist"
)

// knownConditions is the closed set of canonical conditions. Anything a
// provider reports outside this set normalizes to Clear.
var knownConditions = map[Condition]bool{
	ConditionClear:        true,
	ConditionClouds:       true,
	ConditionRain:         true,
	ConditionDrizzle:      true,
	ConditionThunderstorm: true,
	ConditionSnow:         true,
	ConditionWindy:        true,
	ConditionMist:         true,
}

// Record is the canonical, provider-independent weather record. All fields
// carry defaults so downstream decision logic never faces missing values.
type Record struct {
	Location             string    `json:"location"`
	Temperature          float64   `json:"temperatureC"`
	FeelsLike            float64   `json:"feelsLikeC"`
	Condition            Condition `json:"condition"`
	ConditionDescription string    `json:"conditionDescription"`
	WindSpeed            float64   `json:"windSpeedMS"`
}

// RecordParams carries raw provider values into NewRecord. FeelsLike and
// WindSpeed are pointers so "absent" is distinguishable from zero.
type RecordParams struct {
	Location    string
	Temperature float64
	FeelsLike   *float64
	Condition   Condition
	Description string
	WindSpeed   *float64
}

// NewRecord builds a Record applying the canonical defaults: FeelsLike falls
// back to Temperature, WindSpeed to 0, and unrecognized conditions to Clear.
func NewRecord(p RecordParams) Record {
	rec := Record{
		Location:             p.Location,
		Temperature:          p.Temperature,
		FeelsLike:            p.Temperature,
		Condition:            ConditionClear,
		ConditionDescription: p.Description,
	}

	if p.FeelsLike != nil {
		rec.FeelsLike = *p.FeelsLike
	}
	if knownConditions[p.Condition] {
		rec.Condition = p.Condition
	}
	if p.WindSpeed != nil && *p.WindSpeed >= 0 {
		rec.WindSpeed = *p.WindSpeed
	}

	return rec
}

// ForecastEntry is a single forecast step: a canonical record at a point in
// time (epoch seconds).
type ForecastEntry struct {
	Timestamp int64 `json:"dt"`
	Record
}

// ForecastSeries is a time-ordered forecast. Timestamps are non-decreasing;
// consumers bucket entries into calendar days.
type ForecastSeries []ForecastEntry

// IsRainy reports whether the record should be treated as rain for outfit
// decisions: either the canonical condition is a rain variant, or the
// free-text description mentions rain. The description check catches
// payloads whose code and localized text disagree.
func (r Record) IsRainy() bool {
	switch r.Condition {
	case ConditionRain, ConditionDrizzle, ConditionThunderstorm:
		return true
	}
	return strings.Contains(r.ConditionDescription, "雨")
}
