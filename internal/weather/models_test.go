package weather

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewRecordDefaults(t *testing.T) {
	rec := NewRecord(RecordParams{
		Location:    "台北市",
		Temperature: 23.5,
	})

	assert.Equal(t, 23.5, rec.FeelsLike, "feels-like defaults to temperature")
	assert.Equal(t, ConditionClear, rec.Condition, "condition defaults to Clear")
	assert.Zero(t, rec.WindSpeed, "wind speed defaults to 0")
}

func TestNewRecordExplicitValues(t *testing.T) {
	feels := 18.0
	wind := 6.5

	rec := NewRecord(RecordParams{
		Location:    "高雄市",
		Temperature: 21,
		FeelsLike:   &feels,
		Condition:   ConditionRain,
		Description: "陣雨",
		WindSpeed:   &wind,
	})

	assert.Equal(t, 18.0, rec.FeelsLike)
	assert.Equal(t, ConditionRain, rec.Condition)
	assert.Equal(t, 6.5, rec.WindSpeed)
	assert.Equal(t, "陣雨", rec.ConditionDescription)
}

func TestNewRecordRejectsInvalidValues(t *testing.T) {
	wind := -3.0

	rec := NewRecord(RecordParams{
		Temperature: 20,
		Condition:   Condition("Tornado"),
		WindSpeed:   &wind,
	})

	assert.Equal(t, ConditionClear, rec.Condition, "unrecognized condition maps to Clear")
	assert.Zero(t, rec.WindSpeed, "negative wind speed is dropped")
}

func TestIsRainy(t *testing.T) {
	assert.True(t, Record{Condition: ConditionRain}.IsRainy())
	assert.True(t, Record{Condition: ConditionDrizzle}.IsRainy())
	assert.True(t, Record{Condition: ConditionThunderstorm}.IsRainy())
	assert.True(t, Record{Condition: ConditionClear, ConditionDescription: "短暫雨"}.IsRainy())
	assert.False(t, Record{Condition: ConditionClear, ConditionDescription: "晴天"}.IsRainy())
	assert.False(t, Record{Condition: ConditionSnow}.IsRainy())
}
