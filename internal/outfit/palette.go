package outfit

import "github.com/weatherfit/weather-outfit-service/internal/weather"

// Palette is the avatar color styling derived from a weather record. It is
// a visual companion to Recommend: coarser rules, same inputs.
type Palette struct {
	SkinColor   string `json:"skinColor"`
	HairColor   string `json:"hairColor"`
	TopColor    string `json:"topColor"`
	HasCollar   bool   `json:"hasCollar"`
	CollarColor string `json:"collarColor,omitempty"`
	PantsColor  string `json:"pantsColor"`
	ShoesColor  string `json:"shoesColor"`
}

// DefaultPalette is the styling used when no weather record is available.
func DefaultPalette() Palette {
	return Palette{
		SkinColor:   "#FFDBAC",
		HairColor:   "#8B4513",
		TopColor:    "#DC143C",
		HasCollar:   true,
		CollarColor: "#FFB6C1",
		PantsColor:  "#4169E1",
		ShoesColor:  "#8B4513",
	}
}

// PaletteFor derives the avatar palette for a record: temperature bands
// first, then wind and precipitation overrides in that order.
func PaletteFor(rec weather.Record) Palette {
	p := DefaultPalette()
	t := rec.FeelsLike

	switch {
	case t >= 25:
		p.TopColor = "#FFD700"
		p.HasCollar = false
		p.CollarColor = ""
		p.PantsColor = "#87CEEB"
		p.ShoesColor = "#FFFFFF"
	case t >= 20:
		p.TopColor = "#FFA500"
		p.HasCollar = false
		p.CollarColor = ""
		p.PantsColor = "#4169E1"
		p.ShoesColor = "#000000"
	case t >= 15:
		p.TopColor = "#DC143C"
		p.HasCollar = true
		p.CollarColor = "#FFB6C1"
		p.PantsColor = "#4169E1"
		p.ShoesColor = "#8B4513"
	case t >= 10:
		p.TopColor = "#191970"
		p.HasCollar = true
		p.CollarColor = "#FFFFFF"
		p.PantsColor = "#2F4F4F"
		p.ShoesColor = "#000000"
	default:
		p.TopColor = "#000000"
		p.HasCollar = true
		p.CollarColor = "#FFD700"
		p.PantsColor = "#000000"
		p.ShoesColor = "#000000"
	}

	// Strong wind deepens the mid-band jacket color.
	if rec.WindSpeed > 5 && p.TopColor == "#DC143C" {
		p.TopColor = "#8B0000"
	}

	switch rec.Condition {
	case weather.ConditionRain, weather.ConditionDrizzle:
		p.TopColor = "#4169E1"
		p.ShoesColor = "#000000"
	case weather.ConditionSnow:
		p.TopColor = "#FFFFFF"
		p.PantsColor = "#FFFFFF"
		p.ShoesColor = "#000000"
	}

	return p
}
