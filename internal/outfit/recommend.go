package outfit

import (
	"strings"

	"github.com/weatherfit/weather-outfit-service/internal/weather"
)

// Recommendation is the structured textual outfit advice for one record.
// Top, Pants, Shoes, and Notes may be overwritten by later rules;
// Accessories is append-only, in rule-evaluation order, and duplicates are
// kept when independent rules suggest the same item.
type Recommendation struct {
	Top         string   `json:"top"`
	Pants       string   `json:"pants"`
	Shoes       string   `json:"shoes"`
	Accessories []string `json:"accessories"`
	Notes       string   `json:"notes"`
}

// rule mutates the recommendation accumulator for one weather record.
// Rules run in a fixed order; ordering is load-bearing for both the
// override semantics and the accessory sequence.
type rule func(rec weather.Record, r *Recommendation)

var recommendationRules = []rule{
	topRule,
	pantsRule,
	shoesRule,
	windRule,
	coldAccessoriesRule,
	veryColdAccessoriesRule,
	clearSkyAccessoriesRule,
}

// Recommend builds the textual outfit recommendation for a record by
// applying the rule chain in order. Independent of Classify: it uses finer
// temperature bands than the four categories.
func Recommend(rec weather.Record) Recommendation {
	var r Recommendation
	r.Accessories = []string{}

	for _, apply := range recommendationRules {
		apply(rec, &r)
	}

	return r
}

// topRule picks the top and the baseline note from the feels-like bands.
// Bands are evaluated high to low, first match wins.
func topRule(rec weather.Record, r *Recommendation) {
	t := rec.FeelsLike
	switch {
	case t >= 28:
		r.Top = "短袖T恤或背心"
		r.Notes = "天氣炎熱，建議穿著輕薄透氣"
	case t >= 25:
		r.Top = "短袖T恤"
		r.Notes = "天氣溫暖，適合輕便穿著"
	case t >= 20:
		r.Top = "長袖T恤或薄長袖"
		r.Notes = "天氣舒適，可搭配薄外套"
	case t >= 15:
		r.Top = "長袖上衣 + 薄外套或風衣"
		r.Notes = "天氣涼爽，建議多層次穿搭"
	case t >= 10:
		r.Top = "長袖上衣 + 厚外套或大衣"
		r.Notes = "天氣寒冷，注意保暖"
	default:
		r.Top = "長袖上衣 + 厚外套或羽絨衣"
		r.Notes = "天氣非常寒冷，務必做好保暖"
	}
}

func pantsRule(rec weather.Record, r *Recommendation) {
	t := rec.FeelsLike
	switch {
	case t >= 25:
		r.Pants = "短褲或薄長褲"
	case t >= 20:
		r.Pants = "薄長褲或牛仔褲"
	case t >= 15:
		r.Pants = "長褲或牛仔褲"
	case t >= 10:
		r.Pants = "厚長褲或保暖褲"
	default:
		r.Pants = "厚長褲或保暖褲（建議多層）"
	}
}

// shoesRule sets the shoes and the first accessories. Rain outranks snow
// outranks the temperature bands; the rain branch also overwrites the note
// set by topRule.
func shoesRule(rec weather.Record, r *Recommendation) {
	t := rec.FeelsLike
	switch {
	case rec.IsRainy():
		r.Shoes = "雨鞋或防水靴子"
		r.Accessories = append(r.Accessories, "雨傘", "雨衣或防水外套")
		r.Notes = "雨天建議，務必攜帶雨具"
	case rec.Condition == weather.ConditionSnow:
		r.Shoes = "防滑雪靴或厚靴子"
		r.Accessories = append(r.Accessories, "手套", "圍巾")
		r.Notes = "下雪天氣，注意防滑保暖"
	case t >= 25:
		r.Shoes = "涼鞋或透氣運動鞋"
	case t >= 20:
		r.Shoes = "運動鞋或休閒鞋"
	case t >= 15:
		r.Shoes = "運動鞋或休閒鞋"
	case t >= 10:
		r.Shoes = "靴子或保暖鞋"
	default:
		r.Shoes = "厚靴子或保暖鞋"
	}
}

func windRule(rec weather.Record, r *Recommendation) {
	if rec.WindSpeed > 5 {
		r.Accessories = append(r.Accessories, "防風外套")
		if !strings.Contains(r.Notes, "風") {
			r.Notes += " 風大，建議穿著防風衣物"
		}
	}
}

func coldAccessoriesRule(rec weather.Record, r *Recommendation) {
	if rec.FeelsLike < 15 {
		r.Accessories = append(r.Accessories, "圍巾", "手套")
	}
}

func veryColdAccessoriesRule(rec weather.Record, r *Recommendation) {
	if rec.FeelsLike < 10 {
		r.Accessories = append(r.Accessories, "毛帽")
	}
}

func clearSkyAccessoriesRule(rec weather.Record, r *Recommendation) {
	if rec.Condition == weather.ConditionClear && rec.FeelsLike >= 20 {
		r.Accessories = append(r.Accessories, "太陽眼鏡", "帽子")
	}
}
