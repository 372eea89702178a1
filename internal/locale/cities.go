// Package locale holds the static table mapping supported city identifiers
// to the alternate spellings the Central Weather Administration API expects
// (台 vs 臺 and similar variants).
package locale

// cwaCityNames maps common city spellings to the CWA's canonical ones.
var cwaCityNames = map[string]string{
	"台北市": "臺北市",
	"新北市": "新北市",
	"桃園市": "桃園市",
	"台中市": "臺中市",
	"台南市": "臺南市",
	"高雄市": "高雄市",
	"基隆市": "基隆市",
	"新竹市": "新竹市",
	"嘉義市": "嘉義市",
	"新竹縣": "新竹縣",
	"苗栗縣": "苗栗縣",
	"彰化縣": "彰化縣",
	"南投縣": "南投縣",
	"雲林縣": "雲林縣",
	"嘉義縣": "嘉義縣",
	"屏東縣": "屏東縣",
	"宜蘭縣": "宜蘭縣",
	"花蓮縣": "花蓮縣",
	"台東縣": "臺東縣",
	"澎湖縣": "澎湖縣",
	"金門縣": "金門縣",
	"連江縣": "連江縣",
	"竹北市": "新竹縣",
}

// Translate returns the CWA spelling for a city identifier, or the identifier
// itself when no translation is known.
func Translate(city string) string {
	if cwa, ok := cwaCityNames[city]; ok {
		return cwa
	}
	return city
}

// Cities returns all supported city identifiers.
func Cities() []string {
	cities := make([]string, 0, len(cwaCityNames))
	for c := range cwaCityNames {
		cities = append(cities, c)
	}
	return cities
}
