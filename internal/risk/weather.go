package risk

import "strings"

// WeatherTier is one escalation level of the weather severity classifier.
type WeatherTier struct {
	Label    string   `json:"label"`
	Keywords []string `json:"keywords"`
	Points   float64  `json:"points"`
}

// WeatherRule classifies free-text weather descriptions into a severity
// contribution. Tiers are checked in order and the first match wins, so the
// extreme tier must precede severe, and severe must precede mild: the keyword
// sets overlap ("severe storm" contains both "storm" and "severe storm").
type WeatherRule struct {
	Category       string        `json:"category"`
	Field          string        `json:"field"`
	Tiers          []WeatherTier `json:"tiers"`
	Recommendation string        `json:"recommendation"`
}

// DefaultWeatherRule returns the three-tier keyword classifier.
func DefaultWeatherRule() WeatherRule {
	return WeatherRule{
		Category: "Weather",
		Field:    FieldWeather,
		Tiers: []WeatherTier{
			{
				Label:    "extreme",
				Keywords: []string{"cyclone", "hurricane", "blizzard", "tornado", "severe storm"},
				Points:   35,
			},
			{
				Label:    "severe",
				Keywords: []string{"thunder", "storm", "heavy rain", "sleet", "hail"},
				Points:   25,
			},
			{
				Label:    "mild",
				Keywords: []string{"rain", "snow", "gust", "squall"},
				Points:   10,
			},
		},
		Recommendation: "Review departure window against the latest forecast.",
	}
}

// Classify returns the matching tier for a weather description, or false for
// empty or unmatched text. Matching is case-insensitive substring search.
func (w WeatherRule) Classify(text string) (WeatherTier, bool) {
	text = strings.ToLower(strings.TrimSpace(text))
	if text == "" {
		return WeatherTier{}, false
	}
	for _, tier := range w.Tiers {
		for _, keyword := range tier.Keywords {
			if strings.Contains(text, keyword) {
				return tier, true
			}
		}
	}
	return WeatherTier{}, false
}

// Severity returns the tier's point contribution, or 0 when nothing matches.
func (w WeatherRule) Severity(text string) float64 {
	tier, ok := w.Classify(text)
	if !ok {
		return 0
	}
	return tier.Points
}
