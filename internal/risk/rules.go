package risk

import (
	"math"
	"strconv"
)

// Issue is one triggered threshold: the signal's category, the observed raw
// value, the recommended action, and the points it contributed to the rule
// score.
type Issue struct {
	Category       string  `json:"category"`
	Observed       string  `json:"observed"`
	Recommendation string  `json:"recommendation"`
	Points         float64 `json:"points"`
}

// Evaluate walks the policy's threshold table against a record and returns
// the triggered issues in table order. The rule score is derived from the
// same issues (see RuleScore), so a signal contributes to the score exactly
// when it appears here. Missing or unparsable numeric fields trigger nothing.
func Evaluate(rec Record, p Policy) []Issue {
	var issues []Issue

	for _, sig := range p.Signals {
		value, ok := rec.Lookup(sig.Field)
		if !ok {
			continue
		}
		for _, band := range sig.Bands {
			if triggered(value, band.Limit, sig.Below, sig.Inclusive) {
				issues = append(issues, Issue{
					Category:       sig.Category,
					Observed:       formatNum(value),
					Recommendation: sig.Recommendation,
					Points:         band.Points,
				})
				break
			}
		}
	}

	if status := rec.Text(p.Brake.Field); status != "" {
		for _, token := range p.Brake.Tokens {
			if status == token {
				issues = append(issues, Issue{
					Category:       p.Brake.Category,
					Observed:       rec.Raw(p.Brake.Field),
					Recommendation: p.Brake.Recommendation,
					Points:         p.Brake.Points,
				})
				break
			}
		}
	}

	if tier, ok := p.Weather.Classify(rec.Text(p.Weather.Field)); ok {
		issues = append(issues, Issue{
			Category:       p.Weather.Category,
			Observed:       rec.Raw(p.Weather.Field),
			Recommendation: p.Weather.Recommendation,
			Points:         tier.Points,
		})
	}

	return issues
}

// RuleScore sums the contributions of the triggered issues, clamped to
// [0,100] and rounded to one decimal.
func RuleScore(issues []Issue) float64 {
	total := 0.0
	for _, issue := range issues {
		total += issue.Points
	}
	return round1(clamp(total, 0, 100))
}

func triggered(value, limit float64, below, inclusive bool) bool {
	if value == limit {
		return inclusive
	}
	if below {
		return value < limit
	}
	return value > limit
}

func formatNum(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
