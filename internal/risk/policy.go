package risk

import "fmt"

// RiskLevel is the discretized classification of a hybrid score.
type RiskLevel string

const (
	RiskLow    RiskLevel = "Low"
	RiskMedium RiskLevel = "Medium"
	RiskHigh   RiskLevel = "High"
)

// Band is one threshold band of a numeric signal. A band triggers when the
// observed value crosses Limit in the signal's direction and contributes
// Points to the rule score.
type Band struct {
	Limit  float64 `json:"limit"`
	Points float64 `json:"points"`
}

// Signal describes one numeric input signal: which field it reads, which
// direction is risky, and its threshold bands ordered most severe first.
// Only the first triggered band contributes.
type Signal struct {
	Category       string `json:"category"`
	Field          string `json:"field"`
	Below          bool   `json:"below"`     // true: risky when value is under the limit
	Inclusive      bool   `json:"inclusive"` // true: the limit itself triggers
	Bands          []Band `json:"bands"`
	Recommendation string `json:"recommendation"`
}

// BrakeRule flags enumerated brake status tokens as a risk signal.
type BrakeRule struct {
	Category       string   `json:"category"`
	Field          string   `json:"field"`
	Tokens         []string `json:"tokens"` // lower-cased status values that trigger
	Points         float64  `json:"points"`
	Recommendation string   `json:"recommendation"`
}

// Boundaries maps a hybrid score to a risk level. High and Medium are
// inclusive floors: score >= High is High, score >= Medium is Medium,
// everything below is Low.
type Boundaries struct {
	High   float64 `json:"high"`
	Medium float64 `json:"medium"`
}

// Level returns the risk level for a score.
func (b Boundaries) Level(score float64) RiskLevel {
	switch {
	case score >= b.High:
		return RiskHigh
	case score >= b.Medium:
		return RiskMedium
	default:
		return RiskLow
	}
}

// Policy is the canonical, versioned threshold table. Scoring and issue
// derivation both walk this table, so a threshold change is a one-line edit
// and the two can never disagree.
type Policy struct {
	Version           string      `json:"version"`
	Signals           []Signal    `json:"signals"`
	Brake             BrakeRule   `json:"brake"`
	Weather           WeatherRule `json:"weather"`
	Boundaries        Boundaries  `json:"boundaries"`
	RuleWeight        float64     `json:"rule_weight"`         // rule score's share of the hybrid blend
	FatigueWindowDays int         `json:"fatigue_window_days"` // trailing window the recent-hours column covers
}

// DefaultPolicy returns the canonical threshold table. Source data disagrees
// on risk boundaries (65/35 vs 60/30) and on the fatigue window (30 vs 7
// days); the defaults below pick 65/35 and 30 days, and both are exposed as
// configuration rather than baked in.
func DefaultPolicy() Policy {
	return Policy{
		Version: "2024.1",
		Signals: []Signal{
			{
				Category:       "Pilot Fatigue",
				Field:          FieldPilotHoursRecent,
				Bands:          []Band{{Limit: 60, Points: 25}, {Limit: 45, Points: 12}},
				Recommendation: "Reassign duty or add an experienced co-pilot.",
			},
			{
				Category:       "Pilot Experience",
				Field:          FieldPilotExperience,
				Below:          true,
				Bands:          []Band{{Limit: 200, Points: 15}, {Limit: 1000, Points: 7}},
				Recommendation: "Pair with a senior captain for this sector.",
			},
			{
				Category:       "Maintenance Age",
				Field:          FieldMaintenanceAge,
				Bands:          []Band{{Limit: 180, Points: 25}, {Limit: 90, Points: 10}},
				Recommendation: "Schedule maintenance inspection before dispatch.",
			},
			{
				Category:       "Engine Vibration",
				Field:          FieldEngineVibration,
				Bands:          []Band{{Limit: 4.0, Points: 20}, {Limit: 2.5, Points: 10}},
				Recommendation: "Request engineering review of engine trend data.",
			},
			{
				Category:       "Fuel Imbalance",
				Field:          FieldFuelImbalance,
				Bands:          []Band{{Limit: 10, Points: 15}, {Limit: 5, Points: 7}},
				Recommendation: "Rebalance fuel load before departure.",
			},
			{
				Category:       "Passenger Load",
				Field:          FieldPassengerLoad,
				Inclusive:      true, // a completely full cabin counts
				Bands:          []Band{{Limit: 98, Points: 3}},
				Recommendation: "Verify weight and balance calculations.",
			},
			{
				Category:       "Fuel Quantity",
				Field:          FieldFuelQuantity,
				Below:          true,
				Bands:          []Band{{Limit: 1000, Points: 10}},
				Recommendation: "Confirm fuel uplift against the flight plan.",
			},
			{
				Category:       "Oil Pressure",
				Field:          FieldOilPressure,
				Below:          true,
				Bands:          []Band{{Limit: 30, Points: 10}},
				Recommendation: "Ground check oil system before release.",
			},
			{
				Category:       "Hydraulic Pressure",
				Field:          FieldHydraulicPressure,
				Below:          true,
				Bands:          []Band{{Limit: 2000, Points: 10}},
				Recommendation: "Inspect hydraulic system for leaks or pump wear.",
			},
		},
		Brake: BrakeRule{
			Category:       "Brake Status",
			Field:          FieldBrakeStatus,
			Tokens:         []string{"warning", "fail"},
			Points:         20,
			Recommendation: "Resolve brake warning before pushback.",
		},
		Weather:           DefaultWeatherRule(),
		Boundaries:        Boundaries{High: 65, Medium: 35},
		RuleWeight:        0.6,
		FatigueWindowDays: 30,
	}
}

// Validate checks the policy for internal consistency.
func (p Policy) Validate() error {
	if p.RuleWeight < 0 || p.RuleWeight > 1 {
		return fmt.Errorf("rule weight %.2f outside [0,1]", p.RuleWeight)
	}
	if p.Boundaries.High <= p.Boundaries.Medium {
		return fmt.Errorf("high boundary %.1f must exceed medium boundary %.1f",
			p.Boundaries.High, p.Boundaries.Medium)
	}
	for _, sig := range p.Signals {
		if sig.Field == "" || len(sig.Bands) == 0 {
			return fmt.Errorf("signal %q has no field or bands", sig.Category)
		}
		for _, band := range sig.Bands {
			if band.Points < 0 {
				return fmt.Errorf("signal %q has negative points", sig.Category)
			}
		}
	}
	for _, tier := range p.Weather.Tiers {
		if tier.Points < 0 {
			return fmt.Errorf("weather tier %q has negative points", tier.Label)
		}
	}
	if p.Brake.Points < 0 {
		return fmt.Errorf("brake rule has negative points")
	}
	return nil
}
