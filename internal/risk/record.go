package risk

import (
	"fmt"
	"strconv"
	"strings"
)

// Canonical field names. Input tables may use either these or the legacy
// dashboard CSV headers (see columnAliases); both score identically.
const (
	FieldFlightNo           = "flight_no"
	FieldPilotHoursRecent   = "pilot_hours_recent"
	FieldPilotExperience    = "pilot_experience_hours"
	FieldMaintenanceAge     = "maintenance_age_days"
	FieldEngineVibration    = "engine_vibration"
	FieldFuelImbalance      = "fuel_imbalance_pct"
	FieldPassengerLoad      = "passenger_load_pct"
	FieldWeather            = "weather_text"
	FieldBrakeStatus        = "brake_status"
	FieldFuelQuantity       = "fuel_quantity"
	FieldOilPressure        = "oil_pressure"
	FieldHydraulicPressure  = "hydraulic_pressure"
	FieldMaintenanceRemarks = "maintenance_remarks"
)

// columnAliases maps the legacy dashboard CSV headers onto canonical names.
var columnAliases = map[string]string{
	"flight_no":           FieldFlightNo,
	"pilot_hours_last30":  FieldPilotHoursRecent,
	"pilot_hours_last7":   FieldPilotHoursRecent,
	"pilot_hours_total":   FieldPilotExperience,
	"maint_age_days":      FieldMaintenanceAge,
	"engine_vibration":    FieldEngineVibration,
	"fuel_imbalance":      FieldFuelImbalance,
	"weather":             FieldWeather,
	"brake_status":        FieldBrakeStatus,
	"fuel_quantity":       FieldFuelQuantity,
	"oil_pressure":        FieldOilPressure,
	"hydraulic_pressure":  FieldHydraulicPressure,
	"passenger_load":      FieldPassengerLoad,
	"maintenance_remarks": FieldMaintenanceRemarks,
}

// CanonicalField normalizes a column name: trims, lower-cases, and resolves
// known legacy aliases.
func CanonicalField(name string) string {
	key := strings.ToLower(strings.TrimSpace(name))
	if canonical, ok := columnAliases[key]; ok {
		return canonical
	}
	return key
}

// Record is one row of an input table: canonical field name -> raw cell text.
// Records are immutable for the duration of a scoring call.
type Record map[string]string

// NewRecord builds a Record from parallel column/cell slices. Extra cells
// beyond the column count are dropped; short rows leave fields absent.
func NewRecord(columns, cells []string) Record {
	rec := make(Record, len(columns))
	for i, col := range columns {
		if i >= len(cells) {
			break
		}
		rec[CanonicalField(col)] = strings.TrimSpace(cells[i])
	}
	return rec
}

// RecordFromValues builds a Record from a decoded JSON object, rendering
// numbers without a trailing exponent so they re-parse cleanly.
func RecordFromValues(values map[string]any) Record {
	rec := make(Record, len(values))
	for name, value := range values {
		switch v := value.(type) {
		case nil:
			rec[CanonicalField(name)] = ""
		case string:
			rec[CanonicalField(name)] = strings.TrimSpace(v)
		case float64:
			rec[CanonicalField(name)] = strconv.FormatFloat(v, 'f', -1, 64)
		case bool:
			rec[CanonicalField(name)] = strconv.FormatBool(v)
		default:
			rec[CanonicalField(name)] = fmt.Sprint(v)
		}
	}
	return rec
}

// Num returns the field parsed as a float, or def when the field is missing,
// blank, or unparsable. It never errors.
func (r Record) Num(field string, def float64) float64 {
	if v, ok := r.Lookup(field); ok {
		return v
	}
	return def
}

// Lookup returns the field parsed as a float and whether a usable numeric
// value was present.
func (r Record) Lookup(field string) (float64, bool) {
	raw, ok := r[field]
	if !ok {
		return 0, false
	}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// Text returns the field lower-cased and trimmed; missing fields are "".
func (r Record) Text(field string) string {
	return strings.ToLower(strings.TrimSpace(r[field]))
}

// Raw returns the field as stored, trimmed only.
func (r Record) Raw(field string) string {
	return strings.TrimSpace(r[field])
}
