package ingest

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skyward/preflight/internal/risk"
)

func TestReadTable(t *testing.T) {
	t.Run("canonical headers", func(t *testing.T) {
		input := "flight_no,pilot_hours_recent,weather_text\n" +
			"SW101,68,Heavy rain\n" +
			"SW102,40,Clear\n"

		records, err := ReadTable(strings.NewReader(input))
		require.NoError(t, err)
		require.Len(t, records, 2)
		assert.Equal(t, "SW101", records[0][risk.FieldFlightNo])
		assert.Equal(t, 68.0, records[0].Num(risk.FieldPilotHoursRecent, 0))
		assert.Equal(t, "clear", records[1].Text(risk.FieldWeather))
	})

	t.Run("legacy dashboard headers", func(t *testing.T) {
		input := "Flight_No,Pilot_Hours_Last30,Pilot_Hours_Total,Weather,Brake_Status\n" +
			"AC220,55,900,Snow squalls,OK\n"

		records, err := ReadTable(strings.NewReader(input))
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, 55.0, records[0].Num(risk.FieldPilotHoursRecent, 0))
		assert.Equal(t, 900.0, records[0].Num(risk.FieldPilotExperience, 0))
		assert.Equal(t, "snow squalls", records[0].Text(risk.FieldWeather))
	})

	t.Run("header only yields no records", func(t *testing.T) {
		records, err := ReadTable(strings.NewReader("flight_no,weather_text\n"))
		require.NoError(t, err)
		assert.Empty(t, records)
	})

	t.Run("empty input", func(t *testing.T) {
		_, err := ReadTable(strings.NewReader(""))
		assert.ErrorIs(t, err, ErrEmptyTable)
	})

	t.Run("ragged row is a hard failure", func(t *testing.T) {
		input := "a,b,c\n1,2,3\n1,2\n"
		_, err := ReadTable(strings.NewReader(input))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "row 3")
	})

	t.Run("unclosed quote is a hard failure", func(t *testing.T) {
		_, err := ReadTable(strings.NewReader("a,b\n\"oops,2\n"))
		assert.Error(t, err)
	})

	t.Run("quoted cells with commas", func(t *testing.T) {
		input := "flight_no,weather_text\nSW9,\"Thunder, heavy rain\"\n"

		records, err := ReadTable(strings.NewReader(input))
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, "thunder, heavy rain", records[0].Text(risk.FieldWeather))
	})
}
