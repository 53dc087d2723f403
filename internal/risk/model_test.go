package risk

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeArtifact(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "model.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadArtifact(t *testing.T) {
	t.Run("valid probability model", func(t *testing.T) {
		path := writeArtifact(t, `{
			"name": "preflight-lr-v1",
			"output": "probability",
			"features": ["Pilot_Hours_Last30", "engine_vibration"],
			"weights": [0.05, 0.8],
			"intercept": -4.0
		}`)

		model, err := LoadArtifact(path)
		require.NoError(t, err)
		assert.Equal(t, "preflight-lr-v1", model.Name())
		// Feature names are canonicalized on load.
		assert.Equal(t, []string{FieldPilotHoursRecent, FieldEngineVibration}, model.Features())
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadArtifact(filepath.Join(t.TempDir(), "nope.json"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "read model artifact")
	})

	t.Run("malformed JSON", func(t *testing.T) {
		path := writeArtifact(t, `{not json`)
		_, err := LoadArtifact(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "parse model artifact")
	})

	t.Run("unknown output kind", func(t *testing.T) {
		path := writeArtifact(t, `{"output":"classes","features":["a"],"weights":[1]}`)
		_, err := LoadArtifact(path)
		assert.Error(t, err)
	})

	t.Run("weight feature mismatch", func(t *testing.T) {
		path := writeArtifact(t, `{"output":"score","features":["a","b"],"weights":[1]}`)
		_, err := LoadArtifact(path)
		assert.Error(t, err)
	})

	t.Run("no features", func(t *testing.T) {
		path := writeArtifact(t, `{"output":"score","features":[],"weights":[]}`)
		_, err := LoadArtifact(path)
		assert.Error(t, err)
	})
}

func TestLinearModelScore(t *testing.T) {
	t.Run("probability output scaled to 100", func(t *testing.T) {
		model := &LinearModel{artifact: Artifact{
			Output:    OutputProbability,
			Features:  []string{FieldEngineVibration},
			Weights:   []float64{0},
			Intercept: 0,
		}}

		// Sigmoid of zero is 0.5, scaled to 50.
		score, err := model.Score([]float64{3})
		require.NoError(t, err)
		assert.InDelta(t, 50.0, score, 1e-9)
	})

	t.Run("probability saturates inside range", func(t *testing.T) {
		model := &LinearModel{artifact: Artifact{
			Output:    OutputProbability,
			Features:  []string{FieldEngineVibration},
			Weights:   []float64{10},
			Intercept: 0,
		}}

		score, err := model.Score([]float64{100})
		require.NoError(t, err)
		assert.LessOrEqual(t, score, 100.0)
		assert.Greater(t, score, 99.0)
	})

	t.Run("plain score clamped", func(t *testing.T) {
		model := &LinearModel{artifact: Artifact{
			Output:    OutputScore,
			Features:  []string{FieldFuelImbalance},
			Weights:   []float64{20},
			Intercept: 0,
		}}

		score, err := model.Score([]float64{10})
		require.NoError(t, err)
		assert.Equal(t, 100.0, score)

		score, err = model.Score([]float64{-10})
		require.NoError(t, err)
		assert.Equal(t, 0.0, score)
	})

	t.Run("feature length mismatch", func(t *testing.T) {
		model := &LinearModel{artifact: Artifact{
			Output:   OutputScore,
			Features: []string{"a", "b"},
			Weights:  []float64{1, 1},
		}}

		_, err := model.Score([]float64{1})
		assert.Error(t, err)
	})
}

func TestFeatureVector(t *testing.T) {
	rec := Record{
		FieldPilotHoursRecent: "68",
		FieldEngineVibration:  "3.5",
	}

	t.Run("extracts in order", func(t *testing.T) {
		vector := FeatureVector(rec, []string{FieldEngineVibration, FieldPilotHoursRecent})
		assert.Equal(t, []float64{3.5, 68}, vector)
	})

	t.Run("missing columns fill with zero", func(t *testing.T) {
		vector := FeatureVector(rec, []string{FieldOilPressure, FieldPilotHoursRecent})
		assert.Equal(t, []float64{0, 68}, vector)
	})
}
