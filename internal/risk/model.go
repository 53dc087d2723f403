package risk

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
)

// ModelScorer is an externally supplied classifier producing a 0-100 risk
// score from a numeric feature vector. Implementations must be side-effect
// free; a failing scorer degrades the pipeline to rule-only scoring, it never
// blocks it.
type ModelScorer interface {
	// Features returns the record fields the model consumes, in order.
	Features() []string
	// Score returns a risk score in [0,100] for a feature vector whose
	// length matches Features.
	Score(features []float64) (float64, error)
}

// Artifact output kinds.
const (
	OutputProbability = "probability" // positive-class probability, scaled x100
	OutputScore       = "score"       // plain numeric score, clamped to [0,100]
)

// Artifact is the on-disk classifier format: a linear model over named
// record fields with either a probability-style or plain numeric output.
type Artifact struct {
	Name      string    `json:"name"`
	Output    string    `json:"output"`
	Features  []string  `json:"features"`
	Weights   []float64 `json:"weights"`
	Intercept float64   `json:"intercept"`
}

// LinearModel scores records with a loaded artifact.
type LinearModel struct {
	artifact Artifact
}

// LoadArtifact reads and validates a classifier artifact from disk.
func LoadArtifact(path string) (*LinearModel, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read model artifact: %w", err)
	}

	var artifact Artifact
	if err := json.Unmarshal(data, &artifact); err != nil {
		return nil, fmt.Errorf("parse model artifact: %w", err)
	}

	if artifact.Output != OutputProbability && artifact.Output != OutputScore {
		return nil, fmt.Errorf("unknown model output kind %q", artifact.Output)
	}
	if len(artifact.Features) == 0 {
		return nil, fmt.Errorf("model artifact declares no features")
	}
	if len(artifact.Weights) != len(artifact.Features) {
		return nil, fmt.Errorf("model artifact has %d weights for %d features",
			len(artifact.Weights), len(artifact.Features))
	}

	for i, name := range artifact.Features {
		artifact.Features[i] = CanonicalField(name)
	}

	return &LinearModel{artifact: artifact}, nil
}

// Name returns the artifact's declared name.
func (m *LinearModel) Name() string {
	return m.artifact.Name
}

// Features returns the record fields the model consumes, in artifact order.
func (m *LinearModel) Features() []string {
	return m.artifact.Features
}

// Score computes the model's 0-100 risk estimate for a feature vector.
func (m *LinearModel) Score(features []float64) (float64, error) {
	if len(features) != len(m.artifact.Weights) {
		return 0, fmt.Errorf("expected %d features, got %d", len(m.artifact.Weights), len(features))
	}

	z := m.artifact.Intercept
	for i, w := range m.artifact.Weights {
		z += w * features[i]
	}

	if m.artifact.Output == OutputProbability {
		return 100 / (1 + math.Exp(-z)), nil
	}
	return clamp(z, 0, 100), nil
}

// FeatureVector extracts the named numeric fields from a record in order.
// Missing or unparsable fields are filled with 0.
func FeatureVector(rec Record, features []string) []float64 {
	vector := make([]float64, len(features))
	for i, field := range features {
		vector[i] = rec.Num(field, 0)
	}
	return vector
}
