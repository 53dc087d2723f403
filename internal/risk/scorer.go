package risk

import (
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/skyward/preflight/internal/metrics"
	"github.com/skyward/preflight/pkg/logger"
)

// ScoreResult is the outcome of scoring one flight record.
type ScoreResult struct {
	RuleScore   float64   `json:"rule_score"`
	ModelScore  *float64  `json:"model_score,omitempty"`
	HybridScore float64   `json:"hybrid_score"`
	RiskLevel   RiskLevel `json:"risk_level"`
	Issues      []Issue   `json:"issues"`
	ScoredAt    time.Time `json:"scored_at"`
}

// Scorer runs the per-record scoring pipeline: rule evaluation, optional
// model inference, and the hybrid blend. The model scorer is injected
// explicitly; a nil model means rule-only scoring.
type Scorer struct {
	policy  Policy
	model   ModelScorer
	clock   clockwork.Clock
	metrics *metrics.Metrics
	logger  *logger.Logger
}

// NewScorer creates a scorer. Pass model as nil when no classifier artifact
// is available.
func NewScorer(policy Policy, model ModelScorer, clock clockwork.Clock, m *metrics.Metrics, log *logger.Logger) *Scorer {
	return &Scorer{
		policy:  policy,
		model:   model,
		clock:   clock,
		metrics: m,
		logger:  log.Named("scorer"),
	}
}

// Policy returns the active threshold policy.
func (s *Scorer) Policy() Policy {
	return s.policy
}

// HasModel reports whether a model scorer is wired in.
func (s *Scorer) HasModel() bool {
	return s.model != nil
}

// ScoreRecord scores a single flight record. A failing model never
// propagates: the record falls back to rule-only scoring for that call.
func (s *Scorer) ScoreRecord(rec Record) ScoreResult {
	issues := Evaluate(rec, s.policy)
	rule := RuleScore(issues)

	var modelScore *float64
	if s.model != nil {
		score, err := s.model.Score(FeatureVector(rec, s.model.Features()))
		if err != nil {
			s.logger.Warn("model inference failed, falling back to rule score",
				logger.Error(err))
			s.metrics.ModelFailures.Inc()
		} else {
			score = clamp(score, 0, 100)
			modelScore = &score
		}
	}

	hybrid := rule
	if modelScore != nil {
		w := s.policy.RuleWeight
		hybrid = round1(clamp(w*rule+(1-w)**modelScore, 0, 100))
	}

	level := s.policy.Boundaries.Level(hybrid)
	s.metrics.FlightsScored.WithLabelValues(string(level)).Inc()

	return ScoreResult{
		RuleScore:   rule,
		ModelScore:  modelScore,
		HybridScore: hybrid,
		RiskLevel:   level,
		Issues:      issues,
		ScoredAt:    s.clock.Now().UTC(),
	}
}

// ScoreBatch scores a table of records, preserving input row order.
func (s *Scorer) ScoreBatch(records []Record) []ScoreResult {
	start := s.clock.Now()

	results := make([]ScoreResult, len(records))
	for i, rec := range records {
		results[i] = s.ScoreRecord(rec)
	}

	s.metrics.BatchSize.Observe(float64(len(records)))
	s.metrics.BatchDuration.Observe(s.clock.Since(start).Seconds())
	return results
}
