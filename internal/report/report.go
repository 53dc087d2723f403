// Package report assembles per-flight scoring results and a fleet summary
// into the document the rendering and export collaborators consume.
package report

import (
	"encoding/json"
	"io"
	"sort"
	"time"

	"github.com/skyward/preflight/internal/risk"
)

// Entry pairs one flight's original fields with its score result.
type Entry struct {
	Fields risk.Record      `json:"fields"`
	Result risk.ScoreResult `json:"result"`
}

// IssueCount is one issue category and how many flights triggered it.
type IssueCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

// Summary aggregates a scored table for dashboard cards and charts.
type Summary struct {
	TotalFlights int            `json:"total_flights"`
	ByLevel      map[string]int `json:"by_level"`
	MeanScore    float64        `json:"mean_score"`
	MaxScore     float64        `json:"max_score"`
	TopIssues    []IssueCount   `json:"top_issues"`
}

// Report is the full output for one scored table.
type Report struct {
	GeneratedAt   time.Time `json:"generated_at"`
	PolicyVersion string    `json:"policy_version"`
	Flights       []Entry   `json:"flights"`
	Summary       Summary   `json:"summary"`
}

// Build assembles a report from parallel record/result slices, preserving
// input row order.
func Build(policyVersion string, generatedAt time.Time, records []risk.Record, results []risk.ScoreResult) Report {
	entries := make([]Entry, len(results))
	byLevel := map[string]int{
		string(risk.RiskLow):    0,
		string(risk.RiskMedium): 0,
		string(risk.RiskHigh):   0,
	}
	issueCounts := make(map[string]int)

	var sum, max float64
	for i, result := range results {
		entries[i] = Entry{Fields: records[i], Result: result}
		byLevel[string(result.RiskLevel)]++
		sum += result.HybridScore
		if result.HybridScore > max {
			max = result.HybridScore
		}
		for _, issue := range result.Issues {
			issueCounts[issue.Category]++
		}
	}

	mean := 0.0
	if len(results) > 0 {
		mean = sum / float64(len(results))
	}

	return Report{
		GeneratedAt:   generatedAt,
		PolicyVersion: policyVersion,
		Flights:       entries,
		Summary: Summary{
			TotalFlights: len(results),
			ByLevel:      byLevel,
			MeanScore:    mean,
			MaxScore:     max,
			TopIssues:    rankIssues(issueCounts),
		},
	}
}

// WriteJSON exports the report as indented JSON.
func (r Report) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// rankIssues orders issue categories by frequency, ties broken by name for
// stable output.
func rankIssues(counts map[string]int) []IssueCount {
	ranked := make([]IssueCount, 0, len(counts))
	for category, count := range counts {
		ranked = append(ranked, IssueCount{Category: category, Count: count})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return ranked[i].Category < ranked[j].Category
	})
	return ranked
}
