package domain

import (
	"math"
	"sort"

	m "trojanscope.dev/pkg/trojanscope/internal/model"
)

// DefaultThresholdPct is the deviation above which a signal pair is flagged.
const DefaultThresholdPct = 25.0

// AnalyzeOption is a functional option for Analyze.
type AnalyzeOption func(*analyzeConfig)

type analyzeConfig struct {
	flagBaselineOnly bool
}

// WithFlagBaselineOnly also flags keys that exist only in the baseline.
// By default a signal disappearing from the candidate is reported but not flagged.
func WithFlagBaselineOnly(enabled bool) AnalyzeOption {
	return func(c *analyzeConfig) {
		c.flagBaselineOnly = enabled
	}
}

// DeviationPct returns the relative toggle count change of candidate against baseline.
// A zero baseline with any candidate activity is pinned to 100.
func DeviationPct(baseline, candidate int) float64 {
	if baseline == 0 {
		if candidate > 0 {
			return 100.0
		}

		return 0.0
	}

	return math.Abs(float64(candidate-baseline)) / float64(baseline) * 100.0
}

// Analyze joins both activity tables by key and applies the anomaly threshold.
//
// Records are sorted by key. Candidate-only keys are always flagged; baseline-only
// keys are flagged only with WithFlagBaselineOnly; keys present on both sides are
// flagged when their deviation exceeds thresholdPct.
func Analyze(baseline, candidate m.VariantSignalSet, thresholdPct float64, opts ...AnalyzeOption) []m.DeviationRecord {
	cfg := analyzeConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}

	keys := unionKeys(baseline, candidate)
	records := make([]m.DeviationRecord, 0, len(keys))

	for _, key := range keys {
		b, inBaseline := baseline[key]
		c, inCandidate := candidate[key]

		rec := m.DeviationRecord{Key: key, BaselineCount: b, CandidateCount: c}

		switch {
		case !inBaseline:
			rec.Presence = m.PresenceCandidateOnly
			rec.Flagged = true
		case !inCandidate:
			rec.Presence = m.PresenceBaselineOnly
			rec.Flagged = cfg.flagBaselineOnly
		default:
			pct := DeviationPct(b, c)
			rec.Presence = m.PresenceBoth
			rec.DeviationPct = &pct
			rec.Flagged = pct > thresholdPct
		}

		records = append(records, rec)
	}

	return records
}

func unionKeys(baseline, candidate m.VariantSignalSet) []string {
	keys := make([]string, 0, len(baseline)+len(candidate))

	for key := range baseline {
		keys = append(keys, key)
	}

	for key := range candidate {
		if _, ok := baseline[key]; !ok {
			keys = append(keys, key)
		}
	}

	sort.Strings(keys)

	return keys
}
