package model

// Presence tells on which side of the comparison a key was recorded.
type Presence string

const (
	// PresenceBoth marks keys recorded for both variants.
	PresenceBoth Presence = "both"
	// PresenceBaselineOnly marks keys that disappeared from the candidate.
	PresenceBaselineOnly Presence = "baseline_only"
	// PresenceCandidateOnly marks keys that only exist in the candidate.
	PresenceCandidateOnly Presence = "candidate_only"
)

// DeviationRecord is one row of the comparison report.
type DeviationRecord struct {
	Key            string   `yaml:"key" json:"key"`
	BaselineCount  int      `yaml:"baseline_count" json:"baseline_count"`
	CandidateCount int      `yaml:"candidate_count" json:"candidate_count"`
	Presence       Presence `yaml:"presence" json:"presence"`
	// DeviationPct is only set when Presence is PresenceBoth.
	DeviationPct *float64 `yaml:"deviation_pct,omitempty" json:"deviation_pct,omitempty"`
	Flagged      bool     `yaml:"flagged" json:"flagged"`
}

// Deviation returns the deviation percentage and whether it is defined.
func (r DeviationRecord) Deviation() (float64, bool) {
	if r.DeviationPct == nil {
		return 0, false
	}

	return *r.DeviationPct, true
}

// Summary aggregates the records of a report.
type Summary struct {
	Total         int `yaml:"total" json:"total"`
	Flagged       int `yaml:"flagged" json:"flagged"`
	CandidateOnly int `yaml:"candidate_only" json:"candidate_only"`
	BaselineOnly  int `yaml:"baseline_only" json:"baseline_only"`
}

// Report is the structured result of one analysis run.
type Report struct {
	Trace           Path              `yaml:"trace" json:"trace"`
	BaselineMarker  string            `yaml:"baseline_marker" json:"baseline_marker"`
	CandidateMarker string            `yaml:"candidate_marker" json:"candidate_marker"`
	ThresholdPct    float64           `yaml:"threshold_pct" json:"threshold_pct"`
	BaselineCount   int               `yaml:"baseline_signals" json:"baseline_signals"`
	CandidateCount  int               `yaml:"candidate_signals" json:"candidate_signals"`
	Records         []DeviationRecord `yaml:"records" json:"records"`
	Summary         Summary           `yaml:"summary" json:"summary"`
}

// FlaggedRecords returns the flagged records in report order.
func (r Report) FlaggedRecords() []DeviationRecord {
	flagged := make([]DeviationRecord, 0, r.Summary.Flagged)

	for _, rec := range r.Records {
		if rec.Flagged {
			flagged = append(flagged, rec)
		}
	}

	return flagged
}

// Summarize computes the summary counts for records.
func Summarize(records []DeviationRecord) Summary {
	s := Summary{Total: len(records)}

	for _, rec := range records {
		if rec.Flagged {
			s.Flagged++
		}

		switch rec.Presence {
		case PresenceCandidateOnly:
			s.CandidateOnly++
		case PresenceBaselineOnly:
			s.BaselineOnly++
		case PresenceBoth:
		}
	}

	return s
}
