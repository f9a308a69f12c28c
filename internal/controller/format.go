package controller

import (
	"fmt"

	m "trojanscope.dev/pkg/trojanscope/internal/model"
)

const noDeviationLabel = "-"

func formatDeviation(rec m.DeviationRecord) string {
	pct, ok := rec.Deviation()
	if !ok {
		return noDeviationLabel
	}

	return fmt.Sprintf("%.2f%%", pct)
}

func formatFlag(rec m.DeviationRecord) string {
	if rec.Flagged {
		return "!! SUSPICIOUS"
	}

	return ""
}

func recordRow(rec m.DeviationRecord) []string {
	return []string{
		rec.Key,
		string(rec.Presence),
		fmt.Sprintf("%d", rec.BaselineCount),
		fmt.Sprintf("%d", rec.CandidateCount),
		formatDeviation(rec),
		formatFlag(rec),
	}
}

func visibleRecords(report m.Report, cfg DisplayConfig) []m.DeviationRecord {
	if cfg.all {
		return report.Records
	}

	return report.FlaggedRecords()
}

func classificationLines(report m.Report) []string {
	return []string{
		fmt.Sprintf("Found %d signals in baseline (%s).", report.BaselineCount, report.BaselineMarker),
		fmt.Sprintf("Found %d signals in candidate (%s).", report.CandidateCount, report.CandidateMarker),
	}
}

func summaryLine(report m.Report) string {
	s := report.Summary

	return fmt.Sprintf("Compared: %d | Flagged: %d | Candidate only: %d | Baseline only: %d | Threshold: %.2f%%",
		s.Total, s.Flagged, s.CandidateOnly, s.BaselineOnly, report.ThresholdPct)
}

var recordHeader = []string{"Signal", "Presence", "Baseline", "Candidate", "Deviation", "Status"}
