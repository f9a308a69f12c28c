package domain

import (
	m "trojanscope.dev/pkg/trojanscope/internal/model"
)

// Reconstruct expands a sparse change list into a step-function series.
//
// Every change after the first emits a held point carrying the previous value at the
// change time followed by the new value, so the series renders as a step-post line.
// Unknown values are plotted as UnknownSentinel. When horizon is non-nil the series is
// cut at it and extended flat up to it; otherwise it ends at the last change. Changes
// sharing a timestamp collapse into one (last wins) and out-of-order changes are skipped.
func Reconstruct(trace m.SignalTrace, horizon *uint64) []m.Point {
	if len(trace.Changes) == 0 {
		return nil
	}

	first := trace.Changes[0]
	points := []m.Point{{T: first.Time, V: DecodeSample(first.Value).Plot()}}

	for _, change := range trace.Changes[1:] {
		if horizon != nil && change.Time > *horizon {
			break
		}

		last := points[len(points)-1]

		switch {
		case change.Time < last.T:
			continue
		case change.Time == last.T:
			points[len(points)-1].V = DecodeSample(change.Value).Plot()
		default:
			points = append(points,
				m.Point{T: change.Time, V: last.V},
				m.Point{T: change.Time, V: DecodeSample(change.Value).Plot()},
			)
		}
	}

	last := points[len(points)-1]

	end := last.T
	if horizon != nil && *horizon > end {
		end = *horizon
	}

	if end > last.T || len(points) == 1 {
		points = append(points, m.Point{T: end, V: last.V})
	}

	return points
}
