package domain

import (
	m "trojanscope.dev/pkg/trojanscope/internal/model"
)

// ToggleCount returns the number of transitions recorded after the initial value.
//
// The count ignores what the values are; it is a proxy for switching activity.
func ToggleCount(trace m.SignalTrace) int {
	if len(trace.Changes) == 0 {
		return 0
	}

	return len(trace.Changes) - 1
}

// CountToggles builds the activity table of one variant from its key set.
// Keys whose path has no recorded trace count as zero activity.
func CountToggles(keys m.VariantKeySet, trace *m.Trace) m.VariantSignalSet {
	counts := make(m.VariantSignalSet, len(keys))

	for key, path := range keys {
		sig, _ := trace.Signal(path)
		counts[key] = ToggleCount(sig)
	}

	return counts
}
