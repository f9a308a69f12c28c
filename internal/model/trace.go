// Package model defines the data structures for toggle-count side-channel analysis.
package model

// Change is one recorded value change of a signal.
type Change struct {
	Time  uint64
	Value string // raw value token, e.g. "1", "x", "1010"
}

// SignalTrace is the ordered change list of one recorded signal.
type SignalTrace struct {
	Path    string
	Changes []Change
}

// Trace is a fully loaded value change dump.
type Trace struct {
	Source Path
	// Paths lists hierarchical signal names in declaration order.
	Paths   []string
	Signals map[string]SignalTrace
	// EndTime is the last timestamp seen in the dump.
	EndTime uint64
}

// Signal returns the trace recorded for path.
func (t *Trace) Signal(path string) (SignalTrace, bool) {
	if t == nil || t.Signals == nil {
		return SignalTrace{}, false
	}

	sig, ok := t.Signals[path]

	return sig, ok
}

// VariantSignalSet maps a comparison key to the toggle count of one circuit variant.
type VariantSignalSet map[string]int

// VariantKeySet maps a comparison key to the full hierarchical path it was derived from.
type VariantKeySet map[string]string

// SignalActivity pairs a signal path with its toggle count.
type SignalActivity struct {
	Path    string
	Toggles int
}
