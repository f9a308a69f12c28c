package model

// Point is one sample of a step-function waveform.
type Point struct {
	T uint64
	V float64
}

// WaveformPanel is a named waveform series handed to the renderer.
type WaveformPanel struct {
	Name   string
	Points []Point
}

// ComparisonSeries holds the parallel arrays of the toggle count bar chart.
type ComparisonSeries struct {
	Keys      []string
	Baseline  []int
	Candidate []int
	Flagged   map[string]bool
}
