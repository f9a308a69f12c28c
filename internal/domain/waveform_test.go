package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "trojanscope.dev/pkg/trojanscope/internal/model"
)

func changes(pairs ...interface{}) []m.Change {
	out := make([]m.Change, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, m.Change{Time: uint64(pairs[i].(int)), Value: pairs[i+1].(string)})
	}

	return out
}

func horizonAt(t uint64) *uint64 {
	return &t
}

func TestReconstruct(t *testing.T) {
	tests := []struct {
		name    string
		changes []m.Change
		horizon *uint64
		want    []m.Point
	}{
		{
			name:    "empty trace",
			changes: nil,
			want:    nil,
		},
		{
			name:    "constant signal with horizon",
			changes: changes(0, "1"),
			horizon: horizonAt(100),
			want:    []m.Point{{T: 0, V: 1}, {T: 100, V: 1}},
		},
		{
			name:    "constant signal without horizon",
			changes: changes(0, "0"),
			want:    []m.Point{{T: 0, V: 0}, {T: 0, V: 0}},
		},
		{
			name:    "doubled step points",
			changes: changes(0, "0", 5, "1", 9, "0"),
			want: []m.Point{
				{T: 0, V: 0},
				{T: 5, V: 0}, {T: 5, V: 1},
				{T: 9, V: 1}, {T: 9, V: 0},
			},
		},
		{
			name:    "duplicate timestamp collapses",
			changes: changes(0, "0", 5, "1", 5, "1"),
			want: []m.Point{
				{T: 0, V: 0},
				{T: 5, V: 0}, {T: 5, V: 1},
			},
		},
		{
			name:    "unknown rendered with sentinel",
			changes: changes(0, "0", 5, "x", 8, "1"),
			want: []m.Point{
				{T: 0, V: 0},
				{T: 5, V: 0}, {T: 5, V: UnknownSentinel},
				{T: 8, V: UnknownSentinel}, {T: 8, V: 1},
			},
		},
		{
			name:    "horizon cuts later changes",
			changes: changes(0, "00", 5, "11", 20, "10"),
			horizon: horizonAt(10),
			want: []m.Point{
				{T: 0, V: 0},
				{T: 5, V: 0}, {T: 5, V: 3},
				{T: 10, V: 3},
			},
		},
		{
			name:    "horizon extends past last change",
			changes: changes(0, "0", 5, "1"),
			horizon: horizonAt(12),
			want: []m.Point{
				{T: 0, V: 0},
				{T: 5, V: 0}, {T: 5, V: 1},
				{T: 12, V: 1},
			},
		},
		{
			name:    "out of order change skipped",
			changes: changes(0, "0", 6, "1", 4, "0"),
			want: []m.Point{
				{T: 0, V: 0},
				{T: 6, V: 0}, {T: 6, V: 1},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Reconstruct(m.SignalTrace{Path: "tb.sig", Changes: tt.changes}, tt.horizon)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestReconstruct_MonotonicTime(t *testing.T) {
	trace := m.SignalTrace{Changes: changes(0, "0", 3, "1", 3, "z", 7, "0", 12, "1")}

	points := Reconstruct(trace, nil)
	require.NotEmpty(t, points)

	for i := 1; i < len(points); i++ {
		assert.LessOrEqual(t, points[i-1].T, points[i].T, "point %d", i)
	}

	assert.GreaterOrEqual(t, points[len(points)-1].T, uint64(12))
}
