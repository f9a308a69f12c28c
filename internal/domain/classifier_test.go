package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "trojanscope.dev/pkg/trojanscope/internal/model"
)

const (
	cleanMarker  = "UUT_clean."
	trojanMarker = "UUT_trojan."
)

func TestClassify(t *testing.T) {
	paths := []string{
		"tb.clk",
		"tb.UUT_clean.A[3:0]",
		"tb.UUT_clean.result[7:0]",
		"tb.UUT_trojan.A[3:0]",
		"tb.UUT_trojan.result[7:0]",
		"tb.UUT_trojan.payload.trigger",
	}

	baseline, candidate, err := Classify(paths, cleanMarker, trojanMarker)
	require.NoError(t, err)

	assert.Equal(t, m.VariantKeySet{
		"A[3:0]":      "tb.UUT_clean.A[3:0]",
		"result[7:0]": "tb.UUT_clean.result[7:0]",
	}, baseline)
	assert.Equal(t, m.VariantKeySet{
		"A[3:0]":          "tb.UUT_trojan.A[3:0]",
		"result[7:0]":     "tb.UUT_trojan.result[7:0]",
		"payload.trigger": "tb.UUT_trojan.payload.trigger",
	}, candidate)
}

func TestClassify_MarkerWithoutSeparator(t *testing.T) {
	baseline, candidate, err := Classify([]string{"top.golden.q", "top.dut.q"}, "golden", "dut")
	require.NoError(t, err)

	assert.Equal(t, m.VariantKeySet{"q": "top.golden.q"}, baseline)
	assert.Equal(t, m.VariantKeySet{"q": "top.dut.q"}, candidate)
}

func TestClassify_Ambiguous(t *testing.T) {
	_, _, err := Classify([]string{"tb.UUT_clean.UUT_trojan.x"}, cleanMarker, trojanMarker)

	var ambiguous *AmbiguousClassificationError
	require.ErrorAs(t, err, &ambiguous)
	assert.Equal(t, "tb.UUT_clean.UUT_trojan.x", ambiguous.Path)
}

func TestClassify_DuplicateKey(t *testing.T) {
	_, _, err := Classify([]string{"a.UUT_clean.x", "b.UUT_clean.x"}, cleanMarker, trojanMarker)

	var dup *DuplicateKeyError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "x", dup.Key)
	assert.Equal(t, "a.UUT_clean.x", dup.First)
	assert.Equal(t, "b.UUT_clean.x", dup.Second)
}

func TestClassify_InvalidMarkers(t *testing.T) {
	tests := []struct {
		name      string
		baseline  string
		candidate string
	}{
		{"empty baseline", "", trojanMarker},
		{"blank candidate", cleanMarker, "  "},
		{"identical", "same", "same"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := Classify([]string{"tb.x"}, tt.baseline, tt.candidate)
			assert.ErrorIs(t, err, ErrInvalidMarkers)
		})
	}
}

func TestClassify_NoMatches(t *testing.T) {
	baseline, candidate, err := Classify([]string{"tb.clk", "tb.rst"}, cleanMarker, trojanMarker)
	require.NoError(t, err)

	assert.Empty(t, baseline)
	assert.Empty(t, candidate)
}

func TestComparisonKey(t *testing.T) {
	key, ok := ComparisonKey("tb.UUT_clean.sub.B", cleanMarker)
	assert.True(t, ok)
	assert.Equal(t, "sub.B", key)

	_, ok = ComparisonKey("tb.other.B", cleanMarker)
	assert.False(t, ok)
}
