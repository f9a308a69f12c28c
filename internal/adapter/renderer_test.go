package adapter

import (
	"context"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "trojanscope.dev/pkg/trojanscope/internal/model"
)

func decodePNG(t *testing.T, path m.Path) (int, int) {
	t.Helper()

	f, err := os.Open(string(path))
	require.NoError(t, err)

	defer func() {
		_ = f.Close()
	}()

	img, err := png.Decode(f)
	require.NoError(t, err)

	return img.Bounds().Dx(), img.Bounds().Dy()
}

func TestChartRenderer_RenderComparison(t *testing.T) {
	path := m.Path(filepath.Join(t.TempDir(), "comparison_plot.png"))
	series := m.ComparisonSeries{
		Keys:      []string{"A", "B", "C"},
		Baseline:  []int{10, 0, 0},
		Candidate: []int{12, 0, 3},
		Flagged:   map[string]bool{"C": true},
	}

	require.NoError(t, NewChartRenderer().RenderComparison(context.Background(), path, series))

	width, height := decodePNG(t, path)
	assert.Equal(t, minChartWidth, width)
	assert.Equal(t, comparisonH, height)
}

func TestChartRenderer_RenderComparison_AllSilent(t *testing.T) {
	path := m.Path(filepath.Join(t.TempDir(), "comparison_plot.png"))
	series := m.ComparisonSeries{Keys: []string{"idle"}, Baseline: []int{0}, Candidate: []int{0}}

	require.NoError(t, NewChartRenderer().RenderComparison(context.Background(), path, series))
	assert.FileExists(t, string(path))
}

func TestChartRenderer_RenderComparison_Empty(t *testing.T) {
	path := m.Path(filepath.Join(t.TempDir(), "comparison_plot.png"))

	err := NewChartRenderer().RenderComparison(context.Background(), path, m.ComparisonSeries{})
	require.ErrorIs(t, err, ErrNothingToRender)
	assert.NoFileExists(t, string(path))
}

func TestChartRenderer_RenderWaveforms(t *testing.T) {
	path := m.Path(filepath.Join(t.TempDir(), "out", "waveform_view.png"))
	panels := []m.WaveformPanel{
		{Name: "tb.clk", Points: []m.Point{{T: 0, V: 0}, {T: 5, V: 0}, {T: 5, V: 1}, {T: 10, V: 1}}},
		{Name: "tb.bus", Points: []m.Point{{T: 0, V: -1}, {T: 4, V: -1}, {T: 4, V: 12}, {T: 10, V: 12}}},
	}

	require.NoError(t, NewChartRenderer().RenderWaveforms(context.Background(), path, panels))

	width, height := decodePNG(t, path)
	assert.Equal(t, panelWidth, width)
	assert.Equal(t, captionHeight+2*panelHeight, height)
}

func TestChartRenderer_RenderWaveforms_Empty(t *testing.T) {
	err := NewChartRenderer().RenderWaveforms(context.Background(), "unused.png", nil)
	assert.ErrorIs(t, err, ErrNothingToRender)
}

func TestSharedHorizon(t *testing.T) {
	assert.Equal(t, noActivityRange, sharedHorizon([]m.WaveformPanel{{Points: []m.Point{{T: 0}}}}))
	assert.Equal(t, 42.0, sharedHorizon([]m.WaveformPanel{
		{Points: []m.Point{{T: 0}, {T: 12}}},
		{Points: []m.Point{{T: 0}, {T: 42}}},
	}))
}
