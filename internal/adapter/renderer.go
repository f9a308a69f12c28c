package adapter

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	m "trojanscope.dev/pkg/trojanscope/internal/model"
)

const (
	comparisonTitle = "Side-Channel Analysis: Toggle Count Comparison"
	waveformCaption = "Waveform Viewer"

	barWidth        = 12
	barSpacing      = 4
	minChartWidth   = 1024
	comparisonH     = 600
	panelWidth      = 1500
	panelHeight     = 200
	captionHeight   = 28
	timeAxisName    = "Time (simulation units)"
	noActivityRange = 1.0
)

// ErrNothingToRender is returned when a chart has no data.
var ErrNothingToRender = errors.New("nothing to render")

var (
	baselineColor  = drawing.ColorFromHex("1f77b4")
	candidateColor = drawing.ColorFromHex("ff7f0e")
	flaggedColor   = chart.ColorRed
	waveColor      = chart.ColorBlue
)

// Renderer turns computed series into image artifacts.
type Renderer interface {
	RenderComparison(ctx context.Context, path m.Path, series m.ComparisonSeries) error
	RenderWaveforms(ctx context.Context, path m.Path, panels []m.WaveformPanel) error
}

// ChartRenderer renders PNG charts with go-chart.
type ChartRenderer struct{}

// NewChartRenderer constructs a ChartRenderer.
func NewChartRenderer() *ChartRenderer {
	return &ChartRenderer{}
}

// RenderComparison draws baseline and candidate toggle counts side by side for each
// key. Flagged candidate bars are drawn in red.
func (r *ChartRenderer) RenderComparison(ctx context.Context, path m.Path, series m.ComparisonSeries) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if len(series.Keys) == 0 {
		return ErrNothingToRender
	}

	bc := comparisonChart(series)

	var buf bytes.Buffer
	if err := bc.Render(chart.PNG, &buf); err != nil {
		slog.Error("Failed to render comparison chart", "path", path, "error", err)
		return fmt.Errorf("failed to render comparison chart: %w", err)
	}

	return writeFile(path, buf.Bytes())
}

func comparisonChart(series m.ComparisonSeries) chart.BarChart {
	bars := make([]chart.Value, 0, 2*len(series.Keys))
	peak := 0

	for i, key := range series.Keys {
		candidateFill := candidateColor
		if series.Flagged[key] {
			candidateFill = flaggedColor
		}

		bars = append(bars,
			chart.Value{
				Label: key,
				Value: float64(series.Baseline[i]),
				Style: chart.Style{FillColor: baselineColor, StrokeColor: baselineColor},
			},
			chart.Value{
				Label: " ",
				Value: float64(series.Candidate[i]),
				Style: chart.Style{FillColor: candidateFill, StrokeColor: candidateFill},
			},
		)

		peak = max(peak, series.Baseline[i], series.Candidate[i])
	}

	width := max(minChartWidth, len(bars)*(barWidth+barSpacing)+200)

	yMax := float64(peak)
	if peak == 0 {
		yMax = noActivityRange
	}

	return chart.BarChart{
		Title:      comparisonTitle,
		Width:      width,
		Height:     comparisonH,
		BarWidth:   barWidth,
		BarSpacing: barSpacing,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 120}},
		XAxis:      chart.Style{TextRotationDegrees: 90, FontSize: 8},
		YAxis: chart.YAxis{
			Name:  "Total Toggle Counts",
			Range: &chart.ContinuousRange{Min: 0, Max: yMax},
		},
		Bars: bars,
	}
}

// RenderWaveforms draws one panel per signal on a shared time axis and stacks the
// panels vertically into a single image.
func (r *ChartRenderer) RenderWaveforms(ctx context.Context, path m.Path, panels []m.WaveformPanel) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if len(panels) == 0 {
		return ErrNothingToRender
	}

	horizon := sharedHorizon(panels)

	canvas := image.NewRGBA(image.Rect(0, 0, panelWidth, captionHeight+panelHeight*len(panels)))
	draw.Draw(canvas, canvas.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	drawCaption(canvas, waveformCaption)

	for i, panel := range panels {
		if err := ctx.Err(); err != nil {
			return err
		}

		img, err := renderPanel(panel, horizon, i == len(panels)-1)
		if err != nil {
			slog.Error("Failed to render waveform panel", "signal", panel.Name, "error", err)
			return fmt.Errorf("failed to render waveform %s: %w", panel.Name, err)
		}

		top := captionHeight + i*panelHeight
		draw.Draw(canvas, image.Rect(0, top, panelWidth, top+panelHeight), img, img.Bounds().Min, draw.Src)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, canvas); err != nil {
		return fmt.Errorf("failed to encode waveform image: %w", err)
	}

	return writeFile(path, buf.Bytes())
}

func renderPanel(panel m.WaveformPanel, horizon float64, withTimeAxis bool) (image.Image, error) {
	xs := make([]float64, len(panel.Points))
	ys := make([]float64, len(panel.Points))
	lo, hi := 0.0, noActivityRange

	for i, p := range panel.Points {
		xs[i] = float64(p.T)
		ys[i] = p.V
		lo = min(lo, p.V)
		hi = max(hi, p.V)
	}

	xAxis := chart.XAxis{Range: &chart.ContinuousRange{Min: 0, Max: horizon}}
	if withTimeAxis {
		xAxis.Name = timeAxisName
	}

	ch := chart.Chart{
		Width:      panelWidth,
		Height:     panelHeight,
		Background: chart.Style{Padding: chart.Box{Top: 10, Left: 16, Right: 16, Bottom: 10}},
		XAxis:      xAxis,
		YAxis: chart.YAxis{
			Name:  panel.Name,
			Range: &chart.ContinuousRange{Min: lo - 0.5, Max: hi + 0.5},
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    panel.Name,
				XValues: xs,
				YValues: ys,
				Style:   chart.Style{StrokeColor: waveColor, StrokeWidth: 2},
			},
		},
	}

	var buf bytes.Buffer
	if err := ch.Render(chart.PNG, &buf); err != nil {
		return nil, err
	}

	return png.Decode(&buf)
}

func sharedHorizon(panels []m.WaveformPanel) float64 {
	horizon := 0.0

	for _, panel := range panels {
		if n := len(panel.Points); n > 0 {
			horizon = max(horizon, float64(panel.Points[n-1].T))
		}
	}

	if horizon == 0 {
		return noActivityRange
	}

	return horizon
}

func drawCaption(dst draw.Image, text string) {
	face := basicfont.Face7x13
	d := &font.Drawer{Dst: dst, Src: image.NewUniform(color.Black), Face: face}
	width := d.MeasureString(text).Ceil()
	x := (dst.Bounds().Dx() - width) / 2
	y := (captionHeight + face.Metrics().Ascent.Ceil()) / 2
	d.Dot = fixed.Point26_6{X: fixed.I(x), Y: fixed.I(y)}
	d.DrawString(text)
}

func writeFile(path m.Path, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(string(path)), 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	if err := os.WriteFile(string(path), data, 0o600); err != nil {
		slog.Error("Failed to write image", "path", path, "error", err)
		return fmt.Errorf("failed to write image: %w", err)
	}

	slog.Debug("wrote image", "path", path, "bytes", len(data))

	return nil
}
