// Package domain implements the toggle-count side-channel analysis: value decoding,
// waveform reconstruction, signal classification, toggle counting, deviation scoring
// and signal selection, composed by the Workflow orchestrator.
package domain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"sort"

	"golang.org/x/sync/errgroup"

	"trojanscope.dev/pkg/trojanscope/internal/adapter"
	"trojanscope.dev/pkg/trojanscope/internal/controller"
	m "trojanscope.dev/pkg/trojanscope/internal/model"
)

// Artifact file names written into the output directory.
const (
	ReportFileName     = "report.yaml"
	ComparisonFileName = "comparison_plot.png"
	WaveformFileName   = "waveform_view.png"
)

// AnalyzeArgs contains the arguments of a side-channel analysis run.
type AnalyzeArgs struct {
	Trace            m.Path
	Output           m.Path
	BaselineMarker   string
	CandidateMarker  string
	ThresholdPct     float64
	FlagBaselineOnly bool
	ShowAll          bool
	ShowDiff         bool
	NoPlot           bool
}

// WaveformArgs contains the arguments of the waveform viewer.
type WaveformArgs struct {
	Trace    m.Path
	Output   m.Path
	Keywords []string
	Signals  []string
	MinCount int
	MaxCount int
	// Horizon cuts every series at the given time; zero means the end of the trace.
	Horizon uint64
}

// SignalsArgs contains the arguments for listing trace signals.
type SignalsArgs struct {
	Trace m.Path
}

// ViewArgs contains the arguments for displaying a saved report.
type ViewArgs struct {
	Report  m.Path
	ShowAll bool
}

// Workflow defines the analysis entry points used by the CLI.
type Workflow interface {
	Analyze(ctx context.Context, args AnalyzeArgs) (m.Report, error)
	Waveform(ctx context.Context, args WaveformArgs) error
	Signals(ctx context.Context, args SignalsArgs) error
	View(ctx context.Context, args ViewArgs) error
}

type workflow struct {
	adapter.TraceSource
	adapter.ReportStore
	adapter.Renderer
	controller.UI
}

// NewWorkflow creates a new Workflow instance with the provided dependencies.
func NewWorkflow(
	traceSource adapter.TraceSource,
	reportStore adapter.ReportStore,
	renderer adapter.Renderer,
	ui controller.UI,
) Workflow {
	return &workflow{
		TraceSource: traceSource,
		ReportStore: reportStore,
		Renderer:    renderer,
		UI:          ui,
	}
}

// Analyze classifies the trace into both variants, scores every signal pair and
// writes the report and comparison chart into the output directory.
func (w *workflow) Analyze(ctx context.Context, args AnalyzeArgs) (m.Report, error) {
	trace, err := w.loadTrace(ctx, args.Trace)
	if err != nil {
		return m.Report{}, err
	}

	baselineKeys, candidateKeys, err := Classify(trace.Paths, args.BaselineMarker, args.CandidateMarker)
	if err != nil {
		slog.Error("Failed to classify signals", "trace", args.Trace, "error", err)
		return m.Report{}, fmt.Errorf("classify signals: %w", err)
	}

	baseline := CountToggles(baselineKeys, trace)
	candidate := CountToggles(candidateKeys, trace)

	records := Analyze(baseline, candidate, args.ThresholdPct, WithFlagBaselineOnly(args.FlagBaselineOnly))
	report := m.Report{
		Trace:           args.Trace,
		BaselineMarker:  args.BaselineMarker,
		CandidateMarker: args.CandidateMarker,
		ThresholdPct:    args.ThresholdPct,
		BaselineCount:   len(baseline),
		CandidateCount:  len(candidate),
		Records:         records,
		Summary:         m.Summarize(records),
	}

	slog.Info("analysis complete",
		"trace", args.Trace,
		"baseline", report.BaselineCount,
		"candidate", report.CandidateCount,
		"flagged", report.Summary.Flagged)

	if err := w.DisplayReport(ctx, report, controller.WithAllRecords(args.ShowAll)); err != nil {
		return report, fmt.Errorf("display: %w", err)
	}

	if args.ShowDiff {
		diff, err := NamespaceDiff(baseline, candidate, args.BaselineMarker, args.CandidateMarker)
		if err != nil {
			return report, err
		}

		w.DisplayNamespaceDiff(ctx, diff)
	}

	if err := w.writeAnalysisArtifacts(ctx, args, report); err != nil {
		return report, err
	}

	return report, nil
}

// writeAnalysisArtifacts saves the report and renders the comparison chart concurrently.
func (w *workflow) writeAnalysisArtifacts(ctx context.Context, args AnalyzeArgs, report m.Report) error {
	reportPath := joinPath(args.Output, ReportFileName)
	plotPath := joinPath(args.Output, ComparisonFileName)
	plotted := false

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		if err := w.SaveReport(groupCtx, reportPath, report); err != nil {
			return fmt.Errorf("save report: %w", err)
		}

		return nil
	})

	if !args.NoPlot {
		group.Go(func() error {
			err := w.RenderComparison(groupCtx, plotPath, comparisonSeries(report))
			if errors.Is(err, adapter.ErrNothingToRender) {
				slog.Warn("No paired signals to plot", "trace", args.Trace)
				return nil
			}

			if err != nil {
				return fmt.Errorf("render comparison: %w", err)
			}

			plotted = true

			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return err
	}

	w.DisplayArtifact(ctx, "Report", reportPath)

	if plotted {
		w.DisplayArtifact(ctx, "Plot", plotPath)
	}

	return nil
}

func comparisonSeries(report m.Report) m.ComparisonSeries {
	series := m.ComparisonSeries{
		Keys:      make([]string, 0, len(report.Records)),
		Baseline:  make([]int, 0, len(report.Records)),
		Candidate: make([]int, 0, len(report.Records)),
		Flagged:   make(map[string]bool),
	}

	for _, rec := range report.Records {
		series.Keys = append(series.Keys, rec.Key)
		series.Baseline = append(series.Baseline, rec.BaselineCount)
		series.Candidate = append(series.Candidate, rec.CandidateCount)

		if rec.Flagged {
			series.Flagged[rec.Key] = true
		}
	}

	return series
}

// Waveform selects a bounded set of signals, reconstructs their waveforms and renders
// them as stacked panels.
func (w *workflow) Waveform(ctx context.Context, args WaveformArgs) error {
	trace, err := w.loadTrace(ctx, args.Trace)
	if err != nil {
		return err
	}

	selected := args.Signals
	if len(selected) == 0 {
		selected = Select(sortedPaths(trace), args.Keywords, args.MinCount, args.MaxCount)
	}

	horizon := waveformHorizon(args.Horizon, trace)

	panels := make([]m.WaveformPanel, 0, len(selected))

	for _, path := range selected {
		sig, ok := trace.Signal(path)
		if !ok {
			slog.Warn("Signal not found in trace", "signal", path, "trace", args.Trace)
			continue
		}

		points := Reconstruct(sig, horizon)
		if len(points) == 0 {
			slog.Warn("Signal has no recorded values", "signal", path)
			continue
		}

		panels = append(panels, m.WaveformPanel{Name: path, Points: points})
	}

	w.DisplaySelection(ctx, selected)

	outPath := joinPath(args.Output, WaveformFileName)
	if err := w.RenderWaveforms(ctx, outPath, panels); err != nil {
		if errors.Is(err, adapter.ErrNothingToRender) {
			return fmt.Errorf("no plottable signals among %d selected", len(selected))
		}

		return fmt.Errorf("render waveforms: %w", err)
	}

	w.DisplayArtifact(ctx, "Waveform", outPath)

	return nil
}

// Signals lists every signal of the trace in sorted order with its toggle count.
func (w *workflow) Signals(ctx context.Context, args SignalsArgs) error {
	trace, err := w.loadTrace(ctx, args.Trace)
	if err != nil {
		return err
	}

	paths := sortedPaths(trace)
	signals := make([]m.SignalActivity, 0, len(paths))

	for _, path := range paths {
		sig, _ := trace.Signal(path)
		signals = append(signals, m.SignalActivity{Path: path, Toggles: ToggleCount(sig)})
	}

	return w.DisplaySignals(ctx, signals)
}

// View displays a report saved by a previous analysis run.
func (w *workflow) View(ctx context.Context, args ViewArgs) error {
	report, err := w.LoadReport(ctx, args.Report)
	if err != nil {
		slog.Error("Failed to load report", "path", args.Report, "error", err)
		return fmt.Errorf("load report: %w", err)
	}

	return w.DisplayReport(ctx, report, controller.WithAllRecords(args.ShowAll))
}

func (w *workflow) loadTrace(ctx context.Context, path m.Path) (*m.Trace, error) {
	trace, err := w.Load(ctx, path)
	if err == nil {
		return trace, nil
	}

	var unavailable *adapter.TraceUnavailableError
	if errors.As(err, &unavailable) {
		w.DisplayRemediation(ctx, unavailable.Remediation())
	}

	return nil, fmt.Errorf("load trace: %w", err)
}

// waveformHorizon returns the time every series is extended or cut to. A zero request
// means the end of the trace; nil is returned only when the trace has no timestamps.
func waveformHorizon(requested uint64, trace *m.Trace) *uint64 {
	if requested == 0 {
		requested = trace.EndTime
	}

	if requested == 0 {
		return nil
	}

	return &requested
}

func sortedPaths(trace *m.Trace) []string {
	paths := append([]string(nil), trace.Paths...)
	sort.Strings(paths)

	return paths
}

func joinPath(dir m.Path, name string) m.Path {
	return m.Path(filepath.Join(string(dir), name))
}
