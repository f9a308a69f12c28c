package domain

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"trojanscope.dev/pkg/trojanscope/internal/adapter"
	adaptermocks "trojanscope.dev/pkg/trojanscope/internal/adapter/mocks"
	controllermocks "trojanscope.dev/pkg/trojanscope/internal/controller/mocks"
	m "trojanscope.dev/pkg/trojanscope/internal/model"
)

type workflowMocks struct {
	source   *adaptermocks.MockTraceSource
	store    *adaptermocks.MockReportStore
	renderer *adaptermocks.MockRenderer
	ui       *controllermocks.MockUI
}

func newTestWorkflow(t *testing.T) (Workflow, workflowMocks) {
	t.Helper()

	mocks := workflowMocks{
		source:   adaptermocks.NewMockTraceSource(t),
		store:    adaptermocks.NewMockReportStore(t),
		renderer: adaptermocks.NewMockRenderer(t),
		ui:       controllermocks.NewMockUI(t),
	}

	return NewWorkflow(mocks.source, mocks.store, mocks.renderer, mocks.ui), mocks
}

func signal(path string, pairs ...interface{}) m.SignalTrace {
	return m.SignalTrace{Path: path, Changes: changes(pairs...)}
}

// aluTrace mirrors a clean/trojan ALU pair where the trojan toggles its result more
// often and carries an extra trigger net.
func aluTrace() *m.Trace {
	signals := []m.SignalTrace{
		signal("tb.clk", 0, "0", 5, "1", 10, "0"),
		signal("tb.UUT_clean.A", 0, "0000", 10, "0011"),
		signal("tb.UUT_clean.result", 0, "0000", 10, "0011", 20, "0110", 30, "0001", 40, "0000"),
		signal("tb.UUT_trojan.A", 0, "0000", 10, "0011"),
		signal("tb.UUT_trojan.result", 0, "0000", 10, "0011", 15, "1111", 20, "0110", 25, "1111",
			30, "0001", 35, "1111", 40, "0000"),
		signal("tb.UUT_trojan.trigger", 0, "0", 25, "1", 26, "0"),
	}

	trace := &m.Trace{Source: "alu.vcd", Signals: make(map[string]m.SignalTrace), EndTime: 40}
	for _, sig := range signals {
		trace.Paths = append(trace.Paths, sig.Path)
		trace.Signals[sig.Path] = sig
	}

	return trace
}

func analyzeArgs(output string) AnalyzeArgs {
	return AnalyzeArgs{
		Trace:           "alu.vcd",
		Output:          m.Path(output),
		BaselineMarker:  "UUT_clean.",
		CandidateMarker: "UUT_trojan.",
		ThresholdPct:    DefaultThresholdPct,
	}
}

func TestWorkflow_Analyze(t *testing.T) {
	ctx := context.Background()
	wf, mocks := newTestWorkflow(t)

	mocks.source.On("Load", ctx, m.Path("alu.vcd")).Return(aluTrace(), nil)
	mocks.ui.On("DisplayReport", ctx, mock.AnythingOfType("model.Report")).Return(nil)
	mocks.store.On("SaveReport", mock.Anything, m.Path(filepath.Join("out", ReportFileName)), mock.AnythingOfType("model.Report")).Return(nil)
	mocks.renderer.On("RenderComparison", mock.Anything, m.Path(filepath.Join("out", ComparisonFileName)),
		mock.MatchedBy(func(series m.ComparisonSeries) bool {
			return assert.ObjectsAreEqual([]string{"A", "result", "trigger"}, series.Keys) &&
				series.Flagged["result"] && series.Flagged["trigger"] && !series.Flagged["A"]
		})).Return(nil)
	mocks.ui.On("DisplayArtifact", ctx, "Report", m.Path(filepath.Join("out", ReportFileName))).Return()
	mocks.ui.On("DisplayArtifact", ctx, "Plot", m.Path(filepath.Join("out", ComparisonFileName))).Return()

	report, err := wf.Analyze(ctx, analyzeArgs("out"))
	require.NoError(t, err)

	assert.Equal(t, 2, report.BaselineCount)
	assert.Equal(t, 3, report.CandidateCount)
	require.Len(t, report.Records, 3)

	result := report.Records[1]
	assert.Equal(t, "result", result.Key)
	assert.Equal(t, 4, result.BaselineCount)
	assert.Equal(t, 7, result.CandidateCount)
	pct, ok := result.Deviation()
	require.True(t, ok)
	assert.InDelta(t, 75.0, pct, 1e-9)
	assert.True(t, result.Flagged)

	assert.Equal(t, m.Summary{Total: 3, Flagged: 2, CandidateOnly: 1}, report.Summary)
}

func TestWorkflow_Analyze_NoPlotWithDiff(t *testing.T) {
	ctx := context.Background()
	wf, mocks := newTestWorkflow(t)

	args := analyzeArgs("out")
	args.NoPlot = true
	args.ShowDiff = true

	mocks.source.On("Load", ctx, args.Trace).Return(aluTrace(), nil)
	mocks.ui.On("DisplayReport", ctx, mock.Anything).Return(nil)
	mocks.ui.On("DisplayNamespaceDiff", ctx, mock.MatchedBy(func(diff string) bool {
		return strings.Contains(diff, "+trigger\n")
	})).Return()
	mocks.store.On("SaveReport", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	mocks.ui.On("DisplayArtifact", ctx, "Report", mock.Anything).Return()

	_, err := wf.Analyze(ctx, args)
	require.NoError(t, err)

	mocks.renderer.AssertNotCalled(t, "RenderComparison", mock.Anything, mock.Anything, mock.Anything)
}

func TestWorkflow_Analyze_NothingToPlot(t *testing.T) {
	ctx := context.Background()
	wf, mocks := newTestWorkflow(t)

	mocks.source.On("Load", ctx, mock.Anything).Return(&m.Trace{Signals: map[string]m.SignalTrace{}}, nil)
	mocks.ui.On("DisplayReport", ctx, mock.Anything).Return(nil)
	mocks.store.On("SaveReport", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	mocks.renderer.On("RenderComparison", mock.Anything, mock.Anything, mock.Anything).Return(adapter.ErrNothingToRender)
	mocks.ui.On("DisplayArtifact", ctx, "Report", mock.Anything).Return()

	report, err := wf.Analyze(ctx, analyzeArgs("out"))
	require.NoError(t, err)
	assert.Empty(t, report.Records)
}

func TestWorkflow_Analyze_TraceMissing(t *testing.T) {
	ctx := context.Background()
	wf, mocks := newTestWorkflow(t)

	unavailable := &adapter.TraceUnavailableError{Path: "alu.vcd", Err: os.ErrNotExist}
	mocks.source.On("Load", ctx, m.Path("alu.vcd")).Return(nil, unavailable)
	mocks.ui.On("DisplayRemediation", ctx, unavailable.Remediation()).Return()

	_, err := wf.Analyze(ctx, analyzeArgs("out"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)

	mocks.store.AssertNotCalled(t, "SaveReport", mock.Anything, mock.Anything, mock.Anything)
}

func TestWorkflow_Analyze_AmbiguousPath(t *testing.T) {
	ctx := context.Background()
	wf, mocks := newTestWorkflow(t)

	trace := &m.Trace{Paths: []string{"tb.UUT_clean.UUT_trojan.x"}}
	mocks.source.On("Load", ctx, mock.Anything).Return(trace, nil)

	_, err := wf.Analyze(ctx, analyzeArgs("out"))

	var ambiguous *AmbiguousClassificationError
	require.ErrorAs(t, err, &ambiguous)
}

func TestWorkflow_Analyze_SaveFails(t *testing.T) {
	ctx := context.Background()
	wf, mocks := newTestWorkflow(t)

	args := analyzeArgs("out")
	args.NoPlot = true

	mocks.source.On("Load", ctx, mock.Anything).Return(aluTrace(), nil)
	mocks.ui.On("DisplayReport", ctx, mock.Anything).Return(nil)
	mocks.store.On("SaveReport", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("disk full"))

	_, err := wf.Analyze(ctx, args)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
}

func TestWorkflow_Waveform_SelectsByKeyword(t *testing.T) {
	ctx := context.Background()
	wf, mocks := newTestWorkflow(t)

	args := WaveformArgs{
		Trace:    "alu.vcd",
		Output:   "out",
		Keywords: []string{"result"},
		MinCount: 3,
		MaxCount: 5,
		Horizon:  30,
	}

	expected := []string{"tb.UUT_clean.result", "tb.UUT_trojan.result", "tb.UUT_clean.A"}

	mocks.source.On("Load", ctx, args.Trace).Return(aluTrace(), nil)
	mocks.ui.On("DisplaySelection", ctx, expected).Return()
	mocks.renderer.On("RenderWaveforms", ctx, m.Path(filepath.Join("out", WaveformFileName)),
		mock.MatchedBy(func(panels []m.WaveformPanel) bool {
			if len(panels) != 3 || panels[0].Name != "tb.UUT_clean.result" {
				return false
			}

			last := panels[0].Points[len(panels[0].Points)-1]

			return last.T == 30
		})).Return(nil)
	mocks.ui.On("DisplayArtifact", ctx, "Waveform", m.Path(filepath.Join("out", WaveformFileName))).Return()

	require.NoError(t, wf.Waveform(ctx, args))
}

func TestWorkflow_Waveform_ExplicitSignals(t *testing.T) {
	ctx := context.Background()
	wf, mocks := newTestWorkflow(t)

	args := WaveformArgs{Trace: "alu.vcd", Output: "out", Signals: []string{"tb.clk", "tb.missing"}, MaxCount: 15}

	mocks.source.On("Load", ctx, args.Trace).Return(aluTrace(), nil)
	mocks.ui.On("DisplaySelection", ctx, args.Signals).Return()
	mocks.renderer.On("RenderWaveforms", ctx, mock.Anything, mock.MatchedBy(func(panels []m.WaveformPanel) bool {
		return len(panels) == 1 && panels[0].Name == "tb.clk"
	})).Return(nil)
	mocks.ui.On("DisplayArtifact", ctx, "Waveform", mock.Anything).Return()

	require.NoError(t, wf.Waveform(ctx, args))
}

func TestWorkflow_Waveform_NothingPlottable(t *testing.T) {
	ctx := context.Background()
	wf, mocks := newTestWorkflow(t)

	args := WaveformArgs{Trace: "alu.vcd", Output: "out", Signals: []string{"tb.missing"}, MaxCount: 15}

	mocks.source.On("Load", ctx, args.Trace).Return(aluTrace(), nil)
	mocks.ui.On("DisplaySelection", ctx, args.Signals).Return()
	mocks.renderer.On("RenderWaveforms", ctx, mock.Anything, []m.WaveformPanel{}).Return(adapter.ErrNothingToRender)

	err := wf.Waveform(ctx, args)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no plottable signals")
}

func TestWorkflow_Signals(t *testing.T) {
	ctx := context.Background()
	wf, mocks := newTestWorkflow(t)

	mocks.source.On("Load", ctx, m.Path("alu.vcd")).Return(aluTrace(), nil)
	mocks.ui.On("DisplaySignals", ctx, mock.MatchedBy(func(signals []m.SignalActivity) bool {
		return len(signals) == 6 &&
			signals[0] == m.SignalActivity{Path: "tb.UUT_clean.A", Toggles: 1} &&
			signals[5] == m.SignalActivity{Path: "tb.clk", Toggles: 2}
	})).Return(nil)

	require.NoError(t, wf.Signals(ctx, SignalsArgs{Trace: "alu.vcd"}))
}

func TestWorkflow_View(t *testing.T) {
	ctx := context.Background()
	wf, mocks := newTestWorkflow(t)

	report := m.Report{Trace: "alu.vcd", ThresholdPct: 25}
	mocks.store.On("LoadReport", ctx, m.Path("out/report.yaml")).Return(report, nil)
	mocks.ui.On("DisplayReport", ctx, report).Return(nil)

	require.NoError(t, wf.View(ctx, ViewArgs{Report: "out/report.yaml"}))
}

func TestWorkflow_View_LoadFails(t *testing.T) {
	ctx := context.Background()
	wf, mocks := newTestWorkflow(t)

	mocks.store.On("LoadReport", ctx, m.Path("missing.yaml")).Return(m.Report{}, os.ErrNotExist)

	err := wf.View(ctx, ViewArgs{Report: "missing.yaml"})
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestWorkflow_Waveform_ExtendsToTraceEnd(t *testing.T) {
	ctx := context.Background()
	wf, mocks := newTestWorkflow(t)

	trace := aluTrace()
	trace.Signals["tb.UUT_clean.idle"] = signal("tb.UUT_clean.idle", 0, "0")
	trace.Paths = append(trace.Paths, "tb.UUT_clean.idle")

	args := WaveformArgs{
		Trace:    "alu.vcd",
		Output:   "out",
		Signals:  []string{"tb.UUT_clean.A", "tb.clk", "tb.UUT_clean.idle"},
		MaxCount: 15,
	}

	var got []m.WaveformPanel

	mocks.source.On("Load", ctx, args.Trace).Return(trace, nil)
	mocks.ui.On("DisplaySelection", ctx, args.Signals).Return()
	mocks.renderer.On("RenderWaveforms", ctx, mock.Anything, mock.Anything).
		Run(func(callArgs mock.Arguments) {
			got = callArgs.Get(2).([]m.WaveformPanel)
		}).
		Return(nil)
	mocks.ui.On("DisplayArtifact", ctx, "Waveform", mock.Anything).Return()

	require.NoError(t, wf.Waveform(ctx, args))
	require.Len(t, got, 3)

	for _, panel := range got {
		last := panel.Points[len(panel.Points)-1]
		assert.Equal(t, trace.EndTime, last.T, panel.Name)
	}

	assert.Equal(t, []m.Point{{T: 0, V: 0}, {T: 40, V: 0}}, got[2].Points)
}

func TestWaveformHorizon(t *testing.T) {
	tests := []struct {
		name      string
		requested uint64
		endTime   uint64
		want      *uint64
	}{
		{"explicit horizon wins", 25, 40, horizonAt(25)},
		{"zero means end of trace", 0, 40, horizonAt(40)},
		{"trace without timestamps", 0, 0, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, waveformHorizon(tt.requested, &m.Trace{EndTime: tt.endTime}))
		})
	}
}
