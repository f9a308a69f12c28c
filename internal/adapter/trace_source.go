// Package adapter contains the infrastructure adapters of the trojanscope CLI: trace
// loading, report persistence and chart rendering.
package adapter

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	m "trojanscope.dev/pkg/trojanscope/internal/model"
	"trojanscope.dev/pkg/trojanscope/internal/vcd"
)

// TraceSource loads a recorded value change trace fully into memory.
type TraceSource interface {
	Load(ctx context.Context, path m.Path) (*m.Trace, error)
}

// TraceUnavailableError reports a trace that cannot be supplied at all.
type TraceUnavailableError struct {
	Path m.Path
	Err  error
}

func (e *TraceUnavailableError) Error() string {
	return fmt.Sprintf("trace %s unavailable: %v", e.Path, e.Err)
}

func (e *TraceUnavailableError) Unwrap() error {
	return e.Err
}

// Remediation returns the steps that produce the missing trace.
func (e *TraceUnavailableError) Remediation() []string {
	if !errors.Is(e.Err, os.ErrNotExist) {
		return []string{"Check that the trace file is readable and is a valid VCD dump."}
	}

	return []string{
		"Please run the simulation first (vvp mysim.vvp).",
		"To generate the VCD file:",
		"  1. Compile: iverilog -o mysim.vvp testbench.v alu_clean.v alu_trojan.v",
		"  2. Simulate: vvp mysim.vvp",
	}
}

// LocalTraceSource reads VCD files from the local filesystem.
type LocalTraceSource struct{}

// NewLocalTraceSource constructs a LocalTraceSource.
func NewLocalTraceSource() *LocalTraceSource {
	return &LocalTraceSource{}
}

// Load parses the VCD file at path.
func (s *LocalTraceSource) Load(ctx context.Context, path m.Path) (*m.Trace, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(string(path))
	if err != nil {
		slog.Error("Failed to open trace", "path", path, "error", err)
		return nil, &TraceUnavailableError{Path: path, Err: err}
	}

	defer func() {
		_ = f.Close()
	}()

	dump, err := vcd.Parse(f)
	if err != nil {
		slog.Error("Failed to parse trace", "path", path, "error", err)
		return nil, &TraceUnavailableError{Path: path, Err: err}
	}

	trace := traceFromDump(path, dump)
	slog.Debug("loaded trace", "path", path, "signals", len(trace.Paths), "end", trace.EndTime)

	return trace, nil
}

func traceFromDump(path m.Path, dump *vcd.Dump) *m.Trace {
	trace := &m.Trace{
		Source:  path,
		Paths:   make([]string, 0, len(dump.Vars)),
		Signals: make(map[string]m.SignalTrace, len(dump.Vars)),
		EndTime: dump.EndTime,
	}

	for _, v := range dump.Vars {
		raw := dump.Changes[v.ID]
		changes := make([]m.Change, len(raw))

		for i, c := range raw {
			changes[i] = m.Change{Time: c.Time, Value: c.Value}
		}

		trace.Paths = append(trace.Paths, v.Path)
		trace.Signals[v.Path] = m.SignalTrace{Path: v.Path, Changes: changes}
	}

	return trace
}
