// Package controller provides output adapters for displaying analysis results.
package controller

import (
	"context"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	m "trojanscope.dev/pkg/trojanscope/internal/model"
)

// DisplayOption is a functional option for DisplayReport.
type DisplayOption func(*DisplayConfig)

// DisplayConfig holds report display settings.
type DisplayConfig struct {
	all bool
}

// WithAllRecords lists every record instead of the flagged ones only.
func WithAllRecords(all bool) DisplayOption {
	return func(c *DisplayConfig) {
		c.all = all
	}
}

func newDisplayConfig(opts []DisplayOption) DisplayConfig {
	cfg := DisplayConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}

// UI defines the interface for displaying analysis output.
// Implementations can use different output methods (simple text, TUI, etc).
type UI interface {
	DisplayReport(ctx context.Context, report m.Report, opts ...DisplayOption) error
	DisplayNamespaceDiff(ctx context.Context, diff string)
	DisplaySignals(ctx context.Context, signals []m.SignalActivity) error
	DisplaySelection(ctx context.Context, paths []string)
	DisplayArtifact(ctx context.Context, label string, path m.Path)
	DisplayRemediation(ctx context.Context, lines []string)
}

// NewUI returns the interactive UI on terminals and the plain text UI otherwise.
func NewUI(cmd *cobra.Command, tty bool) UI {
	if tty {
		return NewTUI(cmd.OutOrStdout())
	}

	return NewSimpleUI(cmd)
}

// IsTTY reports whether f is attached to a terminal.
func IsTTY(f *os.File) bool {
	if f == nil {
		return false
	}

	return term.IsTerminal(int(f.Fd()))
}
