package controller

import (
	"bytes"
	"context"
	"fmt"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	m "trojanscope.dev/pkg/trojanscope/internal/model"
)

// SimpleUI implements UI using the cobra command's output stream.
type SimpleUI struct {
	cmd *cobra.Command
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command) *SimpleUI {
	return &SimpleUI{cmd: cmd}
}

// DisplayReport prints classification counts, the flagged records (or all of them)
// and the summary line.
func (s *SimpleUI) DisplayReport(ctx context.Context, report m.Report, opts ...DisplayOption) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	cfg := newDisplayConfig(opts)

	for _, line := range classificationLines(report) {
		s.printf("%s\n", line)
	}

	s.printf("\n--- Side-Channel Analysis Report ---\n")

	records := visibleRecords(report, cfg)
	if len(records) == 0 {
		s.printf("No suspicious signals found.\n")
	} else {
		s.printf("%s", renderRecordTable(records))
	}

	s.printf("\n%s\n", summaryLine(report))

	return nil
}

func renderRecordTable(records []m.DeviationRecord) string {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader(recordHeader)
	table.SetAutoFormatHeaders(false)
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_RIGHT,
		tablewriter.ALIGN_LEFT,
	})

	for _, rec := range records {
		table.Append(recordRow(rec))
	}

	table.Render()

	return tableBuffer.String()
}

// DisplayNamespaceDiff prints the unified diff of both variants' signal keys.
func (s *SimpleUI) DisplayNamespaceDiff(ctx context.Context, diff string) {
	if err := ctx.Err(); err != nil {
		return
	}

	if diff == "" {
		s.printf("\nSignal namespaces are identical.\n")
		return
	}

	s.printf("\n--- Signal Namespace Diff ---\n%s", diff)
}

// DisplaySignals prints a numbered list of signals with their toggle counts.
func (s *SimpleUI) DisplaySignals(ctx context.Context, signals []m.SignalActivity) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"#", "Signal", "Toggles"})
	table.SetAutoFormatHeaders(false)
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_LEFT, tablewriter.ALIGN_RIGHT})

	for i, sig := range signals {
		table.Append([]string{fmt.Sprintf("%d", i+1), sig.Path, fmt.Sprintf("%d", sig.Toggles)})
	}

	table.SetFooter([]string{"", fmt.Sprintf("Total Signals %d", len(signals)), ""})
	table.Render()

	s.printf("\n=== Available Signals ===\n%s", tableBuffer.String())

	return nil
}

// DisplaySelection lists the signals chosen for the waveform view.
func (s *SimpleUI) DisplaySelection(ctx context.Context, paths []string) {
	if err := ctx.Err(); err != nil {
		return
	}

	s.printf("\n=== Plotting %d signals ===\n", len(paths))

	for _, path := range paths {
		s.printf("  - %s\n", path)
	}
}

// DisplayArtifact reports a written output file.
func (s *SimpleUI) DisplayArtifact(ctx context.Context, label string, path m.Path) {
	if err := ctx.Err(); err != nil {
		return
	}

	s.printf("%s saved to '%s'\n", label, path)
}

// DisplayRemediation prints the steps that fix a failed run.
func (s *SimpleUI) DisplayRemediation(ctx context.Context, lines []string) {
	if err := ctx.Err(); err != nil {
		return
	}

	for _, line := range lines {
		_, _ = fmt.Fprintln(s.cmd.ErrOrStderr(), line)
	}
}

func (s *SimpleUI) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}
