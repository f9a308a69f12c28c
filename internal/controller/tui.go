package controller

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	m "trojanscope.dev/pkg/trojanscope/internal/model"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	suspiciousStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	okStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("42"))
)

// reservedLines is the chrome around the record table: title, classification counts,
// blank lines, table header, summary and help footer.
const reservedLines = 10

// TUI implements UI using Bubble Tea for interactive display.
type TUI struct {
	output io.Writer
}

// NewTUI creates a new TUI.
func NewTUI(output io.Writer) *TUI {
	return &TUI{output: output}
}

// DisplayReport shows the report table. Short reports are printed directly; long ones
// open a scrollable pager until the user quits.
func (p *TUI) DisplayReport(ctx context.Context, report m.Report, opts ...DisplayOption) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	cfg := newDisplayConfig(opts)
	model := newReportModel(report, visibleRecords(report, cfg))

	if f, ok := p.output.(*os.File); ok {
		width, height, err := term.GetSize(int(f.Fd()))
		if err == nil {
			model = model.resize(width, height)
		}
	}

	if !model.needsPagination() {
		_, err := fmt.Fprint(p.output, model.staticView())
		return err
	}

	program := tea.NewProgram(model, tea.WithOutput(p.output), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := program.Run(); err != nil {
		return err
	}

	return nil
}

// DisplayNamespaceDiff prints the signal key diff with added/removed lines colored.
func (p *TUI) DisplayNamespaceDiff(ctx context.Context, diff string) {
	if err := ctx.Err(); err != nil {
		return
	}

	if diff == "" {
		p.printf("\n%s\n", okStyle.Render("Signal namespaces are identical."))
		return
	}

	p.printf("\n%s\n", titleStyle.Render("Signal Namespace Diff"))

	for _, line := range strings.SplitAfter(diff, "\n") {
		switch {
		case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"), strings.HasPrefix(line, "@@"):
			p.printf("%s", dimStyle.Render(line))
		case strings.HasPrefix(line, "+"):
			p.printf("%s", suspiciousStyle.Render(line))
		default:
			p.printf("%s", line)
		}
	}
}

// DisplaySignals prints the numbered signal list.
func (p *TUI) DisplaySignals(ctx context.Context, signals []m.SignalActivity) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	p.printf("%s\n\n", titleStyle.Render("Available Signals"))

	for i, sig := range signals {
		count := fmt.Sprintf("%d", sig.Toggles)
		if sig.Toggles == 0 {
			count = dimStyle.Render(count)
		}

		p.printf("%4d. %s  %s\n", i+1, sig.Path, count)
	}

	p.printf("\n  📊 Total: %d signal(s)\n", len(signals))

	return nil
}

// DisplaySelection lists the signals chosen for the waveform view.
func (p *TUI) DisplaySelection(ctx context.Context, paths []string) {
	if err := ctx.Err(); err != nil {
		return
	}

	p.printf("\n%s\n", titleStyle.Render(fmt.Sprintf("Plotting %d signals", len(paths))))

	for _, path := range paths {
		p.printf("  - %s\n", path)
	}
}

// DisplayArtifact reports a written output file.
func (p *TUI) DisplayArtifact(ctx context.Context, label string, path m.Path) {
	if err := ctx.Err(); err != nil {
		return
	}

	p.printf("  💾 %s saved to %s\n", label, okStyle.Render(string(path)))
}

// DisplayRemediation prints the steps that fix a failed run.
func (p *TUI) DisplayRemediation(ctx context.Context, lines []string) {
	if err := ctx.Err(); err != nil {
		return
	}

	for _, line := range lines {
		p.printf("  💡 %s\n", line)
	}
}

func (p *TUI) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(p.output, format, args...)
}

// reportModel is the Bubble Tea model of the deviation report pager.
type reportModel struct {
	report   m.Report
	records  []m.DeviationRecord
	table    table.Model
	height   int
	width    int
	quitting bool
}

func newReportModel(report m.Report, records []m.DeviationRecord) reportModel {
	rows := make([]table.Row, 0, len(records))
	for _, rec := range records {
		rows = append(rows, table.Row(recordRow(rec)))
	}

	t := table.New(
		table.WithColumns(recordColumns(records)),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(len(rows)+1),
	)

	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	styles.Selected = styles.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57"))
	t.SetStyles(styles)

	return reportModel{report: report, records: records, table: t}
}

func recordColumns(records []m.DeviationRecord) []table.Column {
	keyWidth := len(recordHeader[0])
	for _, rec := range records {
		keyWidth = max(keyWidth, len(rec.Key))
	}

	return []table.Column{
		{Title: recordHeader[0], Width: keyWidth},
		{Title: recordHeader[1], Width: len(m.PresenceCandidateOnly)},
		{Title: recordHeader[2], Width: 9},
		{Title: recordHeader[3], Width: 9},
		{Title: recordHeader[4], Width: 10},
		{Title: recordHeader[5], Width: len("!! SUSPICIOUS")},
	}
}

func (rm reportModel) resize(width, height int) reportModel {
	rm.width = width
	rm.height = height

	if rm.needsPagination() {
		rm.table.SetHeight(rm.itemsPerPage())
	}

	return rm
}

// itemsPerPage returns how many table rows fit on screen.
func (rm reportModel) itemsPerPage() int {
	if rm.height == 0 {
		return len(rm.records)
	}

	available := rm.height - reservedLines
	if available < 1 {
		return 1
	}

	return available
}

func (rm reportModel) needsPagination() bool {
	return rm.height > 0 && len(rm.records) > rm.itemsPerPage()
}

func (rm reportModel) Init() tea.Cmd {
	return nil
}

func (rm reportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return rm.resize(msg.Width, msg.Height), nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			rm.quitting = true
			return rm, tea.Quit
		}
	}

	var cmd tea.Cmd
	rm.table, cmd = rm.table.Update(msg)

	return rm, cmd
}

func (rm reportModel) View() string {
	var b strings.Builder

	rm.renderHeader(&b)

	if len(rm.records) == 0 {
		b.WriteString(okStyle.Render("  ✓ No suspicious signals found") + "\n")
	} else {
		b.WriteString(rm.table.View() + "\n")
	}

	rm.renderSummary(&b)

	if rm.needsPagination() {
		b.WriteString(dimStyle.Render("  ↑/k: up | ↓/j: down | g: top | G: bottom | q: quit") + "\n")
	}

	return b.String()
}

// staticView renders the report for direct printing, without a row cursor.
func (rm reportModel) staticView() string {
	styles := table.DefaultStyles()
	styles.Header = styles.Header.Bold(true)
	styles.Selected = lipgloss.NewStyle()
	rm.table.SetStyles(styles)
	rm.table.Blur()

	return rm.View()
}

func (rm reportModel) renderHeader(b *strings.Builder) {
	b.WriteString(titleStyle.Render("Side-Channel Analysis Report") + "\n\n")

	for _, line := range classificationLines(rm.report) {
		b.WriteString("  " + line + "\n")
	}

	b.WriteString("\n")
}

func (rm reportModel) renderSummary(b *strings.Builder) {
	b.WriteString("\n")

	line := "  📊 " + summaryLine(rm.report)
	if rm.report.Summary.Flagged > 0 {
		line = suspiciousStyle.Render(line)
	}

	b.WriteString(line + "\n")
}
