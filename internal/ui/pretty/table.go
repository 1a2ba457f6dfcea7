package pretty

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/danspam/bundlemap/pkg/bundle"
	"github.com/danspam/bundlemap/pkg/runner"
)

// Table formatting constants.
const (
	tablePadding     = 2
	tableColumnCount = 4 // BUNDLE, STATE, SIZE, OUTPUT
	minBundleWidth   = 10
	minStateWidth    = 8
	minSizeWidth     = 10
	minOutputWidth   = 24
	heavySeparator   = "="
	defaultTermWidth = 100
)

// TableRow represents a single row in the bundle table.
type TableRow struct {
	Bundle string
	State  string
	Size   string
	Output string
	Failed bool
}

// TableFormatter formats build outcomes as a styled table.
type TableFormatter struct {
	styles    *Styles
	termWidth int
}

// NewTableFormatter creates a new table formatter.
func NewTableFormatter(styles *Styles, termWidth int) *TableFormatter {
	if termWidth <= 0 {
		termWidth = defaultTermWidth
	}
	return &TableFormatter{
		styles:    styles,
		termWidth: termWidth,
	}
}

// FormatTable formats runner results as a styled table.
func (t *TableFormatter) FormatTable(result *runner.Result) string {
	if result == nil || len(result.Bundles) == 0 {
		return ""
	}

	rows := collectRows(result)
	colWidths := t.calculateColumnWidths(rows)

	var builder strings.Builder

	builder.WriteString(t.formatHeader(colWidths))
	builder.WriteString("\n")
	builder.WriteString(t.formatSeparator(colWidths))
	builder.WriteString("\n")

	for _, row := range rows {
		builder.WriteString(t.formatRow(row, colWidths))
		builder.WriteString("\n")
	}

	builder.WriteString(t.formatSeparator(colWidths))
	builder.WriteString("\n")

	return builder.String()
}

// collectRows converts outcomes into display rows.
func collectRows(result *runner.Result) []TableRow {
	rows := make([]TableRow, 0, len(result.Bundles))
	for _, outcome := range result.Bundles {
		row := TableRow{Bundle: outcome.Name}

		if outcome.Error != nil {
			row.State = "failed"
			row.Failed = true
			row.Output = outcome.Error.Error()
		} else if outcome.Artifact != nil {
			row.State = stateWord(outcome.Artifact.State)
			row.Size = HumanBytes(outcome.Artifact.OutputBytes)
			row.Output = outcome.Artifact.CodePath
			if row.Output == "" {
				// Debug builds produce in-memory output only.
				row.Output = "(not written)"
			}
		}
		rows = append(rows, row)
	}
	return rows
}

func stateWord(state bundle.State) string {
	if state == bundle.StateDone {
		return "built"
	}
	return state.String()
}

// calculateColumnWidths determines column widths based on content,
// constrained to the terminal width by shrinking the output column.
func (t *TableFormatter) calculateColumnWidths(rows []TableRow) columnWidths {
	widths := columnWidths{
		bundle: minBundleWidth,
		state:  minStateWidth,
		size:   minSizeWidth,
		output: minOutputWidth,
	}

	for _, row := range rows {
		if len(row.Bundle) > widths.bundle {
			widths.bundle = len(row.Bundle)
		}
		if len(row.State) > widths.state {
			widths.state = len(row.State)
		}
		if len(row.Size) > widths.size {
			widths.size = len(row.Size)
		}
		if len(row.Output) > widths.output {
			widths.output = len(row.Output)
		}
	}

	totalWidth := t.calculateTotalWidth(widths)
	if totalWidth > t.termWidth {
		excess := totalWidth - t.termWidth
		widths.output = max(minOutputWidth, widths.output-excess)
	}

	return widths
}

type columnWidths struct {
	bundle int
	state  int
	size   int
	output int
}

func (t *TableFormatter) calculateTotalWidth(widths columnWidths) int {
	return widths.bundle + widths.state + widths.size + widths.output +
		(tablePadding * tableColumnCount)
}

func (t *TableFormatter) formatHeader(widths columnWidths) string {
	header := fmt.Sprintf(" %-*s  %-*s  %-*s  %-*s",
		widths.bundle, "BUNDLE",
		widths.state, "STATE",
		widths.size, "SIZE",
		widths.output, "OUTPUT",
	)
	return t.styles.TableHeader.Render(header)
}

func (t *TableFormatter) formatSeparator(widths columnWidths) string {
	sep := strings.Repeat(heavySeparator, t.calculateTotalWidth(widths))
	return t.styles.TableSeparator.Render(sep)
}

// formatRow formats a single table row; failed rows render in the
// failure style.
func (t *TableFormatter) formatRow(row TableRow, widths columnWidths) string {
	content := fmt.Sprintf(" %-*s  %-*s  %-*s  %-*s",
		widths.bundle, truncateString(row.Bundle, widths.bundle),
		widths.state, truncateString(row.State, widths.state),
		widths.size, truncateString(row.Size, widths.size),
		widths.output, truncateFilePath(row.Output, widths.output),
	)

	if row.Failed {
		return t.styles.TableFailRow.Render(content)
	}
	return lipgloss.NewStyle().Render(content)
}

// truncateString truncates a string to maxLen, adding "..." if truncated.
func truncateString(str string, maxLen int) string {
	if len(str) <= maxLen {
		return str
	}
	if maxLen <= 3 {
		return str[:maxLen]
	}
	return str[:maxLen-3] + "..."
}

// truncateFilePath truncates a file path, preserving the end (filename)
// rather than the beginning.
func truncateFilePath(path string, maxLen int) string {
	if len(path) <= maxLen {
		return path
	}
	if maxLen <= 3 {
		return path[len(path)-maxLen:]
	}
	return "..." + path[len(path)-maxLen+3:]
}
