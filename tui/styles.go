package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/rksxox-coder/broken-link-resolver/result"
)

var (
	titleStyle       = lipgloss.NewStyle().Bold(true)
	successStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	errorStyle       = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	headerStyle      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	sectionStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
	dimStyle         = lipgloss.NewStyle().Faint(true)
	urlStyle         = lipgloss.NewStyle()
	recoveredStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	statusErrorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

// RenderSummary produces a Lip Gloss styled summary of resolution results:
// a table of recovered URLs with their alternatives, then a table of URLs
// that stayed broken, then aggregate counts.
func RenderSummary(res *result.BatchResult) string {
	if res == nil {
		return errorStyle.Render("No results available.")
	}

	var builder strings.Builder

	if res.Stats.Recovered == 0 && res.Stats.Unrecovered == 0 && res.Stats.Errored == 0 {
		builder.WriteString(successStyle.Render("All URLs are reachable!"))
		builder.WriteString("\n")
		builder.WriteString(dimStyle.Render(fmt.Sprintf(
			"Checked %d URLs in %s",
			res.Stats.TotalChecked,
			res.Stats.Duration.Round(1_000_000), // round to ms
		)))
		builder.WriteString("\n")
		return builder.String()
	}

	if rows := recoveredRows(res); len(rows) > 0 {
		builder.WriteString(sectionStyle.Render(fmt.Sprintf("## Recovered (%d)", len(rows))))
		builder.WriteString("\n")
		builder.WriteString(renderTable([]string{"URL", "Alternative", "Reason"}, rows, recoveredStyle))
		builder.WriteString("\n\n")
	}

	if rows := brokenRows(res); len(rows) > 0 {
		builder.WriteString(sectionStyle.Render(fmt.Sprintf("## Not Recovered (%d)", len(rows))))
		builder.WriteString("\n")
		builder.WriteString(renderTable([]string{"URL", "Status", "Detail"}, rows, statusErrorStyle))
		builder.WriteString("\n\n")
	}

	builder.WriteString(titleStyle.Render(fmt.Sprintf(
		"Checked %d URLs: %d ok, %d recovered, %d broken, %d errors (%s)",
		res.Stats.TotalChecked,
		res.Stats.OKCount,
		res.Stats.Recovered,
		res.Stats.Unrecovered,
		res.Stats.Errored,
		res.Stats.Duration.Round(1_000_000),
	)))
	builder.WriteString("\n")

	return builder.String()
}

func recoveredRows(res *result.BatchResult) [][]string {
	var rows [][]string
	for _, r := range res.Results {
		if !r.Recovered() {
			continue
		}
		rows = append(rows, []string{r.URL, r.Alternative, string(r.Reason)})
	}
	return rows
}

func brokenRows(res *result.BatchResult) [][]string {
	var rows [][]string
	for _, r := range res.Results {
		if r.Status == result.StatusOK || r.Recovered() {
			continue
		}
		detail := r.Note
		if detail == "" && r.ErrorCategory != "" {
			detail = result.FormatCategory(r.ErrorCategory)
		}
		rows = append(rows, []string{r.URL, statusCell(r), detail})
	}
	return rows
}

func statusCell(r result.CheckResult) string {
	if r.HTTPStatus > 0 {
		return fmt.Sprintf("%d", r.HTTPStatus)
	}
	return string(r.Status)
}

func renderTable(headers []string, rows [][]string, middleStyle lipgloss.Style) string {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			if col == 1 {
				return middleStyle
			}
			return urlStyle
		}).
		Rows(rows...).
		Render()
}
