package formatter

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// RenderTable renders a simple aligned table with a header separator line.
// Columns are padded to the maximum visible width found in each column.
func RenderTable(headers []string, rows [][]string) string {
	if len(headers) == 0 {
		return ""
	}

	cols := len(headers)
	widths := make([]int, cols)
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i := 0; i < cols && i < len(row); i++ {
			if w := lipgloss.Width(row[i]); w > widths[i] {
				widths[i] = w
			}
		}
	}

	const colGap = 2

	cell := func(text string, col int, style lipgloss.Style) string {
		pad := widths[col] - lipgloss.Width(text)
		if pad < 0 {
			pad = 0
		}
		out := style.Render(text)
		if col < cols-1 {
			out += strings.Repeat(" ", pad+colGap)
		}
		return out
	}

	var b strings.Builder
	for i, h := range headers {
		b.WriteString(cell(h, i, StyleHeader))
	}
	b.WriteString("\n")
	for i, w := range widths {
		b.WriteString(StyleDim.Render(strings.Repeat("─", w)))
		if i < cols-1 {
			b.WriteString(strings.Repeat(" ", colGap))
		}
	}
	b.WriteString("\n")
	for _, row := range rows {
		for i := 0; i < cols && i < len(row); i++ {
			b.WriteString(cell(row[i], i, StyleFg))
		}
		b.WriteString("\n")
	}

	return b.String()
}
