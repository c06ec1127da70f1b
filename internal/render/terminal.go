package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const terminalCellWidth = 12

// TerminalRenderer prints the sheet as a boxed grid for a quick preview
type TerminalRenderer struct{}

// Extension returns "txt"
func (r *TerminalRenderer) Extension() string {
	return "txt"
}

// Render writes the preview to w
func (r *TerminalRenderer) Render(w io.Writer, s *Sheet) error {
	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#5B8DEF")).
		MarginBottom(1).
		Render(s.Title)

	base := lipgloss.NewStyle().
		Width(terminalCellWidth).
		Padding(0, 1).
		Border(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("#444444"))
	if s.Font.Bold {
		base = base.Bold(true)
	}
	shaded := base.
		Background(lipgloss.Color("#" + s.ShadeColor)).
		Foreground(lipgloss.Color("#000000"))

	rows := []string{title}
	for _, row := range s.Rows {
		height := 1
		for _, cell := range row.Cells {
			if len(cell.Lines) > height {
				height = len(cell.Lines)
			}
		}

		cells := make([]string, 0, len(row.Cells))
		for _, cell := range row.Cells {
			style := base
			if cell.Shaded {
				style = shaded
			}
			cells = append(cells, style.Height(height).Render(strings.Join(cell.Lines, "\n")))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}

	if _, err := fmt.Fprintln(w, lipgloss.JoinVertical(lipgloss.Left, rows...)); err != nil {
		return fmt.Errorf("failed to write preview: %w", err)
	}
	return nil
}
