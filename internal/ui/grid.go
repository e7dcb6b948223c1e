package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/chris-regnier/dialcal/internal/calendar"
)

const (
	gridCellWidth = 5
	gridCols      = 7
	gridLeft      = (dialWidth - gridCols*gridCellWidth) / 2
)

// renderGrid lays the month out Monday-first in fixed columns: a header row
// of weekday labels followed by one row per week.
func renderGrid(m calendar.Month, selected int, headers []string, hasNote func(string) bool, theme Theme) string {
	base := theme.BaseStyle().Width(gridCellWidth).Align(lipgloss.Center)
	headerStyle := theme.HelpStyle().Bold(true).Width(gridCellWidth).Align(lipgloss.Center)
	todayStyle := theme.AccentStyle().Bold(true).Width(gridCellWidth).Align(lipgloss.Center)
	noteStyle := theme.AccentStyle().Width(gridCellWidth).Align(lipgloss.Center)
	cursorStyle := theme.SelectedStyle().Width(gridCellWidth).Align(lipgloss.Center)
	pad := theme.BaseStyle().Render(strings.Repeat(" ", gridLeft))

	var sb strings.Builder
	sb.WriteString(pad)
	for _, h := range headers {
		sb.WriteString(headerStyle.Render(truncateRunes(h, 3)))
	}

	lead := m.Leading()
	rows := gridRows(m)
	for row := 0; row < rows; row++ {
		sb.WriteString("\n")
		sb.WriteString(pad)
		for col := 0; col < gridCols; col++ {
			i := row*gridCols + col - lead
			if i < 0 || i >= len(m.Days) {
				sb.WriteString(base.Render(""))
				continue
			}
			d := m.Days[i]
			label := fmt.Sprintf("%2d", d.Number)
			noted := hasNote(d.Key())
			if noted {
				label += "*"
			}
			switch {
			case i == selected:
				sb.WriteString(cursorStyle.Render(label))
			case d.IsToday:
				sb.WriteString(todayStyle.Render(label))
			case noted:
				sb.WriteString(noteStyle.Render(label))
			default:
				sb.WriteString(base.Render(label))
			}
		}
	}
	return sb.String()
}

// gridRows returns how many week rows the month occupies.
func gridRows(m calendar.Month) int {
	cells := m.Leading() + len(m.Days)
	return (cells + gridCols - 1) / gridCols
}

// gridIndexAt maps body-local coordinates to a day index, or -1.
func gridIndexAt(m calendar.Month, x, y int) int {
	row := y - 1
	if row < 0 || row >= gridRows(m) || x < gridLeft {
		return -1
	}
	col := (x - gridLeft) / gridCellWidth
	if col >= gridCols {
		return -1
	}
	i := row*gridCols + col - m.Leading()
	if i < 0 || i >= len(m.Days) {
		return -1
	}
	return i
}
