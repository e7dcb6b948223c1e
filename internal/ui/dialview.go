package ui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/chris-regnier/dialcal/internal/calendar"
	"github.com/chris-regnier/dialcal/internal/dial"
)

// Dial canvas size in cells. Entries farther than three days are fully
// transparent, so the canvas only has to fit distances -3..3.
const (
	dialWidth  = 6*dial.StepX + 9
	dialHeight = 9*dial.StepY + 1
)

// hitBox is a clickable region in body-local coordinates.
type hitBox struct {
	x, y, w, h int
	index      int
}

func (b hitBox) contains(x, y int) bool {
	return x >= b.x && x < b.x+b.w && y >= b.y && y < b.y+b.h
}

// canvas is a fixed grid of runes with a style per cell, painted
// back-to-front.
type canvas struct {
	w, h   int
	runes  [][]rune
	styles [][]int
	pal    []lipgloss.Style
}

func newCanvas(w, h int, base lipgloss.Style) *canvas {
	c := &canvas{w: w, h: h, pal: []lipgloss.Style{base}}
	c.runes = make([][]rune, h)
	c.styles = make([][]int, h)
	for y := range c.runes {
		c.runes[y] = []rune(strings.Repeat(" ", w))
		c.styles[y] = make([]int, w)
	}
	return c
}

func (c *canvas) style(s lipgloss.Style) int {
	c.pal = append(c.pal, s)
	return len(c.pal) - 1
}

func (c *canvas) put(x, y int, s string, style int) {
	if y < 0 || y >= c.h {
		return
	}
	for i, r := range []rune(s) {
		cx := x + i
		if cx < 0 || cx >= c.w {
			continue
		}
		c.runes[y][cx] = r
		c.styles[y][cx] = style
	}
}

func (c *canvas) String() string {
	lines := make([]string, c.h)
	for y := 0; y < c.h; y++ {
		var b strings.Builder
		start := 0
		for x := 1; x <= c.w; x++ {
			if x == c.w || c.styles[y][x] != c.styles[y][start] {
				b.WriteString(c.pal[c.styles[y][start]].Render(string(c.runes[y][start:x])))
				start = x
			}
		}
		lines[y] = b.String()
	}
	return strings.Join(lines, "\n")
}

// dialBlock is the text drawn for one entry at a given scale.
func dialBlock(d calendar.Day, scale float64, hasNote bool) []string {
	num := fmt.Sprintf("%d", d.Number)
	label := truncateRunes(d.Label, 3)
	mark := ""
	if hasNote {
		mark = "•"
	}
	switch {
	case scale >= 0.85:
		bottom := "╰─────╯"
		if hasNote {
			bottom = "╰──•──╯"
		}
		return []string{
			"╭─────╮",
			"│" + center(label, 5) + "│",
			"│" + center(num, 5) + "│",
			bottom,
		}
	case scale >= 0.7:
		return []string{center(label, 5), center(num+mark, 5)}
	default:
		return []string{num + mark}
	}
}

// renderDial draws the visible entries around the selection and returns the
// hit boxes of the interactive ones.
func renderDial(days []calendar.Day, selected int, hasNote func(string) bool, theme Theme) (string, []hitBox) {
	c := newCanvas(dialWidth, dialHeight, theme.BaseStyle())
	cx := dialWidth / 2

	var visible []dial.Transform
	for i := range days {
		tr := dial.Layout(i, selected)
		if tr.Visible() {
			visible = append(visible, tr)
		}
	}
	// Paint far entries first so closer ones stack on top.
	sort.SliceStable(visible, func(i, j int) bool { return visible[i].Z < visible[j].Z })

	var hits []hitBox
	for _, tr := range visible {
		d := days[tr.Index]
		block := dialBlock(d, tr.Scale, hasNote(d.Key()))
		w := lipgloss.Width(block[0])
		x := cx + tr.OffsetX - w/2
		y := tr.OffsetY

		st := lipgloss.NewStyle().Foreground(theme.Fade(tr.Opacity)).Background(theme.Background)
		if tr.Distance == 0 {
			st = st.Foreground(theme.Accent).Bold(true)
		}
		if d.IsToday {
			st = st.Underline(true)
		}
		idx := c.style(st)
		for row, line := range block {
			c.put(x, y+row, line, idx)
		}
		if tr.Interactive {
			hits = append(hits, hitBox{x: x, y: y, w: w, h: len(block), index: tr.Index})
		}
	}

	return c.String(), hits
}

func center(s string, width int) string {
	n := lipgloss.Width(s)
	if n >= width {
		return s
	}
	left := (width - n) / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", width-n-left)
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) > n {
		return string(r[:n])
	}
	return s
}
