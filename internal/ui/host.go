package ui

import (
	"errors"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const hostGap = 1

// hostModel lays out independent widget instances on one screen and routes
// input to them. Keys go to the focused widget; mouse events go to the widget
// under the pointer.
type hostModel struct {
	widgets []Widget
	keys    keyMap
	focus   int
	width   int
	height  int
}

func newHostModel(widgets []Widget) hostModel {
	m := hostModel{widgets: widgets, keys: defaultKeyMap()}
	if len(m.widgets) > 0 {
		m.widgets[0].Focus()
	}
	return m
}

func (m hostModel) Init() tea.Cmd {
	cmds := make([]tea.Cmd, 0, len(m.widgets))
	for _, w := range m.widgets {
		cmds = append(cmds, w.Init())
	}
	return tea.Batch(cmds...)
}

func (m hostModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if len(m.widgets) == 0 {
		return m, tea.Quit
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if !m.widgets[m.focus].Capturing() {
			switch {
			case key.Matches(msg, m.keys.Quit):
				return m, tea.Quit
			case key.Matches(msg, m.keys.Focus):
				m.setFocus((m.focus + 1) % len(m.widgets))
				return m, nil
			}
		}
		var cmd tea.Cmd
		m.widgets[m.focus], cmd = m.widgets[m.focus].Update(msg)
		return m, cmd

	case tea.MouseMsg:
		i, ox, oy := m.widgetAt(msg.X, msg.Y)
		if i < 0 {
			return m, nil
		}
		if msg.Button == tea.MouseButtonLeft && msg.Action == tea.MouseActionPress {
			m.setFocus(i)
		}
		local := msg
		local.X -= ox
		local.Y -= oy
		var cmd tea.Cmd
		m.widgets[i], cmd = m.widgets[i].Update(local)
		return m, cmd
	}

	// Async results (file picker directory reads) are routed by the
	// component ids inside each widget.
	cmds := make([]tea.Cmd, len(m.widgets))
	for i := range m.widgets {
		m.widgets[i], cmds[i] = m.widgets[i].Update(msg)
	}
	return m, tea.Batch(cmds...)
}

func (m *hostModel) setFocus(i int) {
	m.widgets[m.focus].Blur()
	m.focus = i
	m.widgets[m.focus].Focus()
}

// stacked reports whether widgets are arranged vertically because they do
// not fit side by side.
func (m hostModel) stacked(views []string) bool {
	if m.width == 0 {
		return false
	}
	total := 0
	for i, v := range views {
		if i > 0 {
			total += hostGap
		}
		total += lipgloss.Width(v)
	}
	return total > m.width
}

// widgetAt returns the widget under screen position (x, y) and its origin,
// or -1.
func (m hostModel) widgetAt(x, y int) (int, int, int) {
	views := m.views()
	vertical := m.stacked(views)
	ox, oy := 0, 0
	for i, v := range views {
		w, h := lipgloss.Width(v), lipgloss.Height(v)
		if x >= ox && x < ox+w && y >= oy && y < oy+h {
			return i, ox, oy
		}
		if vertical {
			oy += h
		} else {
			ox += w + hostGap
		}
	}
	return -1, 0, 0
}

func (m hostModel) views() []string {
	views := make([]string, len(m.widgets))
	for i, w := range m.widgets {
		views[i] = w.View()
	}
	return views
}

func (m hostModel) View() string {
	views := m.views()
	if m.stacked(views) {
		return lipgloss.JoinVertical(lipgloss.Left, views...)
	}
	spaced := make([]string, 0, 2*len(views))
	for i, v := range views {
		if i > 0 {
			spaced = append(spaced, " ")
		}
		spaced = append(spaced, v)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, spaced...)
}

// closeAll tears every widget down, releasing held files and stores.
func (m hostModel) closeAll() error {
	var errs []error
	for i := range m.widgets {
		if err := m.widgets[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// RunTUI runs the interactive host for the given widget instances and tears
// them down when it exits.
func RunTUI(widgets []Widget) error {
	m := newHostModel(widgets)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	result, err := p.Run()

	final := m
	if hm, ok := result.(hostModel); ok {
		final = hm
	}
	closeErr := final.closeAll()
	if err != nil {
		return err
	}
	return closeErr
}
