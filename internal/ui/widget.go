package ui

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/chris-regnier/dialcal/internal/background"
	"github.com/chris-regnier/dialcal/internal/calendar"
	"github.com/chris-regnier/dialcal/internal/dial"
	"github.com/chris-regnier/dialcal/internal/logs"
	"github.com/chris-regnier/dialcal/internal/mount"
	"github.com/chris-regnier/dialcal/internal/notes"
)

// widgetMode is the input mode of a widget.
type widgetMode int

const (
	modeNormal widgetMode = iota
	modeNote
	modePanel
	modeColor
	modeFile
)

// Fixed layout, in cells. Mouse hit-testing relies on these.
const (
	frameTop      = 2 // border + padding rows above content
	frameLeft     = 3 // border + padding columns left of content
	toggleRow     = 0
	headerRow     = 2
	bodyRow       = 4
	toggleSegment = 11

	// wheelDelta is the scroll magnitude of one wheel notch.
	wheelDelta = 50

	pickerHeight = 14
)

var imageTypes = []string{".png", ".jpg", ".jpeg", ".gif"}

// WidgetConfig configures a single calendar widget instance.
type WidgetConfig struct {
	ID         string
	View       mount.View
	Caption    string
	Locale     string
	Now        func() time.Time
	Ref        time.Time
	Theme      Theme
	Notes      notes.Store
	Background string
}

// Widget is one isolated calendar instance. It owns its selection, notes
// and background.
type Widget struct {
	id      string
	caption string
	view    mount.View
	gen     calendar.Generator
	month   calendar.Month
	headers []string
	sel     dial.Selector
	notes   notes.Store
	panel   *background.Panel
	theme   Theme
	keys    keyMap
	help    help.Model

	mode     widgetMode
	focused  bool
	showHelp bool

	noteInput  textarea.Model
	noteKey    string
	colorInput textinput.Model
	picker     filepicker.Model
}

// NewWidget builds a widget showing the current month.
func NewWidget(cfg WidgetConfig) Widget {
	gen := calendar.NewGenerator(cfg.Locale)
	if cfg.Now != nil {
		gen.Now = cfg.Now
	}
	store := cfg.Notes
	if store == nil {
		store = notes.NewMemory()
	}

	ta := textarea.New()
	ta.Placeholder = "Write a note for this day..."
	ta.ShowLineNumbers = false
	ta.SetWidth(dialWidth)
	ta.SetHeight(3)

	ti := textinput.New()
	ti.Placeholder = "#1e1e2e"
	ti.Prompt = "color: "
	ti.Width = 20

	h := help.New()
	h.Width = dialWidth

	w := Widget{
		id:         cfg.ID,
		caption:    cfg.Caption,
		view:       mount.ParseView(string(cfg.View), mount.Weekly),
		gen:        gen,
		headers:    gen.WeekdayLabels(),
		notes:      store,
		panel:      background.NewPanel(cfg.Background),
		theme:      cfg.Theme,
		keys:       defaultKeyMap(),
		help:       h,
		noteInput:  ta,
		colorInput: ti,
	}
	ref := cfg.Ref
	if ref.IsZero() {
		ref = gen.Now()
	}
	w.SetMonth(ref)
	logs.Logger.Printf("mounted widget %s view=%s", w.id, w.view)
	return w
}

// SetMonth regenerates the day sequence for ref's month and resets the
// selection to ref's day.
func (w *Widget) SetMonth(ref time.Time) {
	w.month = w.gen.Generate(ref)
	w.sel = dial.NewSelector(len(w.month.Days), w.month.Selected)
}

// ID returns the widget instance id.
func (w Widget) ID() string { return w.id }

// CurrentView returns the active view mode.
func (w Widget) CurrentView() mount.View { return w.view }

// Month returns the generated day sequence.
func (w Widget) Month() calendar.Month { return w.month }

// Selected returns the selected day index.
func (w Widget) Selected() int { return w.sel.Index() }

// SelectedDay returns the selected day.
func (w Widget) SelectedDay() calendar.Day { return w.month.Days[w.sel.Index()] }

// Background returns the active background.
func (w Widget) Background() background.Background { return w.panel.Current() }

// Notes returns the widget's note store.
func (w Widget) Notes() notes.Store { return w.notes }

// Capturing reports whether the widget is consuming raw keystrokes, so
// global bindings must not fire.
func (w Widget) Capturing() bool { return w.mode != modeNormal }

// Focus marks the widget as the one receiving keys.
func (w *Widget) Focus() { w.focused = true }

// Blur marks the widget as unfocused.
func (w *Widget) Blur() { w.focused = false }

// Close releases the background image lease and the note store.
func (w *Widget) Close() error {
	if err := w.panel.Close(); err != nil {
		logs.Logger.Printf("widget %s: releasing background: %v", w.id, err)
	}
	return w.notes.Close()
}

func (w Widget) Init() tea.Cmd {
	return nil
}

// Update handles a message. Mouse coordinates are relative to the widget's
// top-left corner.
func (w Widget) Update(msg tea.Msg) (Widget, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch w.mode {
		case modeNote:
			return w.updateNote(msg)
		case modePanel:
			return w.updatePanel(msg)
		case modeColor:
			return w.updateColor(msg)
		case modeFile:
			return w.updateFile(msg)
		}
		return w.updateNormal(msg)
	case tea.MouseMsg:
		w.handleMouse(msg)
		return w, nil
	}

	if w.mode == modeFile {
		return w.updateFile(msg)
	}
	return w, nil
}

func (w Widget) updateNormal(msg tea.KeyMsg) (Widget, tea.Cmd) {
	switch {
	case key.Matches(msg, w.keys.Prev):
		w.sel.Move(-1)
	case key.Matches(msg, w.keys.Next):
		w.sel.Move(1)
	case key.Matches(msg, w.keys.Up):
		if w.view == mount.Monthly {
			w.sel.Move(-7)
		}
	case key.Matches(msg, w.keys.Down):
		if w.view == mount.Monthly {
			w.sel.Move(7)
		}
	case key.Matches(msg, w.keys.Today):
		for i, d := range w.month.Days {
			if d.IsToday {
				w.sel.Select(i)
				break
			}
		}
	case key.Matches(msg, w.keys.Weekly):
		w.setView(mount.Weekly)
	case key.Matches(msg, w.keys.Monthly):
		w.setView(mount.Monthly)
	case key.Matches(msg, w.keys.Toggle):
		w.setView(w.view.Toggle())
	case key.Matches(msg, w.keys.EditNote):
		return w.startNote()
	case key.Matches(msg, w.keys.ClearNote):
		w.clearNote()
	case key.Matches(msg, w.keys.Background):
		w.mode = modePanel
	case key.Matches(msg, w.keys.Help):
		w.showHelp = !w.showHelp
	}
	return w, nil
}

func (w *Widget) setView(v mount.View) {
	if v == w.view {
		return
	}
	w.view = v
	logs.Logger.Printf("widget %s view=%s", w.id, v)
}

func (w Widget) startNote() (Widget, tea.Cmd) {
	w.noteKey = w.SelectedDay().Key()
	text, err := w.notes.Note(w.noteKey)
	if err != nil {
		logs.Logger.Printf("widget %s: reading note: %v", w.id, err)
	}
	w.noteInput.SetValue(text)
	w.mode = modeNote
	return w, w.noteInput.Focus()
}

func (w Widget) updateNote(msg tea.KeyMsg) (Widget, tea.Cmd) {
	if msg.Type == tea.KeyEsc {
		w.noteInput.Blur()
		w.mode = modeNormal
		return w, nil
	}

	var cmd tea.Cmd
	w.noteInput, cmd = w.noteInput.Update(msg)
	if err := w.notes.SetNote(w.noteKey, w.noteInput.Value()); err != nil {
		logs.Logger.Printf("widget %s: saving note: %v", w.id, err)
	}
	return w, cmd
}

func (w *Widget) clearNote() {
	if err := w.notes.ClearNote(w.SelectedDay().Key()); err != nil {
		logs.Logger.Printf("widget %s: clearing note: %v", w.id, err)
	}
}

func (w Widget) updatePanel(msg tea.KeyMsg) (Widget, tea.Cmd) {
	switch msg.String() {
	case "esc", "b":
		w.mode = modeNormal
	case "i":
		return w.openPicker()
	case "c":
		if c, ok := w.panel.Current().(background.Color); ok {
			w.colorInput.SetValue(c.Value)
		} else {
			w.colorInput.SetValue("")
		}
		w.mode = modeColor
		return w, w.colorInput.Focus()
	}
	return w, nil
}

func (w Widget) updateColor(msg tea.KeyMsg) (Widget, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		w.colorInput.Blur()
		w.mode = modePanel
		return w, nil
	case tea.KeyEnter:
		w.colorInput.Blur()
		w.SetColor(w.colorInput.Value())
		w.mode = modeNormal
		return w, nil
	}

	var cmd tea.Cmd
	w.colorInput, cmd = w.colorInput.Update(msg)
	return w, cmd
}

func (w Widget) openPicker() (Widget, tea.Cmd) {
	fp := filepicker.New()
	fp.AllowedTypes = imageTypes
	if dir, err := os.Getwd(); err == nil {
		fp.CurrentDirectory = dir
	}
	fp, _ = fp.Update(tea.WindowSizeMsg{Width: dialWidth, Height: pickerHeight})
	w.picker = fp
	w.mode = modeFile
	return w, w.picker.Init()
}

func (w Widget) updateFile(msg tea.Msg) (Widget, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok && k.Type == tea.KeyEsc {
		w.mode = modePanel
		return w, nil
	}

	var cmd tea.Cmd
	w.picker, cmd = w.picker.Update(msg)
	if ok, path := w.picker.DidSelectFile(msg); ok {
		w.SetImageFile(path)
		w.mode = modeNormal
		return w, nil
	}
	return w, cmd
}

// SetColor makes a solid color the background.
func (w *Widget) SetColor(value string) {
	if err := w.panel.SetColor(value); err != nil {
		logs.Logger.Printf("widget %s: releasing background: %v", w.id, err)
	}
	logs.Logger.Printf("widget %s background color=%q", w.id, value)
}

// SetImageFile makes the image at path the background. Unreadable files
// leave the background unchanged.
func (w *Widget) SetImageFile(path string) {
	lease, err := background.OpenImage(path)
	if err != nil {
		logs.Logger.Printf("widget %s: %v", w.id, err)
		return
	}
	if err := w.panel.SetImageLease(lease); err != nil {
		logs.Logger.Printf("widget %s: releasing background: %v", w.id, err)
	}
	logs.Logger.Printf("widget %s background image=%s tint=%s", w.id, lease.Path, lease.Tint)
}

// handleMouse applies wheel and click input. The selection is pinned while
// a note, color or file is being edited.
func (w *Widget) handleMouse(msg tea.MouseMsg) {
	if w.mode != modeNormal && w.mode != modePanel {
		return
	}
	x, y := msg.X-frameLeft, msg.Y-frameTop

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		w.sel.AccumulateScroll(-wheelDelta)
		return
	case tea.MouseButtonWheelDown:
		w.sel.AccumulateScroll(wheelDelta)
		return
	case tea.MouseButtonLeft:
		if msg.Action != tea.MouseActionPress {
			return
		}
	default:
		return
	}

	if y == toggleRow {
		switch {
		case x >= 0 && x < toggleSegment:
			w.setView(mount.Weekly)
		case x >= toggleSegment && x < 2*toggleSegment:
			w.setView(mount.Monthly)
		}
		return
	}

	by := y - bodyRow
	if by < 0 {
		return
	}
	if w.view == mount.Monthly {
		if i := gridIndexAt(w.month, x, by); i >= 0 {
			w.sel.Select(i)
		}
		return
	}
	_, hits := renderDial(w.month.Days, w.sel.Index(), w.hasNote, w.renderTheme())
	for _, h := range hits {
		if h.contains(x, by) {
			w.sel.Select(h.index)
			return
		}
	}
}

func (w Widget) hasNote(day string) bool {
	return notes.Has(w.notes, day)
}

// renderTheme is the base theme painted with the active background.
func (w Widget) renderTheme() Theme {
	return w.theme.WithBackground(background.Resolve(w.panel.Current(), string(w.theme.Background)))
}

// View renders the framed widget.
func (w Widget) View() string {
	theme := w.renderTheme()
	base := theme.BaseStyle()
	blank := base.Render(strings.Repeat(" ", dialWidth))

	var lines []string
	lines = append(lines, w.toggleView(theme), blank, w.headerView(theme), blank)

	if w.view == mount.Monthly {
		lines = append(lines, renderGrid(w.month, w.sel.Index(), w.headers, w.hasNote, theme))
	} else {
		dialView, _ := renderDial(w.month.Days, w.sel.Index(), w.hasNote, theme)
		lines = append(lines, dialView)
	}

	lines = append(lines, blank, w.noteView(theme))
	if extra := w.modeView(theme); extra != "" {
		lines = append(lines, blank, extra)
	}

	w.help.ShowAll = w.showHelp
	w.help.Styles.ShortKey = theme.AccentStyle()
	w.help.Styles.ShortDesc = theme.HelpStyle()
	w.help.Styles.ShortSeparator = theme.HelpStyle()
	w.help.Styles.FullKey = theme.AccentStyle()
	w.help.Styles.FullDesc = theme.HelpStyle()
	w.help.Styles.FullSeparator = theme.HelpStyle()
	lines = append(lines, blank, w.help.View(w.keys))

	if w.caption != "" {
		lines = append(lines, blank, RenderMarkdownWithStyle(w.caption, dialWidth, theme.MarkdownStyle))
	}

	body := strings.Join(lines, "\n")
	return theme.FrameStyle(w.focused).Width(dialWidth + 2*(frameLeft-1)).Render(body)
}

func (w Widget) toggleView(theme Theme) string {
	on := theme.SelectedStyle().Width(toggleSegment).Align(lipgloss.Center)
	off := theme.HelpStyle().Width(toggleSegment).Align(lipgloss.Center)
	weekly, monthly := off.Render("Weekly"), off.Render("Monthly")
	if w.view == mount.Monthly {
		monthly = on.Render("Monthly")
	} else {
		weekly = on.Render("Weekly")
	}
	return weekly + monthly
}

func (w Widget) headerView(theme Theme) string {
	d := w.SelectedDay()
	left := theme.HeaderStyle().Render(d.Month)
	right := theme.HeaderStyle().Render(fmt.Sprintf("%s %2d", d.Label, d.Number))
	gap := dialWidth - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return left + theme.BaseStyle().Render(strings.Repeat(" ", gap)) + right
}

func (w Widget) noteView(theme Theme) string {
	key := w.SelectedDay().Key()
	title := theme.AccentStyle().Render("Note " + key)
	if w.mode == modeNote {
		return title + "\n" + w.noteInput.View()
	}
	text, _ := w.notes.Note(key)
	if text == "" {
		return title + "\n" + theme.HelpStyle().Render("(no note)")
	}
	return title + "\n" + RenderMarkdownWithStyle(text, dialWidth, theme.MarkdownStyle)
}

func (w Widget) modeView(theme Theme) string {
	switch w.mode {
	case modePanel:
		current := "color"
		switch bg := w.panel.Current().(type) {
		case background.Image:
			current = "image " + bg.Ref
		case background.Color:
			if bg.Value != "" {
				current = "color " + bg.Value
			}
		}
		return theme.HeaderStyle().Render("Background: "+current) + "\n" +
			theme.HelpStyle().Render("[i] image file  [c] color  [esc] close")
	case modeColor:
		return w.colorInput.View() + "\n" + theme.HelpStyle().Render("[enter] apply  [esc] back")
	case modeFile:
		return w.picker.View() + "\n" + theme.HelpStyle().Render("[enter] choose  [esc] back")
	}
	return ""
}
