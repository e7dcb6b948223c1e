package ui

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/chris-regnier/dialcal/internal/background"
	"github.com/chris-regnier/dialcal/internal/mount"
	"github.com/chris-regnier/dialcal/internal/notes"
)

// testNow is Wednesday 2024-05-15; May 2024 has 31 days and starts on a
// Wednesday.
var testNow = time.Date(2024, 5, 15, 10, 0, 0, 0, time.Local)

func newTestWidget(t *testing.T, view mount.View) Widget {
	t.Helper()
	w := NewWidget(WidgetConfig{
		ID:     "test0001",
		View:   view,
		Locale: "en_US",
		Now:    func() time.Time { return testNow },
		Theme:  presets["default-dark"],
		Notes:  notes.NewMemory(),
	})
	t.Cleanup(func() { w.Close() })
	return w
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(w Widget, msgs ...tea.Msg) Widget {
	for _, msg := range msgs {
		w, _ = w.Update(msg)
	}
	return w
}

func click(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress}
}

func wheel(down bool) tea.MouseMsg {
	b := tea.MouseButtonWheelUp
	if down {
		b = tea.MouseButtonWheelDown
	}
	return tea.MouseMsg{X: frameLeft + 5, Y: frameTop + bodyRow + 2, Button: b, Action: tea.MouseActionPress}
}

func TestWidgetInitialState(t *testing.T) {
	w := newTestWidget(t, mount.Weekly)

	if len(w.Month().Days) != 31 {
		t.Fatalf("expected 31 days, got %d", len(w.Month().Days))
	}
	if w.Selected() != 14 {
		t.Errorf("expected selected index 14, got %d", w.Selected())
	}
	if w.CurrentView() != mount.Weekly {
		t.Errorf("expected weekly view, got %q", w.CurrentView())
	}

	view := stripANSI(w.View())
	for _, want := range []string{"Weekly", "Monthly", "May", "Wed 15", "Note 2024-05-15", "(no note)"} {
		if !strings.Contains(view, want) {
			t.Errorf("expected %q in view", want)
		}
	}
}

func TestWidgetUnknownViewFallsBackToWeekly(t *testing.T) {
	w := newTestWidget(t, mount.View("yearly"))
	if w.CurrentView() != mount.Weekly {
		t.Errorf("expected weekly fallback, got %q", w.CurrentView())
	}
}

func TestWidgetKeyNavigationClamps(t *testing.T) {
	w := newTestWidget(t, mount.Weekly)

	w = press(w, runes("l"), tea.KeyMsg{Type: tea.KeyRight})
	if w.Selected() != 16 {
		t.Fatalf("expected 16, got %d", w.Selected())
	}

	for i := 0; i < 40; i++ {
		w = press(w, runes("h"))
	}
	if w.Selected() != 0 {
		t.Errorf("expected clamp at 0, got %d", w.Selected())
	}

	for i := 0; i < 40; i++ {
		w = press(w, runes("l"))
	}
	if w.Selected() != 30 {
		t.Errorf("expected clamp at 30, got %d", w.Selected())
	}

	w = press(w, runes("t"))
	if w.Selected() != 14 {
		t.Errorf("expected today at 14, got %d", w.Selected())
	}
}

func TestWidgetWeekMovesOnlyInMonthView(t *testing.T) {
	w := newTestWidget(t, mount.Weekly)
	w = press(w, runes("j"))
	if w.Selected() != 14 {
		t.Errorf("expected j ignored in weekly view, got %d", w.Selected())
	}

	w = press(w, runes("m"), runes("j"))
	if w.Selected() != 21 {
		t.Errorf("expected 21, got %d", w.Selected())
	}
	w = press(w, runes("k"), runes("k"), runes("k"), runes("k"))
	if w.Selected() != 0 {
		t.Errorf("expected clamp at 0, got %d", w.Selected())
	}
}

func TestWidgetViewToggle(t *testing.T) {
	w := newTestWidget(t, mount.Weekly)

	w = press(w, runes("v"))
	if w.CurrentView() != mount.Monthly {
		t.Fatalf("expected monthly, got %q", w.CurrentView())
	}
	w = press(w, runes("v"))
	if w.CurrentView() != mount.Weekly {
		t.Fatalf("expected weekly, got %q", w.CurrentView())
	}
	w = press(w, runes("w"))
	if w.CurrentView() != mount.Weekly {
		t.Fatalf("expected weekly to stay weekly, got %q", w.CurrentView())
	}
}

func TestWidgetToggleClick(t *testing.T) {
	w := newTestWidget(t, mount.Weekly)

	w = press(w, click(frameLeft+toggleSegment+2, frameTop+toggleRow))
	if w.CurrentView() != mount.Monthly {
		t.Fatalf("expected monthly after clicking toggle, got %q", w.CurrentView())
	}
	w = press(w, click(frameLeft+1, frameTop+toggleRow))
	if w.CurrentView() != mount.Weekly {
		t.Fatalf("expected weekly after clicking toggle, got %q", w.CurrentView())
	}
}

func TestWidgetWheelIsRateLimited(t *testing.T) {
	w := newTestWidget(t, mount.Weekly)

	w = press(w, wheel(true))
	if w.Selected() != 14 {
		t.Fatalf("expected one notch to be absorbed, got %d", w.Selected())
	}
	w = press(w, wheel(true))
	if w.Selected() != 15 {
		t.Fatalf("expected two notches to move one day, got %d", w.Selected())
	}
	if w.sel.Accumulator() != 0 {
		t.Errorf("expected accumulator reset, got %d", w.sel.Accumulator())
	}

	w = press(w, wheel(false), wheel(false), wheel(false), wheel(false))
	if w.Selected() != 13 {
		t.Errorf("expected 13 after four notches up, got %d", w.Selected())
	}
}

func TestWidgetDialClickAdjacentOnly(t *testing.T) {
	w := newTestWidget(t, mount.Weekly)

	_, hits := renderDial(w.Month().Days, w.Selected(), w.hasNote, w.renderTheme())
	if len(hits) != 3 {
		t.Fatalf("expected 3 interactive entries, got %d", len(hits))
	}

	var next hitBox
	for _, h := range hits {
		if h.index == 15 {
			next = h
		}
	}
	w = press(w, click(frameLeft+next.x, frameTop+bodyRow+next.y))
	if w.Selected() != 15 {
		t.Fatalf("expected click on neighbour to select 15, got %d", w.Selected())
	}

	// The entry two days away is drawn but not clickable.
	cx := dialWidth / 2
	w = press(w, click(frameLeft+cx+2*8, frameTop+bodyRow+4))
	if w.Selected() != 15 {
		t.Errorf("expected far entry click ignored, got %d", w.Selected())
	}
}

func TestWidgetGridClick(t *testing.T) {
	w := newTestWidget(t, mount.Monthly)

	// May 1st 2024 is a Wednesday: third column of the first week row.
	w = press(w, click(frameLeft+gridLeft+2*gridCellWidth+1, frameTop+bodyRow+1))
	if w.Selected() != 0 {
		t.Fatalf("expected May 1 selected, got %d", w.Selected())
	}

	// Empty leading cell.
	w = press(w, click(frameLeft+gridLeft+1, frameTop+bodyRow+1))
	if w.Selected() != 0 {
		t.Errorf("expected blank cell click ignored, got %d", w.Selected())
	}

	// Last row: May 27..31.
	w = press(w, click(frameLeft+gridLeft+4*gridCellWidth+1, frameTop+bodyRow+5))
	if w.Selected() != 30 {
		t.Errorf("expected May 31 selected, got %d", w.Selected())
	}
}

func TestWidgetMonthView(t *testing.T) {
	w := newTestWidget(t, mount.Monthly)
	view := stripANSI(w.View())
	for _, want := range []string{"Mon", "Sun", " 1", "31"} {
		if !strings.Contains(view, want) {
			t.Errorf("expected %q in month view", want)
		}
	}
}

func TestWidgetNoteLifecycle(t *testing.T) {
	w := newTestWidget(t, mount.Weekly)
	day := w.SelectedDay().Key()

	w = press(w, runes("n"))
	if !w.Capturing() {
		t.Fatal("expected note editor to capture keys")
	}
	all, _ := w.Notes().Notes()
	if len(all) != 0 {
		t.Fatalf("expected no note before first keystroke, got %v", all)
	}

	w = press(w, runes("b"), runes("u"), runes("y"))
	text, _ := w.Notes().Note(day)
	if text != "buy" {
		t.Fatalf("expected 'buy', got %q", text)
	}

	w = press(w, tea.KeyMsg{Type: tea.KeyEsc})
	if w.Capturing() {
		t.Fatal("expected esc to leave note editor")
	}
	if !strings.Contains(stripANSI(w.View()), "buy") {
		t.Error("expected note preview in view")
	}

	w = press(w, runes("x"))
	all, _ = w.Notes().Notes()
	if v, ok := all[day]; !ok || v != "" {
		t.Errorf("expected cleared key kept as empty string, got %q (present=%v)", v, ok)
	}
	if w.hasNote(day) {
		t.Error("expected cleared note to show no indicator")
	}
}

func TestWidgetBackgroundColor(t *testing.T) {
	w := newTestWidget(t, mount.Weekly)

	w = press(w, runes("b"), runes("c"), runes("#ff0000"), tea.KeyMsg{Type: tea.KeyEnter})
	c, ok := w.Background().(background.Color)
	if !ok || c.Value != "#ff0000" {
		t.Fatalf("expected color #ff0000, got %#v", w.Background())
	}
	if w.Capturing() {
		t.Error("expected panel closed after applying color")
	}
	if got := string(w.renderTheme().Background); got != "#ff0000" {
		t.Errorf("expected render background #ff0000, got %q", got)
	}
}

func TestWidgetPanelEscape(t *testing.T) {
	w := newTestWidget(t, mount.Weekly)
	w = press(w, runes("b"))
	if !strings.Contains(stripANSI(w.View()), "Background:") {
		t.Error("expected background panel in view")
	}
	w = press(w, tea.KeyMsg{Type: tea.KeyEsc})
	if w.Capturing() {
		t.Error("expected esc to close panel")
	}
}

func writeTestPNG(t *testing.T) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			img.Set(x, y, color.RGBA{R: 0, G: 0, B: 255, A: 255})
		}
	}
	path := filepath.Join(t.TempDir(), "sky.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestWidgetBackgroundImage(t *testing.T) {
	w := newTestWidget(t, mount.Weekly)

	w.SetImageFile(filepath.Join(t.TempDir(), "missing.png"))
	if _, ok := w.Background().(background.Color); !ok {
		t.Fatalf("expected unreadable file to leave background unchanged, got %#v", w.Background())
	}

	path := writeTestPNG(t)
	w.SetImageFile(path)
	img, ok := w.Background().(background.Image)
	if !ok || img.Ref != path {
		t.Fatalf("expected image background, got %#v", w.Background())
	}
	if img.Tint != "#0000ff" {
		t.Errorf("expected tint #0000ff, got %q", img.Tint)
	}
	if !w.panel.Leased() {
		t.Error("expected image lease held")
	}

	w.SetColor("#000000")
	if w.panel.Leased() {
		t.Error("expected lease released when superseded")
	}
}

func TestWidgetCloseReleasesLease(t *testing.T) {
	w := newTestWidget(t, mount.Weekly)
	w.SetImageFile(writeTestPNG(t))
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if w.panel.Leased() {
		t.Error("expected lease released on close")
	}
}

func TestWidgetsAreIsolated(t *testing.T) {
	a := newTestWidget(t, mount.Weekly)
	b := newTestWidget(t, mount.Monthly)

	a = press(a, runes("n"), runes("a"), tea.KeyMsg{Type: tea.KeyEsc}, runes("l"))
	if b.hasNote(a.Month().Days[14].Key()) {
		t.Error("expected notes not shared between widgets")
	}
	if b.Selected() != 14 {
		t.Errorf("expected b selection untouched, got %d", b.Selected())
	}
	if b.CurrentView() != mount.Monthly {
		t.Errorf("expected b view untouched, got %q", b.CurrentView())
	}
}

func TestWidgetNoteMarkerInDial(t *testing.T) {
	w := newTestWidget(t, mount.Weekly)
	w.Notes().SetNote(w.Month().Days[15].Key(), "dentist")
	view := stripANSI(w.View())
	if !strings.Contains(view, "╰──•──╯") {
		t.Error("expected note marker on the neighbouring entry")
	}
}

func TestWidgetHeaderFollowsSelection(t *testing.T) {
	w := newTestWidget(t, mount.Weekly)

	lines := viewLines(w.View())
	if len(lines) <= frameTop+bodyRow+dialHeight {
		t.Fatalf("expected at least %d lines, got %d", frameTop+bodyRow+dialHeight+1, len(lines))
	}
	header := lines[frameTop+headerRow]
	if !strings.Contains(header, "May") || !strings.Contains(header, "Wed 15") {
		t.Errorf("expected header 'May ... Wed 15', got %q", header)
	}

	w = press(w, runes("l"))
	header = viewLines(w.View())[frameTop+headerRow]
	if !strings.Contains(header, "Thu 16") {
		t.Errorf("expected header to follow selection, got %q", header)
	}
}

func TestWidgetNoteStaysOnEditedDay(t *testing.T) {
	w := newTestWidget(t, mount.Weekly)
	w = press(w, runes("n"), runes("b"), runes("u"), runes("y"))

	w = press(w, wheel(true), wheel(true))
	_, hits := renderDial(w.Month().Days, w.Selected(), w.hasNote, w.renderTheme())
	for _, h := range hits {
		if h.index == 15 {
			w = press(w, click(frameLeft+h.x, frameTop+bodyRow+h.y))
		}
	}
	if w.Selected() != 14 {
		t.Errorf("expected selection pinned while editing, got %d", w.Selected())
	}

	w = press(w, runes("!"))
	if text, _ := w.Notes().Note("2024-05-16"); text != "" {
		t.Errorf("expected no note on 2024-05-16, got %q", text)
	}
	if text, _ := w.Notes().Note("2024-05-15"); text != "buy!" {
		t.Errorf("expected note 'buy!' on 2024-05-15, got %q", text)
	}
}

func TestWidgetNoteKeyFixedAtStart(t *testing.T) {
	w := newTestWidget(t, mount.Weekly)
	w = press(w, runes("n"), runes("a"))

	// Selection changes outside the editor do not retarget the open note.
	w.sel.Select(20)
	w = press(w, runes("b"))
	if text, _ := w.Notes().Note("2024-05-21"); text != "" {
		t.Errorf("expected no note on 2024-05-21, got %q", text)
	}
	if text, _ := w.Notes().Note("2024-05-15"); text != "ab" {
		t.Errorf("expected note 'ab' on 2024-05-15, got %q", text)
	}
}

func TestWidgetReferenceDateKeepsClock(t *testing.T) {
	w := NewWidget(WidgetConfig{
		ID:     "test0002",
		View:   mount.Weekly,
		Locale: "en_US",
		Now:    func() time.Time { return testNow },
		Ref:    time.Date(2024, 2, 10, 0, 0, 0, 0, time.Local),
		Theme:  presets["default-dark"],
		Notes:  notes.NewMemory(),
	})
	t.Cleanup(func() { w.Close() })

	if len(w.Month().Days) != 29 || w.Selected() != 9 {
		t.Fatalf("expected February 2024 with the 10th selected, got %d days, index %d",
			len(w.Month().Days), w.Selected())
	}
	for _, d := range w.Month().Days {
		if d.IsToday {
			t.Errorf("expected no day of February flagged today, got %s", d.Key())
		}
	}
}
