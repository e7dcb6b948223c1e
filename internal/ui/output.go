package ui

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/chris-regnier/dialcal/internal/background"
	"github.com/chris-regnier/dialcal/internal/calendar"
	"github.com/chris-regnier/dialcal/internal/dial"
	"github.com/chris-regnier/dialcal/internal/mount"
)

// FormatJSON writes any value as indented JSON.
func FormatJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// BackgroundSummary is the JSON form of the active background.
type BackgroundSummary struct {
	Kind  string `json:"kind"`
	Value string `json:"value"`
	Tint  string `json:"tint,omitempty"`
}

// Snapshot is a JSON representation of a widget's state and dial layout.
type Snapshot struct {
	ID         string            `json:"id"`
	View       mount.View        `json:"view"`
	Selected   int               `json:"selected"`
	Day        calendar.Day      `json:"day"`
	Days       []calendar.Day    `json:"days"`
	Layout     []dial.Transform  `json:"layout"`
	Notes      map[string]string `json:"notes"`
	Background BackgroundSummary `json:"background"`
}

// NewSnapshot captures a widget's current state.
func NewSnapshot(w Widget) (Snapshot, error) {
	all, err := w.notes.Notes()
	if err != nil {
		return Snapshot{}, fmt.Errorf("reading notes: %w", err)
	}

	s := Snapshot{
		ID:       w.id,
		View:     w.view,
		Selected: w.sel.Index(),
		Day:      w.SelectedDay(),
		Days:     w.month.Days,
		Layout:   dial.LayoutAll(len(w.month.Days), w.sel.Index()),
		Notes:    all,
	}
	switch bg := w.panel.Current().(type) {
	case background.Image:
		s.Background = BackgroundSummary{Kind: "image", Value: bg.Ref, Tint: bg.Tint}
	case background.Color:
		s.Background = BackgroundSummary{Kind: "color", Value: bg.Value}
	}
	return s, nil
}

// FormatSnapshots writes the snapshots of every widget as a JSON array.
func FormatSnapshots(out io.Writer, widgets []Widget) error {
	snaps := make([]Snapshot, 0, len(widgets))
	for _, w := range widgets {
		s, err := NewSnapshot(w)
		if err != nil {
			return err
		}
		snaps = append(snaps, s)
	}
	return FormatJSON(out, snaps)
}

// FormatWidgets writes the rendered widgets one after another.
func FormatWidgets(out io.Writer, widgets []Widget) {
	for i, w := range widgets {
		if i > 0 {
			fmt.Fprintln(out)
		}
		fmt.Fprintln(out, w.View())
	}
}
