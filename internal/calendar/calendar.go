// Package calendar builds the ordered day sequence for a calendar month.
// Days are identified by their Date (normalized to midnight local time) and
// carry locale-aware labels for display.
package calendar

import (
	"time"

	"github.com/goodsign/monday"
)

// DefaultLocale is used when a requested locale is unknown.
const DefaultLocale = monday.LocaleEnUS

// KeyLayout formats a day's identity.
const KeyLayout = "2006-01-02"

// Day is a single entry in a month's day sequence.
type Day struct {
	// Date is the normalized date (midnight local time) and the day's identity
	Date time.Time `json:"date"`

	// Label is the abbreviated weekday name in the generator's locale
	Label string `json:"label"`

	// Number is the day of the month, starting at 1
	Number int `json:"number"`

	// Month is the full month name in the generator's locale
	Month string `json:"month"`

	// IsToday marks the day matching the generator's clock
	IsToday bool `json:"is_today"`
}

// Key returns the stable identity of the day, e.g. "2024-05-01".
func (d Day) Key() string {
	return d.Date.Format(KeyLayout)
}

// Month is a generated day sequence together with its initial selection.
type Month struct {
	Days     []Day
	Selected int
}

// Generator produces day sequences. The zero value uses time.Now and the
// default locale.
type Generator struct {
	Locale monday.Locale
	Now    func() time.Time
}

// NewGenerator returns a Generator for the named locale. Unknown locales fall
// back to DefaultLocale.
func NewGenerator(locale string) Generator {
	return Generator{Locale: ResolveLocale(locale), Now: time.Now}
}

// ResolveLocale maps a locale name such as "en_US" to a supported locale.
func ResolveLocale(name string) monday.Locale {
	for _, l := range monday.ListLocales() {
		if string(l) == name {
			return l
		}
	}
	return DefaultLocale
}

// NormalizeDate normalizes a time.Time to midnight in the local timezone.
func NormalizeDate(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.Local)
}

// DaysIn returns the number of days in the given month.
func DaysIn(year int, month time.Month) int {
	// Day 0 of the next month is the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.Local).Day()
}

// SameDay reports whether two instants fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// Generate returns the days of ref's calendar month in ascending order, with
// the selection set to ref's day of the month.
func (g Generator) Generate(ref time.Time) Month {
	ref = ref.In(time.Local)
	locale := g.Locale
	if locale == "" {
		locale = DefaultLocale
	}
	now := time.Now
	if g.Now != nil {
		now = g.Now
	}
	today := now()

	year, month, _ := ref.Date()
	count := DaysIn(year, month)
	days := make([]Day, count)
	for i := range days {
		date := time.Date(year, month, i+1, 0, 0, 0, 0, time.Local)
		days[i] = Day{
			Date:    date,
			Label:   monday.Format(date, "Mon", locale),
			Number:  i + 1,
			Month:   monday.Format(date, "January", locale),
			IsToday: SameDay(date, today),
		}
	}

	return Month{Days: days, Selected: ref.Day() - 1}
}

// Leading returns how many grid cells precede day 1 in a Monday-first week.
func (m Month) Leading() int {
	if len(m.Days) == 0 {
		return 0
	}
	return (int(m.Days[0].Date.Weekday()) + 6) % 7
}

// WeekdayLabels returns abbreviated weekday names, Monday first.
func (g Generator) WeekdayLabels() []string {
	locale := g.Locale
	if locale == "" {
		locale = DefaultLocale
	}
	// 2024-01-01 was a Monday.
	monday0 := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.Local)
	labels := make([]string, 7)
	for i := range labels {
		labels[i] = monday.Format(monday0.AddDate(0, 0, i), "Mon", locale)
	}
	return labels
}
