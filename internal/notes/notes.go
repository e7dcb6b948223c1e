// Package notes stores free-text notes keyed by day identity.
package notes

import (
	"errors"
	"sort"
	"sync"
)

// ErrStorage wraps backend failures.
var ErrStorage = errors.New("note storage error")

// Store maps day keys to note text. Absent keys read as "". ClearNote keeps
// the key with an empty value.
type Store interface {
	SetNote(day string, text string) error
	ClearNote(day string) error
	Note(day string) (string, error)
	Notes() (map[string]string, error)
	Close() error
}

// Has reports whether the day has a non-empty note. Lookup failures count as
// no note.
func Has(s Store, day string) bool {
	text, err := s.Note(day)
	return err == nil && text != ""
}

// Keys returns the stored day keys in ascending order, including cleared ones.
func Keys(s Store) ([]string, error) {
	all, err := s.Notes()
	if err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(all))
	for k := range all {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

// Memory is a map-backed Store.
type Memory struct {
	mu    sync.RWMutex
	notes map[string]string
}

// NewMemory returns an empty in-memory Store.
func NewMemory() *Memory {
	return &Memory{notes: make(map[string]string)}
}

func (m *Memory) SetNote(day string, text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.notes[day] = text
	return nil
}

func (m *Memory) ClearNote(day string) error {
	return m.SetNote(day, "")
}

func (m *Memory) Note(day string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.notes[day], nil
}

// Notes returns a copy of every stored note.
func (m *Memory) Notes() (map[string]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make(map[string]string, len(m.notes))
	for k, v := range m.notes {
		out[k] = v
	}
	return out, nil
}

func (m *Memory) Close() error { return nil }
