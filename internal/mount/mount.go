// Package mount reads widget placeholders. A placeholder is a markdown file
// whose front matter carries the widget's initial view; the body becomes the
// widget's caption.
package mount

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/adrg/frontmatter"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

const (
	idAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"
	idLength   = 8
)

// ErrPlaceholder wraps failures to read a placeholder.
var ErrPlaceholder = errors.New("placeholder error")

// View is the widget's display mode.
type View string

const (
	Weekly  View = "weekly"
	Monthly View = "monthly"
)

// Toggle returns the other view.
func (v View) Toggle() View {
	if v == Monthly {
		return Weekly
	}
	return Monthly
}

// ParseView maps a metadata value to a View, falling back for anything
// unrecognized.
func ParseView(s string, fallback View) View {
	switch View(strings.ToLower(strings.TrimSpace(s))) {
	case Weekly:
		return Weekly
	case Monthly:
		return Monthly
	}
	if fallback == Monthly {
		return Monthly
	}
	return Weekly
}

// Placeholder describes one widget instance to mount.
type Placeholder struct {
	ID      string
	Source  string
	View    View
	Caption string
}

type metadata struct {
	View string `yaml:"view" toml:"view" json:"view"`
}

// NewID generates a widget instance id.
func NewID() (string, error) {
	return gonanoid.Generate(idAlphabet, idLength)
}

// New returns a placeholder with a fresh id and no caption.
func New(view View) (Placeholder, error) {
	id, err := NewID()
	if err != nil {
		return Placeholder{}, fmt.Errorf("generating widget id: %w", err)
	}
	return Placeholder{ID: id, View: ParseView(string(view), Weekly)}, nil
}

// Parse reads a placeholder. Content without front matter mounts with the
// fallback view.
func Parse(r io.Reader, source string, fallback View) (Placeholder, error) {
	var meta metadata
	body, err := frontmatter.Parse(r, &meta)
	if err != nil {
		return Placeholder{}, fmt.Errorf("%w: parsing %s: %v", ErrPlaceholder, source, err)
	}

	p, err := New(ParseView(meta.View, fallback))
	if err != nil {
		return Placeholder{}, err
	}
	p.Source = source
	p.Caption = strings.TrimSpace(string(body))
	return p, nil
}

// ParseFile reads the placeholder at path.
func ParseFile(path string, fallback View) (Placeholder, error) {
	f, err := os.Open(path)
	if err != nil {
		return Placeholder{}, fmt.Errorf("%w: %v", ErrPlaceholder, err)
	}
	defer f.Close()
	return Parse(f, path, fallback)
}
