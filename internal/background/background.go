// Package background holds the widget backdrop: either an image reference or
// a solid color, never both.
package background

import (
	"github.com/lucasb-eyer/go-colorful"
)

// Background is the active backdrop. It is implemented only by Image and
// Color.
type Background interface {
	isBackground()
}

// Image is a backdrop taken from a file. Tint is the image's average color as
// "#rrggbb", or "" when it could not be sampled.
type Image struct {
	Ref  string
	Tint string
}

// Color is a solid backdrop. Value is stored as given.
type Color struct {
	Value string
}

func (Image) isBackground() {}
func (Color) isBackground() {}

// Releaser frees a resource held for the active background.
type Releaser interface {
	Release() error
}

// Panel owns the active background and the lease on its image file.
type Panel struct {
	current Background
	lease   Releaser
}

// NewPanel returns a panel showing a solid color.
func NewPanel(color string) *Panel {
	return &Panel{current: Color{Value: color}}
}

// Current returns the active background.
func (p *Panel) Current() Background {
	return p.current
}

// SetImage makes the image reference active.
func (p *Panel) SetImage(ref string) error {
	err := p.release()
	p.current = Image{Ref: ref}
	return err
}

// SetImageLease makes the leased image active and takes ownership of the
// lease until it is superseded or the panel is closed.
func (p *Panel) SetImageLease(l *Lease) error {
	err := p.release()
	p.current = Image{Ref: l.Path, Tint: l.Tint}
	p.lease = l
	return err
}

// SetColor makes the color active, releasing any held image.
func (p *Panel) SetColor(value string) error {
	err := p.release()
	p.current = Color{Value: value}
	return err
}

// Close releases any held image. The active background is unchanged.
func (p *Panel) Close() error {
	return p.release()
}

// Leased reports whether an image lease is held.
func (p *Panel) Leased() bool {
	return p.lease != nil
}

func (p *Panel) release() error {
	if p.lease == nil {
		return nil
	}
	err := p.lease.Release()
	p.lease = nil
	return err
}

// Resolve returns the color a background paints with as "#rrggbb", or
// fallback if it has none that parses.
func Resolve(b Background, fallback string) string {
	var s string
	switch v := b.(type) {
	case Color:
		s = v.Value
	case Image:
		s = v.Tint
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return fallback
	}
	return c.Hex()
}
