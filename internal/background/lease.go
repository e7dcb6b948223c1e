package background

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"

	"github.com/lucasb-eyer/go-colorful"
)

// maxSamples bounds how many pixels are averaged per image.
const maxSamples = 4096

// Lease keeps a user-selected image file open while it is the active
// background.
type Lease struct {
	Path string
	Tint string
	file *os.File
}

// OpenImage opens the file at path and samples its average color. Files that
// are not decodable images are rejected.
func OpenImage(path string) (*Lease, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening background image: %w", err)
	}

	img, _, err := image.Decode(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("decoding background image: %w", err)
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		f.Close()
		return nil, fmt.Errorf("rewinding background image: %w", err)
	}

	return &Lease{Path: path, Tint: averageColor(img).Hex(), file: f}, nil
}

// Release closes the file. Calling it more than once is a no-op.
func (l *Lease) Release() error {
	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	return err
}

// Open reports whether the file is still held.
func (l *Lease) Open() bool {
	return l.file != nil
}

func averageColor(img image.Image) colorful.Color {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return colorful.Color{}
	}

	stride := 1
	for (w/stride)*(h/stride) > maxSamples {
		stride++
	}

	var r, g, bl float64
	n := 0
	for y := b.Min.Y; y < b.Max.Y; y += stride {
		for x := b.Min.X; x < b.Max.X; x += stride {
			c, ok := colorful.MakeColor(img.At(x, y))
			if !ok {
				continue
			}
			r += c.R
			g += c.G
			bl += c.B
			n++
		}
	}
	if n == 0 {
		return colorful.Color{}
	}
	return colorful.Color{R: r / float64(n), G: g / float64(n), B: bl / float64(n)}
}
