package dial

import "math"

// Layout constants, in terminal cells.
const (
	// StepX is the horizontal offset per unit of signed distance.
	StepX = 8
	// StepY is the vertical offset per unit of squared distance.
	StepY = 1

	// ScaleDecay and OpacityDecay are subtracted per unit of distance.
	ScaleDecay   = 0.15
	OpacityDecay = 0.3

	MinScale   = 0.5
	MinOpacity = 0.0

	// BaseZ is the stacking order of the selected entry.
	BaseZ = 100
)

// Transform describes where and how a single dial entry is drawn relative
// to the selected entry.
type Transform struct {
	Index       int     `json:"index"`
	Distance    int     `json:"distance"`
	OffsetX     int     `json:"offset_x"`
	OffsetY     int     `json:"offset_y"`
	Scale       float64 `json:"scale"`
	Opacity     float64 `json:"opacity"`
	Z           int     `json:"z"`
	Interactive bool    `json:"interactive"`
}

// Visible reports whether the entry is drawn at all.
func (t Transform) Visible() bool {
	return t.Opacity > 0
}

// Layout maps an entry index and the selected index to its transform. The
// horizontal offset is linear in the signed distance, the vertical offset is
// quadratic, and scale and opacity decay linearly down to their floors. Only
// the selected entry and its direct neighbours are interactive.
func Layout(index, selected int) Transform {
	d := index - selected
	ad := d
	if ad < 0 {
		ad = -ad
	}

	return Transform{
		Index:       index,
		Distance:    d,
		OffsetX:     d * StepX,
		OffsetY:     ad * ad * StepY,
		Scale:       round2(math.Max(MinScale, 1-ScaleDecay*float64(ad))),
		Opacity:     round2(math.Max(MinOpacity, 1-OpacityDecay*float64(ad))),
		Z:           BaseZ - ad,
		Interactive: ad <= 1,
	}
}

// LayoutAll returns transforms for every entry of a sequence of length n.
func LayoutAll(n, selected int) []Transform {
	out := make([]Transform, n)
	for i := range out {
		out[i] = Layout(i, selected)
	}
	return out
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
