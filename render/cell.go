package render

// GradientLevels is the number of character density steps a cell index
// can address. Indexes run 0 (empty) through GradientLevels-1 (solid).
const GradientLevels = 10

// Cell is one grid position: a density index plus foreground and
// optional background colors. Cell is a value type; copying one never
// aliases another.
type Cell struct {
	Index int
	Fg    RGB
	Bg    RGB
	BgSet bool
}

// WithBg returns a copy of c with the background set.
func (c Cell) WithBg(bg RGB) Cell {
	c.Bg = bg
	c.BgSet = true
	return c
}

// clampIndex keeps an index addressable in a 10-step gradient.
func clampIndex(idx int) int {
	if idx < 0 {
		return 0
	}
	if idx > GradientLevels-1 {
		return GradientLevels - 1
	}
	return idx
}

// CellFromValue builds a cell from a scalar in [0, 1]: density index
// and gray foreground.
func CellFromValue(v float64) Cell {
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	return Cell{
		Index: clampIndex(int(v * float64(GradientLevels-1))),
		Fg:    Gray(v),
	}
}
