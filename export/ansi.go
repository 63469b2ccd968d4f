package export

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/lixenwraith/moodgrid/palette"
	"github.com/lixenwraith/moodgrid/render"
)

const sgrReset = "\x1b[0m"

// writeCellSGR emits one cell as a combined SGR sequence plus its
// gradient rune. Emitting the full sequence per cell avoids color
// state leaking between cells.
func writeCellSGR(sb *strings.Builder, c render.Cell, gradient string) {
	sb.WriteString("\x1b[38;2;")
	sb.WriteString(strconv.Itoa(int(c.Fg.R)))
	sb.WriteByte(';')
	sb.WriteString(strconv.Itoa(int(c.Fg.G)))
	sb.WriteByte(';')
	sb.WriteString(strconv.Itoa(int(c.Fg.B)))
	if c.BgSet {
		sb.WriteString(";48;2;")
		sb.WriteString(strconv.Itoa(int(c.Bg.R)))
		sb.WriteByte(';')
		sb.WriteString(strconv.Itoa(int(c.Bg.G)))
		sb.WriteByte(';')
		sb.WriteString(strconv.Itoa(int(c.Bg.B)))
	}
	sb.WriteByte('m')
	sb.WriteRune(palette.CharForIndex(c.Index, gradient))
}

// ANSI renders the grid as truecolor terminal text, one line per row,
// reset at each line end.
func ANSI(g *render.Grid, gradient string) string {
	var sb strings.Builder
	sb.Grow(g.Width() * g.Height() * 24)
	for y := 0; y < g.Height(); y++ {
		for x := 0; x < g.Width(); x++ {
			writeCellSGR(&sb, g.At(x, y), gradient)
		}
		sb.WriteString(sgrReset)
		sb.WriteByte('\n')
	}
	return sb.String()
}

// WriteANSI writes the truecolor rendering to w.
func WriteANSI(w io.Writer, g *render.Grid, gradient string) error {
	if _, err := io.WriteString(w, ANSI(g, gradient)); err != nil {
		return fmt.Errorf("export: write ansi: %w", err)
	}
	return nil
}
