package render

// State is the opaque per-frame value an effect's Pre hands to Main and
// Post.
type State any

// Effect renders in three phases. Pre runs once per frame and returns
// shared state; Main runs per cell, row by row; Post runs once over the
// finished grid.
//
// Main's second return reports whether the cell was produced. A false
// return leaves the existing cell untouched, which lets sparse effects
// skip most of the grid.
type Effect interface {
	Pre(ctx *Context, g *Grid) State
	Main(x, y int, ctx *Context, st State) (Cell, bool)
	Post(ctx *Context, g *Grid, st State)
}

// NopPrePost provides no-op Pre and Post for effects that only need
// Main. Embed it and override what you need.
type NopPrePost struct{}

func (NopPrePost) Pre(*Context, *Grid) State   { return nil }
func (NopPrePost) Post(*Context, *Grid, State) {}

// Run renders one frame of e into a fresh grid. Phase order is fixed:
// Pre, then Main for every cell with y outer and x inner, then Post.
func Run(e Effect, ctx *Context) *Grid {
	g := NewGrid(ctx.Width, ctx.Height)
	RunInto(e, ctx, g)
	return g
}

// RunInto renders into an existing grid, which must match the context
// dimensions. The grid is not cleared first; callers reusing a buffer
// across frames clear it themselves when the effect is sparse.
func RunInto(e Effect, ctx *Context, g *Grid) {
	st := e.Pre(ctx, g)
	for y := 0; y < ctx.Height; y++ {
		for x := 0; x < ctx.Width; x++ {
			if c, ok := e.Main(x, y, ctx, st); ok {
				g.Set(x, y, c)
			}
		}
	}
	e.Post(ctx, g, st)
}
