package viewport

// Lookahead is the number of lines kept visible below the active line.
const Lookahead = 2

// Container is the visible area: its height and current scroll offset.
type Container struct {
	Height    float64
	ScrollTop float64
}

// State is a derived caret and scroll position.
type State struct {
	ScrollOffset float64
	CaretX       float64
	CaretY       float64
	CaretHeight  float64
}

// Position places the caret at the glyph at cursor, or after the last glyph
// when cursor is at the passage end, and returns the scroll offset that
// keeps the caret visible with Lookahead lines below it. It returns false
// when the geometry or the container has not been measured.
func Position(g Geometry, cursor int, c Container) (State, bool) {
	if !g.Measured() || c.Height <= 0 {
		return State{}, false
	}
	if cursor < 0 {
		cursor = 0
	}

	var st State
	if cursor < len(g.Glyphs) {
		glyph := g.Glyphs[cursor]
		st.CaretX, st.CaretY, st.CaretHeight = glyph.X, glyph.Y, glyph.H
	} else {
		last := g.Glyphs[len(g.Glyphs)-1]
		st.CaretX, st.CaretY, st.CaretHeight = last.Right(), last.Y, last.H
	}

	scroll := c.ScrollTop
	top := st.CaretY
	bottom := st.CaretY + st.CaretHeight
	limit := scroll + c.Height - Lookahead*g.LineHeight
	if bottom > limit {
		scroll += bottom - limit
	}
	if top < scroll {
		scroll = top
	}
	st.ScrollOffset = clamp(scroll, 0, g.Height-c.Height)
	return st, true
}

func clamp(v, lo, hi float64) float64 {
	if hi < lo {
		hi = lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
