package types

// Position is a point on the virtual canvas.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Size is a width/height pair in canvas units.
type Size struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Rect is an axis-aligned rectangle on the virtual canvas.
type Rect struct {
	Position
	Size
}

// Right returns the exclusive right edge.
func (r Rect) Right() int { return r.X + r.Width }

// Bottom returns the exclusive bottom edge.
func (r Rect) Bottom() int { return r.Y + r.Height }

// Intersects reports whether two rectangles overlap.
func (r Rect) Intersects(o Rect) bool {
	return r.X < o.Right() && o.X < r.Right() &&
		r.Y < o.Bottom() && o.Y < r.Bottom()
}

// Contains reports whether o lies entirely inside r.
func (r Rect) Contains(o Rect) bool {
	return o.X >= r.X && o.Y >= r.Y && o.Right() <= r.Right() && o.Bottom() <= r.Bottom()
}

// Translate returns the rectangle shifted by dx, dy.
func (r Rect) Translate(dx, dy int) Rect {
	r.X += dx
	r.Y += dy
	return r
}

// Clamp limits s into [min, max] componentwise. Nil bounds are open ends.
// Width and height never go below zero.
func (s Size) Clamp(min, max *Size) Size {
	out := s
	if min != nil {
		if out.Width < min.Width {
			out.Width = min.Width
		}
		if out.Height < min.Height {
			out.Height = min.Height
		}
	}
	if max != nil {
		if max.Width > 0 && out.Width > max.Width {
			out.Width = max.Width
		}
		if max.Height > 0 && out.Height > max.Height {
			out.Height = max.Height
		}
	}
	if out.Width < 0 {
		out.Width = 0
	}
	if out.Height < 0 {
		out.Height = 0
	}
	return out
}
