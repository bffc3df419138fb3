package common

// Rect is an axis-aligned rectangle in screen space (y grows downward).
type Rect struct {
	X float64
	Y float64
	W float64
	H float64
}

func NewRect(x, y, w, h float64) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// RectFromCenter builds a rect of size w x h centered on (cx, cy).
func RectFromCenter(cx, cy, w, h float64) Rect {
	return Rect{X: cx - w/2, Y: cy - h/2, W: w, H: h}
}

// RectFromMidBottom builds a rect whose bottom edge is centered on (cx, bottom).
func RectFromMidBottom(cx, bottom, w, h float64) Rect {
	return Rect{X: cx - w/2, Y: bottom - h, W: w, H: h}
}

func (r Rect) Left() float64    { return r.X }
func (r Rect) Right() float64   { return r.X + r.W }
func (r Rect) Top() float64     { return r.Y }
func (r Rect) Bottom() float64  { return r.Y + r.H }
func (r Rect) CenterX() float64 { return r.X + r.W/2 }
func (r Rect) CenterY() float64 { return r.Y + r.H/2 }

func (r Rect) Center() (float64, float64) {
	return r.CenterX(), r.CenterY()
}

// WithCenter returns r moved so its center sits at (cx, cy).
func (r Rect) WithCenter(cx, cy float64) Rect {
	r.X = cx - r.W/2
	r.Y = cy - r.H/2
	return r
}

// Resized returns a w x h rect sharing r's center.
func (r Rect) Resized(w, h float64) Rect {
	return RectFromCenter(r.CenterX(), r.CenterY(), w, h)
}

func (r Rect) Offset(dx, dy float64) Rect {
	r.X += dx
	r.Y += dy
	return r
}

// Inset shrinks the rect by dx on the left and right and dy on the top and bottom.
func (r Rect) Inset(dx, dy float64) Rect {
	return Rect{X: r.X + dx, Y: r.Y + dy, W: r.W - 2*dx, H: r.H - 2*dy}
}

// IsZero reports whether the rect has no area.
func (r Rect) IsZero() bool {
	return r.W <= 0 || r.H <= 0
}

// Intersects reports a strict overlap; touching edges do not count.
func (r Rect) Intersects(o Rect) bool {
	if r.IsZero() || o.IsZero() {
		return false
	}
	return r.X < o.X+o.W && o.X < r.X+r.W && r.Y < o.Y+o.H && o.Y < r.Y+r.H
}

// ContainsPoint is inclusive on every edge.
func (r Rect) ContainsPoint(x, y float64) bool {
	if r.IsZero() {
		return false
	}
	return x >= r.X && x <= r.X+r.W && y >= r.Y && y <= r.Y+r.H
}

// Union returns the smallest rect covering both.
func (r Rect) Union(o Rect) Rect {
	if r.IsZero() {
		return o
	}
	if o.IsZero() {
		return r
	}
	left := min(r.X, o.X)
	top := min(r.Y, o.Y)
	right := max(r.Right(), o.Right())
	bottom := max(r.Bottom(), o.Bottom())
	return Rect{X: left, Y: top, W: right - left, H: bottom - top}
}
