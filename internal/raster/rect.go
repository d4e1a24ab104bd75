package raster

import "image"

// Rect is a half-open cell rectangle [X0,X1)×[Y0,Y1).
type Rect struct {
	X0, Y0, X1, Y1 int
}

// RectFromPoints returns the rectangle spanned inclusively by two corners.
func RectFromPoints(a, b image.Point) Rect {
	r := Rect{X0: a.X, Y0: a.Y, X1: b.X, Y1: b.Y}
	if r.X0 > r.X1 {
		r.X0, r.X1 = r.X1, r.X0
	}
	if r.Y0 > r.Y1 {
		r.Y0, r.Y1 = r.Y1, r.Y0
	}
	r.X1++
	r.Y1++
	return r
}

// Dx returns the width.
func (r Rect) Dx() int { return r.X1 - r.X0 }

// Dy returns the height.
func (r Rect) Dy() int { return r.Y1 - r.Y0 }

// Empty reports whether the rectangle contains no cells.
func (r Rect) Empty() bool {
	return r.X0 >= r.X1 || r.Y0 >= r.Y1
}

// Contains reports whether (x, y) lies inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X0 && x < r.X1 && y >= r.Y0 && y < r.Y1
}

// Intersect returns the largest rectangle contained by both r and s.
func (r Rect) Intersect(s Rect) Rect {
	r.X0 = max(r.X0, s.X0)
	r.Y0 = max(r.Y0, s.Y0)
	r.X1 = min(r.X1, s.X1)
	r.Y1 = min(r.Y1, s.Y1)
	if r.Empty() {
		return Rect{}
	}
	return r
}

// Add translates r by (dx, dy).
func (r Rect) Add(dx, dy int) Rect {
	return Rect{r.X0 + dx, r.Y0 + dy, r.X1 + dx, r.Y1 + dy}
}

// Image converts to an image.Rectangle.
func (r Rect) Image() image.Rectangle {
	return image.Rect(r.X0, r.Y0, r.X1, r.Y1)
}
