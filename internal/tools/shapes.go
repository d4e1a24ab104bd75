package tools

import (
	"image"
	"math"

	"github.com/ha1tch/deluxepixel/internal/raster"
)

// LinePoints returns the cells of a one cell wide line from a to b
// (Bresenham), both ends included.
func LinePoints(a, b image.Point) []image.Point {
	dx := abs(b.X - a.X)
	dy := -abs(b.Y - a.Y)
	sx, sy := 1, 1
	if a.X > b.X {
		sx = -1
	}
	if a.Y > b.Y {
		sy = -1
	}
	err := dx + dy

	pts := make([]image.Point, 0, max(dx, -dy)+1)
	x, y := a.X, a.Y
	for {
		pts = append(pts, image.Pt(x, y))
		if x == b.X && y == b.Y {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x += sx
		}
		if e2 <= dx {
			err += dx
			y += sy
		}
	}
	return pts
}

// RectPoints returns the outline, or every cell when filled, of the
// rectangle spanned inclusively by a and b.
func RectPoints(a, b image.Point, filled bool) []image.Point {
	r := raster.RectFromPoints(a, b)
	var pts []image.Point
	if filled {
		pts = make([]image.Point, 0, r.Dx()*r.Dy())
		for y := r.Y0; y < r.Y1; y++ {
			for x := r.X0; x < r.X1; x++ {
				pts = append(pts, image.Pt(x, y))
			}
		}
		return pts
	}
	x1, y1 := r.X1-1, r.Y1-1
	for x := r.X0; x <= x1; x++ {
		pts = append(pts, image.Pt(x, r.Y0))
		if y1 != r.Y0 {
			pts = append(pts, image.Pt(x, y1))
		}
	}
	for y := r.Y0 + 1; y < y1; y++ {
		pts = append(pts, image.Pt(r.X0, y))
		if x1 != r.X0 {
			pts = append(pts, image.Pt(x1, y))
		}
	}
	return pts
}

// Radius returns the rounded distance between the center and a point on
// the circle.
func Radius(center, through image.Point) int {
	dx := float64(through.X - center.X)
	dy := float64(through.Y - center.Y)
	return int(math.Round(math.Hypot(dx, dy)))
}

// CirclePoints returns the outline of a circle of radius r around c using
// the midpoint circle algorithm. Each cell appears once.
func CirclePoints(c image.Point, r int) []image.Point {
	if r <= 0 {
		return []image.Point{c}
	}
	seen := make(map[image.Point]bool)
	var pts []image.Point
	plot := func(x, y int) {
		p := image.Pt(c.X+x, c.Y+y)
		if !seen[p] {
			seen[p] = true
			pts = append(pts, p)
		}
	}

	x, y := r, 0
	err := 1 - r
	for x >= y {
		plot(x, y)
		plot(y, x)
		plot(-y, x)
		plot(-x, y)
		plot(-x, -y)
		plot(-y, -x)
		plot(y, -x)
		plot(x, -y)
		y++
		if err < 0 {
			err += 2*y + 1
		} else {
			x--
			err += 2*(y-x) + 1
		}
	}
	return pts
}

// FloodRegion returns the 4-connected region of cells sharing the exact
// color of (x, y) in b, along with the number of cells visited. Each cell is
// visited at most once, so visited never exceeds the buffer area.
func FloodRegion(b *raster.Buffer, x, y int) (region []image.Point, visited int) {
	if !b.InBounds(x, y) {
		return nil, 0
	}
	w, h := b.Width(), b.Height()
	start := b.At(x, y)
	seen := make([]bool, w*h)
	stack := []int{y*w + x}
	for len(stack) > 0 {
		i := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if seen[i] {
			continue
		}
		seen[i] = true
		visited++

		cx, cy := i%w, i/w
		if b.At(cx, cy) != start {
			continue
		}
		region = append(region, image.Pt(cx, cy))
		if cx > 0 && !seen[i-1] {
			stack = append(stack, i-1)
		}
		if cx < w-1 && !seen[i+1] {
			stack = append(stack, i+1)
		}
		if cy > 0 && !seen[i-w] {
			stack = append(stack, i-w)
		}
		if cy < h-1 && !seen[i+w] {
			stack = append(stack, i+w)
		}
	}
	return region, visited
}

func abs(a int) int {
	if a < 0 {
		return -a
	}
	return a
}
