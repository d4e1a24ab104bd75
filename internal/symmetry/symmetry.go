// Package symmetry computes the mirrored cells of a painted cell.
//
// The mirror center is taken in logical cell space as cx = w/2, cy = h/2
// (integer division). A cell x reflects to 2*cx - x, so on a 512 wide canvas
// column 10 reflects to 502 and column 0 reflects to 512, which lies outside
// the canvas and is dropped. A cell that is itself off the canvas yields no
// cells at all, so a primitive clipped at one edge never reappears at the
// opposite edge.
package symmetry

import (
	"fmt"
	"image"
	"strings"
)

// Axis selects the reflection mode.
type Axis int

const (
	Vertical   Axis = iota // reflect across the vertical center line (x)
	Horizontal             // reflect across the horizontal center line (y)
	Both
)

var axisNames = []string{"vertical", "horizontal", "both"}

func (a Axis) String() string {
	if int(a) >= 0 && int(a) < len(axisNames) {
		return axisNames[a]
	}
	return fmt.Sprintf("Axis(%d)", int(a))
}

// ParseAxis parses "vertical", "horizontal" or "both".
func ParseAxis(s string) (Axis, error) {
	for i, n := range axisNames {
		if strings.EqualFold(s, n) {
			return Axis(i), nil
		}
	}
	return 0, fmt.Errorf("unknown symmetry axis %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (a Axis) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *Axis) UnmarshalText(b []byte) error {
	v, err := ParseAxis(string(b))
	if err != nil {
		return err
	}
	*a = v
	return nil
}

// Center returns the mirror center of a w×h canvas.
func Center(w, h int) (cx, cy int) {
	return w / 2, h / 2
}

// Mirror returns (x, y) followed by its reflections for axis, keeping only
// cells inside [0,w)×[0,h) and dropping duplicates. The original point is
// always first. An out-of-bounds original returns nil.
func Mirror(x, y int, axis Axis, w, h int) []image.Point {
	if x < 0 || x >= w || y < 0 || y >= h {
		return nil
	}
	cx, cy := Center(w, h)
	mx, my := 2*cx-x, 2*cy-y

	var cand []image.Point
	switch axis {
	case Vertical:
		cand = []image.Point{{x, y}, {mx, y}}
	case Horizontal:
		cand = []image.Point{{x, y}, {x, my}}
	case Both:
		cand = []image.Point{{x, y}, {mx, y}, {x, my}, {mx, my}}
	default:
		cand = []image.Point{{x, y}}
	}

	out := cand[:0]
	for _, p := range cand {
		if p.X < 0 || p.X >= w || p.Y < 0 || p.Y >= h {
			continue
		}
		dup := false
		for _, q := range out {
			if q == p {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, p)
		}
	}
	return out
}

// Points is Mirror with symmetry switched on or off. When disabled only the
// in-bounds original is returned.
func Points(x, y int, enabled bool, axis Axis, w, h int) []image.Point {
	if !enabled {
		if x < 0 || x >= w || y < 0 || y >= h {
			return nil
		}
		return []image.Point{{x, y}}
	}
	return Mirror(x, y, axis, w, h)
}
