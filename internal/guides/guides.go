// Package guides produces the presentation-only overlay drawn over the
// canvas: grid lines, the NFT safe margin, center cross, proportion boxes
// and the highlighted character section. Nothing here touches pixel data,
// and the overlay is never exported.
package guides

import (
	"github.com/ha1tch/deluxepixel/internal/document"
	"github.com/ha1tch/deluxepixel/internal/raster"
)

// Kind identifies what an overlay primitive represents.
type Kind int

const (
	GridLine Kind = iota
	MarginBox
	CenterCross
	ProportionBox
	SectionBox
	SectionCorner
)

// Primitive is an overlay line or rectangle outline in logical cell
// coordinates. Lines run from (X0,Y0) to (X1,Y1); boxes use the same fields
// as corners of a half-open rectangle.
type Primitive struct {
	Kind   Kind
	Box    bool
	X0, Y0 float64
	X1, Y1 float64
	Color  raster.Color
}

// Overlay colors
var (
	GridColor       = raster.Color{R: 255, G: 255, B: 255, A: 40}
	MarginColor     = raster.Color{R: 0, G: 200, B: 255, A: 160}
	CenterColor     = raster.Color{R: 255, G: 80, B: 80, A: 160}
	ProportionColor = raster.Color{R: 255, G: 220, B: 0, A: 110}
)

// Options selects which overlays to produce.
type Options struct {
	ShowGrid   bool
	ShowGuides bool
	GridStep   int      // grid spacing in cells; 0 means 1
	Active     *Section // highlighted section, or nil
}

// Render returns the overlay for a canvas. It is a pure function of its
// arguments.
func Render(c document.Canvas, opts Options) []Primitive {
	var out []Primitive
	w, h := float64(c.Width), float64(c.Height)

	if opts.ShowGrid {
		step := opts.GridStep
		if step <= 0 {
			step = 1
		}
		for x := step; x < c.Width; x += step {
			out = append(out, Primitive{Kind: GridLine, X0: float64(x), Y0: 0, X1: float64(x), Y1: h, Color: GridColor})
		}
		for y := step; y < c.Height; y += step {
			out = append(out, Primitive{Kind: GridLine, X0: 0, Y0: float64(y), X1: w, Y1: float64(y), Color: GridColor})
		}
	}

	if opts.ShowGuides {
		mx, my := w/16, h/16
		out = append(out, Primitive{Kind: MarginBox, Box: true, X0: mx, Y0: my, X1: w - mx, Y1: h - my, Color: MarginColor})

		cx, cy := float64(c.Width/2), float64(c.Height/2)
		out = append(out,
			Primitive{Kind: CenterCross, X0: cx, Y0: 0, X1: cx, Y1: h, Color: CenterColor},
			Primitive{Kind: CenterCross, X0: 0, Y0: cy, X1: w, Y1: cy, Color: CenterColor},
		)

		short := min(w, h)
		for _, f := range []float64{0.5, 0.75} {
			s := short * f
			out = append(out, Primitive{
				Kind: ProportionBox, Box: true,
				X0: (w - s) / 2, Y0: (h - s) / 2,
				X1: (w + s) / 2, Y1: (h + s) / 2,
				Color: ProportionColor,
			})
		}
	}

	if s := opts.Active; s != nil && !s.Area.Empty() {
		out = append(out, sectionPrimitives(s)...)
	}
	return out
}

func sectionPrimitives(s *Section) []Primitive {
	r := s.Area
	x0, y0, x1, y1 := float64(r.X0), float64(r.Y0), float64(r.X1), float64(r.Y1)
	out := []Primitive{{Kind: SectionBox, Box: true, X0: x0, Y0: y0, X1: x1, Y1: y1, Color: s.Color}}

	// L-shaped markers, a quarter of the short side long.
	m := float64(min(r.Dx(), r.Dy())) / 4
	corners := []struct{ x, y, dx, dy float64 }{
		{x0, y0, 1, 1},
		{x1, y0, -1, 1},
		{x0, y1, 1, -1},
		{x1, y1, -1, -1},
	}
	for _, c := range corners {
		out = append(out,
			Primitive{Kind: SectionCorner, X0: c.x, Y0: c.y, X1: c.x + c.dx*m, Y1: c.y, Color: s.Color},
			Primitive{Kind: SectionCorner, X0: c.x, Y0: c.y, X1: c.x, Y1: c.y + c.dy*m, Color: s.Color},
		)
	}
	return out
}
