// Package tools turns pointer strokes into layer edits.
//
// A stroke runs from Down to Up. Every single-cell write a tool makes goes
// through the symmetry mirror and lands on the layer that was active when
// the stroke began. Writes to a locked layer are dropped.
package tools

import (
	"image"

	"github.com/ha1tch/deluxepixel/internal/document"
	"github.com/ha1tch/deluxepixel/internal/raster"
	"github.com/ha1tch/deluxepixel/internal/symmetry"
)

// Result summarises a finished stroke.
type Result struct {
	Tool    Tool
	Changed bool // at least one cell changed
	Cells   int  // number of cell writes that changed a cell
	Sampled bool // the eyedropper picked a new color
}

// Sampler reads the composited image.
type Sampler func(x, y int) raster.Color

// Dispatcher is the tool state machine. It is not safe for concurrent use.
type Dispatcher struct {
	State *State

	// Sample reads the flattened image for the eyedropper. When nil the
	// document is composited on demand.
	Sample Sampler

	doc     *document.Document
	layer   *document.Layer
	tool    Tool
	active  bool
	anchor  image.Point
	last    image.Point
	cells   int
	sampled bool
	touched []bool

	sel      raster.Rect
	hasSel   bool
	floating *raster.Buffer // cells lifted by the move tool, sel-sized
	moving   bool
}

// NewDispatcher creates a dispatcher reading its tool settings from st.
func NewDispatcher(st *State) *Dispatcher {
	return &Dispatcher{State: st}
}

// Active reports whether a stroke is in progress.
func (d *Dispatcher) Active() bool { return d.active }

// Selection returns the current selection rectangle.
func (d *Dispatcher) Selection() (raster.Rect, bool) { return d.sel, d.hasSel }

// SetSelection replaces the selection; an empty rectangle clears it.
func (d *Dispatcher) SetSelection(r raster.Rect) {
	d.sel = r
	d.hasSel = !r.Empty()
}

// ClearSelection drops the selection.
func (d *Dispatcher) ClearSelection() {
	d.sel = raster.Rect{}
	d.hasSel = false
}

// Down starts a stroke at cell p. A stroke still open is finished first and
// its result returned.
func (d *Dispatcher) Down(doc *document.Document, p image.Point) (prev Result, hadPrev bool) {
	if d.active {
		prev, hadPrev = d.Cancel(), true
	}
	d.doc = doc
	d.layer = doc.Active()
	d.tool = d.State.Tool
	d.active = true
	d.anchor, d.last = p, p
	d.cells = 0
	d.sampled = false
	d.touched = nil
	d.moving = false

	switch d.tool {
	case Pencil:
		d.plot(p, d.State.Color)
	case Brush:
		d.touched = make([]bool, doc.Canvas.Width*doc.Canvas.Height)
		d.stamp(p)
	case Eraser:
		d.stamp(p)
	case Fill:
		d.fill(p)
	case Eyedropper:
		d.sample(p)
	case Move:
		d.lift(p)
	}
	return prev, hadPrev
}

// Move continues the stroke to cell p.
func (d *Dispatcher) Move(p image.Point) {
	if !d.active {
		return
	}
	switch d.tool {
	case Pencil:
		for _, q := range LinePoints(d.last, p)[1:] {
			d.plot(q, d.State.Color)
		}
	case Brush, Eraser:
		for _, q := range LinePoints(d.last, p)[1:] {
			d.stamp(q)
		}
	}
	d.last = p
}

// Up ends the stroke at cell p.
func (d *Dispatcher) Up(p image.Point) Result {
	if !d.active {
		return Result{Tool: d.State.Tool}
	}
	d.Move(p)
	switch d.tool {
	case Line:
		for _, q := range LinePoints(d.anchor, p) {
			d.plot(q, d.State.Color)
		}
	case Rectangle:
		for _, q := range RectPoints(d.anchor, p, d.State.FillShapes) {
			d.plot(q, d.State.Color)
		}
	case Circle:
		for _, q := range CirclePoints(d.anchor, Radius(d.anchor, p)) {
			d.plot(q, d.State.Color)
		}
	case Select:
		d.SetSelection(raster.RectFromPoints(d.anchor, p).Intersect(d.doc.Canvas.Bounds()))
	case Move:
		d.drop(p)
	}
	return d.finish()
}

// Cancel ends the stroke without applying pending shape, selection or move
// drags. Freehand edits already applied stay and are reported.
func (d *Dispatcher) Cancel() Result {
	if !d.active {
		return Result{Tool: d.State.Tool}
	}
	d.moving = false
	d.floating = nil
	return d.finish()
}

func (d *Dispatcher) finish() Result {
	r := Result{Tool: d.tool, Changed: d.cells > 0, Cells: d.cells, Sampled: d.sampled}
	d.active = false
	d.doc = nil
	d.layer = nil
	d.touched = nil
	return r
}

// Preview returns the cells the pending shape would cover if the pointer
// were released at the last sampled position. It is empty for other tools.
func (d *Dispatcher) Preview() []image.Point {
	if !d.active {
		return nil
	}
	switch d.tool {
	case Line:
		return LinePoints(d.anchor, d.last)
	case Rectangle:
		return RectPoints(d.anchor, d.last, d.State.FillShapes)
	case Circle:
		return CirclePoints(d.anchor, Radius(d.anchor, d.last))
	case Select:
		return RectPoints(d.anchor, d.last, false)
	case Move:
		if d.moving {
			r := d.sel.Add(d.last.X-d.anchor.X, d.last.Y-d.anchor.Y)
			return RectPoints(image.Pt(r.X0, r.Y0), image.Pt(r.X1-1, r.Y1-1), false)
		}
	}
	return nil
}

func (d *Dispatcher) mirrored(p image.Point) []image.Point {
	c := d.doc.Canvas
	return symmetry.Points(p.X, p.Y, d.State.SymmetryEnabled, d.State.Axis, c.Width, c.Height)
}

// plot writes c at p and each of its mirrored cells.
func (d *Dispatcher) plot(p image.Point, c raster.Color) {
	for _, q := range d.mirrored(p) {
		if d.layer.Set(q.X, q.Y, c) {
			d.cells++
		}
	}
}

// stamp applies a BrushSize square anchored top-left at p. The brush blends
// each cell at most once per stroke so overlapping stamps do not build up.
func (d *Dispatcher) stamp(p image.Point) {
	n := ClampBrushSize(d.State.BrushSize)
	w := d.doc.Canvas.Width
	for y := p.Y; y < p.Y+n; y++ {
		for x := p.X; x < p.X+n; x++ {
			for _, q := range d.mirrored(image.Pt(x, y)) {
				if d.tool == Eraser {
					if d.layer.Erase(q.X, q.Y) {
						d.cells++
					}
					continue
				}
				i := q.Y*w + q.X
				if d.touched[i] {
					continue
				}
				d.touched[i] = true
				if d.layer.Blend(q.X, q.Y, d.State.Color, d.State.BrushAlpha) {
					d.cells++
				}
			}
		}
	}
}

// fill floods from p and from each mirrored seed. Every seed fills its own
// region so a fill never leaks across a differently colored border.
func (d *Dispatcher) fill(p image.Point) {
	if d.layer.Locked {
		return
	}
	c := d.State.Color
	for _, seed := range d.mirrored(p) {
		if d.layer.At(seed.X, seed.Y) == c {
			continue
		}
		region, _ := FloodRegion(d.layer.Buffer, seed.X, seed.Y)
		for _, q := range region {
			if d.layer.Set(q.X, q.Y, c) {
				d.cells++
			}
		}
	}
}

func (d *Dispatcher) sample(p image.Point) {
	if !d.doc.Canvas.Contains(p.X, p.Y) {
		return
	}
	var c raster.Color
	if d.Sample != nil {
		c = d.Sample(p.X, p.Y)
	} else {
		c = document.Composite(d.doc).At(p.X, p.Y)
	}
	if c.A == 0 {
		return
	}
	d.State.Color = c
	d.sampled = true
}

// lift starts dragging the selection when p lies inside it.
func (d *Dispatcher) lift(p image.Point) {
	if !d.hasSel || !d.sel.Contains(p.X, p.Y) || d.layer.Locked {
		return
	}
	d.floating = raster.NewBuffer(d.sel.Dx(), d.sel.Dy())
	for y := d.sel.Y0; y < d.sel.Y1; y++ {
		for x := d.sel.X0; x < d.sel.X1; x++ {
			d.floating.Set(x-d.sel.X0, y-d.sel.Y0, d.layer.At(x, y))
		}
	}
	d.moving = true
}

// drop cuts the lifted cells from the selection and pastes them at the
// drag offset. The selection follows the pasted cells.
func (d *Dispatcher) drop(p image.Point) {
	if !d.moving {
		return
	}
	d.moving = false
	dx, dy := p.X-d.anchor.X, p.Y-d.anchor.Y
	if dx == 0 && dy == 0 {
		d.floating = nil
		return
	}
	src := d.sel
	for y := src.Y0; y < src.Y1; y++ {
		for x := src.X0; x < src.X1; x++ {
			d.plot(image.Pt(x, y), raster.Transparent)
		}
	}
	for y := src.Y0; y < src.Y1; y++ {
		for x := src.X0; x < src.X1; x++ {
			d.plot(image.Pt(x+dx, y+dy), d.floating.At(x-src.X0, y-src.Y0))
		}
	}
	d.floating = nil
	d.SetSelection(src.Add(dx, dy).Intersect(d.doc.Canvas.Bounds()))
}
