// Package document models a layered pixel-art canvas.
//
// A Document always holds at least one layer and exactly one active layer.
// Layer order is the composite order: Order 0 is the bottom. Orders are
// renumbered 0..n-1 after every structural change so they stay unique.
package document

import (
	"fmt"
	"sort"

	"github.com/ha1tch/deluxepixel/internal/raster"
)

// Canvas is the fixed logical size of a document.
type Canvas struct {
	Width  int
	Height int
}

// DefaultCanvas is the token-art canvas size.
var DefaultCanvas = Canvas{Width: 512, Height: 512}

// MaxSide bounds each canvas dimension so a single layer stays under 64 MiB.
const MaxSide = 4096

// Valid reports whether both sides are within 1..MaxSide.
func (c Canvas) Valid() bool {
	return c.Width > 0 && c.Height > 0 && c.Width <= MaxSide && c.Height <= MaxSide
}

// Bounds returns the canvas rectangle.
func (c Canvas) Bounds() raster.Rect {
	return raster.Rect{X0: 0, Y0: 0, X1: c.Width, Y1: c.Height}
}

// Contains reports whether (x, y) is a cell of the canvas.
func (c Canvas) Contains(x, y int) bool {
	return x >= 0 && x < c.Width && y >= 0 && y < c.Height
}

// Document is the editable artwork.
type Document struct {
	Canvas   Canvas
	Layers   []*Layer // kept sorted by Order
	ActiveID int

	nextID int
}

// New creates a document with a single transparent "Background" layer.
func New(width, height int) *Document {
	d := &Document{Canvas: Canvas{Width: width, Height: height}}
	l := d.newLayer("Background")
	d.Layers = []*Layer{l}
	d.ActiveID = l.ID
	return d
}

// FromLayers builds a document around existing layers. Layers are sorted by
// their Order field; an empty list yields a single background layer.
func FromLayers(canvas Canvas, layers []*Layer, activeID int) *Document {
	d := &Document{Canvas: canvas}
	if len(layers) == 0 {
		return New(canvas.Width, canvas.Height)
	}
	d.Layers = append([]*Layer(nil), layers...)
	sort.SliceStable(d.Layers, func(i, j int) bool { return d.Layers[i].Order < d.Layers[j].Order })
	for _, l := range d.Layers {
		if l.ID >= d.nextID {
			d.nextID = l.ID + 1
		}
	}
	d.renumber()
	d.ActiveID = activeID
	if d.Layer(activeID) == nil {
		d.ActiveID = d.Layers[len(d.Layers)-1].ID
	}
	return d
}

func (d *Document) newLayer(name string) *Layer {
	l := NewLayer(d.nextID, name, d.Canvas.Width, d.Canvas.Height)
	d.nextID++
	return l
}

func (d *Document) renumber() {
	for i, l := range d.Layers {
		l.Order = i
	}
}

func (d *Document) index(id int) int {
	for i, l := range d.Layers {
		if l.ID == id {
			return i
		}
	}
	return -1
}

// NextID returns the id the next created layer will receive.
func (d *Document) NextID() int { return d.nextID }

// ReserveIDs makes sure ids below next are never handed out again.
func (d *Document) ReserveIDs(next int) {
	if next > d.nextID {
		d.nextID = next
	}
}

// Layer returns the layer with the given id, or nil.
func (d *Document) Layer(id int) *Layer {
	if i := d.index(id); i >= 0 {
		return d.Layers[i]
	}
	return nil
}

// Active returns the layer receiving draw operations.
func (d *Document) Active() *Layer {
	if l := d.Layer(d.ActiveID); l != nil {
		return l
	}
	// Unreachable while the invariants hold; fall back to the top layer.
	d.ActiveID = d.Layers[len(d.Layers)-1].ID
	return d.Layers[len(d.Layers)-1]
}

// Ordered returns the layers bottom to top.
func (d *Document) Ordered() []*Layer {
	out := append([]*Layer(nil), d.Layers...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out
}

// AddLayer appends a new transparent layer on top and makes it active.
// An empty name gets "Layer N".
func (d *Document) AddLayer(name string) *Layer {
	if name == "" {
		name = fmt.Sprintf("Layer %d", d.nextID)
	}
	l := d.newLayer(name)
	d.Layers = append(d.Layers, l)
	d.renumber()
	d.ActiveID = l.ID
	return l
}

// DuplicateLayer inserts a copy of the layer directly above it and makes the
// copy active. It returns nil when id is unknown.
func (d *Document) DuplicateLayer(id int) *Layer {
	i := d.index(id)
	if i < 0 {
		return nil
	}
	src := d.Layers[i]
	c := src.Clone()
	c.ID = d.nextID
	d.nextID++
	c.Name = src.Name + " copy"

	d.Layers = append(d.Layers[:i+1], append([]*Layer{c}, d.Layers[i+1:]...)...)
	d.renumber()
	d.ActiveID = c.ID
	return c
}

// DeleteLayer removes a layer. Deleting the last remaining layer or an
// unknown id is rejected and reports false.
func (d *Document) DeleteLayer(id int) bool {
	if len(d.Layers) <= 1 {
		return false
	}
	i := d.index(id)
	if i < 0 {
		return false
	}
	d.Layers = append(d.Layers[:i], d.Layers[i+1:]...)
	d.renumber()
	if d.ActiveID == id {
		if i >= len(d.Layers) {
			i = len(d.Layers) - 1
		}
		d.ActiveID = d.Layers[i].ID
	}
	return true
}

// MoveLayer moves a layer to position to in the composite order (0 =
// bottom). Out-of-range targets are clamped.
func (d *Document) MoveLayer(id, to int) bool {
	i := d.index(id)
	if i < 0 {
		return false
	}
	if to < 0 {
		to = 0
	}
	if to >= len(d.Layers) {
		to = len(d.Layers) - 1
	}
	if i == to {
		return false
	}
	l := d.Layers[i]
	d.Layers = append(d.Layers[:i], d.Layers[i+1:]...)
	d.Layers = append(d.Layers[:to], append([]*Layer{l}, d.Layers[to:]...)...)
	d.renumber()
	return true
}

// MergeDown blends the layer into the one below it and removes it. The
// merged result takes the lower layer's id and position.
func (d *Document) MergeDown(id int) bool {
	i := d.index(id)
	if i <= 0 {
		return false
	}
	upper, lower := d.Layers[i], d.Layers[i-1]
	if lower.Locked {
		return false
	}
	if upper.Visible {
		a := float64(upper.Opacity) / 100
		for y := 0; y < d.Canvas.Height; y++ {
			for x := 0; x < d.Canvas.Width; x++ {
				if c := upper.At(x, y); c.A != 0 {
					lower.Blend(x, y, c, a)
				}
			}
		}
	}
	d.Layers = append(d.Layers[:i], d.Layers[i+1:]...)
	d.renumber()
	if d.ActiveID == id {
		d.ActiveID = lower.ID
	}
	return true
}

// SetActive selects the layer receiving draw operations.
func (d *Document) SetActive(id int) bool {
	if d.Layer(id) == nil || d.ActiveID == id {
		return false
	}
	d.ActiveID = id
	return true
}

// SetVisible toggles whether a layer takes part in the composite.
func (d *Document) SetVisible(id int, visible bool) bool {
	l := d.Layer(id)
	if l == nil || l.Visible == visible {
		return false
	}
	l.Visible = visible
	return true
}

// SetLocked toggles write protection on a layer.
func (d *Document) SetLocked(id int, locked bool) bool {
	l := d.Layer(id)
	if l == nil || l.Locked == locked {
		return false
	}
	l.Locked = locked
	return true
}

// SetOpacity sets a layer's opacity, clamped to 0..100.
func (d *Document) SetOpacity(id int, opacity int) bool {
	l := d.Layer(id)
	opacity = clampOpacity(opacity)
	if l == nil || l.Opacity == opacity {
		return false
	}
	l.Opacity = opacity
	return true
}

// Rename changes a layer's display name.
func (d *Document) Rename(id int, name string) bool {
	l := d.Layer(id)
	if l == nil || name == "" || l.Name == name {
		return false
	}
	l.Name = name
	return true
}

// ClearLayer makes every cell of an unlocked layer transparent.
func (d *Document) ClearLayer(id int) bool {
	l := d.Layer(id)
	if l == nil || l.Locked {
		return false
	}
	return l.Buffer.Fill(d.Canvas.Bounds(), raster.Transparent) > 0
}

// Clone returns a deep copy of the document.
func (d *Document) Clone() *Document {
	c := &Document{Canvas: d.Canvas, ActiveID: d.ActiveID, nextID: d.nextID}
	c.Layers = make([]*Layer, len(d.Layers))
	for i, l := range d.Layers {
		c.Layers[i] = l.Clone()
	}
	return c
}

// Equal reports whether two documents have identical layers, metadata and
// pixels.
func (d *Document) Equal(o *Document) bool {
	if d.Canvas != o.Canvas || d.ActiveID != o.ActiveID || len(d.Layers) != len(o.Layers) {
		return false
	}
	for i, l := range d.Layers {
		m := o.Layers[i]
		if l.ID != m.ID || l.Name != m.Name || l.Order != m.Order ||
			l.Visible != m.Visible || l.Locked != m.Locked || l.Opacity != m.Opacity {
			return false
		}
		if !l.Buffer.Equal(m.Buffer) {
			return false
		}
	}
	return true
}
