package document

import "github.com/ha1tch/deluxepixel/internal/raster"

// Composite flattens the visible layers bottom to top into a new buffer.
func Composite(d *Document) *raster.Buffer {
	dst := raster.NewBuffer(d.Canvas.Width, d.Canvas.Height)
	CompositeInto(dst, d)
	return dst
}

// CompositeInto flattens d into dst, overwriting it. Each visible layer is
// blended with alpha opacity/100 times the source cell's alpha.
func CompositeInto(dst *raster.Buffer, d *Document) {
	dst.Clear()
	for _, l := range d.Ordered() {
		if !l.Visible || l.Opacity == 0 {
			continue
		}
		a := float64(l.Opacity) / 100
		for y := 0; y < d.Canvas.Height; y++ {
			for x := 0; x < d.Canvas.Width; x++ {
				c := l.Buffer.At(x, y)
				if c.A == 0 {
					continue
				}
				dst.Blend(x, y, c, a)
			}
		}
	}
}

// Key summarises everything the composite depends on. Two equal keys for
// the same document mean the composite is unchanged.
type Key struct {
	layers []layerKey
}

type layerKey struct {
	buf     *raster.Buffer
	rev     uint64
	order   int
	visible bool
	opacity int
}

// CompositeKey returns the current Key of d.
func CompositeKey(d *Document) Key {
	k := Key{layers: make([]layerKey, len(d.Layers))}
	for i, l := range d.Layers {
		k.layers[i] = layerKey{
			buf:     l.Buffer,
			rev:     l.Buffer.Rev(),
			order:   l.Order,
			visible: l.Visible,
			opacity: l.Opacity,
		}
	}
	return k
}

// Equal reports whether two keys describe the same composite inputs.
func (k Key) Equal(o Key) bool {
	if len(k.layers) != len(o.layers) {
		return false
	}
	for i := range k.layers {
		if k.layers[i] != o.layers[i] {
			return false
		}
	}
	return true
}
