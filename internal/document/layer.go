package document

import "github.com/ha1tch/deluxepixel/internal/raster"

// Layer is a single drawing layer with its own pixel buffer.
type Layer struct {
	ID      int
	Name    string
	Order   int
	Visible bool
	Locked  bool
	Opacity int // 0..100
	Buffer  *raster.Buffer
}

// NewLayer creates a visible, unlocked, fully opaque transparent layer.
func NewLayer(id int, name string, width, height int) *Layer {
	return &Layer{
		ID:      id,
		Name:    name,
		Visible: true,
		Opacity: 100,
		Buffer:  raster.NewBuffer(width, height),
	}
}

// Set writes one cell. Locked layers reject the write and report false.
func (l *Layer) Set(x, y int, c raster.Color) bool {
	if l.Locked {
		return false
	}
	return l.Buffer.Set(x, y, c)
}

// Blend composites c over one cell at the given alpha.
func (l *Layer) Blend(x, y int, c raster.Color, alpha float64) bool {
	if l.Locked {
		return false
	}
	return l.Buffer.Blend(x, y, c, alpha)
}

// Erase clears one cell to transparent.
func (l *Layer) Erase(x, y int) bool {
	return l.Set(x, y, raster.Transparent)
}

// At reads one cell.
func (l *Layer) At(x, y int) raster.Color {
	return l.Buffer.At(x, y)
}

// Clone returns a deep copy of the layer including its pixels.
func (l *Layer) Clone() *Layer {
	c := *l
	c.Buffer = l.Buffer.Clone()
	return &c
}

func clampOpacity(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
