// Package raster holds the cell grid every layer paints into.
package raster

import "image"

// Buffer is a fixed-size grid of straight-alpha cells.
// Reads outside the grid return Transparent; writes outside it are ignored.
type Buffer struct {
	width  int
	height int
	cells  []Color
	rev    uint64
}

// NewBuffer creates a fully transparent buffer.
func NewBuffer(width, height int) *Buffer {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &Buffer{
		width:  width,
		height: height,
		cells:  make([]Color, width*height),
	}
}

// Width returns the number of columns.
func (b *Buffer) Width() int { return b.width }

// Height returns the number of rows.
func (b *Buffer) Height() int { return b.height }

// Bounds returns the full grid rectangle.
func (b *Buffer) Bounds() Rect { return Rect{0, 0, b.width, b.height} }

// Rev is bumped on every change to the cells. Equal revisions on the same
// buffer mean identical content.
func (b *Buffer) Rev() uint64 { return b.rev }

// InBounds reports whether (x, y) addresses a cell.
func (b *Buffer) InBounds(x, y int) bool {
	return x >= 0 && x < b.width && y >= 0 && y < b.height
}

// At returns the cell at (x, y).
func (b *Buffer) At(x, y int) Color {
	if !b.InBounds(x, y) {
		return Transparent
	}
	return b.cells[y*b.width+x]
}

// Set writes c at (x, y) and reports whether the cell changed.
func (b *Buffer) Set(x, y int, c Color) bool {
	if !b.InBounds(x, y) {
		return false
	}
	i := y*b.width + x
	if b.cells[i] == c {
		return false
	}
	b.cells[i] = c
	b.rev++
	return true
}

// Blend composites c over the cell at (x, y) with the given alpha.
func (b *Buffer) Blend(x, y int, c Color, alpha float64) bool {
	if !b.InBounds(x, y) {
		return false
	}
	return b.Set(x, y, Over(b.At(x, y), c, alpha))
}

// Fill sets every cell inside r to c and returns the number of changed cells.
func (b *Buffer) Fill(r Rect, c Color) int {
	r = r.Intersect(b.Bounds())
	n := 0
	for y := r.Y0; y < r.Y1; y++ {
		for x := r.X0; x < r.X1; x++ {
			if b.Set(x, y, c) {
				n++
			}
		}
	}
	return n
}

// Clear makes every cell transparent.
func (b *Buffer) Clear() {
	b.Fill(b.Bounds(), Transparent)
}

// Clone returns a deep copy. The copy starts at the same revision.
func (b *Buffer) Clone() *Buffer {
	c := &Buffer{width: b.width, height: b.height, rev: b.rev}
	c.cells = make([]Color, len(b.cells))
	copy(c.cells, b.cells)
	return c
}

// CopyFrom overwrites b with src's cells. Sizes must match; on mismatch the
// overlapping region is copied.
func (b *Buffer) CopyFrom(src *Buffer) {
	if src.width == b.width && src.height == b.height {
		copy(b.cells, src.cells)
		b.rev++
		return
	}
	b.Clear()
	r := b.Bounds().Intersect(src.Bounds())
	for y := r.Y0; y < r.Y1; y++ {
		for x := r.X0; x < r.X1; x++ {
			b.Set(x, y, src.At(x, y))
		}
	}
}

// Equal reports whether two buffers have the same size and cells.
func (b *Buffer) Equal(o *Buffer) bool {
	if b.width != o.width || b.height != o.height {
		return false
	}
	for i := range b.cells {
		if b.cells[i] != o.cells[i] {
			return false
		}
	}
	return true
}

// CountOpaque returns how many cells have non-zero alpha.
func (b *Buffer) CountOpaque() int {
	n := 0
	for _, c := range b.cells {
		if c.A != 0 {
			n++
		}
	}
	return n
}

// ToNRGBA renders the buffer as a straight-alpha image.
func (b *Buffer) ToNRGBA() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, b.width, b.height))
	for i, c := range b.cells {
		o := i * 4
		img.Pix[o+0] = c.R
		img.Pix[o+1] = c.G
		img.Pix[o+2] = c.B
		img.Pix[o+3] = c.A
	}
	return img
}

// FromImage loads img into a new buffer of the given size. Images of a
// different size are placed at the origin and cropped.
func FromImage(img image.Image, width, height int) *Buffer {
	b := NewBuffer(width, height)
	r := img.Bounds()
	if n, ok := img.(*image.NRGBA); ok && r.Dx() == width && r.Dy() == height {
		for i := range b.cells {
			o := n.PixOffset(r.Min.X+i%width, r.Min.Y+i/width)
			b.cells[i] = Color{n.Pix[o], n.Pix[o+1], n.Pix[o+2], n.Pix[o+3]}
		}
		return b
	}
	for y := 0; y < height && y < r.Dy(); y++ {
		for x := 0; x < width && x < r.Dx(); x++ {
			b.cells[y*width+x] = FromColor(img.At(r.Min.X+x, r.Min.Y+y))
		}
	}
	return b
}
