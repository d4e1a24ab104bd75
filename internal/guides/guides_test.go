package guides

import (
	"testing"

	"github.com/ha1tch/deluxepixel/internal/document"
	"github.com/ha1tch/deluxepixel/internal/raster"
)

func count(ps []Primitive, k Kind) int {
	n := 0
	for _, p := range ps {
		if p.Kind == k {
			n++
		}
	}
	return n
}

func TestRenderNothing(t *testing.T) {
	if ps := Render(document.DefaultCanvas, Options{}); len(ps) != 0 {
		t.Errorf("empty options produced %d primitives", len(ps))
	}
}

func TestRenderGrid(t *testing.T) {
	ps := Render(document.Canvas{Width: 32, Height: 16}, Options{ShowGrid: true, GridStep: 8})
	// Interior lines only: x = 8, 16, 24 and y = 8.
	if n := count(ps, GridLine); n != 4 {
		t.Errorf("grid lines = %d, want 4", n)
	}
}

func TestRenderGuides(t *testing.T) {
	ps := Render(document.DefaultCanvas, Options{ShowGuides: true})
	if count(ps, MarginBox) != 1 || count(ps, CenterCross) != 2 || count(ps, ProportionBox) != 2 {
		t.Fatalf("unexpected guide set: %+v", ps)
	}
	for _, p := range ps {
		if p.Kind == MarginBox && (p.X0 != 32 || p.X1 != 480) {
			t.Errorf("margin box = %+v", p)
		}
		if p.Kind == CenterCross && p.X0 == p.X1 && p.X0 != 256 {
			t.Errorf("vertical center at %v, want 256", p.X0)
		}
	}
}

func TestRenderSection(t *testing.T) {
	s := Section{ID: "head", Area: raster.Rect{X0: 10, Y0: 10, X1: 50, Y1: 30}, Color: raster.Red}
	ps := Render(document.DefaultCanvas, Options{Active: &s})
	if count(ps, SectionBox) != 1 {
		t.Error("missing section box")
	}
	if n := count(ps, SectionCorner); n != 8 {
		t.Errorf("corner segments = %d, want 8", n)
	}
	for _, p := range ps {
		if p.Kind == SectionCorner {
			l := (p.X1 - p.X0) + (p.Y1 - p.Y0)
			if l != 5 && l != -5 {
				t.Errorf("corner segment length %v, want 5", l)
			}
		}
	}
}

// TestRenderIsPure checks the overlay never depends on or touches pixels.
func TestRenderIsPure(t *testing.T) {
	d := document.New(64, 64)
	d.Active().Set(5, 5, raster.Red)
	before := d.Clone()
	opts := Options{ShowGrid: true, ShowGuides: true, Active: &DefaultSections(64, 64)[0]}
	a := Render(d.Canvas, opts)
	b := Render(d.Canvas, opts)
	if len(a) != len(b) {
		t.Fatal("render not deterministic")
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("primitive %d differs", i)
		}
	}
	if !d.Equal(before) {
		t.Error("render modified the document")
	}
}

func TestDefaultSections(t *testing.T) {
	ss := DefaultSections(512, 512)
	head, ok := Find(ss, "head")
	if !ok {
		t.Fatal("no head section")
	}
	if head.Area.X0 != 192 || head.Area.Dx() != 128 {
		t.Errorf("head = %+v", head.Area)
	}
	for _, s := range ss {
		if s.Area.Empty() || s.Area.Intersect(raster.Rect{X1: 512, Y1: 512}) != s.Area {
			t.Errorf("section %s out of canvas: %+v", s.ID, s.Area)
		}
	}
	if _, ok := Find(ss, "tail"); ok {
		t.Error("found an unknown section")
	}
}
