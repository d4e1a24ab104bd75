package tools

import (
	"image"
	"testing"

	"github.com/ha1tch/deluxepixel/internal/document"
	"github.com/ha1tch/deluxepixel/internal/raster"
	"github.com/ha1tch/deluxepixel/internal/symmetry"
)

func newRig(w, h int, tool Tool) (*document.Document, *State, *Dispatcher) {
	doc := document.New(w, h)
	st := DefaultState()
	st.Tool = tool
	st.Color = raster.Red
	return doc, &st, NewDispatcher(&st)
}

func click(d *Dispatcher, doc *document.Document, p image.Point) Result {
	d.Down(doc, p)
	return d.Up(p)
}

func drag(d *Dispatcher, doc *document.Document, from, to image.Point) Result {
	d.Down(doc, from)
	d.Move(to)
	return d.Up(to)
}

func painted(b *raster.Buffer) map[image.Point]raster.Color {
	out := map[image.Point]raster.Color{}
	for y := 0; y < b.Height(); y++ {
		for x := 0; x < b.Width(); x++ {
			if c := b.At(x, y); c.A != 0 {
				out[image.Pt(x, y)] = c
			}
		}
	}
	return out
}

func TestPencilSingleCell(t *testing.T) {
	doc, _, d := newRig(512, 512, Pencil)
	res := click(d, doc, image.Pt(10, 10))
	if !res.Changed || res.Cells != 1 {
		t.Errorf("result = %+v, want one changed cell", res)
	}
	got := painted(doc.Active().Buffer)
	if len(got) != 1 || got[image.Pt(10, 10)] != raster.Red {
		t.Errorf("painted = %v", got)
	}
}

func TestPencilInterpolates(t *testing.T) {
	doc, _, d := newRig(16, 16, Pencil)
	drag(d, doc, image.Pt(0, 0), image.Pt(5, 0))
	for x := 0; x <= 5; x++ {
		if doc.Active().At(x, 0) != raster.Red {
			t.Errorf("gap at (%d,0)", x)
		}
	}
}

func TestSymmetryVertical512(t *testing.T) {
	doc, st, d := newRig(512, 512, Pencil)
	st.SymmetryEnabled = true
	st.Axis = symmetry.Vertical
	click(d, doc, image.Pt(10, 10))

	got := painted(doc.Active().Buffer)
	if len(got) != 2 {
		t.Fatalf("painted %d cells, want 2: %v", len(got), got)
	}
	for _, p := range []image.Point{{10, 10}, {502, 10}} {
		if got[p] != raster.Red {
			t.Errorf("cell %v not painted", p)
		}
	}
}

func TestSymmetryOnlyActiveLayer(t *testing.T) {
	doc, st, d := newRig(32, 32, Pencil)
	other := doc.Active()
	doc.AddLayer("top")
	st.SymmetryEnabled = true
	st.Axis = symmetry.Both
	click(d, doc, image.Pt(3, 4))
	if n := other.Buffer.CountOpaque(); n != 0 {
		t.Errorf("inactive layer got %d cells", n)
	}
	if n := doc.Active().Buffer.CountOpaque(); n != 4 {
		t.Errorf("active layer got %d cells, want 4", n)
	}
}

func TestBrushAtEdgeDoesNotWrapThroughMirror(t *testing.T) {
	doc, st, d := newRig(512, 512, Brush)
	st.BrushSize = 4
	st.SymmetryEnabled = true
	st.Axis = symmetry.Vertical
	click(d, doc, image.Pt(509, 10))

	b := doc.Active().Buffer
	if c := b.At(0, 10); c.A != 0 {
		t.Errorf("column 0 painted by the reflection of off-canvas x=512: %v", c)
	}
	left, right := 0, 0
	for x := 0; x < 512; x++ {
		if b.At(x, 10).A == 0 {
			continue
		}
		if x < 256 {
			left++
		} else {
			right++
		}
	}
	if left != 3 || right != 3 {
		t.Errorf("painted columns left=%d right=%d, want 3 and 3", left, right)
	}
	for _, x := range []int{1, 2, 3, 509, 510, 511} {
		if b.At(x, 10).A == 0 {
			t.Errorf("column %d not painted", x)
		}
	}
	if b.At(508, 10).A != 0 {
		t.Error("column 508 painted")
	}
}

func TestCircleClippedAtEdgeStaysSymmetric(t *testing.T) {
	doc, st, d := newRig(16, 16, Circle)
	st.SymmetryEnabled = true
	st.Axis = symmetry.Vertical
	drag(d, doc, image.Pt(14, 8), image.Pt(14, 11))

	got := painted(doc.Active().Buffer)
	for y := 0; y < 16; y++ {
		if _, ok := got[image.Pt(0, y)]; ok {
			t.Errorf("column 0 painted at y=%d", y)
		}
	}
	for p := range got {
		m := image.Pt(16-p.X, p.Y)
		if _, ok := got[m]; m.X < 16 && !ok {
			t.Errorf("cell %v painted without its mirror %v", p, m)
		}
	}
	if len(got) == 0 {
		t.Fatal("circle painted nothing")
	}
}

func TestBrushBlock(t *testing.T) {
	doc, st, d := newRig(16, 16, Brush)
	st.BrushSize = 4
	click(d, doc, image.Pt(0, 0))

	want := raster.Over(raster.Transparent, raster.Red, DefaultBrushAlpha)
	got := painted(doc.Active().Buffer)
	if len(got) != 16 {
		t.Fatalf("painted %d cells, want 16", len(got))
	}
	for p, c := range got {
		if p.X < 0 || p.X >= 4 || p.Y < 0 || p.Y >= 4 {
			t.Errorf("write outside block at %v", p)
		}
		if c != want {
			t.Errorf("cell %v = %v, want %v", p, c, want)
		}
	}
}

func TestBrushBlendsOncePerStroke(t *testing.T) {
	doc, st, d := newRig(16, 16, Brush)
	st.BrushSize = 3
	d.Down(doc, image.Pt(2, 2))
	d.Move(image.Pt(3, 2))
	d.Move(image.Pt(2, 2))
	d.Up(image.Pt(2, 2))

	want := raster.Over(raster.Transparent, raster.Red, DefaultBrushAlpha)
	if got := doc.Active().At(3, 3); got != want {
		t.Errorf("overlapping stamp cell = %v, want %v", got, want)
	}

	// A second stroke blends again.
	click(d, doc, image.Pt(2, 2))
	if got := doc.Active().At(3, 3); got == want {
		t.Error("second stroke did not blend over the first")
	}
}

func TestEraser(t *testing.T) {
	doc, st, d := newRig(8, 8, Eraser)
	doc.Active().Buffer.Fill(doc.Canvas.Bounds(), raster.Blue)
	st.BrushSize = 2
	res := click(d, doc, image.Pt(6, 6))
	if res.Cells != 4 {
		t.Errorf("erased %d cells, want 4", res.Cells)
	}
	if n := doc.Active().Buffer.CountOpaque(); n != 64-4 {
		t.Errorf("opaque = %d, want 60", n)
	}
	if doc.Active().At(7, 7) != raster.Transparent {
		t.Error("(7,7) not erased")
	}
}

func TestFillContainment(t *testing.T) {
	doc, _, d := newRig(9, 5, Fill)
	l := doc.Active()
	for y := 0; y < 5; y++ {
		l.Set(4, y, raster.Black)
	}
	res := click(d, doc, image.Pt(0, 0))
	if res.Cells != 20 {
		t.Errorf("filled %d cells, want 20", res.Cells)
	}
	for y := 0; y < 5; y++ {
		for x := 5; x < 9; x++ {
			if l.At(x, y) != raster.Transparent {
				t.Fatalf("fill leaked to (%d,%d)", x, y)
			}
		}
	}
}

func TestFillSameColorNoop(t *testing.T) {
	doc, _, d := newRig(8, 8, Fill)
	doc.Active().Buffer.Fill(doc.Canvas.Bounds(), raster.Red)
	rev := doc.Active().Buffer.Rev()
	res := click(d, doc, image.Pt(3, 3))
	if res.Changed || doc.Active().Buffer.Rev() != rev {
		t.Error("filling with the region's own color changed the layer")
	}
}

func TestFillSymmetryStaysContained(t *testing.T) {
	doc, st, d := newRig(10, 4, Fill)
	st.SymmetryEnabled = true
	l := doc.Active()
	for y := 0; y < 4; y++ {
		l.Set(2, y, raster.Black)
		l.Set(8, y, raster.Black)
	}
	// Seed (0,0) mirrors to (10,0), which is off canvas; only the left
	// pocket fills.
	click(d, doc, image.Pt(0, 0))
	if l.At(1, 3) != raster.Red {
		t.Error("left pocket not filled")
	}
	if l.At(5, 0) != raster.Transparent || l.At(9, 0) != raster.Transparent {
		t.Error("fill crossed a border")
	}

	// Seed (1,0) mirrors to (9,0): both pockets fill, the middle stays.
	doc2, st2, d2 := newRig(10, 4, Fill)
	st2.SymmetryEnabled = true
	l2 := doc2.Active()
	for y := 0; y < 4; y++ {
		l2.Set(2, y, raster.Black)
		l2.Set(8, y, raster.Black)
	}
	click(d2, doc2, image.Pt(1, 0))
	if l2.At(9, 3) != raster.Red || l2.At(0, 0) != raster.Red {
		t.Error("mirrored pocket not filled")
	}
	if l2.At(5, 2) != raster.Transparent {
		t.Error("middle region filled")
	}
}

func TestEyedropperSamplesComposite(t *testing.T) {
	doc, st, d := newRig(4, 4, Eyedropper)
	doc.Active().Set(1, 1, raster.Green)
	doc.AddLayer("empty top")

	res := click(d, doc, image.Pt(1, 1))
	if st.Color != raster.Green || !res.Sampled {
		t.Errorf("color = %v sampled=%v, want green from the lower layer", st.Color, res.Sampled)
	}
	if res.Changed {
		t.Error("eyedropper reported a raster change")
	}

	res = click(d, doc, image.Pt(3, 3))
	if st.Color != raster.Green || res.Sampled {
		t.Error("sampling a transparent cell changed the color")
	}
}

func TestShapesDrawOnUp(t *testing.T) {
	doc, st, d := newRig(32, 32, Line)
	d.Down(doc, image.Pt(0, 0))
	d.Move(image.Pt(5, 5))
	if n := doc.Active().Buffer.CountOpaque(); n != 0 {
		t.Fatalf("line drew %d cells before release", n)
	}
	if len(d.Preview()) != 6 {
		t.Errorf("preview = %d cells, want 6", len(d.Preview()))
	}
	d.Up(image.Pt(5, 5))
	if n := doc.Active().Buffer.CountOpaque(); n != 6 {
		t.Errorf("line = %d cells, want 6", n)
	}

	st.Tool = Rectangle
	st.FillShapes = true
	doc.ClearLayer(doc.ActiveID)
	drag(d, doc, image.Pt(10, 10), image.Pt(12, 11))
	if n := doc.Active().Buffer.CountOpaque(); n != 6 {
		t.Errorf("filled rect = %d cells, want 6", n)
	}

	st.Tool = Circle
	doc.ClearLayer(doc.ActiveID)
	drag(d, doc, image.Pt(16, 16), image.Pt(20, 16))
	if doc.Active().At(20, 16) != raster.Red || doc.Active().At(16, 16) != raster.Transparent {
		t.Error("circle not drawn through the release point")
	}
}

func TestLockedLayerNoop(t *testing.T) {
	for _, tool := range []Tool{Pencil, Brush, Eraser, Fill, Line, Rectangle, Circle} {
		doc, _, d := newRig(8, 8, tool)
		doc.SetLocked(doc.ActiveID, true)
		res := drag(d, doc, image.Pt(1, 1), image.Pt(4, 4))
		if res.Changed || doc.Active().Buffer.Rev() != 0 {
			t.Errorf("%v wrote to a locked layer", tool)
		}
	}
}

func TestSelectAndMove(t *testing.T) {
	doc, st, d := newRig(16, 16, Select)
	l := doc.Active()
	l.Set(2, 2, raster.Red)
	l.Set(3, 3, raster.Blue)

	drag(d, doc, image.Pt(2, 2), image.Pt(3, 3))
	sel, ok := d.Selection()
	if !ok || sel != (raster.Rect{X0: 2, Y0: 2, X1: 4, Y1: 4}) {
		t.Fatalf("selection = %+v, %v", sel, ok)
	}

	st.Tool = Move
	res := drag(d, doc, image.Pt(2, 2), image.Pt(7, 4))
	if !res.Changed {
		t.Fatal("move reported no change")
	}
	if l.At(2, 2) != raster.Transparent || l.At(3, 3) != raster.Transparent {
		t.Error("source cells not cleared")
	}
	if l.At(7, 4) != raster.Red || l.At(8, 5) != raster.Blue {
		t.Errorf("destination = %v %v", l.At(7, 4), l.At(8, 5))
	}
	if sel, _ := d.Selection(); sel != (raster.Rect{X0: 7, Y0: 4, X1: 9, Y1: 6}) {
		t.Errorf("selection did not follow: %+v", sel)
	}
}

func TestMoveOutsideSelectionNoop(t *testing.T) {
	doc, _, d := newRig(8, 8, Move)
	doc.Active().Set(1, 1, raster.Red)
	d.SetSelection(raster.Rect{X0: 0, Y0: 0, X1: 2, Y1: 2})
	if res := drag(d, doc, image.Pt(5, 5), image.Pt(6, 6)); res.Changed {
		t.Error("drag outside the selection moved cells")
	}
}

func TestCancelKeepsFreehandDropsShapes(t *testing.T) {
	doc, st, d := newRig(8, 8, Pencil)
	d.Down(doc, image.Pt(1, 1))
	d.Move(image.Pt(3, 1))
	res := d.Cancel()
	if !res.Changed || res.Cells != 3 {
		t.Errorf("cancelled pencil = %+v, want 3 cells kept", res)
	}
	if d.Active() {
		t.Error("stroke still active after Cancel")
	}

	st.Tool = Line
	doc.ClearLayer(doc.ActiveID)
	d.Down(doc, image.Pt(0, 0))
	d.Move(image.Pt(7, 7))
	if res := d.Cancel(); res.Changed {
		t.Error("cancelled line drew cells")
	}
	if n := doc.Active().Buffer.CountOpaque(); n != 0 {
		t.Errorf("cancelled line left %d cells", n)
	}
}

func TestDownFinishesOpenStroke(t *testing.T) {
	doc, _, d := newRig(8, 8, Pencil)
	d.Down(doc, image.Pt(0, 0))
	prev, had := d.Down(doc, image.Pt(5, 5))
	if !had || !prev.Changed {
		t.Errorf("Down over an open stroke = %+v, %v", prev, had)
	}
	d.Up(image.Pt(5, 5))
}
