package history

import (
	"testing"

	"github.com/ha1tch/deluxepixel/internal/document"
	"github.com/ha1tch/deluxepixel/internal/raster"
)

// paint performs k single-cell strokes, committing each, and returns the
// document as it stands after the last one.
func paint(t *testing.T, d *document.Document, h *Stack, k int) *document.Document {
	t.Helper()
	for i := 0; i < k; i++ {
		d.Active().Set(i, i, raster.Color{R: uint8(10 * i), A: 255})
		h.Commit(Capture(d, h.Current()))
	}
	return d.Clone()
}

func TestUndoRedoRoundTrip(t *testing.T) {
	const k = 5
	d := document.New(16, 16)
	h := New(Capture(d, nil), 0)
	want := paint(t, d, h, k)

	var cur *document.Document
	for i := 0; i < k; i++ {
		s, ok := h.Undo()
		if !ok {
			t.Fatalf("undo %d rejected", i)
		}
		cur = s.Restore()
	}
	if n := cur.Active().Buffer.CountOpaque(); n != 0 {
		t.Errorf("after %d undos %d cells painted, want 0", k, n)
	}
	if _, ok := h.Undo(); ok {
		t.Error("undo past the opening state accepted")
	}

	for i := 0; i < k; i++ {
		s, ok := h.Redo()
		if !ok {
			t.Fatalf("redo %d rejected", i)
		}
		cur = s.Restore()
	}
	if !cur.Equal(want) {
		t.Error("redo did not reconstruct the final state")
	}
	if _, ok := h.Redo(); ok {
		t.Error("redo past the newest entry accepted")
	}
}

func TestCommitTruncatesRedo(t *testing.T) {
	d := document.New(8, 8)
	h := New(Capture(d, nil), 0)
	paint(t, d, h, 3)

	s, _ := h.Undo()
	d = s.Restore()
	d.Active().Set(7, 7, raster.Blue)
	h.Commit(Capture(d, h.Current()))

	if h.CanRedo() {
		t.Error("redo branch survived a divergent commit")
	}
	if _, ok := h.Redo(); ok {
		t.Error("Redo after divergent commit was not a no-op")
	}
	if h.Len() != 4 {
		t.Errorf("len = %d, want 4", h.Len())
	}
}

func TestLimitDropsOldest(t *testing.T) {
	d := document.New(4, 4)
	h := New(Capture(d, nil), 3)
	paint(t, d, h, 4)
	if h.Len() != 3 {
		t.Fatalf("len = %d, want 3", h.Len())
	}
	if h.Cursor() != 2 {
		t.Errorf("cursor = %d, want 2", h.Cursor())
	}
	h.Undo()
	h.Undo()
	if h.CanUndo() {
		t.Error("undo possible past the retained window")
	}
}

func TestCaptureSharesUnchangedLayers(t *testing.T) {
	d := document.New(4, 4)
	bg := d.Active()
	top := d.AddLayer("top")
	s1 := Capture(d, nil)

	top.Set(0, 0, raster.Red)
	s2 := Capture(d, s1)

	if s1.Pixels(bg.ID) != s2.Pixels(bg.ID) {
		t.Error("unchanged layer was copied")
	}
	if s1.Pixels(top.ID) == s2.Pixels(top.ID) {
		t.Error("changed layer shares pixels with the older snapshot")
	}

	// After a restore the buffers are new but the content is the same.
	r := s2.Restore()
	s3 := Capture(r, s2)
	if s3.Pixels(top.ID) != s2.Pixels(top.ID) {
		t.Error("restored identical layer was copied")
	}
}

func TestSnapshotIsImmutable(t *testing.T) {
	d := document.New(4, 4)
	s := Capture(d, nil)
	d.Active().Set(1, 1, raster.Red)
	if s.Matches(d) {
		t.Error("snapshot tracks later writes")
	}
	r := s.Restore()
	r.Active().Set(2, 2, raster.Green)
	if s.Pixels(r.ActiveID).At(2, 2) != raster.Transparent {
		t.Error("editing a restored document changed the snapshot")
	}
}

func TestRestoreKeepsIDs(t *testing.T) {
	d := document.New(4, 4)
	a := d.AddLayer("a")
	d.AddLayer("b")
	d.DeleteLayer(d.ActiveID)
	s := Capture(d, nil)
	r := s.Restore()
	if r.ActiveID != a.ID {
		t.Errorf("active = %d, want %d", r.ActiveID, a.ID)
	}
	if r.NextID() != d.NextID() {
		t.Errorf("next id = %d, want %d", r.NextID(), d.NextID())
	}
	if !r.Equal(d) {
		t.Error("restore is not identical")
	}
}
