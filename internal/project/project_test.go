package project

import (
	"bytes"
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ha1tch/deluxepixel/internal/document"
	"github.com/ha1tch/deluxepixel/internal/guides"
	"github.com/ha1tch/deluxepixel/internal/raster"
)

func sampleDoc() *document.Document {
	d := document.New(16, 8)
	d.Active().Set(1, 1, raster.Red)
	top := d.AddLayer("ink")
	top.Set(2, 3, raster.Color{R: 10, G: 20, B: 30, A: 204})
	d.SetOpacity(top.ID, 60)
	d.SetLocked(top.ID, true)
	hidden := d.AddLayer("hidden")
	d.SetVisible(hidden.ID, false)
	d.SetActive(top.ID)
	return d
}

func TestStateDocumentRoundTrip(t *testing.T) {
	d := sampleDoc()
	s, err := FromDocument(d)
	if err != nil {
		t.Fatal(err)
	}
	back, err := s.Document()
	if err != nil {
		t.Fatal(err)
	}
	if !back.Equal(d) {
		t.Error("document changed across the record")
	}
}

func TestStateDocumentInvalid(t *testing.T) {
	tests := []struct {
		name string
		s    State
	}{
		{"no canvas", State{Layers: []LayerState{{ID: 0}}}},
		{"no layers", State{CanvasSize: Size{4, 4}}},
		{"duplicate ids", State{CanvasSize: Size{4, 4}, Layers: []LayerState{{ID: 1}, {ID: 1, Order: 1}}}},
		{"bad png", State{CanvasSize: Size{4, 4}, Layers: []LayerState{{ID: 0, Pixels: []byte("nope")}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := tt.s.Document(); err == nil {
				t.Error("expected an error")
			}
		})
	}

	// An oversized canvas is rejected before any layer is allocated.
	huge := State{CanvasSize: Size{100000, 100000}, Layers: []LayerState{{ID: 0, Name: "bg", Visible: true}}}
	if _, err := huge.Document(); !errors.Is(err, ErrInvalidState) {
		t.Errorf("oversized canvas error = %v, want ErrInvalidState", err)
	}
	wide := State{CanvasSize: Size{document.MaxSide + 1, 1}, Layers: []LayerState{{ID: 0}}}
	if _, err := wide.Document(); !errors.Is(err, ErrInvalidState) {
		t.Errorf("canvas %dx1 error = %v, want ErrInvalidState", document.MaxSide+1, err)
	}

	// Pixels of the wrong size are rejected.
	small, _ := FromDocument(document.New(2, 2))
	small.CanvasSize = Size{4, 4}
	if _, err := small.Document(); !errors.Is(err, ErrInvalidState) {
		t.Errorf("size mismatch error = %v, want ErrInvalidState", err)
	}
}

func TestArchiveRoundTrip(t *testing.T) {
	d := sampleDoc()
	s, err := FromDocument(d)
	if err != nil {
		t.Fatal(err)
	}
	s.PixelSize = 8
	s.ActiveSection = "head"
	s.SectionMeta = SectionsFrom(guides.DefaultSections(16, 8))
	s.CharacterGender = "female"
	s.Timestamp = time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)

	var buf bytes.Buffer
	if err := WriteArchive(&buf, s); err != nil {
		t.Fatal(err)
	}
	got, err := ReadArchive(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	if err != nil {
		t.Fatal(err)
	}
	if got.PixelSize != 8 || got.ActiveSection != "head" || got.CharacterGender != "female" || !got.Timestamp.Equal(s.Timestamp) {
		t.Errorf("session fields lost: %+v", got)
	}
	if len(got.Sections()) != len(s.SectionMeta) {
		t.Errorf("sections = %d, want %d", len(got.Sections()), len(s.SectionMeta))
	}
	back, err := got.Document()
	if err != nil {
		t.Fatal(err)
	}
	if !back.Equal(d) {
		t.Error("archive round trip changed the document")
	}
}

func TestReadArchiveRejectsGarbage(t *testing.T) {
	data := []byte("not a zip")
	if _, err := ReadArchive(bytes.NewReader(data), int64(len(data))); !errors.Is(err, ErrInvalidState) {
		t.Errorf("err = %v, want ErrInvalidState", err)
	}
}

func testStore(t *testing.T, st Store) {
	t.Helper()
	ctx := context.Background()
	s, err := FromDocument(sampleDoc())
	if err != nil {
		t.Fatal(err)
	}

	if _, err := st.Load(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Load missing = %v, want ErrNotFound", err)
	}
	if err := st.Save(ctx, "b", s); err != nil {
		t.Fatal(err)
	}
	if err := st.Save(ctx, "a", s); err != nil {
		t.Fatal(err)
	}
	keys, err := st.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(keys) != 2 || keys[0] != "a" || keys[1] != "b" {
		t.Errorf("keys = %v", keys)
	}
	got, err := st.Load(ctx, "a")
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Layers) != len(s.Layers) {
		t.Errorf("layers = %d, want %d", len(got.Layers), len(s.Layers))
	}
	if err := st.Delete(ctx, "a"); err != nil {
		t.Fatal(err)
	}
	if err := st.Delete(ctx, "a"); !errors.Is(err, ErrNotFound) {
		t.Errorf("second delete = %v, want ErrNotFound", err)
	}

	cctx, cancel := context.WithCancel(ctx)
	cancel()
	if err := st.Save(cctx, "c", s); err == nil {
		t.Error("Save ignored a cancelled context")
	}
}

func TestDirStore(t *testing.T) {
	testStore(t, NewDirStore(t.TempDir(), nil))
}

func TestMemStore(t *testing.T) {
	testStore(t, NewMemStore())
}

func TestDirStorePath(t *testing.T) {
	s := NewDirStore("/projects", nil)
	tests := []struct {
		key  string
		want string
	}{
		{"robot", "/projects/robot.ddd"},
		{"robot.ddd", "/projects/robot.ddd"},
		{"/tmp/x.ddd", "/tmp/x.ddd"},
		{"art/x.ddd", "art/x.ddd"},
	}
	for _, tt := range tests {
		got, err := s.Path(tt.key)
		if err != nil || got != tt.want {
			t.Errorf("Path(%q) = %q, %v, want %q", tt.key, got, err, tt.want)
		}
	}

	for _, key := range []string{"../../x", "..", "a/b", `a\b`, "", ".ddd", ".save-1", "x..y"} {
		if _, err := s.Path(key); !errors.Is(err, ErrInvalidKey) {
			t.Errorf("Path(%q) error = %v, want ErrInvalidKey", key, err)
		}
	}
}

func TestDirStoreRejectsEscapingKey(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "a", "b")
	st := NewDirStore(dir, nil)
	s, err := FromDocument(sampleDoc())
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()

	if err := st.Save(ctx, "../../x", s); !errors.Is(err, ErrInvalidKey) {
		t.Fatalf("Save(../../x) = %v, want ErrInvalidKey", err)
	}
	for _, p := range []string{filepath.Join(root, "x.ddd"), filepath.Join(root, "x")} {
		if _, err := os.Stat(p); !errors.Is(err, fs.ErrNotExist) {
			t.Errorf("%s exists after a rejected save", p)
		}
	}
	if _, err := st.Load(ctx, "../../x"); !errors.Is(err, ErrInvalidKey) {
		t.Errorf("Load(../../x) = %v, want ErrInvalidKey", err)
	}
	if err := st.Delete(ctx, "../../x"); !errors.Is(err, ErrInvalidKey) {
		t.Errorf("Delete(../../x) = %v, want ErrInvalidKey", err)
	}
	if err := NewMemStore().Save(ctx, "../../x", s); !errors.Is(err, ErrInvalidKey) {
		t.Errorf("MemStore.Save(../../x) = %v, want ErrInvalidKey", err)
	}
}
