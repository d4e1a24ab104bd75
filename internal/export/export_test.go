package export

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ha1tch/deluxepixel/internal/document"
	"github.com/ha1tch/deluxepixel/internal/guides"
	"github.com/ha1tch/deluxepixel/internal/raster"
	"golang.org/x/image/bmp"
)

func TestExport(t *testing.T) {
	d := document.New(512, 512)
	d.Active().Set(10, 10, raster.Red)
	hidden := d.AddLayer("hidden")
	hidden.Set(20, 20, raster.Blue)
	d.SetVisible(hidden.ID, false)

	at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	res, err := Export(d, Meta{
		PixelSize:       8,
		ActiveSection:   "head",
		Sections:        guides.DefaultSections(512, 512),
		CharacterGender: "male",
		Now:             func() time.Time { return at },
	})
	if err != nil {
		t.Fatal(err)
	}
	if res.Image.Bounds() != image.Rect(0, 0, 512, 512) {
		t.Errorf("image bounds = %v, want native 512x512", res.Image.Bounds())
	}
	if got := raster.FromColor(res.Image.At(10, 10)); got != raster.Red {
		t.Errorf("(10,10) = %v, want red", got)
	}
	if _, _, _, a := res.Image.At(20, 20).RGBA(); a != 0 {
		t.Error("hidden layer exported")
	}

	st := res.State
	if st.CanvasSize.Width != 512 || st.PixelSize != 8 || st.ActiveSection != "head" ||
		st.CharacterGender != "male" || !st.Timestamp.Equal(at) || len(st.Layers) != 2 {
		t.Errorf("state = %+v", st)
	}
	back, err := st.Document()
	if err != nil {
		t.Fatal(err)
	}
	if !back.Equal(d) {
		t.Error("project state does not reload to the same document")
	}
}

func TestScale(t *testing.T) {
	src := raster.NewBuffer(2, 1)
	src.Set(0, 0, raster.Red)
	src.Set(1, 0, raster.Blue)
	out := Scale(src.ToNRGBA(), 4)
	if out.Bounds() != image.Rect(0, 0, 8, 4) {
		t.Fatalf("bounds = %v", out.Bounds())
	}
	if got := raster.FromColor(out.At(3, 3)); got != raster.Red {
		t.Errorf("(3,3) = %v, want red", got)
	}
	if got := raster.FromColor(out.At(4, 0)); got != raster.Blue {
		t.Errorf("(4,0) = %v, want blue", got)
	}
	if Scale(src.ToNRGBA(), 1).Bounds().Dx() != 2 {
		t.Error("scale 1 resized the image")
	}
}

func TestEncodeFormats(t *testing.T) {
	b := raster.NewBuffer(4, 4)
	b.Set(1, 1, raster.Green)
	img := b.ToNRGBA()

	var buf bytes.Buffer
	if err := Encode(&buf, img, Options{Format: PNG, Scale: 2}); err != nil {
		t.Fatal(err)
	}
	dec, err := png.Decode(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if dec.Bounds().Dx() != 8 {
		t.Errorf("png width = %d, want 8", dec.Bounds().Dx())
	}

	buf.Reset()
	if err := Encode(&buf, img, Options{Format: JPEG, Background: color.Black}); err != nil {
		t.Fatal(err)
	}
	jdec, err := jpeg.Decode(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if r, g, bl, _ := jdec.At(3, 3).RGBA(); r>>8 > 16 || g>>8 > 16 || bl>>8 > 16 {
		t.Errorf("transparent cell not flattened to black: %v", jdec.At(3, 3))
	}

	buf.Reset()
	if err := Encode(&buf, img, Options{Format: BMP}); err != nil {
		t.Fatal(err)
	}
	if _, err := bmp.Decode(&buf); err != nil {
		t.Errorf("bmp decode: %v", err)
	}

	buf.Reset()
	if err := Encode(&buf, img, Options{Format: TIFF}); err != nil {
		t.Fatal(err)
	}

	if err := Encode(&buf, img, Options{Format: "gif"}); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("gif err = %v, want ErrUnknownFormat", err)
	}
}

func TestWriteFileByExtension(t *testing.T) {
	dir := t.TempDir()
	img := raster.NewBuffer(3, 3).ToNRGBA()

	path := filepath.Join(dir, "art.png")
	if err := WriteFile(path, img, Options{}); err != nil {
		t.Fatal(err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if _, err := png.Decode(f); err != nil {
		t.Errorf("written file is not a png: %v", err)
	}

	if err := WriteFile(filepath.Join(dir, "art.webp"), img, Options{}); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("webp err = %v, want ErrUnknownFormat", err)
	}
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{".PNG": PNG, "jpg": JPEG, "tif": TIFF, "bmp": BMP} {
		if got, err := ParseFormat(in); err != nil || got != want {
			t.Errorf("ParseFormat(%q) = %v, %v", in, got, err)
		}
	}
}
