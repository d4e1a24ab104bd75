package project

import (
	"archive/zip"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"go.uber.org/multierr"
)

// Archive layout: project.json holds the record without pixels, and each
// layer's pixels are stored as layer_<order>.png.
const manifestName = "project.json"

func layerEntry(order int) string {
	return fmt.Sprintf("layer_%d.png", order)
}

// WriteArchive writes s as a .ddd zip archive.
func WriteArchive(w io.Writer, s State) (err error) {
	zw := zip.NewWriter(w)
	defer func() {
		err = multierr.Append(err, zw.Close())
	}()

	manifest := s
	manifest.Layers = make([]LayerState, len(s.Layers))
	for i, l := range s.Layers {
		l.Pixels = nil
		manifest.Layers[i] = l
	}
	data, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return fmt.Errorf("encode manifest: %w", err)
	}
	f, err := zw.Create(manifestName)
	if err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		return err
	}

	for i, l := range s.Layers {
		if len(l.Pixels) == 0 {
			continue
		}
		f, err := zw.Create(layerEntry(i))
		if err != nil {
			return err
		}
		if _, err := f.Write(l.Pixels); err != nil {
			return fmt.Errorf("write layer %q: %w", l.Name, err)
		}
	}
	return nil
}

// ReadArchive reads a .ddd zip archive of the given size.
func ReadArchive(r io.ReaderAt, size int64) (State, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return State{}, fmt.Errorf("%w: %v", ErrInvalidState, err)
	}

	var manifest *zip.File
	layers := make(map[int]*zip.File)
	for _, f := range zr.File {
		if f.Name == manifestName {
			manifest = f
			continue
		}
		if strings.HasPrefix(f.Name, "layer_") && strings.HasSuffix(f.Name, ".png") {
			var idx int
			if _, err := fmt.Sscanf(f.Name, "layer_%d.png", &idx); err == nil {
				layers[idx] = f
			}
		}
	}
	if manifest == nil {
		return State{}, fmt.Errorf("%w: %s not found in archive", ErrInvalidState, manifestName)
	}

	var s State
	if err := readJSON(manifest, &s); err != nil {
		return State{}, err
	}
	for i := range s.Layers {
		f, ok := layers[i]
		if !ok {
			continue
		}
		data, err := readAll(f)
		if err != nil {
			return State{}, fmt.Errorf("read layer %q: %w", s.Layers[i].Name, err)
		}
		s.Layers[i].Pixels = data
	}
	return s, nil
}

func readJSON(f *zip.File, v any) (err error) {
	rc, err := f.Open()
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Append(err, rc.Close())
	}()
	if err := json.NewDecoder(rc).Decode(v); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidState, err)
	}
	return nil
}

func readAll(f *zip.File) (_ []byte, err error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer func() {
		err = multierr.Append(err, rc.Close())
	}()
	return io.ReadAll(rc)
}
