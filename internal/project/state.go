// Package project defines the persisted project record and the stores that
// keep it.
package project

import (
	"bytes"
	"errors"
	"fmt"
	"image/png"
	"time"

	"github.com/ha1tch/deluxepixel/internal/document"
	"github.com/ha1tch/deluxepixel/internal/guides"
	"github.com/ha1tch/deluxepixel/internal/raster"
)

// Sentinel errors
var (
	ErrNotFound     = errors.New("project not found")
	ErrInvalidState = errors.New("invalid project state")
	ErrInvalidKey   = errors.New("invalid project name")
)

// State is the project record handed to a store.
type State struct {
	Layers          []LayerState   `json:"layers"`
	ActiveLayer     int            `json:"active_layer"`
	CanvasSize      Size           `json:"canvas_size"`
	PixelSize       int            `json:"pixel_size"`
	ActiveSection   string         `json:"active_section,omitempty"`
	SectionMeta     []SectionState `json:"section_meta,omitempty"`
	CharacterGender string         `json:"character_gender,omitempty"`
	Timestamp       time.Time      `json:"timestamp"`
}

// Size is the canvas size in cells.
type Size struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// LayerState is one layer's metadata and PNG-encoded pixels.
type LayerState struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	Order   int    `json:"order"`
	Visible bool   `json:"visible"`
	Locked  bool   `json:"locked"`
	Opacity int    `json:"opacity"`
	Pixels  []byte `json:"pixels,omitempty"` // PNG
}

// SectionState is a character section as stored in the record.
type SectionState struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	X     int    `json:"x"`
	Y     int    `json:"y"`
	W     int    `json:"w"`
	H     int    `json:"h"`
	Color string `json:"color"`
}

// FromDocument encodes a document's layers into a record. Only the layer
// fields are filled; callers add the session fields.
func FromDocument(d *document.Document) (State, error) {
	s := State{
		CanvasSize:  Size{Width: d.Canvas.Width, Height: d.Canvas.Height},
		ActiveLayer: d.ActiveID,
		Layers:      make([]LayerState, 0, len(d.Layers)),
	}
	for _, l := range d.Ordered() {
		var buf bytes.Buffer
		if err := png.Encode(&buf, l.Buffer.ToNRGBA()); err != nil {
			return State{}, fmt.Errorf("encode layer %q: %w", l.Name, err)
		}
		s.Layers = append(s.Layers, LayerState{
			ID:      l.ID,
			Name:    l.Name,
			Order:   l.Order,
			Visible: l.Visible,
			Locked:  l.Locked,
			Opacity: l.Opacity,
			Pixels:  buf.Bytes(),
		})
	}
	return s, nil
}

// Document decodes the record's layers into a new document.
func (s State) Document() (*document.Document, error) {
	w, h := s.CanvasSize.Width, s.CanvasSize.Height
	canvas := document.Canvas{Width: w, Height: h}
	if !canvas.Valid() {
		return nil, fmt.Errorf("%w: canvas %dx%d", ErrInvalidState, w, h)
	}
	if len(s.Layers) == 0 {
		return nil, fmt.Errorf("%w: no layers", ErrInvalidState)
	}
	seen := make(map[int]bool, len(s.Layers))
	layers := make([]*document.Layer, 0, len(s.Layers))
	for _, ls := range s.Layers {
		if seen[ls.ID] {
			return nil, fmt.Errorf("%w: duplicate layer id %d", ErrInvalidState, ls.ID)
		}
		seen[ls.ID] = true

		l := document.NewLayer(ls.ID, ls.Name, w, h)
		l.Order = ls.Order
		l.Visible = ls.Visible
		l.Locked = ls.Locked
		l.Opacity = max(0, min(100, ls.Opacity))
		if len(ls.Pixels) > 0 {
			pc, err := png.DecodeConfig(bytes.NewReader(ls.Pixels))
			if err != nil {
				return nil, fmt.Errorf("decode layer %q: %w", ls.Name, err)
			}
			if pc.Width != w || pc.Height != h {
				return nil, fmt.Errorf("%w: layer %q is %dx%d, canvas is %dx%d",
					ErrInvalidState, ls.Name, pc.Width, pc.Height, w, h)
			}
			img, err := png.Decode(bytes.NewReader(ls.Pixels))
			if err != nil {
				return nil, fmt.Errorf("decode layer %q: %w", ls.Name, err)
			}
			l.Buffer = raster.FromImage(img, w, h)
		}
		layers = append(layers, l)
	}
	return document.FromLayers(canvas, layers, s.ActiveLayer), nil
}

// SectionsFrom converts guide sections to their stored form.
func SectionsFrom(ss []guides.Section) []SectionState {
	out := make([]SectionState, len(ss))
	for i, s := range ss {
		out[i] = SectionState{
			ID: s.ID, Name: s.Name,
			X: s.Area.X0, Y: s.Area.Y0, W: s.Area.Dx(), H: s.Area.Dy(),
			Color: s.Color.Hex(),
		}
	}
	return out
}

// Sections converts stored sections back. Unparseable colors fall back to
// white.
func (s State) Sections() []guides.Section {
	out := make([]guides.Section, len(s.SectionMeta))
	for i, m := range s.SectionMeta {
		c, err := raster.ParseHex(m.Color)
		if err != nil {
			c = raster.White
		}
		out[i] = guides.Section{
			ID: m.ID, Name: m.Name,
			Area:  raster.Rect{X0: m.X, Y0: m.Y, X1: m.X + m.W, Y1: m.Y + m.H},
			Color: c,
		}
	}
	return out
}
