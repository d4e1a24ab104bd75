package history

import (
	"github.com/ha1tch/deluxepixel/internal/document"
	"github.com/ha1tch/deluxepixel/internal/raster"
)

// Snapshot is an immutable capture of a whole document: layer metadata,
// pixels and the active layer. Pixel buffers are shared between snapshots
// whose layer content did not change.
type Snapshot struct {
	canvas   document.Canvas
	layers   []layerState
	activeID int
	nextID   int
}

type layerState struct {
	id      int
	name    string
	order   int
	visible bool
	locked  bool
	opacity int

	pixels *raster.Buffer // frozen, never written after capture
	src    *raster.Buffer // live buffer the pixels were taken from
	rev    uint64         // src revision at capture time
}

// Capture records the current state of d. When prev is non-nil, layers
// whose pixels did not change since prev reuse prev's frozen buffers.
func Capture(d *document.Document, prev *Snapshot) *Snapshot {
	s := &Snapshot{
		canvas:   d.Canvas,
		activeID: d.ActiveID,
		nextID:   d.NextID(),
		layers:   make([]layerState, len(d.Layers)),
	}
	for i, l := range d.Layers {
		s.layers[i] = layerState{
			id:      l.ID,
			name:    l.Name,
			order:   l.Order,
			visible: l.Visible,
			locked:  l.Locked,
			opacity: l.Opacity,
			pixels:  reuse(prev, l),
			src:     l.Buffer,
			rev:     l.Buffer.Rev(),
		}
	}
	return s
}

func reuse(prev *Snapshot, l *document.Layer) *raster.Buffer {
	if prev != nil {
		for _, p := range prev.layers {
			if p.id != l.ID {
				continue
			}
			if p.src == l.Buffer && p.rev == l.Buffer.Rev() {
				return p.pixels
			}
			// Buffers recreated by a restore carry identical content
			// under a new pointer.
			if p.pixels.Equal(l.Buffer) {
				return p.pixels
			}
			break
		}
	}
	return l.Buffer.Clone()
}

// Restore builds a fresh document from the snapshot. The returned document
// owns its buffers; editing it never affects the snapshot.
func (s *Snapshot) Restore() *document.Document {
	layers := make([]*document.Layer, len(s.layers))
	for i, ls := range s.layers {
		layers[i] = &document.Layer{
			ID:      ls.id,
			Name:    ls.name,
			Order:   ls.order,
			Visible: ls.visible,
			Locked:  ls.locked,
			Opacity: ls.opacity,
			Buffer:  ls.pixels.Clone(),
		}
	}
	d := document.FromLayers(s.canvas, layers, s.activeID)
	d.ReserveIDs(s.nextID)
	return d
}

// Layers returns the number of captured layers.
func (s *Snapshot) Layers() int { return len(s.layers) }

// Pixels returns the frozen pixels of the layer with the given id, or nil.
// The buffer must not be modified.
func (s *Snapshot) Pixels(id int) *raster.Buffer {
	for _, ls := range s.layers {
		if ls.id == id {
			return ls.pixels
		}
	}
	return nil
}

// Matches reports whether d is identical to the captured state.
func (s *Snapshot) Matches(d *document.Document) bool {
	if s.canvas != d.Canvas || s.activeID != d.ActiveID || len(s.layers) != len(d.Layers) {
		return false
	}
	for i, l := range d.Layers {
		ls := s.layers[i]
		if ls.id != l.ID || ls.name != l.Name || ls.order != l.Order ||
			ls.visible != l.Visible || ls.locked != l.Locked || ls.opacity != l.Opacity {
			return false
		}
		if ls.src == l.Buffer && ls.rev == l.Buffer.Rev() {
			continue
		}
		if !ls.pixels.Equal(l.Buffer) {
			return false
		}
	}
	return true
}
