package editor

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/ha1tch/deluxepixel/internal/config"
	"github.com/ha1tch/deluxepixel/internal/export"
	"github.com/ha1tch/deluxepixel/internal/guides"
	"github.com/ha1tch/deluxepixel/internal/history"
	"github.com/ha1tch/deluxepixel/internal/project"
)

// PixelSize returns the zoom factor in screen pixels per cell.
func (s *Session) PixelSize() int { return s.pixelSize }

// SetPixelSize changes the zoom factor, clamped to 1..16. Pixel data is
// unaffected.
func (s *Session) SetPixelSize(n int) { s.pixelSize = config.ClampPixelSize(n) }

// Origin returns the screen position of cell (0,0).
func (s *Session) Origin() (x, y float64) { return s.originX, s.originY }

func (s *Session) SetOrigin(x, y float64) { s.originX, s.originY = x, y }

func (s *Session) ShowGrid() bool   { return s.showGrid }
func (s *Session) ShowGuides() bool { return s.showGuides }

func (s *Session) SetShowGrid(on bool)   { s.showGrid = on }
func (s *Session) SetShowGuides(on bool) { s.showGuides = on }

func (s *Session) SetGridStep(n int) {
	if n > 0 {
		s.gridStep = n
	}
}

// Sections returns the character sections.
func (s *Session) Sections() []guides.Section { return s.sections }

// ActiveSection returns the highlighted section id, or "".
func (s *Session) ActiveSection() string { return s.activeSection }

// SetActiveSection highlights a section. An empty id clears the highlight;
// unknown ids are rejected.
func (s *Session) SetActiveSection(id string) bool {
	if id == "" {
		s.activeSection = ""
		return true
	}
	if _, ok := guides.Find(s.sections, id); !ok {
		return false
	}
	s.activeSection = id
	return true
}

func (s *Session) CharacterGender() string { return s.gender }

func (s *Session) SetCharacterGender(g string) { s.gender = g }

// Overlay returns the guide primitives for the current view settings.
func (s *Session) Overlay() []guides.Primitive {
	opts := guides.Options{
		ShowGrid:   s.showGrid,
		ShowGuides: s.showGuides,
		GridStep:   s.gridStep,
	}
	if sec, ok := guides.Find(s.sections, s.activeSection); ok {
		opts.Active = sec
	}
	return guides.Render(s.doc.Canvas, opts)
}

// Export flattens the document and builds its project record.
func (s *Session) Export() (export.Result, error) {
	s.Cancel()
	return export.Export(s.doc, export.Meta{
		PixelSize:       s.pixelSize,
		ActiveSection:   s.activeSection,
		Sections:        s.sections,
		CharacterGender: s.gender,
		Now:             s.now,
	})
}

// Load replaces the document with a stored record and starts a fresh
// history. The session is unchanged when the record is invalid.
func (s *Session) Load(st project.State) error {
	d, err := st.Document()
	if err != nil {
		return err
	}
	s.Cancel()
	s.disp.ClearSelection()
	s.doc = d
	s.compValid = false
	s.hist.Reset(history.Capture(d, nil))
	if st.PixelSize > 0 {
		s.pixelSize = config.ClampPixelSize(st.PixelSize)
	}
	if secs := st.Sections(); len(secs) > 0 {
		s.sections = secs
	} else {
		s.sections = guides.DefaultSections(d.Canvas.Width, d.Canvas.Height)
	}
	s.activeSection = ""
	s.SetActiveSection(st.ActiveSection)
	if st.CharacterGender != "" {
		s.gender = st.CharacterGender
	}
	s.log.Debug("session state replaced",
		zap.Int("layers", len(d.Layers)),
		zap.Int("width", d.Canvas.Width),
		zap.Int("height", d.Canvas.Height))
	return nil
}

// Save exports the session into store under key.
func (s *Session) Save(ctx context.Context, store project.Store, key string) error {
	res, err := s.Export()
	if err != nil {
		return err
	}
	if err := store.Save(ctx, key, res.State); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// Open loads key from store into the session.
func (s *Session) Open(ctx context.Context, store project.Store, key string) error {
	st, err := store.Load(ctx, key)
	if err != nil {
		return fmt.Errorf("open %s: %w", key, err)
	}
	if err := s.Load(st); err != nil {
		return fmt.Errorf("open %s: %w", key, err)
	}
	return nil
}
