// Package editor owns a document and everything needed to edit it: tool
// settings, the stroke dispatcher, undo history, the composite cache and the
// view transform. All mutation goes through a Session.
//
// A Session is single-threaded. Callers running it from several goroutines
// must serialize access themselves.
package editor

import (
	"image"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/ha1tch/deluxepixel/internal/config"
	"github.com/ha1tch/deluxepixel/internal/document"
	"github.com/ha1tch/deluxepixel/internal/guides"
	"github.com/ha1tch/deluxepixel/internal/history"
	"github.com/ha1tch/deluxepixel/internal/raster"
	"github.com/ha1tch/deluxepixel/internal/symmetry"
	"github.com/ha1tch/deluxepixel/internal/tools"
)

// Session is the editor controller.
type Session struct {
	log *zap.Logger

	doc   *document.Document
	tools tools.State
	disp  *tools.Dispatcher
	hist  *history.Stack
	limit int

	composite *raster.Buffer
	compKey   document.Key
	compValid bool

	pixelSize        int
	originX, originY float64

	showGrid      bool
	showGuides    bool
	gridStep      int
	sections      []guides.Section
	activeSection string
	gender        string
	now           func() time.Time

	notice string
}

// Option configures a Session.
type Option func(*Session)

func WithLogger(l *zap.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.log = l
		}
	}
}

// WithHistoryLimit caps the number of undo entries; 0 keeps all.
func WithHistoryLimit(n int) Option {
	return func(s *Session) { s.limit = n }
}

func WithToolState(st tools.State) Option {
	return func(s *Session) { s.tools = st }
}

func WithPixelSize(n int) Option {
	return func(s *Session) { s.pixelSize = config.ClampPixelSize(n) }
}

func WithGuides(showGrid, showGuides bool, gridStep int) Option {
	return func(s *Session) {
		s.showGrid, s.showGuides, s.gridStep = showGrid, showGuides, gridStep
	}
}

func WithSections(ss []guides.Section) Option {
	return func(s *Session) { s.sections = ss }
}

func WithCharacterGender(g string) Option {
	return func(s *Session) { s.gender = g }
}

// WithClock overrides the time source used for export timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

// New opens an empty w×h document.
func New(w, h int, opts ...Option) *Session {
	s := &Session{
		log:       zap.NewNop(),
		doc:       document.New(w, h),
		tools:     tools.DefaultState(),
		pixelSize: 1,
		gridStep:  1,
		now:       time.Now,
	}
	for _, o := range opts {
		o(s)
	}
	s.disp = tools.NewDispatcher(&s.tools)
	s.disp.Sample = func(x, y int) raster.Color { return s.Composite().At(x, y) }
	s.hist = history.New(history.Capture(s.doc, nil), s.limit)
	if s.sections == nil {
		s.sections = guides.DefaultSections(w, h)
	}
	s.log.Debug("session opened", zap.Int("width", w), zap.Int("height", h))
	return s
}

// NewFromConfig opens an empty document sized and configured by cfg.
func NewFromConfig(cfg config.Config, log *zap.Logger) *Session {
	cfg = cfg.Normalize()
	return New(cfg.Canvas.Width, cfg.Canvas.Height,
		WithLogger(log),
		WithHistoryLimit(cfg.History.Limit),
		WithToolState(cfg.ToolState()),
		WithPixelSize(cfg.Canvas.PixelSize),
		WithGuides(cfg.Guides.ShowGrid, cfg.Guides.ShowGuides, cfg.Guides.GridStep),
		WithSections(cfg.CharacterSections()),
		WithCharacterGender(cfg.CharacterGender),
	)
}

// Document returns the live document. Callers must not mutate it directly.
func (s *Session) Document() *document.Document { return s.doc }

// Canvas returns the document's fixed size.
func (s *Session) Canvas() document.Canvas { return s.doc.Canvas }

// Tools returns a copy of the tool settings.
func (s *Session) Tools() tools.State { return s.tools }

// Notice returns a short message about the last rejected operation, or "".
func (s *Session) Notice() string { return s.notice }

func (s *Session) HistoryLen() int    { return s.hist.Len() }
func (s *Session) HistoryCursor() int { return s.hist.Cursor() }
func (s *Session) CanUndo() bool      { return s.hist.CanUndo() }
func (s *Session) CanRedo() bool      { return s.hist.CanRedo() }

// Drawing reports whether a stroke is open.
func (s *Session) Drawing() bool { return s.disp.Active() }

// ScreenToCell converts a screen position to a cell using the current
// origin and pixel size, clamped to the canvas.
func (s *Session) ScreenToCell(sx, sy float64) image.Point {
	ps := float64(s.pixelSize)
	x := int(math.Floor((sx - s.originX) / ps))
	y := int(math.Floor((sy - s.originY) / ps))
	c := s.doc.Canvas
	return image.Pt(clampInt(x, 0, c.Width-1), clampInt(y, 0, c.Height-1))
}

// PointerDown starts a stroke at a screen position.
func (s *Session) PointerDown(sx, sy float64) { s.CellDown(s.ScreenToCell(sx, sy)) }

// PointerMove continues the stroke.
func (s *Session) PointerMove(sx, sy float64) { s.CellMove(s.ScreenToCell(sx, sy)) }

// PointerUp ends the stroke. Releases outside the canvas are clamped to its
// edge.
func (s *Session) PointerUp(sx, sy float64) { s.CellUp(s.ScreenToCell(sx, sy)) }

// CellDown starts a stroke at a cell. An open stroke is finished first.
func (s *Session) CellDown(p image.Point) {
	s.notice = ""
	if l := s.doc.Active(); l.Locked && writes(s.tools.Tool) {
		s.notice = "layer " + l.Name + " is locked"
		s.log.Warn("draw on locked layer ignored", zap.String("layer", l.Name), zap.Stringer("tool", s.tools.Tool))
	}
	if prev, ok := s.disp.Down(s.doc, p); ok {
		s.finishStroke(prev)
	}
}

// CellMove continues the stroke to a cell.
func (s *Session) CellMove(p image.Point) { s.disp.Move(p) }

// CellUp ends the stroke at a cell and commits it to history when it
// changed the document.
func (s *Session) CellUp(p image.Point) {
	if !s.disp.Active() {
		return
	}
	s.finishStroke(s.disp.Up(p))
}

// Cancel finishes an open stroke, keeping freehand edits and dropping
// pending shapes.
func (s *Session) Cancel() {
	if s.disp.Active() {
		s.finishStroke(s.disp.Cancel())
	}
}

func (s *Session) finishStroke(r tools.Result) {
	if r.Sampled {
		s.log.Debug("color sampled", zap.Stringer("color", s.tools.Color))
	}
	if !r.Changed {
		return
	}
	s.commit("stroke", zap.Stringer("tool", r.Tool), zap.Int("cells", r.Cells))
}

func (s *Session) commit(what string, fields ...zap.Field) {
	s.hist.Commit(history.Capture(s.doc, s.hist.Current()))
	fields = append(fields, zap.Int("history", s.hist.Len()))
	s.log.Debug(what+" committed", fields...)
}

func writes(t tools.Tool) bool {
	return t != tools.Eyedropper && t != tools.Select
}

// SetTool switches tools, finishing any open stroke first.
func (s *Session) SetTool(t tools.Tool) {
	s.Cancel()
	s.tools.Tool = t
}

func (s *Session) SetColor(c raster.Color) { s.tools.Color = c }

func (s *Session) SetBrushSize(n int) { s.tools.BrushSize = tools.ClampBrushSize(n) }

func (s *Session) SetSymmetry(enabled bool, axis symmetry.Axis) {
	s.tools.SymmetryEnabled = enabled
	s.tools.Axis = axis
}

func (s *Session) SetFillShapes(on bool) { s.tools.FillShapes = on }

// Selection returns the active selection rectangle.
func (s *Session) Selection() (raster.Rect, bool) { return s.disp.Selection() }

// ClearSelection drops the selection.
func (s *Session) ClearSelection() { s.disp.ClearSelection() }

// Preview returns the cells of the pending shape, for display only.
func (s *Session) Preview() []image.Point { return s.disp.Preview() }

// Undo restores the previous history entry. It reports false when there
// is nothing to undo.
func (s *Session) Undo() bool {
	s.Cancel()
	snap, ok := s.hist.Undo()
	if !ok {
		return false
	}
	s.restore(snap)
	s.log.Debug("undo", zap.Int("cursor", s.hist.Cursor()), zap.Int("history", s.hist.Len()))
	return true
}

// Redo re-applies the next history entry. It reports false at the newest
// entry.
func (s *Session) Redo() bool {
	s.Cancel()
	snap, ok := s.hist.Redo()
	if !ok {
		return false
	}
	s.restore(snap)
	s.log.Debug("redo", zap.Int("cursor", s.hist.Cursor()), zap.Int("history", s.hist.Len()))
	return true
}

func (s *Session) restore(snap *history.Snapshot) {
	s.doc = snap.Restore()
	s.compValid = false
	if sel, ok := s.disp.Selection(); ok {
		s.disp.SetSelection(sel.Intersect(s.doc.Canvas.Bounds()))
	}
}

// Composite returns the flattened visible layers. The buffer is cached and
// recomputed only when a layer's pixels or metadata changed; callers must
// not modify it.
func (s *Session) Composite() *raster.Buffer {
	key := document.CompositeKey(s.doc)
	if s.compValid && key.Equal(s.compKey) {
		return s.composite
	}
	c := s.doc.Canvas
	if s.composite == nil || s.composite.Width() != c.Width || s.composite.Height() != c.Height {
		s.composite = raster.NewBuffer(c.Width, c.Height)
	}
	document.CompositeInto(s.composite, s.doc)
	s.compKey = key
	s.compValid = true
	return s.composite
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
