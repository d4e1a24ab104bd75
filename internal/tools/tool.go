package tools

import (
	"fmt"
	"strings"

	"github.com/ha1tch/deluxepixel/internal/raster"
	"github.com/ha1tch/deluxepixel/internal/symmetry"
)

// Tool types
type Tool int

const (
	Pencil Tool = iota
	Brush
	Eraser
	Fill
	Eyedropper
	Line
	Rectangle
	Circle
	Select
	Move
)

var toolNames = []string{"PENCIL", "BRUSH", "ERASER", "FILL", "PICKER", "LINE", "RECT", "CIRCLE", "SELECT", "MOVE"}

// All lists every tool in palette order.
var All = []Tool{Pencil, Brush, Eraser, Fill, Eyedropper, Line, Rectangle, Circle, Select, Move}

func (t Tool) String() string {
	if int(t) >= 0 && int(t) < len(toolNames) {
		return toolNames[t]
	}
	return "UNKNOWN"
}

// ParseTool accepts a tool name case-insensitively. "eyedropper" and
// "bucket" are accepted as aliases.
func ParseTool(s string) (Tool, error) {
	switch strings.ToUpper(s) {
	case "EYEDROPPER":
		return Eyedropper, nil
	case "BUCKET":
		return Fill, nil
	case "RECTANGLE":
		return Rectangle, nil
	}
	for i, n := range toolNames {
		if strings.EqualFold(s, n) {
			return Tool(i), nil
		}
	}
	return 0, fmt.Errorf("unknown tool %q", s)
}

// Shape reports whether the tool draws only when the pointer is released.
func (t Tool) Shape() bool {
	return t == Line || t == Rectangle || t == Circle
}

// Freehand reports whether the tool paints on every pointer sample.
func (t Tool) Freehand() bool {
	return t == Pencil || t == Brush || t == Eraser
}

// DefaultBrushAlpha is the opacity brush strokes are blended at.
const DefaultBrushAlpha = 0.8

// Brush size limits
const (
	MinBrushSize = 1
	MaxBrushSize = 64
)

// State is the session-scoped tool configuration. It is not part of the
// artwork.
type State struct {
	Tool            Tool
	Color           raster.Color
	BrushSize       int
	BrushAlpha      float64
	SymmetryEnabled bool
	Axis            symmetry.Axis
	FillShapes      bool
}

// DefaultState returns black pencil, brush size 4.
func DefaultState() State {
	return State{
		Tool:       Pencil,
		Color:      raster.Black,
		BrushSize:  4,
		BrushAlpha: DefaultBrushAlpha,
		Axis:       symmetry.Vertical,
	}
}

// ClampBrushSize limits a brush size to the supported range.
func ClampBrushSize(n int) int {
	if n < MinBrushSize {
		return MinBrushSize
	}
	if n > MaxBrushSize {
		return MaxBrushSize
	}
	return n
}
