package gui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

var (
	panelColor    = rl.Color{R: 50, G: 50, B: 50, A: 255}
	buttonColor   = rl.Color{R: 70, G: 70, B: 70, A: 255}
	hoverColor    = rl.Color{R: 80, G: 80, B: 80, A: 255}
	selectedColor = rl.Color{R: 100, G: 100, B: 150, A: 255}
	borderColor   = rl.Color{R: 90, G: 90, B: 90, A: 255}
	checkerColor  = rl.Color{R: 150, G: 150, B: 150, A: 255}
)

// Button is a clickable rectangle with a short label.
type Button struct {
	rect     rl.Rectangle
	text     string
	tip      string
	hover    bool
	selected bool
}

// clicked updates the hover state and reports a left click on b.
func (b *Button) clicked(mouse rl.Vector2) bool {
	b.hover = rl.CheckCollisionPointRec(mouse, b.rect)
	return b.hover && rl.IsMouseButtonPressed(rl.MouseLeftButton)
}

func (b *Button) draw() {
	c := buttonColor
	if b.selected {
		c = selectedColor
	} else if b.hover {
		c = hoverColor
	}
	rl.DrawRectangleRec(b.rect, c)
	rl.DrawRectangleLinesEx(b.rect, 1, borderColor)
	w := rl.MeasureText(b.text, fontSize)
	x := int32(b.rect.X + b.rect.Width/2 - float32(w)/2)
	y := int32(b.rect.Y + b.rect.Height/2 - fontSize/2)
	rl.DrawText(b.text, x, y, fontSize, rl.White)
}

// Slider picks an integer in [min, max] by dragging.
type Slider struct {
	rect     rl.Rectangle
	value    int
	min, max int
	label    string
}

// update drags the slider and reports whether its value changed.
func (s *Slider) update(mouse rl.Vector2) bool {
	if !rl.CheckCollisionPointRec(mouse, s.rect) || !rl.IsMouseButtonDown(rl.MouseLeftButton) {
		return false
	}
	rel := (mouse.X - s.rect.X) / s.rect.Width
	v := s.min + int(rel*float32(s.max-s.min)+0.5)
	v = max(s.min, min(s.max, v))
	if v == s.value {
		return false
	}
	s.value = v
	return true
}

func (s *Slider) draw() {
	rl.DrawText(s.label, int32(s.rect.X), int32(s.rect.Y-12), fontSize, rl.LightGray)
	rl.DrawRectangleRec(s.rect, rl.Color{R: 60, G: 60, B: 60, A: 255})
	pos := s.rect.X + float32(s.value-s.min)/float32(s.max-s.min)*s.rect.Width
	rl.DrawRectangle(int32(pos-2), int32(s.rect.Y), 4, int32(s.rect.Height), rl.White)
	rl.DrawText(fmt.Sprintf("%d", s.value), int32(s.rect.X+s.rect.Width+4), int32(s.rect.Y+6), fontSize, rl.White)
}
