package guides

import "github.com/ha1tch/deluxepixel/internal/raster"

// Section is a named region of the canvas used only for highlighting.
type Section struct {
	ID    string
	Name  string
	Area  raster.Rect
	Color raster.Color
}

// DefaultSections lays out the character body regions on a w×h canvas.
// Areas are proportional, so a 512×512 canvas gets a 128 cell wide head box
// starting at x=192.
func DefaultSections(w, h int) []Section {
	px := func(f float64, n int) int { return int(f * float64(n)) }
	rect := func(x0, y0, x1, y1 float64) raster.Rect {
		return raster.Rect{X0: px(x0, w), Y0: px(y0, h), X1: px(x1, w), Y1: px(y1, h)}
	}
	return []Section{
		{ID: "head", Name: "Head", Area: rect(0.375, 0.0625, 0.625, 0.3125), Color: raster.Color{R: 255, G: 120, B: 120, A: 255}},
		{ID: "torso", Name: "Torso", Area: rect(0.3125, 0.3125, 0.6875, 0.625), Color: raster.Color{R: 120, G: 200, B: 255, A: 255}},
		{ID: "arms", Name: "Arms", Area: rect(0.1875, 0.3125, 0.8125, 0.5625), Color: raster.Color{R: 140, G: 255, B: 140, A: 255}},
		{ID: "legs", Name: "Legs", Area: rect(0.3125, 0.625, 0.6875, 0.9375), Color: raster.Color{R: 255, G: 200, B: 80, A: 255}},
		{ID: "accessory", Name: "Accessory", Area: rect(0.0625, 0.0625, 0.9375, 0.9375), Color: raster.Color{R: 200, G: 140, B: 255, A: 255}},
	}
}

// Find returns the section with the given id.
func Find(sections []Section, id string) (*Section, bool) {
	for i := range sections {
		if sections[i].ID == id {
			return &sections[i], true
		}
	}
	return nil, false
}
