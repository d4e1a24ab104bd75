package gui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/ha1tch/deluxepixel/internal/guides"
	"github.com/ha1tch/deluxepixel/internal/tools"
)

// Draw renders one frame.
func (app *App) Draw() {
	app.syncTexture()

	rl.BeginDrawing()
	rl.ClearBackground(rl.Color{R: 40, G: 40, B: 40, A: 255})

	app.drawCanvas()
	app.drawLeftPanel()
	app.drawRightPanel()
	app.drawTopBar()

	rl.EndDrawing()
}

// canvasRect is the canvas's screen rectangle.
func (app *App) canvasRect() rl.Rectangle {
	ox, oy := app.session.Origin()
	ps := float32(app.session.PixelSize())
	c := app.session.Canvas()
	return rl.Rectangle{X: float32(ox), Y: float32(oy), Width: float32(c.Width) * ps, Height: float32(c.Height) * ps}
}

func (app *App) toScreen(x, y float64) rl.Vector2 {
	ox, oy := app.session.Origin()
	ps := float64(app.session.PixelSize())
	return rl.Vector2{X: float32(ox + x*ps), Y: float32(oy + y*ps)}
}

func (app *App) drawCanvas() {
	s := app.session
	rl.BeginScissorMode(leftPanel, topBar, screenWidth-leftPanel-rightPanel, screenHeight-topBar)
	defer rl.EndScissorMode()

	dst := app.canvasRect()

	// Checkerboard under transparent cells
	const tile = 16
	x0 := max(dst.X, leftPanel)
	y0 := max(dst.Y, topBar)
	x1 := min(dst.X+dst.Width, screenWidth-rightPanel)
	y1 := min(dst.Y+dst.Height, screenHeight)
	for ty := int((y0 - dst.Y) / tile); dst.Y+float32(ty)*tile < y1; ty++ {
		for tx := int((x0 - dst.X) / tile); dst.X+float32(tx)*tile < x1; tx++ {
			if (tx+ty)%2 != 0 {
				continue
			}
			x, y := dst.X+float32(tx)*tile, dst.Y+float32(ty)*tile
			w := min(tile, dst.X+dst.Width-x)
			h := min(tile, dst.Y+dst.Height-y)
			rl.DrawRectangleRec(rl.Rectangle{X: x, Y: y, Width: w, Height: h}, checkerColor)
		}
	}

	src := rl.Rectangle{Width: float32(app.texW), Height: float32(app.texH)}
	rl.DrawTexturePro(app.tex, src, dst, rl.Vector2{}, 0, rl.White)
	rl.DrawRectangleLinesEx(dst, 2, rl.Color{R: 100, G: 100, B: 100, A: 255})

	for _, p := range s.Overlay() {
		app.drawPrimitive(p)
	}

	ps := float32(s.PixelSize())
	preview := rlColor(s.Tools().Color)
	preview.A /= 2
	for _, p := range s.Preview() {
		v := app.toScreen(float64(p.X), float64(p.Y))
		rl.DrawRectangleRec(rl.Rectangle{X: v.X, Y: v.Y, Width: ps, Height: ps}, preview)
	}

	if sel, ok := s.Selection(); ok {
		a := app.toScreen(float64(sel.X0), float64(sel.Y0))
		b := app.toScreen(float64(sel.X1), float64(sel.Y1))
		rl.DrawRectangleLinesEx(rl.Rectangle{X: a.X, Y: a.Y, Width: b.X - a.X, Height: b.Y - a.Y}, 1, rl.Yellow)
	}

	mouse := rl.GetMousePosition()
	if inViewport(mouse) && !app.isPanning {
		app.drawCursor(mouse)
	}
	if app.isPanning {
		rl.DrawText("HAND", int32(mouse.X+10), int32(mouse.Y-10), fontSize, rl.Yellow)
	} else if rl.IsKeyDown(rl.KeySpace) {
		rl.DrawText("CLICK AND DRAG TO PAN", int32(mouse.X+10), int32(mouse.Y+10), fontSize, rl.Yellow)
	}
}

func (app *App) drawPrimitive(p guides.Primitive) {
	a := app.toScreen(p.X0, p.Y0)
	b := app.toScreen(p.X1, p.Y1)
	c := rlColor(p.Color)
	if p.Box {
		rl.DrawRectangleLinesEx(rl.Rectangle{X: a.X, Y: a.Y, Width: b.X - a.X, Height: b.Y - a.Y}, 1, c)
		return
	}
	thick := float32(1)
	if p.Kind == guides.SectionCorner {
		thick = 3
	}
	rl.DrawLineEx(a, b, thick, c)
}

func (app *App) drawCursor(mouse rl.Vector2) {
	s := app.session
	cell := s.ScreenToCell(float64(mouse.X), float64(mouse.Y))
	v := app.toScreen(float64(cell.X), float64(cell.Y))
	ps := float32(s.PixelSize())
	st := s.Tools()
	size := ps
	if st.Tool == tools.Brush || st.Tool == tools.Eraser {
		size = ps * float32(st.BrushSize)
	}
	rl.DrawRectangleLinesEx(rl.Rectangle{X: v.X, Y: v.Y, Width: size, Height: size}, 1, rl.White)
}

func (app *App) drawLeftPanel() {
	rl.DrawRectangle(0, 0, leftPanel, screenHeight, panelColor)
	rl.DrawText("DELUXE PIXEL", 10, 10, fontSize, rl.White)
	rl.DrawText("TOOLS", 10, 35, fontSize, rl.LightGray)

	mouse := rl.GetMousePosition()
	for i := range app.toolButtons {
		app.toolButtons[i].draw()
	}
	for i := range app.optButtons {
		app.optButtons[i].draw()
	}
	for _, bs := range [][]Button{app.toolButtons, app.optButtons} {
		for _, b := range bs {
			if b.hover && b.tip != "" {
				rl.DrawText(b.tip, int32(mouse.X+10), int32(mouse.Y), fontSize, rl.Yellow)
			}
		}
	}
	app.sizeSlider.draw()

	st := app.session.Tools()
	rl.DrawText("COLORS", 10, 385, fontSize, rl.LightGray)
	for i, c := range app.palette {
		r := paletteRect(i)
		rl.DrawRectangleRec(r, rlColor(c))
		if c == st.Color {
			rl.DrawRectangleLinesEx(r, 2, rl.White)
		} else {
			rl.DrawRectangleLinesEx(r, 1, buttonColor)
		}
	}

	y := int32(400 + ((len(app.palette)+2)/3)*25 + 10)
	rl.DrawRectangle(10, y, 40, 30, rlColor(st.Color))
	rl.DrawRectangleLines(10, y, 40, 30, rl.White)
	rl.DrawText(st.Color.Hex(), 10, y+36, fontSize, rl.LightGray)
}

func (app *App) drawRightPanel() {
	rl.DrawRectangle(screenWidth-rightPanel, 0, rightPanel, screenHeight, panelColor)
	rl.DrawText("LAYERS", screenWidth-rightPanel+10, 10, fontSize, rl.White)

	doc := app.session.Document()
	layers := doc.Ordered()
	for i := len(layers) - 1; i >= 0; i-- {
		l := layers[i]
		row := layerRect(len(layers) - 1 - i)
		bg := rl.Color{R: 60, G: 60, B: 60, A: 255}
		if l.ID == doc.ActiveID {
			bg = rl.Color{R: 80, G: 80, B: 120, A: 255}
		}
		rl.DrawRectangleRec(row, bg)

		vis, lock := visRect(row), lockRect(row)
		rl.DrawRectangleLinesEx(vis, 1, rl.White)
		if l.Visible {
			rl.DrawText("V", int32(vis.X+6), int32(vis.Y+6), fontSize, rl.White)
		}
		rl.DrawRectangleLinesEx(lock, 1, rl.White)
		name := rl.White
		if l.Locked {
			rl.DrawText("L", int32(lock.X+6), int32(lock.Y+6), fontSize, rl.Yellow)
			name = rl.Color{R: 200, G: 200, B: 100, A: 255}
		}
		rl.DrawText(l.Name, int32(row.X+55), int32(row.Y+10), fontSize, name)
		rl.DrawText(fmt.Sprintf("%d%%", l.Opacity), int32(row.X+55), int32(row.Y+22), fontSize, rl.LightGray)
	}

	app.opacity.draw()
	for i := range app.layerBtns {
		app.layerBtns[i].draw()
	}
}

func (app *App) drawTopBar() {
	s := app.session
	rl.DrawRectangle(leftPanel, 0, screenWidth-leftPanel-rightPanel, topBar, rl.Color{R: 60, G: 60, B: 60, A: 255})

	c := s.Canvas()
	st := s.Tools()
	sym := "OFF"
	if st.SymmetryEnabled {
		sym = axisLabel(st.Axis)
	}
	sec := s.ActiveSection()
	if sec == "" {
		sec = "-"
	}
	info := fmt.Sprintf("ZOOM: %dX | SIZE: %dX%d | TOOL: %s | LAYER: %s | SYM: %s | SECTION: %s | UNDO: %d/%d",
		s.PixelSize(), c.Width, c.Height, st.Tool, s.Document().Active().Name, sym, sec,
		s.HistoryCursor(), s.HistoryLen()-1)
	rl.DrawText(info, leftPanel+10, 12, fontSize, rl.White)

	msg := s.Notice()
	if msg == "" {
		msg = app.status
	}
	if msg != "" {
		rl.DrawText(msg, leftPanel+10, 30, fontSize, rl.Yellow)
	}
}
