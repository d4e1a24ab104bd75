package gui

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/ha1tch/deluxepixel/internal/symmetry"
	"github.com/ha1tch/deluxepixel/internal/tools"
)

var toolKeys = map[int32]tools.Tool{
	rl.KeyP: tools.Pencil,
	rl.KeyB: tools.Brush,
	rl.KeyE: tools.Eraser,
	rl.KeyF: tools.Fill,
	rl.KeyI: tools.Eyedropper,
	rl.KeyL: tools.Line,
	rl.KeyR: tools.Rectangle,
	rl.KeyC: tools.Circle,
	rl.KeyS: tools.Select,
	rl.KeyM: tools.Move,
}

var sectionKeys = []int32{rl.KeyOne, rl.KeyTwo, rl.KeyThree, rl.KeyFour, rl.KeyFive, rl.KeySix, rl.KeySeven, rl.KeyEight, rl.KeyNine}

// Update handles one frame of input.
func (app *App) Update() {
	mouse := rl.GetMousePosition()

	app.handleKeys()

	// Space+drag panning
	if rl.IsKeyDown(rl.KeySpace) && rl.IsMouseButtonPressed(rl.MouseLeftButton) {
		app.isPanning = true
		app.panStartX = mouse.X - app.panX
		app.panStartY = mouse.Y - app.panY
	}
	if app.isPanning && rl.IsMouseButtonDown(rl.MouseLeftButton) {
		app.panX = mouse.X - app.panStartX
		app.panY = mouse.Y - app.panStartY
		app.syncOrigin()
	}
	if rl.IsMouseButtonReleased(rl.MouseLeftButton) || !rl.IsKeyDown(rl.KeySpace) {
		app.isPanning = false
	}
	if app.isPanning {
		return
	}

	if rl.IsMouseButtonDown(rl.MouseMiddleButton) {
		d := rl.GetMouseDelta()
		app.panX += d.X
		app.panY += d.Y
		app.syncOrigin()
	}

	if wheel := rl.GetMouseWheelMove(); wheel != 0 && inViewport(mouse) {
		app.zoom(mouse, wheel)
	}

	app.updateLeftPanel(mouse)
	app.updateRightPanel(mouse)
	app.updateCanvas(mouse)
}

func (app *App) handleKeys() {
	s := app.session
	if rl.IsKeyDown(rl.KeyLeftControl) || rl.IsKeyDown(rl.KeyRightControl) {
		shift := rl.IsKeyDown(rl.KeyLeftShift) || rl.IsKeyDown(rl.KeyRightShift)
		switch {
		case rl.IsKeyPressed(rl.KeyZ) && shift, rl.IsKeyPressed(rl.KeyY):
			s.Redo()
		case rl.IsKeyPressed(rl.KeyZ):
			s.Undo()
		case rl.IsKeyPressed(rl.KeyS):
			app.save()
		case rl.IsKeyPressed(rl.KeyE):
			app.exportPNG()
		}
		return
	}

	for k, t := range toolKeys {
		if rl.IsKeyPressed(k) {
			app.selectTool(t)
		}
	}
	if rl.IsKeyPressed(rl.KeyEscape) {
		s.Cancel()
		s.ClearSelection()
	}
	if rl.IsKeyPressed(rl.KeyG) {
		s.SetShowGrid(!s.ShowGrid())
	}
	if rl.IsKeyPressed(rl.KeyH) {
		s.SetShowGuides(!s.ShowGuides())
	}
	if rl.IsKeyPressed(rl.KeyX) {
		st := s.Tools()
		s.SetSymmetry(!st.SymmetryEnabled, st.Axis)
	}
	if rl.IsKeyPressed(rl.KeyZero) {
		s.SetActiveSection("")
	}
	secs := s.Sections()
	for i, k := range sectionKeys {
		if i < len(secs) && rl.IsKeyPressed(k) {
			s.SetActiveSection(secs[i].ID)
		}
	}
}

func (app *App) selectTool(t tools.Tool) {
	app.session.SetTool(t)
	for i := range app.toolButtons {
		app.toolButtons[i].selected = tools.All[i] == t
	}
}

// zoom steps the pixel size and keeps the cell under the mouse in place.
func (app *App) zoom(mouse rl.Vector2, wheel float32) {
	s := app.session
	old := s.PixelSize()
	step := 1
	if wheel < 0 {
		step = -1
	}
	s.SetPixelSize(old + step)
	if ps := s.PixelSize(); ps != old {
		f := float32(ps) / float32(old)
		app.panX = mouse.X - leftPanel - (mouse.X-leftPanel-app.panX)*f
		app.panY = mouse.Y - topBar - (mouse.Y-topBar-app.panY)*f
		app.syncOrigin()
	}
}

func (app *App) updateLeftPanel(mouse rl.Vector2) {
	s := app.session
	for i := range app.toolButtons {
		if app.toolButtons[i].clicked(mouse) {
			app.selectTool(tools.All[i])
		}
	}

	st := s.Tools()
	if app.optButtons[0].clicked(mouse) {
		s.SetSymmetry(!st.SymmetryEnabled, st.Axis)
	}
	if app.optButtons[1].clicked(mouse) {
		s.SetSymmetry(st.SymmetryEnabled, (st.Axis+1)%(symmetry.Both+1))
	}
	if app.optButtons[2].clicked(mouse) {
		s.SetFillShapes(!st.FillShapes)
	}
	st = s.Tools()
	app.optButtons[0].selected = st.SymmetryEnabled
	app.optButtons[1].text = axisLabel(st.Axis)
	app.optButtons[2].selected = st.FillShapes

	app.sizeSlider.value = st.BrushSize
	if app.sizeSlider.update(mouse) {
		s.SetBrushSize(app.sizeSlider.value)
	}

	if !rl.IsMouseButtonPressed(rl.MouseLeftButton) {
		return
	}
	for i, c := range app.palette {
		if rl.CheckCollisionPointRec(mouse, paletteRect(i)) {
			s.SetColor(c)
		}
	}
}

func (app *App) updateRightPanel(mouse rl.Vector2) {
	s := app.session
	doc := s.Document()
	active := doc.ActiveID

	for i := range app.layerBtns {
		if !app.layerBtns[i].clicked(mouse) {
			continue
		}
		l := doc.Layer(active)
		switch i {
		case 0:
			s.AddLayer("")
		case 1:
			s.DuplicateLayer(active)
		case 2:
			s.DeleteLayer(active)
		case 3:
			s.MoveLayer(active, l.Order+1)
		case 4:
			s.MoveLayer(active, l.Order-1)
		case 5:
			s.MergeDown(active)
		}
		return
	}

	if l := s.Document().Active(); l != nil {
		app.opacity.value = l.Opacity
		if app.opacity.update(mouse) {
			s.SetLayerOpacity(l.ID, app.opacity.value)
		}
	}

	if !rl.IsMouseButtonPressed(rl.MouseLeftButton) {
		return
	}
	layers := s.Document().Ordered()
	for i := len(layers) - 1; i >= 0; i-- {
		l := layers[i]
		row := layerRect(len(layers) - 1 - i)
		if !rl.CheckCollisionPointRec(mouse, row) {
			continue
		}
		switch {
		case rl.CheckCollisionPointRec(mouse, visRect(row)):
			s.SetLayerVisible(l.ID, !l.Visible)
		case rl.CheckCollisionPointRec(mouse, lockRect(row)):
			s.SetLayerLocked(l.ID, !l.Locked)
		default:
			s.SetActiveLayer(l.ID)
		}
		return
	}
}

func (app *App) updateCanvas(mouse rl.Vector2) {
	s := app.session
	x, y := float64(mouse.X), float64(mouse.Y)
	switch {
	case rl.IsMouseButtonPressed(rl.MouseLeftButton) && inViewport(mouse) && !rl.IsKeyDown(rl.KeySpace):
		s.PointerDown(x, y)
	case rl.IsMouseButtonReleased(rl.MouseLeftButton) && s.Drawing():
		s.PointerUp(x, y)
	case rl.IsMouseButtonDown(rl.MouseLeftButton) && s.Drawing():
		s.PointerMove(x, y)
	}
}

func inViewport(p rl.Vector2) bool {
	return p.X > leftPanel && p.X < screenWidth-rightPanel && p.Y > topBar
}

func paletteRect(i int) rl.Rectangle {
	return rl.Rectangle{X: float32(10 + (i%3)*25), Y: float32(400 + (i/3)*25), Width: 20, Height: 20}
}

// layerRect is the i-th row of the layer list, counted from the top.
func layerRect(i int) rl.Rectangle {
	return rl.Rectangle{X: screenWidth - rightPanel + 10, Y: float32(40 + i*layerRow), Width: rightPanel - 20, Height: layerRow - 6}
}

func visRect(row rl.Rectangle) rl.Rectangle {
	return rl.Rectangle{X: row.X + 5, Y: row.Y + 9, Width: 20, Height: 20}
}

func lockRect(row rl.Rectangle) rl.Rectangle {
	return rl.Rectangle{X: row.X + 30, Y: row.Y + 9, Width: 20, Height: 20}
}

func axisLabel(a symmetry.Axis) string {
	switch a {
	case symmetry.Horizontal:
		return "H"
	case symmetry.Both:
		return "VH"
	}
	return "V"
}
