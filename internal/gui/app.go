// Package gui is the raylib front end of the editor. It translates mouse
// and keyboard input into editor.Session calls and draws the composite,
// guides and panels. It holds no pixel state of its own.
package gui

import (
	"context"
	"fmt"
	"image/color"
	"path/filepath"
	"strings"

	rl "github.com/gen2brain/raylib-go/raylib"
	"go.uber.org/zap"

	"github.com/ha1tch/deluxepixel/internal/editor"
	"github.com/ha1tch/deluxepixel/internal/export"
	"github.com/ha1tch/deluxepixel/internal/project"
	"github.com/ha1tch/deluxepixel/internal/raster"
	"github.com/ha1tch/deluxepixel/internal/tools"
)

const (
	screenWidth  = 1280
	screenHeight = 800
	fontSize     = 8
	leftPanel    = 100
	rightPanel   = 200
	topBar       = 50
	layerRow     = 44
)

var toolIcons = map[tools.Tool]string{
	tools.Pencil:     "P",
	tools.Brush:      "B",
	tools.Eraser:     "E",
	tools.Fill:       "F",
	tools.Eyedropper: "I",
	tools.Line:       "L",
	tools.Rectangle:  "R",
	tools.Circle:     "C",
	tools.Select:     "S",
	tools.Move:       "M",
}

// Options configures the window.
type Options struct {
	Session *editor.Session
	Store   project.Store
	Key     string // project key used by save
	Palette []raster.Color
	Log     *zap.Logger
}

// App is the window state.
type App struct {
	ctx     context.Context
	log     *zap.Logger
	session *editor.Session
	store   project.Store
	key     string

	palette     []raster.Color
	toolButtons []Button
	optButtons  []Button
	layerBtns   []Button
	sizeSlider  Slider
	opacity     Slider

	panX, panY float32
	isPanning  bool
	panStartX  float32
	panStartY  float32

	tex         rl.Texture2D
	texW, texH  int
	pixels      []color.RGBA
	uploaded    *raster.Buffer
	uploadedRev uint64

	status string
}

// Run opens the window and blocks until it is closed or ctx is done.
func Run(ctx context.Context, opts Options) error {
	if opts.Session == nil {
		return fmt.Errorf("gui: no session")
	}
	rl.SetTraceLogLevel(rl.LogWarning)
	rl.InitWindow(screenWidth, screenHeight, "Deluxe Pixel")
	defer rl.CloseWindow()
	rl.SetTargetFPS(60)
	rl.SetExitKey(rl.KeyNull)

	app := NewApp(ctx, opts)
	defer app.Close()

	for !rl.WindowShouldClose() {
		if ctx.Err() != nil {
			break
		}
		app.Update()
		app.Draw()
	}
	return nil
}

// NewApp builds the panels. The window must already be open.
func NewApp(ctx context.Context, opts Options) *App {
	log := opts.Log
	if log == nil {
		log = zap.NewNop()
	}
	app := &App{
		ctx:     ctx,
		log:     log,
		session: opts.Session,
		store:   opts.Store,
		key:     opts.Key,
		palette: opts.Palette,
	}
	if app.key == "" {
		app.key = "untitled"
	}
	if len(app.palette) == 0 {
		app.palette = []raster.Color{raster.Black, raster.White, raster.Red, raster.Green, raster.Blue}
	}

	st := app.session.Tools()
	for i, t := range tools.All {
		app.toolButtons = append(app.toolButtons, Button{
			rect:     rl.Rectangle{X: 10 + float32(i%2)*40, Y: 50 + float32(i/2)*40, Width: 36, Height: 36},
			text:     toolIcons[t],
			tip:      t.String(),
			selected: t == st.Tool,
		})
	}
	app.optButtons = []Button{
		{rect: rl.Rectangle{X: 10, Y: 260, Width: 36, Height: 20}, text: "SYM", tip: "SYMMETRY"},
		{rect: rl.Rectangle{X: 50, Y: 260, Width: 36, Height: 20}, tip: "AXIS"},
		{rect: rl.Rectangle{X: 10, Y: 284, Width: 76, Height: 20}, text: "SOLID", tip: "FILL SHAPES"},
	}
	app.sizeSlider = Slider{
		rect:  rl.Rectangle{X: 10, Y: 330, Width: 60, Height: 20},
		value: st.BrushSize,
		min:   tools.MinBrushSize,
		max:   tools.MaxBrushSize,
		label: "SIZE",
	}

	x := float32(screenWidth - rightPanel + 10)
	for i, name := range []string{"NEW", "DUP", "DEL", "UP", "DOWN", "MERGE"} {
		app.layerBtns = append(app.layerBtns, Button{
			rect: rl.Rectangle{X: x + float32(i%3)*60, Y: screenHeight - 70 + float32(i/3)*32, Width: 56, Height: 28},
			text: name,
		})
	}
	app.opacity = Slider{
		rect:  rl.Rectangle{X: x, Y: screenHeight - 100, Width: 140, Height: 16},
		min:   0,
		max:   100,
		label: "OPACITY",
	}

	app.center()
	app.syncTexture()
	return app
}

// Close releases GPU resources.
func (app *App) Close() {
	if app.texW > 0 {
		rl.UnloadTexture(app.tex)
		app.texW, app.texH = 0, 0
	}
}

// center places the canvas in the middle of the viewport.
func (app *App) center() {
	c := app.session.Canvas()
	ps := float32(app.session.PixelSize())
	app.panX = (screenWidth - leftPanel - rightPanel - float32(c.Width)*ps) / 2
	app.panY = (screenHeight - topBar - float32(c.Height)*ps) / 2
	app.syncOrigin()
}

func (app *App) syncOrigin() {
	app.session.SetOrigin(float64(leftPanel+app.panX), float64(topBar+app.panY))
}

// syncTexture uploads the composite when it changed since the last frame.
func (app *App) syncTexture() {
	comp := app.session.Composite()
	w, h := comp.Width(), comp.Height()
	if w != app.texW || h != app.texH {
		app.Close()
		img := rl.GenImageColor(w, h, rl.Blank)
		app.tex = rl.LoadTextureFromImage(img)
		rl.UnloadImage(img)
		rl.SetTextureFilter(app.tex, rl.FilterPoint)
		app.texW, app.texH = w, h
		app.pixels = make([]color.RGBA, w*h)
		app.uploaded = nil
	}
	if comp == app.uploaded && comp.Rev() == app.uploadedRev {
		return
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := comp.At(x, y)
			app.pixels[y*w+x] = color.RGBA{R: c.R, G: c.G, B: c.B, A: c.A}
		}
	}
	rl.UpdateTexture(app.tex, app.pixels)
	app.uploaded, app.uploadedRev = comp, comp.Rev()
}

func (app *App) save() {
	if app.store == nil {
		app.status = "NO PROJECT STORE"
		return
	}
	if err := app.session.Save(app.ctx, app.store, app.key); err != nil {
		app.log.Error("save failed", zap.String("key", app.key), zap.Error(err))
		app.status = "SAVE FAILED"
		return
	}
	app.status = "SAVED " + app.key
}

func (app *App) exportPNG() {
	res, err := app.session.Export()
	if err != nil {
		app.log.Error("export failed", zap.Error(err))
		app.status = "EXPORT FAILED"
		return
	}
	base := filepath.Base(app.key)
	path := strings.TrimSuffix(base, filepath.Ext(base)) + ".png"
	if err := export.WriteFile(path, res.Image, export.Options{Format: export.PNG}); err != nil {
		app.log.Error("export failed", zap.String("path", path), zap.Error(err))
		app.status = "EXPORT FAILED"
		return
	}
	app.log.Info("exported", zap.String("path", path))
	app.status = "EXPORTED " + path
}

func rlColor(c raster.Color) rl.Color {
	return rl.Color{R: c.R, G: c.G, B: c.B, A: c.A}
}
