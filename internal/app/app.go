// Package app runs the studio window: the frame loop that feeds input to
// the panels, renders the avatar and presents the frame.
package app

import (
	"fmt"
	"time"

	"github.com/sqweek/dialog"
	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/lipsync-avatar/internal/engine/camera"
	"github.com/Faultbox/lipsync-avatar/internal/engine/debug"
	"github.com/Faultbox/lipsync-avatar/internal/engine/input"
	"github.com/Faultbox/lipsync-avatar/internal/engine/renderer"
	"github.com/Faultbox/lipsync-avatar/internal/engine/scene"
	"github.com/Faultbox/lipsync-avatar/internal/engine/ui2d"
	"github.com/Faultbox/lipsync-avatar/internal/engine/ui2d/glrenderer"
	"github.com/Faultbox/lipsync-avatar/internal/engine/window"
	"github.com/Faultbox/lipsync-avatar/internal/ingest"
	"github.com/Faultbox/lipsync-avatar/internal/logger"
	"github.com/Faultbox/lipsync-avatar/internal/studio"
	"github.com/Faultbox/lipsync-avatar/internal/studio/ui"
)

// Config holds app configuration.
type Config struct {
	Title         string
	Width         int
	Height        int
	Fullscreen    bool
	VSync         bool
	FPSLimit      int
	ShowFPS       bool
	ScreenshotDir string
}

// Window background around the preview (gray-800).
var background = [3]float32{0.122, 0.161, 0.216}

// App is the studio window.
type App struct {
	config  Config
	running bool
	log     *zap.Logger

	window *window.Window
	input  *input.Input
	screen *renderer.Renderer
	ui     *glrenderer.Renderer
	ctx    *ui2d.Context
	panels *ui.Panels
	scene  *scene.Scene
	camera *camera.OrbitCamera

	session     *studio.Session
	screenshots *debug.ScreenshotCapture

	start    time.Time
	imageGen uint64
	preview  ui2d.Rect
	dragging bool
	lastX    int
	lastY    int

	browsing bool
	picked   chan string
}

// New creates the window and every GL resource. The session is owned by
// the caller.
func New(cfg Config, session *studio.Session) (*App, error) {
	a := &App{
		config:      cfg,
		log:         logger.Named("app"),
		session:     session,
		camera:      camera.NewOrbitCamera(),
		screenshots: debug.NewScreenshotCapture(cfg.ScreenshotDir, "avatar"),
		picked:      make(chan string, 1),
	}
	a.log.Info("initializing studio",
		zap.String("title", cfg.Title),
		zap.Int("width", cfg.Width),
		zap.Int("height", cfg.Height),
	)

	// Window first: every other constructor needs its GL context.
	var err error
	a.window, err = window.New(window.Config{
		Title:      cfg.Title,
		Width:      cfg.Width,
		Height:     cfg.Height,
		Fullscreen: cfg.Fullscreen,
		VSync:      cfg.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	dw, dh := a.window.DrawableSize()
	a.screen = renderer.New(renderer.Config{Width: dw, Height: dh, Background: background})

	ww, wh := a.window.GetSize()
	a.ui, err = glrenderer.New(ww, wh)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to create ui renderer: %w", err)
	}
	a.ctx = ui2d.NewContext(a.ui)
	a.panels = ui.New(a.ctx, session)

	sceneCfg := scene.DefaultConfig()
	sceneCfg.Background = background
	a.scene, err = scene.New(sceneCfg)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to create scene: %w", err)
	}

	a.input = input.New()
	a.layout()

	a.log.Info("studio initialized")
	return a, nil
}

// Run starts the frame loop and returns when the window closes.
func (a *App) Run() error {
	a.running = true
	a.start = time.Now()

	lastTime := time.Now()
	frameCount := 0
	fpsTimer := time.Now()

	a.log.Info("starting frame loop")

	for a.running {
		now := time.Now()
		dt := now.Sub(lastTime).Seconds()
		lastTime = now

		// 1. Process input
		if a.input.Update() {
			a.running = false
			break
		}
		a.handleEvents()
		a.pollDialog()

		// 2. Update
		a.layout()
		a.syncImage()

		// 3. Render
		a.render()

		// 4. Present
		a.window.SwapBuffers()
		a.limitFrame(now)

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			if a.config.ShowFPS {
				a.log.Debug("fps", zap.Int("count", frameCount), zap.String("dt", fmt.Sprintf("%.2fms", dt*1000)))
			}
			frameCount = 0
			fpsTimer = time.Now()
		}
	}

	return nil
}

// Close releases GL resources and the window.
func (a *App) Close() {
	a.log.Info("closing studio")

	if a.input != nil {
		a.input.Close()
	}
	if a.scene != nil {
		a.scene.Destroy()
	}
	if a.ui != nil {
		a.ui.Close()
	}
	if a.window != nil {
		a.window.Close()
	}
}

func (a *App) handleEvents() {
	in := a.ctx.Input()

	for _, e := range a.input.Events() {
		switch e.Type {
		case input.EventMouseMove:
			in.MouseX, in.MouseY = float32(e.MouseX), float32(e.MouseY)
			if a.dragging {
				a.camera.HandleDrag(float32(e.MouseX-a.lastX), float32(e.MouseY-a.lastY))
			}
			a.lastX, a.lastY = e.MouseX, e.MouseY

		case input.EventMouseDown:
			if e.Button != sdl.BUTTON_LEFT {
				continue
			}
			in.MouseX, in.MouseY = float32(e.MouseX), float32(e.MouseY)
			in.MouseLeftDown = true
			in.MouseLeftClicked = true
			a.lastX, a.lastY = e.MouseX, e.MouseY
			a.dragging = a.overPreview(in.MouseX, in.MouseY)

		case input.EventMouseUp:
			if e.Button == sdl.BUTTON_LEFT {
				in.MouseLeftDown = false
				a.dragging = false
			}

		case input.EventMouseWheel:
			in.ScrollY += e.WheelY
			if a.overPreview(in.MouseX, in.MouseY) {
				a.camera.HandleZoom(e.WheelY)
			}

		case input.EventTextInput:
			in.TextInput += e.Text

		case input.EventKeyDown:
			a.handleKey(e, in)

		case input.EventDropFile:
			a.loadImage(e.Text)
		}
	}
}

func (a *App) handleKey(e input.Event, in *ui2d.InputState) {
	switch e.Key {
	case sdl.SCANCODE_BACKSPACE:
		in.KeyBackspacePressed = true
	case sdl.SCANCODE_RETURN, sdl.SCANCODE_KP_ENTER:
		in.KeyEnterPressed = true
	case sdl.SCANCODE_ESCAPE:
		if a.ctx.HasFocus() {
			in.KeyEscapePressed = true
		} else {
			a.running = false
		}
	case sdl.SCANCODE_F12:
		if !e.Repeat {
			a.snapshot()
		}
	case sdl.SCANCODE_HOME:
		if !a.ctx.HasFocus() {
			a.camera.Reset()
		}
	}
}

// overPreview reports whether a point is on the preview and not on a
// panel drawn over it. Hover state is from the previous frame.
func (a *App) overPreview(x, y float32) bool {
	return a.preview.Contains(x, y) && !a.ctx.Hovering()
}

// layout follows the window size: the UI works in points, the GL targets
// in pixels.
func (a *App) layout() {
	ww, wh := a.window.GetSize()
	dw, dh := a.window.DrawableSize()
	a.screen.Resize(dw, dh)
	a.ui.Resize(ww, wh)

	_, a.preview = ui.Layout(float32(ww), float32(wh))
	scale := float32(1)
	if ww > 0 {
		scale = float32(dw) / float32(ww)
	}
	a.scene.Resize(int32(a.preview.W*scale), int32(a.preview.H*scale))
}

// syncImage uploads the current custom image when the store changed.
func (a *App) syncImage() {
	store := a.session.Images()
	gen := store.Generation()
	if gen == a.imageGen {
		return
	}
	a.imageGen = gen

	if h := store.Current(); h != nil {
		a.scene.SetImage(h.Image())
		return
	}
	a.scene.ClearImage()
}

func (a *App) render() {
	a.screen.Begin()

	if a.preview.W >= 1 && a.preview.H >= 1 {
		t := time.Since(a.start).Seconds()
		tex := a.scene.Render(a.camera, a.session.Pose(t), a.session.Emotion())
		a.ui.DrawTexture(a.preview.X, a.preview.Y, a.preview.W, a.preview.H, tex, true)
	}

	ww, wh := a.window.GetSize()
	a.ui.Begin()
	a.ctx.Begin()
	act := a.panels.Draw(float32(ww), float32(wh))
	a.ctx.End()
	a.ui.End()

	if act.Browse {
		a.openFileDialog()
	}
}

func (a *App) limitFrame(start time.Time) {
	if a.config.FPSLimit <= 0 {
		return
	}
	budget := time.Second / time.Duration(a.config.FPSLimit)
	if spent := time.Since(start); spent < budget {
		time.Sleep(budget - spent)
	}
}

func (a *App) loadImage(path string) {
	if err := a.session.LoadImage(path); err != nil {
		return
	}
	a.log.Info("image loaded", zap.String("path", path))
}

// openFileDialog shows the native picker on a goroutine. The chosen path
// is loaded on the frame loop by pollDialog.
func (a *App) openFileDialog() {
	if a.browsing {
		return
	}
	a.browsing = true

	go func() {
		filename, err := dialog.File().
			Filter("Images", ingest.DialogExtensions()...).
			Filter("All Files", "*").
			Title("Choose Avatar Image").
			Load()
		if err != nil {
			if err != dialog.ErrCancelled {
				a.log.Warn("file dialog failed", zap.Error(err))
			}
			filename = ""
		}
		a.picked <- filename
	}()
}

func (a *App) pollDialog() {
	select {
	case path := <-a.picked:
		a.browsing = false
		if path != "" {
			a.loadImage(path)
		}
	default:
	}
}

// snapshot saves the last preview frame as PNG.
func (a *App) snapshot() {
	pixels, w, h := a.scene.ReadPixels()
	path, err := a.screenshots.CaptureFromPixels(pixels, w, h)
	if err != nil {
		a.log.Error("snapshot failed", zap.Error(err))
		a.session.Notify("Snapshot failed: " + err.Error())
		return
	}
	a.log.Info("snapshot saved", zap.String("path", path))
	a.session.Notify("Saved " + path)
}
