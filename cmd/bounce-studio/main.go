// Bounce Studio - an ImGui front end for the bounce renderer: the scene is
// drawn into an offscreen target and shown next to a lighting panel.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/sqweek/dialog"
	"go.uber.org/zap"

	"github.com/Faultbox/bounce/internal/config"
	"github.com/Faultbox/bounce/internal/engine/camera"
	"github.com/Faultbox/bounce/internal/engine/framebuffer"
	"github.com/Faultbox/bounce/internal/engine/ui"
	"github.com/Faultbox/bounce/internal/logger"
	"github.com/Faultbox/bounce/internal/scene"
	"github.com/Faultbox/bounce/internal/viewer"
)

const panelWidth = 320

// hotkeyNames maps ImGui keys to the names the control hotkey table uses.
var hotkeyNames = map[imgui.Key]string{
	imgui.Key1:            "1",
	imgui.Key2:            "2",
	imgui.KeyLeftBracket:  "[",
	imgui.KeyRightBracket: "]",
	imgui.KeyMinus:        "-",
	imgui.KeyEqual:        "=",
	imgui.KeyF1:           "F1",
	imgui.KeyF2:           "F2",
	imgui.KeyL:            "L",
	imgui.KeyLeftArrow:    "Left",
	imgui.KeyRightArrow:   "Right",
	imgui.KeyUpArrow:      "Up",
	imgui.KeyDownArrow:    "Down",
	imgui.KeyPageUp:       "PageUp",
	imgui.KeyPageDown:     "PageDown",
}

func main() {
	runtime.LockOSThread()

	config.ParseFlags()
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile, cfg.Logging.Format); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}

	initial, err := scene.ParseID(cfg.Scene.Initial)
	if err != nil {
		logger.Error("bad initial scene", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}

	if err := run(cfg, initial); err != nil {
		logger.Error("studio error", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
	logger.Info("studio closed normally")
	logger.Sync()
}

func run(cfg *config.Config, initial scene.ID) error {
	app, err := NewApp(cfg)
	if err != nil {
		return err
	}
	defer app.Close()

	if err := app.viewer.SwitchScene(initial); err != nil {
		return err
	}
	return app.Run()
}

// App holds the studio window state.
type App struct {
	cfg     *config.Config
	backend *ui.Backend
	viewer  *viewer.Viewer
	target  *framebuffer.Framebuffer

	// Input gathered over the viewport image, consumed by the next frame.
	dragDX, dragDY float32
	scroll         float32
	lastMousePos   imgui.Vec2
	viewportActive bool
	lastFrame      time.Time

	// File dialog state (dialog runs off the main thread)
	mu          sync.Mutex
	pendingPath string

	status string
	log    *zap.Logger

	ran bool
	err error // first fatal error raised inside the frame loop
}

// NewApp creates the window, the GL context and the renderer. Nothing is
// left open when it fails.
func NewApp(cfg *config.Config) (_ *App, err error) {
	app := &App{cfg: cfg, log: logger.Named("studio")}

	app.backend, err = ui.NewBackend("Bounce Studio", cfg.Graphics.Width, cfg.Graphics.Height)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			app.Close()
		}
	}()

	provider := &scene.FileProvider{DataDir: cfg.Scene.DataDir, Log: logger.Named("scene")}
	app.viewer, err = viewer.New(cfg, provider)
	if err != nil {
		return nil, err
	}
	app.target, err = framebuffer.New(int32(cfg.Graphics.Width-panelWidth), int32(cfg.Graphics.Height))
	if err != nil {
		return nil, err
	}
	app.backend.OnDestroy(app.release)
	app.lastFrame = time.Now()
	return app, nil
}

// Run starts the main loop. It returns the fatal error that stopped it, if
// any.
func (app *App) Run() error {
	app.ran = true
	app.backend.Run(app.render)
	return app.err
}

// Close releases GL resources and, when the loop never ran, the window.
// Safe to call more than once.
func (app *App) Close() {
	if app.ran {
		return
	}
	app.release()
	app.backend.Destroy()
	app.ran = true
}

// release frees the renderer's GL objects while the context is current.
func (app *App) release() {
	if app.target != nil {
		app.target.Destroy()
		app.target = nil
	}
	if app.viewer != nil {
		app.viewer.Close()
		app.viewer = nil
	}
}

// fail stops the frame loop with err.
func (app *App) fail(err error) {
	if app.err == nil {
		app.err = err
	}
	app.backend.Quit()
}

// switchFailed reports a failed scene switch. Setup failures end the
// program; a file that does not open only shows in the status line.
func (app *App) switchFailed(err error, fields ...zap.Field) {
	if viewer.Fatal(err) {
		app.fail(err)
		return
	}
	app.setStatus(err.Error())
	app.log.Warn("scene switch failed", append(fields, zap.Error(err))...)
}

func (app *App) setStatus(msg string) {
	app.status = msg
}

// openFileDialog asks for a glTF file. Loading happens in render, where
// the GL context is current.
func (app *App) openFileDialog() {
	go func() {
		filename, err := dialog.File().
			Filter("glTF Scenes", "gltf", "glb").
			Filter("All Files", "*").
			Title("Open glTF Scene").
			Load()
		if err != nil {
			if err != dialog.ErrCancelled {
				app.log.Warn("file dialog failed", zap.Error(err))
			}
			return
		}

		app.mu.Lock()
		app.pendingPath = filename
		app.mu.Unlock()
	}()
}

func (app *App) takePendingPath() string {
	app.mu.Lock()
	defer app.mu.Unlock()
	path := app.pendingPath
	app.pendingPath = ""
	return path
}

// render is called each frame to draw the UI.
func (app *App) render() {
	if path := app.takePendingPath(); path != "" {
		if err := app.viewer.OpenFile(path); err != nil {
			app.switchFailed(err, zap.String("path", path))
		} else {
			app.setStatus("Loaded " + filepath.Base(path))
			app.backend.SetWindowTitle("Bounce Studio - " + filepath.Base(path))
		}
	}

	if !imgui.IsAnyItemActive() {
		app.handleHotkeys()
	}

	app.renderMenuBar()

	pos, size := ui.WorkArea()

	imgui.SetNextWindowPos(pos)
	imgui.SetNextWindowSize(imgui.NewVec2(panelWidth, size.Y))
	flags := imgui.WindowFlagsNoMove | imgui.WindowFlagsNoResize | imgui.WindowFlagsNoCollapse
	if imgui.BeginV("Lighting", nil, flags) {
		app.renderLightingPanel()
	}
	imgui.End()

	imgui.SetNextWindowPos(imgui.NewVec2(pos.X+panelWidth, pos.Y))
	imgui.SetNextWindowSize(imgui.NewVec2(size.X-panelWidth, size.Y))
	imgui.PushStyleVarVec2(imgui.StyleVarWindowPadding, imgui.NewVec2(0, 0))
	viewFlags := flags | imgui.WindowFlagsNoTitleBar | imgui.WindowFlagsNoScrollbar | imgui.WindowFlagsNoScrollWithMouse
	if imgui.BeginV("Viewport", nil, viewFlags) {
		app.renderViewport()
	}
	imgui.End()
	imgui.PopStyleVar()
}

func (app *App) renderMenuBar() {
	if imgui.BeginMainMenuBar() {
		if imgui.BeginMenu("File") {
			if imgui.MenuItemBool("Open glTF...") {
				app.openFileDialog()
			}
			if imgui.MenuItemBool("Save Settings") {
				app.saveSettings()
			}
			imgui.Separator()
			if imgui.MenuItemBool("Exit") {
				app.backend.Quit()
			}
			imgui.EndMenu()
		}
		imgui.EndMainMenuBar()
	}
}

// renderViewport renders the scene into the offscreen target and shows it.
func (app *App) renderViewport() {
	avail := imgui.ContentRegionAvail()
	app.target.Resize(int32(avail.X), int32(avail.Y))

	now := time.Now()
	dt := float32(now.Sub(app.lastFrame).Seconds())
	app.lastFrame = now

	in := viewer.FrameInput{
		Dt:     dt,
		DragDX: app.dragDX,
		DragDY: app.dragDY,
		Scroll: app.scroll,
	}
	if app.viewportActive && !imgui.IsAnyItemActive() {
		in.Keys = heldKeys()
	}
	app.dragDX, app.dragDY, app.scroll = 0, 0, 0

	// The backend owns the default framebuffer state; put it back afterwards.
	restore := app.target.BindWithViewport()
	app.viewer.Frame(in, app.target, 0, 0)
	restore()

	ui.GLImage(app.target.ColorTexture(), avail)

	app.viewportActive = imgui.IsItemHovered()
	if app.viewportActive {
		mousePos := imgui.MousePos()
		if imgui.IsMouseDragging(imgui.MouseButtonLeft) {
			app.dragDX += mousePos.X - app.lastMousePos.X
			app.dragDY += mousePos.Y - app.lastMousePos.Y
		}
		app.lastMousePos = mousePos

		if wheel := imgui.CurrentIO().MouseWheel(); wheel != 0 {
			app.scroll += wheel
		}
	}
}

// saveSettings stores the current lighting controls as the next run's defaults.
func (app *App) saveSettings() {
	app.viewer.State.Store(app.cfg)
	path, err := app.cfg.Save()
	if err != nil {
		app.setStatus("Save failed: " + err.Error())
		app.log.Warn("save settings failed", zap.Error(err))
		return
	}
	app.setStatus("Settings saved")
	app.log.Info("settings saved", zap.String("path", path))
}

func (app *App) handleHotkeys() {
	for key, name := range hotkeyNames {
		if !ui.IsKeyPressed(key) {
			continue
		}
		if _, err := app.viewer.Surface.HandleKey(name); err != nil {
			app.switchFailed(err, zap.String("key", name))
			return
		}
	}
}

func heldKeys() camera.KeyState {
	return camera.KeyState{
		Forward: ui.IsKeyDown(imgui.KeyW),
		Back:    ui.IsKeyDown(imgui.KeyS),
		Left:    ui.IsKeyDown(imgui.KeyA),
		Right:   ui.IsKeyDown(imgui.KeyD),
		Up:      ui.IsKeyDown(imgui.KeyE),
		Down:    ui.IsKeyDown(imgui.KeyQ),
	}
}
