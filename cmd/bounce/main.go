// Package main is the bounce window viewer: an SDL2 window showing a glTF
// scene lit by a point light and one bounce of indirect light.
package main

import (
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/bounce/internal/config"
	"github.com/Faultbox/bounce/internal/engine/input"
	"github.com/Faultbox/bounce/internal/engine/window"
	"github.com/Faultbox/bounce/internal/logger"
	"github.com/Faultbox/bounce/internal/scene"
	"github.com/Faultbox/bounce/internal/viewer"
)

// Software frames are small; each pixel is a ray cast plus the kernel.
const (
	headlessWidth  = 160
	headlessHeight = 120
)

func main() {
	// Parse CLI flags first
	config.ParseFlags()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile, cfg.Logging.Format); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== bounce ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	initial, err := scene.ParseID(cfg.Scene.Initial)
	if err != nil {
		logger.Error("bad initial scene", zap.Error(err))
		os.Exit(1)
	}
	provider := &scene.FileProvider{DataDir: cfg.Scene.DataDir, Log: logger.Named("scene")}

	if n := config.HeadlessFrames(); n > 0 {
		if err := runHeadless(cfg, provider, initial, n); err != nil {
			logger.Error("headless run failed", zap.Error(err))
			os.Exit(1)
		}
		return
	}

	if err := run(cfg, provider, initial); err != nil {
		logger.Error("viewer error", zap.Error(err))
		os.Exit(1)
	}
	logger.Info("viewer closed normally")
}

func run(cfg *config.Config, provider scene.Provider, initial scene.ID) error {
	win, err := window.New(window.Config{
		Title:      "bounce",
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
	})
	if err != nil {
		return err
	}
	defer win.Close()

	v, err := viewer.New(cfg, provider)
	if err != nil {
		return err
	}
	defer v.Close()

	if err := v.SwitchScene(initial); err != nil {
		return err
	}
	win.SetTitle(windowTitle(v.State))
	printHotkeys()

	in := input.New()
	last := time.Now()
	for {
		f := in.Update()
		if f.Quit {
			return nil
		}
		for _, key := range f.Pressed {
			handled, err := v.Surface.HandleKey(key)
			if err != nil {
				return fmt.Errorf("key %s: %w", key, err)
			}
			if handled {
				win.SetTitle(windowTitle(v.State))
				logControls(v.State)
			}
		}

		now := time.Now()
		dt := float32(now.Sub(last).Seconds())
		last = now

		w, h := win.DrawableSize()
		v.Frame(viewer.FrameInput{
			Dt:     dt,
			DragDX: f.DragDX,
			DragDY: f.DragDY,
			Scroll: f.Scroll,
			Keys:   f.Keys,
		}, nil, w, h)
		win.SwapBuffers()
	}
}

func runHeadless(cfg *config.Config, provider scene.Provider, initial scene.ID, frames int) error {
	h := viewer.NewHeadless(cfg, provider)
	if err := h.SwitchScene(initial); err != nil {
		return err
	}

	const dt = 1.0 / 60
	for i := 0; i < frames; i++ {
		start := time.Now()
		frame := h.Frame(viewer.FrameInput{Dt: dt}, headlessWidth, headlessHeight)
		mean := frame.Mean()
		logger.Info("software frame",
			zap.Int("frame", i),
			zap.Duration("took", time.Since(start)),
			zap.Float32("meanR", mean.X),
			zap.Float32("meanG", mean.Y),
			zap.Float32("meanB", mean.Z))
	}
	return nil
}

func windowTitle(s *viewer.State) string {
	title := "bounce - " + s.Active.Name
	if s.CameraLocked {
		title += " (camera locked)"
	}
	return title
}

func logControls(s *viewer.State) {
	t := s.Tunables
	logger.Info("controls",
		zap.String("scene", s.Active.Name),
		zap.Int("samples", t.SampleCount),
		zap.Float32("radius", t.SampleRadius),
		zap.Bool("direct", !t.DisableDirect),
		zap.Bool("indirect", !t.DisableIndirect),
		zap.Bool("cameraLocked", s.CameraLocked),
		zap.Float32("lightX", s.Light.Position.X),
		zap.Float32("lightY", s.Light.Position.Y),
		zap.Float32("lightZ", s.Light.Position.Z))
}
