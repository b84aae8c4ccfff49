package config

import "flag"

var (
	flagConfig     = flag.String("config", "", "Path to config file")
	flagDebug      = flag.Bool("debug", false, "Enable debug logging")
	flagWindowed   = flag.Bool("windowed", false, "Run in windowed mode")
	flagFullscreen = flag.Bool("fullscreen", false, "Run in fullscreen mode")
	flagWidth      = flag.Int("width", 0, "Window width")
	flagHeight     = flag.Int("height", 0, "Window height")
	flagScene      = flag.String("scene", "", "Initial scene (cornell_box, flight_helmet)")
	flagData       = flag.String("data", "", "Asset data directory")
	flagSamples    = flag.Int("samples", -1, "Indirect sample count (0-600)")
	flagHeadless   = flag.Int("headless", 0, "Render N frames with the software path and exit")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// HeadlessFrames returns the -headless frame count, 0 for the window viewer.
func HeadlessFrames() int {
	return *flagHeadless
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagWindowed {
		cfg.Graphics.Fullscreen = false
	}
	if *flagFullscreen {
		cfg.Graphics.Fullscreen = true
	}
	if *flagWidth > 0 {
		cfg.Graphics.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Graphics.Height = *flagHeight
	}
	if *flagScene != "" {
		cfg.Scene.Initial = *flagScene
	}
	if *flagData != "" {
		cfg.Scene.DataDir = *flagData
	}
	if *flagSamples >= 0 {
		cfg.Render.SampleCount = *flagSamples
	}
}
