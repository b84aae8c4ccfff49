// Package config handles viewer configuration loading and management.
package config

import (
	"errors"
	"fmt"
)

// Config holds all viewer settings.
type Config struct {
	Graphics GraphicsConfig `yaml:"graphics"`
	Render   RenderConfig   `yaml:"render"`
	Camera   CameraConfig   `yaml:"camera"`
	Scene    SceneConfig    `yaml:"scene"`
	Logging  LoggingConfig  `yaml:"logging"`

	path string // file the config was loaded from
}

// GraphicsConfig holds display settings.
type GraphicsConfig struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	Fullscreen bool `yaml:"fullscreen"`
	VSync      bool `yaml:"vsync"`
}

// RenderConfig holds capture and shading settings. The tunables here are
// only starting values; the control surface changes them at runtime.
type RenderConfig struct {
	ShadowSize      int     `yaml:"shadow_size"`
	CaptureNear     float32 `yaml:"capture_near"`
	CaptureFar      float32 `yaml:"capture_far"`
	ShadowBias      float32 `yaml:"shadow_bias"`
	SampleCount     int     `yaml:"sample_count"`
	SampleRadius    float32 `yaml:"sample_radius"`
	DirectFactor    float32 `yaml:"direct_factor"`
	IndirectFactor  float32 `yaml:"indirect_factor"`
	DisableDirect   bool    `yaml:"disable_direct"`
	DisableIndirect bool    `yaml:"disable_indirect"`
	RandomSeed      int64   `yaml:"random_seed"`
	Workers         int     `yaml:"workers"` // software path; 0 = one per CPU
}

// CameraConfig holds orbit camera settings.
type CameraConfig struct {
	FovYDeg              float32 `yaml:"fov_y_deg"`
	ZNear                float32 `yaml:"z_near"`
	ZFar                 float32 `yaml:"z_far"`
	MoveSpeed            float32 `yaml:"move_speed"`
	RotateSpeed          float32 `yaml:"rotate_speed"`
	ScrollSpeed          float32 `yaml:"scroll_speed"`
	JumpSpeed            float32 `yaml:"jump_speed"`
	FrameRateIndependent bool    `yaml:"frame_rate_independent"`
	MinRadius            float32 `yaml:"min_radius"`
}

// SceneConfig holds asset locations and the light.
type SceneConfig struct {
	DataDir        string     `yaml:"data_dir"`
	Initial        string     `yaml:"initial"`
	LightColor     [3]float32 `yaml:"light_color"`
	LightIntensity float32    `yaml:"light_intensity"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
	Format  string `yaml:"format"` // console or json, file sink only
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:      1600,
			Height:     1200,
			Fullscreen: false,
			VSync:      true,
		},
		Render: RenderConfig{
			ShadowSize:     1024,
			CaptureNear:    0.1,
			CaptureFar:     500,
			ShadowBias:     0.05,
			SampleCount:    100,
			SampleRadius:   0.3,
			DirectFactor:   1,
			IndirectFactor: 1,
			RandomSeed:     1,
		},
		Camera: CameraConfig{
			FovYDeg:     45,
			ZNear:       0.01,
			ZFar:        1000,
			MoveSpeed:   1,
			RotateSpeed: 0.01,
			ScrollSpeed: 1,
			JumpSpeed:   0.01,
			MinRadius:   0.01,
		},
		Scene: SceneConfig{
			DataDir:        "data",
			Initial:        "cornell_box",
			LightColor:     [3]float32{1, 1, 1},
			LightIntensity: 1,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
			Format:  "console",
		},
	}
}

// ErrInvalid is wrapped by every Validate error.
var ErrInvalid = errors.New("invalid config")

// Validate rejects settings the renderer cannot start with.
func (c *Config) Validate() error {
	var errs []error
	if c.Graphics.Width <= 0 || c.Graphics.Height <= 0 {
		errs = append(errs, fmt.Errorf("%w: window size %dx%d", ErrInvalid, c.Graphics.Width, c.Graphics.Height))
	}
	if c.Render.ShadowSize <= 0 {
		errs = append(errs, fmt.Errorf("%w: shadow_size %d", ErrInvalid, c.Render.ShadowSize))
	}
	if c.Render.CaptureNear <= 0 || c.Render.CaptureFar <= c.Render.CaptureNear {
		errs = append(errs, fmt.Errorf("%w: capture range [%v, %v]", ErrInvalid, c.Render.CaptureNear, c.Render.CaptureFar))
	}
	if c.Camera.ZNear <= 0 || c.Camera.ZFar <= c.Camera.ZNear {
		errs = append(errs, fmt.Errorf("%w: camera range [%v, %v]", ErrInvalid, c.Camera.ZNear, c.Camera.ZFar))
	}
	if c.Camera.FovYDeg <= 0 || c.Camera.FovYDeg >= 180 {
		errs = append(errs, fmt.Errorf("%w: fov_y_deg %v", ErrInvalid, c.Camera.FovYDeg))
	}
	if c.Camera.MinRadius <= 0 {
		errs = append(errs, fmt.Errorf("%w: min_radius %v", ErrInvalid, c.Camera.MinRadius))
	}
	if c.Camera.JumpSpeed <= 0 || c.Camera.JumpSpeed > 1 {
		errs = append(errs, fmt.Errorf("%w: jump_speed %v outside (0, 1]", ErrInvalid, c.Camera.JumpSpeed))
	}
	if c.Render.SampleCount < 0 {
		errs = append(errs, fmt.Errorf("%w: sample_count %d", ErrInvalid, c.Render.SampleCount))
	}
	if c.Render.SampleRadius < 0 || c.Render.DirectFactor < 0 || c.Render.IndirectFactor < 0 {
		errs = append(errs, fmt.Errorf("%w: negative light tunable", ErrInvalid))
	}
	if c.Scene.LightIntensity < 0 {
		errs = append(errs, fmt.Errorf("%w: light_intensity %v", ErrInvalid, c.Scene.LightIntensity))
	}
	switch c.Logging.Format {
	case "", "console", "json":
	default:
		errs = append(errs, fmt.Errorf("%w: logging format %q", ErrInvalid, c.Logging.Format))
	}
	return errors.Join(errs...)
}
