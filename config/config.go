// Package config loads the solarsystem YAML configuration.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"

	"github.com/Carmen-Shannon/oxy-solar/solar/catalog"
	"github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"
)

// DefaultPath is the config file looked up in the working directory when none is given.
const DefaultPath = "solarsystem.yaml"

// Config is the root configuration document.
type Config struct {
	Window     WindowConfig     `yaml:"window"`
	Render     RenderConfig     `yaml:"render"`
	Simulation SimulationConfig `yaml:"simulation"`
	Assets     AssetsConfig     `yaml:"assets"`
	Camera     CameraConfig     `yaml:"camera"`
	Ring       RingConfig       `yaml:"ring"`
	Log        LogConfig        `yaml:"log"`
}

type WindowConfig struct {
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	// MinWidth and MinHeight bound interactive resizing.
	MinWidth  int `yaml:"min_width"`
	MinHeight int `yaml:"min_height"`
}

type RenderConfig struct {
	VSync      bool    `yaml:"vsync"`
	MSAA       int     `yaml:"msaa"`
	Software   bool    `yaml:"software"`
	FrameLimit float64 `yaml:"frame_limit"`
	// Background is the #rrggbb clear color.
	Background string `yaml:"background"`
}

type SimulationConfig struct {
	// Rate scales wall-clock milliseconds into simulated time.
	Rate float32 `yaml:"rate"`
	// RingHost names the planet that carries the ring system.
	RingHost string `yaml:"ring_host"`
	// Catalog optionally replaces the embedded body catalog.
	Catalog string `yaml:"catalog"`
	// Scale converts catalog units into scene units.
	Scale catalog.Scale `yaml:"scale"`
}

type AssetsConfig struct {
	Root string `yaml:"root"`
	// Textures is a fmt pattern receiving the body name.
	Textures   string `yaml:"textures"`
	Spacecraft string `yaml:"spacecraft"`
	Workers    int    `yaml:"workers"`
}

type CameraConfig struct {
	FovDeg      float32    `yaml:"fov_deg"`
	Near        float32    `yaml:"near"`
	Far         float32    `yaml:"far"`
	Position    [3]float32 `yaml:"position"`
	Mode        string     `yaml:"mode"`
	FlySpeed    float32    `yaml:"fly_speed"`
	RollSpeed   float32    `yaml:"roll_speed"`
	OrbitDamp   float32    `yaml:"orbit_damping"`
	ZoomSpeed   float32    `yaml:"zoom_speed"`
	Sensitivity float32    `yaml:"mouse_sensitivity"`
}

type RingConfig struct {
	Inner       float32 `yaml:"inner"`
	Outer       float32 `yaml:"outer"`
	ShadowColor string  `yaml:"shadow_color"`
	Opacity     float32 `yaml:"opacity"`
}

type LogConfig struct {
	Level   string `yaml:"level"`
	Profile bool   `yaml:"profile"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Window: WindowConfig{Title: "Solar System", Width: 1280, Height: 720, MinWidth: 320, MinHeight: 200},
		Render: RenderConfig{VSync: true, MSAA: 4, Background: "#000000"},
		Simulation: SimulationConfig{
			Rate:     0.001,
			RingHost: "saturn",
			Scale:    catalog.DefaultScale(),
		},
		Assets: AssetsConfig{
			Root:       ".",
			Textures:   "textures/%s.jpg",
			Spacecraft: "ships/spacecraft.glb",
			Workers:    2,
		},
		Camera: CameraConfig{
			FovDeg:      75,
			Near:        0.1,
			Far:         1000,
			Position:    [3]float32{0, 0, 100},
			Mode:        "fly",
			FlySpeed:    100,
			RollSpeed:   math.Pi / 5,
			OrbitDamp:   0.05,
			ZoomSpeed:   15,
			Sensitivity: 0.005,
		},
		Ring: RingConfig{Inner: 20, Outer: 45, ShadowColor: "#7a6a5d", Opacity: 1},
		Log:  LogConfig{Level: "info"},
	}
}

// Load reads path and overlays it on Default. A missing file yields the defaults.
//
// Parameters:
//   - path: the YAML file to read
//
// Returns:
//   - Config: the merged configuration
//   - error: a read, parse or validation error
func Load(path string) (Config, error) {
	cfg := Default()
	b, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return Config{}, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks field ranges that would otherwise surface as broken frames.
func (c Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	}
	if c.Window.MinWidth < 0 || c.Window.MinHeight < 0 {
		return fmt.Errorf("window minimum size must not be negative, got %dx%d", c.Window.MinWidth, c.Window.MinHeight)
	}
	if _, err := colorful.Hex(c.Render.Background); err != nil {
		return fmt.Errorf("render.background must be a #rrggbb color, got %q", c.Render.Background)
	}
	switch c.Render.MSAA {
	case 1, 4, 8:
	default:
		return fmt.Errorf("render.msaa must be one of 1, 4, 8, got %d", c.Render.MSAA)
	}
	if c.Simulation.Rate < 0 {
		return fmt.Errorf("simulation.rate must be >= 0")
	}
	if c.Simulation.RingHost == "" {
		return fmt.Errorf("simulation.ring_host is required")
	}
	if err := validateScale(c.Simulation.Scale); err != nil {
		return err
	}
	if c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near {
		return fmt.Errorf("camera planes must satisfy 0 < near < far")
	}
	if c.Camera.FovDeg <= 0 || c.Camera.FovDeg >= 180 {
		return fmt.Errorf("camera.fov_deg must be in (0, 180)")
	}
	switch c.Camera.Mode {
	case "fly", "orbit":
	default:
		return fmt.Errorf("camera.mode must be fly or orbit, got %q", c.Camera.Mode)
	}
	if c.Ring.Outer <= c.Ring.Inner {
		return fmt.Errorf("ring.outer must be greater than ring.inner")
	}
	if c.Assets.Workers <= 0 {
		return fmt.Errorf("assets.workers must be positive")
	}
	return nil
}

func validateScale(sc catalog.Scale) error {
	divisors := []struct {
		name string
		v    float32
	}{
		{"star_radius_div", sc.StarRadiusDiv},
		{"planet_radius_div", sc.PlanetRadiusDiv},
		{"speed_div", sc.SpeedDiv},
		{"normalization", sc.Normalization},
	}
	for _, d := range divisors {
		if d.v <= 0 {
			return fmt.Errorf("simulation.scale.%s must be positive, got %g", d.name, d.v)
		}
	}
	if sc.BaseDist < 0 || sc.DistStep < 0 {
		return fmt.Errorf("simulation.scale distances must not be negative")
	}
	return nil
}
