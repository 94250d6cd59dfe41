// Command solarsystem opens a window on an animated model of the solar system.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/Carmen-Shannon/oxy-solar/common"
	"github.com/Carmen-Shannon/oxy-solar/config"
	"github.com/Carmen-Shannon/oxy-solar/engine"
	"github.com/Carmen-Shannon/oxy-solar/engine/camera"
	"github.com/Carmen-Shannon/oxy-solar/engine/loader"
	"github.com/Carmen-Shannon/oxy-solar/engine/renderer"
	"github.com/Carmen-Shannon/oxy-solar/engine/window"
	"github.com/Carmen-Shannon/oxy-solar/solar/catalog"
	"github.com/Carmen-Shannon/oxy-solar/solar/controls"
	"github.com/Carmen-Shannon/oxy-solar/solar/driver"
	"github.com/Carmen-Shannon/oxy-solar/solar/hud"
	"github.com/Carmen-Shannon/oxy-solar/solar/orbit"
	"github.com/Carmen-Shannon/oxy-solar/solar/render"
	"github.com/Carmen-Shannon/oxy-solar/solar/shading"
	"github.com/Carmen-Shannon/oxy-solar/solar/system"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/lucasb-eyer/go-colorful"
)

func init() {
	// GLFW and the surface must stay on the main thread.
	runtime.LockOSThread()
}

func main() {
	path := flag.String("config", config.DefaultPath, "path to the YAML configuration")
	flag.Parse()

	cfg, err := config.Load(*path)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	logger := common.SetupLogging(os.Stderr, cfg.Log.Level)

	if err := run(cfg, logger); err != nil {
		logger.Error("solarsystem failed", "err", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, logger *slog.Logger) error {
	reg := catalog.Default()
	if cfg.Simulation.Catalog != "" {
		var err error
		if reg, err = catalog.LoadFile(cfg.Simulation.Catalog); err != nil {
			return err
		}
	}
	ring, err := shading.NewRingUniforms(cfg.Ring.Inner, cfg.Ring.Outer, cfg.Ring.ShadowColor, cfg.Ring.Opacity)
	if err != nil {
		return err
	}

	win, err := window.NewWindow(
		window.WithTitle(cfg.Window.Title),
		window.WithWidth(cfg.Window.Width),
		window.WithHeight(cfg.Window.Height),
		window.WithSizeLimits(cfg.Window.MinWidth, cfg.Window.MinHeight, 0, 0),
	)
	if err != nil {
		return fmt.Errorf("failed to open window: %w", err)
	}
	defer win.Close()

	pos := cfg.Camera.Position
	cam := camera.NewCamera(
		camera.WithFov(mgl32.DegToRad(cfg.Camera.FovDeg)),
		camera.WithAspect(float32(win.Width())/float32(win.Height())),
		camera.WithNear(cfg.Camera.Near),
		camera.WithFar(cfg.Camera.Far),
		camera.WithPosition(pos[0], pos[1], pos[2]),
	)

	panel := hud.NewPanel(os.Stdout, hud.WithTitleSetter(win.SetTitle))
	ctrl := controls.New(cam, panel,
		controls.WithMode(hud.ParseMode(cfg.Camera.Mode)),
		controls.WithSettings(controls.Settings{
			FlySpeed:         cfg.Camera.FlySpeed,
			RollSpeed:        cfg.Camera.RollSpeed,
			Damping:          cfg.Camera.OrbitDamp,
			ZoomSpeed:        cfg.Camera.ZoomSpeed,
			MouseSensitivity: cfg.Camera.Sensitivity,
		}),
		controls.WithLogger(logger),
	)

	sys, err := system.New(reg,
		system.WithScale(cfg.Simulation.Scale),
		system.WithRing(cfg.Simulation.RingHost, ring),
		system.WithTexturePattern(cfg.Assets.Textures),
		system.WithSpacecraft(cfg.Assets.Spacecraft),
		system.WithShipHandler(ctrl.SetShip),
		system.WithLogger(logger),
	)
	if err != nil {
		return err
	}
	sys.AttachCamera(cam.Node())

	ld := loader.NewLoader(
		loader.WithRoot(cfg.Assets.Root),
		loader.WithWorkers(cfg.Assets.Workers),
		loader.WithLogger(logger),
	)
	sys.Submit(ld)

	present := renderer.PresentModeVSync
	if !cfg.Render.VSync {
		present = renderer.PresentModeUncapped
	}
	bg := colorful.MustParseHex(cfg.Render.Background)
	gpu, err := renderer.NewRenderer(renderer.BackendTypeWGPU, win,
		renderer.WithClearColor(bg.R, bg.G, bg.B),
		renderer.WithPresentMode(present),
		renderer.WithMSAA(renderer.ParseMSAA(cfg.Render.MSAA)),
		renderer.WithForceSoftwareRenderer(cfg.Render.Software),
	)
	if err != nil {
		return fmt.Errorf("failed to create renderer: %w", err)
	}
	rend, err := render.New(gpu, sys, cam, logger)
	if err != nil {
		return fmt.Errorf("failed to build pipelines: %w", err)
	}
	defer rend.Release()

	input := camera.NewInputRecorder(win.Width(), win.Height())
	win.SetKeyDownCallback(func(key uint32) {
		if !ctrl.HandleKey(key) {
			input.KeyDown(key)
		}
	})
	win.SetKeyUpCallback(input.KeyUp)
	win.SetMouseDownCallback(input.ButtonDown)
	win.SetMouseUpCallback(input.ButtonUp)
	win.SetMouseMoveCallback(input.MouseMove)
	win.SetScrollCallback(input.Scroll)

	drv, err := sys.NewDriver(orbit.NewClock(time.Now(), cfg.Simulation.Rate),
		driver.WithRenderer(rend),
		driver.WithTickHook(func(dt float32) {
			ctrl.Update(input.Snapshot(), dt)
		}),
	)
	if err != nil {
		return err
	}

	eng := engine.NewEngine(
		engine.WithWindow(win),
		engine.WithRenderFrameLimit(cfg.Render.FrameLimit),
		engine.WithProfiling(cfg.Log.Profile),
		engine.WithLogger(logger),
		engine.WithFrameCallback(func(ctx context.Context, now time.Time) error {
			ld.Drain(func(res loader.Result) {
				if sys.Apply(res) {
					logger.Debug("asset spliced", "path", res.Request.Path)
				}
			})
			return drv.Tick(ctx, now)
		}),
	)
	eng.OnResize(func(width, height int) {
		gpu.Resize(width, height)
		cam.SetAspect(float32(width) / float32(height))
		input.Resize(width, height)
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("solar system running",
		"bodies", len(reg.Bodies()),
		"moons", len(reg.Moons()),
		"meshes", sys.Meshes(),
		"mode", ctrl.Mode(),
	)
	if err := eng.Run(ctx); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}
