// Command solarpreview renders the sun and ring programs to PNG files without a
// GPU and logs each frame's hash.
package main

import (
	"flag"
	"fmt"
	"image"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/Carmen-Shannon/oxy-solar/common"
	"github.com/Carmen-Shannon/oxy-solar/config"
	"github.com/Carmen-Shannon/oxy-solar/solar/preview"
	"github.com/Carmen-Shannon/oxy-solar/solar/shading"
	"github.com/anthonynsimon/bild/imgio"
)

func main() {
	path := flag.String("config", config.DefaultPath, "path to the YAML configuration")
	out := flag.String("out", ".", "output directory")
	size := flag.Int("size", 512, "image width and height in pixels")
	at := flag.Float64("time", 0, "sun program time in seconds")
	glow := flag.Float64("glow", 6, "sun glow blur radius, 0 disables it")
	flag.Parse()

	cfg, err := config.Load(*path)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	logger := common.SetupLogging(os.Stderr, cfg.Log.Level)

	ring, err := shading.NewRingUniforms(cfg.Ring.Inner, cfg.Ring.Outer, cfg.Ring.ShadowColor, cfg.Ring.Opacity)
	if err != nil {
		logger.Error("invalid ring", "err", err)
		os.Exit(1)
	}

	frames := []struct {
		name string
		img  image.Image
	}{
		{"sun.png", preview.Glow(preview.Sun(*size, *size, float32(*at)), *glow)},
		{"ring.png", preview.Ring(*size, *size, ring)},
	}
	for _, f := range frames {
		if err := save(logger, filepath.Join(*out, f.name), f.img); err != nil {
			logger.Error("preview failed", "file", f.name, "err", err)
			os.Exit(1)
		}
	}
}

func save(logger *slog.Logger, path string, img image.Image) error {
	if err := imgio.Save(path, img, imgio.PNGEncoder()); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	logger.Info("frame written", "path", path, "sha256", preview.Hash(img))
	return nil
}
