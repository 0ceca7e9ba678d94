// cliclient asks the render server for one image, logs the progress of the
// render, and saves the PNG.
package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"image/png"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"time"

	mandel "github.com/malfet/Mandelbrot"
	"github.com/malfet/Mandelbrot/internal/logging"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("FATAL: %v", err)
	}
}

func run() error {
	var (
		req     mandel.Request
		parts   int
		cre     float64
		cim     float64
		addr    = flag.String("addr", "ws://localhost:8080/ws", "server websocket url")
		out     = flag.String("o", "mandel.png", "output file")
		level   = flag.String("log", "info", "log level")
		profile = flag.Bool("profile", false, "plot the luminance of the middle row")
		timeout = flag.Duration("timeout", 5*time.Minute, "give up after this long")
	)
	flag.StringVar(&req.Kind, "kind", "mandelbrot", "mandelbrot, julia, multibrot or newton")
	flag.StringVar(&req.Mode, "mode", "", "escape or attraction (default depends on kind)")
	flag.StringVar(&req.Preset, "preset", "", fmt.Sprintf("region preset: %v", mandel.PresetNames()))
	flag.IntVar(&req.Width, "width", 800, "image width")
	flag.IntVar(&req.Height, "height", 800, "image height")
	flag.IntVar(&req.Iterations, "iter", 0, "iteration cap (0 for the server default)")
	flag.IntVar(&parts, "partitions", -1, "split into (k+1)^2 tiles (-1 for the server default)")
	flag.Float64Var(&cre, "cre", -0.8, "julia parameter, real part")
	flag.Float64Var(&cim, "cim", 0.156, "julia parameter, imaginary part")
	flag.Float64Var(&req.Power, "power", 0, "multibrot exponent")
	flag.IntVar(&req.K, "k", 0, "newton on the Misiurewicz(k,n) polynomial")
	flag.IntVar(&req.N, "n", 0, "newton on the Misiurewicz(k,n) polynomial")
	flag.Parse()

	logger, err := logging.Setup(*level)
	if err != nil {
		return err
	}
	if parts >= 0 {
		req.Partitions = &parts
	}
	req.C = [2]float64{cre, cim}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, *timeout)
	defer cancel()

	logger.Info("requesting render", "addr", *addr, "kind", req.Kind, "size", fmt.Sprintf("%dx%d", req.Width, req.Height))
	sum, img, err := fetch(ctx, *addr, req, func(p mandel.Progress) {
		logger.Info("partition done", "tile", p.Tile, "finished", fmt.Sprintf("%.0f%%", 100*p.Finished))
	})
	if err != nil {
		return err
	}
	logSummary(logger, sum)

	if err := os.WriteFile(*out, img, 0o644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	logger.Info("image saved", "file", *out, "bytes", len(img))

	if *profile {
		decoded, err := png.Decode(bytes.NewReader(img))
		if err != nil {
			return fmt.Errorf("failed to decode PNG: %w", err)
		}
		fmt.Println(plotProfile(decoded, 72))
	}
	return nil
}

func logSummary(logger *slog.Logger, sum mandel.Summary) {
	attrs := []any{"kind", sum.Kind, "mode", sum.Mode, "region", sum.Region, "elapsed", time.Duration(sum.ElapsedMS) * time.Millisecond}
	if sum.Mode == "attraction" {
		attrs = append(attrs, "points", len(sum.Points))
	} else {
		attrs = append(attrs, "area", sum.Area)
	}
	logger.Info("render finished", attrs...)
}
