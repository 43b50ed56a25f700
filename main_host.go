//go:build !tinygo

package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"os/signal"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"badgefx/app"
	"badgefx/badgeos/proto"
	"badgefx/hal"
	"badgefx/internal/buildinfo"
	"badgefx/internal/config"
	"badgefx/internal/strip"
)

func main() {
	var (
		configPath = flag.String("config", "", "path to a YAML config file")
		headless   = flag.Bool("headless", false, "Run without a window.")
		hz         = flag.Int("hz", 0, "Tick rate in headless mode.")
		ticks      = flag.Uint64("ticks", 0, "Stop after N ticks in headless mode (0 = run forever).")
		scale      = flag.Int("scale", 0, "Window scale factor.")
		autostart  = flag.String("app", "", "Start this app instead of the menu (mandelbrot | rainbow).")
		maxCounter = flag.Int("max-bg-counter", 0, "Rainbow palette cycle length.")
		mirror     = flag.Bool("strip", false, "Mirror one canvas row onto an LED strip.")
		level      = flag.String("log-level", "", "Log level (debug | info | warn | error).")
	)
	flag.Parse()

	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.Kitchen})

	cfg := config.Default()
	if *configPath != "" {
		c, err := config.Load(*configPath)
		if err != nil {
			log.Warn().Err(err).Str("path", *configPath).Msg("config load failed; using defaults")
		} else {
			cfg = c
		}
	}

	// Flags win over the config file when set.
	cfg.Host.Headless = cfg.Host.Headless || *headless
	cfg.Host.Hz = firstPositive(*hz, cfg.Host.Hz)
	if *ticks > 0 {
		cfg.Host.Ticks = *ticks
	}
	cfg.Display.Scale = firstPositive(*scale, cfg.Display.Scale)
	cfg.Rainbow.MaxBGCounter = firstPositive(*maxCounter, cfg.Rainbow.MaxBGCounter)
	cfg.Strip.Enabled = cfg.Strip.Enabled || *mirror
	if *autostart != "" {
		cfg.Apps.Autostart = *autostart
	}
	if *level != "" {
		cfg.LogLevel = *level
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	} else {
		log.Warn().Str("log_level", cfg.LogLevel).Msg("unknown log level; using info")
	}

	appID, _ := proto.ParseAppID(cfg.Apps.Autostart)
	appCfg := app.Config{
		CanvasWidth:        cfg.Canvas.Width,
		CanvasHeight:       cfg.Canvas.Height,
		MaxBGCounter:       cfg.Rainbow.MaxBGCounter,
		Autostart:          appID,
		MandelbrotInterval: cfg.Apps.MandelbrotIntervalTicks,
		RainbowInterval:    cfg.Apps.RainbowIntervalTicks,
		StepBudget:         cfg.Host.StepBudget,
	}

	if cfg.Strip.Enabled {
		m, err := strip.Open(strip.Options{
			Dev:     cfg.Strip.Dev,
			SpeedHz: cfg.Strip.SpeedHz,
			Pixels:  cfg.Strip.Pixels,
			Row:     cfg.Strip.Row,
		})
		if err != nil {
			log.Warn().Err(err).Msg("strip mirror unavailable")
		} else {
			defer m.Close()
			appCfg.Mirror = m
			log.Info().Bool("hardware", m.Hardware).Int("pixels", cfg.Strip.Pixels).Msg("strip mirror on")
		}
	}

	opts := hal.Options{Width: cfg.Display.Width, Height: cfg.Display.Height, Log: &log.Logger}
	newApp := func(h hal.HAL) func() error { return app.New(h, appCfg) }

	log.Info().
		Str("version", buildinfo.Short()).
		Str("build", buildinfo.String()).
		Int("canvas_w", cfg.Canvas.Width).
		Int("canvas_h", cfg.Canvas.Height).
		Str("autostart", appID.String()).
		Bool("headless", cfg.Host.Headless).
		Msg("badgefx starting")

	var err error
	if cfg.Host.Headless {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		err = hal.RunHeadless(ctx, newApp, hal.HeadlessConfig{
			Options: opts,
			Enabled: true,
			Hz:      cfg.Host.Hz,
			Ticks:   cfg.Host.Ticks,
		})
		if errors.Is(err, context.Canceled) {
			err = nil
		}
	} else {
		err = hal.RunWindow(hal.WindowConfig{Options: opts, Scale: cfg.Display.Scale, TPS: cfg.Host.Hz}, newApp)
	}
	if err != nil {
		log.Error().Err(err).Msg("badgefx stopped")
		os.Exit(1)
	}
}

func firstPositive(v, fallback int) int {
	if v > 0 {
		return v
	}
	return fallback
}
