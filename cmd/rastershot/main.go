// Command rastershot renders the badge animations offline.
//
//	rastershot -app mandelbrot -out mandel.png -scale 2
//	rastershot -app rainbow -ticks 30 -raw rainbow.rgb565.zst
//	rastershot -palette scroll -max 12
package main

import (
	"flag"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	var (
		appName = flag.String("app", "mandelbrot", "animation: mandelbrot | rainbow")
		ticks   = flag.Int("ticks", 1, "frames to run before the snapshot")
		width   = flag.Int("w", 428, "canvas width")
		height  = flag.Int("h", 142, "canvas height")
		maxV    = flag.Int("max", 0, "palette cycle length (0 = app default)")
		out     = flag.String("out", "", "write a PNG snapshot")
		scale   = flag.Int("scale", 1, "PNG scale factor")
		raw     = flag.String("raw", "", "write the raw RGB565 frame, zstd compressed")
		palette = flag.String("palette", "", "print a palette table instead: escape | scroll")
	)
	flag.Parse()

	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})

	if *palette != "" {
		if err := writePalette(os.Stdout, *palette, *maxV); err != nil {
			log.Fatal().Err(err).Msg("palette")
		}
		return
	}

	start := time.Now()
	frame, err := render(*appName, *width, *height, *maxV, *ticks)
	if err != nil {
		log.Fatal().Err(err).Str("app", *appName).Msg("render failed")
	}
	log.Info().
		Str("app", *appName).
		Int("w", frame.W).
		Int("h", frame.H).
		Int("presents", frame.Presents).
		Dur("took", time.Since(start)).
		Msg("rendered")

	if *out == "" && *raw == "" {
		log.Warn().Msg("nothing to write; pass -out or -raw")
		return
	}
	if *out != "" {
		if err := writePNGFile(*out, frame, *scale); err != nil {
			log.Fatal().Err(err).Str("path", *out).Msg("png")
		}
		log.Info().Str("path", *out).Int("scale", *scale).Msg("wrote png")
	}
	if *raw != "" {
		if err := writeRawFile(*raw, frame); err != nil {
			log.Fatal().Err(err).Str("path", *raw).Msg("raw")
		}
		log.Info().Str("path", *raw).Msg("wrote raw frame")
	}
}
