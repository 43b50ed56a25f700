package app

import (
	"fmt"

	"badgefx/badgeos/anim"
	"badgefx/badgeos/kernel"
	"badgefx/badgeos/proto"
	"badgefx/badgeos/raster"
	"badgefx/badgeos/services/keys"
	"badgefx/badgeos/services/launcher"
	"badgefx/badgeos/services/logger"
	"badgefx/badgeos/tasks/animator"
	"badgefx/hal"
	"badgefx/internal/buildinfo"
)

type Config struct {
	CanvasWidth  int
	CanvasHeight int

	// MaxBGCounter is the rainbow palette cycle length in columns.
	MaxBGCounter int

	Autostart proto.AppID

	MandelbrotInterval uint64
	RainbowInterval    uint64

	// StepBudget bounds kernel steps per host frame; <= 0 runs until idle.
	StepBudget int

	// Mirror, when set, also receives every animation frame.
	Mirror raster.Surface
}

func DefaultConfig() Config {
	return Config{
		CanvasWidth:        428,
		CanvasHeight:       142,
		MaxBGCounter:       anim.DefaultMaxCounter,
		MandelbrotInterval: 100,
		RainbowInterval:    33,
		StepBudget:         256,
	}
}

type system struct {
	k      *kernel.Kernel
	ticks  <-chan uint64
	budget int

	launcher *launcher.Service
	panicked *kernel.PanicInfo
}

// New initializes the OS and returns the step function the host runner calls
// once per frame.
func New(h hal.HAL, cfg Config) func() error {
	return newSystem(h, cfg).step
}

func newSystem(h hal.HAL, cfg Config) *system {
	k := kernel.New()
	s := &system{k: k, budget: cfg.StepBudget}
	installPanicHandler(k, h, func(info kernel.PanicInfo) { s.panicked = &info })

	logEP := k.NewEndpoint(kernel.RightSend | kernel.RightRecv)
	launchEP := k.NewEndpoint(kernel.RightSend | kernel.RightRecv)
	mandelEP := k.NewEndpoint(kernel.RightSend | kernel.RightRecv)
	rainbowEP := k.NewEndpoint(kernel.RightSend | kernel.RightRecv)
	logSend := logEP.Restrict(kernel.RightSend)

	var fb hal.Framebuffer
	if d := h.Display(); d != nil {
		fb = d.Framebuffer()
	}
	var surf raster.Surface = raster.FramebufferSurface{FB: fb}
	if cfg.Mirror != nil {
		surf = raster.Fanout{surf, cfg.Mirror}
	}

	k.AddTask(logger.New(h.Logger(), logEP.Restrict(kernel.RightRecv)))
	k.AddTask(keys.New(h.Input(), launchEP.Restrict(kernel.RightSend)))

	apps := []launcher.App{
		{ID: proto.AppMandelbrot, Name: "Mandelbrot", Cap: mandelEP.Restrict(kernel.RightSend)},
		{ID: proto.AppRainbow, Name: "Rainbow", Cap: rainbowEP.Restrict(kernel.RightSend)},
	}
	s.launcher = launcher.New(
		fb,
		"badgefx "+buildinfo.Short(),
		launchEP.Restrict(kernel.RightRecv),
		launchEP.Restrict(kernel.RightSend),
		logSend,
		apps,
	)
	k.AddTask(s.launcher)
	if cfg.Autostart != proto.AppNone {
		res := k.Post(launchEP.Restrict(kernel.RightSend), uint16(proto.MsgAppSelect), proto.AppSelectPayload(cfg.Autostart))
		if l := h.Logger(); l != nil && res != kernel.SendOK {
			l.WriteLineString("autostart " + cfg.Autostart.String() + ": " + res.String())
		}
	}

	fractal := anim.NewFractal(cfg.CanvasWidth, cfg.CanvasHeight, surf)
	k.AddTask(animator.New(fractal, fb, mandelEP.Restrict(kernel.RightRecv), logSend, cfg.MandelbrotInterval))

	rainbow := anim.NewRainbow(cfg.CanvasWidth, cfg.CanvasHeight, cfg.MaxBGCounter, surf)
	k.AddTask(animator.New(rainbow, fb, rainbowEP.Restrict(kernel.RightRecv), logSend, cfg.RainbowInterval))

	if ht := h.Time(); ht != nil {
		s.ticks = ht.Ticks()
	}
	return s
}

func (s *system) step() error {
	if err := s.haltErr(); err != nil {
		return err
	}

drain:
	for s.ticks != nil {
		select {
		case seq := <-s.ticks:
			s.k.TickTo(seq)
		default:
			break drain
		}
	}

	s.k.RunUntilIdle(s.budget)
	return s.haltErr()
}

func (s *system) haltErr() error {
	if s.panicked == nil {
		return nil
	}
	return fmt.Errorf("task %d panicked: %v: %w", s.panicked.TaskID, s.panicked.Value, hal.ErrHalted)
}
