// Package animator runs an anim.Driver as a foreground app.
package animator

import (
	"time"

	"badgefx/badgeos/anim"
	logclient "badgefx/badgeos/client/logger"
	"badgefx/badgeos/kernel"
	"badgefx/badgeos/proto"
	"badgefx/hal"
)

type scanner interface {
	Scanned() bool
}

type Task struct {
	drv    anim.Driver
	fb     hal.Framebuffer
	inCap  kernel.Capability
	logCap kernel.Capability

	// interval is the minimum number of ticks between frames.
	interval uint64

	launcher kernel.Capability
	exit     bool
	lastTick uint64
	framed   bool
	reported bool

	notify bool
}

func New(drv anim.Driver, fb hal.Framebuffer, inCap, logCap kernel.Capability, interval uint64) *Task {
	return &Task{
		drv:      drv,
		fb:       fb,
		inCap:    inCap,
		logCap:   logCap,
		interval: interval,
	}
}

// ExitRequested reports whether a function key has been pressed since activation.
func (t *Task) ExitRequested() bool { return t.exit }

func (t *Task) Step(ctx *kernel.Context) {
	for {
		msg, ok := ctx.TryRecv(t.inCap)
		if !ok {
			break
		}
		switch proto.Kind(msg.Kind) {
		case proto.MsgAppControl:
			active, ok := proto.DecodeAppControlPayload(msg.Payload())
			if !ok {
				continue
			}
			if msg.Cap.Valid() {
				t.launcher = msg.Cap
			}
			t.setActive(ctx, active)
		case proto.MsgKeyEvent:
			ev, ok := proto.DecodeKeyEventPayload(msg.Payload())
			if ok && ev.Press && ev.Code.IsFunction() {
				t.exit = true
			}
		}
	}

	if t.notify {
		t.sendExit(ctx)
		if t.notify {
			ctx.BlockOnTick()
			return
		}
	}

	if t.drv.State() != anim.Active {
		ctx.BlockOnRecv(t.inCap)
		return
	}

	now := ctx.NowTick()
	if t.framed && now-t.lastTick < t.interval {
		ctx.BlockOnTick()
		return
	}
	t.framed = true
	t.lastTick = now

	start := time.Now()
	if err := t.drv.Tick(); err != nil {
		logclient.Logf(ctx, t.logCap, "%s: frame: %v", t.drv.Name(), err)
	}
	if s, ok := t.drv.(scanner); ok && s.Scanned() && !t.reported {
		t.reported = true
		logclient.Logf(ctx, t.logCap, "%s: scan done in %s", t.drv.Name(), time.Since(start).Round(time.Millisecond))
	}

	// Exit is only honoured between frames.
	if t.exit {
		t.finish(ctx)
		if t.notify {
			ctx.BlockOnTick()
			return
		}
		ctx.BlockOnRecv(t.inCap)
		return
	}
	ctx.BlockOnTick()
}

func (t *Task) setActive(ctx *kernel.Context, active bool) {
	if !active {
		if t.drv.State() == anim.Active {
			t.drv.Suspend()
			logclient.Logf(ctx, t.logCap, "%s: suspended", t.drv.Name())
		}
		return
	}

	t.exit = false
	t.framed = false
	t.reported = false
	t.notify = false
	if err := t.drv.Activate(); err != nil {
		logclient.Logf(ctx, t.logCap, "%s: activate: %v", t.drv.Name(), err)
		t.notify = true
		return
	}
	logclient.Logf(ctx, t.logCap, "%s: active", t.drv.Name())
}

func (t *Task) finish(ctx *kernel.Context) {
	if t.fb != nil {
		t.fb.ClearRGB(0, 0, 0)
		_ = t.fb.Present()
	}
	t.drv.Suspend()
	t.exit = false
	t.notify = true
	logclient.Logf(ctx, t.logCap, "%s: exit", t.drv.Name())
	t.sendExit(ctx)
}

func (t *Task) sendExit(ctx *kernel.Context) {
	if !t.launcher.Valid() {
		t.notify = false
		return
	}
	res := ctx.SendToCapResult(t.launcher, uint16(proto.MsgAppControl), proto.AppControlPayload(false), kernel.Capability{})
	if res == kernel.SendErrQueueFull {
		return
	}
	t.notify = false
}
