package animator

import (
	"strings"
	"testing"

	"badgefx/badgeos/anim"
	"badgefx/badgeos/kernel"
	"badgefx/badgeos/proto"
	"badgefx/badgeos/raster"
	"badgefx/hal"
)

type testFB struct {
	clears   int
	presents int
}

func (f *testFB) Width() int              { return 0 }
func (f *testFB) Height() int             { return 0 }
func (f *testFB) Format() hal.PixelFormat { return hal.PixelFormatRGB565 }
func (f *testFB) StrideBytes() int        { return 0 }
func (f *testFB) Buffer() []byte          { return nil }
func (f *testFB) ClearRGB(r, g, b uint8)  { f.clears++ }
func (f *testFB) Present() error {
	f.presents++
	return nil
}

type sendReq struct {
	kind    proto.Kind
	payload []byte
	xfer    kernel.Capability
}

type script struct {
	to    kernel.Capability
	queue []sendReq
}

func (s *script) Step(ctx *kernel.Context) {
	for _, r := range s.queue {
		ctx.SendToCapResult(s.to, uint16(r.kind), r.payload, r.xfer)
	}
	s.queue = s.queue[:0]
	ctx.BlockOnTick()
}

type inbox struct {
	recv kernel.Capability
	msgs []kernel.Message
}

func (b *inbox) Step(ctx *kernel.Context) {
	for {
		msg, ok := ctx.TryRecv(b.recv)
		if !ok {
			break
		}
		b.msgs = append(b.msgs, msg)
	}
	ctx.BlockOnRecv(b.recv)
}

type harness struct {
	k        *kernel.Kernel
	tick     uint64
	task     *Task
	in       *script
	launcher *inbox
	logs     *inbox
	fb       *testFB
	launch   kernel.Capability
}

func newHarness(drv anim.Driver, interval uint64) *harness {
	k := kernel.New()
	appEP := k.NewEndpoint(kernel.RightSend | kernel.RightRecv)
	launchEP := k.NewEndpoint(kernel.RightSend | kernel.RightRecv)
	logEP := k.NewEndpoint(kernel.RightSend | kernel.RightRecv)

	h := &harness{
		k:        k,
		in:       &script{to: appEP.Restrict(kernel.RightSend)},
		launcher: &inbox{recv: launchEP.Restrict(kernel.RightRecv)},
		logs:     &inbox{recv: logEP.Restrict(kernel.RightRecv)},
		fb:       &testFB{},
		launch:   launchEP.Restrict(kernel.RightSend),
	}
	h.task = New(drv, h.fb, appEP.Restrict(kernel.RightRecv), logEP.Restrict(kernel.RightSend), interval)
	k.AddTask(h.in)
	k.AddTask(h.task)
	k.AddTask(h.launcher)
	k.AddTask(h.logs)
	k.RunUntilIdle(0)
	return h
}

func (h *harness) send(kind proto.Kind, payload []byte, xfer kernel.Capability) {
	h.in.queue = append(h.in.queue, sendReq{kind: kind, payload: payload, xfer: xfer})
}

func (h *harness) advance() {
	h.tick++
	h.k.TickTo(h.tick)
	h.k.RunUntilIdle(0)
}

func TestRainbowPacingAndExit(t *testing.T) {
	var capt raster.Capture
	drv := anim.NewRainbow(12, 2, 12, &capt)
	h := newHarness(drv, 3)

	h.send(proto.MsgAppControl, proto.AppControlPayload(true), h.launch)
	h.advance()
	if drv.State() != anim.Active || capt.Presents() != 1 {
		t.Fatalf("expected first frame on activation, got %s with %d presents", drv.State(), capt.Presents())
	}

	h.advance()
	h.advance()
	if capt.Presents() != 1 {
		t.Fatalf("expected pacing to hold the second frame, got %d presents", capt.Presents())
	}
	h.advance()
	if capt.Presents() != 2 || drv.Phase() != -20 {
		t.Fatalf("expected second frame at phase -20, got %d presents at %d", capt.Presents(), drv.Phase())
	}

	h.send(proto.MsgKeyEvent, proto.KeyEventPayload(hal.KeyEvent{Code: hal.KeyEnter, Press: true}), kernel.Capability{})
	h.send(proto.MsgKeyEvent, proto.KeyEventPayload(hal.KeyEvent{Code: hal.KeyF4, Press: false}), kernel.Capability{})
	h.advance()
	if h.task.ExitRequested() {
		t.Fatal("only function key presses request exit")
	}

	h.send(proto.MsgKeyEvent, proto.KeyEventPayload(hal.KeyEvent{Code: hal.KeyF4, Press: true}), kernel.Capability{})
	h.advance()
	if !h.task.ExitRequested() || drv.State() != anim.Active {
		t.Fatal("expected exit latched until the next frame")
	}
	h.advance()
	h.advance()

	if drv.State() != anim.Suspended {
		t.Fatalf("expected suspended after exit, got %s", drv.State())
	}
	if capt.Presents() != 3 {
		t.Fatalf("expected one last frame before exit, got %d presents", capt.Presents())
	}
	if h.fb.clears != 1 || h.fb.presents != 1 {
		t.Fatalf("expected display cleared once, got %d clears %d presents", h.fb.clears, h.fb.presents)
	}
	if len(h.launcher.msgs) != 1 {
		t.Fatalf("expected exit notification, got %d messages", len(h.launcher.msgs))
	}
	active, ok := proto.DecodeAppControlPayload(h.launcher.msgs[0].Payload())
	if !ok || active {
		t.Fatalf("expected deactivate, got active=%v ok=%v", active, ok)
	}

	h.advance()
	if capt.Presents() != 3 {
		t.Fatal("suspended driver must not draw")
	}

	h.send(proto.MsgAppControl, proto.AppControlPayload(true), h.launch)
	h.advance()
	if drv.State() != anim.Active || drv.Phase() != -10 || h.task.ExitRequested() {
		t.Fatalf("expected fresh start, got %s phase %d", drv.State(), drv.Phase())
	}
}

func TestFractalScansOnce(t *testing.T) {
	var capt raster.Capture
	drv := anim.NewFractal(4, 4, &capt)
	h := newHarness(drv, 0)

	h.send(proto.MsgAppControl, proto.AppControlPayload(true), h.launch)
	h.advance()
	h.advance()
	h.advance()
	if !drv.Scanned() || capt.Presents() != 5 {
		t.Fatalf("expected one full scan, got scanned=%v presents=%d", drv.Scanned(), capt.Presents())
	}

	found := false
	for _, m := range h.logs.msgs {
		if strings.HasPrefix(string(m.Payload()), "mandelbrot: scan done") {
			found = true
		}
	}
	if !found {
		t.Fatal("expected scan timing log line")
	}

	h.send(proto.MsgAppControl, proto.AppControlPayload(false), kernel.Capability{})
	h.advance()
	if drv.State() != anim.Suspended || len(h.launcher.msgs) != 0 {
		t.Fatalf("expected silent suspend, got %s with %d launcher messages", drv.State(), len(h.launcher.msgs))
	}
}

func TestActivateFailureReportsExit(t *testing.T) {
	drv := anim.NewRainbow(0, 0, 12, nil)
	h := newHarness(drv, 1)
	h.send(proto.MsgAppControl, proto.AppControlPayload(true), h.launch)
	h.advance()
	if drv.State() == anim.Active {
		t.Fatal("expected activation to fail")
	}
	if len(h.launcher.msgs) != 1 {
		t.Fatalf("expected launcher to be told, got %d messages", len(h.launcher.msgs))
	}
}
