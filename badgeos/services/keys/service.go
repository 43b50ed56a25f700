// Package keys forwards keyboard events from the HAL into the kernel.
package keys

import (
	"badgefx/badgeos/kernel"
	"badgefx/badgeos/proto"
	"badgefx/hal"
)

const maxPending = 64

type Service struct {
	events <-chan hal.KeyEvent
	out    kernel.Capability

	pending []hal.KeyEvent
}

func New(in hal.Input, out kernel.Capability) *Service {
	s := &Service{out: out}
	if in != nil {
		if kbd := in.Keyboard(); kbd != nil {
			s.events = kbd.Events()
		}
	}
	return s
}

func (s *Service) Step(ctx *kernel.Context) {
drain:
	for s.events != nil {
		select {
		case ev := <-s.events:
			if len(s.pending) >= maxPending {
				s.pending = s.pending[1:]
			}
			s.pending = append(s.pending, ev)
		default:
			break drain
		}
	}

	// Events the destination had no room for are retried on the next tick.
	sent := 0
	for _, ev := range s.pending {
		res := ctx.SendToCapResult(s.out, uint16(proto.MsgKeyEvent), proto.KeyEventPayload(ev), kernel.Capability{})
		if res == kernel.SendErrQueueFull {
			break
		}
		sent++
	}
	s.pending = append(s.pending[:0], s.pending[sent:]...)

	ctx.BlockOnTick()
}
