// Package launcher owns the screen between apps: it draws the app menu, hands
// focus to the selected app and routes key events to whoever has focus.
package launcher

import (
	"image/color"

	logclient "badgefx/badgeos/client/logger"
	"badgefx/badgeos/fbtext"
	"badgefx/badgeos/kernel"
	"badgefx/badgeos/proto"
	"badgefx/hal"
)

// App is one menu entry.
type App struct {
	ID   proto.AppID
	Name string
	Cap  kernel.Capability
}

var (
	menuBG       = color.RGBA{A: 255}
	menuFG       = color.RGBA{R: 200, G: 200, B: 200, A: 255}
	menuSelected = color.RGBA{R: 255, G: 210, B: 0, A: 255}
)

type Service struct {
	inCap  kernel.Capability
	ctlCap kernel.Capability
	logCap kernel.Capability

	fb    hal.Framebuffer
	title string
	apps  []App

	sel    int
	active proto.AppID
	dirty  bool
}

// New returns a launcher. ctlCap is handed to apps so they can report exit;
// it must point back at inCap's endpoint. A MsgAppSelect on inCap starts an
// app without going through the menu.
func New(fb hal.Framebuffer, title string, inCap, ctlCap, logCap kernel.Capability, apps []App) *Service {
	return &Service{
		inCap:  inCap,
		ctlCap: ctlCap,
		logCap: logCap,
		fb:     fb,
		title:  title,
		apps:   apps,
		dirty:  true,
	}
}

// Active returns the app holding focus, or AppNone while the menu is shown.
func (s *Service) Active() proto.AppID { return s.active }

// Selected returns the highlighted menu entry.
func (s *Service) Selected() proto.AppID {
	if len(s.apps) == 0 {
		return proto.AppNone
	}
	return s.apps[s.sel].ID
}

func (s *Service) Step(ctx *kernel.Context) {
	for {
		msg, ok := ctx.TryRecv(s.inCap)
		if !ok {
			break
		}
		switch proto.Kind(msg.Kind) {
		case proto.MsgKeyEvent:
			ev, ok := proto.DecodeKeyEventPayload(msg.Payload())
			if !ok {
				continue
			}
			s.handleKey(ctx, ev)
		case proto.MsgAppControl:
			active, ok := proto.DecodeAppControlPayload(msg.Payload())
			if !ok || active || s.active == proto.AppNone {
				continue
			}
			logclient.Logf(ctx, s.logCap, "launcher: %s exited", s.active)
			s.active = proto.AppNone
			s.dirty = true
		case proto.MsgAppSelect:
			id, ok := proto.DecodeAppSelectPayload(msg.Payload())
			if !ok {
				continue
			}
			s.launch(ctx, id)
		}
	}

	if s.dirty && s.active == proto.AppNone {
		s.drawMenu()
	}
	ctx.BlockOnRecv(s.inCap)
}

func (s *Service) handleKey(ctx *kernel.Context, ev hal.KeyEvent) {
	if s.active != proto.AppNone {
		i, ok := s.index(s.active)
		if !ok {
			return
		}
		// Best-effort: a full app mailbox drops the key.
		_ = ctx.SendToCapResult(s.apps[i].Cap, uint16(proto.MsgKeyEvent), proto.KeyEventPayload(ev), kernel.Capability{})
		return
	}
	if !ev.Press || len(s.apps) == 0 {
		return
	}

	switch ev.Code {
	case hal.KeyUp:
		s.sel = (s.sel + len(s.apps) - 1) % len(s.apps)
		s.dirty = true
	case hal.KeyDown:
		s.sel = (s.sel + 1) % len(s.apps)
		s.dirty = true
	case hal.KeyEnter:
		s.launch(ctx, s.apps[s.sel].ID)
	}
}

func (s *Service) launch(ctx *kernel.Context, id proto.AppID) {
	if s.active != proto.AppNone {
		return
	}
	i, ok := s.index(id)
	if !ok || !s.apps[i].Cap.Valid() {
		logclient.Logf(ctx, s.logCap, "launcher: no app %s", id)
		return
	}
	app := s.apps[i]

	var xfer kernel.Capability
	if s.ctlCap.Valid() {
		xfer = s.ctlCap
	}
	res := ctx.SendToCapResult(app.Cap, uint16(proto.MsgAppControl), proto.AppControlPayload(true), xfer)
	if res != kernel.SendOK {
		logclient.Logf(ctx, s.logCap, "launcher: start %s: %s", id, res)
		return
	}
	s.active = id
	s.sel = i
	s.dirty = false
	logclient.Logf(ctx, s.logCap, "launcher: started %s", id)
}

func (s *Service) index(id proto.AppID) (int, bool) {
	for i, a := range s.apps {
		if a.ID == id {
			return i, true
		}
	}
	return 0, false
}

func (s *Service) drawMenu() {
	s.dirty = false
	if s.fb == nil {
		return
	}

	d := fbtext.New(s.fb)
	d.Clear(menuBG)

	lh := fbtext.LineHeight() + 2
	x, y := int16(4), int16(4)
	d.WriteLine(x, y, s.title, menuFG)
	y += lh * 2

	for i, a := range s.apps {
		c, prefix := menuFG, "  "
		if i == s.sel {
			c, prefix = menuSelected, "> "
		}
		d.WriteLine(x, y, prefix+a.Name, c)
		y += lh
	}
	y += lh
	d.WriteLine(x, y, "UP/DOWN select  ENTER start  F1-F5 exit", menuFG)
	_ = d.Display()
}
