package proto

import (
	"encoding/binary"

	"badgefx/hal"
)

const keyEventLen = 7

// KeyEventPayload encodes a MsgKeyEvent payload.
//
// Payload format:
//
//	b[0:2] : hal.KeyCode (u16 LE)
//	b[2]   : 1 if pressed
//	b[3:7] : rune (i32 LE), 0 when none
func KeyEventPayload(ev hal.KeyEvent) []byte {
	b := make([]byte, keyEventLen)
	binary.LittleEndian.PutUint16(b[0:2], uint16(ev.Code))
	if ev.Press {
		b[2] = 1
	}
	binary.LittleEndian.PutUint32(b[3:7], uint32(ev.Rune))
	return b
}

func DecodeKeyEventPayload(b []byte) (hal.KeyEvent, bool) {
	if len(b) != keyEventLen {
		return hal.KeyEvent{}, false
	}
	return hal.KeyEvent{
		Code:  hal.KeyCode(binary.LittleEndian.Uint16(b[0:2])),
		Press: b[2] != 0,
		Rune:  rune(int32(binary.LittleEndian.Uint32(b[3:7]))),
	}, true
}
