package proto

// Kind identifies the message type carried in kernel.Message.Kind.
type Kind uint16

const (
	MsgLogLine Kind = iota + 1
	MsgKeyEvent
	MsgAppControl
	MsgAppSelect
)

func (k Kind) String() string {
	switch k {
	case MsgLogLine:
		return "log_line"
	case MsgKeyEvent:
		return "key_event"
	case MsgAppControl:
		return "app_control"
	case MsgAppSelect:
		return "app_select"
	default:
		return "unknown"
	}
}
