package proto

// AppID identifies a foreground app in the launcher.
type AppID uint8

const (
	AppNone       AppID = 0
	AppMandelbrot AppID = 1
	AppRainbow    AppID = 2
)

func (id AppID) String() string {
	switch id {
	case AppNone:
		return "none"
	case AppMandelbrot:
		return "mandelbrot"
	case AppRainbow:
		return "rainbow"
	default:
		return "unknown"
	}
}

// ParseAppID maps an app name back to its ID.
func ParseAppID(name string) (AppID, bool) {
	switch name {
	case "", "none":
		return AppNone, true
	case "mandelbrot":
		return AppMandelbrot, true
	case "rainbow":
		return AppRainbow, true
	default:
		return AppNone, false
	}
}

// AppSelectPayload asks the launcher to start an app.
//
// Payload format:
//
//	b[0] : AppID
func AppSelectPayload(id AppID) []byte {
	return []byte{byte(id)}
}

func DecodeAppSelectPayload(b []byte) (id AppID, ok bool) {
	if len(b) != 1 {
		return AppNone, false
	}
	return AppID(b[0]), true
}
