package anim

// State is the lifecycle state of a Driver.
type State uint8

const (
	Inactive State = iota
	Active
	Suspended
)

func (s State) String() string {
	switch s {
	case Inactive:
		return "inactive"
	case Active:
		return "active"
	case Suspended:
		return "suspended"
	default:
		return "unknown"
	}
}

// Driver renders an animation one frame per Tick.
//
// Activate allocates a fresh frame and moves the driver to Active. Tick is a
// no-op outside Active. Suspend drops the frame and all animation state.
type Driver interface {
	Name() string
	State() State
	Activate() error
	Tick() error
	Suspend()
}
