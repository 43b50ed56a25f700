package kernel

// PanicInfo describes a panic recovered from a task Step.
type PanicInfo struct {
	TaskID TaskID
	Value  any
	Stack  []byte
}

// PanicHandler reacts to the first task panic of a kernel, typically by
// painting a panic screen. It runs on the goroutine driving the kernel and
// must not panic.
type PanicHandler func(PanicInfo)

// SetPanicHandler installs the handler for this kernel. nil removes it.
func (k *Kernel) SetPanicHandler(fn PanicHandler) {
	k.onPanic = fn
}

// Panicked reports whether any task of this kernel has panicked.
func (k *Kernel) Panicked() bool { return k.panicked }

// triggerPanic enters panic mode; only the first panic reaches the handler.
func (k *Kernel) triggerPanic(info PanicInfo) {
	if k.panicked {
		return
	}
	k.panicked = true
	info.Stack = captureStack()
	if k.onPanic != nil {
		k.onPanic(info)
	}
}
