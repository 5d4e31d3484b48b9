package loop

// Window is the capability the scheduler needs from a windowing backend. The
// scheduler only calls these methods; it never implements or owns the
// backend.
//
// I is the backend's input item type. The scheduler treats input items as
// opaque payloads and hands them to the event factory unchanged.
type Window[I any] interface {
	// ShouldClose reports whether the interactive session is over. The
	// scheduler checks it at the start of every render phase and stops
	// producing events once it returns true.
	ShouldClose() bool

	// Size returns the current drawable size. A zero width or height means
	// the surface is not ready and no frame can be rendered.
	Size() (width, height uint32)

	// PollEvent returns the next queued input item, if any. It must not
	// block.
	PollEvent() (item I, ok bool)

	// SwapBuffers presents the frame that was just rendered.
	SwapBuffers()
}
