package loop

// phase is the scheduler's position in its decision cycle.
type phase int

const (
	// phaseRender attempts a frame, or terminates if the window closed.
	phaseRender phase = iota

	// phaseSwapBuffers presents a frame produced in the render phase.
	phaseSwapBuffers

	// phaseUpdateLoop waits for the next scheduled render or update,
	// delivering input and idle notifications in the meantime.
	phaseUpdateLoop

	// phaseHandleEvents drains queued input before an update commits.
	phaseHandleEvents

	// phaseUpdate commits one fixed simulation step.
	phaseUpdate

	// phaseClosed is entered after the window reported closed. No further
	// events are produced.
	phaseClosed
)

func (p phase) String() string {
	switch p {
	case phaseRender:
		return "Render"
	case phaseSwapBuffers:
		return "SwapBuffers"
	case phaseUpdateLoop:
		return "UpdateLoop"
	case phaseHandleEvents:
		return "HandleEvents"
	case phaseUpdate:
		return "Update"
	case phaseClosed:
		return "Closed"
	}

	return "Unknown"
}
