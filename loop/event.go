package loop

// RenderArgs carries the information needed to draw one frame.
type RenderArgs struct {
	// ExtDT is the time in seconds since the last committed update, used to
	// extrapolate visual state between fixed simulation steps.
	ExtDT float64

	// Width of the drawable area.
	Width uint32

	// Height of the drawable area.
	Height uint32
}

// AfterRenderArgs marks that a rendered frame has been presented.
type AfterRenderArgs struct{}

// UpdateArgs carries the fixed time step of one simulation update.
type UpdateArgs struct {
	// DT is the delta time in seconds. It is always 1/UPS, regardless of
	// real elapsed time.
	DT float64
}

// IdleArgs reports spare time before the next scheduled render or update.
type IdleArgs struct {
	// DT is the expected idle time in seconds.
	DT float64
}

// An EventFactory maps the scheduler's argument shapes to the application's
// unified event type. The scheduler calls exactly one of these methods per
// emitted event.
type EventFactory[I, E any] interface {
	// Render creates a render event.
	Render(args RenderArgs) E

	// AfterRender creates an after-render event.
	AfterRender(args AfterRenderArgs) E

	// Update creates an update event.
	Update(args UpdateArgs) E

	// Input creates an input event from a window input item.
	Input(item I) E

	// Idle creates an idle event.
	Idle(args IdleArgs) E
}

// EventKind identifies which of the five event shapes an emission carries.
type EventKind int

// The five kinds of events the scheduler emits.
const (
	KindRender EventKind = iota
	KindAfterRender
	KindUpdate
	KindInput
	KindIdle
)

// Name returns a human-readable name of the event kind.
func (k EventKind) Name() string {
	switch k {
	case KindRender:
		return "Render"
	case KindAfterRender:
		return "AfterRender"
	case KindUpdate:
		return "Update"
	case KindInput:
		return "Input"
	case KindIdle:
		return "Idle"
	}

	return "Unknown"
}

// Event is a ready-made tagged event type for applications that do not need
// a custom representation. Only the field selected by Kind is meaningful.
type Event[I any] struct {
	Kind   EventKind
	Render RenderArgs
	Update UpdateArgs
	Idle   IdleArgs
	Input  I
}

// TaggedFactory is an EventFactory that emits tagged Event values.
type TaggedFactory[I any] struct{}

// Render creates a tagged render event.
func (TaggedFactory[I]) Render(args RenderArgs) Event[I] {
	return Event[I]{Kind: KindRender, Render: args}
}

// AfterRender creates a tagged after-render event.
func (TaggedFactory[I]) AfterRender(_ AfterRenderArgs) Event[I] {
	return Event[I]{Kind: KindAfterRender}
}

// Update creates a tagged update event.
func (TaggedFactory[I]) Update(args UpdateArgs) Event[I] {
	return Event[I]{Kind: KindUpdate, Update: args}
}

// Input creates a tagged input event.
func (TaggedFactory[I]) Input(item I) Event[I] {
	return Event[I]{Kind: KindInput, Input: item}
}

// Idle creates a tagged idle event.
func (TaggedFactory[I]) Idle(args IdleArgs) Event[I] {
	return Event[I]{Kind: KindIdle, Idle: args}
}
