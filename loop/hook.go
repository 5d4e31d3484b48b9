package loop

// HookPos defines the enum of possible hooking positions
type HookPos struct {
	Name string
}

// HookPosEmit is a hook position that triggers right before an event is
// handed to the caller.
var HookPosEmit = &HookPos{Name: "Emit"}

// HookPosSleep is a hook position that triggers before the scheduler blocks
// in its waiting phase. The hook item is the sleep duration.
var HookPosSleep = &HookPos{Name: "Sleep"}

// HookCtx is the context that holds all the information about the site that a
// hook is triggered
type HookCtx struct {
	Domain Hookable
	Pos    *HookPos
	Item   interface{}
}

// Hookable defines an object that accept Hooks
type Hookable interface {
	// AcceptHook registers a hook
	AcceptHook(hook Hook)
}

// Hook is a short piece of program that can be invoked by a hookable object.
type Hook interface {
	// Func determines what to do if hook is invoked.
	Func(ctx HookCtx)
}

// A HookableBase provides some utility function for other type that implement
// the Hookable interface.
type HookableBase struct {
	Hooks []Hook
}

// NewHookableBase creates a HookableBase object
func NewHookableBase() *HookableBase {
	h := new(HookableBase)
	h.Hooks = make([]Hook, 0)
	return h
}

// AcceptHook register a hook
func (h *HookableBase) AcceptHook(hook Hook) {
	h.Hooks = append(h.Hooks, hook)
}

// InvokeHook triggers the register Hooks
func (h *HookableBase) InvokeHook(ctx HookCtx) {
	for _, hook := range h.Hooks {
		hook.Func(ctx)
	}
}

// An Emission describes one event handed to the caller. It is the hook item
// at HookPosEmit.
type Emission struct {
	// Kind selects which of the argument fields is meaningful.
	Kind EventKind

	// Time is the scheduler's clock reading when the event was emitted.
	Time TimeNS

	Render RenderArgs
	Update UpdateArgs
	Idle   IdleArgs
}
