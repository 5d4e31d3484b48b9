package loop

import (
	"log"
)

// A LogHook is a hook that is responsible for recording information from the
// running loop.
type LogHook interface {
	Hook
}

// LogHookBase provides the common logic for all LogHooks
type LogHookBase struct {
	*log.Logger
}

// EventLogger is a hook that prints every emitted event.
type EventLogger struct {
	LogHookBase
}

// NewEventLogger returns a new EventLogger which will write into the logger
func NewEventLogger(logger *log.Logger) *EventLogger {
	h := new(EventLogger)
	h.Logger = logger
	return h
}

// Func writes the emission information into the logger
func (h *EventLogger) Func(ctx HookCtx) {
	if ctx.Pos != HookPosEmit {
		return
	}

	em, ok := ctx.Item.(Emission)
	if !ok {
		return
	}

	switch em.Kind {
	case KindRender:
		h.Logger.Printf("%.6f, Render, %dx%d, ext_dt %.6f",
			em.Time.Seconds(), em.Render.Width, em.Render.Height,
			em.Render.ExtDT)
	case KindUpdate:
		h.Logger.Printf("%.6f, Update, dt %.6f",
			em.Time.Seconds(), em.Update.DT)
	case KindIdle:
		h.Logger.Printf("%.6f, Idle, dt %.6f",
			em.Time.Seconds(), em.Idle.DT)
	default:
		h.Logger.Printf("%.6f, %s", em.Time.Seconds(), em.Kind.Name())
	}
}
