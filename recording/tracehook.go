package recording

import (
	"github.com/framelab/cadence/loop"
)

// emissionTable is the table trace rows are written to.
const emissionTable = "emissions"

// An EmissionRow is one recorded loop emission.
type EmissionRow struct {
	Kind    string
	TimeSec float64
	DT      float64
	ExtDT   float64
	Width   uint32
	Height  uint32
}

// A TraceHook is a loop hook that records every emission through a
// DataRecorder.
type TraceHook struct {
	recorder DataRecorder
}

// NewTraceHook creates a TraceHook writing into recorder. It creates the
// emissions table.
func NewTraceHook(recorder DataRecorder) *TraceHook {
	recorder.CreateTable(emissionTable, EmissionRow{})

	return &TraceHook{recorder: recorder}
}

// Func consumes a hook invocation.
func (h *TraceHook) Func(ctx loop.HookCtx) {
	if ctx.Pos != loop.HookPosEmit {
		return
	}

	em, ok := ctx.Item.(loop.Emission)
	if !ok {
		return
	}

	row := EmissionRow{
		Kind:    em.Kind.Name(),
		TimeSec: em.Time.Seconds(),
	}

	switch em.Kind {
	case loop.KindRender:
		row.ExtDT = em.Render.ExtDT
		row.Width = em.Render.Width
		row.Height = em.Render.Height
	case loop.KindUpdate:
		row.DT = em.Update.DT
	case loop.KindIdle:
		row.DT = em.Idle.DT
	}

	h.recorder.InsertData(emissionTable, row)
}
