// Package loop provides a pull-based timing engine for interactive
// applications such as games, simulations, and real-time visualizations.
//
// The engine decouples a fixed-rate simulation from a capped, variable-rate
// renderer. On every pull it decides whether to render a frame, commit one
// fixed simulation step, deliver a queued input item, or report idle time,
// then hands control back to the caller. When nothing is due and idle time
// has already been reported, it sleeps until the next scheduled event, so the
// loop never busy-waits.
//
// A typical session looks like:
//
//	window := myBackend.Open(...)
//	sched := loop.New(window, loop.TaggedFactory[myBackend.Input]{}).
//		UPS(120).
//		MaxFPS(60)
//
//	for e := range sched.Events() {
//		switch e.Kind {
//		case loop.KindRender:
//			draw(e.Render.Width, e.Render.Height, e.Render.ExtDT)
//		case loop.KindUpdate:
//			world.Step(e.Update.DT)
//		case loop.KindInput:
//			handle(e.Input)
//		case loop.KindIdle:
//			backgroundWork(e.Idle.DT)
//		}
//	}
//
// The iteration ends when the window reports that it should close.
package loop
