package loop

import (
	"iter"
	"sync"
	"time"

	"github.com/rs/xid"
)

// A Scheduler interleaves render, update, input, and idle events for an
// interactive application. Rendering runs at a capped, variable rate while
// simulation updates run at a fixed rate, so the simulation stays stable no
// matter how rendering keeps up.
//
// The scheduler is pull-based: every call to Next makes one scheduling
// decision and hands exactly one event back, or reports that the session is
// over. It never runs on its own; the caller decides when to resume it.
//
// Because the scheduler polls input from the window backend, it must be used
// on the thread that owns the window's event source (usually the main
// thread), unless the backend supports polling from other threads.
type Scheduler[I, E any] struct {
	HookableBase

	id      string
	window  Window[I]
	factory EventFactory[I, E]
	clock   Clock
	sleeper Sleeper

	phase        phase
	idleReported bool

	lastUpdate   TimeNS
	lastFrame    TimeNS
	updatePeriod TimeNS
	framePeriod  TimeNS
	updateDT     float64

	ups         uint64
	maxFPS      uint64
	swapBuffers bool

	statusLock sync.RWMutex
	status     Status
}

// Status is a point-in-time snapshot of a scheduler, taken at the most
// recently emitted event.
type Status struct {
	ID           string `json:"id"`
	Phase        string `json:"phase"`
	UPS          uint64 `json:"ups"`
	MaxFPS       uint64 `json:"max_fps"`
	SwapBuffers  bool   `json:"swap_buffers"`
	TimeNS       uint64 `json:"time_ns"`
	LastUpdateNS uint64 `json:"last_update_ns"`
	LastFrameNS  uint64 `json:"last_frame_ns"`
}

// New creates a Scheduler over a window backend and an event factory, with
// the default update and frame rates and buffer swapping enabled.
//
// The scheduler references the window; it does not own it. It only touches
// the window inside a call to Next and has released it by the time an event
// is handed back to the caller.
func New[I, E any](
	window Window[I],
	factory EventFactory[I, E],
) *Scheduler[I, E] {
	clock := NewSystemClock()

	s := &Scheduler[I, E]{
		id:           xid.New().String(),
		window:       window,
		factory:      factory,
		clock:        clock,
		sleeper:      clock,
		phase:        phaseRender,
		updatePeriod: ratePeriod(DefaultUPS, "updates per second"),
		framePeriod:  ratePeriod(DefaultMaxFPS, "max frames per second"),
		updateDT:     1.0 / float64(DefaultUPS),
		ups:          DefaultUPS,
		maxFPS:       DefaultMaxFPS,
		swapBuffers:  true,
	}

	start := clock.Now()
	s.lastUpdate = start
	s.lastFrame = start
	s.publishStatus(start)

	return s
}

// UPS sets the number of simulation updates per second.
//
// This is the fixed update rate on average over time. If the loop lags, it
// will try to catch up. The new rate applies from the next scheduling
// decision; the timestamps already anchoring the schedule are not adjusted.
// A zero rate panics with ErrZeroRate.
func (s *Scheduler[I, E]) UPS(n uint64) *Scheduler[I, E] {
	s.updatePeriod = ratePeriod(n, "updates per second")
	s.updateDT = 1.0 / float64(n)
	s.ups = n
	return s
}

// MaxFPS sets the maximum number of rendered frames per second.
//
// The achieved frame rate can be lower because the next frame is always
// scheduled from the previous frame, which causes frames to slip over time.
// The new rate applies from the next scheduling decision. A zero rate panics
// with ErrZeroRate.
func (s *Scheduler[I, E]) MaxFPS(n uint64) *Scheduler[I, E] {
	s.framePeriod = ratePeriod(n, "max frames per second")
	s.maxFPS = n
	return s
}

// SwapBuffers enables or disables automatic presentation of rendered frames.
// When disabled, no AfterRender events are emitted.
func (s *Scheduler[I, E]) SwapBuffers(enable bool) *Scheduler[I, E] {
	s.swapBuffers = enable
	return s
}

// WithClock replaces the timing collaborators and re-anchors the schedule at
// the new clock's current reading. It is mainly a seam for tests.
func (s *Scheduler[I, E]) WithClock(c Clock, sl Sleeper) *Scheduler[I, E] {
	s.clock = c
	s.sleeper = sl

	start := c.Now()
	s.lastUpdate = start
	s.lastFrame = start
	s.publishStatus(start)

	return s
}

// ID returns the unique ID of this scheduler instance.
func (s *Scheduler[I, E]) ID() string {
	return s.id
}

// Next returns the next event, or false exactly when the window has reported
// that it should close. Once it has returned false it returns false forever.
//
// A single call may pass through several internal phases, including one
// bounded sleep, before something emittable is found.
func (s *Scheduler[I, E]) Next() (E, bool) {
	var zero E

	for {
		switch s.phase {
		case phaseRender:
			if s.window.ShouldClose() {
				s.phase = phaseClosed
				s.publishStatus(s.clock.Now())
				return zero, false
			}

			startRender := s.clock.Now()
			s.lastFrame = startRender

			width, height := s.window.Size()
			if width == 0 || height == 0 {
				// Surface not ready. Skip the frame.
				s.enterUpdateLoop()
				continue
			}

			args := RenderArgs{
				// Extrapolate time forward to allow smooth motion.
				ExtDT:  (startRender - s.lastUpdate).Seconds(),
				Width:  width,
				Height: height,
			}
			s.phase = phaseSwapBuffers
			return s.yield(
				Emission{Kind: KindRender, Render: args},
				s.factory.Render(args))

		case phaseSwapBuffers:
			if !s.swapBuffers {
				s.enterUpdateLoop()
				continue
			}

			s.window.SwapBuffers()
			s.enterUpdateLoop()
			return s.yield(
				Emission{Kind: KindAfterRender},
				s.factory.AfterRender(AfterRenderArgs{}))

		case phaseUpdateLoop:
			now := s.clock.Now()
			nextFrame := s.lastFrame + s.framePeriod
			nextUpdate := s.lastUpdate + s.updatePeriod
			nextEvent := min(nextFrame, nextUpdate)

			switch {
			case nextEvent > now:
				if item, ok := s.window.PollEvent(); ok {
					// Input interrupts waiting and re-arms the idle report.
					s.idleReported = false
					return s.yield(
						Emission{Kind: KindInput},
						s.factory.Input(item))
				}

				if !s.idleReported {
					s.idleReported = true
					args := IdleArgs{DT: (nextEvent - now).Seconds()}
					return s.yield(
						Emission{Kind: KindIdle, Idle: args},
						s.factory.Idle(args))
				}

				s.sleep(nextEvent - now)
				s.idleReported = false
			case nextEvent == nextFrame:
				// A frame takes priority when a frame and an update are due
				// at the same instant.
				s.phase = phaseRender
			default:
				s.phase = phaseHandleEvents
			}

		case phaseHandleEvents:
			// Deliver all queued input before updating.
			item, ok := s.window.PollEvent()
			if !ok {
				s.phase = phaseUpdate
				continue
			}
			return s.yield(
				Emission{Kind: KindInput},
				s.factory.Input(item))

		case phaseUpdate:
			s.enterUpdateLoop()
			// Advance by a whole period rather than snapping to now. This
			// keeps the simulation clock free of drift relative to wall time
			// even when frames are skipped or delayed.
			s.lastUpdate += s.updatePeriod
			args := UpdateArgs{DT: s.updateDT}
			return s.yield(
				Emission{Kind: KindUpdate, Update: args},
				s.factory.Update(args))

		case phaseClosed:
			return zero, false
		}
	}
}

// Events returns a single-use iterator over the remaining events of the
// session, ending when the window reports closed.
func (s *Scheduler[I, E]) Events() iter.Seq[E] {
	return func(yield func(E) bool) {
		for {
			evt, ok := s.Next()
			if !ok {
				return
			}

			if !yield(evt) {
				return
			}
		}
	}
}

// Status returns a snapshot of the scheduler taken at the most recent
// emission. Unlike every other method, it may be called from any goroutine.
func (s *Scheduler[I, E]) Status() Status {
	s.statusLock.RLock()
	st := s.status
	s.statusLock.RUnlock()

	return st
}

func (s *Scheduler[I, E]) enterUpdateLoop() {
	s.phase = phaseUpdateLoop
	s.idleReported = false
}

func (s *Scheduler[I, E]) yield(em Emission, evt E) (E, bool) {
	em.Time = s.clock.Now()
	s.publishStatus(em.Time)
	s.InvokeHook(HookCtx{Domain: s, Pos: HookPosEmit, Item: em})

	return evt, true
}

func (s *Scheduler[I, E]) sleep(remaining TimeNS) {
	// Round down to the sleep primitive's millisecond granularity.
	d := time.Duration(remaining/nsPerMillisecond) * time.Millisecond

	s.InvokeHook(HookCtx{Domain: s, Pos: HookPosSleep, Item: d})
	s.sleeper.Sleep(d)
}

func (s *Scheduler[I, E]) publishStatus(now TimeNS) {
	st := Status{
		ID:           s.id,
		Phase:        s.phase.String(),
		UPS:          s.ups,
		MaxFPS:       s.maxFPS,
		SwapBuffers:  s.swapBuffers,
		TimeNS:       uint64(now),
		LastUpdateNS: uint64(s.lastUpdate),
		LastFrameNS:  uint64(s.lastFrame),
	}

	s.statusLock.Lock()
	s.status = st
	s.statusLock.Unlock()
}
