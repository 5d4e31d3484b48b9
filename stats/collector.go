// Package stats aggregates loop emissions into achieved-rate statistics.
package stats

import (
	"sync"

	"github.com/framelab/cadence/loop"
)

// recentWindowSize is the number of recent frames used for the short-term
// frame rate.
const recentWindowSize = 120

// A Collector is a loop hook that counts emissions and derives achieved
// rates. Register it with Scheduler.AcceptHook.
type Collector struct {
	mu sync.Mutex

	started   bool
	firstTime loop.TimeNS
	lastTime  loop.TimeNS

	frames  uint64
	updates uint64
	inputs  uint64
	idles   uint64

	simTime  float64
	idleTime float64

	frameTimes []loop.TimeNS
}

// A Snapshot is a consistent view of the collected statistics.
type Snapshot struct {
	Frames  uint64 `json:"frames"`
	Updates uint64 `json:"updates"`
	Inputs  uint64 `json:"inputs"`
	Idles   uint64 `json:"idles"`

	// ElapsedSec is the engine-clock time covered by the collected
	// emissions.
	ElapsedSec float64 `json:"elapsed_sec"`

	// SimTimeSec is the committed simulation time, the sum of all fixed
	// update steps.
	SimTimeSec float64 `json:"sim_time_sec"`

	// IdleTimeSec is the total spare time reported through idle events.
	IdleTimeSec float64 `json:"idle_time_sec"`

	// AvgFPS and AvgUPS are the achieved rates over the whole collection.
	AvgFPS float64 `json:"avg_fps"`
	AvgUPS float64 `json:"avg_ups"`

	// RecentFPS is the frame rate over the last few frames.
	RecentFPS float64 `json:"recent_fps"`
}

// NewCollector creates a Collector.
func NewCollector() *Collector {
	return &Collector{}
}

// Func consumes a hook invocation.
func (c *Collector) Func(ctx loop.HookCtx) {
	if ctx.Pos != loop.HookPosEmit {
		return
	}

	em, ok := ctx.Item.(loop.Emission)
	if !ok {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.started {
		c.started = true
		c.firstTime = em.Time
	}
	c.lastTime = em.Time

	switch em.Kind {
	case loop.KindRender:
		c.frames++
		c.recordFrameTime(em.Time)
	case loop.KindUpdate:
		c.updates++
		c.simTime += em.Update.DT
	case loop.KindInput:
		c.inputs++
	case loop.KindIdle:
		c.idles++
		c.idleTime += em.Idle.DT
	}
}

func (c *Collector) recordFrameTime(t loop.TimeNS) {
	c.frameTimes = append(c.frameTimes, t)
	if len(c.frameTimes) > recentWindowSize {
		c.frameTimes = c.frameTimes[1:]
	}
}

// Snapshot returns the statistics collected so far. It is safe to call from
// any goroutine.
func (c *Collector) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := Snapshot{
		Frames:      c.frames,
		Updates:     c.updates,
		Inputs:      c.inputs,
		Idles:       c.idles,
		SimTimeSec:  c.simTime,
		IdleTimeSec: c.idleTime,
	}

	if c.started {
		s.ElapsedSec = (c.lastTime - c.firstTime).Seconds()
	}

	if s.ElapsedSec > 0 {
		s.AvgFPS = float64(c.frames) / s.ElapsedSec
		s.AvgUPS = float64(c.updates) / s.ElapsedSec
	}

	if n := len(c.frameTimes); n >= 2 {
		span := (c.frameTimes[n-1] - c.frameTimes[0]).Seconds()
		if span > 0 {
			s.RecentFPS = float64(n-1) / span
		}
	}

	return s
}
