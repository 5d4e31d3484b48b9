// Package headless provides an in-memory windowing backend. It is meant for
// tests, benchmarks, and demos that drive the loop without a display.
package headless

import (
	"sync"
)

// A Window is a scripted window backend. It satisfies the loop.Window
// capability for any input item type I.
//
// Unlike a real windowing backend, it may be controlled from any goroutine:
// Close, Resize, and Push are safe to call while the loop is running.
type Window[I any] struct {
	mu sync.Mutex

	width  uint32
	height uint32
	closed bool
	queued []I
	swaps  uint64
}

// New creates a Window with the given drawable size.
func New[I any](width, height uint32) *Window[I] {
	return &Window[I]{
		width:  width,
		height: height,
	}
}

// ShouldClose reports whether Close has been called.
func (w *Window[I]) ShouldClose() bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	return w.closed
}

// Size returns the current drawable size.
func (w *Window[I]) Size() (uint32, uint32) {
	w.mu.Lock()
	defer w.mu.Unlock()

	return w.width, w.height
}

// PollEvent returns the oldest queued input item without blocking.
func (w *Window[I]) PollEvent() (I, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if len(w.queued) == 0 {
		var zero I
		return zero, false
	}

	item := w.queued[0]
	w.queued = w.queued[1:]

	return item, true
}

// SwapBuffers counts a presented frame.
func (w *Window[I]) SwapBuffers() {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.swaps++
}

// Close makes the window report that it should close.
func (w *Window[I]) Close() {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.closed = true
}

// Resize changes the drawable size. A zero width or height makes the surface
// report not ready.
func (w *Window[I]) Resize(width, height uint32) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.width = width
	w.height = height
}

// Push queues input items for delivery through PollEvent.
func (w *Window[I]) Push(items ...I) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.queued = append(w.queued, items...)
}

// Swaps returns the number of frames presented so far.
func (w *Window[I]) Swaps() uint64 {
	w.mu.Lock()
	defer w.mu.Unlock()

	return w.swaps
}
