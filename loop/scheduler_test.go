package loop

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	gomock "go.uber.org/mock/gomock"
)

// testWindow is a scripted window backend.
type testWindow struct {
	shouldClose   bool
	width, height uint32
	queued        []string
	swapCount     int
}

func (w *testWindow) ShouldClose() bool {
	return w.shouldClose
}

func (w *testWindow) Size() (uint32, uint32) {
	return w.width, w.height
}

func (w *testWindow) PollEvent() (string, bool) {
	if len(w.queued) == 0 {
		return "", false
	}

	item := w.queued[0]
	w.queued = w.queued[1:]

	return item, true
}

func (w *testWindow) SwapBuffers() {
	w.swapCount++
}

// virtualClock only advances when slept on.
type virtualClock struct {
	now TimeNS
}

func (c *virtualClock) Now() TimeNS {
	return c.now
}

func (c *virtualClock) Sleep(d time.Duration) {
	c.now += TimeNS(d)
}

var _ = Describe("Scheduler", func() {
	var (
		window *testWindow
		clock  *virtualClock
		sched  *Scheduler[string, Event[string]]
	)

	pull := func() Event[string] {
		evt, ok := sched.Next()
		Expect(ok).To(BeTrue())
		return evt
	}

	BeforeEach(func() {
		window = &testWindow{width: 100, height: 100}
		clock = &virtualClock{}
		sched = New[string, Event[string]](window, TaggedFactory[string]{}).
			UPS(2).
			MaxFPS(1).
			WithClock(clock, clock)
	})

	It("should emit renders and updates in the documented order", func() {
		evt := pull()
		Expect(evt.Kind).To(Equal(KindRender))
		Expect(evt.Render.ExtDT).To(BeNumerically("==", 0.0))
		Expect(evt.Render.Width).To(Equal(uint32(100)))
		Expect(evt.Render.Height).To(Equal(uint32(100)))

		Expect(pull().Kind).To(Equal(KindAfterRender))

		evt = pull()
		Expect(evt.Kind).To(Equal(KindIdle))
		Expect(evt.Idle.DT).To(BeNumerically("~", 0.5, 1e-9))

		evt = pull()
		Expect(evt.Kind).To(Equal(KindUpdate))
		Expect(evt.Update.DT).To(BeNumerically("~", 0.5, 1e-9))
		Expect(clock.now).To(Equal(NSPerSecond / 2))

		evt = pull()
		Expect(evt.Kind).To(Equal(KindIdle))
		Expect(evt.Idle.DT).To(BeNumerically("~", 0.5, 1e-9))

		evt = pull()
		Expect(evt.Kind).To(Equal(KindRender))
		Expect(evt.Render.ExtDT).To(BeNumerically("~", 0.5, 1e-9))
		Expect(clock.now).To(Equal(NSPerSecond))

		Expect(pull().Kind).To(Equal(KindAfterRender))

		// The update due at t=1.0 commits after the frame that won the tie.
		Expect(pull().Kind).To(Equal(KindUpdate))
	})

	It("should yield nothing once the window reports closed", func() {
		window.shouldClose = true

		_, ok := sched.Next()
		Expect(ok).To(BeFalse())

		_, ok = sched.Next()
		Expect(ok).To(BeFalse())
	})

	It("should stay terminated even if the close flag resets", func() {
		window.shouldClose = true
		_, ok := sched.Next()
		Expect(ok).To(BeFalse())

		window.shouldClose = false
		_, ok = sched.Next()
		Expect(ok).To(BeFalse())
	})

	It("should not render while the surface size is zero", func() {
		window.width = 0

		for i := 0; i < 8; i++ {
			evt := pull()
			Expect(evt.Kind).NotTo(Equal(KindRender))
			Expect(evt.Kind).NotTo(Equal(KindAfterRender))
		}
	})

	It("should deliver queued input before reporting idle", func() {
		window.queued = []string{"key-a"}

		Expect(pull().Kind).To(Equal(KindRender))
		Expect(pull().Kind).To(Equal(KindAfterRender))

		evt := pull()
		Expect(evt.Kind).To(Equal(KindInput))
		Expect(evt.Input).To(Equal("key-a"))

		Expect(pull().Kind).To(Equal(KindIdle))
	})

	It("should re-arm the idle report when input arrives", func() {
		Expect(pull().Kind).To(Equal(KindRender))
		Expect(pull().Kind).To(Equal(KindAfterRender))
		Expect(pull().Kind).To(Equal(KindIdle))

		window.queued = []string{"key-b"}

		Expect(pull().Kind).To(Equal(KindInput))

		// No time passed, but the guard was reset by the input.
		Expect(pull().Kind).To(Equal(KindIdle))
	})

	It("should drain all queued input before an update commits", func() {
		Expect(pull().Kind).To(Equal(KindRender))
		Expect(pull().Kind).To(Equal(KindAfterRender))

		clock.now = NSPerSecond / 2
		window.queued = []string{"x", "y"}

		evt := pull()
		Expect(evt.Kind).To(Equal(KindInput))
		Expect(evt.Input).To(Equal("x"))

		evt = pull()
		Expect(evt.Kind).To(Equal(KindInput))
		Expect(evt.Input).To(Equal("y"))

		Expect(pull().Kind).To(Equal(KindUpdate))
	})

	It("should advance committed simulation time by whole fixed steps", func() {
		updates := 0
		simTime := 0.0

		for i := 0; i < 40; i++ {
			evt := pull()
			if evt.Kind == KindUpdate {
				updates++
				simTime += evt.Update.DT
			}
		}

		Expect(updates).To(BeNumerically(">", 0))
		Expect(simTime).To(BeNumerically("~", float64(updates)/2.0, 1e-9))
		Expect(sched.Status().LastUpdateNS).
			To(Equal(uint64(updates) * uint64(NSPerSecond/2)))
	})

	It("should skip presentation when swap buffers is disabled", func() {
		sched.SwapBuffers(false)

		Expect(pull().Kind).To(Equal(KindRender))

		evt := pull()
		Expect(evt.Kind).NotTo(Equal(KindAfterRender))
		Expect(window.swapCount).To(Equal(0))
	})

	It("should present through the window when swap buffers is enabled", func() {
		Expect(pull().Kind).To(Equal(KindRender))
		Expect(pull().Kind).To(Equal(KindAfterRender))
		Expect(window.swapCount).To(Equal(1))
	})

	It("should sleep for the time remaining to the next scheduled event", func() {
		mockCtrl := gomock.NewController(GinkgoT())
		mockClock := NewMockClock(mockCtrl)
		mockSleeper := NewMockSleeper(mockCtrl)

		var now TimeNS
		mockClock.EXPECT().Now().
			DoAndReturn(func() TimeNS { return now }).
			AnyTimes()
		mockSleeper.EXPECT().Sleep(500 * time.Millisecond).
			Do(func(d time.Duration) { now += TimeNS(d) })

		window.width = 0
		sched.WithClock(mockClock, mockSleeper)

		Expect(pull().Kind).To(Equal(KindIdle))
		Expect(pull().Kind).To(Equal(KindUpdate))
	})
})
