package headless

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/framelab/cadence/loop"
)

var _ loop.Window[string] = (*Window[string])(nil)

var _ = Describe("Window", func() {
	var w *Window[string]

	BeforeEach(func() {
		w = New[string](640, 480)
	})

	It("should report its size", func() {
		width, height := w.Size()
		Expect(width).To(Equal(uint32(640)))
		Expect(height).To(Equal(uint32(480)))

		w.Resize(0, 480)
		width, _ = w.Size()
		Expect(width).To(BeZero())
	})

	It("should deliver queued input in order without blocking", func() {
		_, ok := w.PollEvent()
		Expect(ok).To(BeFalse())

		w.Push("a", "b")

		item, ok := w.PollEvent()
		Expect(ok).To(BeTrue())
		Expect(item).To(Equal("a"))

		item, ok = w.PollEvent()
		Expect(ok).To(BeTrue())
		Expect(item).To(Equal("b"))

		_, ok = w.PollEvent()
		Expect(ok).To(BeFalse())
	})

	It("should report closed after Close", func() {
		Expect(w.ShouldClose()).To(BeFalse())
		w.Close()
		Expect(w.ShouldClose()).To(BeTrue())
	})

	It("should count presented frames", func() {
		w.SwapBuffers()
		w.SwapBuffers()
		Expect(w.Swaps()).To(Equal(uint64(2)))
	})
})
