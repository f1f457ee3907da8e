package playback_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/24dai03-saifchaus/algonexus/internal/algorithms"
	"github.com/24dai03-saifchaus/algonexus/internal/playback"
	"github.com/24dai03-saifchaus/algonexus/internal/trace"
)

func sortTrace(values ...int) trace.Trace {
	tr, err := algorithms.NewBubbleSort().Generate(values, trace.NoTarget)
	Expect(err).NotTo(HaveOccurred())
	return tr
}

func searchTrace(target int, values ...int) trace.Trace {
	tr, err := algorithms.NewBinarySearch().Generate(values, trace.TargetOf(target))
	Expect(err).NotTo(HaveOccurred())
	return tr
}

var _ = Describe("Cursor", func() {
	var c *playback.Cursor

	BeforeEach(func() {
		c = playback.NewCursor()
	})

	It("starts empty with the default delay", func() {
		Expect(c.Delay()).To(Equal(1500 * time.Millisecond))
		Expect(c.AtEnd()).To(BeTrue())
		Expect(c.Play()).To(BeFalse())
		Expect(c.Current().Array).To(BeEmpty())
		i, n := c.Progress()
		Expect([]int{i, n}).To(Equal([]int{0, 0}))
	})

	Context("with a loaded trace", func() {
		var tr trace.Trace

		BeforeEach(func() {
			tr = sortTrace(2, 1)
			c.Load(tr)
		})

		It("rewinds to the first step, paused", func() {
			Expect(c.Index()).To(Equal(0))
			Expect(c.Playing()).To(BeFalse())
			Expect(c.Previous()).To(BeNil())
			i, n := c.Progress()
			Expect(i).To(Equal(1))
			Expect(n).To(Equal(len(tr)))
		})

		It("steps forward and back within bounds", func() {
			Expect(c.Prev()).To(Equal(playback.EventNone))
			Expect(c.Next()).To(Equal(playback.EventAdvanced))
			Expect(c.Previous()).NotTo(BeNil())
			Expect(c.Previous().Line).To(Equal(1))
			Expect(c.Prev()).To(Equal(playback.EventAdvanced))
			Expect(c.Index()).To(Equal(0))
		})

		It("clamps seeks", func() {
			c.Seek(-4)
			Expect(c.Index()).To(Equal(0))
			c.Seek(1000)
			Expect(c.Index()).To(Equal(len(tr) - 1))
		})

		It("only advances while playing", func() {
			Expect(c.Advance()).To(Equal(playback.EventNone))
			Expect(c.Toggle()).To(BeTrue())
			Expect(c.Advance()).To(Equal(playback.EventAdvanced))
			Expect(c.Index()).To(Equal(1))
		})

		It("pauses and celebrates on a completed sort", func() {
			c.Play()
			var last playback.Event
			for c.Playing() {
				last = c.Advance()
			}
			Expect(last).To(Equal(playback.EventCelebrate))
			Expect(c.AtEnd()).To(BeTrue())
			Expect(c.Advance()).To(Equal(playback.EventNone))
		})

		It("refuses to play from the final step", func() {
			c.Seek(len(tr) - 1)
			Expect(c.Toggle()).To(BeFalse())
			Expect(c.Playing()).To(BeFalse())
		})

		It("reports arrival again after leaving the end", func() {
			Expect(c.Seek(len(tr) - 1)).To(Equal(playback.EventCelebrate))
			Expect(c.Seek(len(tr) - 1)).To(Equal(playback.EventNone))
			c.Prev()
			Expect(c.Next()).To(Equal(playback.EventCelebrate))
		})

		It("keeps the play state on reset", func() {
			c.Play()
			c.Advance()
			c.Reset()
			Expect(c.Index()).To(Equal(0))
			Expect(c.Playing()).To(BeTrue())
		})

		It("pauses on reload", func() {
			c.Play()
			c.Advance()
			c.Load(searchTrace(3, 1, 3))
			Expect(c.Index()).To(Equal(0))
			Expect(c.Playing()).To(BeFalse())
		})
	})

	It("finishes without celebrating when the target is missing", func() {
		c.Load(searchTrace(99, 5, 3, 1))
		Expect(c.Seek(1000)).To(Equal(playback.EventFinished))
	})

	It("celebrates a located target", func() {
		c.Load(searchTrace(3, 5, 3, 1))
		Expect(c.Seek(1000)).To(Equal(playback.EventCelebrate))
	})

	DescribeTable("clamps the delay",
		func(in, want time.Duration) {
			c.SetDelay(in)
			Expect(c.Delay()).To(Equal(want))
		},
		Entry("below the minimum", 10*time.Millisecond, 100*time.Millisecond),
		Entry("above the maximum", time.Minute, 4000*time.Millisecond),
		Entry("off the grid", 1234*time.Millisecond, 1200*time.Millisecond),
		Entry("on the grid", 700*time.Millisecond, 700*time.Millisecond),
	)
})
