package playback_test

import (
	"context"
	"sync"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/24dai03-saifchaus/algonexus/internal/playback"
	"github.com/24dai03-saifchaus/algonexus/internal/trace"
)

type recorder struct {
	mu     sync.Mutex
	index  []int
	events []playback.Event
}

func (r *recorder) onStep(i int, _ trace.Step, ev playback.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.index = append(r.index, i)
	r.events = append(r.events, ev)
}

func (r *recorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.index)
}

var _ = Describe("Player", func() {
	var (
		p   *playback.Player
		rec *recorder
	)

	BeforeEach(func() {
		p = playback.NewPlayer()
		p.SetDelay(playback.MinDelay)
		rec = &recorder{}
	})

	It("plays a trace to the end", func() {
		tr := sortTrace(2, 1)
		p.Load(tr)

		Expect(p.Run(context.Background(), rec.onStep)).To(Succeed())
		Expect(rec.index).To(Equal([]int{1, 2, 3, 4}))
		Expect(rec.events[len(rec.events)-1]).To(Equal(playback.EventCelebrate))
		Expect(p.Playing()).To(BeFalse())
		Expect(p.Index()).To(Equal(len(tr) - 1))
	})

	It("returns at once when there is nothing to play", func() {
		Expect(p.Run(context.Background(), rec.onStep)).To(Succeed())
		Expect(rec.count()).To(BeZero())
	})

	It("stops when paused from another goroutine", func() {
		p.Load(sortTrace(5, 4, 3, 2, 1))
		done := make(chan error, 1)
		go func() { done <- p.Run(context.Background(), rec.onStep) }()

		Eventually(rec.count, time.Second).Should(BeNumerically(">=", 1))
		Expect(p.Toggle()).To(BeFalse())
		Eventually(done, time.Second).Should(Receive(BeNil()))

		stopped := rec.count()
		Consistently(rec.count, 300*time.Millisecond).Should(Equal(stopped))
	})

	It("stops when the context is cancelled", func() {
		p.Load(sortTrace(5, 4, 3, 2, 1))
		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error, 1)
		go func() { done <- p.Run(ctx, rec.onStep) }()

		cancel()
		Eventually(done, time.Second).Should(Receive(MatchError(context.Canceled)))
		Expect(p.Playing()).To(BeFalse())
	})

	It("stops when a new trace is loaded", func() {
		p.Load(sortTrace(5, 4, 3, 2, 1))
		done := make(chan error, 1)
		go func() { done <- p.Run(context.Background(), rec.onStep) }()

		Eventually(rec.count, time.Second).Should(BeNumerically(">=", 1))
		p.Load(sortTrace(1, 2))
		Eventually(done, time.Second).Should(Receive(BeNil()))
		Expect(p.Index()).To(Equal(0))
	})

	It("keeps playing across a delay change", func() {
		p.Load(sortTrace(2, 1))
		done := make(chan error, 1)
		go func() { done <- p.Run(context.Background(), rec.onStep) }()

		p.SetDelay(200 * time.Millisecond)
		Eventually(done, 3*time.Second).Should(Receive(BeNil()))
		Expect(rec.count()).To(Equal(4))
		Expect(p.Delay()).To(Equal(200 * time.Millisecond))
	})
})
