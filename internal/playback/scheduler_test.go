package playback_test

import (
	"sync/atomic"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/24dai03-saifchaus/algonexus/internal/playback"
)

var _ = Describe("Scheduler", func() {
	var s *playback.Scheduler

	BeforeEach(func() {
		s = &playback.Scheduler{}
	})

	It("runs an armed callback once", func() {
		var calls atomic.Int32
		s.Arm(5*time.Millisecond, func() { calls.Add(1) })
		Expect(s.Pending()).To(BeTrue())

		Eventually(calls.Load).Should(Equal(int32(1)))
		Consistently(calls.Load, 50*time.Millisecond).Should(Equal(int32(1)))
		Expect(s.Pending()).To(BeFalse())
	})

	It("never runs a cancelled callback", func() {
		var calls atomic.Int32
		s.Arm(10*time.Millisecond, func() { calls.Add(1) })
		s.Cancel()

		Consistently(calls.Load, 60*time.Millisecond).Should(BeZero())
		Expect(s.Pending()).To(BeFalse())
	})

	It("keeps only the latest timer when re-armed", func() {
		var first, second atomic.Int32
		s.Arm(10*time.Millisecond, func() { first.Add(1) })
		s.Arm(20*time.Millisecond, func() { second.Add(1) })

		Eventually(second.Load).Should(Equal(int32(1)))
		Expect(first.Load()).To(BeZero())
	})

	It("bumps the generation on every arm and cancel", func() {
		g := s.Generation()
		s.Arm(time.Hour, func() {})
		s.Cancel()
		Expect(s.Generation()).To(Equal(g + 2))
	})
})
