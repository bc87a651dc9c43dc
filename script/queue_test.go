package script

import (
	"math/rand"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/lawnlab/lawnscript/clock"
)

var _ = Describe("ActionQueue", func() {
	var queue *ActionQueue

	BeforeEach(func() {
		queue = NewActionQueue()
	})

	It("should pop in time order", func() {
		rng := rand.New(rand.NewSource(42))

		numActions := 100
		for i := 0; i < numActions; i++ {
			at := clock.TimeStamp{
				Wave: rng.Int31n(10),
				Tick: rng.Int31n(1000),
			}
			queue.Push(at, Shovel(int(at.Wave), int(at.Tick)))
		}

		now := clock.TimeStamp{Wave: 100}
		prev := clock.TimeStamp{Wave: -1}
		for i := 0; i < numActions; i++ {
			_, at, ok := queue.PopDue(now)
			Expect(ok).To(BeTrue())
			Expect(prev.Compare(at) <= 0).To(BeTrue())
			prev = at
		}

		Expect(queue.Len()).To(Equal(0))
	})

	It("should keep registration order for equal timestamps", func() {
		at := clock.TimeStamp{Wave: 1, Tick: 50}
		queue.Push(at, Shovel(2, 4))
		queue.Push(at, Plant(0, 2, 4))

		now := clock.TimeStamp{Wave: 1, Tick: 51}

		first, _, ok := queue.PopDue(now)
		Expect(ok).To(BeTrue())
		Expect(first.Kind()).To(Equal(KindRemovePlant))

		second, _, ok := queue.PopDue(now)
		Expect(ok).To(BeTrue())
		Expect(second.Kind()).To(Equal(KindPlantCard))
	})

	It("should not pop actions at or after now", func() {
		queue.Push(clock.TimeStamp{Wave: 2, Tick: 0}, Plant(1, 1, 1))
		queue.Push(clock.TimeStamp{Wave: 2, Tick: 10}, Plant(1, 1, 2))

		_, _, ok := queue.PopDue(clock.TimeStamp{Wave: 2, Tick: 0})
		Expect(ok).To(BeFalse())
		Expect(queue.Len()).To(Equal(2))
	})

	It("should report nothing due when empty", func() {
		_, _, ok := queue.PopDue(clock.TimeStamp{Wave: 99})
		Expect(ok).To(BeFalse())
	})
})
