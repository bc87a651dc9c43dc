package script

import (
	"errors"
	"sync"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/lawnlab/lawnscript/clock"
	"github.com/lawnlab/lawnscript/proc"
)

type fakeClock struct {
	sync.Mutex
	now   clock.TimeStamp
	reads int
}

func (c *fakeClock) CurrentTime() clock.TimeStamp {
	c.Lock()
	defer c.Unlock()

	c.reads++

	return c.now
}

func (c *fakeClock) set(t clock.TimeStamp) {
	c.Lock()
	c.now = t
	c.Unlock()
}

func (c *fakeClock) readCount() int {
	c.Lock()
	defer c.Unlock()

	return c.reads
}

type fakeTarget struct {
	sync.Mutex
	live bool
}

func (t *fakeTarget) IsLive() bool {
	t.Lock()
	defer t.Unlock()

	return t.live
}

func (t *fakeTarget) setLive(v bool) {
	t.Lock()
	t.live = v
	t.Unlock()
}

type recordingDispatcher struct {
	sync.Mutex
	acts []Action
	err  error
}

func (d *recordingDispatcher) Dispatch(act Action) error {
	d.Lock()
	defer d.Unlock()

	d.acts = append(d.acts, act)

	return d.err
}

func (d *recordingDispatcher) dispatched() []Action {
	d.Lock()
	defer d.Unlock()

	return append([]Action{}, d.acts...)
}

type recordingHook struct {
	sync.Mutex
	ctxs []HookCtx
}

func (h *recordingHook) Func(ctx HookCtx) {
	h.Lock()
	h.ctxs = append(h.ctxs, ctx)
	h.Unlock()
}

func (h *recordingHook) recorded() []HookCtx {
	h.Lock()
	defer h.Unlock()

	return append([]HookCtx{}, h.ctxs...)
}

var _ = Describe("Scheduler", func() {
	var (
		fc         *fakeClock
		target     *fakeTarget
		dispatcher *recordingDispatcher
		sched      *Scheduler
	)

	BeforeEach(func() {
		fc = &fakeClock{}
		target = &fakeTarget{live: true}
		dispatcher = &recordingDispatcher{}
		sched = MakeBuilder().
			WithName("test").
			WithClock(fc).
			WithTarget(target).
			WithDispatcher(dispatcher).
			WithPollInterval(time.Millisecond).
			WithWaitInterval(100 * time.Microsecond).
			Build()
	})

	It("should dispatch due actions in time then registration order", func() {
		a := Plant(0, 1, 1)
		b := Plant(0, 1, 2)
		c := Shovel(1, 1)
		d := Plant(0, 1, 3)

		sched.AddAction(clock.TimeStamp{Wave: 1, Tick: 50}, a)
		sched.AddAction(clock.TimeStamp{Wave: 1, Tick: 50}, b)
		sched.AddAction(clock.TimeStamp{Wave: 1, Tick: 10}, c)
		sched.AddAction(clock.TimeStamp{Wave: 2, Tick: 0}, d)

		sched.drain(clock.TimeStamp{Wave: 2, Tick: 0})

		Expect(dispatcher.dispatched()).To(Equal([]Action{c, a, b}))
		Expect(sched.Pending()).To(Equal(1))
	})

	It("should run custom actions through their callback", func() {
		ran := false
		sched.AddAction(clock.TimeStamp{Wave: 1}, Do(func() error {
			ran = true
			return nil
		}))

		sched.drain(clock.TimeStamp{Wave: 2})

		Expect(ran).To(BeTrue())
		Expect(dispatcher.dispatched()).To(BeEmpty())
	})

	It("should evict a failing action without stopping", func() {
		hook := &recordingHook{}
		sched.AcceptHook(hook)
		dispatcher.err = errors.New("sun too low")

		sched.AddAction(clock.TimeStamp{Wave: 1, Tick: 1}, Plant(0, 1, 1))
		sched.AddAction(clock.TimeStamp{Wave: 1, Tick: 2}, Plant(0, 1, 2))

		sched.drain(clock.TimeStamp{Wave: 1, Tick: 3})

		Expect(dispatcher.dispatched()).To(HaveLen(2))
		Expect(sched.Pending()).To(Equal(0))

		ctxs := hook.recorded()
		Expect(ctxs).To(HaveLen(4))
		Expect(ctxs[1].Pos).To(BeIdenticalTo(HookPosAfterDispatch))
		Expect(ctxs[1].Detail).To(MatchError(ErrDispatchFailed))
	})

	It("should refuse to start when the target is not live", func() {
		target.setLive(false)

		Expect(sched.Start()).To(MatchError(proc.ErrNotAttached))
		Expect(sched.Status()).To(Equal(StatusIdle))
	})

	It("should refuse to start twice", func() {
		Expect(sched.Start()).To(Succeed())
		Expect(sched.Start()).To(MatchError(ErrAlreadyStarted))
	})

	It("should run the setup hook exactly once on start", func() {
		setups := 0
		sched = MakeBuilder().
			WithClock(fc).
			WithTarget(target).
			WithSetupFunc(func(s *Scheduler) {
				setups++
				s.AddAction(clock.TimeStamp{Wave: 1}, Shovel(1, 1))
			}).
			Build()

		Expect(sched.Start()).To(Succeed())

		Expect(setups).To(Equal(1))
		Expect(sched.Pending()).To(Equal(1))
	})

	It("should stop cooperatively", func() {
		done := make(chan error)
		go func() {
			done <- sched.Run()
		}()

		Eventually(sched.Status).Should(Equal(StatusRunning))

		sched.Stop()
		sched.Stop()

		Eventually(done).Should(Receive(BeNil()))
		Expect(sched.Status()).To(Equal(StatusStopped))
	})

	It("should stop without reading the clock once the game goes away", func() {
		Expect(sched.Start()).To(Succeed())
		target.setLive(false)

		Expect(sched.Run()).To(Succeed())

		Expect(sched.Status()).To(Equal(StatusStopped))
		Expect(fc.readCount()).To(Equal(0))
	})

	It("should dispatch once the clock passes an action's time", func() {
		sched.AddAction(clock.TimeStamp{Wave: 1, Tick: 10}, Plant(0, 2, 3))

		go sched.Run()
		defer sched.Stop()

		Eventually(sched.Status).Should(Equal(StatusRunning))
		Consistently(dispatcher.dispatched).Should(BeEmpty())

		fc.set(clock.TimeStamp{Wave: 1, Tick: 11})

		Eventually(dispatcher.dispatched).Should(HaveLen(1))
	})

	It("should return from WaitUntil when the clock reaches the target", func() {
		sched.setStatus(StatusRunning)

		go func() {
			time.Sleep(5 * time.Millisecond)
			fc.set(clock.TimeStamp{Wave: 1, Tick: 100})
		}()

		Expect(sched.WaitUntil(clock.TimeStamp{Wave: 1, Tick: 100})).
			To(BeTrue())
	})

	It("should abandon WaitUntil when stopped", func() {
		sched.setStatus(StatusRunning)

		go func() {
			time.Sleep(5 * time.Millisecond)
			sched.Stop()
		}()

		Expect(sched.WaitUntil(clock.TimeStamp{Wave: 99})).To(BeFalse())
	})

	It("should abandon WaitUntil when the game goes away", func() {
		sched.setStatus(StatusRunning)

		go func() {
			time.Sleep(5 * time.Millisecond)
			target.setLive(false)
		}()

		Expect(sched.WaitUntil(clock.TimeStamp{Wave: 99})).To(BeFalse())
	})

	It("should measure Delay from the current reading", func() {
		fc.set(clock.TimeStamp{Wave: 2, Tick: 100})
		sched.setStatus(StatusRunning)

		go func() {
			time.Sleep(5 * time.Millisecond)
			fc.set(clock.TimeStamp{Wave: 2, Tick: 150})
		}()

		Expect(sched.Delay(50)).To(BeTrue())
	})
})
