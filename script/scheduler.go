package script

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/lawnlab/lawnscript/clock"
	"github.com/lawnlab/lawnscript/proc"
)

// Status is the scheduler's lifecycle state.
type Status int

const (
	StatusIdle Status = iota
	StatusRunning
	StatusStopping
	StatusStopped
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "Idle"
	case StatusRunning:
		return "Running"
	case StatusStopping:
		return "Stopping"
	case StatusStopped:
		return "Stopped"
	}

	return fmt.Sprintf("Status(%d)", int(s))
}

// A Dispatcher translates a due action into an effect on the game process.
// The scheduler treats a returned error as fatal to that action's intent
// but not to the loop: the action is already evicted and is not retried.
type Dispatcher interface {
	Dispatch(act Action) error
}

// DispatchFunc adapts a function to the Dispatcher interface.
type DispatchFunc func(act Action) error

func (f DispatchFunc) Dispatch(act Action) error {
	return f(act)
}

// Liveness is the slice of the session the scheduler needs: an uncached
// answer to "is the game still there".
type Liveness interface {
	IsLive() bool
}

var (
	// ErrDispatchFailed signals that the dispatcher reported failure for a
	// due action. The action is not re-queued.
	ErrDispatchFailed = errors.New("dispatch failed")

	// ErrAlreadyStarted is returned by Start on a scheduler that has left
	// the Idle state.
	ErrAlreadyStarted = errors.New("script already started")
)

// A Scheduler holds a time-ordered collection of pending actions and runs a
// cooperative, single-goroutine polling loop against the game clock.
//
// One loop at a time uses the session/accessor/clock/scheduler chain; the
// scheduler is not designed for concurrent callers without external mutual
// exclusion. The game itself is an uncontrolled concurrent actor, which is
// why liveness is re-checked on every iteration.
type Scheduler struct {
	HookableBase

	name       string
	clock      clock.TimeTeller
	target     Liveness
	dispatcher Dispatcher
	setup      func(*Scheduler)
	update     func(*Scheduler)

	pollInterval time.Duration
	waitInterval time.Duration

	queue *ActionQueue

	statusLock sync.Mutex
	status     Status
}

// Name returns the script name.
func (s *Scheduler) Name() string {
	return s.name
}

// Status returns the current lifecycle state.
func (s *Scheduler) Status() Status {
	s.statusLock.Lock()
	st := s.status
	s.statusLock.Unlock()

	return st
}

func (s *Scheduler) setStatus(st Status) {
	s.statusLock.Lock()
	s.status = st
	s.statusLock.Unlock()
}

// Pending returns the number of actions not yet dispatched.
func (s *Scheduler) Pending() int {
	return s.queue.Len()
}

// AddAction registers an action to run once the game clock passes at. It is
// legal in any state; actions registered before Start are dispatched once
// the loop is running and their time has passed.
func (s *Scheduler) AddAction(at clock.TimeStamp, act Action) {
	s.queue.Push(at, act)
}

// Start moves the scheduler from Idle to Running. It requires the session
// to be attached and invokes the one-time setup hook, where the script
// populates its initial schedule.
func (s *Scheduler) Start() error {
	s.statusLock.Lock()

	if s.status != StatusIdle {
		s.statusLock.Unlock()
		return ErrAlreadyStarted
	}

	if !s.target.IsLive() {
		s.statusLock.Unlock()
		return proc.ErrNotAttached
	}

	s.status = StatusRunning
	s.statusLock.Unlock()

	if s.setup != nil {
		s.setup(s)
	}

	return nil
}

// Run executes the polling loop until the scheduler is stopped or the game
// goes away. It calls Start first when the scheduler is still Idle. Each
// iteration reads the clock, dispatches every action strictly earlier than
// the current time, invokes the update hook, and sleeps for the poll
// interval; Stop is observed at the top of the next iteration, so stop
// latency is bounded by one interval.
func (s *Scheduler) Run() error {
	if s.Status() == StatusIdle {
		if err := s.Start(); err != nil {
			return err
		}
	}

	for s.Status() == StatusRunning {
		if !s.target.IsLive() {
			s.setStatus(StatusStopping)
			break
		}

		now := s.clock.CurrentTime()
		s.drain(now)

		if s.update != nil {
			s.update(s)
		}

		time.Sleep(s.pollInterval)
	}

	s.setStatus(StatusStopped)

	return nil
}

// Stop requests cooperative cancellation. It is a no-op unless the
// scheduler is Running, so calling it twice is safe.
func (s *Scheduler) Stop() {
	s.statusLock.Lock()
	if s.status == StatusRunning {
		s.status = StatusStopping
	}
	s.statusLock.Unlock()
}

// drain dispatches every pending action with a timestamp strictly earlier
// than now, in ascending time then registration order. Each action is
// evicted before it runs, so a failing dispatch cannot re-queue it or stop
// the loop.
func (s *Scheduler) drain(now clock.TimeStamp) {
	for {
		act, at, ok := s.queue.PopDue(now)
		if !ok {
			return
		}

		ctx := HookCtx{
			Domain: s,
			Pos:    HookPosBeforeDispatch,
			When:   at,
			Item:   act,
		}
		s.InvokeHook(ctx)

		err := s.dispatch(act)
		if err != nil {
			err = fmt.Errorf("%w: %s: %v", ErrDispatchFailed, act, err)
		}

		ctx.Pos = HookPosAfterDispatch
		ctx.Detail = err
		s.InvokeHook(ctx)
	}
}

func (s *Scheduler) dispatch(act Action) error {
	if act.Kind() == KindCustom {
		return act.Invoke()
	}

	if s.dispatcher == nil {
		return errors.New("no dispatcher registered")
	}

	return s.dispatcher.Dispatch(act)
}

// WaitUntil blocks the calling flow until the game clock reaches target. It
// busy-polls on the wait interval, which is finer than the main loop's poll
// interval, and re-checks cancellation and liveness on every spin. It
// returns true once target is reached and false if the scheduler left the
// Running state first.
func (s *Scheduler) WaitUntil(target clock.TimeStamp) bool {
	for {
		if s.Status() != StatusRunning || !s.target.IsLive() {
			return false
		}

		if !s.clock.CurrentTime().Before(target) {
			return true
		}

		time.Sleep(s.waitInterval)
	}
}

// Delay waits for n ticks from the current clock reading, evaluated at call
// time.
func (s *Scheduler) Delay(n int32) bool {
	return s.WaitUntil(s.clock.CurrentTime().Add(n))
}
