package script

import (
	"log"
	"time"

	"github.com/lawnlab/lawnscript/clock"
)

// Builder assembles a Scheduler.
type Builder struct {
	name         string
	clock        clock.TimeTeller
	target       Liveness
	dispatcher   Dispatcher
	setup        func(*Scheduler)
	update       func(*Scheduler)
	pollInterval time.Duration
	waitInterval time.Duration
}

// MakeBuilder returns a new Builder with the default polling granularity.
func MakeBuilder() Builder {
	return Builder{
		name:         "script",
		pollInterval: 10 * time.Millisecond,
		waitInterval: time.Millisecond,
	}
}

// WithName sets the script name.
func (b Builder) WithName(name string) Builder {
	b.name = name
	return b
}

// WithClock sets the clock source the loop polls.
func (b Builder) WithClock(c clock.TimeTeller) Builder {
	b.clock = c
	return b
}

// WithTarget sets the liveness probe, normally the attached session.
func (b Builder) WithTarget(t Liveness) Builder {
	b.target = t
	return b
}

// WithDispatcher sets the callback that performs due actions in the game.
func (b Builder) WithDispatcher(d Dispatcher) Builder {
	b.dispatcher = d
	return b
}

// WithSetupFunc sets the hook invoked once after Start, where the script
// registers its initial actions.
func (b Builder) WithSetupFunc(f func(*Scheduler)) Builder {
	b.setup = f
	return b
}

// WithUpdateFunc sets the hook invoked once per loop iteration after
// dispatch, for real-time reactive logic.
func (b Builder) WithUpdateFunc(f func(*Scheduler)) Builder {
	b.update = f
	return b
}

// WithPollInterval sets the main loop's polling granularity.
func (b Builder) WithPollInterval(d time.Duration) Builder {
	b.pollInterval = d
	return b
}

// WithWaitInterval sets the finer busy-poll granularity used by WaitUntil.
// The two intervals are independently configurable.
func (b Builder) WithWaitInterval(d time.Duration) Builder {
	b.waitInterval = d
	return b
}

// Build builds a new Scheduler.
func (b Builder) Build() *Scheduler {
	if b.clock == nil {
		log.Panic("scheduler requires a clock source")
	}

	if b.target == nil {
		log.Panic("scheduler requires a liveness target")
	}

	s := &Scheduler{
		name:         b.name,
		clock:        b.clock,
		target:       b.target,
		dispatcher:   b.dispatcher,
		setup:        b.setup,
		update:       b.update,
		pollInterval: b.pollInterval,
		waitInterval: b.waitInterval,
		queue:        NewActionQueue(),
		status:       StatusIdle,
	}
	s.Hooks = make([]Hook, 0)

	return s
}
