// Package clock reads the game's logical time: a tick counter that advances
// at the game's own pace within a wave, paired with the wave counter.
package clock

import "fmt"

// A TimeStamp is a point in game time. The order is total: wave first,
// then tick.
//
// Within one unbroken run, tick increases monotonically inside a wave and
// resets to 0 when the wave increments, and the wave never decreases. The
// counters may jump backwards if the game is restarted or the player resets
// the level, so no global monotonicity can be assumed.
type TimeStamp struct {
	Wave int32
	Tick int32
}

// Compare returns -1, 0, or 1 as t sorts before, equal to, or after o.
func (t TimeStamp) Compare(o TimeStamp) int {
	switch {
	case t.Wave < o.Wave:
		return -1
	case t.Wave > o.Wave:
		return 1
	case t.Tick < o.Tick:
		return -1
	case t.Tick > o.Tick:
		return 1
	}

	return 0
}

// Before reports whether t is strictly earlier than o.
func (t TimeStamp) Before(o TimeStamp) bool {
	return t.Compare(o) < 0
}

// Equal reports whether both fields match.
func (t TimeStamp) Equal(o TimeStamp) bool {
	return t == o
}

// Add returns the timestamp n ticks later within the same wave.
func (t TimeStamp) Add(n int32) TimeStamp {
	return TimeStamp{Wave: t.Wave, Tick: t.Tick + n}
}

// IsZero reports whether t is the zero timestamp, which CurrentTime uses to
// signal "clock unavailable".
func (t TimeStamp) IsZero() bool {
	return t == TimeStamp{}
}

func (t TimeStamp) String() string {
	return fmt.Sprintf("wave %d tick %d", t.Wave, t.Tick)
}

// TimeTeller can be used to get the current game time.
type TimeTeller interface {
	CurrentTime() TimeStamp
}
