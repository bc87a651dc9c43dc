package clock

import "github.com/lawnlab/lawnscript/mem"

// A Layout tells the Reader where to find the clock in the target's memory.
// It is configuration data supplied by the game-specific layer and must
// match the actual game build; a mismatch produces silent garbage reads,
// not a detectable error.
type Layout struct {
	// RootPointer is the offset of the game-root pointer from the module
	// base address.
	RootPointer uint32

	// BoardChain is the pointer chain from the game root to the board
	// object that carries the counters.
	BoardChain []uint32

	// WaveOffset and TickOffset are the field offsets of the wave and tick
	// counters within the board object.
	WaveOffset uint32
	TickOffset uint32
}

// A Reader is the scheduler's clock source. It implements TimeTeller.
type Reader struct {
	acc    *mem.Accessor
	layout Layout
}

// NewReader creates a Reader over acc using layout.
func NewReader(acc *mem.Accessor, layout Layout) *Reader {
	return &Reader{acc: acc, layout: layout}
}

// CurrentTime reads the wave and tick counters. If the board object cannot
// be resolved or a read fails, it returns the zero TimeStamp; the caller
// must treat that as "clock unavailable" and can only tell it apart from a
// dead session by also checking the session's liveness.
func (r *Reader) CurrentTime() TimeStamp {
	wave, err := r.readCounter(r.layout.WaveOffset)
	if err != nil {
		return TimeStamp{}
	}

	tick, err := r.readCounter(r.layout.TickOffset)
	if err != nil {
		return TimeStamp{}
	}

	return TimeStamp{Wave: wave, Tick: tick}
}

func (r *Reader) readCounter(fieldOffset uint32) (int32, error) {
	base := r.acc.Session().Base() + uint64(r.layout.RootPointer)
	chain := append(append([]uint32{}, r.layout.BoardChain...), fieldOffset)

	addr, err := r.acc.Resolve(base, chain)
	if err != nil {
		return 0, err
	}

	return r.acc.ReadInt32(addr)
}
