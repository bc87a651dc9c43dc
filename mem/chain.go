package mem

import "fmt"

// Resolve follows a multi-level pointer chain. The pointer at base is read
// first; each offset except the last is then added and dereferenced in
// turn. The last offset is only added, so the result is the address of a
// field, not a pointer to follow.
//
// An empty chain returns base unchanged. A zero pointer at any step fails
// early with ErrChainBroken and result 0; this greedy detection of stale
// pointers (the target object was destroyed) is deliberate and the result
// must not be interpreted as a valid address at offset 0.
func (a *Accessor) Resolve(base uint64, offsets []uint32) (uint64, error) {
	if len(offsets) == 0 {
		return base, nil
	}

	addr, err := a.ReadAddress(base)
	if err != nil {
		return 0, err
	}

	if addr == 0 {
		return 0, fmt.Errorf("%w: nil pointer at %#x", ErrChainBroken, base)
	}

	for _, off := range offsets[:len(offsets)-1] {
		next, err := a.ReadAddress(addr + uint64(off))
		if err != nil {
			return 0, err
		}

		if next == 0 {
			return 0, fmt.Errorf("%w: nil pointer at %#x+%#x",
				ErrChainBroken, addr, off)
		}

		addr = next
	}

	return addr + uint64(offsets[len(offsets)-1]), nil
}
