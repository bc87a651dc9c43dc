package proc

import "fmt"

// BufferMemory is an in-memory Memory backend that stands in for a real
// process image in tests. The address space is managed in fixed-size units
// and units are only allocated when touched, so a BufferMemory can span the
// full 32-bit address range of the game cheaply.
type BufferMemory struct {
	unitSize uint64
	capacity uint64
	units    map[uint64][]byte
}

// NewBufferMemory creates a sparse address space covering [0, capacity).
func NewBufferMemory(capacity uint64) *BufferMemory {
	return &BufferMemory{
		unitSize: 4096,
		capacity: capacity,
		units:    make(map[uint64][]byte),
	}
}

func (m *BufferMemory) unitFor(addr uint64) ([]byte, error) {
	if addr >= m.capacity {
		return nil, fmt.Errorf("address %#x beyond capacity %#x", addr, m.capacity)
	}

	base := addr - addr%m.unitSize
	unit, ok := m.units[base]
	if !ok {
		unit = make([]byte, m.unitSize)
		m.units[base] = unit
	}

	return unit, nil
}

// ReadMemory fills buf from the buffer, transferring as many bytes as fit
// inside the capacity. Reads beyond the capacity yield a short count.
func (m *BufferMemory) ReadMemory(buf []byte, addr uint64) (int, error) {
	done := 0

	for done < len(buf) {
		cur := addr + uint64(done)
		unit, err := m.unitFor(cur)
		if err != nil {
			return done, err
		}

		inUnit := cur % m.unitSize
		n := copy(buf[done:], unit[inUnit:])
		done += n
	}

	return done, nil
}

// WriteMemory copies data into the buffer with the same partial-transfer
// semantics as ReadMemory.
func (m *BufferMemory) WriteMemory(addr uint64, data []byte) (int, error) {
	done := 0

	for done < len(data) {
		cur := addr + uint64(done)
		unit, err := m.unitFor(cur)
		if err != nil {
			return done, err
		}

		inUnit := cur % m.unitSize
		n := copy(unit[inUnit:], data[done:])
		done += n
	}

	return done, nil
}

// Close is a no-op; a BufferMemory holds no OS resources.
func (m *BufferMemory) Close() error {
	return nil
}
