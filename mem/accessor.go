package mem

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/lawnlab/lawnscript/proc"
)

// An Accessor reads and writes typed values at absolute addresses within an
// attached session. Every typed operation is built on the ReadBytes and
// WriteBytes primitives. All multi-byte values use the target's byte order,
// which is little-endian.
//
// Failed or partial transfers return the zero value together with an error,
// so callers that need to tell "read zero" from "read failed" can.
type Accessor struct {
	sess     *proc.Session
	ptrBytes int
}

// NewAccessor creates an Accessor over sess. The pointer width defaults to
// 4 bytes, matching the 32-bit game image.
func NewAccessor(sess *proc.Session) *Accessor {
	return &Accessor{sess: sess, ptrBytes: 4}
}

// WithPointerBytes sets the width of a native pointer in the target's
// address space. Only 4 and 8 are meaningful.
func (a *Accessor) WithPointerBytes(n int) *Accessor {
	if n != 4 && n != 8 {
		panic(fmt.Sprintf("unsupported pointer width %d", n))
	}

	a.ptrBytes = n

	return a
}

// Session returns the session the accessor operates on.
func (a *Accessor) Session() *proc.Session {
	return a.sess
}

// ReadBytes reads exactly n bytes at addr. A partial transfer is reported
// as ErrReadFailed; no partial data is returned.
func (a *Accessor) ReadBytes(addr uint64, n int) ([]byte, error) {
	if err := a.sess.Check(); err != nil {
		return nil, err
	}

	buf := make([]byte, n)
	got, err := a.sess.Memory().ReadMemory(buf, addr)
	if err != nil || got != n {
		return nil, fmt.Errorf("%w: %d bytes at %#x", ErrReadFailed, n, addr)
	}

	return buf, nil
}

// WriteBytes writes data at addr. A partial transfer is reported as
// ErrWriteFailed.
func (a *Accessor) WriteBytes(addr uint64, data []byte) error {
	if err := a.sess.Check(); err != nil {
		return err
	}

	done, err := a.sess.Memory().WriteMemory(addr, data)
	if err != nil || done != len(data) {
		return fmt.Errorf("%w: %d bytes at %#x", ErrWriteFailed, len(data), addr)
	}

	return nil
}

// ReadString reads up to maxLen bytes at addr and truncates at the first
// zero byte. It never reads past maxLen.
func (a *Accessor) ReadString(addr uint64, maxLen int) (string, error) {
	buf, err := a.ReadBytes(addr, maxLen)
	if err != nil {
		return "", err
	}

	for i, b := range buf {
		if b == 0 {
			return string(buf[:i]), nil
		}
	}

	return string(buf), nil
}

// ReadAddress reads a native pointer of the target's width at addr.
func (a *Accessor) ReadAddress(addr uint64) (uint64, error) {
	buf, err := a.ReadBytes(addr, a.ptrBytes)
	if err != nil {
		return 0, err
	}

	if a.ptrBytes == 4 {
		return uint64(binary.LittleEndian.Uint32(buf)), nil
	}

	return binary.LittleEndian.Uint64(buf), nil
}

// WriteAddress writes a native pointer of the target's width at addr.
func (a *Accessor) WriteAddress(addr uint64, value uint64) error {
	buf := make([]byte, a.ptrBytes)
	if a.ptrBytes == 4 {
		binary.LittleEndian.PutUint32(buf, uint32(value))
	} else {
		binary.LittleEndian.PutUint64(buf, value)
	}

	return a.WriteBytes(addr, buf)
}

func (a *Accessor) ReadUint8(addr uint64) (uint8, error) {
	buf, err := a.ReadBytes(addr, 1)
	if err != nil {
		return 0, err
	}

	return buf[0], nil
}

func (a *Accessor) ReadUint16(addr uint64) (uint16, error) {
	buf, err := a.ReadBytes(addr, 2)
	if err != nil {
		return 0, err
	}

	return binary.LittleEndian.Uint16(buf), nil
}

func (a *Accessor) ReadUint32(addr uint64) (uint32, error) {
	buf, err := a.ReadBytes(addr, 4)
	if err != nil {
		return 0, err
	}

	return binary.LittleEndian.Uint32(buf), nil
}

func (a *Accessor) ReadUint64(addr uint64) (uint64, error) {
	buf, err := a.ReadBytes(addr, 8)
	if err != nil {
		return 0, err
	}

	return binary.LittleEndian.Uint64(buf), nil
}

func (a *Accessor) ReadInt32(addr uint64) (int32, error) {
	v, err := a.ReadUint32(addr)
	return int32(v), err
}

func (a *Accessor) ReadFloat32(addr uint64) (float32, error) {
	v, err := a.ReadUint32(addr)
	if err != nil {
		return 0, err
	}

	return math.Float32frombits(v), nil
}

func (a *Accessor) ReadFloat64(addr uint64) (float64, error) {
	v, err := a.ReadUint64(addr)
	if err != nil {
		return 0, err
	}

	return math.Float64frombits(v), nil
}

func (a *Accessor) ReadBool(addr uint64) (bool, error) {
	v, err := a.ReadUint8(addr)
	return v != 0, err
}

func (a *Accessor) WriteUint8(addr uint64, value uint8) error {
	return a.WriteBytes(addr, []byte{value})
}

func (a *Accessor) WriteUint16(addr uint64, value uint16) error {
	buf := make([]byte, 2)
	binary.LittleEndian.PutUint16(buf, value)

	return a.WriteBytes(addr, buf)
}

func (a *Accessor) WriteUint32(addr uint64, value uint32) error {
	buf := make([]byte, 4)
	binary.LittleEndian.PutUint32(buf, value)

	return a.WriteBytes(addr, buf)
}

func (a *Accessor) WriteUint64(addr uint64, value uint64) error {
	buf := make([]byte, 8)
	binary.LittleEndian.PutUint64(buf, value)

	return a.WriteBytes(addr, buf)
}

func (a *Accessor) WriteInt32(addr uint64, value int32) error {
	return a.WriteUint32(addr, uint32(value))
}

func (a *Accessor) WriteFloat32(addr uint64, value float32) error {
	return a.WriteUint32(addr, math.Float32bits(value))
}

func (a *Accessor) WriteFloat64(addr uint64, value float64) error {
	return a.WriteUint64(addr, math.Float64bits(value))
}

func (a *Accessor) WriteBool(addr uint64, value bool) error {
	if value {
		return a.WriteUint8(addr, 1)
	}

	return a.WriteUint8(addr, 0)
}
