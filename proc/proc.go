// Package proc locates the target game process and owns the attachment
// lifecycle. A Session is the sole owner of the OS-level handle; all other
// packages reach the target's address space through it.
package proc

import "errors"

// Memory is a raw byte-level view of the target process's address space.
// Implementations perform single-shot transfers and never retry internally.
type Memory interface {
	// ReadMemory fills buf with the bytes at addr. It returns the number of
	// bytes actually transferred, which may be less than len(buf).
	ReadMemory(buf []byte, addr uint64) (n int, err error)

	// WriteMemory copies data into the target at addr. It returns the number
	// of bytes actually transferred.
	WriteMemory(addr uint64, data []byte) (n int, err error)

	// Close releases the underlying handle.
	Close() error
}

var (
	// ErrAttachFailed is returned when the target process cannot be found or
	// its handle cannot be opened. This is an expected outcome, not a fault;
	// the caller may retry later.
	ErrAttachFailed = errors.New("attach failed")

	// ErrNotAttached is returned when an operation requires a live session
	// but the session has been detached or never attached.
	ErrNotAttached = errors.New("not attached")

	// ErrProcessGone is returned when the target process exited while the
	// session was still considered live.
	ErrProcessGone = errors.New("target process exited")
)
