// Package mem provides typed read/write access to the attached game
// process's address space, plus multi-level pointer-chain resolution.
//
// All operations are single-shot bounded transfers. None of them retries:
// a live game is expected to transiently contain invalid state (an object
// not yet spawned, or just freed), and the caller decides how to react.
package mem

import "errors"

var (
	// ErrReadFailed signals a partial or zero-byte transfer on a session
	// that was live when the operation started. The session may have gone
	// stale.
	ErrReadFailed = errors.New("memory read failed")

	// ErrWriteFailed is the write-side counterpart of ErrReadFailed.
	ErrWriteFailed = errors.New("memory write failed")

	// ErrChainBroken signals that pointer-chain resolution hit a zero
	// intermediate pointer. A zero result must be treated as "chain broken",
	// never as address 0 holding meaningful game state.
	ErrChainBroken = errors.New("pointer chain broken")
)
