package proc

import "fmt"

// A Target describes how to find the game process. Window titles are tried
// first (on platforms with a window system API), then process names.
type Target struct {
	WindowTitles []string
	ProcessNames []string
}

// DefaultTarget matches the known builds of Plants vs. Zombies.
var DefaultTarget = Target{
	WindowTitles: []string{"Plants vs. Zombies", "植物大战僵尸"},
	ProcessNames: []string{"PlantsVsZombies.exe", "popcapgame1.exe"},
}

// A Session is an attachment to one running game process. It holds the
// process handle and the primary module's base address. At most the Session
// itself may hold the handle; Detach releases it.
//
// A Session is live iff the handle is open and the module base is non-zero.
// The target runs as an independent actor and may exit at any time, so
// IsLive must be consulted before every operation rather than cached.
type Session struct {
	mem   Memory
	pid   int32
	base  uint64
	live  bool
	alive func() bool
}

// Attach locates the game process using DefaultTarget and opens it.
func Attach() (*Session, error) {
	return AttachTo(DefaultTarget)
}

// AttachTo locates the game process described by t, opens a handle with
// read/write memory rights, and resolves the primary module's base address.
// A missing process is reported as ErrAttachFailed, never as a panic.
func AttachTo(t Target) (*Session, error) {
	pid, err := findTarget(t)
	if err != nil {
		return nil, err
	}

	mem, base, err := openTarget(pid)
	if err != nil {
		return nil, err
	}

	if base == 0 {
		_ = mem.Close()
		return nil, fmt.Errorf("%w: pid %d has no module base", ErrAttachFailed, pid)
	}

	s := &Session{
		mem:   mem,
		pid:   pid,
		base:  base,
		live:  true,
		alive: func() bool { return pidExists(pid) },
	}

	return s, nil
}

// NewFakeSession wraps an in-memory backend as an always-live session, so
// the accessor, clock, and scheduler can be exercised without a real game
// process.
func NewFakeSession(mem Memory, base uint64) *Session {
	return &Session{
		mem:   mem,
		base:  base,
		live:  true,
		alive: func() bool { return true },
	}
}

// IsLive reports whether the session can still be used. It re-probes the
// target process on every call.
func (s *Session) IsLive() bool {
	return s.Check() == nil
}

// Check reports why the session is unusable: ErrNotAttached when it was
// never attached or has been detached, ErrProcessGone when the target
// exited underneath a live session, nil otherwise.
func (s *Session) Check() error {
	if !s.live || s.base == 0 || s.mem == nil {
		return ErrNotAttached
	}

	if !s.alive() {
		return ErrProcessGone
	}

	return nil
}

// Detach releases the process handle and clears the module base. It is safe
// to call on an already-detached session.
func (s *Session) Detach() {
	if !s.live {
		return
	}

	s.live = false
	s.base = 0

	if s.mem != nil {
		_ = s.mem.Close()
		s.mem = nil
	}
}

// Memory returns the raw backend. Callers should prefer the typed accessor
// in the mem package.
func (s *Session) Memory() Memory {
	return s.mem
}

// Base returns the primary module's base address, or 0 when detached.
func (s *Session) Base() uint64 {
	return s.base
}

// Pid returns the target process ID, or 0 for fake sessions.
func (s *Session) Pid() int32 {
	return s.pid
}
