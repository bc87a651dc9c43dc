package script

import "log"

// A LogHook is a hook that is responsible for recording information from
// the running script
type LogHook interface {
	Hook
}

// LogHookBase provides the common logic for all LogHooks
type LogHookBase struct {
	*log.Logger
}

// DispatchLogger is a hook that prints every dispatched action
type DispatchLogger struct {
	LogHookBase
}

// NewDispatchLogger returns a new DispatchLogger which will write into the
// logger
func NewDispatchLogger(logger *log.Logger) *DispatchLogger {
	h := new(DispatchLogger)
	h.Logger = logger
	return h
}

// Func writes the action information into the logger
func (h *DispatchLogger) Func(ctx HookCtx) {
	if ctx.Pos != HookPosBeforeDispatch {
		return
	}

	act, ok := ctx.Item.(Action)
	if !ok {
		return
	}

	h.Logger.Printf("%s, %s", ctx.When, act)
}
