package journal

import "github.com/lawnlab/lawnscript/script"

// A DispatchEntry is one recorded action dispatch.
type DispatchEntry struct {
	Wave   int32
	Tick   int32
	Kind   string
	Param1 int
	Param2 int
	Param3 int
	Failed bool
	Error  string
}

// A DispatchLog is a script hook that records every dispatched action.
type DispatchLog struct {
	recorder  Recorder
	tableName string
}

// NewDispatchLog creates a hook that writes into recorder. Register it on a
// scheduler with AcceptHook.
func NewDispatchLog(recorder Recorder) *DispatchLog {
	l := &DispatchLog{
		recorder:  recorder,
		tableName: "dispatches",
	}

	recorder.CreateTable(l.tableName, DispatchEntry{})

	return l
}

// Func records the action after it has been dispatched, so the outcome is
// known.
func (l *DispatchLog) Func(ctx script.HookCtx) {
	if ctx.Pos != script.HookPosAfterDispatch {
		return
	}

	act, ok := ctx.Item.(script.Action)
	if !ok {
		return
	}

	p1, p2, p3 := act.Params()
	entry := DispatchEntry{
		Wave:   ctx.When.Wave,
		Tick:   ctx.When.Tick,
		Kind:   act.Kind().String(),
		Param1: p1,
		Param2: p2,
		Param3: p3,
	}

	if err, ok := ctx.Detail.(error); ok && err != nil {
		entry.Failed = true
		entry.Error = err.Error()
	}

	l.recorder.InsertData(l.tableName, entry)
}
