// Package script drives a schedule of game actions synchronized to the
// game's own clock. A Scheduler polls the clock, dispatches due actions in
// deterministic order, and hands the actual in-game effect to an injected
// dispatcher.
package script

import "fmt"

// Kind selects which fields of an Action are meaningful.
type Kind int

const (
	// KindPlantCard plants the card at params (card, row, col).
	KindPlantCard Kind = iota

	// KindRemovePlant shovels the plant at params (row, col).
	KindRemovePlant

	// KindCustom runs the action's own callback.
	KindCustom
)

func (k Kind) String() string {
	switch k {
	case KindPlantCard:
		return "PlantCard"
	case KindRemovePlant:
		return "RemovePlant"
	case KindCustom:
		return "Custom"
	}

	return fmt.Sprintf("Kind(%d)", int(k))
}

// An Action is one scheduled operation. Either the parameters or the
// callback are meaningful, selected by the kind; the constructors enforce
// that only one of the two is ever set.
type Action struct {
	kind       Kind
	p1, p2, p3 int
	fn         func() error
}

// Plant creates an action that plants card at (row, col).
func Plant(card, row, col int) Action {
	return Action{kind: KindPlantCard, p1: card, p2: row, p3: col}
}

// Shovel creates an action that removes the plant at (row, col).
func Shovel(row, col int) Action {
	return Action{kind: KindRemovePlant, p1: row, p2: col}
}

// Do creates an action that runs fn when due.
func Do(fn func() error) Action {
	return Action{kind: KindCustom, fn: fn}
}

// Kind returns the action's kind.
func (a Action) Kind() Kind {
	return a.kind
}

// Params returns the action's parameters. They are only meaningful for
// non-custom kinds.
func (a Action) Params() (p1, p2, p3 int) {
	return a.p1, a.p2, a.p3
}

// Invoke runs a custom action's callback. It is a no-op for other kinds.
func (a Action) Invoke() error {
	if a.kind != KindCustom || a.fn == nil {
		return nil
	}

	return a.fn()
}

func (a Action) String() string {
	if a.kind == KindCustom {
		return "Custom"
	}

	return fmt.Sprintf("%s(%d, %d, %d)", a.kind, a.p1, a.p2, a.p3)
}
