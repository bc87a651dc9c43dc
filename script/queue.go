package script

import (
	"container/heap"
	"sync"

	"github.com/lawnlab/lawnscript/clock"
)

// An ActionQueue is a multiset of actions keyed by TimeStamp. Actions
// sharing a timestamp keep their registration order: every entry carries a
// monotonically increasing sequence number as a tertiary sort key, because
// a plain heap does not keep stable order for duplicate keys. Downstream
// scripts rely on being able to register "shovel the old plant" before
// "plant the new one" at the same tick.
type ActionQueue struct {
	sync.Mutex
	entries actionHeap
	nextSeq uint64
}

// NewActionQueue creates and returns an empty ActionQueue.
func NewActionQueue() *ActionQueue {
	q := new(ActionQueue)
	q.entries = make(actionHeap, 0)
	heap.Init(&q.entries)

	return q
}

// Push adds an action due at the given time.
func (q *ActionQueue) Push(at clock.TimeStamp, act Action) {
	q.Lock()
	heap.Push(&q.entries, queueEntry{at: at, seq: q.nextSeq, act: act})
	q.nextSeq++
	q.Unlock()
}

// PopDue removes and returns the earliest action whose timestamp is
// strictly less than now. The third return value is false when no action
// is due.
func (q *ActionQueue) PopDue(now clock.TimeStamp) (Action, clock.TimeStamp, bool) {
	q.Lock()
	defer q.Unlock()

	if len(q.entries) == 0 || !q.entries[0].at.Before(now) {
		return Action{}, clock.TimeStamp{}, false
	}

	e := heap.Pop(&q.entries).(queueEntry)

	return e.act, e.at, true
}

// Len returns the number of pending actions.
func (q *ActionQueue) Len() int {
	q.Lock()
	l := len(q.entries)
	q.Unlock()

	return l
}

type queueEntry struct {
	at  clock.TimeStamp
	seq uint64
	act Action
}

type actionHeap []queueEntry

func (h actionHeap) Len() int {
	return len(h)
}

// Less orders entries by timestamp, breaking ties by insertion order.
func (h actionHeap) Less(i, j int) bool {
	if c := h[i].at.Compare(h[j].at); c != 0 {
		return c < 0
	}

	return h[i].seq < h[j].seq
}

func (h actionHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
}

func (h *actionHeap) Push(x interface{}) {
	*h = append(*h, x.(queueEntry))
}

func (h *actionHeap) Pop() interface{} {
	old := *h
	n := len(old)
	e := old[n-1]
	*h = old[:n-1]

	return e
}
