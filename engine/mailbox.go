package engine

import "sync/atomic"

// Mailbox is a latest-value-wins handoff between one or more producers and
// the frame task. It holds at most one value; Offer replaces an unread value
type Mailbox[T any] struct {
	ch       chan T
	replaced atomic.Uint64
}

// NewMailbox creates an empty mailbox
func NewMailbox[T any]() *Mailbox[T] {
	return &Mailbox[T]{ch: make(chan T, 1)}
}

// Offer stores v, discarding any value not yet polled, never blocks
func (m *Mailbox[T]) Offer(v T) {
	for {
		select {
		case m.ch <- v:
			return
		default:
		}
		// Full, drop the stale value and retry
		select {
		case <-m.ch:
			m.replaced.Add(1)
		default:
		}
	}
}

// Poll returns the pending value if any, never blocks
func (m *Mailbox[T]) Poll() (T, bool) {
	select {
	case v := <-m.ch:
		return v, true
	default:
		var zero T
		return zero, false
	}
}

// Replaced returns the number of values overwritten before being polled
func (m *Mailbox[T]) Replaced() uint64 {
	return m.replaced.Load()
}
