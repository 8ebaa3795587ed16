package props

import (
	"github.com/go-drift/props/pkg/errors"
)

// Listener receives the new value, its validity, and the owning context
// whenever a change notification is dispatched.
type Listener func(value any, valid bool, ctx any)

type listenerEntry struct {
	id int
	fn Listener
}

// listenerList is an insertion-ordered listener registry. Listeners are
// identified by an id that is private to the returned unsubscribe closure,
// so unrelated callers can never collide.
type listenerList struct {
	entries []listenerEntry
	nextID  int
}

func (l *listenerList) add(fn Listener) func() {
	id := l.nextID
	l.nextID++
	l.entries = append(l.entries, listenerEntry{id: id, fn: fn})
	return func() {
		l.remove(id)
	}
}

func (l *listenerList) remove(id int) {
	for i, e := range l.entries {
		if e.id == id {
			l.entries = append(l.entries[:i], l.entries[i+1:]...)
			return
		}
	}
}

func (l *listenerList) count() int {
	return len(l.entries)
}

// snapshot copies the current listener callbacks. Dispatch iterates over the
// copy, so registrations and removals made by a listener take effect on the
// next notification, never the one in progress.
func (l *listenerList) snapshot() []Listener {
	if len(l.entries) == 0 {
		return nil
	}
	fns := make([]Listener, len(l.entries))
	for i, e := range l.entries {
		fns[i] = e.fn
	}
	return fns
}

// dispatch runs the pre-notify hook, every registered listener in
// registration order, then the post-notify hook. Each call is isolated: a
// panicking listener is reported through the errors package and the dispatch
// moves on to the next one.
func dispatch(name string, pre Listener, listeners []Listener, post Listener, value any, valid bool, ctx any) {
	if pre != nil {
		invoke(name, pre, value, valid, ctx)
	}
	for _, fn := range listeners {
		invoke(name, fn, value, valid, ctx)
	}
	if post != nil {
		invoke(name, post, value, valid, ctx)
	}
}

func invoke(name string, fn Listener, value any, valid bool, ctx any) {
	defer errors.RecoverListener(name)
	fn(value, valid, ctx)
}
