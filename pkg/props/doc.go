// Package props provides observable, validated, type-coerced value
// containers for building reactive data-binding layers.
//
// This package defines the two foundational types: Value, a single
// observable value with a cast/validate/notify pipeline, and List, an
// observable sequence that pairs a raw value slice with per-element child
// Value wrappers kept permanently in lock-step.
//
// # Values
//
// A Value stores one value of any type. Incoming values flow through an
// optional cast function, then an optional validator:
//
//	v, err := props.NewValue(ctx, 0, props.Config{
//	    Cast:     proptypes.Int{}.Cast,
//	    Validate: proptypes.Int{Min: proptypes.Bound(0)}.Validate,
//	})
//	unsub := v.AddListener(func(value any, valid bool, ctx any) {
//	    fmt.Println("changed:", value, valid)
//	})
//	_ = v.Set(5)
//	unsub()
//
// Validity is a first-class observable property, tracked separately from
// the value: an invalid value is still stored and surfaced through Valid
// and ValidationError, unless the Value is strict, in which case Set
// rejects it atomically.
//
// # Lists
//
// A List keeps one child Value per element. Listeners registered on a child
// survive in-place element edits (SetIndex, SetRange) and reorders (Move);
// children are discarded only when their element is removed or the whole
// sequence is rebuilt. Editing an element through its child feeds back into
// a list-level notification.
//
// # Notification
//
// Every notification dispatches, in order: the pre-notify hook, all
// registered listeners in registration order, the post-notify hook. The
// listener set is snapshotted when the dispatch starts, and each call is
// isolated: a panicking listener is reported through the errors package and
// never blocks the rest of the dispatch.
//
// # Threading
//
// Values and Lists are NOT thread-safe. Confine each container to one
// logical thread of control and hand values computed elsewhere back through
// a task queue or similar dispatch mechanism.
package props
