package props

import (
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/multierr"

	"github.com/go-drift/props/pkg/errors"
)

// ListConfig describes a List.
type ListConfig struct {
	// Name identifies the list in errors and listener reports.
	// A unique name is generated when empty.
	Name string
	// ItemCast converts each incoming element before validation and storage.
	ItemCast Cast
	// ItemValidate tests individual elements. It runs independently on every
	// element; failures are tracked on the per-element child values and
	// retained as combined diagnostics, not folded into the list's validity.
	ItemValidate Validate
	// ListValidate tests the whole sequence and alone determines the list's
	// validity flag.
	ListValidate Validate
	// PreNotify runs before registered listeners on every list notification.
	PreNotify Listener
	// PostNotify runs after registered listeners on every list notification.
	PostNotify Listener
	// Strict rejects invalid elements and invalid sequences instead of
	// storing them.
	Strict bool
	// MinLen is the minimum number of elements. Structural removals that
	// would shrink the list below it are rejected.
	MinLen int
	// MaxLen is the maximum number of elements; zero means unbounded.
	// Structural insertions that would grow the list beyond it are rejected.
	MaxLen int
}

// List is an observable container for a sequence of values. It is itself
// backed by a Value whose payload is the raw []any sequence, and it keeps a
// parallel list of child Value wrappers, one per element, in lock-step with
// the raw sequence across every mutating operation.
//
// Each child is built with the list's item cast/validate functions and a
// post-notify hook that folds the child's current value back into the raw
// sequence and revalidates the list. Editing one element through its child
// therefore surfaces as a list-level notification. Termination of that
// feedback is guaranteed by value-equality short-circuiting in Set.
//
// Every mutating operation is atomic: it fully succeeds, with both the raw
// sequence and the child list updated and notifications fired, or fully
// fails with neither touched. Like Value, List is not thread-safe.
type List struct {
	val  *Value
	ctx  any
	name string

	itemCast     Cast
	itemValidate Validate
	strict       bool
	minLen       int
	maxLen       int

	items    []*Value
	itemsErr error
}

// NewList creates a List holding initial. Every element is cast;
// construction fails on a cast failure or on an initial length outside the
// configured bounds. Initial validity, list-level and per element, is
// computed but not enforced, mirroring NewValue. No notification is
// dispatched for the initial state.
func NewList(ctx any, initial []any, cfg ListConfig) (*List, error) {
	name := cfg.Name
	if name == "" {
		name = "list-" + uuid.NewString()
	}

	l := &List{
		ctx:          ctx,
		name:         name,
		itemCast:     cfg.ItemCast,
		itemValidate: cfg.ItemValidate,
		strict:       cfg.Strict,
		minLen:       cfg.MinLen,
		maxLen:       cfg.MaxLen,
	}

	if cfg.MinLen > 0 && len(initial) < cfg.MinLen {
		return nil, &errors.BoundsError{Prop: name, Op: "init", Len: len(initial), Limit: cfg.MinLen, Below: true}
	}
	if cfg.MaxLen > 0 && len(initial) > cfg.MaxLen {
		return nil, &errors.BoundsError{Prop: name, Op: "init", Len: len(initial), Limit: cfg.MaxLen}
	}

	items := make([]*Value, len(initial))
	values := make([]any, len(initial))
	for i, raw := range initial {
		item, err := l.newItem(raw)
		if err != nil {
			return nil, err
		}
		items[i] = item
		values[i] = item.Get()
	}

	val, err := NewValue(ctx, values, Config{
		Name:       name,
		Validate:   cfg.ListValidate,
		PreNotify:  cfg.PreNotify,
		PostNotify: cfg.PostNotify,
		Strict:     cfg.Strict,
	})
	if err != nil {
		return nil, err
	}

	l.val = val
	l.items = items
	l.itemsErr = l.itemDiagnostics(values)
	return l, nil
}

// Name returns the list property name.
func (l *List) Name() string {
	return l.val.Name()
}

// Context returns the context object the List was created with.
func (l *List) Context() any {
	return l.val.Context()
}

// Get returns a copy of the raw value sequence.
func (l *List) Get() []any {
	return l.rawCopy()
}

// Len returns the number of elements.
func (l *List) Len() int {
	return len(l.items)
}

// Valid returns the list-level validity computed when the sequence was last
// set. Per-element validity is tracked on the child values, not here.
func (l *List) Valid() bool {
	return l.val.Valid()
}

// IsValid re-runs the list validator against the current sequence.
func (l *List) IsValid() bool {
	return l.val.IsValid()
}

// ValidationError returns the list-level validation failure recorded for the
// current sequence, or nil.
func (l *List) ValidationError() error {
	return l.val.ValidationError()
}

// ItemsError returns the combined element validation failures recorded when
// the sequence was last set, or nil when every element passed.
func (l *List) ItemsError() error {
	return l.itemsErr
}

// AddListener registers a callback invoked on every list-level change
// notification. The returned closure unsubscribes it.
func (l *List) AddListener(fn Listener) func() {
	return l.val.AddListener(fn)
}

// ListenerCount returns the number of registered list-level listeners.
func (l *List) ListenerCount() int {
	return l.val.ListenerCount()
}

// Item returns the child Value wrapping the element at index. Listeners
// registered on the child observe edits to that element alone. The child
// keeps its identity, and its listeners, across SetIndex/SetRange and Move;
// it is discarded by Pop, Delete, and Set with recreate.
func (l *List) Item(index int) *Value {
	return l.items[index]
}

// Items returns a copy of the child Value list.
func (l *List) Items() []*Value {
	items := make([]*Value, len(l.items))
	copy(items, l.items)
	return items
}

// Index returns the position of the first element equal to value, or -1.
func (l *List) Index(value any) int {
	for i, item := range l.items {
		if l.val.equal(item.Get(), value) {
			return i
		}
	}
	return -1
}

// Contains reports whether any element equals value.
func (l *List) Contains(value any) bool {
	return l.Index(value) >= 0
}

// Count returns the number of elements equal to value.
func (l *List) Count(value any) int {
	n := 0
	for _, item := range l.items {
		if l.val.equal(item.Get(), value) {
			n++
		}
	}
	return n
}

// Set replaces the whole sequence. When recreate is true all child values
// are discarded and rebuilt, losing their listeners. When recreate is false
// the children are left untouched and the caller is responsible for keeping
// them reconciled with the new sequence.
func (l *List) Set(values []any, recreate bool) error {
	if !recreate {
		for _, v := range values {
			c, err := l.castItem(v)
			if err != nil {
				return err
			}
			if err := l.checkStrictItem(c); err != nil {
				return err
			}
		}
		return l.setValues(values)
	}

	items := make([]*Value, len(values))
	cast := make([]any, len(values))
	for i, raw := range values {
		item, err := l.newItem(raw)
		if err != nil {
			return err
		}
		if err := l.checkStrictItem(item.Get()); err != nil {
			return err
		}
		items[i] = item
		cast[i] = item.Get()
	}
	prev := l.items
	l.items = items
	if err := l.setValues(cast); err != nil {
		l.items = prev
		return err
	}
	return nil
}

// Revalidate feeds the current raw sequence back through the
// cast/validate/notify pipeline without touching the child values.
func (l *List) Revalidate() error {
	return l.setValues(l.rawCopy())
}

// Append adds value to the end of the list.
func (l *List) Append(value any) error {
	if err := l.checkGrow("append", 1); err != nil {
		return err
	}
	item, err := l.newItem(value)
	if err != nil {
		return err
	}
	if err := l.checkStrictItem(item.Get()); err != nil {
		return err
	}
	values := append(l.rawCopy(), item.Get())
	l.items = append(l.items, item)
	if err := l.setValues(values); err != nil {
		l.items = l.items[:len(l.items)-1]
		return err
	}
	return nil
}

// Extend adds every given value to the end of the list. The whole batch is
// checked against the maximum length before any mutation.
func (l *List) Extend(values ...any) error {
	if err := l.checkGrow("extend", len(values)); err != nil {
		return err
	}
	items := make([]*Value, len(values))
	raw := l.rawCopy()
	for i, v := range values {
		item, err := l.newItem(v)
		if err != nil {
			return err
		}
		if err := l.checkStrictItem(item.Get()); err != nil {
			return err
		}
		items[i] = item
		raw = append(raw, item.Get())
	}
	n := len(l.items)
	l.items = append(l.items, items...)
	if err := l.setValues(raw); err != nil {
		l.items = l.items[:n]
		return err
	}
	return nil
}

// Insert adds value at index, shifting later elements up.
func (l *List) Insert(index int, value any) error {
	if index < 0 || index > len(l.items) {
		return &errors.IndexError{Prop: l.name, Op: "insert", Index: index, Len: len(l.items)}
	}
	if err := l.checkGrow("insert", 1); err != nil {
		return err
	}
	item, err := l.newItem(value)
	if err != nil {
		return err
	}
	if err := l.checkStrictItem(item.Get()); err != nil {
		return err
	}
	values := insertAt(l.rawCopy(), index, item.Get())
	l.items = insertAt(l.items, index, item)
	if err := l.setValues(values); err != nil {
		l.items = append(l.items[:index], l.items[index+1:]...)
		return err
	}
	return nil
}

// Pop removes and returns the last element.
func (l *List) Pop() (any, error) {
	return l.PopIndex(len(l.items) - 1)
}

// PopIndex removes and returns the element at index.
func (l *List) PopIndex(index int) (any, error) {
	if index < 0 || index >= len(l.items) {
		return nil, &errors.IndexError{Prop: l.name, Op: "pop", Index: index, Len: len(l.items)}
	}
	if err := l.checkShrink("pop", 1); err != nil {
		return nil, err
	}
	values := l.rawCopy()
	removed := values[index]
	values = append(values[:index], values[index+1:]...)
	item := l.items[index]
	l.items = append(l.items[:index:index], l.items[index+1:]...)
	if err := l.setValues(values); err != nil {
		l.items = insertAt(l.items, index, item)
		return nil, err
	}
	return removed, nil
}

// Move removes the element at from and reinserts it at to. The element keeps
// its child Value, so listeners registered on it survive the move.
func (l *List) Move(from, to int) error {
	n := len(l.items)
	if from < 0 || from >= n {
		return &errors.IndexError{Prop: l.name, Op: "move", Index: from, Len: n}
	}
	if to < 0 || to >= n {
		return &errors.IndexError{Prop: l.name, Op: "move", Index: to, Len: n}
	}

	values := l.rawCopy()
	v := values[from]
	values = append(values[:from], values[from+1:]...)
	values = insertAt(values, to, v)

	item := l.items[from]
	l.items = append(l.items[:from:from], l.items[from+1:]...)
	l.items = insertAt(l.items, to, item)
	if err := l.setValues(values); err != nil {
		l.items = append(l.items[:to:to], l.items[to+1:]...)
		l.items = insertAt(l.items, from, item)
		return err
	}
	return nil
}

// SetIndex replaces the element at index. The existing child Value is
// updated in place, preserving its listeners.
func (l *List) SetIndex(index int, value any) error {
	if index < 0 || index >= len(l.items) {
		return &errors.IndexError{Prop: l.name, Op: "set", Index: index, Len: len(l.items)}
	}
	cast, err := l.castItem(value)
	if err != nil {
		return err
	}
	if err := l.checkStrictItem(cast); err != nil {
		return err
	}
	values := l.rawCopy()
	values[index] = cast
	if err := l.setValues(values); err != nil {
		return err
	}
	return l.items[index].Set(cast)
}

// SetRange replaces the elements in [start, end). Exactly end-start values
// must be given; SetRange never resizes the list. The affected child Values
// are updated in place, preserving their listeners.
func (l *List) SetRange(start, end int, values []any) error {
	n := len(l.items)
	if start < 0 || end < start || end > n {
		return &errors.IndexError{Prop: l.name, Op: "set", Index: start, Len: n}
	}
	if len(values) != end-start {
		return &errors.IndexError{
			Prop: l.name, Op: "set", Index: start, Len: n,
			Reason: fmt.Sprintf("range covers %d positions but %d values given", end-start, len(values)),
		}
	}

	cast := make([]any, len(values))
	for i, v := range values {
		c, err := l.castItem(v)
		if err != nil {
			return err
		}
		if err := l.checkStrictItem(c); err != nil {
			return err
		}
		cast[i] = c
	}

	raw := l.rawCopy()
	copy(raw[start:end], cast)
	if err := l.setValues(raw); err != nil {
		return err
	}
	for i, c := range cast {
		if err := l.items[start+i].Set(c); err != nil {
			return err
		}
	}
	return nil
}

// Delete removes the element at index, discarding its child Value.
func (l *List) Delete(index int) error {
	if index < 0 || index >= len(l.items) {
		return &errors.IndexError{Prop: l.name, Op: "delete", Index: index, Len: len(l.items)}
	}
	if err := l.checkShrink("delete", 1); err != nil {
		return err
	}
	values := l.rawCopy()
	values = append(values[:index], values[index+1:]...)
	item := l.items[index]
	l.items = append(l.items[:index:index], l.items[index+1:]...)
	if err := l.setValues(values); err != nil {
		l.items = insertAt(l.items, index, item)
		return err
	}
	return nil
}

// DeleteRange removes the elements in [start, end), discarding their child
// Values.
func (l *List) DeleteRange(start, end int) error {
	n := len(l.items)
	if start < 0 || end < start || end > n {
		return &errors.IndexError{Prop: l.name, Op: "delete", Index: start, Len: n}
	}
	if err := l.checkShrink("delete", end-start); err != nil {
		return err
	}
	values := l.rawCopy()
	values = append(values[:start], values[end:]...)
	removed := make([]*Value, end-start)
	copy(removed, l.items[start:end])
	l.items = append(l.items[:start:start], l.items[end:]...)
	if err := l.setValues(values); err != nil {
		tail := append(removed, l.items[start:]...)
		l.items = append(l.items[:start:start], tail...)
		return err
	}
	return nil
}

// newItem wraps an element value in a child Value configured with the item
// cast/validate functions. The child's post-notify hook folds its value back
// into the raw sequence, so list listeners observe element edits.
func (l *List) newItem(value any) (*Value, error) {
	item, err := NewValue(l.ctx, value, Config{
		Name:     l.name + "-item",
		Cast:     l.itemCast,
		Validate: l.itemValidate,
		Strict:   l.strict,
	})
	if err != nil {
		return nil, err
	}
	item.postNotify = func(any, bool, any) {
		l.onItemChanged(item)
	}
	return item, nil
}

// onItemChanged runs after a child Value dispatched a notification. It
// writes the child's current value into the raw sequence and revalidates the
// list; the value-equality short-circuit in Set stops the feedback loop when
// nothing actually changed. Children discarded by a recreate no longer
// appear in items and are ignored.
func (l *List) onItemChanged(item *Value) {
	for i, it := range l.items {
		if it == item {
			values := l.rawCopy()
			values[i] = item.Get()
			// A strict list-level failure here cannot propagate to the
			// child's caller; the child value itself was already accepted.
			_ = l.setValues(values)
			return
		}
	}
}

// setValues runs the whole-sequence pipeline: cast every element, record
// combined element diagnostics, then validate/store/notify at the list
// level. On failure the previous state, diagnostics included, is kept.
func (l *List) setValues(values []any) error {
	cast := make([]any, len(values))
	for i, v := range values {
		c, err := l.castItem(v)
		if err != nil {
			return err
		}
		cast[i] = c
	}

	prev := l.itemsErr
	l.itemsErr = l.itemDiagnostics(cast)
	if err := l.val.Set(cast); err != nil {
		l.itemsErr = prev
		return err
	}
	return nil
}

func (l *List) castItem(value any) (any, error) {
	if l.itemCast == nil {
		return value, nil
	}
	cast, err := l.itemCast(l.ctx, value)
	if err != nil {
		return nil, coercionError(l.name, value, err)
	}
	return cast, nil
}

// checkStrictItem pre-validates an element so that strict mutations fail
// before any state is touched.
func (l *List) checkStrictItem(value any) error {
	if !l.strict || l.itemValidate == nil {
		return nil
	}
	if err := l.itemValidate(l.ctx, value); err != nil {
		return validationError(l.name, value, err)
	}
	return nil
}

func (l *List) itemDiagnostics(values []any) error {
	if l.itemValidate == nil {
		return nil
	}
	var err error
	for i, v := range values {
		if verr := l.itemValidate(l.ctx, v); verr != nil {
			err = multierr.Append(err, fmt.Errorf("item %d: %w", i, verr))
		}
	}
	return err
}

func (l *List) checkGrow(op string, delta int) error {
	if l.maxLen > 0 && len(l.items)+delta > l.maxLen {
		return &errors.BoundsError{Prop: l.name, Op: op, Len: len(l.items), Limit: l.maxLen}
	}
	return nil
}

func (l *List) checkShrink(op string, delta int) error {
	if l.minLen > 0 && len(l.items)-delta < l.minLen {
		return &errors.BoundsError{Prop: l.name, Op: op, Len: len(l.items), Limit: l.minLen, Below: true}
	}
	return nil
}

func (l *List) rawCopy() []any {
	raw, _ := l.val.Get().([]any)
	values := make([]any, len(raw))
	copy(values, raw)
	return values
}

func insertAt[T any](s []T, index int, v T) []T {
	s = append(s, v)
	copy(s[index+1:], s[index:])
	s[index] = v
	return s
}
