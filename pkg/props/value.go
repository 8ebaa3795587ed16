package props

import (
	stderrors "errors"
	"reflect"

	"github.com/google/uuid"

	"github.com/go-drift/props/pkg/errors"
)

// Cast converts an incoming value before it is validated and stored. A cast
// failure is a caller error: it propagates and leaves the property untouched.
// Casts must be idempotent, because Revalidate feeds the stored (already
// cast) value back through the pipeline.
type Cast func(ctx any, value any) (any, error)

// Validate tests a post-cast value and returns an error when it is invalid.
type Validate func(ctx any, value any) error

// Equal reports whether two values are the same for change detection.
type Equal func(a, b any) bool

// Config describes a Value. The zero value is usable: no cast, no
// validation, deep equality, invalid values stored.
type Config struct {
	// Name identifies the property in errors and listener reports.
	// A unique name is generated when empty.
	Name string
	// Cast converts incoming values before validation and storage.
	Cast Cast
	// Validate tests values; a nil Validate means every value is valid.
	Validate Validate
	// Equal overrides the change-detection comparison.
	// Defaults to reflect.DeepEqual.
	Equal Equal
	// PreNotify runs before registered listeners on every notification.
	PreNotify Listener
	// PostNotify runs after registered listeners on every notification.
	PostNotify Listener
	// Strict rejects invalid values instead of storing them: Set returns
	// the validation error and the stored value stays unchanged.
	Strict bool
}

// Value is a single observable, validated, optionally cast value container.
//
// A Value tracks validity separately from the value itself: an invalid value
// is still stored and observable unless the Value is strict. Listeners are
// notified when the stored value or its validity changes.
//
// Value is NOT thread-safe. It must only be mutated from the owning thread;
// hand values computed on other goroutines back through a dispatch mechanism
// such as an event-loop task queue.
type Value struct {
	ctx  any
	name string

	cast       Cast
	validate   Validate
	equal      Equal
	preNotify  Listener
	postNotify Listener
	strict     bool

	value         any
	valid         bool
	validationErr error

	lastValue any
	lastValid bool
	notified  bool

	listeners listenerList
}

// NewValue creates a Value holding initial. The initial value is cast, and
// a cast failure fails construction. Initial validity is computed but never
// enforced, even on a strict Value: strictness gates transitions through
// Set, not the starting state. No notification is dispatched for the
// initial state.
func NewValue(ctx any, initial any, cfg Config) (*Value, error) {
	name := cfg.Name
	if name == "" {
		name = "value-" + uuid.NewString()
	}
	eq := cfg.Equal
	if eq == nil {
		eq = reflect.DeepEqual
	}

	v := &Value{
		ctx:        ctx,
		name:       name,
		cast:       cfg.Cast,
		validate:   cfg.Validate,
		equal:      eq,
		preNotify:  cfg.PreNotify,
		postNotify: cfg.PostNotify,
		strict:     cfg.Strict,
	}

	value := initial
	if v.cast != nil {
		cast, err := v.cast(ctx, initial)
		if err != nil {
			return nil, coercionError(name, initial, err)
		}
		value = cast
	}

	v.value = value
	v.valid = true
	if v.validate != nil {
		if err := v.validate(ctx, value); err != nil {
			v.valid = false
			v.validationErr = err
		}
	}
	return v, nil
}

// Name returns the property name.
func (v *Value) Name() string {
	return v.name
}

// Context returns the context object the Value was created with.
func (v *Value) Context() any {
	return v.ctx
}

// Get returns the current (post-cast) value.
func (v *Value) Get() any {
	return v.value
}

// Valid returns the validity computed when the value was last set. Unlike
// IsValid it does not re-run the validator.
func (v *Value) Valid() bool {
	return v.valid
}

// ValidationError returns the validation failure recorded for the current
// value, or nil when the value is valid.
func (v *Value) ValidationError() error {
	return v.validationErr
}

// Strict reports whether invalid values are rejected rather than stored.
func (v *Value) Strict() bool {
	return v.strict
}

// Set casts, validates, and stores a new value.
//
// A cast failure propagates and leaves all state unchanged. A validation
// failure is stored alongside the value unless the Value is strict, in which
// case Set returns the error and neither value nor validity change.
//
// Listeners are notified only when the (value, validity) pair differs from
// the pair last notified; setting the same valid value twice dispatches once.
func (v *Value) Set(newValue any) error {
	value := newValue
	if v.cast != nil {
		cast, err := v.cast(v.ctx, newValue)
		if err != nil {
			return coercionError(v.name, newValue, err)
		}
		value = cast
	}

	valid := true
	var verr error
	if v.validate != nil {
		if err := v.validate(v.ctx, value); err != nil {
			if v.strict {
				return validationError(v.name, value, err)
			}
			valid = false
			verr = err
		}
	}

	v.value = value
	v.valid = valid
	v.validationErr = verr

	if v.notified && v.lastValid == valid && v.equal(value, v.lastValue) {
		return nil
	}
	v.notified = true
	v.lastValue = value
	v.lastValid = valid
	v.notifyListeners()
	return nil
}

// Revalidate feeds the current value back through the cast/validate/notify
// pipeline. Use it when external state affecting validity has changed while
// the value itself has not.
func (v *Value) Revalidate() error {
	return v.Set(v.value)
}

// IsValid re-runs the validator against the current value and reports
// whether it passes. It is a read-only probe: the cached validity flag and
// listeners are unaffected.
func (v *Value) IsValid() bool {
	if v.validate == nil {
		return true
	}
	return v.validate(v.ctx, v.value) == nil
}

// AddListener registers a callback invoked on every change notification.
// Listeners run in registration order. The returned closure unsubscribes
// the listener.
func (v *Value) AddListener(fn Listener) func() {
	return v.listeners.add(fn)
}

// ListenerCount returns the number of registered listeners.
func (v *Value) ListenerCount() int {
	return v.listeners.count()
}

func (v *Value) notifyListeners() {
	dispatch(v.name, v.preNotify, v.listeners.snapshot(), v.postNotify, v.value, v.valid, v.ctx)
}

func coercionError(name string, value any, err error) error {
	var ce *errors.CoercionError
	if stderrors.As(err, &ce) {
		return err
	}
	return &errors.CoercionError{Prop: name, Value: value, Err: err}
}

func validationError(name string, value any, err error) error {
	var ve *errors.ValidationError
	if stderrors.As(err, &ve) {
		return err
	}
	return &errors.ValidationError{Prop: name, Value: value, Err: err}
}
