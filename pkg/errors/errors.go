// Package errors provides structured error handling for the props framework.
package errors

import (
	stderrors "errors"
	"fmt"
	"time"
)

// ErrorKind identifies the category of an error.
type ErrorKind int

const (
	// KindUnknown indicates an error of unknown type.
	KindUnknown ErrorKind = iota
	// KindCoercion indicates a failed cast of an incoming value.
	KindCoercion
	// KindValidation indicates a value that fails its validation rule.
	KindValidation
	// KindBounds indicates a list length constraint violation.
	KindBounds
	// KindIndex indicates a malformed index or slice argument.
	KindIndex
	// KindListener indicates a panic recovered from a change listener.
	KindListener
)

func (k ErrorKind) String() string {
	switch k {
	case KindCoercion:
		return "coercion"
	case KindValidation:
		return "validation"
	case KindBounds:
		return "bounds"
	case KindIndex:
		return "index"
	case KindListener:
		return "listener"
	default:
		return "unknown"
	}
}

// CoercionError reports that an incoming value could not be cast to the
// type a property stores. It always propagates to the caller and never
// changes property state.
type CoercionError struct {
	// Prop is the name of the property being set.
	Prop string
	// Value is the value that could not be cast.
	Value any
	// Err is the underlying error from the cast function.
	Err error
}

func (e *CoercionError) Error() string {
	return fmt.Sprintf("%s [%s]: cannot cast %v (%T): %v", e.Prop, KindCoercion, e.Value, e.Value, e.Err)
}

func (e *CoercionError) Unwrap() error {
	return e.Err
}

// ValidationError reports that a value failed its validation rule. It is
// returned to the caller only by strict properties; otherwise it is
// retained on the property for diagnostics.
type ValidationError struct {
	// Prop is the name of the property being set.
	Prop string
	// Value is the offending (post-cast) value.
	Value any
	// Err is the underlying error from the validate function.
	Err error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s [%s]: invalid value %v: %v", e.Prop, KindValidation, e.Value, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// BoundsError reports a structural operation that would move a list outside
// its minimum or maximum length. The list is left untouched.
type BoundsError struct {
	// Prop is the name of the list property.
	Prop string
	// Op is the operation that was rejected (e.g. "append", "pop").
	Op string
	// Len is the list length at the time of the call.
	Len int
	// Limit is the bound that would have been violated.
	Limit int
	// Below is true when the minimum bound was violated, false for the maximum.
	Below bool
}

func (e *BoundsError) Error() string {
	if e.Below {
		return fmt.Sprintf("%s [%s]: %s would shrink list below its minimum length %d (len %d)",
			e.Prop, KindBounds, e.Op, e.Limit, e.Len)
	}
	return fmt.Sprintf("%s [%s]: %s would grow list beyond its maximum length %d (len %d)",
		e.Prop, KindBounds, e.Op, e.Limit, e.Len)
}

// IndexError reports a malformed index or slice argument. The list is left
// untouched.
type IndexError struct {
	// Prop is the name of the list property.
	Prop string
	// Op is the operation that was rejected.
	Op string
	// Index is the offending index (start of the range for slice arguments).
	Index int
	// Len is the list length at the time of the call.
	Len int
	// Reason overrides the default message, for slice shape mismatches.
	Reason string
}

func (e *IndexError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("%s [%s]: %s: %s", e.Prop, KindIndex, e.Op, e.Reason)
	}
	return fmt.Sprintf("%s [%s]: %s: index %d out of range (len %d)", e.Prop, KindIndex, e.Op, e.Index, e.Len)
}

// ListenerError represents a panic recovered from a change listener during
// notification dispatch. It is reported to the global handler and never
// propagates to the code that triggered the notification.
type ListenerError struct {
	// Prop is the name of the property whose listener panicked.
	Prop string
	// Value is the value passed to panic().
	Value any
	// StackTrace contains the call stack at the time of the panic.
	StackTrace string
	// Timestamp is when the panic occurred.
	Timestamp time.Time
}

func (e *ListenerError) Error() string {
	if e.Prop != "" {
		return fmt.Sprintf("listener panic on %s: %v", e.Prop, e.Value)
	}
	return fmt.Sprintf("listener panic: %v", e.Value)
}

// ErrorHandler receives listener errors reported by the props framework.
type ErrorHandler interface {
	// HandleListenerError is called when a listener panics during dispatch.
	HandleListenerError(err *ListenerError)
}

// IsCoercion reports whether err is or wraps a CoercionError.
func IsCoercion(err error) bool {
	var e *CoercionError
	return stderrors.As(err, &e)
}

// IsValidation reports whether err is or wraps a ValidationError.
func IsValidation(err error) bool {
	var e *ValidationError
	return stderrors.As(err, &e)
}

// IsBounds reports whether err is or wraps a BoundsError.
func IsBounds(err error) bool {
	var e *BoundsError
	return stderrors.As(err, &e)
}

// IsIndex reports whether err is or wraps an IndexError.
func IsIndex(err error) bool {
	var e *IndexError
	return stderrors.As(err, &e)
}
