// Package proptypes provides ready-made cast and validate functions for the
// common kinds of property: booleans, bounded numbers, strings, choices,
// file paths, colours, and version strings.
//
// Each kind is a small configuration struct whose Cast and Validate methods
// plug directly into props.Config and props.ListConfig:
//
//	k := proptypes.Int{Min: proptypes.Bound(0), Max: proptypes.Bound(100)}
//	v, err := props.NewValue(ctx, 50, props.Config{Cast: k.Cast, Validate: k.Validate})
package proptypes

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Kind is the common surface of every property kind.
type Kind interface {
	// Cast converts an incoming value to the kind's storage type.
	Cast(ctx any, value any) (any, error)
	// Validate tests a post-cast value against the kind's constraints.
	Validate(ctx any, value any) error
	// Default returns the kind's default value.
	Default() any
}

// Bound returns a pointer to v, for the optional Min/Max fields.
func Bound[T int | float64](v T) *T {
	return &v
}

// Boolean is a true/false property. Numeric values cast to their non-zero
// truth, strings through strconv.ParseBool.
type Boolean struct {
	// Def is the default value.
	Def bool
}

func (b Boolean) Cast(_ any, value any) (any, error) {
	switch v := value.(type) {
	case bool:
		return v, nil
	case string:
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("not a boolean: %q", v)
		}
		return parsed, nil
	}
	if f, ok := toFloat64(value); ok {
		return f != 0, nil
	}
	return nil, fmt.Errorf("not a boolean: %v (%T)", value, value)
}

func (b Boolean) Validate(any, any) error {
	return nil
}

func (b Boolean) Default() any {
	return b.Def
}

// Int is an integer property with optional inclusive bounds.
type Int struct {
	// Min is the smallest allowed value, or nil for no lower bound.
	Min *int
	// Max is the largest allowed value, or nil for no upper bound.
	Max *int
	// Def is the default value.
	Def int
}

func (k Int) Cast(_ any, value any) (any, error) {
	if s, ok := value.(string); ok {
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return nil, fmt.Errorf("not an integer: %q", s)
		}
		return n, nil
	}
	if n, ok := toInt(value); ok {
		return n, nil
	}
	return nil, fmt.Errorf("not an integer: %v (%T)", value, value)
}

func (k Int) Validate(_ any, value any) error {
	n, ok := value.(int)
	if !ok {
		return fmt.Errorf("not an integer: %v (%T)", value, value)
	}
	if k.Min != nil && n < *k.Min {
		return fmt.Errorf("must be at least %d", *k.Min)
	}
	if k.Max != nil && n > *k.Max {
		return fmt.Errorf("must be at most %d", *k.Max)
	}
	return nil
}

func (k Int) Default() any {
	return k.Def
}

// Real is a floating point property with optional inclusive bounds.
type Real struct {
	// Min is the smallest allowed value, or nil for no lower bound.
	Min *float64
	// Max is the largest allowed value, or nil for no upper bound.
	Max *float64
	// Def is the default value.
	Def float64
}

func (k Real) Cast(_ any, value any) (any, error) {
	if s, ok := value.(string); ok {
		f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return nil, fmt.Errorf("not a number: %q", s)
		}
		return f, nil
	}
	if f, ok := toFloat64(value); ok {
		return f, nil
	}
	return nil, fmt.Errorf("not a number: %v (%T)", value, value)
}

func (k Real) Validate(_ any, value any) error {
	f, ok := value.(float64)
	if !ok {
		return fmt.Errorf("not a number: %v (%T)", value, value)
	}
	if k.Min != nil && f < *k.Min {
		return fmt.Errorf("must be at least %v", *k.Min)
	}
	if k.Max != nil && f > *k.Max {
		return fmt.Errorf("must be at most %v", *k.Max)
	}
	return nil
}

func (k Real) Default() any {
	return k.Def
}

// Percent is a floating point property constrained to the range [0, 100].
type Percent struct {
	// Def is the default value.
	Def float64
}

func (k Percent) Cast(ctx any, value any) (any, error) {
	return Real{}.Cast(ctx, value)
}

func (k Percent) Validate(ctx any, value any) error {
	lo, hi := 0.0, 100.0
	return Real{Min: &lo, Max: &hi}.Validate(ctx, value)
}

func (k Percent) Default() any {
	return k.Def
}

// String is a text property with optional length constraints.
type String struct {
	// MinLen is the minimum length in bytes.
	MinLen int
	// MaxLen is the maximum length in bytes; zero means unbounded.
	MaxLen int
	// Def is the default value.
	Def string
}

func (k String) Cast(_ any, value any) (any, error) {
	if s, ok := value.(string); ok {
		return s, nil
	}
	return fmt.Sprint(value), nil
}

func (k String) Validate(_ any, value any) error {
	s, ok := value.(string)
	if !ok {
		return fmt.Errorf("not a string: %v (%T)", value, value)
	}
	if len(s) < k.MinLen {
		return fmt.Errorf("must have length at least %d", k.MinLen)
	}
	if k.MaxLen > 0 && len(s) > k.MaxLen {
		return fmt.Errorf("must have length at most %d", k.MaxLen)
	}
	return nil
}

func (k String) Default() any {
	return k.Def
}

// Choice is a string property restricted to a fixed set of values, each
// optionally paired with a display label.
type Choice struct {
	// Choices are the allowed values.
	Choices []string
	// Labels are display labels, one per choice. When empty the choices
	// themselves are used.
	Labels []string
	// Def is the default value; the first choice when empty.
	Def string
}

func (k Choice) Cast(ctx any, value any) (any, error) {
	return String{}.Cast(ctx, value)
}

func (k Choice) Validate(_ any, value any) error {
	s, ok := value.(string)
	if !ok {
		return fmt.Errorf("not a string: %v (%T)", value, value)
	}
	for _, c := range k.Choices {
		if s == c {
			return nil
		}
	}
	return fmt.Errorf("invalid choice: %q", s)
}

func (k Choice) Default() any {
	if k.Def != "" {
		return k.Def
	}
	if len(k.Choices) > 0 {
		return k.Choices[0]
	}
	return ""
}

// Label returns the display label for a choice, falling back to the choice
// itself.
func (k Choice) Label(choice string) string {
	for i, c := range k.Choices {
		if c == choice && i < len(k.Labels) {
			return k.Labels[i]
		}
	}
	return choice
}

// ByLabel returns the choice carrying the given display label, and whether
// one was found.
func (k Choice) ByLabel(label string) (string, bool) {
	for i, lbl := range k.Labels {
		if lbl == label && i < len(k.Choices) {
			return k.Choices[i], true
		}
	}
	return "", false
}

// FilePath is a string property naming a file or directory. The empty
// string is always valid, so a path can start out unset.
type FilePath struct {
	// MustExist requires the path to exist.
	MustExist bool
	// Directory requires the path to be a directory rather than a regular
	// file. Only checked when MustExist is set.
	Directory bool
	// Def is the default value.
	Def string
}

func (k FilePath) Cast(ctx any, value any) (any, error) {
	return String{}.Cast(ctx, value)
}

func (k FilePath) Validate(_ any, value any) error {
	s, ok := value.(string)
	if !ok {
		return fmt.Errorf("not a string: %v (%T)", value, value)
	}
	if s == "" || !k.MustExist {
		return nil
	}
	info, err := os.Stat(s)
	if err != nil {
		return fmt.Errorf("must exist: %s", s)
	}
	if k.Directory && !info.IsDir() {
		return fmt.Errorf("must be a directory: %s", s)
	}
	if !k.Directory && info.IsDir() {
		return fmt.Errorf("must be a file: %s", s)
	}
	return nil
}

func (k FilePath) Default() any {
	return k.Def
}

// toInt converts the builtin numeric types to int.
func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int8:
		return int(n), true
	case int16:
		return int(n), true
	case int32:
		return int(n), true
	case int64:
		return int(n), true
	case uint:
		return int(n), true
	case uint8:
		return int(n), true
	case uint16:
		return int(n), true
	case uint32:
		return int(n), true
	case uint64:
		return int(n), true
	case float32:
		return int(n), true
	case float64:
		return int(n), true
	}
	return 0, false
}

// toFloat64 converts the builtin numeric types to float64.
func toFloat64(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	}
	return 0, false
}
