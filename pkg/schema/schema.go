// Package schema builds sets of reactive properties from static
// declarations.
//
// A Schema is an ordered table of field declarations, each naming a
// proptypes.Kind. Build constructs every property for an instance eagerly,
// so there is no attribute interception or lazy materialization: after Build
// returns, every declared Value and List exists and holds its default.
//
//	s := schema.Schema{
//	    Title: "Display",
//	    Fields: []schema.Field{
//	        {Name: "enabled", Kind: proptypes.Boolean{Def: true}},
//	        {Name: "alpha", Kind: proptypes.Percent{Def: 100}},
//	    },
//	}
//	inst, err := s.Build(ctx)
//	_ = inst.Set("alpha", 50)
package schema

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/go-drift/props/pkg/props"
	"github.com/go-drift/props/pkg/proptypes"
)

// Field declares a single-valued property.
type Field struct {
	// Name is the property name, unique within the schema.
	Name string
	// Kind supplies the cast/validate pipeline and the default value.
	Kind proptypes.Kind
	// Default overrides the kind's default when non-nil.
	Default any
	// Strict rejects invalid values instead of storing them.
	Strict bool
}

// ListField declares a sequence-valued property.
type ListField struct {
	// Name is the property name, unique within the schema.
	Name string
	// Item supplies the element-level cast/validate pipeline.
	Item proptypes.Kind
	// ListValidate optionally validates the whole sequence.
	ListValidate props.Validate
	// Defaults are the initial elements.
	Defaults []any
	// Strict rejects invalid elements instead of storing them.
	Strict bool
	// MinLen and MaxLen bound the sequence length; zero MaxLen means
	// unbounded.
	MinLen int
	MaxLen int
}

// Schema is a static, ordered declaration table for a set of properties.
type Schema struct {
	// Title names the schema in String dumps.
	Title string
	// Fields are the single-valued declarations.
	Fields []Field
	// Lists are the sequence-valued declarations.
	Lists []ListField
}

// Instance holds the constructed properties of one Build call.
type Instance struct {
	ctx    any
	id     string
	title  string
	order  []string
	values map[string]*props.Value
	lists  map[string]*props.List
}

// Build eagerly constructs every declared property for a new instance,
// initialised to its default value. Each underlying property is given a
// name unique to this instance, so errors and listener reports from
// different instances of the same schema stay distinguishable.
func (s Schema) Build(ctx any) (*Instance, error) {
	inst := &Instance{
		ctx:    ctx,
		id:     uuid.NewString()[:8],
		title:  s.Title,
		values: make(map[string]*props.Value, len(s.Fields)),
		lists:  make(map[string]*props.List, len(s.Lists)),
	}
	if inst.title == "" {
		inst.title = "Instance"
	}

	for _, f := range s.Fields {
		if f.Name == "" || f.Kind == nil {
			return nil, fmt.Errorf("schema: field needs a name and a kind (got %q)", f.Name)
		}
		if err := inst.claim(f.Name); err != nil {
			return nil, err
		}
		def := f.Default
		if def == nil {
			def = f.Kind.Default()
		}
		v, err := props.NewValue(ctx, def, props.Config{
			Name:     f.Name + "#" + inst.id,
			Cast:     f.Kind.Cast,
			Validate: f.Kind.Validate,
			Strict:   f.Strict,
		})
		if err != nil {
			return nil, fmt.Errorf("schema: building %q: %w", f.Name, err)
		}
		inst.values[f.Name] = v
	}

	for _, f := range s.Lists {
		if f.Name == "" || f.Item == nil {
			return nil, fmt.Errorf("schema: list field needs a name and an item kind (got %q)", f.Name)
		}
		if err := inst.claim(f.Name); err != nil {
			return nil, err
		}
		l, err := props.NewList(ctx, f.Defaults, props.ListConfig{
			Name:         f.Name + "#" + inst.id,
			ItemCast:     f.Item.Cast,
			ItemValidate: f.Item.Validate,
			ListValidate: f.ListValidate,
			Strict:       f.Strict,
			MinLen:       f.MinLen,
			MaxLen:       f.MaxLen,
		})
		if err != nil {
			return nil, fmt.Errorf("schema: building %q: %w", f.Name, err)
		}
		inst.lists[f.Name] = l
	}

	return inst, nil
}

func (i *Instance) claim(name string) error {
	if _, ok := i.values[name]; ok {
		return fmt.Errorf("schema: duplicate property %q", name)
	}
	if _, ok := i.lists[name]; ok {
		return fmt.Errorf("schema: duplicate property %q", name)
	}
	i.order = append(i.order, name)
	return nil
}

// Names returns the property names in declaration order.
func (i *Instance) Names() []string {
	names := make([]string, len(i.order))
	copy(names, i.order)
	return names
}

// Value returns the named single-valued property, or nil.
func (i *Instance) Value(name string) *props.Value {
	return i.values[name]
}

// List returns the named sequence property, or nil.
func (i *Instance) List(name string) *props.List {
	return i.lists[name]
}

// Get returns the current value of the named property. Lists yield a copy
// of their raw sequence.
func (i *Instance) Get(name string) (any, error) {
	if v, ok := i.values[name]; ok {
		return v.Get(), nil
	}
	if l, ok := i.lists[name]; ok {
		return l.Get(), nil
	}
	return nil, fmt.Errorf("schema: unknown property %q", name)
}

// Set stores a new value into the named property. For a list property the
// value must be a []any; its children are rebuilt.
func (i *Instance) Set(name string, value any) error {
	if v, ok := i.values[name]; ok {
		return v.Set(value)
	}
	if l, ok := i.lists[name]; ok {
		values, ok := value.([]any)
		if !ok {
			return fmt.Errorf("schema: property %q takes a []any, got %T", name, value)
		}
		return l.Set(values, true)
	}
	return fmt.Errorf("schema: unknown property %q", name)
}

// Listen registers a change listener on the named property and returns its
// unsubscribe closure.
func (i *Instance) Listen(name string, fn props.Listener) (func(), error) {
	if v, ok := i.values[name]; ok {
		return v.AddListener(fn), nil
	}
	if l, ok := i.lists[name]; ok {
		return l.AddListener(fn), nil
	}
	return nil, fmt.Errorf("schema: unknown property %q", name)
}

// Revalidate re-runs the cast/validate/notify pipeline of every property,
// in declaration order.
func (i *Instance) Revalidate() error {
	for _, name := range i.order {
		if v, ok := i.values[name]; ok {
			if err := v.Revalidate(); err != nil {
				return err
			}
			continue
		}
		if err := i.lists[name].Revalidate(); err != nil {
			return err
		}
	}
	return nil
}

// String returns a multi-line dump of every property and its current value.
func (i *Instance) String() string {
	width := 0
	for _, name := range i.order {
		if len(name) > width {
			width = len(name)
		}
	}

	var sb strings.Builder
	sb.WriteString(i.title)
	for _, name := range i.order {
		value, _ := i.Get(name)
		fmt.Fprintf(&sb, "\n  %*s = %v", width, name, value)
	}
	return sb.String()
}
