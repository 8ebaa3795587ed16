// Package snapshot saves and restores the current values of a schema
// instance, so a set of reactive properties can be persisted across runs.
//
// Snapshots hold plain name/value pairs. Restoring applies each stored
// value through the instance's Set, so the usual cast/validate/notify
// pipeline runs: listeners fire for changed values and strict properties
// reject invalid stored data.
package snapshot

import (
	"fmt"

	jsoniter "github.com/json-iterator/go"
	"gopkg.in/yaml.v3"

	"github.com/go-drift/props/pkg/schema"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Encode returns the instance's properties as a YAML document keyed by
// property name.
func Encode(inst *schema.Instance) ([]byte, error) {
	return yaml.Marshal(capture(inst))
}

// Decode applies a YAML document produced by Encode to the instance.
// Every name in the document must be a declared property; properties absent
// from the document keep their current values.
func Decode(inst *schema.Instance, data []byte) error {
	var stored map[string]any
	if err := yaml.Unmarshal(data, &stored); err != nil {
		return fmt.Errorf("snapshot: %w", err)
	}
	return apply(inst, stored)
}

// EncodeJSON is Encode with a JSON encoding.
func EncodeJSON(inst *schema.Instance) ([]byte, error) {
	return json.Marshal(capture(inst))
}

// DecodeJSON is Decode with a JSON encoding.
func DecodeJSON(inst *schema.Instance, data []byte) error {
	var stored map[string]any
	if err := json.Unmarshal(data, &stored); err != nil {
		return fmt.Errorf("snapshot: %w", err)
	}
	return apply(inst, stored)
}

func capture(inst *schema.Instance) map[string]any {
	values := make(map[string]any, len(inst.Names()))
	for _, name := range inst.Names() {
		v, _ := inst.Get(name)
		values[name] = v
	}
	return values
}

// apply walks the declaration order so restores are deterministic, then
// rejects any leftover names that match no declared property.
func apply(inst *schema.Instance, stored map[string]any) error {
	applied := 0
	for _, name := range inst.Names() {
		value, ok := stored[name]
		if !ok {
			continue
		}
		if err := inst.Set(name, value); err != nil {
			return err
		}
		applied++
	}
	if applied != len(stored) {
		for name := range stored {
			if _, err := inst.Get(name); err != nil {
				return fmt.Errorf("snapshot: unknown property %q", name)
			}
		}
	}
	return nil
}
