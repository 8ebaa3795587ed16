package proptypes

import (
	"fmt"
	"strings"

	"golang.org/x/mod/semver"
)

// Version is a semantic version property. Values are stored in canonical
// form with a leading "v" ("v1.2.3"); incoming strings may omit the prefix.
type Version struct {
	// Def is the default value.
	Def string
}

func (k Version) Cast(_ any, value any) (any, error) {
	s, ok := value.(string)
	if !ok {
		return nil, fmt.Errorf("not a version string: %v (%T)", value, value)
	}
	s = strings.TrimSpace(s)
	if s != "" && !strings.HasPrefix(s, "v") {
		s = "v" + s
	}
	if c := semver.Canonical(s); c != "" {
		return c, nil
	}
	return s, nil
}

func (k Version) Validate(_ any, value any) error {
	s, ok := value.(string)
	if !ok {
		return fmt.Errorf("not a version string: %v (%T)", value, value)
	}
	if !semver.IsValid(s) {
		return fmt.Errorf("invalid semantic version: %q", s)
	}
	return nil
}

func (k Version) Default() any {
	return k.Def
}
