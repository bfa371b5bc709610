// Package recipe defines the option, settings and metadata model shared by
// build recipes.
package recipe

import (
	"fmt"
	"slices"
	"strconv"
)

// -----------------------------------------------------------------------------

// Kind describes the value space of an option.
type Kind int

const (
	Bool Kind = iota
	Enum
	IntRange
)

// Option is a single declared build option.
type Option struct {
	Name        string
	Kind        Kind
	Values      []string // Enum: allowed values; IntRange: extra sentinel values
	Min, Max    int      // IntRange bounds, inclusive
	Default     string
	Description string

	// ExcludeFromID marks options that do not contribute to the variant
	// fingerprint (e.g. whether the test suite runs).
	ExcludeFromID bool
}

func (o *Option) validate(value string) error {
	switch o.Kind {
	case Bool:
		if value != "true" && value != "false" {
			return fmt.Errorf("option %s: invalid bool value %q", o.Name, value)
		}
	case Enum:
		if !slices.Contains(o.Values, value) {
			return fmt.Errorf("option %s: value %q not in %v", o.Name, value, o.Values)
		}
	case IntRange:
		if slices.Contains(o.Values, value) {
			return nil
		}
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("option %s: value %q is not an integer", o.Name, value)
		}
		if n < o.Min || n > o.Max {
			return fmt.Errorf("option %s: value %d out of range [%d, %d]", o.Name, n, o.Min, o.Max)
		}
	}
	return nil
}

// -----------------------------------------------------------------------------

// OptionSet holds option declarations in order, together with their current
// values. Removing an option takes it out of both the declaration table and
// any flag generation based on it.
type OptionSet struct {
	decls  []*Option
	index  map[string]*Option
	values map[string]string
}

// NewOptionSet returns an empty option set.
func NewOptionSet() *OptionSet {
	return &OptionSet{
		index:  make(map[string]*Option),
		values: make(map[string]string),
	}
}

// Declare adds an option and assigns its default value.
// Declaring the same name twice panics: the option table is program data.
func (s *OptionSet) Declare(opt Option) {
	if _, ok := s.index[opt.Name]; ok {
		panic("recipe: option redeclared: " + opt.Name)
	}
	o := &opt
	s.decls = append(s.decls, o)
	s.index[opt.Name] = o
	s.values[opt.Name] = opt.Default
}

// Set assigns a value to a declared option, validating it against the
// option's kind. Setting a removed or unknown option is an error.
func (s *OptionSet) Set(name, value string) error {
	o, ok := s.index[name]
	if !ok {
		return fmt.Errorf("option %s: not available", name)
	}
	if err := o.validate(value); err != nil {
		return err
	}
	s.values[name] = value
	return nil
}

// Remove deletes an option from the set. Used when a platform does not
// support an option at all.
func (s *OptionSet) Remove(name string) {
	if _, ok := s.index[name]; !ok {
		return
	}
	delete(s.index, name)
	delete(s.values, name)
	s.decls = slices.DeleteFunc(s.decls, func(o *Option) bool {
		return o.Name == name
	})
}

// Has reports whether the option is still declared.
func (s *OptionSet) Has(name string) bool {
	_, ok := s.index[name]
	return ok
}

// Get returns the current value of an option and whether it is declared.
func (s *OptionSet) Get(name string) (string, bool) {
	v, ok := s.values[name]
	return v, ok
}

// GetSafe returns the current value, or fallback when the option was removed.
func (s *OptionSet) GetSafe(name, fallback string) string {
	if v, ok := s.values[name]; ok {
		return v
	}
	return fallback
}

// Bool returns the option value as a bool. Removed options read as false.
func (s *OptionSet) Bool(name string) bool {
	return s.values[name] == "true"
}

// Options returns the declarations in declaration order.
func (s *OptionSet) Options() []Option {
	out := make([]Option, len(s.decls))
	for i, o := range s.decls {
		out[i] = *o
	}
	return out
}
