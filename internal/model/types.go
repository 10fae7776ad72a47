package model

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Range is an inclusive integer interval [Min, Max].
type Range struct {
	Min int `json:"min" yaml:"min"`
	Max int `json:"max" yaml:"max"`
}

// Contains reports whether v lies within the range, bounds included.
func (r Range) Contains(v int) bool {
	return r.Min <= v && v <= r.Max
}

// Validate checks that the range is well-formed (Min <= Max).
func (r Range) Validate() error {
	if r.Min > r.Max {
		return fmt.Errorf("range %s: min %d is greater than max %d", r, r.Min, r.Max)
	}
	return nil
}

// String returns the range in input notation, e.g. "1-3".
func (r Range) String() string {
	return strconv.Itoa(r.Min) + "-" + strconv.Itoa(r.Max)
}

// Field is a named validity rule made of two inclusive ranges.
// The ranges may overlap; a value only has to fall inside one of them.
type Field struct {
	// Name is the field identifier as written in the notes, e.g. "departure location".
	Name string `json:"name" yaml:"name"`

	// Low is the first range listed on the rule line.
	Low Range `json:"low" yaml:"low"`

	// High is the range listed after the "or" token.
	High Range `json:"high" yaml:"high"`
}

// Valid reports whether v satisfies the field, i.e. lies in Low or High.
func (f Field) Valid(v int) bool {
	return f.Low.Contains(v) || f.High.Contains(v)
}

// Validate checks both ranges of the field.
func (f Field) Validate() error {
	if err := f.Low.Validate(); err != nil {
		return fmt.Errorf("field %q: %w", f.Name, err)
	}
	if err := f.High.Validate(); err != nil {
		return fmt.Errorf("field %q: %w", f.Name, err)
	}
	return nil
}

// String renders the field as a rule line: "class: 1-3 or 5-7".
func (f Field) String() string {
	return fmt.Sprintf("%s: %s or %s", f.Name, f.Low, f.High)
}

// Ticket is an ordered list of values, one per column.
type Ticket []int

// String renders the ticket as a comma-separated record line.
func (t Ticket) String() string {
	parts := make([]string, len(t))
	for i, v := range t {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ",")
}

// Notes is the parsed content of a ticket notes file.
type Notes struct {
	// Fields holds the rules in declaration order. Declaration order is
	// significant: the resolver breaks ties by it.
	Fields []Field

	// Mine is the personal ticket.
	Mine Ticket

	// Nearby holds every other ticket, valid or not.
	Nearby []Ticket
}

// FieldNames returns the field identifiers in declaration order.
func (n *Notes) FieldNames() []string {
	names := make([]string, len(n.Fields))
	for i, f := range n.Fields {
		names[i] = f.Name
	}
	return names
}

// Assignment maps a column index to the name of the field it holds.
type Assignment map[int]string

// Columns returns the assigned column indices in ascending order.
func (a Assignment) Columns() []int {
	cols := make([]int, 0, len(a))
	for c := range a {
		cols = append(cols, c)
	}
	sort.Ints(cols)
	return cols
}

// ColumnOf returns the column holding the named field, or -1.
func (a Assignment) ColumnOf(name string) int {
	for c, n := range a {
		if n == name {
			return c
		}
	}
	return -1
}

// IsBijection reports whether the assignment pairs every field with exactly
// one column in 0..len(fields)-1 and every such column with exactly one field.
func (a Assignment) IsBijection(fields []Field) bool {
	if len(a) != len(fields) {
		return false
	}
	seen := make(map[string]bool, len(a))
	for c, name := range a {
		if c < 0 || c >= len(fields) || seen[name] {
			return false
		}
		seen[name] = true
	}
	for _, f := range fields {
		if !seen[f.Name] {
			return false
		}
	}
	return true
}
