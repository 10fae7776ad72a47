package model

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestRange_Contains checks inclusive bounds: Min and Max are inside,
// Min-1 and Max+1 are outside.
func TestRange_Contains(t *testing.T) {
	r := Range{Min: 5, Max: 7}

	tests := []struct {
		name  string
		value int
		want  bool
	}{
		{"below min", 4, false},
		{"at min", 5, true},
		{"inside", 6, true},
		{"at max", 7, true},
		{"above max", 8, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, r.Contains(tt.value))
		})
	}
}

func TestRange_Validate(t *testing.T) {
	assert.NoError(t, Range{Min: 3, Max: 3}.Validate())
	assert.NoError(t, Range{Min: 1, Max: 9}.Validate())
	assert.Error(t, Range{Min: 9, Max: 1}.Validate())
}

// TestField_Valid covers both ranges of a field and the gap between them.
func TestField_Valid(t *testing.T) {
	f := Field{Name: "class", Low: Range{1, 3}, High: Range{5, 7}}

	tests := []struct {
		value int
		want  bool
	}{
		{0, false},
		{1, true},
		{3, true},
		{4, false}, // gap between the ranges
		{5, true},
		{7, true},
		{8, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, f.Valid(tt.value), "value %d", tt.value)
	}
}

func TestField_ValidOverlappingRanges(t *testing.T) {
	f := Field{Name: "seat", Low: Range{1, 10}, High: Range{5, 15}}
	assert.True(t, f.Valid(1))
	assert.True(t, f.Valid(7))
	assert.True(t, f.Valid(15))
	assert.False(t, f.Valid(16))
}

func TestField_ValidateWrapsRangeError(t *testing.T) {
	f := Field{Name: "row", Low: Range{6, 11}, High: Range{44, 33}}
	err := f.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), `field "row"`)
	assert.Contains(t, err.Error(), "44-33")
}

func TestField_String(t *testing.T) {
	f := Field{Name: "departure location", Low: Range{25, 80}, High: Range{90, 961}}
	assert.Equal(t, "departure location: 25-80 or 90-961", f.String())
}

func TestTicket_String(t *testing.T) {
	assert.Equal(t, "7,1,14", Ticket{7, 1, 14}.String())
	assert.Equal(t, "", Ticket{}.String())
}

func TestNotes_FieldNames(t *testing.T) {
	n := &Notes{Fields: []Field{{Name: "class"}, {Name: "row"}, {Name: "seat"}}}
	assert.Equal(t, []string{"class", "row", "seat"}, n.FieldNames())
}

func TestAssignment_Columns(t *testing.T) {
	a := Assignment{2: "seat", 0: "row", 1: "class"}
	assert.Equal(t, []int{0, 1, 2}, a.Columns())
	assert.Equal(t, 1, a.ColumnOf("class"))
	assert.Equal(t, -1, a.ColumnOf("zone"))
}

// TestAssignment_IsBijection verifies the column/field pairing check used
// to validate resolver output.
func TestAssignment_IsBijection(t *testing.T) {
	fields := []Field{{Name: "class"}, {Name: "row"}, {Name: "seat"}}

	tests := []struct {
		name string
		a    Assignment
		want bool
	}{
		{"complete", Assignment{0: "row", 1: "class", 2: "seat"}, true},
		{"missing column", Assignment{0: "row", 1: "class"}, false},
		{"duplicate field", Assignment{0: "row", 1: "row", 2: "seat"}, false},
		{"column out of range", Assignment{0: "row", 1: "class", 3: "seat"}, false},
		{"unknown field", Assignment{0: "row", 1: "class", 2: "zone"}, false},
		{"empty", Assignment{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.IsBijection(fields))
		})
	}
}

// TestCLIError verifies message formatting and unwrapping of CLIError.
func TestCLIError(t *testing.T) {
	base := errors.New("line 3: missing \"or\"")

	plain := NewCLIError(ExitParseError, "cannot parse notes")
	assert.Equal(t, "cannot parse notes", plain.Error())
	assert.Nil(t, plain.Unwrap())

	wrapped := WrapCLIError(ExitParseError, "cannot parse notes", base)
	assert.Equal(t, "cannot parse notes: line 3: missing \"or\"", wrapped.Error())
	assert.True(t, errors.Is(wrapped, base))

	var cliErr *CLIError
	require.True(t, errors.As(error(wrapped), &cliErr))
	assert.Equal(t, ExitParseError, cliErr.Code)
}
