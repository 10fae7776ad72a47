package notes

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shinji-kodama/ticketscan/internal/model"
)

// ParseError reports a line that does not match the notes grammar.
type ParseError struct {
	// Line is the 1-based line number, or 0 when the error concerns the
	// input as a whole (e.g. unexpected end of input).
	Line int

	// Text is the offending line as read, without the trailing newline.
	Text string

	// Reason describes what was expected.
	Reason string

	// Err is the underlying error, typically from strconv.
	Err error
}

// Error implements the error interface for ParseError.
func (e *ParseError) Error() string {
	msg := e.Reason
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", e.Reason, e.Err)
	}
	if e.Line == 0 {
		return msg
	}
	return fmt.Sprintf("line %d: %s (%q)", e.Line, msg, e.Text)
}

// Unwrap returns the underlying error.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// StructuralError reports notes that are syntactically valid but
// inconsistent with each other.
type StructuralError struct {
	Message string
}

// Error implements the error interface for StructuralError.
func (e *StructuralError) Error() string {
	return "inconsistent notes: " + e.Message
}

// ParseField parses a single rule line of the form
// "<name>: <a>-<b> or <c>-<d>".
func ParseField(line string) (model.Field, error) {
	name, rest, ok := strings.Cut(line, ":")
	if !ok {
		return model.Field{}, errors.New(`missing ":" after field name`)
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return model.Field{}, errors.New("empty field name")
	}

	parts := strings.Split(rest, "or")
	if len(parts) != 2 {
		return model.Field{}, fmt.Errorf(`expected two ranges separated by "or", found %d part(s)`, len(parts))
	}

	low, err := parseRange(parts[0])
	if err != nil {
		return model.Field{}, err
	}
	high, err := parseRange(parts[1])
	if err != nil {
		return model.Field{}, err
	}

	return model.Field{Name: name, Low: low, High: high}, nil
}

// parseRange parses "<min>-<max>" with optional surrounding whitespace.
func parseRange(s string) (model.Range, error) {
	bounds := strings.Split(strings.TrimSpace(s), "-")
	if len(bounds) != 2 {
		return model.Range{}, fmt.Errorf("range %q: expected <min>-<max>", strings.TrimSpace(s))
	}
	lo, err := strconv.Atoi(strings.TrimSpace(bounds[0]))
	if err != nil {
		return model.Range{}, fmt.Errorf("range %q: %w", strings.TrimSpace(s), err)
	}
	hi, err := strconv.Atoi(strings.TrimSpace(bounds[1]))
	if err != nil {
		return model.Range{}, fmt.Errorf("range %q: %w", strings.TrimSpace(s), err)
	}
	return model.Range{Min: lo, Max: hi}, nil
}

// ParseTicket parses a comma-separated record line into a Ticket.
func ParseTicket(line string) (model.Ticket, error) {
	tokens := strings.Split(strings.TrimSpace(line), ",")
	ticket := make(model.Ticket, 0, len(tokens))
	for i, tok := range tokens {
		v, err := strconv.Atoi(strings.TrimSpace(tok))
		if err != nil {
			return nil, fmt.Errorf("value %d: %w", i+1, err)
		}
		ticket = append(ticket, v)
	}
	return ticket, nil
}

// lineReader tracks the current line number while scanning.
type lineReader struct {
	sc   *bufio.Scanner
	line int
	text string
}

func (r *lineReader) next() bool {
	if !r.sc.Scan() {
		return false
	}
	r.line++
	r.text = r.sc.Text()
	return true
}

func (r *lineReader) blank() bool {
	return strings.TrimSpace(r.text) == ""
}

func (r *lineReader) fail(reason string, err error) *ParseError {
	return &ParseError{Line: r.line, Text: r.text, Reason: reason, Err: err}
}

// eof builds the error for input that ends before a required section.
// A read error from the scanner takes precedence over the grammar error.
func (r *lineReader) eof(section string) error {
	if err := r.sc.Err(); err != nil {
		return fmt.Errorf("failed to read notes: %w", err)
	}
	return &ParseError{Reason: "unexpected end of input, expected " + section}
}

// Parse reads a complete notes document from r.
//
// The returned Notes has been checked for structural consistency: every
// ticket has one value per field and every range satisfies Min <= Max.
func Parse(r io.Reader) (*model.Notes, error) {
	lr := &lineReader{sc: bufio.NewScanner(r)}
	notes := &model.Notes{}

	// Section 1: field rules, terminated by the first blank line.
	for {
		if !lr.next() {
			return nil, lr.eof("blank line after field rules")
		}
		if lr.blank() {
			break
		}
		field, err := ParseField(strings.TrimSpace(lr.text))
		if err != nil {
			return nil, lr.fail("invalid field rule", err)
		}
		notes.Fields = append(notes.Fields, field)
	}
	if len(notes.Fields) == 0 {
		return nil, lr.fail("no field rules before first blank line", nil)
	}

	// Section 2: header and exactly one personal ticket.
	if err := expectHeader(lr, "personal ticket header"); err != nil {
		return nil, err
	}
	if !lr.next() {
		return nil, lr.eof("personal ticket")
	}
	mine, err := ParseTicket(lr.text)
	if err != nil {
		return nil, lr.fail("invalid personal ticket", err)
	}
	notes.Mine = mine
	if !lr.next() {
		return nil, lr.eof("blank line after personal ticket")
	}
	if !lr.blank() {
		return nil, lr.fail("expected blank line after personal ticket", nil)
	}

	// Section 3: header and nearby tickets until a blank line or EOF.
	if err := expectHeader(lr, "nearby tickets header"); err != nil {
		return nil, err
	}
	for lr.next() && !lr.blank() {
		ticket, err := ParseTicket(lr.text)
		if err != nil {
			return nil, lr.fail("invalid nearby ticket", err)
		}
		notes.Nearby = append(notes.Nearby, ticket)
	}
	if err := lr.sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read notes: %w", err)
	}
	if len(notes.Nearby) == 0 {
		return nil, &ParseError{Reason: "no nearby tickets"}
	}

	if err := checkStructure(notes); err != nil {
		return nil, err
	}
	return notes, nil
}

// expectHeader consumes a section header line such as "your ticket:".
func expectHeader(lr *lineReader, what string) error {
	if !lr.next() {
		return lr.eof(what)
	}
	if lr.blank() || !strings.HasSuffix(strings.TrimSpace(lr.text), ":") {
		return lr.fail("expected "+what+` ending with ":"`, nil)
	}
	return nil
}

// checkStructure verifies the invariants the computations rely on.
func checkStructure(n *model.Notes) error {
	for _, f := range n.Fields {
		if err := f.Validate(); err != nil {
			return &StructuralError{Message: err.Error()}
		}
	}
	width := len(n.Fields)
	if len(n.Mine) != width {
		return &StructuralError{Message: fmt.Sprintf("personal ticket has %d values, expected %d", len(n.Mine), width)}
	}
	for i, t := range n.Nearby {
		if len(t) != width {
			return &StructuralError{Message: fmt.Sprintf("nearby ticket %d has %d values, expected %d", i+1, len(t), width)}
		}
	}
	return nil
}
