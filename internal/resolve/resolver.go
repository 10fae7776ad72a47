package resolve

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/shinji-kodama/ticketscan/internal/model"
	"github.com/shinji-kodama/ticketscan/internal/rules"
)

// DefaultMatch is the substring selecting the fields multiplied into the
// resolution product.
const DefaultMatch = "departure"

var (
	// ErrNoValidTickets is returned when every nearby ticket is invalid,
	// leaving no column data to resolve against.
	ErrNoValidTickets = errors.New("no valid nearby tickets")

	// ErrUnassignable is returned when all candidates of a column were
	// already taken by earlier columns.
	ErrUnassignable = errors.New("no unassigned candidate field left")

	// ErrAmbiguous is returned in strict mode when a column still has more
	// than one unassigned candidate at its turn.
	ErrAmbiguous = errors.New("more than one unassigned candidate field")
)

// ColumnCandidates lists the fields that accept every value of a column.
type ColumnCandidates struct {
	// Column is the 0-based column index.
	Column int `json:"column" yaml:"column"`

	// Fields holds candidate field names in declaration order.
	Fields []string `json:"fields" yaml:"fields"`
}

// FilterValid returns a new slice holding the tickets whose every value
// satisfies at least one field. The input slice is left untouched.
func FilterValid(fields []model.Field, tickets []model.Ticket) []model.Ticket {
	valid := make([]model.Ticket, 0, len(tickets))
	for _, t := range tickets {
		if rules.TicketValid(t, fields) {
			valid = append(valid, t)
		}
	}
	return valid
}

// Candidates computes, for each column, the fields valid for all of its values.
func Candidates(fields []model.Field, columns [][]int) []ColumnCandidates {
	out := make([]ColumnCandidates, len(columns))
	for i, values := range columns {
		names := make([]string, 0, len(fields))
		for _, f := range fields {
			if rules.FieldValidForAll(values, f) {
				names = append(names, f.Name)
			}
		}
		out[i] = ColumnCandidates{Column: i, Fields: names}
	}
	return out
}

// SortByCandidateCount orders columns by ascending number of candidates.
// The sort is stable, so columns with equal counts keep their index order.
func SortByCandidateCount(cands []ColumnCandidates) {
	sort.SliceStable(cands, func(i, j int) bool {
		return len(cands[i].Fields) < len(cands[j].Fields)
	})
}

// Assign walks the columns in the given order and gives each one its first
// candidate that no earlier column has taken.
//
// With strict set, a column that still has several untaken candidates fails
// with ErrAmbiguous instead of taking the first one.
func Assign(order []ColumnCandidates, strict bool) (model.Assignment, error) {
	assignment := make(model.Assignment, len(order))
	taken := make(map[string]bool, len(order))

	for _, cc := range order {
		remaining := make([]string, 0, len(cc.Fields))
		for _, name := range cc.Fields {
			if !taken[name] {
				remaining = append(remaining, name)
			}
		}

		switch {
		case len(remaining) == 0:
			return nil, fmt.Errorf("column %d: %w", cc.Column, ErrUnassignable)
		case strict && len(remaining) > 1:
			return nil, fmt.Errorf("column %d: %w (%s)", cc.Column, ErrAmbiguous, strings.Join(remaining, ", "))
		}

		assignment[cc.Column] = remaining[0]
		taken[remaining[0]] = true
	}
	return assignment, nil
}

// Product multiplies the personal ticket values of every column whose field
// name contains match. It is 1 when no field matches.
func Product(assignment model.Assignment, mine model.Ticket, match string) int64 {
	product := int64(1)
	for _, col := range assignment.Columns() {
		if strings.Contains(assignment[col], match) {
			product *= int64(mine[col])
		}
	}
	return product
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithMatch sets the substring selecting the fields multiplied into the
// product. An empty match keeps DefaultMatch.
func WithMatch(match string) Option {
	return func(r *Resolver) {
		if match != "" {
			r.match = match
		}
	}
}

// WithStrict makes the resolver reject ambiguous columns.
func WithStrict(strict bool) Option {
	return func(r *Resolver) {
		r.strict = strict
	}
}

// Resolver runs the full column resolution over parsed notes.
type Resolver struct {
	logger *zap.Logger
	match  string
	strict bool
}

// NewResolver creates a Resolver. A nil logger disables tracing.
func NewResolver(logger *zap.Logger, opts ...Option) *Resolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	r := &Resolver{logger: logger, match: DefaultMatch}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolution is the outcome of Resolve.
type Resolution struct {
	// Assignment maps every column to its field.
	Assignment model.Assignment `json:"assignment" yaml:"assignment"`

	// Order is the candidate list in the order columns were resolved.
	Order []ColumnCandidates `json:"order" yaml:"order"`

	// ValidTickets is the number of nearby tickets kept after filtering.
	ValidTickets int `json:"validTickets" yaml:"validTickets"`

	// Match is the substring used to select fields for Product.
	Match string `json:"match" yaml:"match"`

	// Product is the product of the personal ticket values whose field
	// name contains Match.
	Product int64 `json:"product" yaml:"product"`
}

// Resolve deduces the column assignment for n and computes the product of
// the matching personal ticket values. n is not modified.
func (r *Resolver) Resolve(n *model.Notes) (*Resolution, error) {
	valid := FilterValid(n.Fields, n.Nearby)
	r.logger.Debug("filtered nearby tickets",
		zap.Int("total", len(n.Nearby)),
		zap.Int("valid", len(valid)))
	if len(valid) == 0 {
		return nil, ErrNoValidTickets
	}

	columns, err := Transpose(valid)
	if err != nil {
		return nil, fmt.Errorf("failed to transpose valid tickets: %w", err)
	}
	if len(n.Mine) < len(columns) {
		return nil, fmt.Errorf("personal ticket has %d values for %d columns: %w", len(n.Mine), len(columns), ErrRaggedRows)
	}

	order := Candidates(n.Fields, columns)
	SortByCandidateCount(order)
	if ce := r.logger.Check(zap.DebugLevel, "sorted columns by candidate count"); ce != nil {
		counts := make([]int, len(order))
		for i, cc := range order {
			counts[i] = len(cc.Fields)
		}
		ce.Write(zap.Ints("counts", counts))
	}

	assignment, err := Assign(order, r.strict)
	if err != nil {
		return nil, err
	}
	r.logger.Debug("assigned fields to columns", zap.Any("assignment", assignment))

	return &Resolution{
		Assignment:   assignment,
		Order:        order,
		ValidTickets: len(valid),
		Match:        r.match,
		Product:      Product(assignment, n.Mine, r.match),
	}, nil
}
