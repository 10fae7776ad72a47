package rules

import "github.com/shinji-kodama/ticketscan/internal/model"

// InvalidValue locates a value that satisfies no field.
type InvalidValue struct {
	// Ticket is the 0-based index of the nearby ticket.
	Ticket int `json:"ticket" yaml:"ticket"`

	// Column is the 0-based position of the value within the ticket.
	Column int `json:"column" yaml:"column"`

	// Value is the offending number.
	Value int `json:"value" yaml:"value"`
}

// ScanningErrorRate sums every value, across all tickets, that is not valid
// for any field.
//
// Whole tickets are never discarded here: a ticket with several invalid
// values contributes each of them, and valid values of an invalid ticket are
// simply ignored.
func ScanningErrorRate(fields []model.Field, tickets []model.Ticket) int {
	sum := 0
	for _, t := range tickets {
		for _, v := range t {
			if !ValidForAny(v, fields) {
				sum += v
			}
		}
	}
	return sum
}

// InvalidValues lists, in ticket then column order, every value that
// ScanningErrorRate adds to its sum.
func InvalidValues(fields []model.Field, tickets []model.Ticket) []InvalidValue {
	var out []InvalidValue
	for ti, t := range tickets {
		for col, v := range t {
			if !ValidForAny(v, fields) {
				out = append(out, InvalidValue{Ticket: ti, Column: col, Value: v})
			}
		}
	}
	return out
}
