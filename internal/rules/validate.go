// Package rules implements value validation against field rules and the
// scanning error rate computed over nearby tickets.
//
// Every check short-circuits: ValidForAny stops at the first matching field,
// TicketValid and FieldValidForAll stop at the first failing value.
package rules

import "github.com/shinji-kodama/ticketscan/internal/model"

// ValidForAny reports whether v satisfies at least one field.
// It is always false for an empty field list.
func ValidForAny(v int, fields []model.Field) bool {
	for _, f := range fields {
		if f.Valid(v) {
			return true
		}
	}
	return false
}

// TicketValid reports whether every value of the ticket satisfies at least
// one field.
func TicketValid(t model.Ticket, fields []model.Field) bool {
	for _, v := range t {
		if !ValidForAny(v, fields) {
			return false
		}
	}
	return true
}

// FieldValidForAll reports whether every value satisfies the given field.
func FieldValidForAll(values []int, f model.Field) bool {
	for _, v := range values {
		if !f.Valid(v) {
			return false
		}
	}
	return true
}
