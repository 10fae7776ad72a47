// Package notes parses ticket notes files for the ticketscan CLI.
//
// A notes file has three sections separated by blank lines:
//
//	class: 1-3 or 5-7
//	row: 6-11 or 33-44
//
//	your ticket:
//	7,1,14
//
//	nearby tickets:
//	7,3,47
//	40,4,50
//
// The first section lists field rules, the second the personal ticket and
// the third every nearby ticket. Parsing is all-or-nothing: a single
// malformed line fails the whole file with a *ParseError, and notes that
// parse but do not fit together (ticket width, inverted ranges) fail with a
// *StructuralError.
package notes
