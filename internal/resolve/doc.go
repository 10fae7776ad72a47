// Package resolve deduces which ticket column holds which field.
//
// The algorithm is constraint elimination over the valid nearby tickets:
//
//  1. Keep only tickets whose every value satisfies some field.
//  2. Transpose them so each column's values are grouped together.
//  3. For each column, list the fields that accept all of its values.
//  4. Order columns by ascending candidate count (stable).
//  5. Walk that order; each column takes its first candidate not already
//     taken by an earlier column.
//
// Step 5 is greedy. It yields the right answer when, after removing the
// fields taken so far, every column is left with exactly one candidate.
// Inputs that break that property are resolved arbitrarily unless the
// Resolver is built WithStrict, in which case they fail with ErrAmbiguous.
package resolve
