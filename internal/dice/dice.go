// Package dice parses, validates and evaluates dice formulas such as
// "3d6 + 2 - d8", producing a per-term audit trail of every roll.
//
// A formula is one term followed by any number of signed terms. A term is
// either a non-negative integer or a dice atom "[count]d<sides>". The grammar
// is defined once in grammar.go and shared by IsValidFormula, Tokenize and
// the evaluator.
package dice

import (
	"fmt"
	"strings"
)

// Sign is the sign a term contributes to the grand total.
type Sign int

const (
	// Plus marks the first term and any term following "+".
	Plus Sign = 1
	// Minus marks a term following "-".
	Minus Sign = -1
)

func (s Sign) String() string {
	if s == Minus {
		return "-"
	}
	return "+"
}

// Term is one signed atomic unit of a formula. It is either a Literal or a
// DiceTerm.
type Term interface {
	// Text returns the term as written, including its operator if it had one.
	Text() string
	isTerm()
}

// Literal is a signed integer term.
type Literal struct {
	Source string
	Value  int
}

// Text implements Term.
func (l Literal) Text() string { return l.Source }
func (Literal) isTerm() {}

// DiceTerm rolls Count dice with Sides faces and applies Sign to each roll.
//
// Invariant: 1 <= Count <= MaxDice and 1 <= Sides <= MaxSides after Parse.
type DiceTerm struct {
	Source string
	Sign   Sign
	Count  int
	Sides  int
}

// Text implements Term.
func (d DiceTerm) Text() string { return d.Source }
func (DiceTerm) isTerm() {}

// TermResult holds the evaluated contribution of a single term.
//
// Postcondition: Subtotal() == sum(Values()).
type TermResult struct {
	term     string
	subtotal int
	values   []int
}

// Term returns the term's source text, e.g. "-2d6".
func (t TermResult) Term() string { return t.term }

// Subtotal returns the signed sum contributed by the term.
func (t TermResult) Subtotal() int { return t.subtotal }

// Values returns a copy of the signed values making up the subtotal: one per
// die for dice terms, the literal itself otherwise.
func (t TermResult) Values() []int {
	out := make([]int, len(t.values))
	copy(out, t.values)
	return out
}

func (t TermResult) String() string {
	return fmt.Sprintf("%s%v", t.term, t.values)
}

// FormulaResult holds the full audit trail of a formula evaluation.
//
// Postcondition: Total() == sum of Subtotal() over Terms().
type FormulaResult struct {
	formula string
	terms   []TermResult
}

// Formula returns the evaluated formula with outer whitespace removed.
func (r FormulaResult) Formula() string { return r.formula }

// Terms returns the term results in textual order.
func (r FormulaResult) Terms() []TermResult {
	out := make([]TermResult, len(r.terms))
	copy(out, r.terms)
	return out
}

// Total returns the grand total of the formula.
//
// The sum was range-checked during evaluation and cannot overflow here.
func (r FormulaResult) Total() int {
	total := 0
	for _, t := range r.terms {
		total += t.subtotal
	}
	return total
}

// String returns a human-readable audit string in the format:
//
//	"3d6 + 2 → 3d6[1 2 3] +2[2] = 8"
func (r FormulaResult) String() string {
	parts := make([]string, len(r.terms))
	for i, t := range r.terms {
		parts[i] = t.String()
	}
	return fmt.Sprintf("%s \u2192 %s = %d", r.formula, strings.Join(parts, " "), r.Total())
}
