package dice

import (
	"fmt"
	"strings"

	"github.com/cory-johannsen/dicebag/internal/random"
)

// RollFormulaDetailed evaluates formula left to right, drawing every die from
// src, and returns the per-term trail.
//
// Precondition: src must be non-nil.
// Postcondition: len(result.Terms()) equals the number of tokens; each dice
// term has exactly Count values, each literal exactly one; result.Total() is
// the sum of the subtotals. On error no result is returned.
func RollFormulaDetailed(formula string, src random.Source) (FormulaResult, error) {
	trimmed := strings.TrimSpace(formula)
	terms, err := Parse(trimmed)
	if err != nil {
		return FormulaResult{}, err
	}

	results := make([]TermResult, 0, len(terms))
	total := 0
	for _, t := range terms {
		tr, err := evaluate(t, src)
		if err != nil {
			return FormulaResult{}, err
		}
		sum, ok := addInt(total, tr.subtotal)
		if !ok {
			return FormulaResult{}, fmt.Errorf("%w: total of %q", ErrIntegerOverflow, trimmed)
		}
		total = sum
		results = append(results, tr)
	}

	return FormulaResult{formula: trimmed, terms: results}, nil
}

// RollFormula evaluates formula and returns only the grand total. It fails
// exactly when RollFormulaDetailed fails.
//
// Precondition: src must be non-nil.
func RollFormula(formula string, src random.Source) (int, error) {
	res, err := RollFormulaDetailed(formula, src)
	if err != nil {
		return 0, err
	}
	return res.Total(), nil
}

func evaluate(t Term, src random.Source) (TermResult, error) {
	switch t := t.(type) {
	case Literal:
		return TermResult{term: t.Source, subtotal: t.Value, values: []int{t.Value}}, nil
	case DiceTerm:
		return rollDice(t, src)
	default:
		return TermResult{}, fmt.Errorf("%w: unhandled term type %T", ErrLogic, t)
	}
}

func rollDice(t DiceTerm, src random.Source) (TermResult, error) {
	values := make([]int, t.Count)
	subtotal := 0
	for i := range values {
		v := src.Uniform(1, t.Sides)
		if v < 1 || v > t.Sides {
			return TermResult{}, fmt.Errorf("%w: source returned %d for d%d", ErrLogic, v, t.Sides)
		}
		values[i] = int(t.Sign) * v
		subtotal += values[i]
	}

	// Bounded by MaxDice*MaxSides; anything outside means the ceilings were bypassed.
	if subtotal > t.Count*t.Sides || subtotal < -t.Count*t.Sides {
		return TermResult{}, fmt.Errorf("%w: subtotal %d out of range for %q", ErrLogic, subtotal, t.Source)
	}
	return TermResult{term: t.Source, subtotal: subtotal, values: values}, nil
}

// addInt returns a+b and whether the sum stayed within the int range.
func addInt(a, b int) (int, bool) {
	s := a + b
	if (b > 0 && s < a) || (b < 0 && s > a) {
		return 0, false
	}
	return s, true
}
