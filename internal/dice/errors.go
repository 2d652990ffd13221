package dice

import "errors"

var (
	// ErrInvalidFormula indicates the formula is not in the accepted grammar.
	ErrInvalidFormula = errors.New("invalid dice formula, allowed are +, -, integers and dice (d6 etc.)")
	// ErrDiceCountTooLarge indicates a dice term asks for more than MaxDice dice.
	ErrDiceCountTooLarge = errors.New("dice count too large")
	// ErrSidesTooLarge indicates a dice term asks for dice with more than MaxSides faces.
	ErrSidesTooLarge = errors.New("dice sides too large")
	// ErrIntegerOverflow indicates a literal or the grand total does not fit in an int.
	ErrIntegerOverflow = errors.New("integer overflow")
	// ErrLogic indicates a broken internal invariant. It is never returned for
	// a well-behaved Source.
	ErrLogic = errors.New("dice: logic error")
)
