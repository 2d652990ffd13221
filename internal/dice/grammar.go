package dice

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

const (
	// MaxDice is the largest count a single dice term may roll.
	MaxDice = 10_000
	// MaxSides is the largest number of faces a die may have.
	MaxSides = 1_000
)

// formulaLexer splits a formula into atoms, signs and whitespace. Dice is
// listed before Int so that "10d6" is never read as the integer 10.
// Whitespace can only appear between tokens, never inside one.
var formulaLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Dice", Pattern: `(?:[1-9][0-9]*)?d[1-9][0-9]*`},
	{Name: "Int", Pattern: `[0-9]+`},
	{Name: "Sign", Pattern: `[-+]`},
	{Name: "Whitespace", Pattern: `[ \t\n\v\f\r]+`},
})

// formulaAST is the grammar: an unsigned leading atom followed by zero or
// more signed atoms.
type formulaAST struct {
	Head *atomAST     `parser:"@@"`
	Tail []*signedAST `parser:"@@*"`
}

type signedAST struct {
	Sign string   `parser:"@Sign"`
	Atom *atomAST `parser:"@@"`
}

type atomAST struct {
	Dice string `parser:"  @Dice"`
	Int  string `parser:"| @Int"`
}

func (a *atomAST) text() string {
	if a.Dice != "" {
		return a.Dice
	}
	return a.Int
}

var formulaParser = participle.MustBuild[formulaAST](
	participle.Lexer(formulaLexer),
	participle.Elide("Whitespace"),
)

func parseAST(formula string) (*formulaAST, error) {
	ast, err := formulaParser.ParseString("", strings.TrimSpace(formula))
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrInvalidFormula, formula, err)
	}
	return ast, nil
}

// IsValidFormula reports whether formula, ignoring outer whitespace, belongs
// to the dice formula grammar. It never rolls and never fails.
//
// Dice count and sides ceilings are not checked here: "10001d6" is valid
// but refused by RollFormulaDetailed.
func IsValidFormula(formula string) bool {
	_, err := parseAST(formula)
	return err == nil
}

// Tokenize splits formula into its signed terms in textual order, e.g.
// "3d6 + 2 - d8" becomes ["3d6", "+2", "-d8"]. Tokens carry no whitespace.
//
// Postcondition: returns the tokens, or an error wrapping ErrInvalidFormula.
func Tokenize(formula string) ([]string, error) {
	ast, err := parseAST(formula)
	if err != nil {
		return nil, err
	}
	tokens := make([]string, 0, 1+len(ast.Tail))
	tokens = append(tokens, ast.Head.text())
	for _, s := range ast.Tail {
		tokens = append(tokens, s.Sign+s.Atom.text())
	}
	return tokens, nil
}

// Parse validates formula and converts every token into a Term, enforcing the
// MaxDice and MaxSides ceilings and int range of literals.
//
// Postcondition: returns at least one Term, or an error wrapping one of
// ErrInvalidFormula, ErrDiceCountTooLarge, ErrSidesTooLarge, ErrIntegerOverflow.
func Parse(formula string) ([]Term, error) {
	ast, err := parseAST(formula)
	if err != nil {
		return nil, err
	}

	terms := make([]Term, 0, 1+len(ast.Tail))
	head, err := newTerm(Plus, "", ast.Head)
	if err != nil {
		return nil, err
	}
	terms = append(terms, head)

	for _, s := range ast.Tail {
		sign := Plus
		if s.Sign == "-" {
			sign = Minus
		}
		t, err := newTerm(sign, s.Sign, s.Atom)
		if err != nil {
			return nil, err
		}
		terms = append(terms, t)
	}
	return terms, nil
}

func newTerm(sign Sign, op string, atom *atomAST) (Term, error) {
	text := op + atom.text()

	if atom.Dice == "" {
		// Atoi accepts the leading sign, so the full int range is usable.
		n, err := strconv.Atoi(text)
		if err != nil {
			return nil, fmt.Errorf("%w: literal %q", ErrIntegerOverflow, text)
		}
		return Literal{Source: text, Value: n}, nil
	}

	countStr, sidesStr, _ := strings.Cut(atom.Dice, "d")
	count := 1
	if countStr != "" {
		n, err := strconv.Atoi(countStr)
		if err != nil && !errors.Is(err, strconv.ErrRange) {
			return nil, fmt.Errorf("%w: dice count in %q: %v", ErrLogic, text, err)
		}
		if err != nil || n > MaxDice {
			return nil, fmt.Errorf("%w: %s exceeds %d in %q", ErrDiceCountTooLarge, countStr, MaxDice, text)
		}
		count = n
	}

	sides, err := strconv.Atoi(sidesStr)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return nil, fmt.Errorf("%w: dice sides in %q: %v", ErrLogic, text, err)
	}
	if err != nil || sides > MaxSides {
		return nil, fmt.Errorf("%w: %s exceeds %d in %q", ErrSidesTooLarge, sidesStr, MaxSides, text)
	}

	if count < 1 || sides < 1 {
		return nil, fmt.Errorf("%w: dice term %q passed the grammar with count %d, sides %d", ErrLogic, text, count, sides)
	}

	return DiceTerm{Source: text, Sign: sign, Count: count, Sides: sides}, nil
}
