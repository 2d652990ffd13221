package dice

import (
	"fmt"

	"github.com/cory-johannsen/dicebag/internal/random"
)

// Die is the number of faces of a standard polyhedral die.
type Die int

// Standard dice.
const (
	D4   Die = 4
	D6   Die = 6
	D8   Die = 8
	D10  Die = 10
	D12  Die = 12
	D20  Die = 20
	D100 Die = 100
)

// DefaultDie is rolled when no die is specified.
const DefaultDie = D100

// StandardDice lists the standard dice in ascending order.
var StandardDice = []Die{D4, D6, D8, D10, D12, D20, D100}

func (d Die) String() string {
	return fmt.Sprintf("d%d", int(d))
}

// RollDie rolls a single die.
//
// Precondition: 1 <= d <= MaxSides; src must be non-nil.
// Postcondition: returns a value in [1, d].
func RollDie(src random.Source, d Die) int {
	if d < 1 || d > MaxSides {
		panic(fmt.Sprintf("dice: RollDie called with %d sides", int(d)))
	}
	return src.Uniform(1, int(d))
}
