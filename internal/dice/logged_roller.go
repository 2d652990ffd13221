package dice

import (
	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/cory-johannsen/dicebag/internal/random"
)

// Roller wraps a Source and logger to provide logged formula evaluation.
// Every successful roll is logged at debug level with a unique roll_id, the
// formula, each term's values and the total; rejected formulas are logged at
// warn level.
//
// Roller holds no per-call state and is safe for concurrent use when its
// Source is.
type Roller struct {
	src    random.Source
	logger *zap.Logger
}

// NewLoggedRoller creates a Roller that rolls with src and logs each roll to logger.
//
// Precondition: src and logger must be non-nil.
func NewLoggedRoller(src random.Source, logger *zap.Logger) *Roller {
	return &Roller{src: src, logger: logger}
}

// Src returns the Source backing the roller.
func (r *Roller) Src() random.Source { return r.src }

// Valid reports whether formula is in the dice formula grammar.
func (r *Roller) Valid(formula string) bool {
	return IsValidFormula(formula)
}

// RollDetailed evaluates formula and logs the result.
//
// Postcondition: result logged; returns the FormulaResult or an error.
func (r *Roller) RollDetailed(formula string) (FormulaResult, error) {
	res, err := RollFormulaDetailed(formula, r.src)
	if err != nil {
		r.logger.Warn("dice formula rejected",
			zap.String("formula", formula),
			zap.Error(err),
		)
		return FormulaResult{}, err
	}
	r.logger.Debug("dice roll",
		zap.String("roll_id", uuid.NewString()),
		zap.String("formula", res.formula),
		zap.Array("terms", termLog(res.terms)),
		zap.Int("total", res.Total()),
	)
	return res, nil
}

// Roll evaluates formula, logs the result and returns the grand total.
func (r *Roller) Roll(formula string) (int, error) {
	res, err := r.RollDetailed(formula)
	if err != nil {
		return 0, err
	}
	return res.Total(), nil
}

// RollDie rolls a single die and logs it.
//
// Precondition: 1 <= d <= MaxSides.
func (r *Roller) RollDie(d Die) int {
	v := RollDie(r.src, d)
	r.logger.Debug("die roll",
		zap.Stringer("die", d),
		zap.Int("value", v),
	)
	return v
}

type termLog []TermResult

func (ts termLog) MarshalLogArray(enc zapcore.ArrayEncoder) error {
	for _, t := range ts {
		if err := enc.AppendObject(t); err != nil {
			return err
		}
	}
	return nil
}

// MarshalLogObject implements zapcore.ObjectMarshaler.
func (t TermResult) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddString("term", t.term)
	enc.AddInt("subtotal", t.subtotal)
	return enc.AddArray("values", zapcore.ArrayMarshalerFunc(func(ae zapcore.ArrayEncoder) error {
		for _, v := range t.values {
			ae.AppendInt(v)
		}
		return nil
	}))
}
