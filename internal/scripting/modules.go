package scripting

import (
	lua "github.com/yuin/gopher-lua"

	"github.com/cory-johannsen/dicebag/internal/dice"
	"github.com/cory-johannsen/dicebag/internal/random"
)

// RegisterModules defines the global "dice" table in L:
//
//	dice.valid(formula)  -> bool
//	dice.roll(formula)   -> total | nil, message
//	dice.detail(formula) -> {formula, total, terms = {{term, subtotal, values}}} | nil, message
//	dice.die(sides)      -> roll in [1, sides]
//	dice.pick(list)      -> element | nil, message
//	dice.shuffle(list)   -> shuffled copy
//
// Precondition: L must be from NewSandboxedState.
func (r *Runtime) RegisterModules(L *lua.LState) {
	mod := L.NewTable()
	L.SetFuncs(mod, map[string]lua.LGFunction{
		"valid":   r.luaValid,
		"roll":    r.luaRoll,
		"detail":  r.luaDetail,
		"die":     r.luaDie,
		"pick":    r.luaPick,
		"shuffle": r.luaShuffle,
	})
	L.SetGlobal("dice", mod)
}

func (r *Runtime) luaValid(L *lua.LState) int {
	L.Push(lua.LBool(r.roller.Valid(L.CheckString(1))))
	return 1
}

func (r *Runtime) luaRoll(L *lua.LState) int {
	total, err := r.roller.Roll(L.CheckString(1))
	if err != nil {
		L.Push(lua.LNil)
		L.Push(lua.LString(err.Error()))
		return 2
	}
	L.Push(lua.LNumber(total))
	return 1
}

func (r *Runtime) luaDetail(L *lua.LState) int {
	res, err := r.roller.RollDetailed(L.CheckString(1))
	if err != nil {
		L.Push(lua.LNil)
		L.Push(lua.LString(err.Error()))
		return 2
	}
	L.Push(resultTable(L, res))
	return 1
}

func (r *Runtime) luaDie(L *lua.LState) int {
	sides := L.CheckInt(1)
	if sides < 1 || sides > dice.MaxSides {
		L.ArgError(1, "sides must be between 1 and 1000")
		return 0
	}
	L.Push(lua.LNumber(r.roller.RollDie(dice.Die(sides))))
	return 1
}

func (r *Runtime) luaPick(L *lua.LState) int {
	v, err := random.Pick(r.roller.Src(), listValues(L.CheckTable(1)))
	if err != nil {
		L.Push(lua.LNil)
		L.Push(lua.LString(err.Error()))
		return 2
	}
	L.Push(v)
	return 1
}

func (r *Runtime) luaShuffle(L *lua.LState) int {
	shuffled := random.Shuffle(r.roller.Src(), listValues(L.CheckTable(1)))
	out := L.CreateTable(len(shuffled), 0)
	for _, v := range shuffled {
		out.Append(v)
	}
	L.Push(out)
	return 1
}

// listValues returns the array part of t, indices 1..#t.
func listValues(t *lua.LTable) []lua.LValue {
	n := t.Len()
	out := make([]lua.LValue, n)
	for i := 1; i <= n; i++ {
		out[i-1] = t.RawGetInt(i)
	}
	return out
}

func resultTable(L *lua.LState, res dice.FormulaResult) *lua.LTable {
	terms := res.Terms()
	tt := L.CreateTable(len(terms), 0)
	for _, term := range terms {
		values := term.Values()
		vt := L.CreateTable(len(values), 0)
		for _, v := range values {
			vt.Append(lua.LNumber(v))
		}
		entry := L.CreateTable(0, 3)
		entry.RawSetString("term", lua.LString(term.Term()))
		entry.RawSetString("subtotal", lua.LNumber(term.Subtotal()))
		entry.RawSetString("values", vt)
		tt.Append(entry)
	}

	out := L.CreateTable(0, 3)
	out.RawSetString("formula", lua.LString(res.Formula()))
	out.RawSetString("total", lua.LNumber(res.Total()))
	out.RawSetString("terms", tt)
	return out
}
