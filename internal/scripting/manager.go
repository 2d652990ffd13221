package scripting

import (
	"fmt"
	"os"
	"strings"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/cory-johannsen/dicebag/internal/dice"
)

// Runtime runs Lua scripts against a dice.Roller. Every run gets a fresh
// sandboxed state, so scripts share nothing and Runtime is safe for
// concurrent use when the roller's Source is.
type Runtime struct {
	roller    *dice.Roller
	logger    *zap.Logger
	instLimit int
}

// NewRuntime creates a Runtime.
//
// Precondition: roller and logger must be non-nil; instLimit >= 0.
func NewRuntime(roller *dice.Roller, logger *zap.Logger, instLimit int) *Runtime {
	return &Runtime{roller: roller, logger: logger, instLimit: instLimit}
}

// RunFile reads and runs the script at path.
//
// Postcondition: returns the chunk's first return value (LNil if none), or
// an error for unreadable files and Lua load/runtime failures.
func (r *Runtime) RunFile(path string) (lua.LValue, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return lua.LNil, fmt.Errorf("scripting: reading %q: %w", path, err)
	}
	return r.RunString(path, string(src))
}

// RunString runs src as a chunk named name.
//
// Postcondition: returns the chunk's first return value (LNil if none), or
// an error for Lua load/runtime failures, including the instruction limit.
func (r *Runtime) RunString(name, src string) (lua.LValue, error) {
	L, release := NewSandboxedState(r.instLimit)
	defer release()
	r.RegisterModules(L)

	fn, err := L.Load(strings.NewReader(src), name)
	if err != nil {
		return lua.LNil, fmt.Errorf("scripting: loading %q: %w", name, err)
	}

	L.Push(fn)
	if err := L.PCall(0, 1, nil); err != nil {
		r.logger.Warn("scripting: Lua runtime error",
			zap.String("script", name),
			zap.Error(err),
		)
		return lua.LNil, fmt.Errorf("scripting: running %q: %w", name, err)
	}

	ret := L.Get(-1)
	L.Pop(1)
	r.logger.Debug("scripting: script finished",
		zap.String("script", name),
		zap.String("result", ret.String()),
	)
	return ret, nil
}
