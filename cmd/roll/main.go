// Package main provides the roll binary: it validates and rolls dice formulas
// given on the command line, or runs a Lua script against the dice engine.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/cory-johannsen/dicebag/internal/config"
	"github.com/cory-johannsen/dicebag/internal/dice"
	"github.com/cory-johannsen/dicebag/internal/observability"
	"github.com/cory-johannsen/dicebag/internal/random"
	"github.com/cory-johannsen/dicebag/internal/report"
	"github.com/cory-johannsen/dicebag/internal/scripting"
)

// newSource is replaced in tests with a deterministic Source.
var newSource = random.NewCryptoSource

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the command and returns the process exit code: 0 on success,
// 1 on a failed roll, invalid formula or script error, 2 on usage errors.
func run(args []string, stdout, stderr io.Writer) int {
	start := time.Now()

	fs := flag.NewFlagSet("roll", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "path to configuration file; empty uses defaults and DICEBAG_* environment")
	format := fs.String("format", "", "output format: text, json or yaml (overrides output.format)")
	check := fs.Bool("check", false, "only validate the formulas")
	script := fs.String("script", "", "path to a Lua script to run instead of rolling formulas")
	fs.Usage = func() {
		fmt.Fprintln(stderr, "usage: roll [flags] <formula|@preset>...")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return 2
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(stderr, "loading config: %v\n", err)
		return 1
	}
	if *format != "" {
		cfg.Output.Format = *format
	}
	outFormat, err := report.ParseFormat(cfg.Output.Format)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		fmt.Fprintf(stderr, "initializing logger: %v\n", err)
		return 1
	}
	defer logger.Sync() //nolint:errcheck

	roller := dice.NewLoggedRoller(newSource(), logger)

	if *script != "" {
		return runScript(scripting.NewRuntime(roller, logger, cfg.Scripting.InstructionLimit), *script, stdout, stderr)
	}

	if fs.NArg() == 0 {
		fs.Usage()
		return 2
	}

	formulas := make([]string, 0, fs.NArg())
	for _, arg := range fs.Args() {
		f, err := resolve(cfg, arg)
		if err != nil {
			fmt.Fprintln(stderr, err)
			return 2
		}
		formulas = append(formulas, f)
	}

	if *check {
		return runCheck(roller, fs.Args(), formulas, stdout)
	}

	results := make([]dice.FormulaResult, 0, len(formulas))
	for _, f := range formulas {
		res, err := roller.RollDetailed(f)
		if err != nil {
			fmt.Fprintf(stderr, "rolling %q: %v\n", f, err)
			return 1
		}
		results = append(results, res)
	}
	if err := report.Write(stdout, outFormat, results...); err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	logger.Info("formulas rolled",
		zap.Int("count", len(results)),
		zap.Duration("elapsed", time.Since(start)),
	)
	return 0
}

// resolve returns the formula for arg, expanding "@name" to a configured preset.
func resolve(cfg config.Config, arg string) (string, error) {
	name, ok := strings.CutPrefix(arg, "@")
	if !ok {
		return arg, nil
	}
	f, ok := cfg.Preset(name)
	if !ok {
		return "", fmt.Errorf("unknown preset %q", name)
	}
	return f, nil
}

func runCheck(roller *dice.Roller, args, formulas []string, stdout io.Writer) int {
	code := 0
	for i, f := range formulas {
		status := "valid"
		if !roller.Valid(f) {
			status = "invalid"
			code = 1
		}
		fmt.Fprintf(stdout, "%s\t%s\n", status, args[i])
	}
	return code
}

func runScript(rt *scripting.Runtime, path string, stdout, stderr io.Writer) int {
	ret, err := rt.RunFile(path)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	if ret != lua.LNil {
		fmt.Fprintln(stdout, ret.String())
	}
	return 0
}
