// Package report renders dice formula results for people and for machines.
package report

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/dicebag/internal/dice"
)

// Format selects a rendering.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat converts a configured format name into a Format.
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatText, FormatJSON, FormatYAML:
		return f, nil
	default:
		return "", fmt.Errorf("report: unknown format %q", s)
	}
}

// Term is the serialized form of a dice.TermResult.
type Term struct {
	Term     string `json:"term" yaml:"term"`
	Subtotal int    `json:"subtotal" yaml:"subtotal"`
	Values   []int  `json:"values" yaml:"values,flow"`
}

// Result is the serialized form of a dice.FormulaResult.
type Result struct {
	Formula string `json:"formula" yaml:"formula"`
	Total   int    `json:"total" yaml:"total"`
	Terms   []Term `json:"terms" yaml:"terms"`
}

// FromResult copies r into its serialized form.
func FromResult(r dice.FormulaResult) Result {
	terms := r.Terms()
	out := Result{
		Formula: r.Formula(),
		Total:   r.Total(),
		Terms:   make([]Term, len(terms)),
	}
	for i, t := range terms {
		out.Terms[i] = Term{Term: t.Term(), Subtotal: t.Subtotal(), Values: t.Values()}
	}
	return out
}

// Write renders results to w in format f. Text output is one line per
// result; JSON output is one object per line; YAML output is a sequence of
// documents.
func Write(w io.Writer, f Format, results ...dice.FormulaResult) error {
	switch f {
	case FormatText:
		for _, r := range results {
			if _, err := fmt.Fprintln(w, r.String()); err != nil {
				return fmt.Errorf("report: writing text: %w", err)
			}
		}
		return nil
	case FormatJSON:
		enc := json.NewEncoder(w)
		for _, r := range results {
			if err := enc.Encode(FromResult(r)); err != nil {
				return fmt.Errorf("report: encoding json: %w", err)
			}
		}
		return nil
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		for _, r := range results {
			if err := enc.Encode(FromResult(r)); err != nil {
				return fmt.Errorf("report: encoding yaml: %w", err)
			}
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("report: encoding yaml: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("report: unknown format %q", f)
	}
}
