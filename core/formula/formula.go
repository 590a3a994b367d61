// Package formula evaluates the restricted arithmetic expression language
// used by auto columns. Expressions are parsed into a small AST (numbers,
// the four arithmetic operators, parentheses, function calls and variable
// references) and interpreted directly, so user-authored formulas never
// reach anything resembling code execution.
package formula

import (
	"regexp"
	"strings"
)

// Func is a callable bound to a formula function name (f1, f2, ...).
type Func func(float64) float64

// mathKeywords are identifiers the language reserves for builtin math;
// they are never classified as user variables or user functions.
var mathKeywords = map[string]struct{}{
	"min": {}, "max": {}, "floor": {}, "ceil": {}, "round": {},
	"abs": {}, "sin": {}, "cos": {}, "tan": {}, "log": {},
	"sqrt": {}, "pow": {}, "pi": {}, "e": {},
}

var (
	identPattern = regexp.MustCompile(`[a-zA-Z][a-zA-Z0-9]*`)
	funcPattern  = regexp.MustCompile(`^[fF]\d+$`)
)

// Evaluate computes a formula against the given variable bindings and named
// functions. It never panics and never errors: an empty formula, a syntax
// error, or an unknown identifier all yield 0. Non-finite results (division
// by zero and friends) are returned as-is; callers decide how to render them.
func Evaluate(expr string, vars map[string]float64, funcs map[string]Func) float64 {
	result, err := EvaluateStrict(expr, vars, funcs)
	if err != nil {
		return 0
	}
	return result
}

// EvaluateStrict is Evaluate with the error surfaced, for diagnostics that
// must distinguish "formula is broken" from "formula computed 0".
func EvaluateStrict(expr string, vars map[string]float64, funcs map[string]Func) (float64, error) {
	if strings.TrimSpace(expr) == "" {
		return 0, nil
	}

	// The editor renders multiplication with the display sign.
	expr = strings.ReplaceAll(expr, "×", "*")

	node, err := parse(expr)
	if err != nil {
		return 0, err
	}
	return node.eval(vars, funcs)
}

// ExtractIdentifiers scans a formula for identifier tokens and classifies
// them: names matching f<digits> are functions, anything else (minus the
// builtin math keywords) is a variable. The template editor uses this to
// auto-populate a column's variable map when the user types a new formula.
func ExtractIdentifiers(expr string) (vars []string, funcs []string) {
	seen := make(map[string]struct{})
	for _, ident := range identPattern.FindAllString(expr, -1) {
		if _, reserved := mathKeywords[strings.ToLower(ident)]; reserved {
			continue
		}
		if _, dup := seen[ident]; dup {
			continue
		}
		seen[ident] = struct{}{}
		if funcPattern.MatchString(ident) {
			funcs = append(funcs, ident)
		} else {
			vars = append(vars, ident)
		}
	}
	return vars, funcs
}
