package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/louieddxu2/BoardGameScorePad-sub001/core"
	"github.com/louieddxu2/BoardGameScorePad-sub001/core/formula"
	"github.com/louieddxu2/BoardGameScorePad-sub001/internal/contract"
	"github.com/louieddxu2/BoardGameScorePad-sub001/schema"
)

// evalCmd evaluates a formula from the command line.
var evalCmd = &cobra.Command{
	Use:   "eval <formula>",
	Short: "Evaluate a formula with optional variable bindings.",
	Long: `Run an arithmetic expression through the same safe evaluator that
powers auto columns. Variables are bound with repeated --var flags and
range-lookup functions with repeated --table flags pointing at
mapping-rule JSON files.

Supported: + - * /, parentheses, unary minus, the × alias for *, the
constants pi and e, and the functions min, max, abs, floor, ceil, round,
sqrt, pow, log, sin, cos, tan.

Examples:
  # Plain arithmetic
  scorepad eval "pow(2, 10) - 24"

  # With variable bindings
  scorepad eval "x1*2 + max(x2, 3)" --var x1=4 --var x2=7

  # With a lookup table for f1
  scorepad eval "f1(x1)" --var x1=6 --table f1=field-rules.json`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, args []string) {
		funcs, err := loadLookupTables(cfg.EvalTables)
		if err != nil {
			contract.LogFatal("Cannot load lookup table", err)
		}
		result, err := formula.EvaluateStrict(args[0], cfg.EvalVars, funcs)
		if err != nil {
			contract.LogFatal("Cannot evaluate formula", err)
		}
		fmt.Println(schema.FormatScore(result, cfg.Precision))
	},
}

// loadLookupTables reads each bound mapping-rule file and builds the lookup
// function it defines.
func loadLookupTables(tables map[string]string) (map[string]formula.Func, error) {
	if len(tables) == 0 {
		return nil, nil
	}
	funcs := make(map[string]formula.Func, len(tables))
	for name, path := range tables {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("cannot read rules file for %s: %w", name, err)
		}
		var rules []schema.MappingRule
		if err := json.Unmarshal(data, &rules); err != nil {
			return nil, fmt.Errorf("malformed rules JSON for %s: %w", name, err)
		}
		funcs[name] = formula.Func(core.NewLookupFunc(rules))
	}
	return funcs, nil
}
