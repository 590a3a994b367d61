package formula

import (
	"testing"
)

// FuzzEvaluate fuzzes the evaluator with arbitrary formula text. Whatever
// the input, evaluation must return without panicking; a finite check is
// deliberately not asserted since division by zero is legal.
func FuzzEvaluate(f *testing.F) {
	seeds := []string{
		"",
		"a1",
		"a1+next",
		"a1×c1",
		"f1(a1)",
		"x1 * x2 - min(x1, 3)",
		"pow(2, x1) / (x2 - x2)",
		"alert(1)",
		"((((",
		"1.2.3.4",
		"-",
		"__PLAYER_COUNT__",
	}
	for _, seed := range seeds {
		f.Add(seed, 1.0, 2.0)
	}

	f.Fuzz(func(_ *testing.T, expr string, x1 float64, x2 float64) {
		vars := map[string]float64{"a1": x1, "x1": x1, "x2": x2}
		funcs := map[string]Func{
			"f1": func(v float64) float64 { return v + 1 },
		}
		_ = Evaluate(expr, vars, funcs)
	})
}

// FuzzExtractIdentifiers fuzzes identifier extraction; classification must
// be total and never return a reserved math keyword.
func FuzzExtractIdentifiers(f *testing.F) {
	seeds := []string{"a1+x2", "f1(a1)", "min(max(1,2),3)", "", "漢字+a1"}
	for _, seed := range seeds {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, expr string) {
		vars, funcs := ExtractIdentifiers(expr)
		for _, v := range vars {
			if _, reserved := mathKeywords[v]; reserved {
				t.Errorf("variable %q is a reserved keyword", v)
			}
		}
		for _, fn := range funcs {
			if !funcPattern.MatchString(fn) {
				t.Errorf("function name %q does not match the f<digits> shape", fn)
			}
		}
	})
}
