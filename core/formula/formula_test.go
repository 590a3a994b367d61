package formula

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestEvaluateArithmetic tests plain arithmetic expressions.
func TestEvaluateArithmetic(t *testing.T) {
	tests := []struct {
		name     string
		expr     string
		expected float64
	}{
		{
			name:     "addition",
			expr:     "1+2",
			expected: 3,
		},
		{
			name:     "precedence",
			expr:     "2+3*4",
			expected: 14,
		},
		{
			name:     "parentheses",
			expr:     "(2+3)*4",
			expected: 20,
		},
		{
			name:     "unary minus",
			expr:     "-5+2",
			expected: -3,
		},
		{
			name:     "multiplication sign alias",
			expr:     "3×4",
			expected: 12,
		},
		{
			name:     "left associative subtraction",
			expr:     "10-3-2",
			expected: 5,
		},
		{
			name:     "decimal literal",
			expr:     "1.5*2",
			expected: 3,
		},
		{
			name:     "empty expression",
			expr:     "",
			expected: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Evaluate(tt.expr, nil, nil)
			assert.InDelta(t, tt.expected, result, 0.0001)
		})
	}
}

// TestEvaluateVariables tests variable substitution and rejection.
func TestEvaluateVariables(t *testing.T) {
	vars := map[string]float64{"a1": 10, "x1": 3}

	tests := []struct {
		name     string
		expr     string
		expected float64
	}{
		{
			name:     "single variable",
			expr:     "a1",
			expected: 10,
		},
		{
			name:     "two variables",
			expr:     "a1*x1",
			expected: 30,
		},
		{
			name:     "builtin constant pi",
			expr:     "pi",
			expected: math.Pi,
		},
		{
			name:     "undeclared variable rejected",
			expr:     "a1+bogus",
			expected: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Evaluate(tt.expr, vars, nil)
			assert.InDelta(t, tt.expected, result, 0.0001)
		})
	}
}

// TestEvaluateFunctions tests builtin and user-defined function calls.
func TestEvaluateFunctions(t *testing.T) {
	funcs := map[string]Func{
		"f1": func(v float64) float64 { return v * 2 },
	}
	vars := map[string]float64{"a1": 7}

	tests := []struct {
		name     string
		expr     string
		expected float64
	}{
		{
			name:     "user function",
			expr:     "f1(a1)",
			expected: 14,
		},
		{
			name:     "user function uppercase",
			expr:     "F1(3)",
			expected: 6,
		},
		{
			name:     "builtin min",
			expr:     "min(4,2,9)",
			expected: 2,
		},
		{
			name:     "builtin max",
			expr:     "max(4,2,9)",
			expected: 9,
		},
		{
			name:     "builtin floor",
			expr:     "floor(3.9)",
			expected: 3,
		},
		{
			name:     "builtin pow",
			expr:     "pow(2,10)",
			expected: 1024,
		},
		{
			name:     "nested call",
			expr:     "max(f1(a1), 10)",
			expected: 14,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Evaluate(tt.expr, vars, funcs)
			assert.InDelta(t, tt.expected, result, 0.0001)
		})
	}
}

// TestEvaluateRejectsInjection ensures unknown identifiers and malformed
// input evaluate to 0 instead of executing anything.
func TestEvaluateRejectsInjection(t *testing.T) {
	tests := []struct {
		name string
		expr string
	}{
		{
			name: "unknown function call",
			expr: "alert(1)",
		},
		{
			name: "statement-like input",
			expr: "a1; drop",
		},
		{
			name: "unbalanced parens",
			expr: "(1+2",
		},
		{
			name: "double dot number",
			expr: "1.2.3",
		},
		{
			name: "trailing operator",
			expr: "1+",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Evaluate(tt.expr, map[string]float64{"a1": 1}, nil)
			assert.Zero(t, result)
		})
	}
}

// TestEvaluateStrict tests the error-returning variant.
func TestEvaluateStrict(t *testing.T) {
	t.Run("empty is zero without error", func(t *testing.T) {
		result, err := EvaluateStrict("", nil, nil)
		assert.NoError(t, err)
		assert.Zero(t, result)
	})

	t.Run("undeclared variable errors", func(t *testing.T) {
		_, err := EvaluateStrict("nope", nil, nil)
		assert.Error(t, err)
	})

	t.Run("division by zero is non-finite, not an error", func(t *testing.T) {
		result, err := EvaluateStrict("1/0", nil, nil)
		assert.NoError(t, err)
		assert.True(t, math.IsInf(result, 1))
	})
}

// TestExtractIdentifiers tests identifier classification.
func TestExtractIdentifiers(t *testing.T) {
	tests := []struct {
		name          string
		expr          string
		expectedVars  []string
		expectedFuncs []string
	}{
		{
			name:          "vars only",
			expr:          "a1+x2*a1",
			expectedVars:  []string{"a1", "x2"},
			expectedFuncs: nil,
		},
		{
			name:          "function and argument",
			expr:          "f1(a1)",
			expectedVars:  []string{"a1"},
			expectedFuncs: []string{"f1"},
		},
		{
			name:          "math keywords excluded",
			expr:          "min(a1, floor(x1))",
			expectedVars:  []string{"a1", "x1"},
			expectedFuncs: nil,
		},
		{
			name:          "empty",
			expr:          "",
			expectedVars:  nil,
			expectedFuncs: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vars, funcs := ExtractIdentifiers(tt.expr)
			assert.Equal(t, tt.expectedVars, vars)
			assert.Equal(t, tt.expectedFuncs, funcs)
		})
	}
}

// BenchmarkEvaluate benchmarks a representative auto-column formula.
func BenchmarkEvaluate(b *testing.B) {
	vars := map[string]float64{"x1": 12, "x2": 4, "x3": 2}
	funcs := map[string]Func{
		"f1": func(v float64) float64 { return v * 3 },
	}

	for b.Loop() {
		Evaluate("f1(x1) + max(x2, x3) * 2", vars, funcs)
	}
}
