package core

import (
	"testing"

	"github.com/louieddxu2/BoardGameScorePad-sub001/schema"
	"github.com/stretchr/testify/assert"
)

// TestNewLookupFuncBoundaries tests inclusive interval matching across a
// three-rule table with an unbounded top rule.
func TestNewLookupFuncBoundaries(t *testing.T) {
	lookup := NewLookupFunc([]schema.MappingRule{
		{Max: 0.0, Score: -1},
		{Min: schema.Float64Ptr(1), Max: 3.0, Score: 1},
		{Min: schema.Float64Ptr(4), Score: 2},
	})

	tests := []struct {
		name     string
		input    float64
		expected float64
	}{
		{
			name:     "negative into bottom rule",
			input:    -5,
			expected: -1,
		},
		{
			name:     "upper edge of bottom rule",
			input:    0,
			expected: -1,
		},
		{
			name:     "lower edge of middle rule",
			input:    1,
			expected: 1,
		},
		{
			name:     "upper edge of middle rule",
			input:    3,
			expected: 1,
		},
		{
			name:     "lower edge of top rule",
			input:    4,
			expected: 2,
		},
		{
			name:     "far above top rule",
			input:    99,
			expected: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, lookup(tt.input), 0.0001)
		})
	}
}

// TestNewLookupFuncLinear tests stepped growth and baseline chaining into
// the previous interval.
func TestNewLookupFuncLinear(t *testing.T) {
	lookup := NewLookupFunc([]schema.MappingRule{
		{Max: 3.0, Score: 1},
		{Min: schema.Float64Ptr(4), Score: 5, Unit: schema.Float64Ptr(2), IsLinear: true},
	})

	tests := []struct {
		name     string
		input    float64
		expected float64
	}{
		{
			name:     "below linear rule",
			input:    3,
			expected: 1,
		},
		{
			name:     "interval start has zero increments",
			input:    4,
			expected: 1,
		},
		{
			name:     "one increment",
			input:    5,
			expected: 6,
		},
		{
			name:     "two increments",
			input:    7,
			expected: 11,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, lookup(tt.input), 0.0001)
		})
	}
}

// TestNewLookupFuncEdgeCases covers next-bounds, no-match and rule-order
// behavior.
func TestNewLookupFuncEdgeCases(t *testing.T) {
	t.Run("max next resolves against following rule", func(t *testing.T) {
		lookup := NewLookupFunc([]schema.MappingRule{
			{Min: schema.Float64Ptr(0), Max: "next", Score: 3},
			{Min: schema.Float64Ptr(10), Score: 7},
		})
		assert.InDelta(t, 3, lookup(9), 0.0001)
		assert.InDelta(t, 7, lookup(10), 0.0001)
	})

	t.Run("max next on last rule is unbounded", func(t *testing.T) {
		lookup := NewLookupFunc([]schema.MappingRule{
			{Min: schema.Float64Ptr(0), Max: "next", Score: 3},
		})
		assert.InDelta(t, 3, lookup(1000), 0.0001)
	})

	t.Run("no matching rule scores zero", func(t *testing.T) {
		lookup := NewLookupFunc([]schema.MappingRule{
			{Min: schema.Float64Ptr(5), Max: 10.0, Score: 4},
		})
		assert.Zero(t, lookup(2))
		assert.Zero(t, lookup(11))
	})

	t.Run("empty rule list scores zero", func(t *testing.T) {
		lookup := NewLookupFunc(nil)
		assert.Zero(t, lookup(5))
	})

	t.Run("first matching rule wins", func(t *testing.T) {
		lookup := NewLookupFunc([]schema.MappingRule{
			{Score: 1},
			{Score: 2},
		})
		assert.InDelta(t, 1, lookup(50), 0.0001)
	})

	t.Run("unit below one is clamped", func(t *testing.T) {
		lookup := NewLookupFunc([]schema.MappingRule{
			{Min: schema.Float64Ptr(1), Score: 2, Unit: schema.Float64Ptr(0), IsLinear: true},
		})
		// First rule has no baseline; steps of 1 from the interval start.
		assert.InDelta(t, 2, lookup(1), 0.0001)
		assert.InDelta(t, 4, lookup(2), 0.0001)
	})

	t.Run("unit score overrides step growth", func(t *testing.T) {
		lookup := NewLookupFunc([]schema.MappingRule{
			{Max: 0.0, Score: 10},
			{Min: schema.Float64Ptr(1), Score: 100, UnitScore: schema.Float64Ptr(1), IsLinear: true},
		})
		// Baseline from the previous interval plus one point per step.
		assert.InDelta(t, 11, lookup(1), 0.0001)
		assert.InDelta(t, 13, lookup(3), 0.0001)
	})
}
