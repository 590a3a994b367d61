package core

import (
	"math"

	"github.com/louieddxu2/BoardGameScorePad-sub001/schema"
)

// LookupFunc maps an input number to a score per a mapping-rule table.
type LookupFunc func(float64) float64

// NewLookupFunc builds the lookup function for an ordered rule list. Rules
// are checked in authored order; the first interval containing the input
// wins and an input outside every interval scores 0.
//
// A linear rule grows in steps of Unit, adding UnitScore (or Score when
// UnitScore is absent) per whole step above the interval start. Its baseline
// is the table's own score at Min-1, so consecutive linear rules chain:
// each continues from where the previous interval left off.
func NewLookupFunc(rules []schema.MappingRule) LookupFunc {
	var lookup LookupFunc
	lookup = func(val float64) float64 {
		for i := range rules {
			rule := &rules[i]
			if rule.Min != nil && val < *rule.Min {
				continue
			}
			if val > effectiveMax(rules, i) {
				continue
			}

			if !rule.IsLinear {
				return rule.Score
			}

			startVal := 0.0
			if rule.Min != nil {
				startVal = *rule.Min
			}
			prevEnd := startVal - 1

			baseScore := 0.0
			if i > 0 {
				baseScore = lookup(prevEnd)
			}

			unit := 1.0
			if rule.Unit != nil {
				unit = math.Max(1, *rule.Unit)
			}
			stepScore := rule.Score
			if rule.UnitScore != nil {
				stepScore = *rule.UnitScore
			}

			increments := math.Floor((val - prevEnd) / unit)
			return baseScore + increments*stepScore
		}
		return 0
	}
	return lookup
}

// effectiveMax resolves a rule's inclusive upper bound: a number as-is, the
// string "next" as the following rule's Min minus one, anything else as
// unbounded above.
func effectiveMax(rules []schema.MappingRule, i int) float64 {
	switch max := rules[i].Max.(type) {
	case float64:
		return max
	case int:
		return float64(max)
	case string:
		if max == "next" && i+1 < len(rules) && rules[i+1].Min != nil {
			return *rules[i+1].Min - 1
		}
		return math.Inf(1)
	default:
		return math.Inf(1)
	}
}
