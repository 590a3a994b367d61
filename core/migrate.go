package core

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/louieddxu2/BoardGameScorePad-sub001/schema"
)

// MigrateColumn normalizes a column from any historical shape into the
// current formula model. Already-migrated columns pass through unchanged
// except for rule normalization, so applying it twice is a no-op. It never
// fails: fields that cannot be parsed are dropped or defaulted.
func MigrateColumn(old map[string]any) schema.ScoreColumn {
	col := decodeColumn(old)
	if _, ok := old["isScoring"]; !ok {
		col.IsScoring = true
	}

	if col.Formula != "" && col.InputType != "" {
		normalizeColumnRules(&col)
		return col
	}

	legacyType := stringField(old, "type")
	calcType := stringField(old, "calculationType")

	switch {
	case legacyType == "select" || legacyType == "boolean":
		col.InputType = schema.ClickerInput
		col.Formula = "a1"
		col.QuickActions = synthesizeActions(old, legacyType)

	case calcType == "sum-parts":
		col.Formula = "a1+next"
		if len(col.QuickActions) > 0 {
			col.InputType = schema.ClickerInput
		}

	case calcType == "product":
		col.Formula = "a1×a2"

	case len(col.F1) > 0 || hasListField(old, "mappingRules"):
		col.Formula = "f1(a1)"
		if len(col.F1) == 0 {
			col.F1 = decodeRules(old["mappingRules"])
		}

	default:
		col.Formula = "a1"
		if w, ok := floatField(old, "weight"); ok && w != 1 {
			col.Formula = "a1×c1"
			col.Constants = &schema.ColumnConstants{C1: schema.Float64Ptr(w)}
		}
		if hasListField(old, "quickButtons") && col.InputType == "" {
			col.InputType = schema.ClickerInput
			col.Formula = "a1+next"
			col.QuickActions = actionsFromButtons(old["quickButtons"])
		}
	}

	if col.InputType == "" {
		col.InputType = schema.NumberInput
	}
	normalizeColumnRules(&col)
	return col
}

// MigrateTemplate maps every column of a template through MigrateColumn and
// fills timestamp defaults. A template without columns passes through as-is.
func MigrateTemplate(old map[string]any) schema.GameTemplate {
	var tpl schema.GameTemplate
	if data, err := json.Marshal(old); err == nil {
		_ = json.Unmarshal(data, &tpl)
	}

	columns, ok := old["columns"].([]any)
	if !ok || len(columns) == 0 {
		return tpl
	}

	tpl.Columns = make([]schema.ScoreColumn, 0, len(columns))
	for _, c := range columns {
		m, ok := c.(map[string]any)
		if !ok {
			continue
		}
		tpl.Columns = append(tpl.Columns, MigrateColumn(m))
	}
	if tpl.UpdatedAt == 0 {
		tpl.UpdatedAt = tpl.CreatedAt
	}
	return tpl
}

// MigrateScores reconstructs the canonical parts array for each stored score.
// Entries for columns no longer in the template are dropped. Values already
// shaped {parts: [...]} pass through; everything else is rebuilt from the
// legacy shape the column's formula family used to store.
func MigrateScores(scores map[string]any, template *schema.GameTemplate) map[string]schema.ScoreValue {
	migrated := make(map[string]schema.ScoreValue, len(scores))
	for id, value := range scores {
		col := schema.ColumnByID(template.Columns, id)
		if col == nil || value == nil {
			continue
		}

		if m, ok := value.(map[string]any); ok {
			if parts, ok := m["parts"].([]any); ok {
				migrated[id] = schema.ScoreValue{Parts: toFloats(parts)}
				continue
			}
		}

		switch {
		case strings.Contains(col.Formula, "+next"):
			migrated[id] = schema.ScoreValue{Parts: historyParts(value)}

		case col.Formula == "a1×a2":
			if m, ok := value.(map[string]any); ok {
				if factors, ok := m["factors"].([]any); ok {
					migrated[id] = schema.ScoreValue{Parts: toFloats(factors)}
					continue
				}
			}
			migrated[id] = schema.ScoreValue{Parts: []float64{RawValue(value)}}

		default:
			migrated[id] = schema.ScoreValue{Parts: []float64{RawValue(value)}}
		}
	}
	return migrated
}

// RawValue extracts a single number from any historical score value shape:
// a bare number, a boolean (true is 1), a numeric string, or a legacy object
// carrying a value field. Anything else reads as 0.
func RawValue(value any) float64 {
	switch v := value.(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case bool:
		if v {
			return 1
		}
		return 0
	case string:
		if n, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
			return n
		}
		return 0
	case map[string]any:
		if inner, ok := v["value"]; ok {
			return RawValue(inner)
		}
		return 0
	default:
		return 0
	}
}

// ScoreHistory extracts the entry history of a sum-parts score value: the
// history array of a legacy object, or a bare array. Entries are kept as
// strings since old exports mixed numbers and numeric text.
func ScoreHistory(value any) []string {
	switch v := value.(type) {
	case map[string]any:
		if h, ok := v["history"].([]any); ok {
			return toStrings(h)
		}
	case []any:
		return toStrings(v)
	}
	return nil
}

// historyParts turns a legacy sum-parts value into parts, falling back to a
// single scalar when no history was recorded.
func historyParts(value any) []float64 {
	history := ScoreHistory(value)
	if len(history) == 0 {
		return []float64{RawValue(value)}
	}
	parts := make([]float64, 0, len(history))
	for _, entry := range history {
		if n, err := strconv.ParseFloat(strings.TrimSpace(entry), 64); err == nil {
			parts = append(parts, n)
		}
	}
	return parts
}

// decodeColumn reads the fields of the current column shape out of a raw map,
// tolerating type mismatches on individual fields.
func decodeColumn(old map[string]any) schema.ScoreColumn {
	var col schema.ScoreColumn
	if data, err := json.Marshal(old); err == nil {
		_ = json.Unmarshal(data, &col)
	}
	return col
}

// decodeRules reads a mapping-rule list out of raw JSON data.
func decodeRules(raw any) []schema.MappingRule {
	var rules []schema.MappingRule
	if data, err := json.Marshal(raw); err == nil {
		_ = json.Unmarshal(data, &rules)
	}
	return rules
}

// normalizeColumnRules backfills unitScore from score on linear rules and
// keeps the legacy f1 alias and functions.f1 in sync.
func normalizeColumnRules(col *schema.ScoreColumn) {
	backfillUnitScore(col.F1)
	for _, rules := range col.Functions {
		backfillUnitScore(rules)
	}
	if len(col.F1) == 0 && len(col.Functions["f1"]) > 0 {
		col.F1 = col.Functions["f1"]
	}
	if len(col.F1) > 0 {
		if col.Functions == nil {
			col.Functions = make(map[string][]schema.MappingRule, 1)
		}
		if _, ok := col.Functions["f1"]; !ok {
			col.Functions["f1"] = col.F1
		}
	}
}

// backfillUnitScore defaults a linear rule's per-step score to its base score.
func backfillUnitScore(rules []schema.MappingRule) {
	for i := range rules {
		if rules[i].IsLinear && rules[i].UnitScore == nil {
			rules[i].UnitScore = schema.Float64Ptr(rules[i].Score)
		}
	}
}

// synthesizeActions builds clicker actions for legacy select and boolean
// columns: one action per option, or an implicit YES/NO pair for booleans.
func synthesizeActions(old map[string]any, legacyType string) []schema.QuickAction {
	if options, ok := old["options"].([]any); ok && len(options) > 0 {
		actions := make([]schema.QuickAction, 0, len(options))
		for _, o := range options {
			m, ok := o.(map[string]any)
			if !ok {
				continue
			}
			label := stringField(m, "label")
			if label == "" {
				label = stringField(m, "name")
			}
			value, ok := floatField(m, "value")
			if !ok {
				value, _ = floatField(m, "score")
			}
			if label == "" {
				label = schema.FormatScore(value, 2)
			}
			actions = append(actions, schema.QuickAction{Label: label, Value: value})
		}
		return actions
	}
	if legacyType == "boolean" {
		yes := 1.0
		if w, ok := floatField(old, "weight"); ok {
			yes = w
		}
		return []schema.QuickAction{
			{Label: "YES", Value: yes},
			{Label: "NO", Value: 0},
		}
	}
	return nil
}

// actionsFromButtons converts a legacy quickButtons number list into paired
// increment and decrement actions.
func actionsFromButtons(raw any) []schema.QuickAction {
	buttons, ok := raw.([]any)
	if !ok {
		return nil
	}
	actions := make([]schema.QuickAction, 0, 2*len(buttons))
	for _, b := range buttons {
		n, ok := b.(float64)
		if !ok {
			continue
		}
		label := schema.FormatScore(n, 2)
		actions = append(actions,
			schema.QuickAction{Label: "+" + label, Value: n},
			schema.QuickAction{Label: "-" + label, Value: -n},
		)
	}
	return actions
}

func toFloats(values []any) []float64 {
	parts := make([]float64, 0, len(values))
	for _, v := range values {
		parts = append(parts, RawValue(v))
	}
	return parts
}

func toStrings(values []any) []string {
	entries := make([]string, 0, len(values))
	for _, v := range values {
		switch s := v.(type) {
		case string:
			entries = append(entries, s)
		case float64:
			entries = append(entries, strconv.FormatFloat(s, 'f', -1, 64))
		}
	}
	return entries
}

func stringField(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return s
}

func floatField(m map[string]any, key string) (float64, bool) {
	switch v := m[key].(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case string:
		if n, err := strconv.ParseFloat(v, 64); err == nil {
			return n, true
		}
	}
	return 0, false
}

func hasListField(m map[string]any, key string) bool {
	list, ok := m[key].([]any)
	return ok && len(list) > 0
}
