package model

import (
	"bytes"
	"encoding/json"
	"fmt"
)

type RuleKind int

const (
	RuleRange RuleKind = iota
	RuleEnum
	RuleExact
)

// Rule is a validation threshold for one field: a numeric range (inclusive),
// an enumeration of allowed strings, or a single exact scalar.
type Rule struct {
	Kind    RuleKind
	Min     json.Number
	Max     json.Number
	Allowed []string
	Value   SettingValue
}

func RangeRule(min, max json.Number) Rule {
	return Rule{Kind: RuleRange, Min: min, Max: max}
}

func EnumRule(allowed []string) Rule {
	return Rule{Kind: RuleEnum, Allowed: allowed}
}

func ExactRule(v SettingValue) Rule {
	return Rule{Kind: RuleExact, Value: v}
}

func (r Rule) KindName() string {
	switch r.Kind {
	case RuleRange:
		return "range"
	case RuleEnum:
		return "enumeration"
	default:
		return "exact"
	}
}

func (r Rule) Describe() string {
	switch r.Kind {
	case RuleRange:
		return fmt.Sprintf("range [%s, %s]", r.Min.String(), r.Max.String())
	case RuleEnum:
		return fmt.Sprintf("one of %v", r.Allowed)
	default:
		return fmt.Sprintf("exactly %s", r.Value.String())
	}
}

func (r Rule) MarshalJSON() ([]byte, error) {
	switch r.Kind {
	case RuleRange:
		return json.Marshal(struct {
			Min json.Number `json:"min"`
			Max json.Number `json:"max"`
		}{r.Min, r.Max})
	case RuleEnum:
		return json.Marshal(r.Allowed)
	default:
		return json.Marshal(r.Value)
	}
}

func (r *Rule) UnmarshalJSON(b []byte) error {
	trimmed := bytes.TrimSpace(b)
	if len(trimmed) == 0 {
		return fmt.Errorf("empty rule")
	}
	switch trimmed[0] {
	case '{':
		var obj struct {
			Min *json.Number `json:"min"`
			Max *json.Number `json:"max"`
		}
		if err := json.Unmarshal(trimmed, &obj); err == nil && obj.Min != nil && obj.Max != nil {
			*r = RangeRule(*obj.Min, *obj.Max)
			return nil
		}
		// Objects without numeric min/max are exact matches on their compact text.
		var buf bytes.Buffer
		if err := json.Compact(&buf, trimmed); err != nil {
			return err
		}
		*r = ExactRule(StringValue(buf.String()))
		return nil
	case '[':
		var members []SettingValue
		if err := json.Unmarshal(trimmed, &members); err != nil {
			return err
		}
		allowed := make([]string, 0, len(members))
		for _, m := range members {
			allowed = append(allowed, m.String())
		}
		*r = EnumRule(allowed)
		return nil
	default:
		var v SettingValue
		if err := json.Unmarshal(trimmed, &v); err != nil {
			return err
		}
		*r = ExactRule(v)
		return nil
	}
}
