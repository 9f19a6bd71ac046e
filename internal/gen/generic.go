package gen

import (
	"strconv"

	"alertsim/internal/model"
)

// genericDetails serves registry-defined sources with no dedicated routine.
// Manual entry is strict: the first invalid field aborts the event. Random
// mode derives each value from the field's threshold when one exists.
func (s *Set) genericDetails(name string, manual bool) (map[string]any, error) {
	fields, err := s.reg.Fields(name)
	if err != nil {
		return nil, err
	}
	thresholds, err := s.reg.Thresholds(name)
	if err != nil {
		return nil, err
	}
	data := make(map[string]any, len(fields))
	for _, field := range fields {
		if manual {
			v := s.ask(field, "")
			if err := s.reg.Validate(name, field, v); err != nil {
				return nil, err
			}
			data[field] = v
			continue
		}
		rule, ok := thresholds[field]
		if !ok {
			data[field] = s.fake.Word()
			continue
		}
		data[field] = s.fillFromRule(rule)
	}
	return data, nil
}

func (s *Set) fillFromRule(rule model.Rule) any {
	switch rule.Kind {
	case model.RuleEnum:
		if len(rule.Allowed) > 0 {
			return s.fake.Pick(rule.Allowed)
		}
	case model.RuleRange:
		if minN, errMin := strconv.Atoi(rule.Min.String()); errMin == nil {
			if maxN, errMax := strconv.Atoi(rule.Max.String()); errMax == nil {
				return s.fake.IntBetween(minN, maxN)
			}
		}
		minF, _ := rule.Min.Float64()
		maxF, _ := rule.Max.Float64()
		return round2(s.fake.FloatBetween(minF, maxF))
	case model.RuleExact:
		return rule.Value.String()
	}
	return s.fake.Word()
}
