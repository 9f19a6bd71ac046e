package registry

import (
	"strconv"
	"strings"

	"alertsim/internal/model"
)

// Validate checks a raw value against the field's threshold rule, or the
// universal non-empty rule when no threshold is set. Read-only.
func (r *Registry) Validate(source, field, value string) error {
	src, err := r.source(source)
	if err != nil {
		return err
	}
	rule, ok := src.Thresholds[field]
	if !ok {
		if value == "" {
			return validationErrorf(field, "cannot be empty.")
		}
		return nil
	}
	switch rule.Kind {
	case model.RuleRange:
		num, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return validationErrorf(field, "must be a number.")
		}
		min, _ := rule.Min.Float64()
		max, _ := rule.Max.Float64()
		if num < min || num > max {
			return validationErrorf(field, "must be between %s and %s.", rule.Min.String(), rule.Max.String())
		}
	case model.RuleEnum:
		for _, allowed := range rule.Allowed {
			if value == allowed {
				return nil
			}
		}
		return validationErrorf(field, "must be one of: %s.", strings.Join(rule.Allowed, ", "))
	case model.RuleExact:
		if value != rule.Value.String() {
			return validationErrorf(field, "must be exactly: %s.", rule.Value.String())
		}
	}
	return nil
}
