package model

import (
	"bytes"
	"encoding/json"
	"strings"
)

type SettingKind int

const (
	KindString SettingKind = iota
	KindNumber
	KindBool
	KindRaw
)

// SettingValue holds one scalar setting. KindRaw carries non-scalar JSON
// verbatim so documents round-trip unchanged.
type SettingValue struct {
	Kind SettingKind
	Str  string
	Num  json.Number
	Bool bool
	Raw  json.RawMessage
}

func StringValue(s string) SettingValue {
	return SettingValue{Kind: KindString, Str: s}
}

func NumberValue(n json.Number) SettingValue {
	return SettingValue{Kind: KindNumber, Num: n}
}

func BoolValue(b bool) SettingValue {
	return SettingValue{Kind: KindBool, Bool: b}
}

func (v SettingValue) String() string {
	switch v.Kind {
	case KindNumber:
		return v.Num.String()
	case KindBool:
		if v.Bool {
			return "true"
		}
		return "false"
	case KindRaw:
		var buf bytes.Buffer
		if err := json.Compact(&buf, v.Raw); err != nil {
			return string(v.Raw)
		}
		return buf.String()
	default:
		return v.Str
	}
}

func (v SettingValue) KindName() string {
	switch v.Kind {
	case KindNumber:
		return "number"
	case KindBool:
		return "boolean"
	case KindRaw:
		return "raw"
	default:
		return "string"
	}
}

func (v SettingValue) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case KindNumber:
		return []byte(v.Num.String()), nil
	case KindBool:
		return json.Marshal(v.Bool)
	case KindRaw:
		var buf bytes.Buffer
		if err := json.Compact(&buf, v.Raw); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	default:
		return json.Marshal(v.Str)
	}
}

func (v *SettingValue) UnmarshalJSON(b []byte) error {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	var raw any
	if err := dec.Decode(&raw); err != nil {
		return err
	}
	switch t := raw.(type) {
	case string:
		*v = StringValue(t)
	case json.Number:
		*v = NumberValue(t)
	case bool:
		*v = BoolValue(t)
	default:
		cp := make(json.RawMessage, len(b))
		copy(cp, b)
		*v = SettingValue{Kind: KindRaw, Raw: cp}
	}
	return nil
}

// Coerce interprets raw using the prior value's kind. The second return is
// false when parsing failed and the result fell back to a plain string.
func Coerce(prior SettingValue, raw string) (SettingValue, bool) {
	switch prior.Kind {
	case KindBool:
		switch strings.ToLower(strings.TrimSpace(raw)) {
		case "true", "yes", "1":
			return BoolValue(true), true
		case "false", "no", "0":
			return BoolValue(false), true
		}
		return StringValue(raw), false
	case KindNumber:
		var n json.Number
		if err := json.Unmarshal([]byte(strings.TrimSpace(raw)), &n); err == nil {
			return NumberValue(n), true
		}
		return StringValue(raw), false
	default:
		return StringValue(raw), true
	}
}
