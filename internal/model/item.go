package model

import (
	"bytes"
	"encoding/json"
	"sort"
)

const (
	itemIDKey     = "id"
	autoGenKey    = "auto_generated"
	removeFlagKey = "_remove_after_simulation"
)

// Item is one tracked instance under an alert source. It serializes as a flat
// object: id first, field values in sorted key order, lifecycle flags last.
type Item struct {
	ID             string
	Attrs          map[string]SettingValue
	AutoGenerated  bool
	RemoveAfterSim bool
}

func NewItem(id string) Item {
	return Item{ID: id, Attrs: make(map[string]SettingValue)}
}

func (it Item) Attr(key string) string {
	if v, ok := it.Attrs[key]; ok {
		return v.String()
	}
	return ""
}

func (it *Item) SetAttr(key, value string) {
	if it.Attrs == nil {
		it.Attrs = make(map[string]SettingValue)
	}
	it.Attrs[key] = StringValue(value)
}

func (it Item) AttrKeys() []string {
	keys := make([]string, 0, len(it.Attrs))
	for k := range it.Attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (it Item) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	writeMember := func(key string, value any) error {
		if buf.Len() > 1 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(key)
		if err != nil {
			return err
		}
		v, err := json.Marshal(value)
		if err != nil {
			return err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
		return nil
	}
	if err := writeMember(itemIDKey, it.ID); err != nil {
		return nil, err
	}
	for _, k := range it.AttrKeys() {
		if err := writeMember(k, it.Attrs[k]); err != nil {
			return nil, err
		}
	}
	if it.AutoGenerated {
		if err := writeMember(autoGenKey, true); err != nil {
			return nil, err
		}
	}
	if it.RemoveAfterSim {
		if err := writeMember(removeFlagKey, true); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (it *Item) UnmarshalJSON(b []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	out := Item{Attrs: make(map[string]SettingValue)}
	for key, val := range raw {
		switch key {
		case itemIDKey:
			if err := json.Unmarshal(val, &out.ID); err != nil {
				return err
			}
		case autoGenKey:
			var flag bool
			if err := json.Unmarshal(val, &flag); err == nil {
				out.AutoGenerated = flag
			}
		case removeFlagKey:
			var flag bool
			if err := json.Unmarshal(val, &flag); err == nil {
				out.RemoveAfterSim = flag
			}
		default:
			var v SettingValue
			if err := json.Unmarshal(val, &v); err != nil {
				return err
			}
			out.Attrs[key] = v
		}
	}
	*it = out
	return nil
}
