package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
)

const sourcesKey = "alert_sources"

// Document is the on-disk configuration: the alert-source map plus any other
// top-level keys, which survive load/save untouched.
type Document struct {
	Sources *SourceSet
	Extra   map[string]json.RawMessage
}

func NewDocument() *Document {
	return &Document{
		Sources: NewSourceSet(),
		Extra:   make(map[string]json.RawMessage),
	}
}

func (d *Document) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	src, err := json.Marshal(d.Sources)
	if err != nil {
		return nil, err
	}
	fmt.Fprintf(&buf, "%q:", sourcesKey)
	buf.Write(src)
	keys := make([]string, 0, len(d.Extra))
	for k := range d.Extra {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		var compact bytes.Buffer
		if err := json.Compact(&compact, d.Extra[k]); err != nil {
			return nil, err
		}
		buf.WriteByte(',')
		name, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(name)
		buf.WriteByte(':')
		buf.Write(compact.Bytes())
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (d *Document) UnmarshalJSON(b []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	out := NewDocument()
	for key, val := range raw {
		if key == sourcesKey {
			if err := json.Unmarshal(val, out.Sources); err != nil {
				return err
			}
			continue
		}
		out.Extra[key] = val
	}
	*d = *out
	return nil
}

// SourceSet keeps alert sources in insertion order, which the JSON codec
// preserves across save and load.
type SourceSet struct {
	names  []string
	byName map[string]*AlertSource
}

func NewSourceSet() *SourceSet {
	return &SourceSet{byName: make(map[string]*AlertSource)}
}

func (s *SourceSet) Len() int {
	return len(s.names)
}

func (s *SourceSet) Names() []string {
	out := make([]string, len(s.names))
	copy(out, s.names)
	return out
}

func (s *SourceSet) Get(name string) (*AlertSource, bool) {
	src, ok := s.byName[name]
	return src, ok
}

func (s *SourceSet) Set(name string, src *AlertSource) {
	if _, ok := s.byName[name]; !ok {
		s.names = append(s.names, name)
	}
	s.byName[name] = src
}

func (s *SourceSet) Delete(name string) bool {
	if _, ok := s.byName[name]; !ok {
		return false
	}
	delete(s.byName, name)
	for i, n := range s.names {
		if n == name {
			s.names = append(s.names[:i], s.names[i+1:]...)
			break
		}
	}
	return true
}

func (s *SourceSet) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range s.names {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(s.byName[name])
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (s *SourceSet) UnmarshalJSON(b []byte) error {
	dec := json.NewDecoder(bytes.NewReader(b))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("alert_sources must be an object")
	}
	out := NewSourceSet()
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		name, ok := tok.(string)
		if !ok {
			return fmt.Errorf("alert_sources key is not a string")
		}
		var src AlertSource
		if err := dec.Decode(&src); err != nil {
			return err
		}
		out.Set(name, &src)
	}
	*s = *out
	return nil
}
