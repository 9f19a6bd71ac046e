package model

import "encoding/json"

type AlertSource struct {
	Fields     []string                `json:"fields"`
	Thresholds map[string]Rule         `json:"thresholds"`
	Settings   map[string]SettingValue `json:"settings"`
	Items      []Item                  `json:"items"`
}

func NewAlertSource(fields []string) *AlertSource {
	return &AlertSource{
		Fields:     fields,
		Thresholds: make(map[string]Rule),
		Settings:   make(map[string]SettingValue),
		Items:      []Item{},
	}
}

func (s *AlertSource) UnmarshalJSON(b []byte) error {
	type plain AlertSource
	var p plain
	if err := json.Unmarshal(b, &p); err != nil {
		return err
	}
	*s = AlertSource(p)
	s.normalize()
	return nil
}

func (s *AlertSource) normalize() {
	if s.Fields == nil {
		s.Fields = []string{}
	}
	if s.Thresholds == nil {
		s.Thresholds = make(map[string]Rule)
	}
	if s.Settings == nil {
		s.Settings = make(map[string]SettingValue)
	}
	if s.Items == nil {
		s.Items = []Item{}
	}
}

func (s *AlertSource) HasField(name string) bool {
	for _, f := range s.Fields {
		if f == name {
			return true
		}
	}
	return false
}

type Envelope struct {
	EventID        string         `json:"eventId"`
	EventType      string         `json:"eventType"`
	EventTimestamp string         `json:"eventTimestamp"`
	Data           map[string]any `json:"data"`
}
