package registry

import (
	"encoding/json"

	"alertsim/internal/model"
)

var builtinOrder = []string{
	"SIEM_Alert",
	"Login_Alert",
	"Smart_Fence_Alert",
	"Location_Based_Alert",
	"Motion_Sensor_Alert",
	"IR_Sensor_Alert",
}

var defaultFields = map[string][]string{
	"SIEM_Alert":           {"severity", "description", "affectedUser", "sourceIP", "destinationIP", "protocol", "sourcePort", "destinationPort", "deviceAction", "targetResource"},
	"Login_Alert":          {"loginStatus", "username", "sourceIP", "userAgent", "authenticationMethod", "failureReason", "loginTimestamp"},
	"Smart_Fence_Alert":    {"fenceId", "segmentId", "alertType", "status", "detectionTimestamp", "sensorData"},
	"Location_Based_Alert": {"userId", "deviceId", "locationDescription", "latitude", "longitude", "trigger", "speed", "altitude", "accuracy"},
	"Motion_Sensor_Alert":  {"itemId", "location", "status", "detectionTimestamp", "sensitivityLevel"},
	"IR_Sensor_Alert":      {"itemId", "location", "status", "beamStatusTimestamp", "beamStrength"},
}

func BuiltinEventTypes() []string {
	out := make([]string, len(builtinOrder))
	copy(out, builtinOrder)
	return out
}

// migrate rebuilds the nested alert_sources layout from a legacy flat
// document: six well-known sources get their historical field lists, the
// top-level items map and per-type keys are absorbed and consumed, and the
// result is saved immediately.
func (r *Registry) migrate() {
	for _, name := range builtinOrder {
		fields := make([]string, len(defaultFields[name]))
		copy(fields, defaultFields[name])
		r.doc.Sources.Set(name, model.NewAlertSource(fields))
	}

	if raw, ok := r.doc.Extra["items"]; ok {
		var legacy map[string][]model.Item
		if err := json.Unmarshal(raw, &legacy); err != nil {
			if r.logger != nil {
				r.logger.Warn("legacy items unreadable, leaving in place", "err", err)
			}
		} else {
			for name, items := range legacy {
				src, ok := r.doc.Sources.Get(name)
				if !ok {
					if r.logger != nil {
						r.logger.Warn("legacy items for unknown type dropped", "type", name, "count", len(items))
					}
					continue
				}
				src.Items = items
			}
			delete(r.doc.Extra, "items")
		}
	}

	for _, name := range builtinOrder {
		raw, ok := r.doc.Extra[name]
		if !ok {
			continue
		}
		var legacy map[string]json.RawMessage
		if err := json.Unmarshal(raw, &legacy); err != nil {
			if r.logger != nil {
				r.logger.Warn("legacy type entry unreadable, leaving in place", "type", name, "err", err)
			}
			continue
		}
		src, _ := r.doc.Sources.Get(name)
		for key, val := range legacy {
			switch key {
			case "thresholds":
				var rules map[string]model.Rule
				if err := json.Unmarshal(val, &rules); err != nil {
					if r.logger != nil {
						r.logger.Warn("legacy thresholds unreadable", "type", name, "err", err)
					}
					continue
				}
				src.Thresholds = rules
			case "fields", "items":
			default:
				var sv model.SettingValue
				if err := json.Unmarshal(val, &sv); err != nil {
					continue
				}
				src.Settings[key] = sv
			}
		}
		delete(r.doc.Extra, name)
	}

	r.persist()
	if r.logger != nil {
		r.logger.Info("migrated legacy configuration", "sources", len(builtinOrder))
	}
}
