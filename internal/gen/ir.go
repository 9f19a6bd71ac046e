package gen

import "fmt"

func (s *Set) irDetails(manual bool) (map[string]any, error) {
	const source = "IR_Sensor_Alert"
	var location, status, timestamp string
	if manual {
		location = s.ask("Location", fmt.Sprintf("Doorway %d", s.fake.IntBetween(1, 20)))
		status = s.askValidated(source, "status", "Status", s.reg.Setting(source, "default_status", "Detected"))
		timestamp = s.askTimestamp("Beam status timestamp", 180)
	} else {
		location = fmt.Sprintf("%s %d", s.fake.Pick([]string{"Main Gate", "Window", "Passageway", "Secure Entry"}), s.fake.IntBetween(1, 10))
		status = s.weightedChoice([]weighted{{"Detected", 65}, {"Clear", 30}, {"Obscured", 5}})
		timestamp = s.recentTimestamp(180)
	}
	item, _, err := s.reg.FindOrCreateAuto(source, "location", location, "status", status)
	if err != nil {
		return nil, err
	}
	strength := round1(s.fake.FloatBetween(70.0, 100.0))
	if status == "Obscured" {
		strength = round1(s.fake.FloatBetween(10.0, 50.0))
	}
	return map[string]any{
		"source":              "IR Beam Sensor",
		"itemId":              item.ID,
		"location":            item.Attr("location"),
		"status":              item.Attr("status"),
		"beamStatusTimestamp": timestamp,
		"beamStrength":        strength,
	}, nil
}
