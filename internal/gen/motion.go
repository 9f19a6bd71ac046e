package gen

import "fmt"

func (s *Set) motionDetails(manual bool) (map[string]any, error) {
	const source = "Motion_Sensor_Alert"
	var location, status, timestamp string
	if manual {
		location = s.ask("Location", fmt.Sprintf("Room %d", s.fake.IntBetween(101, 599)))
		status = s.askValidated(source, "status", "Status", s.reg.Setting(source, "default_status", "Detected"))
		timestamp = s.askTimestamp("Detection timestamp", 180)
	} else {
		location = fmt.Sprintf("%s %d", s.fake.Pick([]string{"Corridor", "Office", "Entrance", "Storage"}), s.fake.IntBetween(1, 50))
		status = s.weightedChoice([]weighted{{"Detected", 70}, {"Clear", 30}})
		timestamp = s.recentTimestamp(180)
	}
	item, _, err := s.reg.FindOrCreateAuto(source, "location", location, "status", status)
	if err != nil {
		return nil, err
	}
	return map[string]any{
		"source":             "PIR Motion Sensor",
		"itemId":             item.ID,
		"location":           item.Attr("location"),
		"status":             item.Attr("status"),
		"detectionTimestamp": timestamp,
		"sensitivityLevel":   s.fake.Pick([]string{"Low", "Medium", "High"}),
	}, nil
}
