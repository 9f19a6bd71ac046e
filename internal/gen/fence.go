package gen

import (
	"fmt"
	"strings"
)

func (s *Set) fenceDetails(manual bool) (map[string]any, error) {
	const source = "Smart_Fence_Alert"
	areas := []string{"North Perimeter", "East Gate", "Warehouse Sector", "Restricted Zone"}
	genSegment := fmt.Sprintf("%s Segment-%d", s.fake.Pick(areas), s.fake.IntBetween(100, 999))
	var segment, alertType, status string
	if manual {
		segment = s.ask("Segment location", genSegment)
		alertType = s.askValidated(source, "alertType", "Alert type", "Climb")
		status = s.askValidated(source, "status", "Status", s.reg.Setting(source, "default_status", "Breached"))
	} else {
		segment = genSegment
		alertType = s.fake.Pick([]string{"Climb Attempt", "Fence Cut", "Tamper Detected", "Impact Detected", "Zone Entry"})
		status = s.weightedChoice([]weighted{{"Breached", 60}, {"Secure", 30}, {"Tamper Detected", 5}, {"Low Battery", 5}})
	}
	vibration := 0.0
	if strings.Contains(alertType, "Impact") || strings.Contains(alertType, "Tamper") {
		vibration = round2(s.fake.FloatBetween(0, 5.0))
	}
	voltage := round2(s.fake.FloatBetween(11.5, 12.5))
	if status == "Low Battery" {
		voltage = round2(s.fake.FloatBetween(10.0, 11.0))
	}
	return map[string]any{
		"source":             "Smart Fence Controller",
		"fenceId":            fmt.Sprintf("FNC-%d", s.fake.IntBetween(10, 99)),
		"segmentId":          segment,
		"alertType":          alertType,
		"status":             status,
		"detectionTimestamp": s.recentTimestamp(120),
		"sensorData": map[string]any{
			"vibration": vibration,
			"voltage":   voltage,
		},
	}, nil
}
