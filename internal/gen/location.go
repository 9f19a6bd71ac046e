package gen

import (
	"fmt"
	"strings"
)

func (s *Set) locationDetails(manual bool) (map[string]any, error) {
	const source = "Location_Based_Alert"
	var user, locDesc, lat, lon, trigger string
	if manual {
		user = s.askValidated(source, "userId", "User", s.reg.Setting(source, "default_user", "Unknown"))
		locDesc = s.ask("Location description", "Main Office")
		lat = s.ask("Latitude", fmt.Sprintf("%.6f", s.fake.Latitude()))
		lon = s.ask("Longitude", fmt.Sprintf("%.6f", s.fake.Longitude()))
		trigger = s.askValidated(source, "trigger", "Trigger", "Geofence Entry")
	} else {
		user = s.fake.Username()
		locDesc = fmt.Sprintf("%s %s", s.fake.Pick([]string{"Building", "Site", "Area"}), s.fake.Word())
		lat = fmt.Sprintf("%.6f", s.fake.Latitude())
		lon = fmt.Sprintf("%.6f", s.fake.Longitude())
		trigger = s.fake.Pick([]string{"Geofence Entry", "Geofence Exit", "Panic Button", "Man Down Alert", "Asset Movement"})
	}
	speed := 0.0
	if strings.Contains(trigger, "Movement") {
		speed = round1(s.fake.FloatBetween(0, 5.0))
	}
	return map[string]any{
		"source":              "Personnel Tracking System",
		"userId":              user,
		"deviceId":            fmt.Sprintf("DEV-%d", s.fake.IntBetween(10000, 99999)),
		"locationDescription": locDesc,
		"latitude":            lat,
		"longitude":           lon,
		"trigger":             trigger,
		"speed":               speed,
		"altitude":            round1(s.fake.FloatBetween(50, 150)),
		"accuracy":            round1(s.fake.FloatBetween(5, 50)),
	}, nil
}
