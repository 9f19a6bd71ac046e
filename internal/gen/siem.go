package gen

import "fmt"

var siemSeverities = []string{"Low", "Medium", "High", "Critical"}

var siemRules = []string{"FW-Policy-Violation", "Malware-Detected", "Anomalous-Login", "Data-Exfiltration"}

func (s *Set) siemDetails(manual bool) (map[string]any, error) {
	const source = "SIEM_Alert"
	var severity, description, user, sourceIP, target string
	if manual {
		severity = s.askValidated(source, "severity", "Severity", s.reg.Setting(source, "default_severity", "Medium"))
		description = s.ask("Description", s.fake.Sentence(10))
		user = s.ask("Affected user", s.fake.Username())
		sourceIP = s.ask("Source IP", s.fake.IPv4())
		target = s.ask("Target resource", s.siemTarget())
	} else {
		severity = s.fake.Pick(siemSeverities)
		description = fmt.Sprintf("%s (Rule: %s)", s.fake.Sentence(10), s.fake.Pick(siemRules))
		user = s.fake.Username()
		sourceIP = s.fake.IPv4()
		target = s.siemTarget()
	}
	wellKnownPorts := []int{80, 443, 22, 3389, 53, s.fake.IntBetween(1024, 65535)}
	return map[string]any{
		"source":          "SIEM",
		"alertName":       fmt.Sprintf("%s severity alert detected", severity),
		"severity":        severity,
		"description":     description,
		"affectedUser":    user,
		"sourceIP":        sourceIP,
		"destinationIP":   s.fake.IPv4(),
		"protocol":        s.fake.Pick([]string{"TCP", "UDP", "ICMP"}),
		"sourcePort":      s.fake.IntBetween(1024, 65535),
		"destinationPort": wellKnownPorts[s.fake.IntBetween(0, len(wellKnownPorts)-1)],
		"deviceAction":    s.fake.Pick([]string{"Allowed", "Blocked", "Logged", "Alerted"}),
		"targetResource":  target,
		"additionalInfo": map[string]any{
			"rule_id":      fmt.Sprintf("SIEM-%d", s.fake.IntBetween(1000, 9999)),
			"threat_score": round2(s.fake.FloatBetween(0.1, 1.0)),
		},
	}, nil
}

func (s *Set) siemTarget() string {
	return "/api/v1" + s.fake.URIPath() + "/" + s.fake.Pick([]string{"users", "data", "config"})
}
