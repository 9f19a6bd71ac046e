package gen

func (s *Set) loginDetails(manual bool) (map[string]any, error) {
	const source = "Login_Alert"
	var status, username, sourceIP, method string
	if manual {
		status = s.askValidated(source, "loginStatus", "Login status", s.reg.Setting(source, "default_status", "Success"))
		username = s.ask("Username", s.fake.Username())
		sourceIP = s.ask("Source IP", s.fake.IPv4())
		method = s.ask("Authentication method", "Password")
	} else {
		status = s.weightedChoice([]weighted{{"Success", 85}, {"Failure", 15}})
		username = s.fake.Username()
		sourceIP = s.fake.IPv4()
		method = s.fake.Pick([]string{"Password", "MFA", "SSO", "API Key"})
	}
	var failureReason any
	if status == "Failure" {
		failureReason = s.fake.Sentence(5)
	}
	return map[string]any{
		"source":               "Authentication Service",
		"loginStatus":          status,
		"username":             username,
		"sourceIP":             sourceIP,
		"userAgent":            s.fake.UserAgent(),
		"authenticationMethod": method,
		"failureReason":        failureReason,
		"loginTimestamp":       s.recentTimestamp(300),
	}, nil
}
