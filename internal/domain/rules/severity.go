package rules

import "fmt"

// Severity classifies a rule's effect on completeness. Required rules feed
// the completeness score; warning rules are advisory only.
type Severity string

const (
	SeverityRequired Severity = "REQUIRED"
	SeverityWarning  Severity = "WARNING"
)

var validSeverities = map[Severity]bool{
	SeverityRequired: true,
	SeverityWarning:  true,
}

func (s Severity) String() string {
	return string(s)
}

func (s Severity) IsValid() bool {
	return validSeverities[s]
}

func (s Severity) IsRequired() bool {
	return s == SeverityRequired
}

func NewSeverity(s string) (Severity, error) {
	sev := Severity(s)
	if !sev.IsValid() {
		return "", fmt.Errorf("invalid rule severity: %s", s)
	}
	return sev, nil
}
