package domain

import "strings"

// Severity classifies how urgent an issue is. Values are ordered:
// CRITICAL outranks HIGH, which outranks MEDIUM, and so on down to INFO.
type Severity string

const (
	SeverityCritical Severity = "CRITICAL"
	SeverityHigh     Severity = "HIGH"
	SeverityMedium   Severity = "MEDIUM"
	SeverityLow      Severity = "LOW"
	SeverityInfo     Severity = "INFO"
)

// Severities lists all severities from most to least urgent.
var Severities = []Severity{
	SeverityCritical,
	SeverityHigh,
	SeverityMedium,
	SeverityLow,
	SeverityInfo,
}

// Rank returns the ordering weight of a severity, 5 for CRITICAL down to
// 1 for INFO. Unknown severities rank 0 so they sort last.
func (s Severity) Rank() int {
	switch s {
	case SeverityCritical:
		return 5
	case SeverityHigh:
		return 4
	case SeverityMedium:
		return 3
	case SeverityLow:
		return 2
	case SeverityInfo:
		return 1
	default:
		return 0
	}
}

// IsValid reports whether s is one of the known severities.
func (s Severity) IsValid() bool {
	return s.Rank() > 0
}

// AtLeast reports whether s is as urgent as min or more so.
func (s Severity) AtLeast(min Severity) bool {
	return s.Rank() >= min.Rank()
}

// ParseSeverity converts a case-insensitive severity name into a Severity.
// It returns false when the name is not recognized.
func ParseSeverity(name string) (Severity, bool) {
	s := Severity(strings.ToUpper(strings.TrimSpace(name)))
	if !s.IsValid() {
		return "", false
	}
	return s, true
}
