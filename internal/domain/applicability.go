package domain

// SecurityApplies decides whether security pattern checks run for a
// file, given its risk level and the configured security level:
// high-risk files are always checked, medium-risk files from level
// medium, and low-risk files only at level high.
func SecurityApplies(risk RiskLevel, level Level) bool {
	switch risk {
	case RiskHigh:
		return true
	case RiskMedium:
		return level.AtLeast(LevelMedium)
	case RiskLow:
		return level == LevelHigh
	default:
		return false
	}
}

// QualityApplies decides whether quality checks run for a file
// category. Python files are always checked; config, documentation and
// the remaining text categories only from quality level medium.
func QualityApplies(category FileCategory, level Level) bool {
	switch category {
	case CategoryPython:
		return true
	case CategoryIgnored:
		return false
	default:
		return level.AtLeast(LevelMedium)
	}
}
