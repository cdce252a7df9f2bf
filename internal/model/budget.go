package model

// Severity classifies budget consumption for display.
type Severity int

const (
	SeverityLow Severity = iota
	SeverityMedium
	SeverityHigh
)

// String returns the lowercase severity name.
func (s Severity) String() string {
	switch s {
	case SeverityLow:
		return "low"
	case SeverityMedium:
		return "medium"
	case SeverityHigh:
		return "high"
	default:
		return "unknown"
	}
}

// BudgetPercent returns spend as a percentage of budget. The budget is
// guaranteed positive by config validation; percentages above 100 are
// returned as-is for over-budget display.
func BudgetPercent(spent, budget float64) float64 {
	return spent / budget * 100
}

// ClassifySeverity maps budget consumption to a severity level:
// below 75% low, 75-90% inclusive medium, above 90% high.
func ClassifySeverity(spent, budget float64) Severity {
	pct := BudgetPercent(spent, budget)
	switch {
	case pct < 75:
		return SeverityLow
	case pct <= 90:
		return SeverityMedium
	default:
		return SeverityHigh
	}
}
