package reporting

import (
	"github.com/shopspring/decimal"
)

// Severity classifies a leakage percentage for dashboard display
type Severity string

const (
	SeverityGreen  Severity = "green"
	SeverityYellow Severity = "yellow"
	SeverityRed    Severity = "red"
)

// String returns the string representation
func (s Severity) String() string {
	return string(s)
}

var (
	severityYellowFloor = decimal.NewFromInt(15)
	severityRedFloor    = decimal.NewFromInt(25)
	hundred             = decimal.NewFromInt(100)
)

// ClassifySeverity maps a leakage percentage to a severity band:
// green at or under 15, yellow over 15 up to 25, red over 25.
func ClassifySeverity(leakagePercent decimal.Decimal) Severity {
	switch {
	case leakagePercent.GreaterThan(severityRedFloor):
		return SeverityRed
	case leakagePercent.GreaterThan(severityYellowFloor):
		return SeverityYellow
	default:
		return SeverityGreen
	}
}

// LeakageResult is the issued-versus-consumed reconciliation for a scope,
// all quantities in base units.
type LeakageResult struct {
	Issued         decimal.Decimal `json:"issued"`
	Consumed       decimal.Decimal `json:"consumed"`
	Leakage        decimal.Decimal `json:"leakage"`
	LeakagePercent decimal.Decimal `json:"leakage_percent"`
	Severity       Severity        `json:"severity"`
}

// ComputeLeakage reconciles issued against consumed quantities. Zero issued
// yields a zero percentage, never a division error.
func ComputeLeakage(issued, consumed decimal.Decimal) LeakageResult {
	leakage := issued.Sub(consumed)

	percent := decimal.Zero
	if issued.GreaterThan(decimal.Zero) {
		percent = leakage.Div(issued).Mul(hundred).Round(2)
	}

	return LeakageResult{
		Issued:         issued,
		Consumed:       consumed,
		Leakage:        leakage,
		LeakagePercent: percent,
		Severity:       ClassifySeverity(percent),
	}
}

// WastageResult is the expected-versus-actual reconciliation for a scope,
// all quantities in base units.
type WastageResult struct {
	Expected       decimal.Decimal `json:"expected"`
	Actual         decimal.Decimal `json:"actual"`
	Wastage        decimal.Decimal `json:"wastage"`
	WastagePercent decimal.Decimal `json:"wastage_percent"`
}

// ComputeWastage reconciles actual consumption against the projected
// expectation. Wastage is actual minus expected; callers surface only
// positive results.
func ComputeWastage(expected, actual decimal.Decimal) WastageResult {
	wastage := actual.Sub(expected)

	percent := decimal.Zero
	if expected.GreaterThan(decimal.Zero) {
		percent = wastage.Div(expected).Mul(hundred).Round(2)
	}

	return WastageResult{
		Expected:       expected,
		Actual:         actual,
		Wastage:        wastage,
		WastagePercent: percent,
	}
}
