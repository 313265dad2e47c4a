package domain

import "time"

// DebtBalanceResult is the engine's answer to "what is this debt worth now".
type DebtBalanceResult struct {
	Balance           float64       `json:"balance"`
	TotalInterest     float64       `json:"totalInterest"`
	TotalPrincipal    float64       `json:"totalPrincipal"`
	RepaymentsApplied int           `json:"repaymentsApplied"`
	IsPaidOff         bool          `json:"isPaidOff"`
	MonthsToPayoff    *int          `json:"monthsToPayoff"` // nil when paid off, repayment <= 0, or non-convergent
	Progress          *LoanProgress `json:"progress,omitempty"`
}

// DebtSummary extends the balance result with display-oriented figures.
type DebtSummary struct {
	DebtBalanceResult
	PercentRepaid       float64    `json:"percentRepaid"` // of the original entry balance, 0-100
	EstimatedPayoffDate *time.Time `json:"estimatedPayoffDate"`
}
