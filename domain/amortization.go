package domain

// MonthlyUpdateResult is the outcome of accruing one month of interest and
// applying one scheduled repayment.
type MonthlyUpdateResult struct {
	NewBalance      float64 `json:"newBalance"`
	InterestCharged float64 `json:"interestCharged"`
	PrincipalPaid   float64 `json:"principalPaid"`
	IsPaidOff       bool    `json:"isPaidOff"`
}

// RepaymentStep is one month of a projected amortization schedule,
// with running totals since the start of the projection.
type RepaymentStep struct {
	Month               int     `json:"month"` // 1-based
	Balance             float64 `json:"balance"`
	Interest            float64 `json:"interest"`
	Principal           float64 `json:"principal"`
	CumulativeInterest  float64 `json:"cumulativeInterest"`
	CumulativePrincipal float64 `json:"cumulativePrincipal"`
}

// LoanProgress describes how far through its term a dated loan is.
type LoanProgress struct {
	TotalMonths     int     `json:"totalMonths"`
	MonthsElapsed   int     `json:"monthsElapsed"`
	MonthsRemaining int     `json:"monthsRemaining"`
	PercentComplete float64 `json:"percentComplete"` // 0-100
	IsTermComplete  bool    `json:"isTermComplete"`
}
