package service

const (
	MaxDebtAmount   = 100_000_000.0 // 100 millones
	MaxInterestRate = 1000.0        // 1000% anual

	// MaxScheduleMonths caps projected schedules at 50 años, so a repayment
	// that never covers the accruing interest still terminates.
	MaxScheduleMonths = 600

	MinRepaymentDay = 1
	MaxRepaymentDay = 31

	// BalanceTolerance treats sub-cent rounding residue as fully repaid.
	// Do not change its value without product confirmation.
	BalanceTolerance = 0.01
)
