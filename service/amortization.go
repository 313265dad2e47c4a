package service

import (
	"iter"
	"math"

	"debt-sync/domain"
)

// roundTo2Decimals redondea un float64 a 2 decimales
func roundTo2Decimals(value float64) float64 {
	return math.Round(value*100) / 100
}

// AmortizedPayment returns the fixed monthly payment that repays principal
// over termMonths at the given annual rate (APR percent):
//
//	M = P * r * (1+r)^n / ((1+r)^n - 1), r = rate/12/100
//
// A non-positive rate falls back to an even split. Non-positive principal or
// term yields 0; validation belongs to the caller.
func AmortizedPayment(principal, annualRate float64, termMonths int) float64 {
	if principal <= 0 || termMonths <= 0 {
		return 0
	}
	if annualRate <= 0 {
		return principal / float64(termMonths)
	}

	monthlyRate := (annualRate / 100) / 12
	n := float64(termMonths)

	factor := math.Pow(1+monthlyRate, n)
	return principal * monthlyRate * factor / (factor - 1)
}

// ApplyMonthlyUpdate accrues one month of interest on balance and applies one
// scheduled repayment. The balance is cleared to exactly 0 when the repayment
// covers it, and a new balance within BalanceTolerance of zero is treated as
// fully repaid. A repayment below the month's interest floors the principal
// portion at 0 and lets the balance grow.
func ApplyMonthlyUpdate(balance, annualRate, monthlyRepayment float64) domain.MonthlyUpdateResult {
	if balance <= 0 {
		// Ya está pagada: no hay nada que acumular.
		return domain.MonthlyUpdateResult{IsPaidOff: true}
	}

	monthlyRate := 0.0
	if annualRate > 0 {
		monthlyRate = (annualRate / 100) / 12
	}

	interest := balance * monthlyRate
	owed := balance + interest

	if monthlyRepayment >= owed {
		// Pago final: cubre todo el saldo más el interés del mes.
		return domain.MonthlyUpdateResult{
			NewBalance:      0,
			InterestCharged: interest,
			PrincipalPaid:   balance,
			IsPaidOff:       true,
		}
	}

	principal := monthlyRepayment - interest
	if principal < 0 {
		principal = 0
	}

	newBalance := owed - monthlyRepayment
	if newBalance <= BalanceTolerance {
		return domain.MonthlyUpdateResult{
			NewBalance:      0,
			InterestCharged: interest,
			PrincipalPaid:   balance,
			IsPaidOff:       true,
		}
	}

	return domain.MonthlyUpdateResult{
		NewBalance:      newBalance,
		InterestCharged: interest,
		PrincipalPaid:   principal,
	}
}

// ProjectSchedule applies monthly updates to balance until it is repaid or
// maxMonths is reached, whichever comes first. A maxMonths <= 0 uses
// MaxScheduleMonths. The returned sequence is finite and single-use.
//
// When the repayment never covers the accruing interest the sequence runs to
// the cap without the balance reaching zero; callers read that as "never
// clears under current terms" rather than an error.
func ProjectSchedule(balance, annualRate, monthlyRepayment float64, maxMonths int) iter.Seq[domain.RepaymentStep] {
	if maxMonths <= 0 {
		maxMonths = MaxScheduleMonths
	}

	return func(yield func(domain.RepaymentStep) bool) {
		remaining := balance
		cumInterest := 0.0
		cumPrincipal := 0.0

		for month := 1; month <= maxMonths; month++ {
			if remaining <= 0 {
				return
			}

			update := ApplyMonthlyUpdate(remaining, annualRate, monthlyRepayment)
			cumInterest += update.InterestCharged
			cumPrincipal += update.PrincipalPaid
			remaining = update.NewBalance

			step := domain.RepaymentStep{
				Month:               month,
				Balance:             update.NewBalance,
				Interest:            update.InterestCharged,
				Principal:           update.PrincipalPaid,
				CumulativeInterest:  cumInterest,
				CumulativePrincipal: cumPrincipal,
			}
			if !yield(step) {
				return
			}
			if update.IsPaidOff {
				return
			}
		}
	}
}
