package service

import (
	"time"

	"debt-sync/calendar"
	"debt-sync/domain"
)

// CurrentBalance answers "what is this debt worth right now" without any
// cached state: it replays every repayment due since entry from the original
// principal. The sync engine is the stateful counterpart that advances a
// cached balance instead of replaying.
func CurrentBalance(config domain.DebtConfiguration, appliedCount int, now time.Time) domain.DebtBalanceResult {
	totalDue := calendar.RepaymentsDue(config.EnteredAt, config.RepaymentDay, now)

	newRepayments := totalDue - appliedCount
	if newRepayments < 0 {
		newRepayments = 0
	}

	balance := config.EntryBalance
	paidOff := balance <= 0
	totalInterest := 0.0
	totalPrincipal := 0.0
	applied := 0

	// Reproducir toda la trayectoria desde el principal original.
	for i := 0; i < appliedCount+newRepayments; i++ {
		if paidOff {
			break
		}
		update := ApplyMonthlyUpdate(balance, config.AnnualRate, config.MonthlyRepayment)
		totalInterest += update.InterestCharged
		totalPrincipal += update.PrincipalPaid
		balance = update.NewBalance
		paidOff = update.IsPaidOff
		applied++
	}

	// Los resultados salen redondeados a centavos; el cálculo interno
	// conserva la precisión completa.
	result := domain.DebtBalanceResult{
		Balance:           roundTo2Decimals(balance),
		TotalInterest:     roundTo2Decimals(totalInterest),
		TotalPrincipal:    roundTo2Decimals(totalPrincipal),
		RepaymentsApplied: applied,
		IsPaidOff:         paidOff,
	}

	if !paidOff && config.MonthlyRepayment > 0 {
		result.MonthsToPayoff = monthsToPayoff(balance, config.AnnualRate, config.MonthlyRepayment)
	}

	if config.HasTerm() {
		progress := CalculateLoanProgress(*config.TermStart, *config.TermEnd, now)
		result.Progress = &progress
	}

	return result
}

// monthsToPayoff projects a schedule from balance and returns the month the
// debt clears, or nil when it never clears within MaxScheduleMonths.
func monthsToPayoff(balance, annualRate, monthlyRepayment float64) *int {
	for step := range ProjectSchedule(balance, annualRate, monthlyRepayment, MaxScheduleMonths) {
		if step.Balance <= 0 {
			months := step.Month
			return &months
		}
	}
	return nil
}

// Summarize wraps CurrentBalance with the display figures the portfolio
// screens need: percent of the original principal repaid and an estimated
// payoff date.
func Summarize(config domain.DebtConfiguration, appliedCount int, now time.Time) domain.DebtSummary {
	result := CurrentBalance(config, appliedCount, now)

	percentRepaid := 0.0
	if config.EntryBalance > 0 {
		percentRepaid = result.TotalPrincipal / config.EntryBalance * 100
		if percentRepaid > 100 {
			percentRepaid = 100
		}
		percentRepaid = roundTo2Decimals(percentRepaid)
	}

	var payoffDate *time.Time
	if result.MonthsToPayoff != nil {
		date := now.AddDate(0, *result.MonthsToPayoff, 0)
		payoffDate = &date
	}

	return domain.DebtSummary{
		DebtBalanceResult:   result,
		PercentRepaid:       percentRepaid,
		EstimatedPayoffDate: payoffDate,
	}
}
