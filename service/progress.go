package service

import (
	"time"

	"debt-sync/calendar"
	"debt-sync/domain"
)

// CalculateLoanProgress derives elapsed/remaining months and percent complete
// for a loan with known start and end dates. A zero-length term reports 0%
// complete rather than dividing by zero.
func CalculateLoanProgress(start, end, now time.Time) domain.LoanProgress {
	total := calendar.MonthsBetween(start, end)
	elapsed := calendar.MonthsBetween(start, now)

	remaining := total - elapsed
	if remaining < 0 {
		remaining = 0
	}

	percent := 0.0
	if total > 0 {
		percent = float64(elapsed) / float64(total) * 100
		if percent > 100 {
			percent = 100
		}
	}

	return domain.LoanProgress{
		TotalMonths:     total,
		MonthsElapsed:   elapsed,
		MonthsRemaining: remaining,
		PercentComplete: percent,
		IsTermComplete:  elapsed >= total,
	}
}
