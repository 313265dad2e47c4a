// Package calendar holds the date arithmetic behind repayment scheduling:
// whole-month spans, per-month day counts, and counting how many monthly
// repayment events have elapsed between two dates.
//
// All functions are pure and total: any pair of valid times yields a
// defined result, and repeated calls with the same arguments yield the
// same answer.
package calendar

import "time"

// MonthsBetween returns the whole-calendar-month difference from `from` to
// `to`, floored at 0. Days of month are ignored; only year and month count.
func MonthsBetween(from, to time.Time) int {
	months := (to.Year()-from.Year())*12 + int(to.Month()) - int(from.Month())
	if months < 0 {
		return 0
	}
	return months
}

// DaysInMonth returns the number of calendar days in the given month,
// accounting for leap years. Day 0 of the following month normalizes to the
// last day of this one.
func DaysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// ClampDay fits a requested repayment day into the given month, so that
// day 31 in February resolves to the 28th or 29th.
func ClampDay(year int, month time.Month, day int) int {
	if day < 1 {
		return 1
	}
	if last := DaysInMonth(year, month); day > last {
		return last
	}
	return day
}

// RepaymentsDue counts how many monthly repayment events have fully elapsed
// between the entry date and now, for a repayment scheduled on the given day
// of each month (clamped per month).
//
// The first event falls in the entry month itself when the entry date is on
// or before that month's clamped repayment day; an entry exactly on the
// repayment day counts as due that same day. Otherwise the first event is
// the following month. The current month counts only once its repayment day
// has been reached.
func RepaymentsDue(entry time.Time, repaymentDay int, now time.Time) int {
	if now.Before(entry) {
		return 0
	}

	year, month := entry.Year(), entry.Month()
	if entry.Day() > ClampDay(year, month, repaymentDay) {
		year, month = nextMonth(year, month)
	}

	count := 0
	for {
		if year > now.Year() || (year == now.Year() && month > now.Month()) {
			return count
		}
		if year == now.Year() && month == now.Month() {
			if now.Day() >= ClampDay(year, month, repaymentDay) {
				count++
			}
			return count
		}
		count++
		year, month = nextMonth(year, month)
	}
}

func nextMonth(year int, month time.Month) (int, time.Month) {
	if month == time.December {
		return year + 1, time.January
	}
	return year, month + 1
}
