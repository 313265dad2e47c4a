package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func TestCalculateLoanProgress_MidTerm(t *testing.T) {
	progress := CalculateLoanProgress(
		date(2022, time.January, 15),
		date(2027, time.January, 15),
		date(2024, time.July, 15),
	)

	assert.Equal(t, 60, progress.TotalMonths)
	assert.Equal(t, 30, progress.MonthsElapsed)
	assert.Equal(t, 30, progress.MonthsRemaining)
	assert.Equal(t, 50.0, progress.PercentComplete)
	assert.False(t, progress.IsTermComplete)
}

func TestCalculateLoanProgress_BeforeStart(t *testing.T) {
	progress := CalculateLoanProgress(
		date(2025, time.January, 1),
		date(2026, time.January, 1),
		date(2024, time.June, 1),
	)

	assert.Equal(t, 12, progress.TotalMonths)
	assert.Equal(t, 0, progress.MonthsElapsed)
	assert.Equal(t, 12, progress.MonthsRemaining)
	assert.Equal(t, 0.0, progress.PercentComplete)
	assert.False(t, progress.IsTermComplete)
}

func TestCalculateLoanProgress_PastEndClamps(t *testing.T) {
	progress := CalculateLoanProgress(
		date(2020, time.January, 1),
		date(2021, time.January, 1),
		date(2024, time.June, 1),
	)

	assert.Equal(t, 12, progress.TotalMonths)
	assert.Equal(t, 53, progress.MonthsElapsed)
	assert.Equal(t, 0, progress.MonthsRemaining)
	assert.Equal(t, 100.0, progress.PercentComplete)
	assert.True(t, progress.IsTermComplete)
}

func TestCalculateLoanProgress_ZeroLengthTerm(t *testing.T) {
	day := date(2024, time.March, 1)
	progress := CalculateLoanProgress(day, day, day)

	assert.Equal(t, 0, progress.TotalMonths)
	assert.Equal(t, 0.0, progress.PercentComplete)
	assert.True(t, progress.IsTermComplete)
}
