package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"debt-sync/domain"
)

func TestAmortizedPayment_WithInterest(t *testing.T) {
	payment := AmortizedPayment(10000, 5.5, 60)
	assert.InDelta(t, 190.99, payment, 0.05)
}

func TestAmortizedPayment_ZeroInterestIsExactSplit(t *testing.T) {
	assert.Equal(t, 100.0, AmortizedPayment(1200, 0, 12))
	assert.Equal(t, 10000.0/60.0, AmortizedPayment(10000, 0, 60))
	assert.Equal(t, 10000.0/60.0, AmortizedPayment(10000, -1, 60))
}

func TestAmortizedPayment_DegenerateInputs(t *testing.T) {
	assert.Equal(t, 0.0, AmortizedPayment(0, 5, 12))
	assert.Equal(t, 0.0, AmortizedPayment(-100, 5, 12))
	assert.Equal(t, 0.0, AmortizedPayment(1000, 5, 0))
	assert.Equal(t, 0.0, AmortizedPayment(1000, 5, -3))
}

func TestApplyMonthlyUpdate_RegularMonth(t *testing.T) {
	update := ApplyMonthlyUpdate(5000, 19.9, 200)

	assert.InDelta(t, 82.92, update.InterestCharged, 0.01)
	assert.InDelta(t, 117.08, update.PrincipalPaid, 0.01)
	assert.InDelta(t, 4882.92, update.NewBalance, 0.01)
	assert.False(t, update.IsPaidOff)
}

func TestApplyMonthlyUpdate_FinalPaymentClearsBalance(t *testing.T) {
	update := ApplyMonthlyUpdate(150, 0, 200)

	assert.Equal(t, 0.0, update.NewBalance)
	assert.Equal(t, 150.0, update.PrincipalPaid)
	assert.Equal(t, 0.0, update.InterestCharged)
	assert.True(t, update.IsPaidOff)
}

func TestApplyMonthlyUpdate_AlreadyPaidOff(t *testing.T) {
	update := ApplyMonthlyUpdate(0, 19.9, 200)

	assert.True(t, update.IsPaidOff)
	assert.Equal(t, 0.0, update.NewBalance)
	assert.Equal(t, 0.0, update.InterestCharged)
	assert.Equal(t, 0.0, update.PrincipalPaid)
}

func TestApplyMonthlyUpdate_RepaymentBelowInterest(t *testing.T) {
	// 2% per month on 1000 accrues 20; a 10 repayment grows the debt.
	update := ApplyMonthlyUpdate(1000, 24, 10)

	assert.InDelta(t, 20.0, update.InterestCharged, 0.001)
	assert.Equal(t, 0.0, update.PrincipalPaid)
	assert.InDelta(t, 1010.0, update.NewBalance, 0.001)
	assert.False(t, update.IsPaidOff)
}

func TestApplyMonthlyUpdate_SubCentResidueCountsAsPaidOff(t *testing.T) {
	update := ApplyMonthlyUpdate(200.005, 0, 200)

	assert.True(t, update.IsPaidOff)
	assert.Equal(t, 0.0, update.NewBalance)
	assert.InDelta(t, 200.005, update.PrincipalPaid, 0.0001)
}

func TestProjectSchedule_ReachesPayoff(t *testing.T) {
	var steps []domain.RepaymentStep
	for step := range ProjectSchedule(1000, 12, 100, 0) {
		steps = append(steps, step)
	}

	require.NotEmpty(t, steps)
	last := steps[len(steps)-1]
	assert.Equal(t, 0.0, last.Balance)
	assert.Equal(t, len(steps), last.Month)
	assert.InDelta(t, 1000.0, last.CumulativePrincipal, 0.0001)

	for _, step := range steps {
		assert.GreaterOrEqual(t, step.Balance, 0.0)
	}
}

func TestProjectSchedule_RunningTotalsAccumulate(t *testing.T) {
	var previous domain.RepaymentStep
	for step := range ProjectSchedule(5000, 19.9, 200, 0) {
		assert.GreaterOrEqual(t, step.CumulativeInterest, previous.CumulativeInterest)
		assert.Greater(t, step.CumulativePrincipal, previous.CumulativePrincipal)
		previous = step
	}
	assert.True(t, previous.Balance == 0)
}

func TestProjectSchedule_NonConvergentDebtStopsAtCap(t *testing.T) {
	count := 0
	var last domain.RepaymentStep
	for step := range ProjectSchedule(1000, 120, 50, 24) {
		count++
		last = step
	}

	assert.Equal(t, 24, count)
	assert.Greater(t, last.Balance, 1000.0) // never clears, keeps growing
}

func TestProjectSchedule_EarlyBreakStopsSequence(t *testing.T) {
	count := 0
	for range ProjectSchedule(5000, 19.9, 200, 0) {
		count++
		if count == 3 {
			break
		}
	}
	assert.Equal(t, 3, count)
}
