package service

import (
	"context"
	"fmt"
	"time"

	"debt-sync/calendar"
	"debt-sync/domain"
	"debt-sync/repository"
)

// SyncEngine performs idempotent repayment catch-up: it compares how many
// repayments should have occurred since a position was entered against the
// persisted applied count, and advances the cached balance by exactly the
// difference. Re-running a sync on the same day computes a zero delta and
// writes nothing.
//
// Unlike CurrentBalance it never replays from the original principal; the
// cached balance is the starting point.
type SyncEngine struct {
	store repository.RepaymentLogStore
}

// NewSyncEngine creates a SyncEngine backed by the given log store.
func NewSyncEngine(store repository.RepaymentLogStore) *SyncEngine {
	return &SyncEngine{store: store}
}

// SyncOne catches up a single position. The persisted entry is written only
// when at least one new repayment applied or no entry existed yet.
func (e *SyncEngine) SyncOne(ctx context.Context, positionID string, config domain.DebtConfiguration, now time.Time) (domain.SyncResult, error) {
	logValue, err := e.store.Load(ctx)
	if err != nil {
		return domain.SyncResult{}, fmt.Errorf("load repayment log: %w", err)
	}

	entry, existed := logValue.Entries[positionID]
	entry, result := advanceEntry(positionID, config, entry, existed, now)

	if result.NewRepayments > 0 || !existed {
		logValue.Entries[positionID] = entry
		if err := e.store.Save(ctx, logValue); err != nil {
			return domain.SyncResult{}, fmt.Errorf("save repayment log: %w", err)
		}
	}

	return result, nil
}

// SyncMany catches up a whole portfolio in one pass: the log is loaded once,
// every position is advanced in memory, and the log is written back once if
// anything changed. Positions flagged archived or paid off no longer accrue
// and are skipped.
func (e *SyncEngine) SyncMany(ctx context.Context, positions []domain.DebtPosition, now time.Time) (map[string]domain.SyncResult, error) {
	logValue, err := e.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load repayment log: %w", err)
	}

	results := make(map[string]domain.SyncResult, len(positions))
	dirty := false

	for _, position := range positions {
		if position.Config.Archived || position.Config.PaidOff {
			continue
		}

		entry, existed := logValue.Entries[position.ID]
		entry, result := advanceEntry(position.ID, position.Config, entry, existed, now)
		results[position.ID] = result

		if result.NewRepayments > 0 || !existed {
			logValue.Entries[position.ID] = entry
			dirty = true
		}
	}

	if dirty {
		if err := e.store.Save(ctx, logValue); err != nil {
			return nil, fmt.Errorf("save repayment log: %w", err)
		}
	}

	return results, nil
}

// ResetCachedBalance overwrites an entry's cached balance after a manual
// correction, keeping the applied count and cumulative totals so already
// elapsed repayments are not re-applied against the corrected figure. It is
// a no-op when no entry exists; the next sync seeds from the configuration.
func (e *SyncEngine) ResetCachedBalance(ctx context.Context, positionID string, newBalance float64, now time.Time) error {
	logValue, err := e.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("load repayment log: %w", err)
	}

	entry, ok := logValue.Entries[positionID]
	if !ok {
		return nil
	}

	entry.CachedBalance = newBalance
	entry.LastSyncedAt = now
	logValue.Entries[positionID] = entry

	if err := e.store.Save(ctx, logValue); err != nil {
		return fmt.Errorf("save repayment log: %w", err)
	}
	return nil
}

// advanceEntry applies every newly due repayment to the cached balance and
// returns the updated entry alongside the sync result. Exactly
// totalDue-appliedCount updates run, even once the balance hits zero, so the
// applied count stays aligned with the calendar and later syncs stay
// zero-delta.
func advanceEntry(positionID string, config domain.DebtConfiguration, entry domain.RepaymentLogEntry, existed bool, now time.Time) (domain.RepaymentLogEntry, domain.SyncResult) {
	if !existed {
		entry = domain.RepaymentLogEntry{
			PositionID:    positionID,
			CachedBalance: config.EntryBalance,
		}
	}

	totalDue := calendar.RepaymentsDue(config.EnteredAt, config.RepaymentDay, now)
	newRepayments := totalDue - entry.AppliedCount
	if newRepayments < 0 {
		newRepayments = 0
	}

	balance := entry.CachedBalance
	cumInterest := entry.CumulativeInterest
	cumPrincipal := entry.CumulativePrincipal

	for i := 0; i < newRepayments; i++ {
		update := ApplyMonthlyUpdate(balance, config.AnnualRate, config.MonthlyRepayment)
		cumInterest += update.InterestCharged
		cumPrincipal += update.PrincipalPaid
		balance = update.NewBalance
	}

	entry.AppliedCount += newRepayments
	entry.CachedBalance = balance
	entry.CumulativeInterest = cumInterest
	entry.CumulativePrincipal = cumPrincipal
	if newRepayments > 0 || !existed {
		entry.LastSyncedAt = now
	}

	// El resultado sale redondeado a centavos; la entrada persistida
	// conserva la precisión completa.
	result := domain.SyncResult{
		PositionID:          positionID,
		Balance:             roundTo2Decimals(balance),
		NewRepayments:       newRepayments,
		TotalApplied:        entry.AppliedCount,
		CumulativeInterest:  roundTo2Decimals(cumInterest),
		CumulativePrincipal: roundTo2Decimals(cumPrincipal),
		IsPaidOff:           balance <= 0,
	}
	return entry, result
}
