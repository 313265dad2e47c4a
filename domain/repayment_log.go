package domain

import "time"

// RepaymentLogEntry is the persisted synchronization state of one debt
// position. It is owned exclusively by the repayment log store; the rest of
// the system reads it and asks the sync engine to change it.
type RepaymentLogEntry struct {
	PositionID          string    `json:"positionId"`
	AppliedCount        int       `json:"appliedCount"`
	CachedBalance       float64   `json:"cachedBalance"`
	CumulativeInterest  float64   `json:"cumulativeInterest"`
	CumulativePrincipal float64   `json:"cumulativePrincipal"`
	LastSyncedAt        time.Time `json:"lastSyncedAt"`
}

// RepaymentLog is the persisted aggregate of all entries, unique by
// position id, plus the last time the aggregate was written.
type RepaymentLog struct {
	Entries   map[string]RepaymentLogEntry `json:"entries"`
	UpdatedAt time.Time                    `json:"updatedAt"`
}

// NewRepaymentLog returns an empty log stamped at now.
func NewRepaymentLog(now time.Time) RepaymentLog {
	return RepaymentLog{
		Entries:   make(map[string]RepaymentLogEntry),
		UpdatedAt: now,
	}
}

// SyncResult reports what one sync call did to one position.
type SyncResult struct {
	PositionID          string  `json:"positionId"`
	Balance             float64 `json:"balance"`
	NewRepayments       int     `json:"newRepayments"`
	TotalApplied        int     `json:"totalApplied"`
	CumulativeInterest  float64 `json:"cumulativeInterest"`
	CumulativePrincipal float64 `json:"cumulativePrincipal"`
	IsPaidOff           bool    `json:"isPaidOff"`
}
