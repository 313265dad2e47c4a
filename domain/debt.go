package domain

import (
	"time"

	"github.com/google/uuid"
)

// DebtConfiguration describes a debt position as entered by the user.
// It is owned by the portfolio layer; the engine treats it as read-only.
type DebtConfiguration struct {
	EntryBalance     float64    `json:"entryBalance"`
	AnnualRate       float64    `json:"annualRate"` // APR as a percentage, e.g. 19.9
	MonthlyRepayment float64    `json:"monthlyRepayment"`
	RepaymentDay     int        `json:"repaymentDay"` // day of month, 1-31
	EnteredAt        time.Time  `json:"enteredAt"`
	TermStart        *time.Time `json:"termStart,omitempty"`
	TermEnd          *time.Time `json:"termEnd,omitempty"`
	Archived         bool       `json:"archived,omitempty"`
	PaidOff          bool       `json:"paidOff,omitempty"`
}

// HasTerm reports whether the configuration carries both loan term dates.
func (c DebtConfiguration) HasTerm() bool {
	return c.TermStart != nil && c.TermEnd != nil
}

// DebtPosition is a registered debt with a stable identity.
type DebtPosition struct {
	ID        string            `json:"id"`
	Name      string            `json:"name"`
	Config    DebtConfiguration `json:"config"`
	CreatedAt time.Time         `json:"createdAt"`
}

// NewDebtPosition mints a position with a fresh identity.
func NewDebtPosition(name string, config DebtConfiguration, now time.Time) DebtPosition {
	return DebtPosition{
		ID:        uuid.New().String(),
		Name:      name,
		Config:    config,
		CreatedAt: now,
	}
}
