package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"debt-sync/domain"
)

// RepaymentLogStore is the persistence boundary for repayment
// synchronization state. Implementations only fail on I/O; a corrupt or
// missing stored log degrades to an empty one so callers never see a decode
// error.
type RepaymentLogStore interface {
	Load(ctx context.Context) (domain.RepaymentLog, error)
	Save(ctx context.Context, log domain.RepaymentLog) error
	Entry(ctx context.Context, positionID string) (domain.RepaymentLogEntry, bool, error)
	Remove(ctx context.Context, positionID string) error
	Prune(ctx context.Context, activeIDs map[string]struct{}) error
	Clear(ctx context.Context) error
}

// decodeRepaymentLog parses a persisted log and validates its shape. Callers
// treat any returned error as "stored state is unusable" and fall back to an
// empty log.
func decodeRepaymentLog(data []byte) (domain.RepaymentLog, error) {
	var log domain.RepaymentLog
	if err := json.Unmarshal(data, &log); err != nil {
		return domain.RepaymentLog{}, fmt.Errorf("parse repayment log: %w", err)
	}

	if log.Entries == nil {
		log.Entries = make(map[string]domain.RepaymentLogEntry)
	}
	for id, entry := range log.Entries {
		if id == "" || entry.PositionID != id {
			return domain.RepaymentLog{}, fmt.Errorf("repayment log entry keyed %q carries position id %q", id, entry.PositionID)
		}
		if entry.AppliedCount < 0 {
			return domain.RepaymentLog{}, fmt.Errorf("repayment log entry %q has negative applied count", id)
		}
	}

	return log, nil
}

// encodeRepaymentLog stamps the aggregate write time and serializes the log.
func encodeRepaymentLog(log domain.RepaymentLog, now time.Time) ([]byte, error) {
	log.UpdatedAt = now
	data, err := json.Marshal(log)
	if err != nil {
		return nil, fmt.Errorf("encode repayment log: %w", err)
	}
	return data, nil
}
