package repository

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"debt-sync/domain"
)

// repaymentLogKey namespaces the engine's state away from the portfolio's
// own storage keys.
const repaymentLogKey = "debtsync:repayment_log"

// RepaymentLogStoreRedis persists the whole repayment log as a single JSON
// value under one namespaced key. Reads of a missing or corrupt value
// degrade to an empty log; only Redis I/O errors propagate.
type RepaymentLogStoreRedis struct {
	client *redis.Client
}

// NewRepaymentLogStoreRedis connects a store to the given Redis address.
func NewRepaymentLogStoreRedis(addr string) *RepaymentLogStoreRedis {
	rdb := redis.NewClient(&redis.Options{
		Addr: addr,
	})
	return &RepaymentLogStoreRedis{client: rdb}
}

// Load fetches the persisted log. A missing key or an undecodable value
// yields an empty log stamped at now, never an error.
func (s *RepaymentLogStoreRedis) Load(ctx context.Context) (domain.RepaymentLog, error) {
	data, err := s.client.Get(ctx, repaymentLogKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.NewRepaymentLog(time.Now().UTC()), nil
	}
	if err != nil {
		return domain.RepaymentLog{}, err
	}

	logValue, err := decodeRepaymentLog(data)
	if err != nil {
		// Estado corrupto: se descarta como si nunca se hubiera sincronizado.
		log.Printf("Warning: discarding stored repayment log: %v", err)
		return domain.NewRepaymentLog(time.Now().UTC()), nil
	}
	return logValue, nil
}

// Save persists the log, stamping the aggregate write time.
func (s *RepaymentLogStoreRedis) Save(ctx context.Context, logValue domain.RepaymentLog) error {
	data, err := encodeRepaymentLog(logValue, time.Now().UTC())
	if err != nil {
		return err
	}
	return s.client.Set(ctx, repaymentLogKey, data, 0).Err()
}

// Entry looks up one position's entry.
func (s *RepaymentLogStoreRedis) Entry(ctx context.Context, positionID string) (domain.RepaymentLogEntry, bool, error) {
	logValue, err := s.Load(ctx)
	if err != nil {
		return domain.RepaymentLogEntry{}, false, err
	}
	entry, ok := logValue.Entries[positionID]
	return entry, ok, nil
}

// Remove deletes one position's entry.
func (s *RepaymentLogStoreRedis) Remove(ctx context.Context, positionID string) error {
	logValue, err := s.Load(ctx)
	if err != nil {
		return err
	}
	if _, ok := logValue.Entries[positionID]; !ok {
		return nil
	}
	delete(logValue.Entries, positionID)
	return s.Save(ctx, logValue)
}

// Prune deletes every entry whose position is no longer in the active set.
func (s *RepaymentLogStoreRedis) Prune(ctx context.Context, activeIDs map[string]struct{}) error {
	logValue, err := s.Load(ctx)
	if err != nil {
		return err
	}

	changed := false
	for id := range logValue.Entries {
		if _, ok := activeIDs[id]; !ok {
			delete(logValue.Entries, id)
			changed = true
		}
	}
	if !changed {
		return nil
	}
	return s.Save(ctx, logValue)
}

// Clear deletes the entire log.
func (s *RepaymentLogStoreRedis) Clear(ctx context.Context) error {
	return s.client.Del(ctx, repaymentLogKey).Err()
}
