package repository

import (
	"context"
	"sync"
	"time"

	"debt-sync/domain"
)

// RepaymentLogStoreMemory is an in-memory RepaymentLogStore, used in tests
// and when no Redis address is configured.
type RepaymentLogStoreMemory struct {
	mu  sync.Mutex
	log domain.RepaymentLog
}

// NewRepaymentLogStoreMemory creates an empty in-memory store.
func NewRepaymentLogStoreMemory() *RepaymentLogStoreMemory {
	return &RepaymentLogStoreMemory{
		log: domain.NewRepaymentLog(time.Now().UTC()),
	}
}

// Load returns a copy of the stored log so callers can mutate it freely.
func (s *RepaymentLogStoreMemory) Load(ctx context.Context) (domain.RepaymentLog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyLog(s.log), nil
}

// Save replaces the stored log, stamping the aggregate write time.
func (s *RepaymentLogStoreMemory) Save(ctx context.Context, log domain.RepaymentLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	log.UpdatedAt = time.Now().UTC()
	s.log = copyLog(log)
	return nil
}

// Entry looks up one position's entry without any computation.
func (s *RepaymentLogStoreMemory) Entry(ctx context.Context, positionID string) (domain.RepaymentLogEntry, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.log.Entries[positionID]
	return entry, ok, nil
}

// Remove deletes one position's entry.
func (s *RepaymentLogStoreMemory) Remove(ctx context.Context, positionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.log.Entries, positionID)
	s.log.UpdatedAt = time.Now().UTC()
	return nil
}

// Prune deletes every entry whose position is no longer in the active set.
func (s *RepaymentLogStoreMemory) Prune(ctx context.Context, activeIDs map[string]struct{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	changed := false
	for id := range s.log.Entries {
		if _, ok := activeIDs[id]; !ok {
			delete(s.log.Entries, id)
			changed = true
		}
	}
	if changed {
		s.log.UpdatedAt = time.Now().UTC()
	}
	return nil
}

// Clear deletes the entire log.
func (s *RepaymentLogStoreMemory) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.log = domain.NewRepaymentLog(time.Now().UTC())
	return nil
}

func copyLog(log domain.RepaymentLog) domain.RepaymentLog {
	entries := make(map[string]domain.RepaymentLogEntry, len(log.Entries))
	for id, entry := range log.Entries {
		entries[id] = entry
	}
	return domain.RepaymentLog{Entries: entries, UpdatedAt: log.UpdatedAt}
}
