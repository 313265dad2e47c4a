package repository

import (
	"sync"

	"debt-sync/domain"
)

// PositionRepository stores the registered debt positions. It plays the
// portfolio-layer role: the sync engine never touches it, it only receives
// configurations read from it.
type PositionRepository interface {
	Save(position domain.DebtPosition) error
	Get(id string) (domain.DebtPosition, bool)
	List() []domain.DebtPosition
	Delete(id string) bool
}

// PositionRepositoryMemory is an in-memory implementation of PositionRepository.
type PositionRepositoryMemory struct {
	mu   sync.Mutex
	data map[string]domain.DebtPosition
}

// NewPositionRepositoryMemory creates a new in-memory position repository.
func NewPositionRepositoryMemory() *PositionRepositoryMemory {
	return &PositionRepositoryMemory{
		data: make(map[string]domain.DebtPosition),
	}
}

// Save stores or replaces a position.
func (r *PositionRepositoryMemory) Save(position domain.DebtPosition) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.data[position.ID] = position
	return nil
}

// Get returns the position with the given id.
func (r *PositionRepositoryMemory) Get(id string) (domain.DebtPosition, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	position, ok := r.data[id]
	return position, ok
}

// List returns all registered positions.
func (r *PositionRepositoryMemory) List() []domain.DebtPosition {
	r.mu.Lock()
	defer r.mu.Unlock()

	positions := make([]domain.DebtPosition, 0, len(r.data))
	for _, position := range r.data {
		positions = append(positions, position)
	}
	return positions
}

// Delete removes a position, reporting whether it existed.
func (r *PositionRepositoryMemory) Delete(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.data[id]
	delete(r.data, id)
	return ok
}
