package repository

import (
	"context"
	"sync"
	"time"

	"cremacao_pet/internal/domain/entities"
	"cremacao_pet/internal/usecase/interfaces"
)

type PriceMemoryRepository struct {
	mu    sync.RWMutex
	table entities.PriceTable
}

var _ interfaces.IPriceRepository = (*PriceMemoryRepository)(nil)

// NewPriceMemoryRepository seeds the repository with initial; a zero table starts empty with
// every modality active.
func NewPriceMemoryRepository(initial entities.PriceTable) *PriceMemoryRepository {
	if initial.Prices == nil {
		initial = entities.NewPriceTable()
	}
	if initial.Version == 0 {
		initial.Version = 1
	}
	return &PriceMemoryRepository{table: initial.Clone()}
}

func (r *PriceMemoryRepository) Get(_ context.Context) (entities.PriceTable, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.table.Clone(), nil
}

func (r *PriceMemoryRepository) Save(_ context.Context, t entities.PriceTable, expectedVersion int) (entities.PriceTable, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.table.Version != expectedVersion {
		return entities.PriceTable{}, interfaces.ErrVersionConflict
	}
	t = t.Clone()
	t.Version = expectedVersion + 1
	t.UpdatedAt = time.Now().UTC()
	r.table = t
	return t.Clone(), nil
}
