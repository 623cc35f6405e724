package repository

import (
	"context"
	"sync"

	"cremacao_pet/internal/domain/entities"
	"cremacao_pet/internal/usecase/interfaces"
)

type CremationBatchMemoryRepository struct {
	mu    sync.RWMutex
	byID  map[string]entities.CremationBatch
	order []string
}

var _ interfaces.ICremationBatchRepository = (*CremationBatchMemoryRepository)(nil)

func NewCremationBatchMemoryRepository() *CremationBatchMemoryRepository {
	return &CremationBatchMemoryRepository{byID: map[string]entities.CremationBatch{}}
}

func (r *CremationBatchMemoryRepository) Create(_ context.Context, b entities.CremationBatch) (entities.CremationBatch, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[b.ID]; ok {
		return entities.CremationBatch{}, errAlreadyExists
	}
	r.byID[b.ID] = cloneBatch(b)
	r.order = append([]string{b.ID}, r.order...)
	return cloneBatch(b), nil
}

func (r *CremationBatchMemoryRepository) GetByID(_ context.Context, id string) (entities.CremationBatch, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	b, ok := r.byID[id]
	if !ok {
		return entities.CremationBatch{}, nil
	}
	return cloneBatch(b), nil
}

func (r *CremationBatchMemoryRepository) List(_ context.Context) ([]entities.CremationBatch, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]entities.CremationBatch, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, cloneBatch(r.byID[id]))
	}
	return out, nil
}

func (r *CremationBatchMemoryRepository) Update(_ context.Context, b entities.CremationBatch) (entities.CremationBatch, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[b.ID]; !ok {
		return entities.CremationBatch{}, nil
	}
	r.byID[b.ID] = cloneBatch(b)
	return cloneBatch(b), nil
}

func cloneBatch(b entities.CremationBatch) entities.CremationBatch {
	out := b
	out.Items = append([]entities.BatchItem(nil), b.Items...)
	if b.StartedAt != nil {
		t := *b.StartedAt
		out.StartedAt = &t
	}
	if b.FinishedAt != nil {
		t := *b.FinishedAt
		out.FinishedAt = &t
	}
	return out
}
