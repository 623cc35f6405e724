package repository

import (
	"context"
	"sort"
	"strings"
	"sync"

	"cremacao_pet/internal/domain/entities"
	"cremacao_pet/internal/usecase/interfaces"
)

// StockMemoryRepository indexes stock items by case-insensitive name.

type StockMemoryRepository struct {
	mu     sync.RWMutex
	byName map[string]entities.StockItem
}

var _ interfaces.IStockRepository = (*StockMemoryRepository)(nil)

func NewStockMemoryRepository() *StockMemoryRepository {
	return &StockMemoryRepository{byName: map[string]entities.StockItem{}}
}

func stockKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func (r *StockMemoryRepository) Create(_ context.Context, s entities.StockItem) (entities.StockItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := stockKey(s.Name)
	if _, ok := r.byName[key]; ok {
		return entities.StockItem{}, errAlreadyExists
	}
	r.byName[key] = s
	return s, nil
}

func (r *StockMemoryRepository) GetByName(_ context.Context, name string) (entities.StockItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.byName[stockKey(name)], nil
}

func (r *StockMemoryRepository) List(_ context.Context) ([]entities.StockItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]entities.StockItem, 0, len(r.byName))
	for _, s := range r.byName {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *StockMemoryRepository) AddQuantity(_ context.Context, name string, delta int) (entities.StockItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := stockKey(name)
	s, ok := r.byName[key]
	if !ok {
		return entities.StockItem{}, nil
	}
	s.Quantity += delta
	r.byName[key] = s
	return s, nil
}
