package repository

import (
	"context"
	"sync"

	"cremacao_pet/internal/domain/entities"
	"cremacao_pet/internal/usecase/interfaces"
)

// RemovalMemoryRepository keeps removals in process memory, newest first.
//
// Writes are conditional on the stored version, matching the DynamoDB repository.

type RemovalMemoryRepository struct {
	mu    sync.RWMutex
	byID  map[string]entities.Removal
	order []string
}

var _ interfaces.IRemovalRepository = (*RemovalMemoryRepository)(nil)

func NewRemovalMemoryRepository() *RemovalMemoryRepository {
	return &RemovalMemoryRepository{byID: map[string]entities.Removal{}}
}

func (r *RemovalMemoryRepository) Create(_ context.Context, rem entities.Removal) (entities.Removal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[rem.ID]; ok {
		return entities.Removal{}, errAlreadyExists
	}
	if rem.Code != "" && r.codeOwnerLocked(rem.Code) != "" {
		return entities.Removal{}, interfaces.ErrCodeTaken
	}
	r.byID[rem.ID] = rem.Clone()
	r.order = append([]string{rem.ID}, r.order...)
	return rem.Clone(), nil
}

func (r *RemovalMemoryRepository) GetByID(_ context.Context, id string) (entities.Removal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rem, ok := r.byID[id]
	if !ok {
		return entities.Removal{}, nil
	}
	return rem.Clone(), nil
}

func (r *RemovalMemoryRepository) GetByCode(_ context.Context, code string) (entities.Removal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id := r.codeOwnerLocked(code)
	if id == "" {
		return entities.Removal{}, nil
	}
	return r.byID[id].Clone(), nil
}

func (r *RemovalMemoryRepository) List(_ context.Context, filter interfaces.RemovalFilter) ([]entities.Removal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]entities.Removal, 0, len(r.order))
	for _, id := range r.order {
		rem := r.byID[id]
		if matchesFilter(rem, filter) {
			out = append(out, rem.Clone())
		}
	}
	return out, nil
}

func (r *RemovalMemoryRepository) Update(_ context.Context, rem entities.Removal, expectedVersion int) (entities.Removal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.byID[rem.ID]
	if !ok {
		return entities.Removal{}, nil
	}
	if current.Version != expectedVersion {
		return entities.Removal{}, interfaces.ErrVersionConflict
	}
	if rem.Code != "" {
		if owner := r.codeOwnerLocked(rem.Code); owner != "" && owner != rem.ID {
			return entities.Removal{}, interfaces.ErrCodeTaken
		}
	}
	rem.Version = expectedVersion + 1
	r.byID[rem.ID] = rem.Clone()
	return rem.Clone(), nil
}

// UpdateMany checks every member before writing any of them.
func (r *RemovalMemoryRepository) UpdateMany(_ context.Context, updates []interfaces.RemovalUpdate) ([]entities.Removal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range updates {
		current, ok := r.byID[u.Removal.ID]
		if !ok {
			return nil, nil
		}
		if current.Version != u.ExpectedVersion {
			return nil, interfaces.ErrVersionConflict
		}
		if owner := r.codeOwnerLocked(u.Removal.Code); owner != "" && owner != u.Removal.ID {
			return nil, interfaces.ErrCodeTaken
		}
	}

	out := make([]entities.Removal, 0, len(updates))
	for _, u := range updates {
		rem := u.Removal.Clone()
		rem.Version = u.ExpectedVersion + 1
		r.byID[rem.ID] = rem
		out = append(out, rem.Clone())
	}
	return out, nil
}

func (r *RemovalMemoryRepository) codeOwnerLocked(code string) string {
	if code == "" {
		return ""
	}
	for id, rem := range r.byID {
		if rem.Code == code {
			return id
		}
	}
	return ""
}

func matchesFilter(rem entities.Removal, f interfaces.RemovalFilter) bool {
	if f.Status != "" && rem.Status != f.Status {
		return false
	}
	if f.CreatedByID != "" && rem.CreatedByID != f.CreatedByID {
		return false
	}
	if f.ScheduledDeliveryDate != "" && rem.ScheduledDeliveryDate != f.ScheduledDeliveryDate {
		return false
	}
	return true
}
