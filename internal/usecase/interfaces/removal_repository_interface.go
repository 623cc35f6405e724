package interfaces

import (
	"context"
	"errors"

	"cremacao_pet/internal/domain/entities"
)

var (
	// ErrVersionConflict is returned by repositories when a conditional write finds a newer version.
	ErrVersionConflict = errors.New("record was modified by another request")
	// ErrCodeTaken is returned when a business code already belongs to another removal.
	ErrCodeTaken = errors.New("removal code already in use")
	// ErrAlreadyExists is returned by Create when the key is already stored.
	ErrAlreadyExists = errors.New("record already exists")
)

// RemovalFilter narrows List results. Zero fields match everything.
type RemovalFilter struct {
	Status      entities.RemovalStatus
	CreatedByID string
	// ScheduledDeliveryDate matches removals with this delivery date (YYYY-MM-DD).
	ScheduledDeliveryDate string
}

// RemovalUpdate is one member of an UpdateMany call.
type RemovalUpdate struct {
	Removal         entities.Removal
	ExpectedVersion int
}

// IRemovalRepository abstracts persistence for Removal.
//
// The removal store must be able to:
//   - create a removal (Version 1)
//   - replace a removal only when the stored version equals expectedVersion, bumping it by one
//   - replace a group of removals atomically: every member is written or none is
//   - look removals up by id, by business code and by status
//
// UpdateMany returns a nil slice when any member is missing.
// Lookups return a zero-value Removal (empty ID) when nothing matches.

type IRemovalRepository interface {
	Create(ctx context.Context, r entities.Removal) (entities.Removal, error)
	GetByID(ctx context.Context, id string) (entities.Removal, error)
	GetByCode(ctx context.Context, code string) (entities.Removal, error)
	List(ctx context.Context, filter RemovalFilter) ([]entities.Removal, error)
	Update(ctx context.Context, r entities.Removal, expectedVersion int) (entities.Removal, error)
	UpdateMany(ctx context.Context, updates []RemovalUpdate) ([]entities.Removal, error)
}
