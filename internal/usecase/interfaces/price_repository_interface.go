package interfaces

import (
	"context"

	"cremacao_pet/internal/domain/entities"
)

// IPriceRepository abstracts persistence for the price table.
//
// Save is conditional on expectedVersion like IRemovalRepository.Update and returns
// ErrVersionConflict on mismatch.

type IPriceRepository interface {
	Get(ctx context.Context) (entities.PriceTable, error)
	Save(ctx context.Context, t entities.PriceTable, expectedVersion int) (entities.PriceTable, error)
}
