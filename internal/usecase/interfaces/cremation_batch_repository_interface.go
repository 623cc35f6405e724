package interfaces

import (
	"context"

	"cremacao_pet/internal/domain/entities"
)

// ICremationBatchRepository abstracts persistence for CremationBatch.
// GetByID returns a zero-value batch when the id is unknown.

type ICremationBatchRepository interface {
	Create(ctx context.Context, b entities.CremationBatch) (entities.CremationBatch, error)
	GetByID(ctx context.Context, id string) (entities.CremationBatch, error)
	List(ctx context.Context) ([]entities.CremationBatch, error)
	Update(ctx context.Context, b entities.CremationBatch) (entities.CremationBatch, error)
}
