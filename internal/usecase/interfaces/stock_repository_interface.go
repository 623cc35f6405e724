package interfaces

import (
	"context"

	"cremacao_pet/internal/domain/entities"
)

// IStockRepository abstracts persistence for StockItem.
//
// AddQuantity applies a signed delta atomically and returns the resulting item; it never clamps
// at zero. It returns a zero-value item when the name is unknown.

type IStockRepository interface {
	Create(ctx context.Context, s entities.StockItem) (entities.StockItem, error)
	GetByName(ctx context.Context, name string) (entities.StockItem, error)
	List(ctx context.Context) ([]entities.StockItem, error)
	AddQuantity(ctx context.Context, name string, delta int) (entities.StockItem, error)
}
