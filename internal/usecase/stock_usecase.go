package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"cremacao_pet/internal/domain/entities"
	"cremacao_pet/internal/usecase/interfaces"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// StockWarning reports an item that ended at or under its alert level, or that is unknown.
type StockWarning struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
	Message  string `json:"message"`
}

// IStockUseCase exposes the inventory consulted by bag assembly and custom additionals.
//
// DeductItems is best-effort: it never fails the caller's operation and never clamps at zero.

type IStockUseCase interface {
	Create(ctx context.Context, actor entities.Actor, item entities.StockItem) (entities.StockItem, error)
	List(ctx context.Context) ([]entities.StockItem, error)
	Restock(ctx context.Context, actor entities.Actor, name string, quantity int) (entities.StockItem, error)
	DeductItems(ctx context.Context, items []entities.StockDeduction) []StockWarning
}

type StockUseCase struct {
	repo     interfaces.IStockRepository
	notifier interfaces.INotifier
	metrics  interfaces.IMetrics
	logger   *zap.Logger
	now      func() time.Time
}

var _ IStockUseCase = (*StockUseCase)(nil)

func NewStockUseCase(repo interfaces.IStockRepository, notifier interfaces.INotifier, metrics interfaces.IMetrics, logger *zap.Logger) *StockUseCase {
	if metrics == nil {
		metrics = noopMetrics{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StockUseCase{
		repo:     repo,
		notifier: notifier,
		metrics:  metrics,
		logger:   logger.Named("stock"),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

var stockAdminRoles = []entities.Role{entities.RoleAdmin, entities.RoleFinanceiroMaster, entities.RoleOperacional}

func (u *StockUseCase) Create(ctx context.Context, actor entities.Actor, item entities.StockItem) (entities.StockItem, error) {
	if !roleIn(actor.Role, stockAdminRoles) {
		return entities.StockItem{}, reject("create_stock_item", ErrForbiddenRole, "role %q", actor.Role)
	}
	item.Name = strings.TrimSpace(item.Name)
	if item.Name == "" {
		return entities.StockItem{}, reject("create_stock_item", ErrValidation, "name is required")
	}
	if item.MinAlertQuantity < 0 || item.UnitPrice.IsNegative() {
		return entities.StockItem{}, reject("create_stock_item", ErrValidation, "alert quantity and unit price must not be negative")
	}
	item.ID = uuid.NewString()

	created, err := u.repo.Create(ctx, item)
	if err != nil {
		if errors.Is(err, interfaces.ErrAlreadyExists) {
			return entities.StockItem{}, ErrStockItemExists
		}
		return entities.StockItem{}, err
	}
	u.metrics.StockLevel(created.Name, created.Quantity)
	return created, nil
}

func (u *StockUseCase) List(ctx context.Context) ([]entities.StockItem, error) {
	return u.repo.List(ctx)
}

func (u *StockUseCase) Restock(ctx context.Context, actor entities.Actor, name string, quantity int) (entities.StockItem, error) {
	if !roleIn(actor.Role, stockAdminRoles) {
		return entities.StockItem{}, reject("restock", ErrForbiddenRole, "role %q", actor.Role)
	}
	if quantity <= 0 {
		return entities.StockItem{}, reject("restock", ErrValidation, "quantity must be positive")
	}
	item, err := u.repo.AddQuantity(ctx, strings.TrimSpace(name), quantity)
	if err != nil {
		return entities.StockItem{}, err
	}
	if item.ID == "" {
		return entities.StockItem{}, ErrStockItemNotFound
	}
	u.metrics.StockLevel(item.Name, item.Quantity)
	u.logger.Info("stock replenished", zap.String("item", item.Name), zap.Int("added", quantity), zap.Int("quantity", item.Quantity))
	return item, nil
}

func (u *StockUseCase) DeductItems(ctx context.Context, items []entities.StockDeduction) []StockWarning {
	var warnings []StockWarning
	for _, d := range items {
		name := strings.TrimSpace(d.Name)
		if name == "" || d.Quantity <= 0 {
			continue
		}
		item, err := u.repo.AddQuantity(ctx, name, -d.Quantity)
		if err != nil {
			u.logger.Error("stock deduction failed", zap.String("item", name), zap.Error(err))
			warnings = append(warnings, StockWarning{Name: name, Message: "falha ao baixar estoque"})
			continue
		}
		if item.ID == "" {
			u.logger.Warn("stock item not registered", zap.String("item", name))
			warnings = append(warnings, StockWarning{Name: name, Message: "item não cadastrado no estoque"})
			continue
		}
		u.metrics.StockLevel(item.Name, item.Quantity)

		switch {
		case item.IsNegative():
			msg := fmt.Sprintf("Estoque negativo: %s (%d)", item.Name, item.Quantity)
			u.logger.Warn("stock went negative", zap.String("item", item.Name), zap.Int("quantity", item.Quantity))
			warnings = append(warnings, StockWarning{Name: item.Name, Quantity: item.Quantity, Message: msg})
			u.notify(ctx, entities.NotifyRole(entities.RoleFinanceiroMaster, msg, ""))
		case item.IsLow():
			msg := fmt.Sprintf("Estoque baixo: %s (%d, mínimo %d)", item.Name, item.Quantity, item.MinAlertQuantity)
			warnings = append(warnings, StockWarning{Name: item.Name, Quantity: item.Quantity, Message: msg})
			u.notify(ctx, entities.NotifyRole(entities.RoleFinanceiroMaster, msg, ""))
		}
	}
	return warnings
}

func (u *StockUseCase) notify(ctx context.Context, n entities.Notification) {
	if u.notifier == nil {
		return
	}
	n.CreatedAt = u.now()
	if err := u.notifier.Notify(ctx, n); err != nil {
		u.metrics.NotificationSent("inbox", false)
		u.logger.Warn("stock alert not delivered", zap.Error(err))
		return
	}
	u.metrics.NotificationSent("inbox", true)
}
