package usecase

import (
	"context"
	"time"

	"cremacao_pet/internal/domain/entities"
	"cremacao_pet/internal/domain/pricing"
	"cremacao_pet/internal/usecase/interfaces"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// DefaultDailyDeliveryCapacity is the number of deliveries that may share one calendar date.
const DefaultDailyDeliveryCapacity = 6

// ITransitionUseCase is the removal state machine. Every operation is checked against the
// (role, status) table, validated, and committed with exactly one history entry.
//
// expectedVersion is the version the caller last read; 0 skips the staleness check.

type ITransitionUseCase interface {
	AvailableActions(ctx context.Context, actor entities.Actor, id string) ([]entities.Operation, error)
	PreviewWeightDivergence(ctx context.Context, id string) (pricing.WeightDivergence, error)
	PreviewModalityChange(ctx context.Context, id string, to entities.Modality) (pricing.ModalityChange, error)

	DirectToDriver(ctx context.Context, actor entities.Actor, id string, expectedVersion int, cmd DirectToDriverCommand) (entities.Removal, error)
	SchedulePickup(ctx context.Context, actor entities.Actor, id string, expectedVersion int, cmd SchedulePickupCommand) (entities.Removal, error)
	Cancel(ctx context.Context, actor entities.Actor, id string, expectedVersion int, reason string) (entities.Removal, error)
	StartRoute(ctx context.Context, actor entities.Actor, id string, expectedVersion int) (entities.Removal, error)
	ConfirmPickup(ctx context.Context, actor entities.Actor, id string, expectedVersion int, petCondition string) (entities.Removal, error)
	FinalizePickup(ctx context.Context, actor entities.Actor, id string, expectedVersion int, cmd FinalizePickupCommand) (entities.Removal, error)
	SendToFinance(ctx context.Context, actor entities.Actor, id string, expectedVersion int) (entities.Removal, error)

	SetCremationCompany(ctx context.Context, actor entities.Actor, id string, expectedVersion int, company string) (entities.Removal, error)
	ApplyWeightAdjustment(ctx context.Context, actor entities.Actor, id string, expectedVersion int) (entities.Removal, error)
	AddCustomAdditionals(ctx context.Context, actor entities.Actor, id string, expectedVersion int, items []CustomAdditionalInput) (entities.Removal, []StockWarning, error)
	ChangeModality(ctx context.Context, actor entities.Actor, id string, expectedVersion int, to entities.Modality) (entities.Removal, error)
	RegisterDevolution(ctx context.Context, actor entities.Actor, id string, expectedVersion int, cmd DevolutionCommand) (entities.Removal, error)
	FinalizeForMaster(ctx context.Context, actor entities.Actor, id string, expectedVersion int, cmd FinalizeForMasterCommand) (entities.Removal, error)

	ReleaseForCremation(ctx context.Context, actor entities.Actor, id string, expectedVersion int, confirmations map[string]bool) (entities.Removal, error)
	MarkCremated(ctx context.Context, actor entities.Actor, id string, expectedVersion int, cremationDate *time.Time) (entities.Removal, error)
	AssembleBag(ctx context.Context, actor entities.Actor, id string, expectedVersion int, bag entities.BagAssembly) (entities.Removal, []StockWarning, error)
	ScheduleDelivery(ctx context.Context, actor entities.Actor, id string, expectedVersion int, cmd ScheduleDeliveryCommand) (entities.Removal, error)
	AwaitPickup(ctx context.Context, actor entities.Actor, id string, expectedVersion int) (entities.Removal, error)
	ConfirmDelivery(ctx context.Context, actor entities.Actor, id string, expectedVersion int) (entities.Removal, error)
}

type TransitionOptions struct {
	DailyDeliveryCapacity int
}

type TransitionUseCase struct {
	store     IRemovalStore
	prices    interfaces.IPriceRepository
	stock     IStockUseCase
	messenger interfaces.IMessenger
	locker    interfaces.ILocker
	metrics   interfaces.IMetrics
	logger    *zap.Logger
	now       func() time.Time

	deliveryCapacity int
}

var _ ITransitionUseCase = (*TransitionUseCase)(nil)

func NewTransitionUseCase(
	store IRemovalStore,
	prices interfaces.IPriceRepository,
	stock IStockUseCase,
	messenger interfaces.IMessenger,
	locker interfaces.ILocker,
	metrics interfaces.IMetrics,
	logger *zap.Logger,
	opts TransitionOptions,
) *TransitionUseCase {
	if metrics == nil {
		metrics = noopMetrics{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.DailyDeliveryCapacity <= 0 {
		opts.DailyDeliveryCapacity = DefaultDailyDeliveryCapacity
	}
	return &TransitionUseCase{
		store:            store,
		prices:           prices,
		stock:            stock,
		messenger:        messenger,
		locker:           locker,
		metrics:          metrics,
		logger:           logger.Named("transitions"),
		now:              func() time.Time { return time.Now().UTC() },
		deliveryCapacity: opts.DailyDeliveryCapacity,
	}
}

// WithClock replaces the time source, for tests.
func (u *TransitionUseCase) WithClock(now func() time.Time) *TransitionUseCase {
	u.now = now
	return u
}

// transitionFunc validates the command against the loaded removal, mutates it and returns the
// single history entry describing the change.
type transitionFunc func(r *entities.Removal, now time.Time) (entities.HistoryEntry, error)

func (u *TransitionUseCase) run(ctx context.Context, op entities.Operation, actor entities.Actor, id string, expectedVersion int, fn transitionFunc) (entities.Removal, error) {
	updated, err := u.store.Update(ctx, id, expectedVersion, func(r *entities.Removal) error {
		rule, err := checkRule(op, actor, *r)
		if err != nil {
			return err
		}
		entry, err := fn(r, u.now())
		if err != nil {
			return err
		}
		if rule.To != "" {
			r.Status = rule.To
		}
		r.History = append(r.History, entry)
		return nil
	})
	if err != nil {
		u.metrics.TransitionRejected(op, rejectionReason(err))
		u.logger.Info("operation rejected",
			zap.String("op", string(op)),
			zap.String("removal_id", id),
			zap.String("role", string(actor.Role)),
			zap.Error(err),
		)
		return entities.Removal{}, err
	}

	u.metrics.TransitionApplied(op, updated.Status)
	u.logger.Info("operation applied",
		zap.String("op", string(op)),
		zap.String("removal_id", updated.ID),
		zap.String("status", string(updated.Status)),
		zap.Int("version", updated.Version),
	)
	return updated, nil
}

func (u *TransitionUseCase) AvailableActions(ctx context.Context, actor entities.Actor, id string) ([]entities.Operation, error) {
	r, err := u.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	ops := entities.PermittedOperations(actor.Role, r)
	if actor.Role == entities.RoleMotorista && r.AssignedDriverID != "" && r.AssignedDriverID != actor.ID {
		return nil, nil
	}
	return ops, nil
}

func (u *TransitionUseCase) PreviewWeightDivergence(ctx context.Context, id string) (pricing.WeightDivergence, error) {
	r, err := u.store.Get(ctx, id)
	if err != nil {
		return pricing.WeightDivergence{}, err
	}
	table, err := u.priceTable(ctx)
	if err != nil {
		return pricing.WeightDivergence{}, err
	}
	return pricing.ComputeWeightDivergence(table, r), nil
}

func (u *TransitionUseCase) PreviewModalityChange(ctx context.Context, id string, to entities.Modality) (pricing.ModalityChange, error) {
	if !to.IsValid() {
		return pricing.ModalityChange{}, reject(entities.OpChangeModality, ErrValidation, "unknown modality %q", to)
	}
	r, err := u.store.Get(ctx, id)
	if err != nil {
		return pricing.ModalityChange{}, err
	}
	table, err := u.priceTable(ctx)
	if err != nil {
		return pricing.ModalityChange{}, err
	}
	return pricing.ComputeModalityChange(table, r, to), nil
}

// priceTable reads the table once per operation; a missing table behaves as an empty one.
func (u *TransitionUseCase) priceTable(ctx context.Context) (entities.PriceTable, error) {
	if u.prices == nil {
		return entities.NewPriceTable(), nil
	}
	return u.prices.Get(ctx)
}

func (u *TransitionUseCase) deductStock(ctx context.Context, removalID string, items []entities.StockDeduction) []StockWarning {
	if u.stock == nil || len(items) == 0 {
		return nil
	}
	warnings := u.stock.DeductItems(ctx, items)
	if len(warnings) > 0 {
		u.logger.Warn("stock warnings after deduction", zap.String("removal_id", removalID), zap.Int("warnings", len(warnings)))
	}
	return warnings
}

func money(d decimal.Decimal) string {
	return "R$ " + d.StringFixed(2)
}
