package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"cremacao_pet/internal/domain/entities"
	"cremacao_pet/internal/usecase/interfaces"

	"go.uber.org/zap"
)

type ScheduleDeliveryCommand struct {
	// Date is the delivery calendar date, YYYY-MM-DD.
	Date    string
	Address string
}

func (u *TransitionUseCase) MarkCremated(ctx context.Context, actor entities.Actor, id string, expectedVersion int, cremationDate *time.Time) (entities.Removal, error) {
	op := entities.OpMarkCremated
	return u.run(ctx, op, actor, id, expectedVersion, func(r *entities.Removal, now time.Time) (entities.HistoryEntry, error) {
		if !r.Modality.IsIndividual() {
			return entities.HistoryEntry{}, reject(op, ErrInvalidTransition, "collective removals are not cremated individually")
		}
		if strings.TrimSpace(r.CremationCompany) == "" {
			return entities.HistoryEntry{}, reject(op, ErrValidation, "cremation company is required")
		}
		date := now
		if cremationDate != nil {
			date = cremationDate.UTC()
		}
		r.CremationDate = &date
		return historyEntry(now, actor, fmt.Sprintf("Cremação registrada por %s (%s)", actor.DisplayName(), r.CremationCompany)), nil
	})
}

func (u *TransitionUseCase) AssembleBag(ctx context.Context, actor entities.Actor, id string, expectedVersion int, bag entities.BagAssembly) (entities.Removal, []StockWarning, error) {
	op := entities.OpAssembleBag
	updated, err := u.run(ctx, op, actor, id, expectedVersion, func(r *entities.Removal, now time.Time) (entities.HistoryEntry, error) {
		for _, it := range bag.Items {
			if strings.TrimSpace(it.Name) == "" || it.Quantity <= 0 {
				return entities.HistoryEntry{}, reject(op, ErrValidation, "invalid bag item %q", it.Name)
			}
		}
		assembled := bag
		assembled.Items = append([]entities.BagItem(nil), bag.Items...)
		r.BagAssembly = &assembled
		return historyEntry(now, actor, fmt.Sprintf("Sacola montada por %s: %s", actor.DisplayName(), describeBag(bag))), nil
	})
	if err != nil {
		return entities.Removal{}, nil, err
	}
	return updated, u.deductStock(ctx, updated.ID, bagDeductions(bag)), nil
}

// bagDeductions lists the stock consumed by a bag. Urn and paw print are one unit each.
func bagDeductions(bag entities.BagAssembly) []entities.StockDeduction {
	out := make([]entities.StockDeduction, 0, len(bag.Items)+2)
	for _, it := range bag.Items {
		out = append(out, entities.StockDeduction{Name: it.Name, Quantity: it.Quantity})
	}
	if bag.Urn != "" {
		out = append(out, entities.StockDeduction{Name: bag.Urn, Quantity: 1})
	}
	if bag.PawPrint != "" {
		out = append(out, entities.StockDeduction{Name: bag.PawPrint, Quantity: 1})
	}
	return out
}

func describeBag(bag entities.BagAssembly) string {
	parts := make([]string, 0, len(bag.Items)+2)
	if bag.Urn != "" {
		parts = append(parts, "urna "+bag.Urn)
	}
	if bag.PawPrint != "" {
		parts = append(parts, "patinha "+bag.PawPrint)
	}
	for _, it := range bag.Items {
		parts = append(parts, fmt.Sprintf("%s (x%d)", it.Name, it.Quantity))
	}
	if len(parts) == 0 {
		return "sem itens"
	}
	return strings.Join(parts, ", ")
}

// ScheduleDelivery books a delivery date. The date-scoped lock serialises concurrent bookings so
// the daily capacity count cannot be raced past.
func (u *TransitionUseCase) ScheduleDelivery(ctx context.Context, actor entities.Actor, id string, expectedVersion int, cmd ScheduleDeliveryCommand) (entities.Removal, error) {
	op := entities.OpScheduleDelivery
	date := strings.TrimSpace(cmd.Date)
	if _, err := time.Parse(dateLayout, date); err != nil {
		u.metrics.TransitionRejected(op, "validation")
		return entities.Removal{}, reject(op, ErrValidation, "invalid delivery date %q", cmd.Date)
	}

	if u.locker != nil {
		key := "delivery:" + date
		ok, err := u.locker.TryLock(ctx, key)
		if err != nil {
			return entities.Removal{}, err
		}
		if !ok {
			u.metrics.TransitionRejected(op, "version_conflict")
			return entities.Removal{}, fmt.Errorf("%w: delivery date %s is being scheduled", ErrVersionConflict, date)
		}
		defer func() {
			if err := u.locker.Unlock(context.WithoutCancel(ctx), key); err != nil {
				u.logger.Warn("delivery lock not released", zap.String("date", date), zap.Error(err))
			}
		}()
	}

	booked, err := u.store.List(ctx, interfaces.RemovalFilter{
		Status:                entities.RemovalStatusEntregaAgendada,
		ScheduledDeliveryDate: date,
	})
	if err != nil {
		return entities.Removal{}, err
	}

	return u.run(ctx, op, actor, id, expectedVersion, func(r *entities.Removal, now time.Time) (entities.HistoryEntry, error) {
		count := 0
		for _, b := range booked {
			if b.ID != r.ID {
				count++
			}
		}
		if count >= u.deliveryCapacity {
			return entities.HistoryEntry{}, reject(op, ErrDeliveryCapacity, "%s already has %d deliveries", date, count)
		}
		r.ScheduledDeliveryDate = date
		if a := strings.TrimSpace(cmd.Address); a != "" {
			r.DeliveryAddress = a
		}
		return historyEntry(now, actor, fmt.Sprintf("Entrega agendada para %s por %s", date, actor.DisplayName())), nil
	})
}

func (u *TransitionUseCase) AwaitPickup(ctx context.Context, actor entities.Actor, id string, expectedVersion int) (entities.Removal, error) {
	return u.run(ctx, entities.OpAwaitPickup, actor, id, expectedVersion, func(r *entities.Removal, now time.Time) (entities.HistoryEntry, error) {
		return historyEntry(now, actor, fmt.Sprintf("Aguardando retirada pelo tutor (%s)", actor.DisplayName())), nil
	})
}

func (u *TransitionUseCase) ConfirmDelivery(ctx context.Context, actor entities.Actor, id string, expectedVersion int) (entities.Removal, error) {
	return u.run(ctx, entities.OpConfirmDelivery, actor, id, expectedVersion, func(r *entities.Removal, now time.Time) (entities.HistoryEntry, error) {
		closed := now
		r.ClosedAt = &closed
		action := fmt.Sprintf("Entrega confirmada por %s", actor.DisplayName())
		if r.Status == entities.RemovalStatusAguardandoRetirada {
			action = fmt.Sprintf("Retirada confirmada por %s", actor.DisplayName())
		}
		return historyEntry(now, actor, action), nil
	})
}
