package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"cremacao_pet/internal/domain/entities"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type DirectToDriverCommand struct {
	DriverID         string
	DriverName       string
	DriverPhone      string
	IsPriority       bool
	PriorityDeadline string
}

// SchedulePickupCommand carries the pickup slot in the sweep's local time.
type SchedulePickupCommand struct {
	Date string // YYYY-MM-DD
	Time string // HH:MM
}

type FinalizePickupCommand struct {
	RealWeight   decimal.Decimal
	PetCondition string
	// Confirmed is the explicit second confirmation of the measured weight.
	Confirmed bool
}

func (u *TransitionUseCase) DirectToDriver(ctx context.Context, actor entities.Actor, id string, expectedVersion int, cmd DirectToDriverCommand) (entities.Removal, error) {
	op := entities.OpDirectToDriver
	updated, err := u.run(ctx, op, actor, id, expectedVersion, func(r *entities.Removal, now time.Time) (entities.HistoryEntry, error) {
		if strings.TrimSpace(cmd.DriverID) == "" {
			return entities.HistoryEntry{}, reject(op, ErrValidation, "driver is required")
		}
		r.AssignedDriverID = cmd.DriverID
		r.AssignedDriverName = cmd.DriverName
		r.IsPriority = cmd.IsPriority
		r.PriorityDeadline = ""
		if cmd.IsPriority {
			r.PriorityDeadline = cmd.PriorityDeadline
		}

		driver := cmd.DriverName
		if driver == "" {
			driver = cmd.DriverID
		}
		action := fmt.Sprintf("Direcionado ao motorista %s por %s", driver, actor.DisplayName())
		if cmd.IsPriority {
			action += " (prioridade"
			if cmd.PriorityDeadline != "" {
				action += " até " + cmd.PriorityDeadline
			}
			action += ")"
		}
		return historyEntry(now, actor, action), nil
	})
	if err != nil {
		return entities.Removal{}, err
	}

	u.messageDriver(ctx, cmd.DriverPhone, updated)
	return updated, nil
}

// SchedulePickup parks a new request until its slot; the scheduling sweep hands it back as
// solicitada when the time arrives.
func (u *TransitionUseCase) SchedulePickup(ctx context.Context, actor entities.Actor, id string, expectedVersion int, cmd SchedulePickupCommand) (entities.Removal, error) {
	op := entities.OpSchedulePickup
	date, clock := strings.TrimSpace(cmd.Date), strings.TrimSpace(cmd.Time)
	return u.run(ctx, op, actor, id, expectedVersion, func(r *entities.Removal, now time.Time) (entities.HistoryEntry, error) {
		if date == "" || clock == "" {
			return entities.HistoryEntry{}, reject(op, ErrValidation, "scheduled date and time are required")
		}
		at, err := time.Parse(scheduleLayout, date+" "+clock)
		if err != nil {
			return entities.HistoryEntry{}, reject(op, ErrValidation, "invalid schedule %q %q", date, clock)
		}
		if at.Format(dateLayout) < now.Format(dateLayout) {
			return entities.HistoryEntry{}, reject(op, ErrValidation, "schedule %s is in the past", date)
		}
		r.ScheduledDate = date
		r.ScheduledTime = clock
		return historyEntry(now, actor, fmt.Sprintf("Remoção agendada por %s para %s %s", actor.DisplayName(), date, clock)), nil
	})
}

// messageDriver sends the outbound dispatch message. Delivery failures never undo the transition.
func (u *TransitionUseCase) messageDriver(ctx context.Context, phone string, r entities.Removal) {
	if u.messenger == nil || strings.TrimSpace(phone) == "" {
		return
	}
	msg := fmt.Sprintf("Nova remoção: %s (%s). Endereço: %s, %s - %s/%s",
		r.Pet.Name, r.Pet.Species, r.Address.Street, r.Address.Number, r.Address.City, r.Address.State)
	if r.Code != "" {
		msg = fmt.Sprintf("[%s] %s", r.Code, msg)
	}
	if r.IsPriority {
		msg = "PRIORIDADE " + msg
	}
	if err := u.messenger.SendMessage(ctx, phone, msg); err != nil {
		u.metrics.NotificationSent("whatsapp", false)
		u.logger.Warn("driver message not sent", zap.String("removal_id", r.ID), zap.Error(err))
		return
	}
	u.metrics.NotificationSent("whatsapp", true)
}

func (u *TransitionUseCase) Cancel(ctx context.Context, actor entities.Actor, id string, expectedVersion int, reason string) (entities.Removal, error) {
	op := entities.OpCancel
	return u.run(ctx, op, actor, id, expectedVersion, func(r *entities.Removal, now time.Time) (entities.HistoryEntry, error) {
		reason = strings.TrimSpace(reason)
		if reason == "" {
			return entities.HistoryEntry{}, reject(op, ErrValidation, "cancellation reason is required")
		}
		if actor.Role == entities.RoleCliente && r.CreatedByID != actor.ID {
			return entities.HistoryEntry{}, reject(op, ErrForbiddenRole, "removal belongs to another requester")
		}
		r.CancellationReason = reason
		entry := historyEntry(now, actor, fmt.Sprintf("Remoção cancelada por %s", actor.DisplayName()))
		entry.Reason = reason
		return entry, nil
	})
}

// requireAssignedDriver keeps drivers on their own removals.
func requireAssignedDriver(op entities.Operation, actor entities.Actor, r *entities.Removal) error {
	if r.AssignedDriverID != "" && r.AssignedDriverID != actor.ID {
		return reject(op, ErrForbiddenRole, "removal is assigned to another driver")
	}
	return nil
}

func (u *TransitionUseCase) StartRoute(ctx context.Context, actor entities.Actor, id string, expectedVersion int) (entities.Removal, error) {
	op := entities.OpStartRoute
	return u.run(ctx, op, actor, id, expectedVersion, func(r *entities.Removal, now time.Time) (entities.HistoryEntry, error) {
		if err := requireAssignedDriver(op, actor, r); err != nil {
			return entities.HistoryEntry{}, err
		}
		return historyEntry(now, actor, fmt.Sprintf("Motorista %s a caminho", actor.DisplayName())), nil
	})
}

func (u *TransitionUseCase) ConfirmPickup(ctx context.Context, actor entities.Actor, id string, expectedVersion int, petCondition string) (entities.Removal, error) {
	op := entities.OpConfirmPickup
	return u.run(ctx, op, actor, id, expectedVersion, func(r *entities.Removal, now time.Time) (entities.HistoryEntry, error) {
		if err := requireAssignedDriver(op, actor, r); err != nil {
			return entities.HistoryEntry{}, err
		}
		if c := strings.TrimSpace(petCondition); c != "" {
			r.PetCondition = c
		}
		return historyEntry(now, actor, fmt.Sprintf("Pet removido por %s", actor.DisplayName())), nil
	})
}

func (u *TransitionUseCase) FinalizePickup(ctx context.Context, actor entities.Actor, id string, expectedVersion int, cmd FinalizePickupCommand) (entities.Removal, error) {
	op := entities.OpFinalizePickup
	return u.run(ctx, op, actor, id, expectedVersion, func(r *entities.Removal, now time.Time) (entities.HistoryEntry, error) {
		if err := requireAssignedDriver(op, actor, r); err != nil {
			return entities.HistoryEntry{}, err
		}
		if !cmd.RealWeight.IsPositive() {
			return entities.HistoryEntry{}, reject(op, ErrValidation, "real weight must be greater than zero")
		}
		if !cmd.Confirmed {
			return entities.HistoryEntry{}, reject(op, ErrValidation, "weight must be confirmed")
		}
		r.RealWeight = cmd.RealWeight
		if c := strings.TrimSpace(cmd.PetCondition); c != "" {
			r.PetCondition = c
		}
		return historyEntry(now, actor, fmt.Sprintf("Remoção concluída por %s. Peso real: %s kg", actor.DisplayName(), cmd.RealWeight.String())), nil
	})
}

func (u *TransitionUseCase) SendToFinance(ctx context.Context, actor entities.Actor, id string, expectedVersion int) (entities.Removal, error) {
	return u.run(ctx, entities.OpSendToFinance, actor, id, expectedVersion, func(r *entities.Removal, now time.Time) (entities.HistoryEntry, error) {
		return historyEntry(now, actor, fmt.Sprintf("Enviado ao financeiro por %s", actor.DisplayName())), nil
	})
}
