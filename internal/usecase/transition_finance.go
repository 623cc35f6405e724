package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"cremacao_pet/internal/domain/entities"
	"cremacao_pet/internal/domain/pricing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CustomAdditionalInput is one ad hoc line priced by financial staff. Value is the line total.
type CustomAdditionalInput struct {
	Name      string
	Quantity  int
	Value     decimal.Decimal
	ProofURL  string
	FromStock bool
}

type DevolutionCommand struct {
	Amount   decimal.Decimal
	Reason   string
	ProofURL string
}

type FinalizeForMasterCommand struct {
	// ApplyWeightDivergence saves the pending weight divergence before handing over.
	ApplyWeightDivergence bool
}

func (u *TransitionUseCase) SetCremationCompany(ctx context.Context, actor entities.Actor, id string, expectedVersion int, company string) (entities.Removal, error) {
	op := entities.OpSetCremationCompany
	return u.run(ctx, op, actor, id, expectedVersion, func(r *entities.Removal, now time.Time) (entities.HistoryEntry, error) {
		company = strings.TrimSpace(company)
		if company == "" {
			return entities.HistoryEntry{}, reject(op, ErrValidation, "cremation company is required")
		}
		if company == r.CremationCompany {
			return entities.HistoryEntry{}, reject(op, ErrValidation, "cremation company unchanged")
		}
		r.CremationCompany = company
		return historyEntry(now, actor, fmt.Sprintf("Empresa de cremação definida como %s por %s", company, actor.DisplayName())), nil
	})
}

func (u *TransitionUseCase) ApplyWeightAdjustment(ctx context.Context, actor entities.Actor, id string, expectedVersion int) (entities.Removal, error) {
	op := entities.OpApplyWeightAdjustment
	table, err := u.priceTable(ctx)
	if err != nil {
		return entities.Removal{}, err
	}
	return u.run(ctx, op, actor, id, expectedVersion, func(r *entities.Removal, now time.Time) (entities.HistoryEntry, error) {
		action, err := applyWeightDivergence(op, table, r, actor)
		if err != nil {
			return entities.HistoryEntry{}, err
		}
		return historyEntry(now, actor, action), nil
	})
}

func applyWeightDivergence(op entities.Operation, table entities.PriceTable, r *entities.Removal, actor entities.Actor) (string, error) {
	if r.AdjustmentConfirmed {
		return "", reject(op, ErrValidation, "weight adjustment already applied")
	}
	d := pricing.ComputeWeightDivergence(table, *r)
	if !d.Applicable {
		return "", reject(op, ErrValidation, "no weight divergence to apply")
	}
	if d.Delta.IsZero() {
		return "", reject(op, ErrZeroDelta, "brackets %s and %s have the same price", d.DeclaredBracket, d.RealBracket)
	}
	r.Value = d.Subtotal
	r.AdjustmentConfirmed = true
	return fmt.Sprintf("Ajuste de peso aplicado por %s: %s -> %s (%s)",
		actor.DisplayName(), d.DeclaredBracket, d.RealBracket, money(d.Delta)), nil
}

func (u *TransitionUseCase) AddCustomAdditionals(ctx context.Context, actor entities.Actor, id string, expectedVersion int, items []CustomAdditionalInput) (entities.Removal, []StockWarning, error) {
	op := entities.OpAddCustomAdditionals
	updated, err := u.run(ctx, op, actor, id, expectedVersion, func(r *entities.Removal, now time.Time) (entities.HistoryEntry, error) {
		if len(items) == 0 {
			return entities.HistoryEntry{}, reject(op, ErrValidation, "at least one additional is required")
		}
		added := make([]entities.CustomAdditional, 0, len(items))
		labels := make([]string, 0, len(items))
		for _, in := range items {
			name := strings.TrimSpace(in.Name)
			if name == "" || in.Quantity <= 0 || in.Value.IsNegative() {
				return entities.HistoryEntry{}, reject(op, ErrValidation, "invalid additional %q", in.Name)
			}
			added = append(added, entities.CustomAdditional{
				ID:        uuid.NewString(),
				Name:      name,
				Quantity:  in.Quantity,
				Value:     in.Value,
				ProofURL:  in.ProofURL,
				FromStock: in.FromStock,
			})
			labels = append(labels, fmt.Sprintf("%s (x%d)", name, in.Quantity))
		}
		total := pricing.AdditionalsTotal(nil, added)
		r.CustomAdditionals = append(r.CustomAdditionals, added...)
		r.Value = r.Value.Add(total)
		return historyEntry(now, actor, fmt.Sprintf("Adicionais incluídos por %s: %s. Total %s",
			actor.DisplayName(), strings.Join(labels, ", "), money(total))), nil
	})
	if err != nil {
		return entities.Removal{}, nil, err
	}

	var deductions []entities.StockDeduction
	for _, in := range items {
		if in.FromStock {
			deductions = append(deductions, entities.StockDeduction{Name: strings.TrimSpace(in.Name), Quantity: in.Quantity})
		}
	}
	return updated, u.deductStock(ctx, updated.ID, deductions), nil
}

func (u *TransitionUseCase) ChangeModality(ctx context.Context, actor entities.Actor, id string, expectedVersion int, to entities.Modality) (entities.Removal, error) {
	op := entities.OpChangeModality
	if !to.IsValid() {
		return entities.Removal{}, reject(op, ErrValidation, "unknown modality %q", to)
	}
	table, err := u.priceTable(ctx)
	if err != nil {
		return entities.Removal{}, err
	}
	return u.run(ctx, op, actor, id, expectedVersion, func(r *entities.Removal, now time.Time) (entities.HistoryEntry, error) {
		if to == r.Modality {
			return entities.HistoryEntry{}, reject(op, ErrZeroDelta, "modality unchanged")
		}
		change := pricing.ComputeModalityChange(table, *r, to)
		if change.Delta.IsZero() {
			return entities.HistoryEntry{}, reject(op, ErrZeroDelta, "%s and %s have the same price", change.From, change.To)
		}
		r.Modality = to
		r.Value = change.NewValue
		return historyEntry(now, actor, fmt.Sprintf("Modalidade alterada de %s para %s por %s (%s)",
			change.From, change.To, actor.DisplayName(), money(change.Delta))), nil
	})
}

func (u *TransitionUseCase) RegisterDevolution(ctx context.Context, actor entities.Actor, id string, expectedVersion int, cmd DevolutionCommand) (entities.Removal, error) {
	op := entities.OpRegisterDevolution
	return u.run(ctx, op, actor, id, expectedVersion, func(r *entities.Removal, now time.Time) (entities.HistoryEntry, error) {
		reason := strings.TrimSpace(cmd.Reason)
		if !cmd.Amount.IsPositive() {
			return entities.HistoryEntry{}, reject(op, ErrValidation, "devolution amount must be greater than zero")
		}
		if reason == "" {
			return entities.HistoryEntry{}, reject(op, ErrValidation, "devolution reason is required")
		}
		if cmd.Amount.GreaterThan(r.Value) {
			return entities.HistoryEntry{}, reject(op, ErrValidation, "devolution %s exceeds value %s", money(cmd.Amount), money(r.Value))
		}
		r.Value = r.Value.Sub(cmd.Amount)
		entry := historyEntry(now, actor, fmt.Sprintf("Devolução de %s registrada por %s", money(cmd.Amount), actor.DisplayName()))
		entry.Reason = reason
		entry.ProofURL = cmd.ProofURL
		return entry, nil
	})
}

func (u *TransitionUseCase) FinalizeForMaster(ctx context.Context, actor entities.Actor, id string, expectedVersion int, cmd FinalizeForMasterCommand) (entities.Removal, error) {
	op := entities.OpFinalizeForMaster
	var table entities.PriceTable
	if cmd.ApplyWeightDivergence {
		var err error
		if table, err = u.priceTable(ctx); err != nil {
			return entities.Removal{}, err
		}
	}
	return u.run(ctx, op, actor, id, expectedVersion, func(r *entities.Removal, now time.Time) (entities.HistoryEntry, error) {
		if r.Modality.IsIndividual() && strings.TrimSpace(r.CremationCompany) == "" {
			return entities.HistoryEntry{}, reject(op, ErrValidation, "cremation company is required for individual modality")
		}
		action := fmt.Sprintf("Conferido por %s e enviado para baixa", actor.DisplayName())
		if cmd.ApplyWeightDivergence && !r.AdjustmentConfirmed {
			if d := pricing.ComputeWeightDivergence(table, *r); d.Applicable && !d.Delta.IsZero() {
				r.Value = d.Subtotal
				r.AdjustmentConfirmed = true
				action += fmt.Sprintf(". Ajuste de peso %s -> %s (%s)", d.DeclaredBracket, d.RealBracket, money(d.Delta))
			}
		}
		r.AssignedFinanceiroJuniorID = actor.ID
		return historyEntry(now, actor, action), nil
	})
}

// ReleaseForCremation hands the removal to cremation. Collective removals are closed here; a
// collective removal with additionals needs a produced yes/no answer for every additional.
// A removal without a modality cannot be released.
func (u *TransitionUseCase) ReleaseForCremation(ctx context.Context, actor entities.Actor, id string, expectedVersion int, confirmations map[string]bool) (entities.Removal, error) {
	op := entities.OpReleaseForCremation
	return u.run(ctx, op, actor, id, expectedVersion, func(r *entities.Removal, now time.Time) (entities.HistoryEntry, error) {
		if r.Modality == "" {
			return entities.HistoryEntry{}, reject(op, ErrValidation, "modality must be set before release")
		}
		action := fmt.Sprintf("Liberado para cremação por %s", actor.DisplayName())
		if r.Modality.IsIndividual() {
			return historyEntry(now, actor, action), nil
		}

		if names := r.AllAdditionalNames(); len(names) > 0 {
			summary := make([]string, 0, len(names))
			var missing []string
			for _, name := range names {
				produced, ok := confirmations[name]
				if !ok {
					missing = append(missing, name)
					continue
				}
				answer := "não"
				if produced {
					answer = "sim"
				}
				summary = append(summary, name+": "+answer)
			}
			if len(missing) > 0 {
				sort.Strings(missing)
				return entities.HistoryEntry{}, reject(op, ErrValidation, "missing confirmation for %s", strings.Join(missing, ", "))
			}
			action += ". Adicionais produzidos: " + strings.Join(summary, "; ")
		}
		closed := now
		r.ClosedAt = &closed
		r.AssignedFinanceiroMasterID = masterID(actor, r.AssignedFinanceiroMasterID)
		return historyEntry(now, actor, action), nil
	})
}

func masterID(actor entities.Actor, current string) string {
	if actor.Role == entities.RoleFinanceiroMaster {
		return actor.ID
	}
	return current
}
