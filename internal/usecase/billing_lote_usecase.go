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

// IBillingLoteUseCase settles a group of faturado removals of one clinic with a single boleto.
//
// Flow (financeiro_master only):
//   - IssueBoleto: aguardando_baixa_master -> aguardando_boleto, clinic notified
//   - ConfirmPayment: aguardando_boleto -> pagamento_concluido, proof required
//   - CloseLote: pagamento_concluido -> finalizada (closed for collective removals)

type IBillingLoteUseCase interface {
	ListByClinic(ctx context.Context, clinicID string, status entities.RemovalStatus) ([]entities.Removal, error)
	IssueBoleto(ctx context.Context, actor entities.Actor, codes []string, boletoURL string) ([]entities.Removal, error)
	ConfirmPayment(ctx context.Context, actor entities.Actor, codes []string, proofURL string) ([]entities.Removal, error)
	CloseLote(ctx context.Context, actor entities.Actor, codes []string) ([]entities.Removal, error)
}

type BillingLoteUseCase struct {
	store   IRemovalStore
	metrics interfaces.IMetrics
	logger  *zap.Logger
	now     func() time.Time
}

var _ IBillingLoteUseCase = (*BillingLoteUseCase)(nil)

func NewBillingLoteUseCase(store IRemovalStore, metrics interfaces.IMetrics, logger *zap.Logger) *BillingLoteUseCase {
	if metrics == nil {
		metrics = noopMetrics{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BillingLoteUseCase{
		store:   store,
		metrics: metrics,
		logger:  logger.Named("billing_lote"),
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// WithClock replaces the time source, for tests.
func (u *BillingLoteUseCase) WithClock(now func() time.Time) *BillingLoteUseCase {
	u.now = now
	return u
}

func (u *BillingLoteUseCase) ListByClinic(ctx context.Context, clinicID string, status entities.RemovalStatus) ([]entities.Removal, error) {
	clinicID = strings.TrimSpace(clinicID)
	if clinicID == "" {
		return nil, reject("list_lote", ErrValidation, "clinic is required")
	}
	all, err := u.store.List(ctx, interfaces.RemovalFilter{Status: status, CreatedByID: clinicID})
	if err != nil {
		return nil, err
	}
	out := make([]entities.Removal, 0, len(all))
	for _, r := range all {
		if r.IsFaturado() {
			out = append(out, r)
		}
	}
	return out, nil
}

func (u *BillingLoteUseCase) IssueBoleto(ctx context.Context, actor entities.Actor, codes []string, boletoURL string) ([]entities.Removal, error) {
	op := entities.OpIssueBoleto
	var clinic string
	return u.apply(ctx, op, actor, codes, &clinic, func(r *entities.Removal, now time.Time) entities.HistoryEntry {
		r.AssignedFinanceiroMasterID = actor.ID
		entry := historyEntry(now, actor, fmt.Sprintf("Boleto emitido por %s para o lote (%d remoções)", actor.DisplayName(), len(codes)))
		entry.ProofURL = boletoURL
		return entry
	}, func(removals []entities.Removal) *entities.Notification {
		n := entities.NotifyUser(clinic, fmt.Sprintf("Boleto emitido para %d remoções: %s", len(removals), joinCodes(removals)), "")
		return &n
	})
}

func (u *BillingLoteUseCase) ConfirmPayment(ctx context.Context, actor entities.Actor, codes []string, proofURL string) ([]entities.Removal, error) {
	op := entities.OpConfirmPayment
	if strings.TrimSpace(proofURL) == "" {
		u.metrics.TransitionRejected(op, "validation")
		return nil, reject(op, ErrValidation, "payment proof is required")
	}
	var clinic string
	return u.apply(ctx, op, actor, codes, &clinic, func(r *entities.Removal, now time.Time) entities.HistoryEntry {
		entry := historyEntry(now, actor, fmt.Sprintf("Pagamento do lote confirmado por %s", actor.DisplayName()))
		entry.ProofURL = proofURL
		return entry
	}, func(removals []entities.Removal) *entities.Notification {
		n := entities.NotifyRole(entities.RoleFinanceiroMaster, fmt.Sprintf("Pagamento confirmado: %s", joinCodes(removals)), "")
		return &n
	})
}

func (u *BillingLoteUseCase) CloseLote(ctx context.Context, actor entities.Actor, codes []string) ([]entities.Removal, error) {
	op := entities.OpCloseLote
	var clinic string
	return u.apply(ctx, op, actor, codes, &clinic, func(r *entities.Removal, now time.Time) entities.HistoryEntry {
		if !r.Modality.IsIndividual() {
			closed := now
			r.ClosedAt = &closed
		}
		return historyEntry(now, actor, fmt.Sprintf("Lote faturado encerrado por %s", actor.DisplayName()))
	}, func(removals []entities.Removal) *entities.Notification {
		n := entities.NotifyRole(entities.RoleOperacional, fmt.Sprintf("Lote faturado encerrado: %s", joinCodes(removals)), "")
		return &n
	})
}

// apply runs one lote operation over every code. All removals must be faturado and belong to
// the same clinic; the first removal read fixes *clinic.
func (u *BillingLoteUseCase) apply(
	ctx context.Context,
	op entities.Operation,
	actor entities.Actor,
	codes []string,
	clinic *string,
	change func(r *entities.Removal, now time.Time) entities.HistoryEntry,
	notification func(removals []entities.Removal) *entities.Notification,
) ([]entities.Removal, error) {
	rule, _ := entities.RuleFor(op)
	if !rule.AllowsRole(actor.Role) {
		u.metrics.TransitionRejected(op, "forbidden_role")
		return nil, reject(op, ErrForbiddenRole, "role %q", actor.Role)
	}

	// Validate every member before building the notification, which needs the clinic id.
	preview := make([]entities.Removal, 0, len(codes))
	for _, code := range codes {
		r, err := u.store.GetByCode(ctx, code)
		if err != nil {
			u.metrics.TransitionRejected(op, rejectionReason(err))
			return nil, fmt.Errorf("removal %q: %w", code, err)
		}
		if err := u.validateMember(op, actor, r, clinic); err != nil {
			u.metrics.TransitionRejected(op, rejectionReason(err))
			return nil, err
		}
		preview = append(preview, r)
	}

	now := u.now()
	updated, err := u.store.UpdateMultiple(ctx, codes, func(r *entities.Removal) error {
		if err := u.validateMember(op, actor, *r, clinic); err != nil {
			return err
		}
		entry := change(r, now)
		r.Status = rule.To
		r.History = append(r.History, entry)
		return nil
	}, notification(preview))
	if err != nil {
		u.metrics.TransitionRejected(op, rejectionReason(err))
		u.logger.Info("lote operation rejected", zap.String("op", string(op)), zap.Error(err))
		return nil, err
	}

	for range updated {
		u.metrics.TransitionApplied(op, rule.To)
	}
	u.logger.Info("lote operation applied", zap.String("op", string(op)), zap.String("clinic", *clinic), zap.Int("removals", len(updated)))
	return updated, nil
}

func (u *BillingLoteUseCase) validateMember(op entities.Operation, actor entities.Actor, r entities.Removal, clinic *string) error {
	if _, err := checkRule(op, actor, r); err != nil {
		return err
	}
	if !r.IsFaturado() {
		return reject(op, ErrValidation, "removal %s is not faturado", r.Code)
	}
	if *clinic == "" {
		*clinic = r.CreatedByID
	} else if r.CreatedByID != *clinic {
		return reject(op, ErrValidation, "removal %s belongs to another clinic", r.Code)
	}
	return nil
}

func joinCodes(removals []entities.Removal) string {
	codes := make([]string, 0, len(removals))
	for _, r := range removals {
		codes = append(codes, r.Code)
	}
	return strings.Join(codes, ", ")
}
