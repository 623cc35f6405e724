package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"cremacao_pet/internal/domain/entities"
	"cremacao_pet/internal/domain/pricing"
	"cremacao_pet/internal/usecase/interfaces"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// RemovalMutation edits a working copy of a removal. Returning an error aborts the update
// without touching the stored record.
type RemovalMutation func(r *entities.Removal) error

// CreateRemovalCommand is the intake payload. A nil Value means the price is resolved from the table.
type CreateRemovalCommand struct {
	Code                   string
	Pet                    entities.Pet
	Address                entities.Address
	Modality               entities.Modality
	PaymentMethod          string
	Additionals            []entities.Additional
	Value                  *decimal.Decimal
	ScheduledDate          string
	ScheduledTime          string
	FarewellSchedulingInfo string
}

// IRemovalStore owns the removal collection and is its single mutation entry point.
//
// Operations:
//   - Create: intake of a new removal (solicitada, or agendada when a schedule is given)
//   - Update: versioned read-modify-write of one removal
//   - UpdateMultiple: same mutation applied to a group of removals by code (billing lotes)
//   - AssignCode: operator sets the business code
type IRemovalStore interface {
	Create(ctx context.Context, actor entities.Actor, cmd CreateRemovalCommand) (entities.Removal, error)
	Get(ctx context.Context, id string) (entities.Removal, error)
	GetByCode(ctx context.Context, code string) (entities.Removal, error)
	List(ctx context.Context, filter interfaces.RemovalFilter) ([]entities.Removal, error)
	Update(ctx context.Context, id string, expectedVersion int, mutate RemovalMutation) (entities.Removal, error)
	UpdateMultiple(ctx context.Context, codes []string, mutate RemovalMutation, n *entities.Notification) ([]entities.Removal, error)
	AssignCode(ctx context.Context, actor entities.Actor, id, code string, expectedVersion int) (entities.Removal, error)
}

type RemovalStore struct {
	repo     interfaces.IRemovalRepository
	prices   interfaces.IPriceRepository
	notifier interfaces.INotifier
	metrics  interfaces.IMetrics
	logger   *zap.Logger
	now      func() time.Time
}

var _ IRemovalStore = (*RemovalStore)(nil)

func NewRemovalStore(repo interfaces.IRemovalRepository, prices interfaces.IPriceRepository, notifier interfaces.INotifier, metrics interfaces.IMetrics, logger *zap.Logger) *RemovalStore {
	if metrics == nil {
		metrics = noopMetrics{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RemovalStore{
		repo:     repo,
		prices:   prices,
		notifier: notifier,
		metrics:  metrics,
		logger:   logger.Named("removal_store"),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// WithClock replaces the time source, for tests.
func (s *RemovalStore) WithClock(now func() time.Time) *RemovalStore {
	s.now = now
	return s
}

func (s *RemovalStore) Now() time.Time {
	return s.now()
}

var intakeRoles = []entities.Role{entities.RoleCliente, entities.RoleReceptor, entities.RoleAdmin}

func (s *RemovalStore) Create(ctx context.Context, actor entities.Actor, cmd CreateRemovalCommand) (entities.Removal, error) {
	if !roleIn(actor.Role, intakeRoles) {
		return entities.Removal{}, reject("create", ErrForbiddenRole, "role %q", actor.Role)
	}
	if err := validateCreate(cmd); err != nil {
		return entities.Removal{}, err
	}

	code := strings.TrimSpace(cmd.Code)
	if code != "" {
		if existing, err := s.repo.GetByCode(ctx, code); err != nil {
			return entities.Removal{}, err
		} else if existing.ID != "" {
			return entities.Removal{}, reject(entities.OpAssignCode, ErrDuplicateCode, "code %q", code)
		}
	}

	now := s.now()
	r := entities.Removal{
		ID:                     uuid.NewString(),
		Code:                   code,
		Status:                 entities.RemovalStatusSolicitada,
		Modality:               cmd.Modality,
		Pet:                    cmd.Pet,
		Address:                cmd.Address,
		PaymentMethod:          cmd.PaymentMethod,
		Additionals:            append([]entities.Additional(nil), cmd.Additionals...),
		ScheduledDate:          cmd.ScheduledDate,
		ScheduledTime:          cmd.ScheduledTime,
		FarewellSchedulingInfo: cmd.FarewellSchedulingInfo,
		CreatedByID:            actor.ID,
		CreatedByName:          actor.DisplayName(),
		Version:                1,
		CreatedAt:              now,
		UpdatedAt:              now,
	}
	if cmd.ScheduledDate != "" {
		r.Status = entities.RemovalStatusAgendada
	}

	if cmd.Value != nil {
		r.Value = *cmd.Value
	} else {
		r.Value = s.initialValue(ctx, r)
	}

	if len(r.History) == 0 {
		action := fmt.Sprintf("Remoção solicitada por %s", actor.DisplayName())
		if r.Status == entities.RemovalStatusAgendada {
			action = fmt.Sprintf("Remoção agendada por %s para %s %s", actor.DisplayName(), r.ScheduledDate, r.ScheduledTime)
		}
		r.History = []entities.HistoryEntry{historyEntry(now, actor, action)}
	}

	created, err := s.repo.Create(ctx, r)
	if err != nil {
		if errors.Is(err, interfaces.ErrCodeTaken) {
			return entities.Removal{}, reject(entities.OpAssignCode, ErrDuplicateCode, "code %q", code)
		}
		s.logger.Error("create failed", zap.String("removal_id", r.ID), zap.Error(err))
		return entities.Removal{}, err
	}
	s.logger.Info("removal created", zap.String("removal_id", created.ID), zap.String("status", string(created.Status)))

	s.notify(ctx, entities.NotifyRole(entities.RoleReceptor,
		fmt.Sprintf("Nova remoção: %s (%s)", created.Pet.Name, created.CreatedByName), created.ID))
	return created, nil
}

// initialValue prices a new removal: base price plus additionals. A missing price contributes zero.
func (s *RemovalStore) initialValue(ctx context.Context, r entities.Removal) decimal.Decimal {
	value := pricing.AdditionalsTotal(r.Additionals, r.CustomAdditionals)
	if s.prices == nil || !r.Modality.IsValid() {
		return value
	}
	table, err := s.prices.Get(ctx)
	if err != nil {
		s.logger.Warn("price table unavailable, removal created without base price", zap.Error(err))
		return value
	}
	if base, ok := pricing.BasePrice(table, r); ok {
		value = value.Add(base)
	} else {
		s.logger.Warn("price table gap",
			zap.String("region", string(pricing.RegionFromAddress(r.Address))),
			zap.String("bracket", r.Pet.Weight),
			zap.String("modality", string(r.Modality)),
		)
	}
	return value
}

func validateCreate(cmd CreateRemovalCommand) error {
	if strings.TrimSpace(cmd.Pet.Name) == "" {
		return reject("create", ErrValidation, "pet name is required")
	}
	if strings.TrimSpace(cmd.Pet.Species) == "" {
		return reject("create", ErrValidation, "pet species is required")
	}
	if cmd.Modality != "" && !cmd.Modality.IsValid() {
		return reject("create", ErrValidation, "unknown modality %q", cmd.Modality)
	}
	if (cmd.ScheduledDate == "") != (cmd.ScheduledTime == "") {
		return reject("create", ErrValidation, "scheduled date and time must be given together")
	}
	if cmd.ScheduledDate != "" {
		if _, err := time.Parse(scheduleLayout, cmd.ScheduledDate+" "+cmd.ScheduledTime); err != nil {
			return reject("create", ErrValidation, "invalid schedule %q %q", cmd.ScheduledDate, cmd.ScheduledTime)
		}
	}
	for _, a := range cmd.Additionals {
		if strings.TrimSpace(a.Type) == "" || a.Quantity <= 0 || a.Value.IsNegative() {
			return reject("create", ErrValidation, "invalid additional %q", a.Type)
		}
	}
	return nil
}

func (s *RemovalStore) Get(ctx context.Context, id string) (entities.Removal, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Removal{}, ErrInvalidRemovalID
	}
	r, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return entities.Removal{}, err
	}
	if r.ID == "" {
		return entities.Removal{}, ErrRemovalNotFound
	}
	return r, nil
}

func (s *RemovalStore) GetByCode(ctx context.Context, code string) (entities.Removal, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return entities.Removal{}, ErrInvalidRemovalID
	}
	r, err := s.repo.GetByCode(ctx, code)
	if err != nil {
		return entities.Removal{}, err
	}
	if r.ID == "" {
		return entities.Removal{}, ErrRemovalNotFound
	}
	return r, nil
}

func (s *RemovalStore) List(ctx context.Context, filter interfaces.RemovalFilter) ([]entities.Removal, error) {
	return s.repo.List(ctx, filter)
}

// Update applies mutate to the stored removal. expectedVersion 0 skips the caller-side staleness
// check; the repository write is always conditional on the version that was read.
func (s *RemovalStore) Update(ctx context.Context, id string, expectedVersion int, mutate RemovalMutation) (entities.Removal, error) {
	current, err := s.Get(ctx, id)
	if err != nil {
		return entities.Removal{}, err
	}
	if expectedVersion != 0 && expectedVersion != current.Version {
		return entities.Removal{}, fmt.Errorf("%w: expected version %d, stored %d", ErrVersionConflict, expectedVersion, current.Version)
	}

	next, err := s.apply(current, mutate)
	if err != nil {
		return entities.Removal{}, err
	}

	updated, err := s.repo.Update(ctx, next, current.Version)
	if err != nil {
		if errors.Is(err, interfaces.ErrCodeTaken) {
			return entities.Removal{}, reject(entities.OpAssignCode, ErrDuplicateCode, "code %q", next.Code)
		}
		return entities.Removal{}, err
	}
	if updated.ID == "" {
		return entities.Removal{}, ErrRemovalNotFound
	}

	s.emitChangeNotifications(ctx, current, updated)
	return updated, nil
}

// UpdateMultiple applies the same mutation to every removal whose code is listed. All mutations
// are validated first and the group is written in one atomic repository call, so either every
// member changes or none does. One batch-level notification replaces per-entity ones.
func (s *RemovalStore) UpdateMultiple(ctx context.Context, codes []string, mutate RemovalMutation, n *entities.Notification) ([]entities.Removal, error) {
	if len(codes) == 0 {
		return nil, reject("update_multiple", ErrValidation, "no removal codes given")
	}

	type pending struct {
		current entities.Removal
		next    entities.Removal
	}
	seen := make(map[string]bool, len(codes))
	work := make([]pending, 0, len(codes))
	for _, code := range codes {
		code = strings.TrimSpace(code)
		if seen[code] {
			continue
		}
		seen[code] = true

		current, err := s.GetByCode(ctx, code)
		if err != nil {
			return nil, fmt.Errorf("removal %q: %w", code, err)
		}
		next, err := s.apply(current, mutate)
		if err != nil {
			return nil, err
		}
		work = append(work, pending{current: current, next: next})
	}

	updates := make([]interfaces.RemovalUpdate, 0, len(work))
	for _, w := range work {
		updates = append(updates, interfaces.RemovalUpdate{Removal: w.next, ExpectedVersion: w.current.Version})
	}
	out, err := s.repo.UpdateMany(ctx, updates)
	if err != nil {
		s.logger.Warn("group update rejected, nothing written",
			zap.Int("total", len(work)),
			zap.Error(err),
		)
		return nil, err
	}
	if len(out) != len(work) {
		return nil, ErrRemovalNotFound
	}

	if n != nil {
		s.notify(ctx, *n)
	}
	return out, nil
}

func (s *RemovalStore) AssignCode(ctx context.Context, actor entities.Actor, id, code string, expectedVersion int) (entities.Removal, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return entities.Removal{}, reject(entities.OpAssignCode, ErrValidation, "code is required")
	}
	if existing, err := s.repo.GetByCode(ctx, code); err != nil {
		return entities.Removal{}, err
	} else if existing.ID != "" && existing.ID != id {
		return entities.Removal{}, reject(entities.OpAssignCode, ErrDuplicateCode, "code %q", code)
	}

	return s.Update(ctx, id, expectedVersion, func(r *entities.Removal) error {
		if _, err := checkRule(entities.OpAssignCode, actor, *r); err != nil {
			return err
		}
		if r.Code == code {
			return reject(entities.OpAssignCode, ErrValidation, "code unchanged")
		}
		previous := r.Code
		r.Code = code
		action := fmt.Sprintf("Código %s atribuído por %s", code, actor.DisplayName())
		if previous != "" {
			action = fmt.Sprintf("Código alterado de %s para %s por %s", previous, code, actor.DisplayName())
		}
		r.History = append(r.History, historyEntry(s.now(), actor, action))
		return nil
	})
}

// apply runs mutate on a copy and enforces the append-only history.
func (s *RemovalStore) apply(current entities.Removal, mutate RemovalMutation) (entities.Removal, error) {
	next := current.Clone()
	if err := mutate(&next); err != nil {
		return entities.Removal{}, err
	}
	next.ID = current.ID
	next.Version = current.Version
	next.CreatedAt = current.CreatedAt
	if !historyExtends(current.History, next.History) {
		return entities.Removal{}, fmt.Errorf("%w: removal %s", ErrHistoryRewrite, current.ID)
	}
	next.UpdatedAt = s.now()
	return next, nil
}

func historyExtends(old, next []entities.HistoryEntry) bool {
	if len(next) < len(old) {
		return false
	}
	for i := range old {
		if old[i] != next[i] {
			return false
		}
	}
	return true
}

func (s *RemovalStore) emitChangeNotifications(ctx context.Context, before, after entities.Removal) {
	if before.Code == "" && after.Code != "" {
		msg := fmt.Sprintf("Código %s atribuído à remoção de %s", after.Code, after.Pet.Name)
		for _, role := range []entities.Role{entities.RoleReceptor, entities.RoleMotorista, entities.RoleFinanceiroJunior} {
			s.notify(ctx, entities.NotifyRole(role, msg, after.ID))
		}
	}
	if before.Status != after.Status {
		if n, ok := statusNotification(after); ok {
			s.notify(ctx, n)
		}
	}
}

// statusNotification maps the new status of a single-removal update to its recipient.
// Billing-lote statuses are announced once per group by UpdateMultiple instead.
func statusNotification(r entities.Removal) (entities.Notification, bool) {
	label := r.Pet.Name
	if r.Code != "" {
		label = r.Code + " - " + r.Pet.Name
	}
	switch r.Status {
	case entities.RemovalStatusSolicitada:
		return entities.NotifyRole(entities.RoleReceptor, fmt.Sprintf("Remoção agendada liberada: %s", label), r.ID), true
	case entities.RemovalStatusEmAndamento:
		if r.AssignedDriverID == "" {
			return entities.Notification{}, false
		}
		return entities.NotifyUser(r.AssignedDriverID, fmt.Sprintf("Nova remoção direcionada a você: %s", label), r.ID), true
	case entities.RemovalStatusACaminho:
		if r.CreatedByID == "" {
			return entities.Notification{}, false
		}
		return entities.NotifyUser(r.CreatedByID, fmt.Sprintf("O motorista está a caminho: %s", label), r.ID), true
	case entities.RemovalStatusConcluida:
		return entities.NotifyRole(entities.RoleOperacional, fmt.Sprintf("Remoção concluída pelo motorista: %s", label), r.ID), true
	case entities.RemovalStatusAguardandoFinanceiroJunior:
		return entities.NotifyRole(entities.RoleFinanceiroJunior, fmt.Sprintf("Remoção aguardando conferência financeira: %s", label), r.ID), true
	case entities.RemovalStatusAguardandoBaixaMaster:
		return entities.NotifyRole(entities.RoleFinanceiroMaster, fmt.Sprintf("Remoção aguardando baixa: %s", label), r.ID), true
	case entities.RemovalStatusProntoParaEntrega:
		return entities.NotifyRole(entities.RoleReceptor, fmt.Sprintf("Pronto para entrega: %s", label), r.ID), true
	}
	return entities.Notification{}, false
}

// notify is fire-and-forget: failures are logged and counted, never returned.
func (s *RemovalStore) notify(ctx context.Context, n entities.Notification) {
	if s.notifier == nil {
		return
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = s.now()
	}
	if err := s.notifier.Notify(ctx, n); err != nil {
		s.metrics.NotificationSent("inbox", false)
		s.logger.Warn("notification not delivered",
			zap.String("recipient_role", string(n.RecipientRole)),
			zap.String("recipient_id", n.RecipientID),
			zap.Error(err),
		)
		return
	}
	s.metrics.NotificationSent("inbox", true)
}

func roleIn(role entities.Role, roles []entities.Role) bool {
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}
