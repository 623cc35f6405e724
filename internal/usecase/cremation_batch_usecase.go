package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"cremacao_pet/internal/domain/entities"
	"cremacao_pet/internal/usecase/interfaces"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ICremationBatchUseCase groups individual removals into one furnace run.
//
// Lifecycle:
//   - CreateBatch: 1..4 open finalizada removals -> em_lote_cremacao, items past 4 are refused
//   - AddBatchItem: one more member while the batch is unstarted and under capacity
//   - StartBatch: stamps StartedAt (a second call overwrites it)
//   - FinishBatch: stamps FinishedAt, members -> cremado, one role-wide notification

type ICremationBatchUseCase interface {
	CreateBatch(ctx context.Context, actor entities.Actor, items []entities.BatchItem, operatorName string) (entities.CremationBatch, error)
	AddBatchItem(ctx context.Context, actor entities.Actor, batchID string, item entities.BatchItem) (entities.CremationBatch, error)
	StartBatch(ctx context.Context, actor entities.Actor, batchID, operatorName string) (entities.CremationBatch, error)
	FinishBatch(ctx context.Context, actor entities.Actor, batchID, operatorName string) (entities.CremationBatch, error)
	GetByID(ctx context.Context, id string) (entities.CremationBatch, error)
	List(ctx context.Context) ([]entities.CremationBatch, error)
}

type CremationBatchUseCase struct {
	repo     interfaces.ICremationBatchRepository
	store    IRemovalStore
	notifier interfaces.INotifier
	metrics  interfaces.IMetrics
	logger   *zap.Logger
	now      func() time.Time
}

var _ ICremationBatchUseCase = (*CremationBatchUseCase)(nil)

func NewCremationBatchUseCase(repo interfaces.ICremationBatchRepository, store IRemovalStore, notifier interfaces.INotifier, metrics interfaces.IMetrics, logger *zap.Logger) *CremationBatchUseCase {
	if metrics == nil {
		metrics = noopMetrics{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CremationBatchUseCase{
		repo:     repo,
		store:    store,
		notifier: notifier,
		metrics:  metrics,
		logger:   logger.Named("cremation_batch"),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// WithClock replaces the time source, for tests.
func (u *CremationBatchUseCase) WithClock(now func() time.Time) *CremationBatchUseCase {
	u.now = now
	return u
}

// CreateBatch stores a batch with the first MaxBatchItems items. Items past the furnace capacity
// are refused: the stored batch is returned together with an ErrBatchCapacity rejection.
func (u *CremationBatchUseCase) CreateBatch(ctx context.Context, actor entities.Actor, items []entities.BatchItem, operatorName string) (entities.CremationBatch, error) {
	op := entities.OpAddToBatch
	if err := u.checkRole(op, actor); err != nil {
		return entities.CremationBatch{}, err
	}
	if len(items) == 0 {
		return entities.CremationBatch{}, reject(op, ErrValidation, "a batch needs at least one removal")
	}
	var overflow []entities.BatchItem
	if len(items) > entities.MaxBatchItems {
		items, overflow = items[:entities.MaxBatchItems], items[entities.MaxBatchItems:]
	}

	admitted := entities.CremationBatch{}
	members := make([]entities.Removal, 0, len(items))
	for _, it := range items {
		item, member, err := u.admit(ctx, op, actor, admitted, it)
		if err != nil {
			return entities.CremationBatch{}, err
		}
		admitted.Items = append(admitted.Items, item)
		members = append(members, member)
	}

	now := u.now()
	operator := strings.TrimSpace(operatorName)
	if operator == "" {
		operator = actor.DisplayName()
	}
	batch, err := u.repo.Create(ctx, entities.CremationBatch{
		ID:           uuid.NewString(),
		Items:        admitted.Items,
		OperatorName: operator,
		CreatedAt:    now,
	})
	if err != nil {
		return entities.CremationBatch{}, err
	}

	action := fmt.Sprintf("Incluído no lote de cremação %s por %s", batch.ID, operator)
	for _, m := range members {
		if err := u.moveMember(ctx, op, actor, m, now, action, func(r *entities.Removal) {
			r.BatchID = batch.ID
		}); err != nil {
			return batch, err
		}
	}

	u.logger.Info("cremation batch created", zap.String("batch_id", batch.ID), zap.Int("items", len(batch.Items)))
	if len(overflow) > 0 {
		codes := make([]string, 0, len(overflow))
		for _, it := range overflow {
			codes = append(codes, strings.TrimSpace(it.RemovalCode))
		}
		u.logger.Warn("cremation batch full, items refused", zap.String("batch_id", batch.ID), zap.Strings("codes", codes))
		return batch, reject(op, ErrBatchCapacity, "furnace holds %d, not added: %s", entities.MaxBatchItems, strings.Join(codes, ", "))
	}
	return batch, nil
}

// AddBatchItem places one more removal in a batch that has not started yet.
func (u *CremationBatchUseCase) AddBatchItem(ctx context.Context, actor entities.Actor, batchID string, item entities.BatchItem) (entities.CremationBatch, error) {
	op := entities.OpAddToBatch
	if err := u.checkRole(op, actor); err != nil {
		return entities.CremationBatch{}, err
	}
	batch, err := u.GetByID(ctx, batchID)
	if err != nil {
		return entities.CremationBatch{}, err
	}
	if batch.IsFinished() {
		return entities.CremationBatch{}, ErrBatchAlreadyFinished
	}
	if batch.IsStarted() {
		return entities.CremationBatch{}, reject(op, ErrInvalidTransition, "batch %s already started", batch.ID)
	}
	if len(batch.Items) >= entities.MaxBatchItems {
		return entities.CremationBatch{}, reject(op, ErrBatchCapacity, "furnace holds %d", entities.MaxBatchItems)
	}

	admitted, member, err := u.admit(ctx, op, actor, batch, item)
	if err != nil {
		return entities.CremationBatch{}, err
	}
	batch.Items = append(batch.Items, admitted)
	batch, err = u.repo.Update(ctx, batch)
	if err != nil {
		return entities.CremationBatch{}, err
	}

	action := fmt.Sprintf("Incluído no lote de cremação %s por %s", batch.ID, actor.DisplayName())
	if err := u.moveMember(ctx, op, actor, member, u.now(), action, func(r *entities.Removal) {
		r.BatchID = batch.ID
	}); err != nil {
		return batch, err
	}
	return batch, nil
}

// admit validates one item against the batch so far and loads its removal.
func (u *CremationBatchUseCase) admit(ctx context.Context, op entities.Operation, actor entities.Actor, batch entities.CremationBatch, it entities.BatchItem) (entities.BatchItem, entities.Removal, error) {
	code := strings.TrimSpace(it.RemovalCode)
	if code == "" {
		return entities.BatchItem{}, entities.Removal{}, reject(op, ErrValidation, "removal codes must be present and distinct")
	}
	if !it.Position.IsValid() {
		return entities.BatchItem{}, entities.Removal{}, reject(op, ErrValidation, "invalid or repeated furnace position %q", it.Position)
	}
	for _, existing := range batch.Items {
		if existing.RemovalCode == code {
			return entities.BatchItem{}, entities.Removal{}, reject(op, ErrValidation, "removal codes must be present and distinct")
		}
		if existing.Position == it.Position {
			return entities.BatchItem{}, entities.Removal{}, reject(op, ErrValidation, "invalid or repeated furnace position %q", it.Position)
		}
	}

	r, err := u.store.GetByCode(ctx, code)
	if err != nil {
		return entities.BatchItem{}, entities.Removal{}, fmt.Errorf("removal %q: %w", code, err)
	}
	if _, err := checkRule(op, actor, r); err != nil {
		return entities.BatchItem{}, entities.Removal{}, err
	}
	if !r.Modality.IsIndividual() {
		return entities.BatchItem{}, entities.Removal{}, reject(op, ErrInvalidTransition, "removal %s is not individual", code)
	}

	it.RemovalCode = code
	if it.PetName == "" {
		it.PetName = r.Pet.Name
	}
	if it.Weight == "" {
		it.Weight = r.RealWeight.String()
	}
	return it, r, nil
}

func (u *CremationBatchUseCase) StartBatch(ctx context.Context, actor entities.Actor, batchID, operatorName string) (entities.CremationBatch, error) {
	if err := u.checkRole(entities.OpFinishBatch, actor); err != nil {
		return entities.CremationBatch{}, err
	}
	batch, err := u.GetByID(ctx, batchID)
	if err != nil {
		return entities.CremationBatch{}, err
	}
	if batch.IsFinished() {
		return entities.CremationBatch{}, ErrBatchAlreadyFinished
	}
	if batch.IsStarted() {
		u.logger.Warn("cremation batch restarted, start time overwritten",
			zap.String("batch_id", batch.ID),
			zap.Time("previous_started_at", *batch.StartedAt),
		)
	}
	now := u.now()
	batch.StartedAt = &now
	if o := strings.TrimSpace(operatorName); o != "" {
		batch.OperatorName = o
	}
	return u.repo.Update(ctx, batch)
}

func (u *CremationBatchUseCase) FinishBatch(ctx context.Context, actor entities.Actor, batchID, operatorName string) (entities.CremationBatch, error) {
	op := entities.OpFinishBatch
	if err := u.checkRole(op, actor); err != nil {
		return entities.CremationBatch{}, err
	}
	batch, err := u.GetByID(ctx, batchID)
	if err != nil {
		return entities.CremationBatch{}, err
	}
	if !batch.IsStarted() {
		return entities.CremationBatch{}, ErrBatchNotStarted
	}
	if batch.IsFinished() {
		return entities.CremationBatch{}, ErrBatchAlreadyFinished
	}

	members := make([]entities.Removal, 0, len(batch.Items))
	for _, code := range batch.Codes() {
		r, err := u.store.GetByCode(ctx, code)
		if err != nil {
			return entities.CremationBatch{}, fmt.Errorf("removal %q: %w", code, err)
		}
		if _, err := checkRule(op, actor, r); err != nil {
			return entities.CremationBatch{}, err
		}
		members = append(members, r)
	}

	now := u.now()
	batch.FinishedAt = &now
	if o := strings.TrimSpace(operatorName); o != "" {
		batch.OperatorName = o
	}
	batch, err = u.repo.Update(ctx, batch)
	if err != nil {
		return entities.CremationBatch{}, err
	}

	action := fmt.Sprintf("Cremado no lote %s (%s)", batch.ID, batch.OperatorName)
	for _, m := range members {
		if err := u.moveMember(ctx, op, actor, m, now, action, func(r *entities.Removal) {
			date := now
			r.CremationDate = &date
		}); err != nil {
			return batch, err
		}
	}

	if u.notifier != nil {
		n := entities.NotifyRole(entities.RoleOperacional,
			fmt.Sprintf("Lote de cremação %s finalizado: %s", batch.ID, strings.Join(batch.Codes(), ", ")), "")
		n.CreatedAt = now
		if err := u.notifier.Notify(ctx, n); err != nil {
			u.metrics.NotificationSent("inbox", false)
			u.logger.Warn("batch notification not delivered", zap.String("batch_id", batch.ID), zap.Error(err))
		} else {
			u.metrics.NotificationSent("inbox", true)
		}
	}

	u.logger.Info("cremation batch finished", zap.String("batch_id", batch.ID))
	return batch, nil
}

func (u *CremationBatchUseCase) GetByID(ctx context.Context, id string) (entities.CremationBatch, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.CremationBatch{}, ErrBatchNotFound
	}
	b, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.CremationBatch{}, err
	}
	if b.ID == "" {
		return entities.CremationBatch{}, ErrBatchNotFound
	}
	return b, nil
}

func (u *CremationBatchUseCase) List(ctx context.Context) ([]entities.CremationBatch, error) {
	return u.repo.List(ctx)
}

func (u *CremationBatchUseCase) checkRole(op entities.Operation, actor entities.Actor) error {
	rule, _ := entities.RuleFor(op)
	if !rule.AllowsRole(actor.Role) {
		return reject(op, ErrForbiddenRole, "role %q", actor.Role)
	}
	return nil
}

// moveMember applies op to one member removal with a single history entry.
func (u *CremationBatchUseCase) moveMember(ctx context.Context, op entities.Operation, actor entities.Actor, m entities.Removal, now time.Time, action string, set func(r *entities.Removal)) error {
	updated, err := u.store.Update(ctx, m.ID, m.Version, func(r *entities.Removal) error {
		rule, err := checkRule(op, actor, *r)
		if err != nil {
			return err
		}
		set(r)
		r.Status = rule.To
		r.History = append(r.History, historyEntry(now, actor, action))
		return nil
	})
	if err != nil {
		u.metrics.TransitionRejected(op, rejectionReason(err))
		u.logger.Error("batch member not moved", zap.String("removal_id", m.ID), zap.String("op", string(op)), zap.Error(err))
		return err
	}
	u.metrics.TransitionApplied(op, updated.Status)
	return nil
}
