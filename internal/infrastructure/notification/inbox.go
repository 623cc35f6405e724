package notification

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"cremacao_pet/internal/domain/entities"
	"cremacao_pet/internal/usecase/interfaces"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const defaultInboxCapacity = 5000

var ErrNotificationNotFound = errors.New("notification not found")

// Inbox is the in-process notification dispatcher: every Notify lands in a bounded, newest-first
// list that users read through the API. The oldest entries are dropped past capacity.
type Inbox struct {
	mu       sync.RWMutex
	items    []entities.Notification
	capacity int
	logger   *zap.Logger
	now      func() time.Time
}

var _ interfaces.INotifier = (*Inbox)(nil)

func NewInbox(capacity int, logger *zap.Logger) *Inbox {
	if capacity <= 0 {
		capacity = defaultInboxCapacity
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Inbox{capacity: capacity, logger: logger.Named("inbox"), now: func() time.Time { return time.Now().UTC() }}
}

func (i *Inbox) Notify(ctx context.Context, n entities.Notification) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if strings.TrimSpace(n.Message) == "" {
		return errors.New("notification message is empty")
	}
	if n.RecipientID == "" && n.RecipientRole == "" {
		return errors.New("notification has no recipient")
	}
	n.ID = uuid.NewString()
	n.Read = false
	if n.CreatedAt.IsZero() {
		n.CreatedAt = i.now()
	}

	i.mu.Lock()
	i.items = append([]entities.Notification{n}, i.items...)
	if len(i.items) > i.capacity {
		i.items = i.items[:i.capacity]
	}
	i.mu.Unlock()

	i.logger.Debug("notification queued",
		zap.String("id", n.ID),
		zap.String("role", string(n.RecipientRole)),
		zap.String("user", n.RecipientID),
		zap.String("removal_id", n.RemovalID),
	)
	return nil
}

// List returns the notifications the actor can see, newest first.
func (i *Inbox) List(_ context.Context, actor entities.Actor, unreadOnly bool) []entities.Notification {
	i.mu.RLock()
	defer i.mu.RUnlock()
	out := make([]entities.Notification, 0)
	for _, n := range i.items {
		if !n.AddressedTo(actor.ID, actor.Role) {
			continue
		}
		if unreadOnly && n.Read {
			continue
		}
		out = append(out, n)
	}
	return out
}

// MarkRead flags one notification. Role-addressed notifications are shared, so reading one marks
// it for the whole role.
func (i *Inbox) MarkRead(_ context.Context, actor entities.Actor, id string) (entities.Notification, error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	for idx, n := range i.items {
		if n.ID != id {
			continue
		}
		if !n.AddressedTo(actor.ID, actor.Role) {
			return entities.Notification{}, ErrNotificationNotFound
		}
		i.items[idx].Read = true
		return i.items[idx], nil
	}
	return entities.Notification{}, ErrNotificationNotFound
}
