package interfaces

import (
	"context"

	"cremacao_pet/internal/domain/entities"
)

// INotifier delivers inbox notifications. It is fire-and-forget for the transition engine:
// a failed delivery is logged, never rolled back.

type INotifier interface {
	Notify(ctx context.Context, n entities.Notification) error
}

// IMessenger sends an outbound message through an external channel (e.g. WhatsApp).

type IMessenger interface {
	SendMessage(ctx context.Context, phone, message string) error
}

// ILocker provides the single-runner guard of the scheduling sweep.

type ILocker interface {
	TryLock(ctx context.Context, key string) (bool, error)
	Unlock(ctx context.Context, key string) error
}
