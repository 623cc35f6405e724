package interfaces

import "cremacao_pet/internal/domain/entities"

// IMetrics records business counters. Implementations must be safe for concurrent use.

type IMetrics interface {
	TransitionApplied(op entities.Operation, to entities.RemovalStatus)
	TransitionRejected(op entities.Operation, reason string)
	ScheduledPromoted(n int)
	NotificationSent(channel string, ok bool)
	StockLevel(name string, quantity int)
}
