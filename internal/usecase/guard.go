package usecase

import (
	"time"

	"cremacao_pet/internal/domain/entities"
)

// checkRule enforces the (role, status) table for op on r.
func checkRule(op entities.Operation, actor entities.Actor, r entities.Removal) (entities.TransitionRule, error) {
	rule, ok := entities.RuleFor(op)
	if !ok {
		return entities.TransitionRule{}, reject(op, ErrInvalidTransition, "unknown operation")
	}
	if r.IsTerminal() {
		return rule, reject(op, ErrTerminalStatus, "status %s", r.Status)
	}
	if !rule.AllowsRole(actor.Role) {
		return rule, reject(op, ErrForbiddenRole, "role %q", actor.Role)
	}
	if !rule.AllowsStatus(r.Status) {
		return rule, reject(op, ErrInvalidTransition, "status %s", r.Status)
	}
	return rule, nil
}

func historyEntry(now time.Time, actor entities.Actor, action string) entities.HistoryEntry {
	return entities.HistoryEntry{Date: now, Action: action, User: actor.DisplayName()}
}

type noopMetrics struct{}

func (noopMetrics) TransitionApplied(entities.Operation, entities.RemovalStatus) {}
func (noopMetrics) TransitionRejected(entities.Operation, string) {}
func (noopMetrics) ScheduledPromoted(int) {}
func (noopMetrics) NotificationSent(string, bool) {}
func (noopMetrics) StockLevel(string, int) {}
