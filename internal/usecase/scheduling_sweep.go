package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cremacao_pet/internal/domain/entities"
	"cremacao_pet/internal/usecase/interfaces"

	"go.uber.org/zap"
)

const (
	dateLayout     = "2006-01-02"
	scheduleLayout = "2006-01-02 15:04"

	// DefaultPromotionWindow is how long after its scheduled time an agendada removal is still promoted.
	DefaultPromotionWindow = 10 * time.Minute
)

// ISchedulingSweep promotes scheduled removals whose time has just arrived.
//
// PromoteScheduled is idempotent: a promoted removal is no longer agendada, and removals whose
// time passed more than the window ago are skipped.

type ISchedulingSweep interface {
	PromoteScheduled(ctx context.Context, now time.Time) (int, error)
}

type SchedulingSweep struct {
	store    IRemovalStore
	metrics  interfaces.IMetrics
	logger   *zap.Logger
	location *time.Location
	window   time.Duration
}

var _ ISchedulingSweep = (*SchedulingSweep)(nil)

// NewSchedulingSweep interprets scheduled dates in loc (UTC when nil).
func NewSchedulingSweep(store IRemovalStore, metrics interfaces.IMetrics, logger *zap.Logger, loc *time.Location, window time.Duration) *SchedulingSweep {
	if metrics == nil {
		metrics = noopMetrics{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if loc == nil {
		loc = time.UTC
	}
	if window <= 0 {
		window = DefaultPromotionWindow
	}
	return &SchedulingSweep{
		store:    store,
		metrics:  metrics,
		logger:   logger.Named("scheduling_sweep"),
		location: loc,
		window:   window,
	}
}

func (s *SchedulingSweep) PromoteScheduled(ctx context.Context, now time.Time) (int, error) {
	scheduled, err := s.store.List(ctx, interfaces.RemovalFilter{Status: entities.RemovalStatusAgendada})
	if err != nil {
		return 0, err
	}

	promoted := 0
	for _, r := range scheduled {
		at, err := time.ParseInLocation(scheduleLayout, r.ScheduledDate+" "+r.ScheduledTime, s.location)
		if err != nil {
			s.logger.Warn("unparseable schedule", zap.String("removal_id", r.ID), zap.String("date", r.ScheduledDate), zap.String("time", r.ScheduledTime))
			continue
		}
		elapsed := now.Sub(at)
		if elapsed < 0 || elapsed >= s.window {
			continue
		}

		_, err = s.store.Update(ctx, r.ID, r.Version, func(rem *entities.Removal) error {
			rule, err := checkRule(entities.OpPromoteScheduled, entities.SystemActor, *rem)
			if err != nil {
				return err
			}
			rem.Status = rule.To
			rem.History = append(rem.History, historyEntry(now.UTC(), entities.SystemActor,
				fmt.Sprintf("Horário agendado atingido (%s %s), remoção liberada automaticamente", rem.ScheduledDate, rem.ScheduledTime)))
			return nil
		})
		if err != nil {
			// A concurrent manual action won; the next tick sees the new state.
			if errors.Is(err, ErrVersionConflict) || errors.Is(err, ErrInvalidTransition) {
				s.logger.Info("scheduled removal changed concurrently, skipped", zap.String("removal_id", r.ID))
				continue
			}
			s.logger.Error("promotion failed", zap.String("removal_id", r.ID), zap.Error(err))
			continue
		}
		s.metrics.TransitionApplied(entities.OpPromoteScheduled, entities.RemovalStatusSolicitada)
		promoted++
	}

	if promoted > 0 {
		s.metrics.ScheduledPromoted(promoted)
		s.logger.Info("scheduled removals promoted", zap.Int("count", promoted))
	}
	return promoted, nil
}
