package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/pulseplan/internal/db"
	"github.com/alexanderramin/pulseplan/internal/domain"
	"github.com/alexanderramin/pulseplan/internal/repository"
	"github.com/alexanderramin/pulseplan/internal/sleep"
)

type sleepService struct {
	sessions repository.SleepSessionRepo
	history  repository.SleepHistoryRepo
	uow      db.UnitOfWork
	observer UseCaseObserver
}

func NewSleepService(
	sessions repository.SleepSessionRepo,
	history repository.SleepHistoryRepo,
	uow db.UnitOfWork,
	observers ...UseCaseObserver,
) SleepService {
	return &sleepService{
		sessions: sessions,
		history:  history,
		uow:      uow,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *sleepService) CompleteSession(ctx context.Context, session *domain.SleepSession) (err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{
		"session_id":   session.ID,
		"duration_min": session.DurationMinutes,
		"manual":       session.Manual,
	}
	defer func() {
		observe(ctx, s.observer, "complete-sleep-session", startedAt, fields, err)
	}()

	if session.EndTime.Before(session.StartTime) {
		return fmt.Errorf("sleep session ends before it starts")
	}

	// The history total belongs to the wake date. Session and history
	// commit together: a crash between the two writes must not leave a
	// session without its daily total.
	entry := domain.SleepHistoryEntry{
		Date:  domain.DateKey(session.EndTime),
		Hours: float64(session.DurationMinutes) / 60.0,
	}
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if err := repository.NewKVSleepSessionRepo(tx).Save(ctx, session); err != nil {
			return fmt.Errorf("saving sleep session: %w", err)
		}
		if err := repository.NewKVSleepHistoryRepo(tx).Upsert(ctx, entry); err != nil {
			return fmt.Errorf("upserting sleep history: %w", err)
		}
		return nil
	})
	return err
}

func (s *sleepService) AddManualSession(ctx context.Context, start, end time.Time) (*domain.SleepSession, error) {
	if !end.After(start) {
		return nil, fmt.Errorf("sleep session must end after it starts")
	}
	session := sleep.ManualSession(start, end)
	if err := s.CompleteSession(ctx, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (s *sleepService) RecentSessions(ctx context.Context, limit int) ([]domain.SleepSession, error) {
	return s.sessions.ListRecent(ctx, limit)
}

func (s *sleepService) RecentHistory(ctx context.Context, limit int) ([]domain.SleepHistoryEntry, error) {
	return s.history.ListRecent(ctx, limit)
}
