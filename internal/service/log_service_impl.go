package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/alexanderramin/pulseplan/internal/domain"
	"github.com/alexanderramin/pulseplan/internal/repository"
)

type logService struct {
	logs repository.LogRepo
}

func NewLogService(logs repository.LogRepo) LogService {
	return &logService{logs: logs}
}

func stampID(id string) string {
	if id != "" {
		return id
	}
	return uuid.New().String()
}

func stampTime(ts int64) int64 {
	if ts != 0 {
		return ts
	}
	return time.Now().UnixMilli()
}

func (s *logService) AddFood(ctx context.Context, e domain.FoodLogEntry) (*domain.FoodLogEntry, error) {
	e.ID = stampID(e.ID)
	e.Timestamp = stampTime(e.Timestamp)
	if err := s.logs.AppendFood(ctx, e); err != nil {
		return nil, err
	}
	return &e, nil
}

func (s *logService) AddActivity(ctx context.Context, e domain.ActivityLogEntry) (*domain.ActivityLogEntry, error) {
	e.ID = stampID(e.ID)
	e.Timestamp = stampTime(e.Timestamp)
	if err := s.logs.AppendActivity(ctx, e); err != nil {
		return nil, err
	}
	return &e, nil
}

func (s *logService) AddMood(ctx context.Context, e domain.MoodLogEntry) (*domain.MoodLogEntry, error) {
	e.ID = stampID(e.ID)
	e.Timestamp = stampTime(e.Timestamp)
	if err := s.logs.AppendMood(ctx, e); err != nil {
		return nil, err
	}
	return &e, nil
}

func (s *logService) AddWeight(ctx context.Context, e domain.WeightLogEntry) (*domain.WeightLogEntry, error) {
	e.ID = stampID(e.ID)
	e.Timestamp = stampTime(e.Timestamp)
	if err := s.logs.AppendWeight(ctx, e); err != nil {
		return nil, err
	}
	return &e, nil
}

func (s *logService) AddWater(ctx context.Context, e domain.WaterLogEntry) (*domain.WaterLogEntry, error) {
	e.ID = stampID(e.ID)
	e.Timestamp = stampTime(e.Timestamp)
	if err := s.logs.AppendWater(ctx, e); err != nil {
		return nil, err
	}
	return &e, nil
}
