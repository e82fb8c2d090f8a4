package service

import (
	"context"
	"errors"
	"time"

	"github.com/alexanderramin/pulseplan/internal/domain"
	"github.com/alexanderramin/pulseplan/internal/repository"
)

type profileService struct {
	profiles repository.UserProfileRepo
}

func NewProfileService(profiles repository.UserProfileRepo) ProfileService {
	return &profileService{profiles: profiles}
}

func (s *profileService) Get(ctx context.Context) (*domain.UserProfile, error) {
	p, err := s.profiles.Get(ctx)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return defaultProfile(), nil
		}
		return nil, err
	}
	return p, nil
}

func (s *profileService) Update(ctx context.Context, p *domain.UserProfile) error {
	if p.ID == "" {
		p.ID = "default"
	}
	now := time.Now().UTC()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now
	if p.SleepTargetHours <= 0 {
		p.SleepTargetHours = 8
	}
	return s.profiles.Upsert(ctx, p)
}

func defaultProfile() *domain.UserProfile {
	return &domain.UserProfile{
		ID:               "default",
		SleepTargetHours: 8,
		WorkSchedule:     domain.WorkDayShift,
		WorkIntensity:    domain.IntensityModerate,
		MaritalStatus:    domain.StatusSingle,
	}
}
