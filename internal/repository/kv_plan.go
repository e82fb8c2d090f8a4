package repository

import (
	"context"
	"fmt"

	"github.com/alexanderramin/pulseplan/internal/db"
	"github.com/alexanderramin/pulseplan/internal/domain"
)

// KVPlanRepo stores one DailyPlan per calendar date.
type KVPlanRepo struct {
	kv *KV
}

func NewKVPlanRepo(conn db.DBTX) *KVPlanRepo {
	return &KVPlanRepo{kv: NewKV(conn)}
}

func planKey(date string) string {
	return "plan:" + date
}

func (r *KVPlanRepo) GetByDate(ctx context.Context, date string) (*domain.DailyPlan, error) {
	var p domain.DailyPlan
	if err := r.kv.Get(ctx, planKey(date), &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *KVPlanRepo) Save(ctx context.Context, plan *domain.DailyPlan) error {
	if plan.Date == "" {
		return fmt.Errorf("plan has no date")
	}
	return r.kv.Set(ctx, planKey(plan.Date), plan)
}
