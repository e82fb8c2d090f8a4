package repository

import (
	"context"

	"github.com/alexanderramin/pulseplan/internal/db"
	"github.com/alexanderramin/pulseplan/internal/domain"
)

const profileKey = "profile"

// KVUserProfileRepo stores the singleton profile record.
type KVUserProfileRepo struct {
	kv *KV
}

func NewKVUserProfileRepo(conn db.DBTX) *KVUserProfileRepo {
	return &KVUserProfileRepo{kv: NewKV(conn)}
}

func (r *KVUserProfileRepo) Get(ctx context.Context) (*domain.UserProfile, error) {
	var p domain.UserProfile
	if err := r.kv.Get(ctx, profileKey, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *KVUserProfileRepo) Upsert(ctx context.Context, p *domain.UserProfile) error {
	return r.kv.Set(ctx, profileKey, p)
}
