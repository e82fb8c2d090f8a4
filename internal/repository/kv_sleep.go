package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/pulseplan/internal/db"
	"github.com/alexanderramin/pulseplan/internal/domain"
)

// KVSleepHistoryRepo stores at most one sleep total per calendar date.
type KVSleepHistoryRepo struct {
	kv *KV
}

func NewKVSleepHistoryRepo(conn db.DBTX) *KVSleepHistoryRepo {
	return &KVSleepHistoryRepo{kv: NewKV(conn)}
}

func sleepHistoryKey(date string) string {
	return "sleep_history:" + date
}

func (r *KVSleepHistoryRepo) Upsert(ctx context.Context, e domain.SleepHistoryEntry) error {
	if e.Date == "" {
		return fmt.Errorf("sleep history entry has no date")
	}
	return r.kv.Set(ctx, sleepHistoryKey(e.Date), e)
}

func (r *KVSleepHistoryRepo) ListRecent(ctx context.Context, limit int) ([]domain.SleepHistoryEntry, error) {
	// YYYY-MM-DD keys sort chronologically; descending gives newest first.
	raws, err := r.kv.listPrefix(ctx, "sleep_history:", true, limit)
	if err != nil {
		return nil, err
	}
	return decodeAll[domain.SleepHistoryEntry](raws)
}

// KVSleepSessionRepo stores completed sessions keyed by start time, so a
// prefix scan returns them in chronological key order.
type KVSleepSessionRepo struct {
	kv *KV
}

func NewKVSleepSessionRepo(conn db.DBTX) *KVSleepSessionRepo {
	return &KVSleepSessionRepo{kv: NewKV(conn)}
}

func sleepSessionKey(s *domain.SleepSession) string {
	return fmt.Sprintf("sleep_session:%s:%s", s.StartTime.UTC().Format(time.RFC3339), s.ID)
}

func (r *KVSleepSessionRepo) Save(ctx context.Context, s *domain.SleepSession) error {
	if s.ID == "" {
		return fmt.Errorf("sleep session has no id")
	}
	return r.kv.Set(ctx, sleepSessionKey(s), s)
}

func (r *KVSleepSessionRepo) ListRecent(ctx context.Context, limit int) ([]domain.SleepSession, error) {
	raws, err := r.kv.listPrefix(ctx, "sleep_session:", true, limit)
	if err != nil {
		return nil, err
	}
	return decodeAll[domain.SleepSession](raws)
}
