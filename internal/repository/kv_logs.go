package repository

import (
	"context"
	"fmt"

	"github.com/alexanderramin/pulseplan/internal/db"
	"github.com/alexanderramin/pulseplan/internal/domain"
)

// KVLogRepo stores the append-only log streams. Keys embed the
// zero-padded epoch-millisecond timestamp so key order is time order.
type KVLogRepo struct {
	kv *KV
}

func NewKVLogRepo(conn db.DBTX) *KVLogRepo {
	return &KVLogRepo{kv: NewKV(conn)}
}

func logKey(stream, id string, timestamp int64) string {
	return fmt.Sprintf("log:%s:%020d:%s", stream, timestamp, id)
}

func appendEntry(ctx context.Context, kv *KV, stream, id string, timestamp int64, v any) error {
	if id == "" {
		return fmt.Errorf("%s log entry has no id", stream)
	}
	return kv.Set(ctx, logKey(stream, id, timestamp), v)
}

func listEntries[T any](ctx context.Context, kv *KV, stream string, limit int) ([]T, error) {
	raws, err := kv.listPrefix(ctx, "log:"+stream+":", true, limit)
	if err != nil {
		return nil, err
	}
	return decodeAll[T](raws)
}

func (r *KVLogRepo) AppendFood(ctx context.Context, e domain.FoodLogEntry) error {
	return appendEntry(ctx, r.kv, "food", e.ID, e.Timestamp, e)
}

func (r *KVLogRepo) AppendActivity(ctx context.Context, e domain.ActivityLogEntry) error {
	return appendEntry(ctx, r.kv, "activity", e.ID, e.Timestamp, e)
}

func (r *KVLogRepo) AppendMood(ctx context.Context, e domain.MoodLogEntry) error {
	return appendEntry(ctx, r.kv, "mood", e.ID, e.Timestamp, e)
}

func (r *KVLogRepo) AppendWeight(ctx context.Context, e domain.WeightLogEntry) error {
	return appendEntry(ctx, r.kv, "weight", e.ID, e.Timestamp, e)
}

func (r *KVLogRepo) AppendWater(ctx context.Context, e domain.WaterLogEntry) error {
	return appendEntry(ctx, r.kv, "water", e.ID, e.Timestamp, e)
}

func (r *KVLogRepo) ListFood(ctx context.Context, limit int) ([]domain.FoodLogEntry, error) {
	return listEntries[domain.FoodLogEntry](ctx, r.kv, "food", limit)
}

func (r *KVLogRepo) ListActivity(ctx context.Context, limit int) ([]domain.ActivityLogEntry, error) {
	return listEntries[domain.ActivityLogEntry](ctx, r.kv, "activity", limit)
}

func (r *KVLogRepo) ListMood(ctx context.Context, limit int) ([]domain.MoodLogEntry, error) {
	return listEntries[domain.MoodLogEntry](ctx, r.kv, "mood", limit)
}

func (r *KVLogRepo) ListWeight(ctx context.Context, limit int) ([]domain.WeightLogEntry, error) {
	return listEntries[domain.WeightLogEntry](ctx, r.kv, "weight", limit)
}

func (r *KVLogRepo) ListWater(ctx context.Context, limit int) ([]domain.WaterLogEntry, error) {
	return listEntries[domain.WaterLogEntry](ctx, r.kv, "water", limit)
}

// Compile-time interface checks.
var (
	_ UserProfileRepo  = (*KVUserProfileRepo)(nil)
	_ PlanRepo         = (*KVPlanRepo)(nil)
	_ SleepHistoryRepo = (*KVSleepHistoryRepo)(nil)
	_ SleepSessionRepo = (*KVSleepSessionRepo)(nil)
	_ LogRepo          = (*KVLogRepo)(nil)
)
