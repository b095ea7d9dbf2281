package repository

import (
	"context"
	"fmt"
	"sync"

	"Wayfare-App/internal/domain/model"
	"Wayfare-App/internal/domain/repository"
)

// MemoryTripsRepository TripStateのインメモリ実装。
// プランはセッションを跨いで永続化しない方針のため、これが唯一の実装。
// 出し入れは常にClone経由で行い、呼び出し側と内部状態が同じ実体を共有しない。
type MemoryTripsRepository struct {
	mu    sync.RWMutex
	trips map[string]*model.TripState
}

// NewMemoryTripsRepository 新しいインメモリリポジトリを作成
func NewMemoryTripsRepository() repository.TripsRepository {
	return &MemoryTripsRepository{
		trips: make(map[string]*model.TripState),
	}
}

// Save スナップショットをまるごと差し替える（アトミックなスワップ）
func (r *MemoryTripsRepository) Save(ctx context.Context, trip *model.TripState) error {
	if trip == nil || trip.ID == "" {
		return fmt.Errorf("保存するTripStateが不正です")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.trips[trip.ID] = trip.Clone()
	return nil
}

// Get 指定IDのTripStateのコピーを返す
func (r *MemoryTripsRepository) Get(ctx context.Context, id string) (*model.TripState, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	trip, ok := r.trips[id]
	if !ok {
		return nil, fmt.Errorf("トリップ %s が見つかりません", id)
	}
	return trip.Clone(), nil
}

// Delete 指定IDのTripStateを削除する
func (r *MemoryTripsRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.trips[id]; !ok {
		return fmt.Errorf("トリップ %s が見つかりません", id)
	}
	delete(r.trips, id)
	return nil
}
