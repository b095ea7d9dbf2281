package repository

import (
	"context"

	"Wayfare-App/internal/domain/model"
)

// TripsRepository TripStateスナップショットの保管庫。
// プランはセッションを跨いで永続化しないため、実装はインメモリのみ。
type TripsRepository interface {
	// Save スナップショットをまるごと差し替える（新規作成にも使う）
	Save(ctx context.Context, trip *model.TripState) error
	// Get 指定IDのTripStateのコピーを返す
	Get(ctx context.Context, id string) (*model.TripState, error)
	// Delete 指定IDのTripStateを削除する
	Delete(ctx context.Context, id string) error
}
