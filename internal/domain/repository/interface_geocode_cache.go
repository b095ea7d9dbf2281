package repository

import (
	"context"

	"Wayfare-App/internal/domain/model"
)

// GeocodeCache ジオコーディング結果のキャッシュ。
// キャッシュ障害は呼び出し側で吸収し、未キャッシュ動作に縮退する。
type GeocodeCache interface {
	// Get 正規化済みクエリに対するキャッシュ済みPlaceを返す。ミスの場合は(nil, nil)
	Get(ctx context.Context, query string) (*model.Place, error)
	// Set 解決結果をキャッシュする
	Set(ctx context.Context, query string, place *model.Place) error
}
