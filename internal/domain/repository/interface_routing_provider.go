package repository

import (
	"context"

	"Wayfare-App/internal/domain/model"
)

// RoutingProvider 外部の道路経路検索サービスのインターフェース
type RoutingProvider interface {
	// GetRoute 順序付き地点リストに沿った経路を取得する。
	// profileは"driving"・"cycling"・"foot"のいずれか。
	// 経路が取得できない場合（通信失敗・不正レスポンス・ジオメトリ欠落）はエラーを返し、
	// フォールバックの判断は呼び出し側に委ねる。
	GetRoute(ctx context.Context, profile string, points []model.LatLng) (*model.RoadRoute, error)
}
