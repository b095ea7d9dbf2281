package service

import (
	"context"
	"errors"
	"log"
	"strconv"

	"Wayfare-App/internal/domain/helper"
	"Wayfare-App/internal/domain/model"
	"Wayfare-App/internal/domain/repository"
)

// ErrNotEnoughPlaces 経路計算には2地点以上が必要
var ErrNotEnoughPlaces = errors.New("経路計算には2つ以上の地点が必要です")

// RouteEstimator 移動手段に応じた経路と距離・所要時間を計算するサービス
type RouteEstimator interface {
	Estimate(ctx context.Context, places []model.Place, mode model.TravelMode) (*model.RouteResult, error)
}

type routeEstimator struct {
	routingProvider repository.RoutingProvider
}

// NewRouteEstimator 新しいRouteEstimatorを生成する
func NewRouteEstimator(routingProvider repository.RoutingProvider) RouteEstimator {
	return &routeEstimator{routingProvider: routingProvider}
}

// Estimate 順序付き地点リストと移動手段から経路を計算する。
// 失敗するのは地点が2つ未満の場合のみ。外部サービスの障害は
// 直線フォールバックで内部的に回復し、エラーとして伝播しない。
func (e *routeEstimator) Estimate(ctx context.Context, places []model.Place, mode model.TravelMode) (*model.RouteResult, error) {
	if len(places) < 2 {
		return nil, ErrNotEnoughPlaces
	}

	points := helper.PlacesToLatLngs(places)
	proxyKm := helper.ProxyDistanceKm(points)

	// flightは外部の経路サービスを一切呼ばない
	if mode == model.ModeFlight {
		return buildResult(points, proxyKm, proxyKm/model.FlightSpeedKmh), nil
	}

	road, err := e.routingProvider.GetRoute(ctx, mode.Profile(), points)
	if err != nil || road == nil || len(road.Geometry) == 0 {
		if err != nil {
			log.Printf("⚠️ 経路サービスの呼び出しに失敗、直線フォールバックを使用: %v", err)
		}
		return e.fallbackResult(points, proxyKm, mode), nil
	}

	distanceKm := road.DistanceMeters / 1000
	durationHours := road.DurationSec / 3600
	if mode == model.ModeBike {
		// サービスの距離は信頼するが所要時間は信頼しない。
		// 自転車は想定速度から所要時間を必ず再計算する。
		durationHours = distanceKm / model.CyclingSpeedKmh
	}

	return buildResult(road.Geometry, distanceKm, durationHours), nil
}

// fallbackResult 経路サービスが使えない場合の直線フォールバック。
// ポリラインは入力地点そのもの、所要時間は平面近似距離と想定速度から導出する。
func (e *routeEstimator) fallbackResult(points []model.LatLng, proxyKm float64, mode model.TravelMode) *model.RouteResult {
	speed := model.CarFallbackSpeedKmh
	switch mode {
	case model.ModeBike:
		speed = model.BikeFallbackSpeedKmh
	case model.ModeWalk:
		speed = model.WalkFallbackSpeedKmh
	}
	return buildResult(points, proxyKm, proxyKm/speed)
}

func buildResult(points []model.LatLng, distanceKm, durationHours float64) *model.RouteResult {
	return &model.RouteResult{
		Coordinates: points,
		Summary: model.RouteSummary{
			DistanceKm:    FormatFixed1(distanceKm),
			DurationHours: FormatFixed1(durationHours),
		},
		Bounds: helper.RouteBounds(points),
	}
}

// FormatFixed1 小数第1位までの10進文字列に整形する
func FormatFixed1(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}
