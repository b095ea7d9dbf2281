package helper

import (
	"math"

	"github.com/paulmach/orb"

	"Wayfare-App/internal/domain/model"
)

// ProxyDistanceKm 連続する地点ペアの座標差からの平面近似距離(km)を計算する。
// sqrt(Δlat² + Δlon²) * 111 の線形近似で、真の大円距離ではない。
// フォールバック経路や所要時間の導出と一貫させるため、高緯度・広範囲での
// 歪みも含めてこの式をそのまま使う。
func ProxyDistanceKm(points []model.LatLng) float64 {
	total := 0.0
	for i := 1; i < len(points); i++ {
		dLat := points[i].Lat - points[i-1].Lat
		dLng := points[i].Lng - points[i-1].Lng
		total += math.Sqrt(dLat*dLat+dLng*dLng) * model.KmPerDegree
	}
	return total
}

// RouteBounds ポリライン全体を含む境界ボックスを作成する。
// 地図表示用に少し余裕を持たせる（約100m程度）。
func RouteBounds(points []model.LatLng) *model.GeoBounds {
	if len(points) == 0 {
		return nil
	}

	first := orb.Point{points[0].Lng, points[0].Lat}
	bound := orb.Bound{Min: first, Max: first}
	for _, p := range points[1:] {
		bound = bound.Extend(orb.Point{p.Lng, p.Lat})
	}

	padding := 0.001 // 約111m
	bound = bound.Pad(padding)

	return &model.GeoBounds{
		MinLat: bound.Min.Lat(),
		MinLng: bound.Min.Lon(),
		MaxLat: bound.Max.Lat(),
		MaxLng: bound.Max.Lon(),
	}
}

// PlacesToLatLngs Placeのリストを(lat, lng)のリストに変換
func PlacesToLatLngs(places []model.Place) []model.LatLng {
	points := make([]model.LatLng, len(places))
	for i, p := range places {
		points[i] = p.ToLatLng()
	}
	return points
}
