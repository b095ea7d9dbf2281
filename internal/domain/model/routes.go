package model

// LatLng 緯度経度を表す基本的な型（経路検索などで使用）
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// RouteSummary 経路の距離・所要時間のサマリー。
// どちらも小数第1位までの10進文字列で表現する。
type RouteSummary struct {
	DistanceKm    string `json:"distance_km"`
	DurationHours string `json:"duration_hours"`
}

// GeoBounds 地図表示用のビューポート境界ボックス
type GeoBounds struct {
	MinLat float64 `json:"min_lat"`
	MinLng float64 `json:"min_lng"`
	MaxLat float64 `json:"max_lat"`
	MaxLng float64 `json:"max_lng"`
}

// RouteResult 経路計算の結果
type RouteResult struct {
	Coordinates []LatLng     `json:"coordinates"` // (lat, lng)順のポリライン
	Summary     RouteSummary `json:"summary"`
	Bounds      *GeoBounds   `json:"bounds,omitempty"`
}

// RoadRoute 外部経路検索サービスが返す生の経路情報
type RoadRoute struct {
	Geometry       []LatLng // (lat, lng)に変換済みのジオメトリ
	DurationSec    float64  // サービスが報告した所要秒数
	DistanceMeters float64  // サービスが報告した距離(m)
}
