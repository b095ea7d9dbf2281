package model

import "time"

// TravelMode は移動手段を表す
type TravelMode string

const (
	ModeCar    TravelMode = "car"
	ModeBike   TravelMode = "bike"
	ModeFlight TravelMode = "flight"
	ModeWalk   TravelMode = "walk"
)

// IsValid 移動手段が有効かどうかをチェック
func (m TravelMode) IsValid() bool {
	switch m {
	case ModeCar, ModeBike, ModeFlight, ModeWalk:
		return true
	default:
		return false
	}
}

// Profile 外部経路検索サービスに渡すプロファイル名を返す。
// flightは外部サービスを呼ばないため空文字を返す。
func (m TravelMode) Profile() string {
	switch m {
	case ModeCar:
		return "driving"
	case ModeBike:
		return "cycling"
	case ModeWalk:
		return "foot"
	default:
		return ""
	}
}

// TickInterval アニメーションのマーカー更新間隔を返す。
// 速い移動手段ほど間隔が短い（実速度とは独立した見た目上の速さ）。
func (m TravelMode) TickInterval() time.Duration {
	switch m {
	case ModeFlight:
		return 50 * time.Millisecond
	case ModeCar:
		return 150 * time.Millisecond
	case ModeBike:
		return 300 * time.Millisecond
	default:
		return 500 * time.Millisecond
	}
}

// 距離・速度に関する定数
const (
	// KmPerDegree 緯度経度1度あたりの概算距離(km)。
	// 高緯度での歪みを含めて、この線形近似をフォールバック経路と揃えて使う。
	KmPerDegree = 111.0

	// FlightSpeedKmh 飛行機の想定巡航速度(km/h)
	FlightSpeedKmh = 800.0
	// CarFallbackSpeedKmh 経路サービス不通時の車の想定速度(km/h)
	CarFallbackSpeedKmh = 60.0
	// CyclingSpeedKmh 自転車の想定速度(km/h)。サービス成功時も所要時間はこの速度で再計算する
	CyclingSpeedKmh = 30.0
	// BikeFallbackSpeedKmh 経路サービス不通時の自転車の想定速度(km/h)
	BikeFallbackSpeedKmh = 20.0
	// WalkFallbackSpeedKmh 経路サービス不通時の徒歩の想定速度(km/h)
	WalkFallbackSpeedKmh = 5.0
)

// 周辺検索・候補表示に関する定数
const (
	// LodgingSearchRadiusMeters 宿泊施設検索の固定半径(m)
	LodgingSearchRadiusMeters = 5000
	// LodgingSearchLimit 宿泊施設の最大取得件数
	LodgingSearchLimit = 10
	// SuggestLimit オートコンプリート候補の最大件数
	SuggestLimit = 6
	// SuggestMinLength 候補検索を発行する最小文字数
	SuggestMinLength = 2
	// SuggestDebounce 入力が止まってから検索を発行するまでの待ち時間
	SuggestDebounce = 300 * time.Millisecond
	// ForecastMaxDays 予報として保持する最大日数
	ForecastMaxDays = 5
)
