package service

import (
	"context"
	"fmt"
	"log"
	"sync"

	"Wayfare-App/internal/domain/helper"
	"Wayfare-App/internal/domain/model"
	"Wayfare-App/internal/domain/repository"
)

// TripPlannerService 旅行プランニングのオーケストレーションを行う単一のサービス。
// ジオコーディング→経路計算→（宿泊施設・天気の並行取得）の順で
// 依存関係のある処理を逐次実行し、最後に新しいTripStateスナップショットを返す。
type TripPlannerService interface {
	// PlanTrip 1回のプランニング実行。入力のスナップショットは変更せず、
	// 実行結果を反映した新しいスナップショットを返す。
	// 致命的な失敗（出発地・目的地の解決失敗、地点不足）はLastErrorに載せて返し、
	// Goのエラーとしては返さない。
	PlanTrip(ctx context.Context, trip *model.TripState) *model.TripState
}

type tripPlannerService struct {
	geocoder        GeocoderService
	estimator       RouteEstimator
	lodgingRepo     repository.LodgingRepository
	weatherProvider repository.WeatherProvider
}

// NewTripPlannerService 新しいTripPlannerServiceを生成する
func NewTripPlannerService(
	geocoder GeocoderService,
	estimator RouteEstimator,
	lodgingRepo repository.LodgingRepository,
	weatherProvider repository.WeatherProvider,
) TripPlannerService {
	return &tripPlannerService{
		geocoder:        geocoder,
		estimator:       estimator,
		lodgingRepo:     lodgingRepo,
		weatherProvider: weatherProvider,
	}
}

func (s *tripPlannerService) PlanTrip(ctx context.Context, trip *model.TripState) *model.TripState {
	next := trip.Clone()
	next.LastError = ""
	next.Loading = true

	// どのステップで失敗してもLoadingフラグは必ず下ろす
	defer func() {
		next.Loading = false
	}()

	log.Printf("🚀 プランニング開始 (trip: %s, mode: %s)", next.ID, next.Mode)

	// Step 1: 出発地・目的地の解決。どちらかの失敗は実行全体の失敗
	if next.Origin == nil && next.OriginText != "" {
		next.Origin = s.geocoder.Resolve(ctx, next.OriginText)
		if next.Origin == nil {
			next.LastError = fmt.Sprintf("出発地 %q を解決できませんでした", next.OriginText)
			return next
		}
	}
	if next.Destination == nil && next.DestinationText != "" {
		next.Destination = s.geocoder.Resolve(ctx, next.DestinationText)
		if next.Destination == nil {
			next.LastError = fmt.Sprintf("目的地 %q を解決できませんでした", next.DestinationText)
			return next
		}
	}
	if next.Origin == nil || next.Destination == nil {
		next.LastError = "出発地と目的地の両方を指定してください"
		return next
	}

	// Step 2: 経由地の解決。失敗は致命ではなく、その経由地を経路から除外するだけ。
	// 経由地自体はリストに残る（placeは未解決のまま）。
	for i := range next.Waypoints {
		wp := &next.Waypoints[i]
		if wp.Place == nil && wp.Text != "" {
			wp.Place = s.geocoder.Resolve(ctx, wp.Text)
			if wp.Place == nil {
				log.Printf("⚠️ 経由地 %q を解決できず、経路から除外します", wp.Text)
			}
		}
	}

	// Step 3: 順序付き地点リストを構築して経路計算
	places := next.RoutedPlaces()
	if len(places) < 2 {
		next.LastError = ErrNotEnoughPlaces.Error()
		return next
	}

	route, err := s.estimator.Estimate(ctx, places, next.Mode)
	if err != nil {
		next.LastError = err.Error()
		return next
	}
	next.Route = route

	// Step 4: 目的地周辺の宿泊施設と天気を並行取得。
	// ここでの失敗は吸収して空/なしとし、実行を中断しない。
	s.fetchDestinationExtras(ctx, next)

	log.Printf("✅ プランニング完了 (trip: %s, %skm / %sh, 宿泊施設%d件)",
		next.ID, route.Summary.DistanceKm, route.Summary.DurationHours, len(next.Lodgings))
	return next
}

// fetchDestinationExtras 宿泊施設・現在の天気・予報を並行取得して結果に反映する。
// 3つの取得は互いに独立だが、すべて完了（または失敗吸収）してから戻る。
func (s *tripPlannerService) fetchDestinationExtras(ctx context.Context, trip *model.TripState) {
	dest := trip.Destination
	var wg sync.WaitGroup

	var lodgings []model.Lodging
	var weather *model.WeatherSnapshot
	var forecast []model.ForecastDay

	wg.Add(1)
	go func() {
		defer wg.Done()
		found, err := s.lodgingRepo.FindNearby(ctx, dest.Lat, dest.Lon, model.LodgingSearchRadiusMeters, model.LodgingSearchLimit)
		if err != nil {
			log.Printf("⚠️ 宿泊施設の取得に失敗: %v", err)
			return
		}
		lodgings = found
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		current, err := s.weatherProvider.Current(ctx, dest.Lat, dest.Lon)
		if err != nil {
			log.Printf("⚠️ 現在天気の取得に失敗: %v", err)
			return
		}
		weather = current
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		entries, err := s.weatherProvider.Forecast(ctx, dest.Lat, dest.Lon)
		if err != nil {
			log.Printf("⚠️ 天気予報の取得に失敗: %v", err)
			return
		}
		forecast = helper.BuildForecastDays(entries)
	}()

	wg.Wait()

	if lodgings == nil {
		lodgings = []model.Lodging{}
	}
	if forecast == nil {
		forecast = []model.ForecastDay{}
	}
	trip.Lodgings = lodgings
	trip.Weather = weather
	trip.Forecast = forecast
}
