package usecase

import (
	"context"
	"errors"
	"sync"

	"Wayfare-App/internal/domain/model"
	"Wayfare-App/internal/domain/repository"
	"Wayfare-App/internal/domain/service"
)

// ErrNoRouteToAnimate 経路が未計算のトリップはアニメーションできない
var ErrNoRouteToAnimate = errors.New("アニメーションする経路がありません。先にプランニングを実行してください")

// TripAnimationUseCase 計算済み経路に沿ったマーカーアニメーションの配信を司るユースケース。
// トリップごとにアニメーターを1つ保持し、新しい配信の開始は前の配信を必ず置き換える。
type TripAnimationUseCase interface {
	// StreamMarkers トリップの経路に沿ってマーカー位置を順次sendに渡す。
	// sendがfalseを返すか、ctxがキャンセルされるか、経路を走り切ると戻る。
	// 戻る際には必ずアニメーションのタイマーを解放する。
	StreamMarkers(ctx context.Context, tripID string, send func(model.LatLng) bool) error
	// StopAll 全トリップのアニメーションを停止する（シャットダウン用）
	StopAll()
}

type tripAnimationUseCaseImpl struct {
	tripsRepo repository.TripsRepository

	mu        sync.Mutex
	animators map[string]*service.RouteAnimator
}

// NewTripAnimationUseCase 新しいTripAnimationUseCaseインスタンスを作成
func NewTripAnimationUseCase(tripsRepo repository.TripsRepository) TripAnimationUseCase {
	return &tripAnimationUseCaseImpl{
		tripsRepo: tripsRepo,
		animators: make(map[string]*service.RouteAnimator),
	}
}

func (u *tripAnimationUseCaseImpl) StreamMarkers(ctx context.Context, tripID string, send func(model.LatLng) bool) error {
	trip, err := u.tripsRepo.Get(ctx, tripID)
	if err != nil {
		return err
	}
	if trip.Route == nil || len(trip.Route.Coordinates) == 0 {
		return ErrNoRouteToAnimate
	}

	animator := u.animatorFor(tripID)

	// onTickはアニメーターのgoroutineから呼ばれるため、チャネル経由で
	// 呼び出し元のgoroutineに位置を渡す。バッファ超過分は捨てて詰まらせない。
	positions := make(chan model.LatLng, len(trip.Route.Coordinates)+1)
	handle, err := animator.Start(trip.Route.Coordinates, trip.Mode, func(p model.LatLng) {
		select {
		case positions <- p:
		default:
		}
	})
	if err != nil {
		return err
	}
	// 配信終了時に保留中のタイマーを必ず解放する
	defer handle.Cancel()

	for {
		select {
		case <-ctx.Done():
			return nil
		case p := <-positions:
			if !send(p) {
				return nil
			}
		case <-handle.Done():
			// 完走後、届いていない残りの位置を送り切ってから終了する
			for {
				select {
				case p := <-positions:
					if !send(p) {
						return nil
					}
				default:
					return nil
				}
			}
		}
	}
}

func (u *tripAnimationUseCaseImpl) StopAll() {
	u.mu.Lock()
	defer u.mu.Unlock()
	for _, animator := range u.animators {
		animator.Stop()
	}
}

// animatorFor トリップ用のアニメーターを返す（なければ作る）
func (u *tripAnimationUseCaseImpl) animatorFor(tripID string) *service.RouteAnimator {
	u.mu.Lock()
	defer u.mu.Unlock()
	animator, ok := u.animators[tripID]
	if !ok {
		animator = service.NewRouteAnimator()
		u.animators[tripID] = animator
	}
	return animator
}
