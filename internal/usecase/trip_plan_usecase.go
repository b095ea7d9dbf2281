package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"Wayfare-App/internal/domain/model"
	"Wayfare-App/internal/domain/repository"
	"Wayfare-App/internal/domain/service"
)

// ErrPlanInProgress 同一トリップに対するプランニングは同時に1つだけ
var ErrPlanInProgress = errors.New("このトリップのプランニングは既に実行中です")

// TripPlanUseCase トリップの作成・更新・プランニング実行を司るユースケース
type TripPlanUseCase interface {
	CreateTrip(ctx context.Context, req *model.CreateTripRequest) (*model.TripState, error)
	GetTrip(ctx context.Context, id string) (*model.TripState, error)
	UpdateTrip(ctx context.Context, id string, req *model.UpdateTripRequest) (*model.TripState, error)
	AddWaypoint(ctx context.Context, id, text string) (*model.TripState, error)
	RemoveWaypoint(ctx context.Context, id string, index int) (*model.TripState, error)
	DeleteTrip(ctx context.Context, id string) error

	// PlanTrip プランニングパイプラインを1回実行し、完了後のスナップショットを返す。
	// 同一トリップの実行が進行中の間は、再実行も状態の変更もErrPlanInProgressで拒否する。
	PlanTrip(ctx context.Context, id string) (*model.TripState, error)
}

type tripPlanUseCaseImpl struct {
	tripsRepo repository.TripsRepository
	planner   service.TripPlannerService

	mu       sync.Mutex
	inFlight map[string]struct{} // 実行中トリップのID
}

// NewTripPlanUseCase 新しいTripPlanUseCaseインスタンスを作成
func NewTripPlanUseCase(tripsRepo repository.TripsRepository, planner service.TripPlannerService) TripPlanUseCase {
	return &tripPlanUseCaseImpl{
		tripsRepo: tripsRepo,
		planner:   planner,
		inFlight:  make(map[string]struct{}),
	}
}

func (u *tripPlanUseCaseImpl) CreateTrip(ctx context.Context, req *model.CreateTripRequest) (*model.TripState, error) {
	mode := req.Mode
	if mode == "" {
		mode = model.ModeCar
	}
	if !mode.IsValid() {
		return nil, fmt.Errorf("無効な移動手段です: %s", mode)
	}

	waypoints := make([]model.Waypoint, 0, len(req.Waypoints))
	for _, text := range req.Waypoints {
		waypoints = append(waypoints, model.Waypoint{Text: text})
	}

	trip := &model.TripState{
		ID:              uuid.New().String(),
		OriginText:      req.OriginText,
		DestinationText: req.DestinationText,
		Waypoints:       waypoints,
		Mode:            mode,
		Lodgings:        []model.Lodging{},
		Forecast:        []model.ForecastDay{},
	}

	if err := u.tripsRepo.Save(ctx, trip); err != nil {
		return nil, fmt.Errorf("トリップの保存に失敗: %w", err)
	}
	return trip, nil
}

func (u *tripPlanUseCaseImpl) GetTrip(ctx context.Context, id string) (*model.TripState, error) {
	return u.tripsRepo.Get(ctx, id)
}

func (u *tripPlanUseCaseImpl) UpdateTrip(ctx context.Context, id string, req *model.UpdateTripRequest) (*model.TripState, error) {
	return u.mutateTrip(ctx, id, func(trip *model.TripState) error {
		if req.OriginText != nil && *req.OriginText != trip.OriginText {
			trip.OriginText = *req.OriginText
			trip.Origin = nil // テキスト編集で解決済みPlaceは無効になる
		}
		if req.DestinationText != nil && *req.DestinationText != trip.DestinationText {
			trip.DestinationText = *req.DestinationText
			trip.Destination = nil
		}
		if req.Mode != nil {
			if !req.Mode.IsValid() {
				return fmt.Errorf("無効な移動手段です: %s", *req.Mode)
			}
			trip.Mode = *req.Mode
		}
		return nil
	})
}

func (u *tripPlanUseCaseImpl) AddWaypoint(ctx context.Context, id, text string) (*model.TripState, error) {
	return u.mutateTrip(ctx, id, func(trip *model.TripState) error {
		trip.Waypoints = append(trip.Waypoints, model.Waypoint{Text: text})
		return nil
	})
}

func (u *tripPlanUseCaseImpl) RemoveWaypoint(ctx context.Context, id string, index int) (*model.TripState, error) {
	return u.mutateTrip(ctx, id, func(trip *model.TripState) error {
		if index < 0 || index >= len(trip.Waypoints) {
			return fmt.Errorf("経由地のインデックスが範囲外です: %d", index)
		}
		trip.Waypoints = append(trip.Waypoints[:index], trip.Waypoints[index+1:]...)
		return nil
	})
}

func (u *tripPlanUseCaseImpl) DeleteTrip(ctx context.Context, id string) error {
	if err := u.acquire(id); err != nil {
		return err
	}
	defer u.release(id)
	return u.tripsRepo.Delete(ctx, id)
}

func (u *tripPlanUseCaseImpl) PlanTrip(ctx context.Context, id string) (*model.TripState, error) {
	// 再入ガード: 同一トリップの実行中は2回目の実行を拒否する
	if err := u.acquire(id); err != nil {
		return nil, err
	}
	defer u.release(id)

	trip, err := u.tripsRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	// 実行中であることを外から観測できるようにしてからパイプラインを回す
	trip.Loading = true
	if err := u.tripsRepo.Save(ctx, trip); err != nil {
		return nil, fmt.Errorf("トリップの保存に失敗: %w", err)
	}

	// パイプラインは新しいスナップショットを返し、最後にアトミックに差し替える。
	// 途中で失敗しても中途半端に変異した状態が保存されることはない。
	result := u.planner.PlanTrip(ctx, trip)
	if err := u.tripsRepo.Save(ctx, result); err != nil {
		return nil, fmt.Errorf("プランニング結果の保存に失敗: %w", err)
	}

	return result, nil
}

// mutateTrip 実行中ガードの下でトリップを読み出し・変更・保存する
func (u *tripPlanUseCaseImpl) mutateTrip(ctx context.Context, id string, mutate func(*model.TripState) error) (*model.TripState, error) {
	if err := u.acquire(id); err != nil {
		return nil, err
	}
	defer u.release(id)

	trip, err := u.tripsRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := mutate(trip); err != nil {
		return nil, err
	}
	if err := u.tripsRepo.Save(ctx, trip); err != nil {
		return nil, fmt.Errorf("トリップの保存に失敗: %w", err)
	}
	return trip, nil
}

func (u *tripPlanUseCaseImpl) acquire(id string) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	if _, ok := u.inFlight[id]; ok {
		return ErrPlanInProgress
	}
	u.inFlight[id] = struct{}{}
	return nil
}

func (u *tripPlanUseCaseImpl) release(id string) {
	u.mu.Lock()
	defer u.mu.Unlock()
	delete(u.inFlight, id)
}
