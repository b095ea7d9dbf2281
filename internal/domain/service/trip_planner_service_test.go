package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Wayfare-App/internal/domain/model"
)

// fakeGeocoder テスト用のジオコーダー。登録済みテキストのみ解決できる
type fakeGeocoder struct {
	places map[string]*model.Place
}

func (f *fakeGeocoder) Resolve(ctx context.Context, text string) *model.Place {
	return f.places[strings.TrimSpace(text)]
}

type fakeLodgingRepo struct {
	lodgings []model.Lodging
	err      error
}

func (f *fakeLodgingRepo) FindNearby(ctx context.Context, lat, lon float64, radiusMeters, limit int) ([]model.Lodging, error) {
	return f.lodgings, f.err
}

type fakeWeatherProvider struct {
	snapshot *model.WeatherSnapshot
	entries  []model.ForecastEntry
	err      error
}

func (f *fakeWeatherProvider) Current(ctx context.Context, lat, lon float64) (*model.WeatherSnapshot, error) {
	return f.snapshot, f.err
}

func (f *fakeWeatherProvider) Forecast(ctx context.Context, lat, lon float64) ([]model.ForecastEntry, error) {
	return f.entries, f.err
}

func newTestPlanner(geocoder GeocoderService, lodgingRepo *fakeLodgingRepo, weather *fakeWeatherProvider) TripPlannerService {
	estimator := NewRouteEstimator(&fakeRoutingProvider{err: errors.New("サービス停止中")})
	return NewTripPlannerService(geocoder, estimator, lodgingRepo, weather)
}

func TestTripPlanner_SuccessWithWaypoint(t *testing.T) {
	geocoder := &fakeGeocoder{places: map[string]*model.Place{
		"京都": {Lat: 35.0, Lon: 135.8, Display: "京都市"},
		"名古屋": {Lat: 35.2, Lon: 136.9, Display: "名古屋市"},
		"東京": {Lat: 35.7, Lon: 139.7, Display: "東京都"},
	}}
	temp := 21.3
	weather := &fakeWeatherProvider{
		snapshot: &model.WeatherSnapshot{TemperatureC: 22.5, Description: "晴れ"},
		entries: []model.ForecastEntry{
			{Timestamp: time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC), TemperatureC: &temp, Description: "晴れ"},
		},
	}
	lodgingRepo := &fakeLodgingRepo{lodgings: []model.Lodging{
		{ID: "hotel-1", Name: "ホテル東京", Lat: 35.69, Lon: 139.69},
	}}
	planner := newTestPlanner(geocoder, lodgingRepo, weather)

	trip := &model.TripState{
		ID:              "trip-1",
		OriginText:      "京都",
		DestinationText: "東京",
		Waypoints:       []model.Waypoint{{Text: "名古屋"}},
		Mode:            model.ModeFlight,
	}

	result := planner.PlanTrip(context.Background(), trip)

	assert.Empty(t, result.LastError)
	assert.False(t, result.Loading)
	require.NotNil(t, result.Origin)
	require.NotNil(t, result.Destination)
	require.NotNil(t, result.Route)

	// 経由地込みで3地点のポリライン
	assert.Len(t, result.Route.Coordinates, 3)

	require.Len(t, result.Lodgings, 1)
	assert.Equal(t, "hotel-1", result.Lodgings[0].ID)
	require.NotNil(t, result.Weather)
	assert.Equal(t, "晴れ", result.Weather.Description)
	require.Len(t, result.Forecast, 1)
	assert.Equal(t, 21, result.Forecast[0].TemperatureC)
}

func TestTripPlanner_WaypointFailureIsNonFatal(t *testing.T) {
	geocoder := &fakeGeocoder{places: map[string]*model.Place{
		"京都": {Lat: 35.0, Lon: 135.8, Display: "京都市"},
		"東京": {Lat: 35.7, Lon: 139.7, Display: "東京都"},
	}}
	planner := newTestPlanner(geocoder, &fakeLodgingRepo{}, &fakeWeatherProvider{})

	trip := &model.TripState{
		ID:              "trip-2",
		OriginText:      "京都",
		DestinationText: "東京",
		Waypoints:       []model.Waypoint{{Text: "存在しない地名"}},
		Mode:            model.ModeFlight,
	}

	result := planner.PlanTrip(context.Background(), trip)

	// 実行は成功し、経路は出発地と目的地の2地点のみ
	assert.Empty(t, result.LastError)
	require.NotNil(t, result.Route)
	assert.Len(t, result.Route.Coordinates, 2)

	// 解決できなかった経由地はリストに残る（placeは未解決のまま）
	require.Len(t, result.Waypoints, 1)
	assert.Equal(t, "存在しない地名", result.Waypoints[0].Text)
	assert.Nil(t, result.Waypoints[0].Place)
}

func TestTripPlanner_OriginFailureIsFatal(t *testing.T) {
	geocoder := &fakeGeocoder{places: map[string]*model.Place{
		"東京": {Lat: 35.7, Lon: 139.7, Display: "東京都"},
	}}
	planner := newTestPlanner(geocoder, &fakeLodgingRepo{}, &fakeWeatherProvider{})

	trip := &model.TripState{
		ID:              "trip-3",
		OriginText:      "存在しない地名",
		DestinationText: "東京",
		Mode:            model.ModeCar,
	}

	result := planner.PlanTrip(context.Background(), trip)

	assert.Contains(t, result.LastError, "存在しない地名")
	assert.Nil(t, result.Route)
	assert.False(t, result.Loading) // 失敗してもLoadingは必ず下りる
}

func TestTripPlanner_DestinationFailureIsFatal(t *testing.T) {
	geocoder := &fakeGeocoder{places: map[string]*model.Place{
		"京都": {Lat: 35.0, Lon: 135.8, Display: "京都市"},
	}}
	planner := newTestPlanner(geocoder, &fakeLodgingRepo{}, &fakeWeatherProvider{})

	trip := &model.TripState{
		ID:              "trip-4",
		OriginText:      "京都",
		DestinationText: "どこでもない場所",
		Mode:            model.ModeCar,
	}

	result := planner.PlanTrip(context.Background(), trip)
	assert.Contains(t, result.LastError, "どこでもない場所")
	assert.Nil(t, result.Route)
}

func TestTripPlanner_MissingDestinationIsPreconditionError(t *testing.T) {
	geocoder := &fakeGeocoder{places: map[string]*model.Place{
		"京都": {Lat: 35.0, Lon: 135.8, Display: "京都市"},
	}}
	planner := newTestPlanner(geocoder, &fakeLodgingRepo{}, &fakeWeatherProvider{})

	trip := &model.TripState{
		ID:         "trip-5",
		OriginText: "京都",
		Mode:       model.ModeCar,
	}

	result := planner.PlanTrip(context.Background(), trip)
	assert.NotEmpty(t, result.LastError)
	assert.Nil(t, result.Route)
}

func TestTripPlanner_LodgingAndWeatherFailuresAreAbsorbed(t *testing.T) {
	geocoder := &fakeGeocoder{places: map[string]*model.Place{
		"京都": {Lat: 35.0, Lon: 135.8, Display: "京都市"},
		"東京": {Lat: 35.7, Lon: 139.7, Display: "東京都"},
	}}
	lodgingRepo := &fakeLodgingRepo{err: errors.New("接続できません")}
	weather := &fakeWeatherProvider{err: errors.New("接続できません")}
	planner := newTestPlanner(geocoder, lodgingRepo, weather)

	trip := &model.TripState{
		ID:              "trip-6",
		OriginText:      "京都",
		DestinationText: "東京",
		Mode:            model.ModeFlight,
	}

	result := planner.PlanTrip(context.Background(), trip)

	// 宿泊施設・天気の失敗は実行を中断しない
	assert.Empty(t, result.LastError)
	require.NotNil(t, result.Route)
	assert.Empty(t, result.Lodgings)
	assert.Nil(t, result.Weather)
	assert.Empty(t, result.Forecast)
}

func TestTripPlanner_InputSnapshotIsNotMutated(t *testing.T) {
	geocoder := &fakeGeocoder{places: map[string]*model.Place{
		"京都": {Lat: 35.0, Lon: 135.8, Display: "京都市"},
		"東京": {Lat: 35.7, Lon: 139.7, Display: "東京都"},
	}}
	planner := newTestPlanner(geocoder, &fakeLodgingRepo{}, &fakeWeatherProvider{})

	trip := &model.TripState{
		ID:              "trip-7",
		OriginText:      "京都",
		DestinationText: "東京",
		Mode:            model.ModeFlight,
	}

	result := planner.PlanTrip(context.Background(), trip)

	// 実行は入力を直接変更せず、新しいスナップショットを返す
	assert.Nil(t, trip.Route)
	assert.Nil(t, trip.Origin)
	require.NotNil(t, result.Route)
	require.NotNil(t, result.Origin)
}
