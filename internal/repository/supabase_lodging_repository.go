package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/supabase-community/supabase-go"

	"Wayfare-App/internal/domain/helper"
	"Wayfare-App/internal/domain/model"
	"Wayfare-App/internal/domain/repository"
)

// lodgingsTable 宿泊施設データを保持するSupabaseテーブル名
const lodgingsTable = "lodgings"

// SupabaseLodgingRepository Supabaseのlodgingsテーブルを使った宿泊施設検索。
// キュレーション済みの宿泊施設データを使う構成向けの実装。
type SupabaseLodgingRepository struct {
	client *supabase.Client
}

// NewSupabaseLodgingRepository 新しいリポジトリを作成する
func NewSupabaseLodgingRepository(client *supabase.Client) repository.LodgingRepository {
	return &SupabaseLodgingRepository{client: client}
}

// lodgingRow lodgingsテーブルの1行
type lodgingRow struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Address string  `json:"address"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
}

// FindNearby 指定座標の周辺の宿泊施設を返す。
// PostgRESTでは地理条件を直接書けないため、全件取得して
// 平面近似距離でフィルタリングする（距離の定義は経路計算と揃える）。
func (r *SupabaseLodgingRepository) FindNearby(ctx context.Context, lat, lon float64, radiusMeters, limit int) ([]model.Lodging, error) {
	data, _, err := r.client.From(lodgingsTable).Select("*", "exact", false).Execute()
	if err != nil {
		return nil, fmt.Errorf("宿泊施設データの取得に失敗: %w", err)
	}

	var rows []lodgingRow
	if err := json.Unmarshal([]byte(data), &rows); err != nil {
		return nil, fmt.Errorf("宿泊施設データのJSONアンマーシャルに失敗: %w", err)
	}

	center := model.LatLng{Lat: lat, Lng: lon}
	radiusKm := float64(radiusMeters) / 1000

	lodgings := make([]model.Lodging, 0, limit)
	for _, row := range rows {
		distanceKm := helper.ProxyDistanceKm([]model.LatLng{center, {Lat: row.Lat, Lng: row.Lon}})
		if distanceKm > radiusKm {
			continue
		}

		id := row.ID
		if id == "" {
			id = fmt.Sprintf("%f,%f", row.Lat, row.Lon)
		}

		lodgings = append(lodgings, model.Lodging{
			ID:      id,
			Name:    row.Name,
			Address: row.Address,
			Lat:     row.Lat,
			Lon:     row.Lon,
		})
		if len(lodgings) >= limit {
			break
		}
	}

	return lodgings, nil
}
