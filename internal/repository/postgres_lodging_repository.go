package repository

import (
	"context"
	"database/sql"
	"fmt"

	"Wayfare-App/internal/domain/model"
	"Wayfare-App/internal/domain/repository"
	"Wayfare-App/internal/infrastructure/database"
)

// PostgresLodgingRepository PostgreSQL直接接続での宿泊施設検索。
// PostGISのST_DWithinを使い、DB側で距離フィルタリングする。
type PostgresLodgingRepository struct {
	client *database.PostgreSQLClient
}

// NewPostgresLodgingRepository 新しいリポジトリを作成する
func NewPostgresLodgingRepository(client *database.PostgreSQLClient) repository.LodgingRepository {
	return &PostgresLodgingRepository{client: client}
}

// FindNearby 指定座標の周辺radiusMeters以内の宿泊施設を近い順に最大limit件返す
func (r *PostgresLodgingRepository) FindNearby(ctx context.Context, lat, lon float64, radiusMeters, limit int) ([]model.Lodging, error) {
	query := `
		SELECT id, name, COALESCE(address, ''), lat, lon
		FROM lodgings
		WHERE ST_DWithin(
			location::geography,
			ST_SetSRID(ST_MakePoint($1, $2), 4326)::geography,
			$3
		)
		ORDER BY location::geography <-> ST_SetSRID(ST_MakePoint($1, $2), 4326)::geography
		LIMIT $4`

	rows, err := r.client.DB.QueryContext(ctx, query, lon, lat, radiusMeters, limit)
	if err != nil {
		return nil, fmt.Errorf("宿泊施設クエリの実行に失敗: %w", err)
	}
	defer rows.Close()

	var lodgings []model.Lodging
	for rows.Next() {
		var (
			id      sql.NullString
			lodging model.Lodging
		)
		if err := rows.Scan(&id, &lodging.Name, &lodging.Address, &lodging.Lat, &lodging.Lon); err != nil {
			return nil, fmt.Errorf("宿泊施設行のスキャンに失敗: %w", err)
		}
		lodging.ID = id.String
		if lodging.ID == "" {
			lodging.ID = fmt.Sprintf("%f,%f", lodging.Lat, lodging.Lon)
		}
		lodgings = append(lodgings, lodging)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("宿泊施設行の読み取りに失敗: %w", err)
	}

	return lodgings, nil
}
