package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"Wayfare-App/internal/domain/model"
	"Wayfare-App/internal/domain/repository"
)

const (
	geocodeKeyPrefix = "geocode:"
	geocodeCacheTTL  = 24 * time.Hour
)

// RedisGeocodeCache ジオコーディング結果のRedisキャッシュ実装。
// キーは正規化（小文字化・トリム）したクエリから作る。
type RedisGeocodeCache struct {
	client *redis.Client
}

// NewRedisGeocodeCache 新しいRedisキャッシュを作成する
func NewRedisGeocodeCache(client *redis.Client) repository.GeocodeCache {
	return &RedisGeocodeCache{client: client}
}

// Get キャッシュ済みのPlaceを返す。ミスの場合は(nil, nil)
func (c *RedisGeocodeCache) Get(ctx context.Context, query string) (*model.Place, error) {
	data, err := c.client.Get(ctx, cacheKey(query)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("ジオコードキャッシュの取得に失敗: %w", err)
	}

	var place model.Place
	if err := json.Unmarshal(data, &place); err != nil {
		return nil, fmt.Errorf("キャッシュ済みPlaceのパースに失敗: %w", err)
	}
	return &place, nil
}

// Set 解決結果をTTL付きでキャッシュする
func (c *RedisGeocodeCache) Set(ctx context.Context, query string, place *model.Place) error {
	data, err := json.Marshal(place)
	if err != nil {
		return fmt.Errorf("Placeのシリアライズに失敗: %w", err)
	}
	if err := c.client.Set(ctx, cacheKey(query), data, geocodeCacheTTL).Err(); err != nil {
		return fmt.Errorf("ジオコードキャッシュの保存に失敗: %w", err)
	}
	return nil
}

func cacheKey(query string) string {
	return geocodeKeyPrefix + strings.ToLower(strings.TrimSpace(query))
}
