package repository

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Wayfare-App/internal/domain/model"
)

func newTestGeocodeCache(t *testing.T) (*miniredis.Miniredis, *RedisGeocodeCache) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return mr, &RedisGeocodeCache{client: client}
}

func TestRedisGeocodeCache_Roundtrip(t *testing.T) {
	_, cache := newTestGeocodeCache(t)
	ctx := context.Background()

	place := &model.Place{Lat: 35.011, Lon: 135.768, Display: "京都市"}
	require.NoError(t, cache.Set(ctx, "京都", place))

	got, err := cache.Get(ctx, "京都")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, place.Lat, got.Lat)
	assert.Equal(t, place.Lon, got.Lon)
	assert.Equal(t, place.Display, got.Display)
}

func TestRedisGeocodeCache_MissReturnsNilNil(t *testing.T) {
	_, cache := newTestGeocodeCache(t)

	got, err := cache.Get(context.Background(), "未登録のクエリ")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestRedisGeocodeCache_KeyIsNormalized(t *testing.T) {
	_, cache := newTestGeocodeCache(t)
	ctx := context.Background()

	place := &model.Place{Lat: 51.5, Lon: -0.12, Display: "London"}
	require.NoError(t, cache.Set(ctx, "  London  ", place))

	// 大文字小文字と前後の空白はキーに影響しない
	got, err := cache.Get(ctx, "london")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "London", got.Display)
}

func TestRedisGeocodeCache_EntryHasTTL(t *testing.T) {
	mr, cache := newTestGeocodeCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "奈良", &model.Place{Lat: 34.68, Lon: 135.83}))

	mr.FastForward(geocodeCacheTTL + 1)
	got, err := cache.Get(ctx, "奈良")
	require.NoError(t, err)
	assert.Nil(t, got)
}
