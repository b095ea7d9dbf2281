package geocoding

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestProvider(t *testing.T, handler http.HandlerFunc) *NominatimGeocodingProvider {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	t.Setenv("NOMINATIM_BASE_URL", server.URL)
	return NewNominatimGeocodingProvider()
}

func TestNominatimProvider_Search(t *testing.T) {
	provider := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "京都駅", r.URL.Query().Get("q"))
		assert.Equal(t, "json", r.URL.Query().Get("format"))
		assert.Equal(t, "5", r.URL.Query().Get("limit"))
		assert.NotEmpty(t, r.Header.Get("User-Agent"))
		w.Write([]byte(`[
			{"lat": "34.985458", "lon": "135.757755", "display_name": "京都駅, 下京区, 京都市", "osm_id": 123},
			{"lat": "34.986", "lon": "135.758", "display_name": "京都駅前"}
		]`))
	})

	places, err := provider.Search(context.Background(), "京都駅", 5)
	require.NoError(t, err)
	require.Len(t, places, 2)

	assert.InDelta(t, 34.985458, places[0].Lat, 1e-9)
	assert.InDelta(t, 135.757755, places[0].Lon, 1e-9)
	assert.Equal(t, "京都駅, 下京区, 京都市", places[0].Display)
	// 生のレスポンスが保持されている
	assert.Contains(t, string(places[0].Raw), "osm_id")
}

func TestNominatimProvider_SkipsUnparsableCoordinates(t *testing.T) {
	provider := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[
			{"lat": "not-a-number", "lon": "135.0", "display_name": "壊れた候補"},
			{"lat": "35.0", "lon": "135.0", "display_name": "正常な候補"}
		]`))
	})

	places, err := provider.Search(context.Background(), "どこか", 5)
	require.NoError(t, err)
	require.Len(t, places, 1)
	assert.Equal(t, "正常な候補", places[0].Display)
}

func TestNominatimProvider_EmptyResult(t *testing.T) {
	provider := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	})

	places, err := provider.Search(context.Background(), "存在しない場所xyz", 1)
	require.NoError(t, err)
	assert.Empty(t, places)
}

func TestNominatimProvider_Non200(t *testing.T) {
	provider := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})

	_, err := provider.Search(context.Background(), "京都", 1)
	assert.Error(t, err)
}
