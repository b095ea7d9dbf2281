package maps

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Wayfare-App/internal/domain/model"
)

func testPoints() []model.LatLng {
	return []model.LatLng{{Lat: 35.0, Lng: 135.8}, {Lat: 35.7, Lng: 139.7}}
}

func newTestProvider(t *testing.T, handler http.HandlerFunc) *OSRMRoutingProvider {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	t.Setenv("OSRM_BASE_URL", server.URL)
	return NewOSRMRoutingProvider()
}

func TestOSRMProvider_Success(t *testing.T) {
	provider := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		// プロファイルがURLパスに含まれる
		assert.Contains(t, r.URL.Path, "/route/v1/driving/")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"code": "Ok",
			"routes": [{
				"geometry": {"coordinates": [[135.8, 35.0], [137.0, 35.3], [139.7, 35.7]]},
				"duration": 14400,
				"distance": 460000
			}]
		}`))
	})

	route, err := provider.GetRoute(context.Background(), "driving", testPoints())
	require.NoError(t, err)

	// (lon, lat)から(lat, lng)に入れ替えられている
	require.Len(t, route.Geometry, 3)
	assert.Equal(t, model.LatLng{Lat: 35.0, Lng: 135.8}, route.Geometry[0])
	assert.Equal(t, model.LatLng{Lat: 35.7, Lng: 139.7}, route.Geometry[2])
	assert.Equal(t, 14400.0, route.DurationSec)
	assert.Equal(t, 460000.0, route.DistanceMeters)
}

func TestOSRMProvider_Non200(t *testing.T) {
	provider := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	_, err := provider.GetRoute(context.Background(), "driving", testPoints())
	assert.Error(t, err)
}

func TestOSRMProvider_EmptyRoutes(t *testing.T) {
	provider := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"code": "NoRoute", "routes": []}`))
	})

	_, err := provider.GetRoute(context.Background(), "cycling", testPoints())
	assert.Error(t, err)
}

func TestOSRMProvider_MissingGeometry(t *testing.T) {
	provider := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"code": "Ok", "routes": [{"duration": 100, "distance": 1000}]}`))
	})

	_, err := provider.GetRoute(context.Background(), "driving", testPoints())
	assert.Error(t, err)
}

func TestOSRMProvider_MalformedCoordinates(t *testing.T) {
	provider := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"code": "Ok", "routes": [{"geometry": {"coordinates": "not-an-array"}}]}`))
	})

	_, err := provider.GetRoute(context.Background(), "driving", testPoints())
	assert.Error(t, err)
}

func TestOSRMProvider_NotEnoughPoints(t *testing.T) {
	provider := NewOSRMRoutingProvider()
	_, err := provider.GetRoute(context.Background(), "driving", []model.LatLng{{Lat: 1, Lng: 1}})
	assert.Error(t, err)
}
