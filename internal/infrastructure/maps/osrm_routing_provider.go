package maps

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"Wayfare-App/internal/domain/model"
)

const defaultOSRMBaseURL = "https://router.project-osrm.org"

// OSRMRoutingProvider OSRMを使用した道路経路検索の実装
type OSRMRoutingProvider struct {
	baseURL    string
	httpClient *http.Client
}

// NewOSRMRoutingProvider 新しいプロバイダーを生成する。
// OSRM_BASE_URLが設定されていればそれを使う（セルフホスト用）。
func NewOSRMRoutingProvider() *OSRMRoutingProvider {
	baseURL := os.Getenv("OSRM_BASE_URL")
	if baseURL == "" {
		baseURL = defaultOSRMBaseURL
	}
	return &OSRMRoutingProvider{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// GetRoute OSRMのrouteエンドポイントを呼び出して経路を取得する。
// 通信失敗・非2xx・経路なし・ジオメトリ欠落はすべてエラーとして返し、
// 直線フォールバックの判断は呼び出し側（RouteEstimator）に委ねる。
func (p *OSRMRoutingProvider) GetRoute(ctx context.Context, profile string, points []model.LatLng) (*model.RoadRoute, error) {
	reqURL, err := p.buildURL(profile, points)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("リクエストの作成に失敗: %w", err)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("経路APIの呼び出しに失敗: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("経路APIがエラーステータスを返しました: %s", resp.Status)
	}

	var apiResp osrmRouteResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, fmt.Errorf("JSONのパースに失敗: %w", err)
	}

	if len(apiResp.Routes) == 0 {
		return nil, errors.New("APIから有効な経路が返されませんでした")
	}

	firstRoute := apiResp.Routes[0]
	if len(firstRoute.Geometry.Coordinates) == 0 {
		return nil, errors.New("経路にジオメトリが含まれていません")
	}

	// OSRMのジオメトリは(lon, lat)順なので(lat, lng)に入れ替える
	geometry := make([]model.LatLng, 0, len(firstRoute.Geometry.Coordinates))
	for _, coord := range firstRoute.Geometry.Coordinates {
		if len(coord) < 2 {
			return nil, errors.New("経路の座標形式が不正です")
		}
		geometry = append(geometry, model.LatLng{Lat: coord[1], Lng: coord[0]})
	}

	return &model.RoadRoute{
		Geometry:       geometry,
		DurationSec:    firstRoute.Duration,
		DistanceMeters: firstRoute.Distance,
	}, nil
}

func (p *OSRMRoutingProvider) buildURL(profile string, points []model.LatLng) (string, error) {
	if len(points) < 2 {
		return "", errors.New("経路検索には2つ以上の地点が必要です")
	}
	if profile == "" {
		return "", errors.New("プロファイルが指定されていません")
	}

	// 座標は(lon,lat)をセミコロンで連結する
	coords := make([]string, 0, len(points))
	for _, pt := range points {
		coords = append(coords, fmt.Sprintf("%f,%f", pt.Lng, pt.Lat))
	}

	params := url.Values{}
	params.Set("overview", "full")
	params.Set("geometries", "geojson")

	return fmt.Sprintf("%s/route/v1/%s/%s?%s",
		p.baseURL, profile, strings.Join(coords, ";"), params.Encode()), nil
}

// --- OSRM APIのレスポンスをパースするための構造体 ---

type osrmRouteResponse struct {
	Code   string      `json:"code"`
	Routes []osrmRoute `json:"routes"`
}

type osrmRoute struct {
	Geometry osrmGeometry `json:"geometry"`
	Duration float64      `json:"duration"` // seconds
	Distance float64      `json:"distance"` // meters
}

type osrmGeometry struct {
	Coordinates [][]float64 `json:"coordinates"` // [lon, lat]
}
