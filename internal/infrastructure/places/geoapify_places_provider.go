package places

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"time"

	"Wayfare-App/internal/domain/model"
)

const defaultGeoapifyBaseURL = "https://api.geoapify.com"

// GeoapifyPlacesProvider Geoapify Places APIを使用した宿泊施設検索の実装
type GeoapifyPlacesProvider struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewGeoapifyPlacesProvider 新しいプロバイダーを生成する。
// GEOAPIFY_BASE_URLが設定されていればそれを使う。
func NewGeoapifyPlacesProvider(apiKey string) *GeoapifyPlacesProvider {
	baseURL := os.Getenv("GEOAPIFY_BASE_URL")
	if baseURL == "" {
		baseURL = defaultGeoapifyBaseURL
	}
	return &GeoapifyPlacesProvider{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// FindNearby 指定座標の周辺の宿泊施設を検索する。
// 座標が解決できないエントリは除外する。IDはプロバイダーのplace_id →
// データソースID → 座標文字列の順でフォールバックし、空にならないことを保証する。
func (p *GeoapifyPlacesProvider) FindNearby(ctx context.Context, lat, lon float64, radiusMeters, limit int) ([]model.Lodging, error) {
	params := url.Values{}
	params.Set("categories", "accommodation")
	params.Set("filter", fmt.Sprintf("circle:%f,%f,%d", lon, lat, radiusMeters))
	params.Set("limit", strconv.Itoa(limit))
	params.Set("apiKey", p.apiKey)

	reqURL := fmt.Sprintf("%s/v2/places?%s", p.baseURL, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("リクエストの作成に失敗: %w", err)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("宿泊施設APIの呼び出しに失敗: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("宿泊施設APIがエラーステータスを返しました: %s", resp.Status)
	}

	var apiResp geoapifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, fmt.Errorf("JSONのパースに失敗: %w", err)
	}

	lodgings := make([]model.Lodging, 0, len(apiResp.Features))
	for _, feature := range apiResp.Features {
		props := feature.Properties
		// 座標が解決できないエントリは落とす
		if props.Lat == nil || props.Lon == nil {
			continue
		}

		id := props.PlaceID
		if id == "" {
			id = props.Datasource.SourceID
		}
		if id == "" {
			id = fmt.Sprintf("%f,%f", *props.Lat, *props.Lon)
		}

		address := props.Formatted
		if address == "" {
			address = props.AddressLine2
		}

		lodgings = append(lodgings, model.Lodging{
			ID:      id,
			Name:    props.Name,
			Address: address,
			Lat:     *props.Lat,
			Lon:     *props.Lon,
		})
		if len(lodgings) >= limit {
			break
		}
	}

	return lodgings, nil
}

// --- Geoapify APIのレスポンスをパースするための構造体 ---

type geoapifyResponse struct {
	Features []geoapifyFeature `json:"features"`
}

type geoapifyFeature struct {
	Properties geoapifyProperties `json:"properties"`
}

type geoapifyProperties struct {
	PlaceID      string             `json:"place_id"`
	Name         string             `json:"name"`
	Formatted    string             `json:"formatted"`
	AddressLine2 string             `json:"address_line2"`
	Lat          *float64           `json:"lat"`
	Lon          *float64           `json:"lon"`
	Datasource   geoapifyDatasource `json:"datasource"`
}

type geoapifyDatasource struct {
	SourceID string `json:"source_id"`
}
