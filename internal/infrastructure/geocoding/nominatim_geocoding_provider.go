package geocoding

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

const defaultNominatimBaseURL = "https://nominatim.openstreetmap.org"

// NominatimGeocodingProvider Nominatimを使用した前方ジオコーディングの実装。
// ジオコーダーとオートコンプリートの両方から使われる（検索形状は同じ）。
type NominatimGeocodingProvider struct {
	baseURL    string
	httpClient *http.Client
}

// NewNominatimGeocodingProvider 新しいプロバイダーを生成する。
// NOMINATIM_BASE_URLが設定されていればそれを使う（セルフホスト用）。
func NewNominatimGeocodingProvider() *NominatimGeocodingProvider {
	baseURL := os.Getenv("NOMINATIM_BASE_URL")
	if baseURL == "" {
		baseURL = defaultNominatimBaseURL
	}
	return &NominatimGeocodingProvider{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// nominatimResult Nominatimの検索レスポンス1件分。
// lat/lonは文字列で返ってくるため受けてからパースする。
type nominatimResult struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

// Search テキストに一致する地点候補をランク順で最大limit件返す
func (p *NominatimGeocodingProvider) Search(ctx context.Context, text string, limit int) ([]model.Place, error) {
	params := url.Values{}
	params.Set("q", text)
	params.Set("format", "json")
	params.Set("limit", strconv.Itoa(limit))

	reqURL := fmt.Sprintf("%s/search?%s", p.baseURL, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("リクエストの作成に失敗: %w", err)
	}
	// Nominatimの利用規約によりUser-Agentの明示が必要
	req.Header.Set("User-Agent", "Wayfare-App/1.0")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ジオコーディングAPIの呼び出しに失敗: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("ジオコーディングAPIがエラーステータスを返しました: %s", resp.Status)
	}

	// rawMetadataをそのまま保持するため、一度RawMessageで受ける
	var rawItems []json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&rawItems); err != nil {
		return nil, fmt.Errorf("JSONのパースに失敗: %w", err)
	}

	places := make([]model.Place, 0, len(rawItems))
	for _, raw := range rawItems {
		var item nominatimResult
		if err := json.Unmarshal(raw, &item); err != nil {
			continue
		}
		lat, latErr := strconv.ParseFloat(item.Lat, 64)
		lon, lonErr := strconv.ParseFloat(item.Lon, 64)
		if latErr != nil || lonErr != nil {
			continue
		}
		places = append(places, model.Place{
			Lat:     lat,
			Lon:     lon,
			Display: item.DisplayName,
			Raw:     raw,
		})
	}

	return places, nil
}
