package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"time"

	"Wayfare-App/internal/domain/model"
)

const defaultOpenWeatherBaseURL = "https://api.openweathermap.org/data/2.5"

// OpenWeatherProvider OpenWeatherMapを使用した天気情報の実装。
// APIキーが未設定の場合、両操作ともエラーではなくnil/空を返すno-opになる。
type OpenWeatherProvider struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewOpenWeatherProvider 新しいプロバイダーを生成する。
// OPENWEATHER_BASE_URLが設定されていればそれを使う。
func NewOpenWeatherProvider(apiKey string) *OpenWeatherProvider {
	baseURL := os.Getenv("OPENWEATHER_BASE_URL")
	if baseURL == "" {
		baseURL = defaultOpenWeatherBaseURL
	}
	return &OpenWeatherProvider{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// Current 現在の天気スナップショットを取得する
func (p *OpenWeatherProvider) Current(ctx context.Context, lat, lon float64) (*model.WeatherSnapshot, error) {
	if p.apiKey == "" {
		return nil, nil
	}

	var apiResp currentResponse
	if err := p.get(ctx, "weather", lat, lon, &apiResp); err != nil {
		return nil, err
	}

	description := ""
	if len(apiResp.Weather) > 0 {
		description = apiResp.Weather[0].Description
	}

	return &model.WeatherSnapshot{
		TemperatureC: apiResp.Main.Temp,
		Description:  description,
	}, nil
}

// Forecast 3時間解像度の予報エントリを時刻順で返す
func (p *OpenWeatherProvider) Forecast(ctx context.Context, lat, lon float64) ([]model.ForecastEntry, error) {
	if p.apiKey == "" {
		return nil, nil
	}

	var apiResp forecastResponse
	if err := p.get(ctx, "forecast", lat, lon, &apiResp); err != nil {
		return nil, err
	}

	entries := make([]model.ForecastEntry, 0, len(apiResp.List))
	for _, item := range apiResp.List {
		description := ""
		if len(item.Weather) > 0 {
			description = item.Weather[0].Description
		}
		entries = append(entries, model.ForecastEntry{
			Timestamp:    time.Unix(item.Dt, 0).UTC(),
			TemperatureC: item.Main.Temp,
			Description:  description,
		})
	}

	return entries, nil
}

func (p *OpenWeatherProvider) get(ctx context.Context, endpoint string, lat, lon float64, out interface{}) error {
	params := url.Values{}
	params.Set("lat", fmt.Sprintf("%f", lat))
	params.Set("lon", fmt.Sprintf("%f", lon))
	params.Set("units", "metric")
	params.Set("appid", p.apiKey)

	reqURL := fmt.Sprintf("%s/%s?%s", p.baseURL, endpoint, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("リクエストの作成に失敗: %w", err)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("天気APIの呼び出しに失敗: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("天気APIがエラーステータスを返しました: %s", resp.Status)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("JSONのパースに失敗: %w", err)
	}
	return nil
}

// --- OpenWeatherMap APIのレスポンスをパースするための構造体 ---

type currentResponse struct {
	Main struct {
		Temp float64 `json:"temp"`
	} `json:"main"`
	Weather []weatherDescription `json:"weather"`
}

type forecastResponse struct {
	List []forecastItem `json:"list"`
}

type forecastItem struct {
	Dt   int64 `json:"dt"`
	Main struct {
		Temp *float64 `json:"temp"` // 欠損しうるためポインタで受ける
	} `json:"main"`
	Weather []weatherDescription `json:"weather"`
}

type weatherDescription struct {
	Description string `json:"description"`
}
