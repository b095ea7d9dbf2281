package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Wayfare-App/internal/domain/model"
)

// slowGeocodingProvider 呼び出しごとに遅延を挟めるテスト用プロバイダー
type slowGeocodingProvider struct {
	mu      sync.Mutex
	delay   time.Duration
	results map[string][]model.Place
	calls   []string
}

func (f *slowGeocodingProvider) Search(ctx context.Context, text string, limit int) ([]model.Place, error) {
	f.mu.Lock()
	f.calls = append(f.calls, text)
	delay := f.delay
	results := f.results[text]
	f.mu.Unlock()

	if delay > 0 {
		time.Sleep(delay)
	}
	if len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

func (f *slowGeocodingProvider) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func newTestSuggestService(provider *slowGeocodingProvider, debounce time.Duration) *suggestService {
	return &suggestService{
		geocodingProvider: provider,
		debounce:          debounce,
		seqs:              make(map[string]uint64),
	}
}

func TestSuggestService_TooShortQuery(t *testing.T) {
	provider := &slowGeocodingProvider{}
	s := newTestSuggestService(provider, time.Millisecond)

	assert.Empty(t, s.Suggest(context.Background(), "origin", ""))
	assert.Empty(t, s.Suggest(context.Background(), "origin", "a"))
	assert.Empty(t, s.Suggest(context.Background(), "origin", "  a  "))
	// 短すぎるクエリでは検索を発行しない
	assert.Zero(t, provider.callCount())
}

func TestSuggestService_ReturnsCandidates(t *testing.T) {
	provider := &slowGeocodingProvider{
		results: map[string][]model.Place{
			"京都": {{Lat: 35.0, Lon: 135.8, Display: "京都市"}},
		},
	}
	s := newTestSuggestService(provider, time.Millisecond)

	candidates := s.Suggest(context.Background(), "origin", "京都")
	require.Len(t, candidates, 1)
	assert.Equal(t, "京都市", candidates[0].Display)
}

func TestSuggestService_NewerInputSupersedesPending(t *testing.T) {
	provider := &slowGeocodingProvider{
		results: map[string][]model.Place{
			"東京": {{Lat: 35.7, Lon: 139.7, Display: "東京都"}},
			"東京駅": {{Lat: 35.68, Lon: 139.77, Display: "東京駅"}},
		},
	}
	s := newTestSuggestService(provider, 50*time.Millisecond)

	var wg sync.WaitGroup
	var firstResult, secondResult []model.Place

	wg.Add(1)
	go func() {
		defer wg.Done()
		firstResult = s.Suggest(context.Background(), "destination", "東京")
	}()

	// デバウンス中に同じフィールドへ新しい入力が来る
	time.Sleep(10 * time.Millisecond)
	wg.Add(1)
	go func() {
		defer wg.Done()
		secondResult = s.Suggest(context.Background(), "destination", "東京駅")
	}()

	wg.Wait()

	// 追い越された古いリクエストは空を返し、新しい入力だけが結果を得る
	assert.Empty(t, firstResult)
	require.Len(t, secondResult, 1)
	assert.Equal(t, "東京駅", secondResult[0].Display)
}

func TestSuggestService_StaleResponseIsDiscarded(t *testing.T) {
	// 遅い先行リクエストのレスポンスが後から届いても破棄される
	provider := &slowGeocodingProvider{
		delay: 100 * time.Millisecond,
		results: map[string][]model.Place{
			"大阪": {{Lat: 34.7, Lon: 135.5, Display: "大阪市"}},
		},
	}
	s := newTestSuggestService(provider, time.Millisecond)

	resultChan := make(chan []model.Place, 1)
	go func() {
		resultChan <- s.Suggest(context.Background(), "origin", "大阪")
	}()

	// 先行リクエストが検索中の間に新しい入力でシーケンスを進める
	time.Sleep(30 * time.Millisecond)
	s.mu.Lock()
	s.seqs["origin"]++
	s.mu.Unlock()

	assert.Empty(t, <-resultChan)
}

func TestSuggestService_IndependentFields(t *testing.T) {
	provider := &slowGeocodingProvider{
		results: map[string][]model.Place{
			"京都": {{Lat: 35.0, Lon: 135.8, Display: "京都市"}},
			"東京": {{Lat: 35.7, Lon: 139.7, Display: "東京都"}},
		},
	}
	s := newTestSuggestService(provider, 20*time.Millisecond)

	var wg sync.WaitGroup
	var originResult, destResult []model.Place

	// 別フィールドのリクエストは互いに追い越さない
	wg.Add(2)
	go func() {
		defer wg.Done()
		originResult = s.Suggest(context.Background(), "origin", "京都")
	}()
	go func() {
		defer wg.Done()
		destResult = s.Suggest(context.Background(), "destination", "東京")
	}()
	wg.Wait()

	assert.Len(t, originResult, 1)
	assert.Len(t, destResult, 1)
}

func TestSuggestService_CancelledContext(t *testing.T) {
	provider := &slowGeocodingProvider{}
	s := newTestSuggestService(provider, 50*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.Empty(t, s.Suggest(ctx, "origin", "京都"))
	assert.Zero(t, provider.callCount())
}
