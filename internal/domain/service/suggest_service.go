package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"Wayfare-App/internal/domain/model"
	"Wayfare-App/internal/domain/repository"
)

// SuggestService 入力テキストに対する地点候補のオートコンプリートサービス。
// フィールド単位でデバウンスし、入力が300ms止まってから検索を発行する。
// 発行ごとに単調増加のシーケンス番号を付け、最新でなくなったリクエストの
// 結果は破棄する（遅れて届いた古いレスポンスが新しい結果を上書きしない）。
type SuggestService interface {
	// Suggest 地点候補を最大6件返す。クエリが短すぎる場合・失敗時・
	// より新しい入力に追い越された場合は空リストを返す。
	Suggest(ctx context.Context, field, text string) []model.Place
}

type suggestService struct {
	geocodingProvider repository.GeocodingProvider
	debounce          time.Duration

	mu   sync.Mutex
	seqs map[string]uint64 // フィールドごとの最新シーケンス番号
}

// NewSuggestService 新しいSuggestServiceを生成する
func NewSuggestService(provider repository.GeocodingProvider) SuggestService {
	return &suggestService{
		geocodingProvider: provider,
		debounce:          model.SuggestDebounce,
		seqs:              make(map[string]uint64),
	}
}

func (s *suggestService) Suggest(ctx context.Context, field, text string) []model.Place {
	query := strings.TrimSpace(text)
	if len([]rune(query)) < model.SuggestMinLength {
		return []model.Place{}
	}

	// このリクエストを同フィールドの最新として登録する。
	// 以前の保留中リクエストはシーケンス比較で無効化される。
	s.mu.Lock()
	s.seqs[field]++
	seq := s.seqs[field]
	s.mu.Unlock()

	timer := time.NewTimer(s.debounce)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return []model.Place{}
	case <-timer.C:
	}

	// デバウンス中に新しい入力が来ていたら発行しない
	if !s.isLatest(field, seq) {
		return []model.Place{}
	}

	candidates, err := s.geocodingProvider.Search(ctx, query, model.SuggestLimit)
	if err != nil {
		return []model.Place{}
	}

	// 検索中に追い越された場合、このレスポンスは古いので破棄する
	if !s.isLatest(field, seq) {
		return []model.Place{}
	}

	if len(candidates) > model.SuggestLimit {
		candidates = candidates[:model.SuggestLimit]
	}
	return candidates
}

func (s *suggestService) isLatest(field string, seq uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.seqs[field] == seq
}
