package service

import (
	"context"
	"log"
	"strings"

	"Wayfare-App/internal/domain/model"
	"Wayfare-App/internal/domain/repository"
)

// GeocoderService テキストを1つの解決済みPlaceに変換するサービス
type GeocoderService interface {
	// Resolve テキストに最もよく一致する地点を返す。
	// 空テキスト・該当なし・通信/パース失敗のいずれもnilを返し、エラーにはしない。
	// 致命とみなすかどうかは呼び出し側が決める。
	Resolve(ctx context.Context, text string) *model.Place
}

type geocoderService struct {
	geocodingProvider repository.GeocodingProvider
	cache             repository.GeocodeCache // nil可（キャッシュなしで動作）
}

// NewGeocoderService 新しいGeocoderServiceを生成する
func NewGeocoderService(provider repository.GeocodingProvider, cache repository.GeocodeCache) GeocoderService {
	return &geocoderService{
		geocodingProvider: provider,
		cache:             cache,
	}
}

func (s *geocoderService) Resolve(ctx context.Context, text string) *model.Place {
	query := strings.TrimSpace(text)
	if query == "" {
		return nil
	}

	if s.cache != nil {
		cached, err := s.cache.Get(ctx, query)
		if err != nil {
			// キャッシュ障害は未キャッシュ動作に縮退する
			log.Printf("⚠️ ジオコードキャッシュの取得に失敗: %v", err)
		} else if cached != nil {
			return cached
		}
	}

	candidates, err := s.geocodingProvider.Search(ctx, query, 1)
	if err != nil {
		log.Printf("⚠️ ジオコーディングに失敗 (%q): %v", query, err)
		return nil
	}
	if len(candidates) == 0 {
		return nil
	}

	// 最上位の候補を採用する
	best := candidates[0]

	if s.cache != nil {
		if err := s.cache.Set(ctx, query, &best); err != nil {
			log.Printf("⚠️ ジオコードキャッシュの保存に失敗: %v", err)
		}
	}

	return &best
}
