package model

import "encoding/json"

// Place はジオコーディングで解決済みの地点を表すモデル。
// 一度解決されたPlaceは変更されない（イミュータブル）。
type Place struct {
	Lat     float64         `json:"lat"`
	Lon     float64         `json:"lon"`
	Display string          `json:"display_name"`  // 表示用の地名
	Raw     json.RawMessage `json:"raw,omitempty"` // プロバイダーの生レスポンス（そのまま保持）
}

// ToLatLng Placeの位置情報をLatLng型に変換
func (p *Place) ToLatLng() LatLng {
	return LatLng{Lat: p.Lat, Lng: p.Lon}
}

// Waypoint はユーザーが入力した経由地を表す。
// テキストが編集されたら解決済みPlaceは必ずクリアされる。
type Waypoint struct {
	Text  string `json:"text"`
	Place *Place `json:"place,omitempty"`
}

// SetText テキストを更新し、解決済みPlaceをクリアする。
// テキストとPlaceが同時に生成されたものでない限り、両方が有効とは見なさない。
func (w *Waypoint) SetText(text string) {
	w.Text = text
	w.Place = nil
}

// IsResolved 経由地が解決済みかどうか
func (w *Waypoint) IsResolved() bool {
	return w.Place != nil
}
