package model

// Lodging 目的地周辺の宿泊施設（Point of Interest）を表すモデル
type Lodging struct {
	ID      string  `json:"id"`      // プロバイダーID、なければ座標から導出した安定キー
	Name    string  `json:"name"`
	Address string  `json:"address"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
}
