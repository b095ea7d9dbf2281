package model

// CreateTripRequest トリップ作成リクエスト
type CreateTripRequest struct {
	OriginText      string     `json:"origin_text" binding:"required"`
	DestinationText string     `json:"destination_text" binding:"required"`
	Waypoints       []string   `json:"waypoints"`
	Mode            TravelMode `json:"mode"`
}

// UpdateTripRequest トリップ更新リクエスト。nilのフィールドは変更しない。
// テキストを編集すると対応する解決済みPlaceはクリアされる。
type UpdateTripRequest struct {
	OriginText      *string     `json:"origin_text"`
	DestinationText *string     `json:"destination_text"`
	Mode            *TravelMode `json:"mode"`
}

// AddWaypointRequest 経由地追加リクエスト
type AddWaypointRequest struct {
	Text string `json:"text" binding:"required"`
}
