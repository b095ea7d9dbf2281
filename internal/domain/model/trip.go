package model

// TripState 1つの旅行プランの状態を集約するモデル。
// 所有者はTripPlannerServiceのみで、プランニング実行の最後に
// 新しいスナップショットとしてまるごと差し替えられる。
type TripState struct {
	ID              string            `json:"id"`
	OriginText      string            `json:"origin_text"`
	Origin          *Place            `json:"origin,omitempty"`
	DestinationText string            `json:"destination_text"`
	Destination     *Place            `json:"destination,omitempty"`
	Waypoints       []Waypoint        `json:"waypoints"`
	Mode            TravelMode        `json:"mode"`
	Route           *RouteResult      `json:"route,omitempty"`
	Lodgings        []Lodging         `json:"lodgings"`
	Weather         *WeatherSnapshot  `json:"weather,omitempty"`
	Forecast        []ForecastDay     `json:"forecast"`
	Loading         bool              `json:"loading"`
	LastError       string            `json:"last_error,omitempty"`
}

// Clone TripStateのディープコピーを返す。
// リポジトリへの出し入れは常にコピー経由で行い、共有可変状態を作らない。
func (t *TripState) Clone() *TripState {
	c := *t
	if t.Waypoints != nil {
		c.Waypoints = make([]Waypoint, len(t.Waypoints))
		copy(c.Waypoints, t.Waypoints)
	}
	if t.Lodgings != nil {
		c.Lodgings = make([]Lodging, len(t.Lodgings))
		copy(c.Lodgings, t.Lodgings)
	}
	if t.Forecast != nil {
		c.Forecast = make([]ForecastDay, len(t.Forecast))
		copy(c.Forecast, t.Forecast)
	}
	if t.Route != nil {
		r := *t.Route
		if t.Route.Coordinates != nil {
			r.Coordinates = make([]LatLng, len(t.Route.Coordinates))
			copy(r.Coordinates, t.Route.Coordinates)
		}
		c.Route = &r
	}
	if t.Weather != nil {
		w := *t.Weather
		c.Weather = &w
	}
	if t.Origin != nil {
		o := *t.Origin
		c.Origin = &o
	}
	if t.Destination != nil {
		d := *t.Destination
		c.Destination = &d
	}
	return &c
}

// RoutedPlaces 経路計算に渡す順序付きの地点リストを構築する。
// 出発地が先頭、目的地が末尾、その間に解決済みの経由地をユーザー順で並べる。
// 未解決の経由地はリストから除外される（UI上の経由地リストには残る）。
func (t *TripState) RoutedPlaces() []Place {
	if t.Origin == nil || t.Destination == nil {
		return nil
	}
	places := make([]Place, 0, len(t.Waypoints)+2)
	places = append(places, *t.Origin)
	for _, wp := range t.Waypoints {
		if wp.IsResolved() {
			places = append(places, *wp.Place)
		}
	}
	places = append(places, *t.Destination)
	return places
}
