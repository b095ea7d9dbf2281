package service

import (
	"errors"
	"sync"
	"time"

	"Wayfare-App/internal/domain/model"
)

// ErrEmptyRoute 空のポリラインではアニメーションを開始できない
var ErrEmptyRoute = errors.New("アニメーションには1つ以上の座標が必要です")

// AnimationHandle 実行中のアニメーション1つを表すハンドル。
// Cancelは経路の差し替え時とteardown時の両方で必ず呼ばれ、
// 保留中のタイマーを残さないことを保証する。
type AnimationHandle struct {
	mu        sync.Mutex
	pos       *model.LatLng
	cancelled bool

	done chan struct{}
	once sync.Once
}

// Cancel アニメーションを停止し、マーカーを取り除く。複数回呼んでも安全。
func (h *AnimationHandle) Cancel() {
	h.mu.Lock()
	h.cancelled = true
	h.pos = nil
	h.mu.Unlock()
	h.once.Do(func() { close(h.done) })
}

// Done アニメーションの終了（完走またはキャンセル）を通知するチャネル
func (h *AnimationHandle) Done() <-chan struct{} {
	return h.done
}

// Position 現在のマーカー位置を返す。マーカーが存在しない場合はfalse
func (h *AnimationHandle) Position() (model.LatLng, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.pos == nil {
		return model.LatLng{}, false
	}
	return *h.pos, true
}

// advance キャンセル済みでなければマーカーを進める
func (h *AnimationHandle) advance(p model.LatLng) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.cancelled {
		return false
	}
	h.pos = &p
	return true
}

func (h *AnimationHandle) finish() {
	h.once.Do(func() { close(h.done) })
}

// RouteAnimator 解決済みポリラインに沿ってマーカーを進めるアニメーター。
// 1インスタンスにつきアクティブなアニメーションは常に最大1つ。
type RouteAnimator struct {
	mu     sync.Mutex
	active *AnimationHandle
}

// NewRouteAnimator 新しいRouteAnimatorを生成する
func NewRouteAnimator() *RouteAnimator {
	return &RouteAnimator{}
}

// Start 新しいアニメーションを開始する。
// マーカーを先頭座標に置き、移動手段に応じた固定間隔で1座標ずつ進め、
// ポリラインを使い切ったら停止する。実行中のアニメーションがあれば
// 先にそのタイマーをキャンセルし、マーカーを取り除いてから開始する。
func (a *RouteAnimator) Start(route []model.LatLng, mode model.TravelMode, onTick func(model.LatLng)) (*AnimationHandle, error) {
	if len(route) == 0 {
		return nil, ErrEmptyRoute
	}

	a.mu.Lock()
	if a.active != nil {
		a.active.Cancel()
	}
	handle := &AnimationHandle{done: make(chan struct{})}
	a.active = handle
	a.mu.Unlock()

	// マーカーは即座に先頭座標へ
	handle.advance(route[0])
	if onTick != nil {
		onTick(route[0])
	}

	go a.run(handle, route, mode.TickInterval(), onTick)
	return handle, nil
}

// Stop 実行中のアニメーションがあればキャンセルする（teardown用）
func (a *RouteAnimator) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.active != nil {
		a.active.Cancel()
		a.active = nil
	}
}

func (a *RouteAnimator) run(h *AnimationHandle, route []model.LatLng, interval time.Duration, onTick func(model.LatLng)) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	idx := 1
	for {
		select {
		case <-h.done:
			return
		case <-ticker.C:
			if idx >= len(route) {
				h.finish()
				return
			}
			// キャンセルとtickが競合した場合はキャンセルを優先する
			if !h.advance(route[idx]) {
				return
			}
			if onTick != nil {
				onTick(route[idx])
			}
			idx++
		}
	}
}
