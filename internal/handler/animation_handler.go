package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"Wayfare-App/internal/domain/model"
	"Wayfare-App/internal/usecase"
)

// AnimationHandler 経路アニメーション配信APIのハンドラー
type AnimationHandler struct {
	animationUseCase usecase.TripAnimationUseCase
}

// NewAnimationHandler 新しいAnimationHandlerインスタンスを作成
func NewAnimationHandler(animationUseCase usecase.TripAnimationUseCase) *AnimationHandler {
	return &AnimationHandler{animationUseCase: animationUseCase}
}

// StreamAnimation マーカー位置をServer-Sent Eventsで配信するエンドポイント。
// 同じトリップへの再接続は前のアニメーションを置き換える。
// クライアント切断時はコンテキスト経由でアニメーションが停止される。
// GET /trips/:id/animation
func (h *AnimationHandler) StreamAnimation(c *gin.Context) {
	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	err := h.animationUseCase.StreamMarkers(c.Request.Context(), c.Param("id"), func(p model.LatLng) bool {
		c.SSEvent("position", p)
		c.Writer.Flush()
		return true
	})
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrNoRouteToAnimate):
			c.JSON(http.StatusConflict, gin.H{
				"error":   "no_route",
				"message": err.Error(),
			})
		case strings.Contains(err.Error(), "見つかりません"):
			c.JSON(http.StatusNotFound, gin.H{
				"error":   "not_found",
				"message": err.Error(),
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":   "internal_error",
				"message": err.Error(),
			})
		}
		return
	}

	c.SSEvent("done", gin.H{"finished": true})
	c.Writer.Flush()
}
