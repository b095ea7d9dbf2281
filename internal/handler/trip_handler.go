package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"Wayfare-App/internal/domain/model"
	"Wayfare-App/internal/usecase"
)

// TripHandler トリッププランニングAPIのハンドラー
type TripHandler struct {
	tripPlanUseCase usecase.TripPlanUseCase
}

// NewTripHandler 新しいTripHandlerインスタンスを作成
func NewTripHandler(tripPlanUseCase usecase.TripPlanUseCase) *TripHandler {
	return &TripHandler{tripPlanUseCase: tripPlanUseCase}
}

// PostTrip トリップを作成するエンドポイント
// POST /trips
func (h *TripHandler) PostTrip(c *gin.Context) {
	var req model.CreateTripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"message": "リクエストの形式が正しくありません: " + err.Error(),
		})
		return
	}

	if strings.TrimSpace(req.OriginText) == "" || strings.TrimSpace(req.DestinationText) == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"message": "出発地と目的地のテキストは必須です",
		})
		return
	}

	trip, err := h.tripPlanUseCase.CreateTrip(c.Request.Context(), &req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"message": err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, trip)
}

// GetTrip TripStateのスナップショットを取得するエンドポイント
// GET /trips/:id
func (h *TripHandler) GetTrip(c *gin.Context) {
	trip, err := h.tripPlanUseCase.GetTrip(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, trip)
}

// PatchTrip 出発地・目的地テキストや移動手段を更新するエンドポイント
// PATCH /trips/:id
func (h *TripHandler) PatchTrip(c *gin.Context) {
	var req model.UpdateTripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"message": "リクエストの形式が正しくありません: " + err.Error(),
		})
		return
	}

	trip, err := h.tripPlanUseCase.UpdateTrip(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, trip)
}

// PostPlan プランニングパイプラインを実行するエンドポイント
// POST /trips/:id/plan
func (h *TripHandler) PostPlan(c *gin.Context) {
	trip, err := h.tripPlanUseCase.PlanTrip(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, trip)
}

// PostWaypoint 経由地を追加するエンドポイント
// POST /trips/:id/waypoints
func (h *TripHandler) PostWaypoint(c *gin.Context) {
	var req model.AddWaypointRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"message": "リクエストの形式が正しくありません: " + err.Error(),
		})
		return
	}

	trip, err := h.tripPlanUseCase.AddWaypoint(c.Request.Context(), c.Param("id"), req.Text)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, trip)
}

// DeleteWaypoint 経由地を削除するエンドポイント
// DELETE /trips/:id/waypoints/:index
func (h *TripHandler) DeleteWaypoint(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_parameter",
			"message": "indexは整数で指定してください",
		})
		return
	}

	trip, err := h.tripPlanUseCase.RemoveWaypoint(c.Request.Context(), c.Param("id"), index)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, trip)
}

// DeleteTrip トリップを削除するエンドポイント
// DELETE /trips/:id
func (h *TripHandler) DeleteTrip(c *gin.Context) {
	if err := h.tripPlanUseCase.DeleteTrip(c.Request.Context(), c.Param("id")); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// respondError エラーメッセージからステータスコードを判定して返す
func (h *TripHandler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, usecase.ErrPlanInProgress):
		c.JSON(http.StatusConflict, gin.H{
			"error":   "plan_in_progress",
			"message": err.Error(),
		})
	case strings.Contains(err.Error(), "見つかりません"):
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "not_found",
			"message": err.Error(),
		})
	case strings.Contains(err.Error(), "範囲外") || strings.Contains(err.Error(), "無効"):
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_parameter",
			"message": err.Error(),
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "internal_error",
			"message": err.Error(),
		})
	}
}
