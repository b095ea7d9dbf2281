package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"Wayfare-App/internal/domain/service"
)

// SuggestHandler オートコンプリート候補APIのハンドラー
type SuggestHandler struct {
	suggestService service.SuggestService
}

// NewSuggestHandler 新しいSuggestHandlerインスタンスを作成
func NewSuggestHandler(suggestService service.SuggestService) *SuggestHandler {
	return &SuggestHandler{suggestService: suggestService}
}

// GetSuggestions 地点候補を返すエンドポイント。
// fieldは入力フィールドの識別子で、デバウンスと古い結果の破棄の単位になる。
// GET /suggest?q=...&field=origin
func (h *SuggestHandler) GetSuggestions(c *gin.Context) {
	query := c.Query("q")
	field := c.Query("field")
	if field == "" {
		field = "default"
	}

	candidates := h.suggestService.Suggest(c.Request.Context(), field, query)
	c.JSON(http.StatusOK, gin.H{
		"suggestions": candidates,
	})
}
