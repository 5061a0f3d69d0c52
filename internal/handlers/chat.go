package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"thrifttu_back_end/internal/models"
	"thrifttu_back_end/internal/store"
)

type chatRequest struct {
	Message string `json:"message"`
}

// Chat handles POST /api/chat: the shopper-facing search conversation.
func Chat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Message == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "message is required"})
		return
	}

	logQuery(req.Message, c.GetHeader("Referer"), c.GetHeader("User-Agent"))

	resp, err := runShopperChat(c.Request.Context(), req.Message)
	if err != nil {
		// Retryable upstream trouble: empty result plus a generic retry
		// message, never the raw error text.
		if errors.Is(err, store.ErrUpstreamUnavailable) {
			c.JSON(http.StatusServiceUnavailable, ChatResponse{
				Products: []models.Product{},
				Message:  "Lagi ada gangguan di katalog nih. Coba lagi sebentar ya.",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Chat error"})
		return
	}

	c.JSON(http.StatusOK, resp)
}
