package handlers

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"thrifttu_back_end/internal/models"
)

type queryLogRequest struct {
	Text    string `json:"text"`
	Referer string `json:"referer"`
}

// LogSearchQuery handles POST /api/queries: the storefront search bar
// reports what shoppers typed.
func LogSearchQuery(c *gin.Context) {
	var req queryLogRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Text == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "text required"})
		return
	}

	logQuery(req.Text, req.Referer, c.GetHeader("User-Agent"))
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

type cartAddRequest struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Size  string `json:"size"`
	Price int    `json:"price"`
}

// LogCartAdd handles POST /api/analytics/cart-add. Append is off the
// request path, same fire-and-forget policy as the query log.
func LogCartAdd(c *gin.Context) {
	var req cartAddRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}

	if Logs != nil {
		entry := models.CartAddLog{
			ProductID: req.ID,
			Name:      req.Name,
			Size:      req.Size,
			Price:     req.Price,
			UserAgent: truncate(c.GetHeader("User-Agent"), 200),
		}
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := Logs.AppendCartAdd(ctx, entry); err != nil {
				log.Printf("⚠️ cart-add log append failed: %v", err)
			}
		}()
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}
