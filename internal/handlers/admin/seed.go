package admin

import (
	"encoding/json"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"thrifttu_back_end/internal/models"
)

const mockProductsPath = "mock/products.json"

type seedRequest struct {
	Limit *int `json:"limit"`
}

// Seed handles POST /api/admin/seed: inserts the bundled mock catalog so a
// fresh sheet has something to demo with.
func Seed(c *gin.Context) {
	var req seedRequest
	_ = c.ShouldBindJSON(&req) // body is optional

	raw, err := os.ReadFile(mockProductsPath)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "mock data missing"})
		return
	}

	var items []models.Product
	if err := json.Unmarshal(raw, &items); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "mock data invalid"})
		return
	}

	if req.Limit != nil && *req.Limit >= 0 && *req.Limit < len(items) {
		items = items[:*req.Limit]
	}

	created := make([]models.Product, 0, len(items))
	for _, item := range items {
		p, err := Store.Create(c.Request.Context(), item)
		if err != nil {
			respondStoreError(c, err)
			return
		}
		created = append(created, p)
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Seed OK",
		"count":    len(created),
		"products": created,
	})
}
