package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"thrifttu_back_end/internal/services"
)

// UploadProductImage handles POST /api/admin/upload: one multipart file in,
// one public URL out. The admin form puts the URL into the product row.
func UploadProductImage(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}
	if fileHeader.Size == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is empty"})
		return
	}

	url, err := services.UploadProductImage(c.Request.Context(), fileHeader)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "upload error", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": url})
}
