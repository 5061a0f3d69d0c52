package admin

import (
	"fmt"
	"net/http"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin"

	"thrifttu_back_end/internal/services"
	"thrifttu_back_end/internal/utils"
)

type adminChatRequest struct {
	Message  string `json:"message"`
	ImageURL string `json:"imageUrl"`
}

var (
	reBracketID    = regexp.MustCompile(`\[([^\]]+)\]`)
	rePDashID      = regexp.MustCompile(`(?i)\bP-\d{6,}\b`)
	reAfterID      = regexp.MustCompile(`(?i)\bid\s*[:\-]?\s*([A-Za-z0-9_-]+)\b`)
	reAvailability = regexp.MustCompile(`(?i)\b(apakah|ada|tersedia|available|exists|cek)\b`)
)

// Chat handles POST /api/admin/chat. Two intents: an availability check
// when the message carries a product id, otherwise natural-language
// product entry ("tambahkan sepatu Nike Air Max ukuran 42, 450k").
func Chat(c *gin.Context) {
	var req adminChatRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Message == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "message is required"})
		return
	}

	if id, ok := availabilityIntent(req.Message); ok {
		answerAvailability(c, id)
		return
	}

	p := services.ParseProductMessage(c.Request.Context(), LLM, req.Message, llmTimeout)
	if req.ImageURL != "" {
		p.ImageURL = req.ImageURL
		p.Images = []string{req.ImageURL}
	}

	created, err := Store.Create(c.Request.Context(), p)
	if err != nil {
		respondStoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"product": created,
		"message": fmt.Sprintf("Produk %s — %s berhasil ditambahkan dengan harga %s.",
			created.ID, created.Name, utils.FormatRupiah(created.Price)),
	})
}

// availabilityIntent pulls an id candidate out of the message: "[P-123]",
// a bare "P-123456", or "id: xyz", but only when the message actually
// asks whether something exists.
func availabilityIntent(message string) (string, bool) {
	if !reAvailability.MatchString(message) {
		return "", false
	}

	if m := reBracketID.FindStringSubmatch(message); m != nil {
		return strings.TrimSpace(m[1]), true
	}
	if m := rePDashID.FindString(message); m != "" {
		return m, true
	}
	if m := reAfterID.FindStringSubmatch(message); m != nil {
		return strings.TrimSpace(m[1]), true
	}
	return "", false
}

func answerAvailability(c *gin.Context, id string) {
	products, err := Store.FetchAll(c.Request.Context())
	if err != nil {
		respondStoreError(c, err)
		return
	}

	for _, p := range products {
		if strings.EqualFold(strings.TrimSpace(p.ID), id) {
			c.JSON(http.StatusOK, gin.H{
				"message": fmt.Sprintf("Produk %s — %s ADA dengan harga %s.",
					p.ID, p.Name, utils.FormatRupiah(p.Price)),
				"product": p,
			})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("Produk %s TIDAK ditemukan.", id),
	})
}
