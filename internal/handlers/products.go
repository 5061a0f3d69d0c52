package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	qrcode "github.com/skip2/go-qrcode"

	"thrifttu_back_end/internal/models"
	"thrifttu_back_end/internal/store"
)

// GetProducts serves the storefront catalog. Draft rows stay hidden; Sold
// rows are returned so the grid can show them greyed out.
func GetProducts(c *gin.Context) {
	products, err := Store.FetchAll(c.Request.Context())
	if err != nil {
		if errors.Is(err, store.ErrUpstreamUnavailable) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Katalog sedang tidak tersedia, coba lagi"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Sheet error"})
		return
	}

	visible := []models.Product{}
	for _, p := range products {
		if p.Status != models.StatusDraft {
			visible = append(visible, p)
		}
	}

	c.JSON(http.StatusOK, gin.H{"products": visible})
}

// ProductQR renders the purchase link of a product as a PNG QR code, for
// printed tags and story posts. Falls back to a WhatsApp order message
// when the product has no buyUrl.
func ProductQR(c *gin.Context) {
	id := c.Param("id")

	products, err := Store.FetchAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Katalog sedang tidak tersedia, coba lagi"})
		return
	}

	var target string
	for _, p := range products {
		if strings.EqualFold(p.ID, id) {
			target = buyLink(p)
			break
		}
	}
	if target == "" {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produk tidak ditemukan"})
		return
	}

	png, err := qrcode.Encode(target, qrcode.Medium, 256)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "QR error"})
		return
	}
	c.Data(http.StatusOK, "image/png", png)
}

func buyLink(p models.Product) string {
	if p.BuyURL != "" {
		return p.BuyURL
	}
	phone := os.Getenv("WHATSAPP_PHONE")
	if phone == "" {
		return ""
	}
	text := fmt.Sprintf("Halo, aku mau beli %s (%s)", p.Name, p.ID)
	return fmt.Sprintf("https://wa.me/%s?text=%s", phone, url.QueryEscape(text))
}
