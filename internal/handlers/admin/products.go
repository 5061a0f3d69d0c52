package admin

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"thrifttu_back_end/internal/models"
	"thrifttu_back_end/internal/store"
)

// ListProducts returns every row, Draft and Sold included. The dashboard
// table is the whole sheet.
func ListProducts(c *gin.Context) {
	products, err := Store.FetchAll(c.Request.Context())
	if err != nil {
		respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": products})
}

// CreateProduct handles POST /api/admin/products.
func CreateProduct(c *gin.Context) {
	var p models.Product
	if err := c.ShouldBindJSON(&p); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := validateProduct(p); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := Store.Create(c.Request.Context(), p)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"product": created})
}

type updateRequest struct {
	ID string `json:"id"`
	models.ProductPatch
}

// UpdateProduct handles PUT /api/admin/products: a partial update keyed by
// id; unspecified fields keep their stored values.
func UpdateProduct(c *gin.Context) {
	var req updateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.ID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id required"})
		return
	}

	if err := validatePatch(req.ProductPatch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated, err := Store.Update(c.Request.Context(), req.ID, req.ProductPatch)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "product": updated})
}

// DeleteProduct handles DELETE /api/admin/products?id=P-...
func DeleteProduct(c *gin.Context) {
	id := c.Query("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id required"})
		return
	}

	if err := Store.Delete(c.Request.Context(), id); err != nil {
		respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// validateProduct rejects malformed input before it reaches the sheet,
// naming the offending field.
func validateProduct(p models.Product) error {
	if p.Name == "" {
		return errors.New("field 'name': tidak boleh kosong")
	}
	if p.Price < 0 {
		return errors.New("field 'price': tidak boleh negatif")
	}
	if p.Stock != nil && *p.Stock < 0 {
		return errors.New("field 'stock': tidak boleh negatif")
	}
	return validateStatus(p.Status)
}

func validatePatch(patch models.ProductPatch) error {
	if patch.Name != nil && *patch.Name == "" {
		return errors.New("field 'name': tidak boleh kosong")
	}
	if patch.Price != nil && *patch.Price < 0 {
		return errors.New("field 'price': tidak boleh negatif")
	}
	if patch.Stock != nil && *patch.Stock < 0 {
		return errors.New("field 'stock': tidak boleh negatif")
	}
	if patch.Status != nil {
		return validateStatus(*patch.Status)
	}
	return nil
}

func validateStatus(status string) error {
	switch status {
	case "", models.StatusPublished, models.StatusDraft, models.StatusSold:
		return nil
	}
	return fmt.Errorf("field 'status': harus %s, %s, atau %s",
		models.StatusPublished, models.StatusDraft, models.StatusSold)
}

func respondStoreError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, store.ErrProductNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Produk tidak ditemukan"})
	case errors.Is(err, store.ErrUpstreamUnavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Sheet sedang tidak tersedia, coba lagi"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error"})
	}
}
