package admin

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"thrifttu_back_end/internal/store"
)

type fakeSource struct {
	rows [][]string
}

func (f *fakeSource) ReadAll(ctx context.Context) ([][]string, error) { return f.rows, nil }
func (f *fakeSource) Append(ctx context.Context, row []string) error {
	f.rows = append(f.rows, row)
	return nil
}
func (f *fakeSource) WriteRow(ctx context.Context, i int, row []string) error {
	f.rows[i+1] = row
	return nil
}
func (f *fakeSource) ClearRow(ctx context.Context, i int) error {
	f.rows[i+1] = make([]string, len(f.rows[i+1]))
	return nil
}

func setupAdmin() (*gin.Engine, *fakeSource) {
	gin.SetMode(gin.TestMode)
	src := &fakeSource{rows: [][]string{
		{"ID", "Nama", "Brand", "Ukuran", "Warna", "Harga", "Deskripsi", "Kategori", "Link Gambar", "Buy URL", "Status", "Stok", "Dibuat"},
		{"P-1", "Nike Air Max 90", "Nike", "42", "putih", "450000", "", "sepatu", "", "", "Published", "1", "2026-01-01T00:00:00Z"},
		{"P-3", "Asics Gel-Lyte", "Asics", "42", "hijau", "420000", "", "sepatu", "", "", "Draft", "1", "2026-01-01T00:00:00Z"},
	}}
	Init(store.NewProductStore(src), nil, nil)

	r := gin.New()
	r.GET("/api/admin/products", ListProducts)
	r.POST("/api/admin/products", CreateProduct)
	r.PUT("/api/admin/products", UpdateProduct)
	r.DELETE("/api/admin/products", DeleteProduct)
	r.POST("/api/admin/chat", Chat)
	return r, src
}

func do(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestListProductsIncludesDraft(t *testing.T) {
	r, _ := setupAdmin()

	w := do(r, http.MethodGet, "/api/admin/products", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "P-3")
}

func TestCreateProductValidation(t *testing.T) {
	r, _ := setupAdmin()

	w := do(r, http.MethodPost, "/api/admin/products", `{"price":100000}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "name")

	w = do(r, http.MethodPost, "/api/admin/products", `{"name":"Samba","price":-1}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "price")

	w = do(r, http.MethodPost, "/api/admin/products", `{"name":"Samba","price":380000,"status":"archived"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "status")
}

func TestCreateProductAppendsRow(t *testing.T) {
	r, src := setupAdmin()

	w := do(r, http.MethodPost, "/api/admin/products", `{"name":"Adidas Samba OG","brand":"Adidas","price":380000}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Product struct {
			ID     string `json:"id"`
			Status string `json:"status"`
		} `json:"product"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Regexp(t, `^P-\d+$`, resp.Product.ID)
	assert.Equal(t, "Published", resp.Product.Status)
	assert.Len(t, src.rows, 4)
}

func TestUpdateProductPartialPatch(t *testing.T) {
	r, _ := setupAdmin()

	w := do(r, http.MethodPut, "/api/admin/products", `{"id":"P-1","price":400000}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Product struct {
			Name  string `json:"name"`
			Price int    `json:"price"`
		} `json:"product"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Nike Air Max 90", resp.Product.Name)
	assert.Equal(t, 400000, resp.Product.Price)
}

func TestUpdateProductUnknownID(t *testing.T) {
	r, _ := setupAdmin()

	w := do(r, http.MethodPut, "/api/admin/products", `{"id":"P-404","price":1}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteProductRequiresID(t *testing.T) {
	r, _ := setupAdmin()

	w := do(r, http.MethodDelete, "/api/admin/products", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(r, http.MethodDelete, "/api/admin/products?id=P-1", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAdminChatAvailability(t *testing.T) {
	r, _ := setupAdmin()

	w := do(r, http.MethodPost, "/api/admin/chat", `{"message":"cek [P-1] masih ada?"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "ADA")

	w = do(r, http.MethodPost, "/api/admin/chat", `{"message":"apakah id: P-404404 masih ada"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "TIDAK ditemukan")
}

func TestAdminChatCreatesProduct(t *testing.T) {
	r, src := setupAdmin()

	w := do(r, http.MethodPost, "/api/admin/chat",
		`{"message":"tambahkan sepatu Converse Chuck 70s, ukuran 40, warna hitam, 250k","imageUrl":"https://cdn.example/c.jpg"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "berhasil ditambahkan")
	assert.Contains(t, w.Body.String(), "Rp 250.000")
	assert.Len(t, src.rows, 4)
}
