package store

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"thrifttu_back_end/internal/models"
)

type fakeSource struct {
	rows    [][]string
	reads   int
	readErr error
}

func newFakeSource(products ...models.Product) *fakeSource {
	rows := [][]string{headerRow()}
	for _, p := range products {
		rows = append(rows, renderRow(p))
	}
	return &fakeSource{rows: rows}
}

func headerRow() []string {
	return []string{"ID", "Nama", "Brand", "Ukuran", "Warna", "Harga", "Deskripsi", "Kategori", "Link Gambar", "Buy URL", "Status", "Stok", "Dibuat"}
}

func (f *fakeSource) ReadAll(ctx context.Context) ([][]string, error) {
	f.reads++
	if f.readErr != nil {
		return nil, f.readErr
	}
	out := make([][]string, len(f.rows))
	copy(out, f.rows)
	return out, nil
}

func (f *fakeSource) Append(ctx context.Context, row []string) error {
	f.rows = append(f.rows, row)
	return nil
}

func (f *fakeSource) WriteRow(ctx context.Context, rowIndex int, row []string) error {
	f.rows[rowIndex+1] = row
	return nil
}

func (f *fakeSource) ClearRow(ctx context.Context, rowIndex int) error {
	f.rows[rowIndex+1] = make([]string, columnCount)
	return nil
}

func testStore(src RowSource) (*ProductStore, *time.Time) {
	now := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
	s := NewProductStore(src)
	s.now = func() time.Time { return now }
	return s, &now
}

func intPtr(n int) *int       { return &n }
func strPtr(s string) *string { return &s }

func TestCreateAssignsIDAndCreatedAt(t *testing.T) {
	src := newFakeSource()
	s, now := testStore(src)

	created, err := s.Create(context.Background(), models.Product{
		Name:   "Nike Air Max 90",
		Brand:  "Nike",
		Price:  450000,
		Images: []string{"https://cdn.example/a.jpg", "https://cdn.example/b.jpg"},
	})
	require.NoError(t, err)

	assert.Equal(t, fmt.Sprintf("P-%d", now.UnixMilli()), created.ID)
	assert.Equal(t, now.UTC().Format(time.RFC3339), created.CreatedAt)
	assert.Equal(t, models.StatusPublished, created.Status)
	assert.Equal(t, models.DefaultCategory, created.Category)
	assert.Equal(t, "https://cdn.example/a.jpg", created.ImageURL)

	list, err := s.FetchAll(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, created.ID, list[0].ID)
	assert.Equal(t, []string{"https://cdn.example/a.jpg", "https://cdn.example/b.jpg"}, list[0].Images)
}

func TestFetchAllServesCacheWithinTTL(t *testing.T) {
	src := newFakeSource(models.Product{ID: "P-1", Name: "Samba", Status: models.StatusPublished})
	s, now := testStore(src)

	first, err := s.FetchAll(context.Background())
	require.NoError(t, err)
	*now = now.Add(30 * time.Second)
	second, err := s.FetchAll(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, src.reads)
	require.NotEmpty(t, first)
	assert.Same(t, &first[0], &second[0])
}

func TestFetchAllRefreshesAfterTTL(t *testing.T) {
	src := newFakeSource(models.Product{ID: "P-1", Name: "Samba", Status: models.StatusPublished})
	s, now := testStore(src)

	_, err := s.FetchAll(context.Background())
	require.NoError(t, err)
	*now = now.Add(DefaultCacheTTL + time.Second)
	_, err = s.FetchAll(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, src.reads)
}

func TestMutationsInvalidateCache(t *testing.T) {
	src := newFakeSource(models.Product{ID: "P-1", Name: "Samba", Status: models.StatusPublished})
	s, _ := testStore(src)

	_, err := s.FetchAll(context.Background())
	require.NoError(t, err)

	_, err = s.Create(context.Background(), models.Product{Name: "574"})
	require.NoError(t, err)

	list, err := s.FetchAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestFetchAllSkipsClearedRows(t *testing.T) {
	src := newFakeSource(
		models.Product{ID: "P-1", Name: "Samba"},
		models.Product{ID: "P-2", Name: "574"},
	)
	require.NoError(t, src.ClearRow(context.Background(), 0))
	s, _ := testStore(src)

	list, err := s.FetchAll(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "P-2", list[0].ID)
}

func TestFetchAllWrapsUpstreamError(t *testing.T) {
	src := newFakeSource()
	src.readErr = errors.New("googleapi: 503")
	s, _ := testStore(src)

	_, err := s.FetchAll(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUpstreamUnavailable)
	assert.NotContains(t, err.Error(), "panic")
}

func TestUpdateMergesPatchOverStoredRow(t *testing.T) {
	src := newFakeSource(models.Product{
		ID: "P-1", Name: "Samba", Brand: "Adidas", Price: 380000,
		Status: models.StatusPublished, CreatedAt: "2026-01-01T00:00:00Z",
	})
	s, _ := testStore(src)

	updated, err := s.Update(context.Background(), "P-1", models.ProductPatch{
		Price: intPtr(350000),
		Color: strPtr("hitam"),
	})
	require.NoError(t, err)

	assert.Equal(t, "Samba", updated.Name)
	assert.Equal(t, "Adidas", updated.Brand)
	assert.Equal(t, 350000, updated.Price)
	assert.Equal(t, "hitam", updated.Color)
	assert.Equal(t, "2026-01-01T00:00:00Z", updated.CreatedAt)
}

func TestUpdateZeroStockMarksSold(t *testing.T) {
	src := newFakeSource(models.Product{
		ID: "P-1", Name: "Samba", Status: models.StatusPublished, Stock: intPtr(1),
	})
	s, _ := testStore(src)

	updated, err := s.Update(context.Background(), "P-1", models.ProductPatch{Stock: intPtr(0)})
	require.NoError(t, err)
	assert.Equal(t, models.StatusSold, updated.Status)
}

func TestUpdateRestockRepublishes(t *testing.T) {
	src := newFakeSource(models.Product{
		ID: "P-1", Name: "Samba", Status: models.StatusSold, Stock: intPtr(0),
	})
	s, _ := testStore(src)

	updated, err := s.Update(context.Background(), "P-1", models.ProductPatch{Stock: intPtr(2)})
	require.NoError(t, err)
	assert.Equal(t, models.StatusPublished, updated.Status)
}

func TestUpdateRestockKeepsExplicitStatus(t *testing.T) {
	src := newFakeSource(models.Product{
		ID: "P-1", Name: "Samba", Status: models.StatusSold, Stock: intPtr(0),
	})
	s, _ := testStore(src)

	draft := models.StatusDraft
	updated, err := s.Update(context.Background(), "P-1", models.ProductPatch{
		Stock:  intPtr(2),
		Status: &draft,
	})
	require.NoError(t, err)
	assert.Equal(t, models.StatusDraft, updated.Status)
}

func TestUpdateFiresStockAudit(t *testing.T) {
	src := newFakeSource(models.Product{
		ID: "P-1", Name: "Samba", Status: models.StatusPublished, Stock: intPtr(3),
	})
	s, _ := testStore(src)

	audits := make(chan models.StockAudit, 1)
	s.OnStockChange = func(a models.StockAudit) { audits <- a }

	_, err := s.Update(context.Background(), "P-1", models.ProductPatch{Stock: intPtr(1)})
	require.NoError(t, err)

	select {
	case a := <-audits:
		assert.Equal(t, "P-1", a.ProductID)
		assert.Equal(t, 3, a.OldStock)
		assert.Equal(t, 1, a.NewStock)
		assert.Equal(t, -2, a.Delta)
	case <-time.After(time.Second):
		t.Fatal("no audit record delivered")
	}

	// Same value again is not a change.
	_, err = s.Update(context.Background(), "P-1", models.ProductPatch{Stock: intPtr(1)})
	require.NoError(t, err)
	select {
	case a := <-audits:
		t.Fatalf("unexpected audit record: %+v", a)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestUpdateDoesNotWaitOnStockCallback(t *testing.T) {
	src := newFakeSource(models.Product{
		ID: "P-1", Name: "Samba", Status: models.StatusPublished, Stock: intPtr(3),
	})
	s, _ := testStore(src)

	// A slow sink (sheet append, SMTP) must not hold up the update.
	release := make(chan struct{})
	s.OnStockChange = func(models.StockAudit) { <-release }

	done := make(chan error, 1)
	go func() {
		_, err := s.Update(context.Background(), "P-1", models.ProductPatch{Stock: intPtr(1)})
		done <- err
	}()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("update blocked on the stock-change callback")
	}
	close(release)
}

func TestUpdateUnknownID(t *testing.T) {
	src := newFakeSource(models.Product{ID: "P-1", Name: "Samba"})
	s, _ := testStore(src)

	_, err := s.Update(context.Background(), "P-404", models.ProductPatch{Price: intPtr(1)})
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestDeleteClearsRowInPlace(t *testing.T) {
	src := newFakeSource(
		models.Product{ID: "P-1", Name: "Samba"},
		models.Product{ID: "P-2", Name: "574"},
	)
	s, _ := testStore(src)

	require.NoError(t, s.Delete(context.Background(), "P-1"))

	// The sheet still has both physical rows; P-2 keeps its position.
	assert.Len(t, src.rows, 3)
	list, err := s.FetchAll(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "P-2", list[0].ID)

	assert.ErrorIs(t, s.Delete(context.Background(), "P-1"), ErrProductNotFound)
}
