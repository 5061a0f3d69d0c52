package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"thrifttu_back_end/internal/models"
)

var (
	// ErrProductNotFound means the target id has no row in the sheet.
	ErrProductNotFound = errors.New("produk tidak ditemukan")
	// ErrUpstreamUnavailable wraps any Sheets read/write failure. Callers
	// surface it as a retryable condition, never as raw upstream text.
	ErrUpstreamUnavailable = errors.New("sumber data tidak tersedia")
)

// DefaultCacheTTL is how long a fetched product list stays valid.
const DefaultCacheTTL = 60 * time.Second

// RowSource is the tabular data-source boundary: ordered rows of cells,
// positionally mapped by the schema in schema.go. ReadAll returns every
// row including the header; WriteRow and ClearRow take 0-based indexes
// over data rows only (index 0 is the first row below the header).
type RowSource interface {
	ReadAll(ctx context.Context) ([][]string, error)
	Append(ctx context.Context, row []string) error
	WriteRow(ctx context.Context, rowIndex int, row []string) error
	ClearRow(ctx context.Context, rowIndex int) error
}

// ProductStore is a read-through cache over a RowSource. One instance per
// process; the cache is invalidated on every mutation and lazily refilled.
// Concurrent updates to the same id are last-write-wins, acceptable for a
// low-write-frequency sheet.
type ProductStore struct {
	src RowSource
	ttl time.Duration
	now func() time.Time

	// OnStockChange, when set, receives an audit record after an update
	// changed a product's stock. Dispatched in its own goroutine so slow
	// sinks (sheet appends, email) never block the update.
	OnStockChange func(models.StockAudit)

	mu        sync.Mutex
	cached    []models.Product
	fetchedAt time.Time
}

func NewProductStore(src RowSource) *ProductStore {
	return &ProductStore{src: src, ttl: DefaultCacheTTL, now: time.Now}
}

// FetchAll returns the cached list when it is younger than the TTL,
// otherwise re-reads the whole sheet.
func (s *ProductStore) FetchAll(ctx context.Context) ([]models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cached != nil && s.now().Sub(s.fetchedAt) < s.ttl {
		return s.cached, nil
	}

	rows, err := s.src.ReadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}

	products := []models.Product{}
	for i, row := range rows {
		if i == 0 || emptyRow(row) { // header, cleared rows
			continue
		}
		products = append(products, parseRow(row))
	}

	s.cached = products
	s.fetchedAt = s.now()
	return products, nil
}

// Invalidate drops the cache; the next FetchAll pays the full read cost.
func (s *ProductStore) Invalidate() {
	s.mu.Lock()
	s.cached = nil
	s.mu.Unlock()
}

// Create assigns an id and creation timestamp, appends one row and
// invalidates the cache.
func (s *ProductStore) Create(ctx context.Context, p models.Product) (models.Product, error) {
	now := s.now()
	p.ID = fmt.Sprintf("P-%d", now.UnixMilli())
	p.CreatedAt = now.UTC().Format(time.RFC3339)
	if p.Status == "" {
		p.Status = models.StatusPublished
	}
	if p.Category == "" {
		p.Category = models.DefaultCategory
	}
	if len(p.Images) == 0 && p.ImageURL != "" {
		p.Images = []string{p.ImageURL}
	}
	if len(p.Images) > 0 {
		p.ImageURL = p.Images[0]
	}

	if err := s.src.Append(ctx, renderRow(p)); err != nil {
		return models.Product{}, fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}

	s.Invalidate()
	return p, nil
}

// Update merges the patch over the stored row (nil fields keep their
// value), applies the stock-driven status rule and writes the row back.
func (s *ProductStore) Update(ctx context.Context, id string, patch models.ProductPatch) (models.Product, error) {
	rowIndex, current, err := s.findRow(ctx, id)
	if err != nil {
		return models.Product{}, err
	}

	merged := applyPatch(current, patch)

	// Stock drives the status: sold out forces Sold, restocking a Sold
	// product republishes it unless the patch says otherwise.
	if patch.Stock != nil {
		if *patch.Stock <= 0 {
			merged.Status = models.StatusSold
		} else if current.Status == models.StatusSold && patch.Status == nil {
			merged.Status = models.StatusPublished
		}
	}

	if err := s.src.WriteRow(ctx, rowIndex, renderRow(merged)); err != nil {
		return models.Product{}, fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}
	s.Invalidate()

	if patch.Stock != nil && s.OnStockChange != nil {
		oldStock := 0
		if current.Stock != nil {
			oldStock = *current.Stock
		}
		if oldStock != *patch.Stock {
			audit := models.StockAudit{
				Timestamp: s.now().UTC().Format(time.RFC3339),
				ProductID: merged.ID,
				OldStock:  oldStock,
				NewStock:  *patch.Stock,
				Delta:     *patch.Stock - oldStock,
			}
			go s.OnStockChange(audit)
		}
	}

	return merged, nil
}

// Delete clears the row in place. Later rows keep their index, so cached
// admin tables stay aligned with the sheet.
func (s *ProductStore) Delete(ctx context.Context, id string) error {
	rowIndex, _, err := s.findRow(ctx, id)
	if err != nil {
		return err
	}
	if err := s.src.ClearRow(ctx, rowIndex); err != nil {
		return fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}
	s.Invalidate()
	return nil
}

// findRow does a fresh read (mutations must not act on a stale cache) and
// returns the 0-based data row index of the first matching id.
func (s *ProductStore) findRow(ctx context.Context, id string) (int, models.Product, error) {
	rows, err := s.src.ReadAll(ctx)
	if err != nil {
		return 0, models.Product{}, fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}
	for i, row := range rows {
		if i == 0 || emptyRow(row) {
			continue
		}
		if strings.TrimSpace(row[colID]) == id {
			return i - 1, parseRow(row), nil
		}
	}
	return 0, models.Product{}, ErrProductNotFound
}

func applyPatch(current models.Product, patch models.ProductPatch) models.Product {
	merged := current

	if patch.Name != nil {
		merged.Name = *patch.Name
	}
	if patch.Brand != nil {
		merged.Brand = *patch.Brand
	}
	if patch.Size != nil {
		merged.Size = *patch.Size
	}
	if patch.Color != nil {
		merged.Color = *patch.Color
	}
	if patch.Price != nil {
		merged.Price = *patch.Price
	}
	if patch.Description != nil {
		merged.Description = *patch.Description
	}
	if patch.Category != nil {
		merged.Category = *patch.Category
	}
	if patch.Status != nil {
		merged.Status = *patch.Status
	}
	if patch.BuyURL != nil {
		merged.BuyURL = *patch.BuyURL
	}
	if patch.Stock != nil {
		v := *patch.Stock
		merged.Stock = &v
	}

	// Images: an explicit list wins, a single imageUrl replaces the list,
	// otherwise the stored images are kept.
	switch {
	case len(patch.Images) > 0:
		merged.Images = patch.Images
	case patch.ImageURL != nil && *patch.ImageURL != "":
		merged.Images = []string{*patch.ImageURL}
	}
	if len(merged.Images) > 0 {
		merged.ImageURL = merged.Images[0]
	}

	// CreatedAt is immutable: never taken from the patch.
	merged.CreatedAt = current.CreatedAt
	return merged
}
