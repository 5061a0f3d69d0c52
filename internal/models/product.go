package models

// Statuses a product row can carry in the sheet.
const (
	StatusPublished = "Published"
	StatusDraft     = "Draft"
	StatusSold      = "Sold"
)

// DefaultCategory is used whenever a product or a query comes without one.
const DefaultCategory = "sepatu"

// Product mirrors one row of the catalog sheet. Prices are integer Rupiah.
type Product struct {
	ID          string   `json:"id,omitempty"`
	Name        string   `json:"name"`
	Brand       string   `json:"brand,omitempty"`
	Size        string   `json:"size,omitempty"`
	Color       string   `json:"color,omitempty"`
	Price       int      `json:"price"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	ImageURL    string   `json:"imageUrl"`
	Images      []string `json:"images,omitempty"`
	BuyURL      string   `json:"buyUrl,omitempty"`
	Status      string   `json:"status,omitempty"`
	Stock       *int     `json:"stock,omitempty"`
	CreatedAt   string   `json:"createdAt,omitempty"`
}

// ProductPatch carries a partial update: nil fields keep the stored value.
type ProductPatch struct {
	Name        *string  `json:"name,omitempty"`
	Brand       *string  `json:"brand,omitempty"`
	Size        *string  `json:"size,omitempty"`
	Color       *string  `json:"color,omitempty"`
	Price       *int     `json:"price,omitempty"`
	Description *string  `json:"description,omitempty"`
	Category    *string  `json:"category,omitempty"`
	ImageURL    *string  `json:"imageUrl,omitempty"`
	Images      []string `json:"images,omitempty"`
	BuyURL      *string  `json:"buyUrl,omitempty"`
	Status      *string  `json:"status,omitempty"`
	Stock       *int     `json:"stock,omitempty"`
}

// SearchFilter is the structured query produced by the extractor or the
// heuristic parser. Zero values mean "not set"; the price bounds use
// pointers because 0 is a meaningful bound.
type SearchFilter struct {
	Category string `json:"kategori,omitempty"`
	Brand    string `json:"brand,omitempty"`
	Size     string `json:"size,omitempty"`
	Color    string `json:"color,omitempty"`
	MinPrice *int   `json:"min_price,omitempty"`
	MaxPrice *int   `json:"max_price,omitempty"`
	Keyword  string `json:"keyword,omitempty"`
}

// IsEmpty reports whether no field of the filter is set.
func (f SearchFilter) IsEmpty() bool {
	return f.Category == "" && f.Brand == "" && f.Size == "" && f.Color == "" &&
		f.MinPrice == nil && f.MaxPrice == nil && f.Keyword == ""
}

// WithoutPrice returns a copy of the filter with the price bounds removed.
// Used by the relaxation retry when a bounded search comes back empty.
func (f SearchFilter) WithoutPrice() SearchFilter {
	relaxed := f
	relaxed.MinPrice = nil
	relaxed.MaxPrice = nil
	return relaxed
}
