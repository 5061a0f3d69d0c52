package models

// QueryLog is one row of the "Queries" sheet tab: what shoppers typed into
// the search bar or the chatbox, for merchandising review.
type QueryLog struct {
	Timestamp string `json:"timestamp"`
	Text      string `json:"text"`
	Referer   string `json:"referer,omitempty"`
	UserAgent string `json:"userAgent,omitempty"`
}

// CartAddLog is one row of the "CartAdds" tab, appended when a shopper puts
// a product in the cart.
type CartAddLog struct {
	Timestamp string `json:"timestamp"`
	ProductID string `json:"id"`
	Name      string `json:"name"`
	Size      string `json:"size,omitempty"`
	Price     int    `json:"price"`
	UserAgent string `json:"userAgent,omitempty"`
}

// StockAudit is one row of the "StockAudit" tab, appended whenever an admin
// update changes a product's stock.
type StockAudit struct {
	Timestamp string `json:"timestamp"`
	ProductID string `json:"productId"`
	OldStock  int    `json:"oldStock"`
	NewStock  int    `json:"newStock"`
	Delta     int    `json:"delta"`
}
