package store

import (
	"regexp"
	"strconv"
	"strings"

	"thrifttu_back_end/internal/models"
)

// The catalog sheet layout is a positional contract shared by the read and
// write paths. Header (columns A:M):
//
//	ID | Nama | Brand | Ukuran | Warna | Harga | Deskripsi | Kategori |
//	Link Gambar | Buy URL | Status | Stok | Dibuat
//
// "Link Gambar" holds one or more URLs joined by commas; the first one is
// the canonical display image.
const (
	colID = iota
	colName
	colBrand
	colSize
	colColor
	colPrice
	colDescription
	colCategory
	colImages
	colBuyURL
	colStatus
	colStock
	colCreatedAt
	columnCount
)

// LastColumn is the rightmost sheet column of the product range.
const LastColumn = "M"

var nonDigits = regexp.MustCompile(`[^0-9]`)

// parsePrice tolerates "Rp 350.000", "350000", empty or garbage cells.
func parsePrice(raw string) int {
	digits := nonDigits.ReplaceAllString(raw, "")
	if digits == "" {
		return 0
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		return 0
	}
	return n
}

// parseRow maps one sheet row onto a Product. Short rows are fine: Sheets
// drops trailing empty cells, so every access goes through cell().
func parseRow(row []string) models.Product {
	cell := func(i int) string {
		if i < len(row) {
			return strings.TrimSpace(row[i])
		}
		return ""
	}

	rawImages := cell(colImages)
	var images []string
	for _, u := range strings.Split(rawImages, ",") {
		if u = strings.TrimSpace(u); u != "" {
			images = append(images, u)
		}
	}
	imageURL := rawImages
	if len(images) > 0 {
		imageURL = images[0]
	}

	p := models.Product{
		ID:          cell(colID),
		Name:        cell(colName),
		Brand:       cell(colBrand),
		Size:        cell(colSize),
		Color:       cell(colColor),
		Price:       parsePrice(cell(colPrice)),
		Description: cell(colDescription),
		Category:    cell(colCategory),
		ImageURL:    imageURL,
		Images:      images,
		BuyURL:      cell(colBuyURL),
		Status:      cell(colStatus),
		CreatedAt:   cell(colCreatedAt),
	}
	if raw := cell(colStock); raw != "" {
		if n, err := strconv.Atoi(nonDigits.ReplaceAllString(raw, "")); err == nil {
			p.Stock = &n
		}
	}
	return p
}

// renderRow maps a Product back onto a sheet row, inverse of parseRow.
func renderRow(p models.Product) []string {
	images := p.Images
	if len(images) == 0 && p.ImageURL != "" {
		images = []string{p.ImageURL}
	}
	stock := ""
	if p.Stock != nil {
		stock = strconv.Itoa(*p.Stock)
	}

	row := make([]string, columnCount)
	row[colID] = p.ID
	row[colName] = p.Name
	row[colBrand] = p.Brand
	row[colSize] = p.Size
	row[colColor] = p.Color
	row[colPrice] = strconv.Itoa(p.Price)
	row[colDescription] = p.Description
	row[colCategory] = p.Category
	row[colImages] = strings.Join(images, ",")
	row[colBuyURL] = p.BuyURL
	row[colStatus] = p.Status
	row[colStock] = stock
	row[colCreatedAt] = p.CreatedAt
	return row
}

// emptyRow reports whether a row was cleared by a delete (every cell blank).
func emptyRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
