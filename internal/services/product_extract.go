package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math"
	"regexp"
	"strings"
	"time"

	"thrifttu_back_end/internal/models"
)

// Admin chat variant of extraction: the message describes a product to add
// ("tambahkan sepatu Nike Air Max ukuran 42, warna hitam, 450k") and we
// want the full field set, not a search filter.

const productPrompt = `Ekstrak detail produk dari teks berikut dan kembalikan HANYA JSON valid dengan field:
{"name": string, "brand": string(optional), "size": string(optional), "color": string(optional), "price": number(optional), "description": string(optional), "category": string(optional, default "sepatu"), "imageUrl": string(optional), "buyUrl": string(optional), "status": string(optional, default "Published")}
Teks: %q`

var (
	reProdSize  = regexp.MustCompile(`(?i)ukuran\s*([a-z0-9._/\-]+)`)
	reProdColor = regexp.MustCompile(`(?i)warna\s*([^,\n]+)`)
	reProdCond  = regexp.MustCompile(`(?i)(?:kondisi|condition)\s*([0-9]{1,3}%)`)
	reProdK     = regexp.MustCompile(`(\d+(?:[.,]\d+)?)\s*k\b`)
	reProdRp    = regexp.MustCompile(`(?i)(?:rp\.?\s*)?([0-9][0-9.,]{2,})`)
	reProdName  = regexp.MustCompile(`(?i)tambahkan\s+sepatu\s+([^,\n]+)`)
	reDigitsOut = regexp.MustCompile(`[^0-9]`)
)

var productBrands = []string{
	"new balance", "converse", "reebok", "adidas", "asics", "puma", "vans", "nike", "nb",
}

// ParseProductMessage turns an admin message into a product to create.
// Extractor first, heuristics on any failure, then defaults are applied so
// the result is always creatable.
func ParseProductMessage(ctx context.Context, ex Extractor, message string, timeout time.Duration) models.Product {
	var p models.Product
	decoded := false

	if ex != nil {
		raw, err := ExtractWithTimeout(ctx, ex, fmt.Sprintf(productPrompt, message), timeout)
		if err == nil {
			p, decoded = decodeProduct(raw)
		} else {
			log.Printf("⚠️ product extraction failed, using heuristics: %v", err)
		}
	}
	if !decoded {
		p = HeuristicProduct(message)
	}

	return normalizeProduct(p)
}

func decodeProduct(raw string) (models.Product, bool) {
	js, ok := ExtractFirstJSON(raw)
	if !ok {
		return models.Product{}, false
	}
	var obj map[string]any
	if err := json.Unmarshal(js, &obj); err != nil {
		return models.Product{}, false
	}

	p := models.Product{
		Name:        anyString(obj["name"]),
		Brand:       anyString(obj["brand"]),
		Size:        anyString(obj["size"]),
		Color:       anyString(obj["color"]),
		Description: anyString(obj["description"]),
		Category:    anyString(obj["category"]),
		ImageURL:    anyString(obj["imageUrl"]),
		BuyURL:      anyString(obj["buyUrl"]),
		Status:      anyString(obj["status"]),
	}
	if n, ok := obj["price"].(float64); ok && n > 0 && !math.IsNaN(n) {
		p.Price = int(math.Round(n))
	}
	if p.Name == "" && p.Brand == "" && p.Price == 0 {
		return models.Product{}, false
	}
	return p, true
}

// HeuristicProduct is the deterministic admin-side parser.
func HeuristicProduct(message string) models.Product {
	lower := strings.ToLower(message)
	p := models.Product{}

	if m := reProdName.FindStringSubmatch(message); m != nil {
		p.Name = strings.TrimSpace(m[1])
	}
	if m := reProdSize.FindStringSubmatch(message); m != nil {
		p.Size = m[1]
	}
	if m := reProdColor.FindStringSubmatch(message); m != nil {
		p.Color = strings.TrimSpace(m[1])
	}
	if m := reProdCond.FindStringSubmatch(message); m != nil {
		p.Description = "Kondisi: " + m[1]
	}

	// Price: "450k" beats a bare "450.000"/"Rp 450.000".
	if m := reProdK.FindStringSubmatch(lower); m != nil {
		var v float64
		fmt.Sscanf(strings.ReplaceAll(m[1], ",", "."), "%f", &v)
		p.Price = int(math.Round(v * 1000))
	} else if m := reProdRp.FindStringSubmatch(message); m != nil {
		digits := reDigitsOut.ReplaceAllString(m[1], "")
		fmt.Sscanf(digits, "%d", &p.Price)
	}

	for _, b := range productBrands {
		if strings.Contains(lower, b) {
			if b == "nb" || b == "new balance" {
				p.Brand = "New Balance"
			} else {
				p.Brand = strings.ToUpper(b[:1]) + b[1:]
			}
			break
		}
	}

	if strings.Contains(lower, "sepatu") {
		p.Category = models.DefaultCategory
	} else {
		p.Category = "lainnya"
	}
	return p
}

func normalizeProduct(p models.Product) models.Product {
	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		p.Name = "Produk Tanpa Nama"
	}
	p.Category = strings.TrimSpace(p.Category)
	if p.Category == "" {
		p.Category = models.DefaultCategory
	}
	if p.Price < 0 {
		p.Price = 0
	}
	// Anything that is not explicitly Draft goes live.
	if strings.TrimSpace(p.Status) != models.StatusDraft {
		p.Status = models.StatusPublished
	}
	return p
}

func anyString(v any) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case float64:
		if t == math.Trunc(t) {
			return fmt.Sprintf("%d", int(t))
		}
		return fmt.Sprintf("%v", t)
	}
	return ""
}
