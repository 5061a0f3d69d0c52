package search

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"thrifttu_back_end/internal/models"
	"thrifttu_back_end/internal/services"
)

// DefaultExtractorTimeout bounds the LLM extraction call; past it the
// heuristic parser takes over.
const DefaultExtractorTimeout = 6000 * time.Millisecond

const maxKeywordTokens = 8

var (
	rePriceK   = regexp.MustCompile(`(\d+(?:[.,]\d+)?)\s*k\b`)
	rePriceJt  = regexp.MustCompile(`(\d+(?:[.,]\d+)?)\s*(?:jt|juta)\b`)
	rePriceRp  = regexp.MustCompile(`rp\.?\s*([0-9][0-9.,]{2,})`)
	reMinHint  = regexp.MustCompile(`(?:di\s*atas|min(?:imal)?)\s*$`)
	reSizeLbl  = regexp.MustCompile(`ukuran\s*([a-z0-9._/\-]+)`)
	reSizeNum  = regexp.MustCompile(`\b(3[5-9]|4[0-6]|[8-9](?:\.5)?|1[0-2](?:\.5)?)\b`)
	reNonAlnum = regexp.MustCompile(`[^a-z0-9\s]`)
)

// Longest names first so "new balance" wins over the "nb" alias.
var brandVocab = []string{
	"new balance", "onitsuka", "converse", "reebok", "adidas", "asics",
	"puma", "vans", "nike", "fila", "nb",
}

var colorVocab = []string{
	"hitam", "putih", "merah", "biru", "hijau", "abu", "coklat", "cream", "krem", "kuning",
}

var categoryVocab = []string{
	"sepatu", "sneaker", "sandal", "sendal", "hoodie", "kemeja", "celana", "kaos", "t-shirt", "tshirt",
}

const extractionPrompt = `Kamu akan mengekstrak parameter pencarian sepatu. Output-kan HANYA JSON valid tanpa teks lain.
Skema: { "kategori": string(optional), "max_price": number(optional), "min_price": number(optional), "keyword": string(optional), "brand": string(optional), "size": string(optional), "color": string(optional) }
Contoh output: {"kategori":"sepatu","brand":"nike","color":"hitam","size":"42","max_price":500000,"keyword":"nike hitam 42"}
Teks pengguna: %q`

// ParseMessage turns a free-text shopper message into a SearchFilter. The
// extractor path is primary; any failure there (timeout, garbage output,
// unusable shape) falls through to the deterministic heuristics exactly
// once. The result is never empty: worst case it carries the whole message
// as keyword.
func ParseMessage(ctx context.Context, ex services.Extractor, message string, timeout time.Duration) models.SearchFilter {
	if timeout <= 0 {
		timeout = DefaultExtractorTimeout
	}

	if ex != nil {
		raw, err := services.ExtractWithTimeout(ctx, ex, fmt.Sprintf(extractionPrompt, message), timeout)
		if err == nil {
			if f, ok := decodeFilter(raw); ok {
				return f
			}
		} else {
			log.Printf("⚠️ extraction failed, falling back to heuristics: %v", err)
		}
	}

	f := HeuristicFilter(message)
	if f.IsEmpty() {
		f.Keyword = strings.ToLower(message)
	}
	return f
}

// decodeFilter validates extractor output against the filter schema.
// Anything that is not a JSON object with at least one usable field counts
// as an extraction failure.
func decodeFilter(raw string) (models.SearchFilter, bool) {
	js, ok := services.ExtractFirstJSON(raw)
	if !ok {
		return models.SearchFilter{}, false
	}

	var obj map[string]any
	if err := json.Unmarshal(js, &obj); err != nil {
		return models.SearchFilter{}, false
	}

	f := models.SearchFilter{
		Category: jsonStr(obj["kategori"]),
		Brand:    jsonStr(obj["brand"]),
		Size:     jsonStr(obj["size"]),
		Color:    jsonStr(obj["color"]),
		Keyword:  jsonStr(obj["keyword"]),
		MinPrice: jsonPrice(obj["min_price"]),
		MaxPrice: jsonPrice(obj["max_price"]),
	}
	if f.IsEmpty() {
		return models.SearchFilter{}, false
	}
	return f, true
}

// HeuristicFilter is the deterministic fallback parser: no I/O, pure text.
func HeuristicFilter(message string) models.SearchFilter {
	lower := strings.ToLower(message)
	f := models.SearchFilter{}

	// Price: "450k", "1.2jt"/"juta", or a grouped "Rp 450.000" number.
	// The first form found wins, only one bound per message. A "di atas"/"min"
	// hint right before the amount makes it a lower bound.
	if loc := rePriceK.FindStringSubmatchIndex(lower); loc != nil {
		setPriceBound(&f, lower, loc, 1_000)
	} else if loc := rePriceJt.FindStringSubmatchIndex(lower); loc != nil {
		setPriceBound(&f, lower, loc, 1_000_000)
	} else if loc := rePriceRp.FindStringSubmatchIndex(lower); loc != nil {
		amount := parseGroupedNumber(lower[loc[2]:loc[3]])
		assignBound(&f, lower[:loc[0]], amount)
	}

	for _, b := range brandVocab {
		if strings.Contains(lower, b) {
			if b == "nb" || b == "new balance" {
				f.Brand = "New Balance"
			} else {
				f.Brand = titleCase(b)
			}
			break
		}
	}

	if m := reSizeLbl.FindStringSubmatch(lower); m != nil {
		f.Size = m[1]
	} else if m := reSizeNum.FindStringSubmatch(lower); m != nil {
		f.Size = m[1]
	}

	for _, c := range colorVocab {
		if strings.Contains(lower, c) {
			f.Color = c
			break
		}
	}

	for _, cat := range categoryVocab {
		if strings.Contains(lower, cat) {
			f.Category = normalizeCategory(cat)
			break
		}
	}
	if f.Category == "" {
		f.Category = models.DefaultCategory
	}

	f.Keyword = normalizeKeyword(lower)
	return f
}

func setPriceBound(f *models.SearchFilter, lower string, loc []int, multiplier int) {
	numText := strings.ReplaceAll(lower[loc[2]:loc[3]], ",", ".")
	v, err := strconv.ParseFloat(numText, 64)
	if err != nil {
		return
	}
	assignBound(f, lower[:loc[0]], int(math.Round(v*float64(multiplier))))
}

func assignBound(f *models.SearchFilter, before string, amount int) {
	if amount <= 0 {
		return
	}
	if reMinHint.MatchString(before) {
		f.MinPrice = &amount
	} else {
		f.MaxPrice = &amount
	}
}

func parseGroupedNumber(s string) int {
	digits := regexp.MustCompile(`[^0-9]`).ReplaceAllString(s, "")
	n, _ := strconv.Atoi(digits)
	return n
}

func normalizeCategory(cat string) string {
	switch cat {
	case "tshirt":
		return "t-shirt"
	case "sneaker":
		return models.DefaultCategory
	case "sendal":
		return "sandal"
	}
	return cat
}

// normalizeKeyword lower-cases, strips punctuation and caps the token count.
func normalizeKeyword(lower string) string {
	cleaned := reNonAlnum.ReplaceAllString(lower, " ")
	tokens := strings.Fields(cleaned)
	if len(tokens) > maxKeywordTokens {
		tokens = tokens[:maxKeywordTokens]
	}
	return strings.Join(tokens, " ")
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

func jsonStr(v any) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case float64:
		if t == math.Trunc(t) {
			return strconv.Itoa(int(t))
		}
		return strconv.FormatFloat(t, 'f', -1, 64)
	}
	return ""
}

func jsonPrice(v any) *int {
	n, ok := v.(float64)
	if !ok || n < 0 || math.IsNaN(n) {
		return nil
	}
	i := int(math.Round(n))
	return &i
}
