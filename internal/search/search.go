// Package search filters and ranks the in-memory product list against a
// structured filter. The list is at most a few hundred rows, so everything
// is a single pass plus a sort.
package search

import (
	"sort"
	"strings"

	"thrifttu_back_end/internal/models"
)

// Common Indonesian query words that should never be required to appear in
// product text ("apakah ada sepatu nike ukuran 42" must match on "nike"
// and "42", not on "apakah").
var stopwords = map[string]struct{}{
	"ukuran": {}, "size": {}, "apakah": {}, "ada": {}, "yang": {}, "di": {},
	"ke": {}, "dari": {}, "pada": {}, "untuk": {}, "dan": {}, "atau": {},
	"dengan": {}, "tanpa": {}, "dibawah": {}, "bawah": {}, "under": {},
	"<=": {}, "<": {}, "maks": {}, "budget": {}, "harga": {}, "sepatu": {},
	"sandal": {}, "sendal": {}, "warna": {}, "brand": {}, "merek": {},
}

// Result is what the chat orchestrator hands to the presentation layer.
type Result struct {
	Products []models.Product
	// Relaxed is true when the price bounds had to be dropped to find
	// anything; downstream messaging acknowledges it.
	Relaxed bool
}

// Search runs the shopper path: filter, relax the price bounds if that
// leaves nothing, then rank.
func Search(products []models.Product, f models.SearchFilter) Result {
	matched := Filter(products, f, false)

	relaxed := false
	if len(matched) == 0 && (f.MinPrice != nil || f.MaxPrice != nil) {
		matched = Filter(products, f.WithoutPrice(), false)
		relaxed = len(matched) > 0
	}

	if !f.IsEmpty() {
		matched = Rank(matched, f)
	}
	return Result{Products: matched, Relaxed: relaxed}
}

// Filter applies every set filter dimension, ANDed. Draft products are
// never returned; Sold products only on the admin path (includeSold).
func Filter(products []models.Product, f models.SearchFilter, includeSold bool) []models.Product {
	tokens := keywordTokens(f.Keyword)

	matched := []models.Product{}
	for _, p := range products {
		if p.Status == models.StatusDraft {
			continue
		}
		if !includeSold && p.Status == models.StatusSold {
			continue
		}
		if f.Category != "" && !containsFold(p.Category, f.Category) {
			continue
		}
		if f.Brand != "" && !containsFold(p.Brand, f.Brand) {
			continue
		}
		if f.Size != "" && !containsFold(p.Size, f.Size) {
			continue
		}
		if f.Color != "" && !containsFold(p.Color, f.Color) {
			continue
		}
		if len(tokens) > 0 {
			// Majority-token match: at least ceil(n/2) tokens must appear
			// somewhere in the product text.
			hay := haystack(p)
			hits := 0
			for _, t := range tokens {
				if strings.Contains(hay, t) {
					hits++
				}
			}
			if hits < (len(tokens)+1)/2 {
				continue
			}
		}
		if f.MinPrice != nil && p.Price < *f.MinPrice {
			continue
		}
		if f.MaxPrice != nil && p.Price > *f.MaxPrice {
			continue
		}
		matched = append(matched, p)
	}
	return matched
}

// Rank sorts by relevance score, highest first.
func Rank(products []models.Product, f models.SearchFilter) []models.Product {
	tokens := keywordTokens(f.Keyword)

	scored := make([]models.Product, len(products))
	copy(scored, products)
	scores := make(map[int]int, len(scored))
	for i, p := range scored {
		scores[i] = Score(p, f, tokens)
	}
	idx := make([]int, len(scored))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool { return scores[idx[a]] > scores[idx[b]] })

	out := make([]models.Product, len(scored))
	for i, j := range idx {
		out[i] = scored[j]
	}
	return out
}

// Score weights the structured dimensions above free-text hits: brand is
// the strongest purchase signal, then size, then color, then category.
func Score(p models.Product, f models.SearchFilter, tokens []string) int {
	score := 0
	if f.Brand != "" && containsFold(p.Brand, f.Brand) {
		score += 5
	}
	if f.Size != "" && containsFold(p.Size, f.Size) {
		score += 4
	}
	if f.Color != "" && containsFold(p.Color, f.Color) {
		score += 3
	}
	if f.Category != "" && containsFold(p.Category, f.Category) {
		score += 2
	}
	if len(tokens) > 0 {
		hay := haystack(p)
		for _, t := range tokens {
			if strings.Contains(hay, t) {
				score++
			}
		}
		if phrase := strings.TrimSpace(strings.ToLower(f.Keyword)); phrase != "" && strings.Contains(hay, phrase) {
			score += 2
		}
	}
	if p.Price > 0 {
		score++
	}
	return score
}

// haystack concatenates every searchable text field, lower-cased.
func haystack(p models.Product) string {
	return strings.ToLower(strings.Join([]string{
		p.ID, p.Name, p.Description, p.Category, p.Brand, p.Size, p.Color,
	}, " "))
}

// keywordTokens splits the keyword on whitespace and drops stopwords. An
// empty result means the keyword imposes no constraint.
func keywordTokens(keyword string) []string {
	var tokens []string
	for _, t := range strings.Fields(strings.ToLower(keyword)) {
		if _, skip := stopwords[t]; !skip {
			tokens = append(tokens, t)
		}
	}
	return tokens
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
