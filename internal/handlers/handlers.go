// Package handlers carries the public HTTP surface of the storefront:
// catalog, shopper chat and analytics intake.
package handlers

import (
	"context"
	"fmt"
	"log"
	"time"

	"thrifttu_back_end/internal/models"
	"thrifttu_back_end/internal/search"
	"thrifttu_back_end/internal/services"
	"thrifttu_back_end/internal/store"
)

var (
	Store      *store.ProductStore
	Logs       *store.SheetLogs
	LLM        services.Extractor
	llmTimeout time.Duration
)

// Init wires the handler package to its collaborators. Called once from
// main before the routes are registered.
func Init(s *store.ProductStore, l *store.SheetLogs, ex services.Extractor) {
	Store = s
	Logs = l
	LLM = ex
	llmTimeout = services.ExtractorTimeoutFromEnv()
}

// ChatResponse is the shopper chat payload: the filter the message was
// parsed into, the ranked products and a grounded assistant message.
type ChatResponse struct {
	Query    models.SearchFilter `json:"query"`
	Products []models.Product    `json:"products"`
	Message  string              `json:"message"`
	Relaxed  bool                `json:"relaxed,omitempty"`
}

// runShopperChat is the orchestrator shared by the HTTP and websocket chat
// transports: parse the message, search (with price relaxation), summarize.
func runShopperChat(ctx context.Context, message string) (ChatResponse, error) {
	filter := search.ParseMessage(ctx, LLM, message, llmTimeout)

	products, err := Store.FetchAll(ctx)
	if err != nil {
		return ChatResponse{}, err
	}

	result := search.Search(products, filter)

	return ChatResponse{
		Query:    filter,
		Products: result.Products,
		Message:  assistantMessage(len(result.Products), result.Relaxed),
		Relaxed:  result.Relaxed,
	}, nil
}

// assistantMessage is templated on purpose: it only ever mentions the
// result count, so it cannot hallucinate product attributes.
func assistantMessage(count int, relaxed bool) string {
	if count == 0 {
		return "Belum ketemu yang pas. Bisa sebut brand, ukuran, warna, atau budget yang kamu mau?"
	}
	note := ""
	if relaxed {
		note = " (filter harga aku longgarkan sedikit biar tetap ada rekomendasi)"
	}
	return fmt.Sprintf(
		"Aku nemuin %d produk yang cocok%s. Cek kartunya di bawah ya — kalau butuh penyesuaian (brand/ukuran/warna/budget), tinggal bilang.",
		count, note,
	)
}

// logQuery records what shoppers search, off the request path.
func logQuery(text, referer, userAgent string) {
	if Logs == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := Logs.AppendQuery(ctx, models.QueryLog{
			Text:      text,
			Referer:   referer,
			UserAgent: truncate(userAgent, 200),
		}); err != nil {
			log.Printf("⚠️ query log append failed: %v", err)
		}
	}()
}

func truncate(s string, n int) string {
	if len(s) > n {
		return s[:n]
	}
	return s
}
