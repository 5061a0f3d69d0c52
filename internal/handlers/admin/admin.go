// Package admin carries the dashboard HTTP surface: inventory CRUD, the
// natural-language product entry chat, analytics listings and login.
package admin

import (
	"time"

	"thrifttu_back_end/internal/services"
	"thrifttu_back_end/internal/store"
)

var (
	Store      *store.ProductStore
	Logs       *store.SheetLogs
	LLM        services.Extractor
	llmTimeout time.Duration
)

// Init wires the admin handlers to their collaborators, once, from main.
func Init(s *store.ProductStore, l *store.SheetLogs, ex services.Extractor) {
	Store = s
	Logs = l
	LLM = ex
	llmTimeout = services.ExtractorTimeoutFromEnv()
}
