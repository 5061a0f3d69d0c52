package main

import (
	"context"
	"log"
	"os"
	"time"

	"thrifttu_back_end/internal/config"
	"thrifttu_back_end/internal/database"
	"thrifttu_back_end/internal/handlers"
	"thrifttu_back_end/internal/handlers/admin"
	"thrifttu_back_end/internal/models"
	"thrifttu_back_end/internal/routes"
	"thrifttu_back_end/internal/services"
	"thrifttu_back_end/internal/store"
	"thrifttu_back_end/internal/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	config.Load()
	database.ConnectDatabases()

	spreadsheetID := os.Getenv("GOOGLE_SHEET_ID")
	if spreadsheetID == "" {
		log.Fatal("❌ GOOGLE_SHEET_ID not set")
	}

	products := store.NewProductStore(
		store.NewSheetSource(database.Sheets, spreadsheetID, envOr("PRODUCTS_TAB", "Sheet1"), store.LastColumn),
	)
	logs := store.NewSheetLogs(
		store.NewSheetSource(database.Sheets, spreadsheetID, envOr("QUERIES_TAB", "Queries"), "D"),
		store.NewSheetSource(database.Sheets, spreadsheetID, envOr("CART_ADDS_TAB", "CartAdds"), "F"),
		store.NewSheetSource(database.Sheets, spreadsheetID, envOr("STOCK_AUDIT_TAB", "StockAudit"), "E"),
	)
	products.OnStockChange = func(a models.StockAudit) {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := logs.AppendStockAudit(ctx, a); err != nil {
			log.Println("⚠️ Stock audit not recorded:", err)
		}
		if a.NewStock == 0 {
			notifySoldOut(ctx, products, a.ProductID)
		}
	}

	extractor := services.NewExtractorFromEnv(context.Background())

	handlers.Init(products, logs, extractor)
	admin.Init(products, logs, extractor)

	r := gin.Default()
	routes.RegisterRoutes(r)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Println("🚀 ThriftTu server listening on port", port)
	r.Run(":" + port)
}

// notifySoldOut looks the product up again so the mail carries its name
// and price, then alerts the admin.
func notifySoldOut(ctx context.Context, products *store.ProductStore, id string) {
	list, err := products.FetchAll(ctx)
	if err != nil {
		log.Println("⚠️ Sold-out product not found for notification:", err)
		return
	}
	for _, p := range list {
		if p.ID == id {
			if err := utils.SendSoldOutEmail(p); err != nil {
				log.Println("⚠️ Sold-out email not sent:", err)
			}
			return
		}
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
