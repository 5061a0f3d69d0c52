package routes

import (
	"os"
	"strings"

	"thrifttu_back_end/internal/handlers"
	"thrifttu_back_end/internal/handlers/admin"
	"thrifttu_back_end/internal/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine) {
	r.Use(cors.New(corsConfig()))

	api := r.Group("/api")
	api.Use(middleware.APIRateLimit())
	{
		// Catalogue
		api.GET("/products", handlers.GetProducts)
		api.GET("/products/:id/qr", handlers.ProductQR)

		// Chat acheteur
		api.POST("/chat", middleware.ChatRateLimit(), handlers.Chat)
		api.GET("/chat/ws", handlers.ChatWS)

		// Analytics
		api.POST("/queries", handlers.LogSearchQuery)
		api.POST("/analytics/cart-add", handlers.LogCartAdd)

		api.POST("/admin/login", admin.Login)
	}

	adm := r.Group("/api/admin")
	adm.Use(middleware.AdminRequired())
	{
		adm.GET("/products", admin.ListProducts)
		adm.POST("/products", admin.CreateProduct)
		adm.PUT("/products", admin.UpdateProduct)
		adm.DELETE("/products", admin.DeleteProduct)

		adm.POST("/chat", admin.Chat)
		adm.POST("/upload", handlers.UploadProductImage)
		adm.POST("/seed", admin.Seed)

		adm.GET("/queries", admin.ListQueries)
		adm.GET("/analytics/cart-add", admin.ListCartAdds)
	}
}

func corsConfig() cors.Config {
	cfg := cors.DefaultConfig()
	cfg.AllowHeaders = append(cfg.AllowHeaders, "Authorization")
	if origins := os.Getenv("CORS_ORIGINS"); origins != "" {
		cfg.AllowOrigins = strings.Split(origins, ",")
	} else {
		cfg.AllowAllOrigins = true
	}
	return cfg
}
