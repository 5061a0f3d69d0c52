package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// CORS is enforced on the REST surface; the widget connects from
		// the storefront origin.
		return true
	},
}

// ChatWS is the live transport for the chat widget: one JSON message in,
// one ChatResponse out, same orchestrator as POST /api/chat.
func ChatWS(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("❌ websocket upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	if err := conn.WriteJSON(gin.H{
		"type":    "connected",
		"message": "Halo! Mau cari sepatu apa hari ini?",
	}); err != nil {
		return
	}

	for {
		var req chatRequest
		if err := conn.ReadJSON(&req); err != nil {
			return
		}
		if req.Message == "" {
			conn.WriteJSON(gin.H{"type": "error", "message": "message is required"})
			continue
		}

		logQuery(req.Message, "ws", c.GetHeader("User-Agent"))

		resp, err := runShopperChat(c.Request.Context(), req.Message)
		if err != nil {
			conn.WriteJSON(gin.H{
				"type":    "error",
				"message": "Lagi ada gangguan di katalog nih. Coba lagi sebentar ya.",
			})
			continue
		}
		if err := conn.WriteJSON(resp); err != nil {
			return
		}
	}
}
