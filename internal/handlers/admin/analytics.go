package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ListQueries returns the latest shopper searches, newest first.
func ListQueries(c *gin.Context) {
	logs, err := Logs.ListQueries(c.Request.Context(), 100)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "list error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"logs": logs})
}

// ListCartAdds returns the latest cart additions, newest first.
func ListCartAdds(c *gin.Context) {
	logs, err := Logs.ListCartAdds(c.Request.Context(), 50)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "list error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"logs": logs})
}
