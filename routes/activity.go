package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"home-services-server/database"
	"home-services-server/models"
	"home-services-server/utils"
	ws "home-services-server/websocket"
)

// RegisterActivityRoutes registers the admin dashboard WebSocket feed.
// Browsers cannot set Authorization headers on WebSocket upgrades, so
// the token rides in a query parameter.
func RegisterActivityRoutes(router *gin.RouterGroup, hub *ws.Hub) {
	router.GET("/ws/admin", func(c *gin.Context) {
		tokenString := c.Query("token")
		if tokenString == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"status":  "error",
				"message": "Token required",
			})
			return
		}

		claims, err := utils.VerifyToken(tokenString)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"status":  "error",
				"message": "Token is invalid or expired",
			})
			return
		}

		var user models.User
		if err := database.DB.First(&user, claims.UserID).Error; err != nil || !user.IsAdmin() {
			c.JSON(http.StatusForbidden, gin.H{
				"status":  "error",
				"message": "Admin access required",
			})
			return
		}

		ws.ServeWebSocket(hub, c.Writer, c.Request, user.ID)
	})
}
