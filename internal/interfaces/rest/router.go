package rest

import (
	"github.com/gin-gonic/gin"
	"github.com/rankmath/repair-action-scheduler/internal/interfaces/middleware"
)

// NewRouter wires the notice endpoints. A non-empty secret requires bearer tokens on /api.
// Invoking the repair can rename tables, so it is only reachable by POST.
func NewRouter(h *NoticeHandler, secret []byte) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	})

	api := router.Group("/api")
	api.Use(middleware.RequireToken(secret))
	{
		api.POST("/notices", h.InvokeNotices)
		api.GET("/status", h.GetStatus)
		api.GET("/schema/:table", h.GetSchema)
	}

	return router
}
