package dashboard

import (
	"leavesync/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, guard middleware.Guard) {
	admin := r.Group("/admin")
	admin.Use(guard.Authenticated(), guard.Require("dashboard", "read"))
	{
		admin.GET("/stats", h.Stats)
		admin.GET("/activity", h.Activity)
	}
}
