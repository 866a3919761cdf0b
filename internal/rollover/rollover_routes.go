package rollover

import (
	"leavesync/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, guard middleware.Guard) {
	admin := r.Group("/admin/rollover")
	admin.Use(guard.Authenticated(), guard.Require("rollover", "execute"))
	{
		admin.POST("", h.Run)
		admin.GET("/report.pdf", h.Report)
	}
}
