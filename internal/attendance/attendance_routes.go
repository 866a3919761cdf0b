package attendance

import (
	"leavesync/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, guard middleware.Guard) {
	attendances := r.Group("/attendance")
	attendances.Use(guard.Authenticated())
	{
		attendances.GET("", guard.Require("attendance", "read"), h.History)
		attendances.GET("/all", guard.Require("attendance", "read_all"), h.ListAll)
		attendances.POST("/check-in", guard.Require("attendance", "create"), h.CheckIn)
		attendances.POST("/check-out", guard.Require("attendance", "create"), h.CheckOut)
	}
}
