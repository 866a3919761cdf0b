package penalty

import (
	"leavesync/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, guard middleware.Guard) {
	penalties := r.Group("/penalties")
	penalties.Use(guard.Authenticated())
	{
		penalties.GET("", guard.Require("penalty", "read"), guard.Check("penalty", "read_all", canReadAllKey), h.List)
		penalties.POST("", guard.Require("penalty", "create"), h.Issue)
		penalties.PATCH("/:id", guard.Require("penalty", "manage"), h.UpdateStatus)
		penalties.DELETE("/:id", guard.Require("penalty", "manage"), h.Delete)
	}
}
