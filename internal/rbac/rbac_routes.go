package rbac

import (
	"leavesync/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, guard middleware.Guard) {
	group := r.Group("/rbac")
	group.Use(guard.Authenticated())
	{
		group.POST("/enforce", handler.Enforce)
	}
}
