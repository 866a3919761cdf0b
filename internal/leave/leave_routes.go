package leave

import (
	"leavesync/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	guard middleware.Guard,
	rdb *redis.Client,
) {
	leaves := r.Group("/leaves")
	leaves.Use(guard.Authenticated())
	{
		leaves.GET("", guard.Require("leave", "read"), guard.Check("leave", "read_all", canReadAllKey), handler.GetAll)
		leaves.GET("/pending", guard.Require("leave", "approve"), handler.ListPending)
		leaves.GET("/:id", guard.Require("leave", "read"), guard.Check("leave", "read_all", canReadAllKey), handler.GetByID)
		leaves.POST("", guard.Require("leave", "create"), middleware.Idempotency(rdb, handler.logger), handler.Apply)
		leaves.PATCH("/:id", guard.Require("leave", "approve"), handler.Decide)
	}
}
