package employee

import (
	"leavesync/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	guard middleware.Guard,
) {
	users := r.Group("/users")
	users.Use(guard.Authenticated())
	{
		users.GET("/me", guard.Require("profile", "read"), handler.GetMe)
		users.GET("", guard.Require("user", "read"), handler.GetAll)
		users.POST("",
			middleware.RateLimitByUser(0.5, 2),
			guard.Require("user", "create"),
			handler.Create,
		)
	}
}
