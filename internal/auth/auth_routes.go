package auth

import (
	"leavesync/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	auth := r.Group("/auth")
	{
		auth.POST("/login", middleware.RateLimitByIP(0.2, 5), handler.Login)
		auth.POST("/logout", handler.Logout)
		auth.POST("/reset-password/request", middleware.RateLimitByIP(0.05, 3), handler.RequestPasswordReset)
		auth.POST("/reset-password/confirm", middleware.RateLimitByIP(0.1, 5), handler.ConfirmPasswordReset)
	}
}
