package middleware

import (
	"net/http"

	autherrors "leavesync/internal/auth/errors"
	"leavesync/internal/domain"
	"leavesync/internal/shared/response"

	"github.com/gin-gonic/gin"
)

// RBACService is satisfied by anything that can evaluate an EnforceRequest.
type RBACService interface {
	Enforce(req domain.EnforceRequest) (bool, error)
}

func RBACAuthorize(service RBACService, resource, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString("role")
		if role == "" {
			abortWith(c, autherrors.ErrInvalidToken)
			return
		}

		allowed, err := service.Enforce(domain.EnforceRequest{
			Role:     role,
			Resource: resource,
			Action:   action,
		})
		if err != nil {
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to evaluate permissions", nil)
			c.Abort()
			return
		}

		if !allowed {
			response.Error(c, autherrors.ErrForbidden.HTTPStatus, autherrors.ErrForbidden.Code, autherrors.ErrForbidden.Message, gin.H{
				"required": resource + ":" + action,
			})
			c.Abort()
			return
		}
		c.Next()
	}
}

// RBACCheck records whether the caller holds resource:action under key
// without rejecting the request.
func RBACCheck(service RBACService, resource, action, key string) gin.HandlerFunc {
	return func(c *gin.Context) {
		allowed, err := service.Enforce(domain.EnforceRequest{
			Role:     c.GetString("role"),
			Resource: resource,
			Action:   action,
		})
		c.Set(key, err == nil && allowed)
		c.Next()
	}
}

// Guard bundles the token secret and the enforcer so route files only need one value.
type Guard struct {
	Secret string
	RBAC   RBACService
}

func (g Guard) Authenticated() gin.HandlerFunc {
	return AuthMiddleware(g.Secret)
}

func (g Guard) Require(resource, action string) gin.HandlerFunc {
	return RBACAuthorize(g.RBAC, resource, action)
}

func (g Guard) Check(resource, action, key string) gin.HandlerFunc {
	return RBACCheck(g.RBAC, resource, action, key)
}
