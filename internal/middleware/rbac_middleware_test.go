package middleware_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"leavesync/internal/domain"
	"leavesync/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type fakeEnforcer struct {
	allowed map[string]bool
	err     error
}

func (f fakeEnforcer) Enforce(req domain.EnforceRequest) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	return f.allowed[req.Role+":"+req.Resource+":"+req.Action], nil
}

func rbacRouter(svc middleware.RBACService, role string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		if role != "" {
			c.Set("role", role)
		}
		c.Next()
	})
	r.GET("/leaves",
		middleware.RBACAuthorize(svc, "leave", "read"),
		middleware.RBACCheck(svc, "leave", "read_all", "leave_read_all"),
		func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"all": c.GetBool("leave_read_all")})
		},
	)
	return r
}

func TestRBACAuthorize(t *testing.T) {
	enforcer := fakeEnforcer{allowed: map[string]bool{
		"employee:leave:read":    true,
		"manager:leave:read":     true,
		"manager:leave:read_all": true,
	}}

	tests := []struct {
		name     string
		svc      middleware.RBACService
		role     string
		wantCode int
		wantBody string
	}{
		{"employee reads own", enforcer, "employee", http.StatusOK, `{"all":false}`},
		{"manager checks read_all", enforcer, "manager", http.StatusOK, `{"all":true}`},
		{"unknown role forbidden", enforcer, "guest", http.StatusForbidden, "leave:read"},
		{"no role in context", enforcer, "", http.StatusUnauthorized, "INVALID_TOKEN"},
		{"enforcer failure", fakeEnforcer{err: errors.New("boom")}, "manager", http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			rbacRouter(tt.svc, tt.role).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/leaves", nil))

			assert.Equal(t, tt.wantCode, w.Code)
			assert.Contains(t, w.Body.String(), tt.wantBody)
		})
	}
}
