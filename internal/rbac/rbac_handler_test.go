package rbac

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestHandler_Enforce(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := newLoadedService(t, &fakeRepo{})
	handler := NewHandler(svc)

	t.Run("uses the caller's role", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/rbac/enforce", strings.NewReader(`{"resource":"leave","action":"approve"}`))
		c.Request.Header.Set("Content-Type", "application/json")
		c.Set("role", "manager")

		handler.Enforce(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"allowed":true`)
		assert.Contains(t, w.Body.String(), `"role":"manager"`)
	})

	t.Run("denied for employee", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/rbac/enforce", strings.NewReader(`{"resource":"leave","action":"approve"}`))
		c.Request.Header.Set("Content-Type", "application/json")
		c.Set("role", "employee")

		handler.Enforce(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"allowed":false`)
	})

	t.Run("missing action", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/rbac/enforce", strings.NewReader(`{"resource":"leave"}`))
		c.Request.Header.Set("Content-Type", "application/json")

		handler.Enforce(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
