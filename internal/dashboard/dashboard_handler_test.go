package dashboard_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"leavesync/internal/dashboard"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type fakeService struct {
	stats    dashboard.StatsResponse
	activity []dashboard.ActivityItem
	err      error
}

func (f *fakeService) Stats(context.Context) (dashboard.StatsResponse, error) {
	return f.stats, f.err
}

func (f *fakeService) Activity(context.Context) ([]dashboard.ActivityItem, error) {
	return f.activity, f.err
}

func serve(svc dashboard.Service, path string) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := dashboard.NewHandler(svc)
	r.GET("/admin/stats", h.Stats)
	r.GET("/admin/activity", h.Activity)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestHandler_Stats(t *testing.T) {
	w := serve(&fakeService{stats: dashboard.StatsResponse{TotalEmployees: 12, AttendancePercentage: 83}}, "/admin/stats")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"total_employees":12`)
	assert.Contains(t, w.Body.String(), `"attendance_percentage":83`)
}

func TestHandler_Activity(t *testing.T) {
	w := serve(&fakeService{activity: []dashboard.ActivityItem{{User: "Ari", Action: "checked in", Type: dashboard.ActivityAttendance}}}, "/admin/activity")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"activities":[{"user":"Ari","action":"checked in"`)
}

func TestHandler_StatsFailure(t *testing.T) {
	w := serve(&fakeService{err: errors.New("boom")}, "/admin/stats")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "INTERNAL_ERROR")
}
