package attendance_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"leavesync/internal/attendance"
	attendanceerrors "leavesync/internal/attendance/errors"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type apiEnvelope struct {
	Ok    bool            `json:"ok"`
	Data  json.RawMessage `json:"data"`
	Error *apiError       `json:"error"`
}

func decodeEnvelope(t *testing.T, body []byte) apiEnvelope {
	t.Helper()
	var env apiEnvelope
	err := json.Unmarshal(body, &env)
	assert.NoError(t, err)
	return env
}

type fakeAttendanceService struct {
	checkInFn  func(ctx context.Context, employeeID uint, req attendance.CheckInRequest) (attendance.AttendanceResponse, error)
	checkOutFn func(ctx context.Context, employeeID uint, req attendance.CheckOutRequest) (attendance.AttendanceResponse, error)
	historyFn  func(ctx context.Context, employeeID uint) ([]attendance.AttendanceResponse, error)
	listAllFn  func(ctx context.Context) ([]attendance.AttendanceResponse, error)
}

func (f *fakeAttendanceService) CheckIn(ctx context.Context, employeeID uint, req attendance.CheckInRequest) (attendance.AttendanceResponse, error) {
	return f.checkInFn(ctx, employeeID, req)
}
func (f *fakeAttendanceService) CheckOut(ctx context.Context, employeeID uint, req attendance.CheckOutRequest) (attendance.AttendanceResponse, error) {
	return f.checkOutFn(ctx, employeeID, req)
}
func (f *fakeAttendanceService) History(ctx context.Context, employeeID uint) ([]attendance.AttendanceResponse, error) {
	return f.historyFn(ctx, employeeID)
}
func (f *fakeAttendanceService) ListAll(ctx context.Context) ([]attendance.AttendanceResponse, error) {
	return f.listAllFn(ctx)
}
func (f *fakeAttendanceService) Today(ctx context.Context, employeeID uint) (*attendance.AttendanceResponse, error) {
	return nil, nil
}

func TestAttendanceHandler_CheckIn(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("success with empty body", func(t *testing.T) {
		svc := &fakeAttendanceService{
			checkInFn: func(ctx context.Context, employeeID uint, req attendance.CheckInRequest) (attendance.AttendanceResponse, error) {
				assert.Equal(t, uint(7), employeeID)
				return attendance.AttendanceResponse{ID: 1, EmployeeID: employeeID, Status: attendance.StatusPresent}, nil
			},
		}
		h := attendance.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/attendance/check-in", nil)
		c.Set("user_id", uint(7))

		h.CheckIn(c)

		assert.Equal(t, http.StatusCreated, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.True(t, env.Ok)
	})

	t.Run("already checked in", func(t *testing.T) {
		svc := &fakeAttendanceService{
			checkInFn: func(ctx context.Context, employeeID uint, req attendance.CheckInRequest) (attendance.AttendanceResponse, error) {
				return attendance.AttendanceResponse{}, attendanceerrors.ErrAlreadyCheckedIn
			},
		}
		h := attendance.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/attendance/check-in", strings.NewReader(`{"notes":"train delay"}`))
		c.Request.Header.Set("Content-Type", "application/json")
		c.Set("user_id", uint(7))

		h.CheckIn(c)

		assert.Equal(t, http.StatusConflict, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.Equal(t, "Already checked in today.", env.Error.Message)
	})
}

func TestAttendanceHandler_CheckOutWithoutCheckIn(t *testing.T) {
	svc := &fakeAttendanceService{
		checkOutFn: func(ctx context.Context, employeeID uint, req attendance.CheckOutRequest) (attendance.AttendanceResponse, error) {
			return attendance.AttendanceResponse{}, attendanceerrors.ErrNotCheckedIn
		},
	}
	h := attendance.NewHandler(svc)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/attendance/check-out", nil)
	c.Set("user_id", uint(7))

	h.CheckOut(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	env := decodeEnvelope(t, w.Body.Bytes())
	assert.Equal(t, "Cannot check out without checking in.", env.Error.Message)
}

func TestAttendanceHandler_ListAllPaginates(t *testing.T) {
	svc := &fakeAttendanceService{
		listAllFn: func(ctx context.Context) ([]attendance.AttendanceResponse, error) {
			rows := make([]attendance.AttendanceResponse, 5)
			for i := range rows {
				rows[i].ID = uint(i + 1)
			}
			return rows, nil
		},
	}
	h := attendance.NewHandler(svc)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/attendance/all?page=2&page_size=2", nil)

	h.ListAll(c)

	assert.Equal(t, http.StatusOK, w.Code)
	env := decodeEnvelope(t, w.Body.Bytes())
	var got []attendance.AttendanceResponse
	assert.NoError(t, json.Unmarshal(env.Data, &got))
	assert.Len(t, got, 2)
	assert.Equal(t, uint(3), got[0].ID)
}
