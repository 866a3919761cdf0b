package leave_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"leavesync/internal/leave"
	leaveerrors "leavesync/internal/leave/errors"
	ruleserrors "leavesync/internal/rules/errors"

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

type fakeLeaveService struct {
	applyFn       func(ctx context.Context, employeeID uint, req leave.ApplyLeaveRequest) (leave.LeaveResponse, error)
	getAllFn      func(ctx context.Context, actorID uint, canReadAll bool) ([]leave.LeaveResponse, error)
	getByIDFn     func(ctx context.Context, actorID uint, canReadAll bool, id uint) (leave.LeaveResponse, error)
	listPendingFn func(ctx context.Context) ([]leave.PendingLeaveResponse, error)
	decideFn      func(ctx context.Context, id uint, decision leave.Decision, approverID uint, reason string) (leave.LeaveResponse, error)
}

func (f *fakeLeaveService) Apply(ctx context.Context, employeeID uint, req leave.ApplyLeaveRequest) (leave.LeaveResponse, error) {
	return f.applyFn(ctx, employeeID, req)
}
func (f *fakeLeaveService) GetAll(ctx context.Context, actorID uint, canReadAll bool) ([]leave.LeaveResponse, error) {
	return f.getAllFn(ctx, actorID, canReadAll)
}
func (f *fakeLeaveService) GetByID(ctx context.Context, actorID uint, canReadAll bool, id uint) (leave.LeaveResponse, error) {
	return f.getByIDFn(ctx, actorID, canReadAll, id)
}
func (f *fakeLeaveService) ListPending(ctx context.Context) ([]leave.PendingLeaveResponse, error) {
	return f.listPendingFn(ctx)
}
func (f *fakeLeaveService) Decide(ctx context.Context, id uint, decision leave.Decision, approverID uint, reason string) (leave.LeaveResponse, error) {
	return f.decideFn(ctx, id, decision, approverID, reason)
}

func newJSONContext(method, target, body string) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, target, strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	return c, w
}

func TestLeaveHandler_Apply(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("success", func(t *testing.T) {
		svc := &fakeLeaveService{
			applyFn: func(ctx context.Context, employeeID uint, req leave.ApplyLeaveRequest) (leave.LeaveResponse, error) {
				assert.Equal(t, uint(42), employeeID)
				assert.Equal(t, "casual", req.LeaveType)
				assert.True(t, req.IsSandwich)
				return leave.LeaveResponse{ID: 1, EmployeeID: employeeID, LeaveType: req.LeaveType, Status: leave.StatusPending}, nil
			},
		}
		h := leave.NewHandler(svc)
		c, w := newJSONContext(http.MethodPost, "/leaves", `{"leave_type":"casual","start_date":"2026-03-20","end_date":"2026-03-20","is_sandwich":true}`)
		c.Set("user_id", uint(42))

		h.Apply(c)

		assert.Equal(t, http.StatusCreated, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.True(t, env.Ok)
		var got leave.LeaveResponse
		assert.NoError(t, json.Unmarshal(env.Data, &got))
		assert.Equal(t, leave.StatusPending, got.Status)
	})

	t.Run("missing fields", func(t *testing.T) {
		h := leave.NewHandler(&fakeLeaveService{})
		c, w := newJSONContext(http.MethodPost, "/leaves", `{}`)

		h.Apply(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.Equal(t, "INVALID_INPUT", env.Error.Code)
	})

	t.Run("rule rejection keeps message", func(t *testing.T) {
		svc := &fakeLeaveService{
			applyFn: func(ctx context.Context, employeeID uint, req leave.ApplyLeaveRequest) (leave.LeaveResponse, error) {
				return leave.LeaveResponse{}, ruleserrors.ErrSandwichNotice
			},
		}
		h := leave.NewHandler(svc)
		c, w := newJSONContext(http.MethodPost, "/leaves", `{"leave_type":"casual","start_date":"2026-03-03","end_date":"2026-03-03","is_sandwich":true}`)

		h.Apply(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.Equal(t, "Sandwich leaves require 7 days notice.", env.Error.Message)
	})

	t.Run("unexpected error is hidden", func(t *testing.T) {
		svc := &fakeLeaveService{
			applyFn: func(ctx context.Context, employeeID uint, req leave.ApplyLeaveRequest) (leave.LeaveResponse, error) {
				return leave.LeaveResponse{}, errors.New("connection reset")
			},
		}
		h := leave.NewHandler(svc)
		c, w := newJSONContext(http.MethodPost, "/leaves", `{"leave_type":"sick","start_date":"2026-03-10","end_date":"2026-03-10"}`)

		h.Apply(c)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.Equal(t, "INTERNAL_ERROR", env.Error.Code)
		assert.NotContains(t, env.Error.Message, "connection reset")
	})
}

func TestLeaveHandler_GetAllPassesReadAll(t *testing.T) {
	svc := &fakeLeaveService{
		getAllFn: func(ctx context.Context, actorID uint, canReadAll bool) ([]leave.LeaveResponse, error) {
			assert.Equal(t, uint(5), actorID)
			assert.True(t, canReadAll)
			return []leave.LeaveResponse{{ID: 1}, {ID: 2}}, nil
		},
	}
	h := leave.NewHandler(svc)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/leaves", nil)
	c.Set("user_id", uint(5))
	c.Set("leave_read_all", true)

	h.GetAll(c)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestLeaveHandler_Decide(t *testing.T) {
	t.Run("approve", func(t *testing.T) {
		svc := &fakeLeaveService{
			decideFn: func(ctx context.Context, id uint, decision leave.Decision, approverID uint, reason string) (leave.LeaveResponse, error) {
				assert.Equal(t, uint(9), id)
				assert.True(t, decision.IsApproval())
				assert.Equal(t, uint(2), approverID)
				return leave.LeaveResponse{ID: id, Status: decision.Status()}, nil
			},
		}
		h := leave.NewHandler(svc)
		c, w := newJSONContext(http.MethodPatch, "/leaves/9", `{"status":"approved"}`)
		c.Params = gin.Params{{Key: "id", Value: "9"}}
		c.Set("user_id", uint(2))

		h.Decide(c)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("invalid status", func(t *testing.T) {
		h := leave.NewHandler(&fakeLeaveService{})
		c, w := newJSONContext(http.MethodPatch, "/leaves/9", `{"status":"cancelled"}`)
		c.Params = gin.Params{{Key: "id", Value: "9"}}

		h.Decide(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.Equal(t, "Invalid status", env.Error.Message)
	})

	t.Run("invalid id", func(t *testing.T) {
		h := leave.NewHandler(&fakeLeaveService{})
		c, w := newJSONContext(http.MethodPatch, "/leaves/abc", `{"status":"approved"}`)
		c.Params = gin.Params{{Key: "id", Value: "abc"}}

		h.Decide(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("already processed", func(t *testing.T) {
		svc := &fakeLeaveService{
			decideFn: func(ctx context.Context, id uint, decision leave.Decision, approverID uint, reason string) (leave.LeaveResponse, error) {
				return leave.LeaveResponse{}, leaveerrors.ErrLeaveAlreadyProcessed
			},
		}
		h := leave.NewHandler(svc)
		c, w := newJSONContext(http.MethodPatch, "/leaves/9", `{"status":"rejected","rejection_reason":"no cover"}`)
		c.Params = gin.Params{{Key: "id", Value: "9"}}

		h.Decide(c)

		assert.Equal(t, http.StatusConflict, w.Code)
	})
}
