package penalty

import (
	"net/http"
	"strconv"

	"leavesync/internal/shared/apperror"
	"leavesync/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const canReadAllKey = "penalty_read_all"

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("penalty.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("penalty.handler")
	}
	return &Handler{service: service, logger: l}
}

func writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func parseUintParam(raw string) (uint, bool) {
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || v == 0 {
		return 0, false
	}
	return uint(v), true
}

func (h *Handler) Issue(c *gin.Context) {
	var req IssuePenaltyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.Issue(c.Request.Context(), c.GetUint("user_id"), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) List(c *gin.Context) {
	var employeeID *uint
	if raw := c.Query("employee_id"); raw != "" {
		id, ok := parseUintParam(raw)
		if !ok {
			writeServiceError(c, apperror.InvalidField("Employee Id"))
			return
		}
		employeeID = &id
	}

	resp, err := h.service.List(c.Request.Context(), c.GetUint("user_id"), c.GetBool(canReadAllKey), employeeID)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	page, meta := response.Page(c, resp)
	response.Success(c, http.StatusOK, page, &meta)
}

func (h *Handler) UpdateStatus(c *gin.Context) {
	id, ok := parseUintParam(c.Param("id"))
	if !ok {
		writeServiceError(c, apperror.ErrInvalidID)
		return
	}

	var req UpdatePenaltyStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Delete(c *gin.Context) {
	id, ok := parseUintParam(c.Param("id"))
	if !ok {
		writeServiceError(c, apperror.ErrInvalidID)
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true}, nil)
}
