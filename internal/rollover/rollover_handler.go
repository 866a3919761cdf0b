package rollover

import (
	"fmt"
	"net/http"
	"strconv"

	"leavesync/internal/shared/apperror"
	"leavesync/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("rollover.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("rollover.handler")
	}
	return &Handler{service: service, logger: l}
}

func writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) Run(c *gin.Context) {
	execute := false
	if raw := c.Query("execute"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			writeServiceError(c, apperror.InvalidField("Execute"))
			return
		}
		execute = v
	}

	resp, err := h.service.Run(c.Request.Context(), c.GetUint("user_id"), execute)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Report(c *gin.Context) {
	pdf, err := h.service.ReportPDF(c.Request.Context())
	if err != nil {
		h.logger.Error("render rollover report failed", zap.Error(err))
		writeServiceError(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "rollover-report.pdf"))
	c.Data(http.StatusOK, "application/pdf", pdf)
}
