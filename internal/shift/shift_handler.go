package shift

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Lexio19/employee-hub/internal/shared/apperror"
	"github.com/Lexio19/employee-hub/internal/shared/response"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("shift.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("shift.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("shift request failed",
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
	)
	response.Error(c, httpErr.Status, httpErr.Message)
}

func (h *Handler) CreateShift(c *gin.Context) {
	var req CreateShiftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpErr := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, httpErr.Status, httpErr.Message)
		return
	}

	resp, err := h.service.CreateShift(c.Request.Context(), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, resp)
}

func (h *Handler) ListOwnShifts(c *gin.Context) {
	resp, err := h.service.ListOwnShifts(c.Request.Context(), c.GetString("employee_id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.SuccessList(c, http.StatusOK, resp, len(resp))
}

func (h *Handler) ListAllShifts(c *gin.Context) {
	resp, err := h.service.ListAllShifts(c.Request.Context())
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.SuccessList(c, http.StatusOK, resp, len(resp))
}

func (h *Handler) CreateSwap(c *gin.Context) {
	var req CreateSwapRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpErr := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, httpErr.Status, httpErr.Message)
		return
	}

	resp, err := h.service.CreateSwap(c.Request.Context(), c.GetString("employee_id"), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, resp)
}

func (h *Handler) ListOwnSwaps(c *gin.Context) {
	resp, err := h.service.ListOwnSwaps(c.Request.Context(), c.GetString("employee_id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.SuccessList(c, http.StatusOK, resp, len(resp))
}

func (h *Handler) ListAvailableSwaps(c *gin.Context) {
	resp, err := h.service.ListAvailableSwaps(c.Request.Context(), c.GetString("employee_id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.SuccessList(c, http.StatusOK, resp, len(resp))
}

func (h *Handler) AcceptSwap(c *gin.Context) {
	resp, err := h.service.AcceptSwap(c.Request.Context(), c.GetString("employee_id"), c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.SuccessMessage(c, http.StatusOK, resp, "swap request accepted")
}

func (h *Handler) RejectSwap(c *gin.Context) {
	resp, err := h.service.RejectSwap(c.Request.Context(), c.GetString("employee_id"), c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp)
}

func (h *Handler) CancelSwap(c *gin.Context) {
	resp, err := h.service.CancelSwap(c.Request.Context(), c.GetString("employee_id"), c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp)
}
