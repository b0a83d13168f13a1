package attendance

import (
	"net/http"

	employeeerrors "github.com/towet/payroll-processing-sys/internal/employee/errors"
	"github.com/towet/payroll-processing-sys/internal/shared/apperror"
	"github.com/towet/payroll-processing-sys/internal/shared/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) Mark(c *gin.Context) {
	employeeID := c.GetString("employee_id")
	if employeeID == "" {
		writeServiceError(c, employeeerrors.ErrNoEmployeeProfile)
		return
	}

	resp, err := h.service.Mark(c.Request.Context(), employeeID)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	status := http.StatusOK
	if resp.Action == ActionClockIn {
		status = http.StatusCreated
	}
	response.Success(c, status, resp, nil)
}

func (h *Handler) MarkAbsent(c *gin.Context) {
	var req MarkAbsentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Input tidak valid", err.Error())
		return
	}

	resp, err := h.service.MarkAbsent(c.Request.Context(), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) List(c *gin.Context) {
	var filter ListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Input tidak valid", err.Error())
		return
	}
	if c.GetString("role") != "admin" {
		filter.EmployeeID = c.GetString("employee_id")
		if filter.EmployeeID == "" {
			writeServiceError(c, employeeerrors.ErrNoEmployeeProfile)
			return
		}
	}

	rows, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	page, pageSize := response.PageParams(c)
	start, end := response.PageBounds(len(rows), page, pageSize)

	meta := response.NewPaginationMeta(int64(len(rows)), page, pageSize)
	response.Success(c, http.StatusOK, rows[start:end], &meta)
}
