package rbac

import (
	"net/http"

	"github.com/towet/payroll-processing-sys/internal/shared/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// MyPermissions lets a client hide actions the caller's role cannot perform.
func (h *Handler) MyPermissions(c *gin.Context) {
	role := c.GetString("role")
	response.Success(c, http.StatusOK, gin.H{
		"role":        role,
		"permissions": h.service.PermissionsFor(role),
	}, nil)
}
