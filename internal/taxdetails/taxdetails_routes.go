package taxdetails

import (
	"github.com/towet/payroll-processing-sys/internal/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	auth gin.HandlerFunc,
	rbacService middleware.RBACService,
	logger *zap.Logger,
) {
	details := r.Group("/employees/:id/tax-details")
	details.Use(auth)
	details.Use(middleware.ContextLogger(logger))
	{
		details.GET("",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "tax_details", "read"),
			handler.Get,
		)

		details.PUT("",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, "tax_details", "update"),
			handler.Upsert,
		)
	}
}
