package taxrate

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
	tax := r.Group("")
	tax.Use(auth)
	tax.Use(middleware.ContextLogger(logger))
	{
		tax.GET("/tax-rates",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "tax_rate", "list"),
			handler.List,
		)

		tax.POST("/tax/preview",
			middleware.RateLimitByUser(2, 5),
			middleware.RBACAuthorize(rbacService, "tax", "preview"),
			handler.Preview,
		)
	}
}
