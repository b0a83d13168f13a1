package dashboard

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
	dashboard := r.Group("/dashboard")
	dashboard.Use(auth)
	dashboard.Use(middleware.ContextLogger(logger))
	{
		dashboard.GET("/stats",
			middleware.RateLimitByUser(2, 5),
			middleware.RBACAuthorize(rbacService, "dashboard", "read"),
			handler.Stats,
		)
		dashboard.GET("/activity",
			middleware.RateLimitByUser(2, 5),
			middleware.RBACAuthorize(rbacService, "dashboard", "read"),
			handler.RecentActivity,
		)
	}
}
