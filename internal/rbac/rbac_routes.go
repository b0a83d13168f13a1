package rbac

import (
	"github.com/towet/payroll-processing-sys/internal/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, auth gin.HandlerFunc, rbacService middleware.RBACService, logger *zap.Logger) {
	group := r.Group("/rbac")
	group.Use(auth)
	group.Use(middleware.ContextLogger(logger))
	{
		group.GET("/permissions",
			middleware.RateLimitByUser(2, 5),
			middleware.RBACAuthorize(rbacService, "rbac", "read"),
			handler.MyPermissions,
		)
	}
}
