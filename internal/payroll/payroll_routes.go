package payroll

import (
	"github.com/towet/payroll-processing-sys/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	auth gin.HandlerFunc,
	rbacService middleware.RBACService,
	rdb *redis.Client,
	logger *zap.Logger,
) {
	payroll := r.Group("/payroll")
	payroll.Use(auth)
	payroll.Use(middleware.ContextLogger(logger))
	{
		payroll.POST("",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, "payroll", "create"),
			middleware.Idempotency(rdb, logger),
			handler.Create,
		)

		payroll.GET("/periods",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "payroll", "list"),
			handler.ListPeriods,
		)

		payroll.PATCH("/periods/:id/status",
			middleware.RateLimitByUser(1, 3),
			middleware.RBACAuthorize(rbacService, "payroll", "update"),
			handler.UpdateStatus,
		)

		payroll.GET("/history",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "payroll", "history"),
			handler.History,
		)

		payroll.GET("/history/export",
			middleware.RateLimitByUser(0.2, 1),
			middleware.RBACAuthorize(rbacService, "payroll", "export"),
			handler.Export,
		)

		payroll.GET("/items/:id/report",
			middleware.RateLimitByUser(1, 5),
			middleware.RBACAuthorize(rbacService, "payroll", "report"),
			handler.DownloadReport,
		)
	}
}
