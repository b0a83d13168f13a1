package payslip

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
	payslips := r.Group("/payslips")
	payslips.Use(auth)
	payslips.Use(middleware.ContextLogger(logger))
	{
		payslips.POST("",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, "payslip", "create"),
			middleware.Idempotency(rdb, logger),
			handler.Generate,
		)

		payslips.POST("/requests",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, "payslip", "create"),
			middleware.Idempotency(rdb, logger),
			handler.RequestGeneration,
		)

		payslips.GET("",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "payslip", "list"),
			handler.List,
		)

		payslips.GET("/:id",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "payslip", "read"),
			handler.GetByID,
		)

		payslips.GET("/:id/pdf",
			middleware.RateLimitByUser(1, 5),
			middleware.RBACAuthorize(rbacService, "payslip", "read"),
			handler.DownloadPDF,
		)
	}
}
