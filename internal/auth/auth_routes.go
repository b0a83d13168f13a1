package auth

import (
	"github.com/towet/payroll-processing-sys/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, auth gin.HandlerFunc) {
	g := r.Group("/auth")
	{
		g.POST("/signup", middleware.RateLimitByIP(0.1, 3), handler.SignUp)
		g.POST("/login", middleware.RateLimitByIP(0.2, 5), handler.SignIn)
		g.POST("/refresh", middleware.RateLimitByIP(1, 5), handler.Refresh)
		g.POST("/logout", handler.Logout)
		g.GET("/me", auth, middleware.RateLimitByUser(2, 5), handler.Me)
	}
}
