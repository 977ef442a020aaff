package team

import (
	"go-leavedesk/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	policy middleware.PolicyService,
) {
	teams := r.Group("/teams")
	teams.Use(middleware.AuthMiddleware())
	teams.Use(middleware.RateLimitByUser(5, 20))
	{
		teams.GET("", middleware.Authorize(policy, "team", "read"), handler.GetAll)
		teams.GET("/:id", middleware.Authorize(policy, "team", "read"), handler.GetById)
		teams.POST("", middleware.Authorize(policy, "team", "write"), handler.Create)
		teams.PUT("/:id", middleware.Authorize(policy, "team", "write"), handler.Update)
		teams.DELETE("/:id", middleware.Authorize(policy, "team", "write"), handler.Delete)
	}
}
