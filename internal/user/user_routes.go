package user

import (
	"go-leavedesk/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	policy middleware.PolicyService,
) {
	users := r.Group("/users")
	users.Use(middleware.AuthMiddleware())
	users.Use(middleware.RateLimitByUser(5, 20))
	{
		users.GET("", middleware.Authorize(policy, "user", "manage"), handler.GetAll)
		users.GET("/:id", middleware.Authorize(policy, "user", "manage"), handler.GetById)
		users.POST("", middleware.Authorize(policy, "user", "manage"), handler.Create)
		users.PUT("/:id", middleware.Authorize(policy, "user", "manage"), handler.Update)
		users.DELETE("/:id", middleware.Authorize(policy, "user", "manage"), handler.Delete)
	}
}
