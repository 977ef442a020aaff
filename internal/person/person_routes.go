package person

import (
	"go-leavedesk/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	policy middleware.PolicyService,
) {
	persons := r.Group("/persons")
	persons.Use(middleware.AuthMiddleware())
	persons.Use(middleware.RateLimitByUser(5, 20))
	{
		persons.GET("", middleware.Authorize(policy, "person", "read"), handler.GetAll)
		persons.GET("/:id", middleware.Authorize(policy, "person", "read"), handler.GetById)
		persons.POST("", middleware.Authorize(policy, "person", "write"), handler.Create)
		persons.PUT("/:id", middleware.Authorize(policy, "person", "write"), handler.Update)
		persons.DELETE("/:id", middleware.Authorize(policy, "person", "write"), handler.Delete)
	}
}
