package holiday

import (
	"go-leavedesk/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	policy middleware.PolicyService,
) {
	holidays := r.Group("/holidays")
	holidays.Use(middleware.AuthMiddleware())
	holidays.Use(middleware.RateLimitByUser(5, 20))
	{
		holidays.GET("", middleware.Authorize(policy, "holiday", "read"), handler.GetAll)
		holidays.GET("/:id", middleware.Authorize(policy, "holiday", "read"), handler.GetById)
		holidays.POST("", middleware.Authorize(policy, "holiday", "write"), handler.Create)
		holidays.PUT("/:id", middleware.Authorize(policy, "holiday", "write"), handler.Update)
		holidays.DELETE("/:id", middleware.Authorize(policy, "holiday", "write"), handler.Delete)
	}
}
