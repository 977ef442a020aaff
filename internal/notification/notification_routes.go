package notification

import (
	"go-leavedesk/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	policy middleware.PolicyService,
) {
	notifications := r.Group("/notifications")
	notifications.Use(middleware.AuthMiddleware())
	notifications.Use(middleware.RateLimitByUser(5, 20))
	{
		notifications.GET("", middleware.Authorize(policy, "notification", "read"), handler.GetMine)
		notifications.POST("/:id/read", middleware.Authorize(policy, "notification", "read"), handler.MarkRead)
	}
}
