package leave

import (
	"go-leavedesk/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	policy middleware.PolicyService,
	rdb ...*redis.Client,
) {
	var redisClient *redis.Client
	if len(rdb) > 0 {
		redisClient = rdb[0]
	}

	leaves := r.Group("/leaves")
	leaves.Use(middleware.AuthMiddleware())
	leaves.Use(middleware.RateLimitByUser(5, 20))
	{
		leaves.GET("", middleware.Authorize(policy, "leave", "read"), handler.GetAll)
		leaves.GET("/check", middleware.Authorize(policy, "leave", "read"), handler.Check)
		leaves.GET("/:id", middleware.Authorize(policy, "leave", "read"), handler.GetById)
		if redisClient != nil {
			leaves.POST(
				"",
				middleware.Idempotency(redisClient),
				middleware.Authorize(policy, "leave", "create"),
				handler.Create,
			)
		} else {
			leaves.POST("", middleware.Authorize(policy, "leave", "create"), handler.Create)
		}
		leaves.POST("/:id/approve", middleware.Authorize(policy, "leave", "decide"), handler.Approve)
		leaves.POST("/:id/reject", middleware.Authorize(policy, "leave", "decide"), handler.Reject)
	}
}
