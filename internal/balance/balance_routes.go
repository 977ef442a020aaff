package balance

import (
	"go-leavedesk/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	policy middleware.PolicyService,
) {
	balances := r.Group("/balances")
	balances.Use(middleware.AuthMiddleware())
	balances.Use(middleware.RateLimitByUser(5, 20))
	{
		balances.GET("/:personId", middleware.Authorize(policy, "balance", "read"), handler.GetByPerson)
		balances.GET("/:personId/:year", middleware.Authorize(policy, "balance", "read"), handler.GetByPersonAndYear)
		balances.PUT("", middleware.Authorize(policy, "balance", "write"), handler.Upsert)
		balances.DELETE("/:personId/:year", middleware.Authorize(policy, "balance", "write"), handler.Delete)
	}
}
