package app

import (
	"database/sql"

	"go-leavedesk/internal/auth"
	"go-leavedesk/internal/authz"
	"go-leavedesk/internal/balance"
	"go-leavedesk/internal/holiday"
	"go-leavedesk/internal/leave"
	"go-leavedesk/internal/messaging/kafka"
	"go-leavedesk/internal/middleware"
	"go-leavedesk/internal/notification"
	"go-leavedesk/internal/person"
	"go-leavedesk/internal/team"
	"go-leavedesk/internal/user"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	// --- Repositories ---
	authRepo := auth.NewRepository(gormDB)
	userRepo := user.NewRepository(gormDB)
	personRepo := person.NewRepository(gormDB)
	teamRepo := team.NewRepository(gormDB)
	holidayRepo := holiday.NewRepository(gormDB)
	balanceRepo := balance.NewRepository(gormDB)
	leaveRepo := leave.NewRepository(gormDB)
	notificationRepo := notification.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- Policy Core ---
	policyService, err := authz.NewService()
	if err != nil {
		return err
	}

	// --- Services ---
	authService := auth.NewService(authRepo)
	userService := user.NewService(db, userRepo)
	personService := person.NewService(db, personRepo)
	teamService := team.NewService(db, teamRepo)
	holidayService := holiday.NewService(db, holidayRepo, rdb)
	balanceService := balance.NewService(db, balanceRepo)
	leaveService := leave.NewServiceWithOutbox(db, leaveRepo, outboxRepo)
	notificationService := notification.NewService(db, notificationRepo)

	// --- Handlers ---
	authHandler := auth.NewHandler(authService)
	userHandler := user.NewHandler(userService)
	personHandler := person.NewHandler(personService)
	teamHandler := team.NewHandler(teamService)
	holidayHandler := holiday.NewHandler(holidayService)
	balanceHandler := balance.NewHandler(balanceService)
	leaveHandler := leave.NewHandlerWithRedis(leaveService, rdb)
	notificationHandler := notification.NewHandler(notificationService)

	// --- Routes Registration ---
	// Per-user limits live in each module's route group, after
	// AuthMiddleware has resolved the user. Here only the IP bucket
	// applies, so unauthenticated traffic is capped too.
	api := router.Group("/api/v1")
	api.Use(middleware.RateLimitByIP(20, 50))
	{
		auth.RegisterRoutes(api, authHandler)
		user.RegisterRoutes(api, userHandler, policyService)
		person.RegisterRoutes(api, personHandler, policyService)
		team.RegisterRoutes(api, teamHandler, policyService)
		holiday.RegisterRoutes(api, holidayHandler, policyService)
		balance.RegisterRoutes(api, balanceHandler, policyService)
		leave.RegisterRoutes(api, leaveHandler, policyService, rdb)
		notification.RegisterRoutes(api, notificationHandler, policyService)
	}

	return nil
}
