package router

import (
	"log/slog"

	"github.com/campusvibes/backend/internal/chatbot"
	"github.com/campusvibes/backend/internal/handlers"
	"github.com/campusvibes/backend/internal/jobs"
	"github.com/campusvibes/backend/internal/middleware"
	"github.com/campusvibes/backend/internal/moderation"
	"github.com/campusvibes/backend/internal/models"
	"github.com/campusvibes/backend/internal/realtime"
	"github.com/campusvibes/backend/internal/repositories"
	"github.com/campusvibes/backend/pkg/config"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
)

// SetupMiddleware configures the global middleware stack.
func SetupMiddleware(e *echo.Echo, cfg *config.Config) {
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: []string{cfg.FrontendURL},
		AllowMethods: []string{echo.GET, echo.POST, echo.PUT, echo.DELETE, echo.OPTIONS},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAuthorization},
	}))
}

// SetupRoutes wires repositories, the realtime layer and every handler onto
// the Echo instance. It returns the background sampler for the caller to
// start and stop.
func SetupRoutes(e *echo.Echo, db *config.DB, cfg *config.Config, hub *realtime.Hub, logger *slog.Logger) (*jobs.ActiveUserSampler, error) {
	mongoDB := db.Mongo.Database(cfg.MongoDBName)

	if err := db.Postgres.AutoMigrate(&models.Traffic{}, &models.UserActivity{}); err != nil {
		return nil, err
	}

	userRepo := repositories.NewMongoUserRepository(mongoDB)
	postRepo := repositories.NewMongoPostRepository(mongoDB)
	chatRepo := repositories.NewMongoChatRepository(mongoDB)
	messageRepo := repositories.NewMongoMessageRepository(mongoDB)
	groupRepo := repositories.NewMongoGroupRepository(mongoDB)
	followRequestRepo := repositories.NewMongoFollowRequestRepository(mongoDB)
	notificationRepo := repositories.NewMongoNotificationRepository(mongoDB)
	announcementRepo := repositories.NewMongoAnnouncementRepository(mongoDB)
	blockedWordRepo := repositories.NewMongoBlockedWordRepository(mongoDB)
	analyticsRepo := repositories.NewPostgresAnalyticsRepository(db.Postgres)

	gateway := realtime.NewGateway(hub, userRepo, postRepo, chatRepo, messageRepo, groupRepo, notificationRepo, logger)
	filter := moderation.NewFilter(blockedWordRepo)
	bot := chatbot.New()

	authHandler := handlers.NewAuthHandler(userRepo, cfg.JWTSecret, cfg.UploadDir)
	userHandler := handlers.NewUserHandler(userRepo)
	profileHandler := handlers.NewProfileHandler(userRepo, postRepo, gateway, cfg.UploadDir)
	postHandler := handlers.NewPostHandler(postRepo, userRepo, filter, gateway, cfg.UploadDir)
	chatHandler := handlers.NewChatHandler(chatRepo, messageRepo, userRepo, gateway)
	messageHandler := handlers.NewMessageHandler(chatRepo, messageRepo, gateway)
	groupHandler := handlers.NewGroupHandler(groupRepo, gateway)
	followRequestHandler := handlers.NewFollowRequestHandler(followRequestRepo, userRepo, gateway)
	notificationHandler := handlers.NewNotificationHandler(notificationRepo, userRepo, postRepo)
	announcementHandler := handlers.NewAnnouncementHandler(announcementRepo, cfg.UploadDir)
	moderationHandler := handlers.NewModerationHandler(blockedWordRepo)
	adminHandler := handlers.NewAdminHandler(userRepo)
	analyticsHandler := handlers.NewAnalyticsHandler(analyticsRepo, userRepo)
	chatbotHandler := handlers.NewChatbotHandler(bot, userRepo)
	wsHandler := handlers.NewWSHandler(hub, gateway, userRepo)

	e.GET("/health", handlers.HealthCheck)
	e.Static("/uploads", cfg.UploadDir)

	api := e.Group("/api")
	authHandler.RegisterAuthRoutes(api)
	analyticsHandler.RegisterAnalyticsRoutes(api)

	authenticated := api.Group("", middleware.JWTAuthMiddleware(), middleware.TrackActivity(userRepo))
	userHandler.RegisterUserRoutes(authenticated)
	profileHandler.RegisterProfileRoutes(authenticated)
	postHandler.RegisterPostRoutes(authenticated)
	chatHandler.RegisterChatRoutes(authenticated)
	messageHandler.RegisterMessageRoutes(authenticated)
	groupHandler.RegisterGroupRoutes(authenticated)
	followRequestHandler.RegisterFollowRequestRoutes(authenticated)
	notificationHandler.RegisterNotificationRoutes(authenticated)
	announcementHandler.RegisterAnnouncementRoutes(authenticated)
	chatbotHandler.RegisterChatbotRoutes(authenticated)
	wsHandler.RegisterWSRoutes(authenticated)

	admin := api.Group("/admin", middleware.JWTAuthMiddleware(), middleware.AdminOnly(userRepo))
	adminHandler.RegisterAdminRoutes(admin)
	postHandler.RegisterAdminPostRoutes(admin)
	announcementHandler.RegisterAdminAnnouncementRoutes(admin)
	moderationHandler.RegisterAdminModerationRoutes(admin)
	analyticsHandler.RegisterAdminAnalyticsRoutes(admin)

	sampler := jobs.NewActiveUserSampler(userRepo, analyticsRepo, logger)
	return sampler, nil
}
