package router

import (
	"net/http"

	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog/log"
	"github.com/tahmid27/wavely/backend/internal/handlers"
	"github.com/tahmid27/wavely/backend/internal/middleware"
	"github.com/tahmid27/wavely/backend/internal/models"
	"github.com/tahmid27/wavely/backend/internal/repositories"
	"github.com/tahmid27/wavely/backend/internal/service"
	"github.com/tahmid27/wavely/backend/pkg/config"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo) {
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
	e.Use(eMiddleware.RequestLoggerWithConfig(eMiddleware.RequestLoggerConfig{
		LogURI:    true,
		LogStatus: true,
		LogMethod: true,
		LogValuesFunc: func(c echo.Context, v eMiddleware.RequestLoggerValues) error {
			log.Info().
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Msg("request")
			return nil
		},
	}))
	e.HTTPErrorHandler = errorHandler
}

// errorHandler renders every failure as {"error": ...}. Unexpected errors
// are logged server-side and mapped to a generic 500 so internals never
// reach the caller.
func errorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status := http.StatusInternalServerError
	message := "Internal server error"
	if httpErr, ok := err.(*echo.HTTPError); ok {
		status = httpErr.Code
		if msg, ok := httpErr.Message.(string); ok {
			message = msg
		}
	} else {
		log.Error().Err(err).Str("uri", c.Request().RequestURI).Msg("unhandled error")
	}

	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(status)
		return
	}
	_ = c.JSON(status, echo.Map{"error": message})
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, pgdb *gorm.DB, mgClient *mongo.Client, cfg *config.Config) {
	// AutoMigrate PostgreSQL models
	err := pgdb.AutoMigrate(
		&models.User{},
		&models.Comment{},
		&models.Like{},
		&models.Follow{},
		&models.Bookmark{},
		&models.Notification{},
	)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to auto migrate models")
	}

	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)

	// --- Initialize Repositories ---
	userRepo := repositories.NewPostgresUserRepository(pgdb)
	postRepo := repositories.NewMongoPostRepository(mgClient.Database(cfg.MongoDBName))
	commentRepo := repositories.NewPostgresCommentRepository(pgdb)
	likeRepo := repositories.NewPostgresLikeRepository(pgdb)
	followRepo := repositories.NewPostgresFollowRepository(pgdb)
	bookmarkRepo := repositories.NewPostgresBookmarkRepository(pgdb)
	notificationRepo := repositories.NewPostgresNotificationRepository(pgdb)

	// --- Services ---
	interactions := service.NewInteractionService(
		pgdb, postRepo, userRepo, likeRepo, followRepo, bookmarkRepo,
		notificationRepo, cfg.AllowSelfFollow,
	)
	comments := service.NewCommentService(commentRepo, userRepo, cfg.CommentPageSize)

	// --- Unprotected routes for authentication ---
	authGroup := e.Group("/api/v1/auth")
	authHandler := handlers.NewAuthHandler(userRepo, cfg.JWTSecret)
	authHandler.RegisterAuthRoutes(authGroup)

	commentHandler := handlers.NewCommentHandler(comments, cfg.TrustCommentAuthor)

	// Comment creation sits behind optional auth: the author binds to the
	// session identity unless the trusted-author compatibility mode is on.
	open := e.Group("/api/v1")
	open.Use(middleware.OptionalAuth(cfg.JWTSecret))
	commentHandler.RegisterCreateRoutes(open)

	// --- Protected routes (require a session token) ---
	api := e.Group("/api/v1")
	api.Use(middleware.RequireAuth(cfg.JWTSecret))

	userHandler := handlers.NewUserHandler(userRepo)
	userHandler.RegisterProfileRoutes(api)

	postHandler := handlers.NewPostHandler(postRepo)
	postHandler.RegisterPostRoutes(api)

	feedHandler := handlers.NewFeedHandler(postRepo, followRepo)
	feedHandler.RegisterFeedRoutes(api)

	followHandler := handlers.NewFollowHandler(interactions)
	followHandler.RegisterFollowRoutes(api)

	commentHandler.RegisterListRoutes(api)

	likeHandler := handlers.NewLikeHandler(interactions)
	likeHandler.RegisterLikeRoutes(api)

	bookmarkHandler := handlers.NewBookmarkHandler(interactions)
	bookmarkHandler.RegisterBookmarkRoutes(api)

	notificationHandler := handlers.NewNotificationHandler(notificationRepo, userRepo)
	notificationHandler.RegisterNotificationRoutes(api)

	log.Info().Msg("all routes configured")
}
