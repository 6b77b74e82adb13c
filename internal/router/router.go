package router

import (
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"networking-hub/internal/auth"
	"networking-hub/internal/handlers"
	"networking-hub/internal/middleware"
	"networking-hub/internal/models"
	"networking-hub/internal/notify"
	"networking-hub/internal/repositories"
	"networking-hub/pkg/config"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo) {
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
}

// Deps holds everything the routes need beyond the database.
type Deps struct {
	Verifier   *auth.Verifier
	Dispatcher *notify.Dispatcher
	Channel    notify.Channel
	Chats      handlers.ChatInfoProvider
	Logger     *zap.Logger
}

// SetupRoutes migrates the schema, wires repositories into handlers and
// registers all application routes.
func SetupRoutes(e *echo.Echo, db *gorm.DB, cfg *config.Config, deps Deps) error {
	err := db.AutoMigrate(
		&models.Profile{},
		&models.WorkExperience{},
		&models.Education{},
		&models.Follow{},
		&models.Post{},
		&models.Notification{},
		&models.NotificationLog{},
	)
	if err != nil {
		return err
	}

	e.GET("/health", handlers.HealthCheck)
	e.Static("/uploads", cfg.UploadDir)

	profileRepo := repositories.NewPostgresProfileRepository(db)
	followRepo := repositories.NewPostgresFollowRepository(db)
	postRepo := repositories.NewPostgresPostRepository(db)
	notificationRepo := repositories.NewPostgresNotificationRepository(db)

	api := e.Group("/api/v1")
	api.Use(middleware.InitDataAuthMiddleware(deps.Verifier))

	profileHandler := handlers.NewProfileHandler(profileRepo, followRepo, deps.Channel, cfg.UploadDir, deps.Logger)
	profileHandler.RegisterProfileRoutes(api)

	followHandler := handlers.NewFollowHandler(followRepo, profileRepo, deps.Dispatcher)
	followHandler.RegisterFollowRoutes(api)

	postHandler := handlers.NewPostHandler(postRepo, profileRepo, deps.Dispatcher)
	postHandler.RegisterPostRoutes(api)

	settingsHandler := handlers.NewSettingsHandler(profileRepo)
	settingsHandler.RegisterSettingsRoutes(api)

	notificationHandler := handlers.NewNotificationHandler(notificationRepo)
	notificationHandler.RegisterNotificationRoutes(api)

	if deps.Chats != nil {
		telegramHandler := handlers.NewTelegramHandler(deps.Chats)
		telegramHandler.RegisterTelegramRoutes(api)
	}

	deps.Logger.Info("routes configured")
	return nil
}
