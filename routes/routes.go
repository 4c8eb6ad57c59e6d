package routes

import (
	"qc-laptop/config"
	"qc-laptop/controllers"
	"qc-laptop/middleware"
	"qc-laptop/notification"
	"qc-laptop/services"
	"qc-laptop/storage"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Handlers mengumpulkan semua controller yang dipasang ke router.
type Handlers struct {
	Tokens  middleware.TokenValidator
	Auth    *controllers.AuthController
	Users   *controllers.UserController
	Laptops *controllers.LaptopController
	QC      *controllers.QCController
	Reports *controllers.ReportController
}

// Wire membangun service dan controller di atas satu koneksi database.
func Wire(cfg *config.Config, db *gorm.DB, notifier notification.Notifier) *Handlers {
	tokens := services.NewTokenManager(cfg.JWT.Secret, cfg.JWT.Expiration)
	store := storage.NewLocalStore(cfg.Upload.Dir, cfg.Upload.MaxSize)

	history := services.NewHistoryService(db)
	reports := services.NewReportService(db, cfg.Location())

	return &Handlers{
		Tokens:  tokens,
		Auth:    controllers.NewAuthController(services.NewAuthService(db, tokens)),
		Users:   controllers.NewUserController(services.NewUserService(db)),
		Laptops: controllers.NewLaptopController(services.NewLaptopService(db), history),
		QC:      controllers.NewQCController(services.NewQCService(db, store, notifier, cfg.Upload.MaxFiles), reports),
		Reports: controllers.NewReportController(reports, history),
	}
}

// NewApp membuat fiber app lengkap dengan middleware dan semua route.
func NewApp(cfg *config.Config, h *Handlers) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "qc-laptop",
		BodyLimit:    int(cfg.Upload.MaxSize)*cfg.Upload.MaxFiles + 1024*1024,
		ErrorHandler: middleware.ErrorHandler,
	})
	middleware.Setup(app, cfg)

	app.Static("/uploads", cfg.Upload.Dir)

	api := app.Group(cfg.Server.MainRoutes)
	api.Get("/health", controllers.Health)

	SetupAuthRoutes(api, h)
	SetupUserRoutes(api, h)
	SetupLaptopRoutes(api, h)
	SetupQCRoutes(api, h)
	SetupReportRoutes(api, h)

	app.Use(func(ctx *fiber.Ctx) error {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"message": "Endpoint tidak ditemukan",
		})
	})
	return app
}
