package middleware

import (
	"time"

	"qc-laptop/config"
	"qc-laptop/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

// Setup memasang middleware global. Urutan penting: recover paling luar.
func Setup(app *fiber.App, cfg *config.Config) {
	app.Use(recover.New(recover.Config{EnableStackTrace: !cfg.IsProduction()}))
	app.Use(requestid.New())
	app.Use(logger.New(logger.Config{
		Format:   cfg.Log.Format,
		TimeZone: cfg.TimeZone,
	}))
	app.Use(compress.New())
	cfg.SetupCORS(app)
}

// LoginLimiter membatasi percobaan login per IP.
func LoginLimiter(max int, window time.Duration) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        max,
		Expiration: window,
		LimitReached: func(ctx *fiber.Ctx) error {
			return ctx.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"success": false,
				"message": "Terlalu banyak percobaan login, coba lagi nanti",
			})
		},
	})
}

// ErrorHandler dipakai sebagai fiber.Config.ErrorHandler.
func ErrorHandler(ctx *fiber.Ctx, err error) error {
	return utils.Error(ctx, err)
}
