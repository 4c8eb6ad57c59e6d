package routes

import (
	"time"

	"qc-laptop/middleware"

	"github.com/gofiber/fiber/v2"
)

func SetupAuthRoutes(router fiber.Router, h *Handlers) {
	api := router.Group("/auth")

	api.Post("/login", middleware.LoginLimiter(10, time.Minute), h.Auth.Login)

	auth := middleware.AuthMiddleware(h.Tokens)
	api.Get("/me", auth, h.Auth.Me)
	api.Post("/logout", auth, h.Auth.Logout)
	api.Put("/change-password", auth, h.Auth.ChangePassword)
}
