package routes

import (
	"qc-laptop/middleware"
	"qc-laptop/types"

	"github.com/gofiber/fiber/v2"
)

func SetupUserRoutes(router fiber.Router, h *Handlers) {
	api := router.Group("/users", middleware.AuthMiddleware(h.Tokens))
	leader := middleware.RequireRole(types.RoleLeader)

	api.Get("/", leader, h.Users.GetAllUsers)
	api.Get("/role/:role", h.Users.GetUsersByRole)
	api.Get("/:id", h.Users.GetUserByID)
	api.Post("/", leader, h.Users.CreateUser)
	api.Put("/:id", leader, h.Users.UpdateUser)
	api.Put("/:id/reset-password", leader, h.Users.ResetPassword)
	api.Delete("/:id", leader, h.Users.DeleteUser)
}
