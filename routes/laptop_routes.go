package routes

import (
	"qc-laptop/middleware"
	"qc-laptop/types"

	"github.com/gofiber/fiber/v2"
)

func SetupLaptopRoutes(router fiber.Router, h *Handlers) {
	api := router.Group("/laptops", middleware.AuthMiddleware(h.Tokens))
	operator := middleware.RequireRole(types.RoleLeader, types.RoleStaff)

	api.Get("/", h.Laptops.GetAllLaptops)
	api.Get("/search/:serialNumber", h.Laptops.FindBySerial)
	api.Get("/:id", h.Laptops.GetLaptopByID)
	api.Get("/:id/history", h.Laptops.GetLaptopHistory)
	api.Post("/", operator, h.Laptops.CreateLaptop)
	api.Put("/:id", operator, h.Laptops.UpdateLaptop)
}
